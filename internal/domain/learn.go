package domain

import (
	"context"
	"time"
)

// LearnRequest carries one learn invocation through the pipeline.
type LearnRequest struct {
	Context   context.Context
	CommitURL string
	Debug     bool
}

// LearnResult is the outcome of a learn invocation. Exactly one of
// NoPattern or RulePath is meaningful: NoPattern means the commit carried no
// generalizable improvement and nothing was written.
type LearnResult struct {
	NoPattern bool
	RuleID    string
	RuleTitle string
	RulePath  string
	CommitURL string
	Stats     DiffStats
}

// Learn ledger outcomes.
const (
	OutcomeCreated   = "created"
	OutcomeNoPattern = "no_pattern"
)

// LearnRecord is one row of the learn ledger.
type LearnRecord struct {
	Timestamp time.Time
	CommitURL string
	Outcome   string
	RuleID    string
	RulePath  string
}
