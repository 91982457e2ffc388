// Package ports defines the interfaces (ports) for the hexagonal architecture.
//
// This package establishes the contract between the application core and
// external adapters (infrastructure). Following the Ports and Adapters
// pattern, these interfaces keep the learn pipeline independent of the
// concrete commit API client, model client, and on-disk repository, so the
// core can be exercised with deterministic stubs.
package ports

import (
	"context"

	"github.com/tastemaker/taste/internal/domain"
)

// ConfigProvider loads the latest configuration from persistent storage.
// Implementations typically read from ~/.taste/config.yaml.
type ConfigProvider interface {
	Load(context.Context) (domain.Config, error)
}

// CommitFetcher translates a commit reference into fetched message and diff
// data. ParseReference is pure (no network I/O); FetchCommit performs the
// remote reads.
type CommitFetcher interface {
	ParseReference(url string) (owner, repo, sha string, err error)
	FetchCommit(ctx context.Context, owner, repo, sha string) (domain.Commit, error)
}

// RuleGenerator wraps the generative model call: prompt in, validated rule
// out. A returned rule with a blank title is the valid "no pattern found"
// outcome, never an error.
type RuleGenerator interface {
	Analyze(ctx context.Context, commit domain.Commit) (domain.Rule, error)
}

// RuleRepository assigns identity to rules and persists them as artifacts.
// Save is all-or-nothing: it only opens the artifact for writing once the
// full in-memory record is finalized.
type RuleRepository interface {
	Save(rule domain.Rule) (path string, err error)
	List() ([]domain.StoredRule, error)
}

// RuleChecker applies the persisted rule corpus to a set of source files.
type RuleChecker interface {
	Check(files []domain.FileInput) (domain.CheckReport, error)
}

// LearnLedger records the outcome of every learn invocation. Implementations
// must degrade gracefully: a ledger failure never fails the pipeline.
type LearnLedger interface {
	Record(rec domain.LearnRecord) error
	Recent(limit int) ([]domain.LearnRecord, error)
}

// Logger provides structured logging abstraction for the application layer.
type Logger interface {
	Debug(msg string, fields map[string]interface{})
	Info(msg string, fields map[string]interface{})
	Warn(msg string, fields map[string]interface{})
	Error(msg string, err error, fields map[string]interface{})
}
