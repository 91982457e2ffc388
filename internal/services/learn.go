// Package services orchestrates the application use cases over the ports.
package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/tastemaker/taste/internal/domain"
	"github.com/tastemaker/taste/internal/ports"
)

// LearnService runs the learn pipeline end-to-end: parse the commit
// reference, fetch the commit, ask the model for a rule, and persist it.
// All failures abort before any repository mutation; identity assignment and
// the artifact write only happen once a validated rule is in hand.
type LearnService struct {
	Fetcher    ports.CommitFetcher
	Generator  ports.RuleGenerator
	Repository ports.RuleRepository
	Ledger     ports.LearnLedger
	Logger     ports.Logger
}

// Run processes a single commit reference.
func (s *LearnService) Run(req domain.LearnRequest) (domain.LearnResult, error) {
	if s.Fetcher == nil || s.Generator == nil || s.Repository == nil || s.Logger == nil {
		return domain.LearnResult{}, errors.New("services.LearnService dependencies not satisfied")
	}

	ctx := req.Context
	if ctx == nil {
		ctx = context.Background()
	}

	owner, repo, sha, err := s.Fetcher.ParseReference(req.CommitURL)
	if err != nil {
		return domain.LearnResult{}, err
	}

	commit, err := s.Fetcher.FetchCommit(ctx, owner, repo, sha)
	if err != nil {
		return domain.LearnResult{}, fmt.Errorf("fetch %s: %w", req.CommitURL, err)
	}

	// --debug surfaces fetch details without requiring a verbose logger.
	logFetch := s.Logger.Debug
	if req.Debug {
		logFetch = s.Logger.Info
	}
	logFetch("commit fetched", map[string]interface{}{
		"url":           commit.URL,
		"files_changed": commit.Stats.FilesChanged,
		"lines_added":   commit.Stats.LinesAdded,
		"lines_deleted": commit.Stats.LinesDeleted,
	})

	rule, err := s.Generator.Analyze(ctx, commit)
	if err != nil {
		return domain.LearnResult{}, err
	}

	if rule.NoPattern() {
		s.record(domain.LearnRecord{
			Timestamp: time.Now(),
			CommitURL: commit.URL,
			Outcome:   domain.OutcomeNoPattern,
		})
		return domain.LearnResult{
			NoPattern: true,
			CommitURL: commit.URL,
			Stats:     commit.Stats,
		}, nil
	}

	path, err := s.Repository.Save(rule)
	if err != nil {
		return domain.LearnResult{}, err
	}

	s.record(domain.LearnRecord{
		Timestamp: time.Now(),
		CommitURL: commit.URL,
		Outcome:   domain.OutcomeCreated,
		RuleID:    rule.ID,
		RulePath:  path,
	})

	return domain.LearnResult{
		RuleID:    rule.ID,
		RuleTitle: rule.Title,
		RulePath:  path,
		CommitURL: commit.URL,
		Stats:     commit.Stats,
	}, nil
}

// record writes a ledger row; ledger failures are logged, never fatal.
func (s *LearnService) record(rec domain.LearnRecord) {
	if s.Ledger == nil {
		return
	}
	if err := s.Ledger.Record(rec); err != nil {
		s.Logger.Warn("ledger write failed", map[string]interface{}{"error": err.Error()})
	}
}
