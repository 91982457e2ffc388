package services

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/tastemaker/taste/internal/domain"
	"github.com/tastemaker/taste/internal/infrastructure/github"
	"github.com/tastemaker/taste/internal/infrastructure/rules"
	"github.com/tastemaker/taste/internal/pkg/logger"
)

type stubFetcher struct {
	commit   domain.Commit
	fetchErr error
	fetched  bool
}

func (s *stubFetcher) ParseReference(url string) (string, string, string, error) {
	return github.ParseCommitURL(url)
}

func (s *stubFetcher) FetchCommit(context.Context, string, string, string) (domain.Commit, error) {
	s.fetched = true
	return s.commit, s.fetchErr
}

type stubGenerator struct {
	rule domain.Rule
	err  error
}

func (s stubGenerator) Analyze(context.Context, domain.Commit) (domain.Rule, error) {
	return s.rule, s.err
}

type memoryLedger struct {
	records []domain.LearnRecord
	err     error
}

func (m *memoryLedger) Record(rec domain.LearnRecord) error {
	if m.err != nil {
		return m.err
	}
	m.records = append(m.records, rec)
	return nil
}

func (m *memoryLedger) Recent(int) ([]domain.LearnRecord, error) { return m.records, nil }

func boundariesRule() domain.Rule {
	return domain.Rule{
		Category:    "boundaries",
		Title:       "Validate before dereference",
		Description: "Add null-checks before dereferencing a field.",
		Problems:    []string{"dereferencing unchecked values panics"},
		Solutions:   []string{"guard access with an explicit check"},
		Examples: []domain.RuleExample{
			{Scenario: "field access", Before: "obj.field.use()", After: "if obj.field != nil {\n\tobj.field.use()\n}"},
		},
	}
}

func newLearnService(t *testing.T, gen stubGenerator) (*LearnService, string, *memoryLedger) {
	t.Helper()
	root := t.TempDir()
	ledger := &memoryLedger{}
	svc := &LearnService{
		Fetcher: &stubFetcher{commit: domain.Commit{
			Message: "fix: add nil checks",
			URL:     "https://github.com/a/b/commit/abc123",
			Diff:    "diff",
		}},
		Generator:  gen,
		Repository: rules.NewRepository(root, domain.CategoryPrefixes()),
		Ledger:     ledger,
		Logger:     logger.NewStd(false),
	}
	return svc, root, ledger
}

func TestLearnWritesExactlyOneArtifact(t *testing.T) {
	svc, root, ledger := newLearnService(t, stubGenerator{rule: boundariesRule()})

	result, err := svc.Run(domain.LearnRequest{CommitURL: "https://github.com/a/b/commit/abc123"})
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	wantPath := filepath.Join(root, "boundaries", "001-bnd001.yaml")
	if result.RulePath != wantPath {
		t.Fatalf("Run() path = %q, want %q", result.RulePath, wantPath)
	}
	if result.RuleID != "BND001" {
		t.Fatalf("Run() id = %q, want BND001", result.RuleID)
	}

	data, err := os.ReadFile(wantPath)
	if err != nil {
		t.Fatalf("artifact not written: %v", err)
	}

	// The artifact carries the five top-level keys in fixed order.
	out := string(data)
	last := -1
	for _, key := range []string{"title:", "\nid:", "\ndescription:", "\nproblems:", "\nsolutions:", "\nexamples:"} {
		idx := strings.Index(out, key)
		if idx == -1 || idx < last {
			t.Fatalf("artifact keys missing or out of order:\n%s", out)
		}
		last = idx
	}

	entries, err := os.ReadDir(filepath.Join(root, "boundaries"))
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 {
		t.Fatalf("category dir has %d files, want exactly 1", len(entries))
	}

	if len(ledger.records) != 1 || ledger.records[0].Outcome != domain.OutcomeCreated {
		t.Fatalf("ledger records = %+v, want one created record", ledger.records)
	}
}

func TestLearnTwiceNeverCollides(t *testing.T) {
	svc, root, _ := newLearnService(t, stubGenerator{rule: boundariesRule()})

	first, err := svc.Run(domain.LearnRequest{CommitURL: "https://github.com/a/b/commit/abc123"})
	if err != nil {
		t.Fatalf("first Run() error = %v", err)
	}
	second, err := svc.Run(domain.LearnRequest{CommitURL: "https://github.com/a/b/commit/def456"})
	if err != nil {
		t.Fatalf("second Run() error = %v", err)
	}

	if filepath.Base(first.RulePath) != "001-bnd001.yaml" || filepath.Base(second.RulePath) != "002-bnd002.yaml" {
		t.Fatalf("paths = %q, %q; want 001-bnd001.yaml then 002-bnd002.yaml", first.RulePath, second.RulePath)
	}

	entries, err := os.ReadDir(filepath.Join(root, "boundaries"))
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 2 {
		t.Fatalf("category dir has %d files, want 2", len(entries))
	}
}

func TestLearnNoPatternWritesNothing(t *testing.T) {
	svc, root, ledger := newLearnService(t, stubGenerator{rule: domain.Rule{Title: "   "}})

	result, err := svc.Run(domain.LearnRequest{CommitURL: "https://github.com/a/b/commit/abc123"})
	if err != nil {
		t.Fatalf("Run() error = %v, no-pattern must not be an error", err)
	}
	if !result.NoPattern {
		t.Fatalf("Run() = %+v, want NoPattern", result)
	}

	if _, err := os.Stat(root); err != nil {
		t.Fatal(err)
	}
	entries, err := os.ReadDir(root)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 0 {
		t.Fatalf("rules root has %d entries, want none", len(entries))
	}

	if len(ledger.records) != 1 || ledger.records[0].Outcome != domain.OutcomeNoPattern {
		t.Fatalf("ledger records = %+v, want one no_pattern record", ledger.records)
	}
}

func TestLearnInvalidReferenceSkipsNetwork(t *testing.T) {
	fetcher := &stubFetcher{}
	svc := &LearnService{
		Fetcher:    fetcher,
		Generator:  stubGenerator{},
		Repository: rules.NewRepository(t.TempDir(), domain.CategoryPrefixes()),
		Logger:     logger.NewStd(false),
	}

	_, err := svc.Run(domain.LearnRequest{CommitURL: "not-a-commit-url"})
	if !errors.Is(err, domain.ErrInvalidReference) {
		t.Fatalf("Run() error = %v, want ErrInvalidReference", err)
	}
	if fetcher.fetched {
		t.Fatal("fetcher was called for an invalid reference")
	}
}

func TestLearnFetchFailureLeavesNoState(t *testing.T) {
	root := t.TempDir()
	svc := &LearnService{
		Fetcher:    &stubFetcher{fetchErr: domain.ErrUpstreamUnavailable},
		Generator:  stubGenerator{rule: boundariesRule()},
		Repository: rules.NewRepository(root, domain.CategoryPrefixes()),
		Logger:     logger.NewStd(false),
	}

	_, err := svc.Run(domain.LearnRequest{CommitURL: "https://github.com/a/b/commit/abc123"})
	if !errors.Is(err, domain.ErrUpstreamUnavailable) {
		t.Fatalf("Run() error = %v, want ErrUpstreamUnavailable", err)
	}

	entries, err := os.ReadDir(root)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 0 {
		t.Fatalf("rules root has %d entries after failed fetch, want none", len(entries))
	}
}

func TestLearnGenerationFailureAbortsBeforePersist(t *testing.T) {
	root := t.TempDir()
	svc := &LearnService{
		Fetcher:    &stubFetcher{commit: domain.Commit{URL: "u"}},
		Generator:  stubGenerator{err: domain.ErrGenerationFailed},
		Repository: rules.NewRepository(root, domain.CategoryPrefixes()),
		Logger:     logger.NewStd(false),
	}

	_, err := svc.Run(domain.LearnRequest{CommitURL: "https://github.com/a/b/commit/abc123"})
	if !errors.Is(err, domain.ErrGenerationFailed) {
		t.Fatalf("Run() error = %v, want ErrGenerationFailed", err)
	}

	entries, err := os.ReadDir(root)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 0 {
		t.Fatalf("rules root has %d entries after failed generation, want none", len(entries))
	}
}

func TestLearnLedgerFailureIsNotFatal(t *testing.T) {
	svc, _, _ := newLearnService(t, stubGenerator{rule: boundariesRule()})
	svc.Ledger = &memoryLedger{err: errors.New("disk full")}

	result, err := svc.Run(domain.LearnRequest{CommitURL: "https://github.com/a/b/commit/abc123"})
	if err != nil {
		t.Fatalf("Run() error = %v, ledger failures must not be fatal", err)
	}
	if result.RuleID != "BND001" {
		t.Fatalf("Run() id = %q, want BND001", result.RuleID)
	}
}
