// Package checker applies the persisted rule corpus to source files.
//
// Matching is deliberately simple: the significant lines of every example's
// "before" block become discouraged-line patterns, and a source line that
// reproduces one exactly (modulo surrounding whitespace) is reported as a
// violation of that rule. The rule artifacts are the only input corpus.
package checker

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/tastemaker/taste/internal/domain"
	"github.com/tastemaker/taste/internal/ports"
)

// Lines shorter than this after trimming are too generic to be signals.
const minPatternLength = 8

const severityWarning = "Warning"

type linePattern struct {
	ruleID   string
	category string
	scenario string
}

// Engine checks files against the rules stored in a repository. The corpus
// is re-read on every Check call so newly learned rules apply immediately.
type Engine struct {
	repo ports.RuleRepository
}

// NewEngine builds a checker over the given repository.
func NewEngine(repo ports.RuleRepository) *Engine {
	return &Engine{repo: repo}
}

// Check implements ports.RuleChecker.
func (e *Engine) Check(files []domain.FileInput) (domain.CheckReport, error) {
	stored, err := e.repo.List()
	if err != nil {
		return domain.CheckReport{}, err
	}
	patterns := compilePatterns(stored)

	report := domain.CheckReport{
		TotalFilesChecked: len(files),
		SummaryByRule:     map[string]int{},
	}

	for _, file := range files {
		for i, line := range strings.Split(file.Content, "\n") {
			trimmed := strings.TrimSpace(line)
			pattern, ok := patterns[trimmed]
			if !ok {
				continue
			}
			report.Violations = append(report.Violations, domain.Violation{
				FilePath:   file.Path,
				LineNumber: i + 1,
				Column:     firstNonSpace(line),
				RuleID:     pattern.ruleID,
				Message:    fmt.Sprintf("matches discouraged pattern (%s)", pattern.scenario),
				Severity:   severityWarning,
				Category:   pattern.category,
			})
			report.SummaryByRule[pattern.ruleID]++
		}
	}

	report.TotalViolations = len(report.Violations)
	return report, nil
}

// compilePatterns extracts discouraged lines from every example's "before"
// block. Earlier rules win when two rules share a line.
func compilePatterns(stored []domain.StoredRule) map[string]linePattern {
	patterns := map[string]linePattern{}
	for _, rule := range stored {
		for _, ex := range rule.Examples {
			for _, line := range significantLines(ex.Before) {
				if _, exists := patterns[line]; exists {
					continue
				}
				patterns[line] = linePattern{
					ruleID:   rule.ID,
					category: rule.Category,
					scenario: ex.Scenario,
				}
			}
		}
	}
	return patterns
}

// significantLines strips code fences and drops lines too short or too
// symbol-heavy to identify a pattern.
func significantLines(block string) []string {
	var lines []string
	for _, line := range strings.Split(block, "\n") {
		trimmed := strings.TrimSpace(line)
		if strings.HasPrefix(trimmed, "```") {
			continue
		}
		if len(trimmed) < minPatternLength || !containsLetter(trimmed) {
			continue
		}
		lines = append(lines, trimmed)
	}
	return lines
}

func containsLetter(s string) bool {
	for _, r := range s {
		if unicode.IsLetter(r) {
			return true
		}
	}
	return false
}

func firstNonSpace(line string) int {
	for i, r := range line {
		if !unicode.IsSpace(r) {
			return i + 1
		}
	}
	return 1
}

var _ ports.RuleChecker = (*Engine)(nil)
