package cli

import (
	"fmt"
	"sort"
	"time"

	"github.com/tastemaker/taste/internal/domain"
)

// RenderLearnResult prints the learn outcome in a friendly, ASCII-only format.
func RenderLearnResult(result domain.LearnResult) {
	fmt.Printf("Analyzed commit: %s\n", result.CommitURL)
	if result.Stats.FilesChanged > 0 {
		fmt.Printf("Diff: %d files changed, +%d/-%d lines\n",
			result.Stats.FilesChanged, result.Stats.LinesAdded, result.Stats.LinesDeleted)
	}

	if result.NoPattern {
		fmt.Println("\nNo clear taste pattern detected in this commit.")
		fmt.Println("Try a commit that shows clear style improvements.")
		return
	}

	fmt.Printf("\nNew rule created: %s\n", result.RulePath)
	fmt.Printf("  %s: %s\n", result.RuleID, result.RuleTitle)
	fmt.Println("Rule has been saved and can be used for checking code.")
}

// RenderCheckReport prints per-violation lines and a summary by rule.
func RenderCheckReport(report domain.CheckReport) {
	if report.TotalViolations == 0 {
		fmt.Printf("No violations found in %d files\n", report.TotalFilesChecked)
		return
	}

	fmt.Printf("Found %d violations in %d files\n\n", report.TotalViolations, report.TotalFilesChecked)
	for _, v := range report.Violations {
		fmt.Printf("%s:%d:%d\n", v.FilePath, v.LineNumber, v.Column)
		fmt.Printf("  Rule %s [%s]: %s\n", v.RuleID, v.Severity, v.Message)
		fmt.Printf("  Category: %s\n\n", v.Category)
	}

	fmt.Println("Summary by rule:")
	ids := make([]string, 0, len(report.SummaryByRule))
	for id := range report.SummaryByRule {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	for _, id := range ids {
		fmt.Printf("  %s: %d violations\n", id, report.SummaryByRule[id])
	}
}

// RenderRules lists the stored corpus.
func RenderRules(stored []domain.StoredRule) {
	if len(stored) == 0 {
		fmt.Println("No rules learned yet. Use 'taste learn <commit-url>' to create one.")
		return
	}

	fmt.Printf("Available taste rules (%d total):\n\n", len(stored))
	for _, rule := range stored {
		fmt.Printf("%s: %s\n", rule.ID, rule.Title)
		fmt.Printf("  Category: %s | Examples: %d\n", rule.Category, len(rule.Examples))
	}
}

// RenderHistory lists recent learn invocations, newest first.
func RenderHistory(records []domain.LearnRecord) {
	if len(records) == 0 {
		fmt.Println("No learn history recorded.")
		return
	}

	for _, rec := range records {
		line := fmt.Sprintf("%s  %-10s  %s", rec.Timestamp.Format(time.RFC3339), rec.Outcome, rec.CommitURL)
		if rec.RuleID != "" {
			line += fmt.Sprintf("  -> %s (%s)", rec.RuleID, rec.RulePath)
		}
		fmt.Println(line)
	}
}
