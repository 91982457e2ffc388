// Package domain defines core business entities and value objects for taste.
//
// This file contains the rule schema: the structured shape of a persisted
// coding-taste rule with its illustrative before/after examples. The domain
// layer is independent of infrastructure concerns and represents pure
// business logic and data structures.
package domain

import "strings"

// RuleExample pairs a short scenario label with before/after code samples.
// The samples are carried as literal text (typically fenced code blocks)
// and are never re-parsed.
type RuleExample struct {
	Scenario string `yaml:"scenario" json:"scenario"`
	Before   string `yaml:"before" json:"before"`
	After    string `yaml:"after" json:"after"`
}

// Rule is the persisted entity describing one coding-taste improvement.
//
// ID is derived by the repository from the category prefix and a sequence
// number; any model-supplied value is overwritten before the rule is written
// to disk. Example order is meaningful and preserved.
type Rule struct {
	Category    string        `yaml:"-" json:"category"`
	Title       string        `yaml:"title" json:"title"`
	ID          string        `yaml:"id" json:"id"`
	Description string        `yaml:"description" json:"description"`
	Problems    []string      `yaml:"problems" json:"problems"`
	Solutions   []string      `yaml:"solutions" json:"solutions"`
	Examples    []RuleExample `yaml:"examples" json:"examples"`
}

// NoPattern reports whether the generation step declined to produce a rule.
// An empty or whitespace-only title is the agreed "nothing generalizable
// here" signal and must be treated as a normal outcome, not a failure.
func (r Rule) NoPattern() bool {
	return strings.TrimSpace(r.Title) == ""
}

// StoredRule is a rule read back from the repository together with its
// on-disk location.
type StoredRule struct {
	Rule
	Path string
}
