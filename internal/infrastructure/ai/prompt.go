package ai

import (
	"fmt"
	"strings"

	"github.com/tastemaker/taste/internal/domain"
)

const systemPrompt = `You are an expert software developer and technical writer specializing in code quality and best practices. You have deep experience with open source projects and understand real-world development challenges. Your writing is clear, practical, and actionable.`

// instructionBlock is the fixed analysis contract sent ahead of every commit.
// The model answers with a single JSON object so the response can be decoded
// directly into the rule shape.
const instructionBlock = `You are tasked with extracting a generalizable coding-style rule from a git commit.

Given a git diff showing before/after changes, identify if there's a clear style improvement pattern that could be generalized into a coding rule.

Focus on:
- Code organization and structure improvements
- Naming convention upgrades
- Function/class design enhancements
- Error handling improvements
- Performance optimizations
- Readability enhancements

Generate a rule ONLY if there's a clear, generalizable pattern that represents good taste rather than just bug fixes. If no such pattern exists, return the JSON object with an empty "title".

Respond with a single JSON object and nothing else:

{
  "category": "<one of the categories below>",
  "title": "<short rule title, or empty string if no pattern>",
  "description": "<comprehensive explanation of the rule>",
  "problems": ["<what goes wrong when the rule is violated>", ...],
  "solutions": ["<specific, actionable best practices>", ...],
  "examples": [
    {
      "scenario": "<short label>",
      "before": "<fenced code block showing the discouraged form>",
      "after": "<fenced code block showing the improved form>"
    }
  ]
}

Each example should show realistic before/after code, not toy examples, and demonstrate the rule violation and its fix.`

// BuildPrompt assembles the analysis prompt for one commit. The message,
// URL, and diff are embedded verbatim; the prompt is plain text sent to the
// model, so no escaping is applied.
func BuildPrompt(commit domain.Commit) string {
	var b strings.Builder
	b.WriteString(instructionBlock)
	b.WriteString("\n\nFor the category, choose from: ")
	b.WriteString(strings.Join(domain.KnownCategories(), ", "))
	fmt.Fprintf(&b, "\n\nCOMMIT MESSAGE:\n%s\n", commit.Message)
	fmt.Fprintf(&b, "\nCOMMIT URL:\n%s\n", commit.URL)
	fmt.Fprintf(&b, "\nDIFF:\n%s\n", commit.Diff)
	return b.String()
}
