package domain

// FileInput is one source file handed to the checker.
type FileInput struct {
	Path    string `json:"path"`
	Content string `json:"content"`
}

// Violation is a single rule match reported by the checker.
type Violation struct {
	FilePath   string `json:"file_path"`
	LineNumber int    `json:"line_number"`
	Column     int    `json:"column"`
	RuleID     string `json:"rule_id"`
	Message    string `json:"message"`
	Severity   string `json:"severity"`
	Category   string `json:"category"`
}

// CheckReport aggregates checker results over a set of files.
type CheckReport struct {
	TotalFilesChecked int            `json:"total_files_checked"`
	TotalViolations   int            `json:"total_violations"`
	Violations        []Violation    `json:"violations"`
	SummaryByRule     map[string]int `json:"summary_by_rule"`
}
