package domain

// Commit holds the fetched source material for one learn invocation.
// It is immutable once fetched and discarded after the analyzer consumes it.
type Commit struct {
	Message string
	Diff    string
	URL     string
	Stats   DiffStats
}

// DiffStats summarizes a unified diff for display and debug logging.
// Zero stats mean the diff could not be parsed; the raw text is still valid
// input for the analyzer.
type DiffStats struct {
	FilesChanged int
	LinesAdded   int
	LinesDeleted int
}
