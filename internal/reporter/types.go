// Package reporter provides progress reporting interfaces and implementations.
package reporter

import "time"

// BatchStartInfo contains batch start metadata.
type BatchStartInfo struct {
	ID         string
	TotalFiles int
	Workers    int
	Filters    []string
	Hostname   string
}

// CheckFailure is one failed check within a file.
type CheckFailure struct {
	Check   string
	Message string
}

// FileResult is emitted once per file as it finishes.
type FileResult struct {
	Index      int
	Completed  int
	TotalFiles int
	Path       string
	Passed     bool
	Abandoned  bool
	Failures   []CheckFailure
	Elapsed    time.Duration
}

// ErrorRecord is a failed check in the batch summary.
type ErrorRecord struct {
	File    string
	Check   string
	Message string
}

// BatchSummary contains batch completion information.
type BatchSummary struct {
	ID        string
	Total     int
	Passed    int
	Failed    int
	Abandoned int
	Cancelled bool
	Elapsed   time.Duration
	Errors    []ErrorRecord
}

// ProbeSummary describes one probed file for display.
type ProbeSummary struct {
	Path     string
	Format   string
	Duration string
	Size     string
	BitRate  string
	Video    string
	Audio    string
	HasVideo bool
	HasAudio bool
}

// ReporterError contains error information.
type ReporterError struct {
	Title      string
	Message    string
	Context    string
	Suggestion string
}
