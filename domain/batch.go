package domain

import "io"

// FileSelection chooses the files of a batch run
type FileSelection struct {
	// Paths are files, directories or doublestar patterns. No paths means
	// the source is read from Input.
	Paths           []string
	Recursive       bool
	IncludePatterns []string
	ExcludePatterns []string
}

// FormatRequest describes a batch format run
type FormatRequest struct {
	FileSelection

	// Write rewrites changed files in place
	Write bool
	// Check only reports files that would change
	Check bool

	Input  io.Reader
	Output io.Writer
}

// FormatFailure is a file that could not be formatted
type FormatFailure struct {
	Path  string `json:"path" yaml:"path"`
	Error string `json:"error" yaml:"error"`
}

// FormatSummary is the outcome of a batch format run
type FormatSummary struct {
	Files    int             `json:"files" yaml:"files"`
	Changed  []string        `json:"changed" yaml:"changed"`
	Failures []FormatFailure `json:"failures" yaml:"failures"`
}

// AnalyzeRequest describes a batch analysis run
type AnalyzeRequest struct {
	FileSelection

	Format OutputFormat
	Input  io.Reader
	Output io.Writer
}
