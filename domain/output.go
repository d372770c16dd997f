package domain

import (
	"io"
)

// OutputFormat represents the supported report encodings
type OutputFormat string

const (
	OutputFormatText OutputFormat = "text"
	OutputFormatJSON OutputFormat = "json"
	OutputFormatYAML OutputFormat = "yaml"
)

// ParseOutputFormat validates a user supplied format name
func ParseOutputFormat(s string) (OutputFormat, error) {
	switch OutputFormat(s) {
	case OutputFormatText, OutputFormatJSON, OutputFormatYAML:
		return OutputFormat(s), nil
	case "":
		return OutputFormatText, nil
	}
	return "", NewUnsupportedFormatError(s)
}

// FileReader defines the interface for reading Python source files
type FileReader interface {
	// CollectPythonFiles finds all Python files in the given paths.
	// Paths may be files, directories or doublestar glob patterns.
	CollectPythonFiles(paths []string, recursive bool, includePatterns, excludePatterns []string) ([]string, error)

	// ReadFile reads the content of a file
	ReadFile(path string) ([]byte, error)

	// IsValidPythonFile checks if a file is a valid Python file
	IsValidPythonFile(path string) bool
}

// ReportFormatter encodes analysis reports
type ReportFormatter interface {
	Write(report *AnalysisReport, format OutputFormat, w io.Writer) error

	// WriteFiles encodes the per-file reports of a batch run
	WriteFiles(results []FileAnalysis, format OutputFormat, w io.Writer) error
}

// ProgressManager manages progress tracking for multi-step operations
type ProgressManager interface {
	// Start begins tracking an operation with the given number of steps
	Start(description string, steps int)

	// Step advances the progress by one step and updates its label
	Step(label string)

	// Complete finishes the current operation
	Complete(success bool)

	// IsInteractive returns true if progress bars should be shown
	IsInteractive() bool
}

// ErrorCategory represents the category of an error
type ErrorCategory string

const (
	ErrorCategoryInput      ErrorCategory = "Input Error"
	ErrorCategoryConfig     ErrorCategory = "Configuration Error"
	ErrorCategoryProcessing ErrorCategory = "Processing Error"
	ErrorCategoryOutput     ErrorCategory = "Output Error"
	ErrorCategoryResource   ErrorCategory = "Resource Error"
	ErrorCategoryTimeout    ErrorCategory = "Timeout Error"
	ErrorCategoryUnknown    ErrorCategory = "Unknown Error"
)

// CategorizedError represents an error with category information
type CategorizedError struct {
	Category ErrorCategory
	Message  string
	Original error
}

// Error implements the error interface
func (e *CategorizedError) Error() string {
	if e.Original != nil {
		return e.Original.Error()
	}
	return e.Message
}

// ErrorCategorizer categorizes errors for better reporting
type ErrorCategorizer interface {
	// Categorize determines the category of an error
	Categorize(err error) *CategorizedError

	// GetRecoverySuggestions returns recovery suggestions for an error category
	GetRecoverySuggestions(category ErrorCategory) []string
}
