package service

import (
	"context"
	"errors"
	"strings"

	"github.com/ludo-technologies/pyformat/domain"
)

// ErrorCategorizerImpl implements the ErrorCategorizer interface
type ErrorCategorizerImpl struct {
	patterns []categoryPatterns
}

type categoryPatterns struct {
	category domain.ErrorCategory
	patterns []string
}

// NewErrorCategorizer creates a new error categorizer
func NewErrorCategorizer() *ErrorCategorizerImpl {
	return &ErrorCategorizerImpl{
		patterns: initializeErrorPatterns(),
	}
}

// codeCategories maps domain error codes to categories
var codeCategories = map[string]domain.ErrorCategory{
	domain.ErrCodeInvalidInput:      domain.ErrorCategoryInput,
	domain.ErrCodeFileNotFound:      domain.ErrorCategoryInput,
	domain.ErrCodeParseError:        domain.ErrorCategoryProcessing,
	domain.ErrCodeFormatError:       domain.ErrorCategoryProcessing,
	domain.ErrCodeAnalysisError:     domain.ErrorCategoryProcessing,
	domain.ErrCodeExportError:       domain.ErrorCategoryOutput,
	domain.ErrCodeOutputError:       domain.ErrorCategoryOutput,
	domain.ErrCodeUnsupportedFormat: domain.ErrorCategoryInput,
	domain.ErrCodeResourceError:     domain.ErrorCategoryResource,
	domain.ErrCodeConfigError:       domain.ErrorCategoryConfig,
}

// initializeErrorPatterns lists message fragments for errors that carry no
// domain code. Earlier entries win.
func initializeErrorPatterns() []categoryPatterns {
	return []categoryPatterns{
		{domain.ErrorCategoryTimeout, []string{"timeout", "deadline", "timed out"}},
		{domain.ErrorCategoryConfig, []string{"config", "toml"}},
		{domain.ErrorCategoryResource, []string{"chrome", "browser", "clipboard", "executable file not found"}},
		{domain.ErrorCategoryInput, []string{"no such file", "not found", "permission denied", "no files"}},
		{domain.ErrorCategoryOutput, []string{"write", "cannot create"}},
		{domain.ErrorCategoryProcessing, []string{"parse", "syntax"}},
	}
}

// Categorize determines the category of an error
func (ec *ErrorCategorizerImpl) Categorize(err error) *domain.CategorizedError {
	if err == nil {
		return nil
	}

	category := domain.ErrorCategoryUnknown
	if errors.Is(err, context.DeadlineExceeded) {
		category = domain.ErrorCategoryTimeout
	} else if c, ok := codeCategories[domain.ErrorCode(err)]; ok {
		category = c
	} else {
		errMsg := strings.ToLower(err.Error())
		for _, p := range ec.patterns {
			if containsAnyPattern(errMsg, p.patterns) {
				category = p.category
				break
			}
		}
	}

	return &domain.CategorizedError{
		Category: category,
		Message:  ec.getCategoryMessage(category),
		Original: err,
	}
}

// GetRecoverySuggestions returns recovery suggestions for an error category
func (ec *ErrorCategorizerImpl) GetRecoverySuggestions(category domain.ErrorCategory) []string {
	suggestions := map[domain.ErrorCategory][]string{
		domain.ErrorCategoryInput: {
			"Check that the files exist and are readable",
			"Pipe source on stdin: pyformat < script.py",
		},
		domain.ErrorCategoryConfig: {
			"Verify configuration file format and values",
			"Try: pyformat init to generate a valid config file",
			"Check [tool.pyformat] in pyproject.toml and PYFORMAT_* variables",
		},
		domain.ErrorCategoryTimeout: {
			"Increase formatter.timeout_seconds or image.timeout_seconds",
		},
		domain.ErrorCategoryOutput: {
			"Check write permissions of export.output_dir",
			"Try writing to a different location",
		},
		domain.ErrorCategoryProcessing: {
			"Check the source for syntax errors",
			"Try another engine: pyformat --engine black",
		},
		domain.ErrorCategoryResource: {
			"Install Chrome or Chromium, or set image.chrome_path",
			"Install xclip, xsel or wl-clipboard for clipboard support",
		},
		domain.ErrorCategoryUnknown: {
			"Run with --log-level debug and check " + domain.DefaultLogFile,
		},
	}

	if sug, ok := suggestions[category]; ok {
		return sug
	}
	return []string{"Check the error message for more details"}
}

// getCategoryMessage returns a user-friendly message for an error category
func (ec *ErrorCategorizerImpl) getCategoryMessage(category domain.ErrorCategory) string {
	messages := map[domain.ErrorCategory]string{
		domain.ErrorCategoryInput:      "Failed to read input",
		domain.ErrorCategoryConfig:     "Configuration file or settings error",
		domain.ErrorCategoryTimeout:    "Operation timed out",
		domain.ErrorCategoryOutput:     "Failed to write output",
		domain.ErrorCategoryProcessing: "Failed to process source code",
		domain.ErrorCategoryResource:   "External resource unavailable",
		domain.ErrorCategoryUnknown:    "An unexpected error occurred",
	}

	if msg, ok := messages[category]; ok {
		return msg
	}
	return "An error occurred"
}

// containsAnyPattern checks if a string contains any of the given patterns
func containsAnyPattern(str string, patterns []string) bool {
	for _, pattern := range patterns {
		if strings.Contains(str, pattern) {
			return true
		}
	}
	return false
}

var _ domain.ErrorCategorizer = (*ErrorCategorizerImpl)(nil)
