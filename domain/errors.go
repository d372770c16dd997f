package domain

import (
	"errors"
	"fmt"
)

// DomainError represents errors in the domain layer
type DomainError struct {
	Code    string
	Message string
	Cause   error
}

func (e DomainError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

func (e DomainError) Unwrap() error {
	return e.Cause
}

// Domain error codes
const (
	ErrCodeInvalidInput      = "INVALID_INPUT"
	ErrCodeFileNotFound      = "FILE_NOT_FOUND"
	ErrCodeParseError        = "PARSE_ERROR"
	ErrCodeFormatError       = "FORMAT_ERROR"
	ErrCodeAnalysisError     = "ANALYSIS_ERROR"
	ErrCodeExportError       = "EXPORT_ERROR"
	ErrCodeResourceError     = "RESOURCE_ERROR"
	ErrCodeConfigError       = "CONFIG_ERROR"
	ErrCodeOutputError       = "OUTPUT_ERROR"
	ErrCodeUnsupportedFormat = "UNSUPPORTED_FORMAT"
)

// ErrArtifactExists is returned by file-writing export backends when the
// target path already exists and overwriting was not requested.
var ErrArtifactExists = errors.New("artifact already exists")

// NewDomainError creates a new domain error
func NewDomainError(code, message string, cause error) error {
	return DomainError{
		Code:    code,
		Message: message,
		Cause:   cause,
	}
}

// NewInvalidInputError creates an invalid input error
func NewInvalidInputError(message string, cause error) error {
	return NewDomainError(ErrCodeInvalidInput, message, cause)
}

// NewFileNotFoundError creates a file not found error
func NewFileNotFoundError(path string, cause error) error {
	return NewDomainError(ErrCodeFileNotFound, fmt.Sprintf("file not found: %s", path), cause)
}

// NewParseError creates a parse error
func NewParseError(file string, cause error) error {
	return NewDomainError(ErrCodeParseError, fmt.Sprintf("failed to parse file: %s", file), cause)
}

// NewFormatError creates a formatting error. Formatting errors end the session.
func NewFormatError(message string, cause error) error {
	return NewDomainError(ErrCodeFormatError, message, cause)
}

// NewAnalysisError creates an analysis error
func NewAnalysisError(message string, cause error) error {
	return NewDomainError(ErrCodeAnalysisError, message, cause)
}

// NewExportError creates an export error
func NewExportError(message string, cause error) error {
	return NewDomainError(ErrCodeExportError, message, cause)
}

// NewResourceError creates an error for external resources (browser, driver)
// that failed to start or shut down.
func NewResourceError(message string, cause error) error {
	return NewDomainError(ErrCodeResourceError, message, cause)
}

// NewConfigError creates a configuration error
func NewConfigError(message string, cause error) error {
	return NewDomainError(ErrCodeConfigError, message, cause)
}

// NewOutputError creates an output error
func NewOutputError(message string, cause error) error {
	return NewDomainError(ErrCodeOutputError, message, cause)
}

// NewUnsupportedFormatError creates an unsupported format error
func NewUnsupportedFormatError(format string) error {
	return NewDomainError(ErrCodeUnsupportedFormat, fmt.Sprintf("unsupported format: %s", format), nil)
}

// NewValidationError creates a validation error
func NewValidationError(message string) error {
	return NewDomainError(ErrCodeInvalidInput, message, nil)
}

// ErrorCode returns the code of the outermost DomainError in err's chain,
// or an empty string if there is none.
func ErrorCode(err error) string {
	var de DomainError
	if errors.As(err, &de) {
		return de.Code
	}
	return ""
}

// IsFormatError reports whether err is a formatting failure
func IsFormatError(err error) bool {
	return ErrorCode(err) == ErrCodeFormatError
}

// IsRecoverable reports whether a session can continue after err.
// Everything except formatting and configuration failures is recoverable.
func IsRecoverable(err error) bool {
	if err == nil {
		return true
	}
	switch ErrorCode(err) {
	case ErrCodeFormatError, ErrCodeConfigError:
		return false
	}
	return true
}
