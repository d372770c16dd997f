package domain

import (
	"context"
)

// ExportKind identifies an export backend
type ExportKind string

const (
	ExportClipboard ExportKind = "clipboard"
	ExportText      ExportKind = "text"
	ExportMarkdown  ExportKind = "markdown"
	ExportDocument  ExportKind = "document"
	ExportImage     ExportKind = "image"
)

// Extension returns the file extension used by the backend, including the dot.
// Clipboard exports have none.
func (k ExportKind) Extension() string {
	switch k {
	case ExportText:
		return ".txt"
	case ExportMarkdown:
		return ".md"
	case ExportDocument:
		return ".docx"
	case ExportImage:
		return ".png"
	}
	return ""
}

// Label is the human readable backend name
func (k ExportKind) Label() string {
	switch k {
	case ExportClipboard:
		return "clipboard"
	case ExportText:
		return "text file"
	case ExportMarkdown:
		return "Markdown document"
	case ExportDocument:
		return "Word document"
	case ExportImage:
		return "image"
	}
	return string(k)
}

// ExportOptions controls a single export call
type ExportOptions struct {
	// Path is the target file. Backends append their extension when missing.
	Path string
	// Overwrite allows replacing an existing file
	Overwrite bool
}

// ExportArtifact describes what an export produced
type ExportArtifact struct {
	Kind  ExportKind
	Path  string
	Bytes int
}

// ExportBackend turns formatted text into a persisted artifact or clipboard state
type ExportBackend interface {
	Kind() ExportKind
	Export(ctx context.Context, text string, opts ExportOptions) (*ExportArtifact, error)
}

// Clipboard is the platform clipboard service
type Clipboard interface {
	WriteAll(text string) error
}

// BrowserSession is an acquired headless browser. Close must be called on
// every path once the session has been launched.
type BrowserSession interface {
	// Capture loads url and returns a PNG screenshot of the element matching selector
	Capture(ctx context.Context, url, selector string) ([]byte, error)
	Close() error
}

// Browser launches headless browser sessions
type Browser interface {
	Launch(ctx context.Context) (BrowserSession, error)
}
