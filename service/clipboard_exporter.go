package service

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/atotto/clipboard"
	"github.com/aymanbagabas/go-osc52/v2"
	"github.com/ludo-technologies/pyformat/domain"
	"github.com/ludo-technologies/pyformat/internal/logging"
)

// SystemClipboard is the platform clipboard (pbcopy, xclip, xsel,
// wl-copy or the Windows clipboard API)
type SystemClipboard struct{}

// WriteAll implements domain.Clipboard
func (SystemClipboard) WriteAll(text string) error {
	if clipboard.Unsupported {
		return fmt.Errorf("no clipboard utility available")
	}
	return clipboard.WriteAll(text)
}

// ClipboardExporter copies text to the system clipboard and falls back to
// an OSC52 escape sequence written to the terminal.
type ClipboardExporter struct {
	clipboard domain.Clipboard
	// terminal receives the OSC52 sequence, nil disables the fallback
	terminal io.Writer
	logger   *logging.Logger
}

// NewClipboardExporter creates a clipboard backend
func NewClipboardExporter(cb domain.Clipboard, terminal io.Writer, logger *logging.Logger) *ClipboardExporter {
	return &ClipboardExporter{clipboard: cb, terminal: terminal, logger: logger}
}

// Kind implements domain.ExportBackend
func (e *ClipboardExporter) Kind() domain.ExportKind {
	return domain.ExportClipboard
}

// Export implements domain.ExportBackend. opts are ignored.
func (e *ClipboardExporter) Export(ctx context.Context, text string, _ domain.ExportOptions) (*domain.ExportArtifact, error) {
	if err := ctx.Err(); err != nil {
		return nil, domain.NewExportError("export cancelled", err)
	}

	err := e.clipboard.WriteAll(text)
	if err == nil {
		e.logger.Infof("copied %d bytes to the system clipboard", len(text))
		return &domain.ExportArtifact{Kind: domain.ExportClipboard, Bytes: len(text)}, nil
	}
	e.logger.Errorf("system clipboard unavailable: %v", err)

	if e.terminal == nil {
		return nil, domain.NewExportError("unable to copy code to clipboard", err)
	}

	seq := osc52.New(text)
	switch {
	case os.Getenv("TMUX") != "":
		seq = seq.Tmux()
	case os.Getenv("STY") != "":
		seq = seq.Screen()
	}
	if _, werr := seq.WriteTo(e.terminal); werr != nil {
		e.logger.Errorf("OSC52 clipboard fallback failed: %v", werr)
		return nil, domain.NewExportError("unable to copy code to clipboard", werr)
	}

	e.logger.Infof("copied %d bytes through OSC52", len(text))
	return &domain.ExportArtifact{Kind: domain.ExportClipboard, Bytes: len(text)}, nil
}

var (
	_ domain.Clipboard     = SystemClipboard{}
	_ domain.ExportBackend = (*ClipboardExporter)(nil)
)
