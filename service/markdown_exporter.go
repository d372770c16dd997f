package service

import (
	"context"
	"strings"

	"github.com/ludo-technologies/pyformat/domain"
	"github.com/ludo-technologies/pyformat/internal/logging"
)

// MarkdownExporter writes the formatted text as a fenced Python block
type MarkdownExporter struct {
	writer *ArtifactWriter
	logger *logging.Logger
}

// NewMarkdownExporter creates a Markdown backend
func NewMarkdownExporter(writer *ArtifactWriter, logger *logging.Logger) *MarkdownExporter {
	return &MarkdownExporter{writer: writer, logger: logger}
}

// Kind implements domain.ExportBackend
func (e *MarkdownExporter) Kind() domain.ExportKind {
	return domain.ExportMarkdown
}

// Export implements domain.ExportBackend
func (e *MarkdownExporter) Export(ctx context.Context, text string, opts domain.ExportOptions) (*domain.ExportArtifact, error) {
	return writeFileArtifact(ctx, e.writer, e.logger, e.Kind(), []byte(RenderMarkdown(text)), opts)
}

// RenderMarkdown wraps text in a python code fence. The fence grows when the
// text itself contains backtick runs.
func RenderMarkdown(text string) string {
	fence := "```"
	for strings.Contains(text, fence) {
		fence += "`"
	}
	if text != "" && !strings.HasSuffix(text, "\n") {
		text += "\n"
	}
	return fence + "python\n" + text + fence + "\n"
}

var _ domain.ExportBackend = (*MarkdownExporter)(nil)
