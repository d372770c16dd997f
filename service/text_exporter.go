package service

import (
	"context"

	"github.com/ludo-technologies/pyformat/domain"
	"github.com/ludo-technologies/pyformat/internal/logging"
)

// TextExporter writes the formatted text unchanged to a plain file
type TextExporter struct {
	writer *ArtifactWriter
	logger *logging.Logger
}

// NewTextExporter creates a plain text backend
func NewTextExporter(writer *ArtifactWriter, logger *logging.Logger) *TextExporter {
	return &TextExporter{writer: writer, logger: logger}
}

// Kind implements domain.ExportBackend
func (e *TextExporter) Kind() domain.ExportKind {
	return domain.ExportText
}

// Export implements domain.ExportBackend
func (e *TextExporter) Export(ctx context.Context, text string, opts domain.ExportOptions) (*domain.ExportArtifact, error) {
	return writeFileArtifact(ctx, e.writer, e.logger, e.Kind(), []byte(text), opts)
}

// writeFileArtifact is the common path of the backends that render to bytes
// up front.
func writeFileArtifact(ctx context.Context, w *ArtifactWriter, logger *logging.Logger, kind domain.ExportKind, data []byte, opts domain.ExportOptions) (*domain.ExportArtifact, error) {
	path, err := w.Resolve(opts.Path, kind)
	if err != nil {
		return nil, err
	}
	if err := w.Write(ctx, path, data, opts.Overwrite); err != nil {
		logger.Errorf("%s export to %s failed: %v", kind, path, err)
		return nil, err
	}
	logger.Infof("exported %s to %s (%d bytes)", kind, path, len(data))
	return &domain.ExportArtifact{Kind: kind, Path: path, Bytes: len(data)}, nil
}

var _ domain.ExportBackend = (*TextExporter)(nil)
