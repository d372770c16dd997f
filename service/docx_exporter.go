package service

import (
	"bytes"
	"context"
	"strconv"
	"strings"

	"github.com/fumiama/go-docx"
	"github.com/ludo-technologies/pyformat/domain"
	"github.com/ludo-technologies/pyformat/internal/config"
	"github.com/ludo-technologies/pyformat/internal/logging"
)

// headingHalfPoints is the heading run size, 16pt
const headingHalfPoints = "32"

// DocxExporter writes a Word document with a heading and one monospace
// paragraph per source line.
type DocxExporter struct {
	writer   *ArtifactWriter
	logger   *logging.Logger
	heading  string
	font     string
	fontSize int
}

// NewDocxExporter creates a Word backend
func NewDocxExporter(writer *ArtifactWriter, cfg config.DocumentConfig, logger *logging.Logger) *DocxExporter {
	e := &DocxExporter{
		writer:   writer,
		logger:   logger,
		heading:  cfg.Heading,
		font:     cfg.Font,
		fontSize: cfg.FontSize,
	}
	if e.heading == "" {
		e.heading = domain.DefaultDocumentHeading
	}
	if e.font == "" {
		e.font = domain.DefaultDocumentFont
	}
	if e.fontSize <= 0 {
		e.fontSize = domain.DefaultDocumentFontSize
	}
	return e
}

// Kind implements domain.ExportBackend
func (e *DocxExporter) Kind() domain.ExportKind {
	return domain.ExportDocument
}

// Export implements domain.ExportBackend
func (e *DocxExporter) Export(ctx context.Context, text string, opts domain.ExportOptions) (*domain.ExportArtifact, error) {
	data, err := e.Render(text)
	if err != nil {
		e.logger.Errorf("document rendering failed: %v", err)
		return nil, err
	}
	return writeFileArtifact(ctx, e.writer, e.logger, e.Kind(), data, opts)
}

// Render builds the .docx package in memory
func (e *DocxExporter) Render(text string) ([]byte, error) {
	doc := docx.New().WithDefaultTheme()
	doc.AddParagraph().AddText(e.heading).Bold().Size(headingHalfPoints)

	size := strconv.Itoa(e.fontSize * 2)
	for _, line := range strings.Split(strings.TrimSuffix(text, "\n"), "\n") {
		run := doc.AddParagraph().AddText(line).Font(e.font, e.font, e.font, "").Size(size)
		preserveSpaces(run)
	}

	var buf bytes.Buffer
	if _, err := doc.WriteTo(&buf); err != nil {
		return nil, domain.NewExportError("failed to write document", err)
	}
	return buf.Bytes(), nil
}

// preserveSpaces keeps the indentation of a code line; Word trims leading
// and repeated spaces from text nodes otherwise.
func preserveSpaces(run *docx.Run) {
	for _, child := range run.Children {
		if t, ok := child.(*docx.Text); ok {
			t.XMLSpace = "preserve"
		}
	}
}

var _ domain.ExportBackend = (*DocxExporter)(nil)
