package service

import (
	"context"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"time"

	"github.com/ludo-technologies/pyformat/domain"
	"github.com/ludo-technologies/pyformat/internal/config"
	"github.com/ludo-technologies/pyformat/internal/highlight"
	"github.com/ludo-technologies/pyformat/internal/logging"
)

// imageStages are the progress steps of one image export
const imageStages = 4

// ImageExporter renders highlighted code to HTML and screenshots it with a
// headless browser. The browser is launched and closed within one call.
type ImageExporter struct {
	writer      *ArtifactWriter
	browser     domain.Browser
	progress    domain.ProgressManager
	logger      *logging.Logger
	theme       *highlight.Theme
	lineNumbers bool
	width       int
	timeout     time.Duration
	tempDir     string

	// open is called with the written path when set
	open func(path string) error
}

// ImageExporterOption configures an ImageExporter
type ImageExporterOption func(*ImageExporter)

// WithProgress reports export stages to pm
func WithProgress(pm domain.ProgressManager) ImageExporterOption {
	return func(e *ImageExporter) { e.progress = pm }
}

// WithOpener opens every written image with open
func WithOpener(open func(path string) error) ImageExporterOption {
	return func(e *ImageExporter) { e.open = open }
}

// WithTempDir sets where the intermediate HTML page is written
func WithTempDir(dir string) ImageExporterOption {
	return func(e *ImageExporter) { e.tempDir = dir }
}

// NewImageExporter creates an image backend
func NewImageExporter(writer *ArtifactWriter, browser domain.Browser, cfg config.ImageConfig, logger *logging.Logger, opts ...ImageExporterOption) *ImageExporter {
	theme, ok := highlight.LookupTheme(cfg.Theme)
	if !ok {
		theme = highlight.DefaultTheme()
	}
	timeout := time.Duration(cfg.TimeoutSeconds) * time.Second
	if timeout <= 0 {
		timeout = domain.DefaultImageTimeoutSeconds * time.Second
	}

	e := &ImageExporter{
		writer:      writer,
		browser:     browser,
		progress:    &NoOpProgressManager{},
		logger:      logger,
		theme:       theme,
		lineNumbers: cfg.LineNumbers,
		width:       cfg.Width,
		timeout:     timeout,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Kind implements domain.ExportBackend
func (e *ImageExporter) Kind() domain.ExportKind {
	return domain.ExportImage
}

// Export implements domain.ExportBackend
func (e *ImageExporter) Export(ctx context.Context, text string, opts domain.ExportOptions) (artifact *domain.ExportArtifact, err error) {
	path, err := e.writer.Resolve(opts.Path, domain.ExportImage)
	if err != nil {
		return nil, err
	}
	if err := e.writer.Check(path, opts.Overwrite); err != nil {
		return nil, err
	}

	e.progress.Start("Exporting image", imageStages)
	defer func() { e.progress.Complete(err == nil) }()

	e.progress.Step("Rendering HTML")
	page, err := e.renderPage(ctx, text, filepath.Base(path))
	if err != nil {
		e.logger.Errorf("image export to %s failed: %v", path, err)
		return nil, err
	}
	defer func() {
		if rmErr := os.Remove(page); rmErr != nil && !os.IsNotExist(rmErr) {
			e.logger.Errorf("failed to remove temporary page %s: %v", page, rmErr)
		}
	}()

	e.progress.Step("Starting browser")
	png, err := e.capture(ctx, page)
	if err != nil {
		e.logger.Errorf("image export to %s failed: %v", path, err)
		return nil, err
	}

	e.progress.Step("Writing image")
	if err := e.writer.Write(ctx, path, png, opts.Overwrite); err != nil {
		e.logger.Errorf("image export to %s failed: %v", path, err)
		return nil, err
	}
	e.logger.Infof("exported image to %s (%d bytes)", path, len(png))

	if e.open != nil {
		if openErr := e.open(path); openErr != nil {
			e.logger.Errorf("failed to open %s: %v", path, openErr)
		}
	}
	return &domain.ExportArtifact{Kind: domain.ExportImage, Path: path, Bytes: len(png)}, nil
}

// renderPage writes the highlighted page to a temporary file
func (e *ImageExporter) renderPage(ctx context.Context, text, title string) (string, error) {
	lines, err := highlight.Tokenize(ctx, text)
	if err != nil {
		return "", domain.NewExportError("failed to highlight code", err)
	}
	html, err := highlight.RenderHTML(lines, highlight.HTMLOptions{
		Theme:       e.theme,
		Title:       title,
		LineNumbers: e.lineNumbers,
		Width:       e.width,
	})
	if err != nil {
		return "", domain.NewExportError("failed to render code page", err)
	}

	file, err := os.CreateTemp(e.tempDir, "pyformat-*.html")
	if err != nil {
		return "", domain.NewExportError("failed to create temporary page", err)
	}
	if _, err := file.WriteString(html); err != nil {
		file.Close()
		os.Remove(file.Name())
		return "", domain.NewExportError("failed to write temporary page", err)
	}
	if err := file.Close(); err != nil {
		os.Remove(file.Name())
		return "", domain.NewExportError("failed to write temporary page", err)
	}
	return file.Name(), nil
}

// capture acquires a browser session, screenshots the page and releases the
// session before returning.
func (e *ImageExporter) capture(ctx context.Context, page string) (png []byte, err error) {
	ctx, cancel := context.WithTimeout(ctx, e.timeout)
	defer cancel()

	session, err := e.browser.Launch(ctx)
	if err != nil {
		if domain.ErrorCode(err) != "" {
			return nil, err
		}
		return nil, domain.NewResourceError("failed to start headless browser", err)
	}
	defer func() {
		if closeErr := session.Close(); closeErr != nil {
			e.logger.Errorf("failed to close headless browser: %v", closeErr)
		}
	}()
	defer func() {
		if r := recover(); r != nil {
			png = nil
			err = domain.NewResourceError("headless browser failed", fmt.Errorf("%v", r))
		}
	}()

	abs, err := filepath.Abs(page)
	if err != nil {
		return nil, domain.NewExportError("invalid temporary page path", err)
	}
	pageURL := (&url.URL{Scheme: "file", Path: filepath.ToSlash(abs)}).String()

	e.progress.Step("Capturing screenshot")
	png, err = session.Capture(ctx, pageURL, "#"+highlight.CodeElementID)
	if err != nil {
		return nil, domain.NewExportError(fmt.Sprintf("failed to capture %s", pageURL), err)
	}
	if len(png) == 0 {
		return nil, domain.NewExportError("browser returned an empty screenshot", nil)
	}
	return png, nil
}

var _ domain.ExportBackend = (*ImageExporter)(nil)
