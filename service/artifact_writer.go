package service

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/ludo-technologies/pyformat/domain"
	"github.com/ludo-technologies/pyformat/internal/config"
)

// ArtifactWriter resolves export paths and writes artifacts to disk. It is
// shared by every file-writing backend.
type ArtifactWriter struct {
	outputDir string
	basename  string
}

// NewArtifactWriter creates an artifact writer for the export settings
func NewArtifactWriter(cfg config.ExportConfig) *ArtifactWriter {
	basename := cfg.DefaultBasename
	if basename == "" {
		basename = domain.DefaultExportBasename
	}
	outputDir := cfg.OutputDir
	if outputDir == "" {
		outputDir = "."
	}
	return &ArtifactWriter{outputDir: outputDir, basename: basename}
}

// Resolve returns the absolute target path for kind. An empty path selects
// the default basename. Relative paths are placed in the output directory,
// and the kind's extension is appended when the path has none.
func (w *ArtifactWriter) Resolve(path string, kind domain.ExportKind) (string, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		path = w.basename
	}
	if strings.HasPrefix(path, "~"+string(filepath.Separator)) {
		if home, err := os.UserHomeDir(); err == nil {
			path = filepath.Join(home, path[2:])
		}
	}
	if !filepath.IsAbs(path) {
		path = filepath.Join(w.outputDir, path)
	}
	if filepath.Ext(path) == "" {
		path += kind.Extension()
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		return "", domain.NewExportError(fmt.Sprintf("invalid path: %s", path), err)
	}
	return abs, nil
}

// Check fails with ErrArtifactExists when path exists and overwrite is off
func (w *ArtifactWriter) Check(path string, overwrite bool) error {
	if overwrite {
		return nil
	}
	if _, err := os.Stat(path); err == nil {
		return domain.NewExportError(fmt.Sprintf("file already exists: %s", path), domain.ErrArtifactExists)
	}
	return nil
}

// Write stores data at path, creating parent directories
func (w *ArtifactWriter) Write(ctx context.Context, path string, data []byte, overwrite bool) error {
	if err := ctx.Err(); err != nil {
		return domain.NewExportError("export cancelled", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return domain.NewExportError(fmt.Sprintf("failed to create directory for %s", path), err)
	}

	flags := os.O_WRONLY | os.O_CREATE | os.O_TRUNC
	if !overwrite {
		flags = os.O_WRONLY | os.O_CREATE | os.O_EXCL
	}
	file, err := os.OpenFile(path, flags, 0644)
	if err != nil {
		if errors.Is(err, os.ErrExist) {
			return domain.NewExportError(fmt.Sprintf("file already exists: %s", path), domain.ErrArtifactExists)
		}
		return domain.NewExportError(fmt.Sprintf("failed to create %s", path), err)
	}

	if _, err := file.Write(data); err != nil {
		file.Close()
		return domain.NewExportError(fmt.Sprintf("failed to write %s", path), err)
	}
	if err := file.Close(); err != nil {
		return domain.NewExportError(fmt.Sprintf("failed to write %s", path), err)
	}
	return nil
}
