package app

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/ludo-technologies/pyformat/domain"
	"github.com/ludo-technologies/pyformat/internal/logging"
)

// FormatUseCase formats files or standard input without the interactive session
type FormatUseCase struct {
	formatter  domain.FormatterService
	fileReader domain.FileReader
	progress   domain.ProgressManager
	logger     *logging.Logger
}

// Execute runs the batch. Per-file failures are collected in the summary;
// the returned error is reserved for failures of the run itself.
func (uc *FormatUseCase) Execute(ctx context.Context, req domain.FormatRequest) (*domain.FormatSummary, error) {
	if req.Output == nil {
		return nil, domain.NewInvalidInputError("output writer is required", nil)
	}
	if req.Write && req.Check {
		return nil, domain.NewInvalidInputError("--write and --check cannot be combined", nil)
	}

	if len(req.Paths) == 0 {
		return uc.formatStdin(ctx, req)
	}

	files, err := uc.fileReader.CollectPythonFiles(req.Paths, req.Recursive, req.IncludePatterns, req.ExcludePatterns)
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, domain.NewInvalidInputError("no Python files found in the specified paths", nil)
	}

	summary := &domain.FormatSummary{Files: len(files), Changed: []string{}, Failures: []domain.FormatFailure{}}
	uc.progress.Start("Formatting", len(files))
	defer func() { uc.progress.Complete(len(summary.Failures) == 0) }()

	for _, path := range files {
		if err := ctx.Err(); err != nil {
			return summary, err
		}
		uc.progress.Step(path)

		changed, err := uc.formatFile(ctx, path, req)
		if err != nil {
			uc.logger.Errorf("failed to format %s: %v", path, err)
			summary.Failures = append(summary.Failures, domain.FormatFailure{Path: path, Error: err.Error()})
			continue
		}
		if changed {
			summary.Changed = append(summary.Changed, path)
		}
	}
	return summary, nil
}

func (uc *FormatUseCase) formatStdin(ctx context.Context, req domain.FormatRequest) (*domain.FormatSummary, error) {
	if req.Input == nil {
		return nil, domain.NewInvalidInputError("no paths given and no input available", nil)
	}
	data, err := io.ReadAll(req.Input)
	if err != nil {
		return nil, domain.NewInvalidInputError("failed to read standard input", err)
	}

	result, err := uc.formatter.Format(ctx, string(data))
	if err != nil {
		return nil, err
	}

	summary := &domain.FormatSummary{Files: 1, Changed: []string{}, Failures: []domain.FormatFailure{}}
	if result.Changed() {
		summary.Changed = append(summary.Changed, "-")
	}
	if !req.Check {
		if _, err := io.WriteString(req.Output, result.Text); err != nil {
			return nil, domain.NewOutputError("failed to write output", err)
		}
	}
	return summary, nil
}

// formatFile formats one file and reports whether its content changes
func (uc *FormatUseCase) formatFile(ctx context.Context, path string, req domain.FormatRequest) (bool, error) {
	content, err := uc.fileReader.ReadFile(path)
	if err != nil {
		return false, err
	}
	if strings.TrimSpace(string(content)) == "" {
		return false, nil
	}

	result, err := uc.formatter.Format(ctx, string(content))
	if err != nil {
		return false, err
	}
	changed := result.Changed()

	switch {
	case req.Check:
		if changed {
			fmt.Fprintf(req.Output, "would reformat %s\n", path)
		}
	case req.Write:
		if changed {
			info, err := os.Stat(path)
			if err != nil {
				return false, domain.NewFileNotFoundError(path, err)
			}
			if err := os.WriteFile(path, []byte(result.Text), info.Mode().Perm()); err != nil {
				return false, domain.NewOutputError(fmt.Sprintf("failed to write %s", path), err)
			}
			fmt.Fprintf(req.Output, "reformatted %s\n", path)
		}
	default:
		if _, err := io.WriteString(req.Output, result.Text); err != nil {
			return false, domain.NewOutputError("failed to write output", err)
		}
	}
	return changed, nil
}

// FormatUseCaseBuilder provides a builder pattern for creating FormatUseCase
type FormatUseCaseBuilder struct {
	formatter  domain.FormatterService
	fileReader domain.FileReader
	progress   domain.ProgressManager
	logger     *logging.Logger
}

// NewFormatUseCaseBuilder creates a new builder
func NewFormatUseCaseBuilder() *FormatUseCaseBuilder {
	return &FormatUseCaseBuilder{}
}

// WithFormatter sets the formatter service
func (b *FormatUseCaseBuilder) WithFormatter(f domain.FormatterService) *FormatUseCaseBuilder {
	b.formatter = f
	return b
}

// WithFileReader sets the file reader
func (b *FormatUseCaseBuilder) WithFileReader(r domain.FileReader) *FormatUseCaseBuilder {
	b.fileReader = r
	return b
}

// WithProgress sets the progress manager
func (b *FormatUseCaseBuilder) WithProgress(p domain.ProgressManager) *FormatUseCaseBuilder {
	b.progress = p
	return b
}

// WithLogger sets the logger
func (b *FormatUseCaseBuilder) WithLogger(l *logging.Logger) *FormatUseCaseBuilder {
	b.logger = l
	return b
}

// Build creates the FormatUseCase with the configured dependencies
func (b *FormatUseCaseBuilder) Build() (*FormatUseCase, error) {
	if b.formatter == nil {
		return nil, fmt.Errorf("formatter service is required")
	}
	if b.fileReader == nil {
		return nil, fmt.Errorf("file reader is required")
	}

	uc := &FormatUseCase{
		formatter:  b.formatter,
		fileReader: b.fileReader,
		progress:   b.progress,
		logger:     b.logger,
	}
	if uc.progress == nil {
		uc.progress = noOpProgress{}
	}
	if uc.logger == nil {
		uc.logger = logging.Nop()
	}
	return uc, nil
}

// noOpProgress discards progress updates
type noOpProgress struct{}

func (noOpProgress) Start(string, int)   {}
func (noOpProgress) Step(string)         {}
func (noOpProgress) Complete(bool)       {}
func (noOpProgress) IsInteractive() bool { return false }
