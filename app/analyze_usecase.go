package app

import (
	"context"
	"fmt"
	"io"

	"github.com/ludo-technologies/pyformat/domain"
	"github.com/ludo-technologies/pyformat/internal/logging"
)

// AnalyzeUseCase runs the static analysis over files or standard input
type AnalyzeUseCase struct {
	analysis   domain.AnalysisService
	fileReader domain.FileReader
	formatter  domain.ReportFormatter
	progress   domain.ProgressManager
	logger     *logging.Logger
}

// Execute analyzes every selected file and writes the reports. It returns the
// number of files that could not be analyzed.
func (uc *AnalyzeUseCase) Execute(ctx context.Context, req domain.AnalyzeRequest) (int, error) {
	if req.Output == nil {
		return 0, domain.NewInvalidInputError("output writer is required", nil)
	}
	format, err := domain.ParseOutputFormat(string(req.Format))
	if err != nil {
		return 0, err
	}

	if len(req.Paths) == 0 {
		return 0, uc.analyzeStdin(ctx, req.Input, format, req.Output)
	}

	files, err := uc.fileReader.CollectPythonFiles(req.Paths, req.Recursive, req.IncludePatterns, req.ExcludePatterns)
	if err != nil {
		return 0, err
	}
	if len(files) == 0 {
		return 0, domain.NewInvalidInputError("no Python files found in the specified paths", nil)
	}

	results := make([]domain.FileAnalysis, 0, len(files))
	failed := 0
	uc.progress.Start("Analyzing", len(files))
	for _, path := range files {
		if err := ctx.Err(); err != nil {
			uc.progress.Complete(false)
			return failed, err
		}
		uc.progress.Step(path)

		entry := domain.FileAnalysis{Path: path}
		content, err := uc.fileReader.ReadFile(path)
		if err == nil {
			entry.Report, err = uc.analysis.Analyze(ctx, string(content))
		}
		if err != nil {
			uc.logger.Errorf("failed to analyze %s: %v", path, err)
			entry.Error = err.Error()
			failed++
		}
		results = append(results, entry)
	}
	uc.progress.Complete(failed == 0)

	if err := uc.formatter.WriteFiles(results, format, req.Output); err != nil {
		return failed, domain.NewOutputError("failed to write output", err)
	}
	return failed, nil
}

func (uc *AnalyzeUseCase) analyzeStdin(ctx context.Context, input io.Reader, format domain.OutputFormat, output io.Writer) error {
	if input == nil {
		return domain.NewInvalidInputError("no paths given and no input available", nil)
	}
	data, err := io.ReadAll(input)
	if err != nil {
		return domain.NewInvalidInputError("failed to read standard input", err)
	}

	report, err := uc.analysis.Analyze(ctx, string(data))
	if err != nil {
		return err
	}
	if err := uc.formatter.Write(report, format, output); err != nil {
		return domain.NewOutputError("failed to write output", err)
	}
	return nil
}

// AnalyzeUseCaseBuilder provides a builder pattern for creating AnalyzeUseCase
type AnalyzeUseCaseBuilder struct {
	analysis   domain.AnalysisService
	fileReader domain.FileReader
	formatter  domain.ReportFormatter
	progress   domain.ProgressManager
	logger     *logging.Logger
}

// NewAnalyzeUseCaseBuilder creates a new builder
func NewAnalyzeUseCaseBuilder() *AnalyzeUseCaseBuilder {
	return &AnalyzeUseCaseBuilder{}
}

// WithAnalysis sets the analysis service
func (b *AnalyzeUseCaseBuilder) WithAnalysis(a domain.AnalysisService) *AnalyzeUseCaseBuilder {
	b.analysis = a
	return b
}

// WithFileReader sets the file reader
func (b *AnalyzeUseCaseBuilder) WithFileReader(r domain.FileReader) *AnalyzeUseCaseBuilder {
	b.fileReader = r
	return b
}

// WithFormatter sets the report formatter
func (b *AnalyzeUseCaseBuilder) WithFormatter(f domain.ReportFormatter) *AnalyzeUseCaseBuilder {
	b.formatter = f
	return b
}

// WithProgress sets the progress manager
func (b *AnalyzeUseCaseBuilder) WithProgress(p domain.ProgressManager) *AnalyzeUseCaseBuilder {
	b.progress = p
	return b
}

// WithLogger sets the logger
func (b *AnalyzeUseCaseBuilder) WithLogger(l *logging.Logger) *AnalyzeUseCaseBuilder {
	b.logger = l
	return b
}

// Build creates the AnalyzeUseCase with the configured dependencies
func (b *AnalyzeUseCaseBuilder) Build() (*AnalyzeUseCase, error) {
	if b.analysis == nil {
		return nil, fmt.Errorf("analysis service is required")
	}
	if b.fileReader == nil {
		return nil, fmt.Errorf("file reader is required")
	}
	if b.formatter == nil {
		return nil, fmt.Errorf("report formatter is required")
	}

	uc := &AnalyzeUseCase{
		analysis:   b.analysis,
		fileReader: b.fileReader,
		formatter:  b.formatter,
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
