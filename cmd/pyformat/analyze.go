package main

import (
	"github.com/ludo-technologies/pyformat/app"
	"github.com/ludo-technologies/pyformat/domain"
	"github.com/ludo-technologies/pyformat/service"
	"github.com/spf13/cobra"
)

// AnalyzeCommand reports dependencies, complexity and unused code
type AnalyzeCommand struct {
	configFlags

	format    string
	recursive bool
	include   []string
	exclude   []string
}

// NewAnalyzeCommand creates a new analyze command
func NewAnalyzeCommand() *AnalyzeCommand {
	return &AnalyzeCommand{
		format:    string(domain.OutputFormatText),
		recursive: true,
	}
}

// CreateCobraCommand creates the cobra command for batch analysis
func (a *AnalyzeCommand) CreateCobraCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "analyze [paths...]",
		Short: "Analyze Python files",
		Long: `Analyze Python files or standard input.

The report lists imported modules, the cyclomatic complexity of every
function, unused variables, functions, classes and imports, and the number of
classes, functions and variables.

Examples:
  # Analyze code from standard input
  pyformat analyze < script.py

  # Analyze a project as JSON
  pyformat analyze --format json src/`,
		Args:          cobra.ArbitraryArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          a.runAnalyze,
	}

	flags := cmd.Flags()
	a.register(flags)
	flags.StringVarP(&a.format, "format", "f", string(domain.OutputFormatText), "Output format: text, json, yaml")
	flags.BoolVarP(&a.recursive, "recursive", "r", true, "Descend into subdirectories")
	flags.StringSliceVar(&a.include, "include", nil, "Include patterns, replaces analysis.include_patterns")
	flags.StringSliceVar(&a.exclude, "exclude", nil, "Exclude patterns, replaces analysis.exclude_patterns")

	return cmd
}

// runAnalyze executes the batch analysis
func (a *AnalyzeCommand) runAnalyze(cmd *cobra.Command, args []string) error {
	cfg, err := a.load(cmd)
	if err != nil {
		reportError(cmd, err)
		return &exitError{code: 2, err: err}
	}
	logger := openLogger(cmd, cfg.Logging)
	defer logger.Close()

	builder := app.NewAnalyzeUseCaseBuilder().
		WithAnalysis(service.NewAnalysisServiceFromConfig(cfg.Analysis, logger)).
		WithFileReader(service.NewFileReader()).
		WithFormatter(service.NewReportFormatter()).
		WithLogger(logger)
	if len(args) > 0 && service.IsInteractiveEnvironment() {
		builder.WithProgress(service.NewProgressManager())
	}
	useCase, err := builder.Build()
	if err != nil {
		return err
	}

	failed, err := useCase.Execute(cmd.Context(), domain.AnalyzeRequest{
		FileSelection: selection(args, a.recursive, pick(a.include, cfg.Analysis.IncludePatterns), pick(a.exclude, cfg.Analysis.ExcludePatterns)),
		Format:        domain.OutputFormat(a.format),
		Input:         cmd.InOrStdin(),
		Output:        cmd.OutOrStdout(),
	})
	if err != nil {
		reportError(cmd, err)
		return &exitError{code: 2, err: err}
	}
	if failed > 0 {
		return &exitError{code: 2}
	}
	return nil
}

// NewAnalyzeCmd creates and returns the analyze cobra command
func NewAnalyzeCmd() *cobra.Command {
	analyzeCommand := NewAnalyzeCommand()
	return analyzeCommand.CreateCobraCommand()
}
