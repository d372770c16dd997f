package main

import (
	"fmt"

	"github.com/ludo-technologies/pyformat/app"
	"github.com/ludo-technologies/pyformat/domain"
	"github.com/ludo-technologies/pyformat/service"
	"github.com/spf13/cobra"
)

// FormatCommand formats files or standard input without the interactive session
type FormatCommand struct {
	configFlags

	write     bool
	check     bool
	recursive bool
	include   []string
	exclude   []string
}

// NewFormatCommand creates a new format command
func NewFormatCommand() *FormatCommand {
	return &FormatCommand{
		recursive: true,
	}
}

// CreateCobraCommand creates the cobra command for batch formatting
func (f *FormatCommand) CreateCobraCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "format [paths...]",
		Short: "Format Python files without the interactive menu",
		Long: `Format Python files or standard input.

Paths may be files, directories or glob patterns such as "src/**/*.py".
Without paths the code is read from standard input and the formatted code
is written to standard output.

Exit codes:
  0: Success, or nothing to change with --check
  1: Files would be reformatted (--check)
  2: A file could not be formatted

Examples:
  # Print the formatted code
  pyformat format < script.py

  # Rewrite files in place
  pyformat format --write src/

  # Fail in CI when a file is not formatted
  pyformat format --check .`,
		Args:          cobra.ArbitraryArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          f.runFormat,
	}

	flags := cmd.Flags()
	f.register(flags)
	flags.BoolVarP(&f.write, "write", "w", false, "Rewrite files in place")
	flags.BoolVar(&f.check, "check", false, "Report files that would change without writing them")
	flags.BoolVarP(&f.recursive, "recursive", "r", true, "Descend into subdirectories")
	flags.StringSliceVar(&f.include, "include", nil, "Include patterns, replaces analysis.include_patterns")
	flags.StringSliceVar(&f.exclude, "exclude", nil, "Exclude patterns, replaces analysis.exclude_patterns")

	return cmd
}

// runFormat executes the batch format
func (f *FormatCommand) runFormat(cmd *cobra.Command, args []string) error {
	cfg, err := f.load(cmd)
	if err != nil {
		reportError(cmd, err)
		return &exitError{code: 2, err: err}
	}
	logger := openLogger(cmd, cfg.Logging)
	defer logger.Close()

	formatter, err := service.NewFormatterServiceFromConfig(cfg.Formatter, logger)
	if err != nil {
		reportError(cmd, err)
		return &exitError{code: 2, err: err}
	}

	builder := app.NewFormatUseCaseBuilder().
		WithFormatter(formatter).
		WithFileReader(service.NewFileReader()).
		WithLogger(logger)
	if len(args) > 0 && service.IsInteractiveEnvironment() {
		builder.WithProgress(service.NewProgressManager())
	}
	useCase, err := builder.Build()
	if err != nil {
		return err
	}

	req := domain.FormatRequest{
		FileSelection: selection(args, f.recursive, pick(f.include, cfg.Analysis.IncludePatterns), pick(f.exclude, cfg.Analysis.ExcludePatterns)),
		Write:         f.write,
		Check:         f.check,
		Input:         cmd.InOrStdin(),
		Output:        cmd.OutOrStdout(),
	}

	summary, err := useCase.Execute(cmd.Context(), req)
	if err != nil {
		reportError(cmd, err)
		return &exitError{code: 2, err: err}
	}

	for _, failure := range summary.Failures {
		fmt.Fprintf(cmd.ErrOrStderr(), "error: cannot format %s: %s\n", failure.Path, failure.Error)
	}
	if len(args) > 0 && (f.write || f.check) {
		verb := "reformatted"
		if f.check {
			verb = "would be reformatted"
		}
		fmt.Fprintf(cmd.ErrOrStderr(), "%d of %d files %s, %d failed\n",
			len(summary.Changed), summary.Files, verb, len(summary.Failures))
	}

	switch {
	case len(summary.Failures) > 0:
		return &exitError{code: 2}
	case f.check && len(summary.Changed) > 0:
		return &exitError{code: 1}
	}
	return nil
}

// selection builds the file selection of a batch command
func selection(paths []string, recursive bool, include, exclude []string) domain.FileSelection {
	return domain.FileSelection{
		Paths:           paths,
		Recursive:       recursive,
		IncludePatterns: include,
		ExcludePatterns: exclude,
	}
}

// pick returns the flag value when one was given, the configured value otherwise
func pick(flagValue, configured []string) []string {
	if len(flagValue) > 0 {
		return flagValue
	}
	return configured
}

// NewFormatCmd creates and returns the format cobra command
func NewFormatCmd() *cobra.Command {
	formatCommand := NewFormatCommand()
	return formatCommand.CreateCobraCommand()
}
