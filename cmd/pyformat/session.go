package main

import (
	"io"
	"os"
	"strings"

	"github.com/ludo-technologies/pyformat/app"
	"github.com/ludo-technologies/pyformat/domain"
	"github.com/ludo-technologies/pyformat/internal/config"
	"github.com/ludo-technologies/pyformat/internal/highlight"
	"github.com/ludo-technologies/pyformat/internal/logging"
	"github.com/ludo-technologies/pyformat/service"
	"github.com/spf13/cobra"
)

// SessionCommand runs the interactive format-then-act session
type SessionCommand struct {
	configFlags
}

// NewSessionCommand creates a new session command
func NewSessionCommand() *SessionCommand {
	return &SessionCommand{}
}

// CreateCobraCommand creates the root cobra command
func (s *SessionCommand) CreateCobraCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "pyformat",
		Short: "Format Python code and export it",
		Long: `pyformat reads Python code from standard input until end-of-input
(Ctrl+D), formats it and shows the result side by side with the original.

Afterwards single keystrokes act on the formatted code:
  c  copy to the clipboard
  s  save as plain text, Word or Markdown
  p  export as an image or a Word document
  i  export as an image
  w  export as a Word document
  a  show the analysis report
  q  quit

Examples:
  # Paste code, then press Ctrl+D
  pyformat

  # Format a file and pick an action
  pyformat < script.py

  # Use black and show the analysis report right away
  pyformat --engine black --analyze < script.py`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          s.runSession,
	}

	flags := cmd.Flags()
	s.register(flags)
	flags.StringVarP(&s.overrides.OutputDir, config.FlagOutputDir, "o", "", "Directory relative export paths are resolved in")
	flags.StringVar(&s.overrides.Theme, config.FlagTheme, "", "Highlight theme: "+strings.Join(highlight.ThemeNames(), ", "))
	flags.BoolVar(&s.overrides.LineNumbers, config.FlagLineNumbers, false, "Show line numbers")
	flags.BoolVar(&s.overrides.NoColor, config.FlagNoColor, false, "Disable colored output")
	flags.BoolVar(&s.overrides.AutoReport, config.FlagAnalyze, false, "Show the analysis report after formatting")
	flags.StringVar(&s.overrides.ChromePath, config.FlagChromePath, "", "Chrome or Chromium executable used for image export")

	return cmd
}

// runSession wires the services and runs the session until quit
func (s *SessionCommand) runSession(cmd *cobra.Command, args []string) error {
	cfg, err := s.load(cmd)
	if err != nil {
		reportError(cmd, err)
		return &exitError{code: 2, err: err}
	}

	logger := openLogger(cmd, cfg.Logging)
	defer logger.Close()
	if cfg.Source != "" {
		logger.Debugf("configuration loaded from %s", cfg.Source)
	}

	keys, closeKeys := service.OpenKeyboard(os.Stdin)
	defer closeKeys()

	controller, err := buildSession(cfg, logger, cmd.InOrStdin(), keys, cmd.OutOrStdout())
	if err != nil {
		logger.Errorf("failed to start session: %v", err)
		reportError(cmd, err)
		return &exitError{code: 1, err: err}
	}

	if err := controller.Run(cmd.Context()); err != nil {
		logger.Errorf("session ended with error: %v", err)
		return &exitError{code: 1, err: err}
	}
	return nil
}

// buildSession assembles the controller, its console and every export backend
func buildSession(cfg *config.Config, logger *logging.Logger, source io.Reader, keys *os.File, out io.Writer) (*app.SessionController, error) {
	formatter, err := service.NewFormatterServiceFromConfig(cfg.Formatter, logger)
	if err != nil {
		return nil, err
	}

	theme, ok := highlight.LookupTheme(cfg.Display.Theme)
	if !ok {
		theme = highlight.DefaultTheme()
	}
	opts := service.ConsoleOptions{
		Source:       source,
		Out:          out,
		Color:        cfg.Display.Color,
		Theme:        theme,
		LineNumbers:  cfg.Display.LineNumbers,
		ShowOriginal: cfg.Display.ShowOriginal,
	}
	// A nil *os.File must not end up in the interface
	if keys != nil {
		opts.Keys = keys
	}
	console := service.NewConsole(opts)

	return app.NewSessionControllerBuilder().
		WithFormatter(formatter).
		WithAnalysis(service.NewAnalysisServiceFromConfig(cfg.Analysis, logger)).
		WithInput(console).
		WithView(console).
		WithLogger(logger).
		WithOverwritePrompt(cfg.Export.OverwritePrompt).
		WithAutoReport(cfg.Analysis.AutoReport).
		WithBackend(newBackends(cfg, logger, out)...).
		Build()
}

func newBackends(cfg *config.Config, logger *logging.Logger, terminal io.Writer) []domain.ExportBackend {
	writer := service.NewArtifactWriter(cfg.Export)

	var osc52 io.Writer
	if cfg.Clipboard.OSC52Fallback {
		osc52 = terminal
	}

	imageOpts := []service.ImageExporterOption{}
	if service.IsInteractiveEnvironment() {
		imageOpts = append(imageOpts, service.WithProgress(service.NewProgressManager()))
	}
	if cfg.Export.OpenAfterExport {
		imageOpts = append(imageOpts, service.WithOpener(service.OpenFile))
	}
	browser := service.NewChromeBrowser(cfg.Image.ChromePath, cfg.Image.Width)

	return []domain.ExportBackend{
		service.NewClipboardExporter(service.SystemClipboard{}, osc52, logger),
		service.NewTextExporter(writer, logger),
		service.NewMarkdownExporter(writer, logger),
		service.NewDocxExporter(writer, cfg.Document, logger),
		service.NewImageExporter(writer, browser, cfg.Image, logger, imageOpts...),
	}
}
