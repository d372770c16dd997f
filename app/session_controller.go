package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"unicode"

	"github.com/ludo-technologies/pyformat/domain"
	"github.com/ludo-technologies/pyformat/internal/logging"
)

// StateObserver is notified of every state transition
type StateObserver func(from, to domain.SessionState)

// commandHandler runs one menu command. It reports whether the session ends.
type commandHandler func(ctx context.Context) (quit bool)

// SessionController drives the interactive session: it reads the source,
// formats it once and then dispatches single-keystroke commands against the
// formatted result until the user quits.
type SessionController struct {
	formatter domain.FormatterService
	analysis  domain.AnalysisService
	backends  map[domain.ExportKind]domain.ExportBackend
	input     domain.SessionInput
	view      domain.SessionView
	logger    *logging.Logger

	overwritePrompt bool
	autoReport      bool

	state     domain.SessionState
	result    *domain.FormattedResult
	observers []StateObserver
	commands  map[domain.Command]commandHandler
	menu      []domain.MenuEntry
}

// Subscribe registers an observer for state transitions
func (c *SessionController) Subscribe(o StateObserver) {
	c.observers = append(c.observers, o)
}

// State returns the current state
func (c *SessionController) State() domain.SessionState {
	return c.state
}

// Result returns the active formatted result, nil before formatting succeeds
func (c *SessionController) Result() *domain.FormattedResult {
	return c.result
}

func (c *SessionController) setState(to domain.SessionState) {
	from := c.state
	c.state = to
	c.logger.Debugf("session state %s -> %s", from, to)
	for _, o := range c.observers {
		o(from, to)
	}
}

func (c *SessionController) registerCommands() {
	c.menu = []domain.MenuEntry{
		{Key: domain.CmdCopy, Description: "to copy the formatted code"},
		{Key: domain.CmdSave, Description: "to save the code to a file"},
		{Key: domain.CmdExportMenu, Description: "to export the code to an image or Word"},
		{Key: domain.CmdImage, Description: "to export the code to an image"},
		{Key: domain.CmdWord, Description: "to export the code to a Word file"},
		{Key: domain.CmdAnalyze, Description: "to analyze the code"},
		{Key: domain.CmdQuit, Description: "to quit"},
	}
	c.commands = map[domain.Command]commandHandler{
		domain.CmdCopy:       c.copyToClipboard,
		domain.CmdSave:       c.save,
		domain.CmdExportMenu: c.exportMenu,
		domain.CmdImage:      c.exportImage,
		domain.CmdWord:       c.exportWord,
		domain.CmdAnalyze:    c.analyze,
		domain.CmdQuit:       func(context.Context) bool { return true },
	}
}

// Run executes the session. It returns a FORMAT_ERROR when the source cannot
// be formatted and nil when the user quits.
func (c *SessionController) Run(ctx context.Context) error {
	c.setState(domain.StateAwaitingSource)
	c.view.SourcePrompt()
	source, err := c.input.ReadSource(ctx)
	if err != nil && !errors.Is(err, io.EOF) {
		c.logger.Errorf("failed to read source: %v", err)
		c.setState(domain.StateTerminated)
		return domain.NewInvalidInputError("failed to read source", err)
	}

	c.setState(domain.StateFormatting)
	result, err := c.formatter.Format(ctx, source)
	if err != nil {
		c.setState(domain.StateFormattedError)
		c.logger.Errorf("error formatting code: %v", err)
		c.view.Error(fmt.Sprintf("Error: %v", err))
		c.setState(domain.StateTerminated)
		if !domain.IsFormatError(err) {
			err = domain.NewFormatError("formatting failed", err)
		}
		return err
	}

	c.result = result
	c.setState(domain.StateFormattedOK)
	c.view.ShowFormatted(result)
	if c.autoReport {
		c.runAnalysis(ctx)
	}

	for {
		c.setState(domain.StateAwaitingCommand)
		c.view.ShowMenu(c.menu)

		key, err := c.input.ReadKey(ctx)
		if err != nil {
			c.setState(domain.StateTerminated)
			if ctxErr := ctx.Err(); ctxErr != nil {
				return ctxErr
			}
			if !errors.Is(err, io.EOF) {
				c.logger.Errorf("failed to read command: %v", err)
			}
			return nil
		}

		handler, ok := c.commands[domain.Command(unicode.ToLower(key))]
		if !ok {
			c.logger.Debugf("ignoring unknown command %q", key)
			continue
		}
		if handler(ctx) {
			c.setState(domain.StateTerminated)
			return nil
		}
	}
}

func (c *SessionController) copyToClipboard(ctx context.Context) bool {
	c.export(ctx, domain.ExportClipboard, "")
	return false
}

// save asks for a target format and a filename
func (c *SessionController) save(ctx context.Context) bool {
	kind, quit := c.chooseKind(ctx, "Save as:", []kindChoice{
		{domain.MenuEntry{Key: 't', Description: "plain text"}, domain.ExportText},
		{domain.MenuEntry{Key: 'w', Description: "Word document"}, domain.ExportDocument},
		{domain.MenuEntry{Key: 'm', Description: "Markdown document"}, domain.ExportMarkdown},
	})
	if quit || kind == "" {
		return quit
	}
	return c.exportWithFilename(ctx, kind)
}

// exportMenu is the image / Word submenu
func (c *SessionController) exportMenu(ctx context.Context) bool {
	kind, quit := c.chooseKind(ctx, "Export to:", []kindChoice{
		{domain.MenuEntry{Key: 'i', Description: "image"}, domain.ExportImage},
		{domain.MenuEntry{Key: 'w', Description: "Word file"}, domain.ExportDocument},
	})
	if quit || kind == "" {
		return quit
	}
	return c.exportWithFilename(ctx, kind)
}

func (c *SessionController) exportImage(ctx context.Context) bool {
	return c.exportWithFilename(ctx, domain.ExportImage)
}

func (c *SessionController) exportWord(ctx context.Context) bool {
	return c.exportWithFilename(ctx, domain.ExportDocument)
}

func (c *SessionController) analyze(ctx context.Context) bool {
	c.runAnalysis(ctx)
	return false
}

// kindChoice binds a submenu key to a backend
type kindChoice struct {
	entry domain.MenuEntry
	kind  domain.ExportKind
}

// chooseKind shows a submenu and returns the chosen backend, or "" for an
// invalid choice. quit is set when input ended.
func (c *SessionController) chooseKind(ctx context.Context, title string, choices []kindChoice) (domain.ExportKind, bool) {
	entries := make([]domain.MenuEntry, len(choices))
	for i, ch := range choices {
		entries[i] = ch.entry
	}
	c.view.ShowSubmenu(title, entries)

	key, err := c.input.ReadKey(ctx)
	if err != nil {
		return "", true
	}
	for _, ch := range choices {
		if domain.Command(unicode.ToLower(key)) == ch.entry.Key {
			return ch.kind, false
		}
	}
	c.logger.Errorf("invalid file format choice: %q", key)
	c.view.Error("Invalid choice.")
	return "", false
}

func (c *SessionController) exportWithFilename(ctx context.Context, kind domain.ExportKind) bool {
	c.view.Prompt(fmt.Sprintf("Enter the %s filename (e.g., code%s):", kind.Label(), kind.Extension()))
	path, err := c.input.ReadLine(ctx)
	if err != nil {
		return true
	}
	c.export(ctx, kind, path)
	return false
}

// export runs one backend against the active result. Failures are logged
// and reported, never returned.
func (c *SessionController) export(ctx context.Context, kind domain.ExportKind, path string) {
	c.setState(domain.StateExporting)

	backend, ok := c.backends[kind]
	if !ok {
		c.logger.Errorf("operation=export kind=%s reason=no backend configured", kind)
		c.view.Error(fmt.Sprintf("Export to %s is not available", kind.Label()))
		return
	}

	opts := domain.ExportOptions{Path: path, Overwrite: !c.overwritePrompt}
	artifact, err := runBackend(ctx, backend, c.result.Text, opts)
	if errors.Is(err, domain.ErrArtifactExists) && c.overwritePrompt {
		if !c.confirm(ctx, "File already exists. Overwrite? (y/n)") {
			c.view.Info("Export cancelled.")
			return
		}
		opts.Overwrite = true
		artifact, err = runBackend(ctx, backend, c.result.Text, opts)
	}
	if err != nil {
		c.logger.Errorf("operation=export kind=%s path=%q reason=%v", kind, path, err)
		c.view.Error(fmt.Sprintf("Unable to export to %s: %v", kind.Label(), err))
		return
	}

	if artifact.Path == "" {
		c.view.Success(fmt.Sprintf("Code has been copied to the %s.", kind.Label()))
		return
	}
	c.view.Success(fmt.Sprintf("Code has been exported to %s %s", kind.Label(), artifact.Path))
}

// runBackend turns a panicking backend into an export error so one broken
// export cannot end the session.
func runBackend(ctx context.Context, backend domain.ExportBackend, text string, opts domain.ExportOptions) (artifact *domain.ExportArtifact, err error) {
	defer func() {
		if r := recover(); r != nil {
			artifact = nil
			err = domain.NewExportError(fmt.Sprintf("%s export failed", backend.Kind().Label()), fmt.Errorf("%v", r))
		}
	}()
	return backend.Export(ctx, text, opts)
}

func (c *SessionController) confirm(ctx context.Context, question string) bool {
	c.view.Prompt(question)
	key, err := c.input.ReadKey(ctx)
	if err != nil {
		return false
	}
	return unicode.ToLower(key) == 'y'
}

func (c *SessionController) runAnalysis(ctx context.Context) {
	c.setState(domain.StateAnalyzing)
	report, err := c.analysis.Analyze(ctx, c.result.Text)
	if err != nil {
		c.logger.Errorf("operation=analyze reason=%v", err)
		c.view.Error(fmt.Sprintf("Unable to analyze code: %v", err))
		return
	}
	c.view.ShowReport(report)
}
