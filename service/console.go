package service

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"unicode"

	"github.com/charmbracelet/lipgloss"
	"github.com/ludo-technologies/pyformat/domain"
	"github.com/ludo-technologies/pyformat/internal/highlight"
	"github.com/muesli/termenv"
	"golang.org/x/term"
)

// Keystrokes that end the session in raw mode
const (
	keyCtrlC = 3
	keyCtrlD = 4
)

// ConsoleOptions configures a Console
type ConsoleOptions struct {
	// Source supplies the code, read until end-of-input
	Source io.Reader
	// Keys supplies keystrokes and prompt answers. When it is a terminal,
	// keystrokes are read in raw mode. Otherwise every line is one answer
	// and a keystroke is the first non-blank character of a line.
	Keys io.Reader
	Out  io.Writer

	// Color is auto, always or never
	Color        string
	Theme        *highlight.Theme
	LineNumbers  bool
	ShowOriginal bool
}

// Console renders the session to a terminal and reads the user's input
type Console struct {
	source       io.Reader
	sourceTTY    bool
	keys         *bufio.Reader
	keyFile      *os.File
	out          io.Writer
	renderer     *lipgloss.Renderer
	theme        *highlight.Theme
	lineNumbers  bool
	showOriginal bool
	report       *ReportFormatterImpl
	styles       consoleStyles
}

type consoleStyles struct {
	original  lipgloss.Style
	formatted lipgloss.Style
	title     lipgloss.Style
	subtitle  lipgloss.Style
	label     lipgloss.Style
	value     lipgloss.Style
	key       lipgloss.Style
	prompt    lipgloss.Style
	success   lipgloss.Style
	failure   lipgloss.Style
	info      lipgloss.Style
	report    lipgloss.Style
}

// NewConsole creates a console
func NewConsole(opts ConsoleOptions) *Console {
	out := opts.Out
	if out == nil {
		out = os.Stdout
	}
	theme := opts.Theme
	if theme == nil {
		theme = highlight.DefaultTheme()
	}

	renderer := lipgloss.NewRenderer(out)
	switch opts.Color {
	case "always":
		renderer.SetColorProfile(termenv.TrueColor)
	case "never":
		renderer.SetColorProfile(termenv.Ascii)
	}

	c := &Console{
		source:       opts.Source,
		out:          out,
		renderer:     renderer,
		theme:        theme,
		lineNumbers:  opts.LineNumbers,
		showOriginal: opts.ShowOriginal,
		report:       NewReportFormatter(),
		styles:       newConsoleStyles(renderer),
	}
	if f, ok := opts.Source.(*os.File); ok {
		c.sourceTTY = term.IsTerminal(int(f.Fd()))
	}
	if opts.Keys != nil {
		c.keys = bufio.NewReader(opts.Keys)
		if f, ok := opts.Keys.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
			c.keyFile = f
		}
	}
	return c
}

func newConsoleStyles(r *lipgloss.Renderer) consoleStyles {
	box := r.NewStyle().BorderStyle(lipgloss.RoundedBorder()).Padding(0, 1)
	return consoleStyles{
		original:  box.BorderForeground(lipgloss.Color("#00afaf")),
		formatted: box.BorderForeground(lipgloss.Color("#5faf00")),
		title:     r.NewStyle().Bold(true).Foreground(lipgloss.Color("#00afaf")),
		subtitle:  r.NewStyle().Italic(true).Foreground(lipgloss.Color("#8a8a8a")),
		label:     r.NewStyle().Bold(true).Foreground(lipgloss.Color("#ff1493")),
		value:     r.NewStyle().Bold(true).Foreground(lipgloss.Color("#9acd32")),
		key:       r.NewStyle().Bold(true).Foreground(lipgloss.Color("#ffd700")),
		prompt:    r.NewStyle().Bold(true).Foreground(lipgloss.Color("#ffd700")),
		success:   r.NewStyle().Bold(true).Foreground(lipgloss.Color("#5faf00")),
		failure:   r.NewStyle().Bold(true).Foreground(lipgloss.Color("#d70000")),
		info:      r.NewStyle().Foreground(lipgloss.Color("#00afaf")),
		report:    box.BorderForeground(lipgloss.Color("#8a8a8a")),
	}
}

// OpenKeyboard returns the file keystrokes are read from. A terminal stdin
// is used directly. Redirected stdin falls back to the controlling terminal.
// The returned file is nil when neither is available.
func OpenKeyboard(stdin *os.File) (*os.File, func() error) {
	noop := func() error { return nil }
	if term.IsTerminal(int(stdin.Fd())) {
		return stdin, noop
	}
	tty, err := os.Open("/dev/tty")
	if err != nil {
		return nil, noop
	}
	return tty, tty.Close
}

// ReadSource implements domain.SessionInput
func (c *Console) ReadSource(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if c.source == nil {
		return "", io.EOF
	}
	data, err := io.ReadAll(c.source)
	if err != nil {
		return "", fmt.Errorf("failed to read source: %w", err)
	}
	return string(data), nil
}

// ReadKey implements domain.SessionInput
func (c *Console) ReadKey(ctx context.Context) (rune, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	if c.keys == nil {
		return 0, io.EOF
	}
	if c.keyFile != nil {
		return c.readRawKey()
	}

	for {
		line, err := c.keys.ReadString('\n')
		if trimmed := strings.TrimSpace(line); trimmed != "" {
			return []rune(trimmed)[0], nil
		}
		if err != nil {
			return 0, io.EOF
		}
	}
}

func (c *Console) readRawKey() (rune, error) {
	fd := int(c.keyFile.Fd())
	state, err := term.MakeRaw(fd)
	if err != nil {
		return 0, fmt.Errorf("failed to enter raw mode: %w", err)
	}
	defer term.Restore(fd, state)

	for {
		r, _, err := c.keys.ReadRune()
		if err != nil {
			return 0, io.EOF
		}
		switch {
		case r == keyCtrlC || r == keyCtrlD:
			return 0, io.EOF
		case unicode.IsSpace(r):
			continue
		}
		// Raw mode does not echo and needs an explicit carriage return
		fmt.Fprintf(c.out, "%c\r\n", r)
		return r, nil
	}
}

// ReadLine implements domain.SessionInput
func (c *Console) ReadLine(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if c.keys == nil {
		return "", io.EOF
	}
	line, err := c.keys.ReadString('\n')
	if err != nil && line == "" {
		return "", io.EOF
	}
	return strings.TrimRight(line, "\r\n"), nil
}

// SourcePrompt implements domain.SessionView
func (c *Console) SourcePrompt() {
	if !c.sourceTTY {
		return
	}
	c.println(c.styles.prompt.Render("Paste your Python code, then press Ctrl+D on an empty line:"))
}

// ShowFormatted implements domain.SessionView
func (c *Console) ShowFormatted(result *domain.FormattedResult) {
	if c.showOriginal {
		c.println(c.panel("Original Code", "", result.Source, c.styles.original))
	}
	c.println(c.panel("Formatted Code", "Press 'c' to copy code", result.Text, c.styles.formatted))

	c.println(c.stat("Lines of code before", result.LinesBefore))
	c.println(c.stat("Lines of code after", result.LinesAfter))
	c.println(c.stat("Characters in code", result.Characters))
	c.println(c.stat("Time taken to format code", fmt.Sprintf("%.2f seconds", result.Duration.Seconds())))
}

func (c *Console) stat(label string, value interface{}) string {
	return c.styles.label.Render(label+": ") + c.styles.value.Render(fmt.Sprint(value))
}

func (c *Console) panel(title, subtitle, code string, style lipgloss.Style) string {
	body := c.highlight(code)
	if w := c.width(); w > 4 {
		style = style.Width(w - 2)
	}
	out := c.styles.title.Render(title) + "\n" + style.Render(body)
	if subtitle != "" {
		out += "\n" + c.styles.subtitle.Render(subtitle)
	}
	return out
}

// highlight renders code with the theme, or plain when it cannot be tokenized
func (c *Console) highlight(code string) string {
	lines, err := highlight.Tokenize(context.Background(), code)
	if err != nil {
		return strings.TrimRight(code, "\n")
	}
	return highlight.RenderANSI(lines, highlight.ANSIOptions{
		Theme:       c.theme,
		LineNumbers: c.lineNumbers,
		Renderer:    c.renderer,
	})
}

func (c *Console) width() int {
	f, ok := c.out.(*os.File)
	if !ok || !term.IsTerminal(int(f.Fd())) {
		return 0
	}
	w, _, err := term.GetSize(int(f.Fd()))
	if err != nil {
		return 0
	}
	return w
}

// ShowMenu implements domain.SessionView
func (c *Console) ShowMenu(entries []domain.MenuEntry) {
	c.println(c.styles.prompt.Render("Press:"))
	c.printEntries(entries)
}

// ShowSubmenu implements domain.SessionView
func (c *Console) ShowSubmenu(title string, entries []domain.MenuEntry) {
	c.println(c.styles.prompt.Render(title))
	c.printEntries(entries)
}

func (c *Console) printEntries(entries []domain.MenuEntry) {
	for _, e := range entries {
		c.println("  " + c.styles.key.Render("'"+string(e.Key)+"'") + " " + e.Description)
	}
}

// Prompt implements domain.SessionView
func (c *Console) Prompt(message string) {
	fmt.Fprint(c.out, c.styles.prompt.Render(message)+" ")
}

// ShowReport implements domain.SessionView
func (c *Console) ShowReport(report *domain.AnalysisReport) {
	body := c.styles.title.Render("Analysis Report") + "\n\n" + strings.TrimRight(c.report.FormatText(report), "\n")
	c.println(c.styles.report.Render(body))
}

// Success implements domain.SessionView
func (c *Console) Success(message string) {
	c.println(c.styles.success.Render("✓ " + message))
}

// Error implements domain.SessionView
func (c *Console) Error(message string) {
	c.println(c.styles.failure.Render("✗ " + message))
}

// Info implements domain.SessionView
func (c *Console) Info(message string) {
	c.println(c.styles.info.Render(message))
}

// Writer implements domain.SessionView
func (c *Console) Writer() io.Writer {
	return c.out
}

func (c *Console) println(s string) {
	fmt.Fprintln(c.out, s)
}

var (
	_ domain.SessionInput = (*Console)(nil)
	_ domain.SessionView  = (*Console)(nil)
)
