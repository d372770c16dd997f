package highlight

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// ANSIOptions controls terminal rendering
type ANSIOptions struct {
	Theme       *Theme
	LineNumbers bool
	// Renderer decides the color profile. Nil uses the lipgloss default
	// renderer bound to stdout.
	Renderer *lipgloss.Renderer
}

// RenderANSI renders lines with terminal colors. The result has no trailing newline.
func RenderANSI(lines []Line, opts ANSIOptions) string {
	theme := opts.Theme
	if theme == nil {
		theme = DefaultTheme()
	}
	newStyle := lipgloss.NewStyle
	if opts.Renderer != nil {
		newStyle = opts.Renderer.NewStyle
	}

	styles := make(map[Class]lipgloss.Style)
	for c := range classNames {
		style := newStyle()
		if c != Plain {
			style = style.Foreground(theme.Color(c))
		}
		if c == Keyword || c == ClassName {
			style = style.Bold(true)
		}
		if c == Comment {
			style = style.Italic(true)
		}
		styles[c] = style
	}
	gutter := newStyle().Foreground(theme.Gutter)
	width := len(fmt.Sprint(len(lines)))

	out := make([]string, len(lines))
	for i, line := range lines {
		var b strings.Builder
		if opts.LineNumbers {
			b.WriteString(gutter.Render(fmt.Sprintf("%*d │ ", width, i+1)))
		}
		for _, span := range line {
			b.WriteString(styles[span.Class].Render(span.Text))
		}
		out[i] = b.String()
	}
	return strings.Join(out, "\n")
}

// RenderPlain renders lines without styling, optionally numbered
func RenderPlain(lines []Line, lineNumbers bool) string {
	width := len(fmt.Sprint(len(lines)))
	out := make([]string, len(lines))
	for i, line := range lines {
		if lineNumbers {
			out[i] = fmt.Sprintf("%*d │ %s", width, i+1, line.Text())
		} else {
			out[i] = line.Text()
		}
	}
	return strings.Join(out, "\n")
}
