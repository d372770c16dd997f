package highlight

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func classOf(lines []Line, text string) (Class, bool) {
	for _, line := range lines {
		for _, span := range line {
			if span.Text == text {
				return span.Class, true
			}
		}
	}
	return Plain, false
}

func TestTokenize_Classes(t *testing.T) {
	source := `@cache
def greet(name):
    # say hello
    return print("hi", len(name), 42, None)

class Greeter:
    pass
`
	lines, err := Tokenize(context.Background(), source)
	require.NoError(t, err)
	require.Len(t, lines, 7)

	tests := []struct {
		text string
		want Class
	}{
		{"def", Keyword},
		{"greet", Function},
		{"# say hello", Comment},
		{"return", Keyword},
		{"print", Builtin},
		{`"hi"`, String},
		{"len", Builtin},
		{"42", Number},
		{"None", Constant},
		{"class", Keyword},
		{"Greeter", ClassName},
		{"@cache", Decorator},
	}
	for _, tt := range tests {
		got, ok := classOf(lines, tt.text)
		require.True(t, ok, "span %q not found", tt.text)
		assert.Equal(t, tt.want, got, tt.text)
	}
}

func TestTokenize_PreservesText(t *testing.T) {
	source := "x = 1  # one\n\ns = '''a\nb'''\n"
	lines, err := Tokenize(context.Background(), source)
	require.NoError(t, err)

	texts := make([]string, len(lines))
	for i, l := range lines {
		texts[i] = l.Text()
	}
	assert.Equal(t, source, strings.Join(texts, "\n")+"\n")
}

func TestTokenize_MissingFinalNewline(t *testing.T) {
	lines, err := Tokenize(context.Background(), "x = 'a'")
	require.NoError(t, err)
	require.Len(t, lines, 1)
	assert.Equal(t, "x = 'a'", lines[0].Text())
	assert.Equal(t, Span{Text: "'a'", Class: String}, lines[0][len(lines[0])-1])
}

func TestTokenize_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := Tokenize(ctx, "x = 1\n")
	assert.ErrorIs(t, err, context.Canceled)
}

func TestTokenize_InvalidSource(t *testing.T) {
	lines, err := Tokenize(context.Background(), "def broken(:\n")
	require.NoError(t, err)
	assert.Equal(t, "def broken(:", lines[0].Text())
}

func TestRenderPlain(t *testing.T) {
	lines, err := Tokenize(context.Background(), "a = 1\nb = 2\n")
	require.NoError(t, err)

	assert.Equal(t, "a = 1\nb = 2", RenderPlain(lines, false))
	assert.Equal(t, "1 │ a = 1\n2 │ b = 2", RenderPlain(lines, true))
}

func TestRenderANSI_NoColorProfileKeepsText(t *testing.T) {
	lines, err := Tokenize(context.Background(), "if x:\n    pass\n")
	require.NoError(t, err)

	// A renderer bound to a buffer detects no color support
	renderer := lipgloss.NewRenderer(&bytes.Buffer{})
	out := RenderANSI(lines, ANSIOptions{Renderer: renderer})
	assert.Equal(t, "if x:\n    pass", out)
}

func TestRenderHTML(t *testing.T) {
	lines, err := Tokenize(context.Background(), "s = '<b>'\n")
	require.NoError(t, err)

	theme, ok := LookupTheme("monokai")
	require.True(t, ok)

	out, err := RenderHTML(lines, HTMLOptions{Theme: theme, Title: "demo.py", LineNumbers: true, Width: 800})
	require.NoError(t, err)

	assert.Contains(t, out, `id="code"`)
	assert.Contains(t, out, "<title>demo.py</title>")
	assert.Contains(t, out, `<span class="string">&#39;&lt;b&gt;&#39;</span>`)
	assert.Contains(t, out, `<span class="ln">1</span>`)
	assert.Contains(t, out, "background:#272822")
	assert.Contains(t, out, "min-width:800px")
	assert.NotContains(t, out, "<b>'")
}

func TestThemes(t *testing.T) {
	assert.Equal(t, "dracula", DefaultTheme().Name)
	assert.Equal(t, []string{"dracula", "github-light", "monokai"}, ThemeNames())

	_, ok := LookupTheme("missing")
	assert.False(t, ok)

	assert.Equal(t, DefaultTheme().Foreground, DefaultTheme().Color(Plain))
}
