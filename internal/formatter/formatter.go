// Package formatter implements the builtin Python formatting engine.
//
// The engine re-spaces tokens on every line using the tree-sitter Python
// grammar and normalizes the whitespace between lines. Indentation and line
// breaks chosen by the author are kept; lines that belong to a token spanning
// several lines (triple-quoted strings, backslash continuations) are copied
// verbatim.
package formatter

import (
	"context"
	"strings"

	"github.com/ludo-technologies/pyformat/internal/parser"
	sitter "github.com/smacker/go-tree-sitter"
)

// maxBlankLines is the longest run of blank lines kept in the output
const maxBlankLines = 2

// indentWidth is the number of spaces a leading tab expands to
const indentWidth = 4

// Formatter is the builtin formatting engine
type Formatter struct{}

// New creates a builtin formatter
func New() *Formatter {
	return &Formatter{}
}

// token is one leaf of the syntax tree
type token struct {
	text       string
	typ        string
	parentType string
	startCol   int
}

// sourceLine is a physical line of the input and the tokens starting on it
type sourceLine struct {
	text   string
	tokens []token
	raw    bool
}

// Format returns source with normalized spacing. Source with syntax errors
// is rejected with a *domain.SyntaxError.
func (f *Formatter) Format(ctx context.Context, source string) (string, error) {
	source = strings.ReplaceAll(source, "\r\n", "\n")

	result, err := parser.New().Parse(ctx, []byte(source))
	if err != nil {
		return "", err
	}

	lines := splitLines(source)
	collectTokens(result.RootNode, result.SourceCode, lines)

	var out []string
	blank := 0
	for _, line := range lines {
		if line.raw {
			blank = 0
			out = append(out, line.text)
			continue
		}
		if len(line.tokens) == 0 {
			blank++
			if blank > maxBlankLines || len(out) == 0 {
				continue
			}
			out = append(out, "")
			continue
		}
		blank = 0
		out = append(out, expandIndent(leadingWhitespace(line.text))+joinTokens(line.tokens))
	}

	for len(out) > 0 && out[len(out)-1] == "" {
		out = out[:len(out)-1]
	}
	if len(out) == 0 {
		return "", nil
	}
	return strings.Join(out, "\n") + "\n", nil
}

func splitLines(source string) []sourceLine {
	texts := strings.Split(source, "\n")
	lines := make([]sourceLine, len(texts))
	for i, t := range texts {
		lines[i] = sourceLine{text: t}
	}
	return lines
}

// collectTokens distributes the leaves of the tree over the lines they start
// on. Tokens spanning several lines mark every line they touch as raw.
func collectTokens(root *sitter.Node, src []byte, lines []sourceLine) {
	_ = parser.WalkTree(root, func(n *sitter.Node) error {
		atomic := n.Type() == "string" || n.Type() == "comment"
		if !atomic && n.ChildCount() > 0 {
			return nil
		}
		if n.StartByte() == n.EndByte() {
			return parser.SkipChildren
		}

		start, end := n.StartPoint(), n.EndPoint()
		if start.Row != end.Row {
			for row := start.Row; row <= end.Row && int(row) < len(lines); row++ {
				lines[row].raw = true
			}
			return parser.SkipChildren
		}
		if int(start.Row) < len(lines) {
			lines[start.Row].tokens = append(lines[start.Row].tokens, token{
				text:       n.Content(src),
				typ:        n.Type(),
				parentType: parser.ParentType(n),
				startCol:   int(start.Column),
			})
		}
		return parser.SkipChildren
	})
}

func leadingWhitespace(s string) string {
	return s[:len(s)-len(strings.TrimLeft(s, " \t\f"))]
}

func expandIndent(ws string) string {
	ws = strings.ReplaceAll(ws, "\f", "")
	return strings.ReplaceAll(ws, "\t", strings.Repeat(" ", indentWidth))
}

func joinTokens(tokens []token) string {
	var b strings.Builder
	for i, tok := range tokens {
		if i > 0 {
			prev := tokens[i-1]
			if tok.typ == "comment" {
				b.WriteString("  ")
			} else if needsSpace(prev, tok) {
				b.WriteByte(' ')
			}
		}
		if tok.typ == "comment" {
			b.WriteString(normalizeComment(tok.text))
		} else {
			b.WriteString(tok.text)
		}
	}
	return b.String()
}

// normalizeComment makes sure a comment starts with "# ". Shebangs, "#!"
// style pragmas and comment rulers ("####") are left alone.
func normalizeComment(c string) string {
	c = strings.TrimRight(c, " \t")
	if len(c) < 2 {
		return c
	}
	switch c[1] {
	case ' ', '!', '#', ':':
		return c
	}
	return "# " + c[1:]
}
