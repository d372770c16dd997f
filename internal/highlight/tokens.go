// Package highlight classifies Python source into styled spans with the
// chroma Python lexer and renders them for the terminal (ANSI through
// lipgloss) and for the browser (HTML).
package highlight

import (
	"context"
	"fmt"
	"strings"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/lexers"
)

// Class is the syntactic role a span is colored by
type Class int

const (
	Plain Class = iota
	Keyword
	String
	Number
	Comment
	Function
	ClassName
	Builtin
	Operator
	Decorator
	Constant
)

var classNames = map[Class]string{
	Plain:     "plain",
	Keyword:   "keyword",
	String:    "string",
	Number:    "number",
	Comment:   "comment",
	Function:  "function",
	ClassName: "class",
	Builtin:   "builtin",
	Operator:  "operator",
	Decorator: "decorator",
	Constant:  "constant",
}

// String returns the CSS class name of c
func (c Class) String() string {
	return classNames[c]
}

// Span is a run of text sharing one class. Spans never contain a newline.
type Span struct {
	Text  string
	Class Class
}

// Line is one source line
type Line []Span

// pythonLexer merges consecutive tokens of one type into a single token
var pythonLexer = chroma.Coalesce(lexers.Get("python"))

// classFor maps a lexer token type onto the classes the themes color
func classFor(t chroma.TokenType) Class {
	switch t {
	case chroma.NameFunction, chroma.NameFunctionMagic:
		return Function
	case chroma.NameClass:
		return ClassName
	case chroma.NameDecorator:
		return Decorator
	case chroma.NameBuiltin, chroma.NameBuiltinPseudo, chroma.NameException:
		return Builtin
	case chroma.KeywordConstant:
		return Constant
	case chroma.OperatorWord:
		return Keyword
	}
	switch {
	case t.InCategory(chroma.Keyword):
		return Keyword
	case t.InCategory(chroma.Comment):
		return Comment
	case t.InSubCategory(chroma.LiteralString):
		return String
	case t.InSubCategory(chroma.LiteralNumber):
		return Number
	case t.InCategory(chroma.Operator):
		return Operator
	}
	return Plain
}

// Tokenize splits source into lines of classified spans. The lexer is
// regex based, so source with syntax errors is highlighted all the same.
func Tokenize(ctx context.Context, source string) (lines []Line, err error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	source = strings.ReplaceAll(source, "\r\n", "\n")

	it, err := pythonLexer.Tokenise(nil, source)
	if err != nil {
		return nil, fmt.Errorf("failed to tokenize source: %w", err)
	}
	// The iterator reports lexer failures by panicking
	defer func() {
		if r := recover(); r != nil {
			lines = nil
			err = fmt.Errorf("failed to tokenize source: %v", r)
		}
	}()

	var spans []Span
	remaining := len(source)
	for _, tok := range it.Tokens() {
		text := tok.Value
		// Some lexers append a final newline the source did not have
		if len(text) > remaining {
			text = text[:remaining]
		}
		remaining -= len(text)
		if text == "" {
			continue
		}
		class := classFor(tok.Type)
		if n := len(spans); n > 0 && spans[n-1].Class == class {
			spans[n-1].Text += text
			continue
		}
		spans = append(spans, Span{Text: text, Class: class})
	}
	return splitLines(source, spans), nil
}

// splitLines cuts spans at newlines
func splitLines(source string, spans []Span) []Line {
	lines := []Line{{}}
	for _, s := range spans {
		parts := strings.Split(s.Text, "\n")
		for i, part := range parts {
			if i > 0 {
				lines = append(lines, Line{})
			}
			if part != "" {
				last := len(lines) - 1
				lines[last] = append(lines[last], Span{Text: part, Class: s.Class})
			}
		}
	}
	// A trailing newline does not open another line
	if strings.HasSuffix(source, "\n") {
		lines = lines[:len(lines)-1]
	}
	return lines
}

// Text returns the unstyled text of a line
func (l Line) Text() string {
	var b strings.Builder
	for _, s := range l {
		b.WriteString(s.Text)
	}
	return b.String()
}
