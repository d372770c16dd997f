package domain

import (
	"context"
	"strings"
	"time"
)

// FormatterEngine names a formatting backend
type FormatterEngine string

const (
	EngineBuiltin  FormatterEngine = "builtin"
	EngineAutopep8 FormatterEngine = "autopep8"
	EngineBlack    FormatterEngine = "black"
	EngineRuff     FormatterEngine = "ruff"
	EngineCommand  FormatterEngine = "command"
)

// IsValid reports whether e names a known engine
func (e FormatterEngine) IsValid() bool {
	switch e {
	case EngineBuiltin, EngineAutopep8, EngineBlack, EngineRuff, EngineCommand:
		return true
	}
	return false
}

// FormattedResult is the normalized text produced by a formatter together with
// the statistics shown after formatting.
type FormattedResult struct {
	Source      string          `json:"-" yaml:"-"`
	Text        string          `json:"text" yaml:"text"`
	Engine      FormatterEngine `json:"engine" yaml:"engine"`
	Duration    time.Duration   `json:"duration_ns" yaml:"duration_ns"`
	LinesBefore int             `json:"lines_before" yaml:"lines_before"`
	LinesAfter  int             `json:"lines_after" yaml:"lines_after"`
	Characters  int             `json:"characters" yaml:"characters"`
}

// Changed reports whether formatting altered the source
func (r *FormattedResult) Changed() bool {
	return r.Source != r.Text
}

// SourceFormatter turns raw source into normalized source
type SourceFormatter interface {
	Format(ctx context.Context, source string) (string, error)
}

// FormatterService is the adapter the session controller talks to
type FormatterService interface {
	Format(ctx context.Context, source string) (*FormattedResult, error)
}

// CountLines returns the number of lines in s, the way str.splitlines does:
// a trailing newline does not start a new line.
func CountLines(s string) int {
	if s == "" {
		return 0
	}
	n := strings.Count(s, "\n")
	if !strings.HasSuffix(s, "\n") {
		n++
	}
	return n
}
