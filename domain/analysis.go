package domain

import (
	"context"
	"fmt"
)

// SymbolKind classifies an unused symbol
type SymbolKind string

const (
	SymbolVariable SymbolKind = "variable"
	SymbolFunction SymbolKind = "function"
	SymbolClass    SymbolKind = "class"
	SymbolImport   SymbolKind = "import"
)

// UnitComplexity is the cyclomatic complexity of one function, method or
// module body.
type UnitComplexity struct {
	Name       string `json:"name" yaml:"name"`
	Line       int    `json:"line" yaml:"line"`
	Complexity int    `json:"complexity" yaml:"complexity"`
	RiskLevel  string `json:"risk_level" yaml:"risk_level"`
}

// UnusedSymbol is a binding that is never read
type UnusedSymbol struct {
	Name  string     `json:"name" yaml:"name"`
	Kind  SymbolKind `json:"kind" yaml:"kind"`
	Line  int        `json:"line" yaml:"line"`
	Scope string     `json:"scope" yaml:"scope"`
}

// AnalysisReport is the result of a lightweight static analysis pass
type AnalysisReport struct {
	Dependencies  []string         `json:"dependencies" yaml:"dependencies"`
	Complexity    int              `json:"complexity" yaml:"complexity"`
	Units         []UnitComplexity `json:"units" yaml:"units"`
	Unused        []UnusedSymbol   `json:"unused" yaml:"unused"`
	ClassCount    int              `json:"class_count" yaml:"class_count"`
	FunctionCount int              `json:"function_count" yaml:"function_count"`
	VariableCount int              `json:"variable_count" yaml:"variable_count"`
}

// UnusedOfKind returns the unused symbols of the given kind in report order
func (r *AnalysisReport) UnusedOfKind(kind SymbolKind) []UnusedSymbol {
	var out []UnusedSymbol
	for _, u := range r.Unused {
		if u.Kind == kind {
			out = append(out, u)
		}
	}
	return out
}

// SourceLocation points at a position in source text (1-based)
type SourceLocation struct {
	Line   int `json:"line" yaml:"line"`
	Column int `json:"column" yaml:"column"`
}

func (l SourceLocation) String() string {
	return fmt.Sprintf("line %d, column %d", l.Line, l.Column)
}

// SyntaxError describes source that could not be parsed
type SyntaxError struct {
	Location *SourceLocation
}

func (e *SyntaxError) Error() string {
	if e.Location == nil {
		return "syntax error"
	}
	return fmt.Sprintf("syntax error at %s", e.Location)
}

// AnalysisService is the adapter the session controller talks to
type AnalysisService interface {
	Analyze(ctx context.Context, source string) (*AnalysisReport, error)
}

// FileAnalysis pairs a report with the file it was computed for
type FileAnalysis struct {
	Path   string          `json:"path" yaml:"path"`
	Report *AnalysisReport `json:"report,omitempty" yaml:"report,omitempty"`
	Error  string          `json:"error,omitempty" yaml:"error,omitempty"`
}
