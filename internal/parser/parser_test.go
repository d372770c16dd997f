package parser

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/ludo-technologies/pyformat/domain"
	sitter "github.com/smacker/go-tree-sitter"
)

func TestNew(t *testing.T) {
	parser := New()
	if parser == nil {
		t.Fatal("New() returned nil")
	}
	if parser.parser == nil {
		t.Fatal("parser field is nil")
	}
}

func TestParse(t *testing.T) {
	tests := []struct {
		name     string
		source   string
		wantErr  bool
		wantLine int
	}{
		{
			name: "simple function",
			source: `def hello():
    print("Hello, World!")`,
		},
		{
			name: "class definition",
			source: `class MyClass:
    def __init__(self):
        self.value = 42`,
		},
		{
			name:   "empty source",
			source: "",
		},
		{
			name:     "unclosed parameter list",
			source:   "def broken(:\n    pass\n",
			wantErr:  true,
			wantLine: 1,
		},
		{
			name:     "error on a later line",
			source:   "x = 1\ny = (2\n",
			wantErr:  true,
			wantLine: 2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := New().Parse(context.Background(), []byte(tt.source))
			if !tt.wantErr {
				if err != nil {
					t.Fatalf("Parse() error = %v", err)
				}
				if result.RootNode == nil || result.RootNode.Type() != "module" {
					t.Fatalf("expected module root node")
				}
				return
			}

			var syntaxErr *domain.SyntaxError
			if !errors.As(err, &syntaxErr) {
				t.Fatalf("expected *domain.SyntaxError, got %v", err)
			}
			if syntaxErr.Location == nil {
				t.Fatal("syntax error has no location")
			}
			if syntaxErr.Location.Line < tt.wantLine {
				t.Errorf("error line = %d, want >= %d", syntaxErr.Location.Line, tt.wantLine)
			}
		})
	}
}

func TestParseTolerant(t *testing.T) {
	result, err := New().ParseTolerant(context.Background(), []byte("def broken(:\n"))
	if err != nil {
		t.Fatalf("ParseTolerant() error = %v", err)
	}
	if !result.RootNode.HasError() {
		t.Error("expected tree to contain an error node")
	}
}

func TestParseFile(t *testing.T) {
	result, err := New().ParseFile(context.Background(), strings.NewReader("import os\n"))
	if err != nil {
		t.Fatalf("ParseFile() error = %v", err)
	}
	if got := len(FindNodes(result.RootNode, "import_statement")); got != 1 {
		t.Errorf("import statements = %d, want 1", got)
	}
}

func TestWalkTreeSkipChildren(t *testing.T) {
	result, err := New().Parse(context.Background(), []byte("def f():\n    x = 1\ny = 2\n"))
	if err != nil {
		t.Fatal(err)
	}

	var assignments int
	_ = WalkTree(result.RootNode, func(n *sitter.Node) error {
		if n.Type() == "function_definition" {
			return SkipChildren
		}
		if n.Type() == "assignment" {
			assignments++
		}
		return nil
	})
	if assignments != 1 {
		t.Errorf("assignments outside functions = %d, want 1", assignments)
	}
}

func TestFieldName(t *testing.T) {
	result, err := New().Parse(context.Background(), []byte("x = y\n"))
	if err != nil {
		t.Fatal(err)
	}

	assignment := FindNodes(result.RootNode, "assignment")[0]
	left := assignment.ChildByFieldName("left")
	right := assignment.ChildByFieldName("right")

	if got := FieldName(left); got != "left" {
		t.Errorf("FieldName(left) = %q", got)
	}
	if got := FieldName(right); got != "right" {
		t.Errorf("FieldName(right) = %q", got)
	}
	if got := ParentType(left); got != "assignment" {
		t.Errorf("ParentType(left) = %q", got)
	}
	if got := Line(right); got != 1 {
		t.Errorf("Line(right) = %d", got)
	}
	if FieldName(result.RootNode) != "" {
		t.Error("root node has no field name")
	}
}
