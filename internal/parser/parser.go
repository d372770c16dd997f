package parser

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/ludo-technologies/pyformat/domain"
	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/python"
)

// Parser provides Python code parsing capabilities using tree-sitter
type Parser struct {
	parser *sitter.Parser
}

// New creates a new Parser instance with Python grammar
func New() *Parser {
	parser := sitter.NewParser()
	parser.SetLanguage(python.GetLanguage())
	return &Parser{
		parser: parser,
	}
}

// ParseResult represents the result of parsing Python code
type ParseResult struct {
	Tree       *sitter.Tree
	RootNode   *sitter.Node
	SourceCode []byte
}

// Parse parses Python source code and returns the tree.
// Source with syntax errors yields a *domain.SyntaxError carrying the
// location of the first error node.
func (p *Parser) Parse(ctx context.Context, source []byte) (*ParseResult, error) {
	result, err := p.ParseTolerant(ctx, source)
	if err != nil {
		return nil, err
	}

	if result.RootNode.HasError() {
		return nil, &domain.SyntaxError{Location: FirstErrorLocation(result.RootNode)}
	}

	return result, nil
}

// ParseTolerant parses source and returns the tree even when it contains
// syntax errors. Callers inspect RootNode.HasError themselves.
func (p *Parser) ParseTolerant(ctx context.Context, source []byte) (*ParseResult, error) {
	tree, err := p.parser.ParseCtx(ctx, nil, source)
	if err != nil {
		return nil, fmt.Errorf("failed to parse source: %w", err)
	}

	return &ParseResult{
		Tree:       tree,
		RootNode:   tree.RootNode(),
		SourceCode: source,
	}, nil
}

// ParseFile parses a Python file from a reader
func (p *Parser) ParseFile(ctx context.Context, reader io.Reader) (*ParseResult, error) {
	source, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("failed to read source: %w", err)
	}

	return p.Parse(ctx, source)
}

// WalkTree traverses the tree depth-first and calls visitor for each node.
// Returning SkipChildren from visitor prunes the subtree.
func WalkTree(node *sitter.Node, visitor func(*sitter.Node) error) error {
	if node == nil {
		return nil
	}
	if err := visitor(node); err != nil {
		if err == SkipChildren {
			return nil
		}
		return err
	}

	childCount := int(node.ChildCount())
	for i := 0; i < childCount; i++ {
		if err := WalkTree(node.Child(i), visitor); err != nil {
			return err
		}
	}

	return nil
}

// SkipChildren tells WalkTree not to descend into the current node
var SkipChildren = errors.New("skip children")

// FindNodes finds all nodes of a specific type in the tree
func FindNodes(node *sitter.Node, nodeType string) []*sitter.Node {
	var nodes []*sitter.Node

	_ = WalkTree(node, func(n *sitter.Node) error {
		if n.Type() == nodeType {
			nodes = append(nodes, n)
		}
		return nil
	})

	return nodes
}

// FirstErrorLocation returns the position of the first ERROR or MISSING node
func FirstErrorLocation(root *sitter.Node) *domain.SourceLocation {
	var loc *domain.SourceLocation

	_ = WalkTree(root, func(n *sitter.Node) error {
		if loc != nil {
			return SkipChildren
		}
		if n.IsError() || n.IsMissing() {
			pt := n.StartPoint()
			loc = &domain.SourceLocation{Line: int(pt.Row) + 1, Column: int(pt.Column) + 1}
			return SkipChildren
		}
		if !n.HasError() {
			return SkipChildren
		}
		return nil
	})

	if loc == nil && root != nil && root.HasError() {
		pt := root.StartPoint()
		loc = &domain.SourceLocation{Line: int(pt.Row) + 1, Column: int(pt.Column) + 1}
	}
	return loc
}

// Line returns the 1-based line a node starts on
func Line(node *sitter.Node) int {
	return int(node.StartPoint().Row) + 1
}

// FieldName returns the field name under which node hangs off its parent
func FieldName(node *sitter.Node) string {
	parent := node.Parent()
	if parent == nil {
		return ""
	}
	for i := 0; i < int(parent.ChildCount()); i++ {
		if SameNode(parent.Child(i), node) {
			return parent.FieldNameForChild(i)
		}
	}
	return ""
}

// SameNode reports whether a and b denote the same syntax node
func SameNode(a, b *sitter.Node) bool {
	if a == nil || b == nil {
		return a == b
	}
	return a.StartByte() == b.StartByte() && a.EndByte() == b.EndByte() && a.Type() == b.Type()
}

// ParentType returns the type of node's parent, or "" at the root
func ParentType(node *sitter.Node) string {
	if p := node.Parent(); p != nil {
		return p.Type()
	}
	return ""
}
