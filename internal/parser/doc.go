// Package parser provides Python code parsing capabilities using tree-sitter.
//
// This package wraps the tree-sitter Go bindings and exposes the concrete
// syntax tree directly. The formatter works on its leaves, the analyzer and
// the highlighter on its named nodes.
//
// Basic usage:
//
//	p := parser.New()
//	result, err := p.Parse(ctx, []byte("def hello(): pass"))
//	if err != nil {
//	    // *domain.SyntaxError for invalid source
//	}
//	_ = parser.WalkTree(result.RootNode, func(n *sitter.Node) error {
//	    return nil
//	})
package parser
