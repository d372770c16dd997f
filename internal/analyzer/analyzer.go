// Package analyzer computes lightweight static metrics for a single Python
// module: imported modules, McCabe complexity per function, unused bindings
// and definition counts. All analysis works on the tree-sitter syntax tree.
package analyzer

import (
	"context"
	"strings"

	"github.com/ludo-technologies/pyformat/domain"
	"github.com/ludo-technologies/pyformat/internal/parser"
	sitter "github.com/smacker/go-tree-sitter"
)

// Analyzer produces an AnalysisReport for Python source
type Analyzer struct {
	lowThreshold    int
	mediumThreshold int
}

// Option configures an Analyzer
type Option func(*Analyzer)

// WithThresholds sets the upper complexity bounds of the low and medium risk levels
func WithThresholds(low, medium int) Option {
	return func(a *Analyzer) {
		if low > 0 {
			a.lowThreshold = low
		}
		if medium > a.lowThreshold {
			a.mediumThreshold = medium
		}
	}
}

// New creates an Analyzer with McCabe default thresholds
func New(opts ...Option) *Analyzer {
	a := &Analyzer{
		lowThreshold:    domain.DefaultComplexityLowThreshold,
		mediumThreshold: domain.DefaultComplexityMediumThreshold,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

func (a *Analyzer) riskLevel(complexity int) string {
	return domain.AssessRiskLevel(complexity, a.lowThreshold, a.mediumThreshold)
}

// moduleFacts is everything a single walk over the tree collects
type moduleFacts struct {
	refs        []reference
	functions   []*sitter.Node
	definitions []*sitter.Node
	classes     int
	scopes      map[uint32]*functionScope
	exported    map[string]bool
	imports     *importCollector
}

// Analyze parses source and computes its report. Source that does not parse
// yields a *domain.SyntaxError.
func (a *Analyzer) Analyze(ctx context.Context, source string) (*domain.AnalysisReport, error) {
	result, err := parser.New().Parse(ctx, []byte(source))
	if err != nil {
		return nil, err
	}
	root, src := result.RootNode, result.SourceCode

	facts, err := collectFacts(ctx, root, src)
	if err != nil {
		return nil, err
	}

	units := a.measureComplexity(root, src, facts.functions)

	var unused []domain.UnusedSymbol
	unused = append(unused, findUnusedVariables(facts.refs, facts.functions, facts.scopes, src)...)
	unused = append(unused, findUnusedDefinitions(facts.definitions, readsWithin(facts.refs, nil), facts.exported, src)...)
	unused = append(unused, findUnusedImports(facts.refs, facts.imports.bindings, facts.exported, src)...)
	sortUnused(unused)

	variables := 0
	for _, r := range facts.refs {
		if isStore(r.use) {
			variables++
		}
	}

	dependencies := facts.imports.modules
	if dependencies == nil {
		dependencies = []string{}
	}
	if unused == nil {
		unused = []domain.UnusedSymbol{}
	}

	return &domain.AnalysisReport{
		Dependencies:  dependencies,
		Complexity:    maxComplexity(units),
		Units:         units,
		Unused:        unused,
		ClassCount:    facts.classes,
		FunctionCount: len(facts.functions),
		VariableCount: variables,
	}, nil
}

func collectFacts(ctx context.Context, root *sitter.Node, src []byte) (*moduleFacts, error) {
	facts := &moduleFacts{
		scopes:   make(map[uint32]*functionScope),
		exported: make(map[string]bool),
		imports:  newImportCollector(src),
	}

	err := parser.WalkTree(root, func(n *sitter.Node) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		switch n.Type() {
		case "function_definition":
			facts.functions = append(facts.functions, n)
			facts.definitions = append(facts.definitions, n)
		case "class_definition":
			facts.classes++
			facts.definitions = append(facts.definitions, n)
		case "identifier":
			facts.refs = append(facts.refs, reference{
				name:  n.Content(src),
				node:  n,
				use:   classifyIdentifier(n),
				owner: scopeOwner(n),
			})
		case "global_statement", "nonlocal_statement":
			if scope := facts.functionScope(n); scope != nil {
				for i := 0; i < int(n.NamedChildCount()); i++ {
					if id := n.NamedChild(i); id.Type() == "identifier" {
						scope.declared[id.Content(src)] = true
					}
				}
			}
		case "call":
			if fn := n.ChildByFieldName("function"); fn != nil && fn.Type() == "identifier" && fn.Content(src) == "locals" {
				if scope := facts.functionScope(n); scope != nil {
					scope.callsLocal = true
				}
			}
		case "assignment", "augmented_assignment":
			collectExports(n, src, facts.exported)
		}
		facts.imports.visit(n)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return facts, nil
}

// functionScope returns the scope record of the function enclosing n
func (f *moduleFacts) functionScope(n *sitter.Node) *functionScope {
	owner := scopeOwner(n)
	if owner == nil || owner.Type() != "function_definition" {
		return nil
	}
	scope, ok := f.scopes[owner.StartByte()]
	if !ok {
		scope = &functionScope{declared: make(map[string]bool)}
		f.scopes[owner.StartByte()] = scope
	}
	return scope
}

// collectExports records the names listed in a module level __all__
func collectExports(n *sitter.Node, src []byte, exported map[string]bool) {
	if scopeOwner(n) != nil {
		return
	}
	left := n.ChildByFieldName("left")
	right := n.ChildByFieldName("right")
	if left == nil || right == nil || left.Type() != "identifier" || left.Content(src) != "__all__" {
		return
	}
	switch right.Type() {
	case "list", "tuple", "set":
	default:
		return
	}
	for i := 0; i < int(right.NamedChildCount()); i++ {
		if item := right.NamedChild(i); item.Type() == "string" {
			exported[stringValue(item.Content(src))] = true
		}
	}
}

// stringValue strips the prefix and quotes of a Python string literal
func stringValue(literal string) string {
	literal = strings.TrimLeft(literal, "rRbBuUfF")
	for _, q := range []string{`"""`, `'''`, `"`, `'`} {
		if len(literal) >= 2*len(q) && strings.HasPrefix(literal, q) && strings.HasSuffix(literal, q) {
			return literal[len(q) : len(literal)-len(q)]
		}
	}
	return literal
}
