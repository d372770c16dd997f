package analyzer

import (
	"sort"
	"strings"

	"github.com/ludo-technologies/pyformat/domain"
	"github.com/ludo-technologies/pyformat/internal/parser"
	sitter "github.com/smacker/go-tree-sitter"
)

// reference is one identifier occurrence and what it does with its name
type reference struct {
	name  string
	node  *sitter.Node
	use   usage
	owner *sitter.Node
}

// within reports whether n lies inside scope
func within(n, scope *sitter.Node) bool {
	return n.StartByte() >= scope.StartByte() && n.EndByte() <= scope.EndByte()
}

// readsWithin returns the names read anywhere inside scope, nested scopes included
func readsWithin(refs []reference, scope *sitter.Node) map[string]bool {
	names := make(map[string]bool)
	for _, r := range refs {
		if isRead(r.use) && (scope == nil || within(r.node, scope)) {
			names[r.name] = true
		}
	}
	return names
}

// functionScope holds the facts about one function body that decide whether
// a local binding may be reported.
type functionScope struct {
	declared   map[string]bool // global and nonlocal names
	callsLocal bool            // the body passes its namespace to locals()
}

// findUnusedVariables reports direct local bindings that nothing in the
// function (or the functions nested in it) reads.
func findUnusedVariables(refs []reference, functions []*sitter.Node, scopes map[uint32]*functionScope, src []byte) []domain.UnusedSymbol {
	var unused []domain.UnusedSymbol
	for _, fn := range functions {
		scope := scopes[fn.StartByte()]
		if scope != nil && scope.callsLocal {
			continue
		}
		reads := readsWithin(refs, fn)
		params := parameterNames(fn, src)
		reported := make(map[string]bool)
		for _, r := range refs {
			if r.owner == nil || !parser.SameNode(r.owner, fn) {
				continue
			}
			if r.use != usageStore && r.use != usageStoreExcept {
				continue
			}
			if strings.HasPrefix(r.name, "_") || reported[r.name] || reads[r.name] || params[r.name] {
				continue
			}
			if scope != nil && scope.declared[r.name] {
				continue
			}
			if isAnnotationOnly(r.node) {
				continue
			}
			reported[r.name] = true
			unused = append(unused, domain.UnusedSymbol{
				Name:  r.name,
				Kind:  domain.SymbolVariable,
				Line:  parser.Line(r.node),
				Scope: qualifiedName(fn, src),
			})
		}
	}
	return unused
}

// parameterNames collects the names bound by the parameter list of fn.
// Rebinding a parameter in the body is not a new local.
func parameterNames(fn *sitter.Node, src []byte) map[string]bool {
	names := make(map[string]bool)
	params := fn.ChildByFieldName("parameters")
	if params == nil {
		return names
	}
	var collect func(n *sitter.Node)
	collect = func(n *sitter.Node) {
		switch n.Type() {
		case "identifier":
			names[n.Content(src)] = true
			return
		case "default_parameter", "typed_default_parameter":
			if id := n.ChildByFieldName("name"); id != nil {
				collect(id)
			}
			return
		}
		for i := 0; i < int(n.NamedChildCount()); i++ {
			c := n.NamedChild(i)
			if parser.FieldName(c) == "type" {
				continue
			}
			collect(c)
		}
	}
	for i := 0; i < int(params.NamedChildCount()); i++ {
		collect(params.NamedChild(i))
	}
	return names
}

// findUnusedDefinitions reports module level functions and classes whose
// name is never read.
func findUnusedDefinitions(definitions []*sitter.Node, globalReads, exported map[string]bool, src []byte) []domain.UnusedSymbol {
	var unused []domain.UnusedSymbol
	for _, def := range definitions {
		if scopeOwner(def) != nil {
			continue
		}
		if p := def.Parent(); p != nil && p.Type() == "decorated_definition" {
			continue
		}
		name := definitionName(def, src)
		if isDunder(name) || globalReads[name] || exported[name] {
			continue
		}
		kind := domain.SymbolFunction
		if def.Type() == "class_definition" {
			kind = domain.SymbolClass
		}
		unused = append(unused, domain.UnusedSymbol{
			Name:  name,
			Kind:  kind,
			Line:  parser.Line(def),
			Scope: moduleUnitName,
		})
	}
	return unused
}

// findUnusedImports reports imported names never read in the scope that
// imported them.
func findUnusedImports(refs []reference, bindings []importBinding, exported map[string]bool, src []byte) []domain.UnusedSymbol {
	var unused []domain.UnusedSymbol
	reported := make(map[string]bool)
	globalReads := readsWithin(refs, nil)
	for _, b := range bindings {
		reads := globalReads
		scope := moduleUnitName
		if b.owner != nil {
			reads = readsWithin(refs, b.owner)
			scope = qualifiedName(b.owner, src)
		}
		key := scope + "\x00" + b.name
		if reads[b.name] || reported[key] {
			continue
		}
		if b.owner == nil && exported[b.name] {
			continue
		}
		reported[key] = true
		unused = append(unused, domain.UnusedSymbol{
			Name:  b.name,
			Kind:  domain.SymbolImport,
			Line:  b.line,
			Scope: scope,
		})
	}
	return unused
}

// sortUnused orders symbols by line, then name
func sortUnused(symbols []domain.UnusedSymbol) {
	sort.SliceStable(symbols, func(i, j int) bool {
		if symbols[i].Line != symbols[j].Line {
			return symbols[i].Line < symbols[j].Line
		}
		return symbols[i].Name < symbols[j].Name
	})
}

// isAnnotationOnly reports whether n is the target of "x: int" with no value
func isAnnotationOnly(n *sitter.Node) bool {
	p := n.Parent()
	return p != nil && p.Type() == "assignment" && p.ChildByFieldName("right") == nil
}

func isDunder(name string) bool {
	return len(name) > 4 && strings.HasPrefix(name, "__") && strings.HasSuffix(name, "__")
}

