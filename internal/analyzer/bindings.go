package analyzer

import (
	"github.com/ludo-technologies/pyformat/internal/parser"
	sitter "github.com/smacker/go-tree-sitter"
)

// usage describes what an identifier occurrence does with its name
type usage int

const (
	usageRead usage = iota
	// usageStore binds the name directly: x = 1, with f() as x, y := 2
	usageStore
	// usageStoreNested binds the name inside an unpacking target or loop
	// header: a, b = t, for i in r
	usageStoreNested
	// usageStoreExcept binds the exception name of an except clause
	usageStoreExcept
	// usageAugmented reads and rebinds: x += 1
	usageAugmented
	// usageIgnore is a name that is neither a variable read nor a binding:
	// attribute names, keyword argument names, parameters, imports, definitions
	usageIgnore
)

// targetContainers wrap unpacking targets
var targetContainers = map[string]bool{
	"pattern_list":             true,
	"tuple_pattern":            true,
	"list_pattern":             true,
	"list_splat_pattern":       true,
	"dictionary_splat_pattern": true,
	"tuple":                    true,
	"list":                     true,
	"expression_list":          true,
	"parenthesized_expression": true,
}

// ignoredParents never contain variable references as direct identifier children
var ignoredParents = map[string]bool{
	"parameters":         true,
	"lambda_parameters":  true,
	"typed_parameter":    true,
	"dotted_name":        true,
	"aliased_import":     true,
	"global_statement":   true,
	"nonlocal_statement": true,
	"import_prefix":      true,
	"relative_import":    true,
}

// classifyIdentifier decides how an identifier node uses its name
func classifyIdentifier(n *sitter.Node) usage {
	parent := n.Parent()
	if parent == nil {
		return usageRead
	}

	field := parser.FieldName(n)
	switch parent.Type() {
	case "attribute":
		if field == "attribute" {
			return usageIgnore
		}
		return usageRead
	case "keyword_argument", "default_parameter", "typed_default_parameter",
		"function_definition", "class_definition":
		if field == "name" {
			return usageIgnore
		}
		return usageRead
	case "except_clause":
		if prev := n.PrevSibling(); prev != nil && prev.Type() == "as" {
			return usageStoreExcept
		}
		return usageRead
	}
	if ignoredParents[parent.Type()] {
		return usageIgnore
	}

	// Climb out of unpacking containers to find the statement that owns the target
	nested := false
	child := n
	for targetContainers[parent.Type()] {
		nested = true
		child = parent
		parent = parent.Parent()
		if parent == nil {
			return usageRead
		}
	}
	field = parser.FieldName(child)

	direct := usageStore
	if nested {
		direct = usageStoreNested
	}

	switch parent.Type() {
	case "assignment":
		if field == "left" {
			return direct
		}
	case "augmented_assignment":
		if field == "left" {
			return usageAugmented
		}
	case "for_statement", "for_in_clause":
		if field == "left" {
			return usageStoreNested
		}
	case "named_expression":
		if field == "name" {
			return direct
		}
	case "as_pattern_target":
		return direct
	case "parameters", "lambda_parameters", "typed_parameter":
		return usageIgnore
	}
	return usageRead
}

func isStore(u usage) bool {
	switch u {
	case usageStore, usageStoreNested, usageStoreExcept, usageAugmented:
		return true
	}
	return false
}

func isRead(u usage) bool {
	return u == usageRead || u == usageAugmented
}

// scopeOwner returns the nearest enclosing function or class definition,
// or nil for module level code.
func scopeOwner(n *sitter.Node) *sitter.Node {
	for p := n.Parent(); p != nil; p = p.Parent() {
		switch p.Type() {
		case "function_definition", "class_definition":
			return p
		}
	}
	return nil
}

// qualifiedName joins the names of the enclosing classes and functions of a
// definition node: Outer.method, outer.inner.
func qualifiedName(def *sitter.Node, src []byte) string {
	name := definitionName(def, src)
	for p := scopeOwner(def); p != nil; p = scopeOwner(p) {
		name = definitionName(p, src) + "." + name
	}
	return name
}

func definitionName(def *sitter.Node, src []byte) string {
	if id := def.ChildByFieldName("name"); id != nil {
		return id.Content(src)
	}
	return "<anonymous>"
}
