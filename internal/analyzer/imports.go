package analyzer

import (
	"strings"

	"github.com/ludo-technologies/pyformat/internal/parser"
	sitter "github.com/smacker/go-tree-sitter"
)

// importBinding is a name introduced into the module by an import
type importBinding struct {
	name  string
	line  int
	owner *sitter.Node
}

// importCollector gathers imported modules and the names imports bind
type importCollector struct {
	src      []byte
	seen     map[string]bool
	modules  []string
	bindings []importBinding
}

func newImportCollector(src []byte) *importCollector {
	return &importCollector{src: src, seen: make(map[string]bool)}
}

func (c *importCollector) addModule(name string) {
	if name == "" || c.seen[name] {
		return
	}
	c.seen[name] = true
	c.modules = append(c.modules, name)
}

func (c *importCollector) bind(name string, n *sitter.Node) {
	c.bindings = append(c.bindings, importBinding{name: name, line: parser.Line(n), owner: scopeOwner(n)})
}

// visit records n if it is an import statement
func (c *importCollector) visit(n *sitter.Node) {
	switch n.Type() {
	case "import_statement":
		for _, name := range childrenByField(n, "name") {
			switch name.Type() {
			case "dotted_name":
				module := name.Content(c.src)
				c.addModule(module)
				// import a.b binds a
				c.bind(strings.SplitN(module, ".", 2)[0], name)
			case "aliased_import":
				if module := name.ChildByFieldName("name"); module != nil {
					c.addModule(module.Content(c.src))
				}
				if alias := name.ChildByFieldName("alias"); alias != nil {
					c.bind(alias.Content(c.src), alias)
				}
			}
		}
	case "import_from_statement":
		if module := n.ChildByFieldName("module_name"); module != nil {
			c.addModule(module.Content(c.src))
		}
		for _, name := range childrenByField(n, "name") {
			switch name.Type() {
			case "dotted_name":
				c.bind(name.Content(c.src), name)
			case "aliased_import":
				if alias := name.ChildByFieldName("alias"); alias != nil {
					c.bind(alias.Content(c.src), alias)
				}
			}
		}
	case "future_import_statement":
		c.addModule("__future__")
	}
}

// childrenByField returns every child of n stored under field
func childrenByField(n *sitter.Node, field string) []*sitter.Node {
	var out []*sitter.Node
	for i := 0; i < int(n.ChildCount()); i++ {
		if n.FieldNameForChild(i) == field {
			out = append(out, n.Child(i))
		}
	}
	return out
}
