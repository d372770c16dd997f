package analyzer

import (
	"github.com/ludo-technologies/pyformat/domain"
	"github.com/ludo-technologies/pyformat/internal/parser"
	sitter "github.com/smacker/go-tree-sitter"
)

// decisionNodes each add one path through a unit
var decisionNodes = map[string]bool{
	"if_statement":           true,
	"elif_clause":            true,
	"for_statement":          true,
	"while_statement":        true,
	"except_clause":          true,
	"except_group_clause":    true,
	"conditional_expression": true,
	"boolean_operator":       true,
	"for_in_clause":          true,
	"if_clause":              true,
	"case_clause":            true,
}

// moduleUnitName names the complexity unit for code outside any function
const moduleUnitName = "<module>"

// unitComplexity counts the decision points of body, not descending into
// nested function or class definitions. The result is at least 1.
func unitComplexity(body *sitter.Node) int {
	complexity := 1
	_ = parser.WalkTree(body, func(n *sitter.Node) error {
		if isDefinition(n) && !parser.SameNode(n, body) {
			return parser.SkipChildren
		}
		if decisionNodes[n.Type()] {
			complexity++
		}
		return nil
	})
	return complexity
}

// measureComplexity returns one unit per function in source order. Modules
// without functions are measured as a single unit.
func (a *Analyzer) measureComplexity(root *sitter.Node, src []byte, functions []*sitter.Node) []domain.UnitComplexity {
	var units []domain.UnitComplexity
	for _, fn := range functions {
		c := unitComplexity(fn)
		units = append(units, domain.UnitComplexity{
			Name:       qualifiedName(fn, src),
			Line:       parser.Line(fn),
			Complexity: c,
			RiskLevel:  a.riskLevel(c),
		})
	}
	if len(units) == 0 {
		c := unitComplexity(root)
		units = append(units, domain.UnitComplexity{
			Name:       moduleUnitName,
			Line:       1,
			Complexity: c,
			RiskLevel:  a.riskLevel(c),
		})
	}
	return units
}

func maxComplexity(units []domain.UnitComplexity) int {
	highest := 0
	for _, u := range units {
		if u.Complexity > highest {
			highest = u.Complexity
		}
	}
	return highest
}

func isDefinition(n *sitter.Node) bool {
	return n.Type() == "function_definition" || n.Type() == "class_definition"
}
