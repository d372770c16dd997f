package formatter

// binaryOperators are surrounded by single spaces unless the grammar says
// they are used in a unary or keyword position.
var binaryOperators = map[string]bool{
	"=": true, ":=": true, "->": true,
	"+=": true, "-=": true, "*=": true, "/=": true, "//=": true, "%=": true,
	"**=": true, ">>=": true, "<<=": true, "&=": true, "|=": true, "^=": true, "@=": true,
	"==": true, "!=": true, "<>": true, "<": true, ">": true, "<=": true, ">=": true,
	"+": true, "-": true, "*": true, "/": true, "//": true, "%": true, "**": true,
	"@": true, "&": true, "|": true, "^": true, "<<": true, ">>": true,
}

// prefixParents are node types in which an operator binds to the following
// operand without a space: -x, *args, **kwargs, @decorator.
var prefixParents = map[string]bool{
	"unary_operator":           true,
	"list_splat":               true,
	"dictionary_splat":         true,
	"list_splat_pattern":       true,
	"dictionary_splat_pattern": true,
	"splat_pattern":            true,
	"decorator":                true,
}

// keywordEqualsParents hold "=" tokens written without spaces: f(a=1), def f(a=1)
var keywordEqualsParents = map[string]bool{
	"keyword_argument":  true,
	"default_parameter": true,
}

func isOpenBracket(t token) bool {
	return t.typ == "(" || t.typ == "[" || t.typ == "{"
}

func isCloseBracket(t token) bool {
	return t.typ == ")" || t.typ == "]" || t.typ == "}"
}

// isCallable reports whether a "(" or "[" after t starts a call or subscript
func isCallable(t token) bool {
	switch t.typ {
	case "identifier", ")", "]", "}", "string":
		return true
	}
	return t.parentType == "keyword_identifier"
}

func isPrefixOperator(t token) bool {
	return prefixParents[t.parentType] && (t.typ == "-" || t.typ == "+" || t.typ == "~" ||
		t.typ == "*" || t.typ == "**" || t.typ == "@")
}

func isKeywordEquals(t token) bool {
	return t.typ == "=" && keywordEqualsParents[t.parentType]
}

func isSpacedOperator(t token) bool {
	if !binaryOperators[t.typ] {
		return false
	}
	return !isPrefixOperator(t) && !isKeywordEquals(t)
}

// needsSpace decides whether a single space separates prev and cur, which are
// adjacent tokens on the same line.
func needsSpace(prev, cur token) bool {
	switch {
	case isOpenBracket(prev):
		return false
	case isCloseBracket(cur):
		return false
	case cur.typ == "," || cur.typ == ";":
		return false
	case cur.typ == ":":
		return false
	case isPrefixOperator(prev):
		return false
	case isKeywordEquals(prev) || isKeywordEquals(cur):
		return false
	case isSpacedOperator(prev) || isSpacedOperator(cur):
		return true
	case prev.typ == "," || prev.typ == ";":
		return true
	case prev.typ == ":":
		return prev.parentType != "slice"
	}

	if cur.parentType == "import_prefix" || prev.parentType == "import_prefix" {
		return importPrefixSpace(prev, cur)
	}

	switch {
	case cur.typ == ".":
		// "1 .real" must keep its space or it would lex as a float
		return prev.typ == "integer"
	case prev.typ == ".":
		return false
	case cur.typ == "(" || cur.typ == "[":
		return !isCallable(prev)
	}
	return true
}

// importPrefixSpace handles the dots of relative imports: "from .. import x",
// "from ..pkg import x".
func importPrefixSpace(prev, cur token) bool {
	prevDot := prev.typ == "." && prev.parentType == "import_prefix"
	curDot := cur.typ == "." && cur.parentType == "import_prefix"
	switch {
	case prevDot && curDot:
		return false
	case curDot:
		return true
	case prevDot:
		return cur.typ == "import"
	}
	return true
}
