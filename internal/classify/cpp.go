package classify

import (
	"tscolor/internal/lang"
	"tscolor/internal/syntax"
)

var cppKeywords = map[string]bool{
	"if":        true,
	"do":        true,
	"class":     true,
	"struct":    true,
	"virtual":   true,
	"override":  true,
	"final":     true,
	"public":    true,
	"private":   true,
	"protected": true,
	"nullptr":   true,
	"namespace": true,
	"default":   true,
	"template":  true,
	"typename":  true,
	"const":     true,
	"return":    true,
	"sizeof":    true,
	"auto":      true,
	"for":       true,
	"true":      true,
	"false":     true,
	"enum":      true,
	"static":    true,
	"constexpr": true,
}

// cppMaxKeyword bounds the nodes whose text is worth comparing.
var cppMaxKeyword = func() int {
	n := 0
	for k := range cppKeywords {
		n = max(n, len(k))
	}
	return n
}()

// Older grammars call a qualified name scoped_identifier, newer ones
// qualified_identifier.
var cppScoped = map[string]bool{
	"scoped_identifier":    true,
	"qualified_identifier": true,
}

// Cpp classifies tree-sitter-cpp trees. Unlike the other grammars a plain
// identifier no rule claims still lands in fields.
func Cpp() Classifier {
	return table{
		id:         lang.CPP,
		categories: []Category{Types, Fields, Functions, Keywords, Macros, Enums, Primitives},
		rule:       cppRule,
	}
}

func cppRule(n syntax.Node) (Category, bool) {
	switch n.Kind() {
	case "identifier":
		return cppIdentifier(n)
	case "field_identifier":
		return cppFieldIdentifier(n), true
	case "type_identifier", "namespace_identifier":
		return Types, true
	case "primitive_type":
		return Primitives, true
	}
	if isCppKeyword(n) {
		return Keywords, true
	}
	return "", false
}

func cppIdentifier(n syntax.Node) (Category, bool) {
	l := syntax.LineageOf(n)
	switch parent := l.Parent(); {
	case parent == "preproc_def":
		return Macros, true
	case parent == "enumerator":
		return Enums, true
	case parent == "namespace_definition":
		return Types, true
	case parent == "destructor_name", parent == "function_declarator", parent == "call_expression":
		return Functions, true
	case cppScoped[parent]:
		return cppScopedIdentifier(l)
	case isCppKeyword(n):
		return Keywords, true
	default:
		return Fields, true
	}
}

// cppScopedIdentifier decides a name inside a qualified path from the two
// ancestors above the path. Paths outside a call or definition stay plain.
func cppScopedIdentifier(l syntax.Lineage) (Category, bool) {
	switch l.Grandparent() {
	case "function_declarator", "template_function":
		switch l.GreatGrandparent() {
		case "call_expression", "function_definition":
			return Functions, true
		}
	case "call_expression":
		return Functions, true
	}
	return "", false
}

func cppFieldIdentifier(n syntax.Node) Category {
	l := syntax.LineageOf(n)
	switch {
	case l.Parent() == "function_declarator":
		return Functions
	case l.Is("field_expression", "call_expression"):
		return Functions
	default:
		return Fields
	}
}

func isCppKeyword(n syntax.Node) bool {
	if n.EndByte()-n.StartByte() > cppMaxKeyword {
		return false
	}
	return cppKeywords[n.Text()]
}
