package classify

import (
	"tscolor/internal/lang"
	"tscolor/internal/syntax"
)

var tsFunctionParents = map[string]bool{
	"function":                       true,
	"function_expression":            true,
	"function_declaration":           true,
	"generator_function":             true,
	"generator_function_declaration": true,
	"function_signature":             true,
}

func TypeScript() Classifier {
	return table{
		id:         lang.TypeScript,
		categories: []Category{Types, Fields, Functions},
		rule:       tsRule,
	}
}

func tsRule(n syntax.Node) (Category, bool) {
	switch n.Kind() {
	case "identifier":
		if tsFunctionParents[syntax.LineageOf(n).Parent()] {
			return Functions, true
		}
	case "type_identifier", "predefined_type":
		return Types, true
	case "property_identifier":
		return Fields, true
	}
	return "", false
}
