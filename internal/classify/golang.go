package classify

import (
	"tscolor/internal/lang"
	"tscolor/internal/syntax"
)

// Go classifies tree-sitter-go trees. Identifiers other than function names
// stay uncategorized.
func Go() Classifier {
	return table{
		id:         lang.Go,
		categories: []Category{Types, Fields, Functions},
		rule:       goRule,
	}
}

func goRule(n syntax.Node) (Category, bool) {
	switch n.Kind() {
	case "identifier":
		if syntax.LineageOf(n).Parent() == "function_declaration" {
			return Functions, true
		}
	case "type_identifier":
		return Types, true
	case "field_identifier":
		// Method names are field identifiers in this grammar and color
		// as fields.
		return Fields, true
	}
	return "", false
}
