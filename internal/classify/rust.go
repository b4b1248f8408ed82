package classify

import (
	"tscolor/internal/lang"
	"tscolor/internal/syntax"
)

func Rust() Classifier {
	return table{
		id:         lang.Rust,
		categories: []Category{Types, Fields, Functions},
		rule:       rustRule,
	}
}

func rustRule(n syntax.Node) (Category, bool) {
	switch n.Kind() {
	case "identifier":
		l := syntax.LineageOf(n)
		switch {
		// Methods: a function item inside a trait or impl body.
		case l.Is("function_item", "declaration_list"):
			return Fields, true
		case l.Parent() == "function_item":
			return Functions, true
		case l.Is("scoped_identifier", "function_declarator"):
			return Functions, true
		}
	case "type_identifier", "primitive_type":
		return Types, true
	case "field_identifier":
		return Fields, true
	}
	return "", false
}
