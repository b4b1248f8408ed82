package classify

import (
	"tscolor/internal/lang"
	"tscolor/internal/syntax"
)

func JSON() Classifier {
	return table{
		id:         lang.JSON,
		categories: []Category{Fields, Keywords, Primitives},
		rule:       jsonRule,
	}
}

func jsonRule(n syntax.Node) (Category, bool) {
	switch n.Kind() {
	case "string":
		// The key is the string a pair starts with.
		if p := n.Parent(); p != nil && p.Kind() == "pair" && p.StartByte() == n.StartByte() {
			return Fields, true
		}
	case "true", "false", "null":
		return Keywords, true
	case "number":
		return Primitives, true
	}
	return "", false
}
