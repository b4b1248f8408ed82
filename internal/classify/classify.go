// Package classify buckets syntax nodes into color categories with one
// rule table per grammar.
package classify

import (
	"tscolor/internal/lang"
	"tscolor/internal/syntax"
	"tscolor/internal/visible"
)

// Classifier is one grammar's rule table. Classify must not mutate the tree.
type Classifier interface {
	Language() lang.ID
	Categories() []Category
	Classify(root syntax.Node, pred visible.Predicate) *Result
}

// ruleFunc returns the category for n, or false when no rule matches.
type ruleFunc func(n syntax.Node) (Category, bool)

type table struct {
	id         lang.ID
	categories []Category
	rule       ruleFunc
}

func (t table) Language() lang.ID { return t.id }

func (t table) Categories() []Category { return t.categories }

func (t table) Classify(root syntax.Node, pred visible.Predicate) *Result {
	res := NewResult()
	walk(root, pred, func(n syntax.Node) {
		if c, ok := t.rule(n); ok {
			res.Add(c, n)
		}
	})
	return res
}

// walk visits n and its descendants in pre-order, skipping any node the
// predicate rejects together with its subtree. A visited node's children are
// always visited, whether or not the node itself matched.
func walk(n syntax.Node, pred visible.Predicate, visit func(syntax.Node)) {
	if n == nil || !pred.Visible(n) {
		return
	}
	visit(n)
	for i := 0; i < n.ChildCount(); i++ {
		walk(n.Child(i), pred, visit)
	}
}
