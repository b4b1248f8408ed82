package classify

import (
	"strings"

	"tscolor/internal/syntax"
)

type Category string

const (
	Types      Category = "types"
	Fields     Category = "fields"
	Functions  Category = "functions"
	Keywords   Category = "keywords"
	Macros     Category = "macros"
	Enums      Category = "enums"
	Primitives Category = "primitives"
)

// StyleName is the singular form used to look up a color: "types" -> "type".
func (c Category) StyleName() string {
	return strings.TrimSuffix(string(c), "s")
}

// Result maps categories to the nodes that fell into them. Nodes keep
// traversal order; categories keep the order they were first seen in.
type Result struct {
	order []Category
	nodes map[Category][]syntax.Node
}

func NewResult() *Result {
	return &Result{nodes: make(map[Category][]syntax.Node)}
}

func (r *Result) Add(c Category, n syntax.Node) {
	list, ok := r.nodes[c]
	if !ok {
		r.order = append(r.order, c)
	}
	r.nodes[c] = append(list, n)
}

// Categories lists the categories present, in first-seen order.
func (r *Result) Categories() []Category {
	return append([]Category(nil), r.order...)
}

func (r *Result) Nodes(c Category) []syntax.Node {
	return r.nodes[c]
}

func (r *Result) Has(c Category) bool {
	_, ok := r.nodes[c]
	return ok
}

// Len is the total number of classified nodes.
func (r *Result) Len() int {
	n := 0
	for _, list := range r.nodes {
		n += len(list)
	}
	return n
}
