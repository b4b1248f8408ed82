// Package syntax is the read-only view of a parsed tree that classifiers and
// publishers work against. Trees come from tree-sitter in production and from
// hand-built stubs in tests.
package syntax

// Point is a 0-based row and a 0-based column measured in bytes.
type Point struct {
	Row    int
	Column int
}

// Node is a single node of a concrete syntax tree. Children are in source order.
// Parent returns nil for the root.
type Node interface {
	Kind() string
	Text() string
	StartPoint() Point
	EndPoint() Point
	StartByte() int
	EndByte() int
	Parent() Node
	ChildCount() int
	Child(i int) Node
}

// ErrorKind is the kind tree-sitter gives to nodes it could not parse.
const ErrorKind = "ERROR"
