package syntax

import (
	sitter "github.com/smacker/go-tree-sitter"
)

type sitterNode struct {
	n   *sitter.Node
	src []byte
}

// FromSitter wraps a tree-sitter node. src must be the exact source the tree
// was parsed from; Text slices it.
func FromSitter(n *sitter.Node, src []byte) Node {
	if n == nil || n.IsNull() {
		return nil
	}
	return sitterNode{n: n, src: src}
}

func (s sitterNode) Kind() string { return s.n.Type() }

func (s sitterNode) Text() string {
	start, end := int(s.n.StartByte()), int(s.n.EndByte())
	if start < 0 || end > len(s.src) || start > end {
		return ""
	}
	return string(s.src[start:end])
}

func (s sitterNode) StartPoint() Point { return fromSitterPoint(s.n.StartPoint()) }

func (s sitterNode) EndPoint() Point { return fromSitterPoint(s.n.EndPoint()) }

func (s sitterNode) StartByte() int { return int(s.n.StartByte()) }

func (s sitterNode) EndByte() int { return int(s.n.EndByte()) }

func (s sitterNode) Parent() Node {
	p := s.n.Parent()
	if p == nil || p.IsNull() {
		return nil
	}
	return sitterNode{n: p, src: s.src}
}

func (s sitterNode) ChildCount() int { return int(s.n.ChildCount()) }

func (s sitterNode) Child(i int) Node {
	return FromSitter(s.n.Child(i), s.src)
}

func fromSitterPoint(p sitter.Point) Point {
	return Point{Row: int(p.Row), Column: int(p.Column)}
}

// ToSitterPoint converts back for edit inputs.
func ToSitterPoint(p Point) sitter.Point {
	return sitter.Point{Row: uint32(p.Row), Column: uint32(p.Column)}
}
