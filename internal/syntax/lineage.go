package syntax

// NoParent stands in for the kind of an ancestor above the root, so every
// ancestor lookup yields a string.
const NoParent = "<root>"

// MaxDepth is the deepest ancestor any classifier rule looks at.
const MaxDepth = 4

// Lineage holds the kinds of a node's ancestors, nearest first.
type Lineage [MaxDepth]string

// LineageOf walks at most MaxDepth parents up from n.
func LineageOf(n Node) Lineage {
	var l Lineage
	cur := n
	for i := range l {
		if cur != nil {
			cur = cur.Parent()
		}
		if cur == nil {
			l[i] = NoParent
			continue
		}
		l[i] = cur.Kind()
	}
	return l
}

// At returns the kind of the ancestor depth levels up (1 is the parent).
// Depths outside 1..MaxDepth report NoParent.
func (l Lineage) At(depth int) string {
	if depth < 1 || depth > MaxDepth {
		return NoParent
	}
	return l[depth-1]
}

func (l Lineage) Parent() string { return l.At(1) }

func (l Lineage) Grandparent() string { return l.At(2) }

func (l Lineage) GreatGrandparent() string { return l.At(3) }

// Is reports whether the ancestor chain starts with kinds, nearest first.
func (l Lineage) Is(kinds ...string) bool {
	if len(kinds) > MaxDepth {
		return false
	}
	for i, k := range kinds {
		if l[i] != k {
			return false
		}
	}
	return true
}
