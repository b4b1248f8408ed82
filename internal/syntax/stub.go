package syntax

// Stub is a hand-built node for exercising classifiers without a parser.
type Stub struct {
	kind      string
	text      string
	start     Point
	end       Point
	startByte int
	endByte   int
	parent    *Stub
	children  []*Stub
}

// Leaf builds a single-line token at row/col whose extent is its text.
func Leaf(kind string, text string, row int, col int) *Stub {
	return &Stub{
		kind:      kind,
		text:      text,
		start:     Point{Row: row, Column: col},
		end:       Point{Row: row, Column: col + len(text)},
		startByte: col,
		endByte:   col + len(text),
	}
}

// Branch builds an inner node spanning its first to its last child and links
// the children back to it. A branch without children is empty at 0:0.
func Branch(kind string, children ...*Stub) *Stub {
	s := &Stub{kind: kind, children: children}
	for _, c := range children {
		c.parent = s
	}
	if len(children) > 0 {
		first, last := children[0], children[len(children)-1]
		s.start, s.startByte = first.start, first.startByte
		s.end, s.endByte = last.end, last.endByte
	}
	return s
}

// Rows overrides the row extent, for branches whose children do not cover it.
func (s *Stub) Rows(start int, end int) *Stub {
	s.start.Row = start
	s.end.Row = end
	return s
}

func (s *Stub) Kind() string { return s.kind }

func (s *Stub) Text() string { return s.text }

func (s *Stub) StartPoint() Point { return s.start }

func (s *Stub) EndPoint() Point { return s.end }

func (s *Stub) StartByte() int { return s.startByte }

func (s *Stub) EndByte() int { return s.endByte }

func (s *Stub) Parent() Node {
	if s.parent == nil {
		return nil
	}
	return s.parent
}

func (s *Stub) ChildCount() int { return len(s.children) }

func (s *Stub) Child(i int) Node {
	if i < 0 || i >= len(s.children) {
		return nil
	}
	return s.children[i]
}
