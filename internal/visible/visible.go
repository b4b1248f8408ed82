package visible

import "tscolor/internal/syntax"

// DefaultMargin is the slack, in rows, a node may sit outside a range and
// still count as visible. It keeps nodes straddling a viewport edge colored.
const DefaultMargin = 1

// Range is an inclusive span of rows shown by a view.
type Range struct {
	Start int
	End   int
}

// Predicate decides whether classification should enter a node.
type Predicate interface {
	Visible(n syntax.Node) bool
}

// Filter tests nodes against a set of ranges with Margin rows of slack.
type Filter struct {
	Ranges []Range
	Margin int
}

func NewFilter(ranges []Range) Filter {
	return Filter{Ranges: ranges, Margin: DefaultMargin}
}

func (f Filter) Visible(n syntax.Node) bool {
	start, end := n.StartPoint().Row, n.EndPoint().Row
	for _, r := range f.Ranges {
		if start <= r.End+f.Margin && r.Start-f.Margin <= end {
			return true
		}
	}
	return false
}

type everything struct{}

func (everything) Visible(syntax.Node) bool { return true }

// Everything accepts every node.
var Everything Predicate = everything{}

// Lines is a single range covering rows [0, lineCount).
func Lines(lineCount int) []Range {
	if lineCount <= 0 {
		return nil
	}
	return []Range{{Start: 0, End: lineCount - 1}}
}
