// Package edit turns text changes reported by a host into tree-sitter edit
// deltas.
package edit

import (
	"strings"

	sitter "github.com/smacker/go-tree-sitter"

	"tscolor/internal/syntax"
)

// Change is one contiguous replacement as a host reports it: RemovedLength
// bytes at Offset are replaced by Text.
type Change struct {
	Offset        int
	RemovedLength int
	Text          string
}

// Delta describes a Change in both byte and row/column coordinates.
// StartPoint and OldEndPoint refer to the text before the change, NewEndPoint
// to the text after it.
type Delta struct {
	StartIndex  int
	OldEndIndex int
	NewEndIndex int

	StartPoint  syntax.Point
	OldEndPoint syntax.Point
	NewEndPoint syntax.Point
}

func (d Delta) EditInput() sitter.EditInput {
	return sitter.EditInput{
		StartIndex:  uint32(d.StartIndex),
		OldEndIndex: uint32(d.OldEndIndex),
		NewEndIndex: uint32(d.NewEndIndex),
		StartPoint:  syntax.ToSitterPoint(d.StartPoint),
		OldEndPoint: syntax.ToSitterPoint(d.OldEndPoint),
		NewEndPoint: syntax.ToSitterPoint(d.NewEndPoint),
	}
}

// Translate computes the delta of c against prev, the text c applies to.
// Offsets outside prev are a caller error and are not checked.
func Translate(prev string, c Change) Delta {
	startIndex := c.Offset
	oldEndIndex := c.Offset + c.RemovedLength
	newEndIndex := c.Offset + len(c.Text)

	start := PointAt(prev, startIndex)
	return Delta{
		StartIndex:  startIndex,
		OldEndIndex: oldEndIndex,
		NewEndIndex: newEndIndex,
		StartPoint:  start,
		OldEndPoint: PointAt(prev, oldEndIndex),
		NewEndPoint: advance(start, c.Text),
	}
}

// TranslateAll translates a batch in report order. Each change is taken to
// apply to the text left by the changes before it. It returns the deltas and
// the text after the whole batch.
func TranslateAll(prev string, changes []Change) ([]Delta, string) {
	if len(changes) == 0 {
		return nil, prev
	}

	deltas := make([]Delta, 0, len(changes))
	text := prev
	for _, c := range changes {
		deltas = append(deltas, Translate(text, c))
		text = Apply(text, c)
	}
	return deltas, text
}

// Apply splices c into text.
func Apply(text string, c Change) string {
	var b strings.Builder
	b.Grow(len(text) - c.RemovedLength + len(c.Text))
	b.WriteString(text[:c.Offset])
	b.WriteString(c.Text)
	b.WriteString(text[c.Offset+c.RemovedLength:])
	return b.String()
}

// PointAt scans line boundaries up to offset.
func PointAt(text string, offset int) syntax.Point {
	if offset > len(text) {
		offset = len(text)
	}
	prefix := text[:offset]
	row := strings.Count(prefix, "\n")
	lineStart := strings.LastIndexByte(prefix, '\n') + 1
	return syntax.Point{Row: row, Column: offset - lineStart}
}

// advance is the point reached after writing inserted at start. It equals
// PointAt on the post-change text without rescanning it.
func advance(start syntax.Point, inserted string) syntax.Point {
	lines := strings.Count(inserted, "\n")
	if lines == 0 {
		return syntax.Point{Row: start.Row, Column: start.Column + len(inserted)}
	}
	last := len(inserted) - strings.LastIndexByte(inserted, '\n') - 1
	return syntax.Point{Row: start.Row + lines, Column: last}
}
