package decorate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tscolor/internal/classify"
	"tscolor/internal/syntax"
)

type call struct {
	view   string
	style  string
	ranges []Range
}

// recorder issues the style name itself as the handle.
type recorder struct {
	created []string
	calls   []call
}

func (r *recorder) StyleHandle(name string) Handle {
	r.created = append(r.created, name)
	return name
}

func (r *recorder) ApplyRanges(viewID string, h Handle, ranges []Range) {
	r.calls = append(r.calls, call{view: viewID, style: h.(string), ranges: ranges})
}

func result(pairs ...any) *classify.Result {
	res := classify.NewResult()
	for i := 0; i < len(pairs); i += 2 {
		res.Add(pairs[i].(classify.Category), pairs[i+1].(syntax.Node))
	}
	return res
}

func TestPublishConvertsNodes(t *testing.T) {
	r := &recorder{}
	p := NewPublisher(r, nil)

	p.Publish("v1", result(
		classify.Types, syntax.Leaf("type_identifier", "int", 2, 8),
		classify.Functions, syntax.Leaf("identifier", "main", 0, 5),
		classify.Types, syntax.Leaf("type_identifier", "T", 3, 0),
	))

	require.Len(t, r.calls, 2)
	assert.Equal(t, call{view: "v1", style: "type", ranges: []Range{
		{StartRow: 2, StartCol: 8, EndRow: 2, EndCol: 11},
		{StartRow: 3, StartCol: 0, EndRow: 3, EndCol: 1},
	}}, r.calls[0])
	assert.Equal(t, call{view: "v1", style: "function", ranges: []Range{
		{StartRow: 0, StartCol: 5, EndRow: 0, EndCol: 9},
	}}, r.calls[1])
}

func TestStaleCategoriesAreCleared(t *testing.T) {
	r := &recorder{}
	p := NewPublisher(r, nil)

	p.Publish("v1", result(
		classify.Types, syntax.Leaf("type_identifier", "int", 0, 0),
		classify.Fields, syntax.Leaf("field_identifier", "x", 1, 0),
	))
	r.calls = nil

	p.Publish("v1", result(classify.Types, syntax.Leaf("type_identifier", "int", 0, 0)))
	require.Len(t, r.calls, 2)
	assert.Equal(t, "type", r.calls[0].style)
	assert.Equal(t, call{view: "v1", style: "field"}, r.calls[1])
}

func TestHandlesAreMemoized(t *testing.T) {
	r := &recorder{}
	p := NewPublisher(r, nil)

	res := result(classify.Keywords, syntax.Leaf("return", "return", 0, 0))
	p.Publish("v1", res)
	p.Publish("v2", res)
	p.Publish("v1", classify.NewResult())

	assert.Equal(t, []string{"keyword"}, r.created)
}

func TestEmptyResultWithNoHistory(t *testing.T) {
	r := &recorder{}
	p := NewPublisher(r, nil)
	p.Publish("v1", classify.NewResult())
	assert.Empty(t, r.calls)
}

func TestClear(t *testing.T) {
	r := &recorder{}
	p := NewPublisher(r, nil)
	p.Publish("v1", result(
		classify.Macros, syntax.Leaf("identifier", "N", 0, 8),
		classify.Enums, syntax.Leaf("identifier", "Red", 1, 2),
	))
	r.calls = nil

	p.Clear("v1")
	assert.Equal(t, []call{{view: "v1", style: "macro"}, {view: "v1", style: "enum"}}, r.calls)
}
