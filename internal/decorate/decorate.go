// Package decorate hands classification results to a rendering surface as
// styled ranges.
package decorate

import (
	"tscolor/internal/classify"
	"tscolor/internal/metrics"
	"tscolor/internal/syntax"
)

// Handle is an opaque style token issued by a Renderer.
type Handle any

// Range is a half-open text span; columns are byte offsets in their row.
type Range struct {
	StartRow int
	StartCol int
	EndRow   int
	EndCol   int
}

// Renderer is the surface that draws decorations. ApplyRanges replaces every
// range previously applied to the view under the same handle.
type Renderer interface {
	StyleHandle(name string) Handle
	ApplyRanges(viewID string, h Handle, ranges []Range)
}

// Publisher owns one style handle per category for its whole lifetime.
type Publisher struct {
	renderer Renderer
	metrics  *metrics.Metrics
	handles  map[classify.Category]Handle
	order    []classify.Category
}

func NewPublisher(r Renderer, m *metrics.Metrics) *Publisher {
	return &Publisher{
		renderer: r,
		metrics:  m,
		handles:  make(map[classify.Category]Handle),
	}
}

// Publish applies every category of res to the view, then clears the
// categories this publisher has seen before that res no longer contains.
func (p *Publisher) Publish(viewID string, res *classify.Result) {
	for _, c := range res.Categories() {
		nodes := res.Nodes(c)
		ranges := make([]Range, len(nodes))
		for i, n := range nodes {
			ranges[i] = RangeOf(n)
		}
		p.renderer.ApplyRanges(viewID, p.handle(c), ranges)
		p.metrics.AddPublished(c.StyleName(), len(ranges))
	}
	for _, c := range p.order {
		if !res.Has(c) {
			p.renderer.ApplyRanges(viewID, p.handles[c], nil)
		}
	}
}

// Clear removes every decoration this publisher may have applied to the view.
func (p *Publisher) Clear(viewID string) {
	for _, c := range p.order {
		p.renderer.ApplyRanges(viewID, p.handles[c], nil)
	}
}

func (p *Publisher) handle(c classify.Category) Handle {
	if h, ok := p.handles[c]; ok {
		return h
	}
	h := p.renderer.StyleHandle(c.StyleName())
	p.handles[c] = h
	p.order = append(p.order, c)
	return h
}

func RangeOf(n syntax.Node) Range {
	start, end := n.StartPoint(), n.EndPoint()
	return Range{StartRow: start.Row, StartCol: start.Column, EndRow: end.Row, EndCol: end.Column}
}
