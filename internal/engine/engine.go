// Package engine wires the tree store, the classifiers and the decoration
// publisher to the document and view events of a host editor. Events must be
// delivered from a single goroutine.
package engine

import (
	"context"

	"github.com/rs/zerolog"

	"tscolor/internal/classify"
	"tscolor/internal/decorate"
	"tscolor/internal/edit"
	"tscolor/internal/lang"
	"tscolor/internal/metrics"
	"tscolor/internal/store"
	"tscolor/internal/visible"
)

type document struct {
	lang lang.ID
	text string
}

type view struct {
	doc    string
	ranges []visible.Range
}

type Engine struct {
	store     *store.Store
	registry  *classify.Registry
	publisher *decorate.Publisher
	metrics   *metrics.Metrics
	margin    int

	docs  map[string]*document
	views map[string]*view
}

type Option func(*Engine)

// WithMargin sets the row slack of the visibility filter.
func WithMargin(rows int) Option {
	return func(e *Engine) { e.margin = rows }
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(e *Engine) { e.metrics = m }
}

func WithRegistry(r *classify.Registry) Option {
	return func(e *Engine) { e.registry = r }
}

func New(r decorate.Renderer, opts ...Option) *Engine {
	e := &Engine{
		registry: classify.DefaultRegistry(),
		margin:   visible.DefaultMargin,
		docs:     make(map[string]*document),
		views:    make(map[string]*view),
	}
	for _, opt := range opts {
		opt(e)
	}
	e.store = store.New(store.WithMetrics(e.metrics))
	e.publisher = decorate.NewPublisher(r, e.metrics)
	return e
}

// Release frees the parsers and trees held by the engine.
func (e *Engine) Release() {
	e.store.Release()
}

// DocumentOpened parses the document and decorates every view showing it.
// Documents without a classifier are mirrored but never parsed.
func (e *Engine) DocumentOpened(ctx context.Context, id string, l lang.ID, text string) error {
	e.docs[id] = &document{lang: l, text: text}

	if _, ok := e.registry.Lookup(l); !ok || !e.store.Supports(l) {
		// A reopen under another language must not leave the old colors.
		e.store.Close(id)
		e.clearViews(id)
		zerolog.Ctx(ctx).Debug().Str("doc", id).Str("lang", string(l)).Msg("no classifier for language")
		return nil
	}
	if err := e.store.Open(ctx, id, l, text); err != nil {
		e.clearViews(id)
		return err
	}
	e.refresh(ctx, id)
	return nil
}

// DocumentChanged applies a batch of changes, in the order the host reported
// them, and redecorates the document's views. Unknown documents and empty
// batches are ignored.
func (e *Engine) DocumentChanged(ctx context.Context, id string, changes []edit.Change) error {
	doc, ok := e.docs[id]
	if !ok || len(changes) == 0 {
		return nil
	}

	deltas, text := edit.TranslateAll(doc.text, changes)
	doc.text = text
	if err := e.store.ApplyEdits(ctx, id, deltas, text); err != nil {
		e.refresh(ctx, id)
		return err
	}
	e.refresh(ctx, id)
	return nil
}

func (e *Engine) DocumentClosed(id string) {
	e.store.Close(id)
	delete(e.docs, id)
}

// VisibleRangesChanged records what a view shows and redecorates it from the
// current tree without reparsing.
func (e *Engine) VisibleRangesChanged(ctx context.Context, viewID string, docID string, ranges []visible.Range) {
	v := &view{doc: docID, ranges: append([]visible.Range(nil), ranges...)}
	e.views[viewID] = v
	e.decorate(ctx, viewID, v)
}

// CloseView forgets the view and removes its decorations.
func (e *Engine) CloseView(viewID string) {
	if _, ok := e.views[viewID]; !ok {
		return
	}
	delete(e.views, viewID)
	e.publisher.Clear(viewID)
}

// Text is the engine's copy of a document after every change so far.
func (e *Engine) Text(id string) (string, bool) {
	doc, ok := e.docs[id]
	if !ok {
		return "", false
	}
	return doc.text, true
}

// Classify runs the document's classifier over its current tree.
func (e *Engine) Classify(id string, pred visible.Predicate) (*classify.Result, bool) {
	snap, ok := e.store.Snapshot(id)
	if !ok {
		return nil, false
	}
	c, ok := e.registry.Lookup(snap.Lang)
	if !ok {
		return nil, false
	}
	res := c.Classify(snap.Root, pred)
	e.metrics.AddClassified(string(snap.Lang), res.Len())
	return res, true
}

func (e *Engine) refresh(ctx context.Context, docID string) {
	for viewID, v := range e.views {
		if v.doc == docID {
			e.decorate(ctx, viewID, v)
		}
	}
}

func (e *Engine) decorate(ctx context.Context, viewID string, v *view) {
	res, ok := e.Classify(v.doc, visible.Filter{Ranges: v.ranges, Margin: e.margin})
	if !ok {
		e.publisher.Clear(viewID)
		return
	}
	e.publisher.Publish(viewID, res)
	zerolog.Ctx(ctx).Trace().Str("view", viewID).Int("nodes", res.Len()).Msg("view decorated")
}

func (e *Engine) clearViews(docID string) {
	for viewID, v := range e.views {
		if v.doc == docID {
			e.publisher.Clear(viewID)
		}
	}
}
