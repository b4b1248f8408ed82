// Package store keeps the most recent syntax tree of every open document and
// brings it up to date with incremental reparses.
package store

import (
	"context"
	"time"

	"github.com/rs/zerolog"
	sitter "github.com/smacker/go-tree-sitter"
	"gitlab.com/tozd/go/errors"

	"tscolor/internal/edit"
	"tscolor/internal/lang"
	"tscolor/internal/metrics"
	"tscolor/internal/syntax"
)

// Snapshot is a read-only view of a document's tree. It stays valid until
// the next Open, ApplyEdits or Close for the same document.
type Snapshot struct {
	Lang lang.ID
	Text string
	Root syntax.Node
}

type entry struct {
	lang lang.ID
	src  []byte
	tree *sitter.Tree
}

// Store maps document identifiers to their latest tree. It is not safe for
// concurrent use.
type Store struct {
	parsers map[lang.ID]*sitter.Parser
	docs    map[string]*entry
	metrics *metrics.Metrics
}

type Option func(*Store)

func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Store) { s.metrics = m }
}

func New(opts ...Option) *Store {
	s := &Store{
		parsers: make(map[lang.ID]*sitter.Parser),
		docs:    make(map[string]*entry),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Supports reports whether documents in l can be parsed.
func (s *Store) Supports(l lang.ID) bool {
	return lang.Grammar(l) != nil
}

// Open parses text from scratch and replaces whatever was stored for id.
// Documents in a language without a grammar are not stored.
func (s *Store) Open(ctx context.Context, id string, l lang.ID, text string) error {
	s.drop(id)

	parser, ok := s.parser(l)
	if !ok {
		zerolog.Ctx(ctx).Debug().Str("doc", id).Str("lang", string(l)).Msg("no grammar, document not tracked")
		return nil
	}

	src := []byte(text)
	start := time.Now()
	tree, err := parser.ParseCtx(ctx, nil, src)
	s.metrics.ObserveParse(string(l), metrics.Full, time.Since(start))
	if err != nil {
		return errors.Errorf("parsing %s: %w", id, err)
	}
	if tree == nil {
		return errors.Errorf("parsing %s: parser produced no tree", id)
	}

	s.docs[id] = &entry{lang: l, src: src, tree: tree}
	zerolog.Ctx(ctx).Debug().Str("doc", id).Str("lang", string(l)).Int("bytes", len(src)).Msg("document parsed")
	return nil
}

// ApplyEdits records deltas on the stored tree in order and reparses text,
// the document after all of them, reusing the unchanged parts of the old
// tree. Unknown documents are ignored.
func (s *Store) ApplyEdits(ctx context.Context, id string, deltas []edit.Delta, text string) error {
	e, ok := s.docs[id]
	if !ok {
		return nil
	}
	parser, ok := s.parser(e.lang)
	if !ok {
		return nil
	}

	for _, d := range deltas {
		e.tree.Edit(d.EditInput())
	}

	src := []byte(text)
	start := time.Now()
	tree, err := parser.ParseCtx(ctx, e.tree, src)
	s.metrics.ObserveParse(string(e.lang), metrics.Incremental, time.Since(start))
	if tree == nil {
		// Without a fresh tree the edited one no longer matches any text.
		s.drop(id)
		if err == nil {
			err = errors.New("parser produced no tree")
		}
		return errors.Errorf("reparsing %s: %w", id, err)
	}

	if tree != e.tree {
		e.tree.Close()
	}
	e.tree = tree
	e.src = src
	if err != nil {
		return errors.Errorf("reparsing %s: %w", id, err)
	}

	zerolog.Ctx(ctx).Debug().Str("doc", id).Int("edits", len(deltas)).Msg("document reparsed")
	return nil
}

// Close forgets id. Later edits to it are ignored.
func (s *Store) Close(id string) {
	s.drop(id)
}

func (s *Store) Snapshot(id string) (Snapshot, bool) {
	e, ok := s.docs[id]
	if !ok {
		return Snapshot{}, false
	}
	return Snapshot{
		Lang: e.lang,
		Text: string(e.src),
		Root: syntax.FromSitter(e.tree.RootNode(), e.src),
	}, true
}

// Len is the number of tracked documents.
func (s *Store) Len() int {
	return len(s.docs)
}

// Release closes every tree and parser. The store must not be used after.
func (s *Store) Release() {
	for id := range s.docs {
		s.drop(id)
	}
	for l, p := range s.parsers {
		p.Close()
		delete(s.parsers, l)
	}
}

func (s *Store) drop(id string) {
	e, ok := s.docs[id]
	if !ok {
		return
	}
	e.tree.Close()
	delete(s.docs, id)
}

func (s *Store) parser(l lang.ID) (*sitter.Parser, bool) {
	if p, ok := s.parsers[l]; ok {
		return p, true
	}
	grammar := lang.Grammar(l)
	if grammar == nil {
		return nil, false
	}
	p := sitter.NewParser()
	p.SetLanguage(grammar)
	s.parsers[l] = p
	return p, true
}
