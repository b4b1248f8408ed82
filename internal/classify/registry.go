package classify

import (
	"sort"

	"tscolor/internal/lang"
)

// Registry maps language identifiers to classifiers.
type Registry struct {
	byLang map[lang.ID]Classifier
}

func NewRegistry(classifiers ...Classifier) *Registry {
	r := &Registry{byLang: make(map[lang.ID]Classifier, len(classifiers))}
	for _, c := range classifiers {
		r.Register(c)
	}
	return r
}

// Register adds c, replacing any classifier already bound to its language.
func (r *Registry) Register(c Classifier) {
	r.byLang[c.Language()] = c
}

// RegisterAs binds c to another language that shares its grammar.
func (r *Registry) RegisterAs(id lang.ID, c Classifier) {
	r.byLang[id] = c
}

func (r *Registry) Lookup(id lang.ID) (Classifier, bool) {
	c, ok := r.byLang[id]
	return c, ok
}

func (r *Registry) Languages() []lang.ID {
	ids := make([]lang.ID, 0, len(r.byLang))
	for id := range r.byLang {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// DefaultRegistry holds every built-in grammar. JavaScript and TSX reuse the
// TypeScript rules.
func DefaultRegistry() *Registry {
	ts := TypeScript()
	r := NewRegistry(Go(), ts, Rust(), Cpp(), JSON())
	r.RegisterAs(lang.JavaScript, ts)
	r.RegisterAs(lang.TSX, ts)
	return r
}
