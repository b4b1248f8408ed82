package main

import (
	"sort"

	"tscolor/internal/decorate"
)

// styleHandle is the handle the screen issues per decoration style name.
type styleHandle struct {
	name string
}

// screen is the rendering surface of the viewer. It remembers the latest
// ranges of every style per view and answers per-line style lookups.
type screen struct {
	handles map[string]*styleHandle
	views   map[string]map[*styleHandle][]decorate.Range
}

func newScreen() *screen {
	return &screen{
		handles: make(map[string]*styleHandle),
		views:   make(map[string]map[*styleHandle][]decorate.Range),
	}
}

func (s *screen) StyleHandle(name string) decorate.Handle {
	if h, ok := s.handles[name]; ok {
		return h
	}
	h := &styleHandle{name: name}
	s.handles[name] = h
	return h
}

func (s *screen) ApplyRanges(viewID string, h decorate.Handle, ranges []decorate.Range) {
	sh, ok := h.(*styleHandle)
	if !ok {
		return
	}
	byStyle := s.views[viewID]
	if byStyle == nil {
		byStyle = make(map[*styleHandle][]decorate.Range)
		s.views[viewID] = byStyle
	}
	if len(ranges) == 0 {
		delete(byStyle, sh)
		return
	}
	byStyle[sh] = ranges
}

func (s *screen) dropView(viewID string) {
	delete(s.views, viewID)
}

// lineStyles returns the style name of every byte of a line of length n at
// row, or nil when nothing on the row is decorated. Styles are layered in
// name order so overlapping ranges resolve the same way every frame.
func (s *screen) lineStyles(viewID string, row int, n int) []string {
	byStyle := s.views[viewID]
	if len(byStyle) == 0 {
		return nil
	}

	handles := make([]*styleHandle, 0, len(byStyle))
	for h := range byStyle {
		handles = append(handles, h)
	}
	sort.Slice(handles, func(i, j int) bool { return handles[i].name < handles[j].name })

	var out []string
	for _, h := range handles {
		for _, r := range byStyle[h] {
			if row < r.StartRow || row > r.EndRow {
				continue
			}
			start, end := 0, n
			if row == r.StartRow {
				start = r.StartCol
			}
			if row == r.EndRow {
				end = r.EndCol
			}
			start, end = clamp(start, 0, n), clamp(end, 0, n)
			if start >= end {
				continue
			}
			if out == nil {
				out = make([]string, n)
			}
			for i := start; i < end; i++ {
				out[i] = h.name
			}
		}
	}
	return out
}
