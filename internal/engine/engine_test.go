package engine

import (
	"context"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tscolor/internal/decorate"
	"tscolor/internal/edit"
	"tscolor/internal/lang"
	"tscolor/internal/metrics"
	"tscolor/internal/visible"
)

// screen keeps the latest ranges per view and style, the way an editor does.
type screen struct {
	applied map[string]map[string][]decorate.Range
	calls   int
}

func newScreen() *screen {
	return &screen{applied: make(map[string]map[string][]decorate.Range)}
}

func (s *screen) StyleHandle(name string) decorate.Handle { return name }

func (s *screen) ApplyRanges(viewID string, h decorate.Handle, ranges []decorate.Range) {
	s.calls++
	if s.applied[viewID] == nil {
		s.applied[viewID] = make(map[string][]decorate.Range)
	}
	s.applied[viewID][h.(string)] = ranges
}

func (s *screen) rows(viewID string, style string) []int {
	var rows []int
	for _, r := range s.applied[viewID][style] {
		rows = append(rows, r.StartRow)
	}
	return rows
}

const src = "package p\n\nfunc a() {}\n\nfunc b() {}\n\nfunc c() {}\n"

func setup(t *testing.T) (*Engine, *screen, *metrics.Metrics) {
	t.Helper()
	m := metrics.New()
	sc := newScreen()
	e := New(sc, WithMetrics(m))
	t.Cleanup(e.Release)
	return e, sc, m
}

func TestOpenDecoratesExistingViews(t *testing.T) {
	e, sc, _ := setup(t)
	ctx := context.Background()

	e.VisibleRangesChanged(ctx, "v1", "a.go", []visible.Range{{Start: 0, End: 100}})
	assert.Empty(t, sc.applied["v1"]["function"])

	require.NoError(t, e.DocumentOpened(ctx, "a.go", lang.Go, src))
	assert.Equal(t, []int{2, 4, 6}, sc.rows("v1", "function"))
}

func TestViewportChangeDoesNotReparse(t *testing.T) {
	e, sc, m := setup(t)
	ctx := context.Background()
	require.NoError(t, e.DocumentOpened(ctx, "a.go", lang.Go, src))

	e.VisibleRangesChanged(ctx, "v1", "a.go", []visible.Range{{Start: 0, End: 2}})
	assert.Equal(t, []int{2}, sc.rows("v1", "function"))

	e.VisibleRangesChanged(ctx, "v1", "a.go", []visible.Range{{Start: 6, End: 6}})
	assert.Equal(t, []int{6}, sc.rows("v1", "function"))

	// Row 3 is one row of slack away from both b (row 4) and a (row 2).
	e.VisibleRangesChanged(ctx, "v1", "a.go", []visible.Range{{Start: 3, End: 3}})
	assert.Equal(t, []int{2, 4}, sc.rows("v1", "function"))

	assert.Equal(t, 1.0, testutil.ToFloat64(m.ParsesTotal.WithLabelValues("go", metrics.Full)))
	assert.Zero(t, testutil.ToFloat64(m.ParsesTotal.WithLabelValues("go", metrics.Incremental)))
}

func TestChangeRedecoratesEveryView(t *testing.T) {
	e, sc, m := setup(t)
	ctx := context.Background()
	require.NoError(t, e.DocumentOpened(ctx, "a.go", lang.Go, src))
	e.VisibleRangesChanged(ctx, "top", "a.go", []visible.Range{{Start: 0, End: 3}})
	e.VisibleRangesChanged(ctx, "all", "a.go", []visible.Range{{Start: 0, End: 100}})

	// Rename a and insert a new function before it.
	off := strings.Index(src, "func a")
	require.NoError(t, e.DocumentChanged(ctx, "a.go", []edit.Change{
		{Offset: off + len("func "), RemovedLength: 1, Text: "alpha"},
		{Offset: off, Text: "func z() {}\n\n"},
	}))

	text, ok := e.Text("a.go")
	require.True(t, ok)
	assert.Equal(t, "package p\n\nfunc z() {}\n\nfunc alpha() {}\n\nfunc b() {}\n\nfunc c() {}\n", text)
	assert.Equal(t, []int{2, 4}, sc.rows("top", "function"))
	assert.Equal(t, []int{2, 4, 6, 8}, sc.rows("all", "function"))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.ParsesTotal.WithLabelValues("go", metrics.Incremental)))
}

func TestEmptyBatchIsShortCircuited(t *testing.T) {
	e, sc, m := setup(t)
	ctx := context.Background()
	require.NoError(t, e.DocumentOpened(ctx, "a.go", lang.Go, src))
	e.VisibleRangesChanged(ctx, "v1", "a.go", []visible.Range{{Start: 0, End: 100}})
	calls := sc.calls

	require.NoError(t, e.DocumentChanged(ctx, "a.go", nil))
	assert.Equal(t, calls, sc.calls)
	assert.Zero(t, testutil.ToFloat64(m.ParsesTotal.WithLabelValues("go", metrics.Incremental)))
}

func TestUnknownDocumentIsIgnored(t *testing.T) {
	e, sc, _ := setup(t)
	ctx := context.Background()

	require.NoError(t, e.DocumentChanged(ctx, "missing.go", []edit.Change{{Offset: 0, Text: "x"}}))
	_, ok := e.Text("missing.go")
	assert.False(t, ok)
	_, ok = e.Classify("missing.go", visible.Everything)
	assert.False(t, ok)
	assert.Zero(t, sc.calls)
}

func TestUnsupportedLanguageIsSkipped(t *testing.T) {
	e, sc, m := setup(t)
	ctx := context.Background()
	e.VisibleRangesChanged(ctx, "v1", "notes.txt", []visible.Range{{Start: 0, End: 10}})

	require.NoError(t, e.DocumentOpened(ctx, "notes.txt", lang.Plain, "func a() {}\n"))
	require.NoError(t, e.DocumentChanged(ctx, "notes.txt", []edit.Change{{Offset: 0, Text: "x"}}))

	text, _ := e.Text("notes.txt")
	assert.Equal(t, "xfunc a() {}\n", text)
	assert.Empty(t, sc.applied["v1"])
	assert.Zero(t, testutil.CollectAndCount(m.ParsesTotal))
}

func TestCloseDropsTree(t *testing.T) {
	e, _, m := setup(t)
	ctx := context.Background()
	require.NoError(t, e.DocumentOpened(ctx, "a.go", lang.Go, src))
	e.DocumentClosed("a.go")

	require.NoError(t, e.DocumentChanged(ctx, "a.go", []edit.Change{{Offset: 0, Text: "// c\n"}}))
	_, ok := e.Classify("a.go", visible.Everything)
	assert.False(t, ok)
	assert.Zero(t, testutil.ToFloat64(m.ParsesTotal.WithLabelValues("go", metrics.Incremental)))
}

func TestClosedViewIsNotRedecorated(t *testing.T) {
	e, sc, _ := setup(t)
	ctx := context.Background()
	require.NoError(t, e.DocumentOpened(ctx, "a.go", lang.Go, src))
	e.VisibleRangesChanged(ctx, "v1", "a.go", []visible.Range{{Start: 0, End: 100}})
	require.Equal(t, []int{2, 4, 6}, sc.rows("v1", "function"))

	e.CloseView("v1")
	assert.Empty(t, sc.rows("v1", "function"))

	calls := sc.calls
	require.NoError(t, e.DocumentChanged(ctx, "a.go", []edit.Change{{Offset: len(src), Text: "func d() {}\n"}}))
	assert.Empty(t, sc.rows("v1", "function"))
	assert.Equal(t, calls, sc.calls)

	e.CloseView("v1")
	assert.Equal(t, calls, sc.calls)
}

func TestReopenWithoutClassifierClearsViews(t *testing.T) {
	e, sc, _ := setup(t)
	ctx := context.Background()
	require.NoError(t, e.DocumentOpened(ctx, "a.go", lang.Go, src))
	e.VisibleRangesChanged(ctx, "v1", "a.go", []visible.Range{{Start: 0, End: 100}})
	require.Equal(t, []int{2, 4, 6}, sc.rows("v1", "function"))

	require.NoError(t, e.DocumentOpened(ctx, "a.go", lang.Plain, src))
	assert.Empty(t, sc.rows("v1", "function"))
	_, ok := e.Classify("a.go", visible.Everything)
	assert.False(t, ok)

	text, ok := e.Text("a.go")
	require.True(t, ok)
	assert.Equal(t, src, text)
}

func TestMarginOption(t *testing.T) {
	sc := newScreen()
	e := New(sc, WithMargin(0))
	t.Cleanup(e.Release)
	ctx := context.Background()
	require.NoError(t, e.DocumentOpened(ctx, "a.go", lang.Go, src))

	e.VisibleRangesChanged(ctx, "v1", "a.go", []visible.Range{{Start: 3, End: 3}})
	assert.Empty(t, sc.rows("v1", "function"))
}
