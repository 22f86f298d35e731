package pipeline

import (
	"context"
	"encoding/json"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/shopspring/decimal"

	"github.com/matzehuels/spendgraph/pkg/cache"
	"github.com/matzehuels/spendgraph/pkg/errors"
	"github.com/matzehuels/spendgraph/pkg/finance"
	"github.com/matzehuels/spendgraph/pkg/graph"
	"github.com/matzehuels/spendgraph/pkg/layout"
	"github.com/matzehuels/spendgraph/pkg/observability"
)

var week = time.Date(2015, 6, 7, 0, 0, 0, 0, time.UTC)

func testDataset() *finance.Dataset {
	return &finance.Dataset{
		Week: week,
		Categories: []finance.Category{
			{ID: "food", Name: "Food"},
			{ID: "fun", Name: "Fun"},
		},
		Expenses: []finance.Expense{
			{ID: "e1", Name: "Lunch", Amount: decimal.RequireFromString("12.50"), Timestamp: week.Add(36 * time.Hour), Categories: []string{"food"}},
			{ID: "e2", Name: "Cinema", Amount: decimal.RequireFromString("20"), Timestamp: week.Add(60 * time.Hour), Categories: []string{"fun", "food"}},
			{ID: "e3", Name: "Taxi", Amount: decimal.RequireFromString("9.80"), Timestamp: week.Add(100 * time.Hour)},
			{ID: "old", Name: "Last week", Amount: decimal.RequireFromString("5"), Timestamp: week.Add(-time.Hour), Categories: []string{"fun"}},
		},
	}
}

// offline formats need neither Graphviz nor librsvg.
func offlineOptions() Options {
	return Options{Formats: []string{FormatDOT, FormatJSON}, Ticks: 200}
}

func positions(s layout.State) map[string]layout.Point {
	m := make(map[string]layout.Point)
	for _, c := range s.Categories {
		m["c:"+c.ID] = layout.Point{X: c.X, Y: c.Y}
	}
	for _, e := range s.Expenses {
		m["e:"+e.ID] = layout.Point{X: e.X, Y: e.Y}
	}
	return m
}

func TestExecute(t *testing.T) {
	r := NewRunner(nil, nil, nil)
	result, err := r.Execute(context.Background(), testDataset(), nil, offlineOptions())
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}

	if result.Stats.CategoryCount != 2 || result.Stats.ExpenseCount != 3 || result.Stats.LinkCount != 3 {
		t.Errorf("Stats = %+v, want 2 categories, 3 expenses, 3 links", result.Stats)
	}
	if result.DatasetHash == "" {
		t.Error("DatasetHash should be set")
	}
	if result.CacheInfo.LayoutHit || result.CacheInfo.RenderHit {
		t.Errorf("NullCache should never hit: %+v", result.CacheInfo)
	}

	// Without a previous snapshot nothing has a counterpart to differ from.
	for _, c := range result.State.Categories {
		if c.Update {
			t.Errorf("category %s flagged as updated without a previous snapshot", c.ID)
		}
	}

	var ids []string
	for _, c := range result.Persist.Categories {
		ids = append(ids, c.ID)
	}
	if diff := cmp.Diff([]string{"food", "fun"}, ids); diff != "" {
		t.Errorf("Persist ids mismatch (-want +got):\n%s", diff)
	}

	dot := string(result.Artifacts[FormatDOT])
	if !strings.Contains(dot, `"category:food" -- "expense:e1"`) {
		t.Errorf("dot artifact missing link:\n%s", dot)
	}
	l, err := graph.UnmarshalLayout(result.Artifacts[FormatJSON])
	if err != nil {
		t.Fatalf("json artifact: %v", err)
	}
	if len(l.Expenses) != 3 {
		t.Errorf("json artifact has %d expenses, want 3", len(l.Expenses))
	}
}

func TestExecuteUnchangedSecondPass(t *testing.T) {
	r := NewRunner(nil, nil, nil)
	ctx := context.Background()
	first, err := r.Execute(ctx, testDataset(), nil, offlineOptions())
	if err != nil {
		t.Fatal(err)
	}
	second, err := r.Execute(ctx, testDataset(), &first.State, offlineOptions())
	if err != nil {
		t.Fatal(err)
	}
	for _, c := range second.State.Categories {
		if c.Update {
			t.Errorf("category %s flagged as updated on an identical pass", c.ID)
		}
	}
	for _, e := range second.State.Expenses {
		if e.Update {
			t.Errorf("expense %s flagged as updated on an identical pass", e.ID)
		}
	}
}

func TestExecuteInvalid(t *testing.T) {
	r := NewRunner(nil, nil, nil)
	ctx := context.Background()

	if _, err := r.Execute(ctx, testDataset(), nil, Options{Formats: []string{"gif"}}); !errors.Is(err, errors.ErrCodeInvalidFormat) {
		t.Errorf("bad format error = %v", err)
	}
	if _, err := r.Execute(ctx, testDataset(), nil, Options{Width: 100}); !errors.Is(err, errors.ErrCodeInvalidViewport) {
		t.Errorf("bad viewport error = %v", err)
	}
	if _, err := r.Execute(ctx, nil, nil, offlineOptions()); !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("nil dataset error = %v", err)
	}

	d := testDataset()
	d.Expenses[0].Categories = []string{"ghost"}
	opts := offlineOptions()
	opts.Strict = true
	if _, err := r.Execute(ctx, d, nil, opts); !errors.Is(err, errors.ErrCodeDanglingReference) {
		t.Errorf("strict dangling error = %v", err)
	}
	if _, err := r.Execute(ctx, d, nil, offlineOptions()); err != nil {
		t.Errorf("non-strict dangling reference should be dropped: %v", err)
	}
}

func TestExecuteCached(t *testing.T) {
	fc, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	r := NewRunner(fc, nil, nil)
	defer r.Close()
	ctx := context.Background()

	first, err := r.Execute(ctx, testDataset(), nil, offlineOptions())
	if err != nil {
		t.Fatal(err)
	}
	second, err := r.Execute(ctx, testDataset(), nil, offlineOptions())
	if err != nil {
		t.Fatal(err)
	}
	if !second.CacheInfo.LayoutHit || !second.CacheInfo.RenderHit {
		t.Errorf("second run CacheInfo = %+v, want hits", second.CacheInfo)
	}
	if diff := cmp.Diff(positions(first.State), positions(second.State)); diff != "" {
		t.Errorf("cached layout differs (-fresh +cached):\n%s", diff)
	}

	refresh := offlineOptions()
	refresh.Refresh = true
	third, err := r.Execute(ctx, testDataset(), nil, refresh)
	if err != nil {
		t.Fatal(err)
	}
	if third.CacheInfo.LayoutHit {
		t.Error("Refresh should bypass the layout cache")
	}

	changed := offlineOptions()
	changed.Seed = 7
	fourth, err := r.Execute(ctx, testDataset(), nil, changed)
	if err != nil {
		t.Fatal(err)
	}
	if fourth.CacheInfo.LayoutHit {
		t.Error("a different seed must not hit the cached layout")
	}
}

func TestExecuteSavedPositions(t *testing.T) {
	r := NewRunner(nil, nil, nil)
	ctx := context.Background()
	first, err := r.Execute(ctx, testDataset(), nil, offlineOptions())
	if err != nil {
		t.Fatal(err)
	}

	opts := offlineOptions()
	opts.Saved = first.Persist.Saved()
	second, err := r.Execute(ctx, testDataset(), nil, opts)
	if err != nil {
		t.Fatal(err)
	}
	// Both passes end inside the category band regardless of the start.
	for _, c := range second.State.Categories {
		if c.Y+c.Size > second.State.Height+1e-9 || c.Y-c.Size < second.State.Height*2/3-1e-9 {
			t.Errorf("category %s at y=%v (size %v) left the band", c.ID, c.Y, c.Size)
		}
	}
}

func TestDragAndDrop(t *testing.T) {
	r := NewRunner(nil, nil, nil)
	ctx := context.Background()
	d := testDataset()
	result, err := r.Execute(ctx, d, nil, offlineOptions())
	if err != nil {
		t.Fatal(err)
	}

	session, err := r.BeginDrag(ctx, d, &result.State, "e3", offlineOptions())
	if err != nil {
		t.Fatalf("BeginDrag: %v", err)
	}
	for _, c := range session.State().Categories {
		if c.Size != layout.DragCategorySize {
			t.Errorf("drag category %s size = %v, want %v", c.ID, c.Size, layout.DragCategorySize)
		}
	}

	target := session.State().Categories[0]
	session.Move(target.X, target.Y)
	hit, ok := layout.FindOverlappingCategory(session.State().Categories, target.X, target.Y)
	if !ok {
		t.Fatal("moving onto a category centre must overlap it")
	}

	ev, changed, err := r.Drop(ctx, session, d)
	if err != nil {
		t.Fatalf("Drop: %v", err)
	}
	if ev == nil || ev.ExpenseID != "e3" || ev.CategoryID != hit.ID {
		t.Fatalf("Drop() = %+v, want e3 -> %s", ev, hit.ID)
	}
	if !changed {
		t.Error("an uncategorized expense should change on drop")
	}
	e, _ := d.Expense("e3")
	if !e.InCategory(hit.ID) {
		t.Errorf("dataset expense e3 categories = %v, want %s", e.Categories, hit.ID)
	}

	// A finished session drops nothing.
	if ev, changed, err := r.Drop(ctx, session, d); ev != nil || changed || err != nil {
		t.Errorf("second Drop() = %v, %v, %v", ev, changed, err)
	}
}

func TestDropMiss(t *testing.T) {
	r := NewRunner(nil, nil, nil)
	ctx := context.Background()
	d := testDataset()
	result, err := r.Execute(ctx, d, nil, offlineOptions())
	if err != nil {
		t.Fatal(err)
	}
	session, err := r.BeginDrag(ctx, d, &result.State, "e1", offlineOptions())
	if err != nil {
		t.Fatal(err)
	}
	session.Move(-1000, -1000)
	ev, changed, err := r.Drop(ctx, session, d)
	if ev != nil || changed || err != nil {
		t.Errorf("Drop() off canvas = %v, %v, %v", ev, changed, err)
	}

	if _, err := r.BeginDrag(ctx, d, &result.State, "nope", offlineOptions()); !errors.Is(err, errors.ErrCodeExpenseNotFound) {
		t.Errorf("BeginDrag unknown expense error = %v", err)
	}
}

type recordingHooks struct {
	observability.NoopPipelineHooks
	observability.NoopDragHooks

	mu     sync.Mutex
	events []string
}

func (h *recordingHooks) record(ev string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.events = append(h.events, ev)
}

func (h *recordingHooks) OnLayoutStart(context.Context, int, int) { h.record("layout-start") }
func (h *recordingHooks) OnLayoutComplete(_ context.Context, _ string, _ int, _ time.Duration, err error) {
	h.record("layout-complete")
}
func (h *recordingHooks) OnRenderStart(context.Context, []string) { h.record("render-start") }
func (h *recordingHooks) OnRenderComplete(context.Context, []string, time.Duration, error) {
	h.record("render-complete")
}
func (h *recordingHooks) OnDragStart(context.Context, string, string) { h.record("drag-start") }
func (h *recordingHooks) OnDrop(_ context.Context, _, _, categoryID string) {
	h.record("drop:" + categoryID)
}

func TestRunnerHooks(t *testing.T) {
	hooks := &recordingHooks{}
	observability.SetPipelineHooks(hooks)
	observability.SetDragHooks(hooks)
	t.Cleanup(observability.Reset)

	r := NewRunner(nil, nil, nil)
	ctx := context.Background()
	d := testDataset()
	result, err := r.Execute(ctx, d, nil, offlineOptions())
	if err != nil {
		t.Fatal(err)
	}
	session, err := r.BeginDrag(ctx, d, &result.State, "e1", offlineOptions())
	if err != nil {
		t.Fatal(err)
	}
	session.Move(-1000, -1000)
	if _, _, err := r.Drop(ctx, session, nil); err != nil {
		t.Fatal(err)
	}

	want := []string{"layout-start", "layout-complete", "render-start", "render-complete", "drag-start", "drop:"}
	if diff := cmp.Diff(want, hooks.events); diff != "" {
		t.Errorf("hook events mismatch (-want +got):\n%s", diff)
	}
}

func TestRenderFromState(t *testing.T) {
	r := NewRunner(nil, nil, nil)
	state, err := r.ComputeLayout(context.Background(), testDataset(), offlineOptions())
	if err != nil {
		t.Fatal(err)
	}

	artifacts, err := RenderFromState(context.Background(), state, Options{Formats: []string{FormatJSON}, Labels: true})
	if err != nil {
		t.Fatal(err)
	}
	var decoded map[string]any
	if err := json.Unmarshal(artifacts[FormatJSON], &decoded); err != nil {
		t.Fatalf("json artifact is not JSON: %v", err)
	}
	if _, ok := decoded["categories"]; !ok {
		t.Error("json artifact missing categories")
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := RenderFromState(ctx, state, Options{Formats: []string{FormatDOT}}); err == nil {
		t.Error("RenderFromState with a cancelled context should fail")
	}
}
