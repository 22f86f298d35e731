package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/spendgraph/pkg/cache"
	"github.com/matzehuels/spendgraph/pkg/errors"
	"github.com/matzehuels/spendgraph/pkg/finance"
	"github.com/matzehuels/spendgraph/pkg/graph"
	"github.com/matzehuels/spendgraph/pkg/layout"
	"github.com/matzehuels/spendgraph/pkg/observability"
)

// Runner encapsulates pipeline execution with caching.
//
// The Runner is stateless except for the cache and logger - it doesn't
// store pipeline results. Multiple goroutines can safely use the same
// Runner with different options, since every layout pass builds its own
// context and simulation.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
	}
}

// Execute runs the complete normalize → layout → render pipeline with
// caching. prev is the snapshot currently on screen, or nil; the result's
// State carries update flags relative to it.
func (r *Runner) Execute(ctx context.Context, d *finance.Dataset, prev *layout.State, opts Options) (*Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}
	r.applyLogger(&opts)

	result := &Result{}

	// Stage 1+2: Normalize and layout
	layoutStart := time.Now()
	state, layoutHit, err := r.ComputeLayoutWithCacheInfo(ctx, d, opts)
	if err != nil {
		return nil, fmt.Errorf("layout: %w", err)
	}
	layout.CalculateUpdate(prev, &state)
	result.State = state
	result.Persist = state.PersistPositions()
	result.Stats.LayoutTime = time.Since(layoutStart)
	result.Stats.CategoryCount = len(state.Categories)
	result.Stats.ExpenseCount = len(state.Expenses)
	result.Stats.LinkCount = len(state.Links)
	result.Stats.Ticks = state.Stats.Ticks
	result.CacheInfo.LayoutHit = layoutHit
	result.DatasetHash, _ = datasetHash(d)

	r.Logger.Info("computed layout",
		"categories", result.Stats.CategoryCount,
		"expenses", result.Stats.ExpenseCount,
		"ticks", result.Stats.Ticks,
		"cached", layoutHit,
		"duration", result.Stats.LayoutTime)

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	// Stage 3: Render
	renderStart := time.Now()
	artifacts, renderHit, err := r.RenderWithCacheInfo(ctx, state, opts)
	if err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	result.Artifacts = artifacts
	result.Stats.RenderTime = time.Since(renderStart)
	result.CacheInfo.RenderHit = renderHit

	r.Logger.Info("rendered outputs",
		"formats", opts.Formats,
		"duration", result.Stats.RenderTime)

	return result, nil
}

// ComputeLayoutWithCacheInfo lays out the dataset's week with caching and
// returns cache hit info. Update flags of the returned state are unset.
func (r *Runner) ComputeLayoutWithCacheInfo(ctx context.Context, d *finance.Dataset, opts Options) (layout.State, bool, error) {
	if d == nil {
		return layout.State{}, false, errors.New(errors.ErrCodeInvalidInput, "dataset is required")
	}
	if err := opts.ValidateForLayout(); err != nil {
		return layout.State{}, false, err
	}
	r.applyLogger(&opts)

	hash, err := datasetHash(d)
	if err != nil {
		return layout.State{}, false, err
	}
	cacheKey := r.Keyer.LayoutKey(hash, opts.LayoutKeyOpts())

	// Try cache first (unless refresh requested)
	if !opts.Refresh {
		if data, hit, err := r.Cache.Get(ctx, cacheKey); err == nil && hit {
			if cached, err := graph.UnmarshalLayout(data); err == nil {
				if state, err := graph.ToState(cached); err == nil {
					observability.Cache().OnCacheHit(ctx, "layout")
					return state, true, nil
				}
			}
			// If deserialization fails, fall through to recompute
		}
		observability.Cache().OnCacheMiss(ctx, "layout")
	}

	state, err := r.buildLayout(ctx, d, opts)
	if err != nil {
		return layout.State{}, false, err
	}

	if data, err := graph.MarshalLayout(graph.FromState(state)); err == nil {
		if err := r.Cache.Set(ctx, cacheKey, data, cache.LayoutTTL); err != nil {
			r.Logger.Warn("cache layout", "error", err)
		} else {
			observability.Cache().OnCacheSet(ctx, "layout", len(data))
		}
	}
	return state, false, nil
}

// ComputeLayout is a convenience wrapper that calls ComputeLayoutWithCacheInfo and discards the cache hit info.
func (r *Runner) ComputeLayout(ctx context.Context, d *finance.Dataset, opts Options) (layout.State, error) {
	state, _, err := r.ComputeLayoutWithCacheInfo(ctx, d, opts)
	return state, err
}

func (r *Runner) buildLayout(ctx context.Context, d *finance.Dataset, opts Options) (layout.State, error) {
	lctx, err := opts.Context()
	if err != nil {
		return layout.State{}, err
	}
	in := layout.InputFromDataset(d)
	opts.Logger.Debug("layout input",
		"week", in.Week.Format(time.DateOnly),
		"categories", len(in.Categories),
		"expenses", len(in.Expenses),
		"options", opts.String())

	hooks := observability.Pipeline()
	hooks.OnLayoutStart(ctx, len(in.Categories), len(in.Expenses))
	start := time.Now()
	state, err := layout.Build(lctx, in, opts.LayoutOptions()...)
	hooks.OnLayoutComplete(ctx, state.Stats.SessionID.String(), state.Stats.Ticks, time.Since(start), err)
	if err != nil {
		return layout.State{}, err
	}
	return state, nil
}

// BeginDrag lays the categories out around one expense of current, the
// snapshot on screen. Saved positions are ignored while dragging.
func (r *Runner) BeginDrag(ctx context.Context, d *finance.Dataset, current *layout.State, expenseID string, opts Options) (*layout.DragSession, error) {
	if d == nil {
		return nil, errors.New(errors.ErrCodeInvalidInput, "dataset is required")
	}
	if err := opts.ValidateForLayout(); err != nil {
		return nil, err
	}
	r.applyLogger(&opts)
	opts.Saved = nil

	lctx, err := opts.Context()
	if err != nil {
		return nil, err
	}
	session, err := layout.BeginDrag(lctx, layout.InputFromDataset(d), current, expenseID, opts.LayoutOptions()...)
	if err != nil {
		return nil, err
	}
	observability.Drag().OnDragStart(ctx, session.ID.String(), expenseID)
	r.Logger.Debug("drag started", "session", session.ID, "expense", expenseID)
	return session, nil
}

// Drop ends a drag session. When the expense lands on a category and d is
// not nil, the reclassification is applied to d. changed reports whether d
// was modified.
func (r *Runner) Drop(ctx context.Context, session *layout.DragSession, d *finance.Dataset) (ev *layout.Reclassification, changed bool, err error) {
	ev, ok := session.Drop()
	categoryID := ""
	if ok {
		categoryID = ev.CategoryID
	}
	observability.Drag().OnDrop(ctx, session.ID.String(), session.ExpenseID, categoryID)
	if !ok {
		r.Logger.Debug("drop missed every category", "expense", session.ExpenseID)
		return nil, false, nil
	}
	if d == nil {
		return ev, false, nil
	}
	changed, err = d.AddExpenseToCategory(ev.ExpenseID, ev.CategoryID)
	if err != nil {
		return ev, false, err
	}
	r.Logger.Info("reclassified expense", "expense", ev.ExpenseID, "category", ev.CategoryID, "changed", changed)
	return ev, changed, nil
}

// RenderWithCacheInfo generates artifacts with caching and returns cache hit info.
func (r *Runner) RenderWithCacheInfo(ctx context.Context, state layout.State, opts Options) (map[string][]byte, bool, error) {
	if err := opts.ValidateForRender(); err != nil {
		return nil, false, err
	}
	r.applyLogger(&opts)

	// Compute cache key from layout data
	layoutData, err := graph.MarshalLayout(graph.FromState(state))
	if err != nil {
		return nil, false, fmt.Errorf("serialize layout for cache key: %w", err)
	}
	cacheKeyHash := cache.Hash(layoutData)

	// Try to get all formats from cache
	allCached := !opts.Refresh
	artifacts := make(map[string][]byte)

	for _, format := range opts.Formats {
		if !allCached {
			break
		}
		cacheKey := r.Keyer.ArtifactKey(cacheKeyHash, opts.ArtifactKeyOpts(format))
		if data, hit, err := r.Cache.Get(ctx, cacheKey); err == nil && hit {
			artifacts[format] = data
		} else {
			allCached = false
		}
	}

	if allCached && len(artifacts) == len(opts.Formats) {
		observability.Cache().OnCacheHit(ctx, "artifact")
		return artifacts, true, nil // All artifacts from cache
	}
	observability.Cache().OnCacheMiss(ctx, "artifact")

	hooks := observability.Pipeline()
	hooks.OnRenderStart(ctx, opts.Formats)
	start := time.Now()
	rendered, err := RenderFromState(ctx, state, opts)
	hooks.OnRenderComplete(ctx, opts.Formats, time.Since(start), err)
	if err != nil {
		return nil, false, err
	}

	// Cache each format
	for format, data := range rendered {
		cacheKey := r.Keyer.ArtifactKey(cacheKeyHash, opts.ArtifactKeyOpts(format))
		if err := r.Cache.Set(ctx, cacheKey, data, cache.ArtifactTTL); err == nil {
			observability.Cache().OnCacheSet(ctx, "artifact", len(data))
		}
	}

	return rendered, false, nil // Cache miss
}

// Render is a convenience wrapper that calls RenderWithCacheInfo and discards the cache hit info.
func (r *Runner) Render(ctx context.Context, state layout.State, opts Options) (map[string][]byte, error) {
	artifacts, _, err := r.RenderWithCacheInfo(ctx, state, opts)
	return artifacts, err
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}

func datasetHash(d *finance.Dataset) (string, error) {
	data, err := finance.MarshalDataset(d)
	if err != nil {
		return "", fmt.Errorf("serialize dataset for cache key: %w", err)
	}
	return cache.Hash(data), nil
}
