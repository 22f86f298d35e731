// Package pipeline provides the layout pipeline for Spendgraph.
//
// This package implements the complete dataset → layout → render pipeline
// used by every CLI command. By centralizing this logic, caching, logging and
// hooks behave the same no matter which command triggered a pass.
//
// # Architecture
//
// The pipeline consists of three stages:
//
//  1. Normalize: Filter the dataset to its week and build layout input
//  2. Layout: Size, link and position every node, then diff against the
//     previous snapshot
//  3. Render: Generate output in various formats (SVG, DOT, PNG, PDF, JSON)
//
// # Usage
//
// Create a Runner and execute the pipeline:
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	opts := pipeline.Options{Width: 1440, Height: 900, Formats: []string{"svg"}}
//	result, err := runner.Execute(ctx, dataset, nil, opts)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	svg := result.Artifacts["svg"]
//
// Run individual stages:
//
//	state, err := runner.ComputeLayout(ctx, dataset, opts)
//	artifacts, err := runner.Render(ctx, state, opts)
//
// Drag an expense of a computed snapshot:
//
//	session, err := runner.BeginDrag(ctx, dataset, &state, "e1", opts)
//	session.Move(x, y)
//	ev, ok, err := runner.Drop(ctx, session, dataset)
package pipeline

import (
	"encoding/json"
	"fmt"
	"io"
	"slices"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/spendgraph/pkg/cache"
	"github.com/matzehuels/spendgraph/pkg/errors"
	"github.com/matzehuels/spendgraph/pkg/layout"
)

// =============================================================================
// Default Values - Single Source of Truth
// =============================================================================

const (
	// DefaultWidth is the default window width in pixels.
	DefaultWidth = 1440.0

	// DefaultHeight is the default window height in pixels.
	DefaultHeight = 900.0

	// DefaultLeftPanel is the width of the side panel the canvas sits next to.
	DefaultLeftPanel = 325.0

	// DefaultTicks is the default simulation tick budget.
	DefaultTicks = layout.DefaultTicks

	// DefaultSeed is the default random seed for reproducibility.
	DefaultSeed = layout.DefaultSeed

	// DefaultPNGScale is the resolution multiplier for PNG output.
	DefaultPNGScale = 2.0
)

// Format constants for output formats.
const (
	FormatSVG  = "svg"
	FormatDOT  = "dot"
	FormatPNG  = "png"
	FormatPDF  = "pdf"
	FormatJSON = "json"
)

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatSVG:  true,
	FormatDOT:  true,
	FormatPNG:  true,
	FormatPDF:  true,
	FormatJSON: true,
}

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for the layout pipeline.
// It can be loaded from a TOML file with [LoadOptionsFile].
type Options struct {
	// Window options
	Width       float64 `json:"width,omitempty" toml:"width"`
	Height      float64 `json:"height,omitempty" toml:"height"`
	LeftPanel   float64 `json:"left_panel,omitempty" toml:"left_panel"`
	PaddingTop  float64 `json:"padding_top,omitempty" toml:"padding_top"`
	PaddingLeft float64 `json:"padding_left,omitempty" toml:"padding_left"`

	// Simulation options
	Ticks  int    `json:"ticks,omitempty" toml:"ticks"`
	Seed   uint64 `json:"seed,omitempty" toml:"seed"`
	Strict bool   `json:"strict,omitempty" toml:"strict"`

	// Render options
	Formats  []string `json:"formats,omitempty" toml:"formats"`
	Labels   bool     `json:"labels,omitempty" toml:"labels"`
	PNGScale float64  `json:"png_scale,omitempty" toml:"png_scale"`

	// Refresh skips cache reads; results are still written.
	Refresh bool `json:"refresh,omitempty" toml:"-"`

	// Runtime options (not serialized)
	Saved  map[string]layout.Point `json:"-" toml:"-"` // persisted category positions
	Logger *log.Logger             `json:"-" toml:"-"`

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// State is the positioned snapshot, diffed against the previous one.
	State layout.State

	// DatasetHash is the content hash of the dataset.
	DatasetHash string

	// Persist carries the category positions to save for the next pass.
	Persist layout.PersistPositions

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	// Stats contains timing and size information.
	Stats Stats

	// CacheInfo tracks which stages hit the cache.
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	CategoryCount int
	ExpenseCount  int
	LinkCount     int
	Ticks         int
	LayoutTime    time.Duration
	RenderTime    time.Duration
}

// CacheInfo tracks cache hits for each pipeline stage.
type CacheInfo struct {
	LayoutHit bool // Whether layout result came from cache
	RenderHit bool // Whether all artifacts came from cache
}

// =============================================================================
// Validation Functions
// =============================================================================

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return errors.New(errors.ErrCodeInvalidFormat,
			"invalid format: %q (must be one of: svg, dot, png, pdf, json)", format)
	}
	return nil
}

// ValidateFormats checks that all formats are valid.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// =============================================================================
// Options Methods
// =============================================================================

// ValidateAndSetDefaults checks fields and applies defaults for the full pipeline.
// This method is idempotent - calling it multiple times has the same effect as calling it once.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if err := o.ValidateForLayout(); err != nil {
		return err
	}
	if err := o.ValidateForRender(); err != nil {
		return err
	}
	o.validated = true
	return nil
}

// SetLayoutDefaults sets default values for layout computation.
func (o *Options) SetLayoutDefaults() {
	if o.Width == 0 {
		o.Width = DefaultWidth
	}
	if o.Height == 0 {
		o.Height = DefaultHeight
	}
	if o.LeftPanel == 0 {
		o.LeftPanel = DefaultLeftPanel
	}
	if o.PaddingTop == 0 {
		o.PaddingTop = layout.DefaultPaddingTop
	}
	if o.PaddingLeft == 0 {
		o.PaddingLeft = layout.DefaultPaddingLeft
	}
	if o.Ticks == 0 {
		o.Ticks = DefaultTicks
	}
	if o.Seed == 0 {
		o.Seed = DefaultSeed
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// ValidateForLayout sets layout defaults and checks that the canvas left
// after the side panel can hold the lanes.
func (o *Options) ValidateForLayout() error {
	o.SetLayoutDefaults()
	if o.Ticks < 0 {
		return errors.New(errors.ErrCodeInvalidInput, "ticks must not be negative, got %d", o.Ticks)
	}
	_, err := o.Context()
	return err
}

// SetRenderDefaults sets default values for rendering.
func (o *Options) SetRenderDefaults() {
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatSVG}
	}
	if o.PNGScale == 0 {
		o.PNGScale = DefaultPNGScale
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// ValidateForRender validates and sets defaults for rendering.
func (o *Options) ValidateForRender() error {
	o.SetRenderDefaults()
	return ValidateFormats(o.Formats)
}

// CanvasWidth is the window width minus the side panel.
func (o *Options) CanvasWidth() float64 {
	return o.Width - o.LeftPanel
}

// Context builds the layout geometry for these options.
func (o *Options) Context() (layout.Context, error) {
	return layout.NewContext(o.CanvasWidth(), o.Height,
		layout.WithPadding(o.PaddingTop, o.PaddingLeft))
}

// LayoutOptions returns the engine options for a pass.
func (o *Options) LayoutOptions() []layout.Option {
	return []layout.Option{
		layout.WithSeed(o.Seed),
		layout.WithTicks(o.Ticks),
		layout.WithStrict(o.Strict),
		layout.WithSavedPositions(o.Saved),
		layout.WithLogger(o.Logger),
	}
}

// LayoutKeyOpts returns cache key options for layout computation.
func (o *Options) LayoutKeyOpts() cache.LayoutKeyOpts {
	return cache.LayoutKeyOpts{
		Width:       o.CanvasWidth(),
		Height:      o.Height,
		PaddingTop:  o.PaddingTop,
		PaddingLeft: o.PaddingLeft,
		Ticks:       o.Ticks,
		Seed:        o.Seed,
		Strict:      o.Strict,
		SavedHash:   savedHash(o.Saved),
	}
}

// ArtifactKeyOpts returns cache key options for artifact rendering.
func (o *Options) ArtifactKeyOpts(format string) cache.ArtifactKeyOpts {
	k := cache.ArtifactKeyOpts{
		Format: format,
		Labels: o.Labels,
	}
	if format == FormatPNG {
		k.Scale = o.PNGScale
	}
	return k
}

// savedHash fingerprints persisted positions. Map keys marshal sorted.
func savedHash(saved map[string]layout.Point) string {
	if len(saved) == 0 {
		return ""
	}
	data, err := json.Marshal(saved)
	if err != nil {
		return ""
	}
	return cache.Hash(data)
}

// Merge overlays the non-zero fields of other onto o. Used to apply CLI
// flags on top of a config file.
func (o *Options) Merge(other Options) {
	if other.Width != 0 {
		o.Width = other.Width
	}
	if other.Height != 0 {
		o.Height = other.Height
	}
	if other.LeftPanel != 0 {
		o.LeftPanel = other.LeftPanel
	}
	if other.PaddingTop != 0 {
		o.PaddingTop = other.PaddingTop
	}
	if other.PaddingLeft != 0 {
		o.PaddingLeft = other.PaddingLeft
	}
	if other.Ticks != 0 {
		o.Ticks = other.Ticks
	}
	if other.Seed != 0 {
		o.Seed = other.Seed
	}
	if other.PNGScale != 0 {
		o.PNGScale = other.PNGScale
	}
	if len(other.Formats) > 0 {
		o.Formats = slices.Clone(other.Formats)
	}
	o.Strict = o.Strict || other.Strict
	o.Labels = o.Labels || other.Labels
	o.Refresh = o.Refresh || other.Refresh
	if other.Saved != nil {
		o.Saved = other.Saved
	}
	if other.Logger != nil {
		o.Logger = other.Logger
	}
	o.validated = false
}

// String summarizes the options for debug logging.
func (o Options) String() string {
	return fmt.Sprintf("%vx%v (panel %v) ticks=%d seed=%d strict=%t formats=%v",
		o.Width, o.Height, o.LeftPanel, o.Ticks, o.Seed, o.Strict, o.Formats)
}
