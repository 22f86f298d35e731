package layout

import (
	"github.com/matzehuels/spendgraph/pkg/errors"
)

// Default canvas padding.
const (
	DefaultPaddingTop  = 75.0
	DefaultPaddingLeft = 125.0
)

// Lanes is the number of weekday lanes per week.
const Lanes = 7

// Padding is the space reserved above the lanes and left of them.
type Padding struct {
	Top  float64 `json:"top"`
	Left float64 `json:"left"`
}

// Context carries the canvas geometry every position calculation reads.
// Build one per layout pass with NewContext.
type Context struct {
	Width          float64
	Height         float64
	Padding        Padding
	CategoryHeight float64 // height of the category band along the bottom
	LaneHeight     float64 // height of one weekday lane
}

// ContextOption configures a Context.
type ContextOption func(*Context)

// WithPadding overrides the default padding.
func WithPadding(top, left float64) ContextOption {
	return func(c *Context) {
		c.Padding = Padding{Top: top, Left: left}
	}
}

// NewContext derives the band and lane geometry for a width x height canvas.
// It rejects dimensions that leave no room for the lanes.
func NewContext(width, height float64, opts ...ContextOption) (Context, error) {
	if err := errors.ValidateViewport(width, height); err != nil {
		return Context{}, err
	}
	c := Context{
		Width:   width,
		Height:  height,
		Padding: Padding{Top: DefaultPaddingTop, Left: DefaultPaddingLeft},
	}
	for _, opt := range opts {
		opt(&c)
	}
	if c.Padding.Top < 0 || c.Padding.Left < 0 {
		return Context{}, errors.New(errors.ErrCodeInvalidViewport, "padding must not be negative, got %+v", c.Padding)
	}
	// The band clamp snaps a category Padding.Left/2 inside the edge it
	// crossed; the largest category must still fit after the snap.
	if minWidth := 2*MaxCategorySize + c.Padding.Left/2; width < minWidth {
		return Context{}, errors.New(errors.ErrCodeInvalidViewport,
			"width %v cannot hold a category of radius %v, need at least %v", width, MaxCategorySize, minWidth)
	}
	c.CategoryHeight = height / 3
	if c.CategoryHeight < 2*MaxCategorySize {
		return Context{}, errors.New(errors.ErrCodeInvalidViewport,
			"height %v leaves a category band shorter than %v", height, 2*MaxCategorySize)
	}
	c.LaneHeight = (height - c.CategoryHeight - c.Padding.Top) / Lanes
	if c.LaneHeight <= 0 {
		return Context{}, errors.New(errors.ErrCodeInvalidViewport,
			"height %v leaves no room for lanes below top padding %v", height, c.Padding.Top)
	}
	return c, nil
}

// BandTop is the y coordinate where the category band begins.
func (c Context) BandTop() float64 {
	return c.Height - c.CategoryHeight
}

// LaneY is the y offset of lane i.
func (c Context) LaneY(i int) float64 {
	return c.LaneHeight*float64(i) + c.Padding.Top
}
