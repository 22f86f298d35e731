package layout

import (
	"io"

	"github.com/charmbracelet/log"
)

// Option configures a layout pass.
type Option func(*options)

type options struct {
	seed   uint64
	ticks  int
	strict bool
	saved  map[string]Point
	logger *log.Logger
}

func newOptions(opts []Option) options {
	o := options{seed: DefaultSeed, ticks: DefaultTicks}
	for _, opt := range opts {
		opt(&o)
	}
	if o.logger == nil {
		o.logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	return o
}

// WithSeed sets the seed for starting positions of unanchored categories.
func WithSeed(seed uint64) Option {
	return func(o *options) { o.seed = seed }
}

// WithTicks sets the tick budget. Non-positive values keep the default.
func WithTicks(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.ticks = n
		}
	}
}

// WithStrict makes dangling references fail with DANGLING_REFERENCE
// instead of being dropped.
func WithStrict(strict bool) Option {
	return func(o *options) { o.strict = strict }
}

// WithSavedPositions starts the listed categories at previously persisted
// positions.
func WithSavedPositions(saved map[string]Point) Option {
	return func(o *options) { o.saved = saved }
}

// WithLogger sets the logger for diagnostics.
func WithLogger(l *log.Logger) Option {
	return func(o *options) { o.logger = l }
}
