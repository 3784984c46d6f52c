// SPDX-License-Identifier: MIT

package cartogram

import (
	"io"
	"math"

	"github.com/charmbracelet/log"

	"github.com/katalvlaran/cartogram/grid"
	"github.com/katalvlaran/cartogram/parallel"
	"github.com/katalvlaran/cartogram/spectral"
)

// Defaults.
const (
	// DefaultMaxAreaError is the permitted maximum relative area error.
	DefaultMaxAreaError = 0.01

	// DefaultPerimeterThreshold toggles the small-region enlargement heuristic.
	DefaultPerimeterThreshold = false

	// DefaultScaleToOriginal maps results back into caller coordinates.
	DefaultScaleToOriginal = true

	// DefaultMaxPasses caps the number of outer flow passes.
	DefaultMaxPasses = 64
)

const (
	panicMaxAreaError = "cartogram: WithMaxAreaError: threshold must be finite and non-negative"
	panicResolution   = "cartogram: WithResolution: resolution must be a power of two >= 8"
	panicBlurWidth    = "cartogram: WithBlurWidth: width must be finite and non-negative"
	panicMaxPasses    = "cartogram: WithMaxPasses: limit must be positive"
	panicNilPolicy    = "cartogram: WithParallelism: policy must not be nil"
	panicNilTransform = "cartogram: WithTransformer: transformer must not be nil"
)

// Option configures Run. Constructors panic on nonsensical values.
type Option func(*options)

type options struct {
	maxAreaError       float64
	perimeterThreshold bool
	scaleToOriginal    bool
	policy             parallel.Policy
	logger             *log.Logger
	transformer        spectral.Transformer // nil: FFT on policy
	resolution         int
	blurWidth          float64
	maxPasses          int
}

// gatherOptions applies opts over the defaults.
func gatherOptions(opts []Option) options {
	o := options{
		maxAreaError:       DefaultMaxAreaError,
		perimeterThreshold: DefaultPerimeterThreshold,
		scaleToOriginal:    DefaultScaleToOriginal,
		policy:             parallel.Sequential{},
		resolution:         grid.DefaultResolution,
		blurWidth:          grid.DefaultBlurWidth,
		maxPasses:          DefaultMaxPasses,
	}
	for _, opt := range opts {
		opt(&o)
	}
	if o.logger == nil {
		o.logger = log.New(io.Discard)
	}

	return o
}

// WithMaxAreaError sets the permitted maximum area error. Panics when
// threshold is negative or not finite.
func WithMaxAreaError(threshold float64) Option {
	if math.IsNaN(threshold) || math.IsInf(threshold, 0) || threshold < 0 {
		panic(panicMaxAreaError)
	}

	return func(o *options) { o.maxAreaError = threshold }
}

// WithPerimeterThreshold enables or disables the enlargement of regions
// whose target share is small compared to their perimeter share.
func WithPerimeterThreshold(on bool) Option {
	return func(o *options) { o.perimeterThreshold = on }
}

// WithScaleToOriginal chooses between caller coordinates (true) and L-space
// coordinates (false) for the result.
func WithScaleToOriginal(on bool) Option {
	return func(o *options) { o.scaleToOriginal = on }
}

// WithParallelism sets the policy used for per-cell work.
func WithParallelism(pol parallel.Policy) Option {
	if pol == nil {
		panic(panicNilPolicy)
	}

	return func(o *options) { o.policy = pol }
}

// WithLogger sets the logger; nil restores the discarding default.
func WithLogger(l *log.Logger) Option {
	return func(o *options) { o.logger = l }
}

// WithTransformer replaces the spectral backend. Run verifies it against
// the spectral fixtures and fails with ErrTransformRejected when it does
// not reproduce them.
func WithTransformer(tr spectral.Transformer) Option {
	if tr == nil {
		panic(panicNilTransform)
	}

	return func(o *options) { o.transformer = tr }
}

// WithResolution sets the cell count along the longer side of the lattice.
func WithResolution(n int) Option {
	if n < grid.MinResolution || n&(n-1) != 0 {
		panic(panicResolution)
	}

	return func(o *options) { o.resolution = n }
}

// WithBlurWidth sets the Gaussian smoothing width in cells.
func WithBlurWidth(w float64) Option {
	if math.IsNaN(w) || math.IsInf(w, 0) || w < 0 {
		panic(panicBlurWidth)
	}

	return func(o *options) { o.blurWidth = w }
}

// WithMaxPasses caps the number of outer flow passes.
func WithMaxPasses(n int) Option {
	if n <= 0 {
		panic(panicMaxPasses)
	}

	return func(o *options) { o.maxPasses = n }
}
