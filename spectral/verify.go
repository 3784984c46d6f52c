package spectral

import (
	"fmt"
	"math"
	"slices"
)

// FixtureTolerance is the absolute error allowed per fixture value, scaled
// by max(1, |expected|).
const FixtureTolerance = 1e-15

// RoundTripTolerance is the relative error allowed for DCT3(DCT2(x)) == 4·N·x.
const RoundTripTolerance = 1e-12

// fixture is one documented input/output pair on a 2×2 buffer.
type fixture struct {
	name string
	run  func(t Transformer, dst, src []float64, rows, cols int) error
	in   []float64
	want []float64
}

var fixtures = []fixture{
	{"DCT2/ones", Transformer.DCT2, []float64{1, 1, 1, 1}, []float64{16, 0, 0, 0}},
	{"DCT3/impulse", Transformer.DCT3, []float64{1, 0, 0, 0}, []float64{1, 1, 1, 1}},
	{"SinCos/impulse", Transformer.SinCos, []float64{1, 0, 0, 0},
		[]float64{math.Sqrt2, math.Sqrt2, math.Sqrt2, math.Sqrt2}},
	{"CosSin/impulse", Transformer.CosSin, []float64{1, 0, 0, 0},
		[]float64{math.Sqrt2, math.Sqrt2, math.Sqrt2, math.Sqrt2}},
	{"SinCos/j-mode", Transformer.SinCos, []float64{0, 1, 0, 0}, []float64{2, -2, 2, -2}},
	{"CosSin/j-mode", Transformer.CosSin, []float64{0, 1, 0, 0}, []float64{1, -1, 1, -1}},
	{"CosSin/i-mode", Transformer.CosSin, []float64{0, 0, 1, 0}, []float64{2, 2, -2, -2}},
}

// Verify checks t against the fixed fixtures and a round trip on a
// non-square buffer. It also checks that distinct src buffers are never
// mutated. Any deviation is reported as ErrFixtureMismatch.
// Complexity: O(1) (fixed small sizes).
func Verify(t Transformer) error {
	for _, fx := range fixtures {
		src := slices.Clone(fx.in)
		dst := make([]float64, len(src))
		if err := fx.run(t, dst, src, 2, 2); err != nil {
			return fmt.Errorf("%s: %w", fx.name, err)
		}
		if !slices.Equal(src, fx.in) {
			return fmt.Errorf("%s: input mutated: %w", fx.name, ErrFixtureMismatch)
		}
		for k, w := range fx.want {
			if math.Abs(dst[k]-w) > FixtureTolerance*math.Max(1, math.Abs(w)) {
				return fmt.Errorf("%s: [%d]=%v want %v: %w", fx.name, k, dst[k], w, ErrFixtureMismatch)
			}
		}
	}

	return verifyRoundTrip(t, 4, 8)
}

// verifyRoundTrip checks DCT3(DCT2(x)) == 4·rows·cols·x in place.
func verifyRoundTrip(t Transformer, rows, cols int) error {
	n := rows * cols
	orig := make([]float64, n)
	for k := range orig {
		orig[k] = math.Sin(float64(3*k+1)) + float64(k%5)
	}
	buf := slices.Clone(orig)
	if err := t.DCT2(buf, buf, rows, cols); err != nil {
		return fmt.Errorf("round trip: %w", err)
	}
	if err := t.DCT3(buf, buf, rows, cols); err != nil {
		return fmt.Errorf("round trip: %w", err)
	}
	scale := float64(4 * n)
	for k := range buf {
		want := scale * orig[k]
		if math.Abs(buf[k]-want) > RoundTripTolerance*math.Max(scale, math.Abs(want)) {
			return fmt.Errorf("round trip: [%d]=%v want %v: %w", k, buf[k], want, ErrFixtureMismatch)
		}
	}

	return nil
}
