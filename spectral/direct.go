package spectral

import (
	"math"

	"github.com/katalvlaran/cartogram/parallel"
)

// Direct evaluates every 1D transform straight from its defining sum.
// It is slow (O(n²) per line) and exists as a reference backend: it shares
// no code with FFT below the 2D driver, so the two can check each other.
type Direct struct {
	Policy parallel.Policy
}

// DCT2 implements Transformer.
func (d Direct) DCT2(dst, src []float64, rows, cols int) error {
	return apply2D(d, d.Policy, dst, src, rows, cols, cos2, cos2)
}

// DCT3 implements Transformer.
func (d Direct) DCT3(dst, src []float64, rows, cols int) error {
	return apply2D(d, d.Policy, dst, src, rows, cols, cos3, cos3)
}

// SinCos implements Transformer.
func (d Direct) SinCos(dst, src []float64, rows, cols int) error {
	return apply2D(d, d.Policy, dst, src, rows, cols, sin3, cos3)
}

// CosSin implements Transformer.
func (d Direct) CosSin(dst, src []float64, rows, cols int) error {
	return apply2D(d, d.Policy, dst, src, rows, cols, cos3, sin3)
}

// prepare implements lineTransformer.
func (d Direct) prepare(n int) func(k kind, line []float64) {
	out := make([]float64, n)
	fn := float64(n)

	return func(k kind, x []float64) {
		for q := 0; q < n; q++ {
			var sum float64
			fq := float64(q)
			switch k {
			case cos2:
				for j := 0; j < n; j++ {
					sum += x[j] * math.Cos(math.Pi*(float64(j)+0.5)*fq/fn)
				}
				sum *= 2
			case cos3:
				for j := 1; j < n; j++ {
					sum += x[j] * math.Cos(math.Pi*float64(j)*(fq+0.5)/fn)
				}
				sum = x[0] + 2*sum
			case sin3:
				for j := 0; j < n-1; j++ {
					sum += x[j] * math.Sin(math.Pi*float64(j+1)*(fq+0.5)/fn)
				}
				sign := 1.0
				if q%2 == 1 {
					sign = -1
				}
				sum = sign*x[n-1] + 2*sum
			}
			out[q] = sum
		}
		copy(x, out)
	}
}
