package spectral

import (
	"gonum.org/v1/gonum/dsp/fourier"

	"github.com/katalvlaran/cartogram/parallel"
)

// QuarterWave computes each 1D line with gonum's quarter-wave FFT
// (FFTPACK cosq/sinq). Its forward cosine transform is twice the type-II
// convention, so DCT2 halves it; the type-III transforms match directly.
type QuarterWave struct {
	Policy parallel.Policy
}

// DCT2 implements Transformer.
func (q QuarterWave) DCT2(dst, src []float64, rows, cols int) error {
	return apply2D(q, q.Policy, dst, src, rows, cols, cos2, cos2)
}

// DCT3 implements Transformer.
func (q QuarterWave) DCT3(dst, src []float64, rows, cols int) error {
	return apply2D(q, q.Policy, dst, src, rows, cols, cos3, cos3)
}

// SinCos implements Transformer.
func (q QuarterWave) SinCos(dst, src []float64, rows, cols int) error {
	return apply2D(q, q.Policy, dst, src, rows, cols, sin3, cos3)
}

// CosSin implements Transformer.
func (q QuarterWave) CosSin(dst, src []float64, rows, cols int) error {
	return apply2D(q, q.Policy, dst, src, rows, cols, cos3, sin3)
}

// prepare implements lineTransformer. The plan's work array doubles as
// scratch, so each worker gets its own.
func (q QuarterWave) prepare(n int) func(k kind, line []float64) {
	p := fourier.NewQuarterWaveFFT(n)

	return func(k kind, x []float64) {
		switch k {
		case cos2:
			p.CosSequence(x, x)
			for j := range x {
				x[j] *= 0.5
			}
		case cos3:
			p.CosCoefficients(x, x)
		case sin3:
			p.SinCoefficients(x, x)
		}
	}
}
