package spectral

import (
	"fmt"

	"github.com/katalvlaran/cartogram/parallel"
)

// apply2D runs alongI over every column (stride cols) and alongJ over every
// row of dst after copying src into it.
// Stage 1 (Validate): sizes and buffer lengths.
// Stage 2 (Prepare): copy src into dst unless they alias.
// Stage 3 (Execute): rows then columns, each a parallel map over lines.
// Complexity: O(rows·cols·line cost).
func apply2D(lt lineTransformer, pol parallel.Policy, dst, src []float64, rows, cols int, alongI, alongJ kind) error {
	if !isPow2(rows) || !isPow2(cols) {
		return fmt.Errorf("%dx%d: %w", rows, cols, ErrBadSize)
	}
	if len(src) != rows*cols || len(dst) != rows*cols {
		return fmt.Errorf("len(src)=%d len(dst)=%d want %d: %w", len(src), len(dst), rows*cols, ErrBufferLength)
	}
	if pol == nil {
		pol = parallel.Sequential{}
	}
	if &dst[0] != &src[0] {
		copy(dst, src)
	}

	// Rows are contiguous: transform along j in place.
	pol.For(rows, func(lo, hi int) {
		run := lt.prepare(cols)
		for i := lo; i < hi; i++ {
			run(alongJ, dst[i*cols:(i+1)*cols])
		}
	})

	// Columns are strided: gather, transform along i, scatter.
	pol.For(cols, func(lo, hi int) {
		run := lt.prepare(rows)
		line := make([]float64, rows)
		for j := lo; j < hi; j++ {
			for i := 0; i < rows; i++ {
				line[i] = dst[i*cols+j]
			}
			run(alongI, line)
			for i := 0; i < rows; i++ {
				dst[i*cols+j] = line[i]
			}
		}
	})

	return nil
}
