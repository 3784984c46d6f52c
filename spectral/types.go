// SPDX-License-Identifier: MIT

package spectral

// Transformer is the capability set the engine needs from a spectral backend.
//
// Every method transforms the rows×cols row-major buffer src into dst.
// dst and src may be the same slice; when they are distinct, src is left
// untouched. Partially overlapping slices are not supported.
type Transformer interface {
	// DCT2 applies the type-II cosine transform along both axes.
	DCT2(dst, src []float64, rows, cols int) error
	// DCT3 applies the type-III cosine transform along both axes.
	DCT3(dst, src []float64, rows, cols int) error
	// SinCos applies the type-III sine transform along i and the type-III
	// cosine transform along j.
	SinCos(dst, src []float64, rows, cols int) error
	// CosSin applies the type-III cosine transform along i and the type-III
	// sine transform along j.
	CosSin(dst, src []float64, rows, cols int) error
}

// kind selects the 1D transform applied to a single line.
type kind int

const (
	cos2 kind = iota // type-II cosine
	cos3             // type-III cosine
	sin3             // type-III sine
)

// lineTransformer is what a backend plugs into the shared 2D driver.
type lineTransformer interface {
	// prepare returns a per-worker function transforming lines of length n in place.
	prepare(n int) func(k kind, line []float64)
}

// isPow2 reports whether n is a positive power of two.
func isPow2(n int) bool {
	return n > 0 && n&(n-1) == 0
}
