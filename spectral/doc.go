// Package spectral implements the small family of 2D discrete cosine/sine
// transforms the cartogram engine uses as a spectral Poisson solver.
//
// What:
//
//   - Transformer exposes exactly four 2D compositions over a flat row-major
//     rows×cols buffer (element (i,j) lives at i*cols+j):
//     DCT2  : type-II cosine on both axes (forward),
//     DCT3  : type-III cosine on both axes (inverse up to 4·rows·cols),
//     SinCos: type-III sine along i, type-III cosine along j,
//     CosSin: type-III cosine along i, type-III sine along j.
//   - FFT is the production backend (radix-2 complex FFT + Makhoul reordering).
//   - QuarterWave runs each line through gonum's dsp/fourier quarter-wave FFT.
//   - Direct is an O(n²) per-line reference backend.
//   - Verify gates any backend against fixed numeric fixtures.
//
// Conventions (unnormalized, per line of length n):
//
//	type-II cosine:   Y[k] = 2·Σ_j X[j]·cos(π·(j+½)·k/n)
//	type-III cosine:  Y[k] = X[0] + 2·Σ_{j≥1} X[j]·cos(π·j·(k+½)/n)
//	type-III sine:    Y[k] = (-1)^k·X[n-1] + 2·Σ_{j<n-1} X[j]·sin(π·(j+1)·(k+½)/n)
//
// so DCT3(DCT2(x)) == 4·rows·cols·x.
//
// Complexity:
//
//   - FFT:    O(rows·cols·log(rows·cols)) time, O(max(rows,cols)) scratch per worker.
//   - QuarterWave: O(rows·cols·log(rows·cols)) time, O(max(rows,cols)) work per worker.
//   - Direct: O(rows·cols·(rows+cols)) time.
//
// Errors:
//
//   - ErrBadSize: a dimension is not a positive power of two.
//   - ErrBufferLength: src or dst length differs from rows·cols.
//   - ErrFixtureMismatch: Verify found a deviation from the fixtures.
package spectral
