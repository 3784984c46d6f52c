// SPDX-License-Identifier: MIT

package cartogram

import "errors"

var (
	// ErrInvalidInput classifies malformed regions, targets or bounding boxes.
	ErrInvalidInput = errors.New("cartogram: invalid input")

	// ErrConvergenceFailed classifies runs that could not reach the permitted area error.
	ErrConvergenceFailed = errors.New("cartogram: convergence failed")

	// ErrTransformRejected classifies a custom spectral backend failing verification.
	ErrTransformRejected = errors.New("cartogram: spectral transformer rejected")

	// ErrDiverged indicates that the area error did not decrease between passes.
	ErrDiverged = errors.New("cartogram: area error did not decrease")

	// ErrTooManyPasses indicates that the outer pass cap was reached.
	ErrTooManyPasses = errors.New("cartogram: pass limit reached")
)
