// SPDX-License-Identifier: MIT

package grid

import "errors"

var (
	// ErrBadBoundingBox indicates a bounding box with non-positive or non-finite extent.
	ErrBadBoundingBox = errors.New("grid: bounding box must have positive finite width and height")

	// ErrBadResolution indicates a resolution that is not a power of two ≥ MinResolution.
	ErrBadResolution = errors.New("grid: resolution must be a power of two >= 8")

	// ErrOutsideGrid indicates geometry lying outside the padded lattice.
	ErrOutsideGrid = errors.New("grid: geometry lies outside the lattice")

	// ErrDegenerateRegion indicates a measurable region whose area is not positive.
	ErrDegenerateRegion = errors.New("grid: region area must be positive")
)
