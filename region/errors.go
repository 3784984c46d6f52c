// SPDX-License-Identifier: MIT

package region

import "errors"

var (
	// ErrNoRegions indicates an empty region list.
	ErrNoRegions = errors.New("region: at least one region is required")

	// ErrMalformedRing indicates a ring with fewer than four points or whose
	// first and last points differ.
	ErrMalformedRing = errors.New("region: ring must be closed with at least 4 points")

	// ErrHoleWithoutShell indicates a hole declared before any shell of its region.
	ErrHoleWithoutShell = errors.New("region: hole declared before any shell")

	// ErrBadRole indicates a ring role other than Shell or Hole.
	ErrBadRole = errors.New("region: unknown ring role")

	// ErrNegativeTarget indicates a strictly negative, non-NaN target value.
	ErrNegativeTarget = errors.New("region: negative target value")

	// ErrInvalidTarget indicates an infinite target value.
	ErrInvalidTarget = errors.New("region: infinite target value")

	// ErrNoPositiveTarget indicates that no measurable region has a positive target.
	ErrNoPositiveTarget = errors.New("region: no region has a positive target")
)
