// SPDX-License-Identifier: MIT

package cli

import "errors"

var (
	// ErrBadConfig indicates a configuration value outside its accepted range.
	ErrBadConfig = errors.New("cli: invalid configuration")

	// ErrNoFeatures indicates an input collection without polygon features.
	ErrNoFeatures = errors.New("cli: no polygon features in input")

	// ErrBadGeometry indicates a feature geometry that is not a polygon or multipolygon.
	ErrBadGeometry = errors.New("cli: unsupported geometry")

	// ErrBadTarget indicates a target property that is neither numeric nor missing.
	ErrBadTarget = errors.New("cli: target property is not a number")
)
