// SPDX-License-Identifier: MIT

package spectral

import "errors"

var (
	// ErrBadSize indicates a dimension that is not a positive power of two.
	ErrBadSize = errors.New("spectral: dimensions must be positive powers of two")

	// ErrBufferLength indicates src or dst does not hold exactly rows·cols values.
	ErrBufferLength = errors.New("spectral: buffer length does not match rows*cols")

	// ErrFixtureMismatch indicates a backend failed the fixed numeric fixtures.
	ErrFixtureMismatch = errors.New("spectral: transform does not reproduce fixtures")
)
