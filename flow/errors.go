// SPDX-License-Identifier: MIT

package flow

import "errors"

// ErrStepUnderflow is returned when the adaptive step falls below MinStep.
var ErrStepUnderflow = errors.New("flow: integration step underflow")
