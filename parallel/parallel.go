// SPDX-License-Identifier: MIT

package parallel

import (
	"runtime"

	"golang.org/x/sync/errgroup"
)

// DefaultMinChunk is the smallest chunk Pooled hands to a worker.
// Tiny ranges are cheaper to run inline than to schedule.
const DefaultMinChunk = 64

// Policy runs body over [0,n) split into contiguous, disjoint chunks.
// For returns only after every chunk has finished.
type Policy interface {
	For(n int, body func(lo, hi int))
}

// Sequential runs the whole range on the calling goroutine.
type Sequential struct{}

// For calls body(0, n) once when n > 0.
// Complexity: O(1) overhead.
func (Sequential) For(n int, body func(lo, hi int)) {
	if n <= 0 {
		return
	}
	body(0, n)
}

// Pooled distributes chunks over at most Workers goroutines.
// Workers <= 0 means runtime.GOMAXPROCS(0). MinChunk <= 0 means DefaultMinChunk.
type Pooled struct {
	Workers  int
	MinChunk int
}

// NewPooled returns a Pooled policy with the given worker limit.
func NewPooled(workers int) Pooled {
	return Pooled{Workers: workers, MinChunk: DefaultMinChunk}
}

// For splits [0,n) into roughly Workers equal chunks (never smaller than
// MinChunk) and waits for all of them.
// Complexity: O(Workers) scheduling overhead.
func (p Pooled) For(n int, body func(lo, hi int)) {
	if n <= 0 {
		return
	}
	workers := p.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	minChunk := p.MinChunk
	if minChunk <= 0 {
		minChunk = DefaultMinChunk
	}

	chunk := (n + workers - 1) / workers
	if chunk < minChunk {
		chunk = minChunk
	}
	if chunk >= n || workers == 1 {
		body(0, n)
		return
	}

	var g errgroup.Group
	g.SetLimit(workers)
	for lo := 0; lo < n; lo += chunk {
		lo, hi := lo, min(lo+chunk, n)
		g.Go(func() error {
			body(lo, hi)
			return nil
		})
	}
	_ = g.Wait() // bodies never fail
}
