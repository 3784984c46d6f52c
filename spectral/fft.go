package spectral

import (
	"math"
	"sync"

	"github.com/katalvlaran/cartogram/parallel"
)

// FFT is the production Transformer: each 1D line transform is computed
// with one radix-2 complex FFT of the same length (Makhoul's even/odd
// reordering), so a full 2D transform costs O(N log N).
//
// FFT caches one plan per line length and is safe for concurrent use.
type FFT struct {
	policy parallel.Policy

	mu    sync.Mutex
	plans map[int]*plan
}

// NewFFT returns an FFT backend distributing row/column passes through pol.
// A nil pol runs sequentially.
func NewFFT(pol parallel.Policy) *FFT {
	if pol == nil {
		pol = parallel.Sequential{}
	}
	return &FFT{policy: pol, plans: make(map[int]*plan)}
}

// DCT2 implements Transformer.
func (f *FFT) DCT2(dst, src []float64, rows, cols int) error {
	return apply2D(f, f.policy, dst, src, rows, cols, cos2, cos2)
}

// DCT3 implements Transformer.
func (f *FFT) DCT3(dst, src []float64, rows, cols int) error {
	return apply2D(f, f.policy, dst, src, rows, cols, cos3, cos3)
}

// SinCos implements Transformer.
func (f *FFT) SinCos(dst, src []float64, rows, cols int) error {
	return apply2D(f, f.policy, dst, src, rows, cols, sin3, cos3)
}

// CosSin implements Transformer.
func (f *FFT) CosSin(dst, src []float64, rows, cols int) error {
	return apply2D(f, f.policy, dst, src, rows, cols, cos3, sin3)
}

// plan holds the precomputed tables for lines of length n.
type plan struct {
	n      int
	bitrev []int        // bit-reversal permutation
	roots  []complex128 // exp(-2πik/n), k < n/2
	shift  []complex128 // exp(-iπk/(2n)), k < n
}

// planFor returns the cached plan for n, building it on first use.
func (f *FFT) planFor(n int) *plan {
	f.mu.Lock()
	defer f.mu.Unlock()
	if p, ok := f.plans[n]; ok {
		return p
	}
	p := newPlan(n)
	f.plans[n] = p

	return p
}

// newPlan precomputes tables for a power-of-two n.
// Complexity: O(n) time and memory.
func newPlan(n int) *plan {
	p := &plan{
		n:      n,
		bitrev: make([]int, n),
		roots:  make([]complex128, n/2),
		shift:  make([]complex128, n),
	}
	for i, j := 1, 0; i < n; i++ {
		bit := n >> 1
		for ; j&bit != 0; bit >>= 1 {
			j ^= bit
		}
		j ^= bit
		p.bitrev[i] = j
	}
	for k := range p.roots {
		s, c := math.Sincos(-2 * math.Pi * float64(k) / float64(n))
		p.roots[k] = complex(c, s)
	}
	for k := range p.shift {
		s, c := math.Sincos(-math.Pi * float64(k) / float64(2*n))
		p.shift[k] = complex(c, s)
	}

	return p
}

// prepare implements lineTransformer. The returned closure owns its
// complex scratch buffer and must not be shared between goroutines.
func (f *FFT) prepare(n int) func(k kind, line []float64) {
	p := f.planFor(n)
	buf := make([]complex128, n)

	return func(k kind, line []float64) {
		switch k {
		case cos2:
			p.dct2(line, buf)
		case cos3:
			p.dct3(line, buf)
		case sin3:
			p.dst3(line, buf)
		}
	}
}

// fft transforms a in place; inverse selects the positive exponent
// (no 1/n normalization).
func (p *plan) fft(a []complex128, inverse bool) {
	n := p.n
	for i, j := range p.bitrev {
		if i < j {
			a[i], a[j] = a[j], a[i]
		}
	}
	for size := 2; size <= n; size <<= 1 {
		half, step := size>>1, n/size
		for start := 0; start < n; start += size {
			for k := 0; k < half; k++ {
				w := p.roots[k*step]
				if inverse {
					w = complex(real(w), -imag(w))
				}
				u := a[start+k]
				v := a[start+k+half] * w
				a[start+k] = u + v
				a[start+k+half] = u - v
			}
		}
	}
}

// dct2 computes the type-II cosine transform of x in place.
func (p *plan) dct2(x []float64, buf []complex128) {
	n := p.n
	if n == 1 {
		x[0] *= 2
		return
	}
	for k := 0; k < n/2; k++ {
		buf[k] = complex(x[2*k], 0)
		buf[n-1-k] = complex(x[2*k+1], 0)
	}
	p.fft(buf, false)
	for k := 0; k < n; k++ {
		c, s := real(buf[k]), imag(buf[k])
		x[k] = 2 * (c*real(p.shift[k]) - s*imag(p.shift[k]))
	}
}

// dct3 computes the type-III cosine transform of x in place.
func (p *plan) dct3(x []float64, buf []complex128) {
	n := p.n
	if n == 1 {
		return
	}
	buf[0] = complex(x[0], 0)
	for k := 1; k < n; k++ {
		w := complex(real(p.shift[k]), -imag(p.shift[k])) // exp(+iπk/(2n))
		buf[k] = w * complex(x[k], -x[n-k])
	}
	p.fft(buf, true)
	for k := 0; k < n/2; k++ {
		x[2*k] = real(buf[k])
		x[2*k+1] = real(buf[n-1-k])
	}
}

// dst3 computes the type-III sine transform of x in place: reverse the
// input, run the type-III cosine transform, negate odd outputs.
func (p *plan) dst3(x []float64, buf []complex128) {
	n := p.n
	for l, r := 0, n-1; l < r; l, r = l+1, r-1 {
		x[l], x[r] = x[r], x[l]
	}
	p.dct3(x, buf)
	for k := 1; k < n; k += 2 {
		x[k] = -x[k]
	}
}
