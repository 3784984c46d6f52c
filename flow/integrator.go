package flow

import (
	"fmt"
	"io"
	"math"
	"sync/atomic"

	"github.com/charmbracelet/log"

	"github.com/katalvlaran/cartogram/geometry"
	"github.com/katalvlaran/cartogram/grid"
	"github.com/katalvlaran/cartogram/parallel"
	"github.com/katalvlaran/cartogram/spectral"
)

const (
	// InitialStep is the first trial time step of every pass.
	InitialStep = 1e-2
	// MinStep is the smallest time step tried before giving up.
	MinStep = 1e-8
	// Shrink multiplies dt after a rejected trial.
	Shrink = 0.75
	// Grow multiplies dt after an accepted step.
	Grow = 1.1
	// Tolerance scales the accepted midpoint/Euler squared drift by min(lx,ly).
	Tolerance = 1e-6
	// logEvery is the number of accepted steps between debug lines.
	logEvery = 10
)

// Stats reports the work done by one Integrate call.
type Stats struct {
	Steps    int // accepted steps
	Rejected int // rejected trials
}

// Integrator runs one flow pass over a grid. It is not safe for concurrent use.
type Integrator struct {
	g   *grid.Grid
	tr  spectral.Transformer
	pol parallel.Policy
	log *log.Logger

	vx, vy   []float64        // velocity at t
	hx, hy   []float64        // velocity at t+dt/2
	vp       []geometry.Point // velocity at the current projection
	dispX    []float64        // pass displacement, x
	dispY    []float64        // pass displacement, y
	rejected atomic.Bool
}

// New binds an Integrator to g. Nil pol runs sequentially; nil logger discards.
func New(g *grid.Grid, tr spectral.Transformer, pol parallel.Policy, logger *log.Logger) *Integrator {
	if pol == nil {
		pol = parallel.Sequential{}
	}
	if logger == nil {
		logger = log.New(io.Discard)
	}
	n := g.LX * g.LY

	return &Integrator{
		g:     g,
		tr:    tr,
		pol:   pol,
		log:   logger,
		vx:    make([]float64, n),
		vy:    make([]float64, n),
		hx:    make([]float64, n),
		hy:    make([]float64, n),
		vp:    make([]geometry.Point, n),
		dispX: make([]float64, n),
		dispY: make([]float64, n),
	}
}

// Init computes RhoFT and the initial flux from the current RhoInit.
//
// With ρ̃(kx,ky) the normalized cosine coefficients (kx = i, ky = j), the
// flux is
//
//	fx(kx,ky) = -ρ̃ / (π·(kx/lx + (ky/kx)·(ky/ly)·(lx/ly)))
//	fy(kx,ky) = -ρ̃ / (π·((kx/ky)·(kx/lx)·(ly/lx) + ky/ly))
//
// stored shifted by one along the sine axis (mode lx resp. ly is zero), then
// taken back to real space with the mixed sine/cosine inverse transforms.
// Complexity: O(lx·ly·log(lx·ly)).
func (in *Integrator) Init() error {
	g := in.g
	if err := in.tr.DCT2(g.RhoFT, g.RhoInit, g.LX, g.LY); err != nil {
		return fmt.Errorf("flow init: %w", err)
	}
	lx, ly := float64(g.LX), float64(g.LY)
	norm := 1 / (4 * lx * ly)

	in.pol.For(g.LX, func(lo, hi int) {
		for i := lo; i < hi; i++ {
			for j := 0; j < g.LY; j++ {
				g.RhoFT[i*g.LY+j] *= norm
			}
		}
	})

	in.pol.For(g.LX, func(lo, hi int) {
		for i := lo; i < hi; i++ {
			for j := 0; j < g.LY; j++ {
				k := i*g.LY + j
				if i == g.LX-1 {
					g.FluxX[k] = 0
				} else {
					di, dj := float64(i+1), float64(j)
					g.FluxX[k] = -g.RhoFT[(i+1)*g.LY+j] /
						(math.Pi * (di/lx + (dj/di)*(dj/ly)*(lx/ly)))
				}
				if j == g.LY-1 {
					g.FluxY[k] = 0
				} else {
					di, dj := float64(i), float64(j+1)
					g.FluxY[k] = -g.RhoFT[i*g.LY+j+1] /
						(math.Pi * ((di/dj)*(di/lx)*(ly/lx) + dj/ly))
				}
			}
		}
	})

	if err := in.tr.SinCos(g.FluxX, g.FluxX, g.LX, g.LY); err != nil {
		return fmt.Errorf("flow flux x: %w", err)
	}
	if err := in.tr.CosSin(g.FluxY, g.FluxY, g.LX, g.LY); err != nil {
		return fmt.Errorf("flow flux y: %w", err)
	}

	return nil
}

// velocity fills vx, vy with -flux/ρ(t).
func (in *Integrator) velocity(t float64, vx, vy []float64) {
	g := in.g
	mean := g.RhoFT[0]
	in.pol.For(len(vx), func(lo, hi int) {
		for k := lo; k < hi; k++ {
			rho := mean + (1-t)*(g.RhoInit[k]-mean)
			vx[k] = -g.FluxX[k] / rho
			vy[k] = -g.FluxY[k] / rho
		}
	})
}

// Integrate advects g.Proj from t=0 to t=1. Init must have been called.
// Returns ErrStepUnderflow when no step ≥ MinStep is accepted.
// Complexity: O(lx·ly) per trial.
func (in *Integrator) Integrate() (Stats, error) {
	var (
		g     = in.g
		st    Stats
		t     = 0.0
		dt    = InitialStep
		lx    = g.LX
		ly    = g.LY
		limit = float64(min(lx, ly)) * Tolerance
	)

	for t < 1 {
		in.velocity(t, in.vx, in.vy)
		in.pol.For(len(g.Proj), func(lo, hi int) {
			for k := lo; k < hi; k++ {
				in.vp[k] = grid.InterpolatePoint(g.Proj[k], in.vx, in.vy, lx, ly)
			}
		})

		for {
			if dt < MinStep {
				return st, fmt.Errorf("t=%g dt=%g: %w", t, dt, ErrStepUnderflow)
			}
			in.velocity(t+0.5*dt, in.hx, in.hy)
			if in.trial(dt, limit) {
				break
			}
			st.Rejected++
			dt *= Shrink
		}

		g.SwapProjection()
		t += dt
		st.Steps++
		dt *= Grow
		if st.Steps%logEvery == 0 {
			in.log.Debug("flow step", "steps", st.Steps, "t", t, "dt", dt, "rejected", st.Rejected)
		}
	}

	return st, nil
}

// trial computes one midpoint step of length dt into g.Next and reports
// whether every point was accepted.
func (in *Integrator) trial(dt, limit float64) bool {
	g := in.g
	next := g.Next()
	in.rejected.Store(false)

	in.pol.For(len(g.Proj), func(lo, hi int) {
		for k := lo; k < hi; k++ {
			if in.rejected.Load() {
				return
			}
			p, v := g.Proj[k], in.vp[k]
			eul := p.Add(v.Scale(dt))
			half := p.Add(v.Scale(0.5 * dt))
			if !g.Contains(half) {
				in.rejected.Store(true)
				return
			}
			vh := grid.InterpolatePoint(half, in.hx, in.hy, g.LX, g.LY)
			mid := p.Add(vh.Scale(dt))
			if !g.Contains(mid) || mid.Dist2(eul) > limit {
				in.rejected.Store(true)
				return
			}
			next[k] = mid
		}
	})

	return !in.rejected.Load()
}
