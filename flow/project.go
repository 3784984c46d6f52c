package flow

import (
	"github.com/katalvlaran/cartogram/geometry"
	"github.com/katalvlaran/cartogram/grid"
)

// Project moves every point of rings, and every cumulative lattice point,
// by the displacement of the last pass, interpolated from the lattice.
// The x displacement is pinned to zero on the vertical walls and the y
// displacement on the horizontal ones, so nothing crosses the lattice edge.
// Rings are rewritten in place.
// Complexity: O(points + lx·ly).
func (in *Integrator) Project(rings []geometry.Ring) {
	g := in.g
	in.pol.For(g.LX, func(lo, hi int) {
		for i := lo; i < hi; i++ {
			for j := 0; j < g.LY; j++ {
				k := i*g.LY + j
				in.dispX[k] = g.Proj[k].X - (float64(i) + 0.5)
				in.dispY[k] = g.Proj[k].Y - (float64(j) + 0.5)
			}
		}
	})

	in.pol.For(len(rings), func(lo, hi int) {
		for _, r := range rings[lo:hi] {
			for n, p := range r {
				r[n] = in.displace(p)
			}
		}
	})
	in.pol.For(len(g.Cumulative), func(lo, hi int) {
		for k := lo; k < hi; k++ {
			g.Cumulative[k] = in.displace(g.Cumulative[k])
		}
	})
}

// displace returns p moved by the interpolated pass displacement.
func (in *Integrator) displace(p geometry.Point) geometry.Point {
	return p.Add(grid.InterpolatePoint(p, in.dispX, in.dispY, in.g.LX, in.g.LY))
}
