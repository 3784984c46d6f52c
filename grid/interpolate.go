package grid

import (
	"math"

	"github.com/katalvlaran/cartogram/geometry"
)

// Axis selects which boundary, if any, a field is pinned to zero across.
type Axis int

const (
	// Clamp extends edge cells to the lattice boundary.
	Clamp Axis = iota
	// ZeroX pins the field to zero on the x = 0 and x = lx boundaries.
	ZeroX
	// ZeroY pins the field to zero on the y = 0 and y = ly boundaries.
	ZeroY
)

// Interpolate bilinearly interpolates the cell-centred field f (lx×ly,
// samples at (i+0.5, j+0.5)) at (x, y). Nodes are the two cell centres
// around the point, or the lattice edge when the point is within half a
// cell of it; edge nodes take the nearest cell's value, or zero across the
// pinned axis. Positions outside [0,lx]×[0,ly] are clamped onto it.
// Complexity: O(1).
func Interpolate(x, y float64, f []float64, lx, ly int, zero Axis) float64 {
	x = math.Min(math.Max(x, 0), float64(lx))
	y = math.Min(math.Max(y, 0), float64(ly))
	tx, i0, i1 := bracket(x, lx)
	ty, j0, j1 := bracket(y, ly)

	f00 := sample(f, i0, j0, lx, ly, zero)
	f10 := sample(f, i1, j0, lx, ly, zero)
	f01 := sample(f, i0, j1, lx, ly, zero)
	f11 := sample(f, i1, j1, lx, ly, zero)

	return (1-tx)*(1-ty)*f00 + tx*(1-ty)*f10 + (1-tx)*ty*f01 + tx*ty*f11
}

// InterpolatePoint interpolates two component fields at p.
func InterpolatePoint(p geometry.Point, fx, fy []float64, lx, ly int) geometry.Point {
	return geometry.Point{
		X: Interpolate(p.X, p.Y, fx, lx, ly, ZeroX),
		Y: Interpolate(p.X, p.Y, fy, lx, ly, ZeroY),
	}
}

// bracket returns the fractional position t of v between its two nodes and
// the cell indices of those nodes; -1 and l stand for the lattice edges.
func bracket(v float64, l int) (t float64, c0, c1 int) {
	r := math.Floor(v + 0.5)
	lo := math.Max(0, r-0.5)
	hi := math.Min(float64(l), r+0.5)
	c1 = int(r)
	c0 = c1 - 1

	return (v - lo) / (hi - lo), c0, c1
}

// sample reads f at cell (i,j), resolving edge nodes.
func sample(f []float64, i, j, lx, ly int, zero Axis) float64 {
	if i < 0 || i >= lx {
		if zero == ZeroX {
			return 0
		}
		i = min(max(i, 0), lx-1)
	}
	if j < 0 || j >= ly {
		if zero == ZeroY {
			return 0
		}
		j = min(max(j, 0), ly-1)
	}

	return f[i*ly+j]
}
