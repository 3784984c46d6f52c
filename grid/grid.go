// SPDX-License-Identifier: MIT

package grid

import (
	"fmt"
	"math"

	"github.com/katalvlaran/cartogram/geometry"
)

const (
	// DefaultResolution is the cell count along the longer side of the map.
	DefaultResolution = 512
	// MinResolution is the smallest accepted resolution.
	MinResolution = 8
	// PaddingFactor is the ratio between the padded lattice extent and the
	// bounding box extent, applied symmetrically around the box centre.
	PaddingFactor = 1.5
)

// Grid is the per-run lattice state. Exported slices have length LX*LY.
type Grid struct {
	LX, LY int
	Affine geometry.Affine // caller space <-> L-space

	Membership []int     // region index per cell, -1 outside every region
	RhoInit    []float64 // density field (smoothed in place by FillDensity)
	RhoFT      []float64 // spectral coefficients of RhoInit
	FluxX      []float64 // initial flux, x component
	FluxY      []float64 // initial flux, y component

	Proj       []geometry.Point // lattice point positions in the current pass
	next       []geometry.Point // trial buffer swapped with Proj
	Cumulative []geometry.Point // lattice point images composed over all passes
}

// New builds the L-space transform for bbox and allocates every buffer.
// Stage 1 (Validate): finite positive extent, power-of-two resolution.
// Stage 2 (Lattice): pad, choose lattice constant and lx, ly.
// Stage 3 (Allocate): fields, identity projection and cumulative lattice.
// Complexity: O(lx·ly) time and memory.
func New(bbox geometry.BBox, resolution int) (*Grid, error) {
	w, h := bbox.Width(), bbox.Height()
	if !(w > 0 && h > 0) || math.IsInf(w, 0) || math.IsInf(h, 0) {
		return nil, fmt.Errorf("%+v: %w", bbox, ErrBadBoundingBox)
	}
	if resolution < MinResolution || resolution&(resolution-1) != 0 {
		return nil, fmt.Errorf("resolution %d: %w", resolution, ErrBadResolution)
	}

	lx, ly, latt := Dimensions(w, h, resolution)
	cx, cy := 0.5*(bbox.MinX+bbox.MaxX), 0.5*(bbox.MinY+bbox.MaxY)
	g := &Grid{
		LX: lx,
		LY: ly,
		Affine: geometry.Affine{
			Scale:  latt,
			Origin: geometry.Point{X: cx - 0.5*float64(lx)*latt, Y: cy - 0.5*float64(ly)*latt},
		},
	}

	n := lx * ly
	g.Membership = make([]int, n)
	g.RhoInit = make([]float64, n)
	g.RhoFT = make([]float64, n)
	g.FluxX = make([]float64, n)
	g.FluxY = make([]float64, n)
	g.Proj = make([]geometry.Point, n)
	g.next = make([]geometry.Point, n)
	g.Cumulative = make([]geometry.Point, n)
	g.ResetProjection()
	copy(g.Cumulative, g.Proj)

	return g, nil
}

// Dimensions returns the lattice size and lattice constant for a w×h box.
// The longer padded side spans exactly resolution cells; the shorter side
// gets the smallest power of two covering its padded extent.
func Dimensions(w, h float64, resolution int) (lx, ly int, latt float64) {
	cover := func(extent float64) int {
		n := 1
		for float64(n) < extent*(1-1e-12) {
			n <<= 1
		}
		return n
	}
	pw, ph := PaddingFactor*w, PaddingFactor*h
	if w >= h {
		latt = pw / float64(resolution)
		return resolution, cover(ph / latt), latt
	}
	latt = ph / float64(resolution)

	return cover(pw / latt), resolution, latt
}

// Index returns the flat index of cell (i,j).
func (g *Grid) Index(i, j int) int { return i*g.LY + j }

// Center returns the L-space centre of the lattice.
func (g *Grid) Center() geometry.Point {
	return geometry.Point{X: 0.5 * float64(g.LX), Y: 0.5 * float64(g.LY)}
}

// Contains reports whether p lies in [0,LX]×[0,LY].
func (g *Grid) Contains(p geometry.Point) bool {
	return p.X >= 0 && p.X <= float64(g.LX) && p.Y >= 0 && p.Y <= float64(g.LY)
}

// ResetProjection puts every lattice point back on its cell centre.
func (g *Grid) ResetProjection() {
	for i := 0; i < g.LX; i++ {
		for j := 0; j < g.LY; j++ {
			g.Proj[i*g.LY+j] = geometry.Point{X: float64(i) + 0.5, Y: float64(j) + 0.5}
		}
	}
}

// Next returns the trial projection buffer. Writers fill it, then call
// SwapProjection to commit.
func (g *Grid) Next() []geometry.Point { return g.next }

// SwapProjection commits the trial buffer by exchanging slices.
func (g *Grid) SwapProjection() { g.Proj, g.next = g.next, g.Proj }

// CheckRings returns ErrOutsideGrid when any point of rings lies outside the lattice.
func (g *Grid) CheckRings(rings []geometry.Ring) error {
	for k, r := range rings {
		for _, p := range r {
			if !g.Contains(p) {
				return fmt.Errorf("ring %d point (%g,%g): %w", k, p.X, p.Y, ErrOutsideGrid)
			}
		}
	}

	return nil
}
