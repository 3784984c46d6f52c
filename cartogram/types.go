// SPDX-License-Identifier: MIT

package cartogram

import (
	"github.com/katalvlaran/cartogram/geometry"
	"github.com/katalvlaran/cartogram/region"
)

// RegionResult is the deformed geometry of one input region.
type RegionResult struct {
	ID         int
	Polygons   []region.Polygon
	Unknown    bool    // the input target was NaN and has been inferred
	TargetArea float64 // normalized target actually used
}

// Displacement is the image of the lattice cell centres after all passes,
// expressed in the same coordinates as the result rings. Positions[i*LY+j]
// is where the centre of cell (i,j) ended up.
type Displacement struct {
	LX, LY    int
	Positions []geometry.Point
}

// Result is the output of Run. Regions are in input order.
type Result struct {
	Regions      []RegionResult
	MaxAreaError float64
	Passes       int
	Grid         *Displacement // nil for single-region input
}
