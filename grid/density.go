package grid

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"

	"github.com/katalvlaran/cartogram/parallel"
	"github.com/katalvlaran/cartogram/region"
	"github.com/katalvlaran/cartogram/spectral"
)

// DefaultBlurWidth is the Gaussian smoothing width in cells.
const DefaultBlurWidth = 5.0

// FillDensity rebuilds the density field from the current ring shapes.
//
// Implementation:
//   - Stage 1: Rasterize membership.
//   - Stage 2: density[r] = TargetArea[r] / area[r] for measurable regions;
//     cells outside every region take the area-weighted mean density
//     Σ TargetArea / Σ area.
//   - Stage 3: Smooth with the Gaussian of width blur.
//
// Returns ErrDegenerateRegion when a measurable region has area ≤ 0, or
// any backend error.
// Complexity: O(lx·ly·log(lx·ly)) plus rasterization.
func (g *Grid) FillDensity(t *region.Table, tr spectral.Transformer, pol parallel.Policy, blur float64) (mean float64, err error) {
	if pol == nil {
		pol = parallel.Sequential{}
	}
	g.Rasterize(t)

	areas := t.RegionAreas()
	density := make([]float64, len(t.Regions))
	var targetSum, areaSum []float64
	for i, e := range t.Regions {
		if !e.Measurable() {
			continue
		}
		if !(areas[i] > 0) {
			return 0, fmt.Errorf("region %d area %g: %w", e.ID, areas[i], ErrDegenerateRegion)
		}
		density[i] = e.TargetArea / areas[i]
		targetSum = append(targetSum, e.TargetArea)
		areaSum = append(areaSum, areas[i])
	}
	mean = floats.Sum(targetSum) / floats.Sum(areaSum)

	pol.For(len(g.RhoInit), func(lo, hi int) {
		for k := lo; k < hi; k++ {
			m := g.Membership[k]
			if m < 0 || m >= len(density) {
				g.RhoInit[k] = mean
				continue
			}
			g.RhoInit[k] = density[m]
		}
	})

	return mean, g.Smooth(tr, pol, blur)
}

// Smooth convolves RhoInit with a Gaussian of the given width (in cells):
// forward cosine transform, multiply coefficient (i,j) by
// exp(-½·w²·π²·((i/lx)² + (j/ly)²)) / (4·lx·ly), inverse transform.
// Complexity: O(lx·ly·log(lx·ly)).
func (g *Grid) Smooth(tr spectral.Transformer, pol parallel.Policy, blur float64) error {
	if pol == nil {
		pol = parallel.Sequential{}
	}
	if err := tr.DCT2(g.RhoFT, g.RhoInit, g.LX, g.LY); err != nil {
		return fmt.Errorf("smooth forward: %w", err)
	}

	prefactor := -0.5 * blur * blur * math.Pi * math.Pi
	norm := 1 / float64(4*g.LX*g.LY)
	lx, ly := float64(g.LX), float64(g.LY)
	pol.For(g.LX, func(lo, hi int) {
		for i := lo; i < hi; i++ {
			fx := float64(i) / lx
			for j := 0; j < g.LY; j++ {
				fy := float64(j) / ly
				g.RhoFT[i*g.LY+j] *= math.Exp(prefactor*(fx*fx+fy*fy)) * norm
			}
		}
	})

	if err := tr.DCT3(g.RhoInit, g.RhoFT, g.LX, g.LY); err != nil {
		return fmt.Errorf("smooth inverse: %w", err)
	}

	return nil
}
