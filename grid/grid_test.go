package grid_test

import (
	"math"
	"testing"

	"github.com/katalvlaran/cartogram/geometry"
	"github.com/katalvlaran/cartogram/grid"
	"github.com/katalvlaran/cartogram/parallel"
	"github.com/katalvlaran/cartogram/region"
	"github.com/katalvlaran/cartogram/spectral"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// rect returns a closed clockwise rectangle.
func rect(x0, y0, x1, y1 float64) geometry.Ring {
	return geometry.Ring{{X: x0, Y: y0}, {X: x0, Y: y1}, {X: x1, Y: y1}, {X: x1, Y: y0}, {X: x0, Y: y0}}
}

// square16 returns a 16×16 lattice.
func square16(t *testing.T) *grid.Grid {
	t.Helper()
	g, err := grid.New(geometry.BBox{MaxX: 8, MaxY: 8}, 16)
	require.NoError(t, err)
	require.Equal(t, 16, g.LX)
	require.Equal(t, 16, g.LY)
	return g
}

// table builds a region table whose rings are already in L-space.
func table(t *testing.T, regions ...region.Region) *region.Table {
	t.Helper()
	tb, err := region.NewTable(regions)
	require.NoError(t, err)
	return tb
}

// countMembers returns how many cells belong to region ri.
func countMembers(g *grid.Grid, ri int) int {
	n := 0
	for _, m := range g.Membership {
		if m == ri {
			n++
		}
	}
	return n
}

//----------------------------------------------------------------------------//
// New / Dimensions
//----------------------------------------------------------------------------//

// TestNew_Errors rejects degenerate boxes and bad resolutions.
func TestNew_Errors(t *testing.T) {
	cases := []struct {
		name string
		bbox geometry.BBox
		res  int
		err  error
	}{
		{"ZeroWidth", geometry.BBox{MaxX: 0, MaxY: 1}, 64, grid.ErrBadBoundingBox},
		{"Inverted", geometry.BBox{MinX: 2, MaxX: 1, MaxY: 1}, 64, grid.ErrBadBoundingBox},
		{"Infinite", geometry.BBox{MaxX: math.Inf(1), MaxY: 1}, 64, grid.ErrBadBoundingBox},
		{"NaN", geometry.BBox{MaxX: math.NaN(), MaxY: 1}, 64, grid.ErrBadBoundingBox},
		{"TooSmall", geometry.BBox{MaxX: 1, MaxY: 1}, 4, grid.ErrBadResolution},
		{"NotPow2", geometry.BBox{MaxX: 1, MaxY: 1}, 100, grid.ErrBadResolution},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := grid.New(tc.bbox, tc.res)
			require.ErrorIs(t, err, tc.err)
		})
	}
}

// TestDimensions checks the longer side spans the resolution.
func TestDimensions(t *testing.T) {
	lx, ly, latt := grid.Dimensions(4, 2, 64)
	assert.Equal(t, 64, lx)
	assert.Equal(t, 32, ly)
	assert.InDelta(t, 6.0/64, latt, 1e-15)

	lx, ly, _ = grid.Dimensions(1, 3, 128)
	assert.Equal(t, 128, ly)
	assert.Equal(t, 64, lx) // 1.5/(4.5/128) ≈ 42.7 -> 64
}

// TestNew_Affine centres the bounding box on the lattice.
func TestNew_Affine(t *testing.T) {
	bbox := geometry.BBox{MinX: -10, MinY: 5, MaxX: 30, MaxY: 25}
	g, err := grid.New(bbox, 64)
	require.NoError(t, err)

	c := g.Affine.Forward(geometry.Point{X: 10, Y: 15})
	assert.InDelta(t, g.Center().X, c.X, 1e-12)
	assert.InDelta(t, g.Center().Y, c.Y, 1e-12)

	for _, p := range []geometry.Point{{X: -10, Y: 5}, {X: 30, Y: 25}} {
		assert.True(t, g.Contains(g.Affine.Forward(p)))
	}
	require.NoError(t, g.CheckRings([]geometry.Ring{g.Affine.ForwardRing(rect(-10, 5, 30, 25))}))
	require.ErrorIs(t, g.CheckRings([]geometry.Ring{rect(-1, 0, 1, 1)}), grid.ErrOutsideGrid)
}

// TestProjection_Swap checks the double buffer and the identity reset.
func TestProjection_Swap(t *testing.T) {
	g := square16(t)
	assert.Equal(t, geometry.Point{X: 2.5, Y: 3.5}, g.Proj[g.Index(2, 3)])
	assert.Equal(t, g.Proj, g.Cumulative)

	next := g.Next()
	next[0] = geometry.Point{X: 9, Y: 9}
	g.SwapProjection()
	assert.Equal(t, geometry.Point{X: 9, Y: 9}, g.Proj[0])

	g.ResetProjection()
	assert.Equal(t, geometry.Point{X: 0.5, Y: 0.5}, g.Proj[0])
}

//----------------------------------------------------------------------------//
// Rasterize
//----------------------------------------------------------------------------//

// TestRasterize_ShellAndHole fills a shell and leaves its hole empty.
func TestRasterize_ShellAndHole(t *testing.T) {
	g := square16(t)
	hole := rect(5, 5, 7, 7)
	hole.Reverse()
	tb := table(t,
		region.Region{ID: 1, Target: 1, Rings: []region.TaggedRing{
			{Role: region.Shell, Ring: rect(4, 4, 8, 8)},
			{Role: region.Hole, Ring: hole},
		}},
		region.Region{ID: 2, Target: 1, Rings: []region.TaggedRing{
			{Role: region.Shell, Ring: rect(8, 4, 10, 8)},
		}},
	)
	g.Rasterize(tb)

	assert.Equal(t, 16-4, countMembers(g, 0))
	assert.Equal(t, 8, countMembers(g, 1))
	assert.Equal(t, 0, g.Membership[g.Index(4, 4)])
	assert.Equal(t, -1, g.Membership[g.Index(5, 5)])
	assert.Equal(t, 1, g.Membership[g.Index(9, 7)])
	assert.Equal(t, -1, g.Membership[g.Index(0, 0)])
	assert.Equal(t, -1, g.Membership[g.Index(10, 4)])
}

// TestRasterize_Concave fills an L-shaped ring next to another region.
func TestRasterize_Concave(t *testing.T) {
	g := square16(t)
	ell := geometry.Ring{{X: 2, Y: 2}, {X: 2, Y: 8}, {X: 4, Y: 8}, {X: 4, Y: 4}, {X: 8, Y: 4}, {X: 8, Y: 2}, {X: 2, Y: 2}}
	tb := table(t,
		region.Region{ID: 1, Target: 1, Rings: []region.TaggedRing{{Role: region.Shell, Ring: rect(5, 5, 7, 7)}}},
		region.Region{ID: 2, Target: 1, Rings: []region.TaggedRing{{Role: region.Shell, Ring: ell}}},
	)
	g.Rasterize(tb)

	// L = 6×2 + 2×4 cells; the square sits in the notch and survives.
	assert.Equal(t, 20, countMembers(g, 1))
	assert.Equal(t, 4, countMembers(g, 0))
	assert.Equal(t, 1, g.Membership[g.Index(3, 7)])
	assert.Equal(t, -1, g.Membership[g.Index(4, 7)])
	assert.Equal(t, 0, g.Membership[g.Index(6, 6)])
}

//----------------------------------------------------------------------------//
// Density
//----------------------------------------------------------------------------//

// TestFillDensity_Uniform yields a flat field when target equals area.
func TestFillDensity_Uniform(t *testing.T) {
	g := square16(t)
	tb := table(t, region.Region{ID: 1, Target: 1, Rings: []region.TaggedRing{{Role: region.Shell, Ring: rect(4, 4, 12, 12)}}})
	tb.Regions[0].TargetArea = 64

	mean, err := g.FillDensity(tb, spectral.NewFFT(nil), parallel.Sequential{}, grid.DefaultBlurWidth)
	require.NoError(t, err)
	assert.InDelta(t, 1.0, mean, 1e-15)
	for k, v := range g.RhoInit {
		require.InDelta(t, 1.0, v, 1e-9, "cell %d", k)
	}
}

// TestFillDensity_Mean uses the area-weighted mean outside all regions.
func TestFillDensity_Mean(t *testing.T) {
	g := square16(t)
	tb := table(t,
		region.Region{ID: 1, Target: 1, Rings: []region.TaggedRing{{Role: region.Shell, Ring: rect(2, 2, 6, 6)}}},
		region.Region{ID: 2, Target: 1, Rings: []region.TaggedRing{{Role: region.Shell, Ring: rect(8, 8, 12, 12)}}},
	)
	tb.Regions[0].TargetArea = 48
	tb.Regions[1].TargetArea = 16

	mean, err := g.FillDensity(tb, spectral.NewFFT(nil), parallel.NewPooled(4), 0)
	require.NoError(t, err)
	assert.InDelta(t, 2.0, mean, 1e-15)
	// Zero blur leaves the raw field intact up to round-off.
	assert.InDelta(t, 3.0, g.RhoInit[g.Index(3, 3)], 1e-9)
	assert.InDelta(t, 1.0, g.RhoInit[g.Index(9, 9)], 1e-9)
	assert.InDelta(t, 2.0, g.RhoInit[g.Index(0, 15)], 1e-9)
}

// TestFillDensity_Degenerate rejects a zero-area measurable region.
func TestFillDensity_Degenerate(t *testing.T) {
	g := square16(t)
	flat := geometry.Ring{{X: 2, Y: 2}, {X: 2, Y: 6}, {X: 2, Y: 2}, {X: 2, Y: 2}}
	tb := table(t, region.Region{ID: 1, Target: 1, Rings: []region.TaggedRing{{Role: region.Shell, Ring: flat}}})
	tb.Regions[0].TargetArea = 1

	_, err := g.FillDensity(tb, spectral.NewFFT(nil), nil, grid.DefaultBlurWidth)
	require.ErrorIs(t, err, grid.ErrDegenerateRegion)
}

// TestSmooth_ConservesMass spreads an impulse without changing its sum.
func TestSmooth_ConservesMass(t *testing.T) {
	g := square16(t)
	g.RhoInit[g.Index(8, 8)] = 1
	require.NoError(t, g.Smooth(spectral.NewFFT(nil), nil, 2))

	sum := 0.0
	for _, v := range g.RhoInit {
		sum += v
	}
	assert.InDelta(t, 1.0, sum, 1e-12)
	assert.Less(t, g.RhoInit[g.Index(8, 8)], 1.0)
	assert.InDelta(t, g.RhoInit[g.Index(7, 8)], g.RhoInit[g.Index(9, 8)], 1e-2)
	assert.InDelta(t, g.RhoInit[g.Index(9, 8)], g.RhoInit[g.Index(8, 9)], 1e-12)
}

//----------------------------------------------------------------------------//
// Interpolate
//----------------------------------------------------------------------------//

// TestInterpolate covers interior, edge and pinned-axis behaviour.
func TestInterpolate(t *testing.T) {
	const lx, ly = 4, 4
	linear := make([]float64, lx*ly) // f = x at cell centres
	ones := make([]float64, lx*ly)
	for i := 0; i < lx; i++ {
		for j := 0; j < ly; j++ {
			linear[i*ly+j] = float64(i) + 0.5
			ones[i*ly+j] = 1
		}
	}

	t.Run("Linear", func(t *testing.T) {
		for _, x := range []float64{0.5, 1.2, 2.5, 3.5} {
			assert.InDelta(t, x, grid.Interpolate(x, 1.7, linear, lx, ly, grid.Clamp), 1e-12)
		}
	})
	t.Run("ClampEdges", func(t *testing.T) {
		assert.InDelta(t, 0.5, grid.Interpolate(0, 2, linear, lx, ly, grid.Clamp), 1e-12)
		assert.InDelta(t, 3.5, grid.Interpolate(4, 2, linear, lx, ly, grid.Clamp), 1e-12)
		assert.InDelta(t, 3.5, grid.Interpolate(9, 2, linear, lx, ly, grid.Clamp), 1e-12)
	})
	t.Run("ZeroX", func(t *testing.T) {
		assert.Zero(t, grid.Interpolate(0, 2, ones, lx, ly, grid.ZeroX))
		assert.Zero(t, grid.Interpolate(4, 0, ones, lx, ly, grid.ZeroX))
		assert.InDelta(t, 0.5, grid.Interpolate(0.25, 2, ones, lx, ly, grid.ZeroX), 1e-12)
		assert.InDelta(t, 1.0, grid.Interpolate(2, 0, ones, lx, ly, grid.ZeroX), 1e-12)
	})
	t.Run("ZeroY", func(t *testing.T) {
		assert.Zero(t, grid.Interpolate(2, 4, ones, lx, ly, grid.ZeroY))
		assert.InDelta(t, 1.0, grid.Interpolate(0, 2, ones, lx, ly, grid.ZeroY), 1e-12)
	})
	t.Run("Point", func(t *testing.T) {
		p := grid.InterpolatePoint(geometry.Point{X: 2, Y: 2}, ones, ones, lx, ly)
		assert.Equal(t, geometry.Point{X: 1, Y: 1}, p)
	})
}
