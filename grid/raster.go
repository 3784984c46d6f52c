package grid

import (
	"math"

	"github.com/katalvlaran/cartogram/geometry"
	"github.com/katalvlaran/cartogram/region"
)

// Rasterize fills Membership from the current ring shapes of t.
//
// For every ring edge and every cell row whose centre line y=j+0.5 the edge
// crosses (half-open in y), each cell of that row whose centre lies left of
// the crossing, starting at the ring's leftmost column, is toggled with
//
//	m = region - m - 1
//
// An even number of toggles restores a cell, so after all rings of a region
// the cells covered by its interior carry the region index and every other
// cell keeps its previous value. Cells outside every ring stay -1.
// Complexity: O(Σ_edges rows_spanned·cols_left).
func (g *Grid) Rasterize(t *region.Table) {
	for k := range g.Membership {
		g.Membership[k] = -1
	}
	for ri, e := range t.Regions {
		for _, k := range e.Rings {
			g.rasterizeRing(ri, t.Rings[k])
		}
	}
}

// rasterizeRing toggles the cells left of every scanline crossing of r.
func (g *Grid) rasterizeRing(ri int, r geometry.Ring) {
	n := len(r)
	if n < 3 {
		return
	}
	minX := r[0].X
	for _, p := range r[1:] {
		minX = math.Min(minX, p.X)
	}
	col0 := max(0, int(math.Floor(minX)))

	for i, j := 0, n-1; i < n; j, i = i, i+1 {
		a, b := r[j], r[i]
		if a.Y == b.Y {
			continue
		}
		ylo, yhi := math.Min(a.Y, b.Y), math.Max(a.Y, b.Y)
		row := max(0, int(math.Ceil(ylo-0.5)))
		for ; row < g.LY && float64(row) < yhi-0.5; row++ {
			yc := float64(row) + 0.5
			xCross := (b.X-a.X)*(yc-a.Y)/(b.Y-a.Y) + a.X
			for col := col0; col < g.LX && float64(col) < xCross-0.5; col++ {
				m := &g.Membership[col*g.LY+row]
				*m = ri - *m - 1
			}
		}
	}
}
