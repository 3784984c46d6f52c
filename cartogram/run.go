package cartogram

import (
	"context"
	"fmt"
	"math"

	"github.com/charmbracelet/log"

	"github.com/katalvlaran/cartogram/flow"
	"github.com/katalvlaran/cartogram/geometry"
	"github.com/katalvlaran/cartogram/grid"
	"github.com/katalvlaran/cartogram/region"
	"github.com/katalvlaran/cartogram/spectral"
)

// Run computes the cartogram of regions inside bbox.
//
// Implementation:
//   - Stage 1 (Prepare): options, transformer verification, region table,
//     tiny-ring filter, lattice, L-space rings, target normalization.
//   - Stage 2 (Shortcuts): a single region, or an input already within the
//     permitted error, is returned unchanged without any pass.
//   - Stage 3 (Passes): density fill, flow integration, projection and
//     error measurement until the error is within the threshold.
//   - Stage 4 (Finish): rescale to the initial total area, map back and,
//     when the result overflows bbox, shrink it uniformly about the centre
//     of bbox until every point fits.
//
// Unchanged results in caller coordinates carry the rings as given.
// Deformed results have clockwise shells and counter-clockwise holes.
//
// Returns ErrInvalidInput, ErrTransformRejected or ErrConvergenceFailed
// wrapped around the precise cause, or the context error between passes.
// Complexity: O(passes · steps · lx·ly) plus O(lx·ly·log(lx·ly)) per pass.
func Run(ctx context.Context, bbox geometry.BBox, regions []region.Region, opts ...Option) (*Result, error) {
	r, err := prepare(bbox, regions, gatherOptions(opts))
	if err != nil {
		return nil, err
	}

	return r.run(ctx)
}

// runner holds the state of one Run.
type runner struct {
	opts  options
	log   *log.Logger
	tr    spectral.Transformer
	bbox  geometry.BBox
	table *region.Table
	orig  []geometry.Ring // filtered input rings, caller coordinates and orientation
	g     *grid.Grid

	// afterPass, when set, sees the rings after every projection.
	afterPass func(pass int, rings []geometry.Ring)
}

// prepare validates the input and builds the L-space state.
func prepare(bbox geometry.BBox, regions []region.Region, o options) (*runner, error) {
	r := &runner{opts: o, log: o.logger, tr: o.transformer, bbox: bbox}
	if r.tr == nil {
		r.tr = spectral.NewFFT(o.policy)
	} else if err := spectral.Verify(r.tr); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrTransformRejected, err)
	}

	t, err := region.NewTable(regions)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	g, err := grid.New(bbox, o.resolution)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	r.table, r.g = t, g

	// A single region needs neither filtering nor targets.
	single := len(t.Regions) == 1
	if !single {
		if dropped := region.FilterTinyRings(t, bbox); dropped > 0 {
			r.log.Debug("dropped tiny rings", "count", dropped)
			for _, e := range t.Regions {
				if !e.Measurable() {
					r.log.Warn("region has no remaining rings", "id", e.ID)
				}
			}
		}
	}
	r.orig = t.InputRings()

	for k, ring := range t.Rings {
		t.Rings[k] = g.Affine.ForwardRing(ring)
	}
	if single {
		return r, nil
	}
	if err = g.CheckRings(t.Rings); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	if err = region.NormalizeTargets(t, o.perimeterThreshold); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	for i, a := range t.RegionAreas() {
		if e := t.Regions[i]; e.Measurable() && !(a > 0) {
			return nil, fmt.Errorf("%w: region %d: %w", ErrInvalidInput, e.ID, grid.ErrDegenerateRegion)
		}
	}
	r.log.Debug("lattice ready", "lx", g.LX, "ly", g.LY, "rings", len(t.Rings))

	return r, nil
}

// run executes the shortcuts or the pass loop.
func (r *runner) run(ctx context.Context) (*Result, error) {
	t, g, thr := r.table, r.g, r.opts.maxAreaError

	if len(t.Regions) == 1 {
		r.log.Info("single region, nothing to deform", "id", t.Regions[0].ID)
		return r.unchanged(false), nil
	}

	prev, initialTotal := areaError(t)
	r.log.Debug("initial area error", "error", prev)
	if prev <= thr {
		r.log.Info("input already within permitted error", "error", prev, "threshold", thr)
		return r.unchanged(true), nil
	}

	in := flow.New(g, r.tr, r.opts.policy, r.log)
	var (
		pass int
		cur  float64
	)
	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if pass == r.opts.maxPasses {
			return nil, fmt.Errorf("%w: error %g after %d passes: %w", ErrConvergenceFailed, prev, pass, ErrTooManyPasses)
		}
		pass++

		if err := r.pass(in); err != nil {
			return nil, fmt.Errorf("%w: pass %d: %w", ErrConvergenceFailed, pass, err)
		}
		if r.afterPass != nil {
			r.afterPass(pass, t.Rings)
		}

		cur, _ = areaError(t)
		r.log.Debug("pass done", "pass", pass, "error", cur)
		if cur <= thr {
			break
		}
		if pass > 1 && cur >= prev {
			return nil, fmt.Errorf("%w: pass %d: %g -> %g: %w", ErrConvergenceFailed, pass, prev, cur, ErrDiverged)
		}
		prev = cur
	}

	r.finish(initialTotal)
	r.log.Info("cartogram converged", "passes", pass, "error", cur)
	res := r.result(t.Rings, true)
	res.MaxAreaError = cur
	res.Passes = pass

	return res, nil
}

// pass runs one density/flow/projection cycle on the current rings.
func (r *runner) pass(in *flow.Integrator) error {
	g := r.g
	if _, err := g.FillDensity(r.table, r.tr, r.opts.policy, r.opts.blurWidth); err != nil {
		return err
	}
	g.ResetProjection()
	if err := in.Init(); err != nil {
		return err
	}
	st, err := in.Integrate()
	if err != nil {
		return err
	}
	r.log.Debug("integration done", "steps", st.Steps, "rejected", st.Rejected)
	in.Project(r.table.Rings)

	return nil
}

// finish rescales rings and lattice around the grid centre so the total
// area matches initialTotal, then maps them back and fits them into the
// caller's bounding box when requested.
func (r *runner) finish(initialTotal float64) {
	t, g := r.table, r.g
	_, total := areaError(t)
	s := math.Sqrt(initialTotal / total)
	c := g.Center()
	scale := func(p geometry.Point) geometry.Point { return c.Add(p.Sub(c).Scale(s)) }

	for _, ring := range t.Rings {
		for n, p := range ring {
			ring[n] = scale(p)
		}
	}
	for k, p := range g.Cumulative {
		g.Cumulative[k] = scale(p)
	}
	if !r.opts.scaleToOriginal {
		return
	}
	for _, ring := range t.Rings {
		g.Affine.InverseRing(ring)
	}
	for k, p := range g.Cumulative {
		g.Cumulative[k] = g.Affine.Inverse(p)
	}
	r.fit()
}

// fit shrinks rings and lattice uniformly about the centre of r.bbox so
// that every ring point lies inside r.bbox. Area ratios are unchanged.
func (r *runner) fit() {
	t, g, b := r.table, r.g, r.bbox
	got, ok := geometry.BoundsOf(t.Rings)
	if !ok || (got.MinX >= b.MinX && got.MaxX <= b.MaxX && got.MinY >= b.MinY && got.MaxY <= b.MaxY) {
		return
	}

	c := geometry.Point{X: 0.5 * (b.MinX + b.MaxX), Y: 0.5 * (b.MinY + b.MaxY)}
	s := 1.0
	shrink := func(room, need float64) {
		if need > room {
			s = math.Min(s, room/need)
		}
	}
	shrink(c.X-b.MinX, c.X-got.MinX)
	shrink(b.MaxX-c.X, got.MaxX-c.X)
	shrink(c.Y-b.MinY, c.Y-got.MinY)
	shrink(b.MaxY-c.Y, got.MaxY-c.Y)
	r.log.Debug("fitting result into bounding box", "scale", s)

	scale := func(p geometry.Point) geometry.Point { return c.Add(p.Sub(c).Scale(s)) }
	for _, ring := range t.Rings {
		for n, p := range ring {
			// Clamp absorbs rounding at the boundary.
			p = scale(p)
			ring[n] = geometry.Point{X: min(max(p.X, b.MinX), b.MaxX), Y: min(max(p.Y, b.MinY), b.MaxY)}
		}
	}
	for k, p := range g.Cumulative {
		g.Cumulative[k] = scale(p)
	}
}

// unchanged returns the input geometry as the result, with zero error.
// withGrid attaches the identity lattice.
func (r *runner) unchanged(withGrid bool) *Result {
	rings := r.table.Rings
	if r.opts.scaleToOriginal {
		rings = r.orig
	}
	res := r.result(rings, withGrid)
	if withGrid && r.opts.scaleToOriginal {
		for k, p := range res.Grid.Positions {
			res.Grid.Positions[k] = r.g.Affine.Inverse(p)
		}
	}

	return res
}

// result assembles the per-region output from rings (parallel to the table).
func (r *runner) result(rings []geometry.Ring, withGrid bool) *Result {
	t := r.table
	res := &Result{Regions: make([]RegionResult, len(t.Regions))}
	for i, e := range t.Regions {
		res.Regions[i] = RegionResult{
			ID:         e.ID,
			Polygons:   t.Polygons(i, rings),
			Unknown:    e.Unknown,
			TargetArea: e.TargetArea,
		}
	}
	if withGrid {
		res.Grid = &Displacement{
			LX:        r.g.LX,
			LY:        r.g.LY,
			Positions: append([]geometry.Point(nil), r.g.Cumulative...),
		}
	}

	return res
}
