package cli

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	geojson "github.com/paulmach/go.geojson"

	"github.com/katalvlaran/cartogram/cartogram"
	"github.com/katalvlaran/cartogram/geometry"
	"github.com/katalvlaran/cartogram/region"
)

// Output properties added to every feature.
const (
	PropTargetUnknown = "target_unknown"
	PropTargetUsed    = "target_used"
	PropGraticule     = "graticule"
)

// collection is a decoded input map: regions in feature order, the source
// features for their ids and properties, and the bounding box of all rings.
type collection struct {
	regions  []region.Region
	features []*geojson.Feature
	bbox     geometry.BBox
}

// readCollection decodes a FeatureCollection of Polygon/MultiPolygon
// features. The target is read from property field; a missing, null or
// "NA" value marks the target unknown.
func readCollection(data []byte, field string) (*collection, error) {
	fc, err := geojson.UnmarshalFeatureCollection(data)
	if err != nil {
		return nil, fmt.Errorf("decode geojson: %w", err)
	}
	if len(fc.Features) == 0 {
		return nil, ErrNoFeatures
	}

	c := &collection{features: fc.Features}
	var all []geometry.Ring
	for i, f := range fc.Features {
		rings, err := featureRings(f)
		if err != nil {
			return nil, fmt.Errorf("feature %d: %w", i, err)
		}
		target, err := featureTarget(f, field)
		if err != nil {
			return nil, fmt.Errorf("feature %d: %w", i, err)
		}
		c.regions = append(c.regions, region.Region{ID: i, Target: target, Rings: rings})
		for _, tr := range rings {
			all = append(all, tr.Ring)
		}
	}

	bbox, ok := geometry.BoundsOf(all)
	if !ok {
		return nil, ErrNoFeatures
	}
	c.bbox = bbox

	return c, nil
}

// featureRings converts the polygons of f into tagged rings.
func featureRings(f *geojson.Feature) ([]region.TaggedRing, error) {
	if f.Geometry == nil {
		return nil, fmt.Errorf("missing geometry: %w", ErrBadGeometry)
	}
	var polys [][][][]float64
	switch f.Geometry.Type {
	case geojson.GeometryPolygon:
		polys = [][][][]float64{f.Geometry.Polygon}
	case geojson.GeometryMultiPolygon:
		polys = f.Geometry.MultiPolygon
	default:
		return nil, fmt.Errorf("%s: %w", f.Geometry.Type, ErrBadGeometry)
	}

	var out []region.TaggedRing
	for _, poly := range polys {
		for k, coords := range poly {
			role := region.Hole
			if k == 0 {
				role = region.Shell
			}
			ring := make(geometry.Ring, len(coords))
			for n, c := range coords {
				if len(c) < 2 {
					return nil, fmt.Errorf("coordinate with %d values: %w", len(c), ErrBadGeometry)
				}
				ring[n] = geometry.Point{X: c[0], Y: c[1]}
			}
			out = append(out, region.TaggedRing{Role: role, Ring: ring})
		}
	}

	return out, nil
}

// featureTarget reads the target property; NaN means unknown.
func featureTarget(f *geojson.Feature, field string) (float64, error) {
	v, ok := f.Properties[field]
	if !ok || v == nil {
		return math.NaN(), nil
	}
	switch x := v.(type) {
	case float64:
		return x, nil
	case string:
		s := strings.TrimSpace(x)
		if s == "" || strings.EqualFold(s, "NA") {
			return math.NaN(), nil
		}
		n, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return 0, fmt.Errorf("%s=%q: %w", field, x, ErrBadTarget)
		}
		return n, nil
	default:
		return 0, fmt.Errorf("%s=%v: %w", field, v, ErrBadTarget)
	}
}

// writeCollection encodes res as a FeatureCollection, copying ids and
// properties from the input features. A positive graticuleStep appends a
// MultiLineString feature tracing every graticuleStep-th lattice line.
func writeCollection(c *collection, res *cartogram.Result, graticuleStep int) ([]byte, error) {
	fc := geojson.NewFeatureCollection()
	for i, rr := range res.Regions {
		polys := make([][][][]float64, 0, len(rr.Polygons))
		for _, p := range rr.Polygons {
			poly := [][][]float64{ringCoords(p.Shell)}
			for _, h := range p.Holes {
				poly = append(poly, ringCoords(h))
			}
			polys = append(polys, poly)
		}

		var f *geojson.Feature
		if len(polys) == 1 {
			f = geojson.NewPolygonFeature(polys[0])
		} else {
			f = geojson.NewMultiPolygonFeature(polys...)
		}
		src := c.features[i]
		f.ID = src.ID
		for k, v := range src.Properties {
			f.SetProperty(k, v)
		}
		f.SetProperty(PropTargetUnknown, rr.Unknown)
		f.SetProperty(PropTargetUsed, rr.TargetArea)
		fc.AddFeature(f)
	}
	if graticuleStep > 0 && res.Grid != nil {
		g := geojson.NewMultiLineStringFeature(graticule(res.Grid, graticuleStep)...)
		g.SetProperty(PropGraticule, true)
		fc.AddFeature(g)
	}

	return fc.MarshalJSON()
}

// ringCoords converts a ring into GeoJSON positions.
func ringCoords(r geometry.Ring) [][]float64 {
	out := make([][]float64, len(r))
	for n, p := range r {
		out[n] = []float64{p.X, p.Y}
	}
	return out
}

// graticule returns the lattice lines i = const and j = const for every
// step-th index, traced through the displaced cell centres.
func graticule(d *cartogram.Displacement, step int) [][][]float64 {
	var lines [][][]float64
	for i := 0; i < d.LX; i += step {
		line := make([][]float64, 0, d.LY)
		for j := 0; j < d.LY; j++ {
			p := d.Positions[i*d.LY+j]
			line = append(line, []float64{p.X, p.Y})
		}
		lines = append(lines, line)
	}
	for j := 0; j < d.LY; j += step {
		line := make([][]float64, 0, d.LX)
		for i := 0; i < d.LX; i++ {
			p := d.Positions[i*d.LY+j]
			line = append(line, []float64{p.X, p.Y})
		}
		lines = append(lines, line)
	}

	return lines
}
