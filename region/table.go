package region

import (
	"fmt"
	"math"

	"github.com/katalvlaran/cartogram/geometry"
)

// NewTable validates regions and flattens them into a Table.
// Stage 1 (Validate): non-empty input, finite non-negative targets, closed
// rings, known roles, no hole before its shell.
// Stage 2 (Flatten): deep-copy rings, orient shells clockwise and holes
// counter-clockwise, tag each ring with (region, role, shell).
// Stage 3 (Finalize): per-region ring lists and perimeters.
// Complexity: O(total points).
func NewTable(regions []Region) (*Table, error) {
	if len(regions) == 0 {
		return nil, ErrNoRegions
	}
	t := &Table{Regions: make([]Entry, len(regions))}
	for ri, reg := range regions {
		switch {
		case math.IsNaN(reg.Target):
		case math.IsInf(reg.Target, 0):
			return nil, fmt.Errorf("region %d: %w", reg.ID, ErrInvalidTarget)
		case reg.Target < 0:
			return nil, fmt.Errorf("region %d: target %g: %w", reg.ID, reg.Target, ErrNegativeTarget)
		}
		t.Regions[ri] = Entry{ID: reg.ID, Target: reg.Target, Unknown: math.IsNaN(reg.Target)}

		shell := -1
		for k, tr := range reg.Rings {
			if !tr.Ring.IsClosed() {
				return nil, fmt.Errorf("region %d ring %d: %w", reg.ID, k, ErrMalformedRing)
			}
			ring := tr.Ring.Clone()
			area := geometry.OrientedArea(ring)
			var flip bool
			switch tr.Role {
			case Shell:
				flip = area < 0
				shell = len(t.Rings)
			case Hole:
				if shell < 0 {
					return nil, fmt.Errorf("region %d ring %d: %w", reg.ID, k, ErrHoleWithoutShell)
				}
				flip = area > 0
			default:
				return nil, fmt.Errorf("region %d ring %d: %w", reg.ID, k, ErrBadRole)
			}
			if flip {
				ring.Reverse()
			}
			t.Rings = append(t.Rings, ring)
			t.Tags = append(t.Tags, Tag{Region: ri, Role: tr.Role, Shell: shell, Reversed: flip})
		}
	}
	t.reindex()

	return t, nil
}

// reindex rebuilds per-region ring lists and perimeters from Tags.
func (t *Table) reindex() {
	for i := range t.Regions {
		t.Regions[i].Rings = t.Regions[i].Rings[:0]
		t.Regions[i].Perimeter = 0
	}
	for k, tag := range t.Tags {
		e := &t.Regions[tag.Region]
		e.Rings = append(e.Rings, k)
		e.Perimeter += geometry.Perimeter(t.Rings[k])
	}
}

// RegionAreas returns, per region, the summed oriented area of its rings.
// Holes contribute negatively. Unmeasurable regions report 0.
// Complexity: O(total points).
func (t *Table) RegionAreas() []float64 {
	areas := make([]float64, len(t.Regions))
	for k, tag := range t.Tags {
		areas[tag.Region] += geometry.OrientedArea(t.Rings[k])
	}

	return areas
}

// CloneRings returns a deep copy of the current ring shapes.
func (t *Table) CloneRings() []geometry.Ring {
	out := make([]geometry.Ring, len(t.Rings))
	for k, r := range t.Rings {
		out[k] = r.Clone()
	}

	return out
}

// InputRings is CloneRings with every ring put back in the orientation the
// caller supplied.
func (t *Table) InputRings() []geometry.Ring {
	out := t.CloneRings()
	for k, tag := range t.Tags {
		if tag.Reversed {
			out[k].Reverse()
		}
	}

	return out
}

// Polygons regroups the rings of region i (taken from rings, which must be
// parallel to t.Rings) into shells with their holes. Rings are copied.
func (t *Table) Polygons(i int, rings []geometry.Ring) []Polygon {
	var (
		out   []Polygon
		index = make(map[int]int) // shell ring index -> position in out
	)
	for _, k := range t.Regions[i].Rings {
		tag := t.Tags[k]
		if tag.Role == Shell {
			index[k] = len(out)
			out = append(out, Polygon{Shell: rings[k].Clone()})
			continue
		}
		p := &out[index[tag.Shell]]
		p.Holes = append(p.Holes, rings[k].Clone())
	}

	return out
}
