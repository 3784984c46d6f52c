package region

import (
	"math"

	"github.com/katalvlaran/cartogram/geometry"
)

// TinyRingFactor scales the bounding-box area into the tiny-ring cutoff.
const TinyRingFactor = 1e-12

// FilterTinyRings drops every ring whose absolute area is below
// TinyRingFactor·width·height of bbox, together with the holes of any
// dropped shell, and renumbers the table. It returns the number of rings
// removed. Regions may end up with no rings; they become unmeasurable.
// Complexity: O(total points).
func FilterTinyRings(t *Table, bbox geometry.BBox) int {
	cutoff := TinyRingFactor * bbox.Width() * bbox.Height()
	remap := make([]int, len(t.Rings))
	rings := t.Rings[:0:0]
	tags := t.Tags[:0:0]

	for k, r := range t.Rings {
		tag := t.Tags[k]
		remap[k] = -1
		if math.Abs(geometry.OrientedArea(r)) < cutoff {
			continue
		}
		if tag.Role == Hole && remap[tag.Shell] < 0 {
			continue
		}
		remap[k] = len(rings)
		if tag.Role == Shell {
			tag.Shell = remap[k]
		} else {
			tag.Shell = remap[tag.Shell]
		}
		rings = append(rings, r)
		tags = append(tags, tag)
	}

	removed := len(t.Rings) - len(rings)
	t.Rings, t.Tags = rings, tags
	t.reindex()

	return removed
}
