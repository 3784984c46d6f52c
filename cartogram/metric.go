package cartogram

import (
	"math"

	"gonum.org/v1/gonum/floats"

	"github.com/katalvlaran/cartogram/region"
)

// areaError returns the maximum relative area error over measurable
// regions and their summed area.
//
// With A the summed measurable area and T the summed measurable target,
// region r's error is |area_r / (target_r·A/T) - 1|. Unmeasurable regions
// contribute nothing to either sum.
// Complexity: O(total points).
func areaError(t *region.Table) (maxErr, total float64) {
	areas := t.RegionAreas()
	var measured, targets []float64
	for i, e := range t.Regions {
		if !e.Measurable() {
			continue
		}
		measured = append(measured, areas[i])
		targets = append(targets, e.TargetArea)
	}
	total = floats.Sum(measured)
	scale := total / floats.Sum(targets)

	for i, a := range measured {
		maxErr = math.Max(maxErr, math.Abs(a/(targets[i]*scale)-1))
	}

	return maxErr, total
}
