package region

// Empirically tuned constants; changing them changes every cartogram.
const (
	// MinPerimeterFactor scales a region's perimeter share into its minimum target share.
	MinPerimeterFactor = 0.025
	// MinTargetShare is the floor of the minimum target share.
	MinTargetShare = 0.00025
	// ZeroTargetFactor replaces exactly-zero targets by this fraction of the
	// smallest positive target when the perimeter threshold is off.
	ZeroTargetFactor = 0.2
)

// NormalizeTargets fills Entry.TargetArea for every region.
//
// Implementation:
//   - Stage 1: copy known targets; unknown (NaN) targets count as zero.
//   - Stage 2: unknown regions share a total chosen so their part of the new
//     total equals their part of the current geometric area:
//     naTotal = naRatio·knownTotal/(1-naRatio), split by current area.
//   - Stage 3: with usePerimeterThreshold, every region whose target share is
//     below max(perimeterShare·MinPerimeterFactor, MinTargetShare) is raised to
//     exactly that share of the rebalanced total. Otherwise exactly-zero
//     targets become ZeroTargetFactor × the smallest positive target.
//
// Unmeasurable regions (no rings) are left at their copied value and never
// adjusted. Returns ErrNoPositiveTarget when no measurable region ends up
// with a positive target.
// Complexity: O(total points) for the area pass, O(regions) otherwise.
func NormalizeTargets(t *Table, usePerimeterThreshold bool) error {
	areas := t.RegionAreas()
	n := len(t.Regions)
	targets := make([]float64, n)

	var knownTotal, naArea, totalArea float64
	for i, e := range t.Regions {
		if !e.Measurable() {
			continue
		}
		totalArea += areas[i]
		if e.Unknown {
			naArea += areas[i]
			continue
		}
		targets[i] = e.Target
		knownTotal += e.Target
	}

	if naArea > 0 {
		inferUnknown(t, areas, targets, knownTotal, naArea, totalArea)
	}

	var err error
	if usePerimeterThreshold {
		err = applyPerimeterThreshold(t, targets)
	} else {
		err = replaceZeroTargets(t, targets)
	}
	if err != nil {
		return err
	}

	for i := range t.Regions {
		t.Regions[i].TargetArea = targets[i]
	}

	return nil
}

// inferUnknown assigns targets to NaN regions in proportion to their area.
// When nothing is known (all regions unknown, or known mass is zero) the
// unknown regions keep their current area as target.
func inferUnknown(t *Table, areas, targets []float64, knownTotal, naArea, totalArea float64) {
	naTotal := naArea
	if knownTotal > 0 && naArea < totalArea {
		ratio := naArea / totalArea
		naTotal = ratio * knownTotal / (1 - ratio)
	}
	for i, e := range t.Regions {
		if e.Unknown && e.Measurable() {
			targets[i] = areas[i] / naArea * naTotal
		}
	}
}

// replaceZeroTargets swaps exact zeros for a fraction of the smallest positive target.
func replaceZeroTargets(t *Table, targets []float64) error {
	minPositive := 0.0
	for i, e := range t.Regions {
		if e.Measurable() && targets[i] > 0 && (minPositive == 0 || targets[i] < minPositive) {
			minPositive = targets[i]
		}
	}
	if minPositive == 0 {
		return ErrNoPositiveTarget
	}
	for i, e := range t.Regions {
		if e.Measurable() && targets[i] == 0 {
			targets[i] = ZeroTargetFactor * minPositive
		}
	}

	return nil
}

// applyPerimeterThreshold enlarges regions whose target share is smaller
// than their perimeter-weighted threshold. Enlarged regions get exactly
// their threshold share of the new total; the others keep their values.
func applyPerimeterThreshold(t *Table, targets []float64) error {
	var totTarget, totPerimeter float64
	for i, e := range t.Regions {
		if e.Measurable() {
			totTarget += targets[i]
			totPerimeter += e.Perimeter
		}
	}
	if totTarget <= 0 {
		return ErrNoPositiveTarget
	}

	threshold := make([]float64, len(targets))
	small := make([]bool, len(targets))
	var smallShare, aboveTotal float64
	for i, e := range t.Regions {
		if !e.Measurable() {
			continue
		}
		share := 0.0
		if totPerimeter > 0 {
			share = e.Perimeter / totPerimeter
		}
		threshold[i] = max(share*MinPerimeterFactor, MinTargetShare)
		if targets[i]/totTarget < threshold[i] {
			small[i] = true
			smallShare += threshold[i]
		} else {
			aboveTotal += targets[i]
		}
	}
	// Every region below its threshold leaves nothing to rebalance against.
	if smallShare >= 1 || aboveTotal <= 0 {
		return nil
	}
	for i := range targets {
		if small[i] {
			targets[i] = threshold[i] * aboveTotal / (1 - smallShare)
		}
	}

	return nil
}
