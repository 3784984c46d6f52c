package geometry

import "math"

// OrientedArea returns the shoelace area of r, positive when r is clockwise.
// The closing segment is included whether or not r repeats its first point.
// Complexity: O(len(r)).
func OrientedArea(r Ring) float64 {
	n := len(r)
	if n < 3 {
		return 0
	}
	var sum float64
	for i, j := 0, n-1; i < n; j, i = i, i+1 {
		sum += (r[i].X - r[j].X) * (r[i].Y + r[j].Y)
	}

	return 0.5 * sum
}

// Perimeter returns the summed segment lengths of r, closing segment included.
// Complexity: O(len(r)).
func Perimeter(r Ring) float64 {
	n := len(r)
	if n < 2 {
		return 0
	}
	var sum float64
	for i, j := 0, n-1; i < n; j, i = i, i+1 {
		sum += math.Hypot(r[i].X-r[j].X, r[i].Y-r[j].Y)
	}

	return sum
}
