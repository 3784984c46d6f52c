// SPDX-License-Identifier: MIT

package region

import "github.com/katalvlaran/cartogram/geometry"

// Role tags a ring as a new polygon's shell or a hole of the latest shell.
type Role int

const (
	// Shell starts a new polygon; its ring is the exterior boundary.
	Shell Role = iota
	// Hole punches the most recently declared shell of the same region.
	Hole
)

// String implements fmt.Stringer.
func (r Role) String() string {
	switch r {
	case Shell:
		return "shell"
	case Hole:
		return "hole"
	default:
		return "invalid"
	}
}

// TaggedRing is one input ring with its role.
type TaggedRing struct {
	Role Role
	Ring geometry.Ring
}

// Region is one input region. ID is opaque (may be sparse or negative).
// Target is the desired mass; NaN means "unknown, infer from geometry".
type Region struct {
	ID     int
	Target float64
	Rings  []TaggedRing
}

// Polygon is one shell with its holes, as returned to callers.
type Polygon struct {
	Shell geometry.Ring
	Holes []geometry.Ring
}

// Tag records which region and slot a flattened ring fills.
type Tag struct {
	Region int  // index into Table.Regions
	Role   Role // Shell or Hole
	Shell  int  // ring index of the owning shell (itself for shells)

	// Reversed records that NewTable flipped the caller's orientation.
	Reversed bool
}

// Entry is the per-region record of a Table.
type Entry struct {
	ID         int
	Target     float64 // as supplied; NaN when unknown
	Unknown    bool    // Target was NaN
	TargetArea float64 // normalized target, set by NormalizeTargets
	Perimeter  float64 // summed perimeter of owned rings
	Rings      []int   // owned ring indices, in input order
}

// Measurable reports whether the region still owns any ring.
func (e Entry) Measurable() bool { return len(e.Rings) > 0 }

// Table is the flattened RegionTable. Rings holds the current shapes and is
// rewritten in place as the cartogram deforms them.
type Table struct {
	Rings   []geometry.Ring
	Tags    []Tag
	Regions []Entry
}
