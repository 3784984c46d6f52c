// SPDX-License-Identifier: MIT

package geometry

// Point is a 2D coordinate. Copied by value; has no identity.
type Point struct {
	X, Y float64
}

// Add returns p+q.
func (p Point) Add(q Point) Point { return Point{p.X + q.X, p.Y + q.Y} }

// Sub returns p-q.
func (p Point) Sub(q Point) Point { return Point{p.X - q.X, p.Y - q.Y} }

// Scale returns s·p.
func (p Point) Scale(s float64) Point { return Point{s * p.X, s * p.Y} }

// Dist2 returns the squared Euclidean distance between p and q.
func (p Point) Dist2(q Point) float64 {
	dx, dy := p.X-q.X, p.Y-q.Y
	return dx*dx + dy*dy
}

// Ring is a closed sequence of points: the first and last point coincide.
type Ring []Point

// Clone returns a deep copy of r.
func (r Ring) Clone() Ring {
	if r == nil {
		return nil
	}
	out := make(Ring, len(r))
	copy(out, r)

	return out
}

// IsClosed reports whether r has at least four points and ends where it starts.
func (r Ring) IsClosed() bool {
	return len(r) >= 4 && r[0] == r[len(r)-1]
}

// Reverse flips the orientation of r in place.
func (r Ring) Reverse() {
	for l, h := 0, len(r)-1; l < h; l, h = l+1, h-1 {
		r[l], r[h] = r[h], r[l]
	}
}

// BBox is an axis-aligned bounding box.
type BBox struct {
	MinX, MinY, MaxX, MaxY float64
}

// Width returns MaxX-MinX.
func (b BBox) Width() float64 { return b.MaxX - b.MinX }

// Height returns MaxY-MinY.
func (b BBox) Height() float64 { return b.MaxY - b.MinY }

// Contains reports whether p lies inside b (boundary included).
func (b BBox) Contains(p Point) bool {
	return p.X >= b.MinX && p.X <= b.MaxX && p.Y >= b.MinY && p.Y <= b.MaxY
}

// Extend grows b to include p.
func (b BBox) Extend(p Point) BBox {
	b.MinX, b.MaxX = min(b.MinX, p.X), max(b.MaxX, p.X)
	b.MinY, b.MaxY = min(b.MinY, p.Y), max(b.MaxY, p.Y)

	return b
}

// BoundsOf returns the bounding box of all points in rings.
// ok is false when rings hold no points.
func BoundsOf(rings []Ring) (b BBox, ok bool) {
	for _, r := range rings {
		for _, p := range r {
			if !ok {
				b, ok = BBox{p.X, p.Y, p.X, p.Y}, true
				continue
			}
			b = b.Extend(p)
		}
	}

	return b, ok
}
