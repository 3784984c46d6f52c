package geometry

// Affine maps caller coordinates into grid space and back:
//
//	grid  = (orig - Origin) / Scale
//	orig  = grid·Scale + Origin
//
// Scale is the lattice constant: the caller-space length of one grid cell.
type Affine struct {
	Scale  float64
	Origin Point
}

// Forward maps a caller-space point into grid space.
func (a Affine) Forward(p Point) Point {
	return Point{(p.X - a.Origin.X) / a.Scale, (p.Y - a.Origin.Y) / a.Scale}
}

// Inverse maps a grid-space point back into caller space.
func (a Affine) Inverse(p Point) Point {
	return Point{p.X*a.Scale + a.Origin.X, p.Y*a.Scale + a.Origin.Y}
}

// ForwardRing returns a new ring with every point mapped into grid space.
func (a Affine) ForwardRing(r Ring) Ring {
	out := make(Ring, len(r))
	for i, p := range r {
		out[i] = a.Forward(p)
	}

	return out
}

// InverseRing maps every point of r back into caller space in place.
func (a Affine) InverseRing(r Ring) {
	for i, p := range r {
		r[i] = a.Inverse(p)
	}
}
