// Package geometry holds the plain numeric structures the cartogram engine
// exchanges with its collaborators: points, closed rings, bounding boxes and
// the affine map between caller coordinates and grid ("L-space") coordinates.
//
// Orientation convention: OrientedArea is positive for clockwise rings
// (y axis pointing up). Exterior shells are clockwise, holes counter-clockwise.
//
// All types are values; nothing here aliases caller memory unless documented.
package geometry
