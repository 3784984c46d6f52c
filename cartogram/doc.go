// Package cartogram builds density-equalizing cartograms with the
// Gastner–Newman flow method.
//
// What:
//
//	Run deforms a set of regions (shells with holes, in any planar
//	coordinate system) so that each region's area becomes proportional to
//	its target value, while keeping neighbouring regions attached.
//
// How:
//
//  1. Validate the regions and flatten them into a region.Table; drop
//     rings too small to matter.
//  2. Map every ring into L-space, the padded lattice of a grid.Grid, and
//     normalize targets (inferring NaN ones from geometry).
//  3. Repeat flow passes: rasterize the current shapes into a density
//     field, advect the lattice for unit time, carry the rings along.
//     Stop once the maximum area error drops to the permitted threshold;
//     fail if it ever stops decreasing.
//  4. Rescale around the lattice centre to the initial total area and,
//     by default, map back to the caller's coordinates.
//
// Errors:
//
//	Every failure is classified with one of ErrInvalidInput,
//	ErrTransformRejected or ErrConvergenceFailed and also wraps the precise
//	cause (region.ErrNegativeTarget, flow.ErrStepUnderflow, ErrDiverged, ...),
//	so both levels can be tested with errors.Is. No partial result is ever
//	returned alongside an error.
//
// Concurrency:
//
//	Each Run owns its lattice and tables; independent runs may proceed in
//	parallel. WithParallelism spreads the per-cell work of one run.
//	The context is honoured between passes only.
package cartogram
