// Package region flattens structured region input into the RegionTable the
// cartogram engine works on, and owns the per-region bookkeeping that does
// not need a grid: tiny-ring filtering and target-area normalization.
//
// What:
//
//   - Region: id, target value (NaN = unknown) and role-tagged rings.
//   - Table: every ring of every region in one indexed slice, with an
//     explicit per-ring Tag{Region, Role, Shell} built once from the input.
//   - FilterTinyRings: drops slivers below 1e-12 of the bounding-box area.
//   - NormalizeTargets: infers unknown targets and repairs zero or tiny ones.
//
// Invariants:
//
//   - Every ring belongs to exactly one region and fills exactly one shell
//     or hole slot; a hole always points at a shell of the same region.
//   - Shells are clockwise, holes counter-clockwise (NewTable reorients).
//   - Table never aliases caller rings.
//
// Errors:
//
//   - ErrNoRegions, ErrMalformedRing, ErrHoleWithoutShell, ErrBadRole,
//     ErrNegativeTarget, ErrInvalidTarget, ErrNoPositiveTarget.
package region
