// Package grid owns the lattice the cartogram flow is computed on.
//
// What:
//
//   - Grid: lx×ly cells (powers of two) in "L-space", where one cell has
//     side 1 and cell (i,j) is centred on (i+0.5, j+0.5). Flat fields are
//     indexed k = i*ly + j.
//   - New: pads the caller's bounding box by PaddingFactor, maps the longer
//     side onto the requested resolution and the shorter one onto the
//     smallest power of two covering it at the same lattice constant.
//   - Rasterize: scanline parity fill of region membership.
//   - FillDensity: target/area density per region, mean density outside,
//     Gaussian-smoothed through the spectral backend.
//   - Interpolate: half-shifted bilinear interpolation of cell-centred
//     fields, optionally pinned to zero across one axis' boundary.
//
// Ownership:
//
//   - A Grid belongs to exactly one run; its buffers are overwritten in
//     place pass after pass and must not be read while a pass is running.
//   - The lattice projection is double-buffered: SwapProjection exchanges
//     slices, never copies.
package grid
