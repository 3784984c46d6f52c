// Package cartogram is the module root of a density-equalizing map engine
// built on the Gastner–Newman flow method.
//
// What is in here?
//
//	Regions (polygons with holes) go in with a target value each; the same
//	regions come out deformed so that every area is proportional to its
//	target, while shared borders stay shared.
//
// Layout:
//
//	parallel/  Policy for per-cell work: Sequential or Pooled (errgroup)
//	spectral/  2D cosine/sine transforms: FFT backend, Direct reference, Verify
//	geometry/  Point, Ring, BBox, oriented area, perimeter, L-space affine
//	region/    validated region table, tiny-ring filter, target normalization
//	grid/      lattice, rasterization, density field, smoothing, interpolation
//	flow/      flux field and adaptive midpoint advection of the lattice
//	cartogram/ Run: the pass loop, options, results and error taxonomy
//	cmd/cartogram, internal/cli: GeoJSON in/out command line tool
//
// Quick start:
//
//	res, err := cartogram.Run(ctx, bbox, regions,
//		cartogram.WithMaxAreaError(0.01),
//		cartogram.WithParallelism(parallel.NewPooled(0)),
//	)
//
// or from the shell:
//
//	cartogram run -i states.geojson -t population -o out.geojson
package cartogram
