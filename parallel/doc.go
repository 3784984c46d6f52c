// Package parallel provides the "apply in parallel or not" policy used by
// the cartogram engine for its embarrassingly parallel per-cell loops.
//
// What:
//
//   - Policy splits an index range [0,n) into contiguous chunks and runs a
//     body over each chunk.
//   - Sequential runs a single chunk on the calling goroutine.
//   - Pooled fans chunks out over a bounded errgroup.
//
// Why:
//
//   - Row/column transform passes, density fills and integrator steps all
//     write disjoint indices, so chunking is the only synchronization needed.
//
// Bodies MUST only write indices inside their own [lo,hi) chunk.
package parallel
