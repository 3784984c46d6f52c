// Package flow advects the lattice of a grid.Grid along the linear-diffusion
// velocity field of its density, one pass at a time.
//
// What:
//
//   - Init: spectral coefficients of the smoothed density and the initial
//     flux field -∇ρ obtained by solving ∇²φ = ρ with reflecting walls.
//   - Integrate: moves every lattice point from t=0 to t=1 with an
//     adaptive-step midpoint scheme, where the density at time t is
//     ρ(t) = ρ̄ + (1-t)·(ρ₀ - ρ̄) and the velocity is v = -flux/ρ(t).
//   - Project: carries ring points and the cumulative lattice through the
//     displacement the pass produced.
//
// Why:
//
//   - Points flow away from dense cells until the density is uniform, so
//     every region ends up with area proportional to its target.
//
// Step control:
//
//	dt starts at InitialStep. A trial is rejected when a half or full step
//	leaves the lattice, or when the midpoint result drifts from the Euler
//	estimate by more than min(lx,ly)·Tolerance (squared distance). Rejected
//	steps shrink dt by Shrink, accepted ones grow it by Grow. A step below
//	MinStep fails with ErrStepUnderflow.
//
// Complexity:
//
//   - Init: O(lx·ly·log(lx·ly)).
//   - Integrate: O(lx·ly) per trial step.
//   - Project: O(points + lx·ly).
package flow
