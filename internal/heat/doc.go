// Package heat provides the incremental heat-diffusion solver.
//
// A [Solver] owns a dense temperature [Field] and a double-buffered
// [Accumulator]. Each call to [Solver.Tick] processes one rectangular chunk of
// the grid chosen by the [Scheduler]: every cell in the chunk exchanges flux
// with its east and south neighbours, so each undirected edge is visited
// exactly once per sweep. When the scheduler's cursor wraps back to the origin
// the [Integrator] converts the accumulated flux into temperature deltas,
// clamps the result and commits the accumulator.
//
//   - [Grid]: row-major addressing and neighbour lookup
//   - [Conductivity]: temperature-dependent flux model
//   - [Scheduler]: chunk cursor and sweep detection
//   - [Accumulator]: per-cell net flux for the sweep in progress
//   - [Integrator]: flux to temperature conversion
//
// # Example
//
//	s, err := heat.New(heat.DefaultParams(), seed.Uniform(42, 0, 100))
//	if err != nil {
//	    return err
//	}
//	for {
//	    if r := s.Tick(1.0 / 64); r.SweepComplete {
//	        render(s.Field())
//	    }
//	}
//
// # Thread Safety
//
// A Solver is NOT thread-safe. Run independent solvers for parallel or shadow
// simulations; they share no state.
package heat
