// Package sim drives an N-body integration run.
//
// A [Simulation] owns an ordered set of bodies and a fixed [Config]. It moves
// through three states:
//
//   - Configured: built by [New]; momentum baselines captured
//   - Running: inside [Simulation.Run]
//   - Completed: all steps taken; momentum drift available
//
// A run that aborts on a numerical error ends in Failed. No state leads back
// to Configured, so Run succeeds at most once per Simulation.
//
// # Example
//
//	s, err := sim.New(sim.Config{Method: integrators.Verlet, Dt: 8, Steps: 10850,
//	    TrackLinearMomentum: true, TrackAngularMomentum: true}, bodies)
//	if err != nil {
//	    return err
//	}
//	res, err := s.Run(ctx)
//
// Every SnapshotInterval steps (counting from the first) the state of every
// body is copied into the trajectory. Because [body.Body] is a value type the
// copy shares nothing with the live bodies.
//
// # Thread Safety
//
// A Simulation is NOT safe for concurrent use. The force phase may be spread
// over Config.Workers goroutines, but all accelerations are computed before
// any body moves.
package sim
