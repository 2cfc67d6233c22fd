package frames

import (
	"github.com/physgen/gravgen/internal/anim"
	"github.com/physgen/gravgen/internal/raster"
	"github.com/physgen/gravgen/internal/scenario"
	"github.com/physgen/gravgen/internal/sim"
)

// SelectFinal picks the trajectory index rendered as the "after" still.
// Pure and deterministic: three ordered predicates scanned most-recent-
// first, with an unconditional fallback, so it always returns a valid
// index.
//
//  1. settled and visibly clear of the ground band (>= radius px margin)
//  2. lowest point still clear of the ground band (>= radius+5 px margin)
//  3. fixed index at 80% of the trajectory
func SelectFinal(sc scenario.Scenario, traj sim.Trajectory, mapper *raster.Mapper, radiusMeters float64) int {
	groundY := mapper.GroundY()
	radiusPx := float64(sc.Radius)

	for i := len(traj) - 1; i >= 0; i-- {
		s := traj[i]
		if !s.Settled(radiusMeters) {
			continue
		}
		if _, py := anim.PlaceSample(s, mapper, radiusMeters); py <= groundY-radiusPx {
			return i
		}
	}

	for i := len(traj) - 1; i >= 0; i-- {
		s := traj[i]
		if s.Height < 0 {
			continue
		}
		if _, py := anim.PlaceSample(s, mapper, radiusMeters); py <= groundY-radiusPx-5 {
			return i
		}
	}

	return int(0.8 * float64(len(traj)))
}
