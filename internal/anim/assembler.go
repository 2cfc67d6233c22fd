package anim

import (
	"github.com/physgen/gravgen/internal/raster"
	"github.com/physgen/gravgen/internal/scenario"
	"github.com/physgen/gravgen/internal/sim"
)

// Placement is the pixel-space ball center for one trajectory sample.
// Placements are derived views; they are recomputed per use and never
// cached across scenarios.
type Placement struct {
	Index int
	X     float64
	Y     float64
}

// Assemble maps every trajectory sample to a render placement, in
// trajectory order. The ball center sits one radius above the sample
// height so a settled ball rests exactly on the ground line.
func Assemble(sc scenario.Scenario, traj sim.Trajectory, mapper *raster.Mapper, radiusMeters float64) []Placement {
	placements := make([]Placement, len(traj))
	for i, s := range traj {
		px, py := PlaceSample(s, mapper, radiusMeters)
		placements[i] = Placement{Index: i, X: px, Y: py}
	}
	return placements
}

// PlaceSample computes the pixel center for a single sample.
func PlaceSample(s sim.Sample, mapper *raster.Mapper, radiusMeters float64) (float64, float64) {
	return mapper.ToPixels(0, mapper.GroundHeight+s.Height+radiusMeters)
}
