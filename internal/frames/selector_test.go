package frames

import (
	"math/rand"
	"testing"

	"github.com/physgen/gravgen/internal/raster"
	"github.com/physgen/gravgen/internal/scenario"
	"github.com/physgen/gravgen/internal/sim"
)

func testMapper() *raster.Mapper {
	return raster.NewMapper(600, 800, 50, 25.0, 0.0)
}

func TestSelectTotality(t *testing.T) {
	mapper := testMapper()
	eng := sim.NewAnalytic()
	rng := rand.New(rand.NewSource(11))
	sampler := scenario.NewSampler(
		scenario.Range{Min: 0, Max: 30},
		scenario.Range{Min: -10, Max: 15},
		scenario.Range{Min: 3, Max: 20},
		25,
		rng,
	)

	for i := 0; i < 2000; i++ {
		sc := sampler.Sample()
		traj := eng.Simulate(sc, sim.Params{Dt: 1.0 / 15, Steps: 45, RadiusMeters: 1.0})

		idx := SelectFinal(sc, traj, mapper, 1.0)
		if idx < 0 || idx >= len(traj) {
			t.Fatalf("index %d out of range for %+v", idx, sc)
		}
	}
}

func TestSelectDeterministic(t *testing.T) {
	mapper := testMapper()
	sc := scenario.Scenario{Height: 18, Velocity: 4, Gravity: 9.8, Radius: 25}
	traj := sim.NewAnalytic().Simulate(sc, sim.Params{Dt: 1.0 / 15, Steps: 45, RadiusMeters: 1.0})

	first := SelectFinal(sc, traj, mapper, 1.0)
	for i := 0; i < 10; i++ {
		if got := SelectFinal(sc, traj, mapper, 1.0); got != first {
			t.Fatalf("selection changed between calls: %d vs %d", got, first)
		}
	}
}

func TestSelectSettledTrajectory(t *testing.T) {
	mapper := testMapper()
	sc := scenario.Scenario{Height: 0, Velocity: 0, Gravity: 9.8, Radius: 25}
	traj := sim.NewAnalytic().Simulate(sc, sim.Params{Dt: 1.0 / 15, Steps: 45, RadiusMeters: 1.0})

	idx := SelectFinal(sc, traj, mapper, 1.0)

	// Every sample is the settled rest state; whichever index the backward
	// scan lands on must hold exactly the index-0 state.
	if traj[idx] != traj[0] {
		t.Errorf("selected sample %+v differs from rest state %+v", traj[idx], traj[0])
	}
	if traj[idx].Height != 0 || traj[idx].Velocity != 0 {
		t.Errorf("selected sample should be at rest, got %+v", traj[idx])
	}
}

func TestSelectPrefersSettledOverAirborne(t *testing.T) {
	mapper := testMapper()
	sc := scenario.Scenario{Height: 6, Velocity: 0, Gravity: 9.8, Radius: 25}
	// 10 seconds is plenty for a 6 m drop to settle.
	traj := sim.NewAnalytic().Simulate(sc, sim.Params{Dt: 1.0 / 15, Steps: 150, RadiusMeters: 1.0})

	idx := SelectFinal(sc, traj, mapper, 1.0)
	if !traj[idx].Settled(1.0) {
		t.Errorf("expected a settled sample, got %+v at %d", traj[idx], idx)
	}
}

func TestSelectLowestVisibleTier(t *testing.T) {
	mapper := testMapper()
	sc := scenario.Scenario{Height: 20, Radius: 25}

	// Never settled (fast), heights descending: the backward scan must
	// return the last sample clear of the ground band by radius+5 px.
	traj := sim.Trajectory{
		{Height: 20, Velocity: -9},
		{Height: 10, Velocity: -9},
		{Height: 5, Velocity: -9},
		{Height: 0.1, Velocity: -9},
	}

	idx := SelectFinal(sc, traj, mapper, 1.0)
	if idx != 2 {
		t.Errorf("expected index 2 (lowest sample clear of the ground), got %d", idx)
	}
}

func TestSelectFallbackTier(t *testing.T) {
	mapper := testMapper()
	sc := scenario.Scenario{Height: 0.1, Radius: 25}

	// Hugging the ground at speed: tier 1 fails on velocity, tier 2 on
	// the visual margin, so the fixed 80% index applies.
	traj := make(sim.Trajectory, 45)
	for i := range traj {
		traj[i] = sim.Sample{Height: 0.1, Velocity: 5}
	}

	idx := SelectFinal(sc, traj, mapper, 1.0)
	if idx != 36 {
		t.Errorf("expected fallback index 36, got %d", idx)
	}
}
