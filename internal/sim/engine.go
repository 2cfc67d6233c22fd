package sim

import (
	"fmt"

	"github.com/physgen/gravgen/internal/scenario"
)

// Engine integrates one scenario into a trajectory. Implementations must
// honor the same contract: exactly Params.Steps samples, heights clamped
// to the ground plane, and settle padding from the first settled sample.
type Engine interface {
	Name() string
	Available() bool
	Simulate(sc scenario.Scenario, p Params) Trajectory
}

// NewEngine resolves an engine by name. "auto" picks the rigid-body
// engine when available and falls back to the analytic integrator. The
// choice is made once here, never per call.
func NewEngine(name string) (Engine, error) {
	switch name {
	case "", "analytic":
		return NewAnalytic(), nil
	case "chipmunk":
		eng := NewChipmunk()
		if !eng.Available() {
			return nil, fmt.Errorf("chipmunk engine unavailable")
		}
		return eng, nil
	case "auto":
		return AutoSelectEngine(), nil
	default:
		return nil, fmt.Errorf("unknown engine: %s", name)
	}
}

func AutoSelectEngine() Engine {
	chip := NewChipmunk()
	if chip.Available() {
		return chip
	}
	return NewAnalytic()
}

// pad fills the remainder of a trajectory with the settled state.
func pad(traj Trajectory, steps int, settled Sample) Trajectory {
	for len(traj) < steps {
		traj = append(traj, settled)
	}
	return traj
}
