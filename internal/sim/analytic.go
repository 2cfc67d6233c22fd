package sim

import "github.com/physgen/gravgen/internal/scenario"

// Analytic integrates the point-mass kinematics directly: semi-implicit
// Euler under constant gravity, velocity reflection with energy loss at
// the ground plane.
type Analytic struct{}

func NewAnalytic() *Analytic {
	return &Analytic{}
}

func (a *Analytic) Name() string    { return "analytic" }
func (a *Analytic) Available() bool { return true }

func (a *Analytic) Simulate(sc scenario.Scenario, p Params) Trajectory {
	traj := make(Trajectory, 0, p.Steps)

	h := sc.Height
	v := sc.Velocity

	for len(traj) < p.Steps {
		s := Sample{Height: h, Velocity: v}
		if s.Settled(p.RadiusMeters) {
			return pad(traj, p.Steps, Sample{Height: h, Velocity: 0})
		}
		traj = append(traj, s)

		v -= sc.Gravity * p.Dt
		h += v * p.Dt
		if h <= 0 {
			h = 0
			v = -Restitution * v
		}
	}

	return traj
}
