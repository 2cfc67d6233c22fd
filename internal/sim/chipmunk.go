package sim

import (
	cp "github.com/jakecoffman/cp/v2"

	"github.com/physgen/gravgen/internal/scenario"
)

const (
	ballMass       = 1.0
	groundHalfSpan = 1000.0
)

// Chipmunk delegates integration to the Chipmunk rigid-body engine: a
// dynamic circle over a static ground segment, restitution expressed as
// shape elasticity. The trajectory contract (length, clamping, settle
// padding) is enforced on top of whatever the solver produces.
type Chipmunk struct{}

func NewChipmunk() *Chipmunk {
	return &Chipmunk{}
}

func (c *Chipmunk) Name() string    { return "chipmunk" }
func (c *Chipmunk) Available() bool { return true }

func (c *Chipmunk) Simulate(sc scenario.Scenario, p Params) Trajectory {
	space := cp.NewSpace()
	space.SetGravity(cp.Vector{X: 0, Y: -sc.Gravity})

	ground := space.AddShape(cp.NewSegment(
		space.StaticBody,
		cp.Vector{X: -groundHalfSpan, Y: 0},
		cp.Vector{X: groundHalfSpan, Y: 0},
		0,
	))
	ground.SetElasticity(1.0)
	ground.SetFriction(0.8)

	r := p.RadiusMeters
	moment := cp.MomentForCircle(ballMass, 0, r, cp.Vector{})
	body := space.AddBody(cp.NewBody(ballMass, moment))
	body.SetPosition(cp.Vector{X: 0, Y: sc.Height + r})
	body.SetVelocity(0, sc.Velocity)

	ball := space.AddShape(cp.NewCircle(body, r, cp.Vector{}))
	ball.SetElasticity(Restitution)
	ball.SetFriction(0.8)

	traj := make(Trajectory, 0, p.Steps)
	for len(traj) < p.Steps {
		h := body.Position().Y - r
		if h < 0 {
			h = 0
		}
		s := Sample{Height: h, Velocity: body.Velocity().Y}
		if s.Settled(p.RadiusMeters) {
			return pad(traj, p.Steps, Sample{Height: h, Velocity: 0})
		}
		traj = append(traj, s)

		space.Step(p.Dt)
	}

	return traj
}
