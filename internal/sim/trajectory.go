package sim

// Sample is one simulated instant of the ball's vertical motion.
// Height is meters above the ground plane, clamped non-negative.
type Sample struct {
	Height   float64
	Velocity float64
}

// Trajectory is the fixed-length, time-ordered sample sequence for one
// scenario. Its length is always Params.Steps; once a sample settles,
// every later sample is identical to it.
type Trajectory []Sample

// Params fixes the discretization for a simulation run. Dt is one video
// frame of time, Steps is round(duration * fps).
type Params struct {
	Dt           float64
	Steps        int
	RadiusMeters float64
}

// Restitution is the fraction of velocity magnitude kept after a ground
// bounce.
const Restitution = 0.6

// SettleVelocity is the speed below which a ball near the ground counts
// as at rest.
const SettleVelocity = 1.0

// Settled reports whether a sample has come to rest: within 1.5 radii of
// the ground and moving slower than the settle threshold.
func (s Sample) Settled(radiusMeters float64) bool {
	return s.Height <= 1.5*radiusMeters && s.Velocity > -SettleVelocity && s.Velocity < SettleVelocity
}
