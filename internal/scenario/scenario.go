package scenario

import "math/rand"

// Scenario holds the sampled initial conditions for one task. It is built
// once per task and read-only afterwards.
type Scenario struct {
	Height   float64 // initial height above ground, meters
	Velocity float64 // initial vertical velocity, m/s, positive is up
	Gravity  float64 // gravity magnitude, m/s^2
	Radius   int     // ball radius, pixels
}

// Kind classifies the scenario for prompt selection.
func (s Scenario) Kind() string {
	switch {
	case s.Velocity > 0.5:
		return "throw_up"
	case s.Velocity < -0.5:
		return "throw_down"
	default:
		return "drop"
	}
}

// Range is an inclusive [Min, Max] sampling interval. Ranges are assumed
// valid here; config.Validate rejects inverted ones before a sampler exists.
type Range struct {
	Min, Max float64
}

func (r Range) draw(rng *rand.Rand) float64 {
	return r.Min + rng.Float64()*(r.Max-r.Min)
}

// Sampler draws scenarios from configured ranges. The random source is
// caller-owned so batches stay reproducible and workers can hold
// independent streams.
type Sampler struct {
	height   Range
	velocity Range
	gravity  Range
	radius   int
	rng      *rand.Rand
}

func NewSampler(height, velocity, gravity Range, radius int, rng *rand.Rand) *Sampler {
	return &Sampler{
		height:   height,
		velocity: velocity,
		gravity:  gravity,
		radius:   radius,
		rng:      rng,
	}
}

func (s *Sampler) Sample() Scenario {
	return Scenario{
		Height:   s.height.draw(s.rng),
		Velocity: s.velocity.draw(s.rng),
		Gravity:  s.gravity.draw(s.rng),
		Radius:   s.radius,
	}
}
