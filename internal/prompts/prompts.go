package prompts

import "math/rand"

// Pools keyed by scenario kind. Selection goes through a caller-owned
// random source so batches stay reproducible.
var pools = map[string][]string{
	"default": {
		"Animate the red ball moving under gravity. It should accelerate downward, bounce off the ground losing some energy each time, and come to rest on the ground.",
		"Show the ball's motion under constant gravity: falling, bouncing with diminishing height, and finally settling on the ground plane.",
		"Demonstrate how the ball moves under the shown gravity until it stops bouncing and rests on the ground.",
	},
	"drop": {
		"The ball is released from rest at the marked height. Animate it falling straight down, bouncing with reduced height after each impact, and settling on the ground.",
		"Show the ball dropping from its starting height under gravity, with each bounce lower than the last until it comes to rest.",
	},
	"throw_up": {
		"The ball starts with an upward velocity. Animate it rising, slowing to a stop, then falling back down and bouncing until it settles on the ground.",
		"Show the ball climbing against gravity, reaching its peak, then descending and bouncing to rest.",
	},
	"throw_down": {
		"The ball starts moving downward. Animate it accelerating into the ground, rebounding with reduced speed, and bouncing until it comes to rest.",
		"Show the ball thrown downward, striking the ground, and bouncing with diminishing height until it settles.",
	},
}

// Get returns a random prompt for the scenario kind, falling back to the
// default pool for unknown kinds.
func Get(kind string, rng *rand.Rand) string {
	pool, ok := pools[kind]
	if !ok {
		pool = pools["default"]
	}
	return pool[rng.Intn(len(pool))]
}

// All returns every prompt for a kind, for inspection and tests.
func All(kind string) []string {
	pool, ok := pools[kind]
	if !ok {
		return pools["default"]
	}
	return pool
}
