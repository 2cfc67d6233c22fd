package metrics

import (
	"math"

	"github.com/physgen/gravgen/internal/sim"
)

// Compute summarizes one trajectory for the task metadata. All values are
// derived from the finished sample sequence, no state is kept.
func Compute(traj sim.Trajectory, p sim.Params) map[string]float64 {
	return map[string]float64{
		"bounce_count": float64(BounceCount(traj)),
		"peak_height":  PeakHeight(traj),
		"impact_speed": ImpactSpeed(traj),
		"settle_time":  SettleTime(traj, p),
		"frame_count":  float64(len(traj)),
	}
}

// BounceCount counts ground contacts: samples clamped to the ground plane
// with upward velocity.
func BounceCount(traj sim.Trajectory) int {
	count := 0
	for i := 1; i < len(traj); i++ {
		if traj[i].Height == 0 && traj[i].Velocity > 0 && traj[i-1].Velocity < 0 {
			count++
		}
	}
	return count
}

// PeakHeight is the highest point reached over the whole trajectory.
func PeakHeight(traj sim.Trajectory) float64 {
	peak := 0.0
	for _, s := range traj {
		if s.Height > peak {
			peak = s.Height
		}
	}
	return peak
}

// ImpactSpeed is the fastest downward speed recorded.
func ImpactSpeed(traj sim.Trajectory) float64 {
	speed := 0.0
	for _, s := range traj {
		if v := math.Abs(s.Velocity); s.Velocity < 0 && v > speed {
			speed = v
		}
	}
	return speed
}

// SettleTime is the time of the first settled sample, in seconds, or -1
// when the trajectory never settles within its duration.
func SettleTime(traj sim.Trajectory, p sim.Params) float64 {
	for i, s := range traj {
		if s.Settled(p.RadiusMeters) {
			return float64(i) * p.Dt
		}
	}
	return -1
}
