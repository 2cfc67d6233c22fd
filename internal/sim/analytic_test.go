package sim

import (
	"math"
	"testing"

	"github.com/physgen/gravgen/internal/scenario"
)

func TestAnalyticLength(t *testing.T) {
	eng := NewAnalytic()

	tests := []struct {
		name  string
		sc    scenario.Scenario
		steps int
	}{
		{"free fall", scenario.Scenario{Height: 20, Gravity: 9.8, Radius: 25}, 45},
		{"thrown up", scenario.Scenario{Height: 5, Velocity: 8, Gravity: 9.8, Radius: 25}, 45},
		{"already resting", scenario.Scenario{Height: 0, Gravity: 9.8, Radius: 25}, 45},
		{"single step", scenario.Scenario{Height: 10, Gravity: 9.8, Radius: 25}, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			traj := eng.Simulate(tt.sc, Params{Dt: 1.0 / 15, Steps: tt.steps, RadiusMeters: 1.0})
			if len(traj) != tt.steps {
				t.Errorf("expected %d samples, got %d", tt.steps, len(traj))
			}
		})
	}
}

func TestAnalyticFreeFallKinematics(t *testing.T) {
	eng := NewAnalytic()
	g := 9.8
	dt := 1.0 / 15
	sc := scenario.Scenario{Height: 20, Velocity: 0, Gravity: g, Radius: 25}

	traj := eng.Simulate(sc, Params{Dt: dt, Steps: 45, RadiusMeters: 1.0})

	for i, s := range traj {
		if s.Height > 2.0 && s.Velocity <= 0 {
			tm := float64(i) * dt
			// Velocity is exact for semi-implicit Euler before contact.
			wantV := -g * tm
			if math.Abs(s.Velocity-wantV) > 1e-9 {
				t.Fatalf("step %d: velocity %f, analytic %f", i, s.Velocity, wantV)
			}
			// Position trails the continuous solution by at most g*t*dt/2.
			wantY := 20 - 0.5*g*tm*tm
			if math.Abs(s.Height-wantY) > 0.5*g*tm*dt+1e-9 {
				t.Fatalf("step %d: height %f too far from analytic %f", i, s.Height, wantY)
			}
		} else {
			break
		}
	}
}

func TestAnalyticHeightsNonNegative(t *testing.T) {
	eng := NewAnalytic()
	sc := scenario.Scenario{Height: 15, Velocity: -5, Gravity: 12, Radius: 25}

	traj := eng.Simulate(sc, Params{Dt: 1.0 / 15, Steps: 90, RadiusMeters: 1.0})

	for i, s := range traj {
		if s.Height < 0 {
			t.Fatalf("step %d: height %f below ground", i, s.Height)
		}
	}
}

func TestBounceApexRatio(t *testing.T) {
	eng := NewAnalytic()
	// Fine timestep and a tiny radius keep settle detection out of the way
	// while the apex sequence is measured.
	p := Params{Dt: 0.002, Steps: 5000, RadiusMeters: 0.01}
	sc := scenario.Scenario{Height: 20, Velocity: 0, Gravity: 9.8, Radius: 25}

	traj := eng.Simulate(sc, p)

	apexes := localMaxima(traj)
	if len(apexes) < 3 {
		t.Fatalf("expected at least 3 bounce apexes, got %d", len(apexes))
	}

	want := Restitution * Restitution
	for i := 1; i < 3; i++ {
		if apexes[i] >= apexes[i-1] {
			t.Fatalf("apex %d (%f) not below apex %d (%f)", i, apexes[i], i-1, apexes[i-1])
		}
		ratio := apexes[i] / apexes[i-1]
		if math.Abs(ratio-want) > 0.05 {
			t.Errorf("apex ratio %f, expected ~%f", ratio, want)
		}
	}
}

func localMaxima(traj Trajectory) []float64 {
	var apexes []float64
	for i := 1; i < len(traj)-1; i++ {
		if traj[i].Height > traj[i-1].Height && traj[i].Height >= traj[i+1].Height {
			apexes = append(apexes, traj[i].Height)
		}
	}
	return apexes
}

func TestSettleMonotonicity(t *testing.T) {
	eng := NewAnalytic()
	p := Params{Dt: 1.0 / 15, Steps: 300, RadiusMeters: 1.0}
	sc := scenario.Scenario{Height: 12, Velocity: 3, Gravity: 9.8, Radius: 25}

	traj := eng.Simulate(sc, p)

	settledAt := -1
	for i, s := range traj {
		if s.Settled(p.RadiusMeters) {
			settledAt = i
			break
		}
	}
	if settledAt == -1 {
		t.Fatal("trajectory never settled over 20 seconds")
	}

	ref := traj[settledAt]
	if ref.Velocity != 0 {
		t.Errorf("settled velocity should be exactly 0, got %f", ref.Velocity)
	}
	for i := settledAt; i < len(traj); i++ {
		if traj[i] != ref {
			t.Fatalf("sample %d differs from settled state: %+v vs %+v", i, traj[i], ref)
		}
	}
}

func TestRestingBallSettledFromStart(t *testing.T) {
	eng := NewAnalytic()
	p := Params{Dt: 1.0 / 15, Steps: 45, RadiusMeters: 1.0}
	sc := scenario.Scenario{Height: 0, Velocity: 0, Gravity: 9.8, Radius: 25}

	traj := eng.Simulate(sc, p)

	for i, s := range traj {
		if s.Height != 0 || s.Velocity != 0 {
			t.Fatalf("sample %d should be at rest, got %+v", i, s)
		}
	}
}

// Worked example from the dataset defaults: 20 m drop at earth gravity.
func TestFreeFallContactAndBounce(t *testing.T) {
	eng := NewAnalytic()
	p := Params{Dt: 1.0 / 15, Steps: 45, RadiusMeters: 1.0}
	sc := scenario.Scenario{Height: 20, Velocity: 0, Gravity: 9.8, Radius: 25}

	traj := eng.Simulate(sc, p)

	if traj[0].Height != 20 || traj[0].Velocity != 0 {
		t.Fatalf("index 0 should hold the initial state, got %+v", traj[0])
	}

	contact := -1
	for i := 1; i < len(traj); i++ {
		if traj[i].Velocity > 0 {
			contact = i
			break
		}
		if traj[i].Height >= traj[i-1].Height {
			t.Fatalf("height should decrease monotonically before contact, step %d", i)
		}
	}
	if contact == -1 {
		t.Fatal("ball never bounced")
	}

	// Continuous contact time is sqrt(2*20/9.8) ~ 2.02 s, step ~30.
	if contact < 28 || contact > 33 {
		t.Errorf("contact at step %d, expected near 30", contact)
	}

	// Fastest recorded fall speed approaches sqrt(2*g*h) ~ 19.8 m/s.
	minV := 0.0
	for _, s := range traj {
		if s.Velocity < minV {
			minV = s.Velocity
		}
	}
	if minV > -18.5 || minV < -20.2 {
		t.Errorf("peak fall velocity %f, expected near -19.8 m/s", minV)
	}

	// Post-bounce speed is restitution times the impact speed, ~ +11.9.
	if traj[contact].Velocity < 11.0 || traj[contact].Velocity > 12.5 {
		t.Errorf("post-bounce velocity %f, expected near +11.9 m/s", traj[contact].Velocity)
	}
	if traj[contact].Height != 0 {
		t.Errorf("bounce sample should be clamped to ground, got height %f", traj[contact].Height)
	}
}

func BenchmarkAnalyticSimulate(b *testing.B) {
	eng := NewAnalytic()
	p := Params{Dt: 1.0 / 15, Steps: 45, RadiusMeters: 1.0}
	sc := scenario.Scenario{Height: 20, Velocity: 3, Gravity: 9.8, Radius: 25}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		eng.Simulate(sc, p)
	}
}
