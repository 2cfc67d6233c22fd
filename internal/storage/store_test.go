package storage

import (
	"image"
	"math"
	"testing"
	"time"

	"github.com/physgen/gravgen/internal/sim"
)

func testArtifacts() TaskArtifacts {
	img := image.NewRGBA(image.Rect(0, 0, 10, 10))
	return TaskArtifacts{
		Meta: TaskMetadata{
			ID:        "gravity_task_0001",
			Domain:    "gravity_physics",
			Timestamp: time.Now(),
			Seed:      42,
			Engine:    "analytic",
			Prompt:    "drop the ball",
			Scenario: ScenarioMeta{
				Height: 20, Velocity: 0, Gravity: 9.8, Radius: 25,
			},
			SelectedFrame: 36,
			Frames:        45,
			FPS:           15,
			Metrics:       map[string]float64{"bounce_count": 1},
		},
		FirstImage: img,
		FinalImage: img,
		Trajectory: sim.Trajectory{{Height: 20, Velocity: 0}, {Height: 19.9, Velocity: -0.65}},
		Dt:         1.0 / 15,
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	st := New(t.TempDir())
	if err := st.Init(); err != nil {
		t.Fatal(err)
	}

	if err := st.Save(testArtifacts()); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	meta, err := st.Load("gravity_task_0001")
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if meta.Scenario.Height != 20 || meta.Scenario.Gravity != 9.8 {
		t.Errorf("scenario not preserved: %+v", meta.Scenario)
	}
	if meta.SelectedFrame != 36 {
		t.Errorf("selected frame %d, expected 36", meta.SelectedFrame)
	}

	sc := ScenarioFromMeta(meta)
	if sc.Height != 20 || sc.Radius != 25 {
		t.Errorf("scenario rebuild mismatch: %+v", sc)
	}
}

func TestLoadTrajectory(t *testing.T) {
	st := New(t.TempDir())
	if err := st.Init(); err != nil {
		t.Fatal(err)
	}
	if err := st.Save(testArtifacts()); err != nil {
		t.Fatal(err)
	}

	traj, times, err := st.LoadTrajectory("gravity_task_0001")
	if err != nil {
		t.Fatalf("load trajectory failed: %v", err)
	}
	if len(traj) != 2 || len(times) != 2 {
		t.Fatalf("expected 2 samples, got %d/%d", len(traj), len(times))
	}
	if math.Abs(traj[1].Velocity-(-0.65)) > 1e-6 {
		t.Errorf("velocity not preserved: %f", traj[1].Velocity)
	}
	if math.Abs(times[1]-1.0/15) > 1e-6 {
		t.Errorf("timestamp not preserved: %f", times[1])
	}
}

func TestList(t *testing.T) {
	st := New(t.TempDir())
	if err := st.Init(); err != nil {
		t.Fatal(err)
	}

	tasks, err := st.List()
	if err != nil {
		t.Fatal(err)
	}
	if len(tasks) != 0 {
		t.Errorf("expected empty store, got %d tasks", len(tasks))
	}

	a := testArtifacts()
	if err := st.Save(a); err != nil {
		t.Fatal(err)
	}
	a.Meta.ID = "gravity_task_0002"
	if err := st.Save(a); err != nil {
		t.Fatal(err)
	}

	tasks, err = st.List()
	if err != nil {
		t.Fatal(err)
	}
	if len(tasks) != 2 {
		t.Errorf("expected 2 tasks, got %d", len(tasks))
	}
}

func TestListMissingDir(t *testing.T) {
	st := New("/nonexistent/path/for/test")
	tasks, err := st.List()
	if err != nil {
		t.Fatalf("missing dir should not error: %v", err)
	}
	if len(tasks) != 0 {
		t.Error("expected no tasks")
	}
}
