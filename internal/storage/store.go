package storage

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"image"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/fogleman/gg"

	"github.com/physgen/gravgen/internal/scenario"
	"github.com/physgen/gravgen/internal/sim"
)

// Store writes one directory per task under the dataset root:
// metadata.json, first.png, final.png, trajectory.csv, and the optional
// video artifact.
type Store struct {
	baseDir string
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

func (s *Store) Dir() string { return s.baseDir }

type TaskMetadata struct {
	ID            string             `json:"id"`
	Domain        string             `json:"domain"`
	Timestamp     time.Time          `json:"timestamp"`
	Seed          int64              `json:"seed"`
	Engine        string             `json:"engine"`
	Prompt        string             `json:"prompt"`
	Scenario      ScenarioMeta       `json:"scenario"`
	SelectedFrame int                `json:"selected_frame"`
	Frames        int                `json:"frames"`
	FPS           int                `json:"fps"`
	VideoPath     string             `json:"video_path,omitempty"`
	Metrics       map[string]float64 `json:"metrics"`
}

type ScenarioMeta struct {
	Height   float64 `json:"initial_height"`
	Velocity float64 `json:"initial_velocity"`
	Gravity  float64 `json:"gravity"`
	Radius   int     `json:"ball_radius"`
}

// TaskArtifacts is everything a finished task hands to the store.
type TaskArtifacts struct {
	Meta       TaskMetadata
	FirstImage image.Image
	FinalImage image.Image
	Trajectory sim.Trajectory
	Dt         float64
}

func (s *Store) Save(a TaskArtifacts) error {
	taskDir := filepath.Join(s.baseDir, a.Meta.ID)
	if err := os.MkdirAll(taskDir, 0755); err != nil {
		return err
	}

	metaFile, err := os.Create(filepath.Join(taskDir, "metadata.json"))
	if err != nil {
		return err
	}
	defer metaFile.Close()

	enc := json.NewEncoder(metaFile)
	enc.SetIndent("", "  ")
	if err := enc.Encode(a.Meta); err != nil {
		return err
	}

	if err := gg.SavePNG(filepath.Join(taskDir, "first.png"), a.FirstImage); err != nil {
		return err
	}
	if err := gg.SavePNG(filepath.Join(taskDir, "final.png"), a.FinalImage); err != nil {
		return err
	}

	return s.saveTrajectory(taskDir, a.Trajectory, a.Dt)
}

func (s *Store) saveTrajectory(taskDir string, traj sim.Trajectory, dt float64) error {
	csvFile, err := os.Create(filepath.Join(taskDir, "trajectory.csv"))
	if err != nil {
		return err
	}
	defer csvFile.Close()

	w := csv.NewWriter(csvFile)
	defer w.Flush()

	if err := w.Write([]string{"time", "height", "velocity"}); err != nil {
		return err
	}
	for i, sample := range traj {
		row := []string{
			strconv.FormatFloat(float64(i)*dt, 'f', 6, 64),
			strconv.FormatFloat(sample.Height, 'f', 6, 64),
			strconv.FormatFloat(sample.Velocity, 'f', 6, 64),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	return nil
}

func (s *Store) List() ([]TaskMetadata, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []TaskMetadata{}, nil
		}
		return nil, err
	}

	tasks := make([]TaskMetadata, 0)
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		data, err := os.ReadFile(filepath.Join(s.baseDir, entry.Name(), "metadata.json"))
		if err != nil {
			continue
		}
		var meta TaskMetadata
		if err := json.Unmarshal(data, &meta); err != nil {
			continue
		}
		tasks = append(tasks, meta)
	}
	return tasks, nil
}

func (s *Store) Load(taskID string) (*TaskMetadata, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, taskID, "metadata.json"))
	if err != nil {
		return nil, err
	}
	var meta TaskMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, err
	}
	return &meta, nil
}

// LoadTrajectory reads back the sample sequence and timestamps for one
// task.
func (s *Store) LoadTrajectory(taskID string) (sim.Trajectory, []float64, error) {
	file, err := os.Open(filepath.Join(s.baseDir, taskID, "trajectory.csv"))
	if err != nil {
		return nil, nil, err
	}
	defer file.Close()

	r := csv.NewReader(file)
	records, err := r.ReadAll()
	if err != nil {
		return nil, nil, err
	}
	if len(records) < 2 {
		return sim.Trajectory{}, []float64{}, nil
	}

	traj := make(sim.Trajectory, 0, len(records)-1)
	times := make([]float64, 0, len(records)-1)
	for _, record := range records[1:] {
		if len(record) < 3 {
			return nil, nil, fmt.Errorf("malformed trajectory row: %v", record)
		}
		t, err := strconv.ParseFloat(record[0], 64)
		if err != nil {
			return nil, nil, err
		}
		h, err := strconv.ParseFloat(record[1], 64)
		if err != nil {
			return nil, nil, err
		}
		v, err := strconv.ParseFloat(record[2], 64)
		if err != nil {
			return nil, nil, err
		}
		times = append(times, t)
		traj = append(traj, sim.Sample{Height: h, Velocity: v})
	}
	return traj, times, nil
}

// ScenarioFromMeta rebuilds the sampled scenario for deterministic
// replay of a stored task.
func ScenarioFromMeta(meta *TaskMetadata) scenario.Scenario {
	return scenario.Scenario{
		Height:   meta.Scenario.Height,
		Velocity: meta.Scenario.Velocity,
		Gravity:  meta.Scenario.Gravity,
		Radius:   meta.Scenario.Radius,
	}
}
