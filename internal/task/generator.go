package task

import (
	"fmt"
	"image"
	"math/rand"
	"os"
	"path/filepath"
	"time"

	"github.com/physgen/gravgen/internal/anim"
	"github.com/physgen/gravgen/internal/config"
	"github.com/physgen/gravgen/internal/frames"
	"github.com/physgen/gravgen/internal/metrics"
	"github.com/physgen/gravgen/internal/prompts"
	"github.com/physgen/gravgen/internal/raster"
	"github.com/physgen/gravgen/internal/scenario"
	"github.com/physgen/gravgen/internal/sim"
	"github.com/physgen/gravgen/internal/storage"
)

// TaskPair is one labeled training example: a before still, an after
// still, the prompt, and optionally a ground-truth video.
type TaskPair struct {
	ID            string
	Domain        string
	Prompt        string
	Scenario      scenario.Scenario
	Trajectory    sim.Trajectory
	SelectedFrame int
	FirstImage    image.Image
	FinalImage    image.Image
	VideoPath     string // empty when video generation is off or failed
	Metrics       map[string]float64
}

// Generator runs the full pipeline for one worker: sample, simulate,
// select, render, encode, persist. It owns its random source, so
// separate generators with separate seeds produce independent,
// reproducible streams.
type Generator struct {
	cfg       *config.Config
	seed      int64
	rng       *rand.Rand
	sampler   *scenario.Sampler
	simulator *sim.Simulator
	mapper    *raster.Mapper
	renderer  *raster.Renderer
	encoder   anim.Encoder
	store     *storage.Store
}

func NewGenerator(cfg *config.Config, seed int64, store *storage.Store) (*Generator, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	simulator, err := sim.FromConfig(cfg)
	if err != nil {
		return nil, err
	}

	rng := rand.New(rand.NewSource(seed))
	mapper := raster.NewMapper(cfg.ImageWidth, cfg.ImageHeight, cfg.Physics.GroundMargin,
		cfg.Physics.PixelsPerM, cfg.Physics.GroundHeight)

	g := &Generator{
		cfg:  cfg,
		seed: seed,
		rng:  rng,
		sampler: scenario.NewSampler(
			scenario.Range{Min: cfg.Ranges.MinHeight, Max: cfg.Ranges.MaxHeight},
			scenario.Range{Min: cfg.Ranges.MinVelocity, Max: cfg.Ranges.MaxVelocity},
			scenario.Range{Min: cfg.Ranges.MinGravity, Max: cfg.Ranges.MaxGravity},
			cfg.Ball.Radius,
			rng,
		),
		simulator: simulator,
		mapper:    mapper,
		renderer:  raster.NewRenderer(mapper, cfg.Ball, cfg.Visual),
		store:     store,
	}
	if cfg.GenerateVideos {
		g.encoder = anim.NewEncoder(cfg.VideoFPS)
	}
	return g, nil
}

// SetEncoder overrides the auto-selected video encoder.
func (g *Generator) SetEncoder(enc anim.Encoder) { g.encoder = enc }

// GenerateTask produces and persists one task pair.
func (g *Generator) GenerateTask(id string) (*TaskPair, error) {
	sc := g.sampler.Sample()
	traj := g.simulator.Simulate(sc)
	params := g.simulator.Params()

	selected := frames.SelectFinal(sc, traj, g.mapper, params.RadiusMeters)

	firstX, firstY := anim.PlaceSample(traj[0], g.mapper, params.RadiusMeters)
	finalX, finalY := anim.PlaceSample(traj[selected], g.mapper, params.RadiusMeters)

	pair := &TaskPair{
		ID:            id,
		Domain:        g.cfg.Domain,
		Prompt:        prompts.Get(sc.Kind(), g.rng),
		Scenario:      sc,
		Trajectory:    traj,
		SelectedFrame: selected,
		FirstImage:    g.renderer.Initial(firstX, firstY, sc),
		FinalImage:    g.renderer.Final(finalX, finalY, sc),
		Metrics:       metrics.Compute(traj, params),
	}

	if g.encoder != nil && g.store != nil {
		pair.VideoPath = g.encodeVideo(id, sc, traj)
	}

	if g.store != nil {
		if err := g.store.Save(g.artifacts(pair)); err != nil {
			return nil, fmt.Errorf("saving task %s: %w", id, err)
		}
	}
	return pair, nil
}

// encodeVideo renders the frame sequence and packages it. Video
// artifacts live in the store's task directory, so a store is required;
// without one the task simply has no video. Encoding problems are soft
// the same way: the task keeps its stills and an empty video path.
func (g *Generator) encodeVideo(id string, sc scenario.Scenario, traj sim.Trajectory) string {
	taskDir := filepath.Join(g.store.Dir(), id)
	if err := os.MkdirAll(taskDir, 0755); err != nil {
		fmt.Printf("task %s: skipping video: %v\n", id, err)
		return ""
	}

	placements := anim.Assemble(sc, traj, g.mapper, g.simulator.Params().RadiusMeters)
	frameImages := make([]image.Image, len(placements))
	for i, p := range placements {
		frameImages[i] = g.renderer.Frame(p.X, p.Y)
	}

	path := filepath.Join(taskDir, id+"_ground_truth"+g.encoder.Extension())
	if err := g.encoder.Encode(frameImages, path); err != nil {
		fmt.Printf("task %s: skipping video: %v\n", id, err)
		return ""
	}
	return path
}

func (g *Generator) artifacts(pair *TaskPair) storage.TaskArtifacts {
	return storage.TaskArtifacts{
		Meta: storage.TaskMetadata{
			ID:        pair.ID,
			Domain:    pair.Domain,
			Timestamp: time.Now(),
			Seed:      g.seed,
			Engine:    g.simulator.EngineName(),
			Prompt:    pair.Prompt,
			Scenario: storage.ScenarioMeta{
				Height:   pair.Scenario.Height,
				Velocity: pair.Scenario.Velocity,
				Gravity:  pair.Scenario.Gravity,
				Radius:   pair.Scenario.Radius,
			},
			SelectedFrame: pair.SelectedFrame,
			Frames:        len(pair.Trajectory),
			FPS:           g.cfg.VideoFPS,
			VideoPath:     pair.VideoPath,
			Metrics:       pair.Metrics,
		},
		FirstImage: pair.FirstImage,
		FinalImage: pair.FinalImage,
		Trajectory: pair.Trajectory,
		Dt:         g.cfg.Dt(),
	}
}
