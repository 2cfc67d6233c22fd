package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

const (
	DefaultNumSamples   = 100
	DefaultImageWidth   = 600
	DefaultImageHeight  = 800
	DefaultVideoFPS     = 15
	DefaultDuration     = 3.0
	DefaultBallRadius   = 25
	DefaultPPM          = 25.0
	DefaultGroundMargin = 50
)

type Config struct {
	Domain     string `yaml:"domain"`
	NumSamples int    `yaml:"num_samples"`
	Seed       int64  `yaml:"seed"`
	OutputDir  string `yaml:"output_dir"`
	Workers    int    `yaml:"workers"`

	ImageWidth  int `yaml:"image_width"`
	ImageHeight int `yaml:"image_height"`

	GenerateVideos bool `yaml:"generate_videos"`
	VideoFPS       int  `yaml:"video_fps"`

	Engine string `yaml:"engine"`

	Ball    BallConfig    `yaml:"ball"`
	Ranges  RangeConfig   `yaml:"ranges"`
	Physics PhysicsConfig `yaml:"physics"`
	Visual  VisualConfig  `yaml:"visual"`
}

type BallConfig struct {
	Radius int   `yaml:"radius"`
	Color  []int `yaml:"color"`
}

type RangeConfig struct {
	MinHeight   float64 `yaml:"min_height"`
	MaxHeight   float64 `yaml:"max_height"`
	MinVelocity float64 `yaml:"min_initial_velocity"`
	MaxVelocity float64 `yaml:"max_initial_velocity"`
	MinGravity  float64 `yaml:"min_gravity"`
	MaxGravity  float64 `yaml:"max_gravity"`
}

type PhysicsConfig struct {
	Duration     float64 `yaml:"simulation_duration"`
	PixelsPerM   float64 `yaml:"pixels_per_meter"`
	GroundHeight float64 `yaml:"ground_height_meters"`
	GroundMargin int     `yaml:"ground_margin"`
}

type VisualConfig struct {
	ShowVelocityArrow bool `yaml:"show_velocity_arrow"`
	ShowGravityArrow  bool `yaml:"show_gravity_arrow"`
	ShowHeightMarkers bool `yaml:"show_height_markers"`
	ShowGround        bool `yaml:"show_ground"`
}

func DefaultConfig() *Config {
	return &Config{
		Domain:         "gravity_physics",
		NumSamples:     DefaultNumSamples,
		OutputDir:      "dataset",
		Workers:        1,
		ImageWidth:     DefaultImageWidth,
		ImageHeight:    DefaultImageHeight,
		GenerateVideos: true,
		VideoFPS:       DefaultVideoFPS,
		Engine:         "analytic",
		Ball: BallConfig{
			Radius: DefaultBallRadius,
			Color:  []int{220, 60, 60},
		},
		Ranges: RangeConfig{
			MinHeight:   10.0,
			MaxHeight:   25.0,
			MinVelocity: -5.0,
			MaxVelocity: 10.0,
			MinGravity:  5.0,
			MaxGravity:  15.0,
		},
		Physics: PhysicsConfig{
			Duration:     DefaultDuration,
			PixelsPerM:   DefaultPPM,
			GroundHeight: 0.0,
			GroundMargin: DefaultGroundMargin,
		},
		Visual: VisualConfig{
			ShowVelocityArrow: true,
			ShowGravityArrow:  true,
			ShowHeightMarkers: true,
			ShowGround:        true,
		},
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Validate rejects degenerate settings up front so the sampler and
// simulator never have to. Inverted ranges are an error, not a fallback.
func (c *Config) Validate() error {
	ranges := []struct {
		name     string
		min, max float64
	}{
		{"height", c.Ranges.MinHeight, c.Ranges.MaxHeight},
		{"initial_velocity", c.Ranges.MinVelocity, c.Ranges.MaxVelocity},
		{"gravity", c.Ranges.MinGravity, c.Ranges.MaxGravity},
	}
	for _, r := range ranges {
		if r.min > r.max {
			return fmt.Errorf("inverted %s range: min %f > max %f", r.name, r.min, r.max)
		}
	}
	if c.Ranges.MinHeight < 0 {
		return fmt.Errorf("min_height must be non-negative, got %f", c.Ranges.MinHeight)
	}
	if c.Ranges.MinGravity <= 0 {
		return fmt.Errorf("min_gravity must be positive, got %f", c.Ranges.MinGravity)
	}
	if c.VideoFPS <= 0 {
		return fmt.Errorf("video_fps must be positive, got %d", c.VideoFPS)
	}
	if c.Physics.Duration <= 0 {
		return fmt.Errorf("simulation_duration must be positive, got %f", c.Physics.Duration)
	}
	if c.Physics.PixelsPerM <= 0 {
		return fmt.Errorf("pixels_per_meter must be positive, got %f", c.Physics.PixelsPerM)
	}
	if c.Ball.Radius <= 0 {
		return fmt.Errorf("ball radius must be positive, got %d", c.Ball.Radius)
	}
	if c.ImageWidth <= 0 || c.ImageHeight <= 0 {
		return fmt.Errorf("invalid image size %dx%d", c.ImageWidth, c.ImageHeight)
	}
	if c.NumSamples < 0 {
		return fmt.Errorf("num_samples must be non-negative, got %d", c.NumSamples)
	}
	return nil
}

// Steps is the trajectory length implied by duration and frame rate.
func (c *Config) Steps() int {
	steps := int(c.Physics.Duration*float64(c.VideoFPS) + 0.5)
	if steps < 1 {
		steps = 1
	}
	return steps
}

// Dt is the fixed integration timestep, one frame of video time.
func (c *Config) Dt() float64 {
	return 1.0 / float64(c.VideoFPS)
}

// BallRadiusMeters converts the configured pixel radius into physical units.
func (c *Config) BallRadiusMeters() float64 {
	return float64(c.Ball.Radius) / c.Physics.PixelsPerM
}
