package config

import "sort"

var Presets = map[string]*Config{
	"earth": presetWith(func(c *Config) {
		c.Ranges.MinGravity = 9.8
		c.Ranges.MaxGravity = 9.8
	}),
	"moon": presetWith(func(c *Config) {
		c.Ranges.MinGravity = 1.6
		c.Ranges.MaxGravity = 1.6
		c.Physics.Duration = 6.0
	}),
	"heavy": presetWith(func(c *Config) {
		c.Ranges.MinGravity = 15.0
		c.Ranges.MaxGravity = 25.0
	}),
	"drop": presetWith(func(c *Config) {
		c.Ranges.MinVelocity = 0.0
		c.Ranges.MaxVelocity = 0.0
	}),
	"toss": presetWith(func(c *Config) {
		c.Ranges.MinHeight = 0.0
		c.Ranges.MaxHeight = 5.0
		c.Ranges.MinVelocity = 5.0
		c.Ranges.MaxVelocity = 15.0
	}),
	"stills-only": presetWith(func(c *Config) {
		c.GenerateVideos = false
	}),
}

func presetWith(mutate func(*Config)) *Config {
	cfg := DefaultConfig()
	mutate(cfg)
	return cfg
}

func GetPreset(name string) *Config {
	cfg, ok := Presets[name]
	if !ok {
		return nil
	}
	return cfg
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
