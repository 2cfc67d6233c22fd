package sim

import (
	"github.com/physgen/gravgen/internal/config"
	"github.com/physgen/gravgen/internal/scenario"
)

// Simulator binds an engine to a fixed discretization.
type Simulator struct {
	engine Engine
	params Params
}

func New(engine Engine, p Params) *Simulator {
	return &Simulator{engine: engine, params: p}
}

func FromConfig(cfg *config.Config) (*Simulator, error) {
	engine, err := NewEngine(cfg.Engine)
	if err != nil {
		return nil, err
	}
	p := Params{
		Dt:           cfg.Dt(),
		Steps:        cfg.Steps(),
		RadiusMeters: cfg.BallRadiusMeters(),
	}
	return New(engine, p), nil
}

func (s *Simulator) Simulate(sc scenario.Scenario) Trajectory {
	return s.engine.Simulate(sc, s.params)
}

func (s *Simulator) Params() Params     { return s.params }
func (s *Simulator) EngineName() string { return s.engine.Name() }
