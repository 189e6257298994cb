package config

import (
	"fmt"
	"math/rand"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/eschmidt42/hardspheres-2d/internal/boltzmann"
	"github.com/eschmidt42/hardspheres-2d/internal/engine"
	"github.com/eschmidt42/hardspheres-2d/internal/gas"
)

const (
	DefaultDt          = 0.005
	DefaultDuration    = 10.0
	DefaultRows        = 8
	DefaultCols        = 8
	DefaultSpacing     = 2.0
	DefaultJitter      = 0.2
	DefaultRadius      = 0.5
	DefaultMass        = 1.0
	DefaultTemperature = 1.0
)

type Config struct {
	Dt          float64   `yaml:"dt"`
	Duration    float64   `yaml:"duration"`
	Seed        int64     `yaml:"seed"`
	RecordEvery int       `yaml:"record_every"`
	CellSize    float64   `yaml:"cell_size"`
	StallFactor int       `yaml:"stall_factor"`
	Gas         GasConfig `yaml:"gas"`
}

type GasConfig struct {
	Rows    int     `yaml:"rows"`
	Cols    int     `yaml:"cols"`
	Spacing float64 `yaml:"spacing"`
	// Jitter displaces each lattice site by a uniform fraction of the
	// free gap; values in [0, 1] cannot create initial overlap.
	Jitter      float64    `yaml:"jitter"`
	Radius      float64    `yaml:"radius"`
	Mass        float64    `yaml:"mass"`
	Temperature float64    `yaml:"temperature"`
	Bounds      gas.Bounds `yaml:"bounds"` // zero values derive from the lattice
}

func DefaultConfig() *Config {
	return &Config{
		Dt:          DefaultDt,
		Duration:    DefaultDuration,
		RecordEvery: 1,
		Gas: GasConfig{
			Rows:        DefaultRows,
			Cols:        DefaultCols,
			Spacing:     DefaultSpacing,
			Jitter:      DefaultJitter,
			Radius:      DefaultRadius,
			Mass:        DefaultMass,
			Temperature: DefaultTemperature,
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
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// RunConfig maps the file-level settings onto the engine.
func (c *Config) RunConfig() engine.Config {
	return engine.Config{
		Dt:          c.Dt,
		Duration:    c.Duration,
		CellSize:    c.CellSize,
		StallFactor: c.StallFactor,
		RecordEvery: c.RecordEvery,
	}
}

// BuildState realizes the configured gas: disks on a jittered lattice
// with Maxwell-Boltzmann velocities at the configured temperature, all
// drawn from the config seed.
func (c *Config) BuildState() (*gas.State, error) {
	g := c.Gas
	n := g.Rows * g.Cols
	if g.Rows <= 0 || g.Cols <= 0 {
		return nil, fmt.Errorf("%w: lattice %dx%d", gas.ErrInvalidConfig, g.Rows, g.Cols)
	}

	bounds := g.Bounds
	if bounds.Width == 0 {
		bounds.Width = float64(g.Cols) * g.Spacing
	}
	if bounds.Height == 0 {
		bounds.Height = float64(g.Rows) * g.Spacing
	}

	rng := rand.New(rand.NewSource(c.Seed))
	maxJitter := g.Jitter * (g.Spacing/2 - g.Radius)

	pos := make([]gas.Vec2, 0, n)
	for row := 0; row < g.Rows; row++ {
		for col := 0; col < g.Cols; col++ {
			p := gas.Vec2{
				X: g.Spacing/2 + float64(col)*g.Spacing,
				Y: g.Spacing/2 + float64(row)*g.Spacing,
			}
			p.X += maxJitter * (2*rng.Float64() - 1)
			p.Y += maxJitter * (2*rng.Float64() - 1)
			pos = append(pos, p)
		}
	}

	vel, err := boltzmann.SampleVec2(rng, n, g.Mass, g.Temperature, boltzmann.DefaultBoltzmannConstant)
	if err != nil {
		return nil, err
	}

	radii := make([]float64, n)
	masses := make([]float64, n)
	for i := range radii {
		radii[i] = g.Radius
		masses[i] = g.Mass
	}

	return gas.NewState(pos, vel, radii, masses, bounds)
}
