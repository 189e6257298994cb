// Package sweep runs small equation-of-state studies: a grid of gas
// configurations over lattice spacing and temperature, each measured for
// wall pressure and collision rate against the ideal-gas baseline.
package sweep

import (
	"context"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/eschmidt42/hardspheres-2d/internal/config"
	"github.com/eschmidt42/hardspheres-2d/internal/engine"
	"github.com/eschmidt42/hardspheres-2d/internal/gas"
	"github.com/eschmidt42/hardspheres-2d/internal/metrics"
)

// Plan is a YAML-loadable study: the base gas runs once per combination
// of the listed spacings and temperatures. Spacing controls the packing
// fraction since the domain derives from the lattice.
type Plan struct {
	Name         string           `yaml:"name"`
	Description  string           `yaml:"description"`
	Gas          config.GasConfig `yaml:"gas"`
	Spacings     []float64        `yaml:"spacings"`
	Temperatures []float64        `yaml:"temperatures"`
	Dt           float64          `yaml:"dt"`
	Duration     float64          `yaml:"duration"`
	Warmup       float64          `yaml:"warmup"` // equilibration time excluded from measurement
	Seed         int64            `yaml:"seed"`
}

// Point is the measured outcome of one sweep cell.
type Point struct {
	Spacing       float64
	Temperature   float64 // equipartition estimate, not the sampling target
	Packing       float64
	Pressure      float64 // wall-impulse estimator
	IdealPressure float64
	Z             float64 // compressibility factor Pressure/IdealPressure
	CollisionRate float64
}

// DefaultPlan returns a small study from dilute to moderately packed.
func DefaultPlan() *Plan {
	return &Plan{
		Name:        "eos",
		Description: "wall pressure vs packing fraction and temperature",
		Gas: config.GasConfig{
			Rows:   6,
			Cols:   6,
			Jitter: 0.2,
			Radius: 0.5,
			Mass:   1,
		},
		Spacings:     []float64{1.4, 1.8, 2.4, 3.2},
		Temperatures: []float64{0.5, 1.0, 2.0},
		Dt:           0.005,
		Duration:     20,
		Warmup:       2,
		Seed:         1,
	}
}

// Load reads a plan from a YAML file, overlaying the default plan.
func Load(path string) (*Plan, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	plan := DefaultPlan()
	if err := yaml.Unmarshal(data, plan); err != nil {
		return nil, err
	}
	return plan, nil
}

// Save writes a plan as YAML, e.g. as a starting point for editing.
func Save(path string, plan *Plan) error {
	data, err := yaml.Marshal(plan)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

func (p *Plan) Validate() error {
	if len(p.Spacings) == 0 || len(p.Temperatures) == 0 {
		return fmt.Errorf("sweep: plan needs at least one spacing and one temperature")
	}
	if p.Dt <= 0 || p.Duration <= 0 {
		return fmt.Errorf("sweep: dt and duration must be positive")
	}
	if p.Warmup < 0 {
		return fmt.Errorf("sweep: warmup must be non-negative")
	}
	return nil
}

// Run executes every cell of the plan in row-major order (spacings outer,
// temperatures inner). Each cell builds a fresh gas from its own seed,
// equilibrates for the warmup time, then measures. Progress lines go to
// progress when it is non-nil. The points collected so far are returned
// alongside the first error.
func Run(ctx context.Context, plan *Plan, progress io.Writer) ([]Point, error) {
	if err := plan.Validate(); err != nil {
		return nil, err
	}

	total := len(plan.Spacings) * len(plan.Temperatures)
	points := make([]Point, 0, total)

	for _, spacing := range plan.Spacings {
		for _, kT := range plan.Temperatures {
			cfg := config.Config{Seed: plan.Seed + int64(len(points)), Gas: plan.Gas}
			cfg.Gas.Spacing = spacing
			cfg.Gas.Temperature = kT
			cfg.Gas.Bounds = gas.Bounds{} // rederive the domain from the lattice

			pt, err := runCell(ctx, &cfg, plan)
			if err != nil {
				return points, fmt.Errorf("sweep: spacing %g kT %g: %w", spacing, kT, err)
			}
			points = append(points, pt)

			if progress != nil {
				fmt.Fprintf(progress, "sweep %d/%d: spacing=%.3g kT=%.3g packing=%.3f Z=%.3f\n",
					len(points), total, spacing, kT, pt.Packing, pt.Z)
			}
		}
	}

	return points, nil
}

func runCell(ctx context.Context, cfg *config.Config, plan *Plan) (Point, error) {
	st, err := cfg.BuildState()
	if err != nil {
		return Point{}, err
	}

	if plan.Warmup > 0 {
		warm, err := engine.NewRunner().Run(ctx, st, engine.Config{
			Dt:          plan.Dt,
			Duration:    plan.Warmup,
			RecordEvery: int(plan.Warmup / plan.Dt),
		})
		if err != nil {
			return Point{}, err
		}
		st = warm.States[len(warm.States)-1]
	}

	pressure := metrics.NewWallPressure()
	rate := metrics.NewCollisionRate()
	runner := engine.NewRunner()
	runner.AddMetric(pressure)
	runner.AddMetric(rate)

	result, err := runner.Run(ctx, st, engine.Config{
		Dt:          plan.Dt,
		Duration:    plan.Duration,
		RecordEvery: int(plan.Duration / plan.Dt),
	})
	if err != nil {
		return Point{}, err
	}

	final := result.States[len(result.States)-1]
	ideal := float64(final.N()) * final.Temperature() / final.Bounds.Area()

	pt := Point{
		Spacing:       cfg.Gas.Spacing,
		Temperature:   final.Temperature(),
		Packing:       final.PackingFraction(),
		Pressure:      pressure.Value(),
		IdealPressure: ideal,
		CollisionRate: rate.Value(),
	}
	if ideal > 0 {
		pt.Z = pt.Pressure / ideal
	}
	return pt, nil
}
