package engine

import (
	"context"
	"fmt"
	"math"

	"github.com/eschmidt42/hardspheres-2d/internal/gas"
)

// Metric observes the state once per completed step and reduces to a
// single value at the end of a run.
type Metric interface {
	Name() string
	Observe(st *gas.State, stats StepStats)
	Value() float64
	Reset()
}

// Observer is notified once per completed step.
type Observer interface {
	OnStep(st *gas.State, stats StepStats)
}

// Config controls a multi-step run.
type Config struct {
	Dt          float64
	Duration    float64
	CellSize    float64 // 0 picks twice the largest radius
	StallFactor int     // 0 picks the engine default
	RecordEvery int     // keep every k-th state; 0 or 1 keeps all
}

func DefaultConfig() Config {
	return Config{
		Dt:          0.005,
		Duration:    10.0,
		RecordEvery: 1,
	}
}

func (c Config) validate() error {
	if c.Dt <= 0 {
		return fmt.Errorf("%w: dt must be positive, got %g", ErrBadConfig, c.Dt)
	}
	if c.Duration <= 0 {
		return fmt.Errorf("%w: duration must be positive, got %g", ErrBadConfig, c.Duration)
	}
	if c.StallFactor < 0 {
		return fmt.Errorf("%w: stall factor must be non-negative, got %d", ErrBadConfig, c.StallFactor)
	}
	return nil
}

// Result collects the trajectory and summary values of a run.
type Result struct {
	States      []*gas.State
	Times       []float64
	Metrics     map[string]float64
	StepsTaken  int
	Resolutions int
	Settles     int
	WallImpulse float64
	EnergyDrift float64
}

// Runner drives a stepper across a full run, feeding metrics and
// observers once per macro step.
type Runner struct {
	metrics   []Metric
	observers []Observer
}

func NewRunner() *Runner {
	return &Runner{
		metrics:   make([]Metric, 0),
		observers: make([]Observer, 0),
	}
}

func (r *Runner) AddMetric(m Metric)     { r.metrics = append(r.metrics, m) }
func (r *Runner) AddObserver(o Observer) { r.observers = append(r.observers, o) }

// Run advances the state for cfg.Duration in steps of cfg.Dt. The run
// fails outright on the first step error; there is no partial-step
// recovery. Cancelling the context returns the result so far with the
// context's error.
func (r *Runner) Run(ctx context.Context, st *gas.State, cfg Config) (*Result, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	stepper := NewStepper(cfg.Dt)
	stepper.CellSize = cfg.CellSize
	stepper.StallFactor = cfg.StallFactor

	steps := int(cfg.Duration / cfg.Dt)
	recordEvery := cfg.RecordEvery
	if recordEvery < 1 {
		recordEvery = 1
	}

	result := &Result{
		States:  make([]*gas.State, 0, steps/recordEvery+1),
		Times:   make([]float64, 0, steps/recordEvery+1),
		Metrics: make(map[string]float64),
	}

	for _, m := range r.metrics {
		m.Reset()
	}

	cur := st.Clone()
	result.States = append(result.States, cur.Clone())
	result.Times = append(result.Times, cur.Time)

	initialEnergy := cur.KineticEnergy()

	for i := 0; i < steps; i++ {
		select {
		case <-ctx.Done():
			return result, ctx.Err()
		default:
		}

		seq, err := stepper.Step(cur)
		if err != nil {
			return result, &SimulationError{Step: i, Time: cur.Time, Wrapped: err}
		}
		cur = seq[len(seq)-1]

		stats := stepper.LastStats()
		result.StepsTaken++
		result.Resolutions += stats.Resolutions
		result.Settles += stats.Settles
		result.WallImpulse += stats.WallImpulse

		for _, m := range r.metrics {
			m.Observe(cur, stats)
		}
		for _, obs := range r.observers {
			obs.OnStep(cur, stats)
		}

		if (i+1)%recordEvery == 0 {
			result.States = append(result.States, cur.Clone())
			result.Times = append(result.Times, cur.Time)
		}
	}

	if initialEnergy != 0 {
		result.EnergyDrift = math.Abs(cur.KineticEnergy()-initialEnergy) / math.Abs(initialEnergy)
	}
	for _, m := range r.metrics {
		result.Metrics[m.Name()] = m.Value()
	}

	return result, nil
}
