package sim

import (
	"context"
	"fmt"
	"math"

	"github.com/go-logr/logr"

	"github.com/san-kum/physical/internal/units"
)

type Simulator struct {
	sys        System
	integrator Integrator
	metrics    []Metric
	observers  []Observer
}

func New(sys System, integrator Integrator) *Simulator {
	return &Simulator{
		sys:        sys,
		integrator: integrator,
		metrics:    make([]Metric, 0),
		observers:  make([]Observer, 0),
	}
}

func (s *Simulator) AddMetric(m Metric)     { s.metrics = append(s.metrics, m) }
func (s *Simulator) AddObserver(o Observer) { s.observers = append(s.observers, o) }

// Run integrates bodies from t=0 until cfg.Duration, the context is
// canceled, or the system halts. The logger is taken from ctx.
//
// On cancellation the partial result is returned together with ctx.Err().
func (s *Simulator) Run(ctx context.Context, bodies State, cfg Config) (*Result, error) {
	log := logr.FromContextOrDiscard(ctx).WithName("sim")

	if err := ValidateConfig(cfg); err != nil {
		return nil, err
	}
	if err := ValidateBodies(bodies); err != nil {
		return nil, err
	}

	steps := int(math.Round(cfg.Duration.Value() / cfg.Dt.Value()))
	result := &Result{
		States:  make([]State, 0, steps+1),
		Times:   make([]units.Scalar, 0, steps+1),
		Metrics: make(map[string]units.Scalar),
	}

	for _, m := range s.metrics {
		m.Reset()
	}

	x := bodies.WithUnits()
	t := units.NewScalar(0, units.DimTime)

	result.States = append(result.States, x.Clone())
	result.Times = append(result.Times, t)

	log.V(1).Info("starting run", "bodies", len(x), "dt", cfg.Dt.String(), "steps", steps)

	halter, _ := s.sys.(Halter)

	for i := 0; i < steps; i++ {
		select {
		case <-ctx.Done():
			log.Info("run canceled", "step", i)
			return result, ctx.Err()
		default:
		}

		if halter != nil && halter.Halted(x, t) {
			log.V(1).Info("system halted", "step", i, "t", t.String())
			result.Halted = true
			break
		}

		for _, m := range s.metrics {
			if err := m.Observe(x, t); err != nil {
				return result, &StepError{Step: i, Time: t, Wrapped: fmt.Errorf("metric %s: %w", m.Name(), err)}
			}
		}

		next, err := s.integrator.Step(s.sys, x, t, cfg.Dt)
		if err != nil {
			return result, &StepError{Step: i, Time: t, Wrapped: err}
		}

		if cfg.ValidateState && !isValid(next) {
			log.Info("invalid state, stopping", "step", i)
			return result, &StepError{Step: i, Time: t, Wrapped: ErrInvalidState}
		}

		x = next
		// t is recomputed from the step count, never accumulated.
		t = cfg.Dt.Scale(float64(i + 1))
		result.StepsTaken++

		for _, o := range s.observers {
			if err := o.OnStep(x, t); err != nil {
				return result, &StepError{Step: i, Time: t, Wrapped: err}
			}
		}

		result.States = append(result.States, x.Clone())
		result.Times = append(result.Times, t)
	}

	for _, m := range s.metrics {
		result.Metrics[m.Name()] = m.Value()
	}

	log.V(1).Info("run finished", "steps", result.StepsTaken, "halted", result.Halted)
	return result, nil
}

// ValidateConfig checks that dt and duration are positive times.
func ValidateConfig(cfg Config) error {
	if err := units.CheckUnits("time step dt must be a time", cfg.Dt, units.Second); err != nil {
		return err
	}
	if err := units.CheckUnits("duration must be a time", cfg.Duration, units.Second); err != nil {
		return err
	}
	if cfg.Dt.Value() <= 0 {
		return fmt.Errorf("dt must be positive, got %s", cfg.Dt)
	}
	if cfg.Duration.Value() <= 0 {
		return fmt.Errorf("duration must be positive, got %s", cfg.Duration)
	}
	return nil
}

var velocity = units.Meter.Div(units.Second)

// ValidateBodies checks the dimensions of every body.
func ValidateBodies(bodies State) error {
	if len(bodies) == 0 {
		return ErrNoBodies
	}
	for _, b := range bodies {
		if err := units.CheckUnits("mass must have dimensions of mass", b.Mass, units.Kilogram); err != nil {
			return fmt.Errorf("body %s: %w", b.Name, err)
		}
		if b.Mass.Value() <= 0 {
			return fmt.Errorf("body %s: mass must be positive, got %s", b.Name, b.Mass)
		}
		if err := units.CheckUnits("position must have dimensions of distance", b.Pos, units.Meter); err != nil {
			return fmt.Errorf("body %s: %w", b.Name, err)
		}
		if err := units.CheckUnits("velocity must have dimensions of distance/time", b.Vel, velocity); err != nil {
			return fmt.Errorf("body %s: %w", b.Name, err)
		}
	}
	return nil
}

func isValid(s State) bool {
	for _, b := range s {
		p, v := b.Pos.Vec3(), b.Vel.Vec3()
		for i := 0; i < 3; i++ {
			if math.IsNaN(p[i]) || math.IsInf(p[i], 0) || math.IsNaN(v[i]) || math.IsInf(v[i], 0) {
				return false
			}
		}
	}
	return true
}
