package experiment

import (
	"context"
	"errors"
	"fmt"

	"github.com/go-logr/logr"

	"github.com/san-kum/physical/internal/config"
	"github.com/san-kum/physical/internal/sim"
	"github.com/san-kum/physical/internal/storage"
	"github.com/san-kum/physical/internal/trail"
	"github.com/san-kum/physical/internal/units"
)

var ErrNotSetup = errors.New("experiment not setup")

type Experiment struct {
	cfg       *config.Config
	registry  *Registry
	model     *Model
	simulator *sim.Simulator
	metrics   []string
	trail     *trail.Trail
	dt        units.Scalar
	duration  units.Scalar
}

func New(cfg *config.Config, registry *Registry) *Experiment {
	return &Experiment{cfg: cfg, registry: registry}
}

// Setup validates the config and builds the model, integrator, metrics
// and trail it names.
func (e *Experiment) Setup() error {
	if err := e.cfg.Validate(); err != nil {
		return err
	}
	var err error
	if e.dt, err = e.cfg.Dt.Scalar(); err != nil {
		return err
	}
	if e.duration, err = e.cfg.Duration.Scalar(); err != nil {
		return err
	}

	if e.model, err = e.registry.GetModel(e.cfg); err != nil {
		return err
	}
	if e.simulator, e.metrics, err = e.newSimulator(); err != nil {
		return err
	}

	if e.cfg.Trail != "" {
		if e.model.Bodies.Index(e.cfg.Trail) < 0 {
			return fmt.Errorf("trail: no body named %q", e.cfg.Trail)
		}
		if e.trail, err = trail.New(trail.DefaultDashTime); err != nil {
			return err
		}
		e.simulator.AddObserver(&trail.Follower{Trail: e.trail, Body: e.cfg.Trail})
	}
	return nil
}

// newSimulator builds a fresh simulator with its own metrics. It does not
// touch e, so Sweep may call it from several goroutines.
func (e *Experiment) newSimulator() (*sim.Simulator, []string, error) {
	integ, err := e.registry.GetIntegrator(e.cfg.Integrator)
	if err != nil {
		return nil, nil, err
	}
	s := sim.New(e.model.System, integ)

	var ms []sim.Metric
	if len(e.cfg.Metrics) == 0 {
		if ms, err = e.registry.DefaultMetrics(e.cfg, e.model.System); err != nil {
			return nil, nil, err
		}
	}
	for _, name := range e.cfg.Metrics {
		m, err := e.registry.GetMetric(name, e.cfg, e.model.System)
		if err != nil {
			return nil, nil, err
		}
		ms = append(ms, m)
	}

	names := make([]string, 0, len(ms))
	for _, m := range ms {
		s.AddMetric(m)
		names = append(names, m.Name())
	}
	return s, names, nil
}

func (e *Experiment) simConfig() sim.Config {
	return sim.Config{Dt: e.dt, Duration: e.duration, ValidateState: true}
}

func (e *Experiment) Run(ctx context.Context) (*sim.Result, error) {
	if e.simulator == nil {
		return nil, ErrNotSetup
	}
	log := logr.FromContextOrDiscard(ctx).WithName("experiment")
	log.Info("running", "model", e.cfg.Model, "integrator", e.cfg.Integrator,
		"bodies", len(e.model.Bodies), "metrics", e.metrics)

	if e.trail != nil {
		e.trail.Reset()
		i := e.model.Bodies.Index(e.cfg.Trail)
		if err := e.trail.Record(units.Second.Scale(0), e.model.Bodies[i].Pos); err != nil {
			return nil, err
		}
	}

	res, err := e.simulator.Run(ctx, e.model.Bodies, e.simConfig())
	if err != nil {
		return res, err
	}
	log.V(1).Info("done", "steps", res.StepsTaken, "halted", res.Halted)
	return res, nil
}

// Sweep runs the experiment once per seed, in parallel, re-seeding the
// model each time. At most limit runs are in flight; limit <= 0 means no
// limit.
func (e *Experiment) Sweep(ctx context.Context, seeds []int64, limit int) ([]*sim.Result, error) {
	if e.simulator == nil {
		return nil, ErrNotSetup
	}
	starts := make([]sim.State, len(seeds))
	for i, seed := range seeds {
		cfg := e.cfg.Clone()
		cfg.Seed = seed
		m, err := e.registry.GetModel(cfg)
		if err != nil {
			return nil, fmt.Errorf("seed %d: %w", seed, err)
		}
		starts[i] = m.Bodies
	}

	// Metrics keep per-run state so each run gets its own simulator.
	// Setup already built one, so the builders cannot fail here.
	build := func() *sim.Simulator {
		s, _, _ := e.newSimulator()
		return s
	}

	logr.FromContextOrDiscard(ctx).WithName("experiment").Info("sweep", "model", e.cfg.Model, "runs", len(seeds))
	return sim.NewEnsemble(build, limit).Run(ctx, starts, e.simConfig())
}

func (e *Experiment) Config() *config.Config    { return e.cfg }
func (e *Experiment) Simulator() *sim.Simulator { return e.simulator }
func (e *Experiment) Bodies() sim.State         { return e.model.Bodies.Clone() }
func (e *Experiment) System() sim.System        { return e.model.System }
func (e *Experiment) Trail() *trail.Trail       { return e.trail }
func (e *Experiment) Metrics() []string         { return e.metrics }

// Info describes the run for storage.
func (e *Experiment) Info() storage.RunInfo {
	return storage.RunInfo{
		Model:      e.cfg.Model,
		Integrator: e.cfg.Integrator,
		Dt:         e.dt,
		Duration:   e.duration,
		Seed:       e.cfg.Seed,
	}
}
