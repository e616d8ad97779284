package experiment

import (
	"fmt"
	"math"
	"strings"

	"k8s.io/apimachinery/pkg/util/sets"

	"github.com/san-kum/physical/internal/config"
	"github.com/san-kum/physical/internal/integrators"
	"github.com/san-kum/physical/internal/metrics"
	"github.com/san-kum/physical/internal/physics"
	"github.com/san-kum/physical/internal/sim"
	"github.com/san-kum/physical/internal/units"
)

// Model is a built system together with its starting bodies.
type Model struct {
	System sim.System
	Bodies sim.State
}

type (
	ModelFunc  func(cfg *config.Config) (*Model, error)
	MetricFunc func(cfg *config.Config, sys sim.System) (sim.Metric, error)
)

type Registry struct {
	models      map[string]ModelFunc
	integrators map[string]func() sim.Integrator
	metrics     map[string]MetricFunc
}

var speed = units.Meter.Div(units.Second)

func NewRegistry() *Registry {
	r := &Registry{
		models:      make(map[string]ModelFunc),
		integrators: make(map[string]func() sim.Integrator),
		metrics:     make(map[string]MetricFunc),
	}

	r.models["falling"] = buildFalling
	r.models["crystal"] = buildCrystal
	r.models["gravity"] = buildGravity

	r.integrators["euler"] = func() sim.Integrator { return integrators.NewEuler() }
	r.integrators["symplectic"] = func() sim.Integrator { return integrators.NewSymplectic() }
	r.integrators["verlet"] = func() sim.Integrator { return integrators.NewVerlet() }
	r.integrators["leapfrog"] = func() sim.Integrator { return integrators.NewLeapfrog() }
	r.integrators["rk4"] = func() sim.Integrator { return integrators.NewRK4() }

	r.metrics["kinetic_energy"] = func(*config.Config, sim.System) (sim.Metric, error) {
		return metrics.NewKineticEnergy(), nil
	}
	r.metrics["max_speed"] = func(*config.Config, sim.System) (sim.Metric, error) {
		return metrics.NewMaxSpeed(), nil
	}
	r.metrics["displacement"] = func(*config.Config, sim.System) (sim.Metric, error) {
		return metrics.NewDisplacement(), nil
	}
	r.metrics["energy_drift"] = func(_ *config.Config, sys sim.System) (sim.Metric, error) {
		pot, ok := sys.(sim.Potential)
		if !ok {
			return nil, fmt.Errorf("energy_drift: model has no potential energy")
		}
		return metrics.NewEnergyDrift(pot), nil
	}
	r.metrics["stability"] = func(cfg *config.Config, _ sim.System) (sim.Metric, error) {
		limit, err := scalarParam(cfg, "speed_limit", speed.Scale(100))
		if err != nil {
			return nil, err
		}
		return metrics.NewStability(limit)
	}

	return r
}

func (r *Registry) GetModel(cfg *config.Config) (*Model, error) {
	fn, ok := r.models[cfg.Model]
	if !ok {
		return nil, fmt.Errorf("unknown model: %s", cfg.Model)
	}
	m, err := fn(cfg)
	if err != nil {
		return nil, fmt.Errorf("model %s: %w", cfg.Model, err)
	}
	if len(cfg.Bodies) > 0 {
		if m.Bodies, err = Bodies(cfg.Bodies); err != nil {
			return nil, err
		}
	}
	return m, nil
}

func (r *Registry) GetIntegrator(name string) (sim.Integrator, error) {
	fn, ok := r.integrators[name]
	if !ok {
		return nil, fmt.Errorf("unknown integrator: %s", name)
	}
	return fn(), nil
}

func (r *Registry) GetMetric(name string, cfg *config.Config, sys sim.System) (sim.Metric, error) {
	fn, ok := r.metrics[name]
	if !ok {
		return nil, fmt.Errorf("unknown metric: %s", name)
	}
	return fn(cfg, sys)
}

func (r *Registry) ListModels() []string      { return sets.List(sets.KeySet(r.models)) }
func (r *Registry) ListIntegrators() []string { return sets.List(sets.KeySet(r.integrators)) }
func (r *Registry) ListMetrics() []string     { return sets.List(sets.KeySet(r.metrics)) }

// DefaultMetrics are used when a config names none.
func (r *Registry) DefaultMetrics(cfg *config.Config, sys sim.System) ([]sim.Metric, error) {
	names := []string{"kinetic_energy", "max_speed"}
	if _, ok := sys.(sim.Potential); ok {
		names = append(names, "energy_drift")
	}
	out := make([]sim.Metric, 0, len(names))
	for _, name := range names {
		m, err := r.GetMetric(name, cfg, sys)
		if err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, nil
}

// Bodies converts configured bodies. A missing or bare zero position is
// the origin and a missing or bare zero velocity is at rest. Zeros that
// carry units are kept as written.
func Bodies(bcs []config.BodyConfig) (sim.State, error) {
	out := make(sim.State, 0, len(bcs))
	for _, bc := range bcs {
		mass, err := bc.Mass.Scalar()
		if err != nil {
			return nil, fmt.Errorf("body %s: %w", bc.Name, err)
		}
		pos, err := bodyVector(bc.Pos, units.Vec(0, 0, 0).Mul(units.Meter))
		if err != nil {
			return nil, fmt.Errorf("body %s: %w", bc.Name, err)
		}
		vel, err := bodyVector(bc.Vel, units.Vec(0, 0, 0).Mul(speed))
		if err != nil {
			return nil, fmt.Errorf("body %s: %w", bc.Name, err)
		}
		out = append(out, sim.Body{Name: bc.Name, Mass: mass, Pos: pos, Vel: vel})
	}
	if len(out) > 0 {
		if err := sim.ValidateBodies(out); err != nil {
			return nil, err
		}
	}
	return out, nil
}

func bodyVector(e config.Expr, def units.Vector) (units.Vector, error) {
	if e.IsZero() {
		return def, nil
	}
	v, err := e.Vector()
	if err != nil {
		return units.Vector{}, err
	}
	if units.IsBoring(v) {
		return def, nil
	}
	return v, nil
}

func scalarParam(cfg *config.Config, name string, def units.Scalar) (units.Scalar, error) {
	e, ok := cfg.Params[name]
	if !ok {
		return def, nil
	}
	s, err := e.Scalar()
	if err != nil {
		return units.Scalar{}, fmt.Errorf("param %s: %w", name, err)
	}
	return s, nil
}

func vectorParam(cfg *config.Config, name string, def units.Vector) (units.Vector, error) {
	e, ok := cfg.Params[name]
	if !ok {
		return def, nil
	}
	v, err := e.Vector()
	if err != nil {
		return units.Vector{}, fmt.Errorf("param %s: %w", name, err)
	}
	return v, nil
}

func intParam(cfg *config.Config, name string, def int) (int, error) {
	s, err := scalarParam(cfg, name, units.NewScalar(float64(def), units.Dimensionless))
	if err != nil {
		return 0, err
	}
	if err := units.CheckUnits("param "+name+" must be a plain number", s, units.NewScalar(1, units.Dimensionless)); err != nil {
		return 0, err
	}
	if s.Value() != math.Trunc(s.Value()) {
		return 0, fmt.Errorf("param %s must be a whole number, got %s", name, s)
	}
	return int(s.Value()), nil
}

const terminalPrefix = "terminal."

func buildFalling(cfg *config.Config) (*Model, error) {
	gravity, err := vectorParam(cfg, "gravity", physics.EarthGravity)
	if err != nil {
		return nil, err
	}
	terminal, err := scalarParam(cfg, "terminal", physics.Mph.Scale(120))
	if err != nil {
		return nil, err
	}
	f, err := physics.NewFalling(gravity, terminal)
	if err != nil {
		return nil, err
	}
	if f.Height, err = scalarParam(cfg, "height", f.Height); err != nil {
		return nil, err
	}
	if err := f.Validate(); err != nil {
		return nil, err
	}
	for name := range cfg.Params {
		body, ok := strings.CutPrefix(name, terminalPrefix)
		if !ok {
			continue
		}
		v, err := scalarParam(cfg, name, terminal)
		if err != nil {
			return nil, err
		}
		if err := f.SetTerminal(body, v); err != nil {
			return nil, err
		}
	}
	return &Model{System: f, Bodies: f.InitialBodies()}, nil
}

func buildCrystal(cfg *config.Config) (*Model, error) {
	n, err := intParam(cfg, "n", 2)
	if err != nil {
		return nil, err
	}
	k, err := scalarParam(cfg, "k", units.Newton.Div(units.Meter).Scale(10))
	if err != nil {
		return nil, err
	}
	rest, err := scalarParam(cfg, "rest", units.Meter)
	if err != nil {
		return nil, err
	}
	mass, err := scalarParam(cfg, "mass", units.Kg.Scale(0.1))
	if err != nil {
		return nil, err
	}
	l, err := physics.NewCube(n, k, rest, mass)
	if err != nil {
		return nil, err
	}
	if _, ok := cfg.Params["jitter"]; ok {
		sigma, err := scalarParam(cfg, "jitter", units.Meter.Scale(0))
		if err != nil {
			return nil, err
		}
		if err := l.Jitter(uint64(cfg.Seed), sigma); err != nil {
			return nil, err
		}
	}
	return &Model{System: l, Bodies: l.InitialBodies()}, nil
}

func buildGravity(cfg *config.Config) (*Model, error) {
	softening, err := scalarParam(cfg, "softening", units.Meter.Scale(0))
	if err != nil {
		return nil, err
	}
	g, err := physics.NewGravity(softening)
	if err != nil {
		return nil, err
	}
	if len(cfg.Bodies) > 0 {
		return &Model{System: g}, nil
	}

	m1, err := scalarParam(cfg, "m1", units.Kg.Scale(1.989e30))
	if err != nil {
		return nil, err
	}
	m2, err := scalarParam(cfg, "m2", units.Kg.Scale(5.972e24))
	if err != nil {
		return nil, err
	}
	d, err := scalarParam(cfg, "separation", units.Meter.Scale(1.496e11))
	if err != nil {
		return nil, err
	}
	bodies, err := g.Binary(m1, m2, d)
	if err != nil {
		return nil, err
	}
	return &Model{System: g, Bodies: bodies}, nil
}
