package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
	"k8s.io/apimachinery/pkg/util/validation/field"

	"github.com/san-kum/physical/internal/units"
)

const (
	DefaultModel      = "falling"
	DefaultIntegrator = "symplectic"
)

var (
	DefaultDt       = MustExpr("0.01*second")
	DefaultDuration = MustExpr("10*second")
)

// Config describes one simulation run. Quantities are written in the
// expression language and checked for dimensions by Validate.
type Config struct {
	Model      string          `yaml:"model"`
	Integrator string          `yaml:"integrator"`
	Dt         Expr            `yaml:"dt"`
	Duration   Expr            `yaml:"duration"`
	Seed       int64           `yaml:"seed,omitempty"`
	Params     map[string]Expr `yaml:"params,omitempty"`
	Bodies     []BodyConfig    `yaml:"bodies,omitempty"`
	Metrics    []string        `yaml:"metrics,omitempty"`
	// Trail names a body whose path is recorded during the run.
	Trail string `yaml:"trail,omitempty"`
}

type BodyConfig struct {
	Name string `yaml:"name"`
	Mass Expr   `yaml:"mass"`
	Pos  Expr   `yaml:"pos"`
	Vel  Expr   `yaml:"vel,omitempty"`
}

func DefaultConfig() *Config {
	return &Config{
		Model:      DefaultModel,
		Integrator: DefaultIntegrator,
		Dt:         DefaultDt,
		Duration:   DefaultDuration,
		Params:     make(map[string]Expr),
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
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

// Clone returns a copy that shares no maps or slices with c.
func (c *Config) Clone() *Config {
	cp := *c
	cp.Params = make(map[string]Expr, len(c.Params))
	for k, v := range c.Params {
		cp.Params[k] = v
	}
	cp.Bodies = append([]BodyConfig(nil), c.Bodies...)
	cp.Metrics = append([]string(nil), c.Metrics...)
	return &cp
}

// Param returns the named parameter, or def when it is not set.
func (c *Config) Param(name string, def Expr) Expr {
	if e, ok := c.Params[name]; ok {
		return e
	}
	return def
}

var speed = units.Meter.Div(units.Second)

// Validate checks dimensions of every quantity in the file. All problems
// are reported together.
func (c *Config) Validate() error {
	if errs := c.validate(); len(errs) > 0 {
		return errs.ToAggregate()
	}
	return nil
}

func (c *Config) validate() field.ErrorList {
	var errs field.ErrorList

	if c.Model == "" {
		errs = append(errs, field.Required(field.NewPath("model"), "a model name is required"))
	}
	if c.Integrator == "" {
		errs = append(errs, field.Required(field.NewPath("integrator"), "an integrator name is required"))
	}
	errs = append(errs, positiveTime(field.NewPath("dt"), c.Dt, "time step dt must be a time")...)
	errs = append(errs, positiveTime(field.NewPath("duration"), c.Duration, "duration must be a time")...)

	seen := make(map[string]bool)
	for i, b := range c.Bodies {
		p := field.NewPath("bodies").Index(i)
		if b.Name == "" {
			errs = append(errs, field.Required(p.Child("name"), "every body needs a name"))
		} else if seen[b.Name] {
			errs = append(errs, field.Duplicate(p.Child("name"), b.Name))
		}
		seen[b.Name] = true

		errs = append(errs, check(p.Child("mass"), b.Mass, scalarOf, units.Kilogram, "mass must have dimensions of mass")...)
		errs = append(errs, check(p.Child("pos"), b.Pos, vectorOf, units.Meter, "position must have dimensions of distance")...)
		if !b.Vel.IsZero() {
			errs = append(errs, check(p.Child("vel"), b.Vel, vectorOf, speed, "velocity must have dimensions of distance/time")...)
		}
	}
	return errs
}

func positiveTime(p *field.Path, e Expr, msg string) field.ErrorList {
	errs := check(p, e, scalarOf, units.Second, msg)
	if len(errs) > 0 {
		return errs
	}
	if s, _ := e.Scalar(); s.Value() <= 0 {
		errs = append(errs, field.Invalid(p, e.Source, "must be positive"))
	}
	return errs
}

func scalarOf(e Expr) (units.Quantity, error) { return e.Scalar() }

func vectorOf(e Expr) (units.Quantity, error) { return e.Vector() }

// check reports a missing value, the wrong shape, or the wrong dimension.
func check(p *field.Path, e Expr, shape func(Expr) (units.Quantity, error), want units.Quantity, msg string) field.ErrorList {
	if e.IsZero() {
		return field.ErrorList{field.Required(p, "")}
	}
	q, err := shape(e)
	if err != nil {
		return field.ErrorList{field.Invalid(p, e.Source, err.Error())}
	}
	if err := units.CheckUnits(msg, q, want); err != nil {
		return field.ErrorList{field.Invalid(p, e.Source, err.Error())}
	}
	return nil
}
