package physics

import (
	"fmt"

	"github.com/san-kum/physical/internal/sim"
	"github.com/san-kum/physical/internal/units"
)

var (
	acceleration = units.Meter.Div(units.Second.Pow(2))
	speed        = units.Meter.Div(units.Second)

	// Mph is one mile per hour.
	Mph = speed.Scale(0.44704)

	// EarthGravity points down the z axis.
	EarthGravity = units.Vec(0, 0, -9.8).Mul(acceleration)
)

// Falling drops bodies under uniform gravity with quadratic air drag.
// The drag is scaled so that a body settles at its terminal speed.
type Falling struct {
	Gravity units.Vector
	// Terminal is the terminal speed of every body without an entry in
	// Terminals.
	Terminal  units.Scalar
	Terminals map[string]units.Scalar
	// Height is the drop height used by InitialBodies.
	Height units.Scalar
}

func NewFalling(gravity units.Vector, terminal units.Scalar) (*Falling, error) {
	f := &Falling{
		Gravity:   gravity,
		Terminal:  terminal,
		Terminals: make(map[string]units.Scalar),
		Height:    units.Meter.Scale(960),
	}
	if err := f.Validate(); err != nil {
		return nil, err
	}
	return f, nil
}

func (f *Falling) Validate() error {
	if err := units.CheckUnits("gravity must have dimensions of acceleration", f.Gravity, acceleration); err != nil {
		return err
	}
	if err := checkTerminal("", f.Terminal); err != nil {
		return err
	}
	for name, v := range f.Terminals {
		if err := checkTerminal(name, v); err != nil {
			return err
		}
	}
	if err := units.CheckUnits("height must have dimensions of distance", f.Height, units.Meter); err != nil {
		return err
	}
	return nil
}

func checkTerminal(name string, v units.Scalar) error {
	err := units.CheckUnits("terminal speed must have dimensions of distance/time", v, speed)
	if err == nil && v.Value() <= 0 {
		err = fmt.Errorf("terminal speed must be positive, got %s", v)
	}
	if err != nil && name != "" {
		return fmt.Errorf("body %s: %w", name, err)
	}
	return err
}

// SetTerminal overrides the terminal speed of one body.
func (f *Falling) SetTerminal(name string, v units.Scalar) error {
	if err := checkTerminal(name, v); err != nil {
		return err
	}
	if f.Terminals == nil {
		f.Terminals = make(map[string]units.Scalar)
	}
	f.Terminals[name] = v
	return nil
}

func (f *Falling) terminal(name string) units.Scalar {
	if v, ok := f.Terminals[name]; ok {
		return v
	}
	return f.Terminal
}

// Drag returns the drag acceleration -|v| v |g| / terminal**2.
func (f *Falling) Drag(v units.Vector, terminal units.Scalar) units.Vector {
	k := v.Abs().Mul(f.Gravity.Abs()).Div(terminal.Pow(2))
	return v.Mul(k).Neg()
}

func (f *Falling) Forces(bodies sim.State, _ units.Scalar) ([]units.Vector, error) {
	forces := make([]units.Vector, len(bodies))
	for i, b := range bodies {
		a := f.Gravity
		if !b.Vel.IsZero() {
			var err error
			if a, err = a.Add(f.Drag(b.Vel, f.terminal(b.Name))); err != nil {
				return nil, fmt.Errorf("body %s: %w", b.Name, err)
			}
		}
		forces[i] = a.Mul(b.Mass)
	}
	return forces, nil
}

// Halted reports whether any body has reached the ground.
func (f *Falling) Halted(bodies sim.State, _ units.Scalar) bool {
	for _, b := range bodies {
		if b.Pos.Z().Value() < 0 {
			return true
		}
	}
	return false
}

// InitialBodies places a wizard and a victim 3 m apart at Height.
func (f *Falling) InitialBodies() sim.State {
	rest := units.Vec(0, 0, 0).Mul(speed)
	return sim.State{
		{Name: "wizard", Mass: units.Kilogram.Scale(80), Pos: units.Vec(0, 0, 1).Mul(f.Height), Vel: rest},
		{Name: "victim", Mass: units.Kilogram.Scale(70), Pos: units.NewVectorDim(3, 0, f.Height.Value(), units.DimLength), Vel: rest},
	}
}

// PotentialEnergy is the gravitational energy relative to z = 0.
func (f *Falling) PotentialEnergy(bodies sim.State) (units.Scalar, error) {
	total := units.Joule.Scale(0)
	for _, b := range bodies {
		if b.Pos.IsZero() {
			continue
		}
		e := b.Pos.Dot(f.Gravity).Mul(b.Mass).Neg()
		var err error
		if total, err = total.Add(e); err != nil {
			return units.Scalar{}, fmt.Errorf("body %s: %w", b.Name, err)
		}
	}
	return total, nil
}

var (
	_ sim.System      = (*Falling)(nil)
	_ sim.Halter      = (*Falling)(nil)
	_ sim.Initializer = (*Falling)(nil)
	_ sim.Potential   = (*Falling)(nil)
)
