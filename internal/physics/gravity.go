package physics

import (
	"fmt"

	"github.com/san-kum/physical/internal/sim"
	"github.com/san-kum/physical/internal/units"
)

var gravitational = units.Meter.Pow(3).Div(units.Kilogram).Div(units.Second.Pow(2))

// G is Newton's gravitational constant.
var G = gravitational.Scale(6.674e-11)

// Gravity is the Newtonian N-body problem. Softening is added in
// quadrature to every separation so close encounters stay finite.
type Gravity struct {
	G         units.Scalar
	Softening units.Scalar
}

func NewGravity(softening units.Scalar) (*Gravity, error) {
	g := &Gravity{G: G, Softening: softening}
	if err := g.Validate(); err != nil {
		return nil, err
	}
	return g, nil
}

func (g *Gravity) Validate() error {
	if err := units.CheckUnits("gravitational constant must have dimensions of distance**3/mass/time**2", g.G, gravitational); err != nil {
		return err
	}
	if err := units.CheckUnits("softening must have dimensions of distance", g.Softening, units.Meter); err != nil {
		return err
	}
	return nil
}

// separation returns dr = b - a and the softened |dr|**2.
func (g *Gravity) separation(a, b units.Vector) (units.Vector, units.Scalar, error) {
	dr, err := b.Sub(a)
	if err != nil {
		return units.Vector{}, units.Scalar{}, err
	}
	r2, err := dr.Dot(dr).Add(g.Softening.Pow(2))
	if err != nil {
		return units.Vector{}, units.Scalar{}, err
	}
	return dr, r2, nil
}

func (g *Gravity) Forces(bodies sim.State, _ units.Scalar) ([]units.Vector, error) {
	n := len(bodies)
	forces := make([]units.Vector, n)
	for i := range forces {
		forces[i] = units.Vec(0, 0, 0).Mul(units.Newton)
	}

	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			dr, r2, err := g.separation(bodies[i].Pos, bodies[j].Pos)
			if err != nil {
				return nil, fmt.Errorf("bodies %s and %s: %w", bodies[i].Name, bodies[j].Name, err)
			}
			k := g.G.Mul(bodies[i].Mass).Mul(bodies[j].Mass).Mul(r2.Pow(-1.5))
			f := dr.Mul(k)

			if forces[i], err = forces[i].Add(f); err != nil {
				return nil, fmt.Errorf("body %s: %w", bodies[i].Name, err)
			}
			if forces[j], err = forces[j].Sub(f); err != nil {
				return nil, fmt.Errorf("body %s: %w", bodies[j].Name, err)
			}
		}
	}
	return forces, nil
}

// PotentialEnergy is -G m_i m_j / r summed over pairs.
func (g *Gravity) PotentialEnergy(bodies sim.State) (units.Scalar, error) {
	total := units.Joule.Scale(0)
	for i := range bodies {
		for j := i + 1; j < len(bodies); j++ {
			_, r2, err := g.separation(bodies[i].Pos, bodies[j].Pos)
			if err != nil {
				return units.Scalar{}, err
			}
			e := g.G.Mul(bodies[i].Mass).Mul(bodies[j].Mass).Div(r2.Sqrt())
			if total, err = total.Sub(e); err != nil {
				return units.Scalar{}, err
			}
		}
	}
	return total, nil
}

// Momentum returns the total linear momentum.
func (g *Gravity) Momentum(bodies sim.State) (units.Vector, error) {
	p := units.Vec(0, 0, 0).Mul(units.Kilogram).Mul(speed)
	for _, b := range bodies {
		var err error
		if p, err = p.Add(b.Vel.Mul(b.Mass)); err != nil {
			return units.Vector{}, fmt.Errorf("body %s: %w", b.Name, err)
		}
	}
	return p, nil
}

// Binary returns two bodies on circular orbits about their common centre
// of mass, separated by distance and lying in the x/y plane.
func (g *Gravity) Binary(m1, m2, distance units.Scalar) (sim.State, error) {
	if err := units.CheckUnits("mass must have dimensions of mass", m1, m2, units.Kilogram); err != nil {
		return nil, err
	}
	if err := units.CheckUnits("separation must have dimensions of distance", distance, units.Meter); err != nil {
		return nil, err
	}
	total, err := m1.Add(m2)
	if err != nil {
		return nil, err
	}
	// relative speed of a circular orbit, sqrt(G M / d)
	v := g.G.Mul(total).Div(distance).Sqrt()
	r1 := distance.Mul(m2).Div(total)
	r2 := distance.Mul(m1).Div(total)
	v1 := v.Mul(m2).Div(total)
	v2 := v.Mul(m1).Div(total)

	return sim.State{
		{Name: "primary", Mass: m1, Pos: units.Vec(-1, 0, 0).Mul(r1), Vel: units.Vec(0, -1, 0).Mul(v1)},
		{Name: "secondary", Mass: m2, Pos: units.Vec(1, 0, 0).Mul(r2), Vel: units.Vec(0, 1, 0).Mul(v2)},
	}, nil
}

var (
	_ sim.System    = (*Gravity)(nil)
	_ sim.Potential = (*Gravity)(nil)
)
