package physics

import (
	"fmt"

	"golang.org/x/exp/rand"

	"github.com/san-kum/physical/internal/sim"
	"github.com/san-kum/physical/internal/units"
)

var stiffness = units.Newton.Div(units.Meter)

// Spring joins two bodies of a lattice by index.
type Spring struct {
	A, B int
}

// SpringLattice is a crystal of point masses joined by Hooke springs
// with a short-range repulsion between every pair of bodies.
type SpringLattice struct {
	K    units.Scalar
	Rest units.Scalar
	// Repulsion scales the pair force Repulsion * Rest**5 * dr / |dr|**6 N.
	Repulsion float64
	Springs   []Spring

	bodies sim.State
}

// NewCube builds an n×n×n lattice with nearest-neighbour springs.
// Bodies sit Rest apart, centred on the origin, and the first two are
// nudged off their sites so the crystal starts to ring.
func NewCube(n int, k, rest, mass units.Scalar) (*SpringLattice, error) {
	if n < 1 {
		return nil, fmt.Errorf("cube size must be at least 1, got %d", n)
	}
	l := &SpringLattice{K: k, Rest: rest, Repulsion: 0.1}
	if err := l.Validate(); err != nil {
		return nil, err
	}
	if err := units.CheckUnits("mass must have dimensions of mass", mass, units.Kilogram); err != nil {
		return nil, err
	}

	index := func(i, j, k int) int { return (i*n+j)*n + k }
	half := float64(n) / 2
	still := units.Vec(0, 0, 0).Mul(speed)
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			for k := 0; k < n; k++ {
				pos := units.Vec(float64(i)-half, float64(j)-half, float64(k)-half).Mul(rest)
				l.bodies = append(l.bodies, sim.Body{
					Name: fmt.Sprintf("ball-%d-%d-%d", i, j, k),
					Mass: mass,
					Pos:  pos,
					Vel:  still,
				})
				here := index(i, j, k)
				if i > 0 {
					l.Springs = append(l.Springs, Spring{here, index(i-1, j, k)})
				}
				if j > 0 {
					l.Springs = append(l.Springs, Spring{here, index(i, j-1, k)})
				}
				if k > 0 {
					l.Springs = append(l.Springs, Spring{here, index(i, j, k-1)})
				}
			}
		}
	}

	nudge := units.Vec(0.01, 0.02, 0.03).Mul(units.Meter)
	if len(l.bodies) > 1 {
		l.bodies[0].Pos, _ = l.bodies[0].Pos.Add(nudge)
		l.bodies[1].Pos, _ = l.bodies[1].Pos.Sub(nudge)
	}
	return l, nil
}

func (l *SpringLattice) Validate() error {
	if err := units.CheckUnits("spring constant must have dimensions of force/distance", l.K, stiffness); err != nil {
		return err
	}
	if err := units.CheckUnits("rest length must have dimensions of distance", l.Rest, units.Meter); err != nil {
		return err
	}
	if l.Rest.Value() <= 0 {
		return fmt.Errorf("rest length must be positive, got %s", l.Rest)
	}
	return nil
}

// Jitter displaces every initial position by a gaussian offset with
// standard deviation sigma. The same seed gives the same crystal.
func (l *SpringLattice) Jitter(seed uint64, sigma units.Scalar) error {
	if err := units.CheckUnits("jitter must have dimensions of distance", sigma, units.Meter); err != nil {
		return err
	}
	rng := rand.New(rand.NewSource(seed))
	for i := range l.bodies {
		d := units.Vec(rng.NormFloat64(), rng.NormFloat64(), rng.NormFloat64()).Mul(sigma)
		p, err := l.bodies[i].Pos.Add(d)
		if err != nil {
			return err
		}
		l.bodies[i].Pos = p
	}
	return nil
}

func (l *SpringLattice) InitialBodies() sim.State {
	return l.bodies.Clone()
}

func (l *SpringLattice) Forces(bodies sim.State, _ units.Scalar) ([]units.Vector, error) {
	forces := make([]units.Vector, len(bodies))
	for i := range forces {
		forces[i] = units.Vec(0, 0, 0).Mul(units.Newton)
	}
	add := func(i int, f units.Vector) error {
		sum, err := forces[i].Add(f)
		if err != nil {
			return fmt.Errorf("body %s: %w", bodies[i].Name, err)
		}
		forces[i] = sum
		return nil
	}

	scale := l.Rest.Pow(5).Mul(units.Newton).Scale(l.Repulsion)
	for i := range bodies {
		for j := range bodies {
			if i == j || bodies[i].Pos.Equal(bodies[j].Pos) {
				continue
			}
			dr, err := bodies[j].Pos.Sub(bodies[i].Pos)
			if err != nil {
				return nil, err
			}
			f := dr.Mul(scale.Div(dr.Abs().Pow(6)))
			if err := add(j, f); err != nil {
				return nil, err
			}
			if err := add(i, f.Neg()); err != nil {
				return nil, err
			}
		}
	}

	for _, s := range l.Springs {
		if s.A >= len(bodies) || s.B >= len(bodies) {
			return nil, fmt.Errorf("spring %d-%d out of range for %d bodies", s.A, s.B, len(bodies))
		}
		f, err := l.tension(bodies[s.A].Pos, bodies[s.B].Pos)
		if err != nil {
			return nil, err
		}
		if err := add(s.A, f); err != nil {
			return nil, err
		}
		if err := add(s.B, f.Neg()); err != nil {
			return nil, err
		}
	}
	return forces, nil
}

// tension is the force on a from a spring stretched between a and b,
// k (|dr| - L) dr/|dr| with dr = b - a.
func (l *SpringLattice) tension(a, b units.Vector) (units.Vector, error) {
	dr, err := b.Sub(a)
	if err != nil {
		return units.Vector{}, err
	}
	dist := dr.Abs()
	stretch, err := dist.Sub(l.Rest)
	if err != nil {
		return units.Vector{}, err
	}
	return dr.Mul(l.K.Mul(stretch).Div(dist)), nil
}

// PotentialEnergy sums the spring energy k (|dr| - L)**2 / 2.
// The repulsion term is left out.
func (l *SpringLattice) PotentialEnergy(bodies sim.State) (units.Scalar, error) {
	total := units.Joule.Scale(0)
	for _, s := range l.Springs {
		dr, err := bodies[s.B].Pos.Sub(bodies[s.A].Pos)
		if err != nil {
			return units.Scalar{}, err
		}
		stretch, err := dr.Abs().Sub(l.Rest)
		if err != nil {
			return units.Scalar{}, err
		}
		if total, err = total.Add(l.K.Mul(stretch.Pow(2)).Scale(0.5)); err != nil {
			return units.Scalar{}, err
		}
	}
	return total, nil
}

var (
	_ sim.System      = (*SpringLattice)(nil)
	_ sim.Initializer = (*SpringLattice)(nil)
	_ sim.Potential   = (*SpringLattice)(nil)
)
