package integrators

import (
	"github.com/san-kum/physical/internal/sim"
	"github.com/san-kum/physical/internal/units"
)

// Euler is the explicit Euler method: positions advance with the old
// velocity, then velocities with the old forces.
type Euler struct{}

func NewEuler() *Euler {
	return &Euler{}
}

func (e *Euler) Step(sys sim.System, bodies sim.State, t, dt units.Scalar) (sim.State, error) {
	acc, err := accelerations(sys, bodies, t)
	if err != nil {
		return nil, err
	}
	next := bodies.Clone()
	for i := range next {
		b := &next[i]
		if b.Pos, err = drift(b.Pos, b.Vel, dt); err != nil {
			return nil, err
		}
		if b.Vel, err = kick(b.Vel, acc[i], dt); err != nil {
			return nil, err
		}
	}
	return next, nil
}

// Symplectic is semi-implicit Euler: velocities are kicked first and the
// new velocity moves the position.
type Symplectic struct{}

func NewSymplectic() *Symplectic {
	return &Symplectic{}
}

func (s *Symplectic) Step(sys sim.System, bodies sim.State, t, dt units.Scalar) (sim.State, error) {
	acc, err := accelerations(sys, bodies, t)
	if err != nil {
		return nil, err
	}
	next := bodies.Clone()
	for i := range next {
		b := &next[i]
		if b.Vel, err = kick(b.Vel, acc[i], dt); err != nil {
			return nil, err
		}
		if b.Pos, err = drift(b.Pos, b.Vel, dt); err != nil {
			return nil, err
		}
	}
	return next, nil
}
