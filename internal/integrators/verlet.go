package integrators

import (
	"github.com/san-kum/physical/internal/sim"
	"github.com/san-kum/physical/internal/units"
)

// Verlet is velocity Verlet. Forces must depend on positions only; the
// velocities passed to the second force evaluation are the old ones.
type Verlet struct{}

func NewVerlet() *Verlet {
	return &Verlet{}
}

func (v *Verlet) Step(sys sim.System, bodies sim.State, t, dt units.Scalar) (sim.State, error) {
	acc, err := accelerations(sys, bodies, t)
	if err != nil {
		return nil, err
	}

	half := dt.Scale(0.5)
	next := bodies.Clone()
	for i := range next {
		b := &next[i]
		// x + v*dt + a*dt**2/2 == x + (v + a*dt/2)*dt
		mid, err := kick(b.Vel, acc[i], half)
		if err != nil {
			return nil, err
		}
		if b.Pos, err = drift(b.Pos, mid, dt); err != nil {
			return nil, err
		}
	}

	t1, err := t.Add(dt)
	if err != nil {
		return nil, err
	}
	accNew, err := accelerations(sys, next, t1)
	if err != nil {
		return nil, err
	}

	for i := range next {
		b := &next[i]
		if b.Vel, err = kick(b.Vel, acc[i], half); err != nil {
			return nil, err
		}
		if b.Vel, err = kick(b.Vel, accNew[i], half); err != nil {
			return nil, err
		}
	}
	return next, nil
}

// Leapfrog is kick-drift-kick leapfrog, a symplectic second order method.
type Leapfrog struct{}

func NewLeapfrog() *Leapfrog {
	return &Leapfrog{}
}

func (l *Leapfrog) Step(sys sim.System, bodies sim.State, t, dt units.Scalar) (sim.State, error) {
	acc, err := accelerations(sys, bodies, t)
	if err != nil {
		return nil, err
	}

	half := dt.Scale(0.5)
	next := bodies.Clone()
	for i := range next {
		b := &next[i]
		if b.Vel, err = kick(b.Vel, acc[i], half); err != nil {
			return nil, err
		}
		if b.Pos, err = drift(b.Pos, b.Vel, dt); err != nil {
			return nil, err
		}
	}

	t1, err := t.Add(dt)
	if err != nil {
		return nil, err
	}
	accNew, err := accelerations(sys, next, t1)
	if err != nil {
		return nil, err
	}
	for i := range next {
		b := &next[i]
		if b.Vel, err = kick(b.Vel, accNew[i], half); err != nil {
			return nil, err
		}
	}
	return next, nil
}
