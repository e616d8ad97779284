package integrators

import (
	"github.com/san-kum/physical/internal/sim"
	"github.com/san-kum/physical/internal/units"
)

// RK4 is the classic fourth order Runge-Kutta method applied to
// positions and velocities together.
type RK4 struct{}

func NewRK4() *RK4 {
	return &RK4{}
}

// stage is one slope evaluation: dpos/dt and dvel/dt for every body.
type stage struct {
	vel, acc []units.Vector
}

// offset returns bodies advanced along s by h.
func offset(bodies sim.State, s stage, h units.Scalar) (sim.State, error) {
	out := bodies.Clone()
	for i := range out {
		var err error
		if out[i].Pos, err = drift(out[i].Pos, s.vel[i], h); err != nil {
			return nil, err
		}
		if out[i].Vel, err = kick(out[i].Vel, s.acc[i], h); err != nil {
			return nil, err
		}
	}
	return out, nil
}

func evaluate(sys sim.System, bodies sim.State, t units.Scalar) (stage, error) {
	acc, err := accelerations(sys, bodies, t)
	if err != nil {
		return stage{}, err
	}
	vel := make([]units.Vector, len(bodies))
	for i, b := range bodies {
		vel[i] = b.Vel
	}
	return stage{vel: vel, acc: acc}, nil
}

// weighted returns (a + 2b + 2c + d) / 6.
func weighted(a, b, c, d units.Vector) (units.Vector, error) {
	sum, err := a.Add(b.Scale(2))
	if err != nil {
		return units.Vector{}, err
	}
	if sum, err = sum.Add(c.Scale(2)); err != nil {
		return units.Vector{}, err
	}
	if sum, err = sum.Add(d); err != nil {
		return units.Vector{}, err
	}
	return sum.DivBy(6), nil
}

func (r *RK4) Step(sys sim.System, bodies sim.State, t, dt units.Scalar) (sim.State, error) {
	half := dt.Scale(0.5)
	tHalf, err := t.Add(half)
	if err != nil {
		return nil, err
	}
	tEnd, err := t.Add(dt)
	if err != nil {
		return nil, err
	}

	k1, err := evaluate(sys, bodies, t)
	if err != nil {
		return nil, err
	}
	x, err := offset(bodies, k1, half)
	if err != nil {
		return nil, err
	}
	k2, err := evaluate(sys, x, tHalf)
	if err != nil {
		return nil, err
	}
	if x, err = offset(bodies, k2, half); err != nil {
		return nil, err
	}
	k3, err := evaluate(sys, x, tHalf)
	if err != nil {
		return nil, err
	}
	if x, err = offset(bodies, k3, dt); err != nil {
		return nil, err
	}
	k4, err := evaluate(sys, x, tEnd)
	if err != nil {
		return nil, err
	}

	slope := stage{
		vel: make([]units.Vector, len(bodies)),
		acc: make([]units.Vector, len(bodies)),
	}
	for i := range bodies {
		if slope.vel[i], err = weighted(k1.vel[i], k2.vel[i], k3.vel[i], k4.vel[i]); err != nil {
			return nil, err
		}
		if slope.acc[i], err = weighted(k1.acc[i], k2.acc[i], k3.acc[i], k4.acc[i]); err != nil {
			return nil, err
		}
	}
	return offset(bodies, slope, dt)
}
