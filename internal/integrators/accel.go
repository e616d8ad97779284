package integrators

import (
	"fmt"

	"github.com/san-kum/physical/internal/sim"
	"github.com/san-kum/physical/internal/units"
)

// accelerations evaluates sys and divides each force by its body's mass.
func accelerations(sys sim.System, bodies sim.State, t units.Scalar) ([]units.Vector, error) {
	forces, err := sys.Forces(bodies, t)
	if err != nil {
		return nil, err
	}
	if len(forces) != len(bodies) {
		return nil, fmt.Errorf("%w: got %d for %d bodies", sim.ErrForceCount, len(forces), len(bodies))
	}
	acc := make([]units.Vector, len(forces))
	for i, f := range forces {
		if err := units.CheckUnits("force must have dimensions of force", f, units.Newton); err != nil {
			return nil, fmt.Errorf("body %s: %w", bodies[i].Name, err)
		}
		acc[i] = f.Div(bodies[i].Mass)
	}
	return acc, nil
}

// drift returns pos + vel*dt.
func drift(pos, vel units.Vector, dt units.Scalar) (units.Vector, error) {
	return pos.Add(vel.Mul(dt))
}

// kick returns vel + acc*dt.
func kick(vel, acc units.Vector, dt units.Scalar) (units.Vector, error) {
	return vel.Add(acc.Mul(dt))
}
