package analysis

import (
	"context"
	"fmt"
	"math"

	"github.com/san-kum/physical/internal/sim"
	"github.com/san-kum/physical/internal/units"
)

// LyapunovExponent estimates the largest Lyapunov exponent of sys by
// following two trajectories whose first body starts perturbation apart
// along x. A positive value indicates chaos.
//
// Separation is measured in position space and renormalized back to the
// initial distance after every step, so the estimate is
//
//	λ = Σ ln(|δr_i| / |δr_0|) / (n dt)
//
// with dimensions of second**(-1).
func LyapunovExponent(
	ctx context.Context,
	sys sim.System,
	integ sim.Integrator,
	bodies sim.State,
	dt, duration, perturbation units.Scalar,
) (units.Scalar, error) {
	if err := sim.ValidateConfig(sim.Config{Dt: dt, Duration: duration}); err != nil {
		return units.Scalar{}, err
	}
	if err := sim.ValidateBodies(bodies); err != nil {
		return units.Scalar{}, err
	}
	if err := units.CheckUnits("perturbation must have dimensions of distance", perturbation, units.Meter); err != nil {
		return units.Scalar{}, err
	}
	if perturbation.Value() <= 0 {
		return units.Scalar{}, fmt.Errorf("perturbation must be positive, got %s", perturbation)
	}

	x := bodies.WithUnits()
	xp := x.Clone()
	var err error
	if xp[0].Pos, err = xp[0].Pos.Add(units.Vec(1, 0, 0).Mul(perturbation)); err != nil {
		return units.Scalar{}, err
	}

	d0 := perturbation.Value()
	steps := int(math.Round(duration.Value() / dt.Value()))
	sumLog := 0.0
	count := 0

	for i := 0; i < steps; i++ {
		if err := ctx.Err(); err != nil {
			return units.Scalar{}, err
		}
		t := dt.Scale(float64(i))
		if x, err = integ.Step(sys, x, t, dt); err != nil {
			return units.Scalar{}, err
		}
		if xp, err = integ.Step(sys, xp, t, dt); err != nil {
			return units.Scalar{}, err
		}

		sep, err := separation(x, xp)
		if err != nil {
			return units.Scalar{}, err
		}
		if sep <= 0 {
			continue
		}
		sumLog += math.Log(sep / d0)
		count++

		scale := d0 / sep
		for j := range xp {
			dr, err := xp[j].Pos.Sub(x[j].Pos)
			if err != nil {
				return units.Scalar{}, err
			}
			if xp[j].Pos, err = x[j].Pos.Add(dr.Scale(scale)); err != nil {
				return units.Scalar{}, err
			}
			dv, err := xp[j].Vel.Sub(x[j].Vel)
			if err != nil {
				return units.Scalar{}, err
			}
			if xp[j].Vel, err = x[j].Vel.Add(dv.Scale(scale)); err != nil {
				return units.Scalar{}, err
			}
		}
	}

	if count == 0 {
		return dt.Inverse().Scale(0), nil
	}
	return dt.Scale(float64(count)).Inverse().Scale(sumLog), nil
}

// separation is the distance between two states in position space, in
// meters.
func separation(a, b sim.State) (float64, error) {
	sum := 0.0
	for i := range a {
		dr, err := b[i].Pos.Sub(a[i].Pos)
		if err != nil {
			return 0, err
		}
		sum += dr.Dot(dr).Value()
	}
	return math.Sqrt(sum), nil
}
