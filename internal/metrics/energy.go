package metrics

import (
	"fmt"
	"math"

	"github.com/san-kum/physical/internal/sim"
	"github.com/san-kum/physical/internal/units"
)

// kinetic returns the total kinetic energy m v.v / 2 of bodies.
func kinetic(bodies sim.State) (units.Scalar, error) {
	total := units.Joule.Scale(0)
	for _, b := range bodies {
		if b.Vel.IsZero() {
			continue
		}
		e := b.Vel.Dot(b.Vel).Mul(b.Mass).Scale(0.5)
		var err error
		if total, err = total.Add(e); err != nil {
			return units.Scalar{}, fmt.Errorf("body %s: %w", b.Name, err)
		}
	}
	return total, nil
}

// KineticEnergy is the mean total kinetic energy over the run.
type KineticEnergy struct {
	name    string
	samples int
	sum     units.Scalar
}

func NewKineticEnergy() *KineticEnergy {
	return &KineticEnergy{name: "kinetic_energy", sum: units.Joule.Scale(0)}
}

func (e *KineticEnergy) Name() string { return e.name }

func (e *KineticEnergy) Observe(bodies sim.State, _ units.Scalar) error {
	ke, err := kinetic(bodies)
	if err != nil {
		return err
	}
	if e.sum, err = e.sum.Add(ke); err != nil {
		return err
	}
	e.samples++
	return nil
}

func (e *KineticEnergy) Value() units.Scalar {
	if e.samples == 0 {
		return units.Joule.Scale(0)
	}
	return e.sum.Scale(1 / float64(e.samples))
}

func (e *KineticEnergy) Reset() {
	e.sum = units.Joule.Scale(0)
	e.samples = 0
}

// EnergyDrift is the largest relative change of kinetic plus potential
// energy seen during the run. It is dimensionless.
type EnergyDrift struct {
	name     string
	initial  units.Scalar
	maxDrift float64
	samples  int
	pot      sim.Potential
}

func NewEnergyDrift(pot sim.Potential) *EnergyDrift {
	return &EnergyDrift{
		name: "energy_drift",
		pot:  pot,
	}
}

func (e *EnergyDrift) Name() string { return e.name }

func (e *EnergyDrift) Observe(bodies sim.State, _ units.Scalar) error {
	ke, err := kinetic(bodies)
	if err != nil {
		return err
	}
	pe, err := e.pot.PotentialEnergy(bodies)
	if err != nil {
		return err
	}
	energy, err := ke.Add(pe)
	if err != nil {
		return err
	}

	if e.samples == 0 {
		e.initial = energy
	}
	e.samples++

	if e.initial.Value() != 0 {
		diff, err := energy.Sub(e.initial)
		if err != nil {
			return err
		}
		drift := math.Abs(diff.Div(e.initial).Value())
		e.maxDrift = math.Max(e.maxDrift, drift)
	}
	return nil
}

func (e *EnergyDrift) Value() units.Scalar {
	return units.NewScalar(e.maxDrift, units.Dimensionless)
}

func (e *EnergyDrift) Reset() {
	e.initial = units.Scalar{}
	e.maxDrift = 0
	e.samples = 0
}
