package metrics

import (
	"github.com/san-kum/physical/internal/sim"
	"github.com/san-kum/physical/internal/units"
)

var speed = units.Meter.Div(units.Second)

// Stability is the fraction of samples in which every body moves slower
// than a speed limit.
type Stability struct {
	name       string
	limit      units.Scalar
	violations int
	samples    int
}

func NewStability(limit units.Scalar) (*Stability, error) {
	if err := units.CheckUnits("speed limit must have dimensions of distance/time", limit, speed); err != nil {
		return nil, err
	}
	return &Stability{
		name:  "stability",
		limit: limit,
	}, nil
}

func (s *Stability) Name() string {
	return s.name
}

func (s *Stability) Observe(bodies sim.State, _ units.Scalar) error {
	s.samples++
	for _, b := range bodies {
		if b.Vel.IsZero() {
			continue
		}
		fast, err := units.Greater(b.Vel.Abs(), s.limit)
		if err != nil {
			return err
		}
		if fast {
			s.violations++
			break
		}
	}
	return nil
}

func (s *Stability) Value() units.Scalar {
	if s.samples == 0 {
		return units.NewScalar(1, units.Dimensionless)
	}
	return units.NewScalar(1-float64(s.violations)/float64(s.samples), units.Dimensionless)
}

func (s *Stability) Reset() {
	s.violations = 0
	s.samples = 0
}

// MaxSpeed is the highest speed reached by any body.
type MaxSpeed struct {
	name string
	max  units.Scalar
}

func NewMaxSpeed() *MaxSpeed {
	return &MaxSpeed{name: "max_speed", max: speed.Scale(0)}
}

func (m *MaxSpeed) Name() string { return m.name }

func (m *MaxSpeed) Observe(bodies sim.State, _ units.Scalar) error {
	for _, b := range bodies {
		v := b.Vel.Abs()
		if v.Value() == 0 {
			continue
		}
		faster, err := units.Greater(v, m.max)
		if err != nil {
			return err
		}
		if faster {
			m.max = v
		}
	}
	return nil
}

func (m *MaxSpeed) Value() units.Scalar { return m.max }

func (m *MaxSpeed) Reset() { m.max = speed.Scale(0) }
