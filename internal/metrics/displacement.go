package metrics

import (
	"github.com/san-kum/physical/internal/sim"
	"github.com/san-kum/physical/internal/units"
)

// Displacement is the largest distance any body strays from where it was
// first observed.
type Displacement struct {
	name  string
	start map[string]units.Vector
	max   units.Scalar
}

func NewDisplacement() *Displacement {
	return &Displacement{
		name:  "displacement",
		start: make(map[string]units.Vector),
		max:   units.Meter.Scale(0),
	}
}

func (d *Displacement) Name() string { return d.name }

func (d *Displacement) Observe(bodies sim.State, _ units.Scalar) error {
	for _, b := range bodies {
		if err := units.CheckUnits("position must have dimensions of distance", b.Pos, units.Meter); err != nil {
			return err
		}
		p0, ok := d.start[b.Name]
		if !ok {
			d.start[b.Name] = b.Pos.Copy()
			continue
		}
		dr, err := b.Pos.Sub(p0)
		if err != nil {
			return err
		}
		if dr.IsZero() {
			continue
		}
		further, err := units.Greater(dr.Abs(), d.max)
		if err != nil {
			return err
		}
		if further {
			d.max = dr.Abs()
		}
	}
	return nil
}

func (d *Displacement) Value() units.Scalar { return d.max }

func (d *Displacement) Reset() {
	d.start = make(map[string]units.Vector)
	d.max = units.Meter.Scale(0)
}
