package units

import (
	"math"
	"strconv"
	"strings"
)

// exponentTolerance absorbs rounding from repeated fractional powers.
const exponentTolerance = 1e-9

// Dimension holds the exponents of length, mass and time.
//
// Compare dimensions with Equal, not ==: exponents are real numbers and
// a chain of fractional powers may leave them a few ulps off.
type Dimension struct {
	Length float64
	Mass   float64
	Time   float64
}

var (
	Dimensionless = Dimension{}
	DimLength     = Dimension{Length: 1}
	DimMass       = Dimension{Mass: 1}
	DimTime       = Dimension{Time: 1}
)

// Mul combines dimensions under multiplication.
func (d Dimension) Mul(o Dimension) Dimension {
	return Dimension{d.Length + o.Length, d.Mass + o.Mass, d.Time + o.Time}
}

// Div combines dimensions under division.
func (d Dimension) Div(o Dimension) Dimension {
	return Dimension{d.Length - o.Length, d.Mass - o.Mass, d.Time - o.Time}
}

// Scale raises the dimension to the power k.
func (d Dimension) Scale(k float64) Dimension {
	return Dimension{d.Length * k, d.Mass * k, d.Time * k}
}

func (d Dimension) Equal(o Dimension) bool {
	return closeExp(d.Length, o.Length) && closeExp(d.Mass, o.Mass) && closeExp(d.Time, o.Time)
}

func (d Dimension) IsZero() bool {
	return d.Equal(Dimensionless)
}

// String renders the unit expression, e.g. "meter**(2)*kg*second**(-2)".
// The zero dimension renders as "".
func (d Dimension) String() string {
	parts := make([]string, 0, 3)
	for _, f := range []struct {
		name string
		exp  float64
	}{
		{"meter", d.Length},
		{"kg", d.Mass},
		{"second", d.Time},
	} {
		switch {
		case closeExp(f.exp, 0):
		case closeExp(f.exp, 1):
			parts = append(parts, f.name)
		default:
			parts = append(parts, f.name+"**("+formatFloat(math.Round(f.exp*1e9)/1e9)+")")
		}
	}
	return strings.Join(parts, "*")
}

func closeExp(a, b float64) bool {
	return math.Abs(a-b) <= exponentTolerance
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}
