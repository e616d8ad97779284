package units

import "math"

var (
	exp = RequireDimensionless("argument to exp must be dimensionless", func(a ...float64) float64 {
		return math.Exp(a[0])
	})
	sin = RequireDimensionless("argument to sin must be dimensionless", func(a ...float64) float64 {
		return math.Sin(a[0])
	})
	cos = RequireDimensionless("argument to cos must be dimensionless", func(a ...float64) float64 {
		return math.Cos(a[0])
	})
	tan = RequireDimensionless("argument to tan must be dimensionless", func(a ...float64) float64 {
		return math.Tan(a[0])
	})
	atan2 = UnitsMatch("arguments to atan2 must have the same units", func(a ...Quantity) (float64, error) {
		y, yok := toScalar(a[0])
		x, xok := toScalar(a[1])
		if !yok || !xok {
			return 0, typeMismatch("arguments to atan2 must be scalars", a[0], a[1])
		}
		return math.Atan2(y.value, x.value), nil
	})
)

func Exp(x Quantity) (float64, error) { return exp(x) }
func Sin(x Quantity) (float64, error) { return sin(x) }
func Cos(x Quantity) (float64, error) { return cos(x) }
func Tan(x Quantity) (float64, error) { return tan(x) }

// Atan2 returns the angle of (x, y); both must share a dimension.
func Atan2(y, x Quantity) (float64, error) { return atan2(y, x) }

// Sqrt is Pow(q, 0.5): exponents halve, so sqrt(4 meter**(2)) is 2 meter.
func Sqrt(q Quantity) (Quantity, error) {
	return Pow(q, Raw(0.5))
}
