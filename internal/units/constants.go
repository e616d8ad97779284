package units

import "math"

const Pi = math.Pi

// Base and derived units of the MKS system.
var (
	Meter    = NewScalar(1, DimLength)
	Kilogram = NewScalar(1, DimMass)
	Kg       = Kilogram
	Second   = NewScalar(1, DimTime)

	Newton = Kilogram.Mul(Meter).Div(Second.Pow(2))
	Joule  = Newton.Mul(Meter)
)
