// Package units provides dimension-checked physical quantities.
//
// Every value carries a [Dimension]: exponents over length, mass and time.
// Arithmetic propagates the dimension and rejects operations whose
// dimensions disagree:
//
//   - [Scalar]: a magnitude tagged with a dimension
//   - [Vector]: three magnitudes sharing one dimension
//   - [Raw]: a bare number, always dimensionless
//   - [Quantity]: the closed set of the three, used by the generic operators
//     [Add], [Sub], [Mul], [Div], [Pow], [Dot], [Cross] and the comparisons
//
// # Example
//
//	a := units.Meter.Scale(3)
//	b := units.Meter.Scale(2)
//	sum, _ := a.Add(b)                // 5 meter
//	_, err := units.Add(a, units.Raw(1)) // errors.Is(err, units.ErrDimensionMismatch)
//
// # Boring zero
//
// A bare Raw(0), or a dimensionless vector whose components are all zero,
// is compatible with any dimension in [CheckUnits], [UnitsMatch], addition,
// subtraction, comparisons and component setters. A zero that already
// carries a dimension is not exempt.
//
// # Dimensionless results
//
// Typed methods ([Scalar.Mul], [Scalar.Div], ...) always return a Scalar.
// The generic operators collapse a dimensionless Scalar result into a Raw
// so that it keeps behaving like an ordinary number.
//
// # Thread Safety
//
// Scalar and Dimension are immutable values. Vector component setters
// mutate through a pointer; callers sharing a *Vector across goroutines
// must serialize access or hand out [Vector.Copy] results instead.
package units
