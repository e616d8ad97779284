// Package expr parses and evaluates quantity expressions such as
// "0.01 second" or "vector(0, 0, 960)*meter".
//
// Evaluation runs every operator through the generic operations of
// [units], so a dimension error surfaces exactly as it would from Go code:
//
//	_, err := expr.Eval("3*meter + 1")
//	errors.Is(err, units.ErrDimensionMismatch) // true
//
// # Grammar
//
// Numbers, the unit names meter (m), kilogram (kg), second (s),
// Newton (N), Joule (J) and the constant pi. Binary + - * / and the
// right-associative power operator **, which binds tighter than unary
// minus. A number or name directly followed by another factor multiplies,
// so "3 meter**(2)" reads as 3*meter**2. Components of a vector are
// selected with .x, .y and .z.
//
// Functions: vector, sqrt, exp, sin, cos, tan, atan2, abs, norm, dot,
// cross and rotate(v, angle, axis).
//
// # Round trips
//
// [Format] renders a quantity in a form [Eval] accepts, which is how
// scenario files and run metadata store quantities.
package expr
