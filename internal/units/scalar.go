package units

import "math"

// Scalar is a magnitude tagged with a Dimension. It has no mutators.
type Scalar struct {
	value float64
	dim   Dimension
}

func NewScalar(value float64, dim Dimension) Scalar {
	return Scalar{value: value, dim: dim}
}

// Value returns the raw magnitude, discarding the dimension.
func (s Scalar) Value() float64 { return s.value }

func (s Scalar) Dimension() Dimension { return s.dim }

func (Scalar) quantity() {}

func (s Scalar) String() string {
	u := s.dim.String()
	if u == "" {
		return formatFloat(s.value)
	}
	return formatFloat(s.value) + " " + u
}

// Add returns s+o. The dimensions must be equal. A Scalar is never a
// boring zero, so adding a bare 0 goes through the package-level Add.
func (s Scalar) Add(o Scalar) (Scalar, error) {
	if !s.dim.Equal(o.dim) {
		return Scalar{}, &UnitError{
			Kind:     ErrDimensionMismatch,
			Msg:      "you cannot add quantities with differing units",
			Operands: []Quantity{s, o},
			sep:      " + ",
		}
	}
	return Scalar{s.value + o.value, s.dim}, nil
}

// Sub is Add for s-o, with the same strict dimension check.
func (s Scalar) Sub(o Scalar) (Scalar, error) {
	if !s.dim.Equal(o.dim) {
		return Scalar{}, &UnitError{
			Kind:     ErrDimensionMismatch,
			Msg:      "you cannot subtract quantities with differing units",
			Operands: []Quantity{s, o},
			sep:      " - ",
		}
	}
	return Scalar{s.value - o.value, s.dim}, nil
}

func (s Scalar) Mul(o Scalar) Scalar {
	return Scalar{s.value * o.value, s.dim.Mul(o.dim)}
}

// MulVector scales v by s; the result carries both dimensions.
func (s Scalar) MulVector(v Vector) Vector {
	return v.Mul(s)
}

func (s Scalar) Div(o Scalar) Scalar {
	return Scalar{s.value / o.value, s.dim.Div(o.dim)}
}

// Scale multiplies by a bare number.
func (s Scalar) Scale(k float64) Scalar {
	return Scalar{s.value * k, s.dim}
}

// Inverse returns 1/s.
func (s Scalar) Inverse() Scalar {
	return Scalar{1 / s.value, Dimensionless.Div(s.dim)}
}

func (s Scalar) Pow(k float64) Scalar {
	return Scalar{math.Pow(s.value, k), s.dim.Scale(k)}
}

// PowQuantity raises s to k, which must be a dimensionless Raw or Scalar.
func (s Scalar) PowQuantity(k Quantity) (Scalar, error) {
	e, ok := toScalar(k)
	if !ok {
		return Scalar{}, typeMismatch("exponent must be a scalar", k)
	}
	if !e.dim.IsZero() {
		return Scalar{}, &UnitError{
			Kind:     ErrInvalidExponent,
			Msg:      "you cannot take quantity to a power with dimensions",
			Operands: []Quantity{k},
		}
	}
	return s.Pow(e.value), nil
}

func (s Scalar) Sqrt() Scalar {
	return s.Pow(0.5)
}

func (s Scalar) Neg() Scalar {
	return Scalar{-s.value, s.dim}
}

func (s Scalar) Abs() Scalar {
	return Scalar{math.Abs(s.value), s.dim}
}

// Compare returns -1, 0 or +1. Both operands must share a dimension.
// Comparing against a bare 0 goes through Less and friends.
func (s Scalar) Compare(o Scalar) (int, error) {
	if !s.dim.Equal(o.dim) {
		return 0, mismatch("can only compare values with same dimensions", o, s)
	}
	switch {
	case s.value < o.value:
		return -1, nil
	case s.value > o.value:
		return 1, nil
	default:
		return 0, nil
	}
}

func (s Scalar) Eq(o Scalar) (bool, error) {
	c, err := s.Compare(o)
	return err == nil && c == 0, err
}

func (s Scalar) Lt(o Scalar) (bool, error) {
	c, err := s.Compare(o)
	return err == nil && c < 0, err
}

func (s Scalar) Gt(o Scalar) (bool, error) {
	c, err := s.Compare(o)
	return err == nil && c > 0, err
}

func (s Scalar) Le(o Scalar) (bool, error) {
	c, err := s.Compare(o)
	return err == nil && c <= 0, err
}

func (s Scalar) Ge(o Scalar) (bool, error) {
	c, err := s.Compare(o)
	return err == nil && c >= 0, err
}

// ApproxEqual reports whether s and o share a dimension and their
// magnitudes differ by at most tol.
func (s Scalar) ApproxEqual(o Scalar, tol float64) bool {
	return s.dim.Equal(o.dim) && math.Abs(s.value-o.value) <= tol
}
