package units

// Quantity is the closed set of values the generic operators accept:
// Raw, Scalar and Vector.
type Quantity interface {
	Dimension() Dimension
	String() string
	quantity()
}

// Raw is a bare, dimensionless number.
type Raw float64

func (Raw) Dimension() Dimension { return Dimensionless }

func (r Raw) String() string { return formatFloat(float64(r)) }

func (Raw) quantity() {}

var (
	_ Quantity = Raw(0)
	_ Quantity = Scalar{}
	_ Quantity = Vector{}
)

// DimensionOf returns the dimension of q; nil is dimensionless.
func DimensionOf(q Quantity) Dimension {
	if q == nil {
		return Dimensionless
	}
	return q.Dimension()
}

// IsBoring reports whether q is a bare zero or a dimensionless all-zero
// vector. Boring values are compatible with any dimension.
func IsBoring(q Quantity) bool {
	switch q := q.(type) {
	case Raw:
		return q == 0
	case Vector:
		return q.dim.IsZero() && q.IsZero()
	}
	return false
}

func toScalar(q Quantity) (Scalar, bool) {
	switch q := q.(type) {
	case Raw:
		return Scalar{float64(q), Dimensionless}, true
	case Scalar:
		return q, true
	}
	return Scalar{}, false
}

// collapse turns a dimensionless Scalar into a Raw.
func collapse(s Scalar) Quantity {
	if s.dim.IsZero() {
		return Raw(s.value)
	}
	return s
}

// sharedDimension applies the boring-zero exemption and then requires a
// and b to agree.
func sharedDimension(msg string, a, b Quantity) (Dimension, error) {
	switch {
	case IsBoring(a):
		return b.Dimension(), nil
	case IsBoring(b):
		return a.Dimension(), nil
	case a.Dimension().Equal(b.Dimension()):
		return a.Dimension(), nil
	}
	return Dimension{}, mismatch(msg, a, b)
}
