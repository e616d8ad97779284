package units

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Vector is three magnitudes sharing one Dimension.
//
// Vectors are values: assignment copies them. SetX, SetY and SetZ mutate
// through a pointer, so two holders of the same *Vector observe each
// other's writes. Store Copy() results when that matters.
type Vector struct {
	v   mgl64.Vec3
	dim Dimension
}

// vectorOf trusts its caller: no dimension validation happens here.
func vectorOf(v mgl64.Vec3, dim Dimension) Vector {
	return Vector{v: v, dim: dim}
}

// Vec builds a dimensionless vector.
func Vec(x, y, z float64) Vector {
	return vectorOf(mgl64.Vec3{x, y, z}, Dimensionless)
}

func NewVectorDim(x, y, z float64, dim Dimension) Vector {
	return vectorOf(mgl64.Vec3{x, y, z}, dim)
}

// FromVec3 tags a raw mgl64 vector with a dimension.
func FromVec3(v mgl64.Vec3, dim Dimension) Vector {
	return vectorOf(v, dim)
}

// NewVector builds a vector from Raw or Scalar components. The components
// must share a dimension (a bare zero matches anything); the vector takes
// the first non-zero dimension it finds.
func NewVector(x, y, z Quantity) (Vector, error) {
	comps := [3]Quantity{x, y, z}
	var vals mgl64.Vec3
	for i, c := range comps {
		s, ok := toScalar(c)
		if !ok {
			return Vector{}, typeMismatch("vector components must be scalars", c)
		}
		vals[i] = s.value
	}
	if err := CheckUnits("vector components must have same dimensions", x, y, z); err != nil {
		return Vector{}, err
	}
	dim := Dimensionless
	for _, c := range comps {
		if d := c.Dimension(); !d.IsZero() {
			dim = d
			break
		}
	}
	return vectorOf(vals, dim), nil
}

func (v Vector) Dimension() Dimension { return v.dim }

func (Vector) quantity() {}

func (v Vector) X() Scalar { return Scalar{v.v[0], v.dim} }
func (v Vector) Y() Scalar { return Scalar{v.v[1], v.dim} }
func (v Vector) Z() Scalar { return Scalar{v.v[2], v.dim} }

// Vec3 returns the raw components for non unit-aware consumers.
func (v Vector) Vec3() mgl64.Vec3 { return v.v }

func (v *Vector) SetX(q Quantity) error { return v.set(0, "x", q) }
func (v *Vector) SetY(q Quantity) error { return v.set(1, "y", q) }
func (v *Vector) SetZ(q Quantity) error { return v.set(2, "z", q) }

func (v *Vector) set(i int, name string, q Quantity) error {
	s, ok := toScalar(q)
	if !ok {
		return typeMismatch(name+" component must be a scalar", q)
	}
	if !IsBoring(q) && !s.dim.Equal(v.dim) {
		return mismatch(name+" component must have dimensions of vector", *v, q)
	}
	v.v[i] = s.value
	return nil
}

func (v Vector) Add(o Vector) (Vector, error) {
	dim, err := sharedDimension("dimensions do not match in vector addition", v, o)
	if err != nil {
		return Vector{}, err
	}
	return vectorOf(v.v.Add(o.v), dim), nil
}

func (v Vector) Sub(o Vector) (Vector, error) {
	dim, err := sharedDimension("dimensions do not match in vector subtraction", v, o)
	if err != nil {
		return Vector{}, err
	}
	return vectorOf(v.v.Sub(o.v), dim), nil
}

func (v Vector) Mul(s Scalar) Vector {
	return vectorOf(v.v.Mul(s.value), v.dim.Mul(s.dim))
}

func (v Vector) Scale(k float64) Vector {
	return vectorOf(v.v.Mul(k), v.dim)
}

func (v Vector) Div(s Scalar) Vector {
	return vectorOf(mgl64.Vec3{v.v[0] / s.value, v.v[1] / s.value, v.v[2] / s.value}, v.dim.Div(s.dim))
}

func (v Vector) DivBy(k float64) Vector {
	return vectorOf(mgl64.Vec3{v.v[0] / k, v.v[1] / k, v.v[2] / k}, v.dim)
}

func (v Vector) Dot(o Vector) Scalar {
	return Scalar{v.v.Dot(o.v), v.dim.Mul(o.dim)}
}

func (v Vector) Cross(o Vector) Vector {
	return vectorOf(v.v.Cross(o.v), v.dim.Mul(o.dim))
}

// Abs returns the magnitude with the vector's own dimension.
func (v Vector) Abs() Scalar {
	return Scalar{v.v.Len(), v.dim}
}

// Normalized returns the dimensionless unit vector v/|v|. The zero vector
// normalizes to the dimensionless zero vector.
func (v Vector) Normalized() Vector {
	if v.IsZero() {
		return Vector{}
	}
	return v.Div(v.Abs())
}

func (v Vector) Neg() Vector {
	return vectorOf(v.v.Mul(-1), v.dim)
}

// IsZero reports whether all three components are zero, whatever the dimension.
func (v Vector) IsZero() bool {
	return v.v == mgl64.Vec3{}
}

func (v Vector) Equal(o Vector) bool {
	return v.dim.Equal(o.dim) && v.v == o.v
}

// ApproxEqual reports whether v and o share a dimension and every pair of
// components differs by at most tol.
func (v Vector) ApproxEqual(o Vector, tol float64) bool {
	if !v.dim.Equal(o.dim) {
		return false
	}
	for i := range v.v {
		if math.Abs(v.v[i]-o.v[i]) > tol {
			return false
		}
	}
	return true
}

// Copy returns an independent vector with the same components and dimension.
func (v Vector) Copy() Vector {
	return vectorOf(v.v, v.dim)
}

func (v Vector) String() string {
	s := "<" + formatFloat(v.v[0]) + "," + formatFloat(v.v[1]) + "," + formatFloat(v.v[2]) + ">"
	if u := v.dim.String(); u != "" {
		s += " " + u
	}
	return s
}
