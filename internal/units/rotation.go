package units

import "github.com/go-gl/mathgl/mgl64"

// Rotation turns vectors by a dimensionless angle about an axis.
type Rotation struct {
	angle float64
	axis  Vector
	q     mgl64.Quat
}

// NewRotation builds a rotation of angle radians about axis. The axis may
// carry any dimension; only its direction is used.
func NewRotation(angle Quantity, axis Vector) (Rotation, error) {
	a, err := dimensionlessAngle(angle)
	if err != nil {
		return Rotation{}, err
	}
	if axis.IsZero() {
		return Rotation{}, ErrZeroAxis
	}
	n := axis.Normalized()
	return Rotation{angle: a, axis: n, q: mgl64.QuatRotate(a, n.v)}, nil
}

var dimensionlessAngle = RequireDimensionless("rotation angle must be dimensionless", func(a ...float64) float64 {
	return a[0]
})

func (r Rotation) Angle() float64 { return r.angle }

// Axis returns the unit rotation axis.
func (r Rotation) Axis() Vector { return r.axis }

// Rotate returns v rotated; the dimension is preserved.
func (r Rotation) Rotate(v Vector) Vector {
	return vectorOf(r.q.Rotate(v.v), v.dim)
}
