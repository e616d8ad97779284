package expr

import (
	"github.com/san-kum/physical/internal/units"
)

type function struct {
	arity int
	call  func(args []units.Quantity) (units.Quantity, error)
}

func floatFunc(fn func(units.Quantity) (float64, error)) function {
	return function{arity: 1, call: func(a []units.Quantity) (units.Quantity, error) {
		v, err := fn(a[0])
		if err != nil {
			return nil, err
		}
		return units.Raw(v), nil
	}}
}

func vectorArg(msg string, q units.Quantity) (units.Vector, error) {
	v, ok := q.(units.Vector)
	if !ok {
		return units.Vector{}, &units.UnitError{Kind: units.ErrTypeMismatch, Msg: msg, Operands: []units.Quantity{q}}
	}
	return v, nil
}

var functions map[string]function

func init() {
	functions = map[string]function{
		"vector": {arity: 3, call: func(a []units.Quantity) (units.Quantity, error) {
			return units.NewVector(a[0], a[1], a[2])
		}},
		"sqrt": {arity: 1, call: func(a []units.Quantity) (units.Quantity, error) {
			return units.Sqrt(a[0])
		}},
		"exp": floatFunc(units.Exp),
		"sin": floatFunc(units.Sin),
		"cos": floatFunc(units.Cos),
		"tan": floatFunc(units.Tan),
		"atan2": {arity: 2, call: func(a []units.Quantity) (units.Quantity, error) {
			v, err := units.Atan2(a[0], a[1])
			if err != nil {
				return nil, err
			}
			return units.Raw(v), nil
		}},
		"abs": {arity: 1, call: func(a []units.Quantity) (units.Quantity, error) {
			return units.Abs(a[0])
		}},
		"norm": {arity: 1, call: func(a []units.Quantity) (units.Quantity, error) {
			v, err := vectorArg("can only normalize a vector", a[0])
			if err != nil {
				return nil, err
			}
			return v.Normalized(), nil
		}},
		"dot": {arity: 2, call: func(a []units.Quantity) (units.Quantity, error) {
			return units.Dot(a[0], a[1])
		}},
		"cross": {arity: 2, call: func(a []units.Quantity) (units.Quantity, error) {
			return units.Cross(a[0], a[1])
		}},
		"rotate": {arity: 3, call: func(a []units.Quantity) (units.Quantity, error) {
			v, err := vectorArg("can only rotate a vector", a[0])
			if err != nil {
				return nil, err
			}
			axis, err := vectorArg("rotation axis must be a vector", a[2])
			if err != nil {
				return nil, err
			}
			r, err := units.NewRotation(a[1], axis)
			if err != nil {
				return nil, err
			}
			return r.Rotate(v), nil
		}},
	}
}
