package config

import (
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/physical/internal/expr"
	"github.com/san-kum/physical/internal/units"
)

// Expr is a quantity written in the expression language, such as
// "0.01*second" or "vector(0, 0, 960)*meter". The source text is kept so
// that a saved file reads the way it was written.
type Expr struct {
	Source string
	Value  units.Quantity
}

func ParseExpr(src string) (Expr, error) {
	q, err := expr.Eval(src)
	if err != nil {
		return Expr{}, fmt.Errorf("%q: %w", src, err)
	}
	return Expr{Source: src, Value: q}, nil
}

// MustExpr is like ParseExpr but panics on error.
func MustExpr(src string) Expr {
	return Expr{Source: src, Value: expr.MustEval(src)}
}

// Quantity wraps an already computed value.
func Quantity(q units.Quantity) Expr {
	return Expr{Source: expr.Format(q), Value: q}
}

func (e Expr) IsZero() bool { return e.Source == "" }

func (e Expr) String() string { return e.Source }

// Scalar returns the value as a Scalar; a bare number becomes a
// dimensionless Scalar.
func (e Expr) Scalar() (units.Scalar, error) {
	switch q := e.Value.(type) {
	case units.Scalar:
		return q, nil
	case units.Raw:
		return units.NewScalar(float64(q), units.Dimensionless), nil
	}
	return units.Scalar{}, fmt.Errorf("%q is not a scalar: %w", e.Source, units.ErrTypeMismatch)
}

// Vector returns the value as a Vector. A bare 0 is the zero vector.
func (e Expr) Vector() (units.Vector, error) {
	switch q := e.Value.(type) {
	case units.Vector:
		return q, nil
	case units.Raw:
		if q == 0 {
			return units.Vector{}, nil
		}
	}
	return units.Vector{}, fmt.Errorf("%q is not a vector: %w", e.Source, units.ErrTypeMismatch)
}

func (e *Expr) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.ScalarNode {
		return fmt.Errorf("line %d: quantity must be a string expression", node.Line)
	}
	parsed, err := ParseExpr(node.Value)
	if err != nil {
		return fmt.Errorf("line %d: %w", node.Line, err)
	}
	*e = parsed
	return nil
}

func (e Expr) MarshalYAML() (interface{}, error) {
	return e.Source, nil
}
