package expr

import (
	"fmt"
	"strings"

	"github.com/san-kum/physical/internal/units"
)

// Env binds extra names for evaluation. Builtin units and constants are
// always visible; Env entries shadow them.
type Env map[string]units.Quantity

var builtins = Env{
	"meter":    units.Meter,
	"m":        units.Meter,
	"kilogram": units.Kilogram,
	"kg":       units.Kg,
	"second":   units.Second,
	"s":        units.Second,
	"Newton":   units.Newton,
	"N":        units.Newton,
	"Joule":    units.Joule,
	"J":        units.Joule,
	"pi":       units.Raw(units.Pi),
}

// Eval parses and evaluates src.
func Eval(src string) (units.Quantity, error) {
	return EvalWith(src, nil)
}

// EvalWith evaluates src with extra variables in scope.
func EvalWith(src string, env Env) (units.Quantity, error) {
	n, err := Parse(src)
	if err != nil {
		return nil, err
	}
	return n.eval(env)
}

// MustEval is like Eval but panics on error. Intended for package-level
// constants and tests.
func MustEval(src string) units.Quantity {
	q, err := Eval(src)
	if err != nil {
		panic(fmt.Sprintf("expr: MustEval(%q): %v", src, err))
	}
	return q
}

// ParseDimension reads a unit expression such as "meter*second**(-1)".
// The empty string is dimensionless.
func ParseDimension(src string) (units.Dimension, error) {
	if strings.TrimSpace(src) == "" {
		return units.Dimensionless, nil
	}
	q, err := Eval(src)
	if err != nil {
		return units.Dimension{}, err
	}
	if _, ok := q.(units.Vector); ok {
		return units.Dimension{}, &Error{Msg: "unit expression is a vector", Err: ErrSyntax}
	}
	return q.Dimension(), nil
}

// Format renders q so that Eval(Format(q)) reproduces it.
func Format(q units.Quantity) string {
	switch q := q.(type) {
	case nil:
		return "0"
	case units.Vector:
		s := "vector(" + Format(units.Raw(q.X().Value())) + ", " +
			Format(units.Raw(q.Y().Value())) + ", " +
			Format(units.Raw(q.Z().Value())) + ")"
		if u := q.Dimension().String(); u != "" {
			s += " " + u
		}
		return s
	}
	return q.String()
}

func (n *numberNode) eval(Env) (units.Quantity, error) {
	return units.Raw(n.val), nil
}

func (n *nameNode) eval(env Env) (units.Quantity, error) {
	if q, ok := env[n.name]; ok {
		return q, nil
	}
	if q, ok := builtins[n.name]; ok {
		return q, nil
	}
	if _, ok := functions[n.name]; ok {
		return nil, &Error{Offset: n.pos, Msg: fmt.Sprintf("function %s used without arguments", n.name), Err: ErrSyntax}
	}
	return nil, &Error{Offset: n.pos, Msg: fmt.Sprintf("unknown name %q", n.name), Err: ErrUnknownName}
}

func (n *unaryNode) eval(env Env) (units.Quantity, error) {
	x, err := n.x.eval(env)
	if err != nil {
		return nil, err
	}
	q, err := units.Neg(x)
	if err != nil {
		return nil, evalError(n.pos, err)
	}
	return q, nil
}

func (n *binaryNode) eval(env Env) (units.Quantity, error) {
	l, err := n.l.eval(env)
	if err != nil {
		return nil, err
	}
	r, err := n.r.eval(env)
	if err != nil {
		return nil, err
	}
	var q units.Quantity
	switch n.op {
	case tokPlus:
		q, err = units.Add(l, r)
	case tokMinus:
		q, err = units.Sub(l, r)
	case tokStar:
		q, err = units.Mul(l, r)
	case tokSlash:
		q, err = units.Div(l, r)
	case tokPow:
		q, err = units.Pow(l, r)
	default:
		return nil, syntaxError(n.pos, "unknown operator %s", n.op)
	}
	if err != nil {
		return nil, evalError(n.pos, err)
	}
	return q, nil
}

func (n *componentNode) eval(env Env) (units.Quantity, error) {
	x, err := n.x.eval(env)
	if err != nil {
		return nil, err
	}
	v, ok := x.(units.Vector)
	if !ok {
		return nil, &Error{Offset: n.pos, Msg: fmt.Sprintf("%s has no component %s", x, n.axis), Err: units.ErrTypeMismatch}
	}
	var s units.Scalar
	switch n.axis {
	case "x":
		s = v.X()
	case "y":
		s = v.Y()
	default:
		s = v.Z()
	}
	return scalarResult(s), nil
}

func (n *callNode) eval(env Env) (units.Quantity, error) {
	fn, ok := functions[n.name]
	if !ok {
		return nil, &Error{Offset: n.pos, Msg: fmt.Sprintf("unknown function %q", n.name), Err: ErrUnknownName}
	}
	if len(n.args) != fn.arity {
		return nil, &Error{
			Offset: n.pos,
			Msg:    fmt.Sprintf("%s takes %d arguments, got %d", n.name, fn.arity, len(n.args)),
			Err:    ErrArity,
		}
	}
	args := make([]units.Quantity, len(n.args))
	for i, a := range n.args {
		q, err := a.eval(env)
		if err != nil {
			return nil, err
		}
		args[i] = q
	}
	q, err := fn.call(args)
	if err != nil {
		return nil, evalError(n.pos, err)
	}
	return q, nil
}

// scalarResult turns a dimensionless Scalar into a Raw, as the generic
// operations do.
func scalarResult(s units.Scalar) units.Quantity {
	if s.Dimension().IsZero() {
		return units.Raw(s.Value())
	}
	return s
}
