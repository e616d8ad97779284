package units

import (
	"errors"
	"strings"
)

// Error kinds. Every failure returned by this package wraps one of these.
var (
	// ErrDimensionMismatch indicates two operands with different dimensions.
	ErrDimensionMismatch = errors.New("units: dimension mismatch")

	// ErrInvalidExponent indicates a power whose exponent carries a dimension.
	ErrInvalidExponent = errors.New("units: exponent must be dimensionless")

	// ErrTypeMismatch indicates an operand of the wrong shape (vector vs scalar).
	ErrTypeMismatch = errors.New("units: operand type mismatch")

	// ErrDimensionRequired indicates a dimensioned argument to a function
	// that only accepts dimensionless input.
	ErrDimensionRequired = errors.New("units: argument must be dimensionless")

	// ErrZeroAxis indicates a rotation about a zero-length axis.
	ErrZeroAxis = errors.New("units: rotation axis has zero length")
)

// UnitError reports the offending operation together with its operands.
type UnitError struct {
	Kind     error
	Msg      string
	Operands []Quantity
	sep      string
}

func (e *UnitError) Error() string {
	if len(e.Operands) == 0 {
		return e.Msg
	}
	sep := e.sep
	if sep == "" {
		sep = " vs "
	}
	parts := make([]string, len(e.Operands))
	for i, q := range e.Operands {
		parts[i] = describe(q)
	}
	return e.Msg + ": " + strings.Join(parts, sep)
}

func (e *UnitError) Unwrap() error {
	return e.Kind
}

func mismatch(msg string, operands ...Quantity) error {
	return &UnitError{Kind: ErrDimensionMismatch, Msg: msg, Operands: operands}
}

func typeMismatch(msg string, operands ...Quantity) error {
	return &UnitError{Kind: ErrTypeMismatch, Msg: msg, Operands: operands}
}

func describe(q Quantity) string {
	if q == nil {
		return "<nil>"
	}
	return q.String()
}
