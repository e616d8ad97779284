package units

// CheckUnits verifies that every non-boring value shares one dimension.
// On mismatch the error reads "msg: <offender> vs <first>".
func CheckUnits(msg string, vals ...Quantity) error {
	var first Quantity
	for _, v := range vals {
		if v == nil || IsBoring(v) {
			continue
		}
		if first == nil {
			first = v
			continue
		}
		if !v.Dimension().Equal(first.Dimension()) {
			return mismatch(msg, v, first)
		}
	}
	return nil
}

// RequireDimensionless wraps fn so that every argument must be a dimensionless
// Raw or Scalar; fn then receives the bare magnitudes.
func RequireDimensionless(msg string, fn func(args ...float64) float64) func(args ...Quantity) (float64, error) {
	return func(args ...Quantity) (float64, error) {
		vals := make([]float64, len(args))
		for i, a := range args {
			if !DimensionOf(a).IsZero() {
				return 0, &UnitError{Kind: ErrDimensionRequired, Msg: msg, Operands: []Quantity{a}}
			}
			s, ok := toScalar(a)
			if !ok {
				return 0, typeMismatch(msg, a)
			}
			vals[i] = s.value
		}
		return fn(vals...), nil
	}
}

// UnitsMatch wraps fn so that all non-boring arguments must share one
// dimension before fn runs.
func UnitsMatch[T any](msg string, fn func(args ...Quantity) (T, error)) func(args ...Quantity) (T, error) {
	return func(args ...Quantity) (T, error) {
		if err := CheckUnits(msg, args...); err != nil {
			var zero T
			return zero, err
		}
		return fn(args...)
	}
}
