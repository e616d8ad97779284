package units

// Add returns a+b. Scalars and Raws add with each other, vectors only
// with vectors. A boring zero adds to anything of its own shape.
func Add(a, b Quantity) (Quantity, error) {
	return addSub(a, b, false)
}

// Sub returns a-b under the same rules as Add.
func Sub(a, b Quantity) (Quantity, error) {
	return addSub(a, b, true)
}

func addSub(a, b Quantity, sub bool) (Quantity, error) {
	av, aVec := a.(Vector)
	bv, bVec := b.(Vector)
	switch {
	case aVec && bVec:
		var (
			r   Vector
			err error
		)
		if sub {
			r, err = av.Sub(bv)
		} else {
			r, err = av.Add(bv)
		}
		if err != nil {
			return nil, err
		}
		return r, nil
	case aVec || bVec:
		if sub {
			return nil, typeMismatch("cannot subtract a vector and a scalar", a, b)
		}
		return nil, typeMismatch("cannot add a vector and a scalar", a, b)
	}
	as, ok := toScalar(a)
	if !ok {
		return nil, typeMismatch("unsupported operand", a)
	}
	bs, ok := toScalar(b)
	if !ok {
		return nil, typeMismatch("unsupported operand", b)
	}
	switch {
	case IsBoring(b):
		return a, nil
	case IsBoring(a) && sub:
		return collapse(bs.Neg()), nil
	case IsBoring(a):
		return b, nil
	}
	var (
		r   Scalar
		err error
	)
	if sub {
		r, err = as.Sub(bs)
	} else {
		r, err = as.Add(bs)
	}
	if err != nil {
		return nil, err
	}
	return collapse(r), nil
}

// Mul returns a*b. At most one operand may be a vector.
func Mul(a, b Quantity) (Quantity, error) {
	av, aVec := a.(Vector)
	bv, bVec := b.(Vector)
	switch {
	case aVec && bVec:
		return nil, typeMismatch("can only multiply vectors with scalars", a, b)
	case aVec:
		s, ok := toScalar(b)
		if !ok {
			return nil, typeMismatch("can only multiply vectors with scalars", b)
		}
		return av.Mul(s), nil
	case bVec:
		s, ok := toScalar(a)
		if !ok {
			return nil, typeMismatch("can only multiply vectors with scalars", a)
		}
		return bv.Mul(s), nil
	}
	as, aok := toScalar(a)
	bs, bok := toScalar(b)
	if !aok || !bok {
		return nil, typeMismatch("unsupported operand", a, b)
	}
	return collapse(as.Mul(bs)), nil
}

// Div returns a/b. The divisor must never be a vector.
func Div(a, b Quantity) (Quantity, error) {
	av, aVec := a.(Vector)
	if _, bVec := b.(Vector); bVec {
		if aVec {
			return nil, typeMismatch("can only divide vectors by scalars", a, b)
		}
		return nil, typeMismatch("cannot divide scalar by vector", a, b)
	}
	bs, ok := toScalar(b)
	if !ok {
		return nil, typeMismatch("unsupported operand", b)
	}
	if aVec {
		return av.Div(bs), nil
	}
	as, ok := toScalar(a)
	if !ok {
		return nil, typeMismatch("unsupported operand", a)
	}
	return collapse(as.Div(bs)), nil
}

// Pow returns a**k. The base must be scalar-shaped and k dimensionless.
func Pow(a, k Quantity) (Quantity, error) {
	as, ok := toScalar(a)
	if !ok {
		return nil, typeMismatch("cannot raise a vector to a power", a)
	}
	r, err := as.PowQuantity(k)
	if err != nil {
		return nil, err
	}
	return collapse(r), nil
}

func Neg(a Quantity) (Quantity, error) {
	if v, ok := a.(Vector); ok {
		return v.Neg(), nil
	}
	s, ok := toScalar(a)
	if !ok {
		return nil, typeMismatch("unsupported operand", a)
	}
	return collapse(s.Neg()), nil
}

// Abs returns |a|; for a vector this is its magnitude.
func Abs(a Quantity) (Quantity, error) {
	if v, ok := a.(Vector); ok {
		return collapse(v.Abs()), nil
	}
	s, ok := toScalar(a)
	if !ok {
		return nil, typeMismatch("unsupported operand", a)
	}
	return collapse(s.Abs()), nil
}

func Dot(a, b Quantity) (Quantity, error) {
	av, ok := a.(Vector)
	if !ok {
		return nil, typeMismatch("cannot take dot product of a non-vector", a)
	}
	bv, ok := b.(Vector)
	if !ok {
		return nil, typeMismatch("cannot take dot product of vector with scalar", b)
	}
	return collapse(av.Dot(bv)), nil
}

func Cross(a, b Quantity) (Quantity, error) {
	av, ok := a.(Vector)
	if !ok {
		return nil, typeMismatch("cannot take cross product of a non-vector", a)
	}
	bv, ok := b.(Vector)
	if !ok {
		return nil, typeMismatch("cannot take cross product of vector with scalar", b)
	}
	return av.Cross(bv), nil
}

// Equal compares two quantities. Vectors are equal when dimension and
// components match; a vector never equals a scalar. Scalars must share a
// dimension (boring zero exempt) or Equal fails.
func Equal(a, b Quantity) (bool, error) {
	av, aVec := a.(Vector)
	bv, bVec := b.(Vector)
	switch {
	case aVec && bVec:
		return av.Equal(bv), nil
	case aVec || bVec:
		return false, nil
	}
	c, err := compare(a, b)
	return err == nil && c == 0, err
}

func Less(a, b Quantity) (bool, error) {
	c, err := compare(a, b)
	return err == nil && c < 0, err
}

func LessEq(a, b Quantity) (bool, error) {
	c, err := compare(a, b)
	return err == nil && c <= 0, err
}

func Greater(a, b Quantity) (bool, error) {
	c, err := compare(a, b)
	return err == nil && c > 0, err
}

func GreaterEq(a, b Quantity) (bool, error) {
	c, err := compare(a, b)
	return err == nil && c >= 0, err
}

func compare(a, b Quantity) (int, error) {
	as, aok := toScalar(a)
	bs, bok := toScalar(b)
	if !aok || !bok {
		return 0, typeMismatch("can only order scalar values", a, b)
	}
	if IsBoring(a) {
		as.dim = bs.dim
	}
	if IsBoring(b) {
		bs.dim = as.dim
	}
	return as.Compare(bs)
}
