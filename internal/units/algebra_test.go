package units_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/physical/internal/units"
)

func must(q units.Quantity, err error) units.Quantity {
	ExpectWithOffset(1, err).NotTo(HaveOccurred())
	return q
}

func equal(a, b units.Quantity) bool {
	ok, err := units.Equal(a, b)
	ExpectWithOffset(1, err).NotTo(HaveOccurred())
	return ok
}

var (
	meter  = units.Meter
	second = units.Second
)

func m(k float64) units.Scalar { return meter.Scale(k) }

func vec(x, y, z float64, unit units.Scalar) units.Vector {
	return units.Vec(x, y, z).Mul(unit)
}

var _ = Describe("Scalar arithmetic", func() {
	It("adds and subtracts quantities with the same units", func() {
		a, b := m(3), m(2)
		Expect(equal(must(units.Add(a, b)), m(5))).To(BeTrue())
		Expect(equal(must(units.Sub(a, b)), m(1))).To(BeTrue())
		Expect(equal(must(units.Add(b, meter.Scale(1))), a)).To(BeTrue())
	})

	It("recovers a from (a+b)-b", func() {
		a, b := m(0.1), m(0.2)
		sum, err := a.Add(b)
		Expect(err).NotTo(HaveOccurred())
		back, err := sum.Sub(b)
		Expect(err).NotTo(HaveOccurred())
		Expect(back.ApproxEqual(a, 1e-12)).To(BeTrue())
	})

	DescribeTable("rejects mixed dimensions",
		func(op func(a, b units.Quantity) (units.Quantity, error), a, b units.Quantity) {
			_, err := op(a, b)
			Expect(err).To(MatchError(units.ErrDimensionMismatch))
		},
		Entry("3 meter + 1", units.Add, m(3), units.Raw(1)),
		Entry("3 meter + (3 meter)**2", units.Add, m(3), m(3).Pow(2)),
		Entry("1 + 3 meter", units.Add, units.Raw(1), m(3)),
		Entry("3 meter - 1", units.Sub, m(3), units.Raw(1)),
		Entry("1 - 3 meter", units.Sub, units.Raw(1), m(3)),
		Entry("3 meter - (3 meter)**2", units.Sub, m(3), m(3).Pow(2)),
	)

	It("names both operands in the diagnostic", func() {
		_, err := units.Add(m(3), units.Raw(1))
		Expect(err).To(MatchError("you cannot add quantities with differing units: 3 meter + 1"))
	})

	It("combines dimensions under multiplication and division", func() {
		a, b := m(2), m(4)
		p := b.Mul(a)
		Expect(p.ApproxEqual(meter.Pow(2).Scale(8), 0)).To(BeTrue())
		Expect(p.Dimension()).To(Equal(meter.Dimension().Mul(meter.Dimension())))

		lhs := must(units.Div(m(2), second))
		rhs := must(units.Mul(must(units.Div(units.Raw(2), second)), meter))
		Expect(equal(lhs, rhs)).To(BeTrue())

		Expect(must(units.Div(b, a))).To(Equal(units.Raw(2)))
		Expect(must(units.Div(a, b))).To(Equal(units.Raw(0.5)))
	})

	It("multiplies by bare numbers on either side", func() {
		a := m(2)
		Expect(equal(must(units.Mul(a, units.Raw(5))), m(10))).To(BeTrue())
		Expect(equal(must(units.Mul(units.Raw(5), a)), m(10))).To(BeTrue())
	})

	It("scales dimensions under powers", func() {
		a := m(3)
		Expect(equal(must(units.Mul(a, a)), a.Pow(2))).To(BeTrue())
		Expect(equal(a.Mul(a).Mul(a), a.Pow(3))).To(BeTrue())
		Expect(must(units.Pow(a, units.Raw(0)))).To(Equal(units.Raw(1)))
		Expect(a.Pow(1.5).Dimension()).To(Equal(units.Dimension{Length: 1.5}))
	})

	It("rejects dimensioned exponents", func() {
		_, err := units.Pow(m(3), m(2))
		Expect(err).To(MatchError(units.ErrInvalidExponent))
		_, err = units.Pow(units.Raw(1), m(3))
		Expect(err).To(MatchError(units.ErrInvalidExponent))
	})

	It("takes square roots", func() {
		b := m(4)
		root := must(units.Sqrt(b))
		Expect(equal(must(units.Pow(root, units.Raw(2))), b)).To(BeTrue())
		Expect(equal(must(units.Sqrt(m(4).Mul(meter))), m(2))).To(BeTrue())
		Expect(must(units.Sqrt(second.Pow(2).Scale(4))).String()).To(Equal("2 second"))

		_, err := units.Sqrt(units.Vec(1, 2, 3))
		Expect(err).To(MatchError(units.ErrTypeMismatch))
	})

	It("compares only like dimensions", func() {
		less, err := units.Less(m(1), m(2))
		Expect(err).NotTo(HaveOccurred())
		Expect(less).To(BeTrue())

		ge, err := m(2).Ge(m(2))
		Expect(err).NotTo(HaveOccurred())
		Expect(ge).To(BeTrue())

		_, err = units.Greater(m(1), second)
		Expect(err).To(MatchError(units.ErrDimensionMismatch))
		_, err = units.Equal(m(1), units.Raw(1))
		Expect(err).To(MatchError(units.ErrDimensionMismatch))
	})

	It("keeps negation and absolute value dimensioned", func() {
		Expect(m(-3).Abs().String()).To(Equal("3 meter"))
		Expect(must(units.Neg(m(3)))).To(Equal(units.Quantity(m(-3))))
	})
})

var _ = Describe("Boring zero", func() {
	It("adds and compares a bare zero against anything", func() {
		Expect(equal(must(units.Add(m(3), units.Raw(0))), m(3))).To(BeTrue())
		Expect(equal(must(units.Sub(units.Raw(0), m(3))), m(-3))).To(BeTrue())

		less, err := units.Less(units.Raw(0), m(3))
		Expect(err).NotTo(HaveOccurred())
		Expect(less).To(BeTrue())

		pos, err := units.Greater(second.Scale(-1), units.Raw(0))
		Expect(err).NotTo(HaveOccurred())
		Expect(pos).To(BeFalse())
	})

	It("exempts the dimensionless zero vector", func() {
		v := must(units.Add(units.Vec(0, 0, 0), vec(1, 2, 3, meter)))
		Expect(v.(units.Vector).Equal(vec(1, 2, 3, meter))).To(BeTrue())
		Expect(units.CheckUnits("position", units.Vec(0, 0, 0), meter)).To(Succeed())
	})

	It("does not exempt a zero that already carries a dimension", func() {
		Expect(units.IsBoring(units.NewScalar(0, units.DimLength))).To(BeFalse())
		Expect(units.IsBoring(vec(0, 0, 0, second))).To(BeFalse())

		_, err := units.Add(vec(0, 0, 0, second), vec(1, 2, 3, meter))
		Expect(err).To(MatchError(units.ErrDimensionMismatch))
		Expect(units.CheckUnits("position", vec(0, 0, 0, second), meter)).
			To(MatchError(units.ErrDimensionMismatch))
	})

	It("does not exempt a dimensionless zero scalar", func() {
		zero := units.NewScalar(0, units.Dimensionless)
		Expect(units.IsBoring(zero)).To(BeFalse())
		Expect(units.CheckUnits("x", zero, meter)).To(MatchError(units.ErrDimensionMismatch))
	})

	It("is not exempt in the typed scalar methods", func() {
		zero := units.NewScalar(0, units.Dimensionless)
		_, err := m(3).Add(zero)
		Expect(err).To(MatchError(units.ErrDimensionMismatch))
		_, err = m(3).Sub(zero)
		Expect(err).To(MatchError(units.ErrDimensionMismatch))
		_, err = m(3).Compare(zero)
		Expect(err).To(MatchError(units.ErrDimensionMismatch))

		Expect(equal(must(units.Add(m(3), units.Raw(0))), m(3))).To(BeTrue())
	})
})

var _ = Describe("Vector arithmetic", func() {
	a := vec(0, 1, 2, meter)
	b := vec(2, 1, 0, meter)

	It("adds and subtracts component-wise", func() {
		c := vec(2, 2, 2, meter)
		Expect(must(units.Add(a, b)).(units.Vector).Equal(c)).To(BeTrue())
		Expect(must(units.Sub(c, b)).(units.Vector).Equal(a)).To(BeTrue())
	})

	DescribeTable("rejects scalar operands",
		func(op func(a, b units.Quantity) (units.Quantity, error), x, y units.Quantity) {
			_, err := op(x, y)
			Expect(err).To(MatchError(units.ErrTypeMismatch))
		},
		Entry("vector + 3 meter", units.Add, a, m(3)),
		Entry("vector(2,2,2) meter - 3 meter", units.Sub, vec(2, 2, 2, meter), m(3)),
		Entry("vector(2,2,2) - 3", units.Sub, units.Vec(2, 2, 2), units.Raw(3)),
		Entry("3 meter - vector(2,2,2) meter", units.Sub, m(3), vec(2, 2, 2, meter)),
		Entry("3 - vector(2,2,2)", units.Sub, units.Raw(3), units.Vec(2, 2, 2)),
		Entry("v*v", units.Mul, vec(1, 2, 3, second), vec(1, 2, 3, second)),
		Entry("2 meter / v", units.Div, m(2), vec(1, 2, 3, second)),
		Entry("v / v", units.Div, vec(1, 2, 3, second), vec(1, 2, 3, second)),
		Entry("5 / vector(2,2,2)", units.Div, units.Raw(5), units.Vec(2, 2, 2)),
		Entry("vector**2", units.Pow, units.Vec(1, 2, 3), units.Raw(2)),
		Entry("dot with a number", units.Dot, a, units.Raw(5)),
		Entry("dot with a scalar", units.Dot, a, m(5)),
		Entry("cross with a number", units.Cross, a, units.Raw(5)),
		Entry("cross with a scalar", units.Cross, a, m(5)),
	)

	It("rejects vectors of differing dimensions", func() {
		_, err := a.Add(vec(1, 1, 1, second))
		Expect(err).To(MatchError(units.ErrDimensionMismatch))
	})

	It("multiplies by scalars from either side", func() {
		v := vec(1, 2, 3, second)
		vv := second.MulVector(units.Vec(1, 2, 3))
		Expect(v.Equal(vv)).To(BeTrue())

		want := units.Vec(2, 4, 6).Mul(second).Mul(meter)
		Expect(must(units.Mul(v, m(2))).(units.Vector).Equal(want)).To(BeTrue())
		Expect(must(units.Mul(m(2), v)).(units.Vector).Equal(want)).To(BeTrue())
		Expect(must(units.Mul(v, units.Raw(5))).(units.Vector).Equal(vec(5, 10, 15, second))).To(BeTrue())
		Expect(must(units.Mul(units.Raw(5), v)).(units.Vector).Equal(vec(5, 10, 15, second))).To(BeTrue())
	})

	It("divides by scalars", func() {
		v := vec(1, 2, 3, second)
		got := must(units.Div(v, m(2))).(units.Vector)
		Expect(got.Equal(units.Vec(0.5, 1, 1.5).Mul(second).Div(meter))).To(BeTrue())

		Expect(units.Vec(1, 2, 4).DivBy(2).Equal(units.Vec(0.5, 1, 2))).To(BeTrue())

		unitless := must(units.Div(vec(1, 2, 4, meter), m(2))).(units.Vector)
		Expect(unitless.Equal(units.Vec(0.5, 1, 2))).To(BeTrue())
		Expect(unitless.Dimension().IsZero()).To(BeTrue())

		speed := must(units.Div(vec(1, 2, 4, meter), second.Scale(2))).(units.Vector)
		Expect(speed.Equal(vec(0.5, 1, 2, meter).Div(second))).To(BeTrue())
	})

	It("takes dot and cross products", func() {
		Expect(equal(must(units.Dot(a, b)), meter.Pow(2))).To(BeTrue())
		cross := must(units.Cross(a, b)).(units.Vector)
		Expect(cross.Equal(units.Vec(-2, 4, -2).Mul(meter.Pow(2)))).To(BeTrue())
	})

	It("measures and normalizes", func() {
		v := vec(3, 4, 0, meter)
		Expect(v.Abs().ApproxEqual(m(5), 1e-12)).To(BeTrue())
		n := v.Normalized()
		Expect(n.Dimension().IsZero()).To(BeTrue())
		Expect(n.ApproxEqual(units.Vec(0.6, 0.8, 0), 1e-12)).To(BeTrue())
		Expect(vec(0, 0, 0, meter).Normalized().Equal(units.Vec(0, 0, 0))).To(BeTrue())
	})

	It("compares approximately with an absolute tolerance", func() {
		rounded := vec(2.220446049250313e-16, 1, 0, second)
		Expect(rounded.ApproxEqual(vec(0, 1, 0, second), 1e-12)).To(BeTrue())
		Expect(rounded.ApproxEqual(vec(0, 1+1e-9, 0, second), 1e-12)).To(BeFalse())
		Expect(rounded.ApproxEqual(vec(0, 1, 0, meter), 1e-12)).To(BeFalse())
	})

	It("exposes components as scalars", func() {
		v := vec(1, 2, 3, second)
		Expect(equal(v.X(), second)).To(BeTrue())
		zero := vec(0, 0, 0, meter)
		_, err := units.Add(zero.X(), units.Raw(3))
		Expect(err).To(MatchError(units.ErrDimensionMismatch))
	})

	It("renders components and units", func() {
		Expect(vec(1, 2.5, -3, meter).String()).To(Equal("<1,2.5,-3> meter"))
		Expect(units.Vec(1, 0, 0).String()).To(Equal("<1,0,0>"))
	})
})

var _ = Describe("Vector component setters", func() {
	DescribeTable("accept matching and reject mismatched dimensions",
		func(get func(units.Vector) units.Scalar, set func(*units.Vector, units.Quantity) error) {
			v := vec(2, 2, 2, meter)
			Expect(equal(get(v), m(2))).To(BeTrue())
			Expect(set(&v, m(3))).To(Succeed())
			Expect(equal(get(v), m(3))).To(BeTrue())
			Expect(set(&v, units.Raw(3))).To(MatchError(units.ErrDimensionMismatch))
			Expect(set(&v, units.Raw(0))).To(Succeed())
			Expect(get(v).Value()).To(BeZero())
		},
		Entry("x", units.Vector.X, (*units.Vector).SetX),
		Entry("y", units.Vector.Y, (*units.Vector).SetY),
		Entry("z", units.Vector.Z, (*units.Vector).SetZ),
	)

	It("names the offending component", func() {
		v := vec(2, 2, 2, meter)
		Expect(v.SetY(second)).To(MatchError(ContainSubstring("y component must have dimensions of vector")))
	})

	It("keeps copies independent", func() {
		v := vec(1, 1, 1, meter)
		c := v.Copy()
		Expect(v.SetX(m(9))).To(Succeed())
		Expect(c.X().Value()).To(Equal(1.0))

		alias := &v
		Expect(alias.SetZ(m(7))).To(Succeed())
		Expect(v.Z().Value()).To(Equal(7.0))
	})
})

var _ = Describe("Vector construction", func() {
	It("derives the dimension from its components", func() {
		v, err := units.NewVector(m(1), m(2), units.Raw(0))
		Expect(err).NotTo(HaveOccurred())
		Expect(v.Dimension()).To(Equal(units.DimLength))
		Expect(v.Equal(vec(1, 2, 0, meter))).To(BeTrue())
	})

	It("rejects components with differing dimensions", func() {
		_, err := units.NewVector(m(1), second, units.Raw(0))
		Expect(err).To(MatchError(units.ErrDimensionMismatch))
		_, err = units.NewVector(m(1), units.Raw(2), m(3))
		Expect(err).To(MatchError(units.ErrDimensionMismatch))
	})

	It("rejects vector components", func() {
		_, err := units.NewVector(units.Vec(1, 2, 3), units.Raw(0), units.Raw(0))
		Expect(err).To(MatchError(units.ErrTypeMismatch))
	})
})

var _ = Describe("End to end", func() {
	It("runs the meter scenario", func() {
		meter := units.NewScalar(1, units.Dimension{Length: 1})
		a := meter.Scale(3)
		b := meter.Scale(2)
		Expect(equal(must(units.Sub(a, b)), meter)).To(BeTrue())
		Expect(equal(must(units.Add(a, b)), meter.Scale(5))).To(BeTrue())
		_, err := units.Add(a, units.Raw(1))
		Expect(err).To(MatchError(units.ErrDimensionMismatch))
	})
})
