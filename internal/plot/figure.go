// Package plot collects unit-checked 2D data and draws it as text.
//
// Every x value on a [Figure] must share one dimension, and likewise
// every y value, whether it comes from a [Series] or an [HLine]:
//
//	fig := plot.NewFigure("energy")
//	e := fig.NewSeries("total")
//	if err := e.Plot(t, energy); err != nil {
//	    return err // e.g. "y coordinates must all have same units: ..."
//	}
//	fig.HLine("zero", units.Joule.Scale(0))
package plot

import (
	"fmt"

	"github.com/san-kum/physical/internal/units"
)

type Figure struct {
	Title  string
	series []*Series
	hlines []*HLine
}

func NewFigure(title string) *Figure {
	return &Figure{Title: title}
}

// NewSeries adds an empty curve to the figure.
func (f *Figure) NewSeries(name string) *Series {
	s := &Series{Name: name, fig: f}
	f.series = append(f.series, s)
	return s
}

// HLine adds a horizontal line at y, which must match the units of the
// figure's y values.
func (f *Figure) HLine(name string, y units.Quantity) (*HLine, error) {
	if err := scalarOnly("y coordinates must be scalars", y); err != nil {
		return nil, err
	}
	if yu, ok := f.YUnits(); ok {
		if err := units.CheckUnits("y coordinates must all have same units", y, yu); err != nil {
			return nil, err
		}
	}
	h := &HLine{Name: name, Y: y}
	f.hlines = append(f.hlines, h)
	return h, nil
}

func (f *Figure) Series() []*Series { return f.series }

func (f *Figure) HLines() []*HLine { return f.hlines }

// XUnits returns the first x value on the figure, which fixes the units
// of every later one.
func (f *Figure) XUnits() (units.Quantity, bool) {
	for _, s := range f.series {
		if len(s.x) > 0 {
			return s.xmax, true
		}
	}
	return nil, false
}

// YUnits is XUnits for the y axis. Horizontal lines count.
func (f *Figure) YUnits() (units.Quantity, bool) {
	for _, s := range f.series {
		if len(s.y) > 0 {
			return s.ymax, true
		}
	}
	for _, h := range f.hlines {
		return h.Y, true
	}
	return nil, false
}

// Bounds returns the extent of all data on the figure. Horizontal lines
// extend the y range only.
func (f *Figure) Bounds() (xmin, xmax, ymin, ymax units.Quantity, err error) {
	widen := func(lo, hi, q units.Quantity) (units.Quantity, units.Quantity, error) {
		if lo == nil {
			return q, q, nil
		}
		return extend(lo, hi, q)
	}

	for _, s := range f.series {
		if len(s.x) == 0 {
			continue
		}
		for _, q := range []units.Quantity{s.xmin, s.xmax} {
			if xmin, xmax, err = widen(xmin, xmax, q); err != nil {
				return
			}
		}
		for _, q := range []units.Quantity{s.ymin, s.ymax} {
			if ymin, ymax, err = widen(ymin, ymax, q); err != nil {
				return
			}
		}
	}
	for _, h := range f.hlines {
		if ymin, ymax, err = widen(ymin, ymax, h.Y); err != nil {
			return
		}
	}
	return
}

// Series is one curve of xy pairs.
type Series struct {
	Name string
	fig  *Figure
	x, y []units.Quantity

	xmin, xmax units.Quantity
	ymin, ymax units.Quantity
}

// Plot appends the point (x, y). The first point of a series must match
// the units already on the figure; later points must match the first.
func (s *Series) Plot(x, y units.Quantity) error {
	if err := scalarOnly("x coordinates must be scalars", x); err != nil {
		return err
	}
	if err := scalarOnly("y coordinates must be scalars", y); err != nil {
		return err
	}

	if len(s.x) > 0 {
		if err := units.CheckUnits("y coordinates must all have same units", y, s.y[0]); err != nil {
			return err
		}
		if err := units.CheckUnits("x coordinates must all have same units", x, s.x[0]); err != nil {
			return err
		}
		xmin, xmax, err := extend(s.xmin, s.xmax, x)
		if err != nil {
			return err
		}
		ymin, ymax, err := extend(s.ymin, s.ymax, y)
		if err != nil {
			return err
		}
		s.xmin, s.xmax = xmin, xmax
		s.ymin, s.ymax = ymin, ymax
	} else {
		if yu, ok := s.fig.YUnits(); ok {
			if err := units.CheckUnits("y coordinates must all have same units", y, yu); err != nil {
				return err
			}
		}
		if xu, ok := s.fig.XUnits(); ok {
			if err := units.CheckUnits("x coordinates must all have same units", x, xu); err != nil {
				return err
			}
		}
		s.xmin, s.xmax = x, x
		s.ymin, s.ymax = y, y
	}

	s.x = append(s.x, x)
	s.y = append(s.y, y)
	return nil
}

func (s *Series) Len() int { return len(s.x) }

// Points returns the bare magnitudes of the series.
func (s *Series) Points() (xs, ys []float64) {
	xs = make([]float64, len(s.x))
	ys = make([]float64, len(s.y))
	for i := range s.x {
		xs[i] = magnitude(s.x[i])
		ys[i] = magnitude(s.y[i])
	}
	return xs, ys
}

// HLine is a horizontal line across the whole figure.
type HLine struct {
	Name string
	Y    units.Quantity
}

// extend widens [lo, hi] to include q using unit-checked comparisons.
func extend(lo, hi, q units.Quantity) (units.Quantity, units.Quantity, error) {
	more, err := units.Greater(q, hi)
	if err != nil {
		return nil, nil, err
	}
	if more {
		hi = q
	}
	less, err := units.Less(q, lo)
	if err != nil {
		return nil, nil, err
	}
	if less {
		lo = q
	}
	return lo, hi, nil
}

func scalarOnly(msg string, q units.Quantity) error {
	switch q.(type) {
	case units.Raw, units.Scalar:
		return nil
	}
	return fmt.Errorf("%s: %w", msg, units.ErrTypeMismatch)
}

func magnitude(q units.Quantity) float64 {
	switch q := q.(type) {
	case units.Raw:
		return float64(q)
	case units.Scalar:
		return q.Value()
	}
	return 0
}
