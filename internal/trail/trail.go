// Package trail keeps the recent path of a moving body as a list of
// dashes, the way a trail is drawn behind an object in a visualization.
package trail

import (
	"fmt"

	"github.com/san-kum/physical/internal/sim"
	"github.com/san-kum/physical/internal/units"
)

// DefaultDashTime is the minimum time between two recorded points.
var DefaultDashTime = units.Second.Scale(0.2)

// Point is a position recorded at time T.
type Point struct {
	T   units.Scalar
	Pos units.Vector
}

// Dash is one visible segment of a trail.
type Dash struct {
	From, To Point
}

type Trail struct {
	dashTime units.Scalar
	duration units.Scalar
	fading   bool
	points   []Point
}

// New returns a trail that keeps every point.
func New(dashTime units.Scalar) (*Trail, error) {
	if err := units.CheckUnits("dash_time must be a time", dashTime, units.Second); err != nil {
		return nil, err
	}
	return &Trail{dashTime: dashTime}, nil
}

// NewFading returns a trail that forgets points older than duration.
func NewFading(dashTime, duration units.Scalar) (*Trail, error) {
	tr, err := New(dashTime)
	if err != nil {
		return nil, err
	}
	if err := units.CheckUnits("duration must be a time", duration, units.Second); err != nil {
		return nil, err
	}
	tr.duration = duration
	tr.fading = true
	return tr, nil
}

// Record offers the position at time t. The point is kept when the trail
// is empty, or when at least one dash time has passed since the latest
// point and the body has moved. pos is copied.
func (tr *Trail) Record(t units.Scalar, pos units.Vector) error {
	if err := units.CheckUnits("trail time must be a time", t, units.Second); err != nil {
		return err
	}

	if tr.fading {
		tooOld, err := t.Sub(tr.duration)
		if err != nil {
			return err
		}
		for len(tr.points) > 1 {
			old, err := tr.points[0].T.Lt(tooOld)
			if err != nil {
				return err
			}
			if !old {
				break
			}
			// drop a whole dash
			tr.points = tr.points[2:]
		}
	}

	if len(tr.points) == 0 {
		tr.points = append(tr.points, Point{T: t, Pos: pos.Copy()})
		return nil
	}

	last := tr.points[len(tr.points)-1]
	next, err := last.T.Add(tr.dashTime)
	if err != nil {
		return err
	}
	due, err := t.Gt(next)
	if err != nil {
		return err
	}
	if due && !pos.Equal(last.Pos) {
		tr.points = append(tr.points, Point{T: t, Pos: pos.Copy()})
	}
	return nil
}

// Points returns the recorded points, oldest first.
func (tr *Trail) Points() []Point {
	out := make([]Point, len(tr.points))
	copy(out, tr.points)
	return out
}

// Dashes pairs consecutive points into segments: the first with the
// second, the third with the fourth, and so on. A trailing odd point is
// not drawn.
func (tr *Trail) Dashes() []Dash {
	dashes := make([]Dash, 0, len(tr.points)/2)
	for i := 1; i < len(tr.points); i += 2 {
		dashes = append(dashes, Dash{From: tr.points[i-1], To: tr.points[i]})
	}
	return dashes
}

func (tr *Trail) Len() int { return len(tr.points) }

func (tr *Trail) Reset() { tr.points = nil }

// Follower records one body of a running simulation into a trail.
type Follower struct {
	Trail *Trail
	Body  string
}

func (f *Follower) OnStep(bodies sim.State, t units.Scalar) error {
	i := bodies.Index(f.Body)
	if i < 0 {
		return fmt.Errorf("trail: no body named %q", f.Body)
	}
	return f.Trail.Record(t, bodies[i].Pos)
}

var _ sim.Observer = (*Follower)(nil)
