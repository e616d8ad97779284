package trail

import (
	"context"
	"strings"
	"testing"

	"github.com/san-kum/physical/internal/integrators"
	"github.com/san-kum/physical/internal/sim"
	"github.com/san-kum/physical/internal/units"
)

func at(s float64) units.Scalar { return units.Second.Scale(s) }

func pos(x float64) units.Vector { return units.Vec(x, 0, 0).Mul(units.Meter) }

func TestNewRejectsUnits(t *testing.T) {
	_, err := New(units.Meter)
	if err == nil || !strings.Contains(err.Error(), "dash_time must be a time") {
		t.Errorf("New(meter) err = %v", err)
	}
	_, err = NewFading(at(0.2), units.Kg)
	if err == nil || !strings.Contains(err.Error(), "duration must be a time") {
		t.Errorf("NewFading(kg) err = %v", err)
	}
}

func TestRecordSpacing(t *testing.T) {
	tr, err := New(at(0.5))
	if err != nil {
		t.Fatal(err)
	}

	steps := []struct {
		t    float64
		x    float64
		kept int
	}{
		{0, 0, 1},
		{0.3, 1, 1}, // too soon
		{0.6, 2, 2},
		{1.0, 3, 2}, // too soon after 0.6
		{1.2, 2, 2}, // has not moved
		{1.3, 4, 3},
	}

	for _, s := range steps {
		if err := tr.Record(at(s.t), pos(s.x)); err != nil {
			t.Fatal(err)
		}
		if tr.Len() != s.kept {
			t.Errorf("t=%v: %d points, want %d", s.t, tr.Len(), s.kept)
		}
	}
}

func TestRecordCopiesPosition(t *testing.T) {
	tr, _ := New(at(0.1))
	p := pos(1)
	if err := tr.Record(at(0), p); err != nil {
		t.Fatal(err)
	}
	if err := p.SetX(units.Meter.Scale(9)); err != nil {
		t.Fatal(err)
	}
	if got := tr.Points()[0].Pos; !got.Equal(pos(1)) {
		t.Errorf("recorded point changed to %v", got)
	}
}

func TestFadingDropsOldDashes(t *testing.T) {
	tr, err := NewFading(at(0.5), at(2))
	if err != nil {
		t.Fatal(err)
	}
	for i := 0; i <= 10; i++ {
		if err := tr.Record(at(float64(i)), pos(float64(i))); err != nil {
			t.Fatal(err)
		}
	}
	first := tr.Points()[0].T.Value()
	if first < 10-2-1 {
		t.Errorf("oldest point at %v s should be within the duration", first)
	}
	if tr.Len() > 4 {
		t.Errorf("kept %d points", tr.Len())
	}
}

func TestRecordRejectsBadTime(t *testing.T) {
	tr, _ := New(at(0.1))
	if err := tr.Record(units.Meter, pos(0)); err == nil {
		t.Error("expected error for a time in meters")
	}
}

func TestDashes(t *testing.T) {
	tr, _ := New(at(0.1))
	for i := 0; i < 5; i++ {
		if err := tr.Record(at(float64(i)), pos(float64(i))); err != nil {
			t.Fatal(err)
		}
	}
	dashes := tr.Dashes()
	if len(dashes) != 2 {
		t.Fatalf("got %d dashes, want 2", len(dashes))
	}
	if !dashes[1].From.Pos.Equal(pos(2)) || !dashes[1].To.Pos.Equal(pos(3)) {
		t.Errorf("second dash = %v -> %v", dashes[1].From.Pos, dashes[1].To.Pos)
	}

	tr.Reset()
	if tr.Len() != 0 {
		t.Error("expected empty trail after reset")
	}
}

type drift struct{}

func (drift) Forces(bodies sim.State, _ units.Scalar) ([]units.Vector, error) {
	f := make([]units.Vector, len(bodies))
	for i := range f {
		f[i] = units.Vec(0, 0, 0).Mul(units.Newton)
	}
	return f, nil
}

func TestFollower(t *testing.T) {
	tr, _ := New(at(0.25))
	s := sim.New(drift{}, integrators.NewEuler())
	s.AddObserver(&Follower{Trail: tr, Body: "probe"})

	bodies := sim.State{{
		Name: "probe",
		Mass: units.Kg,
		Pos:  pos(0),
		Vel:  units.Vec(1, 0, 0).Mul(units.Meter.Div(units.Second)),
	}}
	_, err := s.Run(context.Background(), bodies, sim.Config{Dt: at(0.1), Duration: at(2)})
	if err != nil {
		t.Fatal(err)
	}
	if tr.Len() < 5 {
		t.Errorf("follower recorded %d points", tr.Len())
	}

	lost := sim.New(drift{}, integrators.NewEuler())
	lost.AddObserver(&Follower{Trail: tr, Body: "missing"})
	if _, err := lost.Run(context.Background(), bodies, sim.Config{Dt: at(0.1), Duration: at(1)}); err == nil {
		t.Error("expected error following a missing body")
	}
}
