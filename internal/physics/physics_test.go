package physics

import (
	"context"
	"errors"
	"math"
	"strings"
	"testing"

	"github.com/san-kum/physical/internal/integrators"
	"github.com/san-kum/physical/internal/sim"
	"github.com/san-kum/physical/internal/units"
)

func TestNewFallingRejectsUnits(t *testing.T) {
	tests := []struct {
		name     string
		gravity  units.Vector
		terminal units.Scalar
		want     string
	}{
		{"gravity as length", units.Vec(0, 0, -9.8).Mul(units.Meter), Mph, "gravity must have dimensions of acceleration"},
		{"terminal as time", EarthGravity, units.Second, "terminal speed must have dimensions of distance/time"},
		{"negative terminal", EarthGravity, Mph.Neg(), "terminal speed must be positive"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewFalling(tt.gravity, tt.terminal)
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("error %q does not mention %q", err, tt.want)
			}
		})
	}
}

func TestFallingReachesTerminalSpeed(t *testing.T) {
	terminal := Mph.Scale(120)
	f, err := NewFalling(EarthGravity, terminal)
	if err != nil {
		t.Fatal(err)
	}
	f.Height = units.Meter.Scale(1e6)

	s := sim.New(f, integrators.NewSymplectic())
	res, err := s.Run(context.Background(), f.InitialBodies(), sim.Config{
		Dt:       units.Second.Scale(0.01),
		Duration: units.Second.Scale(60),
	})
	if err != nil {
		t.Fatal(err)
	}

	final := res.States[len(res.States)-1]
	for _, b := range final {
		got := b.Vel.Abs().Value()
		if math.Abs(got-terminal.Value()) > 1e-3*terminal.Value() {
			t.Errorf("%s: speed = %v, want %v", b.Name, got, terminal.Value())
		}
	}
}

func TestFallingPerBodyTerminal(t *testing.T) {
	f, err := NewFalling(EarthGravity, Mph.Scale(120))
	if err != nil {
		t.Fatal(err)
	}
	if err := f.SetTerminal("wizard", units.Second); err == nil {
		t.Fatal("expected unit error for terminal speed in seconds")
	}
	if err := f.SetTerminal("wizard", Mph.Scale(150)); err != nil {
		t.Fatal(err)
	}

	v := units.Vec(0, 0, -50).Mul(speed)
	bodies := sim.State{
		{Name: "wizard", Mass: units.Kg, Pos: units.Vec(0, 0, 100).Mul(units.Meter), Vel: v},
		{Name: "victim", Mass: units.Kg, Pos: units.Vec(0, 0, 100).Mul(units.Meter), Vel: v},
	}
	forces, err := f.Forces(bodies, units.Second.Scale(0))
	if err != nil {
		t.Fatal(err)
	}
	// The wizard has less drag so a larger net downward pull.
	if forces[0].Z().Value() >= forces[1].Z().Value() {
		t.Errorf("wizard force %v should be below victim force %v", forces[0], forces[1])
	}
	if err := units.CheckUnits("force", forces[0], units.Newton); err != nil {
		t.Error(err)
	}
}

func TestFallingHalts(t *testing.T) {
	f, err := NewFalling(EarthGravity, Mph.Scale(120))
	if err != nil {
		t.Fatal(err)
	}
	f.Height = units.Meter.Scale(20)

	s := sim.New(f, integrators.NewEuler())
	res, err := s.Run(context.Background(), f.InitialBodies(), sim.Config{
		Dt:       units.Second.Scale(0.01),
		Duration: units.Second.Scale(600),
	})
	if err != nil {
		t.Fatal(err)
	}
	if !res.Halted {
		t.Error("expected run to halt at the ground")
	}
	if res.StepsTaken >= 60000 {
		t.Errorf("steps = %d, expected an early stop", res.StepsTaken)
	}
}

func TestCubeLayout(t *testing.T) {
	tests := []struct {
		n       int
		bodies  int
		springs int
	}{
		{1, 1, 0},
		{2, 8, 12},
		{3, 27, 54},
	}

	for _, tt := range tests {
		l, err := NewCube(tt.n, stiffness.Scale(10), units.Meter, units.Kg.Scale(0.1))
		if err != nil {
			t.Fatal(err)
		}
		if got := len(l.InitialBodies()); got != tt.bodies {
			t.Errorf("n=%d: bodies = %d, want %d", tt.n, got, tt.bodies)
		}
		if got := len(l.Springs); got != tt.springs {
			t.Errorf("n=%d: springs = %d, want %d", tt.n, got, tt.springs)
		}
	}
}

func TestNewCubeRejectsUnits(t *testing.T) {
	_, err := NewCube(2, units.Newton.Scale(10), units.Meter, units.Kg)
	if !errors.Is(err, units.ErrDimensionMismatch) {
		t.Fatalf("err = %v, want dimension mismatch", err)
	}
	if !strings.Contains(err.Error(), "spring constant must have dimensions of force/distance") {
		t.Errorf("unexpected message %q", err)
	}

	if _, err := NewCube(2, stiffness.Scale(10), units.Second, units.Kg); err == nil {
		t.Error("expected error for rest length in seconds")
	}
	if _, err := NewCube(2, stiffness.Scale(10), units.Meter, units.Meter); err == nil {
		t.Error("expected error for mass in meters")
	}
}

func TestSpringTension(t *testing.T) {
	l := &SpringLattice{K: stiffness.Scale(10), Rest: units.Meter}
	a := units.Vec(0, 0, 0).Mul(units.Meter)
	b := units.Vec(1.5, 0, 0).Mul(units.Meter)

	f, err := l.tension(a, b)
	if err != nil {
		t.Fatal(err)
	}
	want := units.Vec(5, 0, 0).Mul(units.Newton)
	if !f.ApproxEqual(want, 1e-12) {
		t.Errorf("tension = %v, want %v", f, want)
	}
}

func TestLatticeForcesBalance(t *testing.T) {
	l, err := NewCube(2, stiffness.Scale(10), units.Meter, units.Kg.Scale(0.1))
	if err != nil {
		t.Fatal(err)
	}
	forces, err := l.Forces(l.InitialBodies(), units.Second.Scale(0))
	if err != nil {
		t.Fatal(err)
	}

	net := units.Vec(0, 0, 0).Mul(units.Newton)
	for _, f := range forces {
		if net, err = net.Add(f); err != nil {
			t.Fatal(err)
		}
	}
	if net.Abs().Value() > 1e-9 {
		t.Errorf("internal forces should cancel, net = %v", net)
	}
}

func TestJitterIsSeeded(t *testing.T) {
	build := func(seed uint64) sim.State {
		l, err := NewCube(2, stiffness.Scale(10), units.Meter, units.Kg.Scale(0.1))
		if err != nil {
			t.Fatal(err)
		}
		if err := l.Jitter(seed, units.Meter.Scale(0.01)); err != nil {
			t.Fatal(err)
		}
		return l.InitialBodies()
	}

	a, b, c := build(7), build(7), build(8)
	for i := range a {
		if !a[i].Pos.Equal(b[i].Pos) {
			t.Fatalf("body %d differs for the same seed", i)
		}
	}
	same := true
	for i := range a {
		if !a[i].Pos.Equal(c[i].Pos) {
			same = false
		}
	}
	if same {
		t.Error("different seeds gave the same crystal")
	}

	l, _ := NewCube(2, stiffness.Scale(10), units.Meter, units.Kg)
	if err := l.Jitter(1, units.Second); err == nil {
		t.Error("expected error for jitter in seconds")
	}
}

func TestBinaryOrbitConservesEnergy(t *testing.T) {
	g, err := NewGravity(units.Meter.Scale(0))
	if err != nil {
		t.Fatal(err)
	}
	bodies, err := g.Binary(units.Kg.Scale(1.989e30), units.Kg.Scale(5.972e24), units.Meter.Scale(1.496e11))
	if err != nil {
		t.Fatal(err)
	}

	energy := func(s sim.State) float64 {
		pe, err := g.PotentialEnergy(s)
		if err != nil {
			t.Fatal(err)
		}
		e := pe.Value()
		for _, b := range s {
			e += 0.5 * b.Mass.Value() * b.Vel.Dot(b.Vel).Value()
		}
		return e
	}

	s := sim.New(g, integrators.NewVerlet())
	res, err := s.Run(context.Background(), bodies, sim.Config{
		Dt:       units.Second.Scale(3600),
		Duration: units.Second.Scale(365.25 * 24 * 3600),
	})
	if err != nil {
		t.Fatal(err)
	}

	e0 := energy(res.States[0])
	e1 := energy(res.States[len(res.States)-1])
	if drift := math.Abs((e1 - e0) / e0); drift > 1e-5 {
		t.Errorf("energy drift = %g", drift)
	}

	// After one year the secondary is back near its start.
	start := res.States[0][1].Pos
	end := res.States[len(res.States)-1][1].Pos
	d, err := end.Sub(start)
	if err != nil {
		t.Fatal(err)
	}
	if d.Abs().Value() > 0.02*1.496e11 {
		t.Errorf("secondary drifted %v from its start", d.Abs())
	}
}

func TestGravityMomentum(t *testing.T) {
	g, err := NewGravity(units.Meter.Scale(1))
	if err != nil {
		t.Fatal(err)
	}
	bodies, err := g.Binary(units.Kg.Scale(3), units.Kg.Scale(1), units.Meter.Scale(10))
	if err != nil {
		t.Fatal(err)
	}
	p, err := g.Momentum(bodies)
	if err != nil {
		t.Fatal(err)
	}
	if p.Abs().Value() > 1e-15 {
		t.Errorf("binary momentum = %v, want zero", p)
	}

	forces, err := g.Forces(bodies, units.Second.Scale(0))
	if err != nil {
		t.Fatal(err)
	}
	sum, err := forces[0].Add(forces[1])
	if err != nil {
		t.Fatal(err)
	}
	if sum.Abs().Value() > 1e-20 {
		t.Errorf("forces should be equal and opposite, sum = %v", sum)
	}
}

func TestNewGravityRejectsUnits(t *testing.T) {
	_, err := NewGravity(units.Second)
	if err == nil || !strings.Contains(err.Error(), "softening must have dimensions of distance") {
		t.Errorf("err = %v", err)
	}
	g := &Gravity{G: units.Newton, Softening: units.Meter}
	if err := g.Validate(); !errors.Is(err, units.ErrDimensionMismatch) {
		t.Errorf("G in Newtons: err = %v", err)
	}
}

func TestPotentialEnergyUnits(t *testing.T) {
	f, _ := NewFalling(EarthGravity, Mph.Scale(120))
	l, _ := NewCube(2, stiffness.Scale(10), units.Meter, units.Kg.Scale(0.1))
	g, _ := NewGravity(units.Meter.Scale(0.01))

	tests := []struct {
		name   string
		p      sim.Potential
		bodies sim.State
	}{
		{"falling", f, f.InitialBodies()},
		{"lattice", l, l.InitialBodies()},
		{"gravity", g, f.InitialBodies()},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e, err := tt.p.PotentialEnergy(tt.bodies)
			if err != nil {
				t.Fatal(err)
			}
			if !e.Dimension().Equal(units.Joule.Dimension()) {
				t.Errorf("energy has dimension %v", e.Dimension())
			}
		})
	}
}
