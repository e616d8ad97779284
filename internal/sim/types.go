package sim

import (
	"github.com/san-kum/physical/internal/units"
)

// Body is a point mass. Pos must be a length and Vel a velocity.
type Body struct {
	Name string
	Mass units.Scalar
	Pos  units.Vector
	Vel  units.Vector
}

// State is the set of bodies at one instant.
type State []Body

// Clone returns a deep copy; vectors in the copy do not alias s.
func (s State) Clone() State {
	c := make(State, len(s))
	for i, b := range s {
		c[i] = Body{Name: b.Name, Mass: b.Mass, Pos: b.Pos.Copy(), Vel: b.Vel.Copy()}
	}
	return c
}

// WithUnits returns a clone in which a bare zero position or velocity
// is replaced by the zero vector in meters or meters per second.
func (s State) WithUnits() State {
	c := s.Clone()
	for i := range c {
		if units.IsBoring(c[i].Pos) {
			c[i].Pos = units.NewVectorDim(0, 0, 0, units.DimLength)
		}
		if units.IsBoring(c[i].Vel) {
			c[i].Vel = units.NewVectorDim(0, 0, 0, velocity.Dimension())
		}
	}
	return c
}

// Index returns the position of the body called name, or -1.
func (s State) Index(name string) int {
	for i, b := range s {
		if b.Name == name {
			return i
		}
	}
	return -1
}

// System computes the net force on every body, in the order of the state.
type System interface {
	Forces(bodies State, t units.Scalar) ([]units.Vector, error)
}

// Initializer is implemented by systems that construct their own bodies.
type Initializer interface {
	InitialBodies() State
}

// Halter is implemented by systems with a natural end, such as a body
// reaching the ground.
type Halter interface {
	Halted(bodies State, t units.Scalar) bool
}

// Potential is implemented by conservative systems.
type Potential interface {
	PotentialEnergy(bodies State) (units.Scalar, error)
}

// Integrator advances the bodies by one time step.
type Integrator interface {
	Step(sys System, bodies State, t, dt units.Scalar) (State, error)
}

// Metric accumulates one figure of merit over a run.
type Metric interface {
	Name() string
	Observe(bodies State, t units.Scalar) error
	Value() units.Scalar
	Reset()
}

// Observer is notified after every accepted step.
type Observer interface {
	OnStep(bodies State, t units.Scalar) error
}

type Config struct {
	Dt       units.Scalar
	Duration units.Scalar
	// ValidateState stops the run at the first NaN or Inf component.
	ValidateState bool
}

type Result struct {
	Times      []units.Scalar
	States     []State
	Metrics    map[string]units.Scalar
	StepsTaken int
	// Halted reports that the system ended the run before Duration.
	Halted bool
}
