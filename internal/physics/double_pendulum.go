package physics

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/san-kum/chaoslab/internal/dynamo"
	"github.com/san-kum/chaoslab/internal/integrators"
)

// Equation sets for the double pendulum.
const (
	// EquationsReference is the coupled form the original simulator shipped
	// with. Its θ2 row reuses the (m1+m2) pattern of the θ1 row, so it does
	// not conserve TotalEnergy.
	EquationsReference = "reference"
	// EquationsLagrangian is the textbook Lagrangian form.
	EquationsLagrangian = "lagrangian"
)

type PendulumParams struct {
	Gravity     float64 `yaml:"gravity"`
	Damping     float64 `yaml:"damping"`
	Length1     float64 `yaml:"length1"`
	Length2     float64 `yaml:"length2"`
	Mass1       float64 `yaml:"mass1"`
	Mass2       float64 `yaml:"mass2"`
	Dt          float64 `yaml:"dt"`
	Friction    float64 `yaml:"friction"`
	TrailLength int     `yaml:"trail_length"`
	Equations   string  `yaml:"equations"`
}

func DefaultPendulumParams() PendulumParams {
	return PendulumParams{
		Gravity:     9.81,
		Damping:     1.0,
		Length1:     1.0,
		Length2:     1.0,
		Mass1:       1.0,
		Mass2:       1.0,
		Dt:          0.01,
		TrailLength: 500,
		Equations:   EquationsReference,
	}
}

func (p PendulumParams) Validate() error {
	checks := []error{
		dynamo.Positive("pendulum", "length1", p.Length1),
		dynamo.Positive("pendulum", "length2", p.Length2),
		dynamo.Positive("pendulum", "mass1", p.Mass1),
		dynamo.Positive("pendulum", "mass2", p.Mass2),
		dynamo.Positive("pendulum", "dt", p.Dt),
		dynamo.NonNegative("pendulum", "friction", p.Friction),
		dynamo.NonNegative("pendulum", "trail_length", float64(p.TrailLength)),
	}
	for _, err := range checks {
		if err != nil {
			return err
		}
	}
	switch p.Equations {
	case "", EquationsReference, EquationsLagrangian:
		return nil
	default:
		return fmt.Errorf("pendulum: %w: unknown equations %q", dynamo.ErrInvalidParameter, p.Equations)
	}
}

type PendulumState struct {
	Theta1 float64 `yaml:"theta1"`
	Theta2 float64 `yaml:"theta2"`
	Omega1 float64 `yaml:"omega1"`
	Omega2 float64 `yaml:"omega2"`
}

func (s PendulumState) vector() dynamo.State {
	return dynamo.State{s.Theta1, s.Theta2, s.Omega1, s.Omega2}
}

func pendulumStateOf(x dynamo.State) PendulumState {
	return PendulumState{Theta1: x[0], Theta2: x[1], Omega1: x[2], Omega2: x[3]}
}

// SeededPendulumState returns both arms near horizontal, each jittered by up
// to ±0.05 rad, at rest. The same seed always gives the same state.
func SeededPendulumState(seed int64) PendulumState {
	rng := rand.New(rand.NewSource(seed))
	return PendulumState{
		Theta1: math.Pi/2 + (rng.Float64()-0.5)*0.1,
		Theta2: math.Pi/2 + (rng.Float64()-0.5)*0.1,
	}
}

// PendulumPositions are the cartesian bob positions, y growing downward.
type PendulumPositions struct {
	X1, Y1, X2, Y2 float64
}

// EnergyTerms splits TotalEnergy into its kinetic and potential parts.
type EnergyTerms struct {
	T1, T2, V1, V2 float64
}

func (e EnergyTerms) Total() float64 { return e.T1 + e.T2 + e.V1 + e.V2 }

type DoublePendulum struct {
	params  PendulumParams
	initial PendulumState
	state   dynamo.State
	trail   *dynamo.Trail[dynamo.Point2]
	integ   dynamo.Integrator
}

func NewDoublePendulum(p PendulumParams, initial PendulumState) (*DoublePendulum, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return &DoublePendulum{
		params:  p,
		initial: initial,
		state:   initial.vector(),
		trail:   dynamo.NewTrail[dynamo.Point2](p.TrailLength),
		integ:   integrators.NewRK4(),
	}, nil
}

func (d *DoublePendulum) StateDim() int { return 4 }

func (d *DoublePendulum) Derive(x dynamo.State) dynamo.State {
	var a1, a2 float64
	if d.params.Equations == EquationsLagrangian {
		a1, a2 = d.lagrangian(x)
	} else {
		a1, a2 = d.reference(x)
	}
	a1 = a1*d.params.Damping - d.params.Friction*x[2]
	a2 = a2*d.params.Damping - d.params.Friction*x[3]
	return dynamo.State{x[2], x[3], a1, a2}
}

func (d *DoublePendulum) reference(x dynamo.State) (float64, float64) {
	theta1, theta2, omega1, omega2 := x[0], x[1], x[2], x[3]
	p := d.params
	m1, m2, l1, l2, g := p.Mass1, p.Mass2, p.Length1, p.Length2, p.Gravity

	delta := theta1 - theta2
	sinD, cosD := math.Sin(delta), math.Cos(delta)

	den1 := (m1+m2)*l1 - m2*l1*cosD*cosD
	den2 := (l2 / l1) * den1

	num1 := -m2*l1*omega1*omega1*sinD*cosD +
		m2*g*math.Sin(theta2)*cosD +
		m2*l2*omega2*omega2*sinD -
		(m1+m2)*g*math.Sin(theta1)

	num2 := -m2*l2*omega2*omega2*sinD*cosD -
		(m1+m2)*g*math.Sin(theta1)*cosD -
		(m1+m2)*l1*omega1*omega1*sinD +
		(m1+m2)*g*math.Sin(theta2)

	return num1 / den1, num2 / den2
}

func (d *DoublePendulum) lagrangian(x dynamo.State) (float64, float64) {
	theta1, theta2, omega1, omega2 := x[0], x[1], x[2], x[3]
	p := d.params
	m1, m2, l1, l2, g := p.Mass1, p.Mass2, p.Length1, p.Length2, p.Gravity

	delta := theta2 - theta1
	sinD, cosD := math.Sin(delta), math.Cos(delta)

	den1 := (m1+m2)*l1 - m2*l1*cosD*cosD
	den2 := (l2 / l1) * den1

	alpha1 := (m2*l1*omega1*omega1*sinD*cosD +
		m2*g*math.Sin(theta2)*cosD +
		m2*l2*omega2*omega2*sinD -
		(m1+m2)*g*math.Sin(theta1)) / den1

	alpha2 := (-m2*l2*omega2*omega2*sinD*cosD +
		(m1+m2)*g*math.Sin(theta1)*cosD -
		(m1+m2)*l1*omega1*omega1*sinD -
		(m1+m2)*g*math.Sin(theta2)) / den2

	return alpha1, alpha2
}

// Step advances one dt and pushes the second bob's position onto the trail.
func (d *DoublePendulum) Step() dynamo.Point2 {
	d.state = d.integ.Step(d, d.state, d.params.Dt)
	pos := d.Positions()
	pt := dynamo.Point2{X: pos.X2, Y: pos.Y2}
	d.trail.Push(pt)
	return pt
}

func (d *DoublePendulum) Positions() PendulumPositions {
	p := d.params
	x1 := p.Length1 * math.Sin(d.state[0])
	y1 := p.Length1 * math.Cos(d.state[0])
	return PendulumPositions{
		X1: x1,
		Y1: y1,
		X2: x1 + p.Length2*math.Sin(d.state[1]),
		Y2: y1 + p.Length2*math.Cos(d.state[1]),
	}
}

func (d *DoublePendulum) EnergyBreakdown() EnergyTerms {
	return d.energyTerms(d.state)
}

func (d *DoublePendulum) energyTerms(x dynamo.State) EnergyTerms {
	theta1, theta2, omega1, omega2 := x[0], x[1], x[2], x[3]
	p := d.params
	m1, m2, l1, l2, g := p.Mass1, p.Mass2, p.Length1, p.Length2, p.Gravity

	return EnergyTerms{
		T1: 0.5 * m1 * l1 * l1 * omega1 * omega1,
		T2: 0.5 * m2 * (l1*l1*omega1*omega1 + l2*l2*omega2*omega2 +
			2*l1*l2*omega1*omega2*math.Cos(theta1-theta2)),
		V1: -m1 * g * l1 * math.Cos(theta1),
		V2: -m2 * g * (l1*math.Cos(theta1) + l2*math.Cos(theta2)),
	}
}

func (d *DoublePendulum) TotalEnergy() float64 { return d.energyTerms(d.state).Total() }

// Energy evaluates the total energy of an arbitrary state vector.
func (d *DoublePendulum) Energy(x dynamo.State) float64 { return d.energyTerms(x).Total() }

func (d *DoublePendulum) State() PendulumState { return pendulumStateOf(d.state) }

func (d *DoublePendulum) Trail() []dynamo.Point2 { return d.trail.Points() }

func (d *DoublePendulum) TrailLen() int { return d.trail.Len() }

func (d *DoublePendulum) RecentPoints(n int) []dynamo.Point2 { return d.trail.Recent(n) }

func (d *DoublePendulum) LimitTrailLength(max int) { d.trail.Truncate(max) }

// Reset restores the construction state and clears the trail.
func (d *DoublePendulum) Reset() { d.ResetTo(d.initial) }

func (d *DoublePendulum) ResetTo(s PendulumState) {
	d.state = s.vector()
	d.trail.Clear()
}

func (d *DoublePendulum) Params() PendulumParams { return d.params }

func (d *DoublePendulum) ReplaceParams(p PendulumParams) error {
	if err := p.Validate(); err != nil {
		return err
	}
	d.params = p
	d.trail.Resize(p.TrailLength)
	return nil
}

func (d *DoublePendulum) GetParams() map[string]float64 {
	p := d.params
	return map[string]float64{
		"gravity":      p.Gravity,
		"damping":      p.Damping,
		"length1":      p.Length1,
		"length2":      p.Length2,
		"mass1":        p.Mass1,
		"mass2":        p.Mass2,
		"dt":           p.Dt,
		"friction":     p.Friction,
		"trail_length": float64(p.TrailLength),
	}
}

func (d *DoublePendulum) SetParam(name string, v float64) error {
	return d.UpdateParams(map[string]float64{name: v})
}

// UpdateParams merges partial into the current parameters, all or nothing.
func (d *DoublePendulum) UpdateParams(partial map[string]float64) error {
	p := d.params
	for name, v := range partial {
		switch name {
		case "gravity":
			p.Gravity = v
		case "damping":
			p.Damping = v
		case "length1":
			p.Length1 = v
		case "length2":
			p.Length2 = v
		case "mass1":
			p.Mass1 = v
		case "mass2":
			p.Mass2 = v
		case "dt":
			p.Dt = v
		case "friction":
			p.Friction = v
		case "trail_length":
			n, err := dynamo.Integer("pendulum", name, v)
			if err != nil {
				return err
			}
			p.TrailLength = n
		default:
			return dynamo.UnknownParam("pendulum", name)
		}
	}
	return d.ReplaceParams(p)
}
