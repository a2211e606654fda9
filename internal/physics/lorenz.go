package physics

import (
	"github.com/san-kum/chaoslab/internal/dynamo"
	"github.com/san-kum/chaoslab/internal/integrators"
)

// ChaosThresholdRho is the ρ above which Lorenz is reported chaotic. It is a
// parameter threshold only, not a Lyapunov test.
const ChaosThresholdRho = 24.74

type LorenzParams struct {
	Sigma       float64 `yaml:"sigma"`
	Rho         float64 `yaml:"rho"`
	Beta        float64 `yaml:"beta"`
	Dt          float64 `yaml:"dt"`
	TrailLength int     `yaml:"trail_length"`
}

func DefaultLorenzParams() LorenzParams {
	return LorenzParams{Sigma: 10.0, Rho: 28.0, Beta: 8.0 / 3.0, Dt: 0.01, TrailLength: 2000}
}

func (p LorenzParams) Validate() error {
	if err := dynamo.Positive("lorenz", "dt", p.Dt); err != nil {
		return err
	}
	return dynamo.NonNegative("lorenz", "trail_length", float64(p.TrailLength))
}

// DefaultLorenzStart is the state Reset returns to.
var DefaultLorenzStart = dynamo.Point3{X: 1, Y: 1, Z: 1}

// Lorenz integrates the Lorenz attractor and keeps a bounded trail of the
// visited points.
type Lorenz struct {
	params LorenzParams
	state  dynamo.State
	trail  *dynamo.Trail[dynamo.Point3]
	integ  dynamo.Integrator
}

type LorenzOption func(*Lorenz)

// WithLorenzStart overrides the initial (1,1,1) state.
func WithLorenzStart(p dynamo.Point3) LorenzOption {
	return func(l *Lorenz) { l.state = dynamo.State{p.X, p.Y, p.Z} }
}

// WithLorenzIntegrator swaps the default RK4 stepper.
func WithLorenzIntegrator(integ dynamo.Integrator) LorenzOption {
	return func(l *Lorenz) { l.integ = integ }
}

func NewLorenz(p LorenzParams, opts ...LorenzOption) (*Lorenz, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	l := &Lorenz{
		params: p,
		state:  dynamo.State{DefaultLorenzStart.X, DefaultLorenzStart.Y, DefaultLorenzStart.Z},
		trail:  dynamo.NewTrail[dynamo.Point3](p.TrailLength),
		integ:  integrators.NewRK4(),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l, nil
}

func (l *Lorenz) StateDim() int { return 3 }

// Derive calculates the Lorenz attractor derivatives.
func (l *Lorenz) Derive(s dynamo.State) dynamo.State {
	p := l.params
	return dynamo.State{p.Sigma * (s[1] - s[0]), s[0]*(p.Rho-s[2]) - s[1], s[0]*s[1] - p.Beta*s[2]}
}

// Step advances one dt and records the new point in the trail.
func (l *Lorenz) Step() dynamo.Point3 {
	l.state = l.integ.Step(l, l.state, l.params.Dt)
	pt := l.Position()
	l.trail.Push(pt)
	return pt
}

// CalculateSteps runs n steps and returns the new points in order.
func (l *Lorenz) CalculateSteps(n int) []dynamo.Point3 {
	if n <= 0 {
		return []dynamo.Point3{}
	}
	out := make([]dynamo.Point3, n)
	for i := range out {
		out[i] = l.Step()
	}
	return out
}

func (l *Lorenz) Position() dynamo.Point3 {
	return dynamo.Point3{X: l.state[0], Y: l.state[1], Z: l.state[2]}
}

func (l *Lorenz) Trail() []dynamo.Point3 { return l.trail.Points() }

func (l *Lorenz) TrailLen() int { return l.trail.Len() }

// RecentPoints returns up to n of the newest trail points, oldest first.
func (l *Lorenz) RecentPoints(n int) []dynamo.Point3 { return l.trail.Recent(n) }

// LimitTrailLength drops all but the newest max trail points.
func (l *Lorenz) LimitTrailLength(max int) { l.trail.Truncate(max) }

func (l *Lorenz) IsChaotic() bool { return l.params.Rho > ChaosThresholdRho }

// Reset returns to (1,1,1) and clears the trail.
func (l *Lorenz) Reset() { l.ResetTo(DefaultLorenzStart) }

func (l *Lorenz) ResetTo(p dynamo.Point3) {
	l.state = dynamo.State{p.X, p.Y, p.Z}
	l.trail.Clear()
}

func (l *Lorenz) Params() LorenzParams { return l.params }

// ReplaceParams swaps the whole record. State is untouched.
func (l *Lorenz) ReplaceParams(p LorenzParams) error {
	if err := p.Validate(); err != nil {
		return err
	}
	l.params = p
	l.trail.Resize(p.TrailLength)
	return nil
}

func (l *Lorenz) GetParams() map[string]float64 {
	return map[string]float64{
		"sigma":        l.params.Sigma,
		"rho":          l.params.Rho,
		"beta":         l.params.Beta,
		"dt":           l.params.Dt,
		"trail_length": float64(l.params.TrailLength),
	}
}

func (l *Lorenz) SetParam(name string, v float64) error {
	return l.UpdateParams(map[string]float64{name: v})
}

// UpdateParams merges the given values into the current parameters. Nothing
// is applied if any name is unknown or the merged record is invalid.
func (l *Lorenz) UpdateParams(partial map[string]float64) error {
	p := l.params
	for name, v := range partial {
		switch name {
		case "sigma":
			p.Sigma = v
		case "rho":
			p.Rho = v
		case "beta":
			p.Beta = v
		case "dt":
			p.Dt = v
		case "trail_length":
			n, err := dynamo.Integer("lorenz", name, v)
			if err != nil {
				return err
			}
			p.TrailLength = n
		default:
			return dynamo.UnknownParam("lorenz", name)
		}
	}
	return l.ReplaceParams(p)
}
