package physics

import (
	"math"

	"github.com/san-kum/chaoslab/internal/analysis"
	"github.com/san-kum/chaoslab/internal/dynamo"
)

// Regime is the qualitative behavior of the logistic map at a given r.
type Regime int

const (
	RegimeExtinct Regime = iota
	RegimeStable
	RegimeOscillating
	RegimePeriodic
	RegimeChaotic
)

func (r Regime) String() string {
	switch r {
	case RegimeExtinct:
		return "extinct"
	case RegimeStable:
		return "stable"
	case RegimeOscillating:
		return "oscillating"
	case RegimePeriodic:
		return "periodic"
	case RegimeChaotic:
		return "chaotic"
	default:
		return "unknown"
	}
}

// Onset of period four and of chaos.
var (
	periodFourOnset = 1 + math.Sqrt(6)
	chaosOnset      = 3.57
)

// Classify labels r by fixed thresholds, not by looking at an orbit.
func Classify(r float64) Regime {
	switch {
	case r < 1:
		return RegimeExtinct
	case r < 3:
		return RegimeStable
	case r < periodFourOnset:
		return RegimeOscillating
	case r < chaosOnset:
		return RegimePeriodic
	default:
		return RegimeChaotic
	}
}

func logisticStep(r, x float64) float64 { return r * x * (1 - x) }

// TimeSeries returns the steps successive iterates after x0.
func TimeSeries(r, x0 float64, steps int) ([]float64, error) {
	if err := dynamo.NonNegative("logistic", "steps", float64(steps)); err != nil {
		return nil, err
	}
	out := make([]float64, steps)
	x := x0
	for i := range out {
		x = logisticStep(r, x)
		out[i] = x
	}
	return out, nil
}

const (
	DefaultTransient = 1000
	DefaultPlotted   = 100
)

type BifurcationOptions struct {
	RMin      float64
	RMax      float64
	Columns   int
	Transient int
	Plotted   int
	X0        float64
}

func (o BifurcationOptions) Validate() error {
	if err := dynamo.Positive("logistic", "columns", float64(o.Columns)); err != nil {
		return err
	}
	if err := dynamo.NonNegative("logistic", "transient", float64(o.Transient)); err != nil {
		return err
	}
	return dynamo.NonNegative("logistic", "plotted", float64(o.Plotted))
}

// BifurcationRaster samples the long-run values of the map for Columns evenly
// spaced r values in [RMin, RMax).
func BifurcationRaster(opts BifurcationOptions) ([]analysis.BifurcationPoint, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	return analysis.MapBifurcation(logisticStep, analysis.SweepOptions{
		ParamMin:  opts.RMin,
		ParamMax:  opts.RMax,
		Columns:   opts.Columns,
		Transient: opts.Transient,
		Record:    opts.Plotted,
		X0:        opts.X0,
	}), nil
}

type LogisticParams struct {
	R             float64 `yaml:"r"`
	X0            float64 `yaml:"x0"`
	Iterations    int     `yaml:"iterations"`
	HistoryLength int     `yaml:"history_length"`
	RMin          float64 `yaml:"r_min"`
	RMax          float64 `yaml:"r_max"`
}

func DefaultLogisticParams() LogisticParams {
	return LogisticParams{R: 3.5, X0: 0.5, Iterations: 200, HistoryLength: 100, RMin: 2.5, RMax: 4.0}
}

func (p LogisticParams) Validate() error {
	if err := dynamo.NonNegative("logistic", "iterations", float64(p.Iterations)); err != nil {
		return err
	}
	return dynamo.NonNegative("logistic", "history_length", float64(p.HistoryLength))
}

// LogisticPresets mirror the stable, period and chaos buttons of the explorer.
var LogisticPresets = map[string]float64{
	"stable": 2.5,
	"period": 3.2,
	"chaos":  3.8,
}

// LogisticMap holds a parameter record; every query recomputes from X0.
type LogisticMap struct {
	params LogisticParams
}

func NewLogisticMap(p LogisticParams) (*LogisticMap, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return &LogisticMap{params: p}, nil
}

func (l *LogisticMap) Params() LogisticParams { return l.params }

// Series is TimeSeries at the current r, x0 and iteration count.
func (l *LogisticMap) Series() []float64 {
	out, _ := TimeSeries(l.params.R, l.params.X0, l.params.Iterations)
	return out
}

// History is the tail of Series, at most HistoryLength values.
func (l *LogisticMap) History() []float64 {
	s := l.Series()
	if n := l.params.HistoryLength; len(s) > n {
		s = s[len(s)-n:]
	}
	return s
}

// Bifurcation rasterizes [RMin, RMax) into columns with default transient and
// plotted counts.
func (l *LogisticMap) Bifurcation(columns int) ([]analysis.BifurcationPoint, error) {
	return BifurcationRaster(BifurcationOptions{
		RMin:      l.params.RMin,
		RMax:      l.params.RMax,
		Columns:   columns,
		Transient: DefaultTransient,
		Plotted:   DefaultPlotted,
		X0:        l.params.X0,
	})
}

func (l *LogisticMap) Regime() Regime { return Classify(l.params.R) }

// FixedPoint is the nontrivial fixed point (r-1)/r. It is only attracting in
// the stable regime.
func (l *LogisticMap) FixedPoint() float64 { return (l.params.R - 1) / l.params.R }

// Period runs past the transient and reports the detected cycle length, or -1.
func (l *LogisticMap) Period(maxPeriod int) int {
	if maxPeriod < 1 {
		return -1
	}
	orbit, _ := TimeSeries(l.params.R, l.params.X0, DefaultTransient+4*maxPeriod)
	return analysis.DetectPeriod(orbit[DefaultTransient:], 1e-6, maxPeriod)
}

// ApplyPreset sets r from LogisticPresets and resets x0 to 0.5. Unknown
// names are ignored.
func (l *LogisticMap) ApplyPreset(name string) bool {
	r, ok := LogisticPresets[name]
	if !ok {
		return false
	}
	l.params.R = r
	l.params.X0 = 0.5
	return true
}

func (l *LogisticMap) GetParams() map[string]float64 {
	p := l.params
	return map[string]float64{
		"r":              p.R,
		"x0":             p.X0,
		"iterations":     float64(p.Iterations),
		"history_length": float64(p.HistoryLength),
		"r_min":          p.RMin,
		"r_max":          p.RMax,
	}
}

func (l *LogisticMap) SetParam(name string, v float64) error {
	return l.UpdateParams(map[string]float64{name: v})
}

func (l *LogisticMap) UpdateParams(partial map[string]float64) error {
	p := l.params
	for name, v := range partial {
		switch name {
		case "r":
			p.R = v
		case "x0":
			p.X0 = v
		case "iterations", "history_length":
			n, err := dynamo.Integer("logistic", name, v)
			if err != nil {
				return err
			}
			if name == "iterations" {
				p.Iterations = n
			} else {
				p.HistoryLength = n
			}
		case "r_min":
			p.RMin = v
		case "r_max":
			p.RMax = v
		default:
			return dynamo.UnknownParam("logistic", name)
		}
	}
	if err := p.Validate(); err != nil {
		return err
	}
	l.params = p
	return nil
}
