package fractal

import (
	"maps"
	"math"
	"slices"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/san-kum/chaoslab/internal/dynamo"
)

type Kind int

const (
	KindMandelbrot Kind = iota
	KindJulia
)

func (k Kind) String() string {
	if k == KindJulia {
		return "julia"
	}
	return "mandelbrot"
}

// Engine is the escape-time evaluator shared by both variants. Methods that
// only read parameters are safe for concurrent use; UpdateParams,
// ReplaceParams, ApplyPreset and ZoomAt are not.
type Engine struct {
	kind   Kind
	params Params
}

func newEngine(kind Kind, p Params) (*Engine, error) {
	e := &Engine{kind: kind}
	if err := e.ReplaceParams(p); err != nil {
		return nil, err
	}
	return e, nil
}

func (e *Engine) Kind() Kind { return e.kind }

func (e *Engine) Params() Params { return e.params }

// Clone returns an independent engine with the same parameters.
func (e *Engine) Clone() *Engine {
	c := *e
	return &c
}

// ReplaceParams swaps the whole parameter record after validation. Mandelbrot
// ignores the escape radius and Julia constant.
func (e *Engine) ReplaceParams(p Params) error {
	if e.kind == KindMandelbrot {
		p.EscapeRadius = MandelbrotRadius
		p.CReal, p.CImag = 0, 0
	}
	if err := p.Validate(e.kind.String()); err != nil {
		return err
	}
	e.params = p
	return nil
}

// orbit derives the first tested iterate and the additive constant. The
// Mandelbrot orbit is started at z1 = c since z0 = 0 never escapes.
func (e *Engine) orbit(point Complex) (z, c Complex) {
	if e.kind == KindJulia {
		return point, e.params.C()
	}
	return point, point
}

// CalculatePoint iterates z ← z² + c until |z| exceeds the escape radius or
// the iteration budget runs out. NaN orbits never test as escaped and run the
// full budget.
func (e *Engine) CalculatePoint(point Complex) IterationResult {
	z, c := e.orbit(point)
	maxIter := e.params.MaxIterations
	r2 := e.params.EscapeRadius * e.params.EscapeRadius

	for it := 0; it < maxIter; it++ {
		if z.Abs2() > r2 {
			return IterationResult{Iterations: it, Escaped: true, Final: z}
		}
		z = Complex{Re: z.Re*z.Re - z.Im*z.Im + c.Re, Im: 2*z.Re*z.Im + c.Im}
	}
	return IterationResult{Iterations: maxIter, Escaped: false, Final: z}
}

func (e *Engine) CalculateBatch(points []Complex) []IterationResult {
	out := make([]IterationResult, len(points))
	for i, p := range points {
		out[i] = e.CalculatePoint(p)
	}
	return out
}

func (e *Engine) ranges(width, height int) (rangeX, rangeY float64) {
	scale := 4 / e.params.Zoom
	return scale * float64(width) / float64(height), scale
}

// ScreenToComplex maps a pixel coordinate onto the plane. The view spans
// 4/zoom vertically, centered on (CenterX, CenterY), and keeps the aspect
// ratio of width×height.
func (e *Engine) ScreenToComplex(x, y float64, width, height int) Complex {
	rangeX, rangeY := e.ranges(width, height)
	return Complex{
		Re: e.params.CenterX + (x/float64(width)-0.5)*rangeX,
		Im: e.params.CenterY + (y/float64(height)-0.5)*rangeY,
	}
}

// ComplexToScreen is the inverse of ScreenToComplex.
func (e *Engine) ComplexToScreen(z Complex, width, height int) (x, y float64) {
	rangeX, rangeY := e.ranges(width, height)
	x = ((z.Re-e.params.CenterX)/rangeX + 0.5) * float64(width)
	y = ((z.Im-e.params.CenterY)/rangeY + 0.5) * float64(height)
	return x, y
}

// ZoomAt recenters the view on pixel (x, y) and multiplies zoom by factor.
func (e *Engine) ZoomAt(x, y float64, width, height int, factor float64) error {
	if err := dynamo.Positive(e.kind.String(), "zoom_factor", factor); err != nil {
		return err
	}
	c := e.ScreenToComplex(x, y, width, height)
	p := e.params
	p.CenterX, p.CenterY = c.Re, c.Im
	p.Zoom *= factor
	return e.ReplaceParams(p)
}

// Normalized returns t' = (it/max)^(1/colorIntensity), the palette input.
func (e *Engine) Normalized(iterations int) float64 {
	t := float64(iterations) / float64(e.params.MaxIterations)
	return math.Pow(t, 1/e.params.ColorIntensity)
}

// Color maps an escape count to a palette color. Points that never escape are
// black.
func (e *Engine) Color(iterations int, escaped bool) colorful.Color {
	if !escaped {
		return colorful.Color{}
	}
	t := e.Normalized(iterations)
	if e.kind == KindJulia {
		return colorful.Hsl(math.Mod(t*360+180, 360), 0.8, 0.3+0.6*t)
	}
	return colorful.Hsv(math.Mod(t*360, 360), 0.8, 0.8)
}

func (e *Engine) IterationsToColor(iterations int, escaped bool) ColorRGB {
	r, g, b := e.Color(iterations, escaped).Clamped().RGB255()
	return ColorRGB{R: r, G: g, B: b}
}

func (e *Engine) presets() map[string]Params {
	if e.kind == KindJulia {
		return juliaPresets
	}
	return mandelbrotPresets
}

// Presets lists the preset names in sorted order.
func (e *Engine) Presets() []string {
	return slices.Sorted(maps.Keys(e.presets()))
}

// ApplyPreset loads a named bundle. The escape radius is kept. Unknown names
// leave the engine untouched and report false.
func (e *Engine) ApplyPreset(name string) bool {
	p, ok := e.presets()[name]
	if !ok {
		return false
	}
	p.EscapeRadius = e.params.EscapeRadius
	return e.ReplaceParams(p) == nil
}

func (e *Engine) GetParams() map[string]float64 {
	p := e.params
	m := map[string]float64{
		"max_iterations":  float64(p.MaxIterations),
		"zoom":            p.Zoom,
		"center_x":        p.CenterX,
		"center_y":        p.CenterY,
		"color_intensity": p.ColorIntensity,
	}
	if e.kind == KindJulia {
		m["escape_radius"] = p.EscapeRadius
		m["c_real"] = p.CReal
		m["c_imag"] = p.CImag
	}
	return m
}

func (e *Engine) SetParam(name string, v float64) error {
	return e.UpdateParams(map[string]float64{name: v})
}

// UpdateParams merges partial into the current record. Nothing is applied on
// error.
func (e *Engine) UpdateParams(partial map[string]float64) error {
	p := e.params
	julia := e.kind == KindJulia
	for name, v := range partial {
		switch {
		case name == "max_iterations":
			n, err := dynamo.Integer(e.kind.String(), name, v)
			if err != nil {
				return err
			}
			p.MaxIterations = n
		case name == "zoom":
			p.Zoom = v
		case name == "center_x":
			p.CenterX = v
		case name == "center_y":
			p.CenterY = v
		case name == "color_intensity":
			p.ColorIntensity = v
		case julia && name == "escape_radius":
			p.EscapeRadius = v
		case julia && name == "c_real":
			p.CReal = v
		case julia && name == "c_imag":
			p.CImag = v
		default:
			return dynamo.UnknownParam(e.kind.String(), name)
		}
	}
	return e.ReplaceParams(p)
}

// Mandelbrot is the escape-time engine with c taken from the queried point.
type Mandelbrot struct {
	*Engine
}

func NewMandelbrot(p Params) (*Mandelbrot, error) {
	e, err := newEngine(KindMandelbrot, p)
	if err != nil {
		return nil, err
	}
	return &Mandelbrot{Engine: e}, nil
}

// Julia is the escape-time engine with a fixed c.
type Julia struct {
	*Engine
}

func NewJulia(p Params) (*Julia, error) {
	e, err := newEngine(KindJulia, p)
	if err != nil {
		return nil, err
	}
	return &Julia{Engine: e}, nil
}

// IsConnected approximates connectivity by whether the orbit of 0 stays
// bounded within the iteration budget.
func (j *Julia) IsConnected() bool {
	return !j.CalculatePoint(Complex{}).Escaped
}

// SetDescription gives a one-line label for the current c.
func (j *Julia) SetDescription() string {
	if !j.IsConnected() {
		return "dust-type (disconnected)"
	}
	if j.params.C().Abs() < 0.5 {
		return "connected: simple"
	}
	return "connected: complex boundary"
}
