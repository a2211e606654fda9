package fractal

import (
	"github.com/san-kum/chaoslab/internal/dynamo"
)

// MandelbrotRadius is the fixed Mandelbrot escape radius.
const MandelbrotRadius = 2.0

type Params struct {
	MaxIterations  int     `yaml:"max_iterations"`
	Zoom           float64 `yaml:"zoom"`
	CenterX        float64 `yaml:"center_x"`
	CenterY        float64 `yaml:"center_y"`
	ColorIntensity float64 `yaml:"color_intensity"`
	EscapeRadius   float64 `yaml:"escape_radius,omitempty"`
	CReal          float64 `yaml:"c_real,omitempty"`
	CImag          float64 `yaml:"c_imag,omitempty"`
}

func DefaultMandelbrotParams() Params {
	return Params{
		MaxIterations:  100,
		Zoom:           1,
		CenterX:        -0.5,
		CenterY:        0,
		ColorIntensity: 1,
		EscapeRadius:   MandelbrotRadius,
	}
}

func DefaultJuliaParams() Params {
	return Params{
		MaxIterations:  100,
		Zoom:           1,
		ColorIntensity: 1.5,
		EscapeRadius:   2,
		CReal:          -0.8,
		CImag:          0.156,
	}
}

// Validate rejects structurally invalid records. engine names the variant in
// the returned error.
func (p Params) Validate(engine string) error {
	checks := []error{
		dynamo.Positive(engine, "max_iterations", float64(p.MaxIterations)),
		dynamo.Positive(engine, "zoom", p.Zoom),
		dynamo.Positive(engine, "color_intensity", p.ColorIntensity),
		dynamo.Positive(engine, "escape_radius", p.EscapeRadius),
	}
	for _, err := range checks {
		if err != nil {
			return err
		}
	}
	return nil
}

// C returns the Julia constant.
func (p Params) C() Complex { return Complex{Re: p.CReal, Im: p.CImag} }

var mandelbrotPresets = map[string]Params{
	"classic":  {MaxIterations: 100, Zoom: 1, CenterX: -0.5, CenterY: 0, ColorIntensity: 1},
	"seahorse": {MaxIterations: 150, Zoom: 50, CenterX: -0.75, CenterY: 0.1, ColorIntensity: 2},
	"spiral":   {MaxIterations: 200, Zoom: 100, CenterX: -0.235125, CenterY: 0.827215, ColorIntensity: 3},
	"elephant": {MaxIterations: 120, Zoom: 20, CenterX: 0.25, CenterY: 0, ColorIntensity: 1.5},
	"minibrot": {MaxIterations: 300, Zoom: 2500, CenterX: -0.74275, CenterY: 0.13175, ColorIntensity: 2},
}

var juliaPresets = map[string]Params{
	"dragon":    {CReal: -0.8, CImag: 0.156, MaxIterations: 100, Zoom: 1, ColorIntensity: 1.5},
	"spiral":    {CReal: -0.7269, CImag: 0.1889, MaxIterations: 150, Zoom: 1.2, ColorIntensity: 2},
	"dendrite":  {CReal: -0.75, CImag: 0.11, MaxIterations: 80, Zoom: 1, ColorIntensity: 1},
	"lightning": {CReal: -0.1, CImag: 0.8, MaxIterations: 120, Zoom: 1, ColorIntensity: 1.8},
	"classic":   {CReal: -0.4, CImag: 0.6, MaxIterations: 100, Zoom: 1, ColorIntensity: 1},
	"connected": {CReal: 0.285, CImag: 0.01, MaxIterations: 100, Zoom: 1, ColorIntensity: 1.2},
}
