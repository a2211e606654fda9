package fractal

import "math"

type Complex struct {
	Re, Im float64
}

// Abs2 is |z|², used for the escape test to avoid a square root.
func (z Complex) Abs2() float64 { return z.Re*z.Re + z.Im*z.Im }

func (z Complex) Abs() float64 { return math.Hypot(z.Re, z.Im) }

// Square returns z² = (a²−b²) + 2abi.
func (z Complex) Square() Complex {
	return Complex{Re: z.Re*z.Re - z.Im*z.Im, Im: 2 * z.Re * z.Im}
}

func (z Complex) Add(w Complex) Complex { return Complex{Re: z.Re + w.Re, Im: z.Im + w.Im} }

// IterationResult reports how long an orbit stayed bounded. Escaped=false
// implies Iterations equals the iteration budget.
type IterationResult struct {
	Iterations int
	Escaped    bool
	Final      Complex
}

type ColorRGB struct {
	R, G, B uint8
}

var Black = ColorRGB{}
