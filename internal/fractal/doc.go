// Package fractal evaluates escape-time fractals over the complex plane.
//
// One [Engine] runs the iterate-and-test loop z ← z² + c. The variants only
// differ in how the orbit is seeded from the queried point:
//
//   - [Mandelbrot]: c is the point, the orbit starts at 0, radius fixed at 2
//   - [Julia]: c is a parameter, the orbit starts at the point
//
// Pixels are independent, so a raster may be split into row ranges or tiles
// and computed by any number of goroutines, provided each writes a disjoint
// region. [Engine.ComputeRows] and [Engine.ComputeTile] are the chunk API; the
// caller owns scheduling and cancellation.
package fractal
