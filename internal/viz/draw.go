package viz

import (
	"math"

	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/chaoslab/internal/dynamo"
	"github.com/san-kum/chaoslab/internal/physics"
)

// DrawPendulum draws both arms from the pivot at the origin plus the recent
// path of the outer bob. reach is the world half-width of the view.
func (c *Canvas) DrawPendulum(pos physics.PendulumPositions, trail []dynamo.Point2, reach float64) {
	v := Centered(reach)
	c.PlotPoints(v, trail)
	if !finite(dynamo.Point2{X: pos.X1, Y: pos.Y1}) || !finite(dynamo.Point2{X: pos.X2, Y: pos.Y2}) {
		return
	}

	px, py := v.Map(c, dynamo.Point2{})
	x1, y1 := v.Map(c, dynamo.Point2{X: pos.X1, Y: pos.Y1})
	x2, y2 := v.Map(c, dynamo.Point2{X: pos.X2, Y: pos.Y2})
	c.DrawLine(px, py, x1, y1)
	c.DrawLine(x1, y1, x2, y2)
	for _, b := range [][2]int{{x1, y1}, {x2, y2}} {
		c.fillDisc(b[0], b[1], 1)
	}
}

func (c *Canvas) fillDisc(cx, cy, r int) {
	for dy := -r; dy <= r; dy++ {
		for dx := -r; dx <= r; dx++ {
			if dx*dx+dy*dy <= r*r {
				c.Set(cx+dx, cy+dy)
			}
		}
	}
}

// PendulumReach is a view half-width that fits the fully extended pendulum.
func PendulumReach(p physics.PendulumParams) float64 {
	return (p.Length1 + p.Length2) * 1.1
}

// PlotSeries renders values as an ASCII line chart. Non-finite values are
// dropped so a diverged run still plots its valid prefix.
func PlotSeries(values []float64, caption string, width, height int) string {
	clean := make([]float64, 0, len(values))
	for _, v := range values {
		if !math.IsNaN(v) && !math.IsInf(v, 0) {
			clean = append(clean, v)
		}
	}
	if len(clean) == 0 {
		return ""
	}
	opts := []asciigraph.Option{asciigraph.Height(height), asciigraph.Precision(3)}
	if width > 0 {
		opts = append(opts, asciigraph.Width(width))
	}
	if caption != "" {
		opts = append(opts, asciigraph.Caption(caption))
	}
	return asciigraph.Plot(clean, opts...)
}
