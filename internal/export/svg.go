package export

import (
	"fmt"
	"strings"

	"github.com/san-kum/chaoslab/internal/dynamo"
	"github.com/san-kum/chaoslab/internal/viz"
)

const svgBackground = "#0a0a0a"

// CanvasSVG draws every lit braille dot of canvas as a circle. scale is the
// spacing between dots in SVG units.
func CanvasSVG(canvas *viz.Canvas, scale float64) string {
	if canvas == nil {
		return ""
	}
	w, h := canvas.Dots()
	width, height := float64(w)*scale, float64(h)*scale

	var sb strings.Builder
	fmt.Fprintf(&sb, `<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%.0f" height="%.0f" viewBox="0 0 %.0f %.0f">
<rect width="100%%" height="100%%" fill="%s"/>
<g fill="#00ff00">
`, width, height, width, height, svgBackground)

	r := scale * 0.4
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if canvas.IsSet(x, y) {
				fmt.Fprintf(&sb, "<circle cx=\"%.1f\" cy=\"%.1f\" r=\"%.1f\"/>\n",
					float64(x)*scale+scale/2, float64(y)*scale+scale/2, r)
			}
		}
	}
	sb.WriteString("</g>\n</svg>\n")
	return sb.String()
}

// PathSVG draws pts as one polyline fitted to a width×height frame with a 10%
// margin. NaN points start a new subpath. Fewer than two points give "".
func PathSVG(pts []dynamo.Point2, width, height int, stroke string) string {
	if len(pts) < 2 {
		return ""
	}
	box := viz.FitPoints(pts, 0)
	mx, my := (box.MaxX-box.MinX)*0.1, (box.MaxY-box.MinY)*0.1
	box = viz.Viewport{MinX: box.MinX - mx, MinY: box.MinY - my, MaxX: box.MaxX + mx, MaxY: box.MaxY + my}

	var sb strings.Builder
	fmt.Fprintf(&sb, `<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="%s"/>
<path fill="none" stroke="%s" stroke-width="1.5" d="`,
		width, height, width, height, svgBackground, stroke)

	move := true
	for _, p := range pts {
		if p.X != p.X || p.Y != p.Y {
			move = true
			continue
		}
		x := (p.X - box.MinX) / (box.MaxX - box.MinX) * float64(width)
		y := float64(height) - (p.Y-box.MinY)/(box.MaxY-box.MinY)*float64(height)
		if move {
			fmt.Fprintf(&sb, "M%.1f,%.1f", x, y)
			move = false
		} else {
			fmt.Fprintf(&sb, " L%.1f,%.1f", x, y)
		}
	}
	sb.WriteString("\"/>\n</svg>\n")
	return sb.String()
}
