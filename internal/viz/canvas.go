package viz

import (
	"math"
	"strings"

	"github.com/san-kum/chaoslab/internal/dynamo"
)

// Braille cells hold 2x4 dots:
// 1 4
// 2 5
// 3 6
// 7 8
const brailleBlank = 0x2800

var dotBits = [4][2]rune{
	{0x1, 0x8},
	{0x2, 0x10},
	{0x4, 0x20},
	{0x40, 0x80},
}

// Canvas is a Width×Height grid of braille cells, addressed in dots: the
// drawable surface is (2·Width)×(4·Height).
type Canvas struct {
	Width, Height int
	Grid          [][]rune
}

func NewCanvas(w, h int) *Canvas {
	w, h = max(w, 1), max(h, 1)
	c := &Canvas{Width: w, Height: h, Grid: make([][]rune, h)}
	for i := range c.Grid {
		c.Grid[i] = make([]rune, w)
	}
	c.Clear()
	return c
}

// Dots returns the drawable size in dots.
func (c *Canvas) Dots() (w, h int) { return c.Width * 2, c.Height * 4 }

func (c *Canvas) cell(x, y int) (row, col int, bit rune, ok bool) {
	if x < 0 || y < 0 {
		return 0, 0, 0, false
	}
	col, row = x/2, y/4
	if col >= c.Width || row >= c.Height {
		return 0, 0, 0, false
	}
	return row, col, dotBits[y%4][x%2], true
}

// Set lights the dot at (x, y). Out-of-range dots are ignored.
func (c *Canvas) Set(x, y int) {
	if row, col, bit, ok := c.cell(x, y); ok {
		c.Grid[row][col] |= bit
	}
}

func (c *Canvas) Unset(x, y int) {
	if row, col, bit, ok := c.cell(x, y); ok {
		c.Grid[row][col] &^= bit
	}
}

// IsSet reports whether the dot at (x, y) is lit.
func (c *Canvas) IsSet(x, y int) bool {
	row, col, bit, ok := c.cell(x, y)
	return ok && c.Grid[row][col]&bit != 0
}

func (c *Canvas) Clear() {
	for i := range c.Grid {
		for j := range c.Grid[i] {
			c.Grid[i][j] = brailleBlank
		}
	}
}

// DrawLine draws a Bresenham line between two dots. Lines reaching far off
// the surface are dropped rather than walked.
func (c *Canvas) DrawLine(x0, y0, x1, y1 int) {
	w, h := c.Dots()
	if limit := 8 * (w + h); max(absInt(x0), absInt(y0), absInt(x1), absInt(y1)) > limit {
		return
	}
	dx, dy := absInt(x1-x0), absInt(y1-y0)
	sx, sy := -1, -1
	if x0 < x1 {
		sx = 1
	}
	if y0 < y1 {
		sy = 1
	}
	err := dx - dy
	for {
		c.Set(x0, y0)
		if x0 == x1 && y0 == y1 {
			return
		}
		e2 := 2 * err
		if e2 > -dy {
			err -= dy
			x0 += sx
		}
		if e2 < dx {
			err += dx
			y0 += sy
		}
	}
}

func (c *Canvas) String() string {
	var b strings.Builder
	b.Grow(c.Height * (c.Width*3 + 1))
	for _, row := range c.Grid {
		b.WriteString(string(row))
		b.WriteByte('\n')
	}
	return b.String()
}

// Viewport maps a world rectangle onto the canvas dots. World y grows
// downward, like screen rows.
type Viewport struct {
	MinX, MinY, MaxX, MaxY float64
}

// FitPoints returns the bounding box of pts grown by margin on every side.
// Degenerate extents are widened to one unit.
func FitPoints(pts []dynamo.Point2, margin float64) Viewport {
	if len(pts) == 0 {
		return Viewport{MinX: -1, MinY: -1, MaxX: 1, MaxY: 1}
	}
	v := Viewport{MinX: math.Inf(1), MinY: math.Inf(1), MaxX: math.Inf(-1), MaxY: math.Inf(-1)}
	for _, p := range pts {
		if !finite(p) {
			continue
		}
		v.MinX, v.MaxX = math.Min(v.MinX, p.X), math.Max(v.MaxX, p.X)
		v.MinY, v.MaxY = math.Min(v.MinY, p.Y), math.Max(v.MaxY, p.Y)
	}
	if math.IsInf(v.MinX, 1) {
		return Viewport{MinX: -1, MinY: -1, MaxX: 1, MaxY: 1}
	}
	if v.MaxX-v.MinX == 0 {
		v.MinX, v.MaxX = v.MinX-0.5, v.MaxX+0.5
	}
	if v.MaxY-v.MinY == 0 {
		v.MinY, v.MaxY = v.MinY-0.5, v.MaxY+0.5
	}
	return Viewport{MinX: v.MinX - margin, MinY: v.MinY - margin, MaxX: v.MaxX + margin, MaxY: v.MaxY + margin}
}

// Centered is a square viewport of half-width reach around the origin.
func Centered(reach float64) Viewport {
	return Viewport{MinX: -reach, MinY: -reach, MaxX: reach, MaxY: reach}
}

// Map converts a world point into dot coordinates on c.
func (v Viewport) Map(c *Canvas, p dynamo.Point2) (int, int) {
	w, h := c.Dots()
	x := (p.X - v.MinX) / (v.MaxX - v.MinX) * float64(w-1)
	y := (p.Y - v.MinY) / (v.MaxY - v.MinY) * float64(h-1)
	return int(math.Round(x)), int(math.Round(y))
}

func finite(p dynamo.Point2) bool {
	return !math.IsNaN(p.X) && !math.IsNaN(p.Y) && !math.IsInf(p.X, 0) && !math.IsInf(p.Y, 0)
}

// PlotPath draws pts as a connected polyline. Non-finite points break the
// path.
func (c *Canvas) PlotPath(v Viewport, pts []dynamo.Point2) {
	havePrev := false
	var px, py int
	for _, p := range pts {
		if !finite(p) {
			havePrev = false
			continue
		}
		x, y := v.Map(c, p)
		if havePrev {
			c.DrawLine(px, py, x, y)
		} else {
			c.Set(x, y)
		}
		px, py, havePrev = x, y, true
	}
}

// PlotPoints lights one dot per point.
func (c *Canvas) PlotPoints(v Viewport, pts []dynamo.Point2) {
	for _, p := range pts {
		if !finite(p) {
			continue
		}
		c.Set(v.Map(c, p))
	}
}

func absInt(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
