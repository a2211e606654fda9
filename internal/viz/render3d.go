package viz

import (
	"math"

	"github.com/san-kum/chaoslab/internal/dynamo"
)

type Vec3 struct {
	X, Y, Z float64
}

func (v Vec3) Add(o Vec3) Vec3      { return Vec3{v.X + o.X, v.Y + o.Y, v.Z + o.Z} }
func (v Vec3) Sub(o Vec3) Vec3      { return Vec3{v.X - o.X, v.Y - o.Y, v.Z - o.Z} }
func (v Vec3) Scale(s float64) Vec3 { return Vec3{v.X * s, v.Y * s, v.Z * s} }

// Camera is a perspective projection of world space onto a canvas. World
// points are shifted by Center and multiplied by Scale before rotation, so
// the interesting region lands roughly inside the unit cube.
type Camera struct {
	Center           Vec3
	Scale            float64
	Distance         float64
	RotX, RotY, RotZ float64
	Zoom             float64
}

// NewLorenzCamera frames the classic attractor: x,y in ±25 and z in 0..50.
// World z is drawn upward.
func NewLorenzCamera() *Camera {
	return &Camera{Center: Vec3{0, 0, 25}, Scale: 0.04, Distance: 5, RotX: -math.Pi / 2, Zoom: 1}
}

func (c *Camera) RotateX(a float64) { c.RotX += a }
func (c *Camera) RotateY(a float64) { c.RotY += a }
func (c *Camera) RotateZ(a float64) { c.RotZ += a }
func (c *Camera) ZoomIn()           { c.Zoom = math.Min(10, c.Zoom*1.2) }
func (c *Camera) ZoomOut()          { c.Zoom = math.Max(0.1, c.Zoom/1.2) }

func (c *Camera) rotate(p Vec3) Vec3 {
	cx, sx := math.Cos(c.RotX), math.Sin(c.RotX)
	p.Y, p.Z = p.Y*cx-p.Z*sx, p.Y*sx+p.Z*cx
	cy, sy := math.Cos(c.RotY), math.Sin(c.RotY)
	p.X, p.Z = p.X*cy+p.Z*sy, -p.X*sy+p.Z*cy
	cz, sz := math.Cos(c.RotZ), math.Sin(c.RotZ)
	p.X, p.Y = p.X*cz-p.Y*sz, p.X*sz+p.Y*cz
	return p
}

// Project maps p to dot coordinates on a w×h dot surface. ok is false for
// points behind the camera, off the surface, or NaN.
func (c *Camera) Project(p Vec3, w, h int) (x, y int, ok bool) {
	r := c.rotate(p.Sub(c.Center).Scale(c.Scale * c.Zoom))
	if !(r.Z < c.Distance-0.1) || math.IsNaN(r.X) || math.IsNaN(r.Y) {
		return 0, 0, false
	}
	persp := c.Distance / (c.Distance - r.Z)
	unit := float64(min(w, h)) / 2
	x = int(r.X*persp*unit) + w/2
	y = int(-r.Y*persp*unit) + h/2
	return x, y, x >= 0 && x < w && y >= 0 && y < h
}

// DrawTrail3D projects pts through cam and connects consecutive visible
// points.
func (c *Canvas) DrawTrail3D(cam *Camera, pts []dynamo.Point3) {
	w, h := c.Dots()
	havePrev := false
	var px, py int
	for _, p := range pts {
		x, y, ok := cam.Project(Vec3{p.X, p.Y, p.Z}, w, h)
		if !ok {
			havePrev = false
			continue
		}
		if havePrev {
			c.DrawLine(px, py, x, y)
		} else {
			c.Set(x, y)
		}
		px, py, havePrev = x, y, true
	}
}
