package quad

import "image/color"

// Point represents a 2D point or vector in a node-local coordinate frame.
type Point struct {
	X, Y float32
}

// Pt is a convenience function to create a Point.
func Pt(x, y float32) Point {
	return Point{X: x, Y: y}
}

// Add returns the sum of two points (vector addition).
func (p Point) Add(q Point) Point {
	return Point{X: p.X + q.X, Y: p.Y + q.Y}
}

// Sub returns the difference of two points (vector subtraction).
func (p Point) Sub(q Point) Point {
	return Point{X: p.X - q.X, Y: p.Y - q.Y}
}

// Mul returns the point scaled by a scalar.
func (p Point) Mul(s float32) Point {
	return Point{X: p.X * s, Y: p.Y * s}
}

// Mid returns the midpoint of two points.
func (p Point) Mid(q Point) Point {
	return Point{X: (p.X + q.X) / 2, Y: (p.Y + q.Y) / 2}
}

// MaxExtent returns the larger per-axis absolute difference between two
// points. This is the quantity the stroke router thresholds against.
func (p Point) MaxExtent(q Point) float32 {
	dx := abs32(p.X - q.X)
	dy := abs32(p.Y - q.Y)
	if dx > dy {
		return dx
	}
	return dy
}

func abs32(v float32) float32 {
	if v < 0 {
		return -v
	}
	return v
}

// Rect represents an axis-aligned destination rectangle.
type Rect struct {
	MinX, MinY float32
	MaxX, MaxY float32
}

// Width returns the width of the rectangle.
func (r Rect) Width() float32 {
	return r.MaxX - r.MinX
}

// Height returns the height of the rectangle.
func (r Rect) Height() float32 {
	return r.MaxY - r.MinY
}

// CenterX returns the rectangle's horizontal center.
func (r Rect) CenterX() float32 {
	return (r.MinX + r.MaxX) / 2
}

// CenterY returns the rectangle's vertical center.
func (r Rect) CenterY() float32 {
	return (r.MinY + r.MaxY) / 2
}

// Quadrant returns the quarter of r occupied by the child at corner c:
// half the size, offset toward the corner's half on each axis.
func (r Rect) Quadrant(c Corner) Rect {
	w := r.Width() / 4
	h := r.Height() / 4
	cx := r.CenterX() + (float32(c.X)-0.5)*r.Width()/2
	cy := r.CenterY() + (float32(c.Y)-0.5)*r.Height()/2
	return Rect{MinX: cx - w, MinY: cy - h, MaxX: cx + w, MaxY: cy + h}
}

// Project maps a point in the node-local [-1,1] frame into the rectangle.
func (r Rect) Project(p Point) Point {
	return Point{
		X: r.CenterX() + p.X*r.Width()/2,
		Y: r.CenterY() + p.Y*r.Height()/2,
	}
}

// RGBA is an 8-bit-per-channel straight-alpha color.
type RGBA struct {
	R, G, B, A uint8
}

// Color converts RGBA to the standard color.Color interface.
func (c RGBA) Color() color.Color {
	return color.NRGBA{R: c.R, G: c.G, B: c.B, A: c.A}
}

// FromColor converts a standard color.Color to RGBA.
func FromColor(c color.Color) RGBA {
	r, g, b, a := c.RGBA()
	return RGBA{
		R: uint8(r >> 8),
		G: uint8(g >> 8),
		B: uint8(b >> 8),
		A: uint8(a >> 8),
	}
}
