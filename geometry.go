package ggrender

// Point is a 2D point or offset in logical pixels.
type Point struct {
	X, Y float64
}

// Pt is a convenience function to create a Point.
func Pt(x, y float64) Point {
	return Point{X: x, Y: y}
}

// Add returns the sum of two points (vector addition).
func (p Point) Add(q Point) Point {
	return Point{X: p.X + q.X, Y: p.Y + q.Y}
}

// Rect is an axis-aligned rectangle: origin plus size, in logical pixels.
type Rect struct {
	X, Y, W, H float64
}

// RectXYWH is a convenience function to create a Rect.
func RectXYWH(x, y, w, h float64) Rect {
	return Rect{X: x, Y: y, W: w, H: h}
}

// Empty reports whether the rectangle has no area.
func (r Rect) Empty() bool {
	return r.W <= 0 || r.H <= 0
}

// Translate returns the rectangle moved by the given offset.
func (r Rect) Translate(p Point) Rect {
	return Rect{X: r.X + p.X, Y: r.Y + p.Y, W: r.W, H: r.H}
}

// MaxX returns the right edge of the rectangle.
func (r Rect) MaxX() float64 { return r.X + r.W }

// MaxY returns the bottom edge of the rectangle.
func (r Rect) MaxY() float64 { return r.Y + r.H }

// Intersect returns the intersection of two rectangles.
// If the rectangles do not overlap, the result is empty.
func (r Rect) Intersect(s Rect) Rect {
	x := max(r.X, s.X)
	y := max(r.Y, s.Y)
	maxX := min(r.MaxX(), s.MaxX())
	maxY := min(r.MaxY(), s.MaxY())
	if maxX <= x || maxY <= y {
		return Rect{X: x, Y: y}
	}
	return Rect{X: x, Y: y, W: maxX - x, H: maxY - y}
}
