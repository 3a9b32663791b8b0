package ggrender

// PathVerb identifies a path building command.
type PathVerb uint8

const (
	// VerbRect appends an axis-aligned rectangle.
	VerbRect PathVerb = iota
	// VerbRoundedRect appends a rectangle with rounded corners.
	VerbRoundedRect
)

// PathElement is a single command in a Path.
type PathElement struct {
	Verb   PathVerb
	Rect   Rect
	Radius float64 // corner radius for VerbRoundedRect
}

// Path is a minimal path builder covering the shapes this backend draws.
// The zero value is an empty path ready for use.
type Path struct {
	elements []PathElement
}

// Rect appends an axis-aligned rectangle to the path.
func (p *Path) Rect(r Rect) {
	p.elements = append(p.elements, PathElement{Verb: VerbRect, Rect: r})
}

// RoundedRect appends a rectangle with the given corner radius to the path.
func (p *Path) RoundedRect(r Rect, radius float64) {
	p.elements = append(p.elements, PathElement{Verb: VerbRoundedRect, Rect: r, Radius: radius})
}

// Elements returns the path's commands in append order.
// The returned slice is owned by the path and must not be modified.
func (p *Path) Elements() []PathElement {
	return p.elements
}

// Empty reports whether the path has no elements.
func (p *Path) Empty() bool {
	return len(p.elements) == 0
}

// Bounds returns the union of the bounding rectangles of all elements.
// An empty path has zero bounds.
func (p *Path) Bounds() Rect {
	if len(p.elements) == 0 {
		return Rect{}
	}
	b := p.elements[0].Rect
	for _, e := range p.elements[1:] {
		r := e.Rect
		x := min(b.X, r.X)
		y := min(b.Y, r.Y)
		maxX := max(b.MaxX(), r.MaxX())
		maxY := max(b.MaxY(), r.MaxY())
		b = Rect{X: x, Y: y, W: maxX - x, H: maxY - y}
	}
	return b
}
