package geom

import "github.com/jakecoffman/cp"

// Shape is a collidable primitive. The set of shapes is closed: Circle and Box.
type Shape interface {
	// Bounds returns the axis-aligned bounds of the shape.
	Bounds() cp.BB
	// Center returns the reference point used for headings and distances.
	Center() Vec
	// Translate returns a copy of the shape moved by d.
	Translate(d Vec) Shape

	shape()
}

// Circle is a disc with center C and radius R.
type Circle struct {
	C Vec
	R float64
}

// NewCircle creates a circle.
func NewCircle(x, y, r float64) Circle {
	return Circle{C: V(x, y), R: r}
}

// Bounds implements Shape.
func (c Circle) Bounds() cp.BB {
	return cp.NewBBForCircle(c.C, c.R)
}

// Center implements Shape.
func (c Circle) Center() Vec { return c.C }

// Translate implements Shape.
func (c Circle) Translate(d Vec) Shape {
	c.C = c.C.Add(d)
	return c
}

// At returns the circle re-centered on p.
func (c Circle) At(p Vec) Circle {
	c.C = p
	return c
}

func (c Circle) degenerate() bool {
	return !(c.R > 0) || !finite(c.C.X, c.C.Y, c.R)
}

func (Circle) shape() {}

// Box is an axis-aligned rectangle with top-left Origin and size Extent.
type Box struct {
	Origin Vec
	Extent Vec
}

// NewBox creates a box from its top-left corner and size.
func NewBox(x, y, w, h float64) Box {
	return Box{Origin: V(x, y), Extent: V(w, h)}
}

// Min returns the top-left corner.
func (b Box) Min() Vec { return b.Origin }

// Max returns the bottom-right corner.
func (b Box) Max() Vec { return b.Origin.Add(b.Extent) }

// Bounds implements Shape.
func (b Box) Bounds() cp.BB {
	max := b.Max()
	return cp.BB{L: b.Origin.X, B: b.Origin.Y, R: max.X, T: max.Y}
}

// Center implements Shape.
func (b Box) Center() Vec {
	return b.Origin.Add(b.Extent.Mult(0.5))
}

// Translate implements Shape.
func (b Box) Translate(d Vec) Shape {
	b.Origin = b.Origin.Add(d)
	return b
}

func (b Box) degenerate() bool {
	return !(b.Extent.X > 0) || !(b.Extent.Y > 0) ||
		!finite(b.Origin.X, b.Origin.Y, b.Extent.X, b.Extent.Y)
}

func (Box) shape() {}

// PointBB returns the zero-area bounds at p.
func PointBB(p Vec) cp.BB {
	return cp.BB{L: p.X, B: p.Y, R: p.X, T: p.Y}
}

// Union returns the smallest bounds containing both a and b.
func Union(a, b cp.BB) cp.BB {
	return a.Merge(b)
}

// Overlaps reports whether two bounds touch or overlap.
func Overlaps(a, b cp.BB) bool {
	return a.Intersects(b)
}
