package geom

import "math"

// Kind classifies how two shapes overlap. It decides whether a mover slides
// along a wall face or deflects off a corner.
type Kind int

const (
	KindNone       Kind = iota // no overlap
	KindRadial                 // circle against circle
	KindVertical               // pushed along y, mover within the box's x range
	KindHorizontal             // pushed along x, mover within the box's y range
	KindMiddle                 // mover center inside the box
	KindCorner                 // mover outside both ranges, nearest corner wins
)

// String returns a human-readable name.
func (k Kind) String() string {
	switch k {
	case KindRadial:
		return "radial"
	case KindVertical:
		return "vertical"
	case KindHorizontal:
		return "horizontal"
	case KindMiddle:
		return "middle"
	case KindCorner:
		return "corner"
	default:
		return "none"
	}
}

// Overlap is the result of a narrow-phase test. Direction is a unit vector
// pointing away from the static shape; moving the mover by Direction*Depth
// separates the two.
type Overlap struct {
	Overlaps  bool
	Depth     float64
	Direction Vec
	Kind      Kind
}

// Resolve returns p displaced out of the static shape.
func (o Overlap) Resolve(p Vec) Vec {
	if !o.Overlaps {
		return p
	}
	return p.Add(o.Direction.Mult(o.Depth))
}

// fallbackDir is used when the two centers coincide.
var fallbackDir = V(0, 1)

var noOverlap = Overlap{}

// Intersect tests the moving shape against a static one. Only the moving
// shape is ever displaced by the result.
func Intersect(moving, other Shape) Overlap {
	switch m := moving.(type) {
	case Circle:
		switch o := other.(type) {
		case Circle:
			return CircleCircle(m, o)
		case Box:
			return CircleBox(m, o)
		}
	case Box:
		switch o := other.(type) {
		case Circle:
			return BoxCircle(m, o)
		case Box:
			return BoxBox(m, o)
		}
	}
	return noOverlap
}

// CircleCircle overlaps when the center distance is below the sum of radii.
func CircleCircle(m, o Circle) Overlap {
	if m.degenerate() || o.degenerate() {
		return noOverlap
	}
	d := m.C.Sub(o.C)
	dist := d.Length()
	sum := m.R + o.R
	if dist >= sum {
		return noOverlap
	}
	dir := fallbackDir
	if dist > 0 {
		dir = d.Mult(1 / dist)
	}
	return Overlap{Overlaps: true, Depth: sum - dist, Direction: dir, Kind: KindRadial}
}

// CircleBox classifies the circle center against the box's x and y ranges.
// Within the x range the push is vertical, within the y range horizontal,
// inside both it takes the smaller push (ties go horizontal), and outside
// both the nearest corner is tested as a zero-radius circle.
func CircleBox(m Circle, b Box) Overlap {
	if m.degenerate() || b.degenerate() {
		return noOverlap
	}
	lo, hi := b.Min(), b.Max()
	c := m.C
	inX := c.X >= lo.X && c.X <= hi.X
	inY := c.Y >= lo.Y && c.Y <= hi.Y

	switch {
	case inX && inY:
		v := axisPush(c.Y, m.R, lo.Y, hi.Y)
		h := axisPush(c.X, m.R, lo.X, hi.X)
		if math.Abs(v) < math.Abs(h) {
			return axisOverlap(V(0, sign(v)), math.Abs(v), KindMiddle)
		}
		return axisOverlap(V(sign(h), 0), math.Abs(h), KindMiddle)
	case inX:
		v := axisPush(c.Y, m.R, lo.Y, hi.Y)
		if v == 0 {
			return noOverlap
		}
		return axisOverlap(V(0, sign(v)), math.Abs(v), KindVertical)
	case inY:
		h := axisPush(c.X, m.R, lo.X, hi.X)
		if h == 0 {
			return noOverlap
		}
		return axisOverlap(V(sign(h), 0), math.Abs(h), KindHorizontal)
	}

	corner := V(lo.X, lo.Y)
	if c.X > hi.X {
		corner.X = hi.X
	}
	if c.Y > hi.Y {
		corner.Y = hi.Y
	}
	d := c.Sub(corner)
	dist := d.Length()
	if dist >= m.R || dist == 0 {
		return noOverlap
	}
	return Overlap{Overlaps: true, Depth: m.R - dist, Direction: d.Mult(1 / dist), Kind: KindCorner}
}

// BoxCircle is CircleBox seen from the box's side: same classification,
// direction reversed so the box is the one displaced.
func BoxCircle(b Box, o Circle) Overlap {
	res := CircleBox(o, b)
	if !res.Overlaps {
		return noOverlap
	}
	res.Direction = res.Direction.Mult(-1)
	return res
}

// BoxBox pushes the moving box out along the axis of least penetration.
func BoxBox(m, o Box) Overlap {
	if m.degenerate() || o.degenerate() {
		return noOverlap
	}
	mlo, mhi := m.Min(), m.Max()
	olo, ohi := o.Min(), o.Max()
	ox := math.Min(mhi.X, ohi.X) - math.Max(mlo.X, olo.X)
	oy := math.Min(mhi.Y, ohi.Y) - math.Max(mlo.Y, olo.Y)
	if ox <= 0 || oy <= 0 {
		return noOverlap
	}
	d := m.Center().Sub(o.Center())
	if oy < ox {
		dir := V(0, 1)
		if d.Y < 0 {
			dir.Y = -1
		}
		return Overlap{Overlaps: true, Depth: oy, Direction: dir, Kind: KindVertical}
	}
	dir := V(1, 0)
	if d.X < 0 {
		dir.X = -1
	}
	return Overlap{Overlaps: true, Depth: ox, Direction: dir, Kind: KindHorizontal}
}

// axisPush returns the signed displacement needed to move a span
// [c-r, c+r] out of [lo, hi] on one axis, choosing the side nearest
// to the center. Zero means the spans do not overlap.
func axisPush(c, r, lo, hi float64) float64 {
	if c+r <= lo || c-r >= hi {
		return 0
	}
	mid := (lo + hi) / 2
	if c < mid {
		return -(c + r - lo)
	}
	return hi - (c - r)
}

func axisOverlap(dir Vec, depth float64, kind Kind) Overlap {
	if !(depth > 0) {
		return noOverlap
	}
	return Overlap{Overlaps: true, Depth: depth, Direction: dir, Kind: kind}
}

func sign(v float64) float64 {
	if v < 0 {
		return -1
	}
	return 1
}
