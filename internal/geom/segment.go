package geom

import "github.com/jakecoffman/cp"

// ClosestOnSegment returns the point of segment ab nearest to p.
func ClosestOnSegment(p, a, b Vec) Vec {
	ab := b.Sub(a)
	l2 := ab.LengthSq()
	if l2 == 0 {
		return a
	}
	t := p.Sub(a).Dot(ab) / l2
	if t < 0 {
		t = 0
	} else if t > 1 {
		t = 1
	}
	return a.Add(ab.Mult(t))
}

// SegmentIntersects reports whether segment ab touches the shape.
func SegmentIntersects(s Shape, a, b Vec) bool {
	if !finite(a.X, a.Y, b.X, b.Y) {
		return false
	}
	switch sh := s.(type) {
	case Circle:
		if sh.degenerate() {
			return false
		}
		return ClosestOnSegment(sh.C, a, b).Distance(sh.C) < sh.R
	case Box:
		if sh.degenerate() {
			return false
		}
		return SegmentHitsBB(sh.Bounds(), a, b)
	}
	return false
}

// SegmentHitsBB reports whether segment ab touches bounds bb.
func SegmentHitsBB(bb cp.BB, a, b Vec) bool {
	if bb.ContainsVect(a) || bb.ContainsVect(b) {
		return true
	}
	return bb.IntersectsSegment(a, b)
}
