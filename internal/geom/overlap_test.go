package geom

import (
	"math"
	"testing"
)

func near(a, b float64) bool {
	return math.Abs(a-b) < 1e-6
}

func TestCircleCircleDepthAndResolve(t *testing.T) {
	mover := NewCircle(20, 0, 10)
	other := NewCircle(0, 0, 15)

	res := Intersect(mover, other)
	if !res.Overlaps {
		t.Fatal("expected overlap")
	}
	if !near(res.Depth, 5) {
		t.Errorf("Depth = %v, expected 5", res.Depth)
	}
	if res.Kind != KindRadial {
		t.Errorf("Kind = %v, expected radial", res.Kind)
	}

	moved := res.Resolve(mover.C)
	if d := moved.Distance(other.C); !near(d, 25) {
		t.Errorf("distance after resolve = %v, expected 25", d)
	}
	if other.C.X != 0 || other.C.Y != 0 {
		t.Error("static circle must not move")
	}
}

func TestCircleCircleCoincidentCenters(t *testing.T) {
	res := CircleCircle(NewCircle(5, 5, 2), NewCircle(5, 5, 3))
	if !res.Overlaps {
		t.Fatal("expected overlap")
	}
	if res.Direction != fallbackDir {
		t.Errorf("Direction = %v, expected fallback %v", res.Direction, fallbackDir)
	}
	if !near(res.Depth, 5) {
		t.Errorf("Depth = %v, expected 5", res.Depth)
	}
	if math.IsNaN(res.Resolve(V(5, 5)).X) {
		t.Error("resolve produced NaN")
	}
}

func TestCircleCircleTouching(t *testing.T) {
	if CircleCircle(NewCircle(0, 0, 5), NewCircle(10, 0, 5)).Overlaps {
		t.Error("touching circles must not overlap")
	}
}

func TestCircleBoxClassification(t *testing.T) {
	box := NewBox(0, 0, 100, 50)

	tests := []struct {
		name   string
		circle Circle
		kind   Kind
		dir    Vec
		depth  float64
	}{
		{
			name:   "above within x range",
			circle: NewCircle(50, -5, 10),
			kind:   KindVertical,
			dir:    V(0, -1),
			depth:  5,
		},
		{
			name:   "below within x range",
			circle: NewCircle(50, 52, 10),
			kind:   KindVertical,
			dir:    V(0, 1),
			depth:  8,
		},
		{
			name:   "left within y range",
			circle: NewCircle(-4, 25, 10),
			kind:   KindHorizontal,
			dir:    V(-1, 0),
			depth:  6,
		},
		{
			name:   "right within y range",
			circle: NewCircle(105, 25, 10),
			kind:   KindHorizontal,
			dir:    V(1, 0),
			depth:  5,
		},
		{
			name:   "inside near top edge",
			circle: NewCircle(50, 2, 3),
			kind:   KindMiddle,
			dir:    V(0, -1),
			depth:  5,
		},
		{
			name:   "inside near right edge",
			circle: NewCircle(97, 25, 3),
			kind:   KindMiddle,
			dir:    V(1, 0),
			depth:  6,
		},
		{
			name:   "corner",
			circle: NewCircle(103, 54, 10),
			kind:   KindCorner,
			dir:    V(0.6, 0.8),
			depth:  5,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			res := Intersect(tc.circle, box)
			if !res.Overlaps {
				t.Fatal("expected overlap")
			}
			if res.Kind != tc.kind {
				t.Errorf("Kind = %v, expected %v", res.Kind, tc.kind)
			}
			if !near(res.Direction.X, tc.dir.X) || !near(res.Direction.Y, tc.dir.Y) {
				t.Errorf("Direction = %v, expected %v", res.Direction, tc.dir)
			}
			if !near(res.Depth, tc.depth) {
				t.Errorf("Depth = %v, expected %v", res.Depth, tc.depth)
			}
		})
	}
}

func TestCircleBoxAxisResolutionMovesOneAxis(t *testing.T) {
	box := NewBox(0, 0, 100, 50)
	for _, c := range []Circle{NewCircle(30, -3, 10), NewCircle(-2, 10, 10), NewCircle(70, 55, 10), NewCircle(104, 40, 10)} {
		res := CircleBox(c, box)
		if res.Kind == KindCorner {
			t.Fatalf("circle %v classified as corner", c.C)
		}
		moved := res.Resolve(c.C)
		switch res.Kind {
		case KindVertical:
			if moved.X != c.C.X {
				t.Errorf("vertical push changed x: %v -> %v", c.C, moved)
			}
		case KindHorizontal:
			if moved.Y != c.C.Y {
				t.Errorf("horizontal push changed y: %v -> %v", c.C, moved)
			}
		default:
			t.Errorf("Kind = %v, expected vertical or horizontal", res.Kind)
		}
		if CircleBox(c.At(moved), box).Overlaps {
			t.Errorf("circle %v still overlaps after resolve", c.C)
		}
	}
}

func TestCircleBoxMiddleTieGoesHorizontal(t *testing.T) {
	res := CircleBox(NewCircle(10, 10, 1), NewBox(0, 0, 20, 20))
	if res.Kind != KindMiddle {
		t.Fatalf("Kind = %v, expected middle", res.Kind)
	}
	if res.Direction.Y != 0 {
		t.Errorf("Direction = %v, expected a horizontal push on a tie", res.Direction)
	}
}

func TestDegenerateShapes(t *testing.T) {
	tests := []struct {
		name string
		a, b Shape
	}{
		{"zero radius mover", NewCircle(0, 0, 0), NewCircle(0, 0, 5)},
		{"negative radius other", NewCircle(0, 0, 5), NewCircle(1, 0, -2)},
		{"zero width box", NewCircle(0, 0, 5), NewBox(0, 0, 0, 10)},
		{"zero height box", NewCircle(0, 0, 5), NewBox(-5, 0, 10, 0)},
		{"NaN center", NewCircle(math.NaN(), 0, 5), NewBox(0, 0, 10, 10)},
		{"degenerate moving box", NewBox(0, 0, 0, 0), NewBox(0, 0, 10, 10)},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			res := Intersect(tc.a, tc.b)
			if res.Overlaps {
				t.Errorf("Overlaps = true, expected false")
			}
			if math.IsNaN(res.Depth) || math.IsNaN(res.Direction.X) || math.IsNaN(res.Direction.Y) {
				t.Errorf("result contains NaN: %+v", res)
			}
		})
	}
}

func TestBoxBoxMinimumAxis(t *testing.T) {
	res := BoxBox(NewBox(8, 2, 10, 10), NewBox(0, 0, 10, 20))
	if !res.Overlaps || res.Kind != KindHorizontal {
		t.Fatalf("got %+v, expected horizontal overlap", res)
	}
	if !near(res.Depth, 2) || res.Direction != V(1, 0) {
		t.Errorf("Depth/Direction = %v/%v, expected 2/(1,0)", res.Depth, res.Direction)
	}
}

func TestBoxCircleIsInverse(t *testing.T) {
	c := NewCircle(50, -5, 10)
	b := NewBox(0, 0, 100, 50)
	fwd := CircleBox(c, b)
	inv := BoxCircle(b, c)
	if !inv.Overlaps || !near(inv.Depth, fwd.Depth) {
		t.Fatalf("inverse = %+v, forward = %+v", inv, fwd)
	}
	if !near(inv.Direction.Y, -fwd.Direction.Y) {
		t.Errorf("Direction = %v, expected reverse of %v", inv.Direction, fwd.Direction)
	}
}

func TestSegmentIntersects(t *testing.T) {
	tests := []struct {
		name     string
		shape    Shape
		a, b     Vec
		expected bool
	}{
		{"through circle", NewCircle(5, 0, 2), V(0, 0), V(10, 0), true},
		{"misses circle", NewCircle(5, 5, 2), V(0, 0), V(10, 0), false},
		{"through box", NewBox(4, -1, 2, 2), V(0, 0), V(10, 0), true},
		{"ends inside box", NewBox(4, -1, 2, 2), V(0, 0), V(5, 0), true},
		{"misses box", NewBox(4, 3, 2, 2), V(0, 0), V(10, 0), false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := SegmentIntersects(tc.shape, tc.a, tc.b); got != tc.expected {
				t.Errorf("SegmentIntersects() = %v, expected %v", got, tc.expected)
			}
		})
	}
}

func TestHeadings(t *testing.T) {
	p := Polar(90, 2)
	if !near(p.X, 0) || !near(p.Y, 2) {
		t.Errorf("Polar(90, 2) = %v, expected (0, 2)", p)
	}
	if h := HeadingTo(V(0, 0), V(-1, 0)); !near(NormalizeDeg(h), 180) {
		t.Errorf("HeadingTo = %v, expected 180", h)
	}
	if d := NormalizeDeg(-45); !near(d, 315) {
		t.Errorf("NormalizeDeg(-45) = %v, expected 315", d)
	}
	if d := AngleDiff(350, 10); !near(d, 20) {
		t.Errorf("AngleDiff(350, 10) = %v, expected 20", d)
	}
}
