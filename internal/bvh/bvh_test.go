package bvh

import (
	"math/rand"
	"testing"

	"github.com/jakecoffman/cp"

	"github.com/vovakirdan/danmaku/internal/geom"
	"github.com/vovakirdan/danmaku/internal/world"
)

func scatter(n int, seed int64) *world.World {
	rng := rand.New(rand.NewSource(seed))
	w := world.New()
	for i := 0; i < n; i++ {
		x := rng.Float64() * 1000
		y := rng.Float64() * 1000
		if i%2 == 0 {
			w.AddObject(geom.V(x, y), nil, geom.NewCircle(x, y, 5+rng.Float64()*10))
		} else {
			w.AddObject(geom.V(x, y), nil, geom.NewBox(x-8, y-4, 16, 8))
		}
	}
	return w
}

func ids(objs []*world.Object) []int {
	out := make([]int, len(objs))
	for i, o := range objs {
		out[i] = o.ID
	}
	return out
}

func TestEmptyIndex(t *testing.T) {
	idx := Build(nil)
	if got := idx.Query(cp.BB{L: -1e9, B: -1e9, R: 1e9, T: 1e9}); len(got) != 0 {
		t.Errorf("Query() on empty index = %v, expected empty", ids(got))
	}
	if idx.Len() != 0 || idx.Depth() != 0 {
		t.Errorf("Len/Depth = %d/%d, expected 0/0", idx.Len(), idx.Depth())
	}
	var nilIdx *Index
	if got := nilIdx.QuerySegment(geom.V(0, 0), geom.V(1, 1)); got != nil {
		t.Errorf("QuerySegment() on nil index = %v, expected nil", got)
	}
}

func TestQueryDisjointReturnsNothing(t *testing.T) {
	w := scatter(40, 1)
	idx := Build(w.Objects)
	got := idx.Query(cp.BB{L: 5000, B: 5000, R: 6000, T: 6000})
	if len(got) != 0 {
		t.Errorf("Query() = %v, expected empty", ids(got))
	}
}

func TestQueryAllReturnsEveryOwnerByID(t *testing.T) {
	w := scatter(57, 2)
	idx := Build(w.Objects)
	got := idx.Query(cp.BB{L: -100, B: -100, R: 1100, T: 1100})
	if len(got) != len(w.Objects) {
		t.Fatalf("Query() returned %d owners, expected %d", len(got), len(w.Objects))
	}
	for i := 1; i < len(got); i++ {
		if got[i-1].ID >= got[i].ID {
			t.Fatalf("results not ordered by ID: %v", ids(got))
		}
	}
}

func TestQueryMatchesLinearScan(t *testing.T) {
	w := scatter(120, 3)
	idx := Build(w.Objects)
	rng := rand.New(rand.NewSource(9))

	for i := 0; i < 50; i++ {
		x, y := rng.Float64()*1000, rng.Float64()*1000
		q := cp.BB{L: x, B: y, R: x + rng.Float64()*200, T: y + rng.Float64()*200}

		var want []int
		for _, o := range w.Objects {
			if o.AABB.Intersects(q) {
				want = append(want, o.ID)
			}
		}
		got := ids(idx.Query(q))
		if len(got) != len(want) {
			t.Fatalf("query %+v: got %v, expected %v", q, got, want)
		}
		for j := range got {
			if got[j] != want[j] {
				t.Fatalf("query %+v: got %v, expected %v", q, got, want)
			}
		}
	}
}

func TestStructureInvariants(t *testing.T) {
	w := scatter(33, 4)
	idx := Build(w.Objects)
	seen := 0

	idx.Walk(func(n *Node, depth int) {
		if n.Leaf() {
			if len(n.Owners) == 0 || len(n.Owners) > LeafSize {
				t.Errorf("leaf at depth %d holds %d owners", depth, len(n.Owners))
			}
			seen += len(n.Owners)
			return
		}
		if n.Right == nil {
			t.Errorf("internal node at depth %d has one child", depth)
			return
		}
		union := n.Left.Bounds.Merge(n.Right.Bounds)
		if union != n.Bounds {
			t.Errorf("node bounds %+v != union of children %+v", n.Bounds, union)
		}
	})

	if seen != len(w.Objects) {
		t.Errorf("leaves hold %d owners, expected %d", seen, len(w.Objects))
	}
	if idx.Len() != len(w.Objects) {
		t.Errorf("Len() = %d, expected %d", idx.Len(), len(w.Objects))
	}
}

func TestMedianSplitAlternatesAxis(t *testing.T) {
	w := world.New()
	// Four owners on a line along x: the root split must separate the two
	// left-most from the two right-most.
	for _, x := range []float64{30, 10, 40, 20} {
		w.AddObject(geom.V(x, 0), nil, geom.NewCircle(x, 0, 1))
	}
	idx := Build(w.Objects)
	root := idx.Root()
	if root.Leaf() {
		t.Fatal("root should be internal")
	}
	if root.Left.Bounds.R > root.Right.Bounds.L {
		t.Errorf("left bounds %+v overlap right bounds %+v", root.Left.Bounds, root.Right.Bounds)
	}
	if idx.Depth() != 2 {
		t.Errorf("Depth() = %d, expected 2", idx.Depth())
	}
}

func TestQuerySegment(t *testing.T) {
	w := world.New()
	a := w.AddObject(geom.V(50, 0), nil, geom.NewBox(45, -5, 10, 10))
	w.AddObject(geom.V(50, 100), nil, geom.NewBox(45, 95, 10, 10))
	c := w.AddObject(geom.V(150, 0), nil, geom.NewCircle(150, 0, 5))
	w.AddObject(geom.V(-200, -200), nil, geom.NewCircle(-200, -200, 5))
	idx := Build(w.Objects)

	got := ids(idx.QuerySegment(geom.V(0, 0), geom.V(200, 0)))
	if len(got) != 2 || got[0] != a.ID || got[1] != c.ID {
		t.Errorf("QuerySegment() = %v, expected [%d %d]", got, a.ID, c.ID)
	}
}

func TestBuildDoesNotReorderInput(t *testing.T) {
	w := scatter(10, 5)
	before := ids(w.Objects)
	Build(w.Objects)
	after := ids(w.Objects)
	for i := range before {
		if before[i] != after[i] {
			t.Fatal("Build mutated the caller's slice")
		}
	}
}
