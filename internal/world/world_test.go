package world

import (
	"testing"

	"github.com/vovakirdan/danmaku/internal/geom"
)

func TestObjectAABBCoversPrimitives(t *testing.T) {
	w := New()
	obj := w.AddObject(geom.V(0, 0), Tags{TagWall},
		geom.NewBox(-10, -5, 20, 10),
		geom.NewCircle(30, 0, 5),
	)

	bb := obj.AABB
	if bb.L != -10 || bb.B != -5 || bb.R != 35 || bb.T != 5 {
		t.Errorf("AABB = %+v, expected {-10 -5 35 5}", bb)
	}
	for _, p := range obj.Primitives {
		pb := p.Shape.Bounds()
		if pb.L < bb.L || pb.R > bb.R || pb.B < bb.B || pb.T > bb.T {
			t.Errorf("primitive %d bounds %+v escape object AABB %+v", p.ID, pb, bb)
		}
	}
}

func TestObjectWithoutPrimitivesIsPoint(t *testing.T) {
	w := New()
	obj := w.AddObject(geom.V(7, 9), nil)
	if obj.AABB.L != 7 || obj.AABB.R != 7 || obj.AABB.B != 9 || obj.AABB.T != 9 {
		t.Errorf("AABB = %+v, expected point at (7, 9)", obj.AABB)
	}
}

func TestIDsAreSequential(t *testing.T) {
	w := New()
	a := w.AddObject(geom.V(0, 0), nil, geom.NewCircle(0, 0, 1))
	b := w.AddObject(geom.V(5, 0), nil, geom.NewCircle(5, 0, 1))
	e := w.AddEnemy(geom.NewCircle(9, 9, 2), nil)

	if a.ID != 1 || b.ID != 2 {
		t.Errorf("object IDs = %d, %d, expected 1, 2", a.ID, b.ID)
	}
	if a.Primitives[0].ID >= b.Primitives[0].ID || b.Primitives[0].ID >= e.ID {
		t.Error("primitive IDs should increase in creation order")
	}
	if !e.Tags.Has(TagEnemy) {
		t.Error("enemy primitive missing enemy tag")
	}
	if len(w.EnemyPrimitives()) != 1 {
		t.Errorf("EnemyPrimitives() len = %d, expected 1", len(w.EnemyPrimitives()))
	}
}

func TestTagsIntersects(t *testing.T) {
	tags := Tags{TagRiver, "spikes"}
	if !tags.Intersects([]string{TagEnemy, TagRiver}) {
		t.Error("expected intersection on river")
	}
	if tags.Intersects([]string{TagEnemy}) {
		t.Error("unexpected intersection")
	}
	if tags.Intersects(nil) {
		t.Error("empty filter must not intersect")
	}
}
