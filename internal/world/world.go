// Package world holds the static geometry a simulation runs against:
// tagged collision primitives grouped into placed objects, plus the
// providers the rest of the engine consumes.
package world

import (
	"slices"

	"github.com/jakecoffman/cp"

	"github.com/vovakirdan/danmaku/internal/geom"
)

// Well-known tags.
const (
	TagEnemy = "enemy"
	TagRiver = "river"
	TagWall  = "wall"
)

// Tags is a small set of collision filter labels.
type Tags []string

// Has reports whether tag is present.
func (t Tags) Has(tag string) bool {
	return slices.Contains(t, tag)
}

// Intersects reports whether any tag in other is present.
func (t Tags) Intersects(other []string) bool {
	for _, tag := range other {
		if t.Has(tag) {
			return true
		}
	}
	return false
}

// Primitive is one collidable shape owned by an object or an enemy.
// Disabled primitives never take part in overlap tests.
type Primitive struct {
	ID      int
	Owner   int
	Shape   geom.Shape
	Enabled bool
	Tags    Tags
}

// Object is a placed static thing. Its AABB covers every owned primitive and
// is only used for broad-phase indexing.
type Object struct {
	ID         int
	Pos        geom.Vec
	AABB       cp.BB
	Primitives []*Primitive
}

// Bounds returns the indexed bounds of the object.
func (o *Object) Bounds() cp.BB { return o.AABB }

// Position returns the point the index splits on.
func (o *Object) Position() geom.Vec { return o.Pos }

// RefreshAABB recomputes the AABB as the union of primitive bounds, or the
// point at Pos when the object owns no primitives.
func (o *Object) RefreshAABB() {
	o.AABB = BoundsOf(o.Pos, o.Primitives)
}

// BoundsOf returns the union of the primitives' bounds, falling back to the
// point at pos.
func BoundsOf(pos geom.Vec, prims []*Primitive) cp.BB {
	if len(prims) == 0 {
		return geom.PointBB(pos)
	}
	bb := prims[0].Shape.Bounds()
	for _, p := range prims[1:] {
		bb = geom.Union(bb, p.Shape.Bounds())
	}
	return bb
}

// EnemyProvider exposes the live enemy geometry. Enemies move, so they are
// never indexed and are scanned on every query instead.
type EnemyProvider interface {
	EnemyPrimitives() []*Primitive
}

// World owns the static objects and the enemy set of one loaded stage.
// IDs are handed out in creation order, so sorting by ID is stable across
// rebuilds of the same stage.
type World struct {
	Objects []*Object
	Enemies []*Primitive

	nextObject    int
	nextPrimitive int
}

// New creates an empty world.
func New() *World {
	return &World{nextObject: 1, nextPrimitive: 1}
}

// AddObject places a static object at pos owning the given shapes, given in
// world coordinates.
func (w *World) AddObject(pos geom.Vec, tags Tags, shapes ...geom.Shape) *Object {
	obj := &Object{ID: w.nextObject, Pos: pos}
	w.nextObject++
	for _, s := range shapes {
		obj.Primitives = append(obj.Primitives, w.newPrimitive(obj.ID, s, tags))
	}
	obj.RefreshAABB()
	w.Objects = append(w.Objects, obj)
	return obj
}

// AddEnemy registers unindexed enemy geometry. The enemy tag is always set.
func (w *World) AddEnemy(shape geom.Shape, tags Tags) *Primitive {
	if !tags.Has(TagEnemy) {
		tags = append(slices.Clone(tags), TagEnemy)
	}
	p := w.newPrimitive(0, shape, tags)
	w.Enemies = append(w.Enemies, p)
	return p
}

// NewPrimitive allocates a free-standing primitive, such as a player hit
// circle, from the same ID space as the world geometry.
func (w *World) NewPrimitive(shape geom.Shape, tags Tags) *Primitive {
	return w.newPrimitive(0, shape, tags)
}

func (w *World) newPrimitive(owner int, shape geom.Shape, tags Tags) *Primitive {
	p := &Primitive{ID: w.nextPrimitive, Owner: owner, Shape: shape, Enabled: true, Tags: tags}
	w.nextPrimitive++
	return p
}

// EnemyPrimitives implements EnemyProvider.
func (w *World) EnemyPrimitives() []*Primitive {
	return w.Enemies
}

// Primitives returns every static primitive in object order.
func (w *World) Primitives() []*Primitive {
	var out []*Primitive
	for _, o := range w.Objects {
		out = append(out, o.Primitives...)
	}
	return out
}
