// Package collision pushes moving shapes out of world geometry. It combines
// broad-phase candidates from the static index with the always-scanned enemy
// set and applies narrow-phase push-outs in order.
package collision

import (
	"slices"

	"github.com/vovakirdan/danmaku/internal/bvh"
	"github.com/vovakirdan/danmaku/internal/geom"
	"github.com/vovakirdan/danmaku/internal/world"
)

// DefaultSettleIterations bounds how many times Settle re-runs ResolveMove.
const DefaultSettleIterations = 5

// Result of a resolve call.
type Result struct {
	Pos      geom.Vec
	Collided bool
}

// Filter excludes primitives from a query by ID or by tag.
type Filter struct {
	IgnoreIDs  []int
	IgnoreTags []string
}

func (f Filter) skip(p *world.Primitive) bool {
	if !p.Enabled {
		return true
	}
	if slices.Contains(f.IgnoreIDs, p.ID) {
		return true
	}
	return p.Tags.Intersects(f.IgnoreTags)
}

// Resolver answers movement and overlap queries against one loaded world.
// It only reads world state. Not safe for concurrent use with world edits.
type Resolver struct {
	index   *bvh.Index
	enemies world.EnemyProvider

	// SettleIterations is the pass limit used by Settle.
	SettleIterations int
}

// NewResolver creates a resolver over a built index and an enemy provider.
// Either may be nil.
func NewResolver(index *bvh.Index, enemies world.EnemyProvider) *Resolver {
	return &Resolver{index: index, enemies: enemies, SettleIterations: DefaultSettleIterations}
}

// Index returns the static index.
func (r *Resolver) Index() *bvh.Index { return r.index }

// candidates returns the static primitives whose owners are near bounds of
// s, followed by every enemy primitive, with the filter applied.
func (r *Resolver) candidates(s geom.Shape, f Filter) []*world.Primitive {
	var out []*world.Primitive
	for _, obj := range r.index.Query(s.Bounds()) {
		for _, p := range obj.Primitives {
			if !f.skip(p) {
				out = append(out, p)
			}
		}
	}
	return r.appendEnemies(out, f)
}

func (r *Resolver) appendEnemies(out []*world.Primitive, f Filter) []*world.Primitive {
	if r.enemies == nil {
		return out
	}
	for _, p := range r.enemies.EnemyPrimitives() {
		if !f.skip(p) {
			out = append(out, p)
		}
	}
	return out
}

// ResolveMove places circle at target and pushes it out of every overlapping
// candidate. Candidates are gathered once at target; each push-out is applied
// to the already-corrected position, so contact with several obstacles is
// order dependent and a single call may not fully separate the circle.
func (r *Resolver) ResolveMove(circle geom.Circle, target geom.Vec, f Filter) Result {
	res := Result{Pos: target}
	mover := circle.At(target)
	for _, p := range r.candidates(mover, f) {
		ov := geom.Intersect(mover.At(res.Pos), p.Shape)
		if !ov.Overlaps {
			continue
		}
		res.Pos = ov.Resolve(res.Pos)
		res.Collided = true
	}
	return res
}

// Settle calls ResolveMove until a pass makes no correction or the
// iteration limit is reached.
func (r *Resolver) Settle(circle geom.Circle, target geom.Vec, f Filter) Result {
	n := r.SettleIterations
	if n <= 0 {
		n = DefaultSettleIterations
	}
	out := Result{Pos: target}
	for i := 0; i < n; i++ {
		step := r.ResolveMove(circle, out.Pos, f)
		out.Pos = step.Pos
		if !step.Collided {
			break
		}
		out.Collided = true
	}
	return out
}

// Collides reports whether shape overlaps any unfiltered primitive.
func (r *Resolver) Collides(s geom.Shape, f Filter) bool {
	for _, p := range r.candidates(s, f) {
		if geom.Intersect(s, p.Shape).Overlaps {
			return true
		}
	}
	return false
}

// SegmentCollides reports whether segment ab touches any unfiltered
// primitive. Used for line-of-sight checks.
func (r *Resolver) SegmentCollides(a, b geom.Vec, f Filter) bool {
	var prims []*world.Primitive
	for _, obj := range r.index.QuerySegment(a, b) {
		for _, p := range obj.Primitives {
			if !f.skip(p) {
				prims = append(prims, p)
			}
		}
	}
	prims = r.appendEnemies(prims, f)
	for _, p := range prims {
		if geom.SegmentIntersects(p.Shape, a, b) {
			return true
		}
	}
	return false
}
