// Package bvh implements a bounding volume hierarchy over static world
// objects. The tree is built once per world load and never updated; things
// that move are kept out of it and scanned linearly by the caller.
package bvh

import (
	"sort"

	"github.com/jakecoffman/cp"

	"github.com/vovakirdan/danmaku/internal/geom"
	"github.com/vovakirdan/danmaku/internal/world"
)

// LeafSize is the maximum number of owners stored in a leaf.
const LeafSize = 2

// Node is a leaf holding up to LeafSize owners or an internal node with
// exactly two children. An internal node's bounds equal the union of its
// children's bounds.
type Node struct {
	Bounds      cp.BB
	Owners      []*world.Object
	Left, Right *Node
}

// Leaf reports whether the node stores owners directly.
func (n *Node) Leaf() bool {
	return n.Left == nil
}

// Index is an immutable BVH.
type Index struct {
	root  *Node
	count int
}

// Build constructs the hierarchy by recursive median split, alternating the
// split axis with depth (x on even levels, y on odd).
func Build(objects []*world.Object) *Index {
	if len(objects) == 0 {
		return &Index{}
	}
	owners := make([]*world.Object, len(objects))
	copy(owners, objects)
	return &Index{root: build(owners, 0), count: len(owners)}
}

func build(owners []*world.Object, depth int) *Node {
	if len(owners) <= LeafSize {
		n := &Node{Owners: owners, Bounds: owners[0].AABB}
		for _, o := range owners[1:] {
			n.Bounds = geom.Union(n.Bounds, o.AABB)
		}
		return n
	}

	axis := depth % 2
	sort.SliceStable(owners, func(i, j int) bool {
		if axis == 0 {
			return owners[i].Pos.X < owners[j].Pos.X
		}
		return owners[i].Pos.Y < owners[j].Pos.Y
	})

	mid := len(owners) / 2
	n := &Node{
		Left:  build(owners[:mid], depth+1),
		Right: build(owners[mid:], depth+1),
	}
	n.Bounds = geom.Union(n.Left.Bounds, n.Right.Bounds)
	return n
}

// Len returns the number of indexed owners.
func (x *Index) Len() int {
	if x == nil {
		return 0
	}
	return x.count
}

// Root returns the root node, or nil for an empty index.
func (x *Index) Root() *Node {
	if x == nil {
		return nil
	}
	return x.root
}

// Bounds returns the bounds of every indexed owner.
func (x *Index) Bounds() (cp.BB, bool) {
	if x.Root() == nil {
		return cp.BB{}, false
	}
	return x.root.Bounds, true
}

// Depth returns the height of the tree; an empty index has depth 0.
func (x *Index) Depth() int {
	return depth(x.Root())
}

func depth(n *Node) int {
	if n == nil {
		return 0
	}
	if n.Leaf() {
		return 1
	}
	return 1 + max(depth(n.Left), depth(n.Right))
}

// Walk visits every node in pre-order with its depth.
func (x *Index) Walk(fn func(n *Node, depth int)) {
	walk(x.Root(), 0, fn)
}

func walk(n *Node, d int, fn func(*Node, int)) {
	if n == nil {
		return
	}
	fn(n, d)
	walk(n.Left, d+1, fn)
	walk(n.Right, d+1, fn)
}

// Query returns the owners whose bounds intersect bb, sorted by ID.
func (x *Index) Query(bb cp.BB) []*world.Object {
	return x.collect(func(b cp.BB) bool {
		return b.Intersects(bb)
	})
}

// QuerySegment returns the owners whose bounds are touched by segment ab,
// sorted by ID.
func (x *Index) QuerySegment(a, b geom.Vec) []*world.Object {
	return x.collect(func(bb cp.BB) bool {
		return geom.SegmentHitsBB(bb, a, b)
	})
}

func (x *Index) collect(hit func(cp.BB) bool) []*world.Object {
	root := x.Root()
	if root == nil {
		return nil
	}
	var out []*world.Object
	var visit func(n *Node)
	visit = func(n *Node) {
		if !hit(n.Bounds) {
			return
		}
		if n.Leaf() {
			for _, o := range n.Owners {
				// A leaf with two owners spans both; test each one so a
				// distant sibling is not returned.
				if len(n.Owners) == 1 || hit(o.AABB) {
					out = append(out, o)
				}
			}
			return
		}
		visit(n.Left)
		visit(n.Right)
	}
	visit(root)

	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}
