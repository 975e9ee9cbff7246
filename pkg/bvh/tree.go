// Package bvh implements a static bounding-volume hierarchy over
// axis-aligned boxes.
//
// A Tree is built once from a list of items and is read-only afterwards, so
// it can be queried from any number of goroutines without locking.
package bvh

import (
	"iter"
	"math"

	"github.com/chazu/gable/pkg/geom"
)

// Item pairs a value with its bounding box.
type Item[T any] struct {
	Value T
	Box   geom.Box
}

// node is either a leaf (item >= 0) or an internal node with two children.
type node struct {
	box         geom.Box
	left, right int32
	item        int32
}

func (n *node) leaf() bool { return n.item >= 0 }

// Tree is a binary BVH. Every leaf holds exactly one item and every internal
// node's box is the union of its children's boxes.
type Tree[T any] struct {
	items []Item[T]
	nodes []node
}

// New builds a tree by recursively splitting on the longest axis of the
// centroid bounds at the median item. The input slice is not retained.
func New[T any](items []Item[T]) *Tree[T] {
	t := &Tree[T]{items: append([]Item[T](nil), items...)}
	if len(t.items) == 0 {
		return t
	}
	t.nodes = make([]node, 0, 2*len(t.items)-1)
	t.build(0, len(t.items))
	return t
}

// build creates the subtree for items[lo:hi] and returns its node index.
// The root is always node 0.
func (t *Tree[T]) build(lo, hi int) int32 {
	idx := int32(len(t.nodes))
	t.nodes = append(t.nodes, node{left: -1, right: -1, item: -1})

	if hi-lo == 1 {
		t.nodes[idx].box = t.items[lo].Box
		t.nodes[idx].item = int32(lo)
		return idx
	}

	centroids := geom.EmptyBox()
	for _, it := range t.items[lo:hi] {
		centroids = centroids.ExpandTo(it.Box.Center())
	}
	axis := centroids.LongestAxis()
	mid := (lo + hi) / 2
	selectNth(t.items[lo:hi], mid-lo, axis)

	left := t.build(lo, mid)
	right := t.build(mid, hi)
	n := &t.nodes[idx]
	n.left, n.right = left, right
	n.box = t.nodes[left].box.Union(t.nodes[right].box)
	return idx
}

// Len returns the number of items.
func (t *Tree[T]) Len() int { return len(t.items) }

// Bounds returns the box of the whole tree, or an empty box.
func (t *Tree[T]) Bounds() geom.Box {
	if len(t.nodes) == 0 {
		return geom.EmptyBox()
	}
	return t.nodes[0].box
}

// Depth returns the number of nodes on the longest root-to-leaf path.
func (t *Tree[T]) Depth() int {
	if len(t.nodes) == 0 {
		return 0
	}
	var depth func(i int32) int
	depth = func(i int32) int {
		n := &t.nodes[i]
		if n.leaf() {
			return 1
		}
		return 1 + max(depth(n.left), depth(n.right))
	}
	return depth(0)
}

// Search returns every item whose box intersects q. The test is on boxes
// only; callers perform any exact geometric test themselves.
func (t *Tree[T]) Search(q geom.Box) []T {
	var out []T
	for v := range t.All(q) {
		out = append(out, v)
	}
	return out
}

// All is the lazy form of Search. Each iteration walks the tree afresh, so
// the sequence can be ranged over any number of times.
func (t *Tree[T]) All(q geom.Box) iter.Seq[T] {
	return func(yield func(T) bool) {
		if len(t.nodes) == 0 || q.IsEmpty() {
			return
		}
		stack := make([]int32, 0, 32)
		stack = append(stack, 0)
		for len(stack) > 0 {
			i := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			n := &t.nodes[i]
			if !n.box.Intersects(q) {
				continue
			}
			if n.leaf() {
				if !yield(t.items[n.item].Value) {
					return
				}
				continue
			}
			stack = append(stack, n.right, n.left)
		}
	}
}

// HitFunc tests an item against a ray and returns the parametric distance
// of the hit.
type HitFunc[T any] func(v T) (dist float64, ok bool)

type rayEntry struct {
	node int32
	tmin float64
}

// IntersectRay returns the item with the smallest hit distance along r.
// Subtrees are visited nearest-box-first and skipped once their entry
// distance exceeds the best hit so far, so the result is the global nearest
// regardless of traversal order. Ties keep the first item found.
func (t *Tree[T]) IntersectRay(r geom.Ray, hit HitFunc[T]) (T, float64, bool) {
	var best T
	bestDist := math.Inf(1)
	found := false
	if len(t.nodes) == 0 {
		return best, 0, false
	}
	tmin, _, ok := t.nodes[0].box.IntersectRay(r)
	if !ok {
		return best, 0, false
	}

	stack := make([]rayEntry, 0, 32)
	stack = append(stack, rayEntry{node: 0, tmin: tmin})
	for len(stack) > 0 {
		e := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if e.tmin > bestDist {
			continue
		}
		n := &t.nodes[e.node]
		if n.leaf() {
			v := t.items[n.item].Value
			if d, ok := hit(v); ok && d < bestDist {
				best, bestDist, found = v, d, true
			}
			continue
		}
		lt, _, lok := t.nodes[n.left].box.IntersectRay(r)
		rt, _, rok := t.nodes[n.right].box.IntersectRay(r)
		switch {
		case lok && rok:
			near, far := rayEntry{n.left, lt}, rayEntry{n.right, rt}
			if rt < lt {
				near, far = far, near
			}
			stack = append(stack, far, near)
		case lok:
			stack = append(stack, rayEntry{n.left, lt})
		case rok:
			stack = append(stack, rayEntry{n.right, rt})
		}
	}
	if !found {
		return best, 0, false
	}
	return best, bestDist, true
}
