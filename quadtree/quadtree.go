// Package quadtree builds a per-round spatial index over a candidate point
// slice. Nodes live in a flat arena addressed by int32 handles and leaves own
// contiguous ranges of a reordered index slice, so the tree never copies
// points and can be discarded wholesale after the join step.
package quadtree

import (
	"math"

	"github.com/paulmach/orb"
)

const NoChild = int32(-1)

// minScale guards against splitting a degenerate extent forever, e.g. when
// every candidate of a round coincides.
const minScale = 1e-12

type Node struct {
	Bound      orb.Bound
	Depth      int32
	Start, End int32
	Children   [4]int32
	Leaf       bool
}

type Tree struct {
	Nodes []Node
	// Idxs is the reordered index slice into the candidate array. A node
	// owns Idxs[Start:End].
	Idxs  []int32
	Bound orb.Bound

	leafOf  []int32
	points  []orb.Point
	scratch []int32
}

// Build indexes pts within bound. Splitting stops at maxDepth, below
// minBucket points, or when the cell scale collapses. The result is
// deterministic for identical input ordering and parameters.
func Build(pts []orb.Point, bound orb.Bound, maxDepth, minBucket int) *Tree {
	t := &Tree{
		Idxs:    make([]int32, len(pts)),
		Bound:   bound,
		leafOf:  make([]int32, len(pts)),
		points:  pts,
		scratch: make([]int32, len(pts)),
	}
	for i := range t.Idxs {
		t.Idxs[i] = int32(i)
	}

	rangeX := bound.Max[0] - bound.Min[0]
	rangeY := bound.Max[1] - bound.Min[1]
	scale := math.Max(rangeX, rangeY) / float64(int64(1)<<maxDepth)
	if scale < minScale {
		maxDepth = 0
	}

	t.build(bound, 0, 0, int32(len(pts)), int32(maxDepth), int32(minBucket))
	t.points = nil
	t.scratch = nil
	return t
}

func (t *Tree) build(bound orb.Bound, depth, start, end, maxDepth, minBucket int32) int32 {
	handle := int32(len(t.Nodes))
	t.Nodes = append(t.Nodes, Node{
		Bound:    bound,
		Depth:    depth,
		Start:    start,
		End:      end,
		Children: [4]int32{NoChild, NoChild, NoChild, NoChild},
	})

	if depth >= maxDepth || end-start < minBucket {
		t.Nodes[handle].Leaf = true
		for i := start; i < end; i++ {
			t.leafOf[t.Idxs[i]] = handle
		}
		return handle
	}

	midX := (bound.Min[0] + bound.Max[0]) / 2
	midY := (bound.Min[1] + bound.Max[1]) / 2

	// stable four-way partition of Idxs[start:end] by quadrant
	var cut [5]int32
	cut[0] = start
	cut[1] = t.partition(start, end, func(p orb.Point) bool { return p[1] < midY && p[0] < midX })
	cut[2] = t.partition(cut[1], end, func(p orb.Point) bool { return p[1] < midY })
	cut[3] = t.partition(cut[2], end, func(p orb.Point) bool { return p[0] < midX })
	cut[4] = end

	quadrants := [4]orb.Bound{
		{Min: bound.Min, Max: orb.Point{midX, midY}},
		{Min: orb.Point{midX, bound.Min[1]}, Max: orb.Point{bound.Max[0], midY}},
		{Min: orb.Point{bound.Min[0], midY}, Max: orb.Point{midX, bound.Max[1]}},
		{Min: orb.Point{midX, midY}, Max: bound.Max},
	}

	for q := 0; q < 4; q++ {
		if cut[q] == cut[q+1] {
			continue
		}
		child := t.build(quadrants[q], depth+1, cut[q], cut[q+1], maxDepth, minBucket)
		t.Nodes[handle].Children[q] = child
	}

	return handle
}

// partition reorders Idxs[start:end) so indexes whose point satisfies pred
// come first, preserving relative order on both sides. Returns the boundary.
func (t *Tree) partition(start, end int32, pred func(orb.Point) bool) int32 {
	at := start
	rest := t.scratch[:0]
	for i := start; i < end; i++ {
		idx := t.Idxs[i]
		if pred(t.points[idx]) {
			t.Idxs[at] = idx
			at++
		} else {
			rest = append(rest, idx)
		}
	}
	copy(t.Idxs[at:end], rest)
	return at
}

// LeafOf returns the handle of the leaf owning point index i.
func (t *Tree) LeafOf(i int) int32 {
	return t.leafOf[i]
}

// Leaves calls fn for every leaf node in arena order. fn returning false
// stops the iteration.
func (t *Tree) Leaves(fn func(handle int32, n Node) bool) {
	for i := range t.Nodes {
		if !t.Nodes[i].Leaf {
			continue
		}
		if !fn(int32(i), t.Nodes[i]) {
			return
		}
	}
}

// Search walks nodes intersecting b and calls fn with the original point
// index of every owned point inside b.
func (t *Tree) Search(pts []orb.Point, b orb.Bound, fn func(idx int32) bool) {
	if len(t.Nodes) == 0 {
		return
	}

	stack := []int32{0}
	for len(stack) > 0 {
		handle := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		node := t.Nodes[handle]
		if !node.Bound.Intersects(b) {
			continue
		}

		if node.Leaf {
			for i := node.Start; i < node.End; i++ {
				idx := t.Idxs[i]
				if b.Contains(pts[idx]) {
					if !fn(idx) {
						return
					}
				}
			}
			continue
		}

		for _, child := range node.Children {
			if child != NoChild {
				stack = append(stack, child)
			}
		}
	}
}
