package neighbour

import (
	"container/heap"
	"sort"
)

// VPTree is the vantage-point tree backend: a binary tree partitioning
// points by distance to a chosen vantage, queried by best-first search
// with branch-and-bound pruning. It is built once per partition and
// consumed across many NearestFrom calls; point removal is a deletion
// bitmap so the tree never needs rebalancing mid-partition.
type VPTree struct {
	dist    DistanceFunc
	nodes   []vpNode
	root    int
	removed []bool
}

type vpNode struct {
	point     int
	threshold float64 // median distance from point to the "inside" subtree
	inside    int     // index into nodes, or -1
	outside   int     // index into nodes, or -1
}

// NewVPTree builds a vantage-point tree over the n logical points
// 0..n (exclusive).
func NewVPTree(n int, dist DistanceFunc) *VPTree {
	t := &VPTree{dist: dist, removed: make([]bool, n)}
	ids := make([]int, n)
	for i := range ids {
		ids[i] = i
	}
	t.root = t.build(ids)
	return t
}

// build recursively partitions ids into a vantage-point subtree and
// returns the index of its root node in t.nodes, or -1 for an empty set.
func (t *VPTree) build(ids []int) int {
	if len(ids) == 0 {
		return -1
	}
	vantage := ids[0]
	rest := ids[1:]
	if len(rest) == 0 {
		idx := len(t.nodes)
		t.nodes = append(t.nodes, vpNode{point: vantage, inside: -1, outside: -1})
		return idx
	}

	type distTo struct {
		id int
		d  float64
	}
	ds := make([]distTo, len(rest))
	for i, p := range rest {
		ds[i] = distTo{id: p, d: t.dist(vantage, p)}
	}
	sort.Slice(ds, func(i, j int) bool { return ds[i].d < ds[j].d })

	mid := len(ds) / 2
	median := ds[mid].d

	inside := make([]int, 0, mid+1)
	outside := make([]int, 0, len(ds)-mid)
	for i, d := range ds {
		if i <= mid {
			inside = append(inside, d.id)
		} else {
			outside = append(outside, d.id)
		}
	}

	insideIdx := t.build(inside)
	outsideIdx := t.build(outside)

	idx := len(t.nodes)
	t.nodes = append(t.nodes, vpNode{
		point:     vantage,
		threshold: median,
		inside:    insideIdx,
		outside:   outsideIdx,
	})
	return idx
}

// Remove marks point as unavailable to future queries.
func (t *VPTree) Remove(point int) {
	if point >= 0 && point < len(t.removed) {
		t.removed[point] = true
	}
}

// NearestFrom returns a best-first iterator over the tree rooted at seed.
func (t *VPTree) NearestFrom(seed int) Iter {
	return &vpIter{tree: t, seed: seed, visited: make(map[int]bool)}
}

// vpIter drives one best-first traversal of the tree per cell, tracking
// which nodes it has already yielded so repeated Next calls resume where
// the previous one left off: a restartable, single-use lazy sequence.
type vpIter struct {
	tree    *VPTree
	seed    int
	visited map[int]bool
	pq      *vpQueue
	started bool
}

// vpEntry is a pending item in the best-first search: either an unexpanded
// subtree (isPoint=false, ordered by an admissible lower bound on the
// distance from seed to anything inside it) or a concrete candidate point
// with its exact, already-computed distance (isPoint=true). Mixing both
// kinds in one priority queue, always expanding the globally smallest
// entry first, is what makes the search order exact rather than merely
// bound-guided: a subtree is only ever returned as a result once it has
// been expanded down to one of its points.
type vpEntry struct {
	node    int // valid when !isPoint: index into tree.nodes
	point   int // valid when isPoint: logical point id
	lower   float64
	isPoint bool
}

type vpQueue []vpEntry

func (q vpQueue) Len() int { return len(q) }
func (q vpQueue) Less(i, j int) bool {
	if q[i].lower != q[j].lower {
		return q[i].lower < q[j].lower
	}
	// On equal keys a subtree is expanded before any point is yielded, since
	// it may still hold a point at that same distance with a lower id; so
	// equidistant points are always yielded lower id first regardless of
	// tree shape. Subtree entries order among themselves by node index.
	if q[i].isPoint != q[j].isPoint {
		return !q[i].isPoint
	}
	return q[i].tieKey() < q[j].tieKey()
}
func (q vpQueue) Swap(i, j int)       { q[i], q[j] = q[j], q[i] }
func (q *vpQueue) Push(x interface{}) { *q = append(*q, x.(vpEntry)) }
func (q *vpQueue) Pop() interface{} {
	old := *q
	n := len(old)
	item := old[n-1]
	*q = old[:n-1]
	return item
}

func (e vpEntry) tieKey() int {
	if e.isPoint {
		return e.point
	}
	return e.node
}

func (it *vpIter) ensureStarted() {
	if it.started {
		return
	}
	it.started = true
	it.pq = &vpQueue{}
	heap.Init(it.pq)
	if it.tree.root != -1 {
		heap.Push(it.pq, vpEntry{node: it.tree.root, lower: 0})
	}
}

// Next drives the best-first search: pop the globally smallest pending
// entry; if it is a subtree, expand it (push its own point as an exact
// candidate plus its two children as bounded subtrees) and keep going; if
// it is a point, that point is guaranteed to be the next nearest remaining
// candidate.
func (it *vpIter) Next() (int, float64, bool) {
	it.ensureStarted()
	for it.pq.Len() > 0 {
		entry := heap.Pop(it.pq).(vpEntry)

		if entry.isPoint {
			if entry.point == it.seed || it.visited[entry.point] || it.tree.removed[entry.point] {
				continue
			}
			it.visited[entry.point] = true
			return entry.point, entry.lower, true
		}

		node := it.tree.nodes[entry.node]
		p := node.point
		dSeedVantage := it.tree.dist(it.seed, p)
		heap.Push(it.pq, vpEntry{isPoint: true, point: p, lower: dSeedVantage})

		// The inside child's points are all within node.threshold of p, so
		// the closest any of them can be to seed is
		// max(0, d(seed,p)-threshold); the outside child's points are all
		// farther than node.threshold from p, so the closest any of them
		// can be to seed is max(0, threshold-d(seed,p)).
		if node.inside != -1 {
			lower := dSeedVantage - node.threshold
			if lower < 0 {
				lower = 0
			}
			heap.Push(it.pq, vpEntry{node: node.inside, lower: lower})
		}
		if node.outside != -1 {
			lower := node.threshold - dSeedVantage
			if lower < 0 {
				lower = 0
			}
			heap.Push(it.pq, vpEntry{node: node.outside, lower: lower})
		}
	}
	return 0, 0, false
}
