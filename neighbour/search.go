// Package neighbour implements the nearest-remaining-point abstraction,
// with two interchangeable backends: a naive O(n) per-yield scan and a
// vantage-point tree. Both backends satisfy the same Search contract so
// the cell builder (package cell) never knows which one it is driving.
package neighbour

// DistanceFunc returns the distance between two logical point ids. It must
// be symmetric and is called frequently; implementations in package
// distance are cheap enough to call on demand.
type DistanceFunc func(a, b int) float64

// Search builds a nearest-neighbour index once per partition and hands out
// independent iterators rooted at any seed.
type Search interface {
	// NearestFrom returns a restartable, single-use iterator yielding
	// (point id, distance) pairs in ascending distance from seed,
	// excluding seed itself and any point previously removed via Remove,
	// ties broken by lower point id.
	NearestFrom(seed int) Iter

	// Remove marks a point as permanently unavailable to any future
	// NearestFrom call: cell members can no longer seed or be admitted
	// elsewhere in this partition.
	Remove(point int)
}

// Iter is a single-use, forward-only iterator over (point id, distance)
// pairs in ascending distance order.
type Iter interface {
	// Next returns the next (id, distance) pair, or ok=false once the
	// candidate set is exhausted.
	Next() (id int, dist float64, ok bool)
}
