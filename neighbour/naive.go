package neighbour

import (
	"runtime"
	"sync"
)

// NaiveSearch is the "scratch array" backend: on each NearestFrom call it
// recomputes the distance from the seed to every other remaining point,
// then yields the argmin of the remaining candidates one at a time,
// removing each as it is yielded.
//
// Distance precomputation and the repeated argmin are both embarrassingly
// parallel, so both are split across goroutines when the candidate count
// makes that worthwhile.
type NaiveSearch struct {
	n        int
	dist     DistanceFunc
	removed  []bool
	workers  int
}

// NewNaiveSearch builds a naive backend over n logical points
// 0..n (exclusive), using workers goroutines for the parallel
// distance/argmin passes (workers <= 0 defaults to GOMAXPROCS).
func NewNaiveSearch(n int, dist DistanceFunc, workers int) *NaiveSearch {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	return &NaiveSearch{n: n, dist: dist, removed: make([]bool, n), workers: workers}
}

// Remove marks point as unavailable to future NearestFrom calls.
func (s *NaiveSearch) Remove(point int) {
	if point >= 0 && point < s.n {
		s.removed[point] = true
	}
}

// NearestFrom builds a fresh scratch array of (point, distance) pairs for
// every remaining candidate and returns an iterator over it.
func (s *NaiveSearch) NearestFrom(seed int) Iter {
	cached := make([]cachedDist, 0, s.n)
	for i := 0; i < s.n; i++ {
		if i == seed || s.removed[i] {
			continue
		}
		cached = append(cached, cachedDist{id: i})
	}
	parallelFor(len(cached), s.workers, func(lo, hi int) {
		for k := lo; k < hi; k++ {
			cached[k].dist = s.dist(seed, cached[k].id)
		}
	})
	return &naiveIter{cached: cached, workers: s.workers}
}

type cachedDist struct {
	id   int
	dist float64
}

type naiveIter struct {
	cached  []cachedDist
	taken   []bool
	workers int
}

// Next performs the O(n) parallel-reduction argmin over remaining
// candidates, ties broken by lower point id: each worker reduces its
// chunk to a single local best, and the local bests are then combined
// sequentially (that final combine step is O(workers), not O(n)).
func (it *naiveIter) Next() (int, float64, bool) {
	if it.taken == nil {
		it.taken = make([]bool, len(it.cached))
	}
	n := len(it.cached)
	workers := it.workers
	if workers <= 1 || n < 2*workers {
		workers = 1
	}
	locals := make([]int, workers)
	for i := range locals {
		locals[i] = -1
	}
	chunk := (n + workers - 1) / workers
	if chunk == 0 {
		chunk = n
	}
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		lo := w * chunk
		hi := lo + chunk
		if hi > n {
			hi = n
		}
		if lo >= hi {
			continue
		}
		wg.Add(1)
		go func(w, lo, hi int) {
			defer wg.Done()
			best := -1
			for i := lo; i < hi; i++ {
				if it.taken[i] {
					continue
				}
				if best == -1 || better(it.cached[i], it.cached[best]) {
					best = i
				}
			}
			locals[w] = best
		}(w, lo, hi)
	}
	wg.Wait()

	best := -1
	for _, l := range locals {
		if l == -1 {
			continue
		}
		if best == -1 || better(it.cached[l], it.cached[best]) {
			best = l
		}
	}
	if best == -1 {
		return 0, 0, false
	}
	it.taken[best] = true
	return it.cached[best].id, it.cached[best].dist, true
}

// better reports whether a should be preferred over b as the argmin:
// strictly smaller distance, or equal distance and a lower point id.
func better(a, b cachedDist) bool {
	return a.dist < b.dist || (a.dist == b.dist && a.id < b.id)
}

// parallelFor splits [0, n) into chunks and runs fn(lo, hi) concurrently
// across up to workers goroutines. It is the shared building block behind
// both the distance precomputation and (conceptually) the argmin
// reduction above.
func parallelFor(n, workers int, fn func(lo, hi int)) {
	if n == 0 {
		return
	}
	if workers <= 1 || n < 2*workers {
		fn(0, n)
		return
	}
	chunk := (n + workers - 1) / workers
	var wg sync.WaitGroup
	for lo := 0; lo < n; lo += chunk {
		hi := lo + chunk
		if hi > n {
			hi = n
		}
		wg.Add(1)
		go func(lo, hi int) {
			defer wg.Done()
			fn(lo, hi)
		}(lo, hi)
	}
	wg.Wait()
}
