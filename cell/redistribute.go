package cell

import "sort"

// Redistribute overwrites the central weight of every cell member with
// weightSum/len(members). The sum of central weights across the cell is
// preserved exactly modulo floating-point rounding.
func (c *Cell) Redistribute() {
	n := float64(len(c.members))
	share := c.weightSum / n
	for _, idx := range c.members {
		c.pool.At(idx).SetCentralWeight(share)
	}
}

// RedistributeMultiWeight performs componentwise-mean redistribution:
// every named weight (including the central weight at index 0) is
// overwritten with the mean of that weight across all members.
//
// lock, if non-nil, is acquired in ascending member-index order before any
// weight is written and released afterwards, matching the global lock
// order that prevents deadlock when cells in different partitions could
// otherwise share members through overlap. Within a single partition's
// sequential cell growth this is a no-op guard; it exists so the same
// Cell type can be reused by a concurrent resampler without change.
func (c *Cell) RedistributeMultiWeight(lock WeightLocker) {
	ordered := append([]int(nil), c.members...)
	sort.Ints(ordered)

	if lock != nil {
		for _, idx := range ordered {
			lock.Lock(idx)
		}
		defer func() {
			for _, idx := range ordered {
				lock.Unlock(idx)
			}
		}()
	}

	n := len(ordered)
	if n == 0 {
		return
	}
	nWeights := c.pool.At(ordered[0]).NumWeights()
	means := make([]float64, nWeights)
	for _, idx := range ordered {
		ev := c.pool.At(idx)
		for w := 0; w < nWeights; w++ {
			v, _ := ev.WeightAt(w)
			means[w] += v
		}
	}
	for w := range means {
		means[w] /= float64(n)
	}
	for _, idx := range ordered {
		ev := c.pool.At(idx)
		for w := 0; w < nWeights; w++ {
			_ = ev.SetWeightAt(w, means[w])
		}
	}
}

// WeightLocker guards per-event weight-vector access in multi-weight mode.
// A no-op implementation is safe whenever cells never share members
// across concurrently running partitions, which is always true for the
// partition scheme in package resample; RedistributeMultiWeight still
// accepts one so cell growth stays provably deadlock-free if that
// assumption is ever relaxed.
type WeightLocker interface {
	Lock(idx int)
	Unlock(idx int)
}
