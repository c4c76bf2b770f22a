package event

// Pool is the in-memory collection of events resampled by a single
// orchestrator run. It is owned exclusively by the resampler for the
// duration of resampling: cells refer to their members by pool index and
// only ever write the central weight (or, in multi-weight mode, the full
// weight vector) of their own members.
type Pool struct {
	Events []*Event
}

// NewPool wraps a slice of events as a Pool, in ingestion order.
func NewPool(events []*Event) *Pool {
	return &Pool{Events: events}
}

// Len returns the number of events in the pool.
func (p *Pool) Len() int { return len(p.Events) }

// CentralWeight returns the central weight of the event at index i. It is
// the hot path read by cell growth and seed selection, so it deliberately
// avoids any bounds-checked indirection beyond a plain slice index.
func (p *Pool) CentralWeight(i int) float64 {
	return p.Events[i].CentralWeight()
}

// At returns the event at index i.
func (p *Pool) At(i int) *Event { return p.Events[i] }

// Partition splits the pool's indices into n disjoint, deterministic
// buckets by id modulo n. The returned slices preserve the original
// relative order of indices within each bucket.
func (p *Pool) Partition(n int) [][]int {
	if n <= 1 {
		all := make([]int, p.Len())
		for i := range all {
			all[i] = i
		}
		return [][]int{all}
	}
	buckets := make([][]int, n)
	for i, e := range p.Events {
		b := e.ID() % n
		if b < 0 {
			b += n
		}
		buckets[b] = append(buckets[b], i)
	}
	return buckets
}
