package cell_test

import (
	"testing"

	"github.com/katalvlaran/cres/cell"
	"github.com/katalvlaran/cres/event"
	"github.com/katalvlaran/cres/neighbour"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mkPool(weights []float64) *event.Pool {
	events := make([]*event.Event, len(weights))
	for i, w := range weights {
		ev := event.NewBuilder().SetWeight(w).Build()
		ev.SetID(i)
		events[i] = ev
	}
	return event.NewPool(events)
}

// fakeIter yields a fixed, pre-ordered sequence of (id, dist) pairs.
type fakeIter struct {
	seq []struct {
		id   int
		dist float64
	}
	i int
}

func (f *fakeIter) Next() (int, float64, bool) {
	if f.i >= len(f.seq) {
		return 0, 0, false
	}
	e := f.seq[f.i]
	f.i++
	return e.id, e.dist, true
}

func newFakeIter(pairs ...[2]float64) *fakeIter {
	f := &fakeIter{}
	for _, p := range pairs {
		f.seq = append(f.seq, struct {
			id   int
			dist float64
		}{id: int(p[0]), dist: p[1]})
	}
	return f
}

func TestBuildStopsWhenNonNegative(t *testing.T) {
	pool := mkPool([]float64{2, -1})
	it := newFakeIter([2]float64{0, 0.3})
	c := cell.Build(pool, 1, it, 0, nil)
	require.Equal(t, []int{1, 0}, c.Members())
	assert.InDelta(t, 0.3, c.Radius(), 1e-12)
	assert.InDelta(t, 1.0, c.WeightSum(), 1e-12)
	assert.False(t, c.Capped())
}

func TestBuildCappedByMaxSize(t *testing.T) {
	pool := mkPool([]float64{2, -1})
	it := newFakeIter([2]float64{0, 0.3})
	c := cell.Build(pool, 1, it, 0.1, nil)
	require.Equal(t, []int{1}, c.Members())
	assert.True(t, c.Capped())
	assert.InDelta(t, -1.0, c.WeightSum(), 1e-12)
}

func TestBuildCappedByExhaustion(t *testing.T) {
	pool := mkPool([]float64{-1})
	it := newFakeIter()
	c := cell.Build(pool, 0, it, 0, nil)
	require.Equal(t, []int{0}, c.Members())
	assert.True(t, c.Capped())
}

func TestRedistributeSingleWeight(t *testing.T) {
	pool := mkPool([]float64{1, 1, -1})
	it := newFakeIter([2]float64{0, 0.0}, [2]float64{1, 0.0})
	c := cell.Build(pool, 2, it, 0, nil)
	c.Redistribute()
	// weightSum reaches 0 as soon as the seed (-1) admits the first +1
	// neighbour, so the cell is {seed, 0} and the second +1 is never
	// pulled from the iterator.
	require.Equal(t, []int{2, 0}, c.Members())
	for _, idx := range c.Members() {
		assert.InDelta(t, 0.0, pool.At(idx).CentralWeight(), 1e-12)
	}
	assert.InDelta(t, 1.0, pool.At(1).CentralWeight(), 1e-12)
}

func TestRedistributeMultiWeightComponentwiseMean(t *testing.T) {
	events := []*event.Event{
		event.NewBuilder().SetWeights([]event.Weight{{Value: 1}, {Name: "alt", Value: 3}}).Build(),
		event.NewBuilder().SetWeights([]event.Weight{{Value: -1}, {Name: "alt", Value: -3}}).Build(),
	}
	for i, e := range events {
		e.SetID(i)
	}
	pool := event.NewPool(events)
	it := newFakeIter([2]float64{0, 0.0})
	c := cell.Build(pool, 1, it, 0, nil)
	c.RedistributeMultiWeight(nil)
	for _, idx := range c.Members() {
		assert.InDelta(t, 0.0, pool.At(idx).CentralWeight(), 1e-12)
		alt, ok := pool.At(idx).WeightByName("alt")
		require.True(t, ok)
		assert.InDelta(t, 0.0, alt, 1e-12)
	}
}

func TestBuildPanicsOnNonNegativeSeed(t *testing.T) {
	pool := mkPool([]float64{1})
	assert.Panics(t, func() {
		cell.Build(pool, 0, newFakeIter(), 0, nil)
	})
}

var _ neighbour.Iter = (*fakeIter)(nil)
