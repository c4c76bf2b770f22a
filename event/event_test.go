package event_test

import (
	"testing"

	"github.com/katalvlaran/cres/event"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuilderSortsByPt(t *testing.T) {
	b := event.NewBuilder()
	b.AddOutgoing(event.PIDJet, event.FourMomentum{10, 1, 0, 0})  // pt=1
	b.AddOutgoing(event.PIDJet, event.FourMomentum{20, 5, 0, 0})  // pt=5
	b.AddOutgoing(event.PIDJet, event.FourMomentum{15, 3, 0, 0})  // pt=3
	b.SetWeight(-1.5)
	ev := b.Build()

	require.Len(t, ev.Outgoing[event.PIDJet], 3)
	assert.InDelta(t, 5.0, ev.Outgoing[event.PIDJet][0].Pt(), 1e-9)
	assert.InDelta(t, 3.0, ev.Outgoing[event.PIDJet][1].Pt(), 1e-9)
	assert.InDelta(t, 1.0, ev.Outgoing[event.PIDJet][2].Pt(), 1e-9)
	assert.Equal(t, -1.5, ev.CentralWeight())
}

func TestValidateRejectsNegativeEnergy(t *testing.T) {
	b := event.NewBuilder()
	b.AddOutgoing(event.PIDJet, event.FourMomentum{-1, 0, 0, 0})
	b.SetWeight(1)
	ev := b.Build()
	require.ErrorIs(t, ev.Validate(), event.ErrNegativeEnergy)
}

func TestValidateRejectsEmptyWeights(t *testing.T) {
	ev := event.NewBuilder().Build()
	require.ErrorIs(t, ev.Validate(), event.ErrNoWeights)
}

func TestLessOrdersByWeightThenID(t *testing.T) {
	a := event.NewBuilder().SetWeight(1).Build()
	a.SetID(5)
	b := event.NewBuilder().SetWeight(2).Build()
	b.SetID(1)
	assert.True(t, event.Less(a, b))
	assert.False(t, event.Less(b, a))

	c := event.NewBuilder().SetWeight(1).Build()
	c.SetID(1)
	assert.True(t, event.Less(c, a))
}

func TestPoolPartitionDeterministic(t *testing.T) {
	events := make([]*event.Event, 10)
	for i := range events {
		ev := event.NewBuilder().SetWeight(1).Build()
		ev.SetID(i)
		events[i] = ev
	}
	pool := event.NewPool(events)
	buckets := pool.Partition(3)
	require.Len(t, buckets, 3)
	total := 0
	for _, b := range buckets {
		total += len(b)
	}
	assert.Equal(t, 10, total)
}

func TestWeightAtOutOfRange(t *testing.T) {
	ev := event.NewBuilder().SetWeight(1).Build()
	_, err := ev.WeightAt(5)
	require.ErrorIs(t, err, event.ErrWeightIndex)
}
