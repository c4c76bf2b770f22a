package convert_test

import (
	"testing"

	"github.com/katalvlaran/cres/cluster"
	"github.com/katalvlaran/cres/convert"
	"github.com/katalvlaran/cres/ioformat"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPassthroughKeepsSpeciesAsIs(t *testing.T) {
	c := convert.NewPassthrough()
	raw := ioformat.RawEvent{
		Weights: []ioformat.RawWeight{{Value: 1.5}},
		Particles: []ioformat.RawParticle{
			{PID: 11, Status: ioformat.StatusOutgoing, P: [4]float64{10, 1, 0, 0}},
			{PID: 22, Status: ioformat.StatusOther, P: [4]float64{5, 1, 0, 0}},
		},
	}
	ev, err := c.TryConvert(raw)
	require.NoError(t, err)
	assert.Equal(t, 1.5, ev.CentralWeight())
	assert.Len(t, ev.Outgoing[11], 1)
	assert.Empty(t, ev.Outgoing[22]) // status filtered
}

func TestClusteringConverterProducesJets(t *testing.T) {
	def := cluster.JetDefinition{Algorithm: cluster.AntiKt, Radius: 0.4, MinPt: 1}
	c := convert.New(def)
	raw := ioformat.RawEvent{
		Weights: []ioformat.RawWeight{{Value: -1}},
		Particles: []ioformat.RawParticle{
			{PID: 1, Status: ioformat.StatusOutgoing, P: [4]float64{10, 10, 0, 0}},  // down quark
			{PID: 2, Status: ioformat.StatusOutgoing, P: [4]float64{5, 5, 0.01, 0}}, // up quark
		},
	}
	ev, err := c.TryConvert(raw)
	require.NoError(t, err)
	require.NotEmpty(t, ev.Outgoing[-1000]) // PIDJet
}

func TestMissingNamedWeightErrors(t *testing.T) {
	c := convert.NewPassthrough().WithWeights([]string{"scale_up"})
	raw := ioformat.RawEvent{
		Weights: []ioformat.RawWeight{{Value: 1}, {Name: "scale_down", Value: 0.5}},
	}
	_, err := c.TryConvert(raw)
	require.Error(t, err)
	var target *convert.ErrWeightNotFound
	require.ErrorAs(t, err, &target)
	assert.Equal(t, "scale_up", target.Name)
	assert.Contains(t, target.AllNames, "scale_down")
}

func TestMultiWeightExtractionOrder(t *testing.T) {
	c := convert.NewPassthrough().WithWeights([]string{"a", "b"})
	raw := ioformat.RawEvent{
		Weights: []ioformat.RawWeight{{Value: 1}, {Name: "a", Value: 2}, {Name: "b", Value: 3}},
	}
	ev, err := c.TryConvert(raw)
	require.NoError(t, err)
	require.Equal(t, 3, ev.NumWeights())
	assert.Equal(t, 1.0, ev.CentralWeight())
	av, _ := ev.WeightByName("a")
	bv, _ := ev.WeightByName("b")
	assert.Equal(t, 2.0, av)
	assert.Equal(t, 3.0, bv)
}

func TestNoSourceWeightsErrors(t *testing.T) {
	c := convert.NewPassthrough()
	_, err := c.TryConvert(ioformat.RawEvent{})
	require.Error(t, err)
}
