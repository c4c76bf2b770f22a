package cres_test

import (
	"io"
	"testing"

	"github.com/katalvlaran/cres/cres"
	"github.com/katalvlaran/cres/event"
	"github.com/katalvlaran/cres/ioformat"
	"github.com/katalvlaran/cres/resample"
	"github.com/katalvlaran/cres/unweight"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeReader streams a fixed slice of RawEvent records and supports
// Rewind so Run's dual-pass design can be exercised without a real file.
type fakeReader struct {
	records []ioformat.RawEvent
	pos     int
}

func (r *fakeReader) Next() (ioformat.RawEvent, error) {
	if r.pos >= len(r.records) {
		return ioformat.RawEvent{}, io.EOF
	}
	rec := r.records[r.pos]
	r.pos++
	return rec, nil
}
func (r *fakeReader) Rewind() error { r.pos = 0; return nil }
func (r *fakeReader) SizeHint() (int, int, bool) { return len(r.records), len(r.records), true }

// passthroughConverter builds one outgoing particle per record with the
// record's central weight, enough to drive the distance metric.
type passthroughConverter struct{}

func (passthroughConverter) TryConvert(raw ioformat.RawEvent) (*event.Event, error) {
	b := event.NewBuilder().SetWeight(raw.Weights[0].Value)
	for _, p := range raw.Particles {
		b.AddOutgoing(event.PID(p.PID), event.FourMomentum(p.P))
	}
	return b.Build(), nil
}

// recordingWriter captures the final (reader, events) hand-off for
// assertions.
type recordingWriter struct {
	events []ioformat.ResampledEvent
}

func (w *recordingWriter) Write(_ ioformat.Reader, events []ioformat.ResampledEvent) error {
	w.events = events
	return nil
}
func (w *recordingWriter) Close() error { return nil }

func sampleRecords() []ioformat.RawEvent {
	p := func(e, px, py, pz float64) ioformat.RawParticle {
		return ioformat.RawParticle{PID: 11, Status: ioformat.StatusOutgoing, P: [4]float64{e, px, py, pz}}
	}
	return []ioformat.RawEvent{
		{Weights: []ioformat.RawWeight{{Value: 1}}, Particles: []ioformat.RawParticle{p(10, 10, 0, 0)}},
		{Weights: []ioformat.RawWeight{{Value: 1}}, Particles: []ioformat.RawParticle{p(10.01, 10, 0.01, 0)}},
		{Weights: []ioformat.RawWeight{{Value: -1}}, Particles: []ioformat.RawParticle{p(10.02, 10, 0.02, 0)}},
	}
}

func TestRunEndToEndPreservesWeightSum(t *testing.T) {
	reader := &fakeReader{records: sampleRecords()}
	writer := &recordingWriter{}

	cfg := cres.Config{
		Resample: resample.Config{NPartitions: 1, PtWeight: 1, Strategy: resample.MostNegative, Backend: resample.Naive},
	}
	stats, err := cres.Run(reader, passthroughConverter{}, writer, cfg)
	require.NoError(t, err)

	assert.Equal(t, 3, stats.NumInput)
	assert.InDelta(t, 1.0, stats.FinalWeightSum, 1e-9)
	assert.Equal(t, 0.0, stats.NegativeFraction)
	require.Len(t, writer.events, 3)
}

func TestRunWithNoNegativeWeightsIsInformational(t *testing.T) {
	records := []ioformat.RawEvent{
		{Weights: []ioformat.RawWeight{{Value: 1}}, Particles: []ioformat.RawParticle{
			{PID: 11, Status: ioformat.StatusOutgoing, P: [4]float64{10, 10, 0, 0}},
		}},
	}
	reader := &fakeReader{records: records}
	writer := &recordingWriter{}
	cfg := cres.Config{Resample: resample.Config{NPartitions: 1, PtWeight: 1}}

	stats, err := cres.Run(reader, passthroughConverter{}, writer, cfg)
	require.NoError(t, err)
	assert.True(t, stats.NoNegativeWeights)
	assert.Equal(t, 1, stats.NumOutput)
}

func TestRunAppliesUnweightingBeforeWrite(t *testing.T) {
	records := []ioformat.RawEvent{
		{Weights: []ioformat.RawWeight{{Value: 0.1}}, Particles: []ioformat.RawParticle{
			{PID: 11, Status: ioformat.StatusOutgoing, P: [4]float64{10, 10, 0, 0}},
		}},
	}
	reader := &fakeReader{records: records}
	writer := &recordingWriter{}
	cfg := cres.Config{
		Resample: resample.Config{NPartitions: 1, PtWeight: 1},
		Unweight: unweight.Config{MinWeight: 1.0, Seed: 42},
	}

	stats, err := cres.Run(reader, passthroughConverter{}, writer, cfg)
	require.NoError(t, err)
	assert.LessOrEqual(t, stats.NumOutput, 1)
	assert.GreaterOrEqual(t, stats.NumZeroedByUnweight, 0)
}

func TestIDErrorOnNonZeroConverterID(t *testing.T) {
	reader := &fakeReader{records: []ioformat.RawEvent{{Weights: []ioformat.RawWeight{{Value: 1}}}}}
	writer := &recordingWriter{}
	badConverter := converterFunc(func(raw ioformat.RawEvent) (*event.Event, error) {
		ev, _ := passthroughConverter{}.TryConvert(raw)
		ev.SetID(7)
		return ev, nil
	})
	_, err := cres.Run(reader, badConverter, writer, cres.Config{Resample: resample.Config{NPartitions: 1}})
	require.Error(t, err)
	var target *cres.IDError
	require.ErrorAs(t, err, &target)
}

type converterFunc func(ioformat.RawEvent) (*event.Event, error)

func (f converterFunc) TryConvert(raw ioformat.RawEvent) (*event.Event, error) { return f(raw) }
