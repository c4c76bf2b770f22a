package hepmc2_test

import (
	"bytes"
	"io"
	"os"
	"testing"

	"github.com/katalvlaran/cres/ioformat"
	"github.com/katalvlaran/cres/ioformat/hepmc2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeSample(t *testing.T) *os.File {
	t.Helper()
	f, err := os.CreateTemp(t.TempDir(), "sample-*.hepmc2")
	require.NoError(t, err)
	const body = `HepMC::Version 2.06.09
HepMC::IO_GenEvent-START_EVENT_LISTING
N 1 "Weight"
E 0 -1 -1.0 -1.0 -1.0 0 0 1 0 0 0 1 2.5
P 1 11 10.0 0.0 0.0 10.0 0.0 1 0.0 0.0 0 0
P 2 22 5.0 1.0 0.0 5.099 0.0 1 0.0 0.0 0 0
E 1 -1 -1.0 -1.0 -1.0 0 0 1 0 0 0 1 -1.0
P 1 13 1.0 0.0 0.0 1.0 0.0 1 0.0 0.0 0 0
HepMC::IO_GenEvent-END_EVENT_LISTING
`
	_, err = f.WriteString(body)
	require.NoError(t, err)
	_, err = f.Seek(0, io.SeekStart)
	require.NoError(t, err)
	return f
}

func TestReaderParsesWeightsAndParticles(t *testing.T) {
	f := writeSample(t)
	defer f.Close()
	r := hepmc2.NewReader(f)

	ev0, err := r.Next()
	require.NoError(t, err)
	require.Len(t, ev0.Weights, 1)
	assert.Equal(t, "Weight", ev0.Weights[0].Name)
	assert.Equal(t, 2.5, ev0.Weights[0].Value)
	require.Len(t, ev0.Particles, 2)
	assert.Equal(t, int32(11), ev0.Particles[0].PID)
	assert.Equal(t, ioformat.StatusOutgoing, ev0.Particles[0].Status)
	assert.Equal(t, 10.0, ev0.Particles[0].P[0])

	ev1, err := r.Next()
	require.NoError(t, err)
	assert.Equal(t, -1.0, ev1.Weights[0].Value)

	_, err = r.Next()
	assert.ErrorIs(t, err, io.EOF)
}

func TestReaderRewind(t *testing.T) {
	f := writeSample(t)
	defer f.Close()
	r := hepmc2.NewReader(f)
	_, err := r.Next()
	require.NoError(t, err)

	require.NoError(t, r.Rewind())
	ev0, err := r.Next()
	require.NoError(t, err)
	assert.Equal(t, 2.5, ev0.Weights[0].Value)
}

func TestWriterRealignsByID(t *testing.T) {
	f := writeSample(t)
	defer f.Close()
	r := hepmc2.NewReader(f)

	var buf bytes.Buffer
	w := hepmc2.NewWriter(&buf)
	err := w.Write(r, []ioformat.ResampledEvent{
		{ID: 0, CentralWeight: 5.0, WeightRatio: 2.0},
	})
	require.NoError(t, err)
	require.NoError(t, w.Close())

	out := buf.String()
	assert.Contains(t, out, "HepMC::IO_GenEvent-START_EVENT_LISTING")
	assert.Contains(t, out, "HepMC::IO_GenEvent-END_EVENT_LISTING")
	assert.Contains(t, out, "E 0 ")
	assert.NotContains(t, out, "E 1 ")
}
