package compression_test

import (
	"bytes"
	"io"
	"testing"

	"github.com/katalvlaran/cres/ioformat/compression"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	cases := []struct {
		in    string
		codec compression.Codec
		level int
	}{
		{"gzip_6", compression.Gzip, 6},
		{"zstd_19", compression.Zstd, 19},
		{"lz4", compression.LZ4, 0},
		{"bzip2", compression.Bzip2, 0},
		{"none", compression.None, 0},
	}
	for _, c := range cases {
		spec, err := compression.Parse(c.in)
		require.NoError(t, err)
		assert.Equal(t, c.codec, spec.Codec)
		assert.Equal(t, c.level, spec.Level)
	}

	_, err := compression.Parse("rar")
	require.ErrorIs(t, err, compression.ErrUnknownCodec)
}

func TestGzipRoundTrip(t *testing.T) {
	spec := compression.Spec{Codec: compression.Gzip, Level: 6}
	var buf bytes.Buffer
	wc, err := compression.NewWriter(&buf, spec)
	require.NoError(t, err)
	_, err = wc.Write([]byte("hello cres"))
	require.NoError(t, err)
	require.NoError(t, wc.Close())

	r, err := compression.NewReader(&buf, spec)
	require.NoError(t, err)
	got, err := io.ReadAll(r)
	require.NoError(t, err)
	assert.Equal(t, "hello cres", string(got))
}

func TestLZ4RoundTrip(t *testing.T) {
	spec := compression.Spec{Codec: compression.LZ4}
	var buf bytes.Buffer
	wc, err := compression.NewWriter(&buf, spec)
	require.NoError(t, err)
	_, err = wc.Write([]byte("cell resampling"))
	require.NoError(t, err)
	require.NoError(t, wc.Close())

	r, err := compression.NewReader(&buf, spec)
	require.NoError(t, err)
	got, err := io.ReadAll(r)
	require.NoError(t, err)
	assert.Equal(t, "cell resampling", string(got))
}

func TestNoneIsPassthrough(t *testing.T) {
	var buf bytes.Buffer
	wc, err := compression.NewWriter(&buf, compression.Spec{Codec: compression.None})
	require.NoError(t, err)
	_, _ = wc.Write([]byte("raw"))
	require.NoError(t, wc.Close())
	assert.Equal(t, "raw", buf.String())
}
