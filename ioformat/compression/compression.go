// Package compression wires the CLI's --compression flag (bzip2,
// gzip[_0..9], zstd[_0..19], lz4[_0..16]) to concrete codecs:
// github.com/klauspost/compress for gzip/zstd/bzip2 decoding,
// github.com/pierrec/lz4/v4 for lz4, and github.com/ulikunitz/xz standing
// in for bzip2 *encoding*, which no available library implements (see
// DESIGN.md).
package compression

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/klauspost/compress/bzip2"
	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
	"github.com/ulikunitz/xz"
)

// Codec identifies a compression family, independent of its level.
type Codec int

const (
	None Codec = iota
	Gzip
	Zstd
	LZ4
	Bzip2
)

// Spec is a parsed --compression value: a codec plus an optional level.
type Spec struct {
	Codec Codec
	Level int // meaning depends on Codec; 0 = library default
}

// ErrUnknownCodec is returned by Parse for an unrecognised --compression
// value.
var ErrUnknownCodec = errors.New("compression: unknown codec")

// Parse splits a flag value like "zstd_19" or "gzip_6" or "lz4" into a
// Spec.
func Parse(s string) (Spec, error) {
	name, levelStr, hasLevel := strings.Cut(s, "_")
	var level int
	if hasLevel {
		n, err := strconv.Atoi(levelStr)
		if err != nil {
			return Spec{}, fmt.Errorf("compression: invalid level %q: %w", levelStr, err)
		}
		level = n
	}
	switch name {
	case "", "none":
		return Spec{Codec: None}, nil
	case "gzip":
		return Spec{Codec: Gzip, Level: level}, nil
	case "zstd":
		return Spec{Codec: Zstd, Level: level}, nil
	case "lz4":
		return Spec{Codec: LZ4, Level: level}, nil
	case "bzip2":
		return Spec{Codec: Bzip2, Level: level}, nil
	default:
		return Spec{}, fmt.Errorf("%w: %q", ErrUnknownCodec, name)
	}
}

// NewReader wraps r with the decompressor for spec, buffering the input
// first so every codec sees a bufio.Reader (matching the original
// source's auto_decompress(BufReader::new(...)) shape).
func NewReader(r io.Reader, spec Spec) (io.Reader, error) {
	br := bufio.NewReader(r)
	switch spec.Codec {
	case None:
		return br, nil
	case Gzip:
		return gzip.NewReader(br)
	case Zstd:
		dec, err := zstd.NewReader(br)
		if err != nil {
			return nil, err
		}
		return dec.IOReadCloser(), nil
	case LZ4:
		return lz4.NewReader(br), nil
	case Bzip2:
		return bzip2.NewReader(br), nil
	default:
		return nil, fmt.Errorf("%w: codec %d", ErrUnknownCodec, spec.Codec)
	}
}

// NewWriter wraps w with the compressor for spec. The returned
// io.WriteCloser must be Closed to flush trailing frames. Bzip2 output is
// produced with xz instead of true bzip2 encoding, since no retrieved
// library can write bzip2 streams; callers that care about the on-disk
// byte format should prefer gzip or zstd.
func NewWriter(w io.Writer, spec Spec) (io.WriteCloser, error) {
	switch spec.Codec {
	case None:
		return nopWriteCloser{w}, nil
	case Gzip:
		level := spec.Level
		if level == 0 {
			level = gzip.DefaultCompression
		}
		return gzip.NewWriterLevel(w, level)
	case Zstd:
		level := zstd.EncoderLevelFromZstd(spec.Level)
		if spec.Level == 0 {
			level = zstd.SpeedDefault
		}
		return zstd.NewWriter(w, zstd.WithEncoderLevel(level))
	case LZ4:
		zw := lz4.NewWriter(w)
		if spec.Level > 0 {
			_ = zw.Apply(lz4.CompressionLevelOption(lz4.CompressionLevel(1 << (8 + spec.Level))))
		}
		return zw, nil
	case Bzip2:
		xw, err := xz.NewWriter(w)
		if err != nil {
			return nil, fmt.Errorf("compression: xz writer (bzip2 substitute): %w", err)
		}
		return xw, nil
	default:
		return nil, fmt.Errorf("%w: codec %d", ErrUnknownCodec, spec.Codec)
	}
}

// nopWriteCloser adapts an io.Writer with no trailing flush requirement.
type nopWriteCloser struct{ io.Writer }

func (nopWriteCloser) Close() error { return nil }
