// Package ioformat declares the reader/writer interfaces and raw record types that
// let the core orchestrator (package cres) stay agnostic of any concrete
// file format, compression codec, or jet-clustering library. Concrete
// formats live in ioformat's subpackages; only HepMC2 and LHEF are fully
// implemented, the rest satisfy the interfaces without a working backend.
package ioformat

import "errors"

// Status mirrors the HEPEVT/LHE particle-status convention used across the
// pack's retrieved formats: 1 means "final state / outgoing".
type Status int

const (
	StatusOutgoing Status = 1
	StatusOther    Status = 0
)

// RawParticle is one particle record in an externally-typed event, before
// jet clustering or species normalization.
type RawParticle struct {
	PID    int32
	Status Status
	P      [4]float64 // (E, px, py, pz) GeV
}

// RawWeight is one named (or anonymous, Name=="") weight entry as stored
// in the source file format.
type RawWeight struct {
	Name  string
	Value float64
}

// RawEvent is the externally-typed event record read from a concrete
// format, before conversion to the internal event.Event shape.
type RawEvent struct {
	Particles []RawParticle
	Weights   []RawWeight
}

// ErrRewindUnsupported is returned by Reader implementations that cannot
// support a second read pass.
var ErrRewindUnsupported = errors.New("ioformat: reader does not support rewind")

// Reader is a rewindable stream of RawEvent records. Next returns io.EOF
// (via the standard library sentinel) once the stream is exhausted.
type Reader interface {
	// Next returns the next record, or a non-nil error. Implementations
	// return io.EOF to signal a clean end of stream.
	Next() (RawEvent, error)

	// Rewind resets the stream to its first record.
	Rewind() error

	// SizeHint returns a lower bound and, if known, an upper bound on the
	// number of records remaining.
	SizeHint() (lower int, upper int, hasUpper bool)
}

// Writer accepts the original reader (already rewound to its start by the
// orchestrator) alongside the final resampled events, and is responsible
// for realigning the two streams by event id.
type Writer interface {
	Write(reader Reader, events []ResampledEvent) error
	Close() error
}

// ResampledEvent is what the orchestrator hands to a Writer for one
// surviving event: its id (to realign with the raw stream) and its final
// weight(s), expressed as a ratio against the weight(s) the converter
// originally read, so the writer can rescale any named weight it is
// preserving from the raw record.
type ResampledEvent struct {
	ID             int
	CentralWeight  float64
	WeightRatio    float64 // CentralWeight / original central weight
	NamedRatios    map[string]float64
}
