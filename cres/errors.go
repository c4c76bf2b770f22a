package cres

import "fmt"

// Sentinel error kinds surfaced by Run: every failure is wrapped in one
// of these so callers can classify it with errors.As without parsing
// message text.

// ReadError wraps a failure to pull the next record from the reader.
type ReadError struct {
	Index int
	Err   error
}

func (e *ReadError) Error() string {
	return fmt.Sprintf("cres: read error at record %d: %v", e.Index, e.Err)
}
func (e *ReadError) Unwrap() error { return e.Err }

// RewindError wraps a failure to rewind the reader before either of its
// two passes (ingestion, then realignment for writing).
type RewindError struct {
	Pass int // 1 or 2
	Err  error
}

func (e *RewindError) Error() string {
	return fmt.Sprintf("cres: rewind error (pass %d): %v", e.Pass, e.Err)
}
func (e *RewindError) Unwrap() error { return e.Err }

// ConversionError wraps a converter failure, naming the failing record's
// index in the input stream.
type ConversionError struct {
	Index int
	Err   error
}

func (e *ConversionError) Error() string {
	return fmt.Sprintf("cres: conversion error at record %d: %v", e.Index, e.Err)
}
func (e *ConversionError) Unwrap() error { return e.Err }

// ResamplingError wraps a failure from the resampling stage (neighbour
// index build failure or an internal invariant violation).
type ResamplingError struct {
	Err error
}

func (e *ResamplingError) Error() string { return fmt.Sprintf("cres: resampling error: %v", e.Err) }
func (e *ResamplingError) Unwrap() error { return e.Err }

// UnweightingError is reserved: the current unweighting policy never
// fails, but the error kind exists so a future policy change does not
// need a new Run() error taxonomy.
type UnweightingError struct {
	Err error
}

func (e *UnweightingError) Error() string { return fmt.Sprintf("cres: unweighting error: %v", e.Err) }
func (e *UnweightingError) Unwrap() error { return e.Err }

// WriteError wraps a downstream writer failure.
type WriteError struct {
	Err error
}

func (e *WriteError) Error() string { return fmt.Sprintf("cres: write error: %v", e.Err) }
func (e *WriteError) Unwrap() error { return e.Err }

// IDError indicates a converter produced an event with a non-zero
// pre-assigned id, a programming defect upstream of the orchestrator:
// ids are the orchestrator's exclusive domain.
type IDError struct {
	Got int
}

func (e *IDError) Error() string {
	return fmt.Sprintf("cres: converter produced event with pre-assigned id %d, want 0", e.Got)
}
