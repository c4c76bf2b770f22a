package main

import (
	"io"

	"github.com/katalvlaran/cres/ioformat"
)

// multiReader concatenates several per-file readers into the single
// stream the orchestrator expects, for the CLI's "one or more input file
// paths" positional argument.
type multiReader struct {
	readers []ioformat.Reader
	cur     int
}

func newMultiReader(readers []ioformat.Reader) *multiReader {
	return &multiReader{readers: readers}
}

func (m *multiReader) Next() (ioformat.RawEvent, error) {
	for m.cur < len(m.readers) {
		ev, err := m.readers[m.cur].Next()
		if err == io.EOF {
			m.cur++
			continue
		}
		return ev, err
	}
	return ioformat.RawEvent{}, io.EOF
}

func (m *multiReader) Rewind() error {
	for _, r := range m.readers {
		if err := r.Rewind(); err != nil {
			return err
		}
	}
	m.cur = 0
	return nil
}

func (m *multiReader) SizeHint() (int, int, bool) {
	lower, upper := 0, 0
	hasUpper := true
	for _, r := range m.readers {
		l, u, ok := r.SizeHint()
		lower += l
		if !ok {
			hasUpper = false
			continue
		}
		upper += u
	}
	if !hasUpper {
		upper = 0
	}
	return lower, upper, hasUpper
}
