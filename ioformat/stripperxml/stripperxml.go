// Package stripperxml satisfies the ioformat.Reader/Writer interfaces for
// the "stripper-xml" format without a working parser. STRIPPER XML is a
// detector-reconstruction-specific schema with no supporting library
// available here; building one from scratch would mean inventing an
// unvalidated format reader, so this package declines instead.
package stripperxml

import (
	"errors"

	"github.com/katalvlaran/cres/ioformat"
)

// ErrNotAvailable is returned by NewReader/NewWriter: this build has no
// STRIPPER-XML backend.
var ErrNotAvailable = errors.New("stripperxml: format not available in this build (no reference parser in the retrieval pack)")

// NewReader always fails; it exists so --informat stripper-xml produces
// a clear error instead of a missing-format panic.
func NewReader() (ioformat.Reader, error) { return nil, ErrNotAvailable }

// NewWriter always fails; STRIPPER XML has no writer support here either.
func NewWriter() (ioformat.Writer, error) { return nil, ErrNotAvailable }
