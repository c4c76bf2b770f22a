// Package rootntuple satisfies the ioformat.Reader/Writer interfaces for
// the "root" format without a working ROOT ntuple backend: CERN ROOT's
// file format requires its C++ library (or a cgo binding to it), and
// none is available here. This package declines at construction time
// instead of inventing a from-scratch ROOT file reader.
package rootntuple

import (
	"errors"

	"github.com/katalvlaran/cres/ioformat"
)

// ErrNotAvailable is returned by NewReader/NewWriter: this build has no
// ROOT ntuple backend.
var ErrNotAvailable = errors.New("rootntuple: format not available in this build (requires CERN ROOT bindings)")

// NewReader always fails; it exists so --informat root produces a clear
// error instead of a missing-format panic.
func NewReader() (ioformat.Reader, error) { return nil, ErrNotAvailable }

// NewWriter always fails; it exists so --outformat root produces a clear
// error instead of a missing-format panic.
func NewWriter() (ioformat.Writer, error) { return nil, ErrNotAvailable }
