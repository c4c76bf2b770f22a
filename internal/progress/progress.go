// Package progress wraps github.com/schollz/progressbar/v3 behind a small
// interface so the orchestrator (package cres) can report read/resample
// progress without every caller (including tests and library consumers)
// needing a real terminal. A third-party dependency hidden behind a
// minimal package-local interface, the same pattern internal/logging
// applies to zerolog.
package progress

import (
	"io"

	"github.com/schollz/progressbar/v3"
)

// Reporter is incremented once per unit of work and closed when the work
// is done. A nil *Reporter is always safe to call, as is the silent one
// returned by NewNop.
type Reporter struct {
	bar *progressbar.ProgressBar
}

// New returns a Reporter that renders a bar named desc to w, tracking max
// units of work. max<0 means the total is unknown (spinner mode).
func New(w io.Writer, max int64, desc string) *Reporter {
	opts := []progressbar.Option{
		progressbar.OptionSetDescription(desc),
		progressbar.OptionSetWriter(w),
		progressbar.OptionShowCount(),
		progressbar.OptionClearOnFinish(),
		progressbar.OptionOnCompletion(func() { _, _ = w.Write([]byte("\n")) }),
	}
	return &Reporter{bar: progressbar.NewOptions64(max, opts...)}
}

// NewNop returns a Reporter whose Add/Finish are no-ops, for callers that
// did not request progress reporting, such as a non-interactive stderr.
func NewNop() *Reporter {
	return &Reporter{bar: progressbar.DefaultSilent(1)}
}

// Add advances the bar by n units. It is safe to call on a nil Reporter.
func (r *Reporter) Add(n int) {
	if r == nil || r.bar == nil {
		return
	}
	_ = r.bar.Add(n)
}

// Finish marks the bar as complete.
func (r *Reporter) Finish() {
	if r == nil || r.bar == nil {
		return
	}
	_ = r.bar.Finish()
}
