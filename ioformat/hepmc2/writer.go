package hepmc2

import (
	"bufio"
	"fmt"
	"io"
	"strconv"

	"github.com/katalvlaran/cres/ioformat"
)

// Writer emits resampled events as HepMC2 ASCII, realigning against the
// original reader by event id: every raw event is re-emitted with its
// weight(s) rescaled by the matching ResampledEvent's ratio, and events
// dropped entirely during resampling are skipped.
type Writer struct {
	w   *bufio.Writer
	cls io.Closer
}

// NewWriter wraps w. If w also implements io.Closer, Close forwards to it.
func NewWriter(w io.Writer) *Writer {
	wr := &Writer{w: bufio.NewWriter(w)}
	if c, ok := w.(io.Closer); ok {
		wr.cls = c
	}
	return wr
}

// Write implements ioformat.Writer.
func (w *Writer) Write(reader ioformat.Reader, events []ioformat.ResampledEvent) error {
	byID := make(map[int]ioformat.ResampledEvent, len(events))
	for _, e := range events {
		byID[e.ID] = e
	}

	if _, err := fmt.Fprintln(w.w, "HepMC::Version 2.06.09"); err != nil {
		return err
	}
	if _, err := fmt.Fprintln(w.w, startMarker); err != nil {
		return err
	}

	for id := 0; ; id++ {
		raw, err := reader.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return fmt.Errorf("hepmc2: write: reading source event %d: %w", id, err)
		}
		resampled, kept := byID[id]
		if !kept {
			continue
		}
		if err := w.writeEvent(id, raw, resampled); err != nil {
			return err
		}
	}

	if _, err := fmt.Fprintln(w.w, endMarker); err != nil {
		return err
	}
	return w.w.Flush()
}

func (w *Writer) writeEvent(id int, raw ioformat.RawEvent, resampled ioformat.ResampledEvent) error {
	weights := rescaledWeights(raw.Weights, resampled)

	names := make([]string, 0, len(weights))
	for _, wt := range weights {
		if wt.Name != "" {
			names = append(names, wt.Name)
		}
	}
	if len(names) > 0 {
		if err := w.writeNLine(names); err != nil {
			return err
		}
	}

	if _, err := fmt.Fprintf(w.w, "E %d -1 -1.0 -1.0 -1.0 0 0 1 0 0 0 %d", id, len(weights)); err != nil {
		return err
	}
	for _, wt := range weights {
		if _, err := fmt.Fprintf(w.w, " %s", formatFloat(wt.Value)); err != nil {
			return err
		}
	}
	if _, err := fmt.Fprintln(w.w); err != nil {
		return err
	}

	for i, p := range raw.Particles {
		status := 0
		if p.Status == ioformat.StatusOutgoing {
			status = 1
		}
		if _, err := fmt.Fprintf(w.w, "P %d %d %s %s %s %s 0.0 %d 0.0 0.0 0 0\n",
			i+1, p.PID,
			formatFloat(p.P[1]), formatFloat(p.P[2]), formatFloat(p.P[3]), formatFloat(p.P[0]),
			status); err != nil {
			return err
		}
	}
	return nil
}

func (w *Writer) writeNLine(names []string) error {
	if _, err := fmt.Fprintf(w.w, "N %d", len(names)); err != nil {
		return err
	}
	for _, n := range names {
		if _, err := fmt.Fprintf(w.w, " %q", n); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintln(w.w)
	return err
}

// rescaledWeights applies resampled.WeightRatio to the raw central weight
// and resampled.NamedRatios to any named weight that has one, keeping the
// rest unchanged.
func rescaledWeights(raw []ioformat.RawWeight, resampled ioformat.ResampledEvent) []ioformat.RawWeight {
	out := make([]ioformat.RawWeight, len(raw))
	copy(out, raw)
	if len(out) > 0 {
		out[0].Value = raw[0].Value * resampled.WeightRatio
	}
	for i := range out {
		if ratio, ok := resampled.NamedRatios[out[i].Name]; ok {
			out[i].Value = raw[i].Value * ratio
		}
	}
	return out
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

// Close flushes and closes the underlying writer, if it supports Close.
func (w *Writer) Close() error {
	if err := w.w.Flush(); err != nil {
		return err
	}
	if w.cls != nil {
		return w.cls.Close()
	}
	return nil
}
