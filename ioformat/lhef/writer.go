package lhef

import (
	"bufio"
	"fmt"
	"io"

	"github.com/katalvlaran/cres/ioformat"
)

// Writer emits resampled events as LHEF XML, realigning the original
// reader against the resampled weight list by event id (the same
// contract as ioformat/hepmc2.Writer).
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

	if _, err := fmt.Fprintln(w.w, `<LesHouchesEvents version="1.0">`); err != nil {
		return err
	}

	for id := 0; ; id++ {
		raw, err := reader.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return fmt.Errorf("lhef: write: reading source event %d: %w", id, err)
		}
		resampled, kept := byID[id]
		if !kept {
			continue
		}
		if err := w.writeEvent(raw, resampled); err != nil {
			return err
		}
	}

	if _, err := fmt.Fprintln(w.w, `</LesHouchesEvents>`); err != nil {
		return err
	}
	return w.w.Flush()
}

func (w *Writer) writeEvent(raw ioformat.RawEvent, resampled ioformat.ResampledEvent) error {
	weights := rescaledWeights(raw.Weights, resampled)
	xwgtup := 0.0
	if len(weights) > 0 {
		xwgtup = weights[0].Value
	}

	if _, err := fmt.Fprintln(w.w, "<event>"); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w.w, "%d 0 %s 0.0 0.0 0.0\n", len(raw.Particles), formatFloat(xwgtup)); err != nil {
		return err
	}
	for _, p := range raw.Particles {
		istup := istOutgoing
		if p.Status != ioformat.StatusOutgoing {
			istup = istResonance
		}
		if _, err := fmt.Fprintf(w.w, "%d %d 0 0 0 0 %s %s %s %s 0.0 0.0 0.0\n",
			p.PID, istup,
			formatFloat(p.P[1]), formatFloat(p.P[2]), formatFloat(p.P[3]), formatFloat(p.P[0])); err != nil {
			return err
		}
	}
	if len(weights) > 1 {
		if _, err := fmt.Fprintln(w.w, "<rwgt>"); err != nil {
			return err
		}
		for _, wt := range weights[1:] {
			if wt.Name == "" {
				continue
			}
			if _, err := fmt.Fprintf(w.w, "<wgt id=%q>%s</wgt>\n", wt.Name, formatFloat(wt.Value)); err != nil {
				return err
			}
		}
		if _, err := fmt.Fprintln(w.w, "</rwgt>"); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintln(w.w, "</event>")
	return err
}

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
	return fmt.Sprintf("%g", v)
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
