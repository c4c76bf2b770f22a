// Package lhef implements a streaming reader/writer for the Les Houches
// Event File format: an XML document whose <event> elements each wrap a
// plain-text block of whitespace-separated particle records, optionally
// followed by an <rwgt> block of named extra weights. No available
// library parses this mixed grammar, so the reader is built directly on
// encoding/xml's token-based Decoder, which streams through the plain-text
// particle blocks without needing a dedicated LHEF parser.
package lhef

import (
	"bufio"
	"encoding/xml"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/katalvlaran/cres/ioformat"
)

// particle status codes per the LHEF ISTUP convention.
const (
	istOutgoing  = 1
	istResonance = 2
)

// Reader streams RawEvent records out of an LHEF XML source.
type Reader struct {
	src interface {
		io.Reader
		io.Seeker
	}
	dec *xml.Decoder
}

// NewReader wraps src, which must support Seek for Rewind to work.
func NewReader(src interface {
	io.Reader
	io.Seeker
}) *Reader {
	return &Reader{src: src, dec: xml.NewDecoder(bufio.NewReader(src))}
}

// Rewind implements ioformat.Reader.
func (r *Reader) Rewind() error {
	if _, err := r.src.Seek(0, io.SeekStart); err != nil {
		return fmt.Errorf("lhef: rewind: %w", err)
	}
	r.dec = xml.NewDecoder(bufio.NewReader(r.src))
	return nil
}

// SizeHint implements ioformat.Reader; LHEF gives no header event count
// without a full scan.
func (r *Reader) SizeHint() (int, int, bool) { return 0, 0, false }

// Next implements ioformat.Reader, scanning forward to the next <event>
// element and parsing its body.
func (r *Reader) Next() (ioformat.RawEvent, error) {
	for {
		tok, err := r.dec.Token()
		if err == io.EOF {
			return ioformat.RawEvent{}, io.EOF
		}
		if err != nil {
			return ioformat.RawEvent{}, fmt.Errorf("lhef: token: %w", err)
		}
		se, ok := tok.(xml.StartElement)
		if !ok || se.Name.Local != "event" {
			continue
		}
		return r.readEventBody()
	}
}

// readEventBody consumes tokens until the matching </event>, collecting
// the plain-text particle block and any <rwgt><wgt id="..."> entries.
func (r *Reader) readEventBody() (ioformat.RawEvent, error) {
	var (
		body       strings.Builder
		rwgtDepth  int
		pendingID  string
		names      []string
		values     []float64
	)
	for {
		tok, err := r.dec.Token()
		if err != nil {
			return ioformat.RawEvent{}, fmt.Errorf("lhef: reading <event> body: %w", err)
		}
		switch t := tok.(type) {
		case xml.StartElement:
			switch t.Name.Local {
			case "rwgt":
				rwgtDepth++
			case "wgt":
				for _, a := range t.Attr {
					if a.Name.Local == "id" {
						pendingID = a.Value
					}
				}
			}
		case xml.EndElement:
			if t.Name.Local == "event" {
				return buildRawEvent(body.String(), names, values)
			}
			if t.Name.Local == "rwgt" {
				rwgtDepth--
			}
		case xml.CharData:
			if rwgtDepth > 0 && pendingID != "" {
				v, perr := strconv.ParseFloat(strings.TrimSpace(string(t)), 64)
				if perr == nil {
					names = append(names, pendingID)
					values = append(values, v)
				}
				pendingID = ""
				continue
			}
			if rwgtDepth == 0 {
				body.Write(t)
			}
		}
	}
}

func buildRawEvent(body string, names []string, values []float64) (ioformat.RawEvent, error) {
	lines := strings.Split(strings.TrimSpace(body), "\n")
	if len(lines) == 0 {
		return ioformat.RawEvent{}, fmt.Errorf("lhef: empty event body")
	}
	header := strings.Fields(lines[0])
	if len(header) < 3 {
		return ioformat.RawEvent{}, fmt.Errorf("lhef: malformed event header %q", lines[0])
	}
	nParticles, err := strconv.Atoi(header[0])
	if err != nil {
		return ioformat.RawEvent{}, fmt.Errorf("lhef: particle count: %w", err)
	}
	xwgtup, err := strconv.ParseFloat(header[2], 64)
	if err != nil {
		return ioformat.RawEvent{}, fmt.Errorf("lhef: XWGTUP: %w", err)
	}

	weights := []ioformat.RawWeight{{Value: xwgtup}}
	for i, n := range names {
		weights = append(weights, ioformat.RawWeight{Name: n, Value: values[i]})
	}

	var particles []ioformat.RawParticle
	for i := 1; i <= nParticles && i < len(lines); i++ {
		fields := strings.Fields(lines[i])
		if len(fields) < 10 {
			continue
		}
		idup, err := strconv.Atoi(fields[0])
		if err != nil {
			continue
		}
		istup, err := strconv.Atoi(fields[1])
		if err != nil {
			continue
		}
		px, _ := strconv.ParseFloat(fields[6], 64)
		py, _ := strconv.ParseFloat(fields[7], 64)
		pz, _ := strconv.ParseFloat(fields[8], 64)
		e, _ := strconv.ParseFloat(fields[9], 64)

		status := ioformat.StatusOther
		if istup == istOutgoing {
			status = ioformat.StatusOutgoing
		}
		particles = append(particles, ioformat.RawParticle{
			PID:    int32(idup),
			Status: status,
			P:      [4]float64{e, px, py, pz},
		})
	}

	return ioformat.RawEvent{Particles: particles, Weights: weights}, nil
}
