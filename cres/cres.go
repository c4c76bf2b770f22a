// Package cres implements the orchestrator: it wires a reader, converter,
// the resampler and unweighter, and a writer together into the full
// read → convert → resample → unweight → write pipeline, with the
// dual-pass rewind/realign design that lets writers preserve the external
// file format's per-event metadata by round-tripping through the
// original reader.
package cres

import (
	"io"
	"sort"

	"github.com/katalvlaran/cres/event"
	"github.com/katalvlaran/cres/internal/progress"
	"github.com/katalvlaran/cres/ioformat"
	"github.com/katalvlaran/cres/resample"
	"github.com/katalvlaran/cres/unweight"
	"github.com/rs/zerolog"
)

// Converter matches convert.Converter and convert.Passthrough; it is
// declared locally so package cres does not need to import package
// convert directly (callers wire whichever converter fits their format).
type Converter interface {
	TryConvert(ioformat.RawEvent) (*event.Event, error)
}

// Config bundles one end-to-end run's settings.
type Config struct {
	Resample resample.Config
	Unweight unweight.Config

	// Log receives orchestrator-level progress and summary messages; nil
	// disables logging.
	Log *zerolog.Logger

	// Progress reports read-phase progress; nil (or a no-op Reporter from
	// progress.NewNop) disables it.
	Progress *progress.Reporter
}

// Stats summarizes one completed run for CLI reporting: the --dumpcells
// diagnostic and the final weight-sum/negative-fraction log line.
type Stats struct {
	NumInput             int
	NumOutput            int
	NumZeroedByUnweight  int
	MedianCellRadius     float64
	FinalWeightSum       float64
	NegativeFraction     float64
	NoNegativeWeights    bool
	Cells                *resample.Collector
}

// originalWeight records an event's pre-resampling weight vector so the
// final write pass can compute a rescale ratio against whatever the
// source format originally carried for that id.
type originalWeight struct {
	central float64
	named   map[string]float64
}

// Run executes the full pipeline. reader must support two independent
// passes (ingestion, then realignment for writing); converter turns each
// raw record into an internal event; writer receives the final
// resampled, sorted survivors realigned to reader's original stream.
func Run(reader ioformat.Reader, converter Converter, writer ioformat.Writer, cfg Config) (Stats, error) {
	events, originals, err := ingest(reader, converter, cfg)
	if err != nil {
		return Stats{}, err
	}
	numInput := len(events)

	pool := event.NewPool(events)

	result, err := resample.Resample(pool, cfg.Resample)
	if err != nil {
		return Stats{}, &ResamplingError{Err: err}
	}
	logResampleSummary(cfg.Log, result)

	zeroed := unweight.Unweight(pool, cfg.Unweight)

	// Only the unweighter removes events. When it ran, every zero-weight
	// event is one it set to zero (it clips any |w| below the floor, zero
	// included); without it, zero-weight events are kept.
	survivors := make([]*event.Event, 0, pool.Len())
	for i := 0; i < pool.Len(); i++ {
		ev := pool.At(i)
		if cfg.Unweight.MinWeight > 0 && ev.CentralWeight() == 0 {
			continue
		}
		survivors = append(survivors, ev)
	}
	sort.Slice(survivors, func(i, j int) bool { return event.Less(survivors[i], survivors[j]) })

	if err := reader.Rewind(); err != nil {
		return Stats{}, &RewindError{Pass: 2, Err: err}
	}

	resampled := make([]ioformat.ResampledEvent, len(survivors))
	for i, ev := range survivors {
		orig := originals[ev.ID()]
		resampled[i] = ioformat.ResampledEvent{
			ID:            ev.ID(),
			CentralWeight: ev.CentralWeight(),
			WeightRatio:   safeRatio(ev.CentralWeight(), orig.central),
			NamedRatios:   namedRatios(ev, orig),
		}
	}

	if err := writer.Write(reader, resampled); err != nil {
		return Stats{}, &WriteError{Err: err}
	}

	sum, negFrac := weightStats(survivors)
	stats := Stats{
		NumInput:            numInput,
		NumOutput:           len(survivors),
		NumZeroedByUnweight: zeroed,
		MedianCellRadius:    result.MedianRadius,
		FinalWeightSum:      sum,
		NegativeFraction:    negFrac,
		NoNegativeWeights:   result.NoNegativeWeights,
		Cells:               result.Collector,
	}
	if cfg.Log != nil {
		cfg.Log.Info().
			Int("input", stats.NumInput).
			Int("output", stats.NumOutput).
			Int("zeroed", stats.NumZeroedByUnweight).
			Float64("weight_sum", stats.FinalWeightSum).
			Float64("negative_fraction", stats.NegativeFraction).
			Msg("cres run complete")
	}
	return stats, nil
}

// ingest rewinds the reader, then stream-converts every record, assigning
// sequential ids and recording each event's original weight vector for
// the later rescale pass.
func ingest(reader ioformat.Reader, converter Converter, cfg Config) ([]*event.Event, map[int]originalWeight, error) {
	if err := reader.Rewind(); err != nil {
		return nil, nil, &RewindError{Pass: 1, Err: err}
	}

	bar := cfg.Progress

	var events []*event.Event
	originals := make(map[int]originalWeight)
	for i := 0; ; i++ {
		raw, err := reader.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, nil, &ReadError{Index: i, Err: err}
		}
		ev, err := converter.TryConvert(raw)
		if err != nil {
			return nil, nil, &ConversionError{Index: i, Err: err}
		}
		if ev.ID() != 0 {
			return nil, nil, &IDError{Got: ev.ID()}
		}
		ev.SetID(i)
		events = append(events, ev)

		named := make(map[string]float64)
		for w := 1; w < ev.NumWeights(); w++ {
			if name := ev.Weights[w].Name; name != "" {
				named[name] = ev.Weights[w].Value
			}
		}
		originals[i] = originalWeight{central: ev.CentralWeight(), named: named}
		bar.Add(1)
	}
	bar.Finish()
	return events, originals, nil
}

func namedRatios(ev *event.Event, orig originalWeight) map[string]float64 {
	if len(orig.named) == 0 {
		return nil
	}
	out := make(map[string]float64, len(orig.named))
	for name, origVal := range orig.named {
		final, ok := ev.WeightByName(name)
		if !ok {
			continue
		}
		out[name] = safeRatio(final, origVal)
	}
	return out
}

// safeRatio returns final/orig. When orig is exactly zero the ratio is
// undefined: it then returns 1 if final is also zero, and final itself
// otherwise.
func safeRatio(final, orig float64) float64 {
	if orig == 0 {
		if final == 0 {
			return 1
		}
		return final
	}
	return final / orig
}

func weightStats(events []*event.Event) (sum float64, negFrac float64) {
	if len(events) == 0 {
		return 0, 0
	}
	neg := 0
	for _, ev := range events {
		w := ev.CentralWeight()
		sum += w
		if w < 0 {
			neg++
		}
	}
	return sum, float64(neg) / float64(len(events))
}

func logResampleSummary(log *zerolog.Logger, result resample.Result) {
	if log == nil {
		return
	}
	if result.NoNegativeWeights {
		log.Info().Msg("resample: no negative-weight events found")
		return
	}
	log.Info().Float64("median_cell_radius", result.MedianRadius).Msg("resample: complete")
}
