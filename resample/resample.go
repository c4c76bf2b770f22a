// Package resample implements the partitioned cell-resampling driver: it
// selects seeds, drives cell growth and weight redistribution, enforces
// the optional cell-size cap, and splits work across partitions that
// never share members so they can run concurrently.
package resample

import (
	"errors"
	"fmt"
	"sync"

	"github.com/katalvlaran/cres/cell"
	"github.com/katalvlaran/cres/distance"
	"github.com/katalvlaran/cres/event"
	"github.com/katalvlaran/cres/neighbour"
	"github.com/rs/zerolog"
)

// Backend selects the neighbour-index implementation.
type Backend int

const (
	// Tree uses the vantage-point tree backend.
	Tree Backend = iota
	// Naive uses the scratch-array backend.
	Naive
)

// Sentinel errors surfaced by the resampler.
var (
	// ErrNoNegativeWeights names an informational condition, not a
	// failure: the pool had no negative-weight event to resample. Resample
	// itself does not return it; it reports the condition through
	// Result.NoNegativeWeights.
	ErrNoNegativeWeights = errors.New("resample: no negative-weight events found")

	// ErrInvalidPartitions indicates a non-positive partition count.
	ErrInvalidPartitions = errors.New("resample: n_partitions must be >= 1")
)

// Config configures one resampling run.
type Config struct {
	// MaxCellSize caps cell growth by distance; <= 0 means uncapped.
	MaxCellSize float64

	// NPartitions splits the event pool into disjoint, independently
	// resampled subsets. Must be >= 1.
	NPartitions int

	// PtWeight is the tau parameter of the distance metric.
	PtWeight float64

	// Strategy selects how seeds are chosen within each partition.
	Strategy Strategy

	// Backend selects the neighbour-index implementation.
	Backend Backend

	// MultiWeight enables componentwise-mean redistribution across the
	// full weight vector instead of single-weight mean redistribution.
	MultiWeight bool

	// Workers bounds the number of partitions resampled concurrently;
	// <= 0 means one worker per partition.
	Workers int

	// Log receives cell-growth diagnostics; nil disables logging.
	Log *zerolog.Logger
}

// Validate checks Config invariants before a run starts.
func (c Config) Validate() error {
	if c.NPartitions < 1 {
		return ErrInvalidPartitions
	}
	return nil
}

// Result is the outcome of a full resampling run.
type Result struct {
	// Collector holds every cell produced, across all partitions.
	Collector *Collector
	// MedianRadius is the median radius across all recorded cells.
	MedianRadius float64
	// NoNegativeWeights is true if the pool had nothing to resample.
	NoNegativeWeights bool
}

// Resample runs cell resampling over pool in place (events' central
// weights, and in multi-weight mode their full weight vectors, are
// overwritten) and returns cell statistics.
func Resample(pool *event.Pool, cfg Config) (Result, error) {
	if err := cfg.Validate(); err != nil {
		return Result{}, err
	}

	anyNegative := false
	for i := 0; i < pool.Len(); i++ {
		if pool.CentralWeight(i) < 0 {
			anyNegative = true
			break
		}
	}
	if !anyNegative {
		return Result{NoNegativeWeights: true}, nil
	}

	partitions := pool.Partition(cfg.NPartitions)
	collector := NewCollector()
	var mu sync.Mutex // guards collector.Record across concurrent partitions

	workers := cfg.Workers
	if workers <= 0 {
		workers = len(partitions)
	}
	sem := make(chan struct{}, workers)
	var wg sync.WaitGroup
	var firstErr error
	var errMu sync.Mutex

	for _, indices := range partitions {
		if len(indices) == 0 {
			continue
		}
		indices := indices
		wg.Add(1)
		sem <- struct{}{}
		go func() {
			defer wg.Done()
			defer func() { <-sem }()
			local := NewCollector()
			if err := resamplePartition(pool, indices, cfg, local); err != nil {
				errMu.Lock()
				if firstErr == nil {
					firstErr = err
				}
				errMu.Unlock()
				return
			}
			mu.Lock()
			collector.records = append(collector.records, local.records...)
			mu.Unlock()
		}()
	}
	wg.Wait()

	if firstErr != nil {
		return Result{}, firstErr
	}

	return Result{
		Collector:    collector,
		MedianRadius: collector.MedianRadius(),
	}, nil
}

// resamplePartition drives the seed-selection/cell-build/redistribute
// loop over one partition's indices.
func resamplePartition(pool *event.Pool, indices []int, cfg Config, out *Collector) error {
	metric := distance.New(cfg.PtWeight)
	distFn := func(a, b int) float64 {
		return metric.Distance(pool.At(a), pool.At(b))
	}

	var search neighbour.Search
	switch cfg.Backend {
	case Naive:
		search = neighbour.NewNaiveSearch(len(pool.Events), distFn, 0)
	default:
		search = neighbour.NewVPTree(len(pool.Events), distFn)
	}

	// Points outside this partition are never valid candidates.
	inPartition := make(map[int]bool, len(indices))
	for _, idx := range indices {
		inPartition[idx] = true
	}
	for i := 0; i < len(pool.Events); i++ {
		if !inPartition[i] {
			search.Remove(i)
		}
	}

	seeds := newSeedState(cfg.Strategy, indices)
	weightOf := func(idx int) float64 { return pool.CentralWeight(idx) }

	for {
		seed, ok := seeds.next(weightOf)
		if !ok {
			break
		}

		it := search.NearestFrom(seed)
		c := cell.Build(pool, seed, it, cfg.MaxCellSize, cfg.Log)

		if cfg.MultiWeight {
			c.RedistributeMultiWeight(nil)
		} else {
			c.Redistribute()
		}

		for _, m := range c.Members() {
			search.Remove(m)
			seeds.claim(m)
		}

		out.Record(CellRecord{
			Members:    append([]int(nil), c.Members()...),
			Radius:     c.Radius(),
			WeightSum:  c.WeightSum(),
			NNegBefore: c.NNegBefore(),
			Capped:     c.Capped(),
		})
	}
	return nil
}

// ParseBackend parses a CLI --search value.
func ParseBackend(s string) (Backend, error) {
	switch s {
	case "tree":
		return Tree, nil
	case "naive":
		return Naive, nil
	default:
		return 0, fmt.Errorf("resample: unknown search backend %q", s)
	}
}
