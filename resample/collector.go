package resample

import "sort"

// CellRecord summarizes one finished cell. Members are pool indices.
type CellRecord struct {
	Members    []int
	Radius     float64
	WeightSum  float64
	NNegBefore int
	Capped     bool
}

// Collector accumulates CellRecords as the resampler produces them. It is
// returned by Resample rather than shared by reference with the writer,
// avoiding a cyclic ownership dependency between the two.
type Collector struct {
	records []CellRecord
}

// NewCollector returns an empty Collector.
func NewCollector() *Collector { return &Collector{} }

// Record appends one finished cell's statistics.
func (c *Collector) Record(r CellRecord) {
	if c == nil {
		return
	}
	c.records = append(c.records, r)
}

// Records returns all recorded cells in the order they were produced.
func (c *Collector) Records() []CellRecord {
	if c == nil {
		return nil
	}
	return c.records
}

// MedianRadius returns the median cell radius across all recorded cells,
// or 0 if none were recorded.
func (c *Collector) MedianRadius() float64 {
	if c == nil || len(c.records) == 0 {
		return 0
	}
	radii := make([]float64, len(c.records))
	for i, r := range c.records {
		radii[i] = r.Radius
	}
	return median(radii)
}

func median(xs []float64) float64 {
	n := len(xs)
	sorted := append([]float64(nil), xs...)
	sort.Float64s(sorted)
	if n%2 == 1 {
		return sorted[n/2]
	}
	return (sorted[n/2-1] + sorted[n/2]) / 2
}
