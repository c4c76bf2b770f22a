package main

import (
	"encoding/json"
	"os"

	"github.com/katalvlaran/cres/cres"
)

// dumpCellRecord is the JSON shape written by --dumpcells: one entry per
// resampled cell.
type dumpCellRecord struct {
	Members    []int   `json:"members"`
	Radius     float64 `json:"radius"`
	WeightSum  float64 `json:"weight_sum"`
	NNegBefore int     `json:"n_neg_before"`
	Capped     bool    `json:"capped"`
}

func dumpCells(path string, stats cres.Stats) error {
	var records []dumpCellRecord
	if stats.Cells != nil {
		for _, r := range stats.Cells.Records() {
			records = append(records, dumpCellRecord{
				Members:    r.Members,
				Radius:     r.Radius,
				WeightSum:  r.WeightSum,
				NNegBefore: r.NNegBefore,
				Capped:     r.Capped,
			})
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	return enc.Encode(records)
}
