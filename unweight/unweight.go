// Package unweight implements the probabilistic weight-clipping
// post-process: events below a minimum-weight threshold are replaced, by
// rejection sampling, with either a clipped weight at the floor or zero,
// in a way that preserves the expected weight sum.
package unweight

import (
	"math"
	"math/rand"

	"github.com/katalvlaran/cres/event"
)

// Config configures one unweighting pass.
type Config struct {
	// MinWeight (w_min >= 0) is the floor below which |weight| is
	// probabilistically clipped. 0 disables unweighting entirely.
	MinWeight float64
	// Seed seeds the pseudo-random generator driving the rejection
	// sampling, for reproducibility.
	Seed int64
}

// Unweight mutates pool's central weights in place and returns the count
// of events clipped to exactly zero (candidates for downstream removal).
func Unweight(pool *event.Pool, cfg Config) int {
	if cfg.MinWeight <= 0 {
		return 0
	}
	rng := rand.New(rand.NewSource(cfg.Seed))
	zeroed := 0
	for i := 0; i < pool.Len(); i++ {
		ev := pool.At(i)
		w := ev.CentralWeight()
		abs := math.Abs(w)
		if abs >= cfg.MinWeight {
			continue
		}
		if rng.Float64() < abs/cfg.MinWeight {
			ev.SetCentralWeight(sign(w) * cfg.MinWeight)
		} else {
			ev.SetCentralWeight(0)
			zeroed++
		}
	}
	return zeroed
}

func sign(w float64) float64 {
	if w < 0 {
		return -1
	}
	return 1
}
