// Package cell implements the cell-growth state machine: given a
// negative-weight seed event and a neighbour iterator rooted at it, grow
// a group of nearest neighbours until the group's combined central weight
// is non-negative (or growth is capped), then redistribute weight across
// the group so it sums to the same total but every member's central
// weight shares its sign.
package cell

import (
	"github.com/katalvlaran/cres/event"
	"github.com/katalvlaran/cres/neighbour"
	"github.com/rs/zerolog"
)

// Cell is the ephemeral result of growing one group around a seed. It
// borrows (never copies) the shared event pool and refers to its members
// by pool index; only the current cell's members (seed included) are ever
// written, and only by Redistribute or RedistributeMultiWeight (Build
// itself never mutates weights).
type Cell struct {
	pool       *event.Pool
	members    []int // pool indices, seed first
	radius     float64
	weightSum  float64
	nNegBefore int
	capped     bool
}

// Build grows a cell around seed using candidates yielded by it, in
// ascending distance order, stopping as soon as the running central-weight
// sum becomes non-negative, the iterator is exhausted (a "capped" cell),
// or the next candidate's distance exceeds maxCellSize (when > 0; <= 0
// means uncapped). seed's central weight must already be negative; Build
// panics otherwise, since that is always a resampler programming error
// (seed selection is the resampler's responsibility, not the cell's).
func Build(pool *event.Pool, seed int, it neighbour.Iter, maxCellSize float64, log *zerolog.Logger) *Cell {
	seedWeight := pool.CentralWeight(seed)
	if seedWeight >= 0 {
		panic("cell: seed weight must be negative")
	}
	if log != nil {
		log.Debug().Int("seed", seed).Float64("weight", seedWeight).Msg("cell seed")
	}

	c := &Cell{
		pool:      pool,
		members:   []int{seed},
		weightSum: seedWeight,
	}
	if seedWeight < 0 {
		c.nNegBefore = 1
	}

	for c.weightSum < 0 {
		idx, dist, ok := it.Next()
		if !ok {
			c.capped = true
			break
		}
		if maxCellSize > 0 && dist > maxCellSize {
			c.capped = true
			break
		}
		if log != nil {
			log.Trace().Int("member", idx).Float64("distance", dist).
				Float64("weight", pool.CentralWeight(idx)).Msg("admit to cell")
		}
		c.radius = dist
		c.weightSum += pool.CentralWeight(idx)
		if pool.CentralWeight(idx) < 0 {
			c.nNegBefore++
		}
		c.members = append(c.members, idx)
	}
	return c
}

// Members returns the cell's pool indices, seed first, in admission order.
func (c *Cell) Members() []int { return c.members }

// Radius returns the distance from the seed to the last admitted member
// (0 if the cell contains only the seed).
func (c *Cell) Radius() float64 { return c.radius }

// WeightSum returns the running sum of central weights across members,
// computed before redistribution.
func (c *Cell) WeightSum() float64 { return c.weightSum }

// NNegBefore returns the count of members whose central weight was
// negative before redistribution.
func (c *Cell) NNegBefore() int { return c.nNegBefore }

// Capped reports whether growth stopped because the candidate set was
// exhausted or the cell-size cap was hit, rather than because weightSum
// reached zero or above.
func (c *Cell) Capped() bool { return c.capped }
