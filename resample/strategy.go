package resample

// Strategy selects the next seed among a partition's events with negative
// central weight. Ties are always broken by lower id.
type Strategy int

const (
	// MostNegative picks the event with the minimum central weight.
	MostNegative Strategy = iota
	// LeastNegative picks the event with the largest still-negative
	// central weight.
	LeastNegative
	// Any picks the first negative-weight event encountered.
	Any
)

// String renders the strategy using the CLI surface's lower_snake_case
// names.
func (s Strategy) String() string {
	switch s {
	case MostNegative:
		return "most_negative"
	case LeastNegative:
		return "least_negative"
	case Any:
		return "any"
	default:
		return "unknown"
	}
}

// ParseStrategy parses a CLI --strategy value.
func ParseStrategy(s string) (Strategy, bool) {
	switch s {
	case "most_negative":
		return MostNegative, true
	case "least_negative":
		return LeastNegative, true
	case "any":
		return Any, true
	default:
		return 0, false
	}
}

// seedState tracks which partition-local pool indices remain eligible to
// seed a cell: still negative-weight and not yet claimed by an earlier
// cell in this partition.
type seedState struct {
	strategy Strategy
	indices  []int // partition-local pool indices, fixed at construction
	claimed  []bool
}

func newSeedState(strategy Strategy, indices []int) *seedState {
	return &seedState{strategy: strategy, indices: indices, claimed: make([]bool, len(indices))}
}

// next returns the pool index of the next seed by strategy, or ok=false if
// no eligible (unclaimed, negative-weight) event remains. Ties within a
// strategy are broken by lower pool index, which equals the id because
// the orchestrator builds the pool in id order (id i at index i).
func (s *seedState) next(weight func(idx int) float64) (int, bool) {
	best := -1
	var bestW float64
	for pos, idx := range s.indices {
		if s.claimed[pos] {
			continue
		}
		w := weight(idx)
		if w >= 0 {
			continue
		}
		switch s.strategy {
		case Any:
			return idx, true
		case MostNegative:
			if best == -1 || w < bestW || (w == bestW && idx < best) {
				best, bestW = idx, w
			}
		case LeastNegative:
			if best == -1 || w > bestW || (w == bestW && idx < best) {
				best, bestW = idx, w
			}
		}
	}
	if best == -1 {
		return 0, false
	}
	return best, true
}

// claim marks idx as used so it can never seed again.
func (s *seedState) claim(idx int) {
	for pos, v := range s.indices {
		if v == idx {
			s.claimed[pos] = true
			return
		}
	}
}
