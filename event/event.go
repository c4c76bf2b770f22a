// Package event defines the internal, reader-agnostic representation of a
// single weighted particle-collision event used throughout cres: a
// normalized set of outgoing four-momenta grouped by species, one or more
// event weights, and a stable integer id that survives resampling so the
// orchestrator can realign resampled weights with the original input
// stream.
//
// Events are immutable except for their weight vector and id: every other
// field is fixed at construction time via Builder.
package event

import (
	"errors"
	"math"
	"sort"
)

// Sentinel errors for event construction and mutation.
var (
	// ErrNegativeEnergy indicates a four-momentum with E < 0.
	ErrNegativeEnergy = errors.New("event: negative energy")

	// ErrNoWeights indicates an event was built with an empty weight vector.
	ErrNoWeights = errors.New("event: weight vector is empty")

	// ErrWeightIndex indicates an out-of-range weight index was requested.
	ErrWeightIndex = errors.New("event: weight index out of range")
)

// PID identifies a particle species inside an Event's outgoing record.
// Jet clustering (package cluster) produces the synthetic species
// PIDJet and PIDDressedLepton; converters pass through whatever species
// identifiers the source format uses for everything else.
type PID int32

// Synthetic species ids produced by jet clustering and lepton dressing.
const (
	PIDJet           PID = -1000
	PIDDressedLepton PID = -1100
)

// FourMomentum is (E, px, py, pz) in GeV.
type FourMomentum [4]float64

// E, Px, Py, Pz return the components by name for readability at call sites.
func (p FourMomentum) E() float64  { return p[0] }
func (p FourMomentum) Px() float64 { return p[1] }
func (p FourMomentum) Py() float64 { return p[2] }
func (p FourMomentum) Pz() float64 { return p[3] }

// Pt returns the transverse momentum sqrt(px^2+py^2).
func (p FourMomentum) Pt() float64 {
	return math.Hypot(p[1], p[2])
}

// Rapidity returns the longitudinal rapidity y = 0.5*ln((E+pz)/(E-pz)).
// Back-to-back massless limits are clamped to avoid NaN/Inf on exactly
// lightlike momenta along the beam axis.
func (p FourMomentum) Rapidity() float64 {
	e, pz := p[0], p[3]
	num, den := e+pz, e-pz
	if den <= 0 {
		den = 1e-300
	}
	if num <= 0 {
		num = 1e-300
	}
	return 0.5 * math.Log(num/den)
}

// Phi returns the azimuthal angle in (-pi, pi].
func (p FourMomentum) Phi() float64 {
	return math.Atan2(p[2], p[1])
}

// Weight is a single named (or anonymous) event weight.
type Weight struct {
	Name  string
	Value float64
}

// Event is the internal representation resampled by the core engine.
//
// Outgoing holds, per species, a pT-descending ordered momentum list; this
// canonical ordering is what makes the event representation suitable for
// the sorted-pairing distance contract in package distance, and it must be
// restored after any mutation of Outgoing.
type Event struct {
	// id is assigned sequentially by the orchestrator at ingestion and is
	// otherwise immutable; use ID()/SetID() to read or (re)assign it.
	id int

	// Outgoing maps species id to its pT-sorted momentum list.
	Outgoing map[PID][]FourMomentum

	// Weights holds the event's weight vector; Weights[0] is the central
	// weight that drives cell building. Additional entries are named
	// weights averaged alongside the central weight during resampling.
	Weights []Weight
}

// ID returns the event's stable identifier.
func (e *Event) ID() int { return e.id }

// SetID assigns the event's stable identifier. Only the orchestrator's
// ingestion step should call this; resampling and unweighting never touch
// ids.
func (e *Event) SetID(id int) { e.id = id }

// CentralWeight returns Weights[0].Value.
func (e *Event) CentralWeight() float64 {
	return e.Weights[0].Value
}

// SetCentralWeight overwrites Weights[0].Value in place.
func (e *Event) SetCentralWeight(w float64) {
	e.Weights[0].Value = w
}

// WeightByName returns the value of a named weight, and whether it was
// found. The central weight is never matched by name unless it was built
// with one.
func (e *Event) WeightByName(name string) (float64, bool) {
	for _, w := range e.Weights {
		if w.Name == name {
			return w.Value, true
		}
	}
	return 0, false
}

// NumWeights returns len(Weights).
func (e *Event) NumWeights() int { return len(e.Weights) }

// WeightAt returns Weights[i].Value, or ErrWeightIndex if i is out of range.
func (e *Event) WeightAt(i int) (float64, error) {
	if i < 0 || i >= len(e.Weights) {
		return 0, ErrWeightIndex
	}
	return e.Weights[i].Value, nil
}

// SetWeightAt overwrites Weights[i].Value, or returns ErrWeightIndex.
func (e *Event) SetWeightAt(i int, v float64) error {
	if i < 0 || i >= len(e.Weights) {
		return ErrWeightIndex
	}
	e.Weights[i].Value = v
	return nil
}

// Clone returns a deep copy of the event, including a fresh Outgoing map
// and Weights slice, so mutating the clone never affects the original.
func (e *Event) Clone() *Event {
	out := make(map[PID][]FourMomentum, len(e.Outgoing))
	for pid, ps := range e.Outgoing {
		cp := make([]FourMomentum, len(ps))
		copy(cp, ps)
		out[pid] = cp
	}
	ws := make([]Weight, len(e.Weights))
	copy(ws, e.Weights)
	return &Event{id: e.id, Outgoing: out, Weights: ws}
}

// Less implements the total order used to sort the final output: ascending
// by central weight, then by id. Ties in both fields are stable (equal).
func Less(a, b *Event) bool {
	if a.CentralWeight() != b.CentralWeight() {
		return a.CentralWeight() < b.CentralWeight()
	}
	return a.id < b.id
}

// sortByPt sorts a momentum slice descending by transverse momentum,
// restoring the canonical per-species ordering required by the distance
// metric.
func sortByPt(ps []FourMomentum) {
	sort.Slice(ps, func(i, j int) bool {
		return ps[i].Pt() > ps[j].Pt()
	})
}

// Validate checks an event's core invariants: non-negative energies and a
// non-empty weight vector. It does not re-sort Outgoing;
// callers that mutate Outgoing directly are responsible for calling
// Builder or sortByPt to keep the canonical ordering.
func (e *Event) Validate() error {
	if len(e.Weights) == 0 {
		return ErrNoWeights
	}
	for _, ps := range e.Outgoing {
		for _, p := range ps {
			if p.E() < 0 {
				return ErrNegativeEnergy
			}
		}
	}
	return nil
}
