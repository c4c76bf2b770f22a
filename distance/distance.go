// Package distance implements the infrared-safe metric between two
// internal events: the sum, over particle species, of an optimal-matching
// distance between the two species' pT-sorted momentum lists, in the
// space (rapidity, azimuth, pTWeight*pT).
//
// Because event.Builder keeps every species list sorted descending by pT,
// the sorted-pairing order *is* the documented matching contract: no
// combinatorial assignment search is needed.
package distance

import (
	"math"

	"github.com/katalvlaran/cres/event"
)

// Metric computes the distance between two events for a fixed pT weight
// (tau). A Metric is stateless and safe for concurrent use.
type Metric struct {
	// PtWeight (tau >= 0) scales the pT component of the matching distance.
	PtWeight float64
}

// New returns a Metric with the given pT weight.
func New(ptWeight float64) Metric {
	return Metric{PtWeight: ptWeight}
}

// Distance returns d(a, b): non-negative, symmetric, and zero iff a and b
// have identical canonical representations up to floating-point tolerance.
func (m Metric) Distance(a, b *event.Event) float64 {
	species := make(map[event.PID]struct{}, len(a.Outgoing)+len(b.Outgoing))
	for pid := range a.Outgoing {
		species[pid] = struct{}{}
	}
	for pid := range b.Outgoing {
		species[pid] = struct{}{}
	}

	var total float64
	for pid := range species {
		total += m.speciesDistance(a.Outgoing[pid], b.Outgoing[pid])
	}
	return total
}

// speciesDistance matches two pT-sorted momentum lists pairwise in order
// and sums the per-pair distance; any length surplus is matched against a
// null reference so unequal-length lists stay infrared-safe.
func (m Metric) speciesDistance(as, bs []event.FourMomentum) float64 {
	n := len(as)
	if len(bs) > n {
		n = len(bs)
	}
	var sum float64
	for i := 0; i < n; i++ {
		var a, b point
		if i < len(as) {
			a = pointOf(as[i])
		}
		if i < len(bs) {
			b = pointOf(bs[i])
		}
		if i >= len(as) {
			sum += m.norm(b)
		} else if i >= len(bs) {
			sum += m.norm(a)
		} else {
			sum += m.pairDistance(a, b)
		}
	}
	return sum
}

// point is a momentum projected into (y, phi, pt).
type point struct {
	y, phi, pt float64
}

func pointOf(p event.FourMomentum) point {
	return point{y: p.Rapidity(), phi: p.Phi(), pt: p.Pt()}
}

// norm returns the distance from p to the null reference (0, 0, 0) in
// (y, phi, tau*pt) space.
func (m Metric) norm(p point) float64 {
	return math.Sqrt(p.y*p.y + p.phi*p.phi + m.PtWeight*m.PtWeight*p.pt*p.pt)
}

// pairDistance is the Euclidean distance between two points in
// (y, phi, tau*pt) space, with phi wrapped to its shortest arc on the
// circle.
func (m Metric) pairDistance(a, b point) float64 {
	dy := a.y - b.y
	dphi := wrapPhi(a.phi - b.phi)
	dpt := m.PtWeight * (a.pt - b.pt)
	return math.Sqrt(dy*dy + dphi*dphi + dpt*dpt)
}

// wrapPhi reduces a phi difference to the shortest arc in [-pi, pi].
func wrapPhi(d float64) float64 {
	for d > math.Pi {
		d -= 2 * math.Pi
	}
	for d < -math.Pi {
		d += 2 * math.Pi
	}
	return d
}
