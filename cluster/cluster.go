// Package cluster implements sequential-recombination jet clustering
// (anti-kt, kt, Cambridge-Aachen). It is a standalone domain collaborator:
// the core resampling engine never imports it directly, only package
// convert does, since the core requires only that converters yield
// events in the internal shape.
//
// There is no fastjet binding available here, so this is a genuine, if
// simplified, O(n^3) greedy implementation: each of up to n rounds scans
// every pair to merge the two closest pseudo-jets.
package cluster

import (
	"errors"
	"math"

	"github.com/katalvlaran/cres/event"
)

// Algorithm selects the recombination distance measure.
type Algorithm int

const (
	// AntiKt clusters hard, well-separated jets first (p=-1).
	AntiKt Algorithm = iota
	// Kt clusters soft splittings first (p=1).
	Kt
	// CambridgeAachen ignores pT entirely (p=0), an angular-ordering-only
	// measure.
	CambridgeAachen
)

// ErrUnknownAlgorithm is returned by ParseAlgorithm for unrecognized
// input.
var ErrUnknownAlgorithm = errors.New("cluster: unknown jet algorithm")

// ParseAlgorithm parses a CLI --jetalgorithm / --leptonalgorithm value.
func ParseAlgorithm(s string) (Algorithm, error) {
	switch s {
	case "anti-kt":
		return AntiKt, nil
	case "kt":
		return Kt, nil
	case "Cambridge-Aachen", "cambridge-aachen", "ca":
		return CambridgeAachen, nil
	default:
		return 0, ErrUnknownAlgorithm
	}
}

func (a Algorithm) String() string {
	switch a {
	case AntiKt:
		return "anti-kt"
	case Kt:
		return "kt"
	case CambridgeAachen:
		return "Cambridge-Aachen"
	default:
		return "unknown"
	}
}

// JetDefinition configures one clustering pass, shared by both the jet
// and lepton-dressing CLI options.
type JetDefinition struct {
	Algorithm Algorithm
	Radius    float64
	MinPt     float64
}

// exponent maps the algorithm to the standard sequential-recombination
// exponent p in d_ij = min(kt_i^2p, kt_j^2p) * Delta_ij^2 / R^2.
func (d JetDefinition) exponent() float64 {
	switch d.Algorithm {
	case AntiKt:
		return -1
	case Kt:
		return 1
	default:
		return 0
	}
}

// pseudoJet is one input or merged constituent during clustering.
type pseudoJet struct {
	p event.FourMomentum
}

func (j pseudoJet) pt() float64       { return j.p.Pt() }
func (j pseudoJet) rapidity() float64 { return j.p.Rapidity() }
func (j pseudoJet) phi() float64      { return j.p.Phi() }

func merge(a, b pseudoJet) pseudoJet {
	return pseudoJet{p: event.FourMomentum{
		a.p[0] + b.p[0],
		a.p[1] + b.p[1],
		a.p[2] + b.p[2],
		a.p[3] + b.p[3],
	}}
}

// Cluster runs sequential recombination over the given constituents and
// returns the final jets with pT >= def.MinPt, in no particular order
// (the converter's event.Builder re-sorts by pT when the event is built).
func Cluster(constituents []event.FourMomentum, def JetDefinition) []event.FourMomentum {
	if len(constituents) == 0 {
		return nil
	}

	jets := make([]pseudoJet, len(constituents))
	for i, p := range constituents {
		jets[i] = pseudoJet{p: p}
	}
	active := make([]bool, len(jets))
	for i := range active {
		active[i] = true
	}
	remaining := len(jets)
	p := def.exponent()
	r2 := def.Radius * def.Radius

	beamDistance := func(j pseudoJet) float64 {
		return math.Pow(j.pt(), 2*p)
	}
	pairDistance := func(a, b pseudoJet) float64 {
		dy := a.rapidity() - b.rapidity()
		dphi := wrapPhi(a.phi() - b.phi())
		delta2 := dy*dy + dphi*dphi
		ktA, ktB := math.Pow(a.pt(), 2*p), math.Pow(b.pt(), 2*p)
		kt := ktA
		if ktB < kt {
			kt = ktB
		}
		return kt * delta2 / r2
	}

	var finished []event.FourMomentum

	for remaining > 0 {
		bestI, bestJ := -1, -1
		bestDij := math.Inf(1)
		bestBeamI := -1
		bestBeamD := math.Inf(1)

		for i := range jets {
			if !active[i] {
				continue
			}
			if bd := beamDistance(jets[i]); bd < bestBeamD {
				bestBeamD, bestBeamI = bd, i
			}
			for j := i + 1; j < len(jets); j++ {
				if !active[j] {
					continue
				}
				if d := pairDistance(jets[i], jets[j]); d < bestDij {
					bestDij, bestI, bestJ = d, i, j
				}
			}
		}

		if bestDij < bestBeamD {
			merged := merge(jets[bestI], jets[bestJ])
			jets[bestI] = merged
			active[bestJ] = false
			remaining--
		} else {
			if jets[bestBeamI].pt() >= def.MinPt {
				finished = append(finished, jets[bestBeamI].p)
			}
			active[bestBeamI] = false
			remaining--
		}
	}

	return finished
}

func wrapPhi(d float64) float64 {
	for d > math.Pi {
		d -= 2 * math.Pi
	}
	for d < -math.Pi {
		d += 2 * math.Pi
	}
	return d
}
