// Package convert implements the TryConvert contract: turning one
// externally-typed RawEvent into the internal event.Event shape,
// including jet clustering, optional lepton dressing, neutrino handling,
// and multi-weight extraction. It provides two converters, a clustering
// one and a pass-through one.
package convert

import (
	"errors"
	"fmt"
	"sort"

	"github.com/katalvlaran/cres/cluster"
	"github.com/katalvlaran/cres/event"
	"github.com/katalvlaran/cres/ioformat"
)

// ErrWeightNotFound is returned when a requested named weight is missing
// from the source event.
type ErrWeightNotFound struct {
	Name     string
	AllNames []string
}

func (e *ErrWeightNotFound) Error() string {
	return fmt.Sprintf("convert: weight %q not found; event has weights %v", e.Name, e.AllNames)
}

// isParton/isHadron/isLightLepton/isPhoton/isNeutrino classify particle species by
// PDG id, matching the branches converter.rs dispatches on. Only the
// ranges relevant to jet/lepton clustering are covered; anything else
// passes through unchanged.
func isParton(id int32) bool {
	a := abs32(id)
	return a >= 1 && a <= 8 || a == 21 // quarks + gluon
}

func isHadron(absID int32) bool {
	return absID >= 100 && absID < 10000
}

func isLightLepton(absID int32) bool {
	return absID == 11 || absID == 13 // e, mu
}

func isPhoton(id int32) bool { return id == 22 }

func isNeutrino(absID int32) bool {
	return absID == 12 || absID == 14 || absID == 16
}

func abs32(x int32) int32 {
	if x < 0 {
		return -x
	}
	return x
}

// Converter converts raw events into internal events, performing jet
// clustering (and optional lepton dressing) on hadronic/partonic/leptonic
// constituents.
type Converter struct {
	jetDef           cluster.JetDefinition
	leptonDef        *cluster.JetDefinition
	includeNeutrinos bool
	weightNames      []string
}

// New returns a Converter using the given jet clustering definition.
func New(jetDef cluster.JetDefinition) *Converter {
	return &Converter{jetDef: jetDef}
}

// WithLeptonDef enables lepton dressing: clustering photons onto charged
// leptons with a second jet-definition-shaped configuration.
func (c *Converter) WithLeptonDef(def cluster.JetDefinition) *Converter {
	c.leptonDef = &def
	return c
}

// WithNeutrinos controls whether neutrinos are kept in the final event
// record (dropped by default).
func (c *Converter) WithNeutrinos(include bool) *Converter {
	c.includeNeutrinos = include
	return c
}

// WithWeights requests that the named weights be extracted alongside the
// central weight (multi-weight mode).
func (c *Converter) WithWeights(names []string) *Converter {
	c.weightNames = names
	return c
}

// TryConvert implements the converter contract.
func (c *Converter) TryConvert(raw ioformat.RawEvent) (*event.Event, error) {
	weights, err := extractWeights(raw, c.weightNames)
	if err != nil {
		return nil, err
	}

	b := event.NewBuilder().SetWeights(weights)

	var partons, leptons []event.FourMomentum
	for _, p := range raw.Particles {
		if p.Status != ioformat.StatusOutgoing {
			continue
		}
		absID := abs32(p.PID)
		switch {
		case isParton(p.PID) || isHadron(absID):
			partons = append(partons, event.FourMomentum(p.P))
		case c.leptonDef != nil && (isLightLepton(absID) || isPhoton(p.PID)):
			leptons = append(leptons, event.FourMomentum(p.P))
		case !c.includeNeutrinos && isNeutrino(absID):
			// dropped
		default:
			b.AddOutgoing(event.PID(p.PID), event.FourMomentum(p.P))
		}
	}

	for _, jet := range cluster.Cluster(partons, c.jetDef) {
		b.AddOutgoing(event.PIDJet, jet)
	}
	if c.leptonDef != nil {
		for _, lepton := range cluster.Cluster(leptons, *c.leptonDef) {
			b.AddOutgoing(event.PIDDressedLepton, lepton)
		}
	}

	return b.Build(), nil
}

// Passthrough performs no jet clustering; every outgoing particle is kept
// as its own species. It is the default for formats that already carry
// pre-clustered pseudo-particles.
type Passthrough struct {
	weightNames []string
}

// NewPassthrough returns a Converter that performs no clustering.
func NewPassthrough() *Passthrough { return &Passthrough{} }

// WithWeights requests named-weight extraction (multi-weight mode).
func (c *Passthrough) WithWeights(names []string) *Passthrough {
	c.weightNames = names
	return c
}

// TryConvert implements the converter contract without clustering.
func (c *Passthrough) TryConvert(raw ioformat.RawEvent) (*event.Event, error) {
	weights, err := extractWeights(raw, c.weightNames)
	if err != nil {
		return nil, err
	}
	b := event.NewBuilder().SetWeights(weights)
	for _, p := range raw.Particles {
		if p.Status != ioformat.StatusOutgoing {
			continue
		}
		b.AddOutgoing(event.PID(p.PID), event.FourMomentum(p.P))
	}
	return b.Build(), nil
}

var errNoWeights = errors.New("convert: source event has no weights")

// extractWeights builds the internal Weights vector: Weights[0] is always
// the source's first (central) weight; any requested names are appended
// in request order, or the whole extraction fails with ErrWeightNotFound
// naming every weight the source event actually carried.
func extractWeights(raw ioformat.RawEvent, names []string) ([]event.Weight, error) {
	if len(raw.Weights) == 0 {
		return nil, errNoWeights
	}
	out := make([]event.Weight, 0, len(names)+1)
	out = append(out, event.Weight{Value: raw.Weights[0].Value})
	if len(names) == 0 {
		return out, nil
	}

	byName := make(map[string]float64, len(raw.Weights))
	var allNames []string
	for _, w := range raw.Weights {
		if w.Name == "" {
			continue
		}
		byName[w.Name] = w.Value
		allNames = append(allNames, w.Name)
	}
	sort.Strings(allNames)

	for _, name := range names {
		v, ok := byName[name]
		if !ok {
			return nil, &ErrWeightNotFound{Name: name, AllNames: allNames}
		}
		out = append(out, event.Weight{Name: name, Value: v})
	}
	return out, nil
}
