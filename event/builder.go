package event

// Builder assembles an Event from individually added outgoing particles and
// a weight vector, keeping the per-species momentum lists pT-sorted as
// required by the canonical representation. Converters (package convert)
// are the main users of Builder.
type Builder struct {
	outgoing map[PID][]FourMomentum
	weights  []Weight
}

// NewBuilder returns an empty Builder.
func NewBuilder() *Builder {
	return &Builder{outgoing: make(map[PID][]FourMomentum)}
}

// AddOutgoing appends a four-momentum to the given species' list.
func (b *Builder) AddOutgoing(pid PID, p FourMomentum) *Builder {
	b.outgoing[pid] = append(b.outgoing[pid], p)
	return b
}

// SetWeight sets the central (anonymous) weight, replacing Weights[0] if
// already present via SetWeights, or seeding Weights with a single
// entry otherwise.
func (b *Builder) SetWeight(w float64) *Builder {
	if len(b.weights) == 0 {
		b.weights = []Weight{{Value: w}}
	} else {
		b.weights[0].Value = w
	}
	return b
}

// SetWeights installs the full weight vector verbatim; Weights[0] becomes
// the central weight. Used by the multi-weight converter path.
func (b *Builder) SetWeights(ws []Weight) *Builder {
	b.weights = ws
	return b
}

// Build finalizes the event: every species' momentum list is sorted
// descending by pT, and a fresh Event is returned with id 0 (the
// orchestrator assigns the real id at ingestion).
func (b *Builder) Build() *Event {
	for _, ps := range b.outgoing {
		sortByPt(ps)
	}
	return &Event{Outgoing: b.outgoing, Weights: b.weights}
}
