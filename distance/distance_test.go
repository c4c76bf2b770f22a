package distance_test

import (
	"testing"

	"github.com/katalvlaran/cres/distance"
	"github.com/katalvlaran/cres/event"
	"github.com/stretchr/testify/assert"
)

func mkEvent(pt float64) *event.Event {
	b := event.NewBuilder()
	b.AddOutgoing(event.PIDJet, event.FourMomentum{pt, pt, 0, 0})
	b.SetWeight(1)
	return b.Build()
}

func TestDistanceSymmetric(t *testing.T) {
	m := distance.New(1.0)
	a, b := mkEvent(10), mkEvent(20)
	assert.InDelta(t, m.Distance(a, b), m.Distance(b, a), 1e-12)
}

func TestDistanceZeroForIdentical(t *testing.T) {
	m := distance.New(0.5)
	a, b := mkEvent(12), mkEvent(12)
	assert.InDelta(t, 0, m.Distance(a, b), 1e-12)
}

func TestDistanceNonNegative(t *testing.T) {
	m := distance.New(1.0)
	a, b := mkEvent(1), mkEvent(100)
	assert.GreaterOrEqual(t, m.Distance(a, b), 0.0)
}

func TestDistanceUnequalLengthsMatchAgainstNull(t *testing.T) {
	m := distance.New(1.0)
	a := event.NewBuilder()
	a.AddOutgoing(event.PIDJet, event.FourMomentum{10, 5, 0, 0})
	a.AddOutgoing(event.PIDJet, event.FourMomentum{10, 3, 0, 0})
	a.SetWeight(1)
	evA := a.Build()

	b := event.NewBuilder()
	b.AddOutgoing(event.PIDJet, event.FourMomentum{10, 5, 0, 0})
	b.SetWeight(1)
	evB := b.Build()

	// evA has one extra jet vs evB; its distance should equal the norm
	// of the unmatched jet (both pT=5 entries cancel exactly). That jet
	// has y=0, phi=0, pT=3, so with tau=1 its norm is 3.
	d := m.Distance(evA, evB)
	expected := 3.0
	assert.InDelta(t, expected, d, 1e-12)
	assert.Greater(t, d, 0.0)
}

func TestPhiWrapsShortestArc(t *testing.T) {
	m := distance.New(0)
	// phi close to +pi and -pi should be judged as nearly adjacent, not
	// almost 2*pi apart.
	a := event.NewBuilder()
	a.AddOutgoing(event.PIDJet, event.FourMomentum{10, -10, 0.01, 0})
	a.SetWeight(1)
	evA := a.Build()

	b := event.NewBuilder()
	b.AddOutgoing(event.PIDJet, event.FourMomentum{10, -10, -0.01, 0})
	b.SetWeight(1)
	evB := b.Build()

	d := m.Distance(evA, evB)
	assert.Less(t, d, 1.0)
}
