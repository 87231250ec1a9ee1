// Package oracle scores a pair of rosters with a calibrated feed-forward
// network. A Model is immutable once built and safe for concurrent use.
package oracle

import (
	"fmt"
	"math"

	"swarm/draft"
)

// Slots is the roster width the network was trained on.
const Slots = 4

// Calibration maps a raw logit to sigmoid(A*logit + B).
type Calibration struct {
	A float64
	B float64
}

func (c Calibration) Apply(logit float64) float64 {
	return 1 / (1 + math.Exp(-(c.A*logit + c.B)))
}

// Evaluation is a score together with the ids that fell back to DefaultIndex.
type Evaluation struct {
	Probability float64
	Unmapped    []draft.MonsterID
}

// Degraded reports whether any real pick was unknown to the vocabulary.
func (e Evaluation) Degraded() bool {
	return len(e.Unmapped) > 0
}

type Option func(m *Model)

// WithSlots overrides the roster width rosters are padded or truncated to.
func WithSlots(slots int) Option {
	return func(m *Model) {
		if slots > 0 {
			m.slots = slots
		}
	}
}

// WithPadding sets the id used for empty slots.
func WithPadding(pad draft.MonsterID) Option {
	return func(m *Model) {
		m.pad = pad
	}
}

type Model struct {
	vocab       Vocabulary
	network     *Network
	calibration Calibration
	slots       int
	pad         draft.MonsterID
}

func NewModel(vocab Vocabulary, network *Network, calibration Calibration, options ...Option) (*Model, error) {
	if network == nil {
		return nil, fmt.Errorf("%w: nil network", ErrInvalidModel)
	}
	if got, want := network.InputDim(), 2*vocab.Dim(); got != want {
		return nil, fmt.Errorf("%w: network takes %d inputs, vocabulary needs %d", ErrInvalidModel, got, want)
	}
	m := &Model{
		vocab:       vocab,
		network:     network,
		calibration: calibration,
		slots:       Slots,
		pad:         draft.NoPick,
	}
	for _, option := range options {
		option(m)
	}
	return m, nil
}

// Score implements the oracle contract used by the searcher.
func (m *Model) Score(a, b draft.Roster) float64 {
	return m.Evaluate(a, b).Probability
}

// Evaluate returns the calibrated win probability of roster a against b.
func (m *Model) Evaluate(a, b draft.Roster) Evaluation {
	x := make([]float64, 2*m.vocab.Dim())
	var unmapped []draft.MonsterID
	for player, roster := range []draft.Roster{a, b} {
		offset := player * m.vocab.Dim()
		for _, id := range roster.Padded(m.slots, m.pad) {
			i, ok := m.vocab.Index(id)
			if !ok && id != m.pad {
				unmapped = append(unmapped, id)
			}
			x[offset+i] = 1
		}
	}
	return Evaluation{
		Probability: m.calibration.Apply(m.network.Forward(x)),
		Unmapped:    unmapped,
	}
}

func (m *Model) Slots() int {
	return m.slots
}

func (m *Model) Padding() draft.MonsterID {
	return m.pad
}
