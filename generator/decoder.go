package generator

import (
	"slices"

	"golang.org/x/exp/rand"

	"swarm/metrics"
)

type state int

const (
	free state = iota
	forced
	terminal
)

func (s state) String() string {
	switch s {
	case free:
		return "free"
	case forced:
		return "forced"
	default:
		return "terminal"
	}
}

// decoder is the per-call state of constrained decoding.
type decoder struct {
	*Generator
	rng        *rand.Rand
	metrics    metrics.Collector
	tokens     []int
	candidates []candidate // Not yet emitted

	state  state
	budget int   // Forced tokens left in the current pick
	span   []int // Forced tokens emitted in the current pick
}

func (d *decoder) run() []int {
	for step := 0; step < d.cfg.MaxSteps && d.state != terminal; step++ {
		d.metrics.AddStep()
		logits := d.model.Forward(d.tokens)
		switch d.state {
		case free:
			d.free(logits)
		case forced:
			d.force(logits)
		}
	}
	return d.tokens
}

func (d *decoder) free(logits []float64) {
	next := argmax(logits)
	if d.isMarker(next) {
		d.tokens = append(d.tokens, next)
		if len(d.candidates) == 0 {
			d.logger.Debug().Msg("marker emitted with no candidate left")
			d.state = terminal
			return
		}
		d.state = forced
		d.budget = d.cfg.PickTokens
		d.span = d.span[:0]
		d.metrics.AddForcedSpan()
		return
	}
	if next == d.cfg.EndToken {
		d.state = terminal
		return
	}
	d.tokens = append(d.tokens, next)
}

// force emits one token from the masked distribution. The first token of a
// pick is sampled, later ones take the masked argmax.
func (d *decoder) force(logits []float64) {
	allowed := d.allowedAt(d.cfg.PickTokens - d.budget)

	var next int
	if d.budget == d.cfg.PickTokens && d.cfg.Sampling {
		next = sampleOf(logits, allowed, d.cfg.Temperature, d.rng)
	} else {
		next = argmaxOf(logits, allowed)
	}
	d.tokens = append(d.tokens, next)
	d.span = append(d.span, next)
	d.budget--

	if d.budget == 0 {
		d.consume(d.span)
		d.state = free
	}
}

// allowedAt lists, in pool order and without repeats, the token each remaining
// candidate has at offset.
func (d *decoder) allowedAt(offset int) []int {
	seen := make(map[int]bool, len(d.candidates))
	var allowed []int
	for _, c := range d.candidates {
		tok := c.tokens[offset]
		if !seen[tok] {
			seen[tok] = true
			allowed = append(allowed, tok)
		}
	}
	return allowed
}

// consume drops every candidate spelled exactly by span.
func (d *decoder) consume(span []int) {
	d.candidates = slices.DeleteFunc(d.candidates, func(c candidate) bool {
		return slices.Equal(c.tokens, span)
	})
}
