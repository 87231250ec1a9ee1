package generator

import (
	"math"

	"golang.org/x/exp/rand"
)

// argmax returns the first index holding the largest logit.
func argmax(logits []float64) int {
	best := 0
	for i, v := range logits {
		if v > logits[best] {
			best = i
		}
	}
	return best
}

// argmaxOf is argmax restricted to allowed tokens; everything else counts as
// -Inf.
func argmaxOf(logits []float64, allowed []int) int {
	best := allowed[0]
	for _, tok := range allowed[1:] {
		if logits[tok] > logits[best] {
			best = tok
		}
	}
	return best
}

// sampleOf draws from softmax(logits/temperature) restricted to allowed tokens.
func sampleOf(logits []float64, allowed []int, temperature float64, rng *rand.Rand) int {
	if temperature <= 0 {
		return argmaxOf(logits, allowed)
	}
	top := math.Inf(-1)
	for _, tok := range allowed {
		top = math.Max(top, logits[tok]/temperature)
	}
	probs := make([]float64, len(allowed))
	sum := 0.0
	for i, tok := range allowed {
		probs[i] = math.Exp(logits[tok]/temperature - top)
		sum += probs[i]
	}

	sampled := rng.Float64() * sum
	cumulative := 0.0
	for i, p := range probs {
		cumulative += p
		if sampled < cumulative {
			return allowed[i]
		}
	}
	return allowed[len(allowed)-1] // Fallback in case of rounding errors
}
