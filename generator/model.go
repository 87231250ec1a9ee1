package generator

import "strings"

// LanguageModel is the sequence model collaborator. Forward returns the
// next-token logits for the whole sequence so far; implementations must be
// safe for concurrent read-only use if generators run concurrently.
type LanguageModel interface {
	Encode(text string) []int
	Decode(tokens []int) string
	Forward(tokens []int) []float64
}

// TokenClassifier lets a model flag the marker token structurally. Models that
// do not implement it are classified by decoding the token.
type TokenClassifier interface {
	IsMarker(token int) bool
}

func markerClassifier(model LanguageModel, marker string) func(int) bool {
	if c, ok := model.(TokenClassifier); ok {
		return c.IsMarker
	}
	return func(token int) bool {
		return strings.Contains(model.Decode([]int{token}), marker)
	}
}
