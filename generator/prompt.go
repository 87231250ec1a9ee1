package generator

import (
	"errors"
	"strings"

	"swarm/draft"
)

const (
	promptPrefix    = "Current draft state: Player A picks: "
	promptSeparator = "; Player B picks: "
	// PromptSuffix closes every prompt; generated picks follow it.
	PromptSuffix = "\nPredict next picks for Player A:"
)

var ErrNoPrompt = errors.New("prompt suffix missing from decoded text")

// BuildPrompt renders the draft as the model saw it in training. Own picks
// each carry a trailing space; opponent picks are space-joined.
func BuildPrompt(own, opponent draft.Roster) string {
	var b strings.Builder
	b.WriteString(promptPrefix)
	for _, id := range own {
		b.WriteString(id.Token())
		b.WriteByte(' ')
	}
	b.WriteString(promptSeparator)
	tokens := make([]string, len(opponent))
	for i, id := range opponent {
		tokens[i] = id.Token()
	}
	b.WriteString(strings.Join(tokens, " "))
	b.WriteString(PromptSuffix)
	return b.String()
}

// Continuation returns what the model wrote after the prompt.
func Continuation(text string) (string, error) {
	_, after, found := strings.Cut(text, PromptSuffix)
	if !found {
		return "", ErrNoPrompt
	}
	return strings.TrimSpace(after), nil
}

// Extract parses every whitespace separated id in a continuation, dropping
// anything that is not a monster id.
func Extract(continuation string) []draft.MonsterID {
	var ids []draft.MonsterID
	for _, field := range strings.Fields(continuation) {
		if id, err := draft.ParseMonsterID(field); err == nil {
			ids = append(ids, id)
		}
	}
	return ids
}
