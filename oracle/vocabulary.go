package oracle

import (
	"fmt"

	"swarm/draft"
)

// DefaultIndex is where ids missing from the vocabulary land.
const DefaultIndex = 0

// Vocabulary maps monster ids to one-hot positions.
type Vocabulary struct {
	index map[draft.MonsterID]int
	dim   int
}

func NewVocabulary(index map[draft.MonsterID]int, dim int) (Vocabulary, error) {
	if dim <= DefaultIndex {
		return Vocabulary{}, fmt.Errorf("%w: vocabulary dimension %d", ErrInvalidModel, dim)
	}
	copied := make(map[draft.MonsterID]int, len(index))
	for id, i := range index {
		if i < 0 || i >= dim {
			return Vocabulary{}, fmt.Errorf("%w: index %d for monster %d outside [0,%d)", ErrInvalidModel, i, id, dim)
		}
		copied[id] = i
	}
	return Vocabulary{index: copied, dim: dim}, nil
}

// Index resolves id. Unknown ids resolve to DefaultIndex with ok == false; the
// score is still computed but carries no information about that monster.
func (v Vocabulary) Index(id draft.MonsterID) (i int, ok bool) {
	i, ok = v.index[id]
	if !ok {
		return DefaultIndex, false
	}
	return i, true
}

func (v Vocabulary) Dim() int {
	return v.dim
}

func (v Vocabulary) Len() int {
	return len(v.index)
}
