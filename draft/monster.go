package draft

import (
	"fmt"
	"strconv"
	"strings"
)

// Marker prefixes a monster id in its textual token form ("M12345").
const Marker = "M"

// MonsterID names a draftable unit. Ids are positive; the zero value is NoPick.
type MonsterID int

// NoPick pads short rosters and is never a legal candidate.
const NoPick MonsterID = 0

// ParseMonsterID accepts both the bare decimal form and the marker form.
func ParseMonsterID(s string) (MonsterID, error) {
	s = strings.TrimPrefix(strings.TrimSpace(s), Marker)
	n, err := strconv.Atoi(s)
	if err != nil || n <= 0 {
		return NoPick, fmt.Errorf("%w: %q", ErrInvalidMonsterID, s)
	}
	return MonsterID(n), nil
}

func (id MonsterID) String() string {
	return strconv.Itoa(int(id))
}

// Token returns the marker form used in generation prompts.
func (id MonsterID) Token() string {
	return Marker + id.String()
}

func (id MonsterID) IsPick() bool {
	return id > NoPick
}
