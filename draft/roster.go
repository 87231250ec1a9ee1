package draft

// Roster is one player's ordered picks. Slot order matters to the oracle.
type Roster []MonsterID

// Padded truncates or right-pads the roster to exactly slots entries.
func (r Roster) Padded(slots int, pad MonsterID) Roster {
	padded := make(Roster, slots)
	for i := range padded {
		if i < len(r) {
			padded[i] = r[i]
		} else {
			padded[i] = pad
		}
	}
	return padded
}

// With returns a copy of the roster with ids appended.
func (r Roster) With(ids ...MonsterID) Roster {
	out := make(Roster, 0, len(r)+len(ids))
	out = append(out, r...)
	return append(out, ids...)
}

// Without returns a copy of the roster with slot i removed.
func (r Roster) Without(i int) Roster {
	out := make(Roster, 0, len(r))
	out = append(out, r[:i]...)
	return append(out, r[i+1:]...)
}

// Removals lists every roster obtained by dropping exactly one slot. An empty
// roster has nothing to drop and yields itself.
func (r Roster) Removals() []Roster {
	if len(r) == 0 {
		return []Roster{r}
	}
	out := make([]Roster, len(r))
	for i := range r {
		out[i] = r.Without(i)
	}
	return out
}

func (r Roster) Contains(id MonsterID) bool {
	for _, v := range r {
		if v == id {
			return true
		}
	}
	return false
}
