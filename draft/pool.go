package draft

// Pool is the ordered set of ids still legal to pick. It only shrinks and is
// owned by a single request; use Clone before handing it to another call.
type Pool struct {
	ids []MonsterID
}

// NewPool keeps the first occurrence of each id and drops NoPick.
func NewPool(ids ...MonsterID) Pool {
	seen := make(map[MonsterID]bool, len(ids))
	p := Pool{ids: make([]MonsterID, 0, len(ids))}
	for _, id := range ids {
		if !id.IsPick() || seen[id] {
			continue
		}
		seen[id] = true
		p.ids = append(p.ids, id)
	}
	return p
}

func (p Pool) Len() int {
	return len(p.ids)
}

// IDs returns the candidates in pool order.
func (p Pool) IDs() []MonsterID {
	out := make([]MonsterID, len(p.ids))
	copy(out, p.ids)
	return out
}

func (p Pool) Contains(id MonsterID) bool {
	return p.index(id) >= 0
}

// Remove drops id from the pool and reports whether it was present.
func (p *Pool) Remove(id MonsterID) bool {
	i := p.index(id)
	if i < 0 {
		return false
	}
	p.ids = append(p.ids[:i:i], p.ids[i+1:]...)
	return true
}

func (p Pool) Clone() Pool {
	return Pool{ids: p.IDs()}
}

func (p Pool) index(id MonsterID) int {
	for i, v := range p.ids {
		if v == id {
			return i
		}
	}
	return -1
}
