package draft

import "fmt"

type Phase string

const (
	PickingPhase   Phase = "picking"
	BanningPhase   Phase = "banning"
	CompletedPhase Phase = "completed"
)

// State is an immutable snapshot of a draft from the acting player's point of
// view. Pool holds the acting player's legal candidates.
type State struct {
	Own          Roster
	Opponent     Roster
	OwnBans      []MonsterID
	OpponentBans []MonsterID
	Phase        Phase
	Pool         Pool
	// Counters are monsters the opponent could still answer with.
	Counters []MonsterID
}

// NewState copies the caller's rosters and rejects a pool that still offers an
// already picked monster.
func NewState(own, opponent Roster, pool Pool, phase Phase) (State, error) {
	for _, id := range own.With(opponent...) {
		if pool.Contains(id) {
			return State{}, fmt.Errorf("%w: %d", ErrPickedInPool, id)
		}
	}
	return State{
		Own:      own.With(),
		Opponent: opponent.With(),
		Phase:    phase,
		Pool:     pool.Clone(),
	}, nil
}

// WithBans returns a copy of the state carrying both players' bans.
func (s State) WithBans(own, opponent []MonsterID) State {
	s.OwnBans = append([]MonsterID(nil), own...)
	s.OpponentBans = append([]MonsterID(nil), opponent...)
	return s
}

// WithCounters returns a copy of the state carrying the opponent's counters.
func (s State) WithCounters(counters []MonsterID) State {
	s.Counters = append([]MonsterID(nil), counters...)
	return s
}
