package draft

import "fmt"

const (
	PicksPerPlayer = 5
	BansPerPlayer  = 1
	// MonstersInCombat is what remains of a roster after the opponent's ban.
	MonstersInCombat = PicksPerPlayer - BansPerPlayer
)

type Side int

const (
	SideA Side = iota
	SideB
)

func (s Side) Other() Side {
	return 1 - s
}

func (s Side) String() string {
	if s == SideA {
		return "A"
	}
	return "B"
}

// Turn is one step of the pick order.
type Turn struct {
	Side  Side
	Picks int
}

// pickOrder is the RTA order when A picks first: A1 B2 A2 B2 A2 B1.
var pickOrder = []Turn{
	{Side: SideA, Picks: 1},
	{Side: SideB, Picks: 2},
	{Side: SideA, Picks: 2},
	{Side: SideB, Picks: 2},
	{Side: SideA, Picks: 2},
	{Side: SideB, Picks: 1},
}

// Turns returns the pick order for a draft started by first.
func Turns(first Side) []Turn {
	turns := make([]Turn, len(pickOrder))
	for i, t := range pickOrder {
		if first == SideB {
			t.Side = t.Side.Other()
		}
		turns[i] = t
	}
	return turns
}

// SinglePickPhase reports the two moments where the acting player picks only
// one monster: the opening pick and the last pick of a 4-vs-5 draft.
func SinglePickPhase(own, opponent Roster) bool {
	return (len(own) == 0 && len(opponent) == 0) ||
		(len(own) == MonstersInCombat && len(opponent) == PicksPerPlayer)
}

// RequiredPicks derives the pick count from roster sizes.
func RequiredPicks(own, opponent Roster) int {
	if SinglePickPhase(own, opponent) {
		return 1
	}
	return 2
}

// ValidatePickCount fails fast on counts the recommenders cannot honour.
func ValidatePickCount(required int, pool Pool) error {
	if required != 1 && required != 2 {
		return fmt.Errorf("%w: got %d", ErrInvalidPickCount, required)
	}
	if pool.Len() < required {
		return fmt.Errorf("%w: need %d, have %d", ErrPoolTooSmall, required, pool.Len())
	}
	return nil
}
