package draft

import "errors"

var (
	ErrInvalidMonsterID = errors.New("invalid monster id")
	ErrInvalidPickCount = errors.New("required pick count must be 1 or 2")
	ErrPoolTooSmall     = errors.New("candidate pool smaller than required pick count")
	ErrPickedInPool     = errors.New("picked monster still in candidate pool")
	ErrRosterSize       = errors.New("unexpected roster size")
)
