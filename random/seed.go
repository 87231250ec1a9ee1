// Package random hands out request-local generators. Nothing in the module
// shares a *rand.Rand between requests.
package random

import (
	crand "crypto/rand"
	"encoding/binary"
	"sync"

	"golang.org/x/exp/rand"
)

// SeedFunc produces the seed for a new request-local generator.
type SeedFunc func() uint64

// NewSeed reads a seed from crypto/rand, falling back to a time-independent
// constant only if the system source is unavailable.
func NewSeed() uint64 {
	var b [8]byte
	if _, err := crand.Read(b[:]); err != nil {
		return 1
	}
	return binary.LittleEndian.Uint64(b[:])
}

// Fixed returns a SeedFunc that always yields seed; a zero seed means NewSeed.
func Fixed(seed uint64) SeedFunc {
	if seed == 0 {
		return NewSeed
	}
	return func() uint64 { return seed }
}

// Sequence returns a SeedFunc yielding start, start+1, ... It is safe for
// concurrent use.
func Sequence(start uint64) SeedFunc {
	var mu sync.Mutex
	next := start
	return func() uint64 {
		mu.Lock()
		defer mu.Unlock()
		seed := next
		next++
		return seed
	}
}

// New builds a generator from the next seed of fn.
func New(fn SeedFunc) *rand.Rand {
	if fn == nil {
		fn = NewSeed
	}
	return rand.New(rand.NewSource(fn()))
}
