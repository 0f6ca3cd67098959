// Package rng implements the pseudo-random number generator the retail game
// executable uses for procedural content.
package rng

// Arena is the game's 16-bit linear congruential generator. World generation
// replays seeded sequences of it, so Next must match the retail executable
// bit for bit.
type Arena struct {
	state uint32
}

// DefaultSeed is the seed the retail game falls back to when a caller does
// not provide one.
const DefaultSeed uint32 = 12345

// New returns a generator seeded with the given value.
func New(seed uint32) *Arena {
	return &Arena{state: seed}
}

// Next advances the generator and returns the next 16-bit value.
func (a *Arena) Next() uint16 {
	a.state = a.state*2531011 + 13849
	return uint16(a.state >> 16)
}

// Seed returns the current internal state, not the value the generator was
// created with. Derived seeds (the cloud layer seed, for example) are
// computed from the evolved state.
func (a *Arena) Seed() uint32 {
	return a.state
}

// Reseed resets the internal state so the sequence restarts from seed.
func (a *Arena) Reseed(seed uint32) {
	a.state = seed
}
