package prng

import "hash/fnv"

// Hash returns the 32-bit FNV-1a digest of text. It is the single
// source of determinism for prompt-derived styling: equal strings map
// to equal seeds on every platform. Callers normalize to lowercase
// before hashing; the function itself is case sensitive.
func Hash(text string) uint32 {
	h := fnv.New32a()
	h.Write([]byte(text))
	return h.Sum32()
}

// Source is a mulberry32 generator. Each instance owns a single 32-bit
// state word mutated only by its own draws, so the Nth draw after
// New(seed) is identical across runs and platforms.
type Source struct {
	state uint32
}

// New returns a Source positioned at the start of the stream for seed.
func New(seed uint32) *Source {
	return &Source{state: seed}
}

// Uint32 advances the state and returns the next raw draw. All
// arithmetic wraps at 32 bits, so no seed or call count can overflow.
func (s *Source) Uint32() uint32 {
	s.state += 0x6D2B79F5
	z := s.state
	z = (z ^ (z >> 15)) * (z | 1)
	z ^= z + (z^(z>>7))*(z|61)
	return z ^ (z >> 14)
}

// Float64 returns the next draw scaled to [0, 1).
func (s *Source) Float64() float64 {
	return float64(s.Uint32()) / (1 << 32)
}
