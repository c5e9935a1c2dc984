package emu

import "math/rand"

// RandomSource supplies uniformly distributed bytes for RND.
type RandomSource interface {
	Byte() uint8
}

// MathRandSource draws bytes from a math/rand generator.
type MathRandSource struct {
	rng *rand.Rand
}

// NewRandomSource creates a MathRandSource seeded with seed.
func NewRandomSource(seed int64) *MathRandSource {
	return &MathRandSource{rng: rand.New(rand.NewSource(seed))}
}

// Byte returns a value uniform over [0, 256).
func (s *MathRandSource) Byte() uint8 {
	return uint8(s.rng.Intn(256))
}

// SequenceSource replays a fixed byte sequence, cycling when exhausted.
// An empty sequence always yields zero.
type SequenceSource struct {
	seq []uint8
	pos int
}

// NewSequenceSource creates a SequenceSource over seq.
func NewSequenceSource(seq ...uint8) *SequenceSource {
	return &SequenceSource{seq: seq}
}

// Byte returns the next byte of the sequence.
func (s *SequenceSource) Byte() uint8 {
	if len(s.seq) == 0 {
		return 0
	}
	b := s.seq[s.pos%len(s.seq)]
	s.pos++
	return b
}
