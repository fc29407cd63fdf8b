package game

import (
	"fmt"
	"hash/fnv"
	"math/rand/v2"
)

// RandomSource draws uniform integers in [low, high).
type RandomSource interface {
	IntRange(low, high int) (int, error)
}

// SeededSource is a deterministic RandomSource; equal seeds yield equal sequences.
type SeededSource struct {
	rng *rand.Rand
}

func NewSeededSource(seed int64) *SeededSource {
	return &SeededSource{rng: seededRNG(seed)}
}

func (s *SeededSource) IntRange(low, high int) (int, error) {
	if low >= high {
		return 0, fmt.Errorf("%w: [%d, %d)", ErrInvalidRange, low, high)
	}
	return low + s.rng.IntN(high-low), nil
}

func seededRNG(seed int64) *rand.Rand {
	// Non-cryptographic PRNG is intentional for deterministic simulation behavior.
	// #nosec G404
	return rand.New(rand.NewPCG(seedWord(seed, "a"), seedWord(seed, "b")))
}

func seedWord(seed int64, salt string) uint64 {
	h := fnv.New64a()
	_, _ = h.Write([]byte(fmt.Sprintf("%d:%s", seed, salt)))
	return h.Sum64()
}
