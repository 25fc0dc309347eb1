// Package dice provides the d100 random source used for skill checks.
package dice

import (
	crand "crypto/rand"
	"encoding/binary"
	"fmt"
	"math/rand"
	"sync"
)

// Source is the randomness provider. Implementations must be safe for
// concurrent use.
type Source interface {
	// Intn returns a value in [0, n).
	Intn(n int) int
}

// Roller produces percentile rolls.
type Roller interface {
	D100() int
}

// NewSeed generates a seed using crypto/rand.
func NewSeed() (int64, error) {
	var b [8]byte
	if _, err := crand.Read(b[:]); err != nil {
		return 0, fmt.Errorf("read random seed: %w", err)
	}
	return int64(binary.LittleEndian.Uint64(b[:])), nil
}

type lockedSource struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// NewSource returns a seeded Source safe for concurrent use. The same
// seed yields the same sequence.
func NewSource(seed int64) Source {
	return &lockedSource{rng: rand.New(rand.NewSource(seed))}
}

func (s *lockedSource) Intn(n int) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rng.Intn(n)
}

// D100 rolls a fair hundred-sided die over a Source.
type D100 struct {
	src Source
}

func NewD100(src Source) *D100 {
	return &D100{src: src}
}

func (d *D100) D100() int {
	return d.src.Intn(100) + 1
}
