package session

import (
	crand "crypto/rand"
	"encoding/binary"
	"fmt"
	"math/rand"
	"sync"
)

// Rand is the draw source for the selection spin. *math/rand.Rand
// satisfies it; tests inject a fixed sequence.
type Rand interface {
	Intn(n int) int
}

// NewSeed generates a high-entropy seed using crypto/rand, suitable for
// initializing the default draw source.
func NewSeed() (int64, error) {
	var b [8]byte
	if _, err := crand.Read(b[:]); err != nil {
		return 0, fmt.Errorf("session: read random seed: %w", err)
	}
	return int64(binary.LittleEndian.Uint64(b[:])), nil
}

// lockedRand serializes draws; math/rand.Rand is not goroutine safe and
// spins for different users overlap.
type lockedRand struct {
	mu sync.Mutex
	r  Rand
}

func (l *lockedRand) Intn(n int) int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.r.Intn(n)
}

// defaultRand builds the production draw source.
func defaultRand() (Rand, error) {
	seed, err := NewSeed()
	if err != nil {
		return nil, err
	}
	return &lockedRand{r: rand.New(rand.NewSource(seed))}, nil
}
