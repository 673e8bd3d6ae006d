package roster

import (
	"crypto/rand"
	"fmt"
	mrand "math/rand/v2"
	"sync"

	"github.com/google/uuid"
)

// Generator produces the random parts of a new team.
type Generator interface {
	// NewID returns a unique team id.
	NewID() string
	// NewKey returns a short slug used to tag assignments.
	NewKey() string
	// NewColor returns a light pastel "#rrggbb" color.
	NewColor() string
}

const slugAlphabet = "0123456789abcdefghijklmnopqrstuvwxyz"

// RandomGenerator draws ids, keys and colors from a single ChaCha8 stream, so
// a fixed seed reproduces the same sequence.
type RandomGenerator struct {
	mu  sync.Mutex
	src *mrand.ChaCha8
	rnd *mrand.Rand
}

// NewRandomGenerator returns a generator seeded with seed.
func NewRandomGenerator(seed [32]byte) *RandomGenerator {
	src := mrand.NewChaCha8(seed)
	return &RandomGenerator{src: src, rnd: mrand.New(src)}
}

// NewSecureGenerator returns a generator seeded from crypto/rand.
func NewSecureGenerator() *RandomGenerator {
	var seed [32]byte
	if _, err := rand.Read(seed[:]); err != nil {
		panic(fmt.Sprintf("roster: failed to seed generator: %v", err))
	}
	return NewRandomGenerator(seed)
}

// NewID returns a version 4 UUID read from the generator's stream.
func (g *RandomGenerator) NewID() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	id, err := uuid.NewRandomFromReader(g.src)
	if err != nil {
		// ChaCha8.Read never fails.
		panic(fmt.Sprintf("roster: failed to generate id: %v", err))
	}
	return id.String()
}

// NewKey returns "t" followed by five base-36 characters.
func (g *RandomGenerator) NewKey() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	b := make([]byte, 6)
	b[0] = 't'
	for i := 1; i < len(b); i++ {
		b[i] = slugAlphabet[g.rnd.IntN(len(slugAlphabet))]
	}
	return string(b)
}

// NewColor returns a color whose channels each lie in [150, 250).
func (g *RandomGenerator) NewColor() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	r := 150 + g.rnd.IntN(100)
	gr := 150 + g.rnd.IntN(100)
	b := 150 + g.rnd.IntN(100)
	return fmt.Sprintf("#%02x%02x%02x", r, gr, b)
}
