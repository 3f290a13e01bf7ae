package id

import (
	"crypto/rand"
	"encoding/binary"
	"sync"
	"time"
)

const (
	discriminatorSize = 5
	counterBits       = 24
	counterSpace      = 1 << counterBits
	counterMask       = counterSpace - 1
)

// Generator mints unique IDs. It is safe for concurrent use.
//
// Each generator owns one discriminator and one counter; two generators in
// the same process must not share a discriminator.
type Generator struct {
	mu sync.Mutex

	now           func() time.Time
	discriminator [discriminatorSize]byte

	counter uint32
	window  uint32 // second the current issue count belongs to
	issued  uint32 // IDs minted within window
}

// GeneratorOption configures a Generator.
type GeneratorOption func(*Generator)

// WithClock overrides the time source. Used in tests.
func WithClock(now func() time.Time) GeneratorOption {
	return func(g *Generator) {
		if now != nil {
			g.now = now
		}
	}
}

// WithDiscriminator pins the machine/process discriminator.
// Only the first 5 bytes of d are used.
func WithDiscriminator(d []byte) GeneratorOption {
	return func(g *Generator) {
		copy(g.discriminator[:], d)
	}
}

// WithCounterStart sets the initial counter value (masked to 24 bits).
func WithCounterStart(c uint32) GeneratorOption {
	return func(g *Generator) {
		g.counter = c & counterMask
	}
}

// NewGenerator creates a generator with a random discriminator and a random
// counter start.
func NewGenerator(optFns ...GeneratorOption) *Generator {
	g := &Generator{now: time.Now}

	var seed [discriminatorSize + 4]byte
	if _, err := rand.Read(seed[:]); err != nil {
		// crypto/rand does not fail on supported platforms.
		panic(err)
	}
	copy(g.discriminator[:], seed[:discriminatorSize])
	g.counter = binary.BigEndian.Uint32(seed[discriminatorSize:]) & counterMask

	for _, fn := range optFns {
		if fn != nil {
			fn(g)
		}
	}
	return g
}

// Next mints a new ID.
//
// It returns ErrCounterExhausted if this generator already minted 2^24 IDs
// in the current second. A clock that moves backwards stays in the newest
// window seen so far, so an exhausted window is never reopened.
func (g *Generator) Next() (ID, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	sec := uint32(g.now().Unix())
	if sec > g.window {
		g.window = sec
		g.issued = 0
	}
	if g.issued >= counterSpace {
		return Nil, ErrCounterExhausted
	}
	g.issued++

	c := g.counter
	g.counter = (g.counter + 1) & counterMask

	var id ID
	binary.BigEndian.PutUint32(id[0:4], g.window)
	copy(id[4:9], g.discriminator[:])
	id[9] = byte(c >> 16)
	id[10] = byte(c >> 8)
	id[11] = byte(c)
	return id, nil
}

// MustNext is like Next but panics on ErrCounterExhausted.
func (g *Generator) MustNext() ID {
	id, err := g.Next()
	if err != nil {
		panic(err)
	}
	return id
}

var defaultGenerator = NewGenerator()

// Default returns the process-wide generator used by New and Generate.
func Default() *Generator {
	return defaultGenerator
}

// New mints an ID from the process-wide generator.
// It panics if the counter is exhausted, since continuing would risk
// duplicate IDs.
func New() ID {
	return defaultGenerator.MustNext()
}

// Generate mints an ID from the process-wide generator.
func Generate() (ID, error) {
	return defaultGenerator.Next()
}
