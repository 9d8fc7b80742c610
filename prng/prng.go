// Package prng implements the X-PRNG generator: a 32-bit linear congruential
// generator whose increment is re-derived on every draw from a CRC-32 of the
// draw counter and the current seed.
//
// The output stream is meant to be identical across every port of the
// generator, so widths, rounding and the order of updates are all fixed. It is not
// suitable for cryptographic use, and a Generator must not be shared between
// goroutines without external locking.
package prng

import (
	"hash/crc32"
	"io"
	"math"
	"strconv"
	"time"
)

const (
	Multiplier uint64 = 1664525
	Modulus    uint64 = 1 << 32

	DefaultMin = 0
	DefaultMax = 255

	// Printable ASCII, used for readable byte draws.
	ReadableMin = 32
	ReadableMax = 126
)

var _ io.Reader = (*Generator)(nil)

type Generator struct {
	// Only a freshly seeded generator can hold a value >= Modulus.
	seed      uint64
	increment uint32
	counter   uint64

	savedSeed uint64
	saved     bool

	now func() time.Time
}

type Option func(*Generator)

// WithClock replaces the wall clock used when no seed is given.
func WithClock(now func() time.Time) Option {
	return func(g *Generator) {
		g.now = now
	}
}

// New returns a generator seeded from seed. See Reseed for accepted values.
func New(seed any, opts ...Option) (*Generator, error) {
	g := &Generator{now: time.Now}
	for _, o := range opts {
		o(g)
	}
	if err := g.Reseed(seed); err != nil {
		return nil, err
	}
	return g, nil
}

// Reseed resets the generator as if it had just been created with seed.
//
// A string is hashed with CRC-32, integers and floats use their truncated
// absolute value, and nil uses the current Unix time in seconds. On error the
// generator is left unchanged.
func (g *Generator) Reseed(seed any) error {
	now := g.now
	if now == nil {
		now = time.Now
	}
	s, err := deriveSeed(seed, now)
	if err != nil {
		return err
	}
	*g = Generator{seed: s, now: now}
	return nil
}

// SaveState remembers the current seed so RestoreState can rewind to it.
func (g *Generator) SaveState() {
	g.savedSeed = g.seed
	g.saved = true
}

// RestoreState puts back the seed taken by the last SaveState. The draw
// counter is not rewound, so the next draw uses a different increment than
// it did after the snapshot.
func (g *Generator) RestoreState() error {
	if !g.saved {
		return ErrInvalidState
	}
	g.seed = g.savedSeed
	return nil
}

// RandInt returns an integer in [min, max].
func (g *Generator) RandInt(min, max int) (int, error) {
	if max < min {
		return 0, &InvalidRangeError{Min: min, Max: max}
	}
	g.next()
	return scale(g.seed, min, max), nil
}

// Int returns a value in [DefaultMin, DefaultMax].
func (g *Generator) Int() int {
	g.next()
	return scale(g.seed, DefaultMin, DefaultMax)
}

// RandDecimal draws length values, each in [0, 255] or, if readable,
// in [32, 126].
func (g *Generator) RandDecimal(length int, readable bool) []int {
	if length <= 0 {
		return []int{}
	}
	min, max := byteRange(readable)
	out := make([]int, length)
	for i := range out {
		g.next()
		out[i] = scale(g.seed, min, max)
	}
	return out
}

// RandBytes is RandDecimal with every value turned into the character with
// that code point. Values above 127 take two bytes in the returned string.
func (g *Generator) RandBytes(length int, readable bool) string {
	vals := g.RandDecimal(length, readable)
	rs := make([]rune, len(vals))
	for i, v := range vals {
		rs[i] = rune(v)
	}
	return string(rs)
}

// Read fills p with one Int draw per byte. It never fails.
func (g *Generator) Read(p []byte) (int, error) {
	for i := range p {
		p[i] = byte(g.Int())
	}
	return len(p), nil
}

// next advances the state by one step. The increment is taken from the
// seed and counter as they were before this step.
func (g *Generator) next() {
	key := make([]byte, 0, 64)
	key = strconv.AppendUint(key, g.counter, 10)
	key = strconv.AppendUint(key, g.seed, 10)
	key = strconv.AppendUint(key, g.counter, 10)
	g.increment = crc32.ChecksumIEEE(key)

	g.seed = ((g.seed%Modulus)*Multiplier + uint64(g.increment)) % Modulus
	g.counter++
}

func scale(seed uint64, min, max int) int {
	frac := float64(seed) / float64(Modulus)
	// uint64 subtraction is exact for any min <= max.
	width := uint64(max) - uint64(min)
	span := float64(width) + 1
	off := uint64(math.Floor(frac * span))
	// Spans wider than 2^53 are rounded when converted; keep the result in range.
	if off > width {
		off = width
	}
	return int(uint64(min) + off)
}

func byteRange(readable bool) (int, int) {
	if readable {
		return ReadableMin, ReadableMax
	}
	return DefaultMin, DefaultMax
}

// Checksum is the CRC-32 (zlib polynomial) of s.
func Checksum(s string) uint32 {
	return crc32.ChecksumIEEE([]byte(s))
}
