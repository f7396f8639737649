package blank

import (
	crand "crypto/rand"
	"encoding/binary"
	"math"
	"math/rand/v2"

	"github.com/aalvaropc/blanks/internal/domain"
)

// RandSource is the randomness Generate draws from. *rand.Rand satisfies it.
type RandSource interface {
	// IntN returns a uniform value in [0, n). n is always > 0.
	IntN(n int) int
}

type options struct {
	rng RandSource
}

// Option configures Generate.
type Option func(*options)

// WithRand overrides the random source (useful for tests).
func WithRand(r RandSource) Option {
	return func(o *options) {
		if r != nil {
			o.rng = r
		}
	}
}

// NewRand returns a PCG-backed source seeded from crypto/rand.
func NewRand() *rand.Rand {
	var b [16]byte
	if _, err := crand.Read(b[:]); err != nil {
		return rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	return rand.New(rand.NewPCG(binary.LittleEndian.Uint64(b[:8]), binary.LittleEndian.Uint64(b[8:])))
}

// Generate redacts floor(candidates*ratio) distinct candidate characters of
// content, chosen uniformly at random, replacing each with domain.Sentinel.
// It returns the redacted text and the original character at every blank.
//
// Ratio is clamped to [0,1]. Content without candidates is returned unchanged
// with an empty map.
func Generate(content string, ratio float64, opts ...Option) (string, domain.BlankMap) {
	o := options{}
	for _, opt := range opts {
		opt(&o)
	}

	runes := []rune(content)
	blanks := domain.BlankMap{}

	candidates := Candidates(runes, ProtectedPositions(runes))
	if len(candidates) == 0 {
		return content, blanks
	}

	k := int(math.Floor(float64(len(candidates)) * domain.ClampRatio(ratio)))
	if k > len(candidates) {
		k = len(candidates)
	}
	if k == 0 {
		return content, blanks
	}

	if o.rng == nil {
		o.rng = NewRand()
	}

	for _, pos := range sample(candidates, k, o.rng) {
		blanks[pos] = runes[pos]
		runes[pos] = domain.Sentinel
	}
	return string(runes), blanks
}

// sample picks k distinct elements of pool without replacement using a
// partial Fisher-Yates shuffle over a copy of pool.
func sample(pool []int, k int, rng RandSource) []int {
	buf := make([]int, len(pool))
	copy(buf, pool)

	for i := 0; i < k; i++ {
		j := i + rng.IntN(len(buf)-i)
		buf[i], buf[j] = buf[j], buf[i]
	}
	return buf[:k]
}
