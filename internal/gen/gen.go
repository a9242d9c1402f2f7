// Package gen produces the random bar heights a session starts from.
package gen

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/san-kum/sortviz/internal/anim"
)

type Generator struct {
	rng *rand.Rand
}

func New(seed int64) *Generator {
	return &Generator{rng: rand.New(rand.NewSource(seed))}
}

// Generate returns length uniformly distributed integers in [min, max].
func (g *Generator) Generate(length, min, max int) (anim.Values, error) {
	if length < 0 {
		return nil, fmt.Errorf("%w: length must be non-negative, got %d", anim.ErrInvalidInput, length)
	}
	if min > max {
		return nil, fmt.Errorf("%w: min %d greater than max %d", anim.ErrInvalidInput, min, max)
	}

	values := make(anim.Values, length)
	span := uint64(uint(max)-uint(min)) + 1
	for i := range values {
		values[i] = float64(min + int(g.offset(span)))
	}
	return values, nil
}

// offset draws uniformly from [0, span). A span of 0 means the whole
// 64-bit range.
func (g *Generator) offset(span uint64) uint64 {
	switch {
	case span == 0:
		return g.rng.Uint64()
	case span <= math.MaxInt64:
		return uint64(g.rng.Int63n(int64(span)))
	}
	limit := math.MaxUint64 - math.MaxUint64%span
	for {
		if x := g.rng.Uint64(); x < limit {
			return x % span
		}
	}
}
