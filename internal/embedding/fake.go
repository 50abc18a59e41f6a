package embedding

import (
	"context"
	"errors"
	"hash/fnv"
	"math"
)

// Deterministic is an offline embedder that derives a stable unit vector
// from a hash of the input text. It carries no semantic meaning beyond
// "identical texts embed identically" and exists for tests and for
// running the router without a provider key.
type Deterministic struct {
	Dim int
}

// Embed returns a normalized pseudo-random vector seeded by text.
func (d *Deterministic) Embed(_ context.Context, text string) ([]float32, error) {
	dim := d.Dim
	if dim == 0 {
		dim = 64
	}

	h := fnv.New64a()
	_, _ = h.Write([]byte(text))
	state := h.Sum64()

	vec := make([]float32, dim)
	var norm float64
	for i := range vec {
		// xorshift64 over the seeded state
		state ^= state << 13
		state ^= state >> 7
		state ^= state << 17
		v := float64(int64(state)) / float64(math.MaxInt64)
		vec[i] = float32(v)
		norm += v * v
	}

	norm = math.Sqrt(norm)
	if norm > 0 {
		for i := range vec {
			vec[i] = float32(float64(vec[i]) / norm)
		}
	}
	return vec, nil
}

// Static maps exact texts to fixed vectors, failing on unknown input.
// Useful for forcing similarity values in router tests.
type Static struct {
	Vectors map[string][]float32
}

func (s *Static) Embed(_ context.Context, text string) ([]float32, error) {
	if vec, ok := s.Vectors[text]; ok {
		return vec, nil
	}
	return nil, errors.New("static embedder: unknown text")
}

// Failing always errors, simulating a provider outage.
type Failing struct{}

func (Failing) Embed(context.Context, string) ([]float32, error) {
	return nil, errors.New("embedding provider unavailable")
}
