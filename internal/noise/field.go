// Package noise provides a smooth, seeded 1D noise sampler used wherever a
// sketch needs organic motion instead of per-frame jitter.
package noise

import (
	"github.com/aquilax/go-perlin"
)

const (
	alpha   = 2.0
	beta    = 2.0
	octaves = 3
)

// Field samples Perlin noise remapped to [0,1].
type Field struct {
	p    *perlin.Perlin
	seed int64
}

// New returns a Field for seed. Two fields with the same seed sample
// identical values.
func New(seed int64) *Field {
	return &Field{
		p:    perlin.NewPerlin(alpha, beta, octaves, seed),
		seed: seed,
	}
}

// Seed returns the seed the field was created with.
func (f *Field) Seed() int64 { return f.seed }

// Sample returns the noise value at x in [0,1].
func (f *Field) Sample(x float64) float64 {
	v := (f.p.Noise1D(x) + 1) / 2
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// Map samples x and maps the result linearly onto [lo, hi].
func (f *Field) Map(x, lo, hi float64) float64 {
	return lo + f.Sample(x)*(hi-lo)
}
