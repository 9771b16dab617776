package particle

import (
	"math/rand/v2"

	"github.com/iburimskiy/psychedelic-sketches/internal/config"
	"github.com/iburimskiy/psychedelic-sketches/internal/render"
)

// Config bounds the random attributes of a crystal and its respawn rule.
type Config struct {
	DistMin, DistMax   float64
	SizeMin, SizeMax   float64
	SpeedMin, SpeedMax float64
	SpinMin, SpinMax   float64
	PulseMin, PulseMax float64
	Drift              float64
	HueStep            float64
	// RespawnDist is the distance beyond which a crystal is recycled.
	RespawnDist            float64
	RespawnMin, RespawnMax float64
}

// FromConfig converts the YAML particle section.
func FromConfig(c config.ParticleConfig) Config {
	return Config{
		DistMin:     c.Distance.Min,
		DistMax:     c.Distance.Max,
		SizeMin:     c.Size.Min,
		SizeMax:     c.Size.Max,
		SpeedMin:    c.Speed.Min,
		SpeedMax:    c.Speed.Max,
		SpinMin:     c.Spin.Min,
		SpinMax:     c.Spin.Max,
		PulseMin:    c.Pulse.Min,
		PulseMax:    c.Pulse.Max,
		Drift:       c.Drift,
		HueStep:     c.HueStep,
		RespawnDist: c.RespawnDist,
		RespawnMin:  c.Respawn.Min,
		RespawnMax:  c.Respawn.Max,
	}
}

// Set owns a fixed number of crystals.
type Set struct {
	seed     uint64
	cfg      Config
	crystals []Crystal
	respawns int
}

// NewSet creates n crystals. The same seed always yields the same set and,
// given the same inputs, the same evolution.
func NewSet(n int, seed uint64, cfg Config) *Set {
	if n < 0 {
		n = 0
	}
	s := &Set{seed: seed, cfg: cfg, crystals: make([]Crystal, n)}
	for i := range s.crystals {
		s.crystals[i] = newCrystal(s.stream(i, 0), cfg)
	}
	return s
}

// stream returns the random source for crystal i at generation gen.
func (s *Set) stream(i int, gen uint32) *rand.Rand {
	return rand.New(rand.NewPCG(s.seed, uint64(i)<<32|uint64(gen)))
}

// Len returns the number of crystals.
func (s *Set) Len() int { return len(s.crystals) }

// Crystals returns a copy of the current crystals.
func (s *Set) Crystals() []Crystal {
	out := make([]Crystal, len(s.crystals))
	copy(out, s.crystals)
	return out
}

// Respawns returns how many crystals have been recycled so far.
func (s *Set) Respawns() int { return s.respawns }

// Clone returns an independent copy of s.
func (s *Set) Clone() *Set {
	c := *s
	c.crystals = s.Crystals()
	return &c
}

// Update advances every crystal by one frame at time t (seconds) with the
// given amplification.
func (s *Set) Update(t, amp float64) {
	for i := range s.crystals {
		idx := i
		if s.crystals[i].update(t, amp, s.cfg, func(gen uint32) *rand.Rand { return s.stream(idx, gen) }) {
			s.respawns++
		}
	}
}

// Render appends every crystal to f, positioned relative to base.
func (s *Set) Render(f *render.Frame, base render.Transform, elapsedMillis float64) {
	for i := range s.crystals {
		s.crystals[i].render(f, base, elapsedMillis)
	}
}
