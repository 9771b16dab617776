// Package schedule derives the per-frame render parameters of a sketch
// (rotation, symmetry, hue, trail opacity) from elapsed time, smooth noise
// and the pointer's distance to the canvas centre.
//
// Every output is clamped or wrapped into its valid range, so callers never
// have to guard against zero symmetry or out-of-gamut colours.
package schedule

import (
	"math"

	"github.com/iburimskiy/psychedelic-sketches/internal/config"
	"github.com/iburimskiy/psychedelic-sketches/internal/noise"
)

// distortionOffset decorrelates the distortion channel from rotation.
const distortionOffset = 1000

// Params configures a Schedule. Angles are in degrees.
type Params struct {
	MaxAmplification float64
	RotationRange    float64
	RotationFreq     float64
	DistortionFreq   float64
	DistortionMin    float64
	DistortionMax    float64
	SymmetryMin      int
	SymmetryMax      int
	ColorSpeed       float64
	LayerHueOffset   float64
	OpacityMin       float64
	OpacityMax       float64
}

// FromConfig converts the YAML schedule section into Params.
func FromConfig(c config.ScheduleConfig) Params {
	return Params{
		MaxAmplification: c.MaxAmplification,
		RotationRange:    c.RotationRange,
		RotationFreq:     c.RotationFreq,
		DistortionFreq:   c.DistortionFreq,
		DistortionMin:    c.Distortion.Min,
		DistortionMax:    c.Distortion.Max,
		SymmetryMin:      c.Symmetry.Min,
		SymmetryMax:      c.Symmetry.Max,
		ColorSpeed:       c.ColorSpeed,
		LayerHueOffset:   c.LayerHueOffset,
		OpacityMin:       c.TrailOpacity.Min,
		OpacityMax:       c.TrailOpacity.Max,
	}
}

// Frame is the parameter bundle for one rendered frame.
type Frame struct {
	Time          float64
	Amplification float64
	Rotation      float64
	Distortion    float64
	Symmetry      int
	TrailOpacity  float64
}

// Schedule maps time and pointer distance to render parameters.
type Schedule struct {
	params Params
	noise  *noise.Field
}

// New returns a Schedule sampling n. Degenerate bounds are repaired:
// amplification is at least 1 and the symmetry range is at least [1,1].
func New(p Params, n *noise.Field) *Schedule {
	if p.MaxAmplification < 1 {
		p.MaxAmplification = 1
	}
	if p.SymmetryMin < 1 {
		p.SymmetryMin = 1
	}
	if p.SymmetryMax < p.SymmetryMin {
		p.SymmetryMax = p.SymmetryMin
	}
	if p.OpacityMax < p.OpacityMin {
		p.OpacityMin, p.OpacityMax = p.OpacityMax, p.OpacityMin
	}
	return &Schedule{params: p, noise: n}
}

// Params returns the effective (repaired) parameters.
func (s *Schedule) Params() Params { return s.params }

// Amplification maps the pointer distance d to [1, K]: K at the centre,
// 1 at maxRadius and beyond. A non-positive maxRadius yields 1.
func (s *Schedule) Amplification(d, maxRadius float64) float64 {
	k := s.params.MaxAmplification
	if maxRadius <= 0 || math.IsNaN(d) {
		return 1
	}
	if d < 0 {
		d = 0
	}
	return clamp(remap(d, 0, maxRadius, k, 1), 1, k)
}

// Boost raises amp by level in [0,1] scaled by gain, keeping it in [1,K].
func (s *Schedule) Boost(amp, level, gain float64) float64 {
	k := s.params.MaxAmplification
	return clamp(amp+clamp(level, 0, 1)*gain*(k-1), 1, k)
}

// Rotation returns the autonomous rotation at t in [-R, R] degrees.
func (s *Schedule) Rotation(t float64) float64 {
	r := s.params.RotationRange
	return s.noise.Map(t*s.params.RotationFreq, -r, r)
}

// Distortion returns the autonomous distortion at t within the configured range.
func (s *Schedule) Distortion(t float64) float64 {
	return s.noise.Map(t*s.params.DistortionFreq+distortionOffset, s.params.DistortionMin, s.params.DistortionMax)
}

// Symmetry floors base*amp and clamps it into [SymmetryMin, SymmetryMax].
func (s *Schedule) Symmetry(base, amp float64) int {
	v := math.Floor(base * amp)
	if math.IsNaN(v) || v < float64(s.params.SymmetryMin) {
		return s.params.SymmetryMin
	}
	if v > float64(s.params.SymmetryMax) {
		return s.params.SymmetryMax
	}
	return int(v)
}

// Hue returns the colour of segment i out of symmetry on layer at time t.
func (s *Schedule) Hue(i, symmetry int, t float64, layer int) float64 {
	if symmetry < 1 {
		symmetry = 1
	}
	h := float64(i)*(360/float64(symmetry)) + t*s.params.ColorSpeed + float64(layer)*s.params.LayerHueOffset
	return WrapHue(h)
}

// TrailOpacity maps amp in [1,K] onto [OpacityMin, OpacityMax].
func (s *Schedule) TrailOpacity(amp float64) float64 {
	p := s.params
	if p.MaxAmplification == 1 {
		if amp > 1 {
			return p.OpacityMax
		}
		return p.OpacityMin
	}
	return clamp(remap(amp, 1, p.MaxAmplification, p.OpacityMin, p.OpacityMax), p.OpacityMin, p.OpacityMax)
}

// Evaluate computes the full parameter bundle for time t and pointer
// distance d. The symmetry base is the noise-driven distortion.
func (s *Schedule) Evaluate(t, d, maxRadius float64) Frame {
	amp := s.Amplification(d, maxRadius)
	return s.At(t, amp)
}

// At computes the bundle for an already known amplification.
func (s *Schedule) At(t, amp float64) Frame {
	dist := s.Distortion(t)
	return Frame{
		Time:          t,
		Amplification: amp,
		Rotation:      s.Rotation(t) * amp,
		Distortion:    dist,
		Symmetry:      s.Symmetry(dist, amp),
		TrailOpacity:  s.TrailOpacity(amp),
	}
}

// WrapHue wraps h into [0,360).
func WrapHue(h float64) float64 {
	if math.IsNaN(h) || math.IsInf(h, 0) {
		return 0
	}
	h = math.Mod(h, 360)
	if h < 0 {
		h += 360
	}
	if h >= 360 {
		h = 0
	}
	return h
}

func remap(v, inLo, inHi, outLo, outHi float64) float64 {
	return outLo + (v-inLo)*(outHi-outLo)/(inHi-inLo)
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
