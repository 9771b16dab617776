// Package particle implements the set of decorative crystals that orbit and
// drift away from the centre of the eye sketch.
package particle

import (
	"math"
	"math/rand/v2"

	"github.com/iburimskiy/psychedelic-sketches/internal/render"
	"github.com/iburimskiy/psychedelic-sketches/internal/schedule"
)

// Shape selects how a crystal is drawn.
type Shape uint8

const (
	Hexagon Shape = iota
	Rhombus
	Star
	Spiral

	shapeCount
)

func (s Shape) String() string {
	switch s {
	case Hexagon:
		return "hexagon"
	case Rhombus:
		return "rhombus"
	case Star:
		return "star"
	case Spiral:
		return "spiral"
	}
	return "unknown"
}

const (
	pulseAmplitude = 0.8
	angleFactor    = 0.5
	strokeWeight   = 1.5
	spiralLines    = 10
	spiralTwist    = 5
)

// Crystal is one particle. Angles are in degrees.
type Crystal struct {
	Hue   float64
	Angle float64
	Dist  float64
	Size  float64
	Speed float64
	// Pulse is the radial pulsation speed in degrees per second.
	Pulse float64
	// Spin is the crystal's own rotation in degrees per millisecond.
	Spin float64
	// Phase offsets the pulsation so crystals do not breathe in lockstep.
	Phase float64
	Shape Shape
	// Generation counts respawns and selects the random stream used for
	// the next one.
	Generation uint32
}

func newCrystal(r *rand.Rand, c Config) Crystal {
	return Crystal{
		Hue:   r.Float64() * 360,
		Angle: r.Float64() * 360,
		Dist:  uniform(r, c.DistMin, c.DistMax),
		Size:  uniform(r, c.SizeMin, c.SizeMax),
		Speed: uniform(r, c.SpeedMin, c.SpeedMax),
		Pulse: uniform(r, c.PulseMin, c.PulseMax),
		Spin:  uniform(r, c.SpinMin, c.SpinMax),
		Phase: r.Float64() * 360,
		Shape: Shape(r.IntN(int(shapeCount))),
	}
}

// update advances the crystal by one frame. It reports whether the crystal
// respawned.
func (cr *Crystal) update(t, amp float64, c Config, r func(gen uint32) *rand.Rand) bool {
	cr.Angle = math.Mod(cr.Angle+cr.Speed*angleFactor*amp, 360)
	cr.Dist += (sinDeg(t*cr.Pulse+cr.Phase)*pulseAmplitude + c.Drift) * amp
	if cr.Dist < 0 {
		cr.Dist = 0
	}
	cr.Hue = schedule.WrapHue(cr.Hue + c.HueStep)

	if cr.Dist <= c.RespawnDist {
		return false
	}
	cr.Generation++
	rng := r(cr.Generation)
	cr.Dist = uniform(rng, c.RespawnMin, c.RespawnMax)
	cr.Hue = rng.Float64() * 360
	return true
}

// render emits the crystal's shape in base's space.
func (cr *Crystal) render(f *render.Frame, base render.Transform, elapsedMillis float64) {
	t := base.Rotate(cr.Angle).Translate(cr.Dist, 0).Rotate(elapsedMillis * cr.Spin)
	st := render.Stroked(render.HSBA{H: cr.Hue, S: 100, B: 100, A: 80}, strokeWeight).
		WithFill(render.HSBA{H: cr.Hue, S: 70, B: 90, A: 30})
	s := cr.Size

	switch cr.Shape {
	case Hexagon:
		f.RegularPolygon(t, 6, s, st)
	case Rhombus:
		f.Triangle(t, 0, -s*1.2, s, 0, 0, s*1.2, st)
		f.Triangle(t, 0, -s*1.2, -s, 0, 0, s*1.2, st)
	case Star:
		for j := 0; j < 4; j++ {
			a := float64(j) * 90
			f.Line(t, 0, 0, s*cosDeg(a), s*sinDeg(a), st)
		}
	default:
		for j := 0; j < spiralLines; j++ {
			d := s * float64(j) / 2
			f.Line(t, 0, 0, d, d, st)
			t = t.Rotate(spiralTwist)
		}
	}
}

func uniform(r *rand.Rand, lo, hi float64) float64 {
	if hi <= lo {
		return lo
	}
	return lo + r.Float64()*(hi-lo)
}

func sinDeg(d float64) float64 { return math.Sin(d * math.Pi / 180) }

func cosDeg(d float64) float64 { return math.Cos(d * math.Pi / 180) }
