package sketch

import (
	"math/rand/v2"

	"github.com/iburimskiy/psychedelic-sketches/internal/compositor"
	"github.com/iburimskiy/psychedelic-sketches/internal/config"
	"github.com/iburimskiy/psychedelic-sketches/internal/noise"
	"github.com/iburimskiy/psychedelic-sketches/internal/particle"
	"github.com/iburimskiy/psychedelic-sketches/internal/render"
	"github.com/iburimskiy/psychedelic-sketches/internal/schedule"
)

const (
	maxTimeOffset   = 1000
	spinPerSecond   = 1.5
	eyeHueSpeed     = 50
	pupilHueSpeed   = 100
	shardSpin       = 5
	shardIndexSpin  = 10
	shardNoiseIndex = 0.1
	shardNoiseLayer = 10
	layerTilt       = 10
	layerSpin       = 2
	crystalSpin     = 10
)

// Eye is a slowly blinking kaleidoscopic eye surrounded by glass shards and
// a field of drifting crystals.
type Eye struct {
	cfg        config.EyeConfig
	pcfg       particle.Config
	sched      *schedule.Schedule
	noise      *noise.Field
	seed       int64
	timeOffset float64
	gain       float64
}

// NewEye builds the eye sketch.
func NewEye(cfg config.EyeConfig, pcfg config.ParticleConfig, seed int64, gain float64) *Eye {
	n := noise.New(seed)
	r := rand.New(rand.NewPCG(uint64(seed), 0))
	return &Eye{
		cfg:        cfg,
		pcfg:       particle.FromConfig(pcfg),
		sched:      schedule.New(schedule.FromConfig(cfg.Schedule), n),
		noise:      n,
		seed:       seed,
		timeOffset: r.Float64() * maxTimeOffset,
		gain:       gain,
	}
}

func (e *Eye) Name() string { return "eye" }

func (e *Eye) Init(width, height int) AnimationState {
	s, _ := resize(AnimationState{Amplification: 1}, width, height)
	s.Particles = particle.NewSet(e.cfg.Crystals, uint64(e.seed), e.pcfg)
	return s
}

func (e *Eye) Resize(s AnimationState, width, height int) (AnimationState, render.Frame) {
	return resize(s, width, height)
}

// Blink returns how closed the eye is at t: 0 open, 1 shut.
func (e *Eye) Blink(t float64) float64 {
	return (sinDeg(t*e.cfg.BlinkSpeed) + 1) / 2
}

func (e *Eye) ComputeFrame(s AnimationState, in Input) (AnimationState, render.Frame) {
	t := in.Elapsed.Seconds() + e.timeOffset
	d := in.Pointer.Dist(s.Center)
	amp := e.sched.Amplification(d, float64(s.Width)/2)
	amp = e.sched.Boost(amp, in.Level, e.gain)

	blink := e.Blink(t)
	open := lerp(s.Openness, blink, e.cfg.OpenSmoothing)

	var f render.Frame
	f.Fade(e.sched.TrailOpacity(amp))

	p := e.sched.Params()
	rotation := (t*spinPerSecond + e.noise.Sample(t*p.RotationFreq)*p.RotationRange) * amp
	base := render.Identity.Translate(s.Center.X, s.Center.Y).Rotate(rotation)

	core := e.cfg.CoreSize * amp
	e.drawEye(&f, base, t, core, blink, open)

	symmetry := e.sched.Symmetry(e.cfg.BaseSymmetry*(blink+0.5), amp)
	radial := compositor.Radial{
		Layers:   e.cfg.Layers,
		Symmetry: symmetry,
		Decay:    e.cfg.LayerDecay,
		LayerRotation: func(l int) float64 {
			return float64(l)*layerTilt + t*layerSpin*amp
		},
	}
	radial.Compose(base, func(seg compositor.Segment) {
		i, l := float64(seg.Index), float64(seg.Layer)
		hue := e.sched.Hue(seg.Index, seg.Symmetry, t, seg.Layer)
		offset := e.noise.Map(i*shardNoiseIndex+t*p.DistortionFreq+l*shardNoiseLayer, p.DistortionMin, p.DistortionMax)

		tr := seg.Transform.Translate(core*0.8+offset, 0).Rotate(t*shardSpin + i*shardIndexSpin)
		st := render.Stroked(render.HSBA{H: hue, S: 100, B: 100, A: 90}, 1+sinDeg(t*10+i)*0.5).
			WithFill(render.HSBA{H: hue, S: 80, B: 100, A: 40})
		f.Triangle(tr, 0, -15, 30, 0, 0, 15, st)
		f.Triangle(tr, 0, -15, -30, 0, 0, 15, st)
	})

	if s.Particles != nil {
		set := s.Particles.Clone()
		set.Update(t, amp)
		set.Render(&f, base.Rotate(t*crystalSpin*amp), float64(in.Elapsed.Milliseconds()))
		s.Particles = set
	}

	s.Elapsed = t
	s.Openness = open
	s.PointerDistance = d
	s.Amplification = amp
	s.Symmetry = symmetry
	s.Frame++
	return s, f
}

// drawEye emits the eyelid, iris, pupil and highlight.
func (e *Eye) drawEye(f *render.Frame, base render.Transform, t, core, blink, open float64) {
	pupil := lerp(core*0.1, core*0.4, open)
	closeHeight := lerp(core*1.2, 5, blink)
	eyeHue := schedule.WrapHue(t * eyeHueSpeed)

	lid := f.Shape(base)
	lid.MoveTo(0, -closeHeight*0.8)
	lid.BezierTo(core*0.8, -closeHeight*0.5, core*0.8, closeHeight*0.5, 0, closeHeight*0.8)
	lid.BezierTo(-core*0.8, closeHeight*0.5, -core*0.8, -closeHeight*0.5, 0, -closeHeight*0.8)
	lid.Close()
	lid.Draw(render.Filled(render.HSBA{H: eyeHue, S: 100, B: 100, A: 80}))

	f.Ellipse(base, 0, 0, core*1.5, core*open*1.2+20, render.Filled(render.HSBA{H: eyeHue, S: 100, B: 90, A: 80}))
	f.Ellipse(base, 0, 0, pupil, pupil, render.Filled(render.HSB(schedule.WrapHue(t*pupilHueSpeed), 100, 100)))
	f.Ellipse(base, 0, 0, pupil*0.3, pupil*0.3, render.Filled(render.HSB(0, 0, 100)))
}
