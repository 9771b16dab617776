package sketch

import (
	"github.com/iburimskiy/psychedelic-sketches/internal/compositor"
	"github.com/iburimskiy/psychedelic-sketches/internal/config"
	"github.com/iburimskiy/psychedelic-sketches/internal/noise"
	"github.com/iburimskiy/psychedelic-sketches/internal/render"
	"github.com/iburimskiy/psychedelic-sketches/internal/schedule"
)

const (
	mandalaNodes     = 3
	mandalaNodeGap   = 30
	mandalaNodeSize  = 10
	miniRings        = 5
	miniRingBase     = 100
	miniRingStep     = 10
	miniRingHueStep  = 60
	miniScale        = 0.15
	miniOffset       = 0.7
	miniRotationGain = 5
)

// Mandala is a noise-driven rotating mandala with nested mini mandalas.
// Moving the pointer towards the centre amplifies rotation, symmetry and
// the motion trail.
type Mandala struct {
	cfg   config.MandalaConfig
	sched *schedule.Schedule
	gain  float64
}

// NewMandala builds the mandala sketch. gain scales audio reactivity; zero
// disables it.
func NewMandala(cfg config.MandalaConfig, seed int64, gain float64) *Mandala {
	return &Mandala{
		cfg:   cfg,
		sched: schedule.New(schedule.FromConfig(cfg.Schedule), noise.New(seed)),
		gain:  gain,
	}
}

func (m *Mandala) Name() string { return "mandala" }

func (m *Mandala) Init(width, height int) AnimationState {
	s, _ := resize(AnimationState{Amplification: 1}, width, height)
	return s
}

func (m *Mandala) Resize(s AnimationState, width, height int) (AnimationState, render.Frame) {
	return resize(s, width, height)
}

func (m *Mandala) ComputeFrame(s AnimationState, in Input) (AnimationState, render.Frame) {
	t := in.Elapsed.Seconds()
	d := in.Pointer.Dist(s.Center)
	amp := m.sched.Amplification(d, float64(s.Width)/2)
	amp = m.sched.Boost(amp, in.Level, m.gain)
	p := m.sched.At(t, amp)
	autonomous := m.sched.Rotation(t)

	var f render.Frame
	f.Fade(p.TrailOpacity)

	base := render.Identity.Translate(s.Center.X, s.Center.Y).Rotate(p.Rotation)
	radial := compositor.Radial{
		Layers:   m.cfg.Layers,
		Symmetry: p.Symmetry,
		Decay:    m.cfg.LayerDecay,
	}
	radial.Compose(base, func(seg compositor.Segment) {
		hue := m.sched.Hue(seg.Index, seg.Symmetry, t, seg.Layer)
		radius := m.cfg.Radius * seg.Scale

		main := render.Stroked(render.HSBA{H: hue, S: 100, B: 100, A: 90}, sinDeg(t*5+float64(seg.Layer))*1.5+2.5)
		f.Line(seg.Transform, 0, 0, radius, 0, main)
		for j := 0; j < mandalaNodes; j++ {
			offset := float64(j) * mandalaNodeGap * amp / 2
			f.Ellipse(seg.Transform, radius/2+offset, 0, mandalaNodeSize, mandalaNodeSize, main)
		}

		mini := seg.Transform.
			Rotate(autonomous*miniRotationGain).
			Translate(radius*miniOffset, 0).
			Scale(miniScale * amp)
		for k := 0; k < miniRings; k++ {
			st := render.Stroked(render.HSBA{H: schedule.WrapHue(hue + float64(k*miniRingHueStep)), S: 80, B: 90, A: 80}, 1)
			size := float64(miniRingBase + k*miniRingStep)
			f.Ellipse(mini, 0, 0, size, size, st)
		}
	})

	s.Elapsed = t
	s.PointerDistance = d
	s.Amplification = amp
	s.Symmetry = p.Symmetry
	s.Frame++
	return s, f
}
