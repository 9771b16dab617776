// Package sketch contains the procedural sketches. Each sketch is a pure
// function of its previous AnimationState and the frame's Input, returning
// the next state and the frame's drawing commands.
package sketch

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/iburimskiy/psychedelic-sketches/internal/config"
	"github.com/iburimskiy/psychedelic-sketches/internal/particle"
	"github.com/iburimskiy/psychedelic-sketches/internal/render"
)

// Input is what the host samples once per frame.
type Input struct {
	Elapsed time.Duration
	Pointer render.Point
	// Level is the current audio level in [0,1]; zero when nothing plays.
	Level float64
}

// AnimationState is carried from one frame to the next.
type AnimationState struct {
	Width, Height   int
	Center          render.Point
	Elapsed         float64
	Openness        float64
	PointerDistance float64
	Amplification   float64
	Symmetry        int
	Frame           uint64
	// Particles is nil for sketches without background crystals.
	Particles *particle.Set
}

// Sketch is a procedural animation.
type Sketch interface {
	Name() string
	// Init returns the state for a canvas of the given size.
	Init(width, height int) AnimationState
	// Resize recomputes the canvas geometry and clears the canvas.
	Resize(s AnimationState, width, height int) (AnimationState, render.Frame)
	// ComputeFrame advances s by one frame. s itself is left untouched.
	ComputeFrame(s AnimationState, in Input) (AnimationState, render.Frame)
}

// ErrUnknownSketch is returned by New for unregistered names.
var ErrUnknownSketch = errors.New("unknown sketch")

type factory func(cfg *config.Config, seed int64) Sketch

var registry = map[string]factory{
	"mandala": func(cfg *config.Config, seed int64) Sketch {
		return NewMandala(cfg.Mandala, seed, reactiveGain(cfg))
	},
	"eye": func(cfg *config.Config, seed int64) Sketch {
		return NewEye(cfg.Eye, cfg.Particles, seed, reactiveGain(cfg))
	},
}

// New builds the named sketch.
func New(name string, cfg *config.Config, seed int64) (Sketch, error) {
	f, ok := registry[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q (available: %v)", ErrUnknownSketch, name, Names())
	}
	return f(cfg, seed), nil
}

// Names lists the registered sketches in order.
func Names() []string {
	names := make([]string, 0, len(registry))
	for n := range registry {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

func reactiveGain(cfg *config.Config) float64 {
	if !cfg.Audio.Reactive {
		return 0
	}
	return cfg.Audio.Gain
}

// resize is shared by every sketch: recentre and wipe the canvas.
func resize(s AnimationState, width, height int) (AnimationState, render.Frame) {
	s.Width, s.Height = width, height
	s.Center = render.Point{X: float64(width) / 2, Y: float64(height) / 2}
	var f render.Frame
	f.Clear(render.Black)
	return s, f
}

func sinDeg(d float64) float64 { return math.Sin(d * math.Pi / 180) }

func lerp(a, b, t float64) float64 { return a + (b-a)*t }
