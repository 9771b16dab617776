// Package compositor replicates a motif around a centre point over several
// concentric, progressively smaller layers.
package compositor

import (
	"math"

	"github.com/iburimskiy/psychedelic-sketches/internal/render"
)

// Segment describes one copy of the motif.
type Segment struct {
	Layer    int
	Index    int
	Symmetry int
	// Scale is Decay^Layer.
	Scale float64
	// Angle is the segment's rotation within its layer, in degrees.
	Angle     float64
	Transform render.Transform
}

// Radial lays out Layers x Symmetry segments.
type Radial struct {
	Layers   int
	Symmetry int
	Decay    float64
	// LayerRotation optionally rotates a whole layer (degrees).
	LayerRotation func(layer int) float64
}

// Count returns how many segments Compose will emit.
func (r Radial) Count() int {
	layers, sym := r.bounds()
	return layers * sym
}

func (r Radial) bounds() (layers, symmetry int) {
	layers, symmetry = r.Layers, r.Symmetry
	if layers < 0 {
		layers = 0
	}
	if symmetry < 1 {
		symmetry = 1
	}
	return layers, symmetry
}

// Compose calls draw once per segment, layer by layer. Segment i is
// rotated by (i+1)*360/Symmetry so the last copy of every layer lands on
// the layer's own orientation.
func (r Radial) Compose(base render.Transform, draw func(Segment)) {
	layers, sym := r.bounds()
	step := 360 / float64(sym)

	for l := 0; l < layers; l++ {
		lt := base
		if r.LayerRotation != nil {
			lt = lt.Rotate(r.LayerRotation(l))
		}
		scale := math.Pow(r.Decay, float64(l))
		lt = lt.Scale(scale)

		for i := 0; i < sym; i++ {
			angle := float64(i+1) * step
			draw(Segment{
				Layer:     l,
				Index:     i,
				Symmetry:  sym,
				Scale:     scale,
				Angle:     angle,
				Transform: lt.Rotate(angle),
			})
		}
	}
}
