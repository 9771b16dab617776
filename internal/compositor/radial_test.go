package compositor

import (
	"math"
	"testing"

	"github.com/iburimskiy/psychedelic-sketches/internal/render"
)

func TestComposeCallCount(t *testing.T) {
	tests := []struct {
		layers, symmetry, want int
	}{
		{3, 16, 48},
		{1, 1, 1},
		{2, 0, 2},
		{3, -4, 3},
		{0, 10, 0},
		{-1, 10, 0},
	}
	for _, tt := range tests {
		r := Radial{Layers: tt.layers, Symmetry: tt.symmetry, Decay: 0.85}
		calls := 0
		r.Compose(render.Identity, func(Segment) { calls++ })
		if calls != tt.want {
			t.Errorf("Compose(%d layers, %d symmetry) made %d calls, want %d", tt.layers, tt.symmetry, calls, tt.want)
		}
		if r.Count() != tt.want {
			t.Errorf("Count() = %d, want %d", r.Count(), tt.want)
		}
	}
}

func TestComposeGeometry(t *testing.T) {
	r := Radial{Layers: 3, Symmetry: 4, Decay: 0.85}
	var segs []Segment
	r.Compose(render.Identity.Translate(100, 100), func(s Segment) { segs = append(segs, s) })

	for _, s := range segs {
		wantScale := math.Pow(0.85, float64(s.Layer))
		if math.Abs(s.Scale-wantScale) > 1e-12 {
			t.Errorf("layer %d scale = %v, want %v", s.Layer, s.Scale, wantScale)
		}
		if math.Abs(s.Transform.Factor()-wantScale) > 1e-9 {
			t.Errorf("layer %d transform factor = %v, want %v", s.Layer, s.Transform.Factor(), wantScale)
		}
		wantAngle := float64(s.Index+1) * 90
		if s.Angle != wantAngle {
			t.Errorf("segment %d angle = %v, want %v", s.Index, s.Angle, wantAngle)
		}
	}

	// Segment 0 of layer 0 is rotated by 90 degrees: (10,0) -> (100,110).
	p := segs[0].Transform.Apply(render.Point{X: 10})
	if math.Abs(p.X-100) > 1e-9 || math.Abs(p.Y-110) > 1e-9 {
		t.Errorf("first segment maps (10,0) to %+v, want (100,110)", p)
	}
	// The last segment of a layer completes a full turn.
	last := segs[3].Transform.Apply(render.Point{X: 10})
	if math.Abs(last.X-110) > 1e-9 || math.Abs(last.Y-100) > 1e-9 {
		t.Errorf("last segment maps (10,0) to %+v, want (110,100)", last)
	}
}

func TestLayerRotation(t *testing.T) {
	r := Radial{
		Layers:        2,
		Symmetry:      1,
		Decay:         1,
		LayerRotation: func(l int) float64 { return float64(l) * 90 },
	}
	var pts []render.Point
	r.Compose(render.Identity, func(s Segment) {
		pts = append(pts, s.Transform.Apply(render.Point{X: 1}))
	})
	if math.Abs(pts[0].X-1) > 1e-9 || math.Abs(pts[0].Y) > 1e-9 {
		t.Errorf("layer 0 point = %+v, want (1,0)", pts[0])
	}
	if math.Abs(pts[1].X) > 1e-9 || math.Abs(pts[1].Y-1) > 1e-9 {
		t.Errorf("layer 1 point = %+v, want (0,1)", pts[1])
	}
}
