package offscreen

import (
	"bytes"
	"errors"
	"image/color"
	"os"
	"path/filepath"
	"testing"

	"github.com/iburimskiy/psychedelic-sketches/internal/config"
	"github.com/iburimskiy/psychedelic-sketches/internal/render"
	"github.com/iburimskiy/psychedelic-sketches/internal/sketch"
)

func TestSurfaceDrawsPaths(t *testing.T) {
	s := New(64, 64)

	var f render.Frame
	f.Ellipse(render.Identity.Translate(32, 32), 0, 0, 40, 40, render.Filled(render.HSB(0, 100, 100)))
	render.Replay(s, f)

	img := s.Snapshot()
	if got := img.RGBAAt(32, 32); got != (color.RGBA{R: 255, A: 255}) {
		t.Errorf("Centre pixel = %+v, want opaque red", got)
	}
	if got := img.RGBAAt(1, 1); got != (color.RGBA{A: 255}) {
		t.Errorf("Corner pixel = %+v, want black", got)
	}
}

func TestFadeDarkens(t *testing.T) {
	s := New(8, 8)
	s.Clear(color.White)

	var f render.Frame
	f.Fade(50)
	render.Replay(s, f)

	got := s.Snapshot().RGBAAt(4, 4)
	if got.R >= 255 || got.R == 0 {
		t.Errorf("Expected partially faded pixel, got %+v", got)
	}
}

func TestRenderFrameCount(t *testing.T) {
	cfg := config.Default()
	sk, err := sketch.New("mandala", cfg, 1)
	if err != nil {
		t.Fatalf("sketch.New failed: %v", err)
	}

	frames, err := Render(sk, Options{Width: 96, Height: 96, Frames: 3, FPS: 30})
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	if len(frames) != 3 {
		t.Fatalf("Expected 3 frames, got %d", len(frames))
	}
	if frames[0] == frames[1] {
		t.Error("Frames should be independent snapshots")
	}
}

func TestRenderRejectsZeroFrames(t *testing.T) {
	sk, _ := sketch.New("eye", config.Default(), 1)
	if _, err := Render(sk, Options{Width: 10, Height: 10}); !errors.Is(err, ErrNoFrames) {
		t.Errorf("Expected ErrNoFrames, got %v", err)
	}
}

func TestExportStillPNG(t *testing.T) {
	sk, _ := sketch.New("eye", config.Default(), 1)
	path := filepath.Join(t.TempDir(), "out", "eye.png")

	if err := Export(sk, path, Options{Width: 64, Height: 64, Frames: 1, FPS: 30}); err != nil {
		t.Fatalf("Export failed: %v", err)
	}
	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("Export did not write %s: %v", path, err)
	}
	if info.Size() == 0 {
		t.Error("Exported file is empty")
	}
}

func TestExportAnimated(t *testing.T) {
	pngSignature := []byte("\x89PNG\r\n\x1a\n")
	dir := t.TempDir()

	for _, name := range []string{"eye.apng", "eye.png"} {
		t.Run(name, func(t *testing.T) {
			sk, _ := sketch.New("eye", config.Default(), 1)
			path := filepath.Join(dir, "nested", name)

			if err := Export(sk, path, Options{Width: 32, Height: 32, Frames: 3, FPS: 10}); err != nil {
				t.Fatalf("Export failed: %v", err)
			}
			data, err := os.ReadFile(path)
			if err != nil {
				t.Fatalf("Export did not write %s: %v", path, err)
			}
			if len(data) == 0 {
				t.Fatal("Exported file is empty")
			}
			if !bytes.HasPrefix(data, pngSignature) {
				t.Errorf("Exported file does not start with the PNG signature: % x", data[:min(8, len(data))])
			}
		})
	}
}

func TestExportReplacesExistingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "eye.apng")
	stale := []byte("stale export")
	if err := os.WriteFile(path, stale, 0o644); err != nil {
		t.Fatal(err)
	}

	sk, _ := sketch.New("eye", config.Default(), 1)
	if err := Export(sk, path, Options{Width: 16, Height: 16, Frames: 2, FPS: 10}); err != nil {
		t.Fatalf("Export failed: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if bytes.Equal(data, stale) {
		t.Error("Export left the previous file in place")
	}
}

func TestFrameDelay(t *testing.T) {
	tests := []struct {
		fps  float64
		want uint16
	}{
		{10, 10},
		{25, 4},
		{30, 3},
		{60, 2},
		{100, 1},
		{1000, 1},
		{0.5, 200},
		{0, 3},
		{-5, 3},
	}
	for _, tt := range tests {
		if got := FrameDelay(tt.fps); got != tt.want {
			t.Errorf("FrameDelay(%g) = %d, want %d", tt.fps, got, tt.want)
		}
	}
}

func TestOrbitStaysOnCanvas(t *testing.T) {
	for i := 0; i < 1000; i++ {
		p := Orbit(200, 100, float64(i)*0.05)
		if p.X < 0 || p.X > 200 || p.Y < -50 || p.Y > 150 {
			t.Fatalf("Orbit point %+v outside expected bounds", p)
		}
	}
}
