package offscreen

import (
	"errors"
	"fmt"
	"image"
	"io/fs"
	"log"
	"math"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/setanarut/apng"

	"github.com/iburimskiy/psychedelic-sketches/internal/render"
	"github.com/iburimskiy/psychedelic-sketches/internal/sketch"
)

// FrameDelay converts fps into an APNG frame delay in hundredths of a
// second, never less than one.
func FrameDelay(fps float64) uint16 {
	if fps <= 0 {
		fps = 30
	}
	return uint16(min(math.MaxUint16, max(1, math.Round(100/fps))))
}

// ErrNoFrames is returned when an export is asked for zero frames.
var ErrNoFrames = errors.New("no frames to export")

// Options controls an export.
type Options struct {
	Width, Height int
	Frames        int
	FPS           float64
}

// Orbit is the synthetic pointer used for exports: it circles the centre,
// swinging between the edge and the middle so amplification varies.
func Orbit(width, height int, t float64) render.Point {
	cx, cy := float64(width)/2, float64(height)/2
	r := cx * (0.5 + 0.5*math.Cos(t*0.5))
	return render.Point{X: cx + r*math.Cos(t), Y: cy + r*math.Sin(t)}
}

// Render runs sk headlessly and returns every frame's pixels.
func Render(sk sketch.Sketch, opts Options) ([]image.Image, error) {
	if opts.Frames <= 0 {
		return nil, ErrNoFrames
	}
	if opts.FPS <= 0 {
		opts.FPS = 30
	}

	surface := New(opts.Width, opts.Height)
	state := sk.Init(opts.Width, opts.Height)
	state, clear := sk.Resize(state, opts.Width, opts.Height)
	render.Replay(surface, clear)

	frames := make([]image.Image, 0, opts.Frames)
	step := time.Duration(float64(time.Second) / opts.FPS)
	for i := 0; i < opts.Frames; i++ {
		elapsed := time.Duration(i) * step
		in := sketch.Input{
			Elapsed: elapsed,
			Pointer: Orbit(opts.Width, opts.Height, elapsed.Seconds()),
		}
		var f render.Frame
		state, f = sk.ComputeFrame(state, in)
		render.Replay(surface, f)
		frames = append(frames, surface.Snapshot())
	}
	return frames, nil
}

// Export renders sk and writes it to path. A ".apng" extension (or more
// than one frame with ".png") writes an animated PNG; otherwise only the
// last frame is written.
func Export(sk sketch.Sketch, path string, opts Options) error {
	frames, err := Render(sk, opts)
	if err != nil {
		return err
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create export directory: %w", err)
		}
	}

	animated := strings.EqualFold(filepath.Ext(path), ".apng") || len(frames) > 1
	if !animated {
		return writePNG(frames[len(frames)-1], path)
	}

	if err := os.Remove(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to replace %s: %w", path, err)
	}
	apng.Save(path, frames, FrameDelay(opts.FPS))
	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("failed to write animated png: %w", err)
	}
	if info.Size() == 0 {
		return fmt.Errorf("failed to write animated png: %s is empty", path)
	}
	log.Printf("[Export] Wrote %d frames of %s to %s", len(frames), sk.Name(), path)
	return nil
}

func writePNG(img image.Image, path string) error {
	s := New(img.Bounds().Dx(), img.Bounds().Dy())
	s.ctx.DrawImage(img, 0, 0)
	if err := s.SavePNG(path); err != nil {
		return fmt.Errorf("failed to write png: %w", err)
	}
	log.Printf("[Export] Wrote still frame to %s", path)
	return nil
}
