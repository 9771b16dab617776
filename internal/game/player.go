package game

import (
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/faiface/beep"
	"github.com/faiface/beep/flac"
	"github.com/faiface/beep/mp3"
	"github.com/faiface/beep/speaker"
	"github.com/faiface/beep/wav"

	"github.com/iburimskiy/psychedelic-sketches/internal/config"
)

// ErrUnsupportedFormat is returned for files beep cannot decode.
var ErrUnsupportedFormat = errors.New("unsupported file type")

const spectrumBands = 64

// Player plays one track at a time through the beep speaker and keeps a
// tap of the played samples for visualisation.
type Player struct {
	mu sync.Mutex

	currentFile *os.File
	streamer    beep.StreamSeekCloser
	format      beep.Format
	ctrl        *beep.Ctrl
	tap         *visualTap
	track       Track

	duration     time.Duration
	lastSeekTime time.Time

	spectrum []float64

	paused   bool
	initDone bool
	// ended receives the finished track's generation when playback completes.
	ended      chan uint64
	generation uint64
}

// NewPlayer returns an idle player.
func NewPlayer() *Player {
	return &Player{
		ended:    make(chan uint64, 1),
		spectrum: make([]float64, spectrumBands),
	}
}

func decode(path string, f *os.File) (beep.StreamSeekCloser, beep.Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".wav":
		return wav.Decode(f)
	case ".mp3":
		return mp3.Decode(f)
	case ".flac":
		return flac.Decode(f)
	}
	return nil, beep.Format{}, fmt.Errorf("%w: %s", ErrUnsupportedFormat, filepath.Ext(path))
}

// Load stops the current track and starts playing t.
func (p *Player) Load(t Track) error {
	f, err := os.Open(t.Path)
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", t.Path, err)
	}

	streamer, format, err := decode(t.Path, f)
	if err != nil {
		_ = f.Close()
		return err
	}

	// Prepare audio chain: streamer -> tap -> ctrl
	tap := newVisualTap(streamer, config.VisualRingSize)
	ctrl := &beep.Ctrl{Streamer: tap, Paused: false}

	// (Re)initialize speaker if needed
	bufferSize := format.SampleRate.N(time.Second / 20)
	p.mu.Lock()
	defer p.mu.Unlock()
	switch {
	case !p.initDone:
		if err := speaker.Init(format.SampleRate, bufferSize); err != nil {
			_ = streamer.Close()
			_ = f.Close()
			return fmt.Errorf("failed to init speaker: %w", err)
		}
		p.initDone = true
	case p.format.SampleRate != format.SampleRate:
		speaker.Clear()
		if err := speaker.Init(format.SampleRate, bufferSize); err != nil {
			_ = streamer.Close()
			_ = f.Close()
			return fmt.Errorf("failed to re-init speaker: %w", err)
		}
	default:
		speaker.Clear()
	}
	p.closeLocked()

	p.currentFile = f
	p.streamer = streamer
	p.format = format
	p.ctrl = ctrl
	p.tap = tap
	p.track = t
	p.paused = false
	p.duration = format.SampleRate.D(streamer.Len())
	p.generation++

	gen := p.generation
	speaker.Play(beep.Seq(ctrl, beep.Callback(func() {
		select {
		case p.ended <- gen:
		default:
		}
	})))

	log.Printf("[Player] Playing %q (%s, %d Hz)", t.Title, formatDuration(p.duration), format.SampleRate)
	return nil
}

// closeLocked releases the current stream. p.mu must be held.
func (p *Player) closeLocked() {
	if p.streamer != nil {
		_ = p.streamer.Close()
		p.streamer = nil
	}
	if p.currentFile != nil {
		_ = p.currentFile.Close()
		p.currentFile = nil
	}
	p.ctrl = nil
	p.tap = nil
	p.duration = 0
}

// Stop halts playback and releases the file.
func (p *Player) Stop() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.initDone {
		speaker.Clear()
	}
	p.closeLocked()
}

// Finished reports whether the current track has played to the end since
// the last call.
func (p *Player) Finished() bool {
	select {
	case gen := <-p.ended:
		p.mu.Lock()
		defer p.mu.Unlock()
		return gen == p.generation
	default:
		return false
	}
}

// Loaded reports whether a track is ready.
func (p *Player) Loaded() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.ctrl != nil
}

// Track returns the loaded track.
func (p *Player) Track() Track {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.track
}

// Paused reports whether playback is paused.
func (p *Player) Paused() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.paused
}

// SetPaused pauses or resumes playback.
func (p *Player) SetPaused(paused bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.ctrl == nil {
		return
	}
	speaker.Lock()
	p.paused = paused
	p.ctrl.Paused = paused
	speaker.Unlock()
}

// TogglePause flips the paused state.
func (p *Player) TogglePause() {
	p.SetPaused(!p.Paused())
}

// Duration returns the track length.
func (p *Player) Duration() time.Duration {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.duration
}

// Position returns the current playback position.
func (p *Player) Position() time.Duration {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.streamer == nil {
		return 0
	}
	speaker.Lock()
	pos := p.streamer.Position()
	speaker.Unlock()
	return p.format.SampleRate.D(pos)
}

// Seek jumps to progress in [0,1]. Calls closer than the seek cooldown are
// ignored to avoid micro-seeks while dragging.
func (p *Player) Seek(progress float64) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.streamer == nil {
		return nil
	}
	if time.Since(p.lastSeekTime) < config.SeekCooldownMillis*time.Millisecond {
		return nil
	}

	pos := seekSample(progress, p.duration, int(p.format.SampleRate), p.streamer.Len())
	speaker.Lock()
	err := p.streamer.Seek(pos)
	speaker.Unlock()
	if err != nil {
		return fmt.Errorf("failed to seek: %w", err)
	}
	p.lastSeekTime = time.Now()
	return nil
}

// Analyze refreshes the spectrum bands from the tap and returns the overall
// level in [0,1].
func (p *Player) Analyze() float64 {
	p.mu.Lock()
	defer p.mu.Unlock()
	var samples [][2]float64
	if p.tap != nil && !p.paused {
		samples = p.tap.snapshot(config.LevelSamples)
	}
	p.spectrum = bands(p.spectrum, samples, spectrumBands, config.SmoothingFactor)
	return clamp01(mean(p.spectrum))
}

// Spectrum returns a copy of the last analysed bands.
func (p *Player) Spectrum() []float64 {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]float64, len(p.spectrum))
	copy(out, p.spectrum)
	return out
}
