package game

import (
	"errors"
	"math"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/faiface/beep"

	"github.com/iburimskiy/psychedelic-sketches/internal/config"
)

// constStreamer yields the same stereo sample forever.
type constStreamer struct{ v float64 }

func (c constStreamer) Stream(samples [][2]float64) (int, bool) {
	for i := range samples {
		samples[i] = [2]float64{c.v, c.v}
	}
	return len(samples), true
}

func (constStreamer) Err() error { return nil }

// countStreamer yields 0, 1, 2, ... on the left channel.
type countStreamer struct{ n float64 }

func (c *countStreamer) Stream(samples [][2]float64) (int, bool) {
	for i := range samples {
		samples[i] = [2]float64{c.n, 0}
		c.n++
	}
	return len(samples), true
}

func (*countStreamer) Err() error { return nil }

var _ beep.Streamer = (*countStreamer)(nil)

func TestVisualTapPartialFill(t *testing.T) {
	tap := newVisualTap(&countStreamer{}, 8)
	if got := tap.snapshot(4); len(got) != 0 {
		t.Fatalf("empty tap returned %d samples", len(got))
	}

	buf := make([][2]float64, 3)
	tap.Stream(buf)

	got := tap.snapshot(8)
	if len(got) != 3 {
		t.Fatalf("snapshot length = %d, want 3", len(got))
	}
	for i, s := range got {
		if s[0] != float64(i) {
			t.Errorf("sample %d = %v, want %d", i, s[0], i)
		}
	}
}

func TestVisualTapWrapsOldestFirst(t *testing.T) {
	tap := newVisualTap(&countStreamer{}, 4)
	buf := make([][2]float64, 6)
	tap.Stream(buf) // 0..5, ring keeps 2..5

	got := tap.snapshot(10)
	want := []float64{2, 3, 4, 5}
	if len(got) != len(want) {
		t.Fatalf("snapshot length = %d, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i][0] != want[i] {
			t.Errorf("sample %d = %v, want %v", i, got[i][0], want[i])
		}
	}

	last := tap.snapshot(2)
	if last[0][0] != 4 || last[1][0] != 5 {
		t.Errorf("snapshot(2) = %v, want [4 5]", last)
	}
}

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		in   time.Duration
		want string
	}{
		{0, "00:00"},
		{59 * time.Second, "00:59"},
		{61 * time.Second, "01:01"},
		{12*time.Minute + 5*time.Second, "12:05"},
		{-time.Second, "00:00"},
	}
	for _, tt := range tests {
		if got := formatDuration(tt.in); got != tt.want {
			t.Errorf("formatDuration(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestBands(t *testing.T) {
	samples := make([][2]float64, 64)
	constStreamer{v: 0.5}.Stream(samples)

	got := bands(nil, samples, 8, 0)
	if len(got) != 8 {
		t.Fatalf("len = %d, want 8", len(got))
	}
	want := math.Pow(0.5, 0.3)
	for i, v := range got {
		if math.Abs(v-want) > 1e-9 {
			t.Errorf("band %d = %v, want %v", i, v, want)
		}
	}

	decayed := bands(got, nil, 8, 0.5)
	for i, v := range decayed {
		if math.Abs(v-want/2) > 1e-9 {
			t.Errorf("decayed band %d = %v, want %v", i, v, want/2)
		}
	}
}

func TestBandsSilence(t *testing.T) {
	got := bands(nil, make([][2]float64, 32), 4, config.SmoothingFactor)
	if m := mean(got); m != 0 {
		t.Errorf("silence level = %v, want 0", m)
	}
}

func TestMean(t *testing.T) {
	if got := mean(nil); got != 0 {
		t.Errorf("mean(nil) = %v", got)
	}
	if got := mean([]float64{1, 2, 3}); got != 2 {
		t.Errorf("mean = %v, want 2", got)
	}
}

func TestSeekSample(t *testing.T) {
	tests := []struct {
		name     string
		progress float64
		length   int
		want     int
	}{
		{"start", 0, 44100 * 10, 0},
		{"middle", 0.5, 44100 * 10, 44100 * 5},
		{"past end", 1.5, 44100 * 10, 44100*10 - 1},
		{"negative", -1, 44100 * 10, 0},
		{"empty stream", 0.5, 0, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := seekSample(tt.progress, 10*time.Second, 44100, tt.length)
			if got != tt.want {
				t.Errorf("seekSample = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestPlaylistWraps(t *testing.T) {
	p := NewPlaylist([]config.TrackConfig{
		{Title: "One", Path: "one.mp3"},
		{Title: "Two", Path: "two.mp3"},
		{Title: "Three", Path: "three.mp3"},
	})

	cur, err := p.Current()
	if err != nil || cur.Title != "One" {
		t.Fatalf("Current = %q, %v", cur.Title, err)
	}

	prev, _ := p.Previous()
	if prev.Title != "Three" {
		t.Errorf("Previous from first = %q, want Three", prev.Title)
	}
	next, _ := p.Next()
	if next.Title != "One" {
		t.Errorf("Next from last = %q, want One", next.Title)
	}
	next, _ = p.Next()
	if next.Title != "Two" {
		t.Errorf("Next = %q, want Two", next.Title)
	}
}

func TestPlaylistDefaults(t *testing.T) {
	p := NewPlaylist([]config.TrackConfig{{Path: "music/Deep Trip.flac", Genre: "Psytrance", Cover: "cover.png"}})
	cur, err := p.Current()
	if err != nil {
		t.Fatalf("Current: %v", err)
	}
	if cur.Title != "Deep Trip" {
		t.Errorf("Title = %q", cur.Title)
	}
	if cur.Artist != config.DefaultArtist {
		t.Errorf("Artist = %q", cur.Artist)
	}

	m := cur.Metadata()
	if m.Album != "Psytrance" || m.ArtworkURL != "cover.png" {
		t.Errorf("Metadata = %+v", m)
	}
}

func TestEmptyPlaylist(t *testing.T) {
	p := NewPlaylist(nil)
	if _, err := p.Current(); !errors.Is(err, ErrEmptyPlaylist) {
		t.Errorf("Current err = %v", err)
	}
	if _, err := p.Next(); !errors.Is(err, ErrEmptyPlaylist) {
		t.Errorf("Next err = %v", err)
	}

	p.Add(trackFromFile("/tmp/song.wav"))
	cur, err := p.Current()
	if err != nil || cur.Title != "song" {
		t.Errorf("after Add: %q, %v", cur.Title, err)
	}
}

func TestPlayerRejectsUnsupportedFormat(t *testing.T) {
	path := filepath.Join(t.TempDir(), "track.ogg")
	if err := os.WriteFile(path, []byte("OggS"), 0o644); err != nil {
		t.Fatal(err)
	}

	p := NewPlayer()
	err := p.Load(Track{Path: path})
	if !errors.Is(err, ErrUnsupportedFormat) {
		t.Fatalf("Load err = %v, want ErrUnsupportedFormat", err)
	}
	if p.Loaded() {
		t.Error("player reports a loaded track after a failed load")
	}
}

func TestIdlePlayer(t *testing.T) {
	p := NewPlayer()
	if p.Finished() {
		t.Error("idle player reports finished")
	}
	if p.Position() != 0 || p.Duration() != 0 {
		t.Error("idle player has a position")
	}
	if err := p.Seek(0.5); err != nil {
		t.Errorf("Seek on idle player: %v", err)
	}
	if lvl := p.Analyze(); lvl != 0 {
		t.Errorf("idle level = %v", lvl)
	}
	p.Stop()
}
