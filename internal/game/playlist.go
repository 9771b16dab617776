package game

import (
	"errors"
	"path/filepath"
	"strings"

	"github.com/iburimskiy/psychedelic-sketches/internal/config"
	"github.com/iburimskiy/psychedelic-sketches/internal/nowplaying"
)

// ErrEmptyPlaylist is returned when navigating a playlist without tracks.
var ErrEmptyPlaylist = errors.New("playlist is empty")

// Track is a playable entry.
type Track struct {
	Title  string
	Artist string
	Album  string
	Cover  string
	Path   string
}

// Metadata converts t into now-playing metadata.
func (t Track) Metadata() nowplaying.Metadata {
	return nowplaying.Metadata{
		Title:      t.Title,
		Artist:     t.Artist,
		Album:      t.Album,
		ArtworkURL: t.Cover,
	}
}

// trackFromFile builds a track for a file picked at runtime.
func trackFromFile(path string) Track {
	base := filepath.Base(path)
	return Track{
		Title:  strings.TrimSuffix(base, filepath.Ext(base)),
		Artist: config.DefaultArtist,
		Path:   path,
	}
}

// Playlist is an ordered, wrapping list of tracks.
type Playlist struct {
	tracks  []Track
	current int
}

// NewPlaylist builds a playlist from the YAML entries. The genre doubles as
// the album name and the artist defaults to config.DefaultArtist.
func NewPlaylist(entries []config.TrackConfig) *Playlist {
	p := &Playlist{}
	for _, e := range entries {
		t := Track{
			Title:  e.Title,
			Artist: e.Artist,
			Album:  e.Genre,
			Cover:  e.Cover,
			Path:   e.Path,
		}
		if t.Artist == "" {
			t.Artist = config.DefaultArtist
		}
		if t.Title == "" {
			t.Title = trackFromFile(e.Path).Title
		}
		p.tracks = append(p.tracks, t)
	}
	return p
}

// Len returns the number of tracks.
func (p *Playlist) Len() int { return len(p.tracks) }

// Current returns the selected track.
func (p *Playlist) Current() (Track, error) {
	if len(p.tracks) == 0 {
		return Track{}, ErrEmptyPlaylist
	}
	return p.tracks[p.current], nil
}

// Next selects the following track, wrapping to the first.
func (p *Playlist) Next() (Track, error) {
	return p.step(1)
}

// Previous selects the preceding track, wrapping to the last.
func (p *Playlist) Previous() (Track, error) {
	return p.step(-1)
}

func (p *Playlist) step(delta int) (Track, error) {
	if len(p.tracks) == 0 {
		return Track{}, ErrEmptyPlaylist
	}
	n := len(p.tracks)
	p.current = ((p.current+delta)%n + n) % n
	return p.tracks[p.current], nil
}

// Add appends t and selects it.
func (p *Playlist) Add(t Track) {
	p.tracks = append(p.tracks, t)
	p.current = len(p.tracks) - 1
}
