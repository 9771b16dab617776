package nowplaying

import (
	"fmt"
	"log"
	"sync"

	"github.com/ncruces/zenity"
)

// NotifyReporter shows a desktop notification whenever the track changes.
// Positions are remembered but not shown; notifications have no progress bar.
type NotifyReporter struct {
	mu       sync.Mutex
	notify   func(text string, options ...zenity.Option) error
	position PositionState
}

// NewNotifyReporter returns a reporter using zenity notifications.
func NewNotifyReporter() *NotifyReporter {
	return &NotifyReporter{notify: zenity.Notify}
}

func (r *NotifyReporter) SetMetadata(m Metadata) error {
	text := m.Title
	if m.Artist != "" {
		text = fmt.Sprintf("%s - %s", m.Title, m.Artist)
	}
	if m.Album != "" {
		text = fmt.Sprintf("%s (%s)", text, m.Album)
	}
	opts := []zenity.Option{zenity.Title("Now playing"), zenity.InfoIcon}
	if m.ArtworkURL != "" {
		opts = append(opts, zenity.Icon(m.ArtworkURL))
	}
	return r.notify(text, opts...)
}

func (r *NotifyReporter) SetPositionState(p PositionState) error {
	r.mu.Lock()
	r.position = p
	r.mu.Unlock()
	return nil
}

// Position returns the last reported position.
func (r *NotifyReporter) Position() PositionState {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.position
}

// LogReporter writes now-playing information to the standard logger.
type LogReporter struct{}

func (LogReporter) SetMetadata(m Metadata) error {
	log.Printf("[NowPlaying] %s - %s [%s]", m.Title, m.Artist, m.Album)
	return nil
}

func (LogReporter) SetPositionState(PositionState) error { return nil }

// FromName maps a configuration value to a reporter: "notify", "log", or
// anything else for none.
func FromName(name string) Reporter {
	switch name {
	case "notify":
		return NewNotifyReporter()
	case "log":
		return LogReporter{}
	}
	return nil
}
