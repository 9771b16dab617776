// Package nowplaying reports the current track to the host's media controls
// and routes transport commands (play, pause, previous, next) back to the
// player. Every part of it is optional: without a reporter the session
// silently does nothing.
package nowplaying

import (
	"log"
	"sync"
	"time"
)

// Metadata describes the current track.
type Metadata struct {
	Title      string
	Artist     string
	Album      string
	ArtworkURL string
}

// PositionState describes playback progress.
type PositionState struct {
	Duration time.Duration
	Rate     float64
	Position time.Duration
}

// Action is a transport command coming from the host.
type Action string

const (
	ActionPlay          Action = "play"
	ActionPause         Action = "pause"
	ActionPreviousTrack Action = "previoustrack"
	ActionNextTrack     Action = "nexttrack"
)

// Reporter publishes now-playing information to the host.
type Reporter interface {
	SetMetadata(m Metadata) error
	SetPositionState(p PositionState) error
}

// Session wraps an optional Reporter and the registered action handlers.
// It is safe for concurrent use; the audio callback may dispatch while the
// frame loop reports.
type Session struct {
	mu       sync.Mutex
	reporter Reporter
	handlers map[Action]func()
	last     Metadata
}

// NewSession returns a session backed by r. A nil r yields a session that
// only logs that now-playing reporting is unavailable.
func NewSession(r Reporter) *Session {
	if r == nil {
		log.Printf("[NowPlaying] Warning: reporting not available, OS media controls disabled")
	}
	return &Session{reporter: r, handlers: map[Action]func(){}}
}

// Available reports whether a reporter is attached.
func (s *Session) Available() bool {
	return s != nil && s.reporter != nil
}

// ReportMetadata publishes m. Failures are logged, never returned.
func (s *Session) ReportMetadata(m Metadata) {
	if !s.Available() {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.last = m
	if err := s.reporter.SetMetadata(m); err != nil {
		log.Printf("[NowPlaying] Failed to report metadata for %q: %v", m.Title, err)
	}
}

// Metadata returns the last reported metadata.
func (s *Session) Metadata() Metadata {
	if s == nil {
		return Metadata{}
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.last
}

// ReportPosition publishes p after normalising it.
func (s *Session) ReportPosition(p PositionState) {
	if !s.Available() {
		return
	}
	p = Normalize(p)
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.reporter.SetPositionState(p); err != nil {
		log.Printf("[NowPlaying] Failed to report position: %v", err)
	}
}

// Normalize makes p consistent: non-negative duration, positive rate and a
// position inside [0, Duration].
func Normalize(p PositionState) PositionState {
	if p.Duration < 0 {
		p.Duration = 0
	}
	if p.Rate <= 0 {
		p.Rate = 1
	}
	if p.Position < 0 {
		p.Position = 0
	}
	if p.Position > p.Duration {
		p.Position = p.Duration
	}
	return p
}

// SetActionHandler registers fn for action; a nil fn removes the handler.
// Handlers are kept even without a reporter so local key bindings work.
func (s *Session) SetActionHandler(action Action, fn func()) {
	if s == nil {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if fn == nil {
		delete(s.handlers, action)
		return
	}
	s.handlers[action] = fn
}

// Dispatch runs the handler registered for action and reports whether one
// existed.
func (s *Session) Dispatch(action Action) bool {
	if s == nil {
		return false
	}
	s.mu.Lock()
	fn := s.handlers[action]
	s.mu.Unlock()
	if fn == nil {
		return false
	}
	fn()
	return true
}
