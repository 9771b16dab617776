package nowplaying

import (
	"errors"
	"testing"
	"time"

	"github.com/ncruces/zenity"
)

type fakeReporter struct {
	metadata  []Metadata
	positions []PositionState
	err       error
}

func (f *fakeReporter) SetMetadata(m Metadata) error {
	f.metadata = append(f.metadata, m)
	return f.err
}

func (f *fakeReporter) SetPositionState(p PositionState) error {
	f.positions = append(f.positions, p)
	return f.err
}

func TestSessionWithoutReporterIsNoop(t *testing.T) {
	s := NewSession(nil)
	if s.Available() {
		t.Fatal("Session without reporter should not be available")
	}
	s.ReportMetadata(Metadata{Title: "Interstellar"})
	s.ReportPosition(PositionState{Duration: time.Minute, Rate: 1})

	played := false
	s.SetActionHandler(ActionPlay, func() { played = true })
	if !s.Dispatch(ActionPlay) || !played {
		t.Error("Local handlers should still run without a reporter")
	}
}

func TestNilSessionIsSafe(t *testing.T) {
	var s *Session
	s.ReportMetadata(Metadata{Title: "x"})
	s.ReportPosition(PositionState{})
	s.SetActionHandler(ActionPause, func() {})
	if s.Dispatch(ActionPause) {
		t.Error("Dispatch on nil session should report no handler")
	}
	if s.Available() {
		t.Error("nil session should not be available")
	}
}

func TestSessionReportsMetadata(t *testing.T) {
	r := &fakeReporter{}
	s := NewSession(r)
	m := Metadata{Title: "Lucifer Sam", Artist: "George Singer", Album: "Psych", ArtworkURL: "covers/lucifer.png"}
	s.ReportMetadata(m)

	if len(r.metadata) != 1 || r.metadata[0] != m {
		t.Fatalf("Reporter got %+v, want [%+v]", r.metadata, m)
	}
	if s.Metadata() != m {
		t.Errorf("Metadata() = %+v, want %+v", s.Metadata(), m)
	}
}

func TestReporterErrorsAreSwallowed(t *testing.T) {
	r := &fakeReporter{err: errors.New("no media session")}
	s := NewSession(r)
	s.ReportMetadata(Metadata{Title: "x"})
	s.ReportPosition(PositionState{Duration: time.Second, Rate: 1})
	if len(r.metadata) != 1 || len(r.positions) != 1 {
		t.Errorf("Expected reporter to be called despite errors")
	}
}

func TestNormalize(t *testing.T) {
	tests := []struct {
		name string
		in   PositionState
		want PositionState
	}{
		{"valid", PositionState{Duration: time.Minute, Rate: 1, Position: time.Second}, PositionState{Duration: time.Minute, Rate: 1, Position: time.Second}},
		{"zero rate", PositionState{Duration: time.Minute, Position: time.Second}, PositionState{Duration: time.Minute, Rate: 1, Position: time.Second}},
		{"position past end", PositionState{Duration: time.Minute, Rate: 2, Position: 2 * time.Minute}, PositionState{Duration: time.Minute, Rate: 2, Position: time.Minute}},
		{"negative", PositionState{Duration: -time.Second, Rate: -1, Position: -time.Second}, PositionState{Rate: 1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Normalize(tt.in); got != tt.want {
				t.Errorf("Normalize(%+v) = %+v, want %+v", tt.in, got, tt.want)
			}
		})
	}
}

func TestActionHandlers(t *testing.T) {
	s := NewSession(&fakeReporter{})
	var calls []Action
	for _, a := range []Action{ActionPlay, ActionPause, ActionPreviousTrack, ActionNextTrack} {
		a := a
		s.SetActionHandler(a, func() { calls = append(calls, a) })
	}

	s.Dispatch(ActionNextTrack)
	s.Dispatch(ActionPreviousTrack)
	if len(calls) != 2 || calls[0] != ActionNextTrack || calls[1] != ActionPreviousTrack {
		t.Errorf("Unexpected dispatch order %v", calls)
	}

	s.SetActionHandler(ActionNextTrack, nil)
	if s.Dispatch(ActionNextTrack) {
		t.Error("Cleared handler should not run")
	}
	if s.Dispatch(Action("seekforward")) {
		t.Error("Unregistered action should not run")
	}
}

func TestNotifyReporterText(t *testing.T) {
	var got string
	var nopts int
	r := &NotifyReporter{notify: func(text string, options ...zenity.Option) error {
		got = text
		nopts = len(options)
		return nil
	}}

	if err := r.SetMetadata(Metadata{Title: "Astronomy", Artist: "George Singer", Album: "Space Rock", ArtworkURL: "cover.png"}); err != nil {
		t.Fatalf("SetMetadata returned error: %v", err)
	}
	if want := "Astronomy - George Singer (Space Rock)"; got != want {
		t.Errorf("Notification text = %q, want %q", got, want)
	}
	if nopts != 3 {
		t.Errorf("Expected title, icon and artwork options, got %d", nopts)
	}

	p := PositionState{Duration: time.Minute, Rate: 1, Position: 5 * time.Second}
	_ = r.SetPositionState(p)
	if r.Position() != p {
		t.Errorf("Position() = %+v, want %+v", r.Position(), p)
	}
}

func TestFromName(t *testing.T) {
	if _, ok := FromName("notify").(*NotifyReporter); !ok {
		t.Error("FromName(notify) should return a NotifyReporter")
	}
	if _, ok := FromName("log").(LogReporter); !ok {
		t.Error("FromName(log) should return a LogReporter")
	}
	if FromName("none") != nil {
		t.Error("FromName(none) should return nil")
	}
}
