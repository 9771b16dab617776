package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultIsValid(t *testing.T) {
	if err := Default().Validate(); err != nil {
		t.Fatalf("Default config failed validation: %v", err)
	}
}

func TestLoadEmptyPathReturnsDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load(\"\") returned error: %v", err)
	}
	if cfg.Window.Width != WindowWidth {
		t.Errorf("Expected width %d, got %d", WindowWidth, cfg.Window.Width)
	}
}

func TestLoadOverridesDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "sketch.yaml")
	data := []byte(`
window:
  width: 640
mandala:
  layers: 5
playlist:
  - title: Interstellar
    genre: Space Rock
    path: songs/interstellar.mp3
`)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("Failed to write config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.Window.Width != 640 {
		t.Errorf("Expected width 640, got %d", cfg.Window.Width)
	}
	if cfg.Window.Height != WindowHeight {
		t.Errorf("Expected untouched height %d, got %d", WindowHeight, cfg.Window.Height)
	}
	if cfg.Mandala.Layers != 5 {
		t.Errorf("Expected 5 mandala layers, got %d", cfg.Mandala.Layers)
	}
	if cfg.Mandala.Schedule.Symmetry.Min != 16 {
		t.Errorf("Expected default symmetry min 16, got %d", cfg.Mandala.Schedule.Symmetry.Min)
	}
	if len(cfg.Playlist) != 1 || cfg.Playlist[0].Genre != "Space Rock" {
		t.Errorf("Unexpected playlist: %+v", cfg.Playlist)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Fatal("Expected error for missing file")
	}
}

func TestValidateRejectsDegenerateValues(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"zero symmetry", func(c *Config) { c.Mandala.Schedule.Symmetry.Min = 0 }},
		{"inverted symmetry", func(c *Config) { c.Eye.Schedule.Symmetry = IntRange{Min: 10, Max: 5} }},
		{"amplification below one", func(c *Config) { c.Mandala.Schedule.MaxAmplification = 0.5 }},
		{"opacity above 100", func(c *Config) { c.Mandala.Schedule.TrailOpacity.Max = 120 }},
		{"respawn beyond threshold", func(c *Config) { c.Particles.Respawn.Max = 900 }},
		{"zero layers", func(c *Config) { c.Eye.Layers = 0 }},
		{"unknown reporter", func(c *Config) { c.Audio.NowPlaying = "dbus" }},
		{"track without path", func(c *Config) { c.Playlist = []TrackConfig{{Title: "x"}} }},
		{"zero window", func(c *Config) { c.Window.Width = 0 }},
		{"zero export width", func(c *Config) { c.Export.Width = 0 }},
		{"negative export height", func(c *Config) { c.Export.Height = -1 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			if err == nil {
				t.Fatal("Expected validation error")
			}
			if !errors.Is(err, ErrInvalid) {
				t.Errorf("Expected ErrInvalid, got %v", err)
			}
		})
	}
}
