package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config is the runtime configuration loaded from a YAML file.
//
// Every section has a default (see Default), so a file only needs to list
// the values it overrides.
type Config struct {
	Window    WindowConfig   `yaml:"window"`
	Mandala   MandalaConfig  `yaml:"mandala"`
	Eye       EyeConfig      `yaml:"eye"`
	Particles ParticleConfig `yaml:"particles"`
	Audio     AudioConfig    `yaml:"audio"`
	Playlist  []TrackConfig  `yaml:"playlist"`
	Export    ExportConfig   `yaml:"export"`
}

// WindowConfig describes the ebiten window.
type WindowConfig struct {
	Width     int    `yaml:"width"`
	Height    int    `yaml:"height"`
	Title     string `yaml:"title"`
	Resizable bool   `yaml:"resizable"`
	TPS       int    `yaml:"tps"`
}

// Range is a closed [Min, Max] interval.
type Range struct {
	Min float64 `yaml:"min"`
	Max float64 `yaml:"max"`
}

// IntRange is a closed integer interval.
type IntRange struct {
	Min int `yaml:"min"`
	Max int `yaml:"max"`
}

// ScheduleConfig holds the knobs shared by both sketches' parameter schedules.
type ScheduleConfig struct {
	MaxAmplification float64  `yaml:"maxAmplification"`
	RotationRange    float64  `yaml:"rotationRange"`
	RotationFreq     float64  `yaml:"rotationFreq"`
	DistortionFreq   float64  `yaml:"distortionFreq"`
	Distortion       Range    `yaml:"distortion"`
	Symmetry         IntRange `yaml:"symmetry"`
	ColorSpeed       float64  `yaml:"colorSpeed"`
	LayerHueOffset   float64  `yaml:"layerHueOffset"`
	TrailOpacity     Range    `yaml:"trailOpacity"`
}

// MandalaConfig configures the nested mandala sketch.
type MandalaConfig struct {
	Schedule   ScheduleConfig `yaml:"schedule"`
	Layers     int            `yaml:"layers"`
	LayerDecay float64        `yaml:"layerDecay"`
	Radius     float64        `yaml:"radius"`
}

// EyeConfig configures the blinking eye sketch.
type EyeConfig struct {
	Schedule      ScheduleConfig `yaml:"schedule"`
	Layers        int            `yaml:"layers"`
	LayerDecay    float64        `yaml:"layerDecay"`
	CoreSize      float64        `yaml:"coreSize"`
	BlinkSpeed    float64        `yaml:"blinkSpeed"`
	OpenSmoothing float64        `yaml:"openSmoothing"`
	BaseSymmetry  float64        `yaml:"baseSymmetry"`
	Crystals      int            `yaml:"crystals"`
}

// ParticleConfig configures the background crystal set.
type ParticleConfig struct {
	Distance    Range   `yaml:"distance"`
	Size        Range   `yaml:"size"`
	Speed       Range   `yaml:"speed"`
	Spin        Range   `yaml:"spin"`
	Pulse       Range   `yaml:"pulse"`
	Drift       float64 `yaml:"drift"`
	HueStep     float64 `yaml:"hueStep"`
	RespawnDist float64 `yaml:"respawnDist"`
	Respawn     Range   `yaml:"respawn"`
}

// AudioConfig controls the optional player and audio reactivity.
type AudioConfig struct {
	Enabled     bool    `yaml:"enabled"`
	Reactive    bool    `yaml:"reactive"`
	Gain        float64 `yaml:"gain"`
	NowPlaying  string  `yaml:"nowPlaying"` // "notify", "log" or "none"
	AutoAdvance bool    `yaml:"autoAdvance"`
}

// TrackConfig is a playlist entry.
type TrackConfig struct {
	Title  string `yaml:"title"`
	Artist string `yaml:"artist"`
	Genre  string `yaml:"genre"`
	Cover  string `yaml:"cover"`
	Path   string `yaml:"path"`
}

// ExportConfig controls headless rendering.
type ExportConfig struct {
	Width  int     `yaml:"width"`
	Height int     `yaml:"height"`
	Frames int     `yaml:"frames"`
	FPS    float64 `yaml:"fps"`
	Seed   uint64  `yaml:"seed"`
}

// Default returns the configuration the sketches were tuned with.
func Default() *Config {
	return &Config{
		Window: WindowConfig{
			Width:     WindowWidth,
			Height:    WindowHeight,
			Title:     "Psychedelic Sketches - Tab: switch, Space: play/pause, O: open, Esc/Q: quit",
			Resizable: true,
			TPS:       60,
		},
		Mandala: MandalaConfig{
			Schedule: ScheduleConfig{
				MaxAmplification: 5,
				RotationRange:    10,
				RotationFreq:     0.1,
				DistortionFreq:   0.05,
				Distortion:       Range{Min: 12, Max: 16},
				Symmetry:         IntRange{Min: 16, Max: 60},
				ColorSpeed:       20,
				LayerHueOffset:   40,
				TrailOpacity:     Range{Min: 10, Max: 30},
			},
			Layers:     3,
			LayerDecay: 0.85,
			Radius:     300,
		},
		Eye: EyeConfig{
			Schedule: ScheduleConfig{
				MaxAmplification: 4,
				RotationRange:    50,
				RotationFreq:     0.2,
				DistortionFreq:   0.5,
				Distortion:       Range{Min: -20, Max: 20},
				Symmetry:         IntRange{Min: 12, Max: 144},
				ColorSpeed:       30,
				LayerHueOffset:   90,
				TrailOpacity:     Range{Min: 5, Max: 5},
			},
			Layers:        3,
			LayerDecay:    0.85,
			CoreSize:      180,
			BlinkSpeed:    0.7,
			OpenSmoothing: 0.1,
			BaseSymmetry:  36,
			Crystals:      40,
		},
		Particles: ParticleConfig{
			Distance:    Range{Min: 100, Max: 400},
			Size:        Range{Min: 8, Max: 20},
			Speed:       Range{Min: 0.8, Max: 2.5},
			Spin:        Range{Min: -0.5, Max: 0.5},
			Pulse:       Range{Min: 20, Max: 60},
			Drift:       0.3,
			HueStep:     0.2,
			RespawnDist: 500,
			Respawn:     Range{Min: 50, Max: 150},
		},
		Audio: AudioConfig{
			Enabled:     true,
			Reactive:    true,
			Gain:        0.5,
			NowPlaying:  "notify",
			AutoAdvance: true,
		},
		Export: ExportConfig{
			Width:  800,
			Height: 800,
			Frames: 120,
			FPS:    30,
			Seed:   1,
		},
	}
}

// Load reads a YAML configuration file on top of Default.
//
// An empty path returns the defaults unchanged.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

// ErrInvalid is wrapped by every Validate failure.
var ErrInvalid = errors.New("invalid configuration")

// Validate checks ranges that would otherwise produce degenerate layouts.
func (c *Config) Validate() error {
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		return fmt.Errorf("%w: window size %dx%d", ErrInvalid, c.Window.Width, c.Window.Height)
	}
	if c.Window.TPS <= 0 {
		return fmt.Errorf("%w: tps must be positive", ErrInvalid)
	}
	if err := c.Mandala.Schedule.validate("mandala"); err != nil {
		return err
	}
	if err := c.Eye.Schedule.validate("eye"); err != nil {
		return err
	}
	if c.Mandala.Layers < 1 || c.Eye.Layers < 1 {
		return fmt.Errorf("%w: layers must be at least 1", ErrInvalid)
	}
	if c.Mandala.LayerDecay <= 0 || c.Mandala.LayerDecay > 1 || c.Eye.LayerDecay <= 0 || c.Eye.LayerDecay > 1 {
		return fmt.Errorf("%w: layerDecay must be in (0,1]", ErrInvalid)
	}
	if c.Eye.Crystals < 0 {
		return fmt.Errorf("%w: negative crystal count", ErrInvalid)
	}
	p := c.Particles
	if p.RespawnDist <= 0 {
		return fmt.Errorf("%w: respawnDist must be positive", ErrInvalid)
	}
	if p.Respawn.Min > p.Respawn.Max || p.Respawn.Max > p.RespawnDist {
		return fmt.Errorf("%w: respawn range [%g,%g] must lie below respawnDist %g",
			ErrInvalid, p.Respawn.Min, p.Respawn.Max, p.RespawnDist)
	}
	switch c.Audio.NowPlaying {
	case "notify", "log", "none", "":
	default:
		return fmt.Errorf("%w: unknown nowPlaying reporter %q", ErrInvalid, c.Audio.NowPlaying)
	}
	for i, t := range c.Playlist {
		if t.Path == "" {
			return fmt.Errorf("%w: playlist entry %d has no path", ErrInvalid, i)
		}
	}
	if c.Export.Width <= 0 || c.Export.Height <= 0 {
		return fmt.Errorf("%w: export size %dx%d must be positive", ErrInvalid, c.Export.Width, c.Export.Height)
	}
	if c.Export.Frames < 0 || c.Export.FPS <= 0 {
		return fmt.Errorf("%w: export needs a positive fps", ErrInvalid)
	}
	return nil
}

func (s ScheduleConfig) validate(name string) error {
	if s.MaxAmplification < 1 {
		return fmt.Errorf("%w: %s maxAmplification must be >= 1", ErrInvalid, name)
	}
	if s.Symmetry.Min < 1 || s.Symmetry.Min > s.Symmetry.Max {
		return fmt.Errorf("%w: %s symmetry range [%d,%d]", ErrInvalid, name, s.Symmetry.Min, s.Symmetry.Max)
	}
	if s.TrailOpacity.Min < 0 || s.TrailOpacity.Max > 100 || s.TrailOpacity.Min > s.TrailOpacity.Max {
		return fmt.Errorf("%w: %s trailOpacity must be within [0,100]", ErrInvalid, name)
	}
	return nil
}
