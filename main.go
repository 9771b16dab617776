package main

import (
	"errors"
	"flag"
	"log"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/iburimskiy/psychedelic-sketches/internal/config"
	"github.com/iburimskiy/psychedelic-sketches/internal/game"
	"github.com/iburimskiy/psychedelic-sketches/internal/render/offscreen"
	"github.com/iburimskiy/psychedelic-sketches/internal/sketch"
)

func main() {
	configPath := flag.String("config", "", "path to a YAML config file")
	sketchName := flag.String("sketch", config.DefaultSketch, "sketch to run (mandala, eye)")
	exportPath := flag.String("export", "", "render headlessly to this .png/.apng file instead of opening a window")
	frames := flag.Int("frames", 0, "number of frames to export (0: use config)")
	seed := flag.Int64("seed", 0, "noise seed (0: use config)")
	audio := flag.Bool("audio", true, "enable the audio player")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("[Main] %v", err)
	}
	if *frames > 0 {
		cfg.Export.Frames = *frames
	}
	if *seed != 0 {
		cfg.Export.Seed = uint64(*seed)
	}
	if !*audio {
		cfg.Audio.Enabled = false
	}

	if *exportPath != "" {
		sk, err := sketch.New(*sketchName, cfg, int64(cfg.Export.Seed))
		if err != nil {
			log.Fatalf("[Main] %v", err)
		}
		opts := offscreen.Options{
			Width:  cfg.Export.Width,
			Height: cfg.Export.Height,
			Frames: cfg.Export.Frames,
			FPS:    cfg.Export.FPS,
		}
		if err := offscreen.Export(sk, *exportPath, opts); err != nil {
			log.Fatalf("[Main] %v", err)
		}
		return
	}

	ebiten.SetWindowSize(cfg.Window.Width, cfg.Window.Height)
	ebiten.SetWindowTitle(cfg.Window.Title)
	if cfg.Window.Resizable {
		ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	}
	ebiten.SetTPS(cfg.Window.TPS)

	g, err := game.New(cfg, *sketchName, int64(cfg.Export.Seed))
	if err != nil {
		log.Fatalf("[Main] %v", err)
	}
	defer g.Close()

	if err := ebiten.RunGame(g); err != nil && !errors.Is(err, ebiten.Termination) {
		log.Fatalf("[Main] %v", err)
	}
}
