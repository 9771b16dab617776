// Package game hosts the sketches in an ebiten window together with the
// audio player, its HUD and the now-playing session.
package game

import (
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/ncruces/zenity"

	"github.com/iburimskiy/psychedelic-sketches/internal/config"
	"github.com/iburimskiy/psychedelic-sketches/internal/nowplaying"
	"github.com/iburimskiy/psychedelic-sketches/internal/render"
	"github.com/iburimskiy/psychedelic-sketches/internal/render/screen"
	"github.com/iburimskiy/psychedelic-sketches/internal/sketch"
)

// positionReportTicks is how often the playback position is reported.
const positionReportTicks = 30

// Game implements ebiten.Game.
type Game struct {
	cfg *config.Config

	// sketches
	sketches []sketch.Sketch
	current  int
	state    sketch.AnimationState
	pending  render.Frame
	start    time.Time

	// canvas keeps the trail between frames; the HUD is drawn on top of it
	// directly on the screen.
	canvas  *ebiten.Image
	surface *screen.Surface
	width   int
	height  int

	// audio
	player   *Player
	playlist *Playlist
	session  *nowplaying.Session
	level    float64
	ticks    int

	// progress bar
	progressBarHovered  bool
	progressBarDragging bool

	// input edge detection
	prevKey map[ebiten.Key]bool

	// button state
	buttonHovered bool
	buttonPressed bool

	hudVisible bool
	lastErr    error
}

// New builds a game running the sketch named first.
func New(cfg *config.Config, first string, seed int64) (*Game, error) {
	g := &Game{
		cfg:        cfg,
		prevKey:    map[ebiten.Key]bool{},
		start:      time.Now(),
		width:      cfg.Window.Width,
		height:     cfg.Window.Height,
		hudVisible: true,
		playlist:   NewPlaylist(cfg.Playlist),
	}

	found := false
	for _, name := range sketch.Names() {
		sk, err := sketch.New(name, cfg, seed)
		if err != nil {
			return nil, err
		}
		if name == first {
			g.current = len(g.sketches)
			found = true
		}
		g.sketches = append(g.sketches, sk)
	}
	if !found {
		return nil, fmt.Errorf("%w: %q", sketch.ErrUnknownSketch, first)
	}

	g.resetCanvas()

	if cfg.Audio.Enabled {
		g.player = NewPlayer()
		g.session = nowplaying.NewSession(nowplaying.FromName(cfg.Audio.NowPlaying))
		g.registerActions()
		if g.playlist.Len() > 0 {
			if t, err := g.playlist.Current(); err == nil {
				g.play(t)
			}
		}
	}
	return g, nil
}

// registerActions routes transport commands to the player. Keyboard
// shortcuts dispatch through the same handlers.
func (g *Game) registerActions() {
	g.session.SetActionHandler(nowplaying.ActionPlay, func() { g.player.SetPaused(false) })
	g.session.SetActionHandler(nowplaying.ActionPause, func() { g.player.SetPaused(true) })
	g.session.SetActionHandler(nowplaying.ActionNextTrack, func() {
		if t, err := g.playlist.Next(); err == nil {
			g.play(t)
		}
	})
	g.session.SetActionHandler(nowplaying.ActionPreviousTrack, func() {
		if t, err := g.playlist.Previous(); err == nil {
			g.play(t)
		}
	})
}

func (g *Game) play(t Track) {
	if err := g.player.Load(t); err != nil {
		log.Printf("[Game] Failed to play %s: %v", t.Path, err)
		g.lastErr = err
		return
	}
	g.lastErr = nil
	g.session.ReportMetadata(t.Metadata())
	g.reportPosition()
}

func (g *Game) reportPosition() {
	g.session.ReportPosition(nowplaying.PositionState{
		Duration: g.player.Duration(),
		Rate:     1,
		Position: g.player.Position(),
	})
}

func (g *Game) active() sketch.Sketch { return g.sketches[g.current] }

// resetCanvas (re)creates the trail canvas and restarts the current sketch
// at the current size.
func (g *Game) resetCanvas() {
	if g.canvas != nil {
		g.canvas.Deallocate()
	}
	g.canvas = ebiten.NewImage(g.width, g.height)
	if g.surface == nil {
		g.surface = screen.New(g.canvas)
	} else {
		g.surface.Target(g.canvas)
	}

	sk := g.active()
	if g.state.Width == 0 {
		g.state = sk.Init(g.width, g.height)
	}
	var f render.Frame
	g.state, f = sk.Resize(g.state, g.width, g.height)
	g.pending = f
}

func (g *Game) switchSketch() {
	g.current = (g.current + 1) % len(g.sketches)
	g.state = g.active().Init(g.width, g.height)
	g.resetCanvas()
	log.Printf("[Game] Switched to %s", g.active().Name())
}

func (g *Game) justPressed(k ebiten.Key) bool {
	pressed := ebiten.IsKeyPressed(k)
	jp := pressed && !g.prevKey[k]
	g.prevKey[k] = pressed
	return jp
}

func (g *Game) Update() error {
	if g.canvas.Bounds().Dx() != g.width || g.canvas.Bounds().Dy() != g.height {
		g.resetCanvas()
	}

	mouseX, mouseY := ebiten.CursorPosition()
	if g.player != nil {
		if err := g.updateAudio(mouseX, mouseY); err != nil {
			return err
		}
	}

	if g.justPressed(ebiten.KeyTab) {
		g.switchSketch()
	}
	if g.justPressed(ebiten.KeyH) {
		g.hudVisible = !g.hudVisible
		if g.hudVisible {
			ebiten.SetCursorMode(ebiten.CursorModeVisible)
		} else {
			ebiten.SetCursorMode(ebiten.CursorModeHidden)
		}
	}
	if g.justPressed(ebiten.KeyEscape) || g.justPressed(ebiten.KeyQ) {
		return ebiten.Termination
	}

	in := sketch.Input{
		Elapsed: time.Since(g.start),
		Pointer: render.Point{X: float64(mouseX), Y: float64(mouseY)},
		Level:   g.level,
	}
	var f render.Frame
	g.state, f = g.active().ComputeFrame(g.state, in)
	g.pending.Append(f)
	return nil
}

func (g *Game) updateAudio(mouseX, mouseY int) error {
	// Handle button interactions
	g.buttonHovered = g.hudVisible &&
		mouseX >= config.ButtonX && mouseX <= config.ButtonX+config.ButtonWidth &&
		mouseY >= config.ButtonY && mouseY <= config.ButtonY+config.ButtonHeight

	if g.buttonHovered && inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		g.buttonPressed = true
	}
	if inpututil.IsMouseButtonJustReleased(ebiten.MouseButtonLeft) {
		if g.buttonPressed && g.buttonHovered {
			g.openFileDialog()
		}
		g.buttonPressed = false
	}
	if g.justPressed(ebiten.KeyO) {
		g.openFileDialog()
	}

	g.updateProgressBar(mouseX, mouseY)

	if g.justPressed(ebiten.KeySpace) {
		if g.player.Paused() {
			g.session.Dispatch(nowplaying.ActionPlay)
		} else {
			g.session.Dispatch(nowplaying.ActionPause)
		}
	}
	if g.justPressed(ebiten.KeyN) || g.justPressed(ebiten.KeyArrowRight) {
		g.session.Dispatch(nowplaying.ActionNextTrack)
	}
	if g.justPressed(ebiten.KeyP) || g.justPressed(ebiten.KeyArrowLeft) {
		g.session.Dispatch(nowplaying.ActionPreviousTrack)
	}

	if g.player.Finished() {
		log.Printf("[Game] Track %q finished", g.player.Track().Title)
		g.player.Stop()
		if g.cfg.Audio.AutoAdvance && g.playlist.Len() > 1 {
			g.session.Dispatch(nowplaying.ActionNextTrack)
		}
	}

	level := g.player.Analyze()
	if g.cfg.Audio.Reactive {
		g.level = level
	} else {
		g.level = 0
	}

	g.ticks++
	if g.player.Loaded() && g.ticks%positionReportTicks == 0 {
		g.reportPosition()
	}
	return nil
}

func (g *Game) updateProgressBar(mouseX, mouseY int) {
	barX, barY, barWidth, barHeight := g.progressBarRect()

	g.progressBarHovered = g.hudVisible &&
		mouseX >= barX && mouseX <= barX+barWidth &&
		mouseY >= barY && mouseY <= barY+barHeight

	if inpututil.IsMouseButtonJustReleased(ebiten.MouseButtonLeft) {
		g.progressBarDragging = false
	}
	if !g.player.Loaded() || g.player.Duration() <= 0 {
		return
	}

	if g.progressBarHovered && inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		g.progressBarDragging = true
		g.seek(float64(mouseX-barX) / float64(barWidth))
		return
	}

	if g.progressBarDragging {
		progress := clamp01(float64(mouseX-barX) / float64(barWidth))
		current := float64(g.player.Position()) / float64(g.player.Duration())
		// Only seek if the position changed significantly (avoid micro-seeks)
		if progress-current > 0.01 || current-progress > 0.01 {
			g.seek(progress)
		}
	}
}

func (g *Game) seek(progress float64) {
	if err := g.player.Seek(progress); err != nil {
		g.lastErr = err
		return
	}
	g.reportPosition()
}

func (g *Game) openFileDialog() {
	filename, err := zenity.SelectFile(
		zenity.Title("Open Audio File"),
		zenity.FileFilters{{
			Name:     "Audio",
			Patterns: []string{"*.wav", "*.mp3", "*.flac"},
		}},
	)
	if err != nil {
		if !errors.Is(err, zenity.ErrCanceled) {
			g.lastErr = err
		}
		return
	}

	log.Printf("[Game] Selected file %s", filename)
	t := trackFromFile(filename)
	g.playlist.Add(t)
	g.play(t)
}

func (g *Game) Draw(dst *ebiten.Image) {
	render.Replay(g.surface, g.pending)
	g.pending = render.Frame{}

	dst.DrawImage(g.canvas, nil)
	if g.hudVisible {
		g.drawHUD(dst)
	}
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	if outsideWidth > 0 && outsideHeight > 0 {
		g.width, g.height = outsideWidth, outsideHeight
	}
	return g.width, g.height
}

// Close stops playback.
func (g *Game) Close() {
	if g.player != nil {
		g.player.Stop()
	}
}
