package game

import (
	"fmt"
	"image/color"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/iburimskiy/psychedelic-sketches/internal/config"
	"github.com/iburimskiy/psychedelic-sketches/internal/render"
	"github.com/iburimskiy/psychedelic-sketches/internal/schedule"
)

func (g *Game) progressBarRect() (x, y, w, h int) {
	return config.BarMargin, g.height - config.BarBottom, g.width - 2*config.BarMargin, config.BarHeight
}

func (g *Game) drawHUD(screen *ebiten.Image) {
	ebitenutil.DebugPrintAt(screen, g.status(), 12, 8)
	if g.player == nil {
		return
	}
	g.drawButton(screen)
	g.drawProgressBar(screen)
	g.drawSpectrum(screen)
}

func (g *Game) status() string {
	status := fmt.Sprintf("%s | amp %.2f | symmetry %d", g.active().Name(), g.state.Amplification, g.state.Symmetry)
	switch {
	case g.player == nil:
	case !g.player.Loaded():
		status += " | Click the button or press O to open an audio file"
	case g.player.Paused():
		status += " | Paused: " + g.player.Track().Title
	default:
		t := g.player.Track()
		status += fmt.Sprintf(" | Playing: %s - %s", t.Title, t.Artist)
	}
	if g.lastErr != nil {
		status += " | Error: " + g.lastErr.Error()
	}
	return status
}

func (g *Game) drawButton(screen *ebiten.Image) {
	// Button background
	var bgColor color.Color
	if g.buttonPressed {
		bgColor = color.RGBA{R: 60, G: 80, B: 120, A: 255} // Pressed
	} else if g.buttonHovered {
		bgColor = color.RGBA{R: 80, G: 100, B: 140, A: 255} // Hovered
	} else {
		bgColor = color.RGBA{R: 100, G: 120, B: 160, A: 255} // Normal
	}

	vector.DrawFilledRect(screen, config.ButtonX, config.ButtonY, config.ButtonWidth, config.ButtonHeight, bgColor, false)

	borderColor := color.RGBA{R: 150, G: 170, B: 200, A: 255}
	vector.StrokeRect(screen, config.ButtonX, config.ButtonY, config.ButtonWidth, config.ButtonHeight, 2, borderColor, false)

	text := "Open File"
	textWidth := len(text) * 6 // debug font glyph width
	textX := config.ButtonX + (config.ButtonWidth-textWidth)/2
	textY := config.ButtonY + (config.ButtonHeight-16)/2
	ebitenutil.DebugPrintAt(screen, text, textX, textY)
}

func (g *Game) drawProgressBar(screen *ebiten.Image) {
	duration := g.player.Duration()
	if !g.player.Loaded() || duration == 0 {
		return
	}
	barX, barY, barWidth, barHeight := g.progressBarRect()
	position := g.player.Position()
	progress := clamp01(float64(position) / float64(duration))
	hueBase := g.state.Elapsed * 20

	vector.DrawFilledRect(screen, float32(barX), float32(barY), float32(barWidth), float32(barHeight), color.RGBA{R: 25, G: 30, B: 40, A: 200}, false)
	vector.StrokeRect(screen, float32(barX), float32(barY), float32(barWidth), float32(barHeight), 2, color.RGBA{R: 70, G: 80, B: 100, A: 255}, false)

	if progress > 0 {
		fillWidth := progress * float64(barWidth)
		fill := render.HSBA{H: schedule.WrapHue(hueBase + progress*180), S: 80, B: 90, A: 70}
		vector.DrawFilledRect(screen, float32(barX), float32(barY), float32(fillWidth), float32(barHeight), fill, false)
	}

	indicatorX := float64(barX) + progress*float64(barWidth)
	vector.DrawFilledCircle(screen, float32(indicatorX), float32(barY+barHeight/2), 8, color.White, true)
	vector.StrokeCircle(screen, float32(indicatorX), float32(barY+barHeight/2), 8, 2, color.RGBA{R: 100, G: 110, B: 130, A: 255}, true)

	ebitenutil.DebugPrintAt(screen, formatDuration(position), barX, barY+barHeight+5)
	totalTime := formatDuration(duration)
	ebitenutil.DebugPrintAt(screen, totalTime, barX+barWidth-len(totalTime)*6, barY+barHeight+5)

	if g.progressBarHovered {
		mouseX, mouseY := ebiten.CursorPosition()
		mouseTime := time.Duration(clamp01(float64(mouseX-barX)/float64(barWidth)) * float64(duration))
		tooltip := formatDuration(mouseTime)

		tooltipWidth := len(tooltip)*6 + 10
		tooltipX := mouseX - tooltipWidth/2
		tooltipY := mouseY - 25
		if tooltipX < 0 {
			tooltipX = 0
		}
		if tooltipX+tooltipWidth > g.width {
			tooltipX = g.width - tooltipWidth
		}

		vector.DrawFilledRect(screen, float32(tooltipX), float32(tooltipY), float32(tooltipWidth), 20, color.RGBA{A: 200}, false)
		vector.StrokeRect(screen, float32(tooltipX), float32(tooltipY), float32(tooltipWidth), 20, 1, color.RGBA{R: 100, G: 110, B: 130, A: 255}, false)
		ebitenutil.DebugPrintAt(screen, tooltip, tooltipX+5, tooltipY+2)
	}
}

// drawSpectrum draws the analysed bands as a thin strip under the status line.
func (g *Game) drawSpectrum(screen *ebiten.Image) {
	spectrum := g.player.Spectrum()
	if len(spectrum) == 0 || !g.player.Loaded() {
		return
	}
	const stripHeight = 30
	stripX := float64(config.ButtonX + config.ButtonWidth + 20)
	stripWidth := float64(g.width) - stripX - config.BarMargin
	segmentWidth := stripWidth / float64(len(spectrum))
	bottom := float64(config.ButtonY + config.ButtonHeight)

	for i, v := range spectrum {
		h := v * stripHeight
		if h < 2 {
			h = 2
		}
		c := render.HSBA{
			H: schedule.WrapHue(g.state.Elapsed*20 + float64(i)/float64(len(spectrum))*180),
			S: 80,
			B: 90,
			A: 40 + 60*v,
		}
		x := stripX + float64(i)*segmentWidth
		vector.DrawFilledRect(screen, float32(x), float32(bottom-h), float32(segmentWidth-1), float32(h), c, false)
	}
}
