// Package offscreen renders frames without a window, for exports and tests.
package offscreen

import (
	"image"
	"image/color"
	"image/draw"

	"github.com/fogleman/gg"

	"github.com/iburimskiy/psychedelic-sketches/internal/render"
)

// Surface is a gg raster canvas.
type Surface struct {
	ctx *gg.Context
}

// New returns a black canvas of the given size.
func New(width, height int) *Surface {
	s := &Surface{ctx: gg.NewContext(width, height)}
	s.Clear(color.Black)
	return s
}

func (s *Surface) Size() (int, int) {
	return s.ctx.Width(), s.ctx.Height()
}

func (s *Surface) Clear(c color.Color) {
	s.ctx.SetColor(c)
	s.ctx.Clear()
}

func (s *Surface) Fade(c color.Color) {
	s.ctx.SetColor(c)
	s.ctx.DrawRectangle(0, 0, float64(s.ctx.Width()), float64(s.ctx.Height()))
	s.ctx.Fill()
}

func (s *Surface) Line(from, to render.Point, width float64, c color.Color) {
	s.ctx.SetColor(c)
	s.ctx.SetLineWidth(width)
	s.ctx.DrawLine(from.X, from.Y, to.X, to.Y)
	s.ctx.Stroke()
}

func (s *Surface) Path(p render.Path, fill, stroke color.Color, width float64) {
	for _, seg := range p {
		switch seg.Op {
		case render.OpMove:
			s.ctx.MoveTo(seg.Pts[0].X, seg.Pts[0].Y)
		case render.OpLine:
			s.ctx.LineTo(seg.Pts[0].X, seg.Pts[0].Y)
		case render.OpCubic:
			s.ctx.CubicTo(seg.Pts[0].X, seg.Pts[0].Y, seg.Pts[1].X, seg.Pts[1].Y, seg.Pts[2].X, seg.Pts[2].Y)
		case render.OpClose:
			s.ctx.ClosePath()
		}
	}
	if fill != nil {
		s.ctx.SetColor(fill)
		s.ctx.FillPreserve()
	}
	if stroke != nil && width > 0 {
		s.ctx.SetColor(stroke)
		s.ctx.SetLineWidth(width)
		s.ctx.StrokePreserve()
	}
	s.ctx.ClearPath()
}

// Snapshot returns a copy of the current pixels.
func (s *Surface) Snapshot() *image.RGBA {
	src := s.ctx.Image()
	dst := image.NewRGBA(src.Bounds())
	draw.Draw(dst, dst.Bounds(), src, src.Bounds().Min, draw.Src)
	return dst
}

// SavePNG writes the current pixels to path.
func (s *Surface) SavePNG(path string) error {
	return s.ctx.SavePNG(path)
}
