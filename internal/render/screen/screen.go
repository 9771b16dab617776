// Package screen replays render frames onto an ebiten image.
package screen

import (
	"image"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/iburimskiy/psychedelic-sketches/internal/render"
)

var (
	whiteImage    = ebiten.NewImage(3, 3)
	whiteSubImage = whiteImage.SubImage(image.Rect(1, 1, 2, 2)).(*ebiten.Image)
)

func init() {
	whiteImage.Fill(color.White)
}

// Surface draws onto an ebiten image. Vertex and index buffers are reused
// between paths.
type Surface struct {
	dst      *ebiten.Image
	vertices []ebiten.Vertex
	indices  []uint16
}

// New wraps dst.
func New(dst *ebiten.Image) *Surface {
	return &Surface{dst: dst}
}

// Target switches the destination image, e.g. after a resize.
func (s *Surface) Target(dst *ebiten.Image) { s.dst = dst }

func (s *Surface) Size() (int, int) {
	b := s.dst.Bounds()
	return b.Dx(), b.Dy()
}

func (s *Surface) Clear(c color.Color) {
	s.dst.Fill(c)
}

func (s *Surface) Fade(c color.Color) {
	w, h := s.Size()
	vector.DrawFilledRect(s.dst, 0, 0, float32(w), float32(h), c, false)
}

func (s *Surface) Line(from, to render.Point, width float64, c color.Color) {
	vector.StrokeLine(s.dst, float32(from.X), float32(from.Y), float32(to.X), float32(to.Y), float32(width), c, true)
}

func (s *Surface) Path(p render.Path, fill, stroke color.Color, width float64) {
	path := toVectorPath(p)
	if fill != nil {
		s.vertices, s.indices = path.AppendVerticesAndIndicesForFilling(s.vertices[:0], s.indices[:0])
		s.draw(fill)
	}
	if stroke != nil && width > 0 {
		op := &vector.StrokeOptions{
			Width:    float32(width),
			LineJoin: vector.LineJoinRound,
			LineCap:  vector.LineCapRound,
		}
		s.vertices, s.indices = path.AppendVerticesAndIndicesForStroke(s.vertices[:0], s.indices[:0], op)
		s.draw(stroke)
	}
}

func (s *Surface) draw(c color.Color) {
	if len(s.indices) == 0 {
		return
	}
	r, g, b, a := colorScale(c)
	for i := range s.vertices {
		s.vertices[i].SrcX = 1
		s.vertices[i].SrcY = 1
		s.vertices[i].ColorR = r
		s.vertices[i].ColorG = g
		s.vertices[i].ColorB = b
		s.vertices[i].ColorA = a
	}
	op := &ebiten.DrawTrianglesOptions{
		FillRule:  ebiten.EvenOdd,
		AntiAlias: true,
	}
	s.dst.DrawTriangles(s.vertices, s.indices, whiteSubImage, op)
}

// colorScale converts c to straight-alpha float channels.
func colorScale(c color.Color) (r, g, b, a float32) {
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	return float32(n.R) / 0xff, float32(n.G) / 0xff, float32(n.B) / 0xff, float32(n.A) / 0xff
}

func toVectorPath(p render.Path) *vector.Path {
	var path vector.Path
	for _, seg := range p {
		switch seg.Op {
		case render.OpMove:
			path.MoveTo(float32(seg.Pts[0].X), float32(seg.Pts[0].Y))
		case render.OpLine:
			path.LineTo(float32(seg.Pts[0].X), float32(seg.Pts[0].Y))
		case render.OpCubic:
			path.CubicTo(
				float32(seg.Pts[0].X), float32(seg.Pts[0].Y),
				float32(seg.Pts[1].X), float32(seg.Pts[1].Y),
				float32(seg.Pts[2].X), float32(seg.Pts[2].Y),
			)
		case render.OpClose:
			path.Close()
		}
	}
	return &path
}
