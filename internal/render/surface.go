package render

import "image/color"

// Surface is a raster target able to execute a Frame.
type Surface interface {
	Size() (width, height int)
	Clear(c color.Color)
	Fade(c color.Color)
	Line(from, to Point, width float64, c color.Color)
	// Path fills and then strokes p. A nil colour skips that pass.
	Path(p Path, fill, stroke color.Color, width float64)
}

// Replay executes every command of f on s in order.
func Replay(s Surface, f Frame) {
	for _, c := range f.Commands {
		switch c.Kind {
		case KindClear:
			s.Clear(c.Color.NRGBA())
		case KindFade:
			s.Fade(c.Color.NRGBA())
		case KindLine:
			s.Line(c.From, c.To, c.Width, c.Color.NRGBA())
		case KindPath:
			var fill, stroke color.Color
			if c.Style.Fill != nil {
				fill = c.Style.Fill.NRGBA()
			}
			if c.Style.Stroke != nil {
				stroke = c.Style.Stroke.NRGBA()
			}
			s.Path(c.Path, fill, stroke, c.Style.Weight)
		}
	}
}
