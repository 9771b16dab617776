package render

import "math"

// Kind identifies a command.
type Kind uint8

const (
	KindClear Kind = iota
	KindFade
	KindLine
	KindPath
)

// Op is a path segment operation.
type Op uint8

const (
	OpMove Op = iota
	OpLine
	OpCubic
	OpClose
)

// Segment is one path operation. OpMove and OpLine use Pts[0]; OpCubic uses
// two control points followed by the end point.
type Segment struct {
	Op  Op
	Pts [3]Point
}

// Path is a list of segments in output space.
type Path []Segment

// Style is a stroke/fill pair. A nil colour disables that part.
type Style struct {
	Stroke *HSBA
	Fill   *HSBA
	Weight float64
}

// Stroked returns an outline-only style.
func Stroked(c HSBA, weight float64) Style {
	return Style{Stroke: &c, Weight: weight}
}

// Filled returns a fill-only style.
func Filled(c HSBA) Style {
	return Style{Fill: &c}
}

// WithFill returns s with fill c.
func (s Style) WithFill(c HSBA) Style {
	s.Fill = &c
	return s
}

// Command is a single drawing instruction, already in output space.
type Command struct {
	Kind  Kind
	Color HSBA
	From  Point
	To    Point
	Width float64
	Path  Path
	Style Style
}

// Frame is the ordered list of commands produced for one frame.
type Frame struct {
	Commands []Command
}

// Len returns the number of commands.
func (f *Frame) Len() int { return len(f.Commands) }

// Append adds every command of g after the ones already in f.
func (f *Frame) Append(g Frame) {
	f.Commands = append(f.Commands, g.Commands...)
}

// Clear replaces every pixel with c.
func (f *Frame) Clear(c HSBA) {
	f.Commands = append(f.Commands, Command{Kind: KindClear, Color: c})
}

// Fade paints a translucent black rectangle over the whole surface,
// leaving a trail of the previous frames.
func (f *Frame) Fade(alpha float64) {
	f.Commands = append(f.Commands, Command{Kind: KindFade, Color: HSBA{A: alpha}})
}

// Line draws a segment in t's local space. Lines have no fill.
func (f *Frame) Line(t Transform, x1, y1, x2, y2 float64, st Style) {
	if st.Stroke == nil {
		return
	}
	f.Commands = append(f.Commands, Command{
		Kind:  KindLine,
		Color: *st.Stroke,
		From:  t.Apply(Point{X: x1, Y: y1}),
		To:    t.Apply(Point{X: x2, Y: y2}),
		Width: st.Weight * t.Factor(),
	})
}

// kappa places cubic control points for a quarter ellipse.
const kappa = 0.5522847498

// Ellipse draws an ellipse centred at (cx, cy) with diameters w and h.
func (f *Frame) Ellipse(t Transform, cx, cy, w, h float64, st Style) {
	rx, ry := w/2, h/2
	ox, oy := rx*kappa, ry*kappa
	b := f.Shape(t)
	b.MoveTo(cx+rx, cy)
	b.BezierTo(cx+rx, cy+oy, cx+ox, cy+ry, cx, cy+ry)
	b.BezierTo(cx-ox, cy+ry, cx-rx, cy+oy, cx-rx, cy)
	b.BezierTo(cx-rx, cy-oy, cx-ox, cy-ry, cx, cy-ry)
	b.BezierTo(cx+ox, cy-ry, cx+rx, cy-oy, cx+rx, cy)
	b.Close()
	b.Draw(st)
}

// Triangle draws a closed triangle.
func (f *Frame) Triangle(t Transform, x1, y1, x2, y2, x3, y3 float64, st Style) {
	f.Polygon(t, []Point{{X: x1, Y: y1}, {X: x2, Y: y2}, {X: x3, Y: y3}}, st)
}

// Polygon draws a closed polygon through pts.
func (f *Frame) Polygon(t Transform, pts []Point, st Style) {
	if len(pts) < 2 {
		return
	}
	b := f.Shape(t)
	b.MoveTo(pts[0].X, pts[0].Y)
	for _, p := range pts[1:] {
		b.LineTo(p.X, p.Y)
	}
	b.Close()
	b.Draw(st)
}

// RegularPolygon draws an n-gon of circumradius r around the local origin.
func (f *Frame) RegularPolygon(t Transform, n int, r float64, st Style) {
	if n < 3 {
		return
	}
	pts := make([]Point, n)
	for i := range pts {
		a := float64(i) * 2 * math.Pi / float64(n)
		pts[i] = Point{X: r * math.Cos(a), Y: r * math.Sin(a)}
	}
	f.Polygon(t, pts, st)
}

// ShapeBuilder accumulates a path in t's local space.
type ShapeBuilder struct {
	f    *Frame
	t    Transform
	path Path
}

// Shape starts a new path.
func (f *Frame) Shape(t Transform) *ShapeBuilder {
	return &ShapeBuilder{f: f, t: t}
}

func (b *ShapeBuilder) MoveTo(x, y float64) {
	b.path = append(b.path, Segment{Op: OpMove, Pts: [3]Point{b.t.Apply(Point{X: x, Y: y})}})
}

func (b *ShapeBuilder) LineTo(x, y float64) {
	b.path = append(b.path, Segment{Op: OpLine, Pts: [3]Point{b.t.Apply(Point{X: x, Y: y})}})
}

// BezierTo adds a cubic segment with control points (x1,y1), (x2,y2)
// ending at (x3,y3).
func (b *ShapeBuilder) BezierTo(x1, y1, x2, y2, x3, y3 float64) {
	b.path = append(b.path, Segment{Op: OpCubic, Pts: [3]Point{
		b.t.Apply(Point{X: x1, Y: y1}),
		b.t.Apply(Point{X: x2, Y: y2}),
		b.t.Apply(Point{X: x3, Y: y3}),
	}})
}

func (b *ShapeBuilder) Close() {
	b.path = append(b.path, Segment{Op: OpClose})
}

// Draw emits the path with style st. A style with neither stroke nor fill
// emits nothing.
func (b *ShapeBuilder) Draw(st Style) {
	if len(b.path) == 0 || (st.Stroke == nil && st.Fill == nil) {
		return
	}
	st.Weight *= b.t.Factor()
	b.f.Commands = append(b.f.Commands, Command{Kind: KindPath, Path: b.path, Style: st})
}
