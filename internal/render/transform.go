package render

import "math"

// Point is a 2D position.
type Point struct {
	X, Y float64
}

// Dist returns the euclidean distance between p and q.
func (p Point) Dist(q Point) float64 {
	return math.Hypot(p.X-q.X, p.Y-q.Y)
}

// Transform is an immutable 2D affine transform
//
//	| A C E |
//	| B D F |
//	| 0 0 1 |
//
// Every operation returns a new value; composing transforms down a call
// chain replaces an implicit push/pop matrix stack.
type Transform struct {
	A, B, C, D, E, F float64
}

// Identity is the neutral transform.
var Identity = Transform{A: 1, D: 1}

// Concat returns t * u: u is applied first, then t.
func (t Transform) Concat(u Transform) Transform {
	return Transform{
		A: t.A*u.A + t.C*u.B,
		B: t.B*u.A + t.D*u.B,
		C: t.A*u.C + t.C*u.D,
		D: t.B*u.C + t.D*u.D,
		E: t.A*u.E + t.C*u.F + t.E,
		F: t.B*u.E + t.D*u.F + t.F,
	}
}

// Translate moves the local origin by (x, y).
func (t Transform) Translate(x, y float64) Transform {
	return t.Concat(Transform{A: 1, D: 1, E: x, F: y})
}

// Rotate rotates the local frame by deg degrees.
func (t Transform) Rotate(deg float64) Transform {
	s, c := math.Sincos(deg * math.Pi / 180)
	return t.Concat(Transform{A: c, B: s, C: -s, D: c})
}

// Scale scales the local frame uniformly.
func (t Transform) Scale(k float64) Transform {
	return t.Concat(Transform{A: k, D: k})
}

// Apply maps a local point to the output space.
func (t Transform) Apply(p Point) Point {
	return Point{
		X: t.A*p.X + t.C*p.Y + t.E,
		Y: t.B*p.X + t.D*p.Y + t.F,
	}
}

// Factor is the uniform scale factor of t, used to scale stroke weights.
func (t Transform) Factor() float64 {
	return math.Sqrt(math.Abs(t.A*t.D - t.B*t.C))
}

// Origin returns where the local origin lands.
func (t Transform) Origin() Point {
	return Point{X: t.E, Y: t.F}
}
