package transform

import (
	"math"

	"github.com/gogpu/transform/shader"
)

// PolarTransform maps polar coordinates (theta, rho) to cartesian (x, y):
//
//	x = rho * cos(theta)
//	y = rho * sin(theta)
//
// It is nonlinear, so no classification flag holds and no algebraic merge
// with another transform exists.
type PolarTransform struct {
	changed Notifier
}

// NewPolar creates a polar-to-cartesian transform.
func NewPolar() *PolarTransform {
	return &PolarTransform{}
}

// Map converts each (theta, rho) coordinate to cartesian.
func (t *PolarTransform) Map(coords []Point) []Point {
	out := make([]Point, len(coords))
	for i, p := range coords {
		out[i] = Point{
			X: p.Y * math.Cos(p.X),
			Y: p.Y * math.Sin(p.X),
		}
	}
	return out
}

// IMap converts each cartesian coordinate back to (theta, rho). theta is
// reported in (-pi, pi]; the origin maps to (0, 0).
func (t *PolarTransform) IMap(coords []Point) []Point {
	out := make([]Point, len(coords))
	for i, p := range coords {
		out[i] = Point{
			X: math.Atan2(p.Y, p.X),
			Y: p.Length(),
		}
	}
	return out
}

func (t *PolarTransform) ShaderMap() shader.Fragment { return polarFragment{} }

func (t *PolarTransform) ShaderIMap() shader.Fragment { return polarFragment{inverse: true} }

// Flags reports no flags: a polar mapping bends lines.
func (t *PolarTransform) Flags() Flags { return 0 }

// Combine has no closed form for any operand pair except the identity.
func (t *PolarTransform) Combine(other Transform) Transform {
	if _, ok := other.(*NullTransform); ok {
		return t
	}
	return Compose(t, other)
}

// Changed returns the transform's change notifier. A PolarTransform has no
// parameters, so it never fires on its own.
func (t *PolarTransform) Changed() *Notifier { return &t.changed }

func (t *PolarTransform) String() string { return "PolarTransform" }

// polarFragment emits WGSL for the polar mapping. Both directions are
// parameter-free, so the function names are shared and deduplicated.
type polarFragment struct {
	inverse bool
}

func (f polarFragment) Name() string {
	if f.inverse {
		return "polar_transform_imap"
	}
	return "polar_transform_map"
}

func (f polarFragment) AppendDefinitions(b []byte, seen map[string]bool) []byte {
	name := f.Name()
	if seen[name] {
		return b
	}
	seen[name] = true
	if f.inverse {
		return append(b, "fn polar_transform_imap(c: vec2<f32>) -> vec2<f32> {\n"+
			"    return vec2<f32>(atan2(c.y, c.x), length(c));\n}\n"...)
	}
	return append(b, "fn polar_transform_map(c: vec2<f32>) -> vec2<f32> {\n"+
		"    return vec2<f32>(c.y * cos(c.x), c.y * sin(c.x));\n}\n"...)
}
