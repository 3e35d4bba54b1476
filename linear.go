package transform

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/gogpu/transform/shader"
)

// appendWGSLFloat appends v as a WGSL float literal. Plain integers get a
// trailing ".0" so the literal is never parsed as an abstract int.
func appendWGSLFloat(b []byte, v float64) []byte {
	s := strconv.FormatFloat(v, 'g', -1, 64)
	b = append(b, s...)
	if !strings.ContainsAny(s, ".eE") {
		b = append(b, ".0"...)
	}
	return b
}

func appendWGSLVec2(b []byte, p Point) []byte {
	b = append(b, "vec2<f32>("...)
	b = appendWGSLFloat(b, p.X)
	b = append(b, ", "...)
	b = appendWGSLFloat(b, p.Y)
	b = append(b, ')')
	return b
}

// NullTransform is the identity: Map and IMap return their input unchanged
// (as a copy), and combining with it yields the other operand. A chain of
// zero transforms simplifies to a NullTransform.
type NullTransform struct {
	changed Notifier
}

// NewNull creates an identity transform.
func NewNull() *NullTransform {
	return &NullTransform{}
}

// Map returns a copy of coords.
func (t *NullTransform) Map(coords []Point) []Point {
	out := make([]Point, len(coords))
	copy(out, coords)
	return out
}

// IMap returns a copy of coords.
func (t *NullTransform) IMap(coords []Point) []Point {
	return t.Map(coords)
}

// ShaderMap returns the identity fragment.
func (t *NullTransform) ShaderMap() shader.Fragment { return nullFragment{} }

// ShaderIMap returns the identity fragment.
func (t *NullTransform) ShaderIMap() shader.Fragment { return nullFragment{} }

// Flags reports every flag: the identity satisfies all of them.
func (t *NullTransform) Flags() Flags { return AllFlags }

// Combine returns other: composing with the identity changes nothing.
func (t *NullTransform) Combine(other Transform) Transform { return other }

// Changed returns the transform's change notifier. A NullTransform has no
// parameters, so it never fires on its own.
func (t *NullTransform) Changed() *Notifier { return &t.changed }

func (t *NullTransform) String() string { return "NullTransform" }

// nullFragment is the shared identity fragment. All identity transforms emit
// the same function, deduplicated by name.
type nullFragment struct{}

func (nullFragment) Name() string { return "null_transform_map" }

func (nullFragment) AppendDefinitions(b []byte, seen map[string]bool) []byte {
	if seen["null_transform_map"] {
		return b
	}
	seen["null_transform_map"] = true
	return append(b, "fn null_transform_map(c: vec2<f32>) -> vec2<f32> {\n    return c;\n}\n"...)
}

// STTransform scales and translates: Map(p) = p*scale + translate. It never
// rotates or shears, so it is Linear and Orthogonal.
type STTransform struct {
	scale     Point
	translate Point
	changed   Notifier
	id        uint64
}

// NewST creates a scale+translate transform. A zero scale component makes
// the transform non-invertible; IMap then produces infinities.
func NewST(scale, translate Point) *STTransform {
	return &STTransform{scale: scale, translate: translate, id: nextFragID()}
}

// Scale returns the per-axis scale factors.
func (t *STTransform) Scale() Point { return t.scale }

// Translate returns the translation offsets.
func (t *STTransform) Translate() Point { return t.translate }

// SetScale replaces the scale factors and fires the change notifier.
func (t *STTransform) SetScale(s Point) {
	if s == t.scale {
		return
	}
	t.scale = s
	t.changed.Notify()
}

// SetTranslate replaces the translation and fires the change notifier.
func (t *STTransform) SetTranslate(tr Point) {
	if tr == t.translate {
		return
	}
	t.translate = tr
	t.changed.Notify()
}

// Map applies p*scale + translate to each coordinate.
func (t *STTransform) Map(coords []Point) []Point {
	out := make([]Point, len(coords))
	for i, p := range coords {
		out[i] = p.MulPointwise(t.scale).Add(t.translate)
	}
	return out
}

// IMap applies (p - translate) / scale to each coordinate. With a zero
// scale component the result contains infinities.
func (t *STTransform) IMap(coords []Point) []Point {
	out := make([]Point, len(coords))
	for i, p := range coords {
		out[i] = p.Sub(t.translate).DivPointwise(t.scale)
	}
	return out
}

func (t *STTransform) ShaderMap() shader.Fragment {
	return stFragment{t: t, name: fmt.Sprintf("st_transform_map_%d", t.id)}
}

func (t *STTransform) ShaderIMap() shader.Fragment {
	return stFragment{t: t, inverse: true, name: fmt.Sprintf("st_transform_imap_%d", t.id)}
}

// Flags reports Linear|Orthogonal. Scale and translation preserve lines and
// axis alignment but not lengths or aspect.
func (t *STTransform) Flags() Flags { return Linear | Orthogonal }

// Matrix returns the equivalent affine matrix.
func (t *STTransform) Matrix() Matrix {
	return Matrix{
		A: t.scale.X, B: 0, C: t.translate.X,
		D: 0, E: t.scale.Y, F: t.translate.Y,
	}
}

// Combine merges with another scale+translate or affine operand; any other
// operand pair falls back to an unmerged chain.
func (t *STTransform) Combine(other Transform) Transform {
	switch o := other.(type) {
	case *NullTransform:
		return t
	case *STTransform:
		// self(other(p)) = s1*(s2*p + t2) + t1
		return NewST(
			t.scale.MulPointwise(o.scale),
			t.scale.MulPointwise(o.translate).Add(t.translate),
		)
	case *MatrixTransform:
		return NewMatrixTransform(t.Matrix().Multiply(o.Matrix()))
	default:
		return Compose(t, other)
	}
}

func (t *STTransform) Changed() *Notifier { return &t.changed }

func (t *STTransform) String() string {
	return fmt.Sprintf("STTransform(scale=(%g, %g), translate=(%g, %g))",
		t.scale.X, t.scale.Y, t.translate.X, t.translate.Y)
}

// stFragment emits WGSL for an STTransform. Source is generated at emission
// time, so it always reflects the transform's current parameters.
type stFragment struct {
	t       *STTransform
	inverse bool
	name    string
}

func (f stFragment) Name() string { return f.name }

func (f stFragment) AppendDefinitions(b []byte, seen map[string]bool) []byte {
	if seen[f.name] {
		return b
	}
	seen[f.name] = true
	b = append(b, "fn "...)
	b = append(b, f.name...)
	b = append(b, "(c: vec2<f32>) -> vec2<f32> {\n    return "...)
	if f.inverse {
		b = append(b, "(c - "...)
		b = appendWGSLVec2(b, f.t.translate)
		b = append(b, ") / "...)
		b = appendWGSLVec2(b, f.t.scale)
	} else {
		b = append(b, "c * "...)
		b = appendWGSLVec2(b, f.t.scale)
		b = append(b, " + "...)
		b = appendWGSLVec2(b, f.t.translate)
	}
	b = append(b, ";\n}\n"...)
	return b
}

// MatrixTransform applies an arbitrary 2D affine matrix.
type MatrixTransform struct {
	m       Matrix
	changed Notifier
	id      uint64
}

// NewMatrixTransform creates an affine transform from m.
func NewMatrixTransform(m Matrix) *MatrixTransform {
	return &MatrixTransform{m: m, id: nextFragID()}
}

// Matrix returns the current affine matrix.
func (t *MatrixTransform) Matrix() Matrix { return t.m }

// SetMatrix replaces the matrix and fires the change notifier.
func (t *MatrixTransform) SetMatrix(m Matrix) {
	if m == t.m {
		return
	}
	t.m = m
	t.changed.Notify()
}

// Map applies the matrix to each coordinate.
func (t *MatrixTransform) Map(coords []Point) []Point {
	out := make([]Point, len(coords))
	for i, p := range coords {
		out[i] = t.m.TransformPoint(p)
	}
	return out
}

// IMap applies the inverse matrix to each coordinate. Singular matrices
// invert to identity (see Matrix.Invert), so IMap then returns its input.
func (t *MatrixTransform) IMap(coords []Point) []Point {
	inv := t.m.Invert()
	out := make([]Point, len(coords))
	for i, p := range coords {
		out[i] = inv.TransformPoint(p)
	}
	return out
}

func (t *MatrixTransform) ShaderMap() shader.Fragment {
	return matrixFragment{t: t, name: fmt.Sprintf("affine_transform_map_%d", t.id)}
}

func (t *MatrixTransform) ShaderIMap() shader.Fragment {
	return matrixFragment{t: t, inverse: true, name: fmt.Sprintf("affine_transform_imap_%d", t.id)}
}

// Flags reports Linear only: a general affine matrix may rotate, shear and
// scale.
func (t *MatrixTransform) Flags() Flags { return Linear }

// Combine merges with another affine operand into the matrix product; any
// other operand pair falls back to an unmerged chain.
func (t *MatrixTransform) Combine(other Transform) Transform {
	switch o := other.(type) {
	case *NullTransform:
		return t
	case *STTransform:
		return NewMatrixTransform(t.m.Multiply(o.Matrix()))
	case *MatrixTransform:
		return NewMatrixTransform(t.m.Multiply(o.m))
	default:
		return Compose(t, other)
	}
}

func (t *MatrixTransform) Changed() *Notifier { return &t.changed }

func (t *MatrixTransform) String() string {
	return fmt.Sprintf("MatrixTransform(%g %g %g; %g %g %g)",
		t.m.A, t.m.B, t.m.C, t.m.D, t.m.E, t.m.F)
}

// matrixFragment emits WGSL for a MatrixTransform. The inverse variant
// emits the inverted matrix, computed at emission time.
type matrixFragment struct {
	t       *MatrixTransform
	inverse bool
	name    string
}

func (f matrixFragment) Name() string { return f.name }

func (f matrixFragment) AppendDefinitions(b []byte, seen map[string]bool) []byte {
	if seen[f.name] {
		return b
	}
	seen[f.name] = true
	m := f.t.m
	if f.inverse {
		m = m.Invert()
	}
	b = append(b, "fn "...)
	b = append(b, f.name...)
	b = append(b, "(c: vec2<f32>) -> vec2<f32> {\n    return vec2<f32>(\n        "...)
	b = appendWGSLFloat(b, m.A)
	b = append(b, " * c.x + "...)
	b = appendWGSLFloat(b, m.B)
	b = append(b, " * c.y + "...)
	b = appendWGSLFloat(b, m.C)
	b = append(b, ",\n        "...)
	b = appendWGSLFloat(b, m.D)
	b = append(b, " * c.x + "...)
	b = appendWGSLFloat(b, m.E)
	b = append(b, " * c.y + "...)
	b = appendWGSLFloat(b, m.F)
	b = append(b, ");\n}\n"...)
	return b
}
