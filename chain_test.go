package transform

import (
	"errors"
	"math"
	"strings"
	"testing"

	"github.com/gogpu/transform/shader"
)

func pointsNear(a, b []Point, eps float64) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if math.Abs(a[i].X-b[i].X) > eps || math.Abs(a[i].Y-b[i].Y) > eps {
			return false
		}
	}
	return true
}

var testCoords = []Point{
	{X: 0, Y: 0},
	{X: 1, Y: 1},
	{X: -3.5, Y: 2.25},
	{X: 100, Y: -0.001},
}

func TestChainMapOrder(t *testing.T) {
	// NewChain(a, b).Map(x) must equal a.Map(b.Map(x)): the last element of
	// the sequence is applied first.
	a := NewST(Pt(2, 3), Pt(0, 1))
	b := NewPolar()
	chain := NewChain(a, b)

	got := chain.Map(testCoords)
	want := a.Map(b.Map(testCoords))
	if !pointsNear(got, want, 1e-12) {
		t.Errorf("chain.Map = %+v, want %+v", got, want)
	}
}

func TestChainIMapRoundTrip(t *testing.T) {
	tests := []struct {
		name       string
		transforms []Transform
	}{
		{"empty", nil},
		{"single st", []Transform{NewST(Pt(2, 0.5), Pt(10, -4))}},
		{"st st", []Transform{NewST(Pt(2, 3), Pt(1, 1)), NewST(Pt(0.25, 4), Pt(-2, 0))}},
		{"affine", []Transform{NewMatrixTransform(Rotate(math.Pi / 3).Multiply(Scale(2, 5)))}},
		{"st and rotation", []Transform{NewST(Pt(3, 3), Pt(5, 5)), NewMatrixTransform(Rotate(0.7))}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			chain := NewChain(tt.transforms...)
			got := chain.IMap(chain.Map(testCoords))
			if !pointsNear(got, testCoords, 1e-9) {
				t.Errorf("imap(map(x)) = %+v, want %+v", got, testCoords)
			}
		})
	}
}

func TestChainMapDoesNotMutateInput(t *testing.T) {
	in := []Point{{X: 1, Y: 2}, {X: 3, Y: 4}}
	orig := []Point{{X: 1, Y: 2}, {X: 3, Y: 4}}
	chain := NewChain(NewST(Pt(5, 5), Pt(1, 1)))
	chain.Map(in)
	chain.IMap(in)
	if !pointsNear(in, orig, 0) {
		t.Errorf("input mutated: %+v, want %+v", in, orig)
	}
}

func TestChainFlags(t *testing.T) {
	st := NewST(Pt(2, 2), Pt(0, 0))         // Linear|Orthogonal
	affine := NewMatrixTransform(Rotate(1)) // Linear
	polar := NewPolar()                     // none

	tests := []struct {
		name       string
		transforms []Transform
		want       Flags
	}{
		{"empty chain is vacuously all flags", nil, AllFlags},
		{"null only", []Transform{NewNull()}, AllFlags},
		{"two orthogonal", []Transform{st, NewST(Pt(1, 1), Pt(5, 5))}, Linear | Orthogonal},
		{"orthogonal and affine", []Transform{st, affine}, Linear},
		{"with nonlinear", []Transform{st, polar}, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NewChain(tt.transforms...).Flags()
			if got != tt.want {
				t.Errorf("Flags() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestChainFlagsAfterSetAt(t *testing.T) {
	chain := NewChain(NewST(Pt(1, 2), Pt(0, 0)), NewST(Pt(3, 4), Pt(1, 1)))
	if !chain.Flags().Has(Orthogonal) {
		t.Fatalf("chain of two orthogonal transforms not orthogonal: %v", chain.Flags())
	}
	if err := chain.SetAt(1, NewMatrixTransform(Rotate(0.5))); err != nil {
		t.Fatalf("SetAt: %v", err)
	}
	if chain.Flags().Has(Orthogonal) {
		t.Errorf("orthogonal flag survived replacing a child with a rotation: %v", chain.Flags())
	}
}

func TestChainNotifications(t *testing.T) {
	st := NewST(Pt(1, 1), Pt(0, 0))
	chain := NewChain(st)

	fired := 0
	chain.Changed().Subscribe(func() { fired++ })

	// Child parameter change forwards exactly once.
	st.SetScale(Pt(2, 2))
	if fired != 1 {
		t.Fatalf("after child change: %d notifications, want 1", fired)
	}

	// Structural mutation fires exactly once.
	added := NewST(Pt(3, 3), Pt(0, 0))
	chain.Append(added)
	if fired != 2 {
		t.Fatalf("after append: %d notifications, want 2", fired)
	}

	// The appended child is subscribed too.
	added.SetTranslate(Pt(1, 1))
	if fired != 3 {
		t.Fatalf("after appended child change: %d notifications, want 3", fired)
	}

	// Setting an identical value does not fire.
	added.SetTranslate(Pt(1, 1))
	if fired != 3 {
		t.Errorf("no-op set fired a notification: %d, want 3", fired)
	}
}

func TestChainUnsubscribesRemovedChildren(t *testing.T) {
	old := NewST(Pt(1, 1), Pt(0, 0))
	chain := NewChain(old)

	fired := 0
	chain.Changed().Subscribe(func() { fired++ })

	chain.SetTransforms([]Transform{NewPolar()})
	if fired != 1 {
		t.Fatalf("after wholesale replace: %d notifications, want 1", fired)
	}
	if old.Changed().Len() != 0 {
		t.Fatalf("removed child still has %d subscribers", old.Changed().Len())
	}

	// Mutating the removed child must not reach the chain.
	old.SetScale(Pt(9, 9))
	if fired != 1 {
		t.Errorf("removed child change reached the chain: %d notifications, want 1", fired)
	}
}

func TestChainSetAtErrors(t *testing.T) {
	st := NewST(Pt(1, 1), Pt(0, 0))
	chain := NewChain(st)

	for _, i := range []int{-1, 1, 100} {
		if err := chain.SetAt(i, NewNull()); !errors.Is(err, ErrIndexOutOfRange) {
			t.Errorf("SetAt(%d) error = %v, want ErrIndexOutOfRange", i, err)
		}
	}
	// Failed replace leaves the chain unchanged.
	if got := chain.Transforms(); len(got) != 1 || got[0] != st {
		t.Errorf("chain changed after failed SetAt: %v", chain)
	}
}

func TestChainPrependOrder(t *testing.T) {
	// Prepend makes the new transform the last applied on Map.
	scale := NewST(Pt(2, 2), Pt(0, 0))
	offset := NewST(Pt(1, 1), Pt(10, 10))
	chain := NewChain(scale)
	chain.Prepend(offset)

	got := chain.Map([]Point{{X: 1, Y: 1}})
	want := []Point{{X: 12, Y: 12}} // scale first, then offset
	if !pointsNear(got, want, 0) {
		t.Errorf("Map after Prepend = %+v, want %+v", got, want)
	}
}

func TestChainCombineOrder(t *testing.T) {
	a := NewPolar()
	b := NewPolar()
	self := NewChain(NewPolar())
	other := NewChain(a, b)

	left, ok := self.Combine(other).(*ChainTransform)
	if !ok {
		t.Fatalf("self.Combine(other) is not a chain")
	}
	if left.Len() != 3 {
		t.Fatalf("self.Combine(other) length = %d, want 3", left.Len())
	}
	if got := left.Transforms(); got[0] != self.Transforms()[0] {
		t.Errorf("self's element not first in self.Combine(other)")
	}

	right, ok := other.Combine(self).(*ChainTransform)
	if !ok {
		t.Fatalf("other.Combine(self) is not a chain")
	}
	if right.Len() != 3 {
		t.Fatalf("other.Combine(self) length = %d, want 3", right.Len())
	}
	if got := right.Transforms(); got[2] != self.Transforms()[0] {
		t.Errorf("self's element not last in other.Combine(self)")
	}
}

func TestChainShaderOrder(t *testing.T) {
	t1 := NewST(Pt(2, 2), Pt(0, 0))
	t2 := NewST(Pt(1, 1), Pt(5, 5))
	chain := NewChain(t1, t2)

	fwd, ok := chain.ShaderMap().(*shader.FunctionChain)
	if !ok {
		t.Fatalf("ShaderMap is not a FunctionChain")
	}
	// Forward fragment order is the reverse of the child sequence.
	funcs := fwd.Functions()
	if len(funcs) != 2 {
		t.Fatalf("forward chain has %d fragments, want 2", len(funcs))
	}
	if funcs[0].Name() != t2.ShaderMap().Name() || funcs[1].Name() != t1.ShaderMap().Name() {
		t.Errorf("forward fragment order = [%s, %s], want [%s, %s]",
			funcs[0].Name(), funcs[1].Name(), t2.ShaderMap().Name(), t1.ShaderMap().Name())
	}

	inv, ok := chain.ShaderIMap().(*shader.FunctionChain)
	if !ok {
		t.Fatalf("ShaderIMap is not a FunctionChain")
	}
	// Inverse fragment order matches the child sequence directly.
	funcs = inv.Functions()
	if funcs[0].Name() != t1.ShaderIMap().Name() || funcs[1].Name() != t2.ShaderIMap().Name() {
		t.Errorf("inverse fragment order = [%s, %s], want [%s, %s]",
			funcs[0].Name(), funcs[1].Name(), t1.ShaderIMap().Name(), t2.ShaderIMap().Name())
	}
}

func TestChainShaderRebuildOnMutation(t *testing.T) {
	chain := NewChain()
	fwd := chain.ShaderMap().(*shader.FunctionChain)
	if fwd.Len() != 0 {
		t.Fatalf("empty chain has %d shader fragments", fwd.Len())
	}

	chain.Append(NewST(Pt(2, 2), Pt(0, 0)))
	if fwd.Len() != 1 {
		t.Errorf("after append: %d shader fragments, want 1", fwd.Len())
	}

	chain.SetTransforms(nil)
	if fwd.Len() != 0 {
		t.Errorf("after clearing: %d shader fragments, want 0", fwd.Len())
	}
}

func TestChainShaderReflectsParameterChange(t *testing.T) {
	// No rebuild happens on a child parameter change; re-reading the
	// composed source must still observe the new value.
	st := NewST(Pt(2, 2), Pt(0, 0))
	chain := NewChain(st)

	before := shader.Source(chain.ShaderMap())
	if !strings.Contains(before, "vec2<f32>(2.0, 2.0)") {
		t.Fatalf("composed source missing initial scale:\n%s", before)
	}

	st.SetScale(Pt(7, 7))
	after := shader.Source(chain.ShaderMap())
	if !strings.Contains(after, "vec2<f32>(7.0, 7.0)") {
		t.Errorf("composed source missing updated scale:\n%s", after)
	}
}

func TestChainString(t *testing.T) {
	chain := NewChain(NewST(Pt(1, 1), Pt(0, 0)), NewPolar())
	want := "ChainTransform(STTransform, PolarTransform)"
	if got := chain.String(); got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}
