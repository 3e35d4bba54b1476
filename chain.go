package transform

import (
	"errors"
	"fmt"
	"strings"

	"github.com/gogpu/transform/shader"
)

// ErrIndexOutOfRange is returned by SetAt for an index outside the child
// sequence.
var ErrIndexOutOfRange = errors.New("transform index out of range")

// ChainTransform applies an ordered sequence of child transforms. The order
// follows mathematical composition notation: the last transform in the
// sequence is the first applied when mapping forward, so for a two-element
// chain [T1, T2], Map is T1.Map(T2.Map(coords)).
//
// The chain keeps two composed shader functions, forward and inverse, in
// sync with the child sequence: every structural mutation rebuilds both
// synchronously. A chain does not own its children exclusively; the same
// transform may belong to several chains at once, and mutating it is
// visible to all of them.
//
// A chain must never, directly or through nesting, contain itself: change
// notifications are delivered recursively and a cycle would recurse without
// bound.
type ChainTransform struct {
	transforms []Transform
	subs       []int // change-subscription tokens, parallel to transforms
	shaderMap  *shader.FunctionChain
	shaderIMap *shader.FunctionChain
	changed    Notifier
	id         uint64
}

// NewChain creates a chain over the given transforms. Pass an existing
// slice with NewChain(trs...). Nested chains stay nested; use Flat to
// expand them.
func NewChain(transforms ...Transform) *ChainTransform {
	c := &ChainTransform{id: nextFragID()}
	c.shaderMap = shader.NewFunctionChain(fmt.Sprintf("chain_transform_map_%d", c.id), nil)
	c.shaderIMap = shader.NewFunctionChain(fmt.Sprintf("chain_transform_imap_%d", c.id), nil)
	c.transforms = append(c.transforms, transforms...)
	for _, tr := range c.transforms {
		c.subs = append(c.subs, c.subscribeChild(tr))
	}
	c.rebuildShaders()
	return c
}

func (c *ChainTransform) subscribeChild(tr Transform) int {
	return tr.Changed().Subscribe(c.childChanged)
}

// childChanged forwards a child's parameter change to the chain's own
// subscribers. The shader chains are not rebuilt: fragments are live views,
// so re-reading the composed source already observes the new parameters.
func (c *ChainTransform) childChanged() {
	c.changed.Notify()
}

// Transforms returns a copy of the child sequence. The last element is the
// first applied on Map.
func (c *ChainTransform) Transforms() []Transform {
	out := make([]Transform, len(c.transforms))
	copy(out, c.transforms)
	return out
}

// Len returns the number of child transforms.
func (c *ChainTransform) Len() int { return len(c.transforms) }

// SetTransforms replaces the whole child sequence. A nil slice empties the
// chain. Subscriptions are moved to the new children, both shader chains
// are rebuilt and the chain's change notifier fires once.
func (c *ChainTransform) SetTransforms(transforms []Transform) {
	for i, tr := range c.transforms {
		tr.Changed().Unsubscribe(c.subs[i])
	}
	c.transforms = c.transforms[:0]
	c.subs = c.subs[:0]
	c.transforms = append(c.transforms, transforms...)
	for _, tr := range c.transforms {
		c.subs = append(c.subs, c.subscribeChild(tr))
	}
	c.rebuildShaders()
	c.changed.Notify()
}

// Append adds tr to the end of the sequence. In application order it
// becomes the first transform applied on Map.
func (c *ChainTransform) Append(tr Transform) {
	c.transforms = append(c.transforms, tr)
	c.subs = append(c.subs, c.subscribeChild(tr))
	c.rebuildShaders()
	c.changed.Notify()
}

// Prepend adds tr to the beginning of the sequence. In application order it
// becomes the last transform applied on Map.
func (c *ChainTransform) Prepend(tr Transform) {
	c.transforms = append([]Transform{tr}, c.transforms...)
	c.subs = append([]int{c.subscribeChild(tr)}, c.subs...)
	c.rebuildShaders()
	c.changed.Notify()
}

// SetAt replaces the child at index i. Out-of-range indexes return
// ErrIndexOutOfRange and leave the chain unchanged.
func (c *ChainTransform) SetAt(i int, tr Transform) error {
	if i < 0 || i >= len(c.transforms) {
		return fmt.Errorf("set transform %d of %d: %w", i, len(c.transforms), ErrIndexOutOfRange)
	}
	c.transforms[i].Changed().Unsubscribe(c.subs[i])
	c.transforms[i] = tr
	c.subs[i] = c.subscribeChild(tr)
	c.rebuildShaders()
	c.changed.Notify()
	return nil
}

// rebuildShaders resets both composed functions from the current sequence.
// The forward chain applies fragments in reverse sequence order (last child
// first), mirroring Map; the inverse chain applies them in sequence order,
// mirroring IMap.
func (c *ChainTransform) rebuildShaders() {
	n := len(c.transforms)
	fwd := make([]shader.Fragment, 0, n)
	for i := n - 1; i >= 0; i-- {
		fwd = append(fwd, c.transforms[i].ShaderMap())
	}
	inv := make([]shader.Fragment, 0, n)
	for _, tr := range c.transforms {
		inv = append(inv, tr.ShaderIMap())
	}
	c.shaderMap.SetFunctions(fwd)
	c.shaderIMap.SetFunctions(inv)
	Logger().Debug("rebuilt shader chains", "chain", c.shaderMap.Name(), "transforms", n)
}

// Map forward-maps coords through the chain, applying children from the
// last element to the first.
func (c *ChainTransform) Map(coords []Point) []Point {
	for i := len(c.transforms) - 1; i >= 0; i-- {
		coords = c.transforms[i].Map(coords)
	}
	return coords
}

// IMap inverse-maps coords through the chain, applying children from the
// first element to the last — the exact mirror of Map.
func (c *ChainTransform) IMap(coords []Point) []Point {
	for _, tr := range c.transforms {
		coords = tr.IMap(coords)
	}
	return coords
}

// ShaderMap returns the composed forward function.
func (c *ChainTransform) ShaderMap() shader.Fragment { return c.shaderMap }

// ShaderIMap returns the composed inverse function.
func (c *ChainTransform) ShaderIMap() shader.Fragment { return c.shaderIMap }

// Flags reports the conjunction of each flag across all children. An empty
// chain is the identity and reports AllFlags.
func (c *ChainTransform) Flags() Flags {
	f := AllFlags
	for _, tr := range c.transforms {
		f &= tr.Flags()
	}
	return f
}

// Combine concatenates this chain with other into one flat chain applying
// other first. No algebraic merging happens here; use Simplified for that.
func (c *ChainTransform) Combine(other Transform) Transform {
	return Compose(c, other)
}

// Changed returns the chain's change notifier. It fires on structural
// mutations and whenever any current child fires its own notifier.
func (c *ChainTransform) Changed() *Notifier { return &c.changed }

// String lists the constituent transform kinds.
func (c *ChainTransform) String() string {
	names := make([]string, len(c.transforms))
	for i, tr := range c.transforms {
		names[i] = kindName(tr)
	}
	return "ChainTransform(" + strings.Join(names, ", ") + ")"
}

func kindName(tr Transform) string {
	return strings.TrimPrefix(fmt.Sprintf("%T", tr), "*transform.")
}
