package transform

import (
	"fmt"
	"sync/atomic"

	"github.com/gogpu/transform/shader"
)

// Transform maps 2D coordinate arrays between coordinate spaces and can emit
// an equivalent WGSL fragment so the identical mapping runs on the GPU.
//
// Map and IMap are exact inverses for invertible transforms; variants with
// restricted or approximate inverses document that on IMap. Neither method
// may mutate its input slice.
type Transform interface {
	// Map forward-maps coords and returns the result in a new slice.
	Map(coords []Point) []Point

	// IMap inverse-maps coords. Behavior for non-invertible parameter sets
	// is documented per concrete variant.
	IMap(coords []Point) []Point

	// ShaderMap returns a WGSL fragment implementing the same mapping as
	// Map. The fragment is a live view: its emitted source reflects the
	// transform's parameters at emission time.
	ShaderMap() shader.Fragment

	// ShaderIMap returns a WGSL fragment implementing the same mapping as
	// IMap.
	ShaderIMap() shader.Fragment

	// Flags reports the algebraic guarantees of this transform's mapping.
	Flags() Flags

	// Combine returns a transform equivalent to applying other first, then
	// this transform. When a closed-form merge exists for the operand pair
	// (e.g. two affine transforms) the result is a single merged transform;
	// otherwise it is a ChainTransform holding both operands unmerged.
	Combine(other Transform) Transform

	// Changed returns the transform's change notifier, fired whenever its
	// own parameters change. Reading a transform never fires it.
	Changed() *Notifier

	fmt.Stringer
}

// fragSeq hands out unique suffixes for generated WGSL function names, so
// two transforms of the same kind never collide inside one composed shader.
var fragSeq atomic.Uint64

func nextFragID() uint64 { return fragSeq.Add(1) }

// Compose concatenates a and b into a flat ChainTransform applying b first.
// Chain operands are spliced in one level rather than nested. This is the
// fallback for Combine when no algebraic merge applies; it performs no
// merging itself.
func Compose(a, b Transform) *ChainTransform {
	elems := append(chainElems(a), chainElems(b)...)
	return NewChain(elems...)
}

func chainElems(t Transform) []Transform {
	if c, ok := t.(*ChainTransform); ok {
		return c.Transforms()
	}
	return []Transform{t}
}
