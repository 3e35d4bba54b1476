// Package transform builds chains of 2D coordinate-space transforms that
// map coordinates on the host and emit equivalent composed WGSL functions
// for the GPU.
//
// # Overview
//
// A Transform maps coordinate arrays forward (Map), backward (IMap), and
// can emit WGSL fragments implementing the same mappings (ShaderMap,
// ShaderIMap). A ChainTransform composes transforms in sequence; the two
// representations — numeric and shader — are kept structurally consistent
// under every mutation of the chain.
//
// # Quick Start
//
//	import "github.com/gogpu/transform"
//
//	zoom := transform.NewST(transform.Pt(2, 2), transform.Pt(100, 50))
//	polar := transform.NewPolar()
//
//	// Applies polar first, then zoom.
//	chain := transform.NewChain(zoom, polar)
//	pts := chain.Map([]transform.Point{{X: 0.5, Y: 1}})
//
//	// The equivalent GPU-side mapping:
//	wgsl := shader.Source(chain.ShaderMap())
//
// # Ordering
//
// Chains store transforms in reverse application order: the last element of
// the sequence is the first applied on Map. This matches mathematical
// composition notation — NewChain(t1, t2).Map(x) equals t1.Map(t2.Map(x)).
//
// # Simplification
//
// Flat expands nested chains into one flat sequence; Simplified additionally
// merges adjacent transforms whose Combine has a closed form (for example,
// consecutive affine transforms collapse into one matrix).
//
// # Concurrency
//
// The package is single-threaded by design: mutations, change notifications
// and shader rebuilds all run synchronously on the caller's stack. Only
// SetLogger and Logger are safe for concurrent use.
package transform
