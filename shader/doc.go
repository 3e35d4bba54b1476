// Package shader assembles WGSL coordinate-mapping functions from fragments.
//
// A Fragment is one WGSL function mapping a vec2<f32> coordinate. A
// FunctionChain composes an ordered sequence of fragments into a single
// function applying them in order, deduplicating shared definitions. The
// package never inspects fragment contents beyond the function name; it
// only guarantees the composed source is structurally consistent with the
// fragment sequence.
//
// Compilation helpers (CompileSPIRV, CreateModule) turn a composed function
// into a SPIR-V blob or a HAL shader module; they are the only place this
// package touches the GPU stack and are excluded by the nogpu build tag.
package shader
