package shader

// FunctionChain composes an ordered sequence of fragments into one WGSL
// function applying them in order: the first fragment in the sequence is the
// first applied to the coordinate. An empty chain composes to the identity
// function.
//
// FunctionChain itself implements Fragment, so composed functions nest.
type FunctionChain struct {
	name  string
	funcs []Fragment
}

// NewFunctionChain creates a composed function named name applying funcs in
// order. The funcs slice is copied.
func NewFunctionChain(name string, funcs []Fragment) *FunctionChain {
	c := &FunctionChain{name: name}
	c.funcs = append(c.funcs, funcs...)
	return c
}

// Name returns the composed function's WGSL name.
func (c *FunctionChain) Name() string { return c.name }

// Functions returns a copy of the current fragment sequence.
func (c *FunctionChain) Functions() []Fragment {
	out := make([]Fragment, len(c.funcs))
	copy(out, c.funcs)
	return out
}

// SetFunctions replaces the fragment sequence. The composed source emitted
// by subsequent AppendDefinitions calls reflects the new sequence
// immediately; there is no cached source to invalidate.
func (c *FunctionChain) SetFunctions(funcs []Fragment) {
	c.funcs = c.funcs[:0]
	c.funcs = append(c.funcs, funcs...)
}

// Len returns the number of fragments in the sequence.
func (c *FunctionChain) Len() int { return len(c.funcs) }

// AppendDefinitions appends the definitions of every constituent fragment
// followed by the composed entry function. Duplicate function names across
// fragments (a transform shared by several chains, or appearing in both a
// forward and inverse assembly) are emitted once.
func (c *FunctionChain) AppendDefinitions(b []byte, seen map[string]bool) []byte {
	for _, f := range c.funcs {
		b = f.AppendDefinitions(b, seen)
	}
	if seen[c.name] {
		return b
	}
	seen[c.name] = true
	b = append(b, "fn "...)
	b = append(b, c.name...)
	b = append(b, "(coord: vec2<f32>) -> vec2<f32> {\n"...)
	if len(c.funcs) == 0 {
		b = append(b, "    return coord;\n}\n"...)
		return b
	}
	b = append(b, "    var c = coord;\n"...)
	for _, f := range c.funcs {
		b = append(b, "    c = "...)
		b = append(b, f.Name()...)
		b = append(b, "(c);\n"...)
	}
	b = append(b, "    return c;\n}\n"...)
	return b
}

// WGSL returns the full composed source: all fragment definitions, deduped,
// followed by the composed function itself.
func (c *FunctionChain) WGSL() string {
	return Source(c)
}
