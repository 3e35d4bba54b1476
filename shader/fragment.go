package shader

// Fragment is a single WGSL function participating in a composed transform
// shader. A fragment names exactly one mapping function taking and returning
// a vec2<f32>, and can append every definition that function needs.
//
// Fragments are live views: each call to AppendDefinitions emits source
// reflecting the owner's current parameters, so holders of a fragment never
// observe stale code after the owner mutates.
type Fragment interface {
	// Name returns the WGSL function name of this fragment's entry point.
	// Names must be unique per distinct fragment within one composed shader;
	// two fragments sharing a name are assumed to emit identical definitions.
	Name() string

	// AppendDefinitions appends the WGSL function definitions this fragment
	// requires, including the entry function itself, and returns the extended
	// buffer. seen maps function names already emitted in the current
	// assembly; implementations must skip names present in seen and record
	// the names they emit.
	AppendDefinitions(b []byte, seen map[string]bool) []byte
}

// Func is a standalone fragment wrapping a fixed WGSL function definition.
// It is the escape hatch for custom transforms whose shader code is written
// by hand rather than generated.
type Func struct {
	name   string
	source string
}

// NewFunc creates a fragment named name whose definition is the literal
// WGSL source. The source must define a function with that exact name.
func NewFunc(name, source string) *Func {
	return &Func{name: name, source: source}
}

// Name returns the fragment's WGSL function name.
func (f *Func) Name() string { return f.name }

// AppendDefinitions appends the wrapped source unless already emitted.
func (f *Func) AppendDefinitions(b []byte, seen map[string]bool) []byte {
	if seen[f.name] {
		return b
	}
	seen[f.name] = true
	b = append(b, f.source...)
	if n := len(f.source); n > 0 && f.source[n-1] != '\n' {
		b = append(b, '\n')
	}
	return b
}

// Source returns the complete WGSL source for a fragment, with every
// required definition emitted exactly once.
func Source(f Fragment) string {
	return string(f.AppendDefinitions(nil, make(map[string]bool)))
}
