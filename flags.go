package transform

import "strings"

// Flags describes algebraic guarantees a transform makes about its mapping.
// Consumers branch on these to choose safe optimizations, so a transform
// must only advertise a flag its mapping actually satisfies.
// Flags can be combined with bitwise OR.
type Flags uint8

const (
	// Linear means straight lines remain straight after mapping.
	Linear Flags = 1 << iota

	// Orthogonal means the coordinate axes stay perpendicular and aligned:
	// the transform neither rotates nor shears.
	Orthogonal

	// NonScaling means the transform does not change the scale of mapped
	// coordinates.
	NonScaling

	// Isometric means the transform scales equally in all directions.
	Isometric
)

// AllFlags is the set of every classification flag. It is the conjunction
// identity: an empty chain reports AllFlags.
const AllFlags = Linear | Orthogonal | NonScaling | Isometric

// Has reports whether every flag in g is set in f.
func (f Flags) Has(g Flags) bool { return f&g == g }

var flagNames = []struct {
	flag Flags
	name string
}{
	{Linear, "Linear"},
	{Orthogonal, "Orthogonal"},
	{NonScaling, "NonScaling"},
	{Isometric, "Isometric"},
}

// String returns the set flags as a | separated list.
func (f Flags) String() string {
	if f == 0 {
		return "0"
	}
	var names []string
	for _, fn := range flagNames {
		if f.Has(fn.flag) {
			names = append(names, fn.name)
		}
	}
	return strings.Join(names, "|")
}
