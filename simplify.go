package transform

// Flat returns a new chain with every nested chain expanded into the flat
// sequence, preserving application order. No algebraic merging happens. The
// receiver is never mutated.
func (c *ChainTransform) Flat() *ChainTransform {
	pending := c.Transforms()
	var flat []Transform
	for len(pending) > 0 {
		tr := pending[0]
		pending = pending[1:]
		if sub, ok := tr.(*ChainTransform); ok {
			pending = append(sub.Transforms(), pending...)
		} else {
			flat = append(flat, tr)
		}
	}
	return NewChain(flat...)
}

// Simplified returns a transform equivalent to the chain with adjacent
// mergeable pairs combined. The chain is flattened first; an empty chain
// simplifies to a NullTransform, and a single surviving transform is
// returned directly rather than wrapped in a chain. The receiver is never
// mutated.
//
// Merging is greedy and local: each pass walks the sequence left to right,
// merging a pair whenever Combine yields a non-chain result, and the walk
// repeats until a full pass merges nothing. A merge can enable a further
// merge with its new neighbor, which only a re-scan discovers; correctness
// of each merge is delegated to the children's Combine algebra.
func (c *ChainTransform) Simplified() Transform {
	flat := c.Flat()
	trs := flat.Transforms()
	if len(trs) == 0 {
		return NewNull()
	}
	for merged := true; merged; {
		merged = false
		out := []Transform{trs[0]}
		for _, t2 := range trs[1:] {
			t1 := out[len(out)-1]
			pr := t1.Combine(t2)
			if _, isChain := pr.(*ChainTransform); isChain {
				out = append(out, t2)
			} else {
				merged = true
				out[len(out)-1] = pr
			}
		}
		trs = out
	}
	if len(trs) != flat.Len() {
		Logger().Debug("simplified chain", "from", flat.Len(), "to", len(trs))
	}
	if len(trs) == 1 {
		return trs[0]
	}
	return NewChain(trs...)
}
