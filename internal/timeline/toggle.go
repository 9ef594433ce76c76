package timeline

// Toggle applies one chip click to a facet selection:
//
//   - everything selected: isolate clicked
//   - clicked is the only selection: reset to the whole universe
//   - otherwise: flip clicked in or out
//
// With a one-member universe the first two cases coincide and every click
// resets to all.
func Toggle[T comparable](s Set[T], universe []T, clicked T) Set[T] {
	all := NewSet(universe...)
	if s.Equal(all) {
		return NewSet(clicked)
	}
	if s.Len() == 1 && s.Has(clicked) {
		return all
	}

	out := s.Clone()
	if out.Has(clicked) {
		delete(out, clicked)
	} else {
		out[clicked] = struct{}{}
	}
	return out
}
