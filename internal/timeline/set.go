package timeline

// Set is an unordered selection of facet values. Operations in this package
// never modify a Set in place; they return a fresh one.
type Set[T comparable] map[T]struct{}

// NewSet returns a Set holding items.
func NewSet[T comparable](items ...T) Set[T] {
	s := make(Set[T], len(items))
	for _, v := range items {
		s[v] = struct{}{}
	}
	return s
}

// Has reports membership.
func (s Set[T]) Has(v T) bool {
	_, ok := s[v]
	return ok
}

// Len returns the number of members.
func (s Set[T]) Len() int {
	return len(s)
}

// Clone returns an independent copy.
func (s Set[T]) Clone() Set[T] {
	out := make(Set[T], len(s))
	for v := range s {
		out[v] = struct{}{}
	}
	return out
}

// Equal reports whether both sets hold the same members.
func (s Set[T]) Equal(o Set[T]) bool {
	if len(s) != len(o) {
		return false
	}
	for v := range s {
		if !o.Has(v) {
			return false
		}
	}
	return true
}

// Ordered lists the members in universe order. Members outside the
// universe are dropped.
func (s Set[T]) Ordered(universe []T) []T {
	out := make([]T, 0, len(s))
	for _, v := range universe {
		if s.Has(v) {
			out = append(out, v)
		}
	}
	return out
}
