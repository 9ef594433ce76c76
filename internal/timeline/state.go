package timeline

import (
	"ostimeline/internal/model"
)

// Bounds is the year span of the whole dataset.
type Bounds struct {
	Min int `json:"min"`
	Max int `json:"max"`
}

// Full returns the range covering every year in b.
func (b Bounds) Full() Range {
	return Range{From: b.Min, To: b.Max}
}

// Range is the inclusive year window used for overlap filtering.
type Range struct {
	From int `json:"from"`
	To   int `json:"to"`
}

// SetFrom moves the lower endpoint, clamped to [b.Min, r.To].
func (r Range) SetFrom(v int, b Bounds) Range {
	r.From = clamp(v, b.Min, r.To)
	return r
}

// SetTo moves the upper endpoint, clamped to [r.From, b.Max].
func (r Range) SetTo(v int, b Bounds) Range {
	r.To = clamp(v, r.From, b.Max)
	return r
}

// Clamp forces both endpoints into b and keeps From <= To.
func (r Range) Clamp(b Bounds) Range {
	from := clamp(r.From, b.Min, b.Max)
	to := clamp(r.To, from, b.Max)
	return Range{From: from, To: to}
}

// Overlaps reports whether the entry's active years intersect r.
func (r Range) Overlaps(e model.Entry) bool {
	return e.YearStart <= r.To && e.LastYear() >= r.From
}

func clamp(n, lo, hi int) int {
	if n < lo {
		return lo
	}
	if n > hi {
		return hi
	}
	return n
}

// State is a snapshot of every filter control. Methods return a new State;
// the receiver is left untouched.
type State struct {
	Query    string
	Types    Set[model.EntryType]
	Families Set[model.Family]
	Range    Range
}

// DefaultState selects everything over the full range with no query.
func DefaultState(b Bounds) State {
	return State{
		Types:    NewSet(model.Types...),
		Families: NewSet(model.Families...),
		Range:    b.Full(),
	}
}

func (s State) WithQuery(q string) State {
	s.Query = q
	return s
}

func (s State) ToggleType(t model.EntryType) State {
	s.Types = Toggle(s.Types, model.Types, t)
	return s
}

func (s State) ToggleFamily(f model.Family) State {
	s.Families = Toggle(s.Families, model.Families, f)
	return s
}

func (s State) WithFrom(year int, b Bounds) State {
	s.Range = s.Range.SetFrom(year, b)
	return s
}

func (s State) WithTo(year int, b Bounds) State {
	s.Range = s.Range.SetTo(year, b)
	return s
}

// AllTypes reports whether the type facet is unrestricted.
func (s State) AllTypes() bool {
	return s.Types.Equal(NewSet(model.Types...))
}

// AllFamilies reports whether the family facet is unrestricted.
func (s State) AllFamilies() bool {
	return s.Families.Equal(NewSet(model.Families...))
}
