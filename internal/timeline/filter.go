// Package timeline turns the dataset and a filter State into the ordered,
// decade-grouped view shared by the terminal and web front ends.
package timeline

import (
	"cmp"
	"slices"
	"strings"

	"ostimeline/internal/model"
)

// Filter returns the entries that pass every active filter, sorted by
// yearStart. Ties keep dataset order. The result is never nil, so an empty
// result can be told apart from one that was never computed.
func Filter(entries []model.Entry, st State) []model.Entry {
	q := strings.ToLower(strings.TrimSpace(st.Query))

	out := make([]model.Entry, 0, len(entries))
	for _, e := range entries {
		if !st.Range.Overlaps(e) {
			continue
		}
		if !st.Families.Has(e.Family) || !st.Types.Has(e.Type) {
			continue
		}
		if q != "" && !strings.Contains(SearchText(e), q) {
			continue
		}
		out = append(out, e)
	}

	slices.SortStableFunc(out, func(a, b model.Entry) int {
		return cmp.Compare(a.YearStart, b.YearStart)
	})
	return out
}

// SearchText is the lower-cased haystack a query is matched against: name,
// description, highlights and version labels. Release notes, platforms,
// family and type are deliberately absent.
func SearchText(e model.Entry) string {
	parts := make([]string, 0, 2+len(e.Highlights)+len(e.Versions))
	parts = append(parts, e.Name, e.Description)
	parts = append(parts, e.Highlights...)
	for _, v := range e.Versions {
		parts = append(parts, v.Version)
	}
	return strings.ToLower(strings.Join(parts, " "))
}
