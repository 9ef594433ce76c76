// Package dataset holds the immutable collection of timeline entries.
package dataset

import (
	"ostimeline/internal/model"
)

// Dataset is loaded once and never mutated. It is safe for concurrent
// readers.
type Dataset struct {
	entries []model.Entry
	byID    map[string]int
	minYear int
	maxYear int
}

// New builds a Dataset from already-validated entries. The slice is copied.
func New(entries []model.Entry) *Dataset {
	ds := &Dataset{
		entries: make([]model.Entry, len(entries)),
		byID:    make(map[string]int, len(entries)),
	}
	copy(ds.entries, entries)

	for i, e := range ds.entries {
		ds.byID[e.ID] = i
		if i == 0 || e.YearStart < ds.minYear {
			ds.minYear = e.YearStart
		}
		if i == 0 || e.LastYear() > ds.maxYear {
			ds.maxYear = e.LastYear()
		}
	}
	return ds
}

// Entries returns the entries in declaration order. Callers must not
// modify the returned slice or its elements.
func (d *Dataset) Entries() []model.Entry {
	return d.entries
}

// Len returns the number of entries.
func (d *Dataset) Len() int {
	return len(d.entries)
}

// Bounds returns the earliest yearStart and the latest yearEnd (or
// yearStart when absent) across the dataset.
func (d *Dataset) Bounds() (minYear, maxYear int) {
	return d.minYear, d.maxYear
}

// Lookup finds an entry by id.
func (d *Dataset) Lookup(id string) (model.Entry, bool) {
	i, ok := d.byID[id]
	if !ok {
		return model.Entry{}, false
	}
	return d.entries[i], true
}

// Related resolves e.Related in order. Ids that don't resolve are skipped.
func (d *Dataset) Related(e model.Entry) []model.Entry {
	var out []model.Entry
	for _, id := range e.Related {
		if r, ok := d.Lookup(id); ok {
			out = append(out, r)
		}
	}
	return out
}
