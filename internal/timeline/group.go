package timeline

import (
	"cmp"
	"slices"

	"ostimeline/internal/model"
)

// Bucket is one decade of the timeline.
type Bucket struct {
	Decade  int           `json:"decade"`
	Entries []model.Entry `json:"entries"`
}

// DecadeOf floors year to its decade: 1991 -> 1990, 2000 -> 2000.
func DecadeOf(year int) int {
	d := year / 10 * 10
	if year < 0 && year%10 != 0 {
		d -= 10
	}
	return d
}

// GroupByDecade buckets an already sorted list by the decade of yearStart.
// Buckets come out in ascending decade order and each keeps the input
// order of its entries.
func GroupByDecade(list []model.Entry) []Bucket {
	buckets := []Bucket{}
	index := make(map[int]int)

	for _, e := range list {
		d := DecadeOf(e.YearStart)
		i, ok := index[d]
		if !ok {
			i = len(buckets)
			index[d] = i
			buckets = append(buckets, Bucket{Decade: d})
		}
		buckets[i].Entries = append(buckets[i].Entries, e)
	}

	slices.SortStableFunc(buckets, func(a, b Bucket) int {
		return cmp.Compare(a.Decade, b.Decade)
	})
	return buckets
}
