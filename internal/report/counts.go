package report

import (
	"slices"

	"leeter/internal/journal"
)

type KindCount struct {
	Kind  string
	Count int
}

// EventCounts groups a stream by kind and orders the groups by ascending
// count. Groups with equal counts keep the order their kind first appeared.
func EventCounts(records []journal.Record) []KindCount {
	index := make(map[string]int)
	counts := make([]KindCount, 0)
	for _, rec := range records {
		i, ok := index[rec.Kind]
		if !ok {
			i = len(counts)
			index[rec.Kind] = i
			counts = append(counts, KindCount{Kind: rec.Kind})
		}
		counts[i].Count++
	}

	slices.SortStableFunc(counts, func(a, b KindCount) int {
		return a.Count - b.Count
	})
	return counts
}
