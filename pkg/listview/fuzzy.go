package listview

import (
	"sort"

	"github.com/lithammer/fuzzysearch/fuzzy"
)

// FuzzyFind ranks records against q using fuzzy matching over target and
// returns the matches ordered best-first. Used by the global search
// dropdown, where exact substring search is too strict.
func FuzzyFind[T any](records []T, q string, target func(T) string) []T {
	if q == "" {
		return records
	}

	type ranked struct {
		rec  T
		rank int
		idx  int
	}
	matches := make([]ranked, 0, len(records))
	for i, rec := range records {
		rank := fuzzy.RankMatchNormalizedFold(q, target(rec))
		if rank < 0 {
			continue
		}
		matches = append(matches, ranked{rec: rec, rank: rank, idx: i})
	}

	sort.SliceStable(matches, func(i, j int) bool {
		if matches[i].rank != matches[j].rank {
			return matches[i].rank < matches[j].rank
		}
		return matches[i].idx < matches[j].idx
	})

	out := make([]T, 0, len(matches))
	for _, m := range matches {
		out = append(out, m.rec)
	}
	return out
}
