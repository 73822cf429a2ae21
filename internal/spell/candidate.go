package spell

import "sort"

// RankedCandidate is one replacement suggested by a Checker. Higher ranks are
// better matches.
type RankedCandidate struct {
	Text string
	Rank int
}

// SortByRank orders candidates best first. Equal ranks keep their input order.
func SortByRank(candidates []RankedCandidate) {
	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].Rank > candidates[j].Rank
	})
}

// Texts returns the candidate texts in order.
func Texts(candidates []RankedCandidate) []string {
	out := make([]string, len(candidates))
	for i, c := range candidates {
		out[i] = c.Text
	}
	return out
}
