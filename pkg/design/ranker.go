package design

import "sort"

// RankedCandidate pairs a candidate with its ensemble statistics.
type RankedCandidate struct {
	Candidate Candidate      `json:"candidate"`
	Result    EnsembleResult `json:"result"`
}

// Rank orders the scored candidates and returns the top n. The comparator is
// explicit: mean score descending, then dispersion ascending (lower
// uncertainty wins among equal means). Remaining ties keep generation order
// via the stable sort. Fewer than n inputs are returned whole, in order.
func Rank(scored []RankedCandidate, n int) []RankedCandidate {
	out := make([]RankedCandidate, len(scored))
	copy(out, scored)

	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Result.Mean != out[j].Result.Mean {
			return out[i].Result.Mean > out[j].Result.Mean
		}
		return out[i].Result.StdDev < out[j].Result.StdDev
	})

	if n < len(out) && n >= 0 {
		out = out[:n]
	}
	return out
}
