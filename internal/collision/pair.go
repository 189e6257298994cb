package collision

import "sort"

// Pair is an unordered particle pair in canonical form, I < J.
type Pair struct {
	I, J int
}

func sortPairs(pairs []Pair) {
	sort.Slice(pairs, func(a, b int) bool {
		if pairs[a].I != pairs[b].I {
			return pairs[a].I < pairs[b].I
		}
		return pairs[a].J < pairs[b].J
	})
}
