package collision

import (
	"runtime"
	"sync"

	"github.com/eschmidt42/hardspheres-2d/internal/gas"
	"github.com/eschmidt42/hardspheres-2d/internal/grid"
)

// Detector finds all particle pairs currently in contact, using the
// closed test dist(i, j) <= r_i + r_j: exact tangency counts as contact.
// It never mutates state and never decides resolution order.
type Detector struct {
	workers int
}

func NewDetector() *Detector {
	return &Detector{workers: runtime.NumCPU()}
}

// serialCutoff is the particle count below which spawning workers costs
// more than the sweep itself.
const serialCutoff = 256

// Find returns every contacting pair exactly once, sorted ascending by
// (I, J), using the bin index for candidate lookup. Cost is O(N) for
// roughly uniform disk sizes and densities.
func (d *Detector) Find(st *gas.State, g *grid.Index) []Pair {
	var pairs []Pair
	if st.N() < serialCutoff || d.workers <= 1 {
		pairs = appendContacts(st, g, 0, st.N(), nil)
	} else {
		pairs = d.findParallel(st, g)
	}
	sortPairs(pairs)
	return pairs
}

// appendContacts sweeps particles [start, end) against their bin
// neighborhoods. The canonical j > i rule keeps each unordered pair
// reported once even when its members sit in different bins.
func appendContacts(st *gas.State, g *grid.Index, start, end int, out []Pair) []Pair {
	for i := start; i < end; i++ {
		pi := st.Pos[i]
		ri := st.Radius[i]
		g.ForEachNeighbor(pi, func(j int) bool {
			if j <= i {
				return false
			}
			contact := ri + st.Radius[j]
			if pi.DistanceSquared(st.Pos[j]) <= contact*contact {
				out = append(out, Pair{I: i, J: j})
			}
			return false
		})
	}
	return out
}

// findParallel chunks the particle range across workers. Each worker
// reads the shared index and collects into its own slice; the merge is
// re-sorted by the caller, so the result is identical to the serial path.
func (d *Detector) findParallel(st *gas.State, g *grid.Index) []Pair {
	n := st.N()
	local := make([][]Pair, d.workers)

	var wg sync.WaitGroup
	chunkSize := (n + d.workers - 1) / d.workers

	for w := 0; w < d.workers; w++ {
		wg.Add(1)
		go func(worker int) {
			defer wg.Done()

			start := worker * chunkSize
			end := start + chunkSize
			if end > n {
				end = n
			}
			if start >= end {
				return
			}
			local[worker] = appendContacts(st, g, start, end, nil)
		}(w)
	}

	wg.Wait()

	var pairs []Pair
	for _, l := range local {
		pairs = append(pairs, l...)
	}
	return pairs
}

// FindBrute checks every pair directly. O(N^2); this is the reference the
// binned path is validated against.
func (d *Detector) FindBrute(st *gas.State) []Pair {
	var pairs []Pair
	for i := 0; i < st.N(); i++ {
		for j := i + 1; j < st.N(); j++ {
			contact := st.Radius[i] + st.Radius[j]
			if st.Pos[i].DistanceSquared(st.Pos[j]) <= contact*contact {
				pairs = append(pairs, Pair{I: i, J: j})
			}
		}
	}
	return pairs
}
