package inference

import (
	"math"
	"runtime"
	"sync"

	"gonum.org/v1/gonum/floats"

	"github.com/synthlab/ganmetrics/internal/dataset"
)

// nearestDistances returns, for each query row, the Euclidean distance to its
// single nearest neighbor among the synthetic rows. Queries are fanned out
// across workers; callers observe a plain synchronous call.
func nearestDistances(queries [][]float64, synthetic *dataset.Table, workers int) []float64 {
	n := len(queries)
	dists := make([]float64, n)

	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	if workers > n {
		workers = n
	}
	chunk := (n + workers - 1) / workers

	var wg sync.WaitGroup
	for lo := 0; lo < n; lo += chunk {
		hi := min(lo+chunk, n)
		wg.Add(1)
		go func(lo, hi int) {
			defer wg.Done()
			for i := lo; i < hi; i++ {
				dists[i] = nearestDistance(queries[i], synthetic)
			}
		}(lo, hi)
	}
	wg.Wait()

	return dists
}

func nearestDistance(query []float64, synthetic *dataset.Table) float64 {
	best := math.Inf(1)
	for j := range synthetic.Rows() {
		if d := floats.Distance(query, synthetic.RawRow(j), 2); d < best {
			best = d
		}
	}
	return best
}
