package inference

import (
	"fmt"
	"math"
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/synthlab/ganmetrics/internal/dataset"
)

func TestNearestDistancesExact(t *testing.T) {
	synth, err := dataset.New([]string{"x", "y"}, [][]float64{
		{0, 0},
		{3, 4},
	})
	require.NoError(t, err)

	queries := [][]float64{
		{0, 0},   // on a synthetic point
		{1, 0},   // unit from origin
		{3, 3},   // unit from (3,4)
		{6, 8},   // 5 from (3,4), 10 from origin
		{1.5, 2}, // equidistant: 2.5 from both
	}
	want := []float64{0, 1, 1, 5, 2.5}

	got := nearestDistances(queries, synth, 2)
	require.Len(t, got, len(want))
	for i := range want {
		require.InDelta(t, want[i], got[i], 1e-12, "query %d", i)
	}
}

func TestNearestDistancesWorkerCounts(t *testing.T) {
	synth, err := dataset.New([]string{"x"}, [][]float64{{0}, {10}})
	require.NoError(t, err)

	queries := make([][]float64, 17)
	want := make([]float64, 17)
	for i := range queries {
		queries[i] = []float64{float64(i)}
		want[i] = math.Min(float64(i), math.Abs(float64(i)-10))
	}

	for _, workers := range []int{0, 1, 3, 17, 100} {
		got := nearestDistances(queries, synth, workers)
		for i := range want {
			require.InDelta(t, want[i], got[i], 1e-12, "workers=%d query=%d", workers, i)
		}
	}
}

func BenchmarkNearestDistances(b *testing.B) {
	sizes := []struct {
		refRows, synthRows, cols int
	}{
		{200, 200, 5},
		{200, 1000, 5},
		{1000, 1000, 10},
	}

	for _, size := range sizes {
		b.Run(fmt.Sprintf("Ref%d_Synth%d_Cols%d", size.refRows, size.synthRows, size.cols), func(b *testing.B) {
			rng := rand.New(rand.NewPCG(1, 1))
			queries := make([][]float64, size.refRows)
			for i := range queries {
				row := make([]float64, size.cols)
				for j := range row {
					row[j] = rng.NormFloat64()
				}
				queries[i] = row
			}
			rows := make([][]float64, size.synthRows)
			for i := range rows {
				row := make([]float64, size.cols)
				for j := range row {
					row[j] = rng.NormFloat64()
				}
				rows[i] = row
			}
			names := make([]string, size.cols)
			for j := range names {
				names[j] = fmt.Sprintf("f%d", j)
			}
			synth, err := dataset.New(names, rows)
			if err != nil {
				b.Fatal(err)
			}

			b.ResetTimer()
			for b.Loop() {
				_ = nearestDistances(queries, synth, 0)
			}
		})
	}
}
