package projection

import (
	"math"
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"

	"github.com/synthlab/ganmetrics/internal/dataset"
)

// anisotropicTable draws rows with one high-variance column so the leading
// principal direction is known.
func anisotropicTable(t *testing.T, rng *rand.Rand, rows int) *dataset.Table {
	t.Helper()
	data := make([][]float64, rows)
	for i := range data {
		data[i] = []float64{10 * rng.NormFloat64(), rng.NormFloat64(), 0.1 * rng.NormFloat64()}
	}
	tbl, err := dataset.New([]string{"a", "b", "c"}, data)
	require.NoError(t, err)
	return tbl
}

func TestFitPCAValidation(t *testing.T) {
	rng := rand.New(rand.NewPCG(1, 1))
	ref := anisotropicTable(t, rng, 50)

	_, err := FitPCA(nil, 2)
	require.ErrorIs(t, err, dataset.ErrEmptyInput)
	_, err = FitPCA(ref, 0)
	require.Error(t, err)
	_, err = FitPCA(ref, 4)
	require.Error(t, err)

	single, err := dataset.New([]string{"a"}, [][]float64{{1}})
	require.NoError(t, err)
	_, err = FitPCA(single, 1)
	require.ErrorIs(t, err, ErrDegenerateFit)
}

func TestPCATransformShape(t *testing.T) {
	rng := rand.New(rand.NewPCG(2, 2))
	ref := anisotropicTable(t, rng, 50)

	pca, err := FitPCA(ref, 2)
	require.NoError(t, err)
	require.Equal(t, 2, pca.Dims())

	out, err := pca.Transform(ref)
	require.NoError(t, err)
	r, c := out.Dims()
	require.Equal(t, 50, r)
	require.Equal(t, 2, c)
}

func TestPCALeadingComponentCapturesSpread(t *testing.T) {
	rng := rand.New(rand.NewPCG(3, 3))
	ref := anisotropicTable(t, rng, 200)

	pca, err := FitPCA(ref, 2)
	require.NoError(t, err)
	out, err := pca.Transform(ref)
	require.NoError(t, err)

	var var0, var1 float64
	n, _ := out.Dims()
	for i := range n {
		var0 += out.At(i, 0) * out.At(i, 0)
		var1 += out.At(i, 1) * out.At(i, 1)
	}
	require.Greater(t, var0, var1, "first component must carry the most variance")
}

// The fitted basis must be reused across datasets: transforming the same rows
// through the same PCA twice yields identical coordinates, and a dataset with
// reordered columns projects to the same points.
func TestPCAFitOnceApplyMany(t *testing.T) {
	rng := rand.New(rand.NewPCG(4, 4))
	ref := anisotropicTable(t, rng, 100)
	synth := anisotropicTable(t, rng, 40)

	pca, err := FitPCA(ref, 2)
	require.NoError(t, err)

	a, err := pca.Transform(synth)
	require.NoError(t, err)
	b, err := pca.Transform(synth)
	require.NoError(t, err)
	require.True(t, mat.Equal(a, b))

	reordered, err := synth.Align([]string{"c", "a", "b"})
	require.NoError(t, err)
	c, err := pca.Transform(reordered)
	require.NoError(t, err)
	require.True(t, mat.EqualApprox(a, c, 1e-12))
}

func TestPCATransformErrors(t *testing.T) {
	rng := rand.New(rand.NewPCG(5, 5))
	ref := anisotropicTable(t, rng, 30)
	pca, err := FitPCA(ref, 2)
	require.NoError(t, err)

	_, err = pca.Transform(nil)
	require.ErrorIs(t, err, dataset.ErrEmptyInput)

	other, err := dataset.New([]string{"a", "b", "z"}, [][]float64{{1, 2, 3}})
	require.NoError(t, err)
	_, err = pca.Transform(other)
	require.ErrorIs(t, err, dataset.ErrSchemaMismatch)
}

func TestEmbedTSNEShapes(t *testing.T) {
	rng := rand.New(rand.NewPCG(6, 6))
	ref := anisotropicTable(t, rng, 25)
	s1 := anisotropicTable(t, rng, 10)
	s2 := anisotropicTable(t, rng, 15)

	cfg := TSNEConfig{Perplexity: 5, LearningRate: 100, Iterations: 20}
	refEmbed, synthEmbeds, err := EmbedTSNE(ref, []*dataset.Table{s1, s2}, cfg)
	require.NoError(t, err)

	r, c := refEmbed.Dims()
	require.Equal(t, 25, r)
	require.Equal(t, 2, c)
	require.Len(t, synthEmbeds, 2)
	r, _ = synthEmbeds[0].Dims()
	require.Equal(t, 10, r)
	r, _ = synthEmbeds[1].Dims()
	require.Equal(t, 15, r)

	for i := range 25 {
		require.False(t, math.IsNaN(refEmbed.At(i, 0)))
		require.False(t, math.IsNaN(refEmbed.At(i, 1)))
	}
}
