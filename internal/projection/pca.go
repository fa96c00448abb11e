// Package projection provides the 2D projections backing the real-vs-synthetic
// scatter comparisons. The linear projection is fit exactly once on real data
// and the fitted basis is reused for every synthetic dataset, so scatter
// positions stay comparable across panels.
package projection

import (
	"errors"
	"fmt"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"

	"github.com/synthlab/ganmetrics/internal/dataset"
)

// ErrDegenerateFit reports reference data the decomposition cannot handle.
var ErrDegenerateFit = errors.New("projection: principal component fit failed")

// PCA is an immutable fitted linear projection. Obtain one with FitPCA and
// apply it with Transform; a fitted PCA is never refit.
type PCA struct {
	columns []string
	mean    []float64
	basis   *mat.Dense // d x dims, leading principal directions
	dims    int
}

// FitPCA computes the leading principal components of the reference table.
func FitPCA(ref *dataset.Table, dims int) (*PCA, error) {
	if ref == nil || ref.Rows() == 0 {
		return nil, dataset.ErrEmptyInput
	}
	if dims < 1 || dims > ref.Cols() {
		return nil, fmt.Errorf("projection: want 1..%d components, got %d", ref.Cols(), dims)
	}
	if ref.Rows() < 2 {
		return nil, fmt.Errorf("%w: need at least 2 rows", ErrDegenerateFit)
	}

	var pc stat.PC
	if ok := pc.PrincipalComponents(ref.Matrix(), nil); !ok {
		return nil, ErrDegenerateFit
	}
	var vecs mat.Dense
	pc.VectorsTo(&vecs)

	d := ref.Cols()
	basis := mat.NewDense(d, dims, nil)
	basis.Copy(vecs.Slice(0, d, 0, dims))

	mean := make([]float64, d)
	m := ref.Matrix()
	for j := range d {
		mean[j] = stat.Mean(mat.Col(nil, j, m), nil)
	}

	return &PCA{columns: ref.Columns(), mean: mean, basis: basis, dims: dims}, nil
}

// Dims returns the number of fitted components.
func (p *PCA) Dims() int {
	return p.dims
}

// Transform projects a schema-matching table onto the fitted basis, centering
// by the reference means. The returned matrix has one row per input row and
// one column per component.
func (p *PCA) Transform(t *dataset.Table) (*mat.Dense, error) {
	if t == nil || t.Rows() == 0 {
		return nil, dataset.ErrEmptyInput
	}
	t, err := t.Align(p.columns)
	if err != nil {
		return nil, err
	}

	n, d := t.Rows(), t.Cols()
	centered := mat.NewDense(n, d, nil)
	for i := range n {
		row := t.RawRow(i)
		for j := range d {
			centered.Set(i, j, row[j]-p.mean[j])
		}
	}

	out := mat.NewDense(n, p.dims, nil)
	out.Mul(centered, p.basis)
	return out, nil
}
