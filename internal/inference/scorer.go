// Package inference implements the nearest-neighbor membership-inference
// estimator. Each real record (train or test) is scored by its Euclidean
// distance to the closest synthetic record; sweeping that distance as a
// classification threshold yields an ROC curve whose AUC summarizes how well
// proximity to the synthetic set separates train from test records.
package inference

import (
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/rs/zerolog/log"
	"gonum.org/v1/gonum/integrate"
	"gonum.org/v1/gonum/stat"

	"github.com/synthlab/ganmetrics/internal/dataset"
)

// DefaultSeed matches the seed used throughout the evaluation tooling.
const DefaultSeed = 1234

// Labels assigned to reference rows before shuffling.
const (
	TrainLabel = -1
	TestLabel  = 1
)

// Result holds the numeric membership-inference artifact: the ROC curve and
// its area. FPR and TPR have equal length, are non-decreasing, and span
// (0,0) through (1,1).
type Result struct {
	FPR []float64 `json:"fpr"`
	TPR []float64 `json:"tpr"`
	AUC float64   `json:"auc"`
}

// Len returns the number of points on the ROC curve.
func (r *Result) Len() int {
	return len(r.FPR)
}

// Scorer computes membership-inference scores. A Scorer carries no state
// between calls; every Score invocation is independent given its inputs and
// the configured seed.
type Scorer struct {
	seed    uint64
	workers int
}

// ScorerOption configures a Scorer.
type ScorerOption func(*Scorer)

// WithSeed fixes the seed of the reference-set permutation. The permutation
// only affects tie ordering in the threshold sweep, but a fixed seed keeps
// runs reproducible.
func WithSeed(seed uint64) ScorerOption {
	return func(s *Scorer) {
		s.seed = seed
	}
}

// WithWorkers bounds the parallelism of the nearest-neighbor query.
// Zero or negative selects one worker per CPU.
func WithWorkers(n int) ScorerOption {
	return func(s *Scorer) {
		s.workers = n
	}
}

// NewScorer builds a Scorer with the default seed unless overridden.
func NewScorer(opts ...ScorerOption) *Scorer {
	s := &Scorer{seed: DefaultSeed}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Score labels train rows -1 and test rows +1, shuffles the combined
// reference set, measures each reference row's distance to its nearest
// synthetic neighbor, and sweeps that distance as a decision threshold.
//
// Threshold convention: a reference row is predicted "test" when its
// distance to the synthetic set falls BELOW the threshold, i.e. smaller
// distances score toward the positive (+1, test) class. Under this
// convention a synthetic set that shadows the test records exactly drives
// the AUC toward 1.
func (s *Scorer) Score(train, test, synthetic *dataset.Table) (*Result, error) {
	start := time.Now()
	if err := validate(train, test, synthetic); err != nil {
		return nil, err
	}

	test, err := test.Align(train.Columns())
	if err != nil {
		return nil, fmt.Errorf("test set: %w", err)
	}
	synthetic, err = synthetic.Align(train.Columns())
	if err != nil {
		return nil, fmt.Errorf("synthetic set: %w", err)
	}

	ref, err := train.Concat(test)
	if err != nil {
		return nil, err
	}
	n := ref.Rows()
	labels := make([]int, n)
	for i := range labels {
		if i < train.Rows() {
			labels[i] = TrainLabel
		} else {
			labels[i] = TestLabel
		}
	}

	// Uniform permutation of rows and labels in lock-step, deterministic
	// under the configured seed.
	rng := rand.New(rand.NewPCG(s.seed, s.seed))
	order := rng.Perm(n)
	rows := make([][]float64, n)
	shuffled := make([]int, n)
	for i, j := range order {
		rows[i] = ref.RawRow(j)
		shuffled[i] = labels[j]
	}

	dists := nearestDistances(rows, synthetic, s.workers)

	// Negate so the ROC sweep treats small distances as strong "test"
	// evidence.
	y := make([]float64, n)
	classes := make([]bool, n)
	for i, d := range dists {
		y[i] = -d
		classes[i] = shuffled[i] == TestLabel
	}
	stat.SortWeightedLabeled(y, classes, nil)
	tpr, fpr, _ := stat.ROC(nil, y, classes, nil)
	auc := integrate.Trapezoidal(fpr, tpr)

	log.Debug().
		Int("reference_rows", n).
		Int("synthetic_rows", synthetic.Rows()).
		Float64("auc", auc).
		Dur("elapsed", time.Since(start)).
		Msg("membership inference scored")

	return &Result{FPR: fpr, TPR: tpr, AUC: auc}, nil
}

func validate(train, test, synthetic *dataset.Table) error {
	for _, in := range []struct {
		name string
		t    *dataset.Table
	}{
		{"train", train},
		{"test", test},
		{"synthetic", synthetic},
	} {
		if in.t == nil || in.t.Rows() == 0 {
			return fmt.Errorf("%s set: %w", in.name, dataset.ErrEmptyInput)
		}
	}
	if !train.SameSchema(test) {
		return fmt.Errorf("train vs test: %w", dataset.ErrSchemaMismatch)
	}
	if !train.SameSchema(synthetic) {
		return fmt.Errorf("train vs synthetic: %w", dataset.ErrSchemaMismatch)
	}
	return nil
}
