package projection

import (
	"fmt"
	"time"

	"github.com/danaugrs/go-tsne/tsne"
	"github.com/rs/zerolog/log"
	"gonum.org/v1/gonum/mat"

	"github.com/synthlab/ganmetrics/internal/dataset"
)

// TSNEConfig tunes the t-SNE optimization.
type TSNEConfig struct {
	Perplexity   float64
	LearningRate float64
	Iterations   int
}

// DefaultTSNEConfig returns the settings used by the combined scatter panels.
func DefaultTSNEConfig() TSNEConfig {
	return TSNEConfig{
		Perplexity:   30,
		LearningRate: 100,
		Iterations:   300,
	}
}

// EmbedTSNE embeds the reference table and any synthetic tables into 2D with
// a single t-SNE fit. t-SNE has no out-of-sample transform, so the rows are
// embedded jointly and split back afterwards; this keeps the real and
// synthetic point clouds in one coordinate frame.
func EmbedTSNE(ref *dataset.Table, synths []*dataset.Table, cfg TSNEConfig) (*mat.Dense, []*mat.Dense, error) {
	if ref == nil || ref.Rows() == 0 {
		return nil, nil, dataset.ErrEmptyInput
	}
	start := time.Now()

	combined := ref
	for i, s := range synths {
		if s == nil || s.Rows() == 0 {
			return nil, nil, fmt.Errorf("synthetic set %d: %w", i, dataset.ErrEmptyInput)
		}
		aligned, err := s.Align(ref.Columns())
		if err != nil {
			return nil, nil, fmt.Errorf("synthetic set %d: %w", i, err)
		}
		combined, err = combined.Concat(aligned)
		if err != nil {
			return nil, nil, err
		}
	}

	t := tsne.NewTSNE(2, cfg.Perplexity, cfg.LearningRate, cfg.Iterations, false)
	keepGoing := func(iter int, divergence float64, embedding mat.Matrix) bool { return false }
	embedded := mat.DenseCopyOf(t.EmbedData(combined.Matrix(), keepGoing))

	refEmbed := mat.DenseCopyOf(embedded.Slice(0, ref.Rows(), 0, 2))
	synthEmbeds := make([]*mat.Dense, len(synths))
	offset := ref.Rows()
	for i, s := range synths {
		synthEmbeds[i] = mat.DenseCopyOf(embedded.Slice(offset, offset+s.Rows(), 0, 2))
		offset += s.Rows()
	}

	log.Debug().
		Int("rows", combined.Rows()).
		Int("iterations", cfg.Iterations).
		Dur("elapsed", time.Since(start)).
		Msg("t-SNE embedding complete")

	return refEmbed, synthEmbeds, nil
}
