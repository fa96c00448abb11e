// Command metrics renders the diagnostic artifacts for one or more synthetic
// datasets against a real train/test split: membership-inference ROC curves
// and AUCs, PCA (and optionally t-SNE) scatter comparisons, and training-loss
// curves when a training log is supplied.
package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/bytedance/sonic"
	"github.com/rs/zerolog/log"
	"gonum.org/v1/gonum/mat"

	"github.com/synthlab/ganmetrics/internal/config"
	"github.com/synthlab/ganmetrics/internal/dataset"
	"github.com/synthlab/ganmetrics/internal/inference"
	"github.com/synthlab/ganmetrics/internal/plotting"
	"github.com/synthlab/ganmetrics/internal/projection"
	"github.com/synthlab/ganmetrics/internal/trainlog"
	"github.com/synthlab/ganmetrics/internal/utils/logger"
)

type datasetReport struct {
	Name string `json:"name"`
	*inference.Result
}

type report struct {
	Datasets []datasetReport `json:"datasets"`
}

func main() {
	var (
		trainPath = flag.String("train", "", "training data CSV (optionally .zst)")
		testPath  = flag.String("test", "", "test data CSV (optionally .zst)")
		synthList = flag.String("synth", "", "comma-separated synthetic data CSVs")
		lossPath  = flag.String("losslog", "", "JSON training log (optional)")
		name      = flag.String("name", "", "plot label when a single synthetic dataset is given")
		withTSNE  = flag.Bool("tsne", false, "also render the t-SNE scatter grid")
	)
	logger.Init()

	cfg, err := config.LoadMetricsEnv()
	if err != nil {
		log.Fatal().Err(err).Msg("loading config")
	}
	if *trainPath == "" || *testPath == "" || *synthList == "" {
		log.Fatal().Msg("usage: metrics -train train.csv -test test.csv -synth a.csv[,b.csv...]")
	}
	if err := os.MkdirAll(cfg.PlotsDir, 0o755); err != nil {
		log.Fatal().Err(err).Msg("creating plots directory")
	}

	train := mustLoad(*trainPath)
	test := mustLoad(*testPath)

	synthPaths := strings.Split(*synthList, ",")
	synths := make([]*dataset.Table, len(synthPaths))
	labels := make([]string, len(synthPaths))
	for i, p := range synthPaths {
		synths[i] = mustLoad(p)
		labels[i] = strings.TrimSuffix(filepath.Base(p), filepath.Ext(p))
	}
	if *name != "" && len(labels) == 1 {
		labels[0] = *name
	}

	scorer := inference.NewScorer(
		inference.WithSeed(cfg.Seed),
		inference.WithWorkers(cfg.Workers),
	)

	rep := report{}
	aucs := make([]float64, len(synths))
	for i, s := range synths {
		res, err := scorer.Score(train, test, s)
		if err != nil {
			log.Fatal().Err(err).Str("dataset", labels[i]).Msg("membership inference failed")
		}
		aucs[i] = res.AUC
		rep.Datasets = append(rep.Datasets, datasetReport{Name: labels[i], Result: res})

		path := filepath.Join(cfg.OutputDir, fmt.Sprintf("membership_inference_auc_%s.png", labels[i]))
		if err := plotting.SaveROC(res.FPR, res.TPR, labels[i], path); err != nil {
			log.Error().Err(err).Str("dataset", labels[i]).Msg("ROC plot failed")
		}
	}

	if err := writeReport(rep, filepath.Join(cfg.OutputDir, "membership_inference_report.json")); err != nil {
		log.Fatal().Err(err).Msg("writing report")
	}

	renderScatterPlots(train, test, synths, labels, cfg, *withTSNE)

	if *lossPath != "" {
		l, err := trainlog.Load(*lossPath)
		if err != nil {
			log.Fatal().Err(err).Msg("loading training log")
		}
		if _, err := plotting.SaveLossCurves(l, cfg.PlotsDir); err != nil {
			log.Error().Err(err).Msg("loss plots failed")
		}
	}

	plotting.WriteAUCTerminal(os.Stdout, labels, aucs)
}

func renderScatterPlots(train, test *dataset.Table, synths []*dataset.Table, labels []string, cfg *config.MetricsEnvConfig, withTSNE bool) {
	aligned, err := test.Align(train.Columns())
	if err != nil {
		log.Error().Err(err).Msg("aligning test set for projection")
		return
	}
	ref, err := train.Concat(aligned)
	if err != nil {
		log.Error().Err(err).Msg("combining reference set for projection")
		return
	}

	// One PCA basis fit on real data, reused for every synthetic dataset.
	pca, err := projection.FitPCA(ref, 2)
	if err != nil {
		log.Error().Err(err).Msg("PCA fit failed")
		return
	}
	refPts, err := pca.Transform(ref)
	if err != nil {
		log.Error().Err(err).Msg("PCA transform failed")
		return
	}

	synthPts := make([]*mat.Dense, len(synths))
	for i, s := range synths {
		pts, err := pca.Transform(s)
		if err != nil {
			log.Error().Err(err).Str("dataset", labels[i]).Msg("PCA transform failed")
			return
		}
		synthPts[i] = pts
	}

	if len(synthPts) == 1 {
		path := filepath.Join(cfg.PlotsDir, "Two Component PCA_real_syn.png")
		if err := plotting.SaveScatter(refPts, synthPts[0], "Two Component PCA", path); err != nil {
			log.Error().Err(err).Msg("PCA scatter failed")
		}
	} else {
		path := filepath.Join(cfg.PlotsDir, "combined_pca.png")
		if err := plotting.SaveScatterGrid(refPts, synthPts, labels, path); err != nil {
			log.Error().Err(err).Msg("PCA grid failed")
		}
	}

	if withTSNE {
		refEmbed, synthEmbeds, err := projection.EmbedTSNE(ref, synths, projection.DefaultTSNEConfig())
		if err != nil {
			log.Error().Err(err).Msg("t-SNE embedding failed")
			return
		}
		if err := plotting.SaveScatterGrid(refEmbed, synthEmbeds, labels, filepath.Join(cfg.PlotsDir, "combined_tsne.png")); err != nil {
			log.Error().Err(err).Msg("t-SNE grid failed")
		}
	}
}

func writeReport(rep report, path string) error {
	data, err := sonic.MarshalIndent(rep, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

func mustLoad(path string) *dataset.Table {
	t, err := dataset.Load(path)
	if err != nil {
		log.Fatal().Err(err).Str("path", path).Msg("loading table")
	}
	return t
}
