// Package plotting renders the diagnostic figures: ROC curves, training-loss
// curves, and projection scatter comparisons. It consumes already-computed
// numeric arrays and carries no algorithmic logic; rendering failures here
// never affect the scoring pipeline.
package plotting

import (
	"fmt"
	"image/color"

	"github.com/rs/zerolog/log"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

// Palette matching the evaluation figures: dark slate for real data, red for
// synthetic.
var (
	realColor  = color.NRGBA{R: 52, G: 73, B: 94, A: 76}
	synthColor = color.NRGBA{R: 231, G: 76, B: 60, A: 102}
	realSolid  = color.NRGBA{R: 52, G: 73, B: 94, A: 255}
	synthSolid = color.NRGBA{R: 231, G: 76, B: 60, A: 255}
)

// SaveROC renders an ROC curve with the chance diagonal and writes it to
// path. The curve is labeled with name in the legend.
func SaveROC(fpr, tpr []float64, name, path string) error {
	if len(fpr) != len(tpr) || len(fpr) == 0 {
		return fmt.Errorf("plotting: fpr/tpr length mismatch (%d vs %d)", len(fpr), len(tpr))
	}

	p := plot.New()
	p.Title.Text = "Receiver Operating Characteristic"
	p.X.Label.Text = "False Positive Rate"
	p.Y.Label.Text = "True Positive Rate"
	p.X.Min, p.X.Max = -0.05, 1.05
	p.Y.Min, p.Y.Max = -0.05, 1.05

	diag, err := plotter.NewLine(plotter.XYs{{X: 0, Y: 0}, {X: 1, Y: 1}})
	if err != nil {
		return err
	}
	diag.Color = synthSolid
	diag.Dashes = []vg.Length{vg.Points(4), vg.Points(4)}
	p.Add(diag)

	xys := make(plotter.XYs, len(fpr))
	for i := range fpr {
		xys[i] = plotter.XY{X: fpr[i], Y: tpr[i]}
	}
	curve, err := plotter.NewLine(xys)
	if err != nil {
		return err
	}
	curve.Color = realSolid
	p.Add(curve)
	p.Legend.Add(name, curve)
	p.Legend.Top = false

	if err := p.Save(6*vg.Inch, 6*vg.Inch, path); err != nil {
		return fmt.Errorf("save roc plot: %w", err)
	}
	log.Info().Str("path", path).Str("name", name).Msg("saved ROC plot")
	return nil
}
