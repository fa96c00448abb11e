package plotting

import (
	"fmt"
	"path/filepath"

	"github.com/rs/zerolog/log"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/synthlab/ganmetrics/internal/trainlog"
)

// SaveLossCurves renders one figure per tracked series of the training log
// into dir (test_loss.png, gen_loss.png, disc_loss.png, time.png). Series
// absent from the log are skipped. Returns the paths written.
func SaveLossCurves(l *trainlog.Log, dir string) ([]string, error) {
	var written []string
	for _, series := range trainlog.Series {
		vals, ok := l.Get(series)
		if !ok || len(vals) == 0 {
			continue
		}

		p := plot.New()
		p.Title.Text = trainlog.Titles[series]
		p.X.Label.Text = "Epochs (in thousands)"

		xys := make(plotter.XYs, len(vals))
		for i, v := range vals {
			xys[i] = plotter.XY{X: float64(i), Y: v}
		}
		line, err := plotter.NewLine(xys)
		if err != nil {
			return written, err
		}
		line.Color = realSolid
		line.Width = vg.Points(1.5)
		p.Add(line)

		path := filepath.Join(dir, series+".png")
		if err := p.Save(6*vg.Inch, 6*vg.Inch, path); err != nil {
			return written, fmt.Errorf("save loss plot %s: %w", series, err)
		}
		written = append(written, path)
	}
	log.Info().Strs("paths", written).Msg("saved loss plots")
	return written, nil
}
