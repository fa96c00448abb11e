package plotting

import (
	"fmt"
	"os"

	"github.com/rs/zerolog/log"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"
)

// gridRows/gridCols fix the combined-panel layout to a 2x3 grid, so at most
// six synthetic datasets are shown.
const (
	gridRows = 2
	gridCols = 3
)

// MaxGridPanels is the number of synthetic datasets a combined figure holds.
const MaxGridPanels = gridRows * gridCols

// SaveScatter renders the 2D projection of real data, optionally overlaid
// with one synthetic dataset, and writes it to path. Both matrices must have
// two columns.
func SaveScatter(ref, synth *mat.Dense, title, path string) error {
	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = "First Component"
	p.Y.Label.Text = "Second Component"

	rs, err := plotter.NewScatter(xysFromMatrix(ref))
	if err != nil {
		return err
	}
	rs.GlyphStyle.Color = realColor
	rs.GlyphStyle.Radius = vg.Points(2)
	p.Add(rs)
	p.Legend.Add("Original Data", rs)

	if synth != nil {
		ss, err := plotter.NewScatter(xysFromMatrix(synth))
		if err != nil {
			return err
		}
		ss.GlyphStyle.Color = synthColor
		ss.GlyphStyle.Radius = vg.Points(2)
		p.Add(ss)
		p.Legend.Add("Synthetic Data", ss)
	}

	if err := p.Save(8*vg.Inch, 8*vg.Inch, path); err != nil {
		return fmt.Errorf("save scatter plot: %w", err)
	}
	log.Info().Str("path", path).Str("title", title).Msg("saved scatter plot")
	return nil
}

// SaveScatterGrid renders a 2x3 panel figure. Every panel shows the real
// projection; panel i overlays the i-th synthetic projection under names[i].
// At most MaxGridPanels synthetic datasets are drawn.
func SaveScatterGrid(ref *mat.Dense, synths []*mat.Dense, names []string, path string) error {
	if len(synths) != len(names) {
		return fmt.Errorf("plotting: %d synthetic sets but %d names", len(synths), len(names))
	}
	if len(synths) > MaxGridPanels {
		return fmt.Errorf("plotting: grid holds at most %d panels, got %d", MaxGridPanels, len(synths))
	}

	realXYs := xysFromMatrix(ref)

	plots := make([][]*plot.Plot, gridRows)
	for r := range gridRows {
		plots[r] = make([]*plot.Plot, gridCols)
		for c := range gridCols {
			idx := r*gridCols + c
			p := plot.New()
			p.X.Label.Text = "First Component"
			p.Y.Label.Text = "Second Component"

			rs, err := plotter.NewScatter(realXYs)
			if err != nil {
				return err
			}
			rs.GlyphStyle.Color = realColor
			rs.GlyphStyle.Radius = vg.Points(1.5)
			p.Add(rs)

			if idx < len(synths) {
				p.Title.Text = names[idx]
				ss, err := plotter.NewScatter(xysFromMatrix(synths[idx]))
				if err != nil {
					return err
				}
				ss.GlyphStyle.Color = synthColor
				ss.GlyphStyle.Radius = vg.Points(1.5)
				p.Add(ss)
			}
			plots[r][c] = p
		}
	}

	img := vgimg.New(15*vg.Inch, 10*vg.Inch)
	dc := draw.New(img)
	tiles := draw.Tiles{
		Rows: gridRows,
		Cols: gridCols,
		PadX: vg.Millimeter * 2,
		PadY: vg.Millimeter * 2,
	}
	canvases := plot.Align(plots, tiles, dc)
	for r := range gridRows {
		for c := range gridCols {
			plots[r][c].Draw(canvases[r][c])
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("save scatter grid: %w", err)
	}
	defer f.Close()
	png := vgimg.PngCanvas{Canvas: img}
	if _, err := png.WriteTo(f); err != nil {
		return fmt.Errorf("save scatter grid: %w", err)
	}
	log.Info().Str("path", path).Int("panels", len(synths)).Msg("saved scatter grid")
	return nil
}

func xysFromMatrix(m *mat.Dense) plotter.XYs {
	n, _ := m.Dims()
	xys := make(plotter.XYs, n)
	for i := range n {
		xys[i] = plotter.XY{X: m.At(i, 0), Y: m.At(i, 1)}
	}
	return xys
}
