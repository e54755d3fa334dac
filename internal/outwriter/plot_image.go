package outwriter

import (
	"fmt"
	"image/color"
	"os"

	"github.com/huangsam/lifespan/schema"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
)

// Image plot size.
const (
	plotImageWidth  = 8 * vg.Inch
	plotImageHeight = 6 * vg.Inch
)

var regimeRGBA = map[schema.Regime]color.RGBA{
	schema.ShockRegime:      {R: 0x1f, G: 0x4e, B: 0xd8, A: 0xff},
	schema.PersistentRegime: {R: 0xd6, G: 0x27, B: 0x28, A: 0xff},
}

// buildScatterPlot lays out the peak vs total attention scatter, one series per regime.
func buildScatterPlot(records []schema.MetricsRecord) (*plot.Plot, error) {
	p := plot.New()
	p.Title.Text = PlotTitle
	p.X.Label.Text = PlotXLabel
	p.Y.Label.Text = PlotYLabel
	p.Legend.Top = true
	p.Add(plotter.NewGrid())

	for _, regime := range schema.AllRegimes {
		var pts plotter.XYs
		for _, m := range records {
			if m.Regime == regime {
				pts = append(pts, plotter.XY{X: m.Peak, Y: m.TotalAttention})
			}
		}
		if len(pts) == 0 {
			continue
		}
		scatter, err := plotter.NewScatter(pts)
		if err != nil {
			return nil, fmt.Errorf("%s scatter: %w", regime, err)
		}
		scatter.GlyphStyle.Color = regimeRGBA[regime]
		scatter.GlyphStyle.Shape = draw.CircleGlyph{}
		scatter.GlyphStyle.Radius = vg.Points(3)
		p.Add(scatter)
		p.Legend.Add(string(regime), scatter)
	}
	return p, nil
}

// SavePlotImage writes the scatter plot to path. The image format follows the
// file extension.
func SavePlotImage(records []schema.MetricsRecord, path string) error {
	p, err := buildScatterPlot(records)
	if err != nil {
		return err
	}
	if err := p.Save(plotImageWidth, plotImageHeight, path); err != nil {
		return err
	}
	fmt.Fprintf(os.Stderr, "💾 Wrote plot to %s\n", path)
	return nil
}
