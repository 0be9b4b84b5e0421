package export

import (
	"errors"
	"fmt"
	"image/color"

	"github.com/soypat/cavity"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
)

// Plot dimensions.
const (
	PlotWidth  = 6 * vg.Inch
	PlotHeight = 4 * vg.Inch
)

// Plot returns a scatter chart of cavity volume against both shape
// exponents. Failed shapes are left out.
func Plot(table cavity.Table) (*plot.Plot, error) {
	var byM, byN plotter.XYs
	for _, r := range table {
		if !r.OK() {
			continue
		}
		byM = append(byM, plotter.XY{X: r.M, Y: r.Volume})
		byN = append(byN, plotter.XY{X: r.N, Y: r.Volume})
	}
	if len(byM) == 0 {
		return nil, errors.New("no computed volumes to plot")
	}
	p := plot.New()
	p.Title.Text = "Cavity volume"
	p.X.Label.Text = "exponent"
	p.Y.Label.Text = "volume"
	p.Add(plotter.NewGrid())
	for _, series := range []struct {
		name  string
		xys   plotter.XYs
		color color.Color
		shape draw.GlyphDrawer
	}{
		{"m", byM, color.RGBA{R: 200, A: 255}, draw.CircleGlyph{}},
		{"n", byN, color.RGBA{B: 200, A: 255}, draw.TriangleGlyph{}},
	} {
		s, err := plotter.NewScatter(series.xys)
		if err != nil {
			return nil, err
		}
		s.GlyphStyle.Color = series.color
		s.GlyphStyle.Shape = series.shape
		p.Add(s)
		p.Legend.Add(series.name, s)
	}
	return p, nil
}

// WritePlot saves the chart of table to path. The image format is taken
// from the file extension.
func WritePlot(path string, table cavity.Table) error {
	p, err := Plot(table)
	if err != nil {
		return fmt.Errorf("%w: %v", cavity.ErrExport, err)
	}
	if err := p.Save(PlotWidth, PlotHeight, path); err != nil {
		return fmt.Errorf("%w: %v", cavity.ErrExport, err)
	}
	return nil
}
