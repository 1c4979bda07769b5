package diagram

import (
	"fmt"
	"image/color"
	"math"
	"os"
	"path/filepath"
	"strings"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

var lineColors = []color.Color{
	color.RGBA{R: 0, G: 0, B: 200, A: 255},
	color.RGBA{R: 200, G: 0, B: 0, A: 255},
	color.RGBA{R: 0, G: 100, B: 0, A: 255},
	color.RGBA{R: 255, G: 140, B: 0, A: 255},
	color.RGBA{R: 128, G: 0, B: 128, A: 255},
	color.RGBA{R: 0, G: 128, B: 128, A: 255},
}

// SupportedFormats lists the export extensions gonum/plot can write.
var SupportedFormats = []string{".png", ".svg", ".pdf", ".jpg", ".jpeg", ".eps", ".tif", ".tiff"}

// ExportChart writes the chart to filename; the format follows the extension.
func ExportChart(data ChartData, filename string) error {
	ext := strings.ToLower(filepath.Ext(filename))
	supported := false
	for _, f := range SupportedFormats {
		if ext == f {
			supported = true
			break
		}
	}
	if !supported {
		return fmt.Errorf("unsupported diagram format %q (use png, svg or pdf)", ext)
	}

	p := plot.New()
	p.Title.Text = data.Title
	p.X.Label.Text = data.XLabel
	p.Y.Label.Text = data.YLabel
	p.Legend.Top = true
	p.Legend.Left = true

	yMin, yMax := math.Inf(1), math.Inf(-1)
	drawn := 0
	for i, s := range data.Series {
		pts := points(data.X, s.Y)
		if len(pts) == 0 {
			continue
		}
		line, err := plotter.NewLine(pts)
		if err != nil {
			return err
		}
		line.LineStyle.Width = vg.Points(2)
		line.LineStyle.Color = lineColors[i%len(lineColors)]
		if i >= len(lineColors) {
			line.LineStyle.Dashes = []vg.Length{vg.Points(4), vg.Points(2)}
		}
		p.Add(line)
		p.Legend.Add(s.Name, line)

		for _, pt := range pts {
			yMin = math.Min(yMin, pt.Y)
			yMax = math.Max(yMax, pt.Y)
		}
		drawn++
	}
	if drawn == 0 {
		return fmt.Errorf("nothing to plot: every point failed")
	}

	// Calibration envelope of the swept variable
	if data.EnvelopeMax > data.EnvelopeMin {
		for _, x := range []float64{data.EnvelopeMin, data.EnvelopeMax} {
			bound, err := plotter.NewLine(plotter.XYs{{X: x, Y: yMin}, {X: x, Y: yMax}})
			if err != nil {
				return err
			}
			bound.LineStyle.Width = vg.Points(1)
			bound.LineStyle.Color = color.Gray{Y: 128}
			bound.LineStyle.Dashes = []vg.Length{vg.Points(3), vg.Points(3)}
			p.Add(bound)
		}
	}

	p.Add(plotter.NewGrid())

	width := 8 * vg.Inch
	height := 5 * vg.Inch

	// Create directory if needed
	dir := filepath.Dir(filename)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return err
		}
	}

	return p.Save(width, height, filename)
}

func points(xs, ys []float64) plotter.XYs {
	pts := make(plotter.XYs, 0, len(xs))
	for i := range xs {
		if i >= len(ys) {
			break
		}
		if math.IsNaN(ys[i]) || math.IsInf(ys[i], 0) {
			continue
		}
		pts = append(pts, plotter.XY{X: xs[i], Y: ys[i]})
	}
	return pts
}
