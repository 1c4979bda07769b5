package diagram

import (
	"fmt"
	"math"
	"strings"

	"github.com/guptarohit/asciigraph"
)

// Series is one named curve of a chart.
type Series struct {
	Name string
	Y    []float64 // NaN marks a gap
}

// ChartData holds the curves of a sweep chart sharing one x axis.
type ChartData struct {
	Title  string
	XLabel string
	YLabel string
	X      []float64
	Series []Series

	// Envelope bounds of the swept variable, drawn as reference lines
	// in exported charts. Zero values mean no bounds.
	EnvelopeMin float64
	EnvelopeMax float64
}

var seriesColors = []asciigraph.AnsiColor{
	asciigraph.Blue,
	asciigraph.Red,
	asciigraph.Green,
	asciigraph.Orange,
	asciigraph.Purple,
	asciigraph.Teal,
}

// DrawASCIIChart renders the chart for a terminal.
func DrawASCIIChart(data ChartData, width, height int) string {
	if len(data.X) == 0 || len(data.Series) == 0 {
		return ""
	}

	ys := make([][]float64, 0, len(data.Series))
	names := make([]string, 0, len(data.Series))
	colors := make([]asciigraph.AnsiColor, 0, len(data.Series))
	for _, s := range data.Series {
		if !hasValue(s.Y) {
			continue
		}
		ys = append(ys, s.Y)
		names = append(names, s.Name)
		colors = append(colors, seriesColors[len(colors)%len(seriesColors)])
	}
	if len(ys) == 0 {
		return ""
	}

	opts := []asciigraph.Option{
		asciigraph.Height(height),
		asciigraph.Precision(2),
		asciigraph.SeriesColors(colors...),
		asciigraph.SeriesLegends(names...),
		asciigraph.Caption(fmt.Sprintf("%s vs %s [%g .. %g]", data.YLabel, data.XLabel, data.X[0], data.X[len(data.X)-1])),
	}
	if width > 0 {
		opts = append(opts, asciigraph.Width(width))
	}

	var sb strings.Builder
	if data.Title != "" {
		sb.WriteString("  " + data.Title + "\n\n")
	}
	sb.WriteString(asciigraph.PlotMany(ys, opts...))
	sb.WriteString("\n")
	return sb.String()
}

// DrawSummaryBox creates a summary box for results
func DrawSummaryBox(title string, lines []string) string {
	var sb strings.Builder

	maxLen := len([]rune(title))
	for _, line := range lines {
		if n := len([]rune(line)); n > maxLen {
			maxLen = n
		}
	}
	maxLen += 4

	border := strings.Repeat("═", maxLen)
	sb.WriteString(fmt.Sprintf("  ╔%s╗\n", border))
	sb.WriteString(fmt.Sprintf("  ║  %s  ║\n", pad(title, maxLen-4)))
	sb.WriteString(fmt.Sprintf("  ╠%s╣\n", border))
	for _, line := range lines {
		sb.WriteString(fmt.Sprintf("  ║  %s  ║\n", pad(line, maxLen-4)))
	}
	sb.WriteString(fmt.Sprintf("  ╚%s╝\n", border))

	return sb.String()
}

// pad right-pads s to n runes; %-*s counts bytes and misaligns "γ" or "²".
func pad(s string, n int) string {
	if k := n - len([]rune(s)); k > 0 {
		return s + strings.Repeat(" ", k)
	}
	return s
}

func hasValue(ys []float64) bool {
	for _, y := range ys {
		if !math.IsNaN(y) && !math.IsInf(y, 0) {
			return true
		}
	}
	return false
}
