package diagram

import (
	"fmt"

	"github.com/alexiusacademia/gosfrc/internal/residual"
	"github.com/alexiusacademia/gosfrc/internal/sweep"
)

// SweepChart turns a sweep result into chart series, one per target and
// metric, e.g. "fR,1 mean".
func SweepChart(res *sweep.Result, base residual.Entry, targets residual.Targets, metrics []sweep.Metric) ChartData {
	data := ChartData{
		Title:  fmt.Sprintf("Residual flexural strength vs %s (profile %s)", res.Label, res.Profile),
		XLabel: res.Label,
		YLabel: "MPa",
	}
	for _, pt := range res.Points {
		data.X = append(data.X, pt.Value)
	}
	for _, target := range targets.List() {
		for _, m := range metrics {
			_, ys := res.Series(target, m)
			data.Series = append(data.Series, Series{
				Name: fmt.Sprintf("%s %s", target, m),
				Y:    ys,
			})
		}
	}
	if r, ok := res.Variable.Envelope(base); ok {
		data.EnvelopeMin, data.EnvelopeMax = r.Min, r.Max
	}
	return data
}
