package batch

import (
	"github.com/alexiusacademia/gosfrc/internal/residual"
	"github.com/montanaflynn/stats"
)

// Summary describes the spread of the mean predictions of one target over
// the cases that produced a value.
type Summary struct {
	Target residual.Target `json:"target"`
	Count  int             `json:"count"`
	Min    float64         `json:"min"`
	Max    float64         `json:"max"`
	Mean   float64         `json:"mean"`
	StdDev float64         `json:"std_dev"`
}

// Summarize aggregates the successful outcomes for target. ok is false when
// no case produced a value.
func Summarize(results []Result, target residual.Target) (s Summary, ok bool) {
	var data stats.Float64Data
	for _, r := range results {
		if r.Report == nil {
			continue
		}
		if o := r.Report.Results.Get(target); o.OK() {
			data = append(data, o.Prediction.Mean)
		}
	}
	if len(data) == 0 {
		return Summary{Target: target}, false
	}

	s = Summary{Target: target, Count: len(data)}
	s.Min, _ = stats.Min(data)
	s.Max, _ = stats.Max(data)
	s.Mean, _ = stats.Mean(data)
	s.StdDev, _ = stats.StandardDeviationPopulation(data)
	return s, true
}
