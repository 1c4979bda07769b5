package sweep

import (
	"fmt"
	"math"
	"strings"

	"github.com/alexiusacademia/gosfrc/internal/calibration"
	"github.com/alexiusacademia/gosfrc/internal/residual"
	"gonum.org/v1/gonum/floats"
)

// Variable is the swept input.
type Variable string

const (
	Vf  Variable = "vf"
	Lf  Variable = "lf"
	Df  Variable = "df"
	Fc  Variable = "fc"
	Ffu Variable = "ffu"
)

// Variables lists the inputs that can be swept.
var Variables = []Variable{Vf, Lf, Df, Fc, Ffu}

// ParseVariable accepts the names in Variables, case-insensitively.
func ParseVariable(s string) (Variable, error) {
	v := Variable(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Variables {
		if v == known {
			return v, nil
		}
	}
	return "", fmt.Errorf("sweep: unknown variable %q (use vf, lf, df, fc or ffu)", s)
}

// Label returns the axis label of the variable. Vf and fc follow the
// unit/kind of the base entry.
func (v Variable) Label(base residual.Entry) string {
	switch v {
	case Vf:
		if base.VfUnit == residual.VfDecimal {
			return "Vf (decimal)"
		}
		return "Vf (%)"
	case Lf:
		return "lf (mm)"
	case Df:
		return "df (mm)"
	case Fc:
		if base.StrengthKind == residual.Cube {
			return "fcu (MPa)"
		}
		return "fc (MPa)"
	case Ffu:
		return "ffu (MPa)"
	}
	return string(v)
}

// Spec describes a linear sweep from From to To in Steps points.
type Spec struct {
	Variable Variable
	From     float64
	To       float64
	Steps    int
}

// Validate checks the span and step count.
func (s Spec) Validate() error {
	if s.Steps < 2 {
		return fmt.Errorf("sweep: steps must be at least 2, got %d", s.Steps)
	}
	for _, v := range []float64{s.From, s.To} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("sweep: bounds must be finite")
		}
	}
	if s.From == s.To {
		return fmt.Errorf("sweep: from and to must differ")
	}
	if _, err := ParseVariable(string(s.Variable)); err != nil {
		return err
	}
	return nil
}

// Point is one evaluated sweep point.
type Point struct {
	Value      float64          `json:"value"`
	InEnvelope bool             `json:"in_envelope"`
	Results    residual.Results `json:"results"`
	Violations []string         `json:"violations,omitempty"`
}

// Result is the ordered list of sweep points.
type Result struct {
	Variable Variable `json:"variable"`
	Label    string   `json:"label"`
	Profile  string   `json:"profile"`
	Points   []Point  `json:"points"`
}

// Run evaluates targets at every point of the sweep. Points are computed
// regardless of the validity envelope and flagged instead.
func Run(s Spec, base residual.Entry, targets residual.Targets, p calibration.Profile) (*Result, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}
	if !targets.Any() {
		return nil, residual.ErrNoTarget
	}

	res := &Result{
		Variable: s.Variable,
		Label:    s.Variable.Label(base),
		Profile:  p.ID,
		Points:   make([]Point, 0, s.Steps),
	}
	for _, x := range floats.Span(make([]float64, s.Steps), s.From, s.To) {
		e := set(base, s.Variable, x)
		v := residual.Validate(e, targets.Fr3)
		res.Points = append(res.Points, Point{
			Value:      x,
			InEnvelope: v.Valid(),
			Results:    residual.Compute(e.Materials(), targets, p),
			Violations: v.Messages(),
		})
	}
	return res, nil
}

func set(e residual.Entry, v Variable, x float64) residual.Entry {
	switch v {
	case Vf:
		e.Vf = x
	case Lf:
		e.Lf = x
	case Df:
		e.Df = x
	case Fc:
		e.Strength = x
	case Ffu:
		e.Ffu = x
	}
	return e
}

// Series extracts the x values and one metric of target. Points whose
// target failed are reported as NaN.
func (r *Result) Series(target residual.Target, metric Metric) (xs, ys []float64) {
	xs = make([]float64, len(r.Points))
	ys = make([]float64, len(r.Points))
	for i, pt := range r.Points {
		xs[i] = pt.Value
		out := pt.Results.Get(target)
		if !out.OK() {
			ys[i] = math.NaN()
			continue
		}
		ys[i] = metric.of(*out.Prediction)
	}
	return xs, ys
}

// Metric selects which value of a prediction to chart.
type Metric string

const (
	Mean           Metric = "mean"
	Characteristic Metric = "characteristic"
	Design         Metric = "design"
)

// Metrics lists every chartable value.
var Metrics = []Metric{Mean, Characteristic, Design}

func (m Metric) of(p residual.Prediction) float64 {
	switch m {
	case Characteristic:
		return p.Characteristic
	case Design:
		return p.Design
	}
	return p.Mean
}

// ParseMetric accepts mean, characteristic (or char) and design.
func ParseMetric(s string) (Metric, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "mean":
		return Mean, nil
	case "characteristic", "char", "k":
		return Characteristic, nil
	case "design", "d":
		return Design, nil
	}
	return "", fmt.Errorf("sweep: unknown metric %q (use mean, characteristic or design)", s)
}

// Envelope returns the validity range of the swept variable in the
// unit it is swept in. ok is false when the variable has no direct
// range (lf and df are only bounded through lambda).
func (v Variable) Envelope(base residual.Entry) (r calibration.ValidityRange, ok bool) {
	switch v {
	case Vf:
		if base.VfUnit == residual.VfDecimal {
			return calibration.VfDecimalRange, true
		}
		return calibration.VfPercentRange, true
	case Fc:
		r = calibration.FcRange
		if base.StrengthKind == residual.Cube {
			r = calibration.ValidityRange{Min: r.Min / calibration.FcFromFcu, Max: r.Max / calibration.FcFromFcu}
		}
		return r, true
	case Ffu:
		return calibration.FfuRange, true
	case Lf:
		if base.Df > 0 {
			lr := calibration.LambdaRange
			return calibration.ValidityRange{Min: lr.Min * base.Df, Max: lr.Max * base.Df}, true
		}
	case Df:
		if base.Lf > 0 {
			lr := calibration.LambdaRange
			return calibration.ValidityRange{Min: base.Lf / lr.Max, Max: base.Lf / lr.Min}, true
		}
	}
	return calibration.ValidityRange{}, false
}
