package residual

import (
	"fmt"
	"math"

	"github.com/alexiusacademia/gosfrc/internal/calibration"
)

// PredictFr1 evaluates the raw mean fR,1 model (MPa):
// fR,1 = 6.939 Vf^0.448 (lf/df)^0.377 fc^0.265 - 3.823
func PredictFr1(in MaterialInputs) (float64, error) {
	if err := checkDomain(Fr1, in); err != nil {
		return 0, err
	}
	c := calibration.Fr1
	lambda := in.Lf / in.Df
	raw := c.A*math.Pow(in.Vf, c.B)*math.Pow(lambda, c.C)*math.Pow(in.Fc, c.D) + c.Const
	return finite(Fr1, raw)
}

// PredictFr3 evaluates the raw mean fR,3 model (MPa):
// fR,3 = 12.000 Vf^0.613 (lf/df)^0.370 fc^0.247 (ffu/1000)^0.411 (lf/50)^0.313 - 1.506
func PredictFr3(in MaterialInputs) (float64, error) {
	if err := checkDomain(Fr3, in); err != nil {
		return 0, err
	}
	c := calibration.Fr3
	lambda := in.Lf / in.Df
	ffuStar := in.Ffu / calibration.FfuRef
	lfStar := in.Lf / calibration.LfRef
	raw := c.A*
		math.Pow(in.Vf, c.B)*
		math.Pow(lambda, c.C)*
		math.Pow(in.Fc, c.D)*
		math.Pow(ffuStar, c.E)*
		math.Pow(lfStar, c.F) + c.Const
	return finite(Fr3, raw)
}

// Raw dispatches to the model of target.
func Raw(target Target, in MaterialInputs) (float64, error) {
	switch target {
	case Fr1:
		return PredictFr1(in)
	case Fr3:
		return PredictFr3(in)
	}
	return 0, fmt.Errorf("invalid target %d", int(target))
}

type namedValue struct {
	name string
	v    float64
}

func checkDomain(target Target, in MaterialInputs) error {
	fields := []namedValue{{"df", in.Df}, {"lf", in.Lf}, {"Vf", in.Vf}, {"fc", in.Fc}}
	if target == Fr3 {
		fields = append(fields, namedValue{"ffu", in.Ffu})
	}
	for _, f := range fields {
		if math.IsNaN(f.v) || math.IsInf(f.v, 0) {
			return &DomainError{Target: target, Field: f.name, Value: f.v, Reason: "is not finite"}
		}
		if f.v <= 0 {
			return &DomainError{Target: target, Field: f.name, Value: f.v, Reason: "must be > 0"}
		}
	}
	return nil
}

func finite(target Target, v float64) (float64, error) {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, &DomainError{Target: target, Field: "result", Value: v, Reason: "is not finite"}
	}
	return v, nil
}

// Clamp applies the non-negativity safeguard.
func Clamp(x float64) float64 {
	return math.Max(0, x)
}

// Prediction is the mean/characteristic/design triple of one target.
type Prediction struct {
	Target         Target  `json:"target"`
	Raw            float64 `json:"raw"`  // unclamped mean (MPa)
	Mean           float64 `json:"mean"` // clamped mean (MPa)
	Characteristic float64 `json:"characteristic"`
	Design         float64 `json:"design"`
	Gamma          float64 `json:"gamma"`
	WasClamped     bool    `json:"was_clamped"`
	Profile        string  `json:"profile"`
}

// ScalingFor returns the profile factors of target.
func ScalingFor(target Target, p calibration.Profile) calibration.Scaling {
	if target == Fr3 {
		return p.Fr3
	}
	return p.Fr1
}

// Scale clamps raw and derives characteristic and design values.
func Scale(target Target, raw float64, p calibration.Profile) Prediction {
	s := ScalingFor(target, p)
	mean := Clamp(raw)
	return Prediction{
		Target:         target,
		Raw:            raw,
		Mean:           mean,
		Characteristic: s.KChar * mean,
		Design:         s.KDesign * mean,
		Gamma:          s.Gamma,
		WasClamped:     raw < 0,
		Profile:        p.ID,
	}
}

// Predict evaluates target for in and scales it with profile p.
func Predict(target Target, in MaterialInputs, p calibration.Profile) (Prediction, error) {
	raw, err := Raw(target, in)
	if err != nil {
		return Prediction{}, err
	}
	return Scale(target, raw, p), nil
}
