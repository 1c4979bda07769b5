package residual

import (
	"fmt"

	"github.com/alexiusacademia/gosfrc/internal/calibration"
)

// Violation fields
const (
	FieldPositivity = "positivity"
	FieldVf         = "vf"
	FieldFc         = "fc"
	FieldLambda     = "lambda"
	FieldFfu        = "ffu"
)

// Violation is one advisory message. It never stops a computation.
type Violation struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (v Violation) String() string {
	return v.Message
}

// Checked holds the values the validator compared.
type Checked struct {
	Vf            float64 `json:"vf"` // as entered
	VfUnit        string  `json:"vf_unit"`
	VfDecimal     float64 `json:"vf_decimal"`
	Fc            float64 `json:"fc"`
	Lambda        float64 `json:"lambda,omitempty"`
	LambdaDefined bool    `json:"lambda_defined"`
	Ffu           float64 `json:"ffu"`
	FfuChecked    bool    `json:"ffu_checked"`
}

// ValidationResult lists the violations in check order.
type ValidationResult struct {
	Violations []Violation `json:"violations"`
	Checked    Checked     `json:"checked"`
}

// Valid reports whether no violation was found.
func (r ValidationResult) Valid() bool {
	return len(r.Violations) == 0
}

// Messages returns the violation messages in order.
func (r ValidationResult) Messages() []string {
	out := make([]string, len(r.Violations))
	for i, v := range r.Violations {
		out[i] = v.Message
	}
	return out
}

// Count returns the number of violations for field.
func (r ValidationResult) Count(field string) int {
	n := 0
	for _, v := range r.Violations {
		if v.Field == field {
			n++
		}
	}
	return n
}

// Validate compares the entry against the calibration envelope.
// All checks run; violations are returned in this order:
// positivity, Vf, fc, lambda, ffu (the last only when wantFr3).
func Validate(e Entry, wantFr3 bool) ValidationResult {
	in := e.Materials()
	res := ValidationResult{
		Violations: []Violation{},
		Checked: Checked{
			Vf:        e.Vf,
			VfUnit:    e.VfUnit.String(),
			VfDecimal: in.Vf,
			Fc:        in.Fc,
			Ffu:       in.Ffu,
		},
	}
	add := func(field, format string, args ...any) {
		res.Violations = append(res.Violations, Violation{Field: field, Message: fmt.Sprintf(format, args...)})
	}

	// Positivity
	if !(in.Vf > 0 && in.Lf > 0 && in.Df > 0 && in.Fc > 0) {
		add(FieldPositivity, "Inputs Vf, lf, df, and fc must be positive.")
	}

	// Vf, compared in the unit it was entered in
	if e.VfUnit == VfPercent {
		r := calibration.VfPercentRange
		if !r.Contains(e.Vf) {
			add(FieldVf, "Vf = %.3f%% is outside [%g, %g]%%.", e.Vf, r.Min, r.Max)
		}
	} else {
		r := calibration.VfDecimalRange
		if !r.Contains(e.Vf) {
			add(FieldVf, "Vf = %.6f is outside [%g, %g].", e.Vf, r.Min, r.Max)
		}
	}

	// fc, whether entered directly or converted from fcu
	if r := calibration.FcRange; !r.Contains(in.Fc) {
		add(FieldFc, "fc = %.2f MPa is outside [%g, %g] MPa.", in.Fc, r.Min, r.Max)
	}

	// Slenderness, skipped when df <= 0 (already a positivity violation)
	if lambda, ok := in.Lambda(); ok {
		res.Checked.Lambda = lambda
		res.Checked.LambdaDefined = true
		if r := calibration.LambdaRange; !r.Contains(lambda) {
			add(FieldLambda, "lambda = lf/df = %.2f is outside [%g, %g].", lambda, r.Min, r.Max)
		}
	}

	if wantFr3 {
		res.Checked.FfuChecked = true
		if r := calibration.FfuRange; !r.Contains(in.Ffu) {
			add(FieldFfu, "ffu = %.0f MPa is outside [%g, %g] MPa.", in.Ffu, r.Min, r.Max)
		}
	}

	return res
}

// CanCompute is the caller-side extrapolation gate: predictions are
// allowed when the inputs are valid or extrapolation is permitted.
func CanCompute(v ValidationResult, allowExtrapolation bool) bool {
	return allowExtrapolation || v.Valid()
}
