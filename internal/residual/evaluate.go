package residual

import (
	"github.com/alexiusacademia/gosfrc/internal/calibration"
)

// Targets selects which strengths to compute.
type Targets struct {
	Fr1 bool `json:"fr1"`
	Fr3 bool `json:"fr3"`
}

// Any reports whether at least one target is selected.
func (t Targets) Any() bool {
	return t.Fr1 || t.Fr3
}

// List returns the selected targets in fR,1, fR,3 order.
func (t Targets) List() []Target {
	var out []Target
	if t.Fr1 {
		out = append(out, Fr1)
	}
	if t.Fr3 {
		out = append(out, Fr3)
	}
	return out
}

// Request is one "Compute" action.
type Request struct {
	Entry              Entry
	Targets            Targets
	AllowExtrapolation bool
}

// DefaultRequest computes both targets from DefaultEntry with extrapolation allowed.
func DefaultRequest() Request {
	return Request{
		Entry:              DefaultEntry(),
		Targets:            Targets{Fr1: true, Fr3: true},
		AllowExtrapolation: true,
	}
}

// Outcome is the result of one target: a prediction or a domain error.
type Outcome struct {
	Prediction *Prediction `json:"prediction,omitempty"`
	Error      string      `json:"error,omitempty"`
	Err        error       `json:"-"`
}

// OK reports whether a prediction was produced.
func (o *Outcome) OK() bool {
	return o != nil && o.Err == nil && o.Prediction != nil
}

// Results holds one Outcome per requested target; nil when not requested.
type Results struct {
	Fr1 *Outcome `json:"fr1,omitempty"`
	Fr3 *Outcome `json:"fr3,omitempty"`
}

// Get returns the outcome of target.
func (r Results) Get(target Target) *Outcome {
	if target == Fr3 {
		return r.Fr3
	}
	return r.Fr1
}

// Compute evaluates every requested target independently. It applies no
// gating: inputs outside the envelope are computed as given.
func Compute(in MaterialInputs, targets Targets, p calibration.Profile) Results {
	var res Results
	for _, target := range targets.List() {
		out := &Outcome{}
		pred, err := Predict(target, in, p)
		if err != nil {
			out.Err = err
			out.Error = err.Error()
		} else {
			out.Prediction = &pred
		}
		if target == Fr1 {
			res.Fr1 = out
		} else {
			res.Fr3 = out
		}
	}
	return res
}

// Report is the full output of Evaluate.
type Report struct {
	Inputs     MaterialInputs   `json:"inputs"`
	Validation ValidationResult `json:"validation"`
	Valid      bool             `json:"valid"`
	Blocked    bool             `json:"blocked"`
	Results    Results          `json:"results"`
}

// Evaluate runs validation, applies the extrapolation gate, then computes.
// When the gate blocks, Report.Blocked is set and Results is empty.
func Evaluate(req Request, p calibration.Profile) (Report, error) {
	if !req.Targets.Any() {
		return Report{}, ErrNoTarget
	}
	v := Validate(req.Entry, req.Targets.Fr3)
	rep := Report{
		Inputs:     req.Entry.Materials(),
		Validation: v,
		Valid:      v.Valid(),
	}
	if !CanCompute(v, req.AllowExtrapolation) {
		rep.Blocked = true
		return rep, nil
	}
	rep.Results = Compute(rep.Inputs, req.Targets, p)
	return rep, nil
}
