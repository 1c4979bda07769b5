package residual

import (
	"errors"
	"fmt"
)

// Form is the serialisable shape of a Request, used by batch files and the
// HTTP API. Omitted fields take the values of DefaultRequest.
type Form struct {
	Vf                 *float64 `json:"vf,omitempty" yaml:"vf,omitempty"`
	VfUnit             string   `json:"vf_unit,omitempty" yaml:"vf_unit,omitempty"`
	Lf                 *float64 `json:"lf,omitempty" yaml:"lf,omitempty"`
	Df                 *float64 `json:"df,omitempty" yaml:"df,omitempty"`
	Fc                 *float64 `json:"fc,omitempty" yaml:"fc,omitempty"`
	Fcu                *float64 `json:"fcu,omitempty" yaml:"fcu,omitempty"`
	Ffu                *float64 `json:"ffu,omitempty" yaml:"ffu,omitempty"`
	Targets            []Target `json:"targets,omitempty" yaml:"targets,omitempty"`
	AllowExtrapolation *bool    `json:"allow_extrapolation,omitempty" yaml:"allow_extrapolation,omitempty"`
}

// Request converts the form, filling defaults.
func (f Form) Request() (Request, error) {
	req := DefaultRequest()

	unit, err := ParseVfUnit(f.VfUnit)
	if err != nil {
		return Request{}, err
	}
	req.Entry.VfUnit = unit
	if f.Vf != nil {
		req.Entry.Vf = *f.Vf
	} else if unit == VfDecimal {
		req.Entry.Vf = DefaultEntry().VfDecimal()
	}

	if f.Lf != nil {
		req.Entry.Lf = *f.Lf
	}
	if f.Df != nil {
		req.Entry.Df = *f.Df
	}

	switch {
	case f.Fc != nil && f.Fcu != nil:
		return Request{}, errors.New("give either fc or fcu, not both")
	case f.Fcu != nil:
		req.Entry.Strength = *f.Fcu
		req.Entry.StrengthKind = Cube
	case f.Fc != nil:
		req.Entry.Strength = *f.Fc
	}

	if f.Ffu != nil {
		req.Entry.Ffu = *f.Ffu
	}

	if f.Targets != nil {
		req.Targets = Targets{}
		for _, t := range f.Targets {
			switch t {
			case Fr1:
				req.Targets.Fr1 = true
			case Fr3:
				req.Targets.Fr3 = true
			default:
				return Request{}, fmt.Errorf("invalid target %d", int(t))
			}
		}
	}

	if f.AllowExtrapolation != nil {
		req.AllowExtrapolation = *f.AllowExtrapolation
	}
	if err := req.Entry.CheckFinite(); err != nil {
		return Request{}, err
	}
	return req, nil
}
