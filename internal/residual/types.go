package residual

import (
	"fmt"
	"math"
	"strings"

	"github.com/alexiusacademia/gosfrc/internal/calibration"
)

// VfUnit is the unit the fibre volume fraction was entered in.
type VfUnit int

const (
	VfPercent VfUnit = iota
	VfDecimal
)

func (u VfUnit) String() string {
	if u == VfDecimal {
		return "decimal"
	}
	return "percent"
}

// ParseVfUnit accepts "percent"/"%" and "decimal".
func ParseVfUnit(s string) (VfUnit, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "percent", "pct", "%":
		return VfPercent, nil
	case "decimal", "dec", "fraction":
		return VfDecimal, nil
	}
	return VfPercent, fmt.Errorf("unknown Vf unit %q (use percent or decimal)", s)
}

// StrengthKind says whether the entered concrete strength is cylindrical or cubic.
type StrengthKind int

const (
	Cylinder StrengthKind = iota // fc
	Cube                         // fcu
)

func (k StrengthKind) String() string {
	if k == Cube {
		return "fcu"
	}
	return "fc"
}

// Entry holds inputs exactly as the user entered them
type Entry struct {
	Vf     float64 // fibre volume fraction in VfUnit
	VfUnit VfUnit
	Lf     float64 // fibre length (mm)
	Df     float64 // fibre diameter (mm)

	Strength     float64 // fc or fcu (MPa), see StrengthKind
	StrengthKind StrengthKind

	Ffu float64 // fibre ultimate tensile strength (MPa)
}

// DefaultEntry returns the starting values of the input form.
func DefaultEntry() Entry {
	return Entry{
		Vf:           1.0,
		VfUnit:       VfPercent,
		Lf:           50.0,
		Df:           0.75,
		Strength:     40.0,
		StrengthKind: Cylinder,
		Ffu:          2000.0,
	}
}

// VfDecimal returns the fibre volume fraction as a decimal.
func (e Entry) VfDecimal() float64 {
	if e.VfUnit == VfPercent {
		return e.Vf / 100.0
	}
	return e.Vf
}

// Fc returns the cylindrical strength, converting from fcu if needed.
func (e Entry) Fc() float64 {
	if e.StrengthKind == Cube {
		return calibration.FcFromCube(e.Strength)
	}
	return e.Strength
}

// Materials normalises the entry for the prediction models.
func (e Entry) Materials() MaterialInputs {
	return MaterialInputs{
		Vf:  e.VfDecimal(),
		Lf:  e.Lf,
		Df:  e.Df,
		Fc:  e.Fc(),
		Ffu: e.Ffu,
	}
}

// CheckFinite rejects entered values that are NaN or infinite. Such values
// cannot be reported or serialised, so callers turning user input into an
// Entry refuse them up front.
func (e Entry) CheckFinite() error {
	fields := []namedValue{{"Vf", e.Vf}, {"lf", e.Lf}, {"df", e.Df}, {e.StrengthKind.String(), e.Strength}, {"ffu", e.Ffu}}
	for _, f := range fields {
		if math.IsNaN(f.v) || math.IsInf(f.v, 0) {
			return fmt.Errorf("%s must be a finite number, got %v", f.name, f.v)
		}
	}
	return nil
}

// MaterialInputs are the normalised model inputs.
type MaterialInputs struct {
	Vf  float64 `json:"vf"`  // decimal
	Lf  float64 `json:"lf"`  // mm
	Df  float64 `json:"df"`  // mm
	Fc  float64 `json:"fc"`  // MPa, cylindrical
	Ffu float64 `json:"ffu"` // MPa
}

// Lambda returns the fibre aspect ratio lf/df. ok is false when df <= 0.
func (m MaterialInputs) Lambda() (lambda float64, ok bool) {
	if !(m.Df > 0) {
		return 0, false
	}
	return m.Lf / m.Df, true
}

// Target identifies a residual flexural strength.
type Target int

const (
	Fr1 Target = iota + 1
	Fr3
)

func (t Target) String() string {
	switch t {
	case Fr1:
		return "fR,1"
	case Fr3:
		return "fR,3"
	}
	return fmt.Sprintf("Target(%d)", int(t))
}

// Key is the lower-case identifier used in files and URLs.
func (t Target) Key() string {
	switch t {
	case Fr1:
		return "fr1"
	case Fr3:
		return "fr3"
	}
	return ""
}

// MarshalText implements encoding.TextMarshaler.
func (t Target) MarshalText() ([]byte, error) {
	if t.Key() == "" {
		return nil, fmt.Errorf("invalid target %d", int(t))
	}
	return []byte(t.Key()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (t *Target) UnmarshalText(b []byte) error {
	v, err := ParseTarget(string(b))
	if err != nil {
		return err
	}
	*t = v
	return nil
}

// ParseTarget accepts "fr1", "fR,1", "fr3" and "fR,3".
func ParseTarget(s string) (Target, error) {
	k := strings.ToLower(strings.TrimSpace(s))
	k = strings.NewReplacer(",", "", "_", "", " ", "").Replace(k)
	switch k {
	case "fr1":
		return Fr1, nil
	case "fr3":
		return Fr3, nil
	}
	return 0, fmt.Errorf("unknown target %q (use fr1 or fr3)", s)
}
