package residual

import (
	"math"
	"testing"

	"github.com/alexiusacademia/gosfrc/internal/calibration"
	"github.com/google/go-cmp/cmp"
)

func fields(r ValidationResult) []string {
	out := make([]string, len(r.Violations))
	for i, v := range r.Violations {
		out[i] = v.Field
	}
	return out
}

func TestValidateDefaultEntryIsValid(t *testing.T) {
	r := Validate(DefaultEntry(), true)
	if !r.Valid() {
		t.Fatalf("expected valid, got %v", r.Messages())
	}
	if !r.Checked.LambdaDefined || math.Abs(r.Checked.Lambda-50/0.75) > 1e-12 {
		t.Errorf("lambda = %v (defined %v)", r.Checked.Lambda, r.Checked.LambdaDefined)
	}
	if r.Checked.VfDecimal != 0.01 {
		t.Errorf("VfDecimal = %v", r.Checked.VfDecimal)
	}
}

func TestValidateVfBelowRange(t *testing.T) {
	e := DefaultEntry()
	e.Vf = 0.1

	r := Validate(e, true)
	if r.Valid() {
		t.Fatal("expected invalid")
	}
	if diff := cmp.Diff([]string{FieldVf}, fields(r)); diff != "" {
		t.Fatalf("violations mismatch (-want +got):\n%s", diff)
	}
	if got := r.Messages()[0]; got != "Vf = 0.100% is outside [0.2, 2]%." {
		t.Errorf("message = %q", got)
	}

	// still exactly one Vf violation when other inputs are bad too
	e.Strength = 100
	e.Ffu = 500
	r = Validate(e, true)
	if n := r.Count(FieldVf); n != 1 {
		t.Errorf("Vf violations = %d, want 1", n)
	}
}

func TestValidateZeroDiameterSkipsLambda(t *testing.T) {
	e := DefaultEntry()
	e.Df = 0

	r := Validate(e, false)
	if diff := cmp.Diff([]string{FieldPositivity}, fields(r)); diff != "" {
		t.Fatalf("violations mismatch (-want +got):\n%s", diff)
	}
	if r.Checked.LambdaDefined {
		t.Error("lambda must not be computed for df = 0")
	}
}

func TestValidateOrderAndNoShortCircuit(t *testing.T) {
	e := Entry{Vf: -1, VfUnit: VfPercent, Lf: 10, Df: 1, Strength: 5, Ffu: 100}

	r := Validate(e, true)
	want := []string{FieldPositivity, FieldVf, FieldFc, FieldLambda, FieldFfu}
	if diff := cmp.Diff(want, fields(r)); diff != "" {
		t.Fatalf("violations mismatch (-want +got):\n%s", diff)
	}
}

func TestValidateFfuOnlyForFr3(t *testing.T) {
	e := DefaultEntry()
	e.Ffu = 0

	if r := Validate(e, false); !r.Valid() {
		t.Errorf("ffu must be ignored without fR,3: %v", r.Messages())
	}
	if r := Validate(e, true); r.Count(FieldFfu) != 1 {
		t.Errorf("expected ffu violation, got %v", r.Messages())
	}
}

func TestValidateBoundsInclusive(t *testing.T) {
	tests := []struct {
		name string
		mod  func(*Entry)
	}{
		{"vf percent min", func(e *Entry) { e.Vf = 0.2 }},
		{"vf percent max", func(e *Entry) { e.Vf = 2.0 }},
		{"vf decimal min", func(e *Entry) { e.VfUnit = VfDecimal; e.Vf = 0.002 }},
		{"vf decimal max", func(e *Entry) { e.VfUnit = VfDecimal; e.Vf = 0.02 }},
		{"fc min", func(e *Entry) { e.Strength = 22 }},
		{"fc max", func(e *Entry) { e.Strength = 79 }},
		{"lambda min", func(e *Entry) { e.Lf = 38; e.Df = 1 }},
		{"lambda max", func(e *Entry) { e.Lf = 100; e.Df = 1 }},
		{"ffu min", func(e *Entry) { e.Ffu = 1000 }},
		{"ffu max", func(e *Entry) { e.Ffu = 3200 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := DefaultEntry()
			tt.mod(&e)
			if r := Validate(e, true); !r.Valid() {
				t.Fatalf("expected valid at bound, got %v", r.Messages())
			}
		})
	}
}

func TestValidateDecimalOutOfRange(t *testing.T) {
	e := DefaultEntry()
	e.VfUnit = VfDecimal
	e.Vf = 0.025

	r := Validate(e, false)
	if diff := cmp.Diff([]string{"Vf = 0.025000 is outside [0.002, 0.02]."}, r.Messages()); diff != "" {
		t.Fatalf("messages mismatch (-want +got):\n%s", diff)
	}
}

func TestValidateFcFromCube(t *testing.T) {
	e := DefaultEntry()
	e.StrengthKind = Cube
	e.Strength = 100 // fc = 82 MPa

	r := Validate(e, false)
	if r.Checked.Fc != calibration.FcFromCube(100) {
		t.Errorf("Checked.Fc = %v", r.Checked.Fc)
	}
	if diff := cmp.Diff([]string{FieldFc}, fields(r)); diff != "" {
		t.Fatalf("violations mismatch (-want +got):\n%s", diff)
	}
}

func TestValidateNaN(t *testing.T) {
	e := DefaultEntry()
	e.Strength = math.NaN()

	r := Validate(e, false)
	if diff := cmp.Diff([]string{FieldPositivity, FieldFc}, fields(r)); diff != "" {
		t.Fatalf("violations mismatch (-want +got):\n%s", diff)
	}
}

func TestCanCompute(t *testing.T) {
	valid := ValidationResult{}
	invalid := ValidationResult{Violations: []Violation{{Field: FieldVf, Message: "x"}}}

	tests := []struct {
		v     ValidationResult
		allow bool
		want  bool
	}{
		{valid, false, true},
		{valid, true, true},
		{invalid, true, true},
		{invalid, false, false},
	}
	for _, tt := range tests {
		if got := CanCompute(tt.v, tt.allow); got != tt.want {
			t.Errorf("CanCompute(valid=%v, allow=%v) = %v", tt.v.Valid(), tt.allow, got)
		}
	}
}
