package calibration

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestBuiltinProfilesKeepLiteralConstants(t *testing.T) {
	r := NewRegistry()

	def, err := r.Lookup("")
	if err != nil {
		t.Fatalf("Lookup default: %v", err)
	}
	want := Profile{
		ID:          "en1990-c2",
		Description: "EN 1990 Annex C reliability calibration (Code 2)",
		Fr1:         Scaling{KChar: 0.67, KDesign: 0.49, Gamma: 1.36},
		Fr3:         Scaling{KChar: 0.62, KDesign: 0.43, Gamma: 1.45},
	}
	if diff := cmp.Diff(want, def); diff != "" {
		t.Fatalf("default profile mismatch (-want +got):\n%s", diff)
	}

	alt, err := r.Lookup("en1990-c2-alt")
	if err != nil {
		t.Fatalf("Lookup alt: %v", err)
	}
	if alt.Fr1.KDesign != 0.51 || alt.Fr1.Gamma != 1.33 {
		t.Errorf("alt fR,1 scaling = %+v", alt.Fr1)
	}
	if alt.Fr3.KDesign != 0.45 || alt.Fr3.Gamma != 1.40 {
		t.Errorf("alt fR,3 scaling = %+v", alt.Fr3)
	}
}

func TestLookupUnknownProfile(t *testing.T) {
	_, err := NewRegistry().Lookup("nope")
	var unknown *UnknownProfileError
	if !errors.As(err, &unknown) {
		t.Fatalf("expected UnknownProfileError, got %v", err)
	}
	if unknown.ID != "nope" {
		t.Errorf("ID = %q", unknown.ID)
	}
}

func TestRegistryAdd(t *testing.T) {
	r := NewRegistry()
	p := Profile{ID: "lab-2026", Fr1: Scaling{0.7, 0.5, 1.4}, Fr3: Scaling{0.6, 0.4, 1.5}}
	if err := r.Add(p); err != nil {
		t.Fatalf("Add: %v", err)
	}
	if err := r.Add(p); err == nil {
		t.Fatal("expected duplicate error")
	}
	if err := r.Add(Profile{ID: "bad", Fr1: Scaling{0, 0.5, 1.4}, Fr3: Scaling{0.6, 0.4, 1.5}}); err == nil {
		t.Fatal("expected validation error for zero k_char")
	}

	var ids []string
	for _, p := range r.List() {
		ids = append(ids, p.ID)
	}
	if diff := cmp.Diff([]string{"en1990-c2", "en1990-c2-alt", "lab-2026"}, ids); diff != "" {
		t.Fatalf("List ids mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadProfilesFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "profiles.yaml")
	doc := `profiles:
  - id: site-a
    description: recalibrated
    fr1: {k_char: 0.65, k_design: 0.48, gamma: 1.35}
    fr3: {k_char: 0.60, k_design: 0.42, gamma: 1.43}
`
	if err := os.WriteFile(path, []byte(doc), 0o644); err != nil {
		t.Fatal(err)
	}

	r := NewRegistry()
	if err := r.LoadProfilesFile(path); err != nil {
		t.Fatalf("LoadProfilesFile: %v", err)
	}
	p, err := r.Lookup("site-a")
	if err != nil {
		t.Fatalf("Lookup: %v", err)
	}
	if diff := cmp.Diff(Scaling{KChar: 0.60, KDesign: 0.42, Gamma: 1.43}, p.Fr3); diff != "" {
		t.Fatalf("fr3 mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadProfilesFileIsAllOrNothing(t *testing.T) {
	docs := map[string]string{
		"clash with builtin": `profiles:
  - id: site-b
    fr1: {k_char: 0.65, k_design: 0.48, gamma: 1.35}
    fr3: {k_char: 0.60, k_design: 0.42, gamma: 1.43}
  - id: en1990-c2
    fr1: {k_char: 0.65, k_design: 0.48, gamma: 1.35}
    fr3: {k_char: 0.60, k_design: 0.42, gamma: 1.43}
`,
		"repeated in file": `profiles:
  - id: site-b
    fr1: {k_char: 0.65, k_design: 0.48, gamma: 1.35}
    fr3: {k_char: 0.60, k_design: 0.42, gamma: 1.43}
  - id: " site-b "
    fr1: {k_char: 0.66, k_design: 0.49, gamma: 1.35}
    fr3: {k_char: 0.61, k_design: 0.43, gamma: 1.42}
`,
	}
	for name, doc := range docs {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "profiles.yaml")
			if err := os.WriteFile(path, []byte(doc), 0o644); err != nil {
				t.Fatal(err)
			}
			r := NewRegistry()
			if err := r.LoadProfilesFile(path); err == nil {
				t.Fatal("expected duplicate profile error")
			}
			if _, err := r.Lookup("site-b"); err == nil {
				t.Error("site-b was registered from a rejected file")
			}
			if got := len(r.List()); got != len(BuiltinProfiles()) {
				t.Errorf("registry holds %d profiles, want %d", got, len(BuiltinProfiles()))
			}
		})
	}
}

func TestParseProfilesAcceptsJSON(t *testing.T) {
	data := []byte(`{"profiles": [{"id": "j", "fr1": {"k_char": 1, "k_design": 1, "gamma": 1}, "fr3": {"k_char": 1, "k_design": 1, "gamma": 1}}]}`)
	got, err := ParseProfiles(data)
	if err != nil {
		t.Fatalf("ParseProfiles: %v", err)
	}
	if len(got) != 1 || got[0].ID != "j" {
		t.Fatalf("got %+v", got)
	}
}

func TestParseProfilesErrors(t *testing.T) {
	tests := map[string]string{
		"empty":     "profiles: []",
		"malformed": "profiles: [",
		"negative":  "profiles:\n  - id: x\n    fr1: {k_char: -1, k_design: 1, gamma: 1}\n    fr3: {k_char: 1, k_design: 1, gamma: 1}\n",
		"no id":     "profiles:\n  - fr1: {k_char: 1, k_design: 1, gamma: 1}\n    fr3: {k_char: 1, k_design: 1, gamma: 1}\n",
	}
	for name, doc := range tests {
		t.Run(name, func(t *testing.T) {
			if _, err := ParseProfiles([]byte(doc)); err == nil {
				t.Fatal("expected error")
			}
		})
	}
}

func TestValidityRangeInclusive(t *testing.T) {
	ranges := []ValidityRange{FcRange, VfPercentRange, VfDecimalRange, LambdaRange, FfuRange}
	for _, r := range ranges {
		if !r.Contains(r.Min) || !r.Contains(r.Max) {
			t.Errorf("%+v: bounds must be inside", r)
		}
		if r.Contains(r.Min-1e-9) || r.Contains(r.Max+1e-9) {
			t.Errorf("%+v: values beyond bounds must be outside", r)
		}
	}
}

func TestFcFromCube(t *testing.T) {
	for _, fcu := range []float64{1, 25, 50, 96.3} {
		if got := FcFromCube(fcu); got != 0.82*fcu {
			t.Errorf("FcFromCube(%v) = %v", fcu, got)
		}
	}
}
