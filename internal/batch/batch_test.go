package batch

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/alexiusacademia/gosfrc/internal/calibration"
	"github.com/alexiusacademia/gosfrc/internal/residual"
	"github.com/google/go-cmp/cmp"
)

const doc = `profile: en1990-c2-alt
cases:
  - name: reference
  - name: low dosage
    vf: 0.1
    targets: [fr1]
  - name: cube strength
    fcu: 60
    allow_extrapolation: false
  - vf_unit: decimal
    vf: 0.015
  - name: nothing
    targets: []
`

func profile(t *testing.T, id string) calibration.Profile {
	t.Helper()
	p, err := calibration.NewRegistry().Lookup(id)
	if err != nil {
		t.Fatal(err)
	}
	return p
}

func TestParse(t *testing.T) {
	f, err := Parse([]byte(doc))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if f.Profile != "en1990-c2-alt" {
		t.Errorf("profile = %q", f.Profile)
	}
	var names []string
	for _, c := range f.Cases {
		names = append(names, c.Name)
	}
	want := []string{"reference", "low dosage", "cube strength", "case-4", "nothing"}
	if diff := cmp.Diff(want, names); diff != "" {
		t.Fatalf("names mismatch (-want +got):\n%s", diff)
	}
	if f.Cases[2].Fcu == nil || *f.Cases[2].Fcu != 60 {
		t.Errorf("fcu = %v", f.Cases[2].Fcu)
	}
	if diff := cmp.Diff([]residual.Target{residual.Fr1}, f.Cases[1].Targets); diff != "" {
		t.Errorf("targets mismatch (-want +got):\n%s", diff)
	}
}

func TestParseErrors(t *testing.T) {
	tests := map[string]string{
		"no cases":   "cases: []",
		"duplicate":  "cases:\n  - name: a\n  - name: a\n",
		"bad yaml":   "cases: [",
		"bad target": "cases:\n  - targets: [fr9]\n",
	}
	for name, d := range tests {
		t.Run(name, func(t *testing.T) {
			if _, err := Parse([]byte(d)); err == nil {
				t.Fatal("expected error")
			}
		})
	}
}

func TestRun(t *testing.T) {
	f, err := Parse([]byte(doc))
	if err != nil {
		t.Fatal(err)
	}
	p := profile(t, f.Profile)

	results, err := Run(context.Background(), f.Cases, p, 3)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(results) != len(f.Cases) {
		t.Fatalf("results = %d", len(results))
	}
	for i, r := range results {
		if r.Name != f.Cases[i].Name {
			t.Errorf("result %d name = %q, want %q", i, r.Name, f.Cases[i].Name)
		}
	}

	ref := results[0].Report
	if ref == nil || !ref.Valid || ref.Results.Fr1.Prediction.Profile != "en1990-c2-alt" {
		t.Fatalf("reference = %+v", results[0])
	}

	low := results[1].Report
	if low.Valid || low.Blocked || low.Results.Fr3 != nil || !low.Results.Fr1.OK() {
		t.Errorf("low dosage = %+v", low)
	}

	cube := results[2].Report
	if !cube.Valid || cube.Inputs.Fc != calibration.FcFromCube(60) {
		t.Errorf("cube strength = %+v", cube)
	}

	if results[3].Report == nil || results[3].Report.Inputs.Vf != 0.015 {
		t.Errorf("decimal case = %+v", results[3])
	}

	if !errors.Is(results[4].Err, residual.ErrNoTarget) || results[4].Report != nil {
		t.Errorf("nothing = %+v", results[4])
	}
}

func TestRunManyCases(t *testing.T) {
	var sb strings.Builder
	sb.WriteString("cases:\n")
	for i := 0; i < 200; i++ {
		fmt.Fprintf(&sb, "  - name: c%d\n    fc: %d\n", i, 22+i%58)
	}
	f, err := Parse([]byte(sb.String()))
	if err != nil {
		t.Fatal(err)
	}
	results, err := Run(context.Background(), f.Cases, profile(t, ""), 0)
	if err != nil {
		t.Fatal(err)
	}
	for i, r := range results {
		if r.Report == nil || r.Report.Inputs.Fc != float64(22+i%58) {
			t.Fatalf("case %d out of order: %+v", i, r)
		}
	}
}

func TestRunNonFiniteCaseFailsAlone(t *testing.T) {
	f, err := Parse([]byte(`cases:
  - name: good
  - name: nan strength
    fc: .nan
`))
	if err != nil {
		t.Fatal(err)
	}
	results, err := Run(context.Background(), f.Cases, profile(t, ""), 2)
	if err != nil {
		t.Fatal(err)
	}
	if results[0].Report == nil || !results[0].Report.Results.Fr1.OK() {
		t.Errorf("good = %+v", results[0])
	}
	if results[1].Err == nil || results[1].Report != nil {
		t.Errorf("nan strength = %+v", results[1])
	}
	if _, err := json.Marshal(results); err != nil {
		t.Errorf("marshal results: %v", err)
	}
}

func TestRunCancelled(t *testing.T) {
	f, err := Parse([]byte(doc))
	if err != nil {
		t.Fatal(err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := Run(ctx, f.Cases, profile(t, ""), 1); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cases.json")
	if err := os.WriteFile(path, []byte(`{"cases": [{"name": "j", "vf": 1.5, "fc": 30}]}`), 0o644); err != nil {
		t.Fatal(err)
	}
	f, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if f.Cases[0].Vf == nil || *f.Cases[0].Vf != 1.5 {
		t.Errorf("case = %+v", f.Cases[0])
	}

	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected read error")
	}
}
