package diagram

import (
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/alexiusacademia/gosfrc/internal/calibration"
	"github.com/alexiusacademia/gosfrc/internal/residual"
	"github.com/alexiusacademia/gosfrc/internal/sweep"
)

func sampleChart(t *testing.T) (ChartData, residual.Entry) {
	t.Helper()
	p, err := calibration.NewRegistry().Lookup("")
	if err != nil {
		t.Fatal(err)
	}
	base := residual.DefaultEntry()
	targets := residual.Targets{Fr1: true, Fr3: true}
	res, err := sweep.Run(sweep.Spec{Variable: sweep.Vf, From: 0.1, To: 2.5, Steps: 13}, base, targets, p)
	if err != nil {
		t.Fatal(err)
	}
	return SweepChart(res, base, targets, []sweep.Metric{sweep.Mean, sweep.Design}), base
}

func TestSweepChart(t *testing.T) {
	data, _ := sampleChart(t)
	if len(data.X) != 13 {
		t.Errorf("x values = %d", len(data.X))
	}
	var names []string
	for _, s := range data.Series {
		names = append(names, s.Name)
	}
	want := "fR,1 mean|fR,1 design|fR,3 mean|fR,3 design"
	if got := strings.Join(names, "|"); got != want {
		t.Errorf("series = %q, want %q", got, want)
	}
	if data.EnvelopeMin != 0.2 || data.EnvelopeMax != 2.0 {
		t.Errorf("envelope = [%v, %v]", data.EnvelopeMin, data.EnvelopeMax)
	}
}

func TestDrawASCIIChart(t *testing.T) {
	data, _ := sampleChart(t)
	out := DrawASCIIChart(data, 60, 12)
	for _, want := range []string{"fR,1 mean", "fR,3 design", "MPa vs Vf (%)"} {
		if !strings.Contains(out, want) {
			t.Errorf("chart missing %q:\n%s", want, out)
		}
	}

	empty := ChartData{X: []float64{1, 2}, Series: []Series{{Name: "x", Y: []float64{math.NaN(), math.NaN()}}}}
	if got := DrawASCIIChart(empty, 0, 5); got != "" {
		t.Errorf("all-NaN chart = %q", got)
	}
}

func TestExportChart(t *testing.T) {
	data, _ := sampleChart(t)
	path := filepath.Join(t.TempDir(), "out", "sweep.png")
	if err := ExportChart(data, path); err != nil {
		t.Fatalf("ExportChart: %v", err)
	}
	info, err := os.Stat(path)
	if err != nil {
		t.Fatal(err)
	}
	if info.Size() == 0 {
		t.Error("empty image")
	}

	if err := ExportChart(data, filepath.Join(t.TempDir(), "sweep.txt")); err == nil {
		t.Error("expected unsupported format error")
	}
}

func TestDrawSummaryBox(t *testing.T) {
	out := DrawSummaryBox("fR,1", []string{"mean = 3.210 MPa", "γ = 1.36"})
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	if len(lines) != 6 {
		t.Fatalf("lines = %d:\n%s", len(lines), out)
	}
	width := len([]rune(lines[0]))
	for _, l := range lines {
		if n := len([]rune(l)); n != width {
			t.Errorf("ragged box line %q (%d runes, want %d)", l, n, width)
		}
	}
}
