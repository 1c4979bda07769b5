package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"text/tabwriter"

	"github.com/alexiusacademia/gosfrc/internal/batch"
	"github.com/alexiusacademia/gosfrc/internal/export"
	"github.com/alexiusacademia/gosfrc/internal/residual"
	"github.com/spf13/cobra"
)

var (
	batchFile    string
	batchWorkers int
	batchJSON    bool
	batchXLSX    string
)

var batchCmd = &cobra.Command{
	Use:   "batch",
	Short: "Evaluate a file of mixes",
	Long: `Evaluate every case of a YAML or JSON file. Omitted fields take the
default form values (Vf = 1.0 %, lf = 50 mm, df = 0.75 mm, fc = 40 MPa,
ffu = 2000 MPa, both targets, extrapolation allowed).

The profile named in the file is used unless --profile is given.

Example file:
profile: en1990-c2
cases:
  - name: reference
  - name: low dosage
    vf: 0.4
    targets: [fr1]
  - name: cube strength
    fcu: 60
    allow_extrapolation: false
  - name: decimal dosage
    vf_unit: decimal
    vf: 0.015

Examples:
  gosfrc batch --file mixes.yaml
  gosfrc batch -f mixes.json --json --workers 4
  gosfrc batch -f mixes.yaml --xlsx results.xlsx`,
	RunE: runBatch,
}

func init() {
	rootCmd.AddCommand(batchCmd)

	batchCmd.Flags().StringVarP(&batchFile, "file", "f", "", "Path to cases file (YAML or JSON) [required]")
	batchCmd.MarkFlagRequired("file")
	batchCmd.Flags().IntVarP(&batchWorkers, "workers", "w", 0, "Parallel workers (0 = number of CPUs)")
	batchCmd.Flags().BoolVar(&batchJSON, "json", false, "Print results as JSON")
	batchCmd.Flags().StringVar(&batchXLSX, "xlsx", "", "Also write results and summary to an .xlsx workbook")
}

func runBatch(cmd *cobra.Command, args []string) error {
	f, err := batch.Load(batchFile)
	if err != nil {
		return err
	}

	id := profileID
	if !cmd.Flags().Changed("profile") && f.Profile != "" {
		id = f.Profile
	}
	profile, err := registry.Lookup(id)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	logger.Debug("running batch", "file", batchFile, "cases", len(f.Cases), "profile", profile.ID)
	results, err := batch.Run(ctx, f.Cases, profile, batchWorkers)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if batchXLSX != "" {
		if err := export.WriteXLSX(batchXLSX, export.BatchTables(results)...); err != nil {
			return err
		}
		logger.Info("workbook written", "file", batchXLSX)
	}
	if batchJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(results)
	}

	printHeader(out, "SFRC BATCH EVALUATION")
	fmt.Fprintf(out, "  File: %s (%d cases), profile %s\n\n", batchFile, len(results), profile.ID)

	printSection(out, "RESULTS (MPa, mean / characteristic / design):")
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "  Case\tLimits\tfR,1\tfR,3\n")
	fmt.Fprintf(w, "  ────\t──────\t────\t────\n")
	failed := 0
	for _, r := range results {
		if r.Err != nil {
			failed++
			fmt.Fprintf(w, "  %s\t✗\t%s\t\n", r.Name, r.Err)
			continue
		}
		rep := r.Report
		limits := "✓"
		switch {
		case rep.Blocked:
			limits = "✗ blocked"
		case !rep.Valid:
			limits = fmt.Sprintf("⚠ %d", len(rep.Validation.Violations))
		}
		fmt.Fprintf(w, "  %s\t%s\t%s\t%s\n", r.Name, limits, outcomeText(rep.Results.Fr1), outcomeText(rep.Results.Fr3))
	}
	w.Flush()
	fmt.Fprintln(out)

	warned := false
	for _, r := range results {
		if r.Report == nil || r.Report.Valid {
			continue
		}
		warned = true
		fmt.Fprintf(out, "  %s:\n", r.Name)
		for _, msg := range r.Report.Validation.Messages() {
			fmt.Fprintf(out, "    ⚠ %s\n", msg)
		}
	}
	if warned {
		fmt.Fprintln(out)
	}

	printSection(out, "SUMMARY OF MEAN VALUES (MPa):")
	w = tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "  Target\tCases\tMin\tMax\tMean\tStd dev\n")
	fmt.Fprintf(w, "  ──────\t─────\t───\t───\t────\t───────\n")
	for _, t := range []residual.Target{residual.Fr1, residual.Fr3} {
		if sum, ok := batch.Summarize(results, t); ok {
			fmt.Fprintf(w, "  %s\t%d\t%.3f\t%.3f\t%.3f\t%.3f\n", t, sum.Count, sum.Min, sum.Max, sum.Mean, sum.StdDev)
		}
	}
	w.Flush()

	if failed > 0 {
		logger.Warn("some cases failed", "failed", failed, "total", len(results))
	}
	fmt.Fprintln(out)
	return nil
}

func outcomeText(o *residual.Outcome) string {
	switch {
	case o == nil:
		return "-"
	case !o.OK():
		return "undefined"
	}
	p := o.Prediction
	text := fmt.Sprintf("%.3f / %.3f / %.3f", p.Mean, p.Characteristic, p.Design)
	if p.WasClamped {
		text += " (set to 0)"
	}
	return text
}
