package cmd

import (
	"encoding/json"
	"fmt"
	"math"
	"text/tabwriter"

	"github.com/alexiusacademia/gosfrc/internal/diagram"
	"github.com/alexiusacademia/gosfrc/internal/export"
	"github.com/alexiusacademia/gosfrc/internal/residual"
	"github.com/alexiusacademia/gosfrc/internal/sweep"
	"github.com/spf13/cobra"
)

var (
	sweepInputs     entryFlags
	sweepVariable   string
	sweepFrom       float64
	sweepTo         float64
	sweepSteps      int
	sweepMetrics    []string
	sweepShowChart  bool
	sweepShowTable  bool
	sweepHeight     int
	sweepWidth      int
	sweepExportFile string
	sweepJSON       bool
	sweepXLSX       string
)

var sweepCmd = &cobra.Command{
	Use:   "sweep",
	Short: "Vary one input and chart fR,1 / fR,3",
	Long: `Evaluate the prediction models while one input varies linearly
between --from and --to. All other inputs keep their flag values.

Every point is computed, including points outside the validated limits;
those are marked in the table. Points where a model is undefined are
left as gaps.

Variables: vf, lf, df, fc, ffu (fc follows --fcu when given)
Metrics:   mean, characteristic, design

Examples:
  gosfrc sweep --var vf --from 0.2 --to 2.0
  gosfrc sweep --var fc --from 22 --to 79 --metric mean,design --table
  gosfrc sweep --var ffu --from 1000 --to 3200 --target fr3 -o ffu.png
  gosfrc sweep --var lf --from 30 --to 70 --xlsx lf.xlsx`,
	RunE: runSweep,
}

func init() {
	rootCmd.AddCommand(sweepCmd)

	addEntryFlags(sweepCmd, &sweepInputs)

	// Sweep definition
	sweepCmd.Flags().StringVar(&sweepVariable, "var", "vf", "Variable to sweep: vf, lf, df, fc, ffu")
	sweepCmd.Flags().Float64Var(&sweepFrom, "from", 0, "Start value [required]")
	sweepCmd.Flags().Float64Var(&sweepTo, "to", 0, "End value [required]")
	sweepCmd.Flags().IntVarP(&sweepSteps, "steps", "n", 41, "Number of points")
	sweepCmd.Flags().StringSliceVarP(&sweepMetrics, "metric", "m", []string{"mean"}, "Values to chart: mean, characteristic, design")
	sweepCmd.MarkFlagRequired("from")
	sweepCmd.MarkFlagRequired("to")

	// Output options
	sweepCmd.Flags().BoolVar(&sweepShowChart, "chart", true, "Show ASCII chart")
	sweepCmd.Flags().BoolVar(&sweepShowTable, "table", false, "Show table of all points")
	sweepCmd.Flags().IntVar(&sweepHeight, "height", 15, "ASCII chart height (rows)")
	sweepCmd.Flags().IntVar(&sweepWidth, "width", 0, "ASCII chart width (columns, 0 = one per point)")
	sweepCmd.Flags().StringVarP(&sweepExportFile, "output", "o", "", "Export chart to file (png, svg, pdf)")
	sweepCmd.Flags().BoolVar(&sweepJSON, "json", false, "Print the sweep as JSON")
	sweepCmd.Flags().StringVar(&sweepXLSX, "xlsx", "", "Export all points to an .xlsx workbook")
}

func runSweep(cmd *cobra.Command, args []string) error {
	req, err := sweepInputs.request(cmd)
	if err != nil {
		return err
	}
	variable, err := sweep.ParseVariable(sweepVariable)
	if err != nil {
		return err
	}
	var metrics []sweep.Metric
	for _, s := range sweepMetrics {
		m, err := sweep.ParseMetric(s)
		if err != nil {
			return err
		}
		metrics = append(metrics, m)
	}
	profile, err := selectedProfile()
	if err != nil {
		return err
	}

	spec := sweep.Spec{Variable: variable, From: sweepFrom, To: sweepTo, Steps: sweepSteps}
	res, err := sweep.Run(spec, req.Entry, req.Targets, profile)
	if err != nil {
		return err
	}
	logger.Debug("sweep done", "variable", variable, "points", len(res.Points))

	out := cmd.OutOrStdout()
	if sweepXLSX != "" {
		if err := export.WriteXLSX(sweepXLSX, export.SweepTable(res, req.Targets)); err != nil {
			return err
		}
		logger.Info("workbook written", "file", sweepXLSX)
	}
	if sweepJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(res)
	}

	printHeader(out, "SFRC PARAMETRIC SWEEP")
	fmt.Fprintf(out, "  Variable: %s from %g to %g (%d points), profile %s\n", res.Label, sweepFrom, sweepTo, sweepSteps, profile.ID)
	if r, ok := variable.Envelope(req.Entry); ok {
		fmt.Fprintf(out, "  Validated range of %s: %.4g to %.4g\n", res.Label, r.Min, r.Max)
	}
	fmt.Fprintln(out)

	chart := diagram.SweepChart(res, req.Entry, req.Targets, metrics)
	if sweepShowChart {
		if s := diagram.DrawASCIIChart(chart, sweepWidth, sweepHeight); s != "" {
			fmt.Fprintln(out, s)
		} else {
			fmt.Fprintln(out, "  Nothing to chart: every point is undefined.")
			fmt.Fprintln(out)
		}
	}

	if sweepShowTable {
		printSweepTable(cmd, res, req.Targets, metrics)
	}

	if sweepExportFile != "" {
		if err := diagram.ExportChart(chart, sweepExportFile); err != nil {
			fmt.Fprintf(out, "Error exporting diagram: %v\n", err)
		} else {
			fmt.Fprintf(out, "Diagram exported to: %s\n", sweepExportFile)
		}
	}
	return nil
}

func printSweepTable(cmd *cobra.Command, res *sweep.Result, targets residual.Targets, metrics []sweep.Metric) {
	out := cmd.OutOrStdout()
	printSection(out, "SWEEP POINTS:")

	var columns [][]float64
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "  %s", res.Label)
	for _, t := range targets.List() {
		for _, m := range metrics {
			_, ys := res.Series(t, m)
			columns = append(columns, ys)
			fmt.Fprintf(w, "\t%s %s", t, m)
		}
	}
	fmt.Fprintf(w, "\tLimits\n")

	for i, pt := range res.Points {
		fmt.Fprintf(w, "  %.4g", pt.Value)
		for _, ys := range columns {
			if math.IsNaN(ys[i]) {
				fmt.Fprintf(w, "\t—")
			} else {
				fmt.Fprintf(w, "\t%.3f", ys[i])
			}
		}
		status := "✓"
		if !pt.InEnvelope {
			status = "⚠ outside"
		}
		fmt.Fprintf(w, "\t%s\n", status)
	}
	w.Flush()
	fmt.Fprintln(out)
}
