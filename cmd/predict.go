package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/alexiusacademia/gosfrc/internal/calibration"
	"github.com/alexiusacademia/gosfrc/internal/diagram"
	"github.com/alexiusacademia/gosfrc/internal/method"
	"github.com/alexiusacademia/gosfrc/internal/residual"
	"github.com/spf13/cobra"
)

var (
	predictInputs  entryFlags
	predictJSON    bool
	predictDetails bool
)

var predictCmd = &cobra.Command{
	Use:   "predict",
	Short: "Predict fR,1 and fR,3 (mean, characteristic, design)",
	Long: `Predict the residual flexural strengths fR,1 and fR,3 of
steel-fibre-reinforced concrete.

The inputs are first checked against the validity ranges of the
calibration dataset. Out-of-range inputs are reported as warnings and
are still computed unless --no-extrapolation is given.

Examples:
  gosfrc predict
  gosfrc predict --vf 0.75 --lf 60 --df 0.9 --fc 35 --ffu 1500
  gosfrc predict --vf 0.0125 --vf-unit decimal --fcu 55 --target fr3
  gosfrc predict --vf 0.1 --no-extrapolation
  gosfrc predict --profile en1990-c2-alt --details`,
	RunE: runPredict,
}

func init() {
	rootCmd.AddCommand(predictCmd)

	addEntryFlags(predictCmd, &predictInputs)

	// Output options
	predictCmd.Flags().BoolVar(&predictJSON, "json", false, "Print the report as JSON")
	predictCmd.Flags().BoolVarP(&predictDetails, "details", "d", false, "Show calculation details")
}

func runPredict(cmd *cobra.Command, args []string) error {
	req, err := predictInputs.request(cmd)
	if err != nil {
		return err
	}
	profile, err := selectedProfile()
	if err != nil {
		return err
	}

	rep, err := residual.Evaluate(req, profile)
	if err != nil {
		return err
	}
	logger.Debug("evaluated", "valid", rep.Valid, "blocked", rep.Blocked, "profile", profile.ID)

	out := cmd.OutOrStdout()
	if predictJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(rep)
	}

	printHeader(out, "SFRC RESIDUAL FLEXURAL STRENGTHS")
	printInputs(out, req)
	printValidation(out, rep.Validation, req.AllowExtrapolation)
	if rep.Blocked {
		return nil
	}
	printResults(out, req, rep, profile, predictDetails)
	return nil
}

func printHeader(out io.Writer, title string) {
	fmt.Fprintln(out)
	fmt.Fprintln(out, "═══════════════════════════════════════════════════════════════")
	fmt.Fprintf(out, "     %s\n", title)
	fmt.Fprintln(out, "═══════════════════════════════════════════════════════════════")
	fmt.Fprintln(out)
	fmt.Fprintln(out, "  Research use only. Predictions are valid only within the stated")
	fmt.Fprintln(out, "  ranges and for 3D hooked-end steel fibres.")
	fmt.Fprintln(out)
}

func printSection(out io.Writer, title string) {
	fmt.Fprintln(out, title)
	fmt.Fprintln(out, "───────────────────────────────────────────────────────────────")
}

func printInputs(out io.Writer, req residual.Request) {
	e := req.Entry
	in := e.Materials()

	printSection(out, "INPUTS:")
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	if e.VfUnit == residual.VfPercent {
		fmt.Fprintf(w, "  Vf:\t%.3f %%\t(decimal %.6f)\n", e.Vf, in.Vf)
	} else {
		fmt.Fprintf(w, "  Vf:\t%.6f\t(decimal)\n", e.Vf)
	}
	fmt.Fprintf(w, "  lf:\t%.2f mm\n", e.Lf)
	fmt.Fprintf(w, "  df:\t%.2f mm\n", e.Df)
	if lambda, ok := in.Lambda(); ok {
		fmt.Fprintf(w, "  λ = lf/df:\t%.2f\n", lambda)
	}
	if e.StrengthKind == residual.Cube {
		fmt.Fprintf(w, "  fcu:\t%.2f MPa\n", e.Strength)
		fmt.Fprintf(w, "  fc = %.2f fcu:\t%.2f MPa\t(converted)\n", calibration.FcFromFcu, in.Fc)
	} else {
		fmt.Fprintf(w, "  fc:\t%.2f MPa\n", in.Fc)
	}
	if req.Targets.Fr3 {
		fmt.Fprintf(w, "  ffu:\t%.0f MPa\n", e.Ffu)
	}
	w.Flush()
	fmt.Fprintln(out)
}

func printValidation(out io.Writer, v residual.ValidationResult, allowExtrapolation bool) {
	printSection(out, "VALIDATION:")
	if v.Valid() {
		fmt.Fprintln(out, "  ✓ All inputs are within the validated limits.")
	} else {
		for _, msg := range v.Messages() {
			fmt.Fprintf(out, "  ⚠ %s\n", msg)
		}
		if !residual.CanCompute(v, allowExtrapolation) {
			fmt.Fprintln(out)
			fmt.Fprintln(out, "  ✗ Computation stopped (extrapolation is not allowed).")
		}
	}
	fmt.Fprintln(out)
}

func printResults(out io.Writer, req residual.Request, rep residual.Report, p calibration.Profile, details bool) {
	printSection(out, fmt.Sprintf("RESULTS (profile %s):", p.ID))
	fmt.Fprintln(out)
	for _, target := range req.Targets.List() {
		o := rep.Results.Get(target)
		if !o.OK() {
			fmt.Fprintf(out, "  Error computing %s: %v\n\n", target, o.Err)
			continue
		}
		pred := o.Prediction
		fmt.Fprint(out, diagram.DrawSummaryBox(target.String(), []string{
			fmt.Sprintf("Mean prediction:  %.3f MPa", pred.Mean),
			fmt.Sprintf("Characteristic:   %.3f MPa", pred.Characteristic),
			fmt.Sprintf("Design:           %.3f MPa", pred.Design),
			fmt.Sprintf("γ = %.2f", pred.Gamma),
		}))
		if pred.WasClamped {
			fmt.Fprintf(out, "  ⚠ Raw %s was negative (%.3f MPa) and has been set to 0.0 MPa.\n", target, pred.Raw)
		}
		if details {
			printCalculation(out, target, rep.Inputs, *pred)
		}
		fmt.Fprintln(out)
	}
}

func printCalculation(out io.Writer, target residual.Target, in residual.MaterialInputs, pred residual.Prediction) {
	fmt.Fprintln(out)
	fmt.Fprintln(out, "  Calculation:")
	fmt.Fprintf(out, "    %s\n", method.Formula(target))
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "    Vf (decimal)\t= %.6f\n", in.Vf)
	lambda, _ := in.Lambda()
	fmt.Fprintf(w, "    λ = lf/df\t= %.2f\n", lambda)
	fmt.Fprintf(w, "    fc\t= %.2f MPa\n", in.Fc)
	if target == residual.Fr3 {
		fmt.Fprintf(w, "    ffu* = ffu/%g\t= %.3f\n", calibration.FfuRef, in.Ffu/calibration.FfuRef)
		fmt.Fprintf(w, "    lf* = lf/%g\t= %.3f\n", calibration.LfRef, in.Lf/calibration.LfRef)
	}
	fmt.Fprintf(w, "    %s (raw)\t= %.3f MPa\n", target, pred.Raw)
	w.Flush()
}
