package cmd

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/alexiusacademia/gosfrc/internal/calibration"
	"github.com/alexiusacademia/gosfrc/internal/method"
	"github.com/alexiusacademia/gosfrc/internal/residual"
	"github.com/spf13/cobra"
)

var methodMarkdown bool

var methodCmd = &cobra.Command{
	Use:   "method",
	Short: "Show the prediction models, scaling factors and validated limits",
	RunE:  runMethod,
}

func init() {
	rootCmd.AddCommand(methodCmd)

	methodCmd.Flags().BoolVar(&methodMarkdown, "markdown", false, "Print the method as Markdown")
}

func runMethod(cmd *cobra.Command, args []string) error {
	p, err := selectedProfile()
	if err != nil {
		return err
	}
	if methodMarkdown {
		fmt.Print(method.Markdown(p))
		return nil
	}

	fmt.Println()
	fmt.Println("═══════════════════════════════════════════════════════════════")
	fmt.Println("     METHOD & EQUATIONS")
	fmt.Println("═══════════════════════════════════════════════════════════════")
	fmt.Println()

	fmt.Println("MEAN PREDICTION MODELS:")
	fmt.Println("───────────────────────────────────────────────────────────────")
	fmt.Printf("  %s\n", method.Formula(residual.Fr1))
	fmt.Println()
	fmt.Printf("  ffu* = ffu/%g    lf* = lf/%g\n", calibration.FfuRef, calibration.LfRef)
	fmt.Printf("  %s\n", method.Formula(residual.Fr3))
	fmt.Println()

	fmt.Printf("CHARACTERISTIC AND DESIGN VALUES (profile %s):\n", p.ID)
	fmt.Println("───────────────────────────────────────────────────────────────")
	if p.Description != "" {
		fmt.Printf("  %s\n\n", p.Description)
	}
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "  Target\tCharacteristic\tDesign\tγ\n")
	fmt.Fprintf(w, "  ──────\t──────────────\t──────\t─\n")
	for _, t := range []residual.Target{residual.Fr1, residual.Fr3} {
		s := residual.ScalingFor(t, p)
		fmt.Fprintf(w, "  %s\t%.2f·f(pred)\t%.2f·f(pred)\t%.2f\n", t, s.KChar, s.KDesign, s.Gamma)
	}
	w.Flush()
	fmt.Println()

	fmt.Println("INPUT FORMATS:")
	fmt.Println("───────────────────────────────────────────────────────────────")
	fmt.Println("  Vf can be entered as percent or decimal (--vf-unit).")
	fmt.Printf("  Concrete strength can be entered as fc or fcu; fc = %.2f fcu.\n", calibration.FcFromFcu)
	fmt.Println()

	fmt.Println("VALIDATED LIMITS AND FIBRE TYPE:")
	fmt.Println("───────────────────────────────────────────────────────────────")
	lim := calibration.Envelope()
	w = tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "  fc:\t%g to %g MPa\n", lim.Fc.Min, lim.Fc.Max)
	fmt.Fprintf(w, "  Vf:\t%g%% to %g%%\t(decimal %g to %g)\n", lim.VfPercent.Min, lim.VfPercent.Max, lim.VfDecimal.Min, lim.VfDecimal.Max)
	fmt.Fprintf(w, "  λ = lf/df:\t%g to %g\n", lim.Lambda.Min, lim.Lambda.Max)
	fmt.Fprintf(w, "  ffu:\t%g to %g MPa\t(only for fR,3)\n", lim.Ffu.Min, lim.Ffu.Max)
	w.Flush()
	fmt.Println()
	fmt.Printf("  Fibre type: %s\n", lim.FibreType)
	fmt.Println()

	fmt.Println("NUMERICAL SAFEGUARD:")
	fmt.Println("───────────────────────────────────────────────────────────────")
	fmt.Println("  If a raw mean prediction becomes negative due to the constant")
	fmt.Println("  term, it is set to 0.0 MPa.")
	fmt.Println()

	fmt.Println("USE LIMITATION:")
	fmt.Println("───────────────────────────────────────────────────────────────")
	fmt.Println("  For scientific/research use only; not intended for structural")
	fmt.Println("  design or safety-critical decisions.")
	fmt.Println()
	return nil
}
