// Package method renders the description of the prediction models, the
// calibration profile and the validated limits.
package method

import (
	"fmt"
	"strings"

	"github.com/alexiusacademia/gosfrc/internal/calibration"
	"github.com/alexiusacademia/gosfrc/internal/residual"
	"github.com/gomarkdown/markdown"
	"github.com/gomarkdown/markdown/html"
	"github.com/gomarkdown/markdown/parser"
)

// Formula returns the mean model of target with its fitted constants.
func Formula(target residual.Target) string {
	if target == residual.Fr3 {
		c := calibration.Fr3
		return fmt.Sprintf("fR,3 = %.3f·Vf^%.3f·(lf/df)^%.3f·fc^%.3f·(ffu*)^%.3f·(lf*)^%.3f %+.3f",
			c.A, c.B, c.C, c.D, c.E, c.F, c.Const)
	}
	c := calibration.Fr1
	return fmt.Sprintf("fR,1 = %.3f·Vf^%.3f·(lf/df)^%.3f·fc^%.3f %+.3f", c.A, c.B, c.C, c.D, c.Const)
}

// Markdown describes the models, the scaling of profile p and the limits.
func Markdown(p calibration.Profile) string {
	var b strings.Builder
	lim := calibration.Envelope()

	b.WriteString("# Method & equations\n\n")

	b.WriteString("## Mean prediction models\n\n")
	fmt.Fprintf(&b, "    %s\n\n", Formula(residual.Fr1))
	fmt.Fprintf(&b, "    %s\n\n", Formula(residual.Fr3))
	fmt.Fprintf(&b, "with ffu* = ffu/%g and lf* = lf/%g. Vf enters the models as a decimal fraction.\n\n",
		calibration.FfuRef, calibration.LfRef)

	fmt.Fprintf(&b, "## Characteristic and design values (profile `%s`)\n\n", p.ID)
	if p.Description != "" {
		fmt.Fprintf(&b, "%s\n\n", p.Description)
	}
	b.WriteString("| Target | Characteristic | Design | γ |\n")
	b.WriteString("|--------|----------------|--------|---|\n")
	for _, t := range []residual.Target{residual.Fr1, residual.Fr3} {
		s := residual.ScalingFor(t, p)
		fmt.Fprintf(&b, "| %s | %.2f × mean | %.2f × mean | %.2f |\n", t, s.KChar, s.KDesign, s.Gamma)
	}
	b.WriteString("\n")

	b.WriteString("## Input formats\n\n")
	b.WriteString("- Vf can be entered as percent or decimal.\n")
	fmt.Fprintf(&b, "- Concrete strength can be entered as fc or fcu; fc = %.2f fcu.\n\n", calibration.FcFromFcu)

	b.WriteString("## Validated limits\n\n")
	b.WriteString("| Input | Range |\n")
	b.WriteString("|-------|-------|\n")
	fmt.Fprintf(&b, "| fc | %g to %g MPa |\n", lim.Fc.Min, lim.Fc.Max)
	fmt.Fprintf(&b, "| Vf | %g%% to %g%% (decimal %g to %g) |\n", lim.VfPercent.Min, lim.VfPercent.Max, lim.VfDecimal.Min, lim.VfDecimal.Max)
	fmt.Fprintf(&b, "| λ = lf/df | %g to %g |\n", lim.Lambda.Min, lim.Lambda.Max)
	fmt.Fprintf(&b, "| ffu | %g to %g MPa (fR,3 only) |\n\n", lim.Ffu.Min, lim.Ffu.Max)
	fmt.Fprintf(&b, "Fibre type: %s\n\n", lim.FibreType)

	b.WriteString("## Numerical safeguard\n\n")
	b.WriteString("If a raw mean prediction becomes negative due to the constant term, it is set to 0.0 MPa.\n\n")

	b.WriteString("## Use limitation\n\n")
	b.WriteString("For scientific/research use only; not intended for structural design or safety-critical decisions.\n")
	return b.String()
}

// HTML renders Markdown(p) as a complete HTML page.
func HTML(p calibration.Profile) []byte {
	ps := parser.NewWithExtensions(parser.CommonExtensions)
	r := html.NewRenderer(html.RendererOptions{
		Flags: html.CommonFlags | html.CompletePage,
		Title: "gosfrc method (" + p.ID + ")",
	})
	return markdown.ToHTML([]byte(Markdown(p)), ps, r)
}
