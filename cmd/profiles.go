package cmd

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/alexiusacademia/gosfrc/internal/calibration"
	"github.com/spf13/cobra"
)

var profilesCmd = &cobra.Command{
	Use:   "profiles",
	Short: "List calibration profiles",
	Long: `List the calibration profiles available for characteristic and
design values.

Extra profiles can be loaded with --profiles-file from a YAML or JSON file:

profiles:
  - id: lab-2026
    description: recalibrated on in-house tests
    fr1: {k_char: 0.66, k_design: 0.48, gamma: 1.37}
    fr3: {k_char: 0.61, k_design: 0.42, gamma: 1.46}`,
	Run: runProfiles,
}

func init() {
	rootCmd.AddCommand(profilesCmd)
}

func runProfiles(cmd *cobra.Command, args []string) {
	fmt.Println()
	fmt.Println("CALIBRATION PROFILES:")
	fmt.Println("───────────────────────────────────────────────────────────────")
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "  ID\tfR,1 k/d/γ\tfR,3 k/d/γ\tDescription\n")
	fmt.Fprintf(w, "  ──\t──────────\t──────────\t───────────\n")
	for _, p := range registry.List() {
		marker := ""
		if p.ID == calibration.DefaultProfileID {
			marker = " (default)"
		}
		fmt.Fprintf(w, "  %s%s\t%s\t%s\t%s\n", p.ID, marker, scalingText(p.Fr1), scalingText(p.Fr3), p.Description)
	}
	w.Flush()
	fmt.Println()
}

func scalingText(s calibration.Scaling) string {
	return fmt.Sprintf("%.2f/%.2f/%.2f", s.KChar, s.KDesign, s.Gamma)
}
