package cmd

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/alexiusacademia/gosfrc/internal/calibration"
	"github.com/alexiusacademia/gosfrc/internal/logging"
	"github.com/alexiusacademia/gosfrc/internal/version"
	"github.com/spf13/cobra"
)

var (
	profileID    string
	profilesFile string
	verbose      bool
	noColor      bool

	// set in PersistentPreRunE
	registry *calibration.Registry
	logger   *slog.Logger
)

var rootCmd = &cobra.Command{
	Use:   "gosfrc",
	Short: "SFRC Residual Flexural Strength Tool (fR,1, fR,3)",
	Long: `gosfrc - Steel-Fibre-Reinforced Concrete Residual Strength Predictor

A CLI tool that predicts the residual flexural strengths fR,1 and fR,3
of steel-fibre-reinforced concrete from the mix and fibre properties,
and derives characteristic and design values.

This tool helps researchers:
  - Predict mean fR,1 and fR,3 with fixed regression models
  - Derive characteristic and design values (EN 1990 Annex C calibration)
  - Check inputs against the validity ranges of the calibration dataset
  - Sweep one variable and chart the predictions
  - Evaluate a file of mixes, or serve the calculator over HTTP

Any flag not given on the command line is read from GOSFRC_<FLAG>
(e.g. GOSFRC_PROFILES_FILE, GOSFRC_ADDR), also from a .env file in the
working directory.

For scientific/research use only. Not intended for structural design.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := applyEnv(cmd); err != nil {
			return err
		}
		logger = logging.Setup(logging.Options{Verbose: verbose, NoColor: noColor})

		registry = calibration.NewRegistry()
		if profilesFile != "" {
			if err := registry.LoadProfilesFile(profilesFile); err != nil {
				return err
			}
			logger.Debug("loaded profiles", "file", profilesFile)
		}
		return nil
	},
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println()
		fmt.Println("  ╔═══════════════════════════════════════════════════════════╗")
		fmt.Println("  ║                                                           ║")
		fmt.Printf("  ║   gosfrc v%-48s║\n", version.Version)
		fmt.Println("  ║   SFRC Residual Flexural Strength Tool (fR,1, fR,3)       ║")
		fmt.Println("  ║   Alexius S. Academia ©  2026                             ║")
		fmt.Println("  ║                                                           ║")
		fmt.Println("  ╚═══════════════════════════════════════════════════════════╝")
		fmt.Println()
		fmt.Println("  Predicts residual flexural strengths of steel-fibre-reinforced")
		fmt.Println("  concrete from fixed regression models.")
		fmt.Println()
		fmt.Println("  Features:")
		fmt.Println("    • Mean, characteristic and design fR,1 and fR,3")
		fmt.Println("    • Validation against the calibration dataset ranges")
		fmt.Println("    • Selectable calibration profiles")
		fmt.Println("    • Parametric sweeps with ASCII and image charts")
		fmt.Println("    • Batch evaluation and an HTTP API")
		fmt.Println()
		fmt.Println("  Research use only. Not intended for structural design.")
		fmt.Println()
		fmt.Println("  Use 'gosfrc --help' to see available commands.")
		fmt.Println()
		fmt.Println("  ─────────────────────────────────────────────────────────────")
		fmt.Printf("  Copyright © %s %s. All rights reserved.\n", version.Year, version.Author)
		fmt.Println()
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.CompletionOptions.DisableDefaultCmd = true

	rootCmd.PersistentFlags().StringVarP(&profileID, "profile", "p", calibration.DefaultProfileID, "Calibration profile for characteristic/design values")
	rootCmd.PersistentFlags().StringVar(&profilesFile, "profiles-file", "", "YAML/JSON file with extra calibration profiles")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "Disable colored log output")
}

// selectedProfile resolves --profile against the registry.
func selectedProfile() (calibration.Profile, error) {
	return registry.Lookup(profileID)
}
