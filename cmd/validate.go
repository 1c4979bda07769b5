package cmd

import (
	"encoding/json"
	"errors"

	"github.com/alexiusacademia/gosfrc/internal/residual"
	"github.com/spf13/cobra"
)

var (
	validateInputs entryFlags
	validateJSON   bool
	validateStrict bool
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Check inputs against the validated limits",
	Long: `Check the inputs against the validity ranges of the calibration
dataset without computing any prediction.

  fc:           22 to 79 MPa (or fcu converted using fc = 0.82 fcu)
  Vf:           0.2% to 2.0% (decimal 0.002 to 0.02)
  λ = lf/df:    38 to 100
  ffu:          1000 to 3200 MPa (only for fR,3)

Examples:
  gosfrc validate --vf 0.1
  gosfrc validate --df 0 --strict`,
	RunE: runValidate,
}

func init() {
	rootCmd.AddCommand(validateCmd)

	addEntryFlags(validateCmd, &validateInputs)
	validateCmd.Flags().BoolVar(&validateJSON, "json", false, "Print the validation result as JSON")
	validateCmd.Flags().BoolVar(&validateStrict, "strict", false, "Exit with an error when any input is outside the limits")
}

func runValidate(cmd *cobra.Command, args []string) error {
	req, err := validateInputs.request(cmd)
	if err != nil {
		return err
	}
	v := residual.Validate(req.Entry, req.Targets.Fr3)

	out := cmd.OutOrStdout()
	if validateJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		if err := enc.Encode(v); err != nil {
			return err
		}
	} else {
		printHeader(out, "SFRC INPUT VALIDATION")
		printInputs(out, req)
		printValidation(out, v, req.AllowExtrapolation)
	}

	if validateStrict && !v.Valid() {
		return errors.New("inputs are outside the validated limits")
	}
	return nil
}
