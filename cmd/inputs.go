package cmd

import (
	"errors"
	"fmt"

	"github.com/alexiusacademia/gosfrc/internal/residual"
	"github.com/spf13/cobra"
)

// entryFlags binds the material inputs shared by predict, validate and sweep.
type entryFlags struct {
	vf              float64
	vfUnit          string
	lf              float64
	df              float64
	fc              float64
	fcu             float64
	ffu             float64
	targets         []string
	noExtrapolation bool
}

func addEntryFlags(cmd *cobra.Command, f *entryFlags) {
	def := residual.DefaultEntry()

	// Fibre properties
	cmd.Flags().Float64Var(&f.vf, "vf", def.Vf, "Fibre volume fraction (percent, or decimal with --vf-unit decimal)")
	cmd.Flags().StringVar(&f.vfUnit, "vf-unit", "percent", "Unit of --vf: percent or decimal")
	cmd.Flags().Float64Var(&f.lf, "lf", def.Lf, "Fibre length lf (mm)")
	cmd.Flags().Float64Var(&f.df, "df", def.Df, "Fibre diameter df (mm)")
	cmd.Flags().Float64Var(&f.ffu, "ffu", def.Ffu, "Fibre ultimate tensile strength ffu (MPa), fR,3 only")

	// Concrete strength
	cmd.Flags().Float64Var(&f.fc, "fc", def.Strength, "Mean cylindrical compressive strength fc (MPa)")
	cmd.Flags().Float64Var(&f.fcu, "fcu", 50, "Mean cubic compressive strength fcu (MPa); converted with fc = 0.82 fcu")

	// Targets and gating
	cmd.Flags().StringSliceVarP(&f.targets, "target", "t", []string{"fr1", "fr3"}, "Targets to compute: fr1, fr3")
	cmd.Flags().BoolVar(&f.noExtrapolation, "no-extrapolation", false, "Refuse to compute when inputs are outside the validated limits")
}

// request builds a Request from the flags. Flags the user did not set keep
// the defaults of the input form.
func (f *entryFlags) request(cmd *cobra.Command) (residual.Request, error) {
	req := residual.DefaultRequest()

	unit, err := residual.ParseVfUnit(f.vfUnit)
	if err != nil {
		return req, err
	}
	req.Entry.VfUnit = unit
	req.Entry.Vf = f.vf
	if unit == residual.VfDecimal && !cmd.Flags().Changed("vf") {
		req.Entry.Vf = residual.DefaultEntry().VfDecimal()
	}

	req.Entry.Lf = f.lf
	req.Entry.Df = f.df
	req.Entry.Ffu = f.ffu

	fcSet, fcuSet := cmd.Flags().Changed("fc"), cmd.Flags().Changed("fcu")
	switch {
	case fcSet && fcuSet:
		return req, errors.New("give either --fc or --fcu, not both")
	case fcuSet:
		req.Entry.Strength = f.fcu
		req.Entry.StrengthKind = residual.Cube
	default:
		req.Entry.Strength = f.fc
	}

	req.Targets = residual.Targets{}
	for _, s := range f.targets {
		t, err := residual.ParseTarget(s)
		if err != nil {
			return req, err
		}
		if t == residual.Fr1 {
			req.Targets.Fr1 = true
		} else {
			req.Targets.Fr3 = true
		}
	}
	if !req.Targets.Any() {
		return req, fmt.Errorf("--target: %w", residual.ErrNoTarget)
	}

	req.AllowExtrapolation = !f.noExtrapolation
	if err := req.Entry.CheckFinite(); err != nil {
		return req, err
	}
	return req, nil
}
