package calibration

// Validity envelope of the calibration dataset

// ValidityRange is a closed interval [Min, Max].
type ValidityRange struct {
	Min float64 `json:"min" yaml:"min"`
	Max float64 `json:"max" yaml:"max"`
}

// Contains reports whether x lies inside the range, bounds included.
// NaN is never inside.
func (r ValidityRange) Contains(x float64) bool {
	return x >= r.Min && x <= r.Max
}

var (
	// FcRange is the mean cylindrical compressive strength range (MPa)
	FcRange = ValidityRange{Min: 22.0, Max: 79.0}

	// VfPercentRange is the fibre volume fraction range when entered in percent
	VfPercentRange = ValidityRange{Min: 0.2, Max: 2.0}

	// VfDecimalRange is the fibre volume fraction range when entered as a decimal
	VfDecimalRange = ValidityRange{Min: 0.002, Max: 0.02}

	// LambdaRange is the fibre aspect ratio lf/df range
	LambdaRange = ValidityRange{Min: 38.0, Max: 100.0}

	// FfuRange is the fibre tensile strength range (MPa), fR,3 only
	FfuRange = ValidityRange{Min: 1000.0, Max: 3200.0}
)

// FcFromFcu is the fixed cylinder/cube strength ratio.
const FcFromFcu = 0.82

// FibreTypeNote names the only fibre type the models were calibrated for.
const FibreTypeNote = "3D hooked-end steel fibres (as in the experimental dataset used for model development/calibration)."

// FcFromCube converts mean cubic compressive strength to mean cylindrical strength.
func FcFromCube(fcu float64) float64 {
	return FcFromFcu * fcu
}

// Limits groups the envelope for reporting.
type Limits struct {
	Fc        ValidityRange `json:"fc"`
	VfPercent ValidityRange `json:"vf_percent"`
	VfDecimal ValidityRange `json:"vf_decimal"`
	Lambda    ValidityRange `json:"lambda"`
	Ffu       ValidityRange `json:"ffu"`
	FcFromFcu float64       `json:"fc_from_fcu"`
	FibreType string        `json:"fibre_type"`
}

// Envelope returns a copy of the fixed validity envelope.
func Envelope() Limits {
	return Limits{
		Fc:        FcRange,
		VfPercent: VfPercentRange,
		VfDecimal: VfDecimalRange,
		Lambda:    LambdaRange,
		Ffu:       FfuRange,
		FcFromFcu: FcFromFcu,
		FibreType: FibreTypeNote,
	}
}
