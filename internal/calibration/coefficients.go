package calibration

// Fixed regression coefficients of the mean prediction models.
// The models are not refitted at runtime.

// Fr1Coefficients holds the power-law terms of
// fR,1 = A * Vf^B * (lf/df)^C * fc^D + Const
type Fr1Coefficients struct {
	A, B, C, D float64
	Const      float64
}

// Fr3Coefficients holds the power-law terms of
// fR,3 = A * Vf^B * (lf/df)^C * fc^D * (ffu/1000)^E * (lf/50)^F + Const
type Fr3Coefficients struct {
	A, B, C, D, E, F float64
	Const            float64
}

var (
	Fr1 = Fr1Coefficients{A: 6.939, B: 0.448, C: 0.377, D: 0.265, Const: -3.823}
	Fr3 = Fr3Coefficients{A: 12.000, B: 0.613, C: 0.370, D: 0.247, E: 0.411, F: 0.313, Const: -1.506}
)

const (
	// FfuRef normalises ffu in the fR,3 model (MPa)
	FfuRef = 1000.0
	// LfRef normalises lf in the fR,3 model (mm)
	LfRef = 50.0
)
