package collapse

// Result holds the derived collapse quantities for one parameter set.
// It has no lifecycle of its own: recomputed on demand, never mutated.
type Result struct {
	// DeltaEG is the gravitational self-energy gap ΔE_G [J].
	DeltaEG float64 `json:"delta_e_g"`

	// GammaCol is the collapse rate Γ_col [1/s].
	GammaCol float64 `json:"gamma_col"`

	// TauC is the collapse time τ_c [s]. Zero and meaningless when
	// NoCollapse is set.
	TauC float64 `json:"tau_c,omitempty"`

	// NoCollapse is set when Γ_col = 0, in which case τ_c is undefined
	// and the superposition persists indefinitely.
	NoCollapse bool `json:"no_collapse,omitempty"`
}

// DeltaEG computes the gravitational self-energy gap G·m²/d for a
// point-mass superposition of mass m at branch separation d.
func DeltaEG(mass, separation float64, c Constants) (float64, error) {
	if err := c.validate(); err != nil {
		return 0, err
	}
	if mass <= 0 {
		return 0, newParamError(ErrCodeNonPositiveMass, "mass", "mass must be positive", mass)
	}
	if separation <= 0 {
		return 0, newParamError(ErrCodeNonPositiveSeparation, "separation", "separation must be positive", separation)
	}
	return c.G * mass * mass / separation, nil
}

// GammaCol computes the collapse rate λ·ΔE_G/ħ.
func GammaCol(lambda, deltaEG float64, c Constants) (float64, error) {
	if err := c.validate(); err != nil {
		return 0, err
	}
	if lambda < 0 {
		return 0, newParamError(ErrCodeNegativeLambda, "lambda", "lambda must be non-negative", lambda)
	}
	if deltaEG < 0 {
		return 0, newParamError(ErrCodeNegativeRate, "delta_e_g", "energy gap must be non-negative", deltaEG)
	}
	return lambda * deltaEG / c.Hbar, nil
}

// TauC computes the collapse time 1/Γ_col. A zero rate returns
// ErrNoCollapse rather than +Inf so callers branch on a named condition
// instead of inspecting a sentinel float.
func TauC(gammaCol float64) (float64, error) {
	if gammaCol < 0 {
		return 0, newParamError(ErrCodeNegativeRate, "gamma_col", "collapse rate must be non-negative", gammaCol)
	}
	if gammaCol == 0 {
		return 0, ErrNoCollapse
	}
	return 1 / gammaCol, nil
}

// Evaluate runs the full pipeline ΔE_G → Γ_col → τ_c for one parameter
// set. The Γ_col = 0 case is folded into the result as NoCollapse rather
// than returned as an error, so scan layers can carry it as a per-point
// outcome. Errors are reserved for invalid inputs.
func Evaluate(p Params, c Constants) (Result, error) {
	deltaEG, err := DeltaEG(p.Mass, p.Separation, c)
	if err != nil {
		return Result{}, err
	}
	gammaCol, err := GammaCol(p.Lambda, deltaEG, c)
	if err != nil {
		return Result{}, err
	}
	res := Result{DeltaEG: deltaEG, GammaCol: gammaCol}

	tauC, err := TauC(gammaCol)
	switch {
	case err == nil:
		res.TauC = tauC
	case IsNoCollapse(err):
		res.NoCollapse = true
	default:
		return Result{}, err
	}
	return res, nil
}
