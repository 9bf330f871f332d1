package collapse

import "math"

// Curve holds parallel visibility series sampled at Times.
// VOS decays under the collapse model; VQM is the collapse-free quantum
// baseline, constantly 1.
type Curve struct {
	Times []float64 `json:"times"`
	VOS   []float64 `json:"v_os"`
	VQM   []float64 `json:"v_qm"`
}

// Len returns the number of samples in the curve.
func (c Curve) Len() int { return len(c.Times) }

// Visibility samples V_OS(t) = exp(-Γ_col·t) and the V_QM ≡ 1 baseline at
// the given times. V_OS(0) = 1 exactly, and the series is monotonically
// non-increasing in t for Γ_col >= 0.
func Visibility(gammaCol float64, times []float64) (Curve, error) {
	return decayCurve(gammaCol, "gamma_col", times)
}

// VisibilityEnv samples the visibility loss from ordinary environmental
// decoherence at rate Γ_env, with the same exponential form as the
// collapse channel.
func VisibilityEnv(gammaEnv float64, times []float64) (Curve, error) {
	return decayCurve(gammaEnv, "gamma_env", times)
}

// VisibilityCombined samples visibility under collapse and environmental
// decoherence acting together: the rates add, so
// V(t) = exp(-(Γ_col+Γ_env)·t).
func VisibilityCombined(gammaCol, gammaEnv float64, times []float64) (Curve, error) {
	if gammaCol < 0 {
		return Curve{}, newParamError(ErrCodeNegativeRate, "gamma_col", "decoherence rate must be non-negative", gammaCol)
	}
	if gammaEnv < 0 {
		return Curve{}, newParamError(ErrCodeNegativeRate, "gamma_env", "decoherence rate must be non-negative", gammaEnv)
	}
	return decayCurve(gammaCol+gammaEnv, "gamma_col", times)
}

func decayCurve(gamma float64, field string, times []float64) (Curve, error) {
	if math.IsNaN(gamma) || math.IsInf(gamma, 0) {
		return Curve{}, newParamError(ErrCodeNonFinite, field, "decoherence rate must be finite", gamma)
	}
	if gamma < 0 {
		return Curve{}, newParamError(ErrCodeNegativeRate, field, "decoherence rate must be non-negative", gamma)
	}

	curve := Curve{
		Times: make([]float64, len(times)),
		VOS:   make([]float64, len(times)),
		VQM:   make([]float64, len(times)),
	}
	for i, t := range times {
		if math.IsNaN(t) || math.IsInf(t, 0) {
			return Curve{}, newParamError(ErrCodeNonFinite, "time", "sample time must be finite", t)
		}
		if t < 0 {
			return Curve{}, newParamError(ErrCodeNegativeTime, "time", "sample time must be non-negative", t)
		}
		curve.Times[i] = t
		curve.VOS[i] = math.Exp(-gamma * t)
		curve.VQM[i] = 1.0
	}
	return curve, nil
}
