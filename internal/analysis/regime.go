package analysis

import (
	"math"

	"github.com/project-singularity/oscollapse/internal/collapse"
)

// Regime labels where a parameter point sits between "indistinguishable
// from standard QM" and "already classical".
type Regime string

const (
	// RegimeMicroSafe: collapse far too slow to observe (t ≪ τ_c).
	RegimeMicroSafe Regime = "micro_safe"

	// RegimeNanoEdge: collapse and experiment timescales comparable;
	// the interesting window for tests.
	RegimeNanoEdge Regime = "nano_edge"

	// RegimeMesoCollapse: collapse dominates well within the experiment
	// time (t ≫ τ_c) at sub-macroscopic mass.
	RegimeMesoCollapse Regime = "meso_collapse"

	// RegimeMacroClassical: macroscopic mass or sub-nanosecond τ_c;
	// superpositions are gone before any measurement.
	RegimeMacroClassical Regime = "macro_classical"
)

// Regime boundaries. Masses at or above macroMassCutoff, or collapse
// times below macroTauCutoff, are classical regardless of t/τ_c; the
// t/τ_c ratio splits the remaining space.
const (
	macroMassCutoff = 1e-6 // kg
	macroTauCutoff  = 1e-9 // s
	microRatioMax   = 1e-3 // t/τ_c below this: micro_safe
	mesoRatioMin    = 1e2  // t/τ_c above this: meso_collapse
)

// DefaultDeviationThreshold is the |V_OS − V_QM| gap treated as a strong,
// observable deviation.
const DefaultDeviationThreshold = 0.1

// RegimeAssessment is the full classification record for one point.
type RegimeAssessment struct {
	Mass       float64 `json:"mass_kg"`
	Separation float64 `json:"separation_m"`
	Time       float64 `json:"t_s"`
	Lambda     float64 `json:"lambda"`

	Result collapse.Result `json:"result"`

	// TOverTau is t/τ_c, or 0 when τ_c is undefined (no collapse).
	TOverTau float64 `json:"t_over_tau"`

	VOS float64 `json:"v_os"`
	VQM float64 `json:"v_qm"`

	Regime Regime `json:"regime"`

	// StrongDeviation is set when |V_OS − V_QM| reaches the deviation
	// threshold.
	StrongDeviation bool `json:"strong_deviation"`
}

// RegimeOptions tunes an assessment. The zero value picks λ=1 and the
// default deviation threshold.
type RegimeOptions struct {
	// Lambda overrides the coupling efficiency; nil means 1.0. An
	// explicit zero is honored: the point never collapses and
	// classifies micro_safe.
	Lambda *float64

	// DeviationThreshold overrides DefaultDeviationThreshold; nil keeps
	// the default.
	DeviationThreshold *float64
}

// AssessRegime classifies a (mass, separation, t) point under the
// collapse model.
func AssessRegime(mass, separation, t float64, opts RegimeOptions, c collapse.Constants) (RegimeAssessment, error) {
	lambda := 1.0
	if opts.Lambda != nil {
		lambda = *opts.Lambda
	}
	threshold := DefaultDeviationThreshold
	if opts.DeviationThreshold != nil {
		threshold = *opts.DeviationThreshold
	}
	if t < 0 || math.IsNaN(t) || math.IsInf(t, 0) {
		return RegimeAssessment{}, &collapse.ParamError{
			Code: collapse.ErrCodeNegativeTime, Field: "t", Value: t,
			Message: "assessment time must be a non-negative finite value",
		}
	}

	params, err := collapse.NewParams(mass, separation, lambda, nil)
	if err != nil {
		return RegimeAssessment{}, err
	}
	result, err := collapse.Evaluate(params, c)
	if err != nil {
		return RegimeAssessment{}, err
	}

	curve, err := collapse.Visibility(result.GammaCol, []float64{t})
	if err != nil {
		return RegimeAssessment{}, err
	}
	vOS := curve.VOS[0]
	vQM := curve.VQM[0]

	tOverTau := 0.0
	if !result.NoCollapse && result.TauC > 0 {
		tOverTau = t / result.TauC
	}

	var regime Regime
	switch {
	case mass >= macroMassCutoff || (!result.NoCollapse && result.TauC < macroTauCutoff):
		regime = RegimeMacroClassical
	case tOverTau < microRatioMax:
		regime = RegimeMicroSafe
	case tOverTau <= mesoRatioMin:
		regime = RegimeNanoEdge
	default:
		regime = RegimeMesoCollapse
	}

	return RegimeAssessment{
		Mass:            mass,
		Separation:      separation,
		Time:            t,
		Lambda:          lambda,
		Result:          result,
		TOverTau:        tOverTau,
		VOS:             vOS,
		VQM:             vQM,
		Regime:          regime,
		StrongDeviation: math.Abs(vOS-vQM) >= threshold,
	}, nil
}

// SafelyAlive reports that the model is effectively indistinguishable
// from standard QM at this point.
func (a RegimeAssessment) SafelyAlive() bool {
	return a.Regime == RegimeMicroSafe && !a.StrongDeviation
}

// StronglyTestable reports that the model deviates observably from QM in
// a regime an experiment could actually reach.
func (a RegimeAssessment) StronglyTestable() bool {
	return a.StrongDeviation && (a.Regime == RegimeNanoEdge || a.Regime == RegimeMesoCollapse)
}
