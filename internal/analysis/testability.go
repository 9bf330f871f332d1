package analysis

import (
	"math"

	"github.com/project-singularity/oscollapse/internal/collapse"
)

// DefaultEnvLossMax is the largest tolerable environment-induced
// visibility loss for a clean test of the collapse channel.
const DefaultEnvLossMax = 0.01

// TestabilityAssessment records whether collapse is distinguishable from
// QM at a point given a competing environmental decoherence rate.
type TestabilityAssessment struct {
	Mass       float64 `json:"mass_kg"`
	Separation float64 `json:"separation_m"`
	Time       float64 `json:"t_s"`
	Lambda     float64 `json:"lambda"`
	GammaEnv   float64 `json:"gamma_env"`

	VOS       float64 `json:"v_os"`
	VQM       float64 `json:"v_qm"`
	VEnv      float64 `json:"v_env"`
	VCombined float64 `json:"v_os_plus_env"`

	// DeltaOSQM is |V_OS − V_QM|, the signal an experiment looks for.
	DeltaOSQM float64 `json:"delta_os_qm"`

	// EnvLoss is 1 − V_env, the visibility already eaten by the
	// environment.
	EnvLoss float64 `json:"env_loss"`

	DeviationLarge bool `json:"os_deviation_large"`
	EnvLossSmall   bool `json:"env_loss_small"`

	// Testable: the collapse signal is large while the environmental
	// background stays small.
	Testable bool `json:"os_testable"`
}

// TestabilityOptions tunes an assessment. Nil overrides pick λ=1 and
// the default thresholds; an explicit λ=0 is honored and evaluates the
// never-collapsing point. GammaEnv defaults to no environment.
type TestabilityOptions struct {
	Lambda             *float64
	GammaEnv           float64
	DeviationThreshold *float64
	EnvLossMax         *float64
}

// AssessTestability evaluates whether the collapse channel is observable
// above environmental decoherence at a (mass, separation, t) point.
func AssessTestability(mass, separation, t float64, opts TestabilityOptions, c collapse.Constants) (TestabilityAssessment, error) {
	lambda := 1.0
	if opts.Lambda != nil {
		lambda = *opts.Lambda
	}
	deviationThreshold := DefaultDeviationThreshold
	if opts.DeviationThreshold != nil {
		deviationThreshold = *opts.DeviationThreshold
	}
	envLossMax := DefaultEnvLossMax
	if opts.EnvLossMax != nil {
		envLossMax = *opts.EnvLossMax
	}

	params, err := collapse.NewParams(mass, separation, lambda, nil)
	if err != nil {
		return TestabilityAssessment{}, err
	}
	result, err := collapse.Evaluate(params, c)
	if err != nil {
		return TestabilityAssessment{}, err
	}

	times := []float64{t}
	osCurve, err := collapse.Visibility(result.GammaCol, times)
	if err != nil {
		return TestabilityAssessment{}, err
	}
	envCurve, err := collapse.VisibilityEnv(opts.GammaEnv, times)
	if err != nil {
		return TestabilityAssessment{}, err
	}
	combined, err := collapse.VisibilityCombined(result.GammaCol, opts.GammaEnv, times)
	if err != nil {
		return TestabilityAssessment{}, err
	}

	a := TestabilityAssessment{
		Mass:       mass,
		Separation: separation,
		Time:       t,
		Lambda:     lambda,
		GammaEnv:   opts.GammaEnv,
		VOS:        osCurve.VOS[0],
		VQM:        osCurve.VQM[0],
		VEnv:       envCurve.VOS[0],
		VCombined:  combined.VOS[0],
	}
	a.DeltaOSQM = math.Abs(a.VOS - a.VQM)
	a.EnvLoss = 1 - a.VEnv
	a.DeviationLarge = a.DeltaOSQM >= deviationThreshold
	a.EnvLossSmall = a.EnvLoss <= envLossMax
	a.Testable = a.DeviationLarge && a.EnvLossSmall
	return a, nil
}
