package scenario

import (
	"github.com/project-singularity/oscollapse/internal/collapse"
)

// Summary is the evaluated outcome of one scenario: the derived collapse
// quantities plus the OS, environment, combined, and QM visibilities at
// the scenario's interrogation time.
type Summary struct {
	Scenario Scenario        `json:"scenario"`
	Result   collapse.Result `json:"result"`

	VOS       float64 `json:"v_os"`
	VQM       float64 `json:"v_qm"`
	VEnv      float64 `json:"v_env"`
	VCombined float64 `json:"v_os_plus_env"`

	// DeltaVisibility is V_QM − V_OS, the size of the predicted
	// deviation from standard quantum mechanics.
	DeltaVisibility float64 `json:"delta_visibility"`
}

// Run evaluates one scenario.
func Run(s Scenario, c collapse.Constants) (Summary, error) {
	if err := s.Validate(); err != nil {
		return Summary{}, err
	}

	params, err := collapse.NewParams(s.Mass, s.Separation, s.EffectiveLambda(), nil)
	if err != nil {
		return Summary{}, err
	}
	result, err := collapse.Evaluate(params, c)
	if err != nil {
		return Summary{}, err
	}

	times := []float64{s.Time}
	osCurve, err := collapse.Visibility(result.GammaCol, times)
	if err != nil {
		return Summary{}, err
	}
	envCurve, err := collapse.VisibilityEnv(s.GammaEnv, times)
	if err != nil {
		return Summary{}, err
	}
	combined, err := collapse.VisibilityCombined(result.GammaCol, s.GammaEnv, times)
	if err != nil {
		return Summary{}, err
	}

	sum := Summary{
		Scenario:  s,
		Result:    result,
		VOS:       osCurve.VOS[0],
		VQM:       osCurve.VQM[0],
		VEnv:      envCurve.VOS[0],
		VCombined: combined.VOS[0],
	}
	sum.DeltaVisibility = sum.VQM - sum.VOS
	return sum, nil
}

// RunAll evaluates scenarios in order. The first invalid scenario fails
// the batch; validation happens before any evaluation at load time for
// file-sourced sets, so this is a safety net for programmatic callers.
func RunAll(scenarios []Scenario, c collapse.Constants) ([]Summary, error) {
	summaries := make([]Summary, 0, len(scenarios))
	for _, s := range scenarios {
		sum, err := Run(s, c)
		if err != nil {
			return nil, err
		}
		summaries = append(summaries, sum)
	}
	return summaries, nil
}
