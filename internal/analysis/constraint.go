package analysis

import (
	"fmt"

	"github.com/project-singularity/oscollapse/internal/collapse"
)

// Experiment describes a published interference measurement used to bound
// the coupling efficiency λ.
type Experiment struct {
	Name       string  `json:"name"`
	Mass       float64 `json:"mass_kg"`
	Separation float64 `json:"separation_m"`
	Time       float64 `json:"t_s"`

	// VisibilityObserved is the measured fringe visibility at Time.
	VisibilityObserved float64 `json:"visibility_observed"`

	// VisibilityError is the 1σ uncertainty on the observation.
	VisibilityError float64 `json:"visibility_error"`
}

// Validate rejects experiments whose observation cannot bound anything.
func (e Experiment) Validate() error {
	if _, err := collapse.NewParams(e.Mass, e.Separation, 0, nil); err != nil {
		return fmt.Errorf("experiment %q: %w", e.Name, err)
	}
	if e.Time < 0 {
		return fmt.Errorf("experiment %q: negative interrogation time %g", e.Name, e.Time)
	}
	if e.VisibilityObserved < 0 || e.VisibilityObserved > 1 {
		return fmt.Errorf("experiment %q: observed visibility %g outside [0,1]", e.Name, e.VisibilityObserved)
	}
	if e.VisibilityError < 0 {
		return fmt.Errorf("experiment %q: negative visibility error %g", e.Name, e.VisibilityError)
	}
	return nil
}

// DefaultSigmaFactor widens the observation by 2σ before a λ is ruled out.
const DefaultSigmaFactor = 2.0

// Constraint is the outcome of a λ-grid search against one experiment.
type Constraint struct {
	Experiment Experiment `json:"experiment"`
	LambdaGrid []float64  `json:"lambda_grid"`

	// LambdaMax is the largest grid λ the observation still allows.
	// Meaningless when Found is false (every λ ruled out).
	LambdaMax float64 `json:"lambda_max_allowed"`
	Found     bool    `json:"found"`
}

// ConstraintOptions tunes the search. The zero value means no
// environmental decoherence and the default σ factor.
type ConstraintOptions struct {
	// GammaEnv adds environmental decoherence to the predicted
	// visibility when HasEnv is set.
	GammaEnv float64
	HasEnv   bool

	// SigmaFactor overrides DefaultSigmaFactor; nil keeps the default.
	// An explicit zero demands the prediction meet the observation with
	// no widening at all.
	SigmaFactor *float64
}

// FindLambdaConstraint computes, for each λ on the grid, the predicted
// visibility at the experiment's parameters, and keeps the largest λ
// whose prediction stays within sigma·error of the observation. A λ is
// allowed when V_pred >= V_obs − σ·ΔV.
func FindLambdaConstraint(exp Experiment, lambdaGrid []float64, opts ConstraintOptions, c collapse.Constants) (Constraint, error) {
	if err := exp.Validate(); err != nil {
		return Constraint{}, err
	}
	sigma := DefaultSigmaFactor
	if opts.SigmaFactor != nil {
		sigma = *opts.SigmaFactor
	}

	threshold := exp.VisibilityObserved - sigma*exp.VisibilityError
	constraint := Constraint{Experiment: exp, LambdaGrid: lambdaGrid}

	for _, lambda := range lambdaGrid {
		params, err := collapse.NewParams(exp.Mass, exp.Separation, lambda, nil)
		if err != nil {
			return Constraint{}, fmt.Errorf("lambda grid value %g: %w", lambda, err)
		}
		result, err := collapse.Evaluate(params, c)
		if err != nil {
			return Constraint{}, err
		}

		var curve collapse.Curve
		if opts.HasEnv {
			curve, err = collapse.VisibilityCombined(result.GammaCol, opts.GammaEnv, []float64{exp.Time})
		} else {
			curve, err = collapse.Visibility(result.GammaCol, []float64{exp.Time})
		}
		if err != nil {
			return Constraint{}, err
		}

		if curve.VOS[0] >= threshold {
			if !constraint.Found || lambda > constraint.LambdaMax {
				constraint.LambdaMax = lambda
				constraint.Found = true
			}
		}
	}
	return constraint, nil
}
