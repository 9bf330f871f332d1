package analysis

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/project-singularity/oscollapse/internal/collapse"
)

func lambdaOf(v float64) *float64 { return &v }

func TestAssessRegimeMicroSafe(t *testing.T) {
	a, err := AssessRegime(1e-24, 1e-6, 1.0, RegimeOptions{}, collapse.DefaultConstants())
	require.NoError(t, err)

	assert.Equal(t, RegimeMicroSafe, a.Regime)
	assert.False(t, a.StrongDeviation)
	assert.Less(t, a.TOverTau, microRatioMax)
	assert.True(t, a.SafelyAlive())
	assert.False(t, a.StronglyTestable())
}

func TestAssessRegimeMesoCollapse(t *testing.T) {
	a, err := AssessRegime(1e-12, 1e-9, 1.0, RegimeOptions{}, collapse.DefaultConstants())
	require.NoError(t, err)

	assert.Equal(t, RegimeMesoCollapse, a.Regime)
	assert.True(t, a.StrongDeviation)
	assert.Greater(t, a.TOverTau, mesoRatioMin)
	assert.True(t, a.StronglyTestable())
}

func TestAssessRegimeMacroClassical(t *testing.T) {
	a, err := AssessRegime(1e-3, 1e-3, 1.0, RegimeOptions{}, collapse.DefaultConstants())
	require.NoError(t, err)
	assert.Equal(t, RegimeMacroClassical, a.Regime)
}

func TestAssessRegimeTinyLambdaStaysQuantum(t *testing.T) {
	a, err := AssessRegime(1e-12, 1e-9, 1.0, RegimeOptions{Lambda: lambdaOf(1e-300)}, collapse.DefaultConstants())
	require.NoError(t, err)
	assert.NotEqual(t, RegimeMacroClassical, a.Regime)
}

func TestAssessRegimeHonorsExplicitZeroLambda(t *testing.T) {
	// An explicit λ=0 must not be confused with an unset override: the
	// point never collapses, so t/τ = 0 and it classifies micro_safe even
	// where λ=1 would collapse a thousand times over.
	a, err := AssessRegime(1e-14, 1e-6, 10, RegimeOptions{Lambda: lambdaOf(0)}, collapse.DefaultConstants())
	require.NoError(t, err)

	assert.True(t, a.Result.NoCollapse)
	assert.Zero(t, a.Result.GammaCol)
	assert.Zero(t, a.TOverTau)
	assert.Equal(t, RegimeMicroSafe, a.Regime)
	assert.Zero(t, a.Lambda)
	assert.False(t, a.StrongDeviation)

	// The same parameters under the default λ=1 do collapse.
	b, err := AssessRegime(1e-14, 1e-6, 10, RegimeOptions{}, collapse.DefaultConstants())
	require.NoError(t, err)
	assert.False(t, b.Result.NoCollapse)
	assert.NotEqual(t, RegimeMicroSafe, b.Regime)
}

func TestAssessRegimeRejectsNegativeTime(t *testing.T) {
	_, err := AssessRegime(1e-12, 1e-9, -1.0, RegimeOptions{}, collapse.DefaultConstants())
	require.Error(t, err)
	assert.True(t, collapse.IsParamError(err))
}

func TestAssessTestability(t *testing.T) {
	a, err := AssessTestability(1e-15, 1e-7, 0.1, TestabilityOptions{
		Lambda:   lambdaOf(1.0),
		GammaEnv: 0.01,
	}, collapse.DefaultConstants())
	require.NoError(t, err)

	assert.True(t, a.DeviationLarge)
	assert.True(t, a.EnvLossSmall)
	assert.True(t, a.Testable)
	assert.Less(t, a.VCombined, a.VEnv, "combined decay beats env alone")
	assert.InDelta(t, 1.0, a.VQM, 0)
}

func TestAssessTestabilityEnvDominates(t *testing.T) {
	a, err := AssessTestability(1e-15, 1e-7, 0.1, TestabilityOptions{
		Lambda:   lambdaOf(1.0),
		GammaEnv: 100.0,
	}, collapse.DefaultConstants())
	require.NoError(t, err)

	assert.False(t, a.EnvLossSmall)
	assert.False(t, a.Testable)
}

func TestAssessTestabilityExplicitZeroLambda(t *testing.T) {
	a, err := AssessTestability(1e-14, 1e-6, 10, TestabilityOptions{
		Lambda: lambdaOf(0),
	}, collapse.DefaultConstants())
	require.NoError(t, err)

	assert.InDelta(t, 1.0, a.VOS, 0)
	assert.Zero(t, a.DeltaOSQM)
	assert.False(t, a.DeviationLarge)
	assert.False(t, a.Testable)
}

func TestFindLambdaConstraint(t *testing.T) {
	exp := Experiment{
		Name:               "mock",
		Mass:               1e-15,
		Separation:         1e-7,
		Time:               0.1,
		VisibilityObserved: 0.9,
		VisibilityError:    0.05,
	}
	grid := []float64{0.001, 0.01, 0.1, 1.0}

	constraint, err := FindLambdaConstraint(exp, grid, ConstraintOptions{}, collapse.DefaultConstants())
	require.NoError(t, err)

	assert.True(t, constraint.Found)
	assert.InDelta(t, 0.1, constraint.LambdaMax, 1e-15)
}

func TestFindLambdaConstraintZeroSigma(t *testing.T) {
	// σ=0 is a meaningful choice, not "use the default": the prediction
	// must meet the observation exactly. V(λ=0.2) ≈ 0.881 here, which
	// clears the default 2σ threshold of 0.8 but not the raw 0.9.
	exp := Experiment{
		Name:               "tight",
		Mass:               1e-15,
		Separation:         1e-7,
		Time:               0.1,
		VisibilityObserved: 0.9,
		VisibilityError:    0.05,
	}
	grid := []float64{0.2}

	relaxed, err := FindLambdaConstraint(exp, grid, ConstraintOptions{}, collapse.DefaultConstants())
	require.NoError(t, err)
	assert.True(t, relaxed.Found)

	sigma := 0.0
	strict, err := FindLambdaConstraint(exp, grid, ConstraintOptions{SigmaFactor: &sigma}, collapse.DefaultConstants())
	require.NoError(t, err)
	assert.False(t, strict.Found)
}

func TestFindLambdaConstraintAllRuledOut(t *testing.T) {
	// A heavy, long-lived superposition with perfect observed visibility
	// rules out every λ on the grid.
	exp := Experiment{
		Name:               "heavy",
		Mass:               1e-12,
		Separation:         1e-9,
		Time:               1.0,
		VisibilityObserved: 1.0,
		VisibilityError:    0.0,
	}
	constraint, err := FindLambdaConstraint(exp, []float64{0.01, 0.1, 1.0}, ConstraintOptions{}, collapse.DefaultConstants())
	require.NoError(t, err)
	assert.False(t, constraint.Found)
}

func TestFindLambdaConstraintWithEnv(t *testing.T) {
	exp := Experiment{
		Name:               "env",
		Mass:               1e-15,
		Separation:         1e-7,
		Time:               0.1,
		VisibilityObserved: 0.9,
		VisibilityError:    0.05,
	}
	grid := []float64{0.001, 0.01, 0.1, 1.0}

	clean, err := FindLambdaConstraint(exp, grid, ConstraintOptions{}, collapse.DefaultConstants())
	require.NoError(t, err)
	noisy, err := FindLambdaConstraint(exp, grid, ConstraintOptions{HasEnv: true, GammaEnv: 1.5}, collapse.DefaultConstants())
	require.NoError(t, err)

	// Environmental decoherence only lowers predicted visibility, so the
	// allowed λ can only shrink.
	if noisy.Found {
		assert.LessOrEqual(t, noisy.LambdaMax, clean.LambdaMax)
	}
}

func TestFindLambdaConstraintRejectsInvalidExperiment(t *testing.T) {
	exp := Experiment{Name: "bad", Mass: -1, Separation: 1e-7, Time: 0.1, VisibilityObserved: 0.9}
	_, err := FindLambdaConstraint(exp, []float64{1}, ConstraintOptions{}, collapse.DefaultConstants())
	assert.Error(t, err)

	exp = Experiment{Name: "bad2", Mass: 1e-15, Separation: 1e-7, Time: 0.1, VisibilityObserved: 1.5}
	_, err = FindLambdaConstraint(exp, []float64{1}, ConstraintOptions{}, collapse.DefaultConstants())
	assert.Error(t, err)
}

func TestFindLambdaConstraintRejectsNegativeGridValue(t *testing.T) {
	exp := Experiment{Name: "grid", Mass: 1e-15, Separation: 1e-7, Time: 0.1, VisibilityObserved: 0.9, VisibilityError: 0.05}
	_, err := FindLambdaConstraint(exp, []float64{-0.5}, ConstraintOptions{}, collapse.DefaultConstants())
	require.Error(t, err)
	assert.True(t, collapse.IsParamError(err))
}
