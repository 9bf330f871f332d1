package collapse

import "math"

// Params describes a two-branch point-mass superposition and the sample
// times at which visibility is evaluated. Construct through NewParams;
// a validated Params is immutable by convention (all methods take value
// receivers and nothing in this package mutates it).
type Params struct {
	// Mass is the superposed mass [kg]. Must be > 0.
	Mass float64 `json:"mass_kg"`

	// Separation is the branch separation distance [m]. Must be > 0.
	Separation float64 `json:"separation_m"`

	// Lambda is the dimensionless coupling efficiency. Must be >= 0.
	// Values above 1 are accepted; see the package comment.
	Lambda float64 `json:"lambda"`

	// Times are the visibility sample times [s]. Each must be >= 0.
	// Ascending order is recommended for plotting but not required.
	Times []float64 `json:"times,omitempty"`
}

// NewParams validates and constructs a Params. Invalid inputs return a
// *ParamError naming the offending field; nothing is clamped.
//
// The times slice is copied so later mutation by the caller cannot leak
// into a constructed Params.
func NewParams(mass, separation, lambda float64, times []float64) (Params, error) {
	if math.IsNaN(mass) || math.IsInf(mass, 0) {
		return Params{}, newParamError(ErrCodeNonFinite, "mass", "mass must be finite", mass)
	}
	if mass <= 0 {
		return Params{}, newParamError(ErrCodeNonPositiveMass, "mass", "mass must be positive", mass)
	}
	if math.IsNaN(separation) || math.IsInf(separation, 0) {
		return Params{}, newParamError(ErrCodeNonFinite, "separation", "separation must be finite", separation)
	}
	if separation <= 0 {
		return Params{}, newParamError(ErrCodeNonPositiveSeparation, "separation", "separation must be positive", separation)
	}
	if math.IsNaN(lambda) || math.IsInf(lambda, 0) {
		return Params{}, newParamError(ErrCodeNonFinite, "lambda", "lambda must be finite", lambda)
	}
	if lambda < 0 {
		return Params{}, newParamError(ErrCodeNegativeLambda, "lambda", "lambda must be non-negative", lambda)
	}
	for _, t := range times {
		if math.IsNaN(t) || math.IsInf(t, 0) {
			return Params{}, newParamError(ErrCodeNonFinite, "time", "sample time must be finite", t)
		}
		if t < 0 {
			return Params{}, newParamError(ErrCodeNegativeTime, "time", "sample time must be non-negative", t)
		}
	}

	p := Params{
		Mass:       mass,
		Separation: separation,
		Lambda:     lambda,
	}
	if len(times) > 0 {
		p.Times = make([]float64, len(times))
		copy(p.Times, times)
	}
	return p, nil
}

// WithMass returns a copy of p with the mass replaced and revalidated.
func (p Params) WithMass(mass float64) (Params, error) {
	return NewParams(mass, p.Separation, p.Lambda, p.Times)
}

// WithSeparation returns a copy of p with the separation replaced and
// revalidated.
func (p Params) WithSeparation(separation float64) (Params, error) {
	return NewParams(p.Mass, separation, p.Lambda, p.Times)
}

// WithLambda returns a copy of p with λ replaced and revalidated.
func (p Params) WithLambda(lambda float64) (Params, error) {
	return NewParams(p.Mass, p.Separation, lambda, p.Times)
}

// LinearTimes returns n evenly spaced sample times covering [0, tMax].
// n must be at least 2 so the series includes both endpoints.
func LinearTimes(tMax float64, n int) ([]float64, error) {
	if math.IsNaN(tMax) || math.IsInf(tMax, 0) {
		return nil, newParamError(ErrCodeNonFinite, "t_max", "time range must be finite", tMax)
	}
	if tMax < 0 {
		return nil, newParamError(ErrCodeNegativeTime, "t_max", "time range must be non-negative", tMax)
	}
	if n < 2 {
		return nil, newParamError(ErrCodeNegativeTime, "points", "time series needs at least 2 points", float64(n))
	}
	step := tMax / float64(n-1)
	times := make([]float64, n)
	for i := range times {
		times[i] = float64(i) * step
	}
	// Land exactly on tMax regardless of accumulated rounding.
	times[n-1] = tMax
	return times, nil
}
