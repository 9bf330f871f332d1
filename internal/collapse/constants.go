package collapse

import "math"

// Constants holds the physical constants the model depends on.
// They are explicit configuration, not package state, so unit experiments
// and tests can substitute their own values.
type Constants struct {
	// G is the gravitational constant [m³/(kg·s²)].
	G float64 `json:"g"`

	// Hbar is the reduced Planck constant [J·s].
	Hbar float64 `json:"hbar"`
}

// DefaultConstants returns the CODATA SI values.
func DefaultConstants() Constants {
	return Constants{
		G:    6.67430e-11,
		Hbar: 1.054571817e-34,
	}
}

// validate rejects non-positive or non-finite constants.
func (c Constants) validate() error {
	if math.IsNaN(c.G) || math.IsInf(c.G, 0) {
		return newParamError(ErrCodeNonFinite, "G", "gravitational constant must be finite", c.G)
	}
	if c.G <= 0 {
		return newParamError(ErrCodeNonPositiveConstant, "G", "gravitational constant must be positive", c.G)
	}
	if math.IsNaN(c.Hbar) || math.IsInf(c.Hbar, 0) {
		return newParamError(ErrCodeNonFinite, "hbar", "reduced Planck constant must be finite", c.Hbar)
	}
	if c.Hbar <= 0 {
		return newParamError(ErrCodeNonPositiveConstant, "hbar", "reduced Planck constant must be positive", c.Hbar)
	}
	return nil
}
