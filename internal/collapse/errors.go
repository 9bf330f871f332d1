package collapse

import (
	"errors"
	"fmt"
)

// ParamError represents a physical parameter rejected during validation.
//
// Validation errors include:
//   - Non-positive mass or separation
//   - Negative coupling efficiency λ
//   - Negative sample time
//   - Non-positive physical constant (G or ħ)
//
// ParamError includes structured fields so callers can surface the
// offending field and value rather than a raw numeric exception.
type ParamError struct {
	// Code identifies the error category.
	Code ParamErrorCode

	// Field names the offending parameter ("mass", "separation", ...).
	Field string

	// Value is the rejected input value.
	Value float64

	// Message is a human-readable description.
	Message string
}

// ParamErrorCode categorizes parameter validation errors.
type ParamErrorCode string

const (
	// ErrCodeNonPositiveMass indicates mass <= 0.
	ErrCodeNonPositiveMass ParamErrorCode = "NONPOSITIVE_MASS"

	// ErrCodeNonPositiveSeparation indicates separation <= 0.
	ErrCodeNonPositiveSeparation ParamErrorCode = "NONPOSITIVE_SEPARATION"

	// ErrCodeNegativeLambda indicates λ < 0.
	ErrCodeNegativeLambda ParamErrorCode = "NEGATIVE_LAMBDA"

	// ErrCodeNegativeTime indicates a sample time t < 0.
	ErrCodeNegativeTime ParamErrorCode = "NEGATIVE_TIME"

	// ErrCodeNegativeRate indicates a decoherence rate Γ < 0.
	ErrCodeNegativeRate ParamErrorCode = "NEGATIVE_RATE"

	// ErrCodeNonPositiveConstant indicates G <= 0 or ħ <= 0.
	ErrCodeNonPositiveConstant ParamErrorCode = "NONPOSITIVE_CONSTANT"

	// ErrCodeNonFinite indicates an input that is NaN or ±Inf.
	ErrCodeNonFinite ParamErrorCode = "NONFINITE_VALUE"
)

// Error implements the error interface.
func (e *ParamError) Error() string {
	return fmt.Sprintf("%s: %s (%s=%g)", e.Code, e.Message, e.Field, e.Value)
}

// IsParamError returns true if the error is a parameter validation error.
// Uses errors.As to handle wrapped errors.
func IsParamError(err error) bool {
	var pe *ParamError
	return errors.As(err, &pe)
}

// ErrNoCollapse signals that Γ_col = 0 and τ_c is undefined: the
// superposition never collapses under the model. This is a distinct
// result variant, not a failure of the arithmetic, so callers can report
// "no collapse" instead of printing infinity.
var ErrNoCollapse = errors.New("NO_COLLAPSE: collapse rate is zero, collapse time undefined")

// IsNoCollapse returns true if the error is the no-collapse signal.
// Uses errors.Is to handle wrapped errors.
func IsNoCollapse(err error) bool {
	return errors.Is(err, ErrNoCollapse)
}

func newParamError(code ParamErrorCode, field, message string, value float64) *ParamError {
	return &ParamError{Code: code, Field: field, Message: message, Value: value}
}
