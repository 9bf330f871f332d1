// Package collapse implements the Observer–Singularity gravity-weighted
// collapse model for a two-branch point-mass superposition.
//
// The model reduces to three derived scalars and one time series:
//
//	ΔE_G  = G·m²/d          gravitational self-energy gap [J]
//	Γ_col = λ·ΔE_G/ħ        collapse rate [1/s]
//	τ_c   = 1/Γ_col         collapse time [s]
//	V_OS(t) = exp(-Γ_col·t) interference visibility vs. the V_QM ≡ 1 baseline
//
// All functions are pure: no package-level mutable state, no I/O, no
// goroutines. Physical constants (G, ħ) are passed explicitly through
// Constants so tests and unit experiments can override them
// deterministically.
//
// Error taxonomy:
//   - *ParamError for inputs rejected at validation (non-positive mass or
//     separation, negative λ or time, non-positive constants). Invalid
//     inputs are rejected, never silently clamped.
//   - ErrNoCollapse when Γ_col = 0 and τ_c is undefined. Callers branch on
//     the named condition instead of inspecting a sentinel float; the
//     package never returns ±Inf or NaN.
//
// λ is treated as an unconstrained efficiency: λ > 1 is accepted. Whether
// super-unit coupling is physically meaningful is an open modelling
// question, so the permissive behavior is preserved here.
package collapse
