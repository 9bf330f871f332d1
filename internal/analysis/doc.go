// Package analysis layers interpretation on top of the collapse model:
// regime classification for a parameter point, testability against
// ordinary environmental decoherence, and coupling-constant (λ) bounds
// implied by an observed interference visibility.
//
// Like the model itself, everything here is pure arithmetic over explicit
// inputs. Thresholds are inputs with documented defaults, not constants
// baked into the logic, so surveys can tighten or relax them.
package analysis
