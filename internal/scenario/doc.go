// Package scenario bundles named parameter sets — a superposition, an
// interrogation time, and optionally an environmental decoherence rate —
// and evaluates the collapse model over them for OS-vs-QM comparison
// tables.
//
// Scenarios come from two places: the builtin benchmark set spanning
// molecule to macroscopic scales, and YAML files supplied by the caller.
// YAML decoding is strict: unknown fields are rejected so a typo in a
// scenario file fails loudly instead of silently using a default.
package scenario
