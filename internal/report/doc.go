// Package report turns scan points, scenario summaries, and visibility
// curves into tabular output: aligned text tables for terminals, CSV for
// plotting pipelines, and JSON-ready row structures for programmatic
// callers.
//
// Formatting rules shared by every writer:
//   - Row order is always the computation order; nothing is sorted.
//   - A failed point keeps its row, with the error code in the status
//     column, so a plotted scan shows the hole instead of shifting.
//   - An undefined τ_c is written as "no-collapse", never as inf or NaN.
package report
