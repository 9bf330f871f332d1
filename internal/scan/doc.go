// Package scan sweeps the collapse model over a one-dimensional parameter
// grid: one named axis (mass, separation, or λ) varies while the other
// two parameters stay fixed.
//
// Result ordering always matches the input value ordering, including when
// the sweep is fanned out across workers. Callers that rely on monotonic
// axes must supply pre-sorted values; the package never sorts.
//
// Failure model: an invalid fixed parameter set fails the whole run
// before any substitution. A failure at an individual grid point (an
// invalid substituted value) is captured on that point and the sweep
// continues, so a caller plotting the scan can flag the point instead of
// losing the run. The no-collapse case (λ = 0) is not a failure; it is
// carried in the point's result.
//
// Cancellation is best-effort between points: a cancelled run returns the
// contiguous prefix of completed points together with the context error.
package scan
