// Package catalog loads experiment records for λ-constraint analysis
// from CUE files.
//
// An experiment catalog is a directory of .cue files declaring entries
// under the top-level "experiment" struct:
//
//	experiment: arndt_c70: {
//		mass_kg:             1.16e-24
//		separation_m:        1.0e-7
//		t_s:                 0.005
//		visibility_observed: 0.40
//		visibility_error:    0.05
//	}
//
// CUE gives the catalog schema checking and constraint evaluation for
// free: malformed entries fail at load with file/line positions instead
// of surfacing later as arithmetic errors.
package catalog
