package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/project-singularity/oscollapse/internal/analysis"
)

// assessOptions holds the flags for the assess command.
type assessOptions struct {
	Mass       float64
	Separation float64
	Time       float64
	Lambda     float64
	GammaEnv   float64
}

// assessResult is the JSON payload combining both assessments.
type assessResult struct {
	Regime      analysis.RegimeAssessment      `json:"regime"`
	Testability analysis.TestabilityAssessment `json:"testability"`
}

// NewAssessCommand creates the assess command.
func NewAssessCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &assessOptions{}

	cmd := &cobra.Command{
		Use:   "assess",
		Short: "Classify a parameter point and its testability",
		Long: `Classify where a superposition sits between micro_safe and
macro_classical, and whether the collapse signal would be observable
above environmental decoherence at the given interrogation time.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAssess(rootOpts, opts, cmd)
		},
	}

	cmd.Flags().Float64VarP(&opts.Mass, "mass", "m", 0, "superposed mass [kg] (required)")
	cmd.Flags().Float64VarP(&opts.Separation, "separation", "d", 0, "branch separation [m] (required)")
	cmd.Flags().Float64VarP(&opts.Time, "time", "t", 1.0, "interrogation time [s]")
	cmd.Flags().Float64VarP(&opts.Lambda, "lambda", "l", 1.0, "coupling efficiency λ")
	cmd.Flags().Float64Var(&opts.GammaEnv, "gamma-env", 0, "environmental decoherence rate [1/s]")
	_ = cmd.MarkFlagRequired("mass")
	_ = cmd.MarkFlagRequired("separation")

	return cmd
}

func runAssess(rootOpts *RootOptions, opts *assessOptions, cmd *cobra.Command) error {
	formatter := newFormatter(rootOpts, cmd)

	if opts.GammaEnv < 0 {
		return NewExitError(ExitCommandError, "gamma-env must be non-negative")
	}
	consts := rootOpts.Constants()

	// The flag always carries a concrete value (default 1.0), so an
	// explicit -l 0 reaches the assessment as a true zero.
	regime, err := analysis.AssessRegime(opts.Mass, opts.Separation, opts.Time,
		analysis.RegimeOptions{Lambda: &opts.Lambda}, consts)
	if err != nil {
		return paramFailure(formatter, err)
	}
	testability, err := analysis.AssessTestability(opts.Mass, opts.Separation, opts.Time,
		analysis.TestabilityOptions{Lambda: &opts.Lambda, GammaEnv: opts.GammaEnv}, consts)
	if err != nil {
		return paramFailure(formatter, err)
	}

	switch rootOpts.Format {
	case "json":
		return formatter.JSON(assessResult{Regime: regime, Testability: testability})
	case "csv":
		return NewExitError(ExitCommandError, "assess does not support csv output; use text or json")
	default:
		fmt.Fprintf(formatter.Writer, "regime:           %s\n", regime.Regime)
		if regime.Result.NoCollapse {
			fmt.Fprintln(formatter.Writer, "tau_c:            no-collapse")
		} else {
			fmt.Fprintf(formatter.Writer, "tau_c:            %.6e s\n", regime.Result.TauC)
		}
		fmt.Fprintf(formatter.Writer, "t/tau_c:          %.6e\n", regime.TOverTau)
		fmt.Fprintf(formatter.Writer, "v_os:             %.6f\n", testability.VOS)
		fmt.Fprintf(formatter.Writer, "v_env:            %.6f\n", testability.VEnv)
		fmt.Fprintf(formatter.Writer, "v_os_plus_env:    %.6f\n", testability.VCombined)
		fmt.Fprintf(formatter.Writer, "strong_deviation: %t\n", regime.StrongDeviation)
		fmt.Fprintf(formatter.Writer, "testable:         %t\n", testability.Testable)
		return nil
	}
}
