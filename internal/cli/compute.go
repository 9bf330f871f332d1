package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/project-singularity/oscollapse/internal/collapse"
)

// computeOptions holds the flags for the compute command.
type computeOptions struct {
	Mass       float64
	Separation float64
	Lambda     float64
}

// computeResult is the JSON payload for a single evaluation.
type computeResult struct {
	Mass       float64         `json:"mass_kg"`
	Separation float64         `json:"separation_m"`
	Lambda     float64         `json:"lambda"`
	Result     collapse.Result `json:"result"`
}

// NewComputeCommand creates the compute command.
func NewComputeCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &computeOptions{}

	cmd := &cobra.Command{
		Use:   "compute",
		Short: "Compute ΔE_G, Γ_col, and τ_c for one parameter set",
		Long: `Evaluate the collapse pipeline for a single superposition.

A coupling of λ=0 reports the no-collapse condition explicitly; the
command never prints infinity for τ_c.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCompute(rootOpts, opts, cmd)
		},
	}

	cmd.Flags().Float64VarP(&opts.Mass, "mass", "m", 0, "superposed mass [kg] (required)")
	cmd.Flags().Float64VarP(&opts.Separation, "separation", "d", 0, "branch separation [m] (required)")
	cmd.Flags().Float64VarP(&opts.Lambda, "lambda", "l", 1.0, "coupling efficiency λ")
	_ = cmd.MarkFlagRequired("mass")
	_ = cmd.MarkFlagRequired("separation")

	return cmd
}

func runCompute(rootOpts *RootOptions, opts *computeOptions, cmd *cobra.Command) error {
	formatter := newFormatter(rootOpts, cmd)

	params, err := collapse.NewParams(opts.Mass, opts.Separation, opts.Lambda, nil)
	if err != nil {
		return paramFailure(formatter, err)
	}
	result, err := collapse.Evaluate(params, rootOpts.Constants())
	if err != nil {
		return paramFailure(formatter, err)
	}

	formatter.VerboseLog("evaluated m=%g kg, d=%g m, λ=%g", opts.Mass, opts.Separation, opts.Lambda)

	switch rootOpts.Format {
	case "json":
		return formatter.JSON(computeResult{
			Mass:       opts.Mass,
			Separation: opts.Separation,
			Lambda:     opts.Lambda,
			Result:     result,
		})
	case "csv":
		return NewExitError(ExitCommandError, "compute does not support csv output; use text or json")
	default:
		fmt.Fprintf(formatter.Writer, "delta_e_g: %.6e J\n", result.DeltaEG)
		fmt.Fprintf(formatter.Writer, "gamma_col: %.6e 1/s\n", result.GammaCol)
		if result.NoCollapse {
			fmt.Fprintln(formatter.Writer, "tau_c:     no-collapse (Γ_col = 0)")
		} else {
			fmt.Fprintf(formatter.Writer, "tau_c:     %.6e s\n", result.TauC)
		}
		return nil
	}
}

// paramFailure reports a parameter validation error with its code and
// exits with the evaluation-failure code.
func paramFailure(formatter *OutputFormatter, err error) error {
	code := "INVALID_PARAMETER"
	var pe *collapse.ParamError
	if errors.As(err, &pe) {
		code = string(pe.Code)
	}
	_ = formatter.Error(code, err.Error(), nil)
	return WrapExitError(ExitFailure, "invalid parameters", err)
}
