package cli

import (
	"github.com/spf13/cobra"

	"github.com/project-singularity/oscollapse/internal/collapse"
	"github.com/project-singularity/oscollapse/internal/report"
)

// curveOptions holds the flags for the curve command.
type curveOptions struct {
	Mass       float64
	Separation float64
	Lambda     float64
	GammaEnv   float64
	TMax       float64
	Points     int
}

// curveResult is the JSON payload for a visibility curve.
type curveResult struct {
	Mass       float64         `json:"mass_kg"`
	Separation float64         `json:"separation_m"`
	Lambda     float64         `json:"lambda"`
	GammaEnv   float64         `json:"gamma_env,omitempty"`
	Result     collapse.Result `json:"result"`
	Curve      collapse.Curve  `json:"curve"`
}

// NewCurveCommand creates the curve command.
func NewCurveCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &curveOptions{}

	cmd := &cobra.Command{
		Use:   "curve",
		Short: "Sample V_OS(t) against the V_QM baseline for one parameter set",
		Long: `Sample the visibility decay curve over [0, t-max].

With --gamma-env the curve includes environmental decoherence on top of
the collapse channel, for comparing the two loss mechanisms.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCurve(rootOpts, opts, cmd)
		},
	}

	cmd.Flags().Float64VarP(&opts.Mass, "mass", "m", 0, "superposed mass [kg] (required)")
	cmd.Flags().Float64VarP(&opts.Separation, "separation", "d", 0, "branch separation [m] (required)")
	cmd.Flags().Float64VarP(&opts.Lambda, "lambda", "l", 1.0, "coupling efficiency λ")
	cmd.Flags().Float64Var(&opts.GammaEnv, "gamma-env", 0, "environmental decoherence rate [1/s]")
	cmd.Flags().Float64Var(&opts.TMax, "t-max", 1.0, "time range upper bound [s]")
	cmd.Flags().IntVar(&opts.Points, "points", 200, "number of samples")
	_ = cmd.MarkFlagRequired("mass")
	_ = cmd.MarkFlagRequired("separation")

	return cmd
}

func runCurve(rootOpts *RootOptions, opts *curveOptions, cmd *cobra.Command) error {
	formatter := newFormatter(rootOpts, cmd)

	if opts.GammaEnv < 0 {
		return NewExitError(ExitCommandError, "gamma-env must be non-negative")
	}
	times, err := collapse.LinearTimes(opts.TMax, opts.Points)
	if err != nil {
		return WrapExitError(ExitCommandError, "invalid time range", err)
	}
	params, err := collapse.NewParams(opts.Mass, opts.Separation, opts.Lambda, times)
	if err != nil {
		return paramFailure(formatter, err)
	}
	result, err := collapse.Evaluate(params, rootOpts.Constants())
	if err != nil {
		return paramFailure(formatter, err)
	}

	var curve collapse.Curve
	if opts.GammaEnv > 0 {
		curve, err = collapse.VisibilityCombined(result.GammaCol, opts.GammaEnv, times)
	} else {
		curve, err = collapse.Visibility(result.GammaCol, times)
	}
	if err != nil {
		return paramFailure(formatter, err)
	}

	switch rootOpts.Format {
	case "json":
		return formatter.JSON(curveResult{
			Mass:       opts.Mass,
			Separation: opts.Separation,
			Lambda:     opts.Lambda,
			GammaEnv:   opts.GammaEnv,
			Result:     result,
			Curve:      curve,
		})
	case "csv":
		return report.WriteCurveCSV(formatter.Writer, curve)
	default:
		return report.WriteCurveTable(formatter.Writer, curve)
	}
}
