package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/project-singularity/oscollapse/internal/analysis"
	"github.com/project-singularity/oscollapse/internal/catalog"
)

// constrainOptions holds the flags for the constrain command.
type constrainOptions struct {
	ExperimentsDir string
	LambdaGrid     string
	GammaEnv       float64
	Sigma          float64
}

// NewConstrainCommand creates the constrain command.
func NewConstrainCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &constrainOptions{}

	cmd := &cobra.Command{
		Use:   "constrain <experiments-dir>",
		Short: "Bound λ against observed interference visibilities",
		Long: `Search a λ grid for the largest coupling each catalogued experiment
still allows. A λ is allowed when the predicted visibility stays within
sigma·error of the observation.

Experiments are CUE files declaring entries under the top-level
"experiment" struct; see the catalog package documentation for the
schema. Exit code 1 means at least one experiment ruled out every λ on
the grid.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.ExperimentsDir = args[0]
			return runConstrain(rootOpts, opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.LambdaGrid, "lambda-grid", "0.001,0.01,0.1,1.0", "comma-separated λ grid, ascending recommended")
	cmd.Flags().Float64Var(&opts.GammaEnv, "gamma-env", 0, "environmental decoherence rate [1/s]")
	cmd.Flags().Float64Var(&opts.Sigma, "sigma", analysis.DefaultSigmaFactor, "observation widening factor σ")

	return cmd
}

func runConstrain(rootOpts *RootOptions, opts *constrainOptions, cmd *cobra.Command) error {
	formatter := newFormatter(rootOpts, cmd)

	grid, err := parseFloatList(opts.LambdaGrid)
	if err != nil {
		return WrapExitError(ExitCommandError, "invalid lambda grid", err)
	}
	if opts.GammaEnv < 0 {
		return NewExitError(ExitCommandError, "gamma-env must be non-negative")
	}

	experiments, err := catalog.Load(opts.ExperimentsDir)
	if err != nil {
		return WrapExitError(ExitCommandError, "loading experiment catalog", err)
	}
	formatter.VerboseLog("loaded %d experiment(s) from %s", len(experiments), opts.ExperimentsDir)

	copts := analysis.ConstraintOptions{
		SigmaFactor: &opts.Sigma,
		GammaEnv:    opts.GammaEnv,
		HasEnv:      opts.GammaEnv > 0,
	}

	constraints := make([]analysis.Constraint, 0, len(experiments))
	ruledOut := 0
	for _, exp := range experiments {
		constraint, err := analysis.FindLambdaConstraint(exp, grid, copts, rootOpts.Constants())
		if err != nil {
			return paramFailure(formatter, err)
		}
		if !constraint.Found {
			ruledOut++
		}
		constraints = append(constraints, constraint)
	}

	switch rootOpts.Format {
	case "json":
		if err := formatter.JSON(constraints); err != nil {
			return err
		}
	case "csv":
		return NewExitError(ExitCommandError, "constrain does not support csv output; use text or json")
	default:
		fmt.Fprintf(formatter.Writer, "%-20s %12s %12s %10s  %s\n",
			"experiment", "mass_kg", "v_observed", "sigma", "lambda_max")
		for _, constraint := range constraints {
			lambdaMax := "ruled-out"
			if constraint.Found {
				lambdaMax = fmt.Sprintf("%g", constraint.LambdaMax)
			}
			fmt.Fprintf(formatter.Writer, "%-20s %12.3e %12.3f %10.1f  %s\n",
				constraint.Experiment.Name,
				constraint.Experiment.Mass,
				constraint.Experiment.VisibilityObserved,
				opts.Sigma,
				lambdaMax)
		}
	}

	if ruledOut > 0 {
		return NewExitError(ExitFailure, fmt.Sprintf("%d experiment(s) ruled out every λ on the grid", ruledOut))
	}
	return nil
}
