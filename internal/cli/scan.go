package cli

import (
	"github.com/spf13/cobra"

	"github.com/project-singularity/oscollapse/internal/collapse"
	"github.com/project-singularity/oscollapse/internal/report"
	"github.com/project-singularity/oscollapse/internal/scan"
)

// scanOptions holds the flags for the scan command.
type scanOptions struct {
	Axis       string
	Values     string
	Mass       float64
	Separation float64
	Lambda     float64
	TMax       float64
	Points     int
	Workers    int
}

// NewScanCommand creates the scan command.
func NewScanCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &scanOptions{}

	cmd := &cobra.Command{
		Use:   "scan",
		Short: "Sweep one parameter axis and tabulate collapse quantities",
		Long: `Sweep mass, separation, or λ over an explicit value list while the
other two parameters stay fixed.

Rows come out in the order the values were given. A value that fails
validation keeps its row with the error code in the status column; the
rest of the sweep is unaffected.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runScan(rootOpts, opts, cmd)
		},
	}

	cmd.Flags().StringVarP(&opts.Axis, "axis", "a", "", "axis to sweep: mass|separation|lambda (required)")
	cmd.Flags().StringVar(&opts.Values, "values", "", "comma-separated axis values, in sweep order (required)")
	cmd.Flags().Float64VarP(&opts.Mass, "mass", "m", 1e-17, "fixed mass [kg]")
	cmd.Flags().Float64VarP(&opts.Separation, "separation", "d", 1e-6, "fixed separation [m]")
	cmd.Flags().Float64VarP(&opts.Lambda, "lambda", "l", 1.0, "fixed coupling efficiency λ")
	cmd.Flags().Float64Var(&opts.TMax, "t-max", 1.0, "visibility time range upper bound [s]")
	cmd.Flags().IntVar(&opts.Points, "points", 50, "visibility samples per grid point")
	cmd.Flags().IntVar(&opts.Workers, "workers", 1, "parallel workers (result order is preserved)")
	_ = cmd.MarkFlagRequired("axis")
	_ = cmd.MarkFlagRequired("values")

	return cmd
}

func runScan(rootOpts *RootOptions, opts *scanOptions, cmd *cobra.Command) error {
	formatter := newFormatter(rootOpts, cmd)

	axis, err := scan.ParseAxis(opts.Axis)
	if err != nil {
		return WrapExitError(ExitCommandError, "invalid axis", err)
	}
	values, err := parseFloatList(opts.Values)
	if err != nil {
		return WrapExitError(ExitCommandError, "invalid values list", err)
	}
	times, err := collapse.LinearTimes(opts.TMax, opts.Points)
	if err != nil {
		return WrapExitError(ExitCommandError, "invalid time range", err)
	}
	fixed, err := collapse.NewParams(opts.Mass, opts.Separation, opts.Lambda, times)
	if err != nil {
		return paramFailure(formatter, err)
	}

	consts := rootOpts.Constants()
	formatter.VerboseLog("scanning %s over %d values with %d worker(s)", axis, len(values), opts.Workers)

	points, err := scan.Run(cmd.Context(), fixed, scan.Grid{Axis: axis, Values: values}, consts,
		scan.WithWorkers(opts.Workers))
	if err != nil {
		// Partial results from a cancelled run are still reported below
		// when any exist.
		if len(points) == 0 {
			return paramFailure(formatter, err)
		}
		formatter.VerboseLog("scan interrupted: %v (%d point(s) kept)", err, len(points))
	}

	rep := report.NewScanReport(axis, fixed, consts, points)
	switch rootOpts.Format {
	case "json":
		return formatter.JSON(rep)
	case "csv":
		return rep.WriteScanCSV(formatter.Writer)
	default:
		return rep.WriteScanTable(formatter.Writer)
	}
}
