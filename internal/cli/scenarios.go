package cli

import (
	"github.com/spf13/cobra"

	"github.com/project-singularity/oscollapse/internal/report"
	"github.com/project-singularity/oscollapse/internal/scenario"
)

// scenariosOptions holds the flags for the scenarios command.
type scenariosOptions struct {
	File string
}

// NewScenariosCommand creates the scenarios command.
func NewScenariosCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &scenariosOptions{}

	cmd := &cobra.Command{
		Use:   "scenarios",
		Short: "Run OS-vs-QM comparison scenarios",
		Long: `Evaluate named superposition scenarios and tabulate collapse time
and visibilities against the quantum-mechanical baseline.

Without --file the builtin benchmark set is used (molecule through
macroscopic). A YAML file supplies custom scenarios; unknown fields in
the file are rejected.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runScenarios(rootOpts, opts, cmd)
		},
	}

	cmd.Flags().StringVarP(&opts.File, "file", "f", "", "scenario YAML file (default: builtin set)")

	return cmd
}

func runScenarios(rootOpts *RootOptions, opts *scenariosOptions, cmd *cobra.Command) error {
	formatter := newFormatter(rootOpts, cmd)

	scenarios := scenario.Builtin()
	if opts.File != "" {
		var err error
		scenarios, err = scenario.Load(opts.File)
		if err != nil {
			return WrapExitError(ExitCommandError, "loading scenarios", err)
		}
		formatter.VerboseLog("loaded %d scenario(s) from %s", len(scenarios), opts.File)
	}

	summaries, err := scenario.RunAll(scenarios, rootOpts.Constants())
	if err != nil {
		return paramFailure(formatter, err)
	}

	switch rootOpts.Format {
	case "json":
		return formatter.JSON(report.ScenarioRows(summaries))
	case "csv":
		return report.WriteScenarioCSV(formatter.Writer, summaries)
	default:
		return report.WriteScenarioTable(formatter.Writer, summaries)
	}
}
