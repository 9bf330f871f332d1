package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/project-singularity/oscollapse/internal/collapse"
)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	Verbose bool
	Format  string // "text" | "json" | "csv"

	// G and Hbar override the physical constants for unit experiments.
	G    float64
	Hbar float64
}

// ValidFormats defines the allowed output formats.
var ValidFormats = []string{"text", "json", "csv"}

// Constants resolves the physical constants from the global flags.
func (o *RootOptions) Constants() collapse.Constants {
	return collapse.Constants{G: o.G, Hbar: o.Hbar}
}

// NewRootCommand creates the root command for the oscollapse CLI.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}
	defaults := collapse.DefaultConstants()

	cmd := &cobra.Command{
		Use:   "oscollapse",
		Short: "Observer–Singularity collapse calculator",
		Long: `Gravitationally-weighted decoherence quantities for point-mass
superpositions: energy gap ΔE_G, collapse rate Γ_col, collapse time τ_c,
and visibility-over-time, plus parameter scans across mass, separation,
and coupling constant λ.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if !isValidFormat(opts.Format) {
				return fmt.Errorf("invalid format %q: must be one of %v", opts.Format, ValidFormats)
			}
			return nil
		},
	}

	// Global flags
	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "verbose output")
	cmd.PersistentFlags().StringVar(&opts.Format, "format", "text", "output format (text|json|csv)")
	cmd.PersistentFlags().Float64Var(&opts.G, "const-g", defaults.G, "gravitational constant G [m^3/(kg*s^2)]")
	cmd.PersistentFlags().Float64Var(&opts.Hbar, "const-hbar", defaults.Hbar, "reduced Planck constant ħ [J*s]")

	// Add subcommands
	cmd.AddCommand(NewComputeCommand(opts))
	cmd.AddCommand(NewScanCommand(opts))
	cmd.AddCommand(NewCurveCommand(opts))
	cmd.AddCommand(NewScenariosCommand(opts))
	cmd.AddCommand(NewConstrainCommand(opts))
	cmd.AddCommand(NewAssessCommand(opts))

	return cmd
}

// isValidFormat checks if the format is one of the allowed values.
func isValidFormat(format string) bool {
	for _, f := range ValidFormats {
		if f == format {
			return true
		}
	}
	return false
}

// newFormatter builds the standard formatter for a command invocation.
func newFormatter(opts *RootOptions, cmd *cobra.Command) *OutputFormatter {
	return &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(), // Verbose logs go to stderr to avoid corrupting JSON
		Verbose:   opts.Verbose,
	}
}

// parseFloatList parses a comma-separated list of floats, preserving
// order.
func parseFloatList(s string) ([]float64, error) {
	parts := strings.Split(s, ",")
	values := make([]float64, 0, len(parts))
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		v, err := strconv.ParseFloat(part, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid value %q: %w", part, err)
		}
		values = append(values, v)
	}
	if len(values) == 0 {
		return nil, fmt.Errorf("empty value list")
	}
	return values, nil
}
