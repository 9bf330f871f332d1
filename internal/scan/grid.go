package scan

import (
	"fmt"

	"github.com/project-singularity/oscollapse/internal/collapse"
)

// Axis names the parameter a grid sweeps.
type Axis string

const (
	// AxisMass sweeps the superposed mass [kg].
	AxisMass Axis = "mass"

	// AxisSeparation sweeps the branch separation [m].
	AxisSeparation Axis = "separation"

	// AxisLambda sweeps the coupling efficiency λ.
	AxisLambda Axis = "lambda"
)

// ValidAxes lists the sweepable parameters.
var ValidAxes = []Axis{AxisMass, AxisSeparation, AxisLambda}

// ParseAxis converts a string to an Axis.
func ParseAxis(s string) (Axis, error) {
	for _, a := range ValidAxes {
		if s == string(a) {
			return a, nil
		}
	}
	return "", fmt.Errorf("invalid axis %q: must be one of %v", s, ValidAxes)
}

// Grid pairs a sweep axis with the ordered values to substitute.
type Grid struct {
	Axis   Axis
	Values []float64
}

// substitute returns fixed with the grid value swapped in for the axis.
// Validation of the substituted value happens inside the With* setters.
func (g Grid) substitute(fixed collapse.Params, value float64) (collapse.Params, error) {
	switch g.Axis {
	case AxisMass:
		return fixed.WithMass(value)
	case AxisSeparation:
		return fixed.WithSeparation(value)
	case AxisLambda:
		return fixed.WithLambda(value)
	default:
		return collapse.Params{}, fmt.Errorf("invalid axis %q: must be one of %v", g.Axis, ValidAxes)
	}
}
