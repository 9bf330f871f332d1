package scenario

import (
	"bytes"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/project-singularity/oscollapse/internal/collapse"
)

// Scenario is one named parameter set to evaluate.
type Scenario struct {
	// Name uniquely identifies the scenario within a file or set.
	Name string `yaml:"name"`

	// Description explains what physical situation this models.
	Description string `yaml:"description,omitempty"`

	// Mass is the superposed mass [kg].
	Mass float64 `yaml:"mass_kg"`

	// Separation is the branch separation [m].
	Separation float64 `yaml:"separation_m"`

	// Time is the interrogation time at which visibility is compared [s].
	Time float64 `yaml:"t_s"`

	// Lambda is the coupling efficiency; omitted means 1.0.
	Lambda *float64 `yaml:"lambda,omitempty"`

	// GammaEnv adds environmental decoherence [1/s]; omitted means none.
	GammaEnv float64 `yaml:"gamma_env,omitempty"`
}

// EffectiveLambda resolves the optional λ field.
func (s Scenario) EffectiveLambda() float64 {
	if s.Lambda == nil {
		return 1.0
	}
	return *s.Lambda
}

// Validate checks a scenario before evaluation.
func (s Scenario) Validate() error {
	if s.Name == "" {
		return fmt.Errorf("scenario name is required")
	}
	if _, err := collapse.NewParams(s.Mass, s.Separation, s.EffectiveLambda(), []float64{s.Time}); err != nil {
		return fmt.Errorf("scenario %q: %w", s.Name, err)
	}
	if s.GammaEnv < 0 {
		return fmt.Errorf("scenario %q: gamma_env must be non-negative, got %g", s.Name, s.GammaEnv)
	}
	return nil
}

// file is the on-disk shape of a scenario file.
type file struct {
	Scenarios []Scenario `yaml:"scenarios"`
}

// Load reads and parses a scenario YAML file. Unknown fields, duplicate
// names, and invalid parameter values are all rejected at load time.
func Load(path string) ([]Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario file: %w", err)
	}

	var f file
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true) // Reject unknown fields (catches typos)
	if err := decoder.Decode(&f); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}
	if len(f.Scenarios) == 0 {
		return nil, fmt.Errorf("no scenarios found in %s", path)
	}

	seen := make(map[string]struct{}, len(f.Scenarios))
	for _, s := range f.Scenarios {
		if err := s.Validate(); err != nil {
			return nil, err
		}
		if _, dup := seen[s.Name]; dup {
			return nil, fmt.Errorf("duplicate scenario name %q", s.Name)
		}
		seen[s.Name] = struct{}{}
	}
	return f.Scenarios, nil
}

// Builtin returns the reference benchmark set spanning molecular to
// macroscopic superpositions.
func Builtin() []Scenario {
	lam := func(v float64) *float64 { return &v }
	return []Scenario{
		{
			Name:        "molecule",
			Description: "large-molecule interferometry",
			Mass:        1e-23, Separation: 1e-8, Time: 1.0, Lambda: lam(1.0),
		},
		{
			Name:        "nanoparticle",
			Description: "levitated nanoparticle superposition",
			Mass:        1e-17, Separation: 1e-6, Time: 1.0, Lambda: lam(1.0),
		},
		{
			Name:        "mesoscopic",
			Description: "mesoscopic test mass",
			Mass:        1e-12, Separation: 1e-6, Time: 0.1, Lambda: lam(1.0),
		},
		{
			Name:        "macroscopic",
			Description: "microgram-scale mass, classical limit",
			Mass:        1e-6, Separation: 1e-3, Time: 1e-3, Lambda: lam(1.0),
		},
	}
}
