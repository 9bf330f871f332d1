package catalog

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	"cuelang.org/go/cue/load"
	"cuelang.org/go/cue/token"

	"github.com/project-singularity/oscollapse/internal/analysis"
)

// Load error codes.
const (
	ErrCodeNotFound    = "CAT_NOT_FOUND"
	ErrCodeNoFiles     = "CAT_NO_FILES"
	ErrCodeLoadFailed  = "CAT_LOAD_FAILED"
	ErrCodeBuildFailed = "CAT_BUILD_FAILED"
	ErrCodeBadEntry    = "CAT_BAD_ENTRY"
	ErrCodeEmpty       = "CAT_EMPTY"
)

// LoadError represents an error that occurred during catalog loading.
type LoadError struct {
	Code    string
	Message string
	Pos     token.Pos // CUE position if available
}

func (e *LoadError) Error() string {
	if e.Pos.IsValid() {
		return fmt.Sprintf("%s:%d:%d: %s: %s", e.Pos.Filename(), e.Pos.Line(), e.Pos.Column(), e.Code, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Load reads every .cue file in dir and returns the declared experiments
// in catalog declaration order (CUE struct field order).
func Load(dir string) ([]analysis.Experiment, error) {
	info, err := os.Stat(dir)
	if os.IsNotExist(err) {
		return nil, &LoadError{Code: ErrCodeNotFound, Message: fmt.Sprintf("catalog directory not found: %s", dir)}
	}
	if err != nil {
		return nil, &LoadError{Code: ErrCodeNotFound, Message: fmt.Sprintf("error accessing catalog directory: %v", err)}
	}
	if !info.IsDir() {
		return nil, &LoadError{Code: ErrCodeNotFound, Message: fmt.Sprintf("not a directory: %s", dir)}
	}

	cueFiles, err := findCUEFiles(dir)
	if err != nil {
		return nil, &LoadError{Code: ErrCodeLoadFailed, Message: fmt.Sprintf("error scanning directory: %v", err)}
	}
	if len(cueFiles) == 0 {
		return nil, &LoadError{Code: ErrCodeNoFiles, Message: fmt.Sprintf("no CUE files found in %s", dir)}
	}

	ctx := cuecontext.New()
	instances := load.Instances([]string{"."}, &load.Config{Dir: dir})
	if len(instances) == 0 {
		return nil, &LoadError{Code: ErrCodeLoadFailed, Message: "no CUE instances loaded"}
	}
	inst := instances[0]
	if inst.Err != nil {
		return nil, &LoadError{Code: ErrCodeLoadFailed, Message: fmt.Sprintf("loading CUE files: %v", inst.Err)}
	}

	value := ctx.BuildInstance(inst)
	if err := value.Err(); err != nil {
		return nil, &LoadError{Code: ErrCodeBuildFailed, Message: fmt.Sprintf("building CUE value: %v", err)}
	}

	experimentsVal := value.LookupPath(cue.ParsePath("experiment"))
	if !experimentsVal.Exists() {
		return nil, &LoadError{Code: ErrCodeEmpty, Message: "no top-level \"experiment\" struct found"}
	}

	iter, err := experimentsVal.Fields()
	if err != nil {
		return nil, &LoadError{Code: ErrCodeBuildFailed, Message: fmt.Sprintf("iterating experiments: %v", err)}
	}

	var experiments []analysis.Experiment
	for iter.Next() {
		exp, err := decodeExperiment(iter.Label(), iter.Value())
		if err != nil {
			return nil, err
		}
		experiments = append(experiments, exp)
	}
	if len(experiments) == 0 {
		return nil, &LoadError{Code: ErrCodeEmpty, Message: fmt.Sprintf("no experiments declared in %s", dir)}
	}
	return experiments, nil
}

// decodeExperiment parses one catalog entry into an analysis.Experiment
// and validates it.
func decodeExperiment(name string, v cue.Value) (analysis.Experiment, error) {
	exp := analysis.Experiment{Name: name}

	fields := []struct {
		path     string
		target   *float64
		required bool
	}{
		{"mass_kg", &exp.Mass, true},
		{"separation_m", &exp.Separation, true},
		{"t_s", &exp.Time, true},
		{"visibility_observed", &exp.VisibilityObserved, true},
		{"visibility_error", &exp.VisibilityError, false},
	}
	for _, f := range fields {
		fieldVal := v.LookupPath(cue.ParsePath(f.path))
		if !fieldVal.Exists() {
			if !f.required {
				continue
			}
			return analysis.Experiment{}, &LoadError{
				Code:    ErrCodeBadEntry,
				Message: fmt.Sprintf("experiment %q: missing required field %q", name, f.path),
				Pos:     v.Pos(),
			}
		}
		x, err := fieldVal.Float64()
		if err != nil {
			return analysis.Experiment{}, &LoadError{
				Code:    ErrCodeBadEntry,
				Message: fmt.Sprintf("experiment %q: field %q: %v", name, f.path, err),
				Pos:     fieldVal.Pos(),
			}
		}
		*f.target = x
	}

	if err := exp.Validate(); err != nil {
		return analysis.Experiment{}, &LoadError{
			Code:    ErrCodeBadEntry,
			Message: err.Error(),
			Pos:     v.Pos(),
		}
	}
	return exp, nil
}

// findCUEFiles lists .cue files directly inside dir.
func findCUEFiles(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	var files []string
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".cue") {
			continue
		}
		files = append(files, filepath.Join(dir, entry.Name()))
	}
	return files, nil
}
