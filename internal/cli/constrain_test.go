package cli

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeExperiments(t *testing.T, content string) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "experiments.cue"), []byte(content), 0o644))
	return dir
}

func TestConstrainText(t *testing.T) {
	dir := writeExperiments(t, `
experiment: nanosphere: {
	mass_kg:             1.0e-15
	separation_m:        1.0e-7
	t_s:                 0.1
	visibility_observed: 0.90
	visibility_error:    0.05
}
`)

	buf := &bytes.Buffer{}
	cmd := NewConstrainCommand(defaultOpts("text"))
	cmd.SetOut(buf)
	cmd.SetArgs([]string{dir})

	err := cmd.Execute()
	require.NoError(t, err)

	output := buf.String()
	assert.Contains(t, output, "nanosphere")
	// Threshold 0.9 - 2*0.05 = 0.8: λ=0.1 passes, λ=1 does not.
	assert.Contains(t, output, "0.1")
	assert.NotContains(t, output, "ruled-out")
}

func TestConstrainJSON(t *testing.T) {
	dir := writeExperiments(t, `
experiment: nanosphere: {
	mass_kg:             1.0e-15
	separation_m:        1.0e-7
	t_s:                 0.1
	visibility_observed: 0.90
	visibility_error:    0.05
}
`)

	buf := &bytes.Buffer{}
	cmd := NewConstrainCommand(defaultOpts("json"))
	cmd.SetOut(buf)
	cmd.SetArgs([]string{dir})

	err := cmd.Execute()
	require.NoError(t, err)

	var resp CLIResponse
	require.NoError(t, json.Unmarshal(buf.Bytes(), &resp))
	assert.Equal(t, "ok", resp.Status)

	constraints, ok := resp.Data.([]interface{})
	require.True(t, ok)
	require.Len(t, constraints, 1)
	first, ok := constraints[0].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, true, first["found"])
	assert.InEpsilon(t, 0.1, first["lambda_max_allowed"].(float64), 1e-12)
}

func TestConstrainRuledOut(t *testing.T) {
	// A near-perfect visibility held for 10 s rules out even λ=0.001.
	dir := writeExperiments(t, `
experiment: strict: {
	mass_kg:             1.0e-15
	separation_m:        1.0e-7
	t_s:                 10.0
	visibility_observed: 0.999
	visibility_error:    0.0001
}
`)

	buf := &bytes.Buffer{}
	cmd := NewConstrainCommand(defaultOpts("text"))
	cmd.SetOut(buf)
	cmd.SetArgs([]string{dir})

	err := cmd.Execute()
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
	assert.Contains(t, buf.String(), "ruled-out")
}

func TestConstrainMissingDirectory(t *testing.T) {
	buf := &bytes.Buffer{}
	cmd := NewConstrainCommand(defaultOpts("text"))
	cmd.SetOut(buf)
	cmd.SetArgs([]string{filepath.Join(t.TempDir(), "nope")})

	err := cmd.Execute()
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
}

func TestConstrainBadLambdaGrid(t *testing.T) {
	dir := writeExperiments(t, `
experiment: any: {
	mass_kg:             1.0e-15
	separation_m:        1.0e-7
	t_s:                 0.1
	visibility_observed: 0.90
}
`)

	buf := &bytes.Buffer{}
	cmd := NewConstrainCommand(defaultOpts("text"))
	cmd.SetOut(buf)
	cmd.SetArgs([]string{dir, "--lambda-grid", "0.1,oops"})

	err := cmd.Execute()
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
}
