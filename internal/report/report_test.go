package report

import (
	"bytes"
	"context"
	"encoding/csv"
	"encoding/json"
	"strings"
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/project-singularity/oscollapse/internal/collapse"
	"github.com/project-singularity/oscollapse/internal/scan"
	"github.com/project-singularity/oscollapse/internal/scenario"
)

// roundConstants make every derived quantity an exact power of ten so
// golden files stay byte-stable.
var roundConstants = collapse.Constants{G: 1e-10, Hbar: 1e-34}

func lambdaSweep(t *testing.T) ScanReport {
	t.Helper()
	fixed, err := collapse.NewParams(1e-12, 1e-6, 1.0, []float64{0})
	require.NoError(t, err)

	points, err := scan.Run(context.Background(), fixed,
		scan.Grid{Axis: scan.AxisLambda, Values: []float64{0.5, 0, -1}}, roundConstants)
	require.NoError(t, err)

	r := NewScanReport(scan.AxisLambda, fixed, roundConstants, points)
	r.RunID = "test-run-0001" // pin for golden comparison
	return r
}

func TestScanReportRows(t *testing.T) {
	r := lambdaSweep(t)
	require.Len(t, r.Rows, 3)

	assert.Equal(t, StatusOK, r.Rows[0].Status)
	assert.InEpsilon(t, 1e-28, r.Rows[0].DeltaEG, 1e-12)
	assert.InEpsilon(t, 5e5, r.Rows[0].GammaCol, 1e-12)
	assert.InEpsilon(t, 2e-6, r.Rows[0].TauC, 1e-12)

	assert.Equal(t, StatusNoCollapse, r.Rows[1].Status)
	assert.Zero(t, r.Rows[1].TauC)

	assert.Equal(t, "NEGATIVE_LAMBDA", r.Rows[2].Status)
	assert.Contains(t, r.Rows[2].Error, "lambda")
	assert.Equal(t, -1.0, r.Rows[2].AxisValue, "offending axis value preserved")
}

func TestScanReportJSONKeys(t *testing.T) {
	data, err := json.Marshal(lambdaSweep(t))
	require.NoError(t, err)

	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal(data, &decoded))

	// Every payload uses snake_case keys, fixed params and constants
	// included.
	fixed, ok := decoded["fixed_params"].(map[string]interface{})
	require.True(t, ok)
	for _, key := range []string{"mass_kg", "separation_m", "lambda", "times"} {
		assert.Contains(t, fixed, key)
	}
	consts, ok := decoded["constants"].(map[string]interface{})
	require.True(t, ok)
	assert.Contains(t, consts, "g")
	assert.Contains(t, consts, "hbar")
}

func TestScanReportFreshRunIDs(t *testing.T) {
	fixed, err := collapse.NewParams(1e-12, 1e-6, 1.0, nil)
	require.NoError(t, err)

	a := NewScanReport(scan.AxisMass, fixed, roundConstants, nil)
	b := NewScanReport(scan.AxisMass, fixed, roundConstants, nil)
	assert.NotEmpty(t, a.RunID)
	assert.NotEqual(t, a.RunID, b.RunID)
}

func TestWriteScanTableGolden(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, lambdaSweep(t).WriteScanTable(&buf))

	g := goldie.New(t)
	g.Assert(t, "scan_table", buf.Bytes())
}

func TestWriteScanCSVGolden(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, lambdaSweep(t).WriteScanCSV(&buf))

	g := goldie.New(t)
	g.Assert(t, "scan_csv", buf.Bytes())
}

func TestWriteScanCSVParsesBack(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, lambdaSweep(t).WriteScanCSV(&buf))

	records, err := csv.NewReader(strings.NewReader(buf.String())).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 4, "header plus three rows")

	assert.Equal(t, []string{"lambda", "delta_e_g", "gamma_col", "tau_c", "status", "error"}, records[0])
	assert.Equal(t, "ok", records[1][4])
	assert.Equal(t, "", records[2][3], "no τ_c column value for a no-collapse row")
	assert.Equal(t, "NEGATIVE_LAMBDA", records[3][4])
}

func TestWriteCurveTableGolden(t *testing.T) {
	curve, err := collapse.Visibility(0, []float64{0, 0.5, 1.0})
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, WriteCurveTable(&buf, curve))

	g := goldie.New(t)
	g.Assert(t, "curve_table", buf.Bytes())
}

func TestWriteCurveCSV(t *testing.T) {
	curve, err := collapse.Visibility(2.0, []float64{0, 0.5})
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, WriteCurveCSV(&buf, curve))

	records, err := csv.NewReader(strings.NewReader(buf.String())).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 3)
	assert.Equal(t, []string{"t_s", "v_os", "v_qm"}, records[0])
	assert.Equal(t, "1.000000e+00", records[1][1], "V_OS(0)=1 exactly")
}

func TestWriteScenarioTableAndCSV(t *testing.T) {
	summaries, err := scenario.RunAll([]scenario.Scenario{
		{Name: "nanoparticle", Mass: 1e-17, Separation: 1e-6, Time: 1.0},
		{Name: "frozen", Mass: 1e-17, Separation: 1e-6, Time: 1.0, Lambda: func() *float64 { v := 0.0; return &v }()},
	}, collapse.DefaultConstants())
	require.NoError(t, err)

	var table bytes.Buffer
	require.NoError(t, WriteScenarioTable(&table, summaries))
	out := table.String()
	assert.Contains(t, out, "nanoparticle")
	assert.Contains(t, out, "no-collapse")
	assert.NotContains(t, out, "Inf")
	assert.NotContains(t, out, "NaN")

	var csvBuf bytes.Buffer
	require.NoError(t, WriteScenarioCSV(&csvBuf, summaries))
	records, err := csv.NewReader(strings.NewReader(csvBuf.String())).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 3)

	assert.Equal(t, "nanoparticle", records[1][0])
	assert.Equal(t, "no-collapse", records[2][6], "τ_c column carries the marker, not a sentinel float")

	// Rows keep evaluation order.
	assert.Equal(t, "frozen", records[2][0])
}
