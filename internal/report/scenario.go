package report

import (
	"encoding/csv"
	"fmt"
	"io"

	"github.com/project-singularity/oscollapse/internal/scenario"
)

// ScenarioRow flattens one scenario summary for output.
type ScenarioRow struct {
	Name       string  `json:"name"`
	Mass       float64 `json:"mass_kg"`
	Separation float64 `json:"separation_m"`
	Time       float64 `json:"t_s"`
	Lambda     float64 `json:"lambda"`
	GammaEnv   float64 `json:"gamma_env"`

	TauC       float64 `json:"tau_c,omitempty"`
	NoCollapse bool    `json:"no_collapse,omitempty"`

	VOS       float64 `json:"v_os"`
	VEnv      float64 `json:"v_env"`
	VCombined float64 `json:"v_os_plus_env"`
	VQM       float64 `json:"v_qm"`
	DeltaV    float64 `json:"delta_visibility"`
}

// ScenarioRows flattens summaries in order.
func ScenarioRows(summaries []scenario.Summary) []ScenarioRow {
	rows := make([]ScenarioRow, len(summaries))
	for i, s := range summaries {
		rows[i] = ScenarioRow{
			Name:       s.Scenario.Name,
			Mass:       s.Scenario.Mass,
			Separation: s.Scenario.Separation,
			Time:       s.Scenario.Time,
			Lambda:     s.Scenario.EffectiveLambda(),
			GammaEnv:   s.Scenario.GammaEnv,
			TauC:       s.Result.TauC,
			NoCollapse: s.Result.NoCollapse,
			VOS:        s.VOS,
			VEnv:       s.VEnv,
			VCombined:  s.VCombined,
			VQM:        s.VQM,
			DeltaV:     s.DeltaVisibility,
		}
	}
	return rows
}

// WriteScenarioTable writes an aligned OS-vs-QM comparison table.
func WriteScenarioTable(w io.Writer, summaries []scenario.Summary) error {
	if _, err := fmt.Fprintf(w, "%-14s %12s %12s %10s %12s %10s %10s %10s\n",
		"name", "mass_kg", "separation_m", "t_s", "tau_c", "v_os", "v_qm", "delta_v"); err != nil {
		return err
	}
	for _, row := range ScenarioRows(summaries) {
		tau := "no-collapse"
		if !row.NoCollapse {
			tau = fmt.Sprintf("%.3e", row.TauC)
		}
		if _, err := fmt.Fprintf(w, "%-14s %12.3e %12.3e %10.3e %12s %10.3e %10.3e %10.3e\n",
			row.Name, row.Mass, row.Separation, row.Time, tau, row.VOS, row.VQM, row.DeltaV); err != nil {
			return err
		}
	}
	return nil
}

// WriteScenarioCSV writes summaries as CSV with a header record.
func WriteScenarioCSV(w io.Writer, summaries []scenario.Summary) error {
	cw := csv.NewWriter(w)
	header := []string{
		"name", "mass_kg", "separation_m", "t_s", "lambda", "gamma_env",
		"tau_c", "v_os", "v_env", "v_os_plus_env", "v_qm", "delta_visibility",
	}
	if err := cw.Write(header); err != nil {
		return err
	}
	for _, row := range ScenarioRows(summaries) {
		tau := "no-collapse"
		if !row.NoCollapse {
			tau = formatSci(row.TauC)
		}
		record := []string{
			row.Name,
			formatSci(row.Mass),
			formatSci(row.Separation),
			formatSci(row.Time),
			formatSci(row.Lambda),
			formatSci(row.GammaEnv),
			tau,
			formatSci(row.VOS),
			formatSci(row.VEnv),
			formatSci(row.VCombined),
			formatSci(row.VQM),
			formatSci(row.DeltaV),
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
