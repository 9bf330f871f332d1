package report

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"

	"github.com/google/uuid"

	"github.com/project-singularity/oscollapse/internal/collapse"
	"github.com/project-singularity/oscollapse/internal/scan"
)

// Row statuses.
const (
	StatusOK         = "ok"
	StatusNoCollapse = "no-collapse"
)

// ScanReport binds one sweep's points to the metadata a reader needs to
// reproduce it.
type ScanReport struct {
	// RunID tags the sweep so rows from different runs can be told
	// apart when files are concatenated.
	RunID string `json:"run_id"`

	Axis   scan.Axis          `json:"axis"`
	Fixed  collapse.Params    `json:"fixed_params"`
	Consts collapse.Constants `json:"constants"`

	Points []scan.Point `json:"-"`

	Rows []ScanRow `json:"rows"`
}

// ScanRow is one grid point flattened for output.
type ScanRow struct {
	AxisValue float64 `json:"axis_value"`

	DeltaEG  float64 `json:"delta_e_g,omitempty"`
	GammaCol float64 `json:"gamma_col,omitempty"`
	TauC     float64 `json:"tau_c,omitempty"`

	// Status is "ok", "no-collapse", or a validation error code.
	Status string `json:"status"`

	// Error holds the captured failure message for failed points.
	Error string `json:"error,omitempty"`
}

// NewScanReport assembles a report with a fresh run ID.
func NewScanReport(axis scan.Axis, fixed collapse.Params, c collapse.Constants, points []scan.Point) ScanReport {
	r := ScanReport{
		RunID:  uuid.NewString(),
		Axis:   axis,
		Fixed:  fixed,
		Consts: c,
		Points: points,
	}
	r.Rows = make([]ScanRow, len(points))
	for i, p := range points {
		r.Rows[i] = rowFor(p)
	}
	return r
}

func rowFor(p scan.Point) ScanRow {
	row := ScanRow{AxisValue: p.AxisValue}
	if p.Failed() {
		row.Status = statusForError(p.Err)
		row.Error = p.Err.Error()
		return row
	}
	row.DeltaEG = p.Result.DeltaEG
	row.GammaCol = p.Result.GammaCol
	if p.Result.NoCollapse {
		row.Status = StatusNoCollapse
		return row
	}
	row.TauC = p.Result.TauC
	row.Status = StatusOK
	return row
}

func statusForError(err error) string {
	var pe *collapse.ParamError
	if errors.As(err, &pe) {
		return string(pe.Code)
	}
	return "error"
}

// WriteScanTable writes an aligned text table.
func (r ScanReport) WriteScanTable(w io.Writer) error {
	if _, err := fmt.Fprintf(w, "# scan axis=%s run=%s\n", r.Axis, r.RunID); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "%14s %14s %14s %14s  %s\n",
		string(r.Axis), "delta_e_g", "gamma_col", "tau_c", "status"); err != nil {
		return err
	}
	for _, row := range r.Rows {
		if row.Status != StatusOK && row.Status != StatusNoCollapse {
			if _, err := fmt.Fprintf(w, "%14.6e %14s %14s %14s  %s\n",
				row.AxisValue, "-", "-", "-", row.Status); err != nil {
				return err
			}
			continue
		}
		tau := "no-collapse"
		if row.Status == StatusOK {
			tau = formatSci(row.TauC)
		}
		if _, err := fmt.Fprintf(w, "%14.6e %14.6e %14.6e %14s  %s\n",
			row.AxisValue, row.DeltaEG, row.GammaCol, tau, row.Status); err != nil {
			return err
		}
	}
	return nil
}

// WriteScanCSV writes the rows as CSV with a header record.
func (r ScanReport) WriteScanCSV(w io.Writer) error {
	cw := csv.NewWriter(w)
	header := []string{string(r.Axis), "delta_e_g", "gamma_col", "tau_c", "status", "error"}
	if err := cw.Write(header); err != nil {
		return err
	}
	for _, row := range r.Rows {
		record := []string{
			formatSci(row.AxisValue),
			"", "", "",
			row.Status,
			row.Error,
		}
		if row.Status == StatusOK || row.Status == StatusNoCollapse {
			record[1] = formatSci(row.DeltaEG)
			record[2] = formatSci(row.GammaCol)
			if row.Status == StatusOK {
				record[3] = formatSci(row.TauC)
			}
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func formatSci(v float64) string {
	return strconv.FormatFloat(v, 'e', 6, 64)
}
