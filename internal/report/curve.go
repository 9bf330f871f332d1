package report

import (
	"encoding/csv"
	"fmt"
	"io"

	"github.com/project-singularity/oscollapse/internal/collapse"
)

// WriteCurveTable writes a visibility curve as an aligned text table of
// time, V_OS, and the V_QM baseline.
func WriteCurveTable(w io.Writer, curve collapse.Curve) error {
	if _, err := fmt.Fprintf(w, "%14s %12s %12s\n", "t_s", "v_os", "v_qm"); err != nil {
		return err
	}
	for i := 0; i < curve.Len(); i++ {
		if _, err := fmt.Fprintf(w, "%14.6e %12.6f %12.6f\n",
			curve.Times[i], curve.VOS[i], curve.VQM[i]); err != nil {
			return err
		}
	}
	return nil
}

// WriteCurveCSV writes a visibility curve as CSV, one sample per record.
func WriteCurveCSV(w io.Writer, curve collapse.Curve) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"t_s", "v_os", "v_qm"}); err != nil {
		return err
	}
	for i := 0; i < curve.Len(); i++ {
		record := []string{
			formatSci(curve.Times[i]),
			formatSci(curve.VOS[i]),
			formatSci(curve.VQM[i]),
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
