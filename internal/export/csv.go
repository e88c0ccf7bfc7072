package export

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"idb-monitor/internal/reconcile"
)

// ErrNoRows is returned when there is nothing to export.
var ErrNoRows = errors.New("no data to export")

// ReconciliationHeader is the fixed column order of reconciliation exports.
var ReconciliationHeader = []string{
	"DT Name", "Feeder", "BU", "Undertaking", "Vendor", "Users",
	"BOQ Total", "Actual Total", "Gap", "Concrete", "Wooden",
}

// ReconciliationFilename is the default download name.
const ReconciliationFilename = "dt_analysis_export.csv"

func reconciliationValues(r reconcile.Row) []any {
	return []any{
		r.DTName,
		r.Feeder,
		r.BusinessUnit,
		r.Undertaking,
		r.Vendor,
		strings.Join(r.UserNames(), "; "),
		r.BOQTotal,
		r.ActualTotal,
		r.Gap(),
		r.Concrete,
		r.Wooden,
	}
}

// WriteReconciliationCSV writes one line per row under ReconciliationHeader.
// Callers pass the searched view so the file matches what is on screen.
func WriteReconciliationCSV(w io.Writer, rows []reconcile.Row) error {
	if len(rows) == 0 {
		return ErrNoRows
	}

	cw := csv.NewWriter(w)
	if err := cw.Write(ReconciliationHeader); err != nil {
		return fmt.Errorf("failed to write csv header: %w", err)
	}

	for _, r := range rows {
		values := reconciliationValues(r)
		record := make([]string, len(values))
		for i, v := range values {
			switch x := v.(type) {
			case int:
				record[i] = strconv.Itoa(x)
			default:
				record[i] = fmt.Sprint(x)
			}
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("failed to write csv row %q: %w", r.Key, err)
		}
	}

	cw.Flush()
	return cw.Error()
}
