package export

import (
	"fmt"
	"io"
	"slices"

	"github.com/xuri/excelize/v2"

	"idb-monitor/internal/reconcile"
	"idb-monitor/internal/survey"
)

// Sheet names.
const (
	ReconciliationSheet = "DT Analysis"
	AssetsSheet         = "Assets"
)

const defaultSheet = "Sheet1"

// WriteReconciliationXLSX writes the reconciliation rows as a workbook with
// the same columns as the CSV export.
func WriteReconciliationXLSX(w io.Writer, rows []reconcile.Row) error {
	if len(rows) == 0 {
		return ErrNoRows
	}

	data := make([][]any, len(rows))
	for i, r := range rows {
		data[i] = reconciliationValues(r)
	}
	return writeSheet(w, ReconciliationSheet, ReconciliationHeader, data)
}

// WriteAssetsXLSX writes the filtered field records to an Assets sheet.
// Columns are the union of the records' source keys, well-known keys first,
// followed by the derived vendor and issue columns.
func WriteAssetsXLSX(w io.Writer, records []survey.FieldRecord) error {
	if len(records) == 0 {
		return ErrNoRows
	}

	attrs := make([]map[string]any, len(records))
	present := make(map[string]bool)
	for i, r := range records {
		attrs[i] = r.Attributes()
		for k := range attrs[i] {
			present[k] = true
		}
	}

	derived := []string{survey.KeyVendorName, survey.KeyIssueType, survey.KeyIssueSynthesized}
	var header []string
	for _, k := range survey.PreferredColumns() {
		if present[k] {
			header = append(header, k)
			delete(present, k)
		}
	}
	for _, k := range derived {
		delete(present, k)
	}
	var rest []string
	for k := range present {
		rest = append(rest, k)
	}
	slices.Sort(rest)
	header = append(header, rest...)
	header = append(header, derived...)

	data := make([][]any, len(attrs))
	for i, a := range attrs {
		row := make([]any, len(header))
		for j, k := range header {
			row[j] = a[k]
		}
		data[i] = row
	}
	return writeSheet(w, AssetsSheet, header, data)
}

func writeSheet(w io.Writer, sheet string, header []string, data [][]any) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(defaultSheet, sheet); err != nil {
		return fmt.Errorf("failed to name sheet: %w", err)
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Color: "#FFFFFF"},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#4472C4"}, Pattern: 1},
		Alignment: &excelize.Alignment{
			Horizontal: "center",
			Vertical:   "center",
		},
	})
	if err != nil {
		return fmt.Errorf("failed to create header style: %w", err)
	}

	headerRow := make([]any, len(header))
	for i, h := range header {
		headerRow[i] = h
	}
	if err := f.SetSheetRow(sheet, "A1", &headerRow); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}
	last, err := excelize.CoordinatesToCellName(len(header), 1)
	if err != nil {
		return err
	}
	if err := f.SetCellStyle(sheet, "A1", last, headerStyle); err != nil {
		return fmt.Errorf("failed to style header: %w", err)
	}

	for i, row := range data {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return fmt.Errorf("failed to write row %d: %w", i+2, err)
		}
	}

	if err := f.SetPanes(sheet, &excelize.Panes{
		Freeze:      true,
		YSplit:      1,
		TopLeftCell: "A2",
		ActivePane:  "bottomLeft",
	}); err != nil {
		return fmt.Errorf("failed to freeze header: %w", err)
	}

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}
