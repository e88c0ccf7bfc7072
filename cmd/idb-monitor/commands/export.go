package commands

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"idb-monitor/internal/export"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var (
	exportFilters filterFlags
	exportFormat  string
	exportKind    string
	exportOut     string
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write the reconciliation or asset list to CSV or XLSX",
	RunE: func(cmd *cobra.Command, args []string) error {
		format := strings.ToLower(exportFormat)
		if format != "csv" && format != "xlsx" {
			return fmt.Errorf("unknown format %q (csv or xlsx)", exportFormat)
		}
		if exportKind == "assets" && format == "csv" {
			return fmt.Errorf("the asset list is only exported as xlsx")
		}

		ds := mustLoad(context.Background())
		sess := exportFilters.session(ds)

		var write func(io.Writer) error
		var rows int
		switch exportKind {
		case "reconciliation":
			data := sess.ExportRows()
			rows = len(data)
			write = func(w io.Writer) error { return export.WriteReconciliationCSV(w, data) }
			if format == "xlsx" {
				write = func(w io.Writer) error { return export.WriteReconciliationXLSX(w, data) }
			}
		case "assets":
			data := sess.Filtered()
			rows = len(data)
			write = func(w io.Writer) error { return export.WriteAssetsXLSX(w, data) }
		default:
			return fmt.Errorf("unknown export %q (reconciliation or assets)", exportKind)
		}

		out := exportOut
		if out == "" {
			out = defaultExportName(exportKind, format)
		}
		if err := writeFile(out, write); err != nil {
			return err
		}

		log.Info().Str("path", out).Int("rows", rows).Msg("Export written")
		fmt.Fprintln(cmd.OutOrStdout(), out)
		return nil
	},
}

func defaultExportName(kind, format string) string {
	if kind == "assets" {
		return "assets_export.xlsx"
	}
	return strings.TrimSuffix(export.ReconciliationFilename, filepath.Ext(export.ReconciliationFilename)) + "." + format
}

func writeFile(path string, write func(io.Writer) error) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := write(f); err != nil {
		f.Close()
		os.Remove(path)
		return fmt.Errorf("export %s: %w", path, err)
	}
	return f.Close()
}

func init() {
	exportFilters.register(exportCmd)
	exportCmd.Flags().StringVar(&exportFormat, "format", "csv", "output format: csv or xlsx")
	exportCmd.Flags().StringVar(&exportKind, "what", "reconciliation", "what to export: reconciliation or assets")
	exportCmd.Flags().StringVarP(&exportOut, "out", "o", "", "output file (default dt_analysis_export.<format>)")
}
