package calai

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/MEME-CORP/calaiweb/internal/service"
	"github.com/spf13/cobra"
)

const (
	formatJSON = "json"
	formatCSV  = "csv"
)

var (
	exportFormat string
	exportOut    string
	importFormat string
	importIn     string
	importMode   string
	importDryRun bool
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write a JSON snapshot of all state, or the meal log as CSV",
	RunE: func(cmd *cobra.Command, args []string) error {
		format, err := parseFileFormat(exportFormat)
		if err != nil {
			return err
		}
		if strings.TrimSpace(exportOut) == "" {
			return fmt.Errorf("--out is required")
		}
		return withState(func(_ *sql.DB, st *service.State) error {
			f, err := os.Create(exportOut)
			if err != nil {
				return fmt.Errorf("create export file: %w", err)
			}
			defer f.Close()
			if err := writeExport(f, format, st); err != nil {
				return err
			}
			if err := f.Close(); err != nil {
				return fmt.Errorf("close export file: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Exported %d meal(s) to %s\n", len(st.Meals.Meals()), exportOut)
			return nil
		})
	},
}

func writeExport(w io.Writer, format string, st *service.State) error {
	if format == formatCSV {
		return service.WriteMealsCSV(w, st.Meals.Meals())
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(service.ExportDataSnapshot(st, time.Now())); err != nil {
		return fmt.Errorf("encode export json: %w", err)
	}
	return nil
}

var importCmd = &cobra.Command{
	Use:   "import",
	Short: "Load a JSON snapshot or a CSV meal log",
	Long: "Load a JSON snapshot or a CSV meal log. Meals are matched by id and resolved by --mode; " +
		"profile, targets and onboarding are only taken from a JSON snapshot in replace mode.",
	RunE: func(cmd *cobra.Command, args []string) error {
		format, err := parseFileFormat(importFormat)
		if err != nil {
			return err
		}
		if strings.TrimSpace(importIn) == "" {
			return fmt.Errorf("--in is required")
		}
		mode, err := service.ParseImportMode(strings.ToLower(strings.TrimSpace(importMode)))
		if err != nil {
			return err
		}
		opts := service.ImportOptions{Mode: mode, DryRun: importDryRun}

		f, err := os.Open(importIn)
		if err != nil {
			return fmt.Errorf("open import file: %w", err)
		}
		defer f.Close()

		return withState(func(_ *sql.DB, st *service.State) error {
			report, err := runImport(f, format, st, opts)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Import report: inserted=%d updated=%d skipped=%d conflicts=%d\n", report.Inserted, report.Updated, report.Skipped, report.Conflicts)
			for _, w := range report.Warnings {
				fmt.Fprintf(out, "warning: %s\n", w)
			}
			if importDryRun {
				fmt.Fprintf(out, "Dry-run: nothing written from %s\n", importIn)
			}
			return nil
		})
	},
}

func runImport(r io.Reader, format string, st *service.State, opts service.ImportOptions) (service.ImportReport, error) {
	if format == formatCSV {
		meals, err := service.ReadMealsCSV(r)
		if err != nil {
			return service.ImportReport{}, err
		}
		return service.ImportMealsOnly(st, meals, opts)
	}
	var payload service.ExportData
	if err := json.NewDecoder(r).Decode(&payload); err != nil {
		return service.ImportReport{}, fmt.Errorf("parse import json: %w", err)
	}
	return service.ImportDataSnapshotWithOptions(st, &payload, opts)
}

func parseFileFormat(value string) (string, error) {
	switch f := strings.ToLower(strings.TrimSpace(value)); f {
	case formatJSON, formatCSV:
		return f, nil
	default:
		return "", fmt.Errorf("unsupported --format %q (use json or csv)", value)
	}
}

func init() {
	rootCmd.AddCommand(exportCmd, importCmd)
	exportCmd.Flags().StringVar(&exportFormat, "format", formatJSON, "File format: json (full snapshot) or csv (meals only)")
	exportCmd.Flags().StringVar(&exportOut, "out", "", "Output file path")
	importCmd.Flags().StringVar(&importFormat, "format", formatJSON, "File format: json (full snapshot) or csv (meals only)")
	importCmd.Flags().StringVar(&importIn, "in", "", "Input file path")
	importCmd.Flags().StringVar(&importMode, "mode", string(service.ImportModeMerge), "Meal conflict mode: fail, skip, merge, replace (json only)")
	importCmd.Flags().BoolVar(&importDryRun, "dry-run", false, "Validate and report without writing")
}
