package main

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"qtyaudit/services"
)

// newAuditCommand builds the headless audit subcommand: it reads a takeoff
// workbook, runs every check, and writes report.csv, report.xlsx and
// report.pdf into the output directory.
func newAuditCommand() *cobra.Command {
	var (
		rulesFile string
		outDir    string
	)

	cmd := &cobra.Command{
		Use:   "audit <input.xlsx>",
		Short: "Audit a quantity takeoff workbook and write report files",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			input := args[0]

			rules, err := services.LoadRules(rulesFile)
			if err != nil {
				return err
			}

			result, err := services.AuditFile(input, rules)
			if err != nil {
				return err
			}

			meta := services.ReportMeta{
				Filename:    filepath.Base(input),
				Sheet:       result.Sheet,
				CreatedDate: time.Now().Format("2006-01-02 15:04"),
				RowsChecked: result.RowsChecked,
			}

			if err := os.MkdirAll(outDir, 0o755); err != nil {
				return fmt.Errorf("create output directory: %w", err)
			}

			csvBytes, err := services.GenerateCSV(result.Report)
			if err != nil {
				return err
			}
			xlsxBytes, err := services.GenerateReportExcel(meta, result.Report)
			if err != nil {
				return err
			}
			pdfBytes, err := services.GenerateReportPDF(meta, result.Report)
			if err != nil {
				return err
			}

			for name, data := range map[string][]byte{
				"report.csv":  csvBytes,
				"report.xlsx": xlsxBytes,
				"report.pdf":  pdfBytes,
			} {
				path := filepath.Join(outDir, name)
				if err := os.WriteFile(path, data, 0o644); err != nil {
					return fmt.Errorf("write %s: %w", path, err)
				}
			}

			rep := result.Report
			fmt.Fprintf(cmd.OutOrStdout(),
				"sheet=%s rows=%d findings=%d (HIGH %d / MEDIUM %d / LOW %d) -> %s\n",
				result.Sheet, result.RowsChecked, rep.Total(),
				rep.Count(services.SeverityHigh),
				rep.Count(services.SeverityMedium),
				rep.Count(services.SeverityLow),
				outDir,
			)
			return nil
		},
	}

	cmd.Flags().StringVar(&rulesFile, "rules", "rules.yml", "path to the audit rules file")
	cmd.Flags().StringVar(&outDir, "outdir", "output", "directory for the generated reports")

	return cmd
}
