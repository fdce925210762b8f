package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dbsmedya/flightdq/internal/table"
)

var (
	reportOutput string
	reportXLSX   string
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Write the Markdown data quality report",
	Long: `Report loads the flight table, runs every check and writes the
Markdown report. The previous report is left untouched if the report
cannot be built.

The dashboard runs this command when its "Generate report" button is pressed.

Example:
  flightdq report --config flightdq.yaml
  flightdq report --output quality.md --xlsx quality.xlsx`,
	RunE: runReport,
}

func init() {
	reportCmd.Flags().StringVarP(&reportOutput, "output", "o", "",
		"Markdown output path (overrides report.path)")
	reportCmd.Flags().StringVar(&reportXLSX, "xlsx", "",
		"Also write an XLSX workbook (overrides report.xlsx_path)")

	rootCmd.AddCommand(reportCmd)
}

func runReport(cmd *cobra.Command, args []string) error {
	s, err := newSession()
	if err != nil {
		return err
	}

	mdPath, xlsxPath := s.cfg.Report.Path, s.cfg.Report.XLSXPath
	if reportOutput != "" {
		mdPath = reportOutput
	}
	if reportXLSX != "" {
		xlsxPath = reportXLSX
	}

	res, err := s.analyze(context.Background(), table.Filters{})
	if err != nil {
		return err
	}
	if err := s.saveReports(res, mdPath, xlsxPath); err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Report saved to %s\n", mdPath)
	if xlsxPath != "" {
		fmt.Fprintf(cmd.OutOrStdout(), "Workbook saved to %s\n", xlsxPath)
	}
	return nil
}
