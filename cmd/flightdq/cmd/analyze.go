package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dbsmedya/flightdq/internal/report"
	"github.com/dbsmedya/flightdq/internal/table"
)

var (
	analyzeNoColor bool
	analyzeXLSX    string
	analyzeCountry []string
	analyzeCity    []string
	analyzeAirline []string
	analyzeAirport []string
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Run every data quality check and print the results",
	Long: `Analyze loads the flight table, runs every check and prints the
results to the console. A check that fails prints its error in place of
its section; the remaining sections are still printed.

Filters restrict the analyzed rows the same way the dashboard sidebar does.

Example:
  flightdq analyze --config flightdq.yaml
  flightdq analyze --country USA --airline AA --xlsx quality.xlsx`,
	RunE: runAnalyze,
}

func init() {
	analyzeCmd.Flags().BoolVar(&analyzeNoColor, "no-color", false,
		"Disable colored section headers")
	analyzeCmd.Flags().StringVar(&analyzeXLSX, "xlsx", "",
		"Also write the results to this XLSX workbook")
	analyzeCmd.Flags().StringSliceVar(&analyzeCountry, "country", nil,
		"Only analyze rows from these countries")
	analyzeCmd.Flags().StringSliceVar(&analyzeCity, "city", nil,
		"Only analyze rows from these arrival cities")
	analyzeCmd.Flags().StringSliceVar(&analyzeAirline, "airline", nil,
		"Only analyze rows from these airline codes")
	analyzeCmd.Flags().StringSliceVar(&analyzeAirport, "airport", nil,
		"Only analyze rows from these airport codes")

	rootCmd.AddCommand(analyzeCmd)
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	s, err := newSession()
	if err != nil {
		return err
	}

	filters := table.Filters{
		Countries: analyzeCountry,
		Cities:    analyzeCity,
		Airlines:  analyzeAirline,
		Airports:  analyzeAirport,
	}

	res, err := s.analyze(context.Background(), filters)
	if err != nil {
		return err
	}

	opts := report.ConsoleOptions{
		Color:  s.cfg.Report.Color && !analyzeNoColor,
		Limits: report.LimitsFromConfig(&s.cfg.Report),
	}
	if err := report.WriteConsole(cmd.OutOrStdout(), res, opts); err != nil {
		return fmt.Errorf("failed to print results: %w", err)
	}

	xlsxPath := analyzeXLSX
	if xlsxPath == "" {
		xlsxPath = s.cfg.Report.XLSXPath
	}
	if xlsxPath != "" {
		if err := report.WriteXLSX(xlsxPath, res); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "\nWorkbook saved to %s\n", xlsxPath)
	}
	return nil
}
