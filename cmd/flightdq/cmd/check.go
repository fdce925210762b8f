package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Validate configuration and data source access",
	Long: `Check validates the configuration file and verifies that the data
source is reachable and the flight table exists.

Checks performed:
  - Configuration syntax and required fields
  - Data source connectivity
  - Table existence

Example:
  flightdq check --config flightdq.yaml`,
	RunE: runCheck,
}

func init() {
	rootCmd.AddCommand(checkCmd)
}

func runCheck(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()

	s, err := newSession()
	if err != nil {
		fmt.Fprintf(out, "❌ Configuration: %v\n", err)
		return err
	}

	fmt.Fprintf(out, "\n=== Configuration Check ===\n")
	fmt.Fprintf(out, "Config file: %s\n", GetConfigFile())
	fmt.Fprintf(out, "Source: %s (%s)\n", s.cfg.Source.SourceName(), s.cfg.Source.Driver)
	fmt.Fprintf(out, "Table: %s\n\n", s.cfg.Table)
	fmt.Fprintf(out, "✅ Configuration is valid\n")

	l, err := s.loader()
	if err != nil {
		return err
	}
	if err := l.CheckTable(context.Background(), s.cfg.Table); err != nil {
		fmt.Fprintf(out, "❌ Data source: %v\n", err)
		return fmt.Errorf("check failed")
	}

	fmt.Fprintf(out, "✅ Data source reachable, table %s exists\n", s.cfg.Table)
	return nil
}
