package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dbsmedya/flightdq/internal/migrate"
)

var (
	fixSQLIn  string
	fixSQLOut string
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Prepare SQL dumps for loading",
}

var fixSQLCmd = &cobra.Command{
	Use:   "fix-sql",
	Short: "Quote column names in INSERT statements",
	Long: `Fix-sql rewrites every "INSERT INTO table (columns) VALUES" header in
a SQL dump so that each column name is double-quoted. Generated dumps use
column names with spaces (Airport Code, Flight Duration) that do not load
unquoted. Running it twice produces the same output.

Example:
  flightdq migrate fix-sql --in MOCK_DATA.sql --out MOCK_DATA_fixed.sql`,
	RunE: runFixSQL,
}

func init() {
	fixSQLCmd.Flags().StringVar(&fixSQLIn, "in", "", "Input SQL file (required)")
	fixSQLCmd.Flags().StringVar(&fixSQLOut, "out", "", "Output SQL file (required)")
	fixSQLCmd.MarkFlagRequired("in")
	fixSQLCmd.MarkFlagRequired("out")

	migrateCmd.AddCommand(fixSQLCmd)
	rootCmd.AddCommand(migrateCmd)
}

func runFixSQL(cmd *cobra.Command, args []string) error {
	n, err := migrate.FixFile(fixSQLIn, fixSQLOut)
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Fixed %d INSERT statements: %s -> %s\n", n, fixSQLIn, fixSQLOut)
	return nil
}
