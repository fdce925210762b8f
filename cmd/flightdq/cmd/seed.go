package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/dbsmedya/flightdq/internal/database"
	"github.com/dbsmedya/flightdq/internal/migrate"
)

var (
	seedScript string
	seedFix    bool
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Create the flight table and load a SQL script into it",
	Long: `Seed creates the flight table if it does not exist and executes the
given SQL script in a single transaction. Nothing is kept if any statement
fails. For SQLite the database file is created when missing.

Example:
  flightdq seed --db data/airport_data.db --script MOCK_DATA_fixed.sql
  flightdq seed --script MOCK_DATA.sql --fix`,
	RunE: runSeed,
}

func init() {
	seedCmd.Flags().StringVar(&seedScript, "script", "",
		"SQL script to execute after creating the table")
	seedCmd.Flags().BoolVar(&seedFix, "fix", false,
		"Quote INSERT column names before executing the script")

	rootCmd.AddCommand(seedCmd)
}

func runSeed(cmd *cobra.Command, args []string) error {
	s, err := newSession()
	if err != nil {
		return err
	}

	var script string
	if seedScript != "" {
		data, err := os.ReadFile(seedScript)
		if err != nil {
			return fmt.Errorf("failed to read script: %w", err)
		}
		script = string(data)
		if seedFix {
			script = migrate.FixInsertColumns(script)
		}
	}

	ctx := context.Background()
	dbManager := database.NewManager(&s.cfg.Source)
	if err := dbManager.ConnectForWrite(ctx); err != nil {
		return fmt.Errorf("failed to connect to %s: %w", s.cfg.Source.SourceName(), err)
	}
	defer dbManager.Close()

	rows, err := migrate.Seed(ctx, dbManager.Source, dbManager.Dialect(), s.cfg.Table, script)
	if err != nil {
		return err
	}

	s.log.Infow("Seed complete", "table", s.cfg.Table, "rows", rows)
	fmt.Fprintf(cmd.OutOrStdout(), "Table %s now has %d rows\n", s.cfg.Table, rows)
	return nil
}
