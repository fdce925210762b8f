package migrate

import (
	"context"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"

	"github.com/dbsmedya/flightdq/internal/sqlutil"
	"github.com/dbsmedya/flightdq/internal/table"
)

// CreateTableSQL returns the CREATE TABLE IF NOT EXISTS statement of the flight table.
func CreateTableSQL(dialect sqlutil.Dialect, tableName string) (string, error) {
	quoted, err := sqlutil.QuoteIdentifierSafe(dialect, tableName)
	if err != nil {
		return "", err
	}

	schema := table.FlightSchema()
	defs := make([]string, len(schema))
	for i, col := range schema {
		defs[i] = "\t" + sqlutil.QuoteIdentifier(dialect, col.Name) + " " + sqlType(col.Kind)
	}
	return fmt.Sprintf("CREATE TABLE IF NOT EXISTS %s (\n%s\n)", quoted, strings.Join(defs, ",\n")), nil
}

func sqlType(k table.Kind) string {
	switch k {
	case table.KindInteger:
		return "INTEGER"
	case table.KindReal:
		return "REAL"
	default:
		return "TEXT"
	}
}

// Seed creates the flight table if needed and runs script against it in one
// transaction. script may hold several statements. It returns the row count afterwards.
func Seed(ctx context.Context, db *sqlx.DB, dialect sqlutil.Dialect, tableName, script string) (int64, error) {
	create, err := CreateTableSQL(dialect, tableName)
	if err != nil {
		return 0, err
	}

	tx, err := db.BeginTxx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		// Not committed: undo the partial seed
		if tx != nil {
			_ = tx.Rollback()
		}
	}()

	if _, err := tx.ExecContext(ctx, create); err != nil {
		return 0, fmt.Errorf("failed to create table %s: %w", tableName, err)
	}
	if strings.TrimSpace(script) != "" {
		if _, err := tx.ExecContext(ctx, script); err != nil {
			return 0, fmt.Errorf("failed to run seed script: %w", err)
		}
	}

	var count int64
	if err := tx.GetContext(ctx, &count, "SELECT COUNT(*) FROM "+sqlutil.QuoteIdentifier(dialect, tableName)); err != nil {
		return 0, fmt.Errorf("failed to count rows: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit seed: %w", err)
	}
	tx = nil
	return count, nil
}
