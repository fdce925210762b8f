package loader

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/dbsmedya/flightdq/internal/sqlutil"
)

// tableExistsQueries look a table name up in each dialect's catalog.
var tableExistsQueries = map[sqlutil.Dialect]string{
	sqlutil.SQLite: `SELECT name FROM sqlite_master WHERE type = 'table' AND name = ?`,
	sqlutil.MySQL: `SELECT TABLE_NAME FROM information_schema.TABLES
		WHERE TABLE_SCHEMA = DATABASE() AND TABLE_NAME = ?`,
	sqlutil.Postgres: `SELECT table_name FROM information_schema.tables
		WHERE table_schema = current_schema() AND table_name = $1`,
}

// TableExists reports whether tableName exists in the source catalog.
func TableExists(ctx context.Context, db *sqlx.DB, dialect sqlutil.Dialect, tableName string) (bool, error) {
	query, ok := tableExistsQueries[dialect]
	if !ok {
		return false, fmt.Errorf("unsupported dialect %q", dialect)
	}

	rows, err := db.QueryContext(ctx, query, tableName)
	if err != nil {
		return false, fmt.Errorf("failed to query tables: %w", err)
	}
	defer rows.Close()

	found := rows.Next()
	if err := rows.Err(); err != nil {
		return false, err
	}
	return found, nil
}

// CheckTable connects and verifies that the table exists, closing the connection afterwards.
func (l *Loader) CheckTable(ctx context.Context, tableName string) error {
	if err := l.manager.Connect(ctx); err != nil {
		return &DataSourceError{Source: l.source, Table: tableName, Err: err}
	}
	defer l.manager.Close()

	if err := l.manager.Ping(ctx); err != nil {
		return &DataSourceError{Source: l.source, Table: tableName, Err: err}
	}

	exists, err := TableExists(ctx, l.manager.Source, l.manager.Dialect(), tableName)
	if err != nil {
		return &DataSourceError{Source: l.source, Table: tableName, Err: err}
	}
	if !exists {
		return &DataSourceError{Source: l.source, Table: tableName, Err: fmt.Errorf("table not found")}
	}

	l.logger.WithTable(tableName).Debug("Table existence check PASSED")
	return nil
}
