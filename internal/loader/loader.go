// Package loader reads the flight table from the data source into memory.
package loader

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/dbsmedya/flightdq/internal/database"
	"github.com/dbsmedya/flightdq/internal/logger"
	"github.com/dbsmedya/flightdq/internal/sqlutil"
	"github.com/dbsmedya/flightdq/internal/table"
)

// DataSourceError reports that the source could not be opened or the table could not be read.
type DataSourceError struct {
	Source string
	Table  string
	Err    error
}

func (e *DataSourceError) Error() string {
	if e.Table == "" {
		return fmt.Sprintf("data source %s: %v", e.Source, e.Err)
	}
	return fmt.Sprintf("data source %s: table %s: %v", e.Source, e.Table, e.Err)
}

func (e *DataSourceError) Unwrap() error { return e.Err }

// Loader materializes tables from a managed connection.
type Loader struct {
	manager *database.Manager
	source  string
	logger  *logger.Logger
}

// New creates a loader. source is only used in errors and logs.
func New(m *database.Manager, source string, log *logger.Logger) (*Loader, error) {
	if m == nil {
		return nil, fmt.Errorf("database manager is nil")
	}
	if log == nil {
		log = logger.NewDefault()
	}
	return &Loader{manager: m, source: source, logger: log}, nil
}

// Load opens the source, reads the whole table and closes the connection on every path.
func (l *Loader) Load(ctx context.Context, tableName string) (*table.Table, error) {
	log := l.logger.WithTable(tableName)

	if err := l.manager.Connect(ctx); err != nil {
		return nil, &DataSourceError{Source: l.source, Table: tableName, Err: err}
	}
	defer func() {
		if err := l.manager.Close(); err != nil {
			log.Warnf("Failed to close data source: %v", err)
		}
	}()

	t, err := LoadData(ctx, l.manager.Source, l.manager.Dialect(), tableName)
	if err != nil {
		if dsErr, ok := err.(*DataSourceError); ok {
			dsErr.Source = l.source
		}
		return nil, err
	}

	log.Infof("Loaded %d rows (%d columns)", t.Len(), len(t.Columns()))
	return t, nil
}

// LoadData runs SELECT * against tableName and returns every row.
// The row cursor is closed before returning. Failures are *DataSourceError.
func LoadData(ctx context.Context, db *sqlx.DB, dialect sqlutil.Dialect, tableName string) (*table.Table, error) {
	fail := func(err error) error {
		return &DataSourceError{Table: tableName, Err: err}
	}

	if db == nil {
		return nil, fail(fmt.Errorf("database is nil"))
	}

	quoted, err := sqlutil.QuoteIdentifierSafe(dialect, tableName)
	if err != nil {
		return nil, fail(err)
	}

	rows, err := db.QueryxContext(ctx, "SELECT * FROM "+quoted)
	if err != nil {
		return nil, fail(fmt.Errorf("failed to query table: %w", err))
	}
	defer rows.Close()

	colTypes, err := rows.ColumnTypes()
	if err != nil {
		return nil, fail(fmt.Errorf("failed to read column types: %w", err))
	}

	columns := make([]table.Column, len(colTypes))
	for i, ct := range colTypes {
		columns[i] = table.Column{
			Name: ct.Name(),
			Kind: table.KindFromDatabaseType(ct.DatabaseTypeName()),
		}
	}

	var data []table.Row
	for rows.Next() {
		raw, err := rows.SliceScan()
		if err != nil {
			return nil, fail(fmt.Errorf("failed to scan row %d: %w", len(data), err))
		}
		row := make(table.Row, len(raw))
		for i, v := range raw {
			row[i] = table.FromDriver(v, columns[i].Kind)
		}
		data = append(data, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fail(fmt.Errorf("failed to read rows: %w", err))
	}

	inferUnknownKinds(columns, data)

	t, err := table.New(columns, data)
	if err != nil {
		return nil, fail(err)
	}
	return t, nil
}

// inferUnknownKinds fills in column kinds the driver did not declare.
func inferUnknownKinds(columns []table.Column, rows []table.Row) {
	for i := range columns {
		if columns[i].Kind != table.KindNull {
			continue
		}
		values := make([]table.Value, len(rows))
		for r, row := range rows {
			values[r] = row[i]
		}
		columns[i].Kind = table.InferKind(values)
	}
}
