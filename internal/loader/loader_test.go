package loader

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dbsmedya/flightdq/internal/config"
	"github.com/dbsmedya/flightdq/internal/database"
	"github.com/dbsmedya/flightdq/internal/logger"
	"github.com/dbsmedya/flightdq/internal/sqlutil"
	"github.com/dbsmedya/flightdq/internal/table"
)

// ============================================================================
// Test Helpers
// ============================================================================

func newMockDB(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherEqual))
	require.NoError(t, err)
	return sqlx.NewDb(db, "sqlmock"), mock
}

func flightRows(mock sqlmock.Sqlmock) *sqlmock.Rows {
	return mock.NewRowsWithColumnDefinition(
		sqlmock.NewColumn("Airport Code").OfType("TEXT", ""),
		sqlmock.NewColumn("Flight Duration").OfType("INTEGER", int64(0)),
		sqlmock.NewColumn("Flight Number").OfType("TEXT", ""),
		sqlmock.NewColumn("Notes").OfType("", nil),
	).
		AddRow("JFK", int64(180), "AA100", nil).
		AddRow(nil, nil, "BA200", nil).
		AddRow("LHR", []byte("420"), nil, nil)
}

// ============================================================================
// LoadData Tests
// ============================================================================

func TestLoadData_Success(t *testing.T) {
	db, mock := newMockDB(t)
	defer db.Close()

	mock.ExpectQuery(`SELECT * FROM "MOCK_DATA"`).WillReturnRows(flightRows(mock))

	tbl, err := LoadData(context.Background(), db, sqlutil.SQLite, "MOCK_DATA")
	require.NoError(t, err)

	assert.Equal(t, 3, tbl.Len())
	assert.Equal(t, []string{"Airport Code", "Flight Duration", "Flight Number", "Notes"}, tbl.Names())

	col, _ := tbl.Column("Flight Duration")
	assert.Equal(t, table.KindInteger, col.Kind)
	col, _ = tbl.Column("Notes")
	assert.Equal(t, table.KindNull, col.Kind, "all-missing undeclared column stays unknown")

	assert.Equal(t, table.Row{table.Text("JFK"), table.Int(180), table.Text("AA100"), table.Null()}, tbl.Row(0))
	assert.True(t, tbl.Row(1)[0].IsNull())
	assert.Equal(t, table.Int(420), tbl.Row(2)[1], "byte cells decode by declared kind")

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLoadData_InfersUndeclaredKinds(t *testing.T) {
	db, mock := newMockDB(t)
	defer db.Close()

	rows := mock.NewRowsWithColumnDefinition(
		sqlmock.NewColumn("a").OfType("", nil),
		sqlmock.NewColumn("b").OfType("", nil),
	).AddRow(int64(1), "x").AddRow(nil, "y")
	mock.ExpectQuery("SELECT * FROM `flights`").WillReturnRows(rows)

	tbl, err := LoadData(context.Background(), db, sqlutil.MySQL, "flights")
	require.NoError(t, err)

	a, _ := tbl.Column("a")
	b, _ := tbl.Column("b")
	assert.Equal(t, table.KindInteger, a.Kind)
	assert.Equal(t, table.KindText, b.Kind)
}

func TestLoadData_EmptyTable(t *testing.T) {
	db, mock := newMockDB(t)
	defer db.Close()

	rows := mock.NewRowsWithColumnDefinition(
		sqlmock.NewColumn("Flight Duration").OfType("INTEGER", int64(0)),
	)
	mock.ExpectQuery(`SELECT * FROM "MOCK_DATA"`).WillReturnRows(rows)

	tbl, err := LoadData(context.Background(), db, sqlutil.SQLite, "MOCK_DATA")
	require.NoError(t, err)
	assert.Equal(t, 0, tbl.Len())
	col, _ := tbl.Column("Flight Duration")
	assert.True(t, col.Numeric())
}

func TestLoadData_QueryFailure(t *testing.T) {
	db, mock := newMockDB(t)
	defer db.Close()

	mock.ExpectQuery(`SELECT * FROM "MISSING"`).WillReturnError(errors.New("no such table: MISSING"))

	_, err := LoadData(context.Background(), db, sqlutil.SQLite, "MISSING")
	require.Error(t, err)

	var dsErr *DataSourceError
	require.ErrorAs(t, err, &dsErr)
	assert.Equal(t, "MISSING", dsErr.Table)
	assert.Contains(t, err.Error(), "no such table")
}

func TestLoadData_RowError(t *testing.T) {
	db, mock := newMockDB(t)
	defer db.Close()

	rows := flightRows(mock).RowError(1, errors.New("connection reset"))
	mock.ExpectQuery(`SELECT * FROM "MOCK_DATA"`).WillReturnRows(rows)

	_, err := LoadData(context.Background(), db, sqlutil.SQLite, "MOCK_DATA")
	var dsErr *DataSourceError
	require.ErrorAs(t, err, &dsErr)
	assert.Contains(t, err.Error(), "connection reset")
}

func TestLoadData_InvalidTableName(t *testing.T) {
	db, mock := newMockDB(t)
	defer db.Close()

	_, err := LoadData(context.Background(), db, sqlutil.SQLite, "MOCK_DATA; DROP TABLE x")

	var dsErr *DataSourceError
	require.ErrorAs(t, err, &dsErr)
	var invalid *sqlutil.InvalidIdentifierError
	assert.ErrorAs(t, err, &invalid)

	// No query may reach the database
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLoadData_NilDB(t *testing.T) {
	_, err := LoadData(context.Background(), nil, sqlutil.SQLite, "MOCK_DATA")
	var dsErr *DataSourceError
	assert.ErrorAs(t, err, &dsErr)
}

// ============================================================================
// Loader Tests
// ============================================================================

func TestNew_NilManager(t *testing.T) {
	_, err := New(nil, "x", nil)
	assert.Error(t, err)
}

func TestLoad_ClosesConnection(t *testing.T) {
	db, mock := newMockDB(t)

	mock.ExpectQuery(`SELECT * FROM "MOCK_DATA"`).WillReturnRows(flightRows(mock))
	mock.ExpectClose()

	l, err := New(database.NewManagerFromDB(db, sqlutil.SQLite), "mock.db", logger.NewNop())
	require.NoError(t, err)

	tbl, err := l.Load(context.Background(), "MOCK_DATA")
	require.NoError(t, err)
	assert.Equal(t, 3, tbl.Len())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLoad_ClosesConnectionOnFailure(t *testing.T) {
	db, mock := newMockDB(t)

	mock.ExpectQuery(`SELECT * FROM "MOCK_DATA"`).WillReturnError(errors.New("no such table: MOCK_DATA"))
	mock.ExpectClose()

	l, err := New(database.NewManagerFromDB(db, sqlutil.SQLite), "mock.db", logger.NewNop())
	require.NoError(t, err)

	_, err = l.Load(context.Background(), "MOCK_DATA")
	var dsErr *DataSourceError
	require.ErrorAs(t, err, &dsErr)
	assert.Equal(t, "mock.db", dsErr.Source)
	assert.Contains(t, err.Error(), "data source mock.db: table MOCK_DATA")

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLoad_UnreachableSource(t *testing.T) {
	path := filepath.Join(t.TempDir(), "absent.db")
	m := database.NewManager(&config.DatabaseConfig{Driver: "sqlite", Path: path})

	l, err := New(m, path, logger.NewNop())
	require.NoError(t, err)

	_, err = l.Load(context.Background(), "MOCK_DATA")
	var dsErr *DataSourceError
	require.ErrorAs(t, err, &dsErr)
	assert.Equal(t, path, dsErr.Source)
}

func TestLoad_SQLiteRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "airport.db")
	ctx := context.Background()

	seed := database.NewManager(&config.DatabaseConfig{Driver: "sqlite", Path: path})
	require.NoError(t, seed.ConnectForWrite(ctx))
	_, err := seed.Source.ExecContext(ctx, `CREATE TABLE MOCK_DATA ("Airport Code" TEXT, "Flight Duration" INTEGER)`)
	require.NoError(t, err)
	_, err = seed.Source.ExecContext(ctx, `INSERT INTO MOCK_DATA VALUES ('JFK', 180), (NULL, NULL), ('LHR', 420)`)
	require.NoError(t, err)
	require.NoError(t, seed.Close())

	l, err := New(database.NewManager(&config.DatabaseConfig{Driver: "sqlite", Path: path}), path, logger.NewNop())
	require.NoError(t, err)

	require.NoError(t, l.CheckTable(ctx, "MOCK_DATA"))

	err = l.CheckTable(ctx, "OTHER")
	var dsErr *DataSourceError
	require.ErrorAs(t, err, &dsErr)
	assert.Contains(t, err.Error(), "table not found")

	tbl, err := l.Load(ctx, "MOCK_DATA")
	require.NoError(t, err)
	require.Equal(t, 3, tbl.Len())

	col, _ := tbl.Column("Flight Duration")
	assert.Equal(t, table.KindInteger, col.Kind)
	assert.Equal(t, table.Int(420), tbl.Row(2)[1])
	assert.True(t, tbl.Row(1)[0].IsNull())
}

// ============================================================================
// TableExists Tests
// ============================================================================

func TestTableExists(t *testing.T) {
	db, mock := newMockDB(t)
	defer db.Close()

	mock.ExpectQuery(tableExistsQueries[sqlutil.SQLite]).WithArgs("MOCK_DATA").
		WillReturnRows(sqlmock.NewRows([]string{"name"}).AddRow("MOCK_DATA"))
	mock.ExpectQuery(tableExistsQueries[sqlutil.MySQL]).WithArgs("OTHER").
		WillReturnRows(sqlmock.NewRows([]string{"TABLE_NAME"}))
	mock.ExpectQuery(tableExistsQueries[sqlutil.Postgres]).WithArgs("x").
		WillReturnError(errors.New("permission denied"))

	ctx := context.Background()

	ok, err := TableExists(ctx, db, sqlutil.SQLite, "MOCK_DATA")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = TableExists(ctx, db, sqlutil.MySQL, "OTHER")
	require.NoError(t, err)
	assert.False(t, ok)

	_, err = TableExists(ctx, db, sqlutil.Postgres, "x")
	assert.Error(t, err)

	_, err = TableExists(ctx, db, sqlutil.Dialect("oracle"), "x")
	assert.Error(t, err)

	assert.NoError(t, mock.ExpectationsWereMet())
}
