// Package database provides data source connection management for flightdq.
package database

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	_ "github.com/go-sql-driver/mysql" // MySQL driver
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"  // PostgreSQL driver
	_ "modernc.org/sqlite" // SQLite driver

	"github.com/dbsmedya/flightdq/internal/config"
	"github.com/dbsmedya/flightdq/internal/sqlutil"
)

// Manager owns the connection to the configured data source.
type Manager struct {
	Source  *sqlx.DB
	config  *config.DatabaseConfig
	dialect sqlutil.Dialect
}

// NewManager creates a new database manager from configuration.
func NewManager(cfg *config.DatabaseConfig) *Manager {
	return &Manager{
		config:  cfg,
		dialect: sqlutil.DialectFor(cfg.Driver),
	}
}

// NewManagerFromDB wraps an already opened connection. Connect becomes a no-op.
func NewManagerFromDB(db *sqlx.DB, dialect sqlutil.Dialect) *Manager {
	return &Manager{
		Source:  db,
		config:  &config.DatabaseConfig{Driver: string(dialect)},
		dialect: dialect,
	}
}

// Dialect returns the SQL dialect of the source.
func (m *Manager) Dialect() sqlutil.Dialect {
	return m.dialect
}

// Connect opens and pings the source for reading. A SQLite file that does not
// exist is an error rather than being created empty.
func (m *Manager) Connect(ctx context.Context) error {
	if m.Source != nil {
		return nil
	}
	if m.dialect == sqlutil.SQLite {
		if _, err := os.Stat(m.config.Path); errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("sqlite database %q does not exist", m.config.Path)
		}
	}
	return m.open(ctx)
}

// ConnectForWrite opens the source, creating a SQLite file when missing.
// Use this for seeding only.
func (m *Manager) ConnectForWrite(ctx context.Context) error {
	if m.Source != nil {
		return nil
	}
	return m.open(ctx)
}

func (m *Manager) open(ctx context.Context) error {
	db, err := sqlx.Open(DriverName(m.dialect), BuildDSN(m.config))
	if err != nil {
		return fmt.Errorf("failed to open %s source: %w", m.dialect, err)
	}

	// Configure connection pool
	if m.config.MaxConnections > 0 {
		db.SetMaxOpenConns(m.config.MaxConnections)
	}
	db.SetConnMaxLifetime(10 * time.Minute)

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return fmt.Errorf("failed to reach %s source: %w", m.dialect, err)
	}

	m.Source = db
	return nil
}

// DriverName returns the database/sql driver name registered for the dialect.
func DriverName(d sqlutil.Dialect) string {
	switch d {
	case sqlutil.MySQL:
		return "mysql"
	case sqlutil.Postgres:
		return "postgres"
	default:
		return "sqlite"
	}
}

// BuildDSN constructs a driver-specific DSN from configuration.
func BuildDSN(cfg *config.DatabaseConfig) string {
	switch sqlutil.DialectFor(cfg.Driver) {
	case sqlutil.MySQL:
		return buildMySQLDSN(cfg)
	case sqlutil.Postgres:
		return buildPostgresDSN(cfg)
	default:
		return cfg.Path + "?_pragma=busy_timeout(5000)"
	}
}

func buildMySQLDSN(cfg *config.DatabaseConfig) string {
	// Format: user:password@tcp(host:port)/database?params
	dsn := fmt.Sprintf("%s:%s@tcp(%s:%d)/",
		cfg.User,
		cfg.Password,
		cfg.Host,
		cfg.Port,
	)

	if cfg.Database != "" {
		dsn += cfg.Database
	}

	// Add TLS configuration
	params := "?parseTime=true&multiStatements=true"
	switch cfg.TLS {
	case "disable":
		params += "&tls=false"
	case "required":
		params += "&tls=true"
	case "preferred", "":
		params += "&tls=preferred"
	}

	return dsn + params
}

func buildPostgresDSN(cfg *config.DatabaseConfig) string {
	sslMode := cfg.SSLMode
	if sslMode == "" {
		sslMode = "disable"
	}
	dsn := fmt.Sprintf("host=%s port=%d user=%s dbname=%s sslmode=%s",
		cfg.Host, cfg.Port, cfg.User, cfg.Database, sslMode)
	if cfg.Password != "" {
		dsn += fmt.Sprintf(" password=%s", cfg.Password)
	}
	return dsn
}

// Close closes the source connection.
func (m *Manager) Close() error {
	if m.Source == nil {
		return nil
	}
	err := m.Source.Close()
	m.Source = nil
	if err != nil {
		return fmt.Errorf("source close: %w", err)
	}
	return nil
}

// Ping verifies the connection is alive.
func (m *Manager) Ping(ctx context.Context) error {
	if m.Source == nil {
		return fmt.Errorf("source is not connected")
	}
	if err := m.Source.PingContext(ctx); err != nil {
		return fmt.Errorf("source ping failed: %w", err)
	}
	return nil
}
