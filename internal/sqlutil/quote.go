// Package sqlutil provides SQL utility functions for flightdq.
package sqlutil

import (
	"regexp"
	"strings"
)

// Dialect identifies the SQL flavour of a data source.
type Dialect string

const (
	SQLite   Dialect = "sqlite"
	MySQL    Dialect = "mysql"
	Postgres Dialect = "postgres"
)

// DialectFor maps a configured driver name to its dialect. Unknown names map to SQLite.
func DialectFor(driver string) Dialect {
	switch driver {
	case "mysql":
		return MySQL
	case "postgres":
		return Postgres
	default:
		return SQLite
	}
}

// QuoteIdentifier quotes an identifier (table name, column name) for the dialect.
// MySQL uses backticks; SQLite and PostgreSQL use double quotes. Embedded quote
// characters are escaped by doubling them.
// Example: (MySQL, "my_table") -> "`my_table`"
// Example: (SQLite, "Flight Number") -> "\"Flight Number\""
func QuoteIdentifier(d Dialect, name string) string {
	if d == MySQL {
		return "`" + strings.ReplaceAll(name, "`", "``") + "`"
	}
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}

// validIdentifierRegex restricts table names to alphanumerics and underscores.
var validIdentifierRegex = regexp.MustCompile("^[a-zA-Z0-9_]+$")

// IsValidIdentifier checks if a name only contains alphanumeric characters and underscores.
func IsValidIdentifier(name string) bool {
	return validIdentifierRegex.MatchString(name)
}

// QuoteIdentifierSafe quotes an identifier after validating it.
// Returns an error if the identifier contains invalid characters.
// Use this when identifiers might come from untrusted sources.
func QuoteIdentifierSafe(d Dialect, name string) (string, error) {
	if !IsValidIdentifier(name) {
		return "", &InvalidIdentifierError{Name: name}
	}
	return QuoteIdentifier(d, name), nil
}

// InvalidIdentifierError is returned when an identifier contains invalid characters.
type InvalidIdentifierError struct {
	Name string
}

func (e *InvalidIdentifierError) Error() string {
	return "invalid identifier: " + e.Name + " (must contain only alphanumeric characters and underscores)"
}
