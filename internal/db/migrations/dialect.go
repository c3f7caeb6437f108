// Package migrations holds the goose migrations for the bookmarks schema.
// They are written in Go so each statement can follow the active SQL dialect.
package migrations

import "fmt"

var dialect = "sqlite3"

// SetDialect selects the DDL flavour used by the migrations. Call it before
// goose.Up.
func SetDialect(d string) error {
	switch d {
	case "sqlite3", "postgres", "mysql":
		dialect = d
		return nil
	default:
		return fmt.Errorf("migrations: unsupported dialect %q", d)
	}
}
