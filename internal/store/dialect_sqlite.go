package store

import (
	"fmt"
	"strings"
)

// SQLiteDialect implements Dialect for SQLite via modernc.org/sqlite.
type SQLiteDialect struct{}

func (d *SQLiteDialect) Name() string       { return "sqlite" }
func (d *SQLiteDialect) DriverName() string { return "sqlite" }
func (d *SQLiteDialect) NeedsBoolFix() bool { return true }

func (d *SQLiteDialect) NewParamBuilder() ParamBuilder {
	return &sqliteParamBuilder{}
}

func (d *SQLiteDialect) ColumnType(fieldType string) string {
	switch fieldType {
	case "int", "boolean":
		return "INTEGER"
	default:
		return "TEXT"
	}
}

func (d *SQLiteDialect) AutoIncrementPK() string {
	return "id INTEGER PRIMARY KEY AUTOINCREMENT"
}

func (d *SQLiteDialect) MapError(err error) error {
	if err == nil {
		return nil
	}
	// modernc.org/sqlite reports SQLITE_CONSTRAINT_UNIQUE (2067) in the
	// error text.
	errStr := err.Error()
	if strings.Contains(errStr, "UNIQUE constraint failed") || strings.Contains(errStr, "2067") {
		return fmt.Errorf("%w: %w", ErrUniqueViolation, err)
	}
	return err
}
