package iodb

import (
	"fmt"

	"github.com/gnames/gn"
	"github.com/gnames/orgsdb/pkg/config"
	"github.com/gnames/orgsdb/pkg/errcode"
)

// ConnectionError is returned when database connection fails.
func ConnectionError(cfg *config.DatabaseConfig, err error) error {
	msg := `Could not connect to PostgreSQL database

<em>Possible causes:</em>
  - PostgreSQL is not running
  - Database configuration is incorrect
  - Network connectivity issues

<em>How to fix:</em>
  1. Check if PostgreSQL is running:
     <em>pg_isready -h %s -p %d</em>
  2. Check ORGSDB_DATABASE_URL in .env or the database section of
     ~/.config/orgsdb/config.yaml

Host: %s, port: %d, database: %s, user: %s`

	vars := []any{
		cfg.Host, cfg.Port,
		cfg.Host, cfg.Port, cfg.Database, cfg.User,
	}

	return &gn.Error{
		Code: errcode.DBConnectionError,
		Msg:  msg,
		Vars: vars,
		Err: fmt.Errorf("failed to connect to %s:%d/%s: %w",
			cfg.Host, cfg.Port, cfg.Database, err),
	}
}

// NotConnectedError is returned when the pool is used before Connect.
func NotConnectedError() error {
	msg := "Database operation attempted without connection"

	return &gn.Error{
		Code: errcode.DBNotConnectedError,
		Msg:  msg,
		Err:  fmt.Errorf("not connected to database"),
	}
}

// TableExistsCheckError is returned when table lookup fails.
func TableExistsCheckError(table string, err error) error {
	msg := "Cannot check if table <em>%s</em> exists"

	return &gn.Error{
		Code: errcode.DBTableExistsCheckError,
		Msg:  msg,
		Vars: []any{table},
		Err:  fmt.Errorf("table exists check %s: %w", table, err),
	}
}

// TableCheckError is returned when checking for tables fails.
func TableCheckError(err error) error {
	msg := "Cannot check tables of the <em>%s</em> schema"

	return &gn.Error{
		Code: errcode.DBTableCheckError,
		Msg:  msg,
		Vars: []any{config.SchemaName},
		Err:  fmt.Errorf("tables check: %w", err),
	}
}

// QueryTablesError is returned when listing tables fails.
func QueryTablesError(err error) error {
	msg := "Cannot list tables of the <em>%s</em> schema"

	return &gn.Error{
		Code: errcode.DBQueryTablesError,
		Msg:  msg,
		Vars: []any{config.SchemaName},
		Err:  fmt.Errorf("query tables: %w", err),
	}
}

// ScanTableError is returned when table names cannot be read.
func ScanTableError(err error) error {
	msg := "Cannot read table names"

	return &gn.Error{
		Code: errcode.DBScanTableError,
		Msg:  msg,
		Err:  fmt.Errorf("scan table name: %w", err),
	}
}

// DropTableError is returned when a table cannot be dropped.
func DropTableError(table string, err error) error {
	msg := "Cannot drop table <em>%s</em>"

	return &gn.Error{
		Code: errcode.DBDropTableError,
		Msg:  msg,
		Vars: []any{table},
		Err:  fmt.Errorf("drop table %s: %w", table, err),
	}
}
