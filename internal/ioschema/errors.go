package ioschema

import (
	"fmt"

	"github.com/gnames/gn"
	"github.com/gnames/orgsdb/pkg/errcode"
)

// NotConnectedError creates an error for when schema
// operation is attempted without database connection.
func NotConnectedError() error {
	msg := "Schema operation attempted without database connection"

	return &gn.Error{
		Code: errcode.DBNotConnectedError,
		Msg:  msg,
		Vars: nil,
		Err:  fmt.Errorf("not connected to database"),
	}
}

// GORMConnectionError creates an error for GORM
// connection failures.
func GORMConnectionError(err error) error {
	msg := `Cannot connect to database with GORM

<em>Possible causes:</em>
  - Connection pool not initialized
  - Database configuration issue
  - GORM driver problem

<em>How to fix:</em>
  1. Ensure database operator is connected
  2. Check database configuration
  3. Verify GORM dependencies are installed`

	return &gn.Error{
		Code: errcode.SchemaGORMConnectionError,
		Msg:  msg,
		Vars: nil,
		Err:  fmt.Errorf("failed to connect with GORM: %w", err),
	}
}

// CreateSchemaError creates an error for schema
// creation failures.
func CreateSchemaError(err error) error {
	msg := `Cannot create database schema

<em>Possible causes:</em>
  - Insufficient database permissions
  - Invalid schema definitions
  - Database constraint violations

<em>How to fix:</em>
  1. Check database user has CREATE permissions
  2. Review schema model definitions
  3. Check database logs for details`

	return &gn.Error{
		Code: errcode.SchemaCreateError,
		Msg:  msg,
		Vars: nil,
		Err:  fmt.Errorf("failed to create schema: %w", err),
	}
}

// MigrateSchemaError creates an error for schema
// migration failures.
func MigrateSchemaError(err error) error {
	msg := `Cannot migrate database schema

<em>Possible causes:</em>
  - Incompatible schema changes
  - Insufficient database permissions
  - Data integrity issues

<em>How to fix:</em>
  1. Review migration compatibility
  2. Check database user permissions
  3. Backup data before migration`

	return &gn.Error{
		Code: errcode.SchemaMigrateError,
		Msg:  msg,
		Vars: nil,
		Err:  fmt.Errorf("failed to migrate schema: %w", err),
	}
}

// PrepareError creates an error for failures of statements that
// run before AutoMigrate.
func PrepareError(stmt string, err error) error {
	msg := `Cannot prepare the organisations schema

<em>Statement:</em> %s

<em>How to fix:</em>
  1. Check database user can CREATE SCHEMA and CREATE EXTENSION
  2. Make sure the uuid-ossp extension is installed on the server`

	return &gn.Error{
		Code: errcode.SchemaPrepareError,
		Msg:  msg,
		Vars: []any{stmt},
		Err:  fmt.Errorf("failed to run %q: %w", stmt, err),
	}
}

// ConstraintError creates an error for failures of index and
// constraint statements.
func ConstraintError(stmt string, err error) error {
	msg := `Cannot add index or constraint

<em>Statement:</em> %s

<em>Possible causes:</em>
  - Existing rows violate the constraint
  - Insufficient database permissions`

	return &gn.Error{
		Code: errcode.SchemaConstraintError,
		Msg:  msg,
		Vars: []any{stmt},
		Err:  fmt.Errorf("failed to run %q: %w", stmt, err),
	}
}
