// Package ioschema implements SchemaManager interface for
// database schema management. This is an impure I/O package
// that wraps GORM AutoMigrate functionality.
package ioschema

import (
	"context"
	"log/slog"

	"github.com/gnames/orgsdb/pkg/db"
	"github.com/gnames/orgsdb/pkg/lifecycle"
	"github.com/gnames/orgsdb/pkg/schema"
	"github.com/jackc/pgx/v5/stdlib"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// manager implements the lifecycle.SchemaManager interface
// using GORM AutoMigrate.
type manager struct {
	operator db.Operator
}

// NewManager creates a new SchemaManager.
func NewManager(op db.Operator) lifecycle.SchemaManager {
	return &manager{operator: op}
}

// Create creates the community_orgs schema with its enum type,
// tables, indexes and check constraints.
func (m *manager) Create(ctx context.Context) error {
	return m.apply(ctx, CreateSchemaError)
}

// Migrate updates tables to the latest models. Indexes and
// constraints that are missing are added.
func (m *manager) Migrate(ctx context.Context) error {
	return m.apply(ctx, MigrateSchemaError)
}

func (m *manager) apply(
	ctx context.Context,
	autoMigrateErr func(error) error,
) error {
	pool := m.operator.Pool()
	if pool == nil {
		return NotConnectedError()
	}

	if err := execAll(ctx, m.operator, schema.PrepareDDL(), PrepareError); err != nil {
		return err
	}

	gormDB, err := m.gorm()
	if err != nil {
		return err
	}

	slog.Info("Running AutoMigrate", "models", len(schema.AllModels()))
	if err := schema.Migrate(gormDB.WithContext(ctx)); err != nil {
		return autoMigrateErr(err)
	}

	return execAll(ctx, m.operator, schema.FinalizeDDL(), ConstraintError)
}

func (m *manager) gorm() (*gorm.DB, error) {
	db := stdlib.OpenDBFromPool(m.operator.Pool())

	// Connect with GORM
	gormDB, err := gorm.Open(
		postgres.New(postgres.Config{Conn: db}),
		&gorm.Config{Logger: logger.Default.LogMode(logger.Silent)},
	)
	if err != nil {
		return nil, GORMConnectionError(err)
	}
	return gormDB, nil
}
