package db

import (
	"context"

	"github.com/gnames/orgsdb/pkg/config"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Operator defines the interface for basic database management operations.
// It provides connection lifecycle management and exposes the pgxpool.Pool
// for high-level lifecycle components (SchemaManager, Loader) to execute
// their specialized SQL operations internally.
//
// Schema creation and migration are handled by GORM AutoMigrate via
// SchemaManager.
type Operator interface {
	// Connect establishes a connection pool to the database.
	Connect(context.Context, *config.DatabaseConfig) error

	// Close closes the database connection pool.
	Close() error

	// Pool returns the underlying pgxpool.Pool. Components use it for
	// transactions and custom queries.
	Pool() *pgxpool.Pool

	// TableExists checks if a table exists in the community_orgs schema.
	TableExists(ctx context.Context, tableName string) (bool, error)

	// HasTables checks if the community_orgs schema has any tables.
	// Used to determine if schema creation should prompt for confirmation.
	HasTables(ctx context.Context) (bool, error)

	// DropAllTables drops all tables of the community_orgs schema.
	// Used during schema initialization when overwriting existing data.
	DropAllTables(ctx context.Context) error
}
