package lifecycle

import (
	"context"
)

// SchemaManager defines the interface for database schema management.
// It uses GORM AutoMigrate to handle both initial schema creation and
// migrations. Schema management is idempotent - safe to run multiple times.
// Config is provided during construction.
type SchemaManager interface {
	// Create creates the community_orgs schema, its extension and enum
	// types, tables, indexes and check constraints.
	// If tables already exist, behavior depends on user confirmation
	// via DropAllTables.
	Create(ctx context.Context) error

	// Migrate updates tables to the latest models and reapplies indexes
	// and constraints.
	Migrate(ctx context.Context) error
}
