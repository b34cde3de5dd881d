package lifecycle

import (
	"context"

	"github.com/gnames/orgsdb/pkg/transform"
)

// LoadStats summarises a load run.
type LoadStats struct {
	Inserted int
	Updated  int
}

// Loader upserts organisation rows into the database. Rows are matched
// by slug. Updates never overwrite a stored value with NULL.
type Loader interface {
	// Load writes all rows in one transaction. On any error nothing
	// is written.
	Load(ctx context.Context, rows []transform.Row) (LoadStats, error)
}
