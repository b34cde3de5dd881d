package lifecycle

import (
	"context"

	"github.com/gnames/orgsdb/pkg/harvest"
	"github.com/gnames/orgsdb/pkg/target"
)

// Harvester collects organisation records for a list of search targets
// from the associations register, the ACNC register and the ABN
// register, and writes them as harvest artifacts.
type Harvester interface {
	// Harvest runs all selected sources. Results gathered before an
	// error are returned together with it.
	Harvest(
		ctx context.Context,
		targets []target.SearchTarget,
	) (*harvest.Results, error)
}
