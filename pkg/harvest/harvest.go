// Package harvest defines contracts between the harvest orchestrator and
// the registry clients.
package harvest

import (
	"context"
	"time"

	"github.com/gnames/orgsdb/pkg/target"
)

// Source names used in the missing results summary.
const (
	SourceAssoc = "fair trading incorporations register"
	SourceACNC  = "acnc register"
	SourceABN   = "abn register"
)

// Short source ids used in configuration and CLI flags.
const (
	IDAssoc = "assoc"
	IDACNC  = "acnc"
	IDABN   = "abn"
)

// Base names of harvest artifacts. Writers append a run timestamp and
// an extension.
const (
	FileAssoc   = "fair_trading_incorporation_register_results"
	FileACNC    = "acnc_register_results"
	FileABN     = "abn_register_results"
	FileMissing = "missing_results_summary"
	FileErrors  = "suburb_errors"
)

// AssocFilters are the search fields of the associations register.
// Empty fields are not used for filtering.
type AssocFilters struct {
	Name     string
	Number   string
	Type     string
	Suburb   string
	Postcode string
	Status   string
}

// AssocSearcher searches the NSW register of incorporated associations.
// Failures are logged and result in an empty list.
type AssocSearcher interface {
	SearchAll(ctx context.Context, f AssocFilters, delay time.Duration) []Record
	// FetchOrgDetails reads the labelled fields of an organisation page.
	// It returns false when the page has no details.
	FetchOrgDetails(ctx context.Context, orgID string) (Record, bool)
}

// CharitySearcher searches the ACNC charity register.
// Failures of single queries are logged and skipped.
type CharitySearcher interface {
	Search(ctx context.Context, town, state, postcode string) []Record
}

// ABNSearcher searches the ABN register for charities of a postcode.
type ABNSearcher interface {
	SearchCharities(
		ctx context.Context,
		postcode, state string,
		maxResults int,
	) ([]Record, error)
}

// ABNFactory creates an ABN client. It is called only when the ABN
// phase of a harvest starts, so that construction failures (missing
// credentials, maintenance) do not affect other sources.
type ABNFactory func() (ABNSearcher, error)

// MissingEntry is a target for which a source returned nothing.
type MissingEntry struct {
	Suburb   string `json:"suburb"`
	State    string `json:"state"`
	Postcode string `json:"postcode"`
	Source   string `json:"source"`
}

// NewMissing creates a MissingEntry for the target and source.
func NewMissing(t target.SearchTarget, source string) MissingEntry {
	return MissingEntry{
		Suburb:   t.Suburb,
		State:    t.State,
		Postcode: t.Postcode,
		Source:   source,
	}
}

// Results are accumulated by a harvest run.
type Results struct {
	Assoc   []Record
	Charity []Record
	ABN     []Record
	Missing []MissingEntry
}

// Writer persists harvest results.
type Writer interface {
	// Records writes a list of records. Empty lists produce no output and
	// an empty path.
	Records(name string, recs []Record) (path string, err error)
	// Missing writes the missing results summary.
	Missing(entries []MissingEntry) (path string, err error)
	// LogMissing appends a line about a missing result to the run log.
	LogMissing(entry MissingEntry) error
}
