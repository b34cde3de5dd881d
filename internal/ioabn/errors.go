package ioabn

import (
	"fmt"
	"time"

	"github.com/gnames/gn"
	"github.com/gnames/orgsdb/pkg/config"
	"github.com/gnames/orgsdb/pkg/errcode"
)

// MissingGUIDError is returned when the ABN Lookup GUID is not set.
func MissingGUIDError() error {
	msg := `ABN Lookup authentication GUID is not set

<em>How to fix:</em>
  1. Register at <em>https://abr.business.gov.au/Tools/WebServices</em>
  2. Add <em>PRIVATE_ABN_SEARCH_GUID=your-guid</em> to .env
     or set <em>abn.guid</em> in config.yaml
  3. Or skip the ABN register: <em>orgsdb harvest --sources assoc,acnc</em>`

	return &gn.Error{
		Code: errcode.MissingCredentialError,
		Msg:  msg,
		Err:  fmt.Errorf("missing ABN Lookup GUID"),
	}
}

// MaintenanceError is returned when the service is in a maintenance
// window.
func MaintenanceError(w config.Window) error {
	aest := time.FixedZone("AEST", 10*60*60)
	until := w.End.In(aest).Format("2006-01-02 15:04 AEST")
	msg := "ABR Service under maintenance until <em>%s</em>"

	return &gn.Error{
		Code: errcode.ABNMaintenanceError,
		Msg:  msg,
		Vars: []any{until},
		Err:  fmt.Errorf("ABR service under maintenance until %s", until),
	}
}

// ABNSearchError is returned when SearchByCharity failed after all
// attempts.
func ABNSearchError(postcode string, err error) error {
	msg := `Cannot search ABN register for postcode <em>%s</em>

<em>Possible causes:</em>
  - ABN Lookup service is down
  - Network connection problems
  - Invalid authentication GUID`

	return &gn.Error{
		Code: errcode.ABNSearchError,
		Msg:  msg,
		Vars: []any{postcode},
		Err:  fmt.Errorf("SearchByCharity failed for %s: %w", postcode, err),
	}
}

// ABNLookupError is returned when details of an ABN cannot be fetched.
func ABNLookupError(abn string, err error) error {
	msg := "Cannot look up details of ABN <em>%s</em>"

	return &gn.Error{
		Code: errcode.ABNLookupError,
		Msg:  msg,
		Vars: []any{abn},
		Err:  fmt.Errorf("SearchByABNv201408 failed for %s: %w", abn, err),
	}
}

// ABNParseError is returned when a response cannot be understood.
func ABNParseError(op string, err error) error {
	msg := "Cannot parse response of <em>%s</em>"

	return &gn.Error{
		Code: errcode.ABNParseError,
		Msg:  msg,
		Vars: []any{op},
		Err:  fmt.Errorf("cannot parse %s response: %w", op, err),
	}
}
