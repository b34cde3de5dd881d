package ioharvest

import (
	"fmt"

	"github.com/gnames/gn"
	"github.com/gnames/orgsdb/pkg/errcode"
)

// CancelledError is returned when a harvest is interrupted.
// Artifacts of the records gathered so far are still written.
func CancelledError(err error) error {
	msg := "Harvest cancelled, partial results were saved"

	return &gn.Error{
		Code: errcode.HarvestCancelledError,
		Msg:  msg,
		Err:  fmt.Errorf("harvest cancelled: %w", err),
	}
}

// ABNUnavailableError is returned when the ABN client could not be
// created. Results of the other sources are kept.
func ABNUnavailableError(err error) error {
	msg := `ABN register was not searched

<em>Reason:</em> %v

Results of other sources were saved.`

	return &gn.Error{
		Code: errcode.HarvestABNUnavailableError,
		Msg:  msg,
		Vars: []any{err},
		Err:  fmt.Errorf("abn client: %w", err),
	}
}
