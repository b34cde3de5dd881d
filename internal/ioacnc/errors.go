package ioacnc

import (
	"fmt"

	"github.com/gnames/gn"
	"github.com/gnames/orgsdb/pkg/errcode"
)

// CharityQueryError is returned when a datastore query fails.
func CharityQueryError(filters map[string]string, offset int, err error) error {
	msg := "Charity register query failed for <em>%v</em> at offset %d"

	return &gn.Error{
		Code: errcode.CharityQueryError,
		Msg:  msg,
		Vars: []any{filters, offset},
		Err: fmt.Errorf("datastore_search %v offset %d: %w",
			filters, offset, err),
	}
}
