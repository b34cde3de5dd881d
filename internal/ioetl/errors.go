package ioetl

import (
	"fmt"

	"github.com/gnames/gn"
	"github.com/gnames/orgsdb/pkg/errcode"
)

// ReadInputError is returned when an input file cannot be read or parsed.
func ReadInputError(path string, err error) error {
	msg := "Cannot read records from <em>%s</em>"

	return &gn.Error{
		Code: errcode.ETLReadInputError,
		Msg:  msg,
		Vars: []any{path},
		Err:  fmt.Errorf("read input %s: %w", path, err),
	}
}

// UnknownSourceError is returned for an unsupported record source.
func UnknownSourceError(src string) error {
	msg := `Unknown record source <em>%s</em>

Supported sources: raw, assoc, acnc`

	return &gn.Error{
		Code: errcode.ETLUnknownSourceError,
		Msg:  msg,
		Vars: []any{src},
		Err:  fmt.Errorf("unknown source %q", src),
	}
}

// MissingSlugError is returned when a row cannot be matched or inserted
// because it has no slug.
func MissingSlugError(idx int) error {
	msg := "Record <em>%d</em> has no slug, nothing was loaded"

	return &gn.Error{
		Code: errcode.ETLMissingSlugError,
		Msg:  msg,
		Vars: []any{idx + 1},
		Err:  fmt.Errorf("record %d: missing slug", idx+1),
	}
}

// TransactionError is returned when a transaction cannot start or commit.
func TransactionError(err error) error {
	msg := `Load transaction failed, nothing was loaded

<em>How to fix:</em>
  1. Check that the schema exists: <em>orgsdb create</em>
  2. Check database logs for details`

	return &gn.Error{
		Code: errcode.ETLTransactionError,
		Msg:  msg,
		Err:  fmt.Errorf("load transaction: %w", err),
	}
}

// UpsertError is returned when a row cannot be inserted or updated.
// The whole batch is rolled back.
func UpsertError(slug string, err error) error {
	msg := "Cannot load organisation <em>%s</em>, nothing was loaded"

	return &gn.Error{
		Code: errcode.ETLUpsertError,
		Msg:  msg,
		Vars: []any{slug},
		Err:  fmt.Errorf("upsert %s: %w", slug, err),
	}
}
