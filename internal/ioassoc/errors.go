package ioassoc

import (
	"fmt"

	"github.com/gnames/gn"
	"github.com/gnames/orgsdb/pkg/errcode"
)

// FormNotFoundError is returned when a page has no ASP.NET form.
func FormNotFoundError(url string) error {
	msg := "Search form not found on <em>%s</em>"

	return &gn.Error{
		Code: errcode.AssocFormNotFoundError,
		Msg:  msg,
		Vars: []any{url},
		Err:  fmt.Errorf("form#aspnetForm not found: %s", url),
	}
}

// FetchError is returned when a register page cannot be retrieved.
func FetchError(url string, err error) error {
	msg := "Cannot fetch <em>%s</em>"

	return &gn.Error{
		Code: errcode.AssocFetchError,
		Msg:  msg,
		Vars: []any{url},
		Err:  fmt.Errorf("fetch %s: %w", url, err),
	}
}
