package iooutput

import (
	"fmt"

	"github.com/gnames/gn"
	"github.com/gnames/orgsdb/pkg/errcode"
)

// WriteError is returned when a harvest artifact cannot be written.
func WriteError(path string, err error) error {
	msg := "Cannot write <em>%s</em>"

	return &gn.Error{
		Code: errcode.OutputWriteError,
		Msg:  msg,
		Vars: []any{path},
		Err:  fmt.Errorf("write %s: %w", path, err),
	}
}
