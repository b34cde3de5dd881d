package ioclean

import (
	"fmt"

	"github.com/gnames/gn"
	"github.com/gnames/orgsdb/pkg/errcode"
)

// MissingColumnsError is returned when the input lacks ABN register
// columns.
func MissingColumnsError(path string, cols []string) error {
	msg := `File <em>%s</em> is not an ABN register export

<em>Missing columns:</em> %v`

	return &gn.Error{
		Code: errcode.CleanMissingColumnsError,
		Msg:  msg,
		Vars: []any{path, cols},
		Err:  fmt.Errorf("missing columns in %s: %v", path, cols),
	}
}
