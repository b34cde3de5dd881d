package iotargets

import (
	"fmt"

	"github.com/gnames/gn"
	"github.com/gnames/orgsdb/pkg/errcode"
)

// TargetsConfigError creates an error for when targets.yaml
// cannot be loaded.
func TargetsConfigError(path string, err error) error {
	msg := `Cannot load harvest targets

<em>Targets file:</em> %s

<em>Possible causes:</em>
  - File does not exist
  - Invalid YAML format
  - Target is not in 'SUBURB STATE POSTCODE' form
  - Permission denied

<em>How to fix:</em>
  1. Check if file exists: <em>ls -l %s</em>
  2. Validate YAML syntax
  3. Remove the file to get the default one on next run`

	vars := []any{path, path}

	return &gn.Error{
		Code: errcode.TargetsConfigError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("failed to load targets: %w", err),
	}
}

// TargetsValidationError creates an error for targets with invalid
// fields.
func TargetsValidationError(path string, err error) error {
	msg := `Harvest targets are invalid

<em>Targets file:</em> %s

<em>Problems:</em>
%s

<em>How to fix:</em>
  - State must be one of NSW, VIC, QLD, SA, WA, TAS, NT, ACT
  - Postcode must have 4 digits
  - Suburb cannot be empty`

	vars := []any{path, err.Error()}

	return &gn.Error{
		Code: errcode.TargetsValidationError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("invalid targets: %w", err),
	}
}
