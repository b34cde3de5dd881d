package iotargets_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/gnames/gn"
	"github.com/gnames/orgsdb/internal/iotargets"
	"github.com/gnames/orgsdb/pkg/errcode"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTargets(t *testing.T, content string) string {
	path := filepath.Join(t.TempDir(), "targets.yaml")
	err := os.WriteFile(path, []byte(content), 0644)
	require.NoError(t, err)
	return path
}

func TestLoad(t *testing.T) {
	path := writeTargets(t, `
targets:
  - BATLOW NSW 2730
  - suburb: Wagga Wagga
    state: NSW
    postcode: "2650"
`)
	res, err := iotargets.NewFromFile(path).Load()
	require.NoError(t, err)
	require.Len(t, res.Targets, 2)
	assert.Equal(t, "WAGGA WAGGA", res.Targets[1].Suburb)
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		code    gn.ErrorCode
	}{
		{"bad yaml", "targets: [", errcode.TargetsConfigError},
		{"bad compact form", "targets:\n  - BATLOW\n", errcode.TargetsConfigError},
		{"bad state", "targets:\n  - BATLOW NZ 2730\n", errcode.TargetsValidationError},
		{"empty", "targets: []\n", errcode.TargetsValidationError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := iotargets.NewFromFile(writeTargets(t, tt.content)).Load()
			var gnErr *gn.Error
			require.ErrorAs(t, err, &gnErr)
			assert.Equal(t, tt.code, gnErr.Code)
		})
	}

	_, err := iotargets.NewFromFile("/no/such/targets.yaml").Load()
	var gnErr *gn.Error
	require.ErrorAs(t, err, &gnErr)
	assert.Equal(t, errcode.TargetsConfigError, gnErr.Code)
}
