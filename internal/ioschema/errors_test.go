package ioschema

import (
	"errors"
	"testing"

	"github.com/gnames/gn"
	"github.com/gnames/orgsdb/pkg/errcode"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrors(t *testing.T) {
	orig := errors.New("permission denied")

	tests := []struct {
		name string
		err  error
		code gn.ErrorCode
	}{
		{"not connected", NotConnectedError(), errcode.DBNotConnectedError},
		{"gorm", GORMConnectionError(orig), errcode.SchemaGORMConnectionError},
		{"create", CreateSchemaError(orig), errcode.SchemaCreateError},
		{"migrate", MigrateSchemaError(orig), errcode.SchemaMigrateError},
		{"prepare", PrepareError("CREATE SCHEMA x", orig),
			errcode.SchemaPrepareError},
		{"constraint", ConstraintError("CREATE INDEX y", orig),
			errcode.SchemaConstraintError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var gnErr *gn.Error
			require.ErrorAs(t, tt.err, &gnErr)
			assert.Equal(t, tt.code, gnErr.Code)
			assert.NotEmpty(t, gnErr.Msg)
			require.NotNil(t, gnErr.Err)
			if tt.name != "not connected" {
				assert.ErrorIs(t, gnErr.Err, orig)
			}
		})
	}
}

func TestSummary(t *testing.T) {
	assert.Equal(t, "DO $$", summary("\n  DO $$\nBEGIN\nEND $$"))
	assert.Equal(t, "CREATE SCHEMA x", summary("CREATE SCHEMA x"))
}
