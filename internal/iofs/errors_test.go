package iofs

import (
	"errors"
	"testing"

	"github.com/gnames/gn"
	"github.com/gnames/orgsdb/pkg/errcode"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrors(t *testing.T) {
	origErr := errors.New("permission denied")
	tests := []struct {
		name string
		fn   func(string, error) error
		code gn.ErrorCode
	}{
		{"create dir", CreateDirError, errcode.CreateDirError},
		{"copy file", CopyFileError, errcode.CopyFileError},
		{"read file", ReadFileError, errcode.ReadFileError},
		{"write file", WriteFileError, errcode.WriteFileError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.fn("/test/path", origErr)

			var gnErr *gn.Error
			require.ErrorAs(t, err, &gnErr)
			assert.Equal(t, tt.code, gnErr.Code)
			assert.Contains(t, gnErr.Msg, "%s")
			require.Len(t, gnErr.Vars, 1)
			assert.Equal(t, "/test/path", gnErr.Vars[0])
			assert.ErrorIs(t, gnErr.Err, origErr)
			assert.Contains(t, gnErr.Err.Error(), "from ")
		})
	}
}
