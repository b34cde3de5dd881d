package cmd

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetMigrateCmd(t *testing.T) {
	cmd := getMigrateCmd()
	require.NotNil(t, cmd)
	assert.Equal(t, "migrate", cmd.Use)
	assert.Contains(t, cmd.Short, "Migrate")
	assert.Contains(t, cmd.Long, "non-destructive")
	assert.NotNil(t, cmd.RunE)
	assert.False(t, cmd.Flags().HasFlags(), "migrate has no flags")
}
