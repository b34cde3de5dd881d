package ioconfig_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/gnames/orgsdb/internal/ioconfig"
	"github.com/gnames/orgsdb/internal/iofs"
	"github.com/gnames/orgsdb/internal/iotesting"
	"github.com/gnames/orgsdb/pkg/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeDefaultConfig(t *testing.T) string {
	t.Helper()
	home := iotesting.SetupTempHome(t)
	require.NoError(t, iofs.EnsureConfigFile(home))
	return home
}

func TestLoadDefaults(t *testing.T) {
	home := writeDefaultConfig(t)

	res, err := ioconfig.Load(home, filepath.Join(home, "none.env"))
	require.NoError(t, err)

	cfg := config.New()
	cfg.Update(res.ToOptions())

	def := config.New()
	assert.Equal(t, def.Database, cfg.Database)
	assert.Equal(t, def.ACNC, cfg.ACNC)
	assert.Equal(t, 4*time.Second, cfg.Harvest.ScraperDelay)
	assert.Equal(t, time.Second, cfg.ABN.RetryBase)
	require.Len(t, cfg.ABN.MaintenanceWindows, 2)
	assert.True(t,
		def.ABN.MaintenanceWindows[0].Start.Equal(cfg.ABN.MaintenanceWindows[0].Start))
}

func TestLoadEnv(t *testing.T) {
	home := writeDefaultConfig(t)
	t.Setenv("ORGSDB_DATABASE_HOST", "db.example.com")
	t.Setenv("ORGSDB_HARVEST_SCRAPER_DELAY", "250ms")
	t.Setenv("ORGSDB_ABN_GUID", "")
	t.Setenv("PRIVATE_ABN_SEARCH_GUID", "")

	envFile := filepath.Join(home, "test.env")
	err := os.WriteFile(envFile, []byte(
		"PRIVATE_ABN_SEARCH_GUID=guid-from-env-file\n"+
			"ORGSDB_DATABASE_URL=postgres://u:p@h:5432/orgs\n",
	), 0644)
	require.NoError(t, err)
	// variables from the file do not override existing ones,
	// so empty test values have to be unset
	require.NoError(t, os.Unsetenv("PRIVATE_ABN_SEARCH_GUID"))
	require.NoError(t, os.Unsetenv("ORGSDB_ABN_GUID"))
	t.Cleanup(func() {
		os.Unsetenv("PRIVATE_ABN_SEARCH_GUID")
		os.Unsetenv("ORGSDB_DATABASE_URL")
	})

	res, err := ioconfig.Load(home, envFile)
	require.NoError(t, err)

	cfg := config.New()
	cfg.Update(res.ToOptions())

	assert.Equal(t, "db.example.com", cfg.Database.Host)
	assert.Equal(t, 250*time.Millisecond, cfg.Harvest.ScraperDelay)
	assert.Equal(t, "guid-from-env-file", cfg.ABN.GUID)
	assert.Equal(t, "postgres://u:p@h:5432/orgs", cfg.Database.DSN())
}

func TestLoadMissingFile(t *testing.T) {
	home := t.TempDir()
	_, err := ioconfig.Load(home, filepath.Join(home, "none.env"))
	assert.Error(t, err)
}
