// Package iotesting provides shared test utilities for integration tests.
// This is an internal package for test infrastructure only.
package iotesting

import (
	"context"
	"os"
	"strconv"
	"testing"

	"github.com/gnames/orgsdb/pkg/config"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
)

const (
	// TestDatabaseName is the database name used for all integration tests.
	// This ensures tests never accidentally run against production databases.
	TestDatabaseName = "orgsdb_test"

	testUser     = "postgres"
	testPassword = "postgres"
	testImage    = "postgres:17-alpine"
)

// GetTestConfig returns a configuration suitable for integration tests.
// Database connection fields come from ORGSDB_DATABASE_* variables when
// they are set, the database name is always TestDatabaseName.
func GetTestConfig() *config.Config {
	cfg := config.New()

	var opts []config.Option
	if s := os.Getenv("ORGSDB_DATABASE_HOST"); s != "" {
		opts = append(opts, config.OptDatabaseHost(s))
	}
	if s := os.Getenv("ORGSDB_DATABASE_PORT"); s != "" {
		if port, err := strconv.Atoi(s); err == nil {
			opts = append(opts, config.OptDatabasePort(port))
		}
	}
	if s := os.Getenv("ORGSDB_DATABASE_USER"); s != "" {
		opts = append(opts, config.OptDatabaseUser(s))
	}
	if s := os.Getenv("ORGSDB_DATABASE_PASSWORD"); s != "" {
		opts = append(opts, config.OptDatabasePassword(s))
	}
	opts = append(opts, config.OptDatabaseDatabase(TestDatabaseName))
	cfg.Update(opts)

	return cfg
}

// GetTestDatabaseConfig returns only the database configuration for tests.
func GetTestDatabaseConfig() *config.DatabaseConfig {
	cfg := GetTestConfig()
	return &cfg.Database
}

// StartPostgres runs a disposable PostgreSQL container and returns
// its connection settings. The container is terminated when the test
// finishes. The test is skipped if the container cannot start, for
// example when Docker is not available.
//
// Usage:
//
//	func TestSomething(t *testing.T) {
//	    if testing.Short() {
//	        t.Skip("Skipping integration test")
//	    }
//	    dbCfg := iotesting.StartPostgres(t)
//	    // ... connect with dbCfg
//	}
func StartPostgres(t *testing.T) *config.DatabaseConfig {
	t.Helper()
	ctx := context.Background()

	pgC, err := postgres.Run(ctx,
		testImage,
		postgres.WithDatabase(TestDatabaseName),
		postgres.WithUsername(testUser),
		postgres.WithPassword(testPassword),
		postgres.BasicWaitStrategies(),
	)
	t.Cleanup(func() {
		if err := testcontainers.TerminateContainer(pgC); err != nil {
			t.Logf("failed to terminate container: %s", err)
		}
	})
	if err != nil {
		t.Skipf("cannot start postgres container: %s", err)
	}

	host, err := pgC.Host(ctx)
	if err != nil {
		t.Fatalf("container host: %s", err)
	}
	port, err := pgC.MappedPort(ctx, "5432")
	if err != nil {
		t.Fatalf("container port: %s", err)
	}

	cfg := GetTestConfig()
	cfg.Update([]config.Option{
		config.OptDatabaseHost(host),
		config.OptDatabasePort(port.Int()),
		config.OptDatabaseUser(testUser),
		config.OptDatabasePassword(testPassword),
	})
	return &cfg.Database
}

// SetupTempHome creates a temporary home directory with the config
// and data directories of orgsdb. The directory is removed when the
// test finishes.
func SetupTempHome(t *testing.T) string {
	t.Helper()

	home := t.TempDir()
	for _, dir := range []string{
		config.ConfigDir(home),
		config.LogDir(home),
		config.DataDir(home),
	} {
		if err := os.MkdirAll(dir, 0755); err != nil {
			t.Fatalf("Failed to create %s: %v", dir, err)
		}
	}
	return home
}
