package iodb_test

import (
	"context"
	"testing"
	"time"

	"github.com/gnames/orgsdb/internal/iodb"
	"github.com/gnames/orgsdb/internal/iotesting"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// These are integration tests. They start a PostgreSQL container with
// testcontainers and are skipped with `go test -short`.

func TestPgxOperatorConnectInvalidHost(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	op := iodb.NewPgxOperator()
	ctx, cancel := context.WithTimeout(context.Background(), testTimeout)
	defer cancel()

	cfg := iotesting.GetTestDatabaseConfig()
	cfg.Host = "invalid-host-that-does-not-exist"
	cfg.URL = ""

	err := op.Connect(ctx, cfg)
	assert.Error(t, err, "Connect should fail with invalid host")
}

func TestPgxOperatorTables(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	dbCfg := iotesting.StartPostgres(t)
	ctx := context.Background()

	op := iodb.NewPgxOperator()
	require.NoError(t, op.Connect(ctx, dbCfg))
	defer op.Close()

	has, err := op.HasTables(ctx)
	require.NoError(t, err)
	assert.False(t, has, "fresh database")

	_, err = op.Pool().Exec(ctx, `
		CREATE SCHEMA IF NOT EXISTS community_orgs;
		CREATE TABLE community_orgs.drop_test1 (id SERIAL PRIMARY KEY);
		CREATE TABLE community_orgs.drop_test2 (id SERIAL PRIMARY KEY);
		CREATE TABLE public.outside (id SERIAL PRIMARY KEY);
	`)
	require.NoError(t, err)

	exists, err := op.TableExists(ctx, "drop_test1")
	require.NoError(t, err)
	assert.True(t, exists)

	exists, err = op.TableExists(ctx, "outside")
	require.NoError(t, err)
	assert.False(t, exists, "only organisations schema is checked")

	require.NoError(t, op.DropAllTables(ctx))

	has, err = op.HasTables(ctx)
	require.NoError(t, err)
	assert.False(t, has)

	var n int
	err = op.Pool().QueryRow(ctx,
		"SELECT count(*) FROM pg_tables WHERE tablename = 'outside'").Scan(&n)
	require.NoError(t, err)
	assert.Equal(t, 1, n, "tables of other schemas are kept")
}

const testTimeout = 10 * time.Second
