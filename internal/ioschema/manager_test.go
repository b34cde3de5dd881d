package ioschema_test

import (
	"context"
	"testing"

	"github.com/gnames/gn"
	"github.com/gnames/orgsdb/internal/iodb"
	"github.com/gnames/orgsdb/internal/ioschema"
	"github.com/gnames/orgsdb/internal/iotesting"
	"github.com/gnames/orgsdb/pkg/errcode"
	"github.com/gnames/orgsdb/pkg/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateNotConnected(t *testing.T) {
	mgr := ioschema.NewManager(iodb.NewPgxOperator())
	err := mgr.Create(context.Background())

	var gnErr *gn.Error
	require.ErrorAs(t, err, &gnErr)
	assert.Equal(t, errcode.DBNotConnectedError, gnErr.Code)
}

func TestCreateAndMigrate(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	ctx := context.Background()
	op := iodb.NewPgxOperator()
	require.NoError(t, op.Connect(ctx, iotesting.StartPostgres(t)))
	defer op.Close()

	mgr := ioschema.NewManager(op)
	require.NoError(t, mgr.Create(ctx))

	for _, m := range schema.AllModels() {
		tb := m.(interface{ TableName() string })
		name := tb.TableName()[len(schema.Namespace)+1:]
		exists, err := op.TableExists(ctx, name)
		require.NoError(t, err)
		assert.True(t, exists, name)
	}

	// repeated runs do not fail on existing objects
	require.NoError(t, mgr.Migrate(ctx))
	require.NoError(t, mgr.Create(ctx))

	var n int
	err := op.Pool().QueryRow(ctx, `
		SELECT count(*) FROM pg_indexes
		WHERE schemaname = $1 AND indexname = 'idx_org_abn'`,
		schema.Namespace).Scan(&n)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	_, err = op.Pool().Exec(ctx, `
		INSERT INTO community_orgs.organisations (entity_name, slug)
		VALUES ('Batlow Hall', 'batlow-hall')`)
	require.NoError(t, err)

	_, err = op.Pool().Exec(ctx, `
		INSERT INTO community_orgs.organisations (entity_name, slug)
		VALUES ('Batlow Hall Again', 'batlow-hall')`)
	assert.Error(t, err, "slug is unique")
}
