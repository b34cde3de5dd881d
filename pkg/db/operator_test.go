package db_test

import (
	"context"
	"testing"

	"github.com/gnames/orgsdb/internal/iodb"
	"github.com/gnames/orgsdb/pkg/db"
	"github.com/stretchr/testify/assert"
)

func TestOperatorNotConnected(t *testing.T) {
	var op db.Operator = iodb.NewPgxOperator()
	assert.Nil(t, op.Pool())

	_, err := op.HasTables(context.Background())
	assert.Error(t, err)
	assert.NoError(t, op.Close())
}
