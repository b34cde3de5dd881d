package ioschema

import (
	"context"
	"log/slog"
	"strings"

	"github.com/gnames/orgsdb/pkg/db"
)

// execAll runs statements one by one and stops at the first failure.
func execAll(
	ctx context.Context,
	op db.Operator,
	stmts []string,
	errFn func(string, error) error,
) error {
	for _, q := range stmts {
		slog.Debug("Executing DDL", "statement", summary(q))
		if _, err := op.Pool().Exec(ctx, q); err != nil {
			return errFn(summary(q), err)
		}
	}
	return nil
}

// summary returns the first line of a statement.
func summary(q string) string {
	q = strings.TrimSpace(q)
	if i := strings.IndexByte(q, '\n'); i > 0 {
		return q[:i]
	}
	return q
}
