// Package ioetl loads organisation records into the community_orgs
// schema. Records are extracted from harvest artifacts, transformed by
// the field transform registry and upserted by slug in one transaction.
package ioetl

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"strings"

	"github.com/gnames/orgsdb/pkg/config"
	"github.com/gnames/orgsdb/pkg/db"
	"github.com/gnames/orgsdb/pkg/lifecycle"
	"github.com/gnames/orgsdb/pkg/transform"
	"github.com/jackc/pgx/v5"
)

type loader struct {
	operator db.Operator
	table    transform.Table
}

// New creates a Loader of the organisations table.
func New(op db.Operator) lifecycle.Loader {
	return &loader{
		operator: op,
		table:    transform.Mappings()[transform.Organisations],
	}
}

// Rows extracts and transforms records of the given source into
// organisation rows.
func Rows(
	src string,
	recs []transform.Source,
	editor string,
) ([]transform.Row, error) {
	srcs, err := Extract(src, recs, editor)
	if err != nil {
		return nil, err
	}
	return transform.Mappings().TransformAll(transform.Organisations, srcs)
}

// Load upserts rows by slug. Existing rows get only non-nil values,
// new rows get all non-nil values and field defaults. Any failure
// rolls back the whole batch.
func (l *loader) Load(
	ctx context.Context,
	rows []transform.Row,
) (lifecycle.LoadStats, error) {
	var res lifecycle.LoadStats
	if err := CheckSlugs(rows); err != nil {
		return res, err
	}

	pool := l.operator.Pool()
	if pool == nil {
		return res, TransactionError(fmt.Errorf("not connected to database"))
	}

	tx, err := pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return res, TransactionError(err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	for _, row := range rows {
		slug := slugOf(row)
		updated, err := l.upsert(ctx, tx, row)
		if err != nil {
			slog.Error("Error loading data", "slug", slug, "error", err)
			return lifecycle.LoadStats{}, UpsertError(slug, err)
		}
		if updated {
			slog.Info("Updating existing organisation", "slug", slug)
			res.Updated++
		} else {
			slog.Info("Adding new organisation", "slug", slug)
			res.Inserted++
		}
	}

	if err = tx.Commit(ctx); err != nil {
		slog.Error("Error loading data", "error", err)
		return lifecycle.LoadStats{}, TransactionError(err)
	}
	slog.Info("Data loaded successfully",
		"inserted", res.Inserted, "updated", res.Updated)
	return res, nil
}

func (l *loader) upsert(
	ctx context.Context,
	tx pgx.Tx,
	row transform.Row,
) (bool, error) {
	q := fmt.Sprintf("SELECT org_id FROM %s WHERE slug = $1", tableName())
	var orgID string
	err := tx.QueryRow(ctx, q, slugOf(row)).Scan(&orgID)
	switch {
	case errors.Is(err, pgx.ErrNoRows):
		return false, l.insert(ctx, tx, row)
	case err != nil:
		return false, err
	}
	return true, l.update(ctx, tx, orgID, row)
}

func (l *loader) insert(ctx context.Context, tx pgx.Tx, row transform.Row) error {
	cols, vals := l.present(l.table.WithDefaults(row))
	q := fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)",
		tableName(), identList(cols), placeholders(1, len(cols)))
	_, err := tx.Exec(ctx, q, vals...)
	return err
}

// update never writes NULL over stored values.
func (l *loader) update(
	ctx context.Context,
	tx pgx.Tx,
	orgID string,
	row transform.Row,
) error {
	cols, vals := l.present(row)
	sets := make([]string, 0, len(cols)+1)
	for i, c := range cols {
		sets = append(sets, fmt.Sprintf("%s = $%d", pgx.Identifier{c}.Sanitize(), i+1))
	}
	sets = append(sets, "last_edited_at = now()")
	vals = append(vals, orgID)
	q := fmt.Sprintf("UPDATE %s SET %s WHERE org_id = $%d",
		tableName(), strings.Join(sets, ", "), len(vals))
	_, err := tx.Exec(ctx, q, vals...)
	return err
}

// present returns sorted columns with non-nil values, excluding
// columns filled by the database.
func (l *loader) present(row transform.Row) ([]string, []any) {
	var cols []string
	for k, v := range row {
		if v == nil || l.table.IsDefault(k) {
			continue
		}
		cols = append(cols, k)
	}
	slices.Sort(cols)
	vals := make([]any, len(cols))
	for i, c := range cols {
		vals[i] = row[c]
	}
	return cols, vals
}

func slugOf(row transform.Row) string {
	s, _ := row["slug"].(string)
	return s
}

func tableName() string {
	return pgx.Identifier{config.SchemaName, transform.Organisations}.Sanitize()
}

func identList(cols []string) string {
	res := make([]string, len(cols))
	for i, c := range cols {
		res[i] = pgx.Identifier{c}.Sanitize()
	}
	return strings.Join(res, ", ")
}

func placeholders(from, n int) string {
	res := make([]string, n)
	for i := range n {
		res[i] = fmt.Sprintf("$%d", from+i)
	}
	return strings.Join(res, ", ")
}
