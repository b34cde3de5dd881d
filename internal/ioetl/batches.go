package ioetl

import (
	"context"
	"log/slog"
	"slices"

	"github.com/gnames/orgsdb/pkg/lifecycle"
	"github.com/gnames/orgsdb/pkg/transform"
)

// CheckSlugs returns MissingSlugError for the first row without a slug.
func CheckSlugs(rows []transform.Row) error {
	for i, row := range rows {
		if slugOf(row) == "" {
			return MissingSlugError(i)
		}
	}
	return nil
}

// LoadBatches checks slugs of all rows and hands them to the loader.
// With size < 1 all rows go to one Load call, so a failure leaves the
// database untouched. A positive size commits every size rows; after a
// failure the batches committed before it stay in the database.
func LoadBatches(
	ctx context.Context,
	l lifecycle.Loader,
	rows []transform.Row,
	size int,
) (lifecycle.LoadStats, error) {
	var res lifecycle.LoadStats
	if err := CheckSlugs(rows); err != nil {
		return res, err
	}
	if size < 1 || size >= len(rows) {
		return l.Load(ctx, rows)
	}

	for batch := range slices.Chunk(rows, size) {
		st, err := l.Load(ctx, batch)
		if err != nil {
			if res.Inserted+res.Updated > 0 {
				slog.Warn("Earlier batches stay committed",
					"inserted", res.Inserted, "updated", res.Updated)
			}
			return res, err
		}
		res.Inserted += st.Inserted
		res.Updated += st.Updated
	}
	return res, nil
}
