// Package ioharvest runs harvests of organisation records. For every
// search target it queries the associations register and the ACNC
// register, then queries the ABN register once per postcode.
package ioharvest

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/cheggaaa/pb/v3"
	"github.com/dustin/go-humanize"
	"github.com/gnames/gn"
	"github.com/gnames/gnfmt"
	"github.com/gnames/orgsdb/pkg/config"
	"github.com/gnames/orgsdb/pkg/harvest"
	"github.com/gnames/orgsdb/pkg/lifecycle"
	"github.com/gnames/orgsdb/pkg/target"
)

type ioharvest struct {
	cfg     *config.Config
	assoc   harvest.AssocSearcher
	charity harvest.CharitySearcher
	abn     harvest.ABNFactory
	out     harvest.Writer
	res     *harvest.Results
}

// New creates a Harvester. Clients of sources excluded by
// cfg.Harvest.Sources may be nil.
func New(
	cfg *config.Config,
	assoc harvest.AssocSearcher,
	charity harvest.CharitySearcher,
	abn harvest.ABNFactory,
	out harvest.Writer,
) lifecycle.Harvester {
	return &ioharvest{
		cfg:     cfg,
		assoc:   assoc,
		charity: charity,
		abn:     abn,
		out:     out,
	}
}

// Harvest runs the selected sources for all targets and writes the
// artifacts. A cancelled context stops the run between network calls,
// records gathered up to that point are still written.
func (h *ioharvest) Harvest(
	ctx context.Context,
	targets []target.SearchTarget,
) (*harvest.Results, error) {
	start := time.Now()
	h.res = &harvest.Results{}
	slog.Info("Starting harvest",
		"targets", len(targets),
		"sources", h.cfg.Harvest.Sources,
	)

	var runErr error
	if err := h.searchTargets(ctx, targets); err != nil {
		runErr = err
	}

	if runErr == nil && h.cfg.HasSource(harvest.IDABN) {
		if err := h.searchPostcodes(ctx, targets); err != nil {
			runErr = err
		}
	}

	writeErr := h.write()
	h.summary(time.Since(start))

	return h.res, errors.Join(runErr, writeErr)
}

func (h *ioharvest) searchTargets(
	ctx context.Context,
	targets []target.SearchTarget,
) error {
	useAssoc := h.cfg.HasSource(harvest.IDAssoc) && h.assoc != nil
	useACNC := h.cfg.HasSource(harvest.IDACNC) && h.charity != nil
	if !useAssoc && !useACNC {
		return nil
	}

	bar := pb.Full.Start(len(targets))
	bar.Set("prefix", "Harvesting targets: ")
	bar.Set(pb.CleanOnFinish, true)
	defer bar.Finish()

	for _, t := range targets {
		if err := ctx.Err(); err != nil {
			return CancelledError(err)
		}

		if useAssoc {
			slog.Info("Scraping associations register", "target", t.String())
			f := harvest.AssocFilters{Suburb: t.Suburb, Postcode: t.Postcode}
			recs := h.assoc.SearchAll(ctx, f, h.cfg.Harvest.ScraperDelay)
			if err := ctx.Err(); err != nil {
				h.res.Assoc = append(h.res.Assoc, recs...)
				return CancelledError(err)
			}
			h.collect(&h.res.Assoc, recs, harvest.NewMissing(t, harvest.SourceAssoc))
		}

		if useACNC {
			slog.Info("Querying ACNC charity register", "target", t.String())
			recs := h.charity.Search(ctx, t.Suburb, t.State, t.Postcode)
			if err := ctx.Err(); err != nil {
				h.res.Charity = append(h.res.Charity, recs...)
				return CancelledError(err)
			}
			h.collect(&h.res.Charity, recs, harvest.NewMissing(t, harvest.SourceACNC))
		}
		bar.Increment()
	}
	return nil
}

// searchPostcodes queries the ABN register once per distinct postcode.
// The first state seen for a postcode is used.
func (h *ioharvest) searchPostcodes(
	ctx context.Context,
	targets []target.SearchTarget,
) error {
	pcs := Postcodes(targets)
	if len(pcs) == 0 || h.abn == nil {
		return nil
	}

	client, err := h.abn()
	if err != nil {
		slog.Error("ABN register is unavailable", "error", err)
		for _, pc := range pcs {
			h.missing(pc)
		}
		return ABNUnavailableError(err)
	}

	for _, pc := range pcs {
		if err = ctx.Err(); err != nil {
			return CancelledError(err)
		}
		slog.Info("Querying ABN register",
			"postcode", pc.Postcode,
			"state", pc.State,
		)
		recs, err := client.SearchCharities(
			ctx, pc.Postcode, pc.State, h.cfg.ABN.MaxResults,
		)
		if ctxErr := ctx.Err(); ctxErr != nil {
			h.res.ABN = append(h.res.ABN, recs...)
			return CancelledError(ctxErr)
		}
		if err != nil {
			slog.Error("ABN register search failed",
				"postcode", pc.Postcode,
				"state", pc.State,
				"error", err,
			)
		}
		h.collect(&h.res.ABN, recs, pc)
	}
	return nil
}

// Postcodes returns missing-entry templates for the distinct postcodes
// of targets, in the order of first appearance. Suburbs are empty.
func Postcodes(targets []target.SearchTarget) []harvest.MissingEntry {
	var res []harvest.MissingEntry
	seen := make(map[string]struct{})
	for _, t := range targets {
		if _, ok := seen[t.Postcode]; ok {
			continue
		}
		seen[t.Postcode] = struct{}{}
		res = append(res, harvest.MissingEntry{
			State:    t.State,
			Postcode: t.Postcode,
			Source:   harvest.SourceABN,
		})
	}
	return res
}

func (h *ioharvest) collect(
	dst *[]harvest.Record,
	recs []harvest.Record,
	m harvest.MissingEntry,
) {
	if len(recs) > 0 {
		*dst = append(*dst, recs...)
		return
	}
	h.missing(m)
}

func (h *ioharvest) missing(m harvest.MissingEntry) {
	h.res.Missing = append(h.res.Missing, m)
	if err := h.out.LogMissing(m); err != nil {
		slog.Error("Cannot log missing result", "error", err)
	}
}

// write saves every artifact independently, a failed write does not
// prevent the others.
func (h *ioharvest) write() error {
	lists := []struct {
		name string
		recs []harvest.Record
	}{
		{harvest.FileAssoc, h.res.Assoc},
		{harvest.FileACNC, h.res.Charity},
		{harvest.FileABN, h.res.ABN},
	}

	var errs []error
	for _, l := range lists {
		path, err := h.out.Records(l.name, l.recs)
		if err != nil {
			slog.Error("Cannot write results", "name", l.name, "error", err)
			errs = append(errs, err)
			continue
		}
		if path != "" {
			gn.Info("Results written to <em>%s</em>", path)
		}
	}

	path, err := h.out.Missing(h.res.Missing)
	if err != nil {
		slog.Error("Cannot write missing results summary", "error", err)
		errs = append(errs, err)
	} else if path != "" {
		gn.Info("Missing results summary written to <em>%s</em>", path)
	}
	return errors.Join(errs...)
}

func (h *ioharvest) summary(dur time.Duration) {
	count := func(recs []harvest.Record) string {
		return humanize.Comma(int64(len(recs)))
	}
	slog.Info("Harvest complete",
		"associations", len(h.res.Assoc),
		"charities", len(h.res.Charity),
		"abn", len(h.res.ABN),
		"missing", len(h.res.Missing),
		"duration", gnfmt.TimeString(dur.Seconds()),
	)
	msg := fmt.Sprintf(`Harvest complete
Associations: %s, ACNC charities: %s, ABN entities: %s, missing: %d.
		Elapsed time: <em>%s</em>
`,
		count(h.res.Assoc),
		count(h.res.Charity),
		count(h.res.ABN),
		len(h.res.Missing),
		gnfmt.TimeString(dur.Seconds()),
	)
	gn.Info(msg)
}
