// Package ioacnc queries the ACNC charity register published as a CKAN
// datastore resource on data.gov.au.
package ioacnc

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"strconv"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/gnames/orgsdb/pkg/config"
	"github.com/gnames/orgsdb/pkg/harvest"
	"github.com/go-resty/resty/v2"
)

// IDField is the register column used to deduplicate records.
const IDField = "ABN"

type ioacnc struct {
	cfg  config.ACNCConfig
	http *resty.Client
}

// Option modifies the client during construction.
type Option func(*ioacnc)

// OptHTTPClient sets the HTTP client.
func OptHTTPClient(hc *resty.Client) Option {
	return func(c *ioacnc) {
		c.http = hc
	}
}

// New creates a charity register client.
func New(cfg config.ACNCConfig, opts ...Option) harvest.CharitySearcher {
	res := &ioacnc{cfg: cfg}
	for _, opt := range opts {
		opt(res)
	}
	if res.http == nil {
		res.http = resty.New().SetTimeout(60 * time.Second)
	}
	if res.cfg.PageSize <= 0 {
		res.cfg.PageSize = 1000
	}
	return res
}

// Search returns charities matching any spelling of the filters.
// Records are deduplicated by ABN, the first one wins. Records without
// ABN are dropped. A failed query is logged and its combination skipped.
func (c *ioacnc) Search(
	ctx context.Context,
	town, state, postcode string,
) []harvest.Record {
	combos := Variants(town, state, postcode)
	if limit := c.cfg.MaxCombinations; limit > 0 && len(combos) > limit {
		slog.Warn("Too many filter combinations, skipping the rest",
			"combinations", len(combos),
			"limit", limit,
		)
		combos = combos[:limit]
	}

	var res []harvest.Record
	seen := make(map[string]struct{})
	for _, f := range combos {
		if ctx.Err() != nil {
			break
		}
		recs, err := c.searchCombination(ctx, f)
		if err != nil {
			slog.Error("Charity register query failed, skipping filters",
				"filters", f.Map(),
				"error", err,
			)
		}
		for _, r := range recs {
			id := r.Get(IDField)
			if id == "" {
				continue
			}
			if _, ok := seen[id]; ok {
				continue
			}
			seen[id] = struct{}{}
			res = append(res, r)
		}
	}

	slog.Info("Charity register search finished",
		"town", town,
		"state", state,
		"postcode", postcode,
		"charities", humanize.Comma(int64(len(res))),
	)
	return res
}

// searchCombination pages through one filter combination. Records read
// before an error are returned together with the error.
func (c *ioacnc) searchCombination(
	ctx context.Context,
	f Filters,
) ([]harvest.Record, error) {
	var res []harvest.Record
	offset := 0
	for {
		page, err := c.page(ctx, f, offset)
		if err != nil {
			return res, CharityQueryError(f.Map(), offset, err)
		}
		res = append(res, page...)
		if len(page) < c.cfg.PageSize {
			return res, nil
		}
		offset += c.cfg.PageSize
	}
}

type searchResponse struct {
	Success bool `json:"success"`
	Error   *struct {
		Message string `json:"message"`
		Type    string `json:"__type"`
	} `json:"error"`
	Result struct {
		Fields []struct {
			ID string `json:"id"`
		} `json:"fields"`
		Records []map[string]any `json:"records"`
		Total   int              `json:"total"`
	} `json:"result"`
}

var errCKAN = errors.New("datastore_search failed")

func (c *ioacnc) page(
	ctx context.Context,
	f Filters,
	offset int,
) ([]harvest.Record, error) {
	filters, err := json.Marshal(f.Map())
	if err != nil {
		return nil, err
	}

	res, err := c.http.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"resource_id": c.cfg.ResourceID,
			"limit":       strconv.Itoa(c.cfg.PageSize),
			"offset":      strconv.Itoa(offset),
			"filters":     string(filters),
		}).
		Get(c.cfg.Endpoint + "/datastore_search")
	if err != nil {
		return nil, err
	}
	if res.IsError() {
		return nil, fmt.Errorf("%w: %s", errCKAN, res.Status())
	}

	var resp searchResponse
	dec := json.NewDecoder(bytes.NewReader(res.Body()))
	dec.UseNumber()
	if err = dec.Decode(&resp); err != nil {
		return nil, err
	}
	if !resp.Success {
		msg := "unknown error"
		if resp.Error != nil {
			msg = resp.Error.Message
		}
		return nil, fmt.Errorf("%w: %s", errCKAN, msg)
	}

	cols := make([]string, 0, len(resp.Result.Fields))
	for _, fld := range resp.Result.Fields {
		cols = append(cols, fld.ID)
	}

	recs := make([]harvest.Record, 0, len(resp.Result.Records))
	for _, raw := range resp.Result.Records {
		recs = append(recs, toRecord(cols, raw))
	}
	return recs, nil
}

// toRecord keeps the column order of the datastore. Columns missing from
// the fields list are appended in alphabetical order.
func toRecord(cols []string, raw map[string]any) harvest.Record {
	res := harvest.NewRecord()
	for _, col := range cols {
		if v, ok := raw[col]; ok {
			res.Set(col, toText(v))
		}
	}
	var extra []string
	for k := range raw {
		if !res.Has(k) {
			extra = append(extra, k)
		}
	}
	slices.Sort(extra)
	for _, k := range extra {
		res.Set(k, toText(raw[k]))
	}
	return res
}

func toText(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case json.Number:
		return t.String()
	case bool:
		return strconv.FormatBool(t)
	default:
		bs, err := json.Marshal(t)
		if err != nil {
			return fmt.Sprint(t)
		}
		return string(bs)
	}
}
