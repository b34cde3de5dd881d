// Package ioabn is a client of the ABN Lookup SOAP web service.
//
// It finds charities registered at a postcode, looks up details of every
// ABN and keeps only those whose main business address is in the
// requested state and postcode.
package ioabn

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/gnames/orgsdb/pkg/config"
	"github.com/gnames/orgsdb/pkg/harvest"
	"github.com/gnames/orgsdb/pkg/retry"
	"github.com/gnames/orgsdb/pkg/xmltree"
	"github.com/go-resty/resty/v2"
)

// LookupDelay is the pause after every ABN detail lookup.
const LookupDelay = 400 * time.Millisecond

type ioabn struct {
	cfg    config.ABNConfig
	http   *resty.Client
	now    func() time.Time
	sleep  func(context.Context, time.Duration) error
	policy retry.Policy
}

// Option modifies the client during construction.
type Option func(*ioabn)

// OptNow sets the clock used for the maintenance check.
func OptNow(fn func() time.Time) Option {
	return func(c *ioabn) {
		c.now = fn
	}
}

// OptSleep replaces the pause function used between lookups.
func OptSleep(fn func(context.Context, time.Duration) error) Option {
	return func(c *ioabn) {
		c.sleep = fn
	}
}

// OptHTTPClient sets the HTTP client.
func OptHTTPClient(hc *resty.Client) Option {
	return func(c *ioabn) {
		c.http = hc
	}
}

// New creates an ABN Lookup client. It fails if the authentication GUID
// is missing or if the service is inside one of its maintenance windows.
func New(cfg config.ABNConfig, opts ...Option) (harvest.ABNSearcher, error) {
	res := &ioabn{
		cfg:   cfg,
		now:   time.Now,
		sleep: retry.Sleep,
		policy: retry.Policy{
			MaxAttempts: cfg.MaxAttempts,
			Base:        cfg.RetryBase,
		},
	}
	for _, opt := range opts {
		opt(res)
	}

	if cfg.GUID == "" {
		return nil, MissingGUIDError()
	}

	now := res.now()
	for _, w := range cfg.MaintenanceWindows {
		if w.Contains(now) {
			return nil, MaintenanceError(w)
		}
	}

	if res.http == nil {
		res.http = resty.New().SetTimeout(60 * time.Second)
	}
	return res, nil
}

// SearchCharities returns formatted records of charities whose main
// business address is at the postcode in the state.
func (c *ioabn) SearchCharities(
	ctx context.Context,
	postcode, state string,
	maxResults int,
) ([]harvest.Record, error) {
	slog.Info("Searching ABN register for charities", "postcode", postcode)

	abns, err := c.searchByCharity(ctx, postcode, maxResults)
	if err != nil {
		return nil, err
	}

	var res []harvest.Record
	for _, abn := range abns {
		ent, err := c.lookup(ctx, abn)
		if serr := c.sleep(ctx, LookupDelay); serr != nil {
			return res, serr
		}
		if err != nil {
			if ctx.Err() != nil {
				return res, ctx.Err()
			}
			slog.Error("Cannot look up ABN, skipping", "abn", abn, "error", err)
			continue
		}

		st, pc := Location(ent)
		if !strings.EqualFold(st, state) || pc != postcode {
			slog.Debug("ABN is outside of the search area",
				"abn", abn, "state", st, "postcode", pc)
			continue
		}
		res = append(res, FormatRecord(ent))
	}

	slog.Info("ABN register search finished",
		"postcode", postcode,
		"candidates", humanize.Comma(int64(len(abns))),
		"charities", humanize.Comma(int64(len(res))),
	)
	return res, nil
}

func (c *ioabn) searchByCharity(
	ctx context.Context,
	postcode string,
	maxResults int,
) ([]string, error) {
	req := searchByCharity{
		Postcode: postcode,
		GUID:     c.cfg.GUID,
	}
	p := c.policy
	p.Name = OpSearchByCharity
	body, err := retry.Do(ctx, p, func(ctx context.Context) ([]byte, error) {
		return c.call(ctx, OpSearchByCharity, req)
	})
	if err != nil {
		return nil, ABNSearchError(postcode, err)
	}

	abns, err := xmltree.FindText(bytes.NewReader(body), "abn")
	if err != nil {
		return nil, ABNParseError(OpSearchByCharity, err)
	}
	if maxResults > 0 && len(abns) > maxResults {
		abns = abns[:maxResults]
	}
	return abns, nil
}

func (c *ioabn) lookup(ctx context.Context, abn string) (*xmltree.Node, error) {
	req := searchByABN{
		SearchString:             abn,
		IncludeHistoricalDetails: "N",
		GUID:                     c.cfg.GUID,
	}
	p := c.policy
	p.Name = OpSearchByABN
	body, err := retry.Do(ctx, p, func(ctx context.Context) ([]byte, error) {
		return c.call(ctx, OpSearchByABN, req)
	})
	if err != nil {
		return nil, ABNLookupError(abn, err)
	}

	doc, err := xmltree.ParseNode(bytes.NewReader(body))
	if err != nil {
		return nil, ABNParseError(OpSearchByABN, err)
	}

	ent, err := Entity(doc)
	if err != nil {
		if desc := ResponseException(doc); desc != "" {
			err = fmt.Errorf("%w: %s", err, desc)
		}
		return nil, ABNParseError(OpSearchByABN, err)
	}
	return ent, nil
}

// errStatus is returned for non-successful HTTP responses.
var errStatus = errors.New("unexpected HTTP status")

func (c *ioabn) call(ctx context.Context, op string, req any) ([]byte, error) {
	payload, err := newEnvelope(req)
	if err != nil {
		return nil, err
	}

	res, err := c.http.R().
		SetContext(ctx).
		SetHeader("Content-Type", "text/xml; charset=utf-8").
		SetHeader("SOAPAction", soapAction(op)).
		SetBody(payload).
		Post(c.cfg.Endpoint)
	if err != nil {
		return nil, err
	}
	if res.IsError() {
		return nil, fmt.Errorf("%w: %s", errStatus, res.Status())
	}
	return res.Body(), nil
}
