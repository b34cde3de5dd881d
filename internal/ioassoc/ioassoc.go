// Package ioassoc scrapes the NSW register of incorporated associations.
// The register is an ASP.NET WebForms application, every search and
// every page change is a form postback carrying the view state.
package ioassoc

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/cookiejar"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/dustin/go-humanize"
	"github.com/gnames/orgsdb/pkg/config"
	"github.com/gnames/orgsdb/pkg/harvest"
	"github.com/gnames/orgsdb/pkg/retry"
	"github.com/go-resty/resty/v2"
	"golang.org/x/net/publicsuffix"
)

var headers = map[string]string{
	"User-Agent": "Mozilla/5.0 (Windows NT 10.0; Win64; x64) " +
		"AppleWebKit/537.36 (KHTML, like Gecko) " +
		"Chrome/91.0.4472.124 Safari/537.36",
	"Accept": "text/html,application/xhtml+xml," +
		"application/xml;q=0.9,image/webp,*/*;q=0.8",
	"Accept-Language":           "en-US,en;q=0.5",
	"Upgrade-Insecure-Requests": "1",
}

type ioassoc struct {
	cfg  config.AssocConfig
	http *resty.Client
}

// Option modifies the scraper during construction.
type Option func(*ioassoc)

// OptHTTPClient sets the HTTP client. The client is expected to keep
// cookies between requests.
func OptHTTPClient(hc *resty.Client) Option {
	return func(a *ioassoc) {
		a.http = hc
	}
}

// New creates a scraper of the associations register.
func New(cfg config.AssocConfig, opts ...Option) (harvest.AssocSearcher, error) {
	res := &ioassoc{cfg: cfg}
	for _, opt := range opts {
		opt(res)
	}
	if res.http == nil {
		hc, err := NewHTTPClient()
		if err != nil {
			return nil, err
		}
		res.http = hc
	}
	return res, nil
}

// NewHTTPClient creates a resty client with a cookie jar and the headers
// of a desktop browser.
func NewHTTPClient() (*resty.Client, error) {
	jar, err := cookiejar.New(
		&cookiejar.Options{PublicSuffixList: publicsuffix.List},
	)
	if err != nil {
		return nil, err
	}
	res := resty.New().
		SetCookieJar(jar).
		SetHeaders(headers).
		SetTimeout(60 * time.Second)
	return res, nil
}

// SearchAll runs a search and follows the result pages until the last
// one. Failures are logged, records gathered before a failure are
// dropped together with the rest of the search.
func (a *ioassoc) SearchAll(
	ctx context.Context,
	f harvest.AssocFilters,
	delay time.Duration,
) []harvest.Record {
	res, pages, err := a.searchAll(ctx, f, delay)
	if err != nil {
		slog.Error("Associations search failed",
			"suburb", f.Suburb,
			"postcode", f.Postcode,
			"error", err,
		)
		return nil
	}
	slog.Info("Associations search finished",
		"suburb", f.Suburb,
		"postcode", f.Postcode,
		"pages", pages,
		"associations", humanize.Comma(int64(len(res))),
	)
	return res
}

func (a *ioassoc) searchAll(
	ctx context.Context,
	f harvest.AssocFilters,
	delay time.Duration,
) ([]harvest.Record, int, error) {
	doc, err := a.get(ctx, a.cfg.SearchURL)
	if err != nil {
		return nil, 0, err
	}
	fields, ok := formFields(doc)
	if !ok {
		return nil, 0, FormNotFoundError(a.cfg.SearchURL)
	}
	applyFilters(fields, f)
	fields[eventTarget] = searchButton
	fields[eventArgument] = ""

	doc, err = a.post(ctx, fields)
	if err != nil {
		return nil, 0, err
	}

	var res []harvest.Record
	var page int
	for {
		page++
		recs := parseResults(doc)
		if len(recs) == 0 {
			slog.Debug("No results on page, stopping", "page", page)
			break
		}
		res = append(res, recs...)
		slog.Debug("Fetched associations page",
			"page", page,
			"records", len(recs),
			"total", len(res),
		)

		target := nextTarget(doc)
		if target == "" {
			break
		}
		if fields, ok = formFields(doc); !ok {
			return nil, page, FormNotFoundError(a.cfg.SearchURL)
		}
		fields[eventTarget] = target
		fields[eventArgument] = ""

		if err = retry.Sleep(ctx, delay); err != nil {
			return nil, page, err
		}
		if doc, err = a.post(ctx, fields); err != nil {
			return nil, page, err
		}
	}
	return res, page, nil
}

// FetchOrgDetails reads the details page of an organisation. Failed
// requests and pages without a details card are logged and give no
// details.
func (a *ioassoc) FetchOrgDetails(
	ctx context.Context,
	orgID string,
) (harvest.Record, bool) {
	url := fmt.Sprintf(a.cfg.DetailsURL, orgID)
	doc, err := a.get(ctx, url)
	if err != nil {
		slog.Error("Cannot fetch organisation details",
			"organisation_id", orgID, "error", err)
		return harvest.Record{}, false
	}
	res, ok := parseDetails(doc)
	if !ok {
		slog.Warn("Organisation page has no details card",
			"organisation_id", orgID, "url", url)
		return harvest.Record{}, false
	}
	return res, true
}

func (a *ioassoc) get(ctx context.Context, url string) (*goquery.Document, error) {
	res, err := a.http.R().
		SetContext(ctx).
		Get(url)
	return document(url, res, err)
}

func (a *ioassoc) post(
	ctx context.Context,
	fields map[string]string,
) (*goquery.Document, error) {
	res, err := a.http.R().
		SetContext(ctx).
		SetFormData(fields).
		Post(a.cfg.SearchURL)
	return document(a.cfg.SearchURL, res, err)
}

func document(url string, res *resty.Response, err error) (*goquery.Document, error) {
	if err != nil {
		return nil, FetchError(url, err)
	}
	if res.StatusCode() != http.StatusOK {
		return nil, FetchError(url, fmt.Errorf("status %s", res.Status()))
	}
	doc, err := goquery.NewDocumentFromReader(bytes.NewBuffer(res.Body()))
	if err != nil {
		return nil, FetchError(url, err)
	}
	return doc, nil
}
