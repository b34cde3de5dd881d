package ioabn_test

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gnames/gn"
	"github.com/gnames/orgsdb/internal/ioabn"
	"github.com/gnames/orgsdb/pkg/config"
	"github.com/gnames/orgsdb/pkg/errcode"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var aest = time.FixedZone("AEST", 10*60*60)

var searchStringRe = regexp.MustCompile(`<searchString>(\d+)</searchString>`)

// soapServer answers with files from testdata. ABNs without a file
// get HTTP 500.
type soapServer struct {
	mu      sync.Mutex
	actions []string
	bodies  []string
	// failSearch is the number of failed SearchByCharity responses
	// before a successful one.
	failSearch int
}

func (s *soapServer) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	body, _ := io.ReadAll(r.Body)
	action := r.Header.Get("SOAPAction")

	s.mu.Lock()
	s.actions = append(s.actions, action)
	s.bodies = append(s.bodies, string(body))
	fail := strings.HasSuffix(action, `/SearchByCharity"`) && s.failSearch > 0
	if fail {
		s.failSearch--
	}
	s.mu.Unlock()

	if fail {
		w.WriteHeader(http.StatusServiceUnavailable)
		return
	}

	var file string
	switch {
	case strings.HasSuffix(action, `/SearchByCharity"`):
		file = "charity_search.xml"
	case strings.HasSuffix(action, `/SearchByABNv201408"`):
		m := searchStringRe.FindStringSubmatch(string(body))
		if len(m) == 2 {
			file = "abn_" + m[1] + ".xml"
		}
	}
	data, err := os.ReadFile(filepath.Join("testdata", file))
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/xml; charset=utf-8")
	_, _ = w.Write(data)
}

func testConfig(endpoint string) config.ABNConfig {
	cfg := config.New().ABN
	cfg.GUID = "test-guid"
	cfg.Endpoint = endpoint
	cfg.RetryBase = time.Millisecond
	return cfg
}

func afterMaintenance() time.Time {
	return time.Date(2025, 8, 4, 0, 0, 0, 0, aest)
}

func TestMaintenanceWindow(t *testing.T) {
	tests := []struct {
		name string
		now  time.Time
		fail bool
	}{
		{"inside window", time.Date(2025, 8, 3, 0, 0, 0, 0, aest), true},
		{"window start", time.Date(2025, 8, 2, 21, 0, 0, 0, aest), true},
		{"window end", time.Date(2025, 8, 3, 14, 0, 0, 0, aest), true},
		{"second window", time.Date(2025, 8, 10, 9, 0, 0, 0, aest), true},
		{"after window", time.Date(2025, 8, 4, 0, 0, 0, 0, aest), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			now := tt.now
			_, err := ioabn.New(testConfig("http://localhost"),
				ioabn.OptNow(func() time.Time { return now }))
			if !tt.fail {
				assert.NoError(t, err)
				return
			}
			var gnErr *gn.Error
			require.ErrorAs(t, err, &gnErr)
			assert.Equal(t, errcode.ABNMaintenanceError, gnErr.Code)
			assert.Contains(t, err.Error(), "under maintenance")
		})
	}
}

func TestMissingGUID(t *testing.T) {
	cfg := testConfig("http://localhost")
	cfg.GUID = ""
	_, err := ioabn.New(cfg, ioabn.OptNow(afterMaintenance), noPause)
	var gnErr *gn.Error
	require.ErrorAs(t, err, &gnErr)
	assert.Equal(t, errcode.MissingCredentialError, gnErr.Code)
}

var noPause = ioabn.OptSleep(func(context.Context, time.Duration) error {
	return nil
})

func TestSearchCharities(t *testing.T) {
	srv := &soapServer{}
	ts := httptest.NewServer(srv)
	defer ts.Close()

	c, err := ioabn.New(testConfig(ts.URL), ioabn.OptNow(afterMaintenance), noPause)
	require.NoError(t, err)

	res, err := c.SearchCharities(context.Background(), "2730", "NSW", 0)
	require.NoError(t, err)

	// 22222222222 is in another postcode, 33333333333 lookup fails
	require.Len(t, res, 1)
	rec := res[0]
	assert.Equal(t, ioabn.Columns, rec.Keys())
	assert.Equal(t, "11111111111", rec.Get("abn"))
	assert.Equal(t, "Registered", rec.Get("acnc_status"))

	// 1 search, 2 good lookups, 3 attempts for the failing one
	assert.Len(t, srv.actions, 6)
	assert.Equal(t,
		`"http://abr.business.gov.au/ABRXMLSearch/SearchByCharity"`,
		srv.actions[0])
	assert.Contains(t, srv.bodies[0], "<postcode>2730</postcode>")
	assert.Contains(t, srv.bodies[0], "<state></state>")
	assert.Contains(t, srv.bodies[0], "<authenticationGuid>test-guid</authenticationGuid>")
	assert.Contains(t, srv.bodies[1], "<includeHistoricalDetails>N</includeHistoricalDetails>")
}

func TestSearchCharitiesMaxResults(t *testing.T) {
	srv := &soapServer{}
	ts := httptest.NewServer(srv)
	defer ts.Close()

	c, err := ioabn.New(testConfig(ts.URL), ioabn.OptNow(afterMaintenance), noPause)
	require.NoError(t, err)

	res, err := c.SearchCharities(context.Background(), "2720", "nsw", 2)
	require.NoError(t, err)
	require.Len(t, res, 1)
	assert.Equal(t, "22222222222", res[0].Get("abn"))
	assert.Len(t, srv.actions, 3)
}

func TestSearchRetries(t *testing.T) {
	t.Run("recovers", func(t *testing.T) {
		srv := &soapServer{failSearch: 2}
		ts := httptest.NewServer(srv)
		defer ts.Close()

		c, err := ioabn.New(testConfig(ts.URL), ioabn.OptNow(afterMaintenance), noPause)
		require.NoError(t, err)
		res, err := c.SearchCharities(context.Background(), "2730", "NSW", 1)
		require.NoError(t, err)
		assert.Len(t, res, 1)
	})

	t.Run("exhausted", func(t *testing.T) {
		srv := &soapServer{failSearch: 3}
		ts := httptest.NewServer(srv)
		defer ts.Close()

		c, err := ioabn.New(testConfig(ts.URL), ioabn.OptNow(afterMaintenance), noPause)
		require.NoError(t, err)
		_, err = c.SearchCharities(context.Background(), "2730", "NSW", 0)
		var gnErr *gn.Error
		require.ErrorAs(t, err, &gnErr)
		assert.Equal(t, errcode.ABNSearchError, gnErr.Code)
		assert.Len(t, srv.actions, 3)
	})
}

func TestLookupPause(t *testing.T) {
	t.Run("pause after every lookup", func(t *testing.T) {
		ts := httptest.NewServer(&soapServer{})
		defer ts.Close()

		var pauses []time.Duration
		pause := ioabn.OptSleep(func(_ context.Context, d time.Duration) error {
			pauses = append(pauses, d)
			return nil
		})
		c, err := ioabn.New(testConfig(ts.URL),
			ioabn.OptNow(afterMaintenance), pause)
		require.NoError(t, err)

		_, err = c.SearchCharities(context.Background(), "2730", "NSW", 0)
		require.NoError(t, err)
		assert.Equal(t, []time.Duration{
			ioabn.LookupDelay, ioabn.LookupDelay, ioabn.LookupDelay,
		}, pauses, "failed lookups pause too")
		assert.Equal(t, 400*time.Millisecond, ioabn.LookupDelay)
	})

	t.Run("cancelled pause stops lookups", func(t *testing.T) {
		srv := &soapServer{}
		ts := httptest.NewServer(srv)
		defer ts.Close()

		pause := ioabn.OptSleep(func(context.Context, time.Duration) error {
			return context.Canceled
		})
		c, err := ioabn.New(testConfig(ts.URL),
			ioabn.OptNow(afterMaintenance), pause)
		require.NoError(t, err)

		res, err := c.SearchCharities(context.Background(), "2730", "NSW", 0)
		assert.ErrorIs(t, err, context.Canceled)
		assert.Empty(t, res)
		assert.Len(t, srv.actions, 2, "one search and one lookup")
	})
}
