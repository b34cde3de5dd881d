package ioabn_test

import (
	"os"
	"strings"
	"testing"

	"github.com/gnames/orgsdb/internal/ioabn"
	"github.com/gnames/orgsdb/pkg/xmltree"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func entity(t *testing.T, file string) *xmltree.Node {
	f, err := os.Open(file)
	require.NoError(t, err)
	defer f.Close()

	doc, err := xmltree.ParseNode(f)
	require.NoError(t, err)
	ent, err := ioabn.Entity(doc)
	require.NoError(t, err)
	return ent
}

func TestFormatRecord(t *testing.T) {
	ent := entity(t, "testdata/abn_11111111111.xml")
	rec := ioabn.FormatRecord(ent)

	assert.Len(t, ioabn.Columns, 18)
	assert.Equal(t, ioabn.Columns, rec.Keys())

	tests := []struct {
		col string
		res string
	}{
		{"abn", "11111111111"},
		{"isCurrent", "Y"},
		{"replacedFrom", "0001-01-01"},
		{"entityStatus", "Active"},
		{"entityTypeCode", "OIE"},
		{"entityDescription", "Other Incorporated Entity"},
		{"acnc_status_from", "2012-12-03"},
		{"record_last_updated", "2024-03-01"},
		{"dgr", ""},
		{"gst", `{"effectiveFrom":"2000-07-01","effectiveTo":"0001-01-01"}`},
		{"main_trading_names", `{"organisationName":"BATLOW SHOW"}`},
		{"other_trading_names",
			`[{"organisationName":"BATLOW APPLE SHOW"},` +
				`{"organisationName":"SHOW SOCIETY"}]`},
		{"main_business_physical_address",
			`{"stateCode":"nsw","postcode":"2730"}`},
	}

	for _, tt := range tests {
		t.Run(tt.col, func(t *testing.T) {
			assert.Equal(t, tt.res, rec.Get(tt.col))
		})
	}
}

func TestLocation(t *testing.T) {
	ent := entity(t, "testdata/abn_11111111111.xml")
	st, pc := ioabn.Location(ent)
	assert.Equal(t, "NSW", st)
	assert.Equal(t, "2730", pc)
}

func TestMalformedFieldIsEmpty(t *testing.T) {
	doc, err := xmltree.ParseNode(strings.NewReader(
		`<r><ABN><identifierValue><x>1</x></identifierValue></ABN></r>`))
	require.NoError(t, err)

	rec := ioabn.FormatRecord(doc)
	assert.Equal(t, "", rec.Get("abn"))
	assert.Equal(t, "", rec.Get("entityStatus"))
}

func TestResponseException(t *testing.T) {
	doc, err := xmltree.ParseNode(strings.NewReader(`<Envelope><Body>
<SearchByABNv201408Response><ABRPayloadSearchResults><response>
<exception><exceptionDescription>Search text is not a valid ABN or ACN</exceptionDescription></exception>
</response></ABRPayloadSearchResults></SearchByABNv201408Response>
</Body></Envelope>`))
	require.NoError(t, err)

	_, err = ioabn.Entity(doc)
	assert.ErrorIs(t, err, xmltree.ErrAbsent)
	assert.Equal(t, "Search text is not a valid ABN or ACN",
		ioabn.ResponseException(doc))
}
