package ioabn

import (
	"encoding/json"
	"errors"
	"log/slog"
	"strings"

	"github.com/gnames/orgsdb/pkg/harvest"
	"github.com/gnames/orgsdb/pkg/xmltree"
)

// entityPath leads from the SOAP envelope to the business entity.
var entityPath = []string{
	"Body",
	"SearchByABNv201408Response",
	"ABRPayloadSearchResults",
	"response",
	"businessEntity201408",
}

// Columns are the fields of a formatted ABN record, in output order.
var Columns = []string{
	"abn",
	"isCurrent",
	"replacedFrom",
	"entityStatus",
	"effectiveFrom",
	"effectiveTo",
	"entityTypeCode",
	"entityDescription",
	"acnc_status",
	"acnc_status_from",
	"acnc_status_to",
	"record_last_updated",
	"gst",
	"dgr",
	"main_trading_names",
	"other_trading_names",
	"main_business_physical_address",
	"tax_concession_endorsements",
}

// JSONColumns are the fields that keep nested structures as JSON text.
var JSONColumns = Columns[12:]

type textField struct {
	col  string
	path []string
}

var textFields = []textField{
	{"abn", []string{"ABN", "identifierValue"}},
	{"isCurrent", []string{"ABN", "isCurrentIndicator"}},
	{"replacedFrom", []string{"ABN", "replacedFrom"}},
	{"entityStatus", []string{"entityStatus", "entityStatusCode"}},
	{"effectiveFrom", []string{"entityStatus", "effectiveFrom"}},
	{"effectiveTo", []string{"entityStatus", "effectiveTo"}},
	{"entityTypeCode", []string{"entityType", "entityTypeCode"}},
	{"entityDescription", []string{"entityType", "entityDescription"}},
	{"acnc_status", []string{"ACNCRegistration", "status"}},
	{"acnc_status_from", []string{"ACNCRegistration", "effectiveFrom"}},
	{"acnc_status_to", []string{"ACNCRegistration", "effectiveTo"}},
	{"record_last_updated", []string{"recordLastUpdatedDate"}},
}

type jsonField struct {
	col string
	key string
}

var jsonFields = []jsonField{
	{"gst", "goodsAndServicesTax"},
	{"dgr", "dgrEndorsement"},
	{"main_trading_names", "mainTradingName"},
	{"other_trading_names", "otherTradingName"},
	{"main_business_physical_address", "mainBusinessPhysicalAddress"},
	{"tax_concession_endorsements", "taxConcessionCharityEndorsement"},
}

// Entity finds the business entity in a parsed SearchByABNv201408
// response.
func Entity(doc *xmltree.Node) (*xmltree.Node, error) {
	return doc.PathNode(entityPath...)
}

// ResponseException returns the description of an exception reported by
// the service inside a successful SOAP response.
func ResponseException(doc *xmltree.Node) string {
	path := append(entityPath[:len(entityPath)-1:len(entityPath)-1],
		"exception", "exceptionDescription")
	res, _ := doc.Text(path...)
	return res
}

// FormatRecord flattens a business entity into a record with Columns.
// Absent fields are empty. Malformed fields are logged and left empty.
func FormatRecord(ent *xmltree.Node) harvest.Record {
	res := harvest.NewRecord()
	for _, f := range textFields {
		res.Set(f.col, text(ent, f.col, f.path...))
	}

	for _, f := range jsonFields {
		vs := ent.All(f.key)
		var val string
		var err error
		switch len(vs) {
		case 0:
		case 1:
			val, err = xmltree.JSON(vs[0])
		default:
			var bs []byte
			bs, err = json.Marshal(vs)
			val = string(bs)
		}
		if err != nil {
			slog.Warn("Cannot serialize ABN field", "field", f.col, "error", err)
			val = ""
		}
		res.Set(f.col, val)
	}
	return res
}

func text(ent *xmltree.Node, col string, path ...string) string {
	res, err := ent.Text(path...)
	if errors.Is(err, xmltree.ErrMalformed) {
		slog.Warn("Malformed ABN field",
			"field", col,
			"path", strings.Join(path, "/"),
			"error", err,
		)
	}
	return res
}

// Location returns state code (upper case) and postcode of the main
// business physical address.
func Location(ent *xmltree.Node) (state, postcode string) {
	state = text(ent, "stateCode", "mainBusinessPhysicalAddress", "stateCode")
	postcode = text(ent, "postcode", "mainBusinessPhysicalAddress", "postcode")
	return strings.ToUpper(state), postcode
}
