package ioetl

import (
	"fmt"
	"maps"
	"strings"
	"time"

	"github.com/gnames/gnuuid"
	"github.com/gnames/orgsdb/pkg/transform"
	"github.com/google/uuid"
	"github.com/gosimple/slug"
)

// Record sources understood by Extract.
const (
	// SourceRaw records already use source field names of the
	// organisations mapping.
	SourceRaw = "raw"
	// SourceAssoc records come from the associations register CSV.
	SourceAssoc = "assoc"
	// SourceACNC records come from the charity register CSV.
	SourceACNC = "acnc"
)

// dateLayouts are the date formats met in harvest artifacts.
var dateLayouts = []string{
	transform.DateLayout,
	"02/01/2006",
	"2/1/2006",
	time.RFC3339,
	"2006-01-02T15:04:05",
}

// Sources returns the supported record sources.
func Sources() []string {
	return []string{SourceRaw, SourceAssoc, SourceACNC}
}

// Extract converts harvest records into source records of the
// organisations mapping. A non-empty editor is set as inserted_by_id
// and last_edited_by_id where the record has none. Input records are
// not modified.
func Extract(
	src string,
	recs []transform.Source,
	editor string,
) ([]transform.Source, error) {
	var conv func(transform.Source) transform.Source
	switch src {
	case SourceRaw:
		conv = func(r transform.Source) transform.Source { return maps.Clone(r) }
	case SourceAssoc:
		conv = fromAssoc
	case SourceACNC:
		conv = fromACNC
	default:
		return nil, UnknownSourceError(src)
	}

	editorID := EditorID(editor)
	res := make([]transform.Source, 0, len(recs))
	for _, r := range recs {
		s := conv(r)
		if editorID != "" {
			for _, k := range []string{"inserted_by_id", "last_edited_by_id"} {
				if str(s[k]) == "" {
					s[k] = editorID
				}
			}
		}
		res = append(res, s)
	}
	return res, nil
}

// EditorID returns the UUID of an editor. A valid UUID is returned in
// canonical form, any other non-empty string gives a UUID v5 derived
// from it.
func EditorID(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}
	if id, err := uuid.Parse(s); err == nil {
		return id.String()
	}
	return gnuuid.New(s).String()
}

func fromAssoc(r transform.Source) transform.Source {
	name := str(r["name"])
	res := transform.Source{
		"name":       name,
		"slug_value": Slug(name, str(r["organisation_number"])),
	}
	if d := isoDate(str(r["date_registered"])); d != "" {
		res["established_date"] = d
	}
	if st := str(r["status"]); st != "" {
		res["public_status"] = strings.EqualFold(st, "registered")
	}
	return res
}

func fromACNC(r transform.Source) transform.Source {
	name := str(r["Charity_Legal_Name"])
	res := transform.Source{
		"name":       name,
		"slug_value": Slug(name, str(r["ABN"])),
	}
	if d := isoDate(str(r["Registration_Date"])); d != "" {
		res["established_date"] = d
	}
	return res
}

// Slug builds the natural key of an organisation from its name and an
// optional registry number.
func Slug(name, number string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		return ""
	}
	res := slug.Make(name)
	number = strings.ReplaceAll(strings.TrimSpace(number), " ", "")
	if number != "" {
		res += "-" + slug.Make(number)
	}
	return res
}

// isoDate converts known date formats to the layout of the Date
// coercion. Unknown formats are passed through for the coercion to
// reject and log.
func isoDate(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}
	for _, l := range dateLayouts {
		if t, err := time.Parse(l, s); err == nil {
			return t.Format(transform.DateLayout)
		}
	}
	return s
}

func str(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return strings.TrimSpace(t)
	}
	return strings.TrimSpace(fmt.Sprint(v))
}
