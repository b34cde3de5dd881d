package ioassoc

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/gnames/orgsdb/pkg/harvest"
)

const (
	fieldPrefix  = "ctl00$MainArea$AdvancedSearchSection$"
	searchButton = fieldPrefix + "AdvancedSearchButton"

	eventTarget   = "__EVENTTARGET"
	eventArgument = "__EVENTARGUMENT"
)

var nextLinks = []string{
	"a#ctl00_MainArea_PageNextLink",
	"a#ctl00_MainArea_PageNextBottomLink",
}

var postBackRe = regexp.MustCompile(`__doPostBack\('([^']+)'`)

// formFields collects the state of form#aspnetForm. Inputs keep their
// value, selects keep the selected option or the first one.
// The second value is false when the form is absent.
func formFields(doc *goquery.Document) (map[string]string, bool) {
	form := doc.Find("form#aspnetForm").First()
	if form.Length() == 0 {
		return nil, false
	}

	res := make(map[string]string)
	form.Find("input").Each(func(_ int, s *goquery.Selection) {
		name := s.AttrOr("name", "")
		if name == "" {
			return
		}
		res[name] = s.AttrOr("value", "")
	})

	form.Find("select").Each(func(_ int, s *goquery.Selection) {
		name := s.AttrOr("name", "")
		if name == "" {
			return
		}
		opt := s.Find("option[selected]").First()
		if opt.Length() == 0 {
			opt = s.Find("option").First()
		}
		res[name] = opt.AttrOr("value", "")
	})
	return res, true
}

// applyFilters overlays non-empty filters on the advanced search fields.
func applyFilters(fields map[string]string, f harvest.AssocFilters) {
	vals := []struct{ name, val string }{
		{"Organisationname", f.Name},
		{"Organisationnumber", f.Number},
		{"Organisationtype", f.Type},
		{"Suburb", f.Suburb},
		{"Postcode", f.Postcode},
		{"Organisationstatus", f.Status},
	}
	for _, v := range vals {
		if v.val != "" {
			fields[fieldPrefix+v.name] = v.val
		}
	}
}

// nextTarget returns the postback target of the first visible and
// enabled next-page link, or an empty string on the last page.
func nextTarget(doc *goquery.Document) string {
	for _, sel := range nextLinks {
		a := doc.Find(sel).First()
		if a.Length() == 0 {
			continue
		}
		href := a.AttrOr("href", "")
		if href == "" || isHidden(a) {
			continue
		}
		if _, ok := a.Attr("disabled"); ok {
			continue
		}
		if m := postBackRe.FindStringSubmatch(href); len(m) == 2 {
			return m[1]
		}
	}
	return ""
}

func isHidden(s *goquery.Selection) bool {
	style := strings.ToLower(s.AttrOr("style", ""))
	style = strings.Join(strings.Fields(style), "")
	return strings.Contains(style, "display:none")
}
