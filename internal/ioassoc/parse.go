package ioassoc

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/gnames/gnlib"
	"github.com/gnames/orgsdb/pkg/harvest"
	"golang.org/x/net/html"
)

// Columns of association records, in output order.
var Columns = []string{
	"name",
	"organisation_number",
	"organisation_type",
	"status",
	"date_registered",
	"date_removed",
	"registered_office_address",
	"organisation_id",
}

var labels = []struct{ label, col string }{
	{"Organisation Number:", "organisation_number"},
	{"Date Registered:", "date_registered"},
	{"Organisation Type:", "organisation_type"},
	{"Date Removed:", "date_removed"},
	{"Registered Office Address:", "registered_office_address"},
}

var orgIDRe = regexp.MustCompile(`Organisationid=(\d+)`)

// parseResults reads the result rows of a search page. Rows without
// a name are skipped.
func parseResults(doc *goquery.Document) []harvest.Record {
	list := doc.Find("span#ctl00_MainArea_ResultDataList").First()
	if list.Length() == 0 {
		return nil
	}

	var res []harvest.Record
	list.Find("div.row").Each(func(_ int, row *goquery.Selection) {
		main := row.Find("div.col-md-10").First()
		status := row.Find("div.col-md-2").First()
		if main.Length() == 0 || status.Length() == 0 {
			return
		}

		link := main.Find("a").First()
		name := clean(link.Text())
		if name == "" {
			return
		}

		rec := harvest.NewRecord()
		for _, col := range Columns {
			rec.Set(col, "")
		}
		rec.Set("name", name)
		if m := orgIDRe.FindStringSubmatch(link.AttrOr("href", "")); len(m) == 2 {
			rec.Set("organisation_id", m[1])
		}

		main.Find("div.row.text-secondary").First().Find("div").
			Each(func(_ int, d *goquery.Selection) {
				txt := clean(d.Text())
				for _, l := range labels {
					if _, val, ok := strings.Cut(txt, l.label); ok {
						rec.Set(l.col, strings.TrimSpace(val))
						return
					}
				}
			})

		rec.Set("status", clean(status.Find("figcaption span").First().Text()))
		res = append(res, rec)
	})
	return res
}

// parseDetails pairs bold labels of the details card with the text
// that follows them. A repeated label keeps its last value.
func parseDetails(doc *goquery.Document) (harvest.Record, bool) {
	card := doc.Find("div.card-body").First()
	if card.Length() == 0 {
		return harvest.Record{}, false
	}

	res := harvest.NewRecord()
	card.Find("div.row").Each(func(_ int, row *goquery.Selection) {
		row.Find("span.font-weight-bold").Each(func(_ int, lbl *goquery.Selection) {
			key := clean(strings.ReplaceAll(lbl.Text(), ":", ""))
			if key == "" {
				return
			}
			val := labelValue(lbl.Nodes[0])
			if val != "" && val != key {
				res.Set(key, val)
			}
		})
	})
	return res, true
}

// labelValue returns the text of the next sibling, or the first
// non-empty text node after the label when there is no sibling.
func labelValue(n *html.Node) string {
	if sib := n.NextSibling; sib != nil {
		if sib.Type == html.ElementNode {
			return clean(goquery.NewDocumentFromNode(sib).Text())
		}
		return clean(sib.Data)
	}
	for cur := after(n); cur != nil; cur = following(cur) {
		if cur.Type == html.TextNode {
			if txt := clean(cur.Data); txt != "" {
				return txt
			}
		}
	}
	return ""
}

// following returns the node after n in document order.
func following(n *html.Node) *html.Node {
	if n.FirstChild != nil {
		return n.FirstChild
	}
	return after(n)
}

// after is like following, but skips the subtree of n.
func after(n *html.Node) *html.Node {
	for cur := n; cur != nil; cur = cur.Parent {
		if cur.NextSibling != nil {
			return cur.NextSibling
		}
	}
	return nil
}

func clean(s string) string {
	return strings.Join(strings.Fields(gnlib.FixUtf8(s)), " ")
}
