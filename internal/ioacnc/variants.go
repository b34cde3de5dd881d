package ioacnc

import (
	"strings"
	"unicode"

	"github.com/gnames/orgsdb/pkg/target"
)

// Filters is a set of datastore column filters. Only non-empty values
// are sent.
type Filters struct {
	TownCity string
	State    string
	Postcode string
}

// IsEmpty returns true if no filter is set.
func (f Filters) IsEmpty() bool {
	return f.TownCity == "" && f.State == "" && f.Postcode == ""
}

// Map returns the filters keyed by datastore column names.
func (f Filters) Map() map[string]string {
	res := make(map[string]string, 3)
	if f.TownCity != "" {
		res["Town_City"] = f.TownCity
	}
	if f.State != "" {
		res["State"] = f.State
	}
	if f.Postcode != "" {
		res["Postcode"] = f.Postcode
	}
	return res
}

// Variants returns all combinations of spellings of the filters that
// the register uses: town in upper and title case, state as an
// abbreviation and as a full name. Combinations without any filter are
// not included.
func Variants(town, state, postcode string) []Filters {
	towns := []string{""}
	if town = strings.TrimSpace(town); town != "" {
		towns = uniq(strings.ToUpper(town), title(town))
	}

	states := []string{""}
	if state = strings.TrimSpace(state); state != "" {
		abbr := strings.ToUpper(state)
		states = uniq(abbr, target.StateName(abbr))
	}

	postcodes := []string{""}
	if postcode = strings.TrimSpace(postcode); postcode != "" {
		postcodes = []string{strings.ToUpper(postcode)}
	}

	var res []Filters
	for _, tc := range towns {
		for _, st := range states {
			for _, pc := range postcodes {
				f := Filters{TownCity: tc, State: st, Postcode: pc}
				if f.IsEmpty() {
					continue
				}
				res = append(res, f)
			}
		}
	}
	return res
}

func uniq(ss ...string) []string {
	var res []string
	seen := make(map[string]struct{}, len(ss))
	for _, s := range ss {
		if _, ok := seen[s]; ok {
			continue
		}
		seen[s] = struct{}{}
		res = append(res, s)
	}
	return res
}

// title uppercases the first letter of every word and lowercases the
// rest. A word starts after any character that is not a letter.
func title(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	prevLetter := false
	for _, r := range s {
		if unicode.IsLetter(r) {
			if prevLetter {
				r = unicode.ToLower(r)
			} else {
				r = unicode.ToUpper(r)
			}
			prevLetter = true
		} else {
			prevLetter = false
		}
		b.WriteRune(r)
	}
	return b.String()
}
