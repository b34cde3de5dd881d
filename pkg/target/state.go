package target

import "strings"

// stateNames maps state abbreviations to their full names.
var stateNames = map[string]string{
	"NSW": "New South Wales",
	"VIC": "Victoria",
	"QLD": "Queensland",
	"SA":  "South Australia",
	"WA":  "Western Australia",
	"TAS": "Tasmania",
	"NT":  "Northern Territory",
	"ACT": "Australian Capital Territory",
}

// StateName returns the full name of a state abbreviation.
// Unknown abbreviations are returned unchanged.
func StateName(abbr string) string {
	abbr = strings.ToUpper(strings.TrimSpace(abbr))
	if name, ok := stateNames[abbr]; ok {
		return name
	}
	return abbr
}

// States returns all known state abbreviations.
func States() []string {
	return []string{"NSW", "VIC", "QLD", "SA", "WA", "TAS", "NT", "ACT"}
}
