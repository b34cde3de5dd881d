package config

import (
	"fmt"
	"maps"
	"slices"
	"strings"
	"time"

	"github.com/gnames/gn"
)

// Update applies a slice of Option functions to the Config.
// This is the only way to modify a Config after creation.
// Invalid options are rejected with warnings - config remains in valid state.
func (c *Config) Update(opts []Option) {
	for _, opt := range opts {
		opt(c)
	}
}

// ToOptions converts the Config to a slice of Option functions.
// Only includes persistent fields appropriate for config.yaml.
// Excludes runtime-only fields (HomeDir, Harvest.Sources).
// Used for round-tripping config.yaml ↔ Config conversions.
func (c *Config) ToOptions() []Option {
	var res []Option
	var s string
	var i int
	var d time.Duration
	s = c.Database.Host
	if s != "" {
		res = append(res, OptDatabaseHost(s))
	}
	i = c.Database.Port
	if i > 0 {
		res = append(res, OptDatabasePort(i))
	}
	s = c.Database.User
	if s != "" {
		res = append(res, OptDatabaseUser(s))
	}
	s = c.Database.Password
	if s != "" {
		res = append(res, OptDatabasePassword(s))
	}
	s = c.Database.Database
	if s != "" {
		res = append(res, OptDatabaseDatabase(s))
	}
	s = c.Database.SSLMode
	if s != "" {
		res = append(res, OptDatabaseSSLMode(s))
	}
	s = c.Database.URL
	if s != "" {
		res = append(res, OptDatabaseURL(s))
	}

	s = c.Harvest.OutputDir
	if s != "" {
		res = append(res, OptHarvestOutputDir(s))
	}
	d = c.Harvest.ScraperDelay
	if d > 0 {
		res = append(res, OptHarvestScraperDelay(d))
	}

	s = c.ABN.GUID
	if s != "" {
		res = append(res, OptABNGUID(s))
	}
	s = c.ABN.Endpoint
	if s != "" {
		res = append(res, OptABNEndpoint(s))
	}
	i = c.ABN.MaxResults
	if i > 0 {
		res = append(res, OptABNMaxResults(i))
	}
	i = c.ABN.MaxAttempts
	if i > 0 {
		res = append(res, OptABNMaxAttempts(i))
	}
	d = c.ABN.RetryBase
	if d > 0 {
		res = append(res, OptABNRetryBase(d))
	}
	if len(c.ABN.MaintenanceWindows) > 0 {
		res = append(res, OptABNMaintenanceWindows(c.ABN.MaintenanceWindows))
	}

	s = c.ACNC.Endpoint
	if s != "" {
		res = append(res, OptACNCEndpoint(s))
	}
	s = c.ACNC.ResourceID
	if s != "" {
		res = append(res, OptACNCResourceID(s))
	}
	i = c.ACNC.PageSize
	if i > 0 {
		res = append(res, OptACNCPageSize(i))
	}
	i = c.ACNC.MaxCombinations
	if i > 0 {
		res = append(res, OptACNCMaxCombinations(i))
	}

	s = c.Assoc.SearchURL
	if s != "" {
		res = append(res, OptAssocSearchURL(s))
	}
	s = c.Assoc.DetailsURL
	if s != "" {
		res = append(res, OptAssocDetailsURL(s))
	}

	s = c.Log.Format
	if s != "" {
		res = append(res, OptLogFormat(s))
	}
	s = c.Log.Level
	if s != "" {
		res = append(res, OptLogLevel(s))
	}
	s = c.Log.Destination
	if s != "" {
		res = append(res, OptLogDestination(s))
	}
	return res
}

// HasSource returns true if the harvest should include the given source.
func (c *Config) HasSource(src string) bool {
	if len(c.Harvest.Sources) == 0 {
		return true
	}
	return slices.Contains(c.Harvest.Sources, src)
}

func isValidString(name, s string) bool {
	res := s != ""
	if !res {
		gn.Warn("<em>%s</em> cannot be empty, ignoring", name)
	}
	return res
}

func isValidInt(name string, i int) bool {
	res := i > 0
	if !res {
		gn.Warn("<em>%s</em> has to be positive number, ignoring %d", name, i)
	}
	return res
}

func isValidDuration(name string, d time.Duration) bool {
	res := d >= 0
	if !res {
		gn.Warn("<em>%s</em> cannot be negative, ignoring %s", name, d)
	}
	return res
}

func warnWindow(w Window) {
	gn.Warn(
		"Maintenance window ends before it starts (%s - %s), ignoring",
		w.Start.Format(time.RFC3339), w.End.Format(time.RFC3339),
	)
}

func isValidEnum(name, val string) bool {
	s := struct{}{}
	data := map[string]map[string]struct{}{
		"Database.SSLMode": {"disable": s, "require": s,
			"verify-ca": s, "verify-full": s},
		"Harvest.Sources": {"assoc": s, "acnc": s, "abn": s},
		"Log.Level":       {"debug": s, "info": s, "warn": s, "error": s},
		"Log.Format":      {"json": s, "text": s, "tint": s},
		"Log.Destination": {"file": s, "stderr": s, "stdout": s},
	}
	vals := slices.Sorted(maps.Keys(data[name]))
	var lines []string
	for _, v := range vals {
		line := fmt.Sprintf("  * %s", v)
		lines = append(lines, line)
	}
	if _, ok := data[name][val]; ok {
		return true
	} else {
		gn.Warn(
			"<em>%s</em> does not support '%s' as a value. "+
				"Valid values are: \n%s\nIgnoring...",
			name, val, strings.Join(lines, "\n"),
		)
		return false
	}
}
