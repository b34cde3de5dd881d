package config

import (
	"slices"
	"strings"
	"time"

	"github.com/gnames/gn"
)

// Option is a function that modifies a Config.
// Options validate inputs and reject invalid values with warnings.
type Option func(*Config)

// OptDatabaseHost sets the PostgreSQL server hostname or IP address.
func OptDatabaseHost(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Database Host", s) {
			c.Database.Host = s
		}
	}
}

// OptDatabasePort sets the PostgreSQL server port number.
func OptDatabasePort(i int) Option {
	return func(c *Config) {
		if isValidInt("Database Port", i) {
			c.Database.Port = i
		}
	}
}

// OptDatabaseUser sets the PostgreSQL database username.
func OptDatabaseUser(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Database User", s) {
			c.Database.User = s
		}
	}
}

// OptDatabasePassword sets the PostgreSQL database password.
func OptDatabasePassword(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Database Password", s) {
			c.Database.Password = s
		}
	}
}

// OptDatabaseDatabase sets the PostgreSQL database name to connect to.
func OptDatabaseDatabase(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Database Name", s) {
			c.Database.Database = s
		}
	}
}

// OptDatabaseSSLMode sets the SSL connection mode.
// Valid values: "disable", "require", "verify-ca", "verify-full".
func OptDatabaseSSLMode(s string) Option {
	s = strings.TrimSpace(s)
	s = strings.ToLower(s)
	return func(c *Config) {
		if isValidEnum("Database.SSLMode", s) {
			c.Database.SSLMode = s
		}
	}
}

// OptDatabaseURL sets a connection string that overrides the separate
// connection fields.
func OptDatabaseURL(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if !isValidString("Database URL", s) {
			return
		}
		if !strings.HasPrefix(s, "postgres://") &&
			!strings.HasPrefix(s, "postgresql://") {
			gn.Warn("<em>Database URL</em> must start with postgres://, ignoring")
			return
		}
		c.Database.URL = s
	}
}

// OptHarvestOutputDir sets the directory for harvest artifacts.
func OptHarvestOutputDir(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Harvest Output Dir", s) {
			c.Harvest.OutputDir = s
		}
	}
}

// OptHarvestScraperDelay sets the pause between pages of the associations
// register. Zero is allowed and disables the pause.
func OptHarvestScraperDelay(d time.Duration) Option {
	return func(c *Config) {
		if isValidDuration("Harvest Scraper Delay", d) {
			c.Harvest.ScraperDelay = d
		}
	}
}

// OptHarvestSources limits harvest to the given sources.
// Runtime-only field - not in ToOptions().
func OptHarvestSources(ss []string) Option {
	var res []string
	for _, v := range ss {
		v = strings.ToLower(strings.TrimSpace(v))
		if v == "" || slices.Contains(res, v) {
			continue
		}
		res = append(res, v)
	}
	return func(c *Config) {
		for _, v := range res {
			if !isValidEnum("Harvest.Sources", v) {
				return
			}
		}
		if len(res) > 0 {
			c.Harvest.Sources = res
		}
	}
}

// OptABNGUID sets the authentication GUID of the ABN Lookup service.
func OptABNGUID(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("ABN GUID", s) {
			c.ABN.GUID = s
		}
	}
}

// OptABNEndpoint sets the SOAP endpoint of the ABN Lookup service.
func OptABNEndpoint(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("ABN Endpoint", s) {
			c.ABN.Endpoint = s
		}
	}
}

// OptABNMaxResults truncates ABN lists returned by charity searches.
// Zero removes the limit.
func OptABNMaxResults(i int) Option {
	return func(c *Config) {
		if i < 0 {
			isValidInt("ABN Max Results", i)
			return
		}
		c.ABN.MaxResults = i
	}
}

// OptABNMaxAttempts sets how many times a SOAP call is attempted.
func OptABNMaxAttempts(i int) Option {
	return func(c *Config) {
		if isValidInt("ABN Max Attempts", i) {
			c.ABN.MaxAttempts = i
		}
	}
}

// OptABNRetryBase sets the base delay of the exponential backoff.
func OptABNRetryBase(d time.Duration) Option {
	return func(c *Config) {
		if isValidDuration("ABN Retry Base", d) {
			c.ABN.RetryBase = d
		}
	}
}

// OptABNMaintenanceWindows replaces the list of maintenance windows.
// Windows with End before Start are ignored.
func OptABNMaintenanceWindows(ws []Window) Option {
	return func(c *Config) {
		var res []Window
		for _, w := range ws {
			if w.End.Before(w.Start) {
				warnWindow(w)
				continue
			}
			res = append(res, w)
		}
		if len(res) > 0 {
			c.ABN.MaintenanceWindows = res
		}
	}
}

// OptACNCEndpoint sets the CKAN action API URL.
func OptACNCEndpoint(s string) Option {
	s = strings.TrimRight(strings.TrimSpace(s), "/")
	return func(c *Config) {
		if isValidString("ACNC Endpoint", s) {
			c.ACNC.Endpoint = s
		}
	}
}

// OptACNCResourceID sets the datastore resource id of the charity register.
func OptACNCResourceID(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("ACNC Resource ID", s) {
			c.ACNC.ResourceID = s
		}
	}
}

// OptACNCPageSize sets the number of records per datastore page.
func OptACNCPageSize(i int) Option {
	return func(c *Config) {
		if isValidInt("ACNC Page Size", i) {
			c.ACNC.PageSize = i
		}
	}
}

// OptACNCMaxCombinations caps the number of filter combinations per search.
func OptACNCMaxCombinations(i int) Option {
	return func(c *Config) {
		if isValidInt("ACNC Max Combinations", i) {
			c.ACNC.MaxCombinations = i
		}
	}
}

// OptAssocSearchURL sets the URL of the associations search form.
func OptAssocSearchURL(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Assoc Search URL", s) {
			c.Assoc.SearchURL = s
		}
	}
}

// OptAssocDetailsURL sets the format string of the organisation details URL.
func OptAssocDetailsURL(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Assoc Details URL", s) {
			c.Assoc.DetailsURL = s
		}
	}
}

// OptLogLevel sets the logging level.
// Valid values: "debug", "info", "warn", "error".
func OptLogLevel(s string) Option {
	s = strings.TrimSpace(s)
	s = strings.ToLower(s)
	return func(c *Config) {
		if isValidEnum("Log.Level", s) {
			c.Log.Level = s
		}
	}
}

// OptLogFormat sets the log output format.
// Valid values: "json", "text", "tint".
func OptLogFormat(s string) Option {
	s = strings.TrimSpace(s)
	s = strings.ToLower(s)
	return func(c *Config) {
		if isValidEnum("Log.Format", s) {
			c.Log.Format = s
		}
	}
}

// OptLogDestination sets where logs are written.
// Valid values: "file", "stdout", "stderr".
func OptLogDestination(s string) Option {
	s = strings.TrimSpace(s)
	s = strings.ToLower(s)
	return func(c *Config) {
		if isValidEnum("Log.Destination", s) {
			c.Log.Destination = s
		}
	}
}

// OptHomeDir sets the home directory for config, cache and logs.
func OptHomeDir(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Home Directory", s) {
			c.HomeDir = s
		}
	}
}
