// Package config provides configuration management for orgsdb.
//
// This package has no I/O dependencies (no file operations, no network calls).
// Validation functions may write user-facing warnings via gn.Warn().
//
// # Configuration Sources
//
// Precedence (highest to lowest): CLI flags > env vars > config.yaml > defaults
//
// # Design Principles
//
// - Default config (from New()) is always valid - no validation needed
// - All mutations go through Option functions - the only way to modify Config
// - Invalid options are rejected with gn.Warn() - config remains in valid state
// - ToOptions() converts persistent fields (those in config.yaml)
// - Environment variables match ToOptions() fields exactly
//
// # Persistent vs Runtime Fields
//
// Persistent fields (in ToOptions, config.yaml, and env vars):
//   - Database: host, port, user, password, database, ssl_mode, url
//   - Harvest: output_dir, scraper_delay
//   - ABN: guid, endpoint, max_results, max_attempts, retry_base,
//     maintenance_windows
//   - ACNC: endpoint, resource_id, page_size, max_combinations
//   - Assoc: search_url, details_url
//   - Log: level, format, destination
//
// Runtime-only fields (CLI flags only):
//   - Harvest.Sources (per-command)
//   - HomeDir (set once at startup)
//
// # Environment Variables
//
// Use ORGSDB_ prefix with underscores for nesting:
//
//	ORGSDB_DATABASE_HOST=localhost
//	ORGSDB_DATABASE_PORT=5432
//	ORGSDB_LOG_LEVEL=info
//
// The ABN search GUID is also read from PRIVATE_ABN_SEARCH_GUID, usually
// kept in a .env file together with ORGSDB_DATABASE_URL.
package config

import (
	"fmt"
	"net/url"
	"time"
)

// Config represents the complete orgsdb configuration.
type Config struct {
	// Database contains PostgreSQL connection settings.
	Database DatabaseConfig `mapstructure:"database" yaml:"database"`

	// Harvest contains settings of the harvest command.
	Harvest HarvestConfig `mapstructure:"harvest" yaml:"harvest"`

	// ABN contains settings of the ABN Lookup SOAP service.
	ABN ABNConfig `mapstructure:"abn" yaml:"abn"`

	// ACNC contains settings of the ACNC charity register datastore.
	ACNC ACNCConfig `mapstructure:"acnc" yaml:"acnc"`

	// Assoc contains settings of the NSW associations register.
	Assoc AssocConfig `mapstructure:"assoc" yaml:"assoc"`

	Log LogConfig `mapstructure:"log" yaml:"log"`

	// HomeDir determines where config, cache and logs directories reside.
	// It must be set by CLI during init, there is no default value for it.
	HomeDir string
}

// DatabaseConfig contains PostgreSQL connection parameters.
type DatabaseConfig struct {
	// Host is the PostgreSQL server hostname or IP address.
	Host string `mapstructure:"host" yaml:"host"`

	// Port is the PostgreSQL server port number.
	Port int `mapstructure:"port" yaml:"port"`

	// User is the PostgreSQL database username.
	User string `mapstructure:"user" yaml:"user"`

	// Password is the PostgreSQL database password.
	Password string `mapstructure:"password" yaml:"password"`

	// Database is the PostgreSQL database name to connect to.
	Database string `mapstructure:"database" yaml:"database"`

	// SSLMode specifies the SSL connection mode.
	// Valid values: "disable", "require", "verify-ca", "verify-full"
	SSLMode string `mapstructure:"ssl_mode" yaml:"ssl_mode"`

	// URL is a full connection string. When set it takes precedence
	// over the separate connection fields.
	URL string `mapstructure:"url" yaml:"url"`
}

// HarvestConfig contains settings for the harvest command.
type HarvestConfig struct {
	// OutputDir is where CSV and JSON artifacts are written.
	// Empty value means the default data directory under HomeDir.
	OutputDir string `mapstructure:"output_dir" yaml:"output_dir"`

	// ScraperDelay is the pause between result pages of the
	// associations register.
	ScraperDelay time.Duration `mapstructure:"scraper_delay" yaml:"scraper_delay"`

	// Sources limits harvest to the given sources ("assoc", "acnc", "abn").
	// Empty slice means all sources. Runtime-only.
	Sources []string `mapstructure:"sources" yaml:"sources"`
}

// ABNConfig contains settings for the ABN Lookup web service.
type ABNConfig struct {
	// GUID is the authentication GUID issued by the ABN Lookup service.
	GUID string `mapstructure:"guid" yaml:"guid"`

	// Endpoint is the SOAP endpoint URL.
	Endpoint string `mapstructure:"endpoint" yaml:"endpoint"`

	// MaxResults truncates the list of ABNs returned by a charity
	// search. Zero means no limit.
	MaxResults int `mapstructure:"max_results" yaml:"max_results"`

	// MaxAttempts is the number of attempts for each SOAP call.
	MaxAttempts int `mapstructure:"max_attempts" yaml:"max_attempts"`

	// RetryBase is the base of the exponential backoff between attempts.
	RetryBase time.Duration `mapstructure:"retry_base" yaml:"retry_base"`

	// MaintenanceWindows are published periods when the service is down.
	MaintenanceWindows []Window `mapstructure:"maintenance_windows" yaml:"maintenance_windows"`
}

// Window is a closed time interval.
type Window struct {
	Start time.Time `mapstructure:"start" yaml:"start"`
	End   time.Time `mapstructure:"end"   yaml:"end"`
}

// Contains returns true if t is within the window, bounds included.
func (w Window) Contains(t time.Time) bool {
	return !t.Before(w.Start) && !t.After(w.End)
}

// ACNCConfig contains settings for the ACNC charity register datastore.
type ACNCConfig struct {
	// Endpoint is the CKAN action API base URL.
	Endpoint string `mapstructure:"endpoint" yaml:"endpoint"`

	// ResourceID is the datastore resource of the charity register.
	ResourceID string `mapstructure:"resource_id" yaml:"resource_id"`

	// PageSize is the number of records requested per page.
	PageSize int `mapstructure:"page_size" yaml:"page_size"`

	// MaxCombinations caps the number of filter combinations queried
	// for a single search.
	MaxCombinations int `mapstructure:"max_combinations" yaml:"max_combinations"`
}

// AssocConfig contains settings for the NSW associations register.
type AssocConfig struct {
	// SearchURL is the URL of the search form page.
	SearchURL string `mapstructure:"search_url" yaml:"search_url"`

	// DetailsURL is the URL of the organisation details page.
	// It is used as a format string with the organisation id.
	DetailsURL string `mapstructure:"details_url" yaml:"details_url"`
}

// LogConfig provides typical settings for application logs.
type LogConfig struct {
	// Format can be 'json', 'text' or 'tint' (user-facing and colored).
	Format string `mapstructure:"format"      yaml:"format"`
	// Level of logging -- 'error', 'warn', 'info', 'debug'
	Level string `mapstructure:"level"       yaml:"level"`
	// Destination can be a log file (to default place), STDERR or STDOUT
	Destination string `mapstructure:"destination" yaml:"destination"`
}

// aest is the fixed +10:00 offset used by the ABN Lookup service
// announcements.
var aest = time.FixedZone("AEST", 10*60*60)

// DefaultMaintenanceWindows returns the published ABN Lookup outages.
func DefaultMaintenanceWindows() []Window {
	return []Window{
		{
			Start: time.Date(2025, 8, 2, 21, 0, 0, 0, aest),
			End:   time.Date(2025, 8, 3, 14, 0, 0, 0, aest),
		},
		{
			Start: time.Date(2025, 8, 9, 21, 0, 0, 0, aest),
			End:   time.Date(2025, 8, 10, 10, 0, 0, 0, aest),
		},
	}
}

// New creates a Config with sensible default values.
// The returned config is always valid and ready to use.
// Default values can be overridden using Option functions via Update().
func New() *Config {
	res := &Config{
		Database: DatabaseConfig{
			Host:     "localhost",
			Port:     5432,
			User:     "postgres",
			Password: "postgres",
			Database: "community_mapping",
			SSLMode:  "disable",
		},
		Harvest: HarvestConfig{
			ScraperDelay: 4 * time.Second,
		},
		ABN: ABNConfig{
			Endpoint:           "https://abr.business.gov.au/ABRXMLSearch/AbrXmlSearch.asmx",
			MaxAttempts:        3,
			RetryBase:          time.Second,
			MaintenanceWindows: DefaultMaintenanceWindows(),
		},
		ACNC: ACNCConfig{
			Endpoint:        "https://data.gov.au/data/api/3/action",
			ResourceID:      "eb1e6be4-5b13-4feb-b28e-388bf7c26f93",
			PageSize:        1000,
			MaxCombinations: 8,
		},
		Assoc: AssocConfig{
			SearchURL:  "https://applications.fairtrading.nsw.gov.au/assocregister/RegistrationSearch.aspx",
			DetailsURL: "https://applications.fairtrading.nsw.gov.au/assocregister/PublicRegisterDetails.aspx?Organisationid=%s",
		},
		Log: LogConfig{
			Format: "json",
			Level:  "info",
			// for now file is rewritten every time the log starts
			Destination: "file",
		},
	}

	return res
}

// DSN returns the connection string of the database.
func (d DatabaseConfig) DSN() string {
	if d.URL != "" {
		return d.URL
	}
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		url.PathEscape(d.User),
		url.PathEscape(d.Password),
		d.Host,
		d.Port,
		d.Database,
		d.SSLMode,
	)
}

// OutputDir returns the directory for harvest artifacts.
func (c *Config) OutputDir() string {
	if c.Harvest.OutputDir != "" {
		return c.Harvest.OutputDir
	}
	return DataDir(c.HomeDir)
}
