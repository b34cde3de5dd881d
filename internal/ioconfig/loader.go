// Package ioconfig reads config.yaml, .env files and environment
// variables into a config.Config.
package ioconfig

import (
	"errors"
	"io/fs"
	"log/slog"
	"strings"
	"time"

	"github.com/gnames/orgsdb/internal/iofs"
	"github.com/gnames/orgsdb/pkg/config"
	"github.com/go-viper/mapstructure/v2"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// EnvPrefix is the prefix of environment variables that override
// config.yaml values.
const EnvPrefix = "ORGSDB"

// GUIDEnv is an alternative name of the ABN Lookup GUID variable.
const GUIDEnv = "PRIVATE_ABN_SEARCH_GUID"

// Load reads configuration from config.yaml located in the config
// directory under homeDir. Environment variables take precedence over
// the file. Variables from .env files are loaded first, they never
// override variables that are already set.
//
// The returned config contains only values found in the file or
// environment. It is meant to be converted with ToOptions() and
// applied to config.New().
func Load(homeDir string, envFiles ...string) (*config.Config, error) {
	if err := LoadEnvFiles(envFiles...); err != nil {
		return nil, err
	}

	cfgPath := config.ConfigFilePath(homeDir)
	v := viper.New()
	v.SetConfigFile(cfgPath)

	initEnvVars(v)

	if err := v.ReadInConfig(); err != nil {
		return nil, iofs.ReadFileError(cfgPath, err)
	}

	var res config.Config
	hook := viper.DecodeHook(mapstructure.ComposeDecodeHookFunc(
		mapstructure.StringToTimeDurationHookFunc(),
		mapstructure.StringToTimeHookFunc(time.RFC3339),
		mapstructure.StringToSliceHookFunc(","),
	))
	if err := v.Unmarshal(&res, hook); err != nil {
		return nil, iofs.ReadFileError(cfgPath, err)
	}

	return &res, nil
}

// LoadEnvFiles loads variables from .env files. Missing files are
// ignored. Without arguments it looks for .env in the working directory.
func LoadEnvFiles(paths ...string) error {
	if len(paths) == 0 {
		paths = []string{".env"}
	}
	for _, p := range paths {
		err := godotenv.Load(p)
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err != nil {
			return iofs.ReadFileError(p, err)
		}
		slog.Info("Environment file loaded", "path", p)
	}
	return nil
}

func initEnvVars(v *viper.Viper) {
	// Set environment variables we want.
	// We set them manually so we can see clearly which env variables are allowed.
	// These match the fields included in config.ToOptions().
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	keys := []string{
		// Database configuration
		"database.host",
		"database.port",
		"database.user",
		"database.password",
		"database.database",
		"database.ssl_mode",
		"database.url",

		// Harvest configuration
		"harvest.output_dir",
		"harvest.scraper_delay",

		// ABN Lookup configuration
		"abn.endpoint",
		"abn.max_results",
		"abn.max_attempts",
		"abn.retry_base",

		// ACNC configuration
		"acnc.endpoint",
		"acnc.resource_id",
		"acnc.page_size",
		"acnc.max_combinations",

		// Associations register configuration
		"assoc.search_url",
		"assoc.details_url",

		// Log configuration
		"log.level",
		"log.format",
		"log.destination",
	}
	for _, k := range keys {
		_ = v.BindEnv(k, envName(k))
	}
	_ = v.BindEnv("abn.guid", envName("abn.guid"), GUIDEnv)

	v.AutomaticEnv()
}

// envName converts a config key to its environment variable.
func envName(key string) string {
	key = strings.ToUpper(strings.ReplaceAll(key, ".", "_"))
	return EnvPrefix + "_" + key
}
