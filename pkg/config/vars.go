package config

import (
	"path/filepath"
)

var (
	// AppName is used in generating file system paths.
	AppName = "orgsdb"

	// SchemaName is the Postgres schema that holds organisation tables.
	SchemaName = "community_orgs"
)

// ConfigDir returns the directory path for configuration files.
// Returns ~/.config/orgsdb by default.
func ConfigDir(homeDir string) string {
	return filepath.Join(homeDir, ".config", AppName)
}

// CacheDir returns the directory path for cache files.
// Returns ~/.cache/orgsdb by default.
func CacheDir(homeDir string) string {
	return filepath.Join(homeDir, ".cache", AppName)
}

// LogDir returns the directory path for log files.
// Returns ~/.local/share/orgsdb/logs by default.
func LogDir(homeDir string) string {
	return filepath.Join(homeDir, ".local", "share", AppName, "logs")
}

// DataDir returns the default directory for harvest artifacts.
// Returns ~/.local/share/orgsdb/raw by default.
func DataDir(homeDir string) string {
	return filepath.Join(homeDir, ".local", "share", AppName, "raw")
}

// ConfigFilePath returns the full path to the config.yaml file.
// Returns ~/.config/orgsdb/config.yaml by default.
func ConfigFilePath(homeDir string) string {
	return filepath.Join(ConfigDir(homeDir), "config.yaml")
}

// TargetsFilePath returns the full path to the targets.yaml file.
// Returns ~/.config/orgsdb/targets.yaml by default.
func TargetsFilePath(homeDir string) string {
	return filepath.Join(ConfigDir(homeDir), "targets.yaml")
}
