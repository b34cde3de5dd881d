// Package orgsdb keeps version information of the application.
package orgsdb

var (
	// Version of the orgsdb release, set at build time.
	Version = "v0.1.0"

	// Build timestamp, set at build time.
	Build = "n/a"
)
