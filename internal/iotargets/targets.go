// Package iotargets reads the list of harvest targets from targets.yaml.
package iotargets

import (
	"os"

	"github.com/gnames/orgsdb/pkg/config"
	"github.com/gnames/orgsdb/pkg/target"
	"gopkg.in/yaml.v3"
)

type iotargets struct {
	path string
}

// New creates a targets loader for targets.yaml under homeDir.
func New(cfg *config.Config) target.Targets {
	return NewFromFile(config.TargetsFilePath(cfg.HomeDir))
}

// NewFromFile creates a targets loader for the given file.
func NewFromFile(path string) target.Targets {
	return &iotargets{path: path}
}

// Load reads and validates the targets file.
func (t *iotargets) Load() (*target.TargetsConfig, error) {
	data, err := os.ReadFile(t.path)
	if err != nil {
		return nil, TargetsConfigError(t.path, err)
	}

	var res target.TargetsConfig
	if err = yaml.Unmarshal(data, &res); err != nil {
		return nil, TargetsConfigError(t.path, err)
	}

	if err = res.Validate(); err != nil {
		return nil, TargetsValidationError(t.path, err)
	}
	return &res, nil
}
