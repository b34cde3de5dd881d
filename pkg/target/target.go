// Package target defines the list of localities that a harvest covers.
//
// The list is read from targets.yaml. Every entry is either a mapping
//
//   - suburb: BATLOW
//     state: NSW
//     postcode: "2730"
//
// or a compact string "BATLOW NSW 2730".
package target

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// Targets loads the harvest targets.
type Targets interface {
	Load() (*TargetsConfig, error)
}

// TargetsConfig is the content of targets.yaml.
type TargetsConfig struct {
	Targets []SearchTarget `yaml:"targets"`
}

// SearchTarget is a locality to search for organisations.
type SearchTarget struct {
	Suburb   string `yaml:"suburb"   validate:"required"`
	State    string `yaml:"state"    validate:"required,oneof=NSW VIC QLD SA WA TAS NT ACT"`
	Postcode string `yaml:"postcode" validate:"required,len=4,numeric"`
}

// String returns the compact form of the target.
func (t SearchTarget) String() string {
	return fmt.Sprintf("%s %s %s", t.Suburb, t.State, t.Postcode)
}

// UnmarshalYAML accepts both the mapping and the compact string form.
func (t *SearchTarget) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind == yaml.ScalarNode {
		res, err := Parse(node.Value)
		if err != nil {
			return err
		}
		*t = res
		return nil
	}

	type plain SearchTarget
	var res plain
	if err := node.Decode(&res); err != nil {
		return err
	}
	*t = SearchTarget(res).normalize()
	return nil
}

func (t SearchTarget) normalize() SearchTarget {
	return SearchTarget{
		Suburb:   strings.ToUpper(strings.Join(strings.Fields(t.Suburb), " ")),
		State:    strings.ToUpper(strings.TrimSpace(t.State)),
		Postcode: strings.TrimSpace(t.Postcode),
	}
}

// ErrFormat is returned when a compact target cannot be split.
var ErrFormat = errors.New("target must look like 'SUBURB STATE POSTCODE'")

// Parse splits a compact target from the right, so suburbs may contain
// spaces: "WAGGA WAGGA NSW 2650".
func Parse(s string) (SearchTarget, error) {
	words := strings.Fields(s)
	if len(words) < 3 {
		return SearchTarget{}, fmt.Errorf("%w: '%s'", ErrFormat, s)
	}
	n := len(words)
	res := SearchTarget{
		Suburb:   strings.Join(words[:n-2], " "),
		State:    words[n-2],
		Postcode: words[n-1],
	}
	return res.normalize(), nil
}

var validate = validator.New()

// Validate checks every target and returns all problems found.
func (c *TargetsConfig) Validate() error {
	if len(c.Targets) == 0 {
		return errors.New("targets list is empty")
	}
	var errs []error
	for i, t := range c.Targets {
		if err := validate.Struct(t); err != nil {
			errs = append(errs, fmt.Errorf("target %d (%s): %w", i+1, t, err))
		}
	}
	return errors.Join(errs...)
}
