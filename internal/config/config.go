// Package config loads and validates the commit-compliance rule set.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// Capitalization selects the required case of the first summary character.
type Capitalization int

const (
	CapitalizationUnset Capitalization = iota
	CapitalizationLower
	CapitalizationUpper
)

func (c Capitalization) String() string {
	switch c {
	case CapitalizationLower:
		return "lower"
	case CapitalizationUpper:
		return "upper"
	default:
		return ""
	}
}

// UnmarshalYAML accepts "lower" or "upper"; anything else is a shape error.
func (c *Capitalization) UnmarshalYAML(value *yaml.Node) error {
	var raw string
	if err := value.Decode(&raw); err != nil {
		return fmt.Errorf("first-word-capitalization must be a string: %w", err)
	}

	switch raw {
	case "lower":
		*c = CapitalizationLower
	case "upper":
		*c = CapitalizationUpper
	default:
		return fmt.Errorf("first-word-capitalization must be one of 'lower' or 'upper', got %q", raw)
	}
	return nil
}

// TrailerRule constrains a single trailer key.
type TrailerRule struct {
	Mandatory bool     `yaml:"mandatory"`
	Singular  bool     `yaml:"singular"`
	Values    []string `yaml:"values"`
}

// AllowsValue reports whether value is permitted by the rule. A rule with no
// configured values is unrestricted.
func (r TrailerRule) AllowsValue(value string) bool {
	if len(r.Values) == 0 {
		return true
	}
	for _, allowed := range r.Values {
		if allowed == value {
			return true
		}
	}
	return false
}

// SummaryRule constrains the first line of the commit message.
type SummaryRule struct {
	FirstWordIsSimpleVerb   bool           `yaml:"first-word-is-simple-verb"`
	FirstWordCapitalization Capitalization `yaml:"first-word-capitalization"`
}

// Schema is the validated rule document. External field names are
// kebab-case; unknown fields are rejected during decoding.
type Schema struct {
	FirstCommitIsEmpty bool                   `yaml:"first-commit-is-empty"`
	StartingFrom       string                 `yaml:"starting-from"`
	Summary            SummaryRule            `yaml:"summary"`
	Trailers           map[string]TrailerRule `yaml:"trailers"`
}

// Parse decodes a rule document from YAML with strict field checking: any
// key outside the schema aborts with an error naming the offending field.
func Parse(r io.Reader) (*Schema, error) {
	decoder := yaml.NewDecoder(r)
	decoder.KnownFields(true)

	var schema Schema
	if err := decoder.Decode(&schema); err != nil {
		if errors.Is(err, io.EOF) {
			// An empty document means every check is off.
			return &Schema{}, nil
		}
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &schema, nil
}

// Load reads and validates the rule document at path.
func Load(path string) (*Schema, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read configuration at %s: %w", path, err)
	}
	return Parse(bytes.NewReader(data))
}
