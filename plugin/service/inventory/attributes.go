// Copyright (c) HashiCorp, Inc.
// SPDX-License-Identifier: MPL-2.0

package inventory

import (
	"fmt"
	"os"

	"github.com/cons3rt/cons3rt.core/internal/credential"
	"github.com/cons3rt/cons3rt.core/internal/errors"
	"github.com/cons3rt/cons3rt.core/internal/values"
	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"
)

// SourceConfig is the validated contents of a cons3rt.yml source file.
type SourceConfig struct {
	Plugin   string `mapstructure:"plugin"`
	URL      string `mapstructure:"cons3rt_url"`
	Cache    bool   `mapstructure:"cache"`
	CacheDir string `mapstructure:"cache_dir"`

	Credentials *credential.CredentialAttributes `mapstructure:"-"`
}

// GetSourceAttributes validates a decoded source map and returns the typed
// configuration. Unrecognized attributes are rejected so a typo in a source
// file fails loudly instead of silently losing an option.
func GetSourceAttributes(in map[string]any) (*SourceConfig, error) {
	credAttributes, err := credential.GetCredentialAttributes(in)
	if err != nil {
		return nil, err
	}

	badFields := make(map[string]string)
	for s := range values.Fields(in) {
		switch s {
		// Ignore known fields from CredentialAttributes
		case credential.ConstCertFilePath:
			continue
		case credential.ConstCertPassword:
			continue
		case credential.ConstToken:
			continue
		case ConstPlugin, ConstURL, ConstCache, ConstCacheDir:
			continue
		default:
			badFields[fmt.Sprintf("attributes.%s", s)] = "unrecognized field"
		}
	}

	plugin, err := values.GetStringValue(in, ConstPlugin, true)
	if err != nil {
		badFields[fmt.Sprintf("attributes.%s", ConstPlugin)] = err.Error()
	} else if _, ok := allowedPluginNames[plugin]; !ok {
		badFields[fmt.Sprintf("attributes.%s", ConstPlugin)] = fmt.Sprintf("unsupported plugin %q", plugin)
	}

	if _, err := values.GetStringValue(in, ConstURL, true); err != nil {
		badFields[fmt.Sprintf("attributes.%s", ConstURL)] = err.Error()
	}

	if _, err := values.GetBoolValue(in, ConstCache, false); err != nil {
		badFields[fmt.Sprintf("attributes.%s", ConstCache)] = err.Error()
	}

	if len(badFields) > 0 {
		return nil, errors.InvalidArgumentError("Invalid arguments in the source configuration", badFields)
	}

	var cfg SourceConfig
	if err := mapstructure.Decode(in, &cfg); err != nil {
		return nil, errors.InvalidArgumentError("Invalid arguments in the source configuration", map[string]string{
			"attributes": err.Error(),
		})
	}
	cfg.Credentials = credAttributes

	return &cfg, nil
}

// LoadSourceConfig reads, parses, and validates a source file.
func LoadSourceConfig(path string) (*SourceConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("error reading source file: %w", err)
	}

	var in map[string]any
	if err := yaml.Unmarshal(data, &in); err != nil {
		return nil, fmt.Errorf("error parsing source file %s: %w", path, err)
	}

	return GetSourceAttributes(in)
}
