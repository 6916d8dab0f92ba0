// Copyright 2025 Meshline Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package config loads and persists the meshctl YAML configuration
// under the XDG config directory.
package config

import (
	"fmt"
	"strings"

	"github.com/meshline/meshctl/internal/client"
	"github.com/meshline/meshctl/internal/output"
	"github.com/meshline/meshctl/internal/session"
	"github.com/meshline/meshctl/internal/tier"
	"github.com/meshline/meshctl/pkg/errors"
)

// Config is the persisted meshctl configuration.
type Config struct {
	// Version is the config schema version.
	Version int `yaml:"version"`

	// API configures the fabric endpoint.
	API APIConfig `yaml:"api"`

	// Defaults seed new sessions.
	Defaults DefaultsConfig `yaml:"defaults"`

	// Quota holds client-side quota rules evaluated before dispatch.
	Quota []tier.QuotaRule `yaml:"quota,omitempty"`

	// Log configures logging.
	Log LogConfig `yaml:"log"`
}

// APIConfig configures the fabric endpoint.
type APIConfig struct {
	// BaseURL is the fabric API base URL.
	BaseURL string `yaml:"base_url"`

	// TimeoutSeconds bounds one request. Zero selects the transport
	// default.
	TimeoutSeconds int `yaml:"timeout_seconds,omitempty"`
}

// DefaultsConfig seeds new sessions.
type DefaultsConfig struct {
	// Namespace is the initial session namespace.
	Namespace string `yaml:"namespace"`

	// Format is the initial output format name.
	Format string `yaml:"format"`
}

// LogConfig configures logging.
type LogConfig struct {
	// Level is trace, debug, info, warn, or error.
	Level string `yaml:"level"`

	// Format is json or text.
	Format string `yaml:"format"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Version: 1,
		API:     APIConfig{BaseURL: client.DefaultBaseURL},
		Defaults: DefaultsConfig{
			Namespace: session.DefaultNamespace,
			Format:    string(output.DefaultFormat),
		},
		Log: LogConfig{Level: "info", Format: "text"},
	}
}

// applyDefaults fills missing fields so a partial file still yields a
// usable configuration.
func (c *Config) applyDefaults() {
	def := Default()
	if c.Version == 0 {
		c.Version = def.Version
	}
	if c.API.BaseURL == "" {
		c.API.BaseURL = def.API.BaseURL
	}
	if c.Defaults.Namespace == "" {
		c.Defaults.Namespace = def.Defaults.Namespace
	}
	if c.Defaults.Format == "" {
		c.Defaults.Format = def.Defaults.Format
	}
	if c.Log.Level == "" {
		c.Log.Level = def.Log.Level
	}
	if c.Log.Format == "" {
		c.Log.Format = def.Log.Format
	}
}

// Validate checks field values that would otherwise fail deep inside
// the stack.
func (c *Config) Validate() error {
	if !output.Format(strings.ToLower(strings.TrimSpace(c.Defaults.Format))).Valid() {
		return &errors.ConfigError{
			Key:    "defaults.format",
			Reason: fmt.Sprintf("unrecognized output format %q", c.Defaults.Format),
		}
	}
	for _, rule := range c.Quota {
		if rule.Name == "" {
			return &errors.ConfigError{
				Key:    "quota",
				Reason: "quota rules require a name",
			}
		}
	}
	return nil
}
