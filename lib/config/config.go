// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"errors"
	"fmt"
	"os"
	"regexp"

	"gopkg.in/yaml.v3"

	"github.com/lequynhnhu/core/lib/envelope"
)

// EnvironmentVariable names the file Load reads.
const EnvironmentVariable = "TAGCODEC_CONFIG"

// Environment represents the deployment environment.
type Environment string

const (
	// Development is for interactive use on a workstation.
	Development Environment = "development"
	// Production is for scripted use in pipelines and services.
	Production Environment = "production"
)

// ColorMode controls styled output.
type ColorMode string

const (
	// ColorAuto styles output only when stdout is a terminal.
	ColorAuto ColorMode = "auto"
	// ColorAlways styles output unconditionally.
	ColorAlways ColorMode = "always"
	// ColorNever never styles output.
	ColorNever ColorMode = "never"
)

// Config is the master configuration.
type Config struct {
	// Environment identifies the deployment type.
	Environment Environment `yaml:"environment"`

	// Output configures how decoded values are printed.
	Output OutputConfig `yaml:"output"`

	// Envelope configures envelope wrapping and sealing.
	Envelope EnvelopeConfig `yaml:"envelope"`

	// Limits bounds the resources a command may use.
	Limits LimitsConfig `yaml:"limits"`

	// Development and Production are applied over the base values
	// when Environment matches.
	Development *ConfigOverrides `yaml:"development,omitempty"`
	Production  *ConfigOverrides `yaml:"production,omitempty"`
}

// ConfigOverrides contains fields that can be overridden per environment.
type ConfigOverrides struct {
	Output   *OutputConfig   `yaml:"output,omitempty"`
	Envelope *EnvelopeConfig `yaml:"envelope,omitempty"`
	Limits   *LimitsConfig   `yaml:"limits,omitempty"`
}

// OutputConfig configures printed output.
type OutputConfig struct {
	// Compact prints JSON on a single line.
	// Default: false (development), true (production)
	Compact bool `yaml:"compact"`

	// Color is auto, always or never.
	// Default: auto (development), never (production)
	Color ColorMode `yaml:"color"`
}

// EnvelopeConfig configures envelopes.
type EnvelopeConfig struct {
	// Compression is none, lz4 or zstd.
	// Default: lz4 (development), zstd (production)
	Compression string `yaml:"compression"`

	// Recipients are the age public keys "seal" encrypts to when no
	// --recipient flag is given.
	Recipients []string `yaml:"recipients"`

	// IdentityFile is the age identity file "open" reads when no
	// --identity flag is given.
	IdentityFile string `yaml:"identity_file"`
}

// LimitsConfig bounds resource use.
type LimitsConfig struct {
	// MaxInputBytes caps the size of any input, and of any envelope
	// payload after decompression.
	// Default: 64 MiB
	MaxInputBytes int `yaml:"max_input_bytes"`
}

// Default returns the default configuration, used as the base before
// a config file is loaded and on its own when there is no file.
func Default() *Config {
	return &Config{
		Environment: Development,
		Output: OutputConfig{
			Compact: false,
			Color:   ColorAuto,
		},
		Envelope: EnvelopeConfig{
			Compression: envelope.CompressionLZ4.String(),
		},
		Limits: LimitsConfig{
			MaxInputBytes: 64 << 20,
		},
	}
}

// Load loads configuration from the file named by TAGCODEC_CONFIG.
// It fails when the variable is not set; callers that can run without
// a file check the variable first.
func Load() (*Config, error) {
	configPath := os.Getenv(EnvironmentVariable)
	if configPath == "" {
		return nil, fmt.Errorf("%s environment variable not set; "+
			"set it to the path of your tagcodec.yaml config file, or use --config flag", EnvironmentVariable)
	}
	return LoadFile(configPath)
}

// LoadFile loads configuration from a specific file path.
func LoadFile(path string) (*Config, error) {
	cfg := Default()

	if err := cfg.loadFile(path); err != nil {
		return nil, err
	}

	cfg.applyEnvironmentOverrides()
	cfg.expandVariables()

	return cfg, nil
}

func (c *Config) loadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("parse %s: %w", path, err)
	}
	return nil
}

// applyEnvironmentOverrides applies the section matching Environment.
func (c *Config) applyEnvironmentOverrides() {
	var overrides *ConfigOverrides

	switch c.Environment {
	case Development:
		overrides = c.Development
	case Production:
		overrides = c.Production
		// Production defaults: machine-readable output and the
		// stronger compression.
		if overrides == nil {
			overrides = &ConfigOverrides{
				Output: &OutputConfig{
					Compact: true,
					Color:   ColorNever,
				},
				Envelope: &EnvelopeConfig{
					Compression: envelope.CompressionZstd.String(),
				},
			}
		}
	}

	if overrides == nil {
		return
	}

	if overrides.Output != nil {
		// Compact is a bool, so it always applies from overrides.
		c.Output.Compact = overrides.Output.Compact
		if overrides.Output.Color != "" {
			c.Output.Color = overrides.Output.Color
		}
	}

	if overrides.Envelope != nil {
		if overrides.Envelope.Compression != "" {
			c.Envelope.Compression = overrides.Envelope.Compression
		}
		if len(overrides.Envelope.Recipients) > 0 {
			c.Envelope.Recipients = overrides.Envelope.Recipients
		}
		if overrides.Envelope.IdentityFile != "" {
			c.Envelope.IdentityFile = overrides.Envelope.IdentityFile
		}
	}

	if overrides.Limits != nil {
		if overrides.Limits.MaxInputBytes != 0 {
			c.Limits.MaxInputBytes = overrides.Limits.MaxInputBytes
		}
	}
}

// expandVariables expands ${VAR} and ${VAR:-default} patterns in paths.
func (c *Config) expandVariables() {
	vars := map[string]string{
		"HOME": os.Getenv("HOME"),
	}
	c.Envelope.IdentityFile = expandVars(c.Envelope.IdentityFile, vars)
}

var varPattern = regexp.MustCompile(`\$\{([^}:]+)(?::-([^}]*))?\}`)

func expandVars(s string, vars map[string]string) string {
	return varPattern.ReplaceAllStringFunc(s, func(match string) string {
		parts := varPattern.FindStringSubmatch(match)
		if len(parts) < 2 {
			return match
		}

		name := parts[1]
		defaultValue := ""
		if len(parts) >= 3 {
			defaultValue = parts[2]
		}

		// Provided vars first, then the environment.
		if value, ok := vars[name]; ok && value != "" {
			return value
		}
		if value := os.Getenv(name); value != "" {
			return value
		}
		return defaultValue
	})
}

// Compression returns the configured envelope compression.
func (c *Config) Compression() (envelope.Compression, error) {
	return envelope.ParseCompression(c.Envelope.Compression)
}

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	var errs []error

	if c.Environment != Development && c.Environment != Production {
		errs = append(errs, fmt.Errorf("invalid environment: %s", c.Environment))
	}

	switch c.Output.Color {
	case ColorAuto, ColorAlways, ColorNever:
	default:
		errs = append(errs, fmt.Errorf("output.color must be auto, always or never, got %q", c.Output.Color))
	}

	if _, err := c.Compression(); err != nil {
		errs = append(errs, fmt.Errorf("envelope.compression: %w", err))
	}

	if len(c.Envelope.Recipients) > 0 {
		if _, err := envelope.ParseRecipients(c.Envelope.Recipients); err != nil {
			errs = append(errs, fmt.Errorf("envelope.recipients: %w", err))
		}
	}

	if c.Limits.MaxInputBytes <= 0 {
		errs = append(errs, fmt.Errorf("limits.max_input_bytes must be positive, got %d", c.Limits.MaxInputBytes))
	}

	if len(errs) > 0 {
		return errors.Join(errs...)
	}
	return nil
}
