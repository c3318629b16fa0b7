// Package config loads badbasic settings from TOML or YAML files.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/thomasrohde/badbasic/pkg/policy"
)

// Format represents the configuration file format.
type Format int

const (
	// FormatTOML represents TOML format (default)
	FormatTOML Format = iota

	// FormatYAML represents YAML format
	FormatYAML
)

// String returns the string representation of the format.
func (f Format) String() string {
	switch f {
	case FormatTOML:
		return "toml"
	case FormatYAML:
		return "yaml"
	default:
		return "unknown"
	}
}

// DetectFormat picks the format from the file extension.
func DetectFormat(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		return FormatTOML, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	}
	return 0, fmt.Errorf("config: unsupported file extension %q (want .toml, .yaml or .yml)", filepath.Ext(path))
}

// Config is the complete set of settings.
type Config struct {
	Log    LogConfig   `toml:"log" yaml:"log"`
	Shell  ShellConfig `toml:"shell" yaml:"shell"`
	Run    RunConfig   `toml:"run" yaml:"run"`
	Policy policy.File `toml:"policy" yaml:"policy"`
}

// LogConfig controls structured logging.
type LogConfig struct {
	Level  string `toml:"level" yaml:"level"`
	Format string `toml:"format" yaml:"format"` // console or json
}

// ShellConfig controls the interactive shell.
type ShellConfig struct {
	Prompt      string `toml:"prompt" yaml:"prompt"`
	Banner      bool   `toml:"banner" yaml:"banner"`
	HaltOnFatal bool   `toml:"halt_on_fatal" yaml:"halt_on_fatal"`
	Color       bool   `toml:"color" yaml:"color"`
}

// RunConfig controls program execution.
type RunConfig struct {
	Timeout string `toml:"timeout" yaml:"timeout"` // empty means no limit
}

// Default returns the built-in settings.
func Default() *Config {
	return &Config{
		Log: LogConfig{
			Level:  "info",
			Format: "console",
		},
		Shell: ShellConfig{
			Prompt:      "]",
			Banner:      true,
			HaltOnFatal: true,
			Color:       true,
		},
	}
}

// Load reads a config file. Keys missing from the file keep their defaults.
func Load(path string) (*Config, error) {
	format, err := DetectFormat(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	cfg, err := Parse(data, format)
	if err != nil {
		return nil, fmt.Errorf("config: %s: %w", path, err)
	}
	return cfg, nil
}

// Parse decodes config data on top of the defaults and validates it.
func Parse(data []byte, format Format) (*Config, error) {
	cfg := Default()
	switch format {
	case FormatYAML:
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
			return nil, err
		}
	default:
		md, err := toml.Decode(string(data), cfg)
		if err != nil {
			return nil, err
		}
		if undecoded := md.Undecoded(); len(undecoded) > 0 {
			return nil, fmt.Errorf("unknown key %s", undecoded[0])
		}
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// RunTimeout returns the parsed run timeout, 0 when unset.
func (c *Config) RunTimeout() time.Duration {
	if c.Run.Timeout == "" {
		return 0
	}
	d, err := time.ParseDuration(c.Run.Timeout)
	if err != nil {
		return 0
	}
	return d
}

// BuildPolicy turns the policy section into a policy.
func (c *Config) BuildPolicy() (*policy.Policy, error) {
	return policy.Build(c.Policy)
}
