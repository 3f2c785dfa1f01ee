// Package config loads .cratemap.yaml. Command-line flags override file values.
package config

import (
	"errors"
	"fmt"
	"os"
	"runtime"
	"strings"

	"github.com/hashicorp/go-multierror"
	"gopkg.in/yaml.v3"

	"github.com/morozRed/cratemap/internal/fileutil"
)

const FileName = ".cratemap.yaml"

type Format string

const (
	FormatText Format = "text"
	FormatJSON Format = "json"
)

func ParseFormat(value string) (Format, error) {
	switch Format(strings.ToLower(strings.TrimSpace(value))) {
	case "", FormatText:
		return FormatText, nil
	case FormatJSON:
		return FormatJSON, nil
	default:
		return "", fmt.Errorf("unsupported format %q (supported: text, json)", value)
	}
}

type Config struct {
	// Index is the rustdoc JSON file to analyse.
	Index    string   `yaml:"index"`
	Filters  []string `yaml:"filters,omitempty"`
	Exclude  []string `yaml:"exclude,omitempty"`
	MaxDepth int      `yaml:"max_depth"`
	Workers  int      `yaml:"workers"`
	LogLevel string   `yaml:"log_level"`
	Format   Format   `yaml:"format"`
}

func Default() Config {
	return Config{
		Workers:  runtime.NumCPU(),
		LogLevel: "info",
		Format:   FormatText,
	}
}

// Load reads path over the defaults. A missing file yields the defaults
// unless required is set.
func Load(path string, required bool) (Config, error) {
	cfg := Default()
	if path == "" {
		path = FileName
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) && !required {
			return cfg, nil
		}
		return cfg, fmt.Errorf("failed to read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate normalizes c and reports every invalid field at once.
func (c *Config) Validate() error {
	var result *multierror.Error
	if format, err := ParseFormat(string(c.Format)); err != nil {
		result = multierror.Append(result, err)
	} else {
		c.Format = format
	}
	if c.Workers < 1 {
		result = multierror.Append(result, fmt.Errorf("workers must be >= 1, got %d", c.Workers))
	}
	if c.MaxDepth < 0 {
		result = multierror.Append(result, fmt.Errorf("max_depth must be >= 0, got %d", c.MaxDepth))
	}
	switch strings.ToLower(c.LogLevel) {
	case "", "debug", "info", "warn", "warning", "error":
	default:
		result = multierror.Append(result, fmt.Errorf("unsupported log_level %q", c.LogLevel))
	}
	return result.ErrorOrNil()
}

// Save writes c to path as YAML and reports whether the file changed.
func Save(path string, c Config) (bool, error) {
	data, err := yaml.Marshal(c)
	if err != nil {
		return false, fmt.Errorf("failed to encode config: %w", err)
	}
	return fileutil.WriteIfChangedTracked(path, data)
}
