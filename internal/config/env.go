package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"

	"github.com/morozRed/cratemap/internal/fileutil"
)

// EnvPrefix prefixes every environment override, e.g. CRATEMAP_INDEX.
const EnvPrefix = "CRATEMAP_"

// LoadDotEnv reads KEY=value pairs from path into the process environment
// without overriding variables that are already set. A missing file is not
// an error.
func LoadDotEnv(path string) error {
	if path == "" {
		path = ".env"
	}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		return fmt.Errorf("failed to load %s: %w", path, err)
	}
	return nil
}

// ApplyEnv overrides c with CRATEMAP_* variables. Lists are comma separated.
// It sits between the config file and command-line flags.
func (c *Config) ApplyEnv(lookup func(string) (string, bool)) error {
	if lookup == nil {
		lookup = os.LookupEnv
	}
	get := func(key string) (string, bool) {
		value, ok := lookup(EnvPrefix + key)
		value = strings.TrimSpace(value)
		return value, ok && value != ""
	}

	if value, ok := get("INDEX"); ok {
		c.Index = value
	}
	if value, ok := get("FILTERS"); ok {
		c.Filters = fileutil.DedupeStrings(strings.Split(value, ","))
	}
	if value, ok := get("EXCLUDE"); ok {
		c.Exclude = fileutil.DedupeStrings(strings.Split(value, ","))
	}
	if value, ok := get("LOG_LEVEL"); ok {
		c.LogLevel = value
	}
	if value, ok := get("FORMAT"); ok {
		c.Format = Format(value)
	}
	for key, target := range map[string]*int{"WORKERS": &c.Workers, "MAX_DEPTH": &c.MaxDepth} {
		value, ok := get(key)
		if !ok {
			continue
		}
		n, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("invalid %s%s %q: %w", EnvPrefix, key, value, err)
		}
		*target = n
	}
	return nil
}
