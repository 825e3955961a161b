package main

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/fwojciec/catalog"
	cataloghttp "github.com/fwojciec/catalog/http"
	"github.com/fwojciec/catalog/listing"
	"github.com/pelletier/go-toml/v2"
)

// Config holds defaults read from the TOML config file. Command-line flags
// and environment variables take precedence.
type Config struct {
	DB          string  `toml:"db"`
	Remote      string  `toml:"remote"`
	HistoryFile string  `toml:"history_file"`
	PageSize    int     `toml:"page_size"`
	Debounce    string  `toml:"debounce"`
	Timeout     string  `toml:"timeout"`
	Rate        float64 `toml:"rate"`
}

// DefaultConfig returns the built-in configuration.
func DefaultConfig() Config {
	return Config{
		PageSize: catalog.DefaultLimit,
		Debounce: listing.DefaultDelay.String(),
		Timeout:  cataloghttp.DefaultTimeout.String(),
	}
}

// LoadConfig reads the config file at path on top of DefaultConfig.
// A missing file yields the defaults.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return Config{}, fmt.Errorf("failed to read config file: %w", err)
	}

	dec := toml.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&cfg); err != nil {
		return Config{}, fmt.Errorf("failed to parse config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate returns EINVALID if a field is out of range.
func (c Config) Validate() error {
	if c.PageSize < 1 {
		return catalog.Errorf(catalog.EINVALID, "page_size must be at least 1")
	}
	if c.Rate < 0 {
		return catalog.Errorf(catalog.EINVALID, "rate must not be negative")
	}
	if _, err := c.DebounceDuration(); err != nil {
		return err
	}
	if _, err := c.TimeoutDuration(); err != nil {
		return err
	}
	return nil
}

// DebounceDuration returns the settle delay of typed search text.
func (c Config) DebounceDuration() (time.Duration, error) {
	return parseDuration("debounce", c.Debounce, listing.DefaultDelay)
}

// TimeoutDuration returns the per-request timeout of the remote source.
func (c Config) TimeoutDuration() (time.Duration, error) {
	return parseDuration("timeout", c.Timeout, cataloghttp.DefaultTimeout)
}

func parseDuration(field, value string, fallback time.Duration) (time.Duration, error) {
	if value == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(value)
	if err != nil || d <= 0 {
		return 0, catalog.Errorf(catalog.EINVALID, "%s must be a positive duration such as %q", field, fallback.String())
	}
	return d, nil
}
