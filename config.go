/*
Copyright © 2026 Rezzed AI.

Released under MIT license.
*/

package rategate

import (
	"fmt"
	"time"

	"github.com/acronis/go-appkit/config"
)

const cfgDefaultKeyPrefix = "rateGate"

const (
	cfgKeyLimit    = "limit"
	cfgKeyWindow   = "window"
	cfgKeyCategory = "category"
)

// Default configuration values.
const (
	DefaultWindow   = time.Minute
	DefaultCategory = "rate-limit"
)

// Config represents a set of configuration parameters for the Gate.
// Configuration can be loaded in different formats (YAML, JSON) using config.Loader, viper,
// or with json.Unmarshal/yaml.Unmarshal functions directly.
//
// Limit has no default and must be set explicitly; Window and Category
// fall back to DefaultWindow and DefaultCategory.
// A Config is read once at Gate construction and never mutated afterwards.
type Config struct {
	// Limit is the maximum number of events admitted per key within one window. Must be positive.
	Limit int `mapstructure:"limit" yaml:"limit" json:"limit"`

	// Window is the sliding window duration. Must be positive.
	Window config.TimeDuration `mapstructure:"window" yaml:"window" json:"window"`

	// Category is a label used only in diagnostic messages (RateLimitError).
	Category string `mapstructure:"category" yaml:"category" json:"category"`

	keyPrefix string
}

var _ config.Config = (*Config)(nil)
var _ config.KeyPrefixProvider = (*Config)(nil)

// ConfigOption is a type for functional options for the Config.
type ConfigOption func(*configOptions)

type configOptions struct {
	keyPrefix string
}

// WithKeyPrefix returns a ConfigOption that sets a key prefix for parsing configuration parameters.
// This prefix will be used by config.Loader.
func WithKeyPrefix(keyPrefix string) ConfigOption {
	return func(o *configOptions) {
		o.keyPrefix = keyPrefix
	}
}

// NewConfig creates a new instance of the Config.
func NewConfig(options ...ConfigOption) *Config {
	opts := configOptions{keyPrefix: cfgDefaultKeyPrefix}
	for _, opt := range options {
		opt(&opts)
	}
	return &Config{keyPrefix: opts.keyPrefix}
}

// NewDefaultConfig creates a new instance of the Config with default values.
func NewDefaultConfig(options ...ConfigOption) *Config {
	opts := configOptions{keyPrefix: cfgDefaultKeyPrefix}
	for _, opt := range options {
		opt(&opts)
	}
	return &Config{
		keyPrefix: opts.keyPrefix,
		Window:    config.TimeDuration(DefaultWindow),
		Category:  DefaultCategory,
	}
}

// KeyPrefix returns a key prefix with which all configuration parameters should be presented.
// Implements config.KeyPrefixProvider interface.
func (c *Config) KeyPrefix() string {
	if c.keyPrefix == "" {
		return cfgDefaultKeyPrefix
	}
	return c.keyPrefix
}

// SetProviderDefaults sets default configuration values for the Gate in config.DataProvider.
// Implements config.Config interface.
func (c *Config) SetProviderDefaults(dp config.DataProvider) {
	dp.SetDefault(cfgKeyWindow, DefaultWindow)
	dp.SetDefault(cfgKeyCategory, DefaultCategory)
}

// Set sets Gate configuration values from config.DataProvider.
// Implements config.Config interface.
func (c *Config) Set(dp config.DataProvider) error {
	var err error

	if c.Limit, err = dp.GetInt(cfgKeyLimit); err != nil {
		return err
	}
	if c.Limit <= 0 {
		return dp.WrapKeyErr(cfgKeyLimit, fmt.Errorf("must be positive"))
	}

	var window time.Duration
	if window, err = dp.GetDuration(cfgKeyWindow); err != nil {
		return err
	}
	if window <= 0 {
		return dp.WrapKeyErr(cfgKeyWindow, fmt.Errorf("must be positive"))
	}
	c.Window = config.TimeDuration(window)

	if c.Category, err = dp.GetString(cfgKeyCategory); err != nil {
		return err
	}

	return nil
}
