// Package config defines the data structures related to configuration and
// includes functions for loading and validating the quote configuration.
package config

import (
	"fmt"
	"io"

	"github.com/iwvelando/financing-schedule/pkg/constants"
	"github.com/iwvelando/financing-schedule/pkg/rate"
	"github.com/iwvelando/financing-schedule/pkg/validation"
	"github.com/spf13/viper"
)

// DateTimeLayout is the format expected in config files and is also the output
// date format.
const DateTimeLayout = constants.DateTimeLayout

// Configuration holds all configuration for financing-schedule.
type Configuration struct {
	Logging    LoggingConfig    `yaml:"logging,omitempty"`
	Output     OutputConfig     `yaml:"output,omitempty"`
	Pagination PaginationConfig `yaml:"pagination,omitempty"`
	Redis      RedisConfig      `yaml:"redis,omitempty"`
	Rates      []RateEntry      `yaml:"rates,omitempty"`
	Quotes     []Quote          `yaml:"quotes,omitempty"`
}

// LoggingConfig holds logging configuration options
type LoggingConfig struct {
	Level      string `yaml:"level,omitempty"`      // debug, info, warn, error
	Format     string `yaml:"format,omitempty"`     // json, console
	OutputFile string `yaml:"outputFile,omitempty"` // optional file output
}

// OutputConfig holds output format configuration options
type OutputConfig struct {
	Format string `yaml:"format,omitempty"` // pretty, csv
}

// PaginationConfig holds the defaults list screens use for their page control.
type PaginationConfig struct {
	SiblingCount  *int `yaml:"siblingCount,omitempty"`
	BoundaryCount *int `yaml:"boundaryCount,omitempty"`
	PageSize      int  `yaml:"pageSize,omitempty"`
}

// RedisConfig enables the Redis-backed financing rate source when Address is set.
type RedisConfig struct {
	Address   string `yaml:"address,omitempty"`
	Password  string `yaml:"password,omitempty"`
	DB        int    `yaml:"db,omitempty"`
	KeyPrefix string `yaml:"keyPrefix,omitempty"`
}

// RateEntry is a financing rate configured under a lookup key.
type RateEntry struct {
	Key       string  `yaml:"key"`
	ValueKind string  `yaml:"valueKind"`
	Value     float64 `yaml:"value"`
}

// LoadConfiguration takes a file path as input and loads the YAML-formatted
// configuration there.
func LoadConfiguration(configPath string) (*Configuration, error) {
	v := viper.New()
	v.SetConfigFile(configPath)
	v.AutomaticEnv()
	v.SetConfigType("yml")

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("error reading config file, %s", err)
	}

	return decode(v)
}

// LoadConfigurationFromReader loads YAML-formatted configuration from r.
func LoadConfigurationFromReader(r io.Reader) (*Configuration, error) {
	v := viper.New()
	v.SetConfigType("yml")

	if err := v.ReadConfig(r); err != nil {
		return nil, fmt.Errorf("error reading config data, %s", err)
	}

	return decode(v)
}

func decode(v *viper.Viper) (*Configuration, error) {
	var configuration Configuration
	if err := v.Unmarshal(&configuration); err != nil {
		return nil, fmt.Errorf("unable to decode into struct, %s", err)
	}
	configuration.ApplyDefaults()
	return &configuration, nil
}

// ApplyDefaults fills unset optional values.
func (c *Configuration) ApplyDefaults() {
	if c.Pagination.SiblingCount == nil {
		siblings := constants.DefaultSiblingCount
		c.Pagination.SiblingCount = &siblings
	}
	if c.Pagination.BoundaryCount == nil {
		boundaries := constants.DefaultBoundaryCount
		c.Pagination.BoundaryCount = &boundaries
	}
	if c.Pagination.PageSize <= 0 {
		c.Pagination.PageSize = constants.DefaultPageSize
	}
	if c.Pagination.PageSize > constants.MaxPageSize {
		c.Pagination.PageSize = constants.MaxPageSize
	}
	if c.Redis.KeyPrefix == "" {
		c.Redis.KeyPrefix = constants.DefaultRedisKeyPrefix
	}
}

// RateTable converts the configured rate entries into normalized rates keyed
// by lookup key. Unknown value kinds and duplicate keys are errors.
func (c *Configuration) RateTable() (map[string]rate.Rate, error) {
	table := make(map[string]rate.Rate, len(c.Rates))
	for _, entry := range c.Rates {
		if entry.Key == "" {
			return nil, fmt.Errorf("rate entry with value %v has no key", entry.Value)
		}
		if _, exists := table[entry.Key]; exists {
			return nil, fmt.Errorf("duplicate rate key %q", entry.Key)
		}
		r, err := rate.New(entry.ValueKind, entry.Value)
		if err != nil {
			return nil, fmt.Errorf("rate %q: %w", entry.Key, err)
		}
		table[entry.Key] = r
	}
	return table, nil
}

// ValidateConfiguration performs general validation of the configuration and returns warnings
func (c *Configuration) ValidateConfiguration() []string {
	keys := make(map[string]struct{}, len(c.Rates))
	for _, entry := range c.Rates {
		keys[entry.Key] = struct{}{}
	}

	validator := validation.ConfigValidator{
		KnownRateKeys: keys,
		RemoteRates:   c.Redis.Address != "",
	}
	for _, entry := range c.Rates {
		validator.Rates = append(validator.Rates, validation.RateConfig{
			Key:       entry.Key,
			ValueKind: entry.ValueKind,
			Value:     entry.Value,
		})
	}
	for _, quote := range c.Quotes {
		validator.Quotes = append(validator.Quotes, validation.QuoteConfig{
			Name:          quote.Name,
			StartDate:     quote.StartDate,
			TermMonths:    quote.TermMonths,
			RateKey:       quote.RateKey,
			HasInlineRate: quote.Rate != nil,
			Principal:     quote.Components.Principal(),
			NoComponents:  quote.Components.Empty(),
		})
	}

	return validator.ValidateAll()
}
