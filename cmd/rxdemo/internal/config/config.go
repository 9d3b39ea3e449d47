package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// FileName is the config file LoadOptional looks for.
const FileName = "rxdemo.yaml"

// Source kinds.
const (
	SourceValues   = "values"
	SourceInterval = "interval"
	SourceSQLite   = "sqlite"
)

// Filters.
const (
	FilterNone = ""
	FilterEven = "even"
	FilterOdd  = "odd"
)

// DefaultQuery yields 1..5 without needing any table.
const DefaultQuery = `WITH RECURSIVE seq(n) AS (SELECT 1 UNION ALL SELECT n + 1 FROM seq WHERE n < 5) SELECT n FROM seq`

// Config represents the rxdemo.yaml configuration.
type Config struct {
	LogLevel string         `yaml:"log_level,omitempty"`
	Source   SourceConfig   `yaml:"source"`
	Pipeline PipelineConfig `yaml:"pipeline"`
}

// SourceConfig selects the stream the pipeline starts from.
type SourceConfig struct {
	Kind   string  `yaml:"kind,omitempty"`
	Values []int64 `yaml:"values,omitempty"`

	// interval
	Period int64  `yaml:"period,omitempty"`
	Unit   string `yaml:"unit,omitempty"`

	// sqlite, the query must return a single integer column
	DSN   string `yaml:"dsn,omitempty"`
	Query string `yaml:"query,omitempty"`
}

// PipelineConfig lists the operators applied to the source, in this order:
// start_with, skip, filter, multiply, take.
type PipelineConfig struct {
	StartWith []int64 `yaml:"start_with,omitempty"`
	Skip      int     `yaml:"skip,omitempty"`
	Filter    string  `yaml:"filter,omitempty"`
	Multiply  int64   `yaml:"multiply,omitempty"`

	// nil means unbounded
	Take *int `yaml:"take,omitempty"`
}

// Load reads and validates the config file at path.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return parse(path, data)
}

// LoadOptional reads rxdemo.yaml from dir if present, and returns the
// defaults otherwise.
func LoadOptional(dir string) (*Config, error) {
	path := filepath.Join(dir, FileName)
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			cfg := &Config{}
			cfg.ApplyDefaults()
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read %s: %w", FileName, err)
	}
	return parse(path, data)
}

func parse(path string, data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}

	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid %s: %w", path, err)
	}
	return &cfg, nil
}

// ApplyDefaults fills in every unset field.
func (c *Config) ApplyDefaults() {
	c.LogLevel = strings.ToLower(strings.TrimSpace(c.LogLevel))
	if c.LogLevel == "" {
		c.LogLevel = "info"
	}

	s := &c.Source
	s.Kind = strings.ToLower(strings.TrimSpace(s.Kind))
	if s.Kind == "" {
		s.Kind = SourceValues
	}
	if s.Kind == SourceValues && len(s.Values) == 0 {
		s.Values = []int64{1, 2, 3, 4, 5}
	}
	if s.Unit == "" {
		s.Unit = "100ms"
	}
	if s.DSN == "" {
		s.DSN = ":memory:"
	}
	if s.Query == "" {
		s.Query = DefaultQuery
	}

	c.Pipeline.Filter = strings.ToLower(strings.TrimSpace(c.Pipeline.Filter))
	if c.Pipeline.Multiply == 0 {
		c.Pipeline.Multiply = 1
	}
}

// Validate reports the first invalid setting.
func (c *Config) Validate() error {
	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("unknown log level %q", c.LogLevel)
	}

	switch c.Source.Kind {
	case SourceValues, SourceInterval, SourceSQLite:
	default:
		return fmt.Errorf("unknown source kind %q (use values, interval or sqlite)", c.Source.Kind)
	}
	if c.Source.Period < 0 {
		return fmt.Errorf("source period must not be negative, got %d", c.Source.Period)
	}
	if _, err := c.Source.UnitDuration(); err != nil {
		return err
	}

	switch c.Pipeline.Filter {
	case FilterNone, FilterEven, FilterOdd:
	default:
		return fmt.Errorf("unknown filter %q (use even or odd)", c.Pipeline.Filter)
	}
	if c.Pipeline.Skip < 0 {
		return fmt.Errorf("pipeline skip must not be negative, got %d", c.Pipeline.Skip)
	}
	if c.Pipeline.Take != nil && *c.Pipeline.Take < 0 {
		return fmt.Errorf("pipeline take must not be negative, got %d", *c.Pipeline.Take)
	}
	return nil
}

// UnitDuration parses the interval unit.
func (s SourceConfig) UnitDuration() (time.Duration, error) {
	d, err := time.ParseDuration(s.Unit)
	if err != nil {
		return 0, fmt.Errorf("invalid source unit %q: %w", s.Unit, err)
	}
	if d <= 0 {
		return 0, fmt.Errorf("source unit must be positive, got %s", d)
	}
	return d, nil
}
