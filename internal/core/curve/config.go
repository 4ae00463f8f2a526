package curve

import (
	"errors"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/zeusync/curve/internal/core/observability/log"
)

// Config holds the tunables of curve stores as found in config files.
type Config struct {
	CacheSize int    `json:"cache_size" yaml:"cache_size"`
	LogLevel  string `json:"log_level" yaml:"log_level"`
}

func DefaultConfig() Config {
	return Config{
		CacheSize: DefaultCacheSize,
		LogLevel:  "info",
	}
}

// LoadConfig decodes YAML on top of DefaultConfig. An empty document yields
// the defaults; unknown keys are rejected.
func LoadConfig(r io.Reader) (Config, error) {
	c := DefaultConfig()
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&c); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, fmt.Errorf("decode curve config: %w", err)
	}
	if err := c.Validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}

func (c Config) Validate() error {
	if c.CacheSize <= 0 || c.CacheSize&(c.CacheSize-1) != 0 {
		return fmt.Errorf("%w: got %d", ErrInvalidCacheSize, c.CacheSize)
	}
	if _, err := log.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("curve config: %w", err)
	}
	return nil
}

// Level returns the parsed log level; invalid levels fall back to info.
func (c Config) Level() log.Level {
	level, _ := log.ParseLevel(c.LogLevel)
	return level
}

// Options converts the config into store options.
func (c Config) Options(logger log.Log) []Option {
	return []Option{
		WithCacheSize(c.CacheSize),
		WithLogger(logger),
	}
}
