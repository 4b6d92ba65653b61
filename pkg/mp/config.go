package mp

import (
	"os"

	"github.com/pkg/errors"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/yaml.v3"
)

// Config holds the tunables of the probabilistic searches and the logging
// level. Every bounded loop in the engine takes its bound from here unless
// the caller passes one explicitly.
type Config struct {
	PrimeAttempts     int    `yaml:"prime_attempts"`      // candidates tried by prime generation
	MillerRabinRounds int    `yaml:"miller_rabin_rounds"` // random witnesses per candidate
	EmbedAttempts     int    `yaml:"embed_attempts"`      // counter values tried when embedding
	LogLevel          string `yaml:"log_level"`
}

// DefaultConfig returns the configuration used when none is supplied.
func DefaultConfig() *Config {
	return &Config{
		PrimeAttempts:     10000,
		MillerRabinRounds: 20,
		EmbedAttempts:     256,
		LogLevel:          "info",
	}
}

// ParseConfig decodes YAML on top of DefaultConfig and validates the result.
func ParseConfig(data []byte) (*Config, error) {
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, errors.Wrap(err, "mp: decoding config")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadConfig reads and parses a YAML configuration file.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "mp: reading config %s", path)
	}
	return ParseConfig(data)
}

// Validate checks that every bound is usable.
func (c *Config) Validate() error {
	if c.PrimeAttempts <= 0 {
		return errors.Errorf("mp: prime_attempts must be positive, got %d", c.PrimeAttempts)
	}
	if c.MillerRabinRounds < 1 {
		return errors.Errorf("mp: miller_rabin_rounds must be positive, got %d", c.MillerRabinRounds)
	}
	if c.EmbedAttempts <= 0 {
		return errors.Errorf("mp: embed_attempts must be positive, got %d", c.EmbedAttempts)
	}
	if _, err := zapcore.ParseLevel(c.LogLevel); err != nil {
		return errors.Wrapf(err, "mp: log_level")
	}
	return nil
}

// Logger builds a production zap logger at the configured level.
func (c *Config) Logger() (*zap.Logger, error) {
	level, err := zapcore.ParseLevel(c.LogLevel)
	if err != nil {
		return nil, errors.Wrapf(err, "mp: log_level")
	}
	zc := zap.NewProductionConfig()
	zc.Level = zap.NewAtomicLevelAt(level)
	l, err := zc.Build()
	if err != nil {
		return nil, errors.Wrap(err, "mp: building logger")
	}
	return l.Named("mpint"), nil
}
