// Package config loads perevod settings from flags, environment and an
// optional YAML file through viper.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/valpere/perevod/internal/translator"
)

const EnvPrefix = "PEREVOD"

type Config struct {
	Endpoint   string        `mapstructure:"endpoint"`
	Timeout    time.Duration `mapstructure:"timeout"`
	RetryDelay time.Duration `mapstructure:"retry_delay"`
	Host       string        `mapstructure:"host"`
	DB         string        `mapstructure:"db"`

	// Cache enables the translation memory. Off by default: every
	// invocation then sends exactly one request.
	Cache bool `mapstructure:"cache"`

	Log    LogConfig    `mapstructure:"log"`
	Server ServerConfig `mapstructure:"server"`
	Batch  BatchConfig  `mapstructure:"batch"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

type ServerConfig struct {
	Addr string `mapstructure:"addr"`
}

type BatchConfig struct {
	Workers int `mapstructure:"workers"`
}

// SetDefaults registers every key so env variables are picked up by Unmarshal.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("endpoint", translator.DefaultEndpoint)
	v.SetDefault("timeout", translator.DefaultTimeout)
	v.SetDefault("retry_delay", translator.DefaultRetryDelay)
	v.SetDefault("host", translator.HostNative.String())
	v.SetDefault("db", "./data/perevod.db")
	v.SetDefault("cache", false)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")
	v.SetDefault("server.addr", ":8080")
	v.SetDefault("batch.workers", 4)
}

// BindEnv makes PEREVOD_LOG_LEVEL and friends override file values.
func BindEnv(v *viper.Viper) {
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
}

// Load decodes v and validates the result.
func Load(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) Validate() error {
	var errs []error
	if strings.TrimSpace(c.Endpoint) == "" {
		errs = append(errs, errors.New("endpoint must not be empty"))
	}
	if c.Timeout <= 0 {
		errs = append(errs, fmt.Errorf("timeout must be positive, got %s", c.Timeout))
	}
	if c.RetryDelay < 0 {
		errs = append(errs, fmt.Errorf("retry_delay must not be negative, got %s", c.RetryDelay))
	}
	if _, err := translator.ParseHost(c.Host); err != nil {
		errs = append(errs, err)
	}
	if _, err := zapcore.ParseLevel(c.Log.Level); err != nil {
		errs = append(errs, fmt.Errorf("log.level: %w", err))
	}
	switch c.Log.Format {
	case "json", "console":
	default:
		errs = append(errs, fmt.Errorf("log.format must be json or console, got %q", c.Log.Format))
	}
	if c.Batch.Workers <= 0 {
		errs = append(errs, fmt.Errorf("batch.workers must be positive, got %d", c.Batch.Workers))
	}
	if len(errs) > 0 {
		return fmt.Errorf("invalid config: %w", errors.Join(errs...))
	}
	return nil
}

// HostMode is the parsed Host; Validate has already checked it.
func (c *Config) HostMode() translator.Host {
	h, _ := translator.ParseHost(c.Host)
	return h
}

// NewLogger builds a production zap logger at the configured level.
// The console format switches to the development encoder.
func (c LogConfig) NewLogger() (*zap.Logger, error) {
	level, err := zapcore.ParseLevel(c.Level)
	if err != nil {
		return nil, err
	}

	cfg := zap.NewProductionConfig()
	if c.Format == "console" {
		cfg = zap.NewDevelopmentConfig()
	}
	cfg.Level = zap.NewAtomicLevelAt(level)
	cfg.OutputPaths = []string{"stderr"}
	return cfg.Build()
}
