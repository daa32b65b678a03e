package config

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/DrSkyle/wikipath/pkg/graph"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes every environment override, e.g. WIKIPATH_LISTEN.
const EnvPrefix = "WIKIPATH"

// Config holds every runtime setting.
type Config struct {
	// Graph input. When InputURL is set the files are read from that blob
	// store using NodesPath and EdgesPath as keys.
	NodesPath string `mapstructure:"nodes"`
	EdgesPath string `mapstructure:"edges"`
	InputURL  string `mapstructure:"input_url"`

	Listen string `mapstructure:"listen"`

	// Report location: a directory, s3://bucket/prefix, badger://dir or mem://.
	ReportURL string `mapstructure:"report_url"`
	ReportKey string `mapstructure:"report_key"`

	// Statistics job.
	SampleSize         int           `mapstructure:"sample_size"`
	MaxAttempts        int           `mapstructure:"max_attempts"`
	DistributionSample int           `mapstructure:"distribution_sample"`
	Seed               int64         `mapstructure:"seed"`
	DiameterMode       string        `mapstructure:"diameter_mode"`
	ExactMaxNodes      int           `mapstructure:"exact_max_nodes"`
	ExactTimeout       time.Duration `mapstructure:"exact_timeout"`
	Workers            int           `mapstructure:"workers"`

	// Server.
	RateLimit    float64 `mapstructure:"rate_limit"`
	RateBurst    int     `mapstructure:"rate_burst"`
	SuggestLimit int     `mapstructure:"suggest_limit"`

	LogLevel  string `mapstructure:"log_level"`
	LogFormat string `mapstructure:"log_format"`

	// Telemetry config.
	OtelEndpoint  string `mapstructure:"otel_endpoint"`
	SkipTelemetry bool   `mapstructure:"skip_telemetry"`
}

// SetDefaults registers Default() with v so env vars and config files can
// override individual keys.
func SetDefaults(v *viper.Viper) {
	d := Default()
	v.SetDefault("nodes", d.NodesPath)
	v.SetDefault("edges", d.EdgesPath)
	v.SetDefault("input_url", d.InputURL)
	v.SetDefault("listen", d.Listen)
	v.SetDefault("report_url", d.ReportURL)
	v.SetDefault("report_key", d.ReportKey)
	v.SetDefault("sample_size", d.SampleSize)
	v.SetDefault("max_attempts", d.MaxAttempts)
	v.SetDefault("distribution_sample", d.DistributionSample)
	v.SetDefault("seed", d.Seed)
	v.SetDefault("diameter_mode", d.DiameterMode)
	v.SetDefault("exact_max_nodes", d.ExactMaxNodes)
	v.SetDefault("exact_timeout", d.ExactTimeout)
	v.SetDefault("workers", d.Workers)
	v.SetDefault("rate_limit", d.RateLimit)
	v.SetDefault("rate_burst", d.RateBurst)
	v.SetDefault("suggest_limit", d.SuggestLimit)
	v.SetDefault("log_level", d.LogLevel)
	v.SetDefault("log_format", d.LogFormat)
	v.SetDefault("otel_endpoint", d.OtelEndpoint)
	v.SetDefault("skip_telemetry", d.SkipTelemetry)
}

// Load decodes v into a validated Config. Environment variables named
// WIKIPATH_<KEY> override file values.
func Load(v *viper.Viper) (Config, error) {
	SetDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("failed to decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate rejects settings no component can honor.
func (c Config) Validate() error {
	var errs []error
	if c.SampleSize < 0 {
		errs = append(errs, fmt.Errorf("sample_size must be >= 0, got %d", c.SampleSize))
	}
	if c.MaxAttempts < 0 {
		errs = append(errs, fmt.Errorf("max_attempts must be >= 0, got %d", c.MaxAttempts))
	}
	if c.DistributionSample < 0 {
		errs = append(errs, fmt.Errorf("distribution_sample must be >= 0, got %d", c.DistributionSample))
	}
	if c.ExactMaxNodes < 0 {
		errs = append(errs, fmt.Errorf("exact_max_nodes must be >= 0, got %d", c.ExactMaxNodes))
	}
	if c.ExactTimeout < 0 {
		errs = append(errs, fmt.Errorf("exact_timeout must be >= 0, got %s", c.ExactTimeout))
	}
	if c.Workers < 0 {
		errs = append(errs, fmt.Errorf("workers must be >= 0, got %d", c.Workers))
	}
	if c.RateLimit < 0 || c.RateBurst < 0 {
		errs = append(errs, errors.New("rate_limit and rate_burst must be >= 0"))
	}
	if _, err := graph.ParseDiameterMode(c.DiameterMode); err != nil {
		errs = append(errs, err)
	}
	if _, err := c.SlogLevel(); err != nil {
		errs = append(errs, err)
	}
	switch strings.ToLower(c.LogFormat) {
	case "json", "text":
	default:
		errs = append(errs, fmt.Errorf("log_format must be json or text, got %q", c.LogFormat))
	}
	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

// DiameterOptions translates the diameter settings.
func (c Config) DiameterOptions() graph.DiameterOptions {
	mode, _ := graph.ParseDiameterMode(c.DiameterMode)
	return graph.DiameterOptions{
		Mode:     mode,
		MaxNodes: c.ExactMaxNodes,
		Timeout:  c.ExactTimeout,
		Workers:  c.Workers,
	}
}

// SlogLevel parses LogLevel.
func (c Config) SlogLevel() (slog.Level, error) {
	var l slog.Level
	if err := l.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return slog.LevelInfo, fmt.Errorf("log_level: %w", err)
	}
	return l, nil
}
