// Package config loads skema CLI and adapter configuration from YAML files
// and SKEMA_* environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"github.com/reoring/skema"
)

// Config is the root configuration.
type Config struct {
	Validation ValidationConfig `mapstructure:"validation"`
	// Language selects issue messages (BCP 47 or Accept-Language form).
	Language string `mapstructure:"language"`
	// Format is the default input format: json, yaml or cbor.
	Format string    `mapstructure:"format"`
	Log    LogConfig `mapstructure:"log"`
}

// ValidationConfig maps onto skema.ParseOpt.
type ValidationConfig struct {
	// Mode: aggregate or fail_fast
	Mode     string `mapstructure:"mode"`
	MaxDepth int    `mapstructure:"max_depth"`
	MaxBytes int64  `mapstructure:"max_bytes"`
	// DuplicateKeys: ignore, warn or error
	DuplicateKeys string `mapstructure:"duplicate_keys"`
}

// LogConfig defines logger settings.
type LogConfig struct {
	// Level: debug, info, warn, error
	Level string `mapstructure:"level"`
	// Format: console or json
	Format string `mapstructure:"format"`
	// Outputs: stdout, stderr, or file paths
	Outputs     []string       `mapstructure:"outputs"`
	Rotation    RotationConfig `mapstructure:"rotation"`
	Development bool           `mapstructure:"development"`
}

// RotationConfig controls rotation of file outputs.
type RotationConfig struct {
	Enable     bool `mapstructure:"enable"`
	MaxSizeMB  int  `mapstructure:"max_size_mb"`
	MaxBackups int  `mapstructure:"max_backups"`
	MaxAgeDays int  `mapstructure:"max_age_days"`
	Compress   bool `mapstructure:"compress"`
}

// Default returns a Config populated with defaults.
func Default() *Config {
	return &Config{
		Validation: ValidationConfig{
			Mode:          "aggregate",
			MaxDepth:      128,
			MaxBytes:      8 << 20,
			DuplicateKeys: "error",
		},
		Language: "en",
		Format:   "json",
		Log: LogConfig{
			Level:   "info",
			Format:  "console",
			Outputs: []string{"stderr"},
			Rotation: RotationConfig{
				MaxSizeMB:  50,
				MaxBackups: 3,
				MaxAgeDays: 28,
				Compress:   true,
			},
		},
	}
}

// Load reads configuration from path when non-empty, otherwise from
// SKEMA_CONFIG or skema.yaml in the working directory or ~/.skema. A missing
// file is not an error. Environment variables use the prefix SKEMA with
// `.` replaced by `_`, e.g. SKEMA_VALIDATION_MAX_DEPTH=32.
func Load(path string) (*Config, error) {
	cfg := Default()

	v := viper.New()
	v.SetConfigType("yaml")
	v.SetEnvPrefix("SKEMA")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	v.SetDefault("validation.mode", cfg.Validation.Mode)
	v.SetDefault("validation.max_depth", cfg.Validation.MaxDepth)
	v.SetDefault("validation.max_bytes", cfg.Validation.MaxBytes)
	v.SetDefault("validation.duplicate_keys", cfg.Validation.DuplicateKeys)
	v.SetDefault("language", cfg.Language)
	v.SetDefault("format", cfg.Format)
	v.SetDefault("log.level", cfg.Log.Level)
	v.SetDefault("log.format", cfg.Log.Format)
	v.SetDefault("log.outputs", cfg.Log.Outputs)
	v.SetDefault("log.development", cfg.Log.Development)
	v.SetDefault("log.rotation.enable", cfg.Log.Rotation.Enable)
	v.SetDefault("log.rotation.max_size_mb", cfg.Log.Rotation.MaxSizeMB)
	v.SetDefault("log.rotation.max_backups", cfg.Log.Rotation.MaxBackups)
	v.SetDefault("log.rotation.max_age_days", cfg.Log.Rotation.MaxAgeDays)
	v.SetDefault("log.rotation.compress", cfg.Log.Rotation.Compress)

	if path == "" {
		path = os.Getenv("SKEMA_CONFIG")
	}
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("skema")
		v.AddConfigPath(".")
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, ".skema"))
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	c.Validation.Mode = normalize(c.Validation.Mode)
	switch c.Validation.Mode {
	case "aggregate", "fail_fast":
	default:
		return fmt.Errorf("invalid validation.mode: %q", c.Validation.Mode)
	}
	c.Validation.DuplicateKeys = normalize(c.Validation.DuplicateKeys)
	switch c.Validation.DuplicateKeys {
	case "ignore", "warn", "error":
	default:
		return fmt.Errorf("invalid validation.duplicate_keys: %q", c.Validation.DuplicateKeys)
	}
	if c.Validation.MaxDepth < 0 || c.Validation.MaxBytes < 0 {
		return errors.New("validation limits must not be negative")
	}
	c.Format = normalize(c.Format)
	switch c.Format {
	case "json", "yaml", "cbor":
	default:
		return fmt.Errorf("invalid format: %q", c.Format)
	}
	switch normalize(c.Log.Level) {
	case "debug", "info", "warn", "warning", "error":
	default:
		return fmt.Errorf("invalid log.level: %q", c.Log.Level)
	}
	if c.Log.Format == "" {
		c.Log.Format = "console"
	}
	if len(c.Log.Outputs) == 0 {
		c.Log.Outputs = []string{"stderr"}
	}
	return nil
}

func normalize(s string) string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimSpace(s)), "-", "_")
}

// ParseOpt converts the validation settings into skema options.
func (c *Config) ParseOpt() skema.ParseOpt {
	opt := skema.ParseOpt{
		MaxDepth: c.Validation.MaxDepth,
		MaxBytes: c.Validation.MaxBytes,
	}
	if c.Validation.Mode == "fail_fast" {
		opt.Mode = skema.FailFast
	}
	switch c.Validation.DuplicateKeys {
	case "warn":
		opt.Strictness.OnDuplicateKey = skema.Warn
	case "error":
		opt.Strictness.OnDuplicateKey = skema.Error
	}
	return opt
}
