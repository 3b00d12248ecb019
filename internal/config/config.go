// Package config loads gherk project settings.
package config

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/spf13/viper"

	"github.com/chriserin/gherk/internal/i18n"
)

// FileName is the base name of the optional project config file.
const FileName = "gherk"

// Config represents the gherk configuration
type Config struct {
	FeaturesDir        string `mapstructure:"features_dir"`
	Database           string `mapstructure:"database"`
	Language           string `mapstructure:"language"`
	StrictContinuation bool   `mapstructure:"strict_continuation"`
	Workers            int    `mapstructure:"workers"`
}

// Load reads gherk.yaml from dir if present, then GHERK_* environment
// variables, on top of the defaults.
func Load(dir string) (*Config, error) {
	v := viper.New()

	v.SetDefault("features_dir", "features")
	v.SetDefault("database", filepath.Join("features", "gherk.db"))
	v.SetDefault("language", i18n.DefaultLanguage)
	v.SetDefault("strict_continuation", false)
	v.SetDefault("workers", 4)

	v.SetConfigName(FileName)
	v.SetConfigType("yaml")
	v.AddConfigPath(dir)

	v.SetEnvPrefix("GHERK")
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	if c.Workers < 1 {
		return fmt.Errorf("workers must be at least 1, got: %d", c.Workers)
	}
	if c.FeaturesDir == "" {
		return fmt.Errorf("features_dir must not be empty")
	}
	if _, err := i18n.Default().Resolve(c.Language); err != nil {
		return fmt.Errorf("language: %w", err)
	}
	return nil
}
