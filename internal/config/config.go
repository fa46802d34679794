// Package config loads tool configuration from dashmorph.yml with
// environment overrides.
package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Config represents the dashmorph configuration
type Config struct {
	Convert ConvertConfig `mapstructure:"convert"`
	Serve   ServeConfig   `mapstructure:"serve"`
	Watch   WatchConfig   `mapstructure:"watch"`
}

// ConvertConfig controls how panels are converted and laid out
type ConvertConfig struct {
	ForceFallback bool     `mapstructure:"force_fallback"`
	WidgetsPerRow int      `mapstructure:"widgets_per_row"`
	FallbackTypes []string `mapstructure:"fallback_types"`
}

// ServeConfig represents conversion API server configuration
type ServeConfig struct {
	Host string `mapstructure:"host"`
	Port int    `mapstructure:"port"`
}

// WatchConfig represents watch mode configuration
type WatchConfig struct {
	DebounceMS int `mapstructure:"debounce_ms"`
	Port       int `mapstructure:"port"`
}

// Load loads the configuration from dashmorph.yml or dashmorph.yaml
func Load() (*Config, error) {
	v := viper.New()

	// Set defaults
	v.SetDefault("convert.force_fallback", false)
	v.SetDefault("convert.widgets_per_row", 3)
	v.SetDefault("serve.host", "localhost")
	v.SetDefault("serve.port", 8080)
	v.SetDefault("watch.debounce_ms", 250)
	v.SetDefault("watch.port", 4444)

	// Set config name and paths
	v.SetConfigName("dashmorph")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	// Enable environment variable support
	v.SetEnvPrefix("DASHMORPH")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Read config file if it exists
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		// Config file not found - use defaults
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := validateConfig(&config); err != nil {
		return nil, err
	}

	return &config, nil
}

// validateConfig validates the configuration
func validateConfig(cfg *Config) error {
	if cfg.Convert.WidgetsPerRow < 1 || cfg.Convert.WidgetsPerRow > 6 {
		return fmt.Errorf("convert.widgets_per_row must be between 1 and 6, got: %d", cfg.Convert.WidgetsPerRow)
	}
	if cfg.Serve.Port < 1 || cfg.Serve.Port > 65535 {
		return fmt.Errorf("serve.port must be between 1 and 65535, got: %d", cfg.Serve.Port)
	}
	if cfg.Watch.Port < 1 || cfg.Watch.Port > 65535 {
		return fmt.Errorf("watch.port must be between 1 and 65535, got: %d", cfg.Watch.Port)
	}
	if cfg.Watch.DebounceMS < 0 {
		return fmt.Errorf("watch.debounce_ms must not be negative, got: %d", cfg.Watch.DebounceMS)
	}
	return nil
}
