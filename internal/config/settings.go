// Package config holds the CLI configuration: viper-loaded settings
// (backend URL, auth path, timeouts, logging) and the yaml credentials
// store with named profiles under ~/.crestline.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Settings are the non-credential knobs of the CLI.
type Settings struct {
	API     APIConfig     `mapstructure:"api"`
	Logging LoggingConfig `mapstructure:"logging"`
}

type APIConfig struct {
	URL      string        `mapstructure:"url"`
	AuthPath string        `mapstructure:"auth_path"`
	Timeout  time.Duration `mapstructure:"timeout"`
}

type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// DefaultSettings returns the built-in defaults, used when no settings
// can be loaded at all.
func DefaultSettings() *Settings {
	return &Settings{
		API: APIConfig{
			URL:      "http://localhost:8080",
			AuthPath: "/oauth/token",
			Timeout:  30 * time.Second,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

// LoadSettings reads settings from the given file (optional), with
// CRESTLINE_* environment variables overriding file values and defaults.
func LoadSettings(configPath string) (*Settings, error) {
	v := viper.New()

	v.SetDefault("api.url", "http://localhost:8080")
	v.SetDefault("api.auth_path", "/oauth/token")
	v.SetDefault("api.timeout", "30s")
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "text")

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("settings")
		v.SetConfigType("yaml")
		v.AddConfigPath("$HOME/.crestline")
		v.AddConfigPath(".")
	}

	v.SetEnvPrefix("CRESTLINE")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
		// No config file; defaults and environment apply.
	}

	var s Settings
	if err := v.Unmarshal(&s); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return &s, nil
}
