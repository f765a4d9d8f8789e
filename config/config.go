package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"github.com/s0up4200/rallyctl/rally"
)

// EnvPrefix prefixes environment overrides, e.g. RALLYCTL_RALLY_PASSWORD
const EnvPrefix = "RALLYCTL"

// Load loads the configuration from file and environment. A missing
// config file is not an error when credentials come from the environment.
func Load(configPath string) (*Config, error) {
	v := viper.New()

	// Set default values
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		// Look for config in standard locations
		v.SetConfigName("config")
		v.SetConfigType("yaml")

		// Check current directory first
		v.AddConfigPath(".")

		// Check home directory
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, ".rallyctl"))
		}

		// Check /etc
		v.AddConfigPath("/etc/rallyctl/")
	}

	// Read config file
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) || configPath != "" {
			return nil, fmt.Errorf("error reading config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	// Validate configuration
	if err := validate(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// setDefaults sets default configuration values. Every key needs a
// default so AutomaticEnv can override it during Unmarshal.
func setDefaults(v *viper.Viper) {
	// Rally defaults
	v.SetDefault("rally.host", rally.DefaultHost)
	v.SetDefault("rally.username", "")
	v.SetDefault("rally.password", "")
	v.SetDefault("rally.workspace", "")
	v.SetDefault("rally.protocol_version", rally.DefaultProtocolVersion)
	v.SetDefault("rally.user_agent", rally.DefaultUserAgent)
	v.SetDefault("rally.timeout", rally.DefaultTimeout)
	v.SetDefault("rally.concurrency", rally.DefaultConcurrency)

	// Logging defaults
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")
	v.SetDefault("logging.color", true)

	// Output defaults
	v.SetDefault("output.format", "json")
}

// validate checks if the configuration is valid
func validate(cfg *Config) error {
	if cfg.Rally.Host == "" {
		return fmt.Errorf("rally.host is required")
	}

	if cfg.Rally.Username == "" {
		return fmt.Errorf("rally.username is required")
	}

	if cfg.Rally.Password == "" {
		return fmt.Errorf("rally.password is required")
	}

	if cfg.Rally.Timeout <= 0 {
		return fmt.Errorf("rally.timeout must be positive")
	}

	if cfg.Rally.Concurrency <= 0 {
		return fmt.Errorf("rally.concurrency must be positive")
	}

	// Validate logging level
	validLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}
	if !validLevels[cfg.Logging.Level] {
		return fmt.Errorf("invalid logging level: %s", cfg.Logging.Level)
	}

	// Validate logging format
	validFormats := map[string]bool{
		"console": true,
		"json":    true,
	}
	if !validFormats[cfg.Logging.Format] {
		return fmt.Errorf("invalid logging format: %s", cfg.Logging.Format)
	}

	if !ValidOutputFormat(cfg.Output.Format) {
		return fmt.Errorf("invalid output format: %s (must be 'json' or 'yaml')", cfg.Output.Format)
	}

	return nil
}

// ValidOutputFormat reports whether format is a supported output format
func ValidOutputFormat(format string) bool {
	return format == "json" || format == "yaml"
}
