package config

import "time"

// Config represents the complete configuration structure
type Config struct {
	Rally   RallyConfig   `mapstructure:"rally"`
	Logging LoggingConfig `mapstructure:"logging"`
	Output  OutputConfig  `mapstructure:"output"`
}

// RallyConfig holds Rally connection details
type RallyConfig struct {
	Host            string        `mapstructure:"host"`
	Username        string        `mapstructure:"username"`
	Password        string        `mapstructure:"password"`
	Workspace       string        `mapstructure:"workspace"`
	ProtocolVersion string        `mapstructure:"protocol_version"`
	UserAgent       string        `mapstructure:"user_agent"`
	Timeout         time.Duration `mapstructure:"timeout"`
	Concurrency     int           `mapstructure:"concurrency"`
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
	Color  bool   `mapstructure:"color"`
}

// OutputConfig controls how objects are printed
type OutputConfig struct {
	Format string `mapstructure:"format"`
}
