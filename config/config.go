// Package config loads bonnet configuration from TOML files and the
// environment using Viper.
//
// Precedence: defaults -> config file (bonnet.toml discovered by walking up
// the directory tree, then ~/.bonnet/bonnet.toml) -> BONNET_* environment
// variables.
package config

// Config represents the bonnet configuration
type Config struct {
	Database DatabaseConfig `mapstructure:"database" toml:"database"`
	Search   SearchConfig   `mapstructure:"search" toml:"search"`
	Log      LogConfig      `mapstructure:"log" toml:"log"`
}

// DatabaseConfig configures the SQLite database
type DatabaseConfig struct {
	Path string `mapstructure:"path" toml:"path"`
}

// SearchConfig configures full-text search and resolution behavior
type SearchConfig struct {
	// Limit caps the number of candidates a text search returns (default: 25)
	Limit int `mapstructure:"limit" toml:"limit"`
	// Policy is the default disambiguation policy for non-interactive
	// callers: "fail" or "first" (default: "fail")
	Policy string `mapstructure:"policy" toml:"policy"`
}

// LogConfig configures logging output
type LogConfig struct {
	JSON bool `mapstructure:"json" toml:"json"`
}
