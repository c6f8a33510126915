package config

import (
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

// Default values for configuration keys.
const (
	DefaultSearchLimit  = 25
	DefaultSearchPolicy = "fail"
)

// DefaultDatabasePath returns the default database location:
// ~/.bonnet/bonnet.db, falling back to ./bonnet.db when the home directory
// cannot be determined.
func DefaultDatabasePath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "bonnet.db"
	}
	return filepath.Join(home, ".bonnet", "bonnet.db")
}

// SetDefaults registers default values on the given Viper instance.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("database.path", DefaultDatabasePath())
	v.SetDefault("search.limit", DefaultSearchLimit)
	v.SetDefault("search.policy", DefaultSearchPolicy)
	v.SetDefault("log.json", false)
}
