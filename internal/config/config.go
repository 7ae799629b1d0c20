package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// EnvPrefix is the prefix for environment overrides, e.g. LEARNPATH_ENV.
const EnvPrefix = "LEARNPATH"

// Config holds application configuration loaded from a file, the environment
// and defaults.
type Config struct {
	Env         string `mapstructure:"env"`          // local or production
	DBPath      string `mapstructure:"db_path"`      // empty means the XDG default
	CatalogPath string `mapstructure:"catalog_path"` // empty means the built-in catalog
	LogFile     string `mapstructure:"log_file"`
	LogLevel    string `mapstructure:"log_level"`
}

// IsProduction reports whether the production logging profile applies.
func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

// Load reads configuration. path names an explicit YAML file; when empty the
// default locations are searched and a missing file is not an error.
func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigType("yaml")
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		if dir, err := configDir(); err == nil {
			v.AddConfigPath(dir)
		}
		v.AddConfigPath(".")
	}

	v.SetDefault("env", "local")
	v.SetDefault("db_path", "")
	v.SetDefault("catalog_path", "")
	v.SetDefault("log_file", defaultLogFile())
	v.SetDefault("log_level", "info")

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	_ = v.BindEnv("db_path", EnvPrefix+"_DB")

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("load config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	return &cfg, nil
}

// configDir returns $XDG_CONFIG_HOME/learnpath, falling back to
// ~/.config/learnpath.
func configDir() (string, error) {
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return filepath.Join(dir, "learnpath"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "learnpath"), nil
}

func defaultLogFile() string {
	if dir := os.Getenv("XDG_STATE_HOME"); dir != "" {
		return filepath.Join(dir, "learnpath", "learnpath.log")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(os.TempDir(), "learnpath.log")
	}
	return filepath.Join(home, ".local", "state", "learnpath", "learnpath.log")
}
