// Package config loads the mimic tool configuration using Viper.
//
// Configuration is layered: built-in defaults, then a mimic.toml found by
// walking up from the working directory, then MIMIC_* environment variables.
// Per-unit settings in the manifest always win over tool configuration.
package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"github.com/teranos/mimic/errors"
)

// Config holds tool-level generation settings.
type Config struct {
	// OutputDir is where standalone artifacts are written.
	OutputDir string `mapstructure:"output_dir"`

	// Package is the package name units declare when the manifest does not
	// override it.
	Package string `mapstructure:"package"`

	// Strategy is the default wrapping strategy for units that do not name
	// one.
	Strategy string `mapstructure:"strategy"`

	// Strict makes unconfigured-access failures the default for all units.
	Strict bool `mapstructure:"strict"`

	// JSONLogs switches log output to machine-readable JSON.
	JSONLogs bool `mapstructure:"json_logs"`
}

var globalConfig *Config
var viperInstance *viper.Viper

// Load reads the mimic configuration using Viper.
func Load() (*Config, error) {
	if globalConfig != nil {
		return globalConfig, nil
	}

	v := initViper()

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, errors.Wrap(err, "failed to unmarshal config")
	}

	globalConfig = &config
	return globalConfig, nil
}

// LoadFromFile loads configuration from a specific file path.
func LoadFromFile(configPath string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(configPath)
	SetDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		return nil, errors.Wrapf(err, "failed to read config file %s", configPath)
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, errors.Wrapf(err, "failed to unmarshal config from %s", configPath)
	}
	return &config, nil
}

// Reset clears the cached configuration (useful for testing).
func Reset() {
	globalConfig = nil
	viperInstance = nil
}

// SetDefaults applies the built-in defaults to a Viper instance.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("output_dir", ".")
	v.SetDefault("package", "doubles")
	v.SetDefault("strategy", "standalone")
	v.SetDefault("strict", false)
	v.SetDefault("json_logs", false)
}

func initViper() *viper.Viper {
	if viperInstance != nil {
		return viperInstance
	}

	v := viper.New()

	v.SetEnvPrefix("MIMIC")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	SetDefaults(v)

	if path := findProjectConfig(); path != "" {
		v.SetConfigFile(path)
		// Missing or unreadable project config falls back to defaults.
		_ = v.ReadInConfig()
	}

	viperInstance = v
	return v
}

// findProjectConfig searches for mimic.toml by walking up the directory tree.
func findProjectConfig() string {
	dir, err := os.Getwd()
	if err != nil {
		return ""
	}

	for {
		path := filepath.Join(dir, "mimic.toml")
		if _, err := os.Stat(path); err == nil {
			return path
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}

	return ""
}
