package am

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"github.com/teranos/assetgen/errors"
)

// EnvPrefix is the prefix of environment overrides, e.g. ASSETGEN_GENERATE_PARALLEL=true
const EnvPrefix = "ASSETGEN"

var envKeyReplacer = strings.NewReplacer(".", "_")

var globalConfig *Config
var viperInstance *viper.Viper

// Load reads the assetgen configuration using Viper
func Load() (*Config, error) {
	if globalConfig != nil {
		return globalConfig, nil
	}

	config, err := LoadWithViper(initViper())
	if err != nil {
		return nil, err
	}

	globalConfig = config
	return globalConfig, nil
}

// LoadWithViper loads configuration using a provided Viper instance
func LoadWithViper(v *viper.Viper) (*Config, error) {
	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, errors.Wrap(err, "failed to unmarshal config")
	}
	return &config, nil
}

// LoadFromFile loads configuration from a specific file path on top of the defaults
func LoadFromFile(configPath string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(configPath)
	v.SetConfigType("toml")

	// Set defaults but don't bind environment variables for this specific load
	SetDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		return nil, errors.Wrapf(err, "failed to read config file %s", configPath)
	}

	config, err := LoadWithViper(v)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to load config from %s", configPath)
	}
	return config, nil
}

// Reset clears the cached configuration (useful for testing)
func Reset() {
	globalConfig = nil
	viperInstance = nil
}

// initViper initializes Viper with configuration sources and defaults
func initViper() *viper.Viper {
	if viperInstance != nil {
		return viperInstance
	}

	v := viper.New()

	// Set up environment variable binding
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(envKeyReplacer)
	v.AutomaticEnv()

	// Set defaults first
	SetDefaults(v)

	// Merge files in precedence order: user -> project, env vars stay on top
	for _, src := range Sources() {
		if src.Exists {
			mergeConfigFile(v, src.Path)
		}
	}

	viperInstance = v
	return v
}

// Source is one configuration file assetgen consults
type Source struct {
	Kind   string `json:"kind" yaml:"kind"` // user | project
	Path   string `json:"path" yaml:"path"`
	Exists bool   `json:"exists" yaml:"exists"`
}

// Sources lists config files in precedence order (lowest first)
func Sources() []Source {
	var sources []Source

	if home, err := os.UserHomeDir(); err == nil {
		sources = append(sources, statSource("user", UserConfigPath(home)))
	}

	if wd, err := os.Getwd(); err == nil {
		if project := findProjectConfig(wd); project != "" {
			sources = append(sources, statSource("project", project))
		}
	}

	return sources
}

// UserConfigPath returns ~/.assetgen/am.toml for the given home directory
func UserConfigPath(home string) string {
	return filepath.Join(home, ".assetgen", ConfigFileName)
}

func statSource(kind, path string) Source {
	_, err := os.Stat(path)
	return Source{Kind: kind, Path: path, Exists: err == nil}
}

// findProjectConfig searches for am.toml by walking up the directory tree from dir.
// Returns the path to the first config file found, or empty string if none found.
func findProjectConfig(dir string) string {
	dir, err := filepath.Abs(dir)
	if err != nil {
		return ""
	}

	for {
		amPath := filepath.Join(dir, ConfigFileName)
		if _, err := os.Stat(amPath); err == nil {
			return amPath
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			// Reached filesystem root, stop searching
			break
		}
		dir = parent
	}

	return ""
}

// mergeConfigFile merges one TOML file into v's config layer. Tables are
// merged deeply; arrays such as [[tasks]] replace earlier ones. Env vars keep
// precedence over every file.
func mergeConfigFile(v *viper.Viper, configPath string) {
	tempViper := viper.New()
	tempViper.SetConfigFile(configPath)
	tempViper.SetConfigType("toml")

	if err := tempViper.ReadInConfig(); err != nil {
		return
	}

	_ = v.MergeConfigMap(tempViper.AllSettings())
}
