// Package am holds assetgen configuration ("I am").
//
// Configuration replaces hardcoded catalog/output pairs with an explicit list
// of tasks, loaded through viper from defaults, user and project am.toml
// files and ASSETGEN_* environment variables.
package am

// Config represents the assetgen configuration
type Config struct {
	Project  ProjectConfig  `mapstructure:"project" toml:"project" json:"project" yaml:"project"`
	Generate GenerateConfig `mapstructure:"generate" toml:"generate" json:"generate" yaml:"generate"`
	Tasks    []TaskConfig   `mapstructure:"tasks" toml:"tasks" json:"tasks" yaml:"tasks"`
}

// ProjectConfig locates the project the catalogs belong to
type ProjectConfig struct {
	RootEnv    string `mapstructure:"root_env" toml:"root_env" json:"root_env" yaml:"root_env"`                                        // Env var holding the project root (default: SRCROOT)
	MinVersion string `mapstructure:"min_version" toml:"min_version,omitempty" json:"min_version,omitempty" yaml:"min_version,omitempty"` // Semver constraint on the assetgen binary
}

// GenerateConfig controls a generation run
type GenerateConfig struct {
	OptimizeByDate bool   `mapstructure:"optimize_by_date" toml:"optimize_by_date" json:"optimize_by_date" yaml:"optimize_by_date"` // Skip tasks whose output is newer than every asset folder
	Parallel       bool   `mapstructure:"parallel" toml:"parallel" json:"parallel" yaml:"parallel"`                                 // Run independent tasks concurrently
	Strict         bool   `mapstructure:"strict" toml:"strict" json:"strict" yaml:"strict"`                                         // Exit nonzero when a task fails
	Timezone       string `mapstructure:"timezone" toml:"timezone" json:"timezone" yaml:"timezone"`                                 // Timezone of the "Generated on" header (default: local)
}

// TaskConfig describes one catalog to generate. Paths are relative to the
// project root.
type TaskConfig struct {
	Name      string `mapstructure:"name" toml:"name" json:"name" yaml:"name"`
	Kind      string `mapstructure:"kind" toml:"kind" json:"kind" yaml:"kind"`                                      // color | image
	Strategy  string `mapstructure:"strategy" toml:"strategy,omitempty" json:"strategy,omitempty" yaml:"strategy,omitempty"` // embed | lookup (colors only may embed)
	Catalog   string `mapstructure:"catalog" toml:"catalog" json:"catalog" yaml:"catalog"`                          // e.g. Lib/colors.xcassets
	Output    string `mapstructure:"output" toml:"output" json:"output" yaml:"output"`                              // e.g. Lib/Generated/Colors.swift
	Format    string `mapstructure:"format" toml:"format,omitempty" json:"format,omitempty" yaml:"format,omitempty"`       // swift | go (default: from output extension)
	Container string `mapstructure:"container" toml:"container,omitempty" json:"container,omitempty" yaml:"container,omitempty"` // Wrapping struct name (default: Color / Image)
	Package   string `mapstructure:"package" toml:"package,omitempty" json:"package,omitempty" yaml:"package,omitempty"` // Go package name for the go format
	Bundle    string `mapstructure:"bundle" toml:"bundle,omitempty" json:"bundle,omitempty" yaml:"bundle,omitempty"`     // Bundle expression for lookups
}

// Supported output formats
const (
	FormatSwift = "swift"
	FormatGo    = "go"
)

// SupportedFormats lists every format a task may name
var SupportedFormats = []string{FormatSwift, FormatGo}

// File system constants
const (
	DefaultDirPermissions  = 0755 // Standard directory permissions (rwxr-xr-x)
	DefaultFilePermissions = 0644 // Standard file permissions (rw-r--r--)
)

// ConfigFileName is the project config file searched for upward from the working directory
const ConfigFileName = "am.toml"
