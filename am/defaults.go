package am

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// Default values
const (
	DefaultRootEnv = "SRCROOT"
)

// DefaultTasks reproduces the classic setup: one color catalog embedded into
// a Swift file.
func DefaultTasks() []TaskConfig {
	return []TaskConfig{
		{
			Name:      "colors",
			Kind:      "color",
			Strategy:  "embed",
			Catalog:   "Lib/colors.xcassets",
			Output:    "Lib/Generated/Colors.swift",
			Format:    FormatSwift,
			Container: "Color",
		},
	}
}

// DefaultConfig returns the configuration used when no file overrides anything
func DefaultConfig() *Config {
	return &Config{
		Project: ProjectConfig{RootEnv: DefaultRootEnv},
		Generate: GenerateConfig{
			OptimizeByDate: true,
			Parallel:       false,
			Strict:         true,
			Timezone:       "local",
		},
		Tasks: DefaultTasks(),
	}
}

// SetDefaults configures default values for all configuration options
func SetDefaults(v *viper.Viper) {
	v.SetDefault("project.root_env", DefaultRootEnv)
	v.SetDefault("project.min_version", "")

	v.SetDefault("generate.optimize_by_date", true)
	v.SetDefault("generate.parallel", false)
	v.SetDefault("generate.strict", true) // Failed tasks fail the build step
	v.SetDefault("generate.timezone", "local")

	tasks := make([]map[string]interface{}, 0, len(DefaultTasks()))
	for _, t := range DefaultTasks() {
		tasks = append(tasks, map[string]interface{}{
			"name":      t.Name,
			"kind":      t.Kind,
			"strategy":  t.Strategy,
			"catalog":   t.Catalog,
			"output":    t.Output,
			"format":    t.Format,
			"container": t.Container,
		})
	}
	v.SetDefault("tasks", tasks)
}

// Normalized returns a copy of t with omitted fields filled in:
// format from the output extension, strategy from the kind (colors embed,
// images look up), container from the kind and name from the output file.
func (t TaskConfig) Normalized() TaskConfig {
	kind := strings.ToLower(strings.TrimSpace(t.Kind))
	t.Kind = kind

	if t.Format == "" {
		t.Format = strings.TrimPrefix(filepath.Ext(t.Output), ".")
	}
	t.Format = strings.ToLower(t.Format)

	if t.Strategy == "" {
		if kind == "color" {
			t.Strategy = "embed"
		} else {
			t.Strategy = "lookup"
		}
	}
	t.Strategy = strings.ToLower(t.Strategy)

	if t.Container == "" && kind != "" {
		t.Container = strings.ToUpper(kind[:1]) + kind[1:]
	}

	if t.Name == "" {
		base := filepath.Base(t.Output)
		t.Name = strings.ToLower(strings.TrimSuffix(base, filepath.Ext(base)))
	}

	return t
}

// String returns a string representation of the config
func (c *Config) String() string {
	return fmt.Sprintf("Config{RootEnv: %s, Tasks: %d, OptimizeByDate: %t, Parallel: %t}",
		c.Project.RootEnv, len(c.Tasks), c.Generate.OptimizeByDate, c.Generate.Parallel)
}
