package am

import (
	"path/filepath"
	"slices"

	"github.com/teranos/assetgen/am/geotime"
	"github.com/teranos/assetgen/assetgen"
	"github.com/teranos/assetgen/catalog"
	"github.com/teranos/assetgen/errors"
	"github.com/teranos/assetgen/version"
)

// Validate checks that the configuration is valid.
// Errors are marked with errors.ErrInvalidConfig.
func (c *Config) Validate() error {
	if err := c.validate(); err != nil {
		return errors.Mark(err, errors.ErrInvalidConfig)
	}
	return nil
}

func (c *Config) validate() error {
	if c.Project.RootEnv == "" {
		return errors.WithHint(
			errors.New("project.root_env cannot be empty"),
			"omit it to use SRCROOT",
		)
	}

	if c.Project.MinVersion != "" {
		build := version.Get()
		ok, err := build.Satisfies(c.Project.MinVersion)
		if err != nil {
			return errors.Wrap(err, "project.min_version")
		}
		if !ok {
			return errors.WithHintf(
				errors.Newf("assetgen %s does not satisfy project.min_version %q", build.Version, c.Project.MinVersion),
				"upgrade assetgen or relax min_version",
			)
		}
	}

	if err := geotime.ValidateTimezone(c.Generate.Timezone); err != nil {
		return errors.Wrap(err, "generate.timezone")
	}

	if len(c.Tasks) == 0 {
		return errors.New("no tasks configured")
	}

	names := make(map[string]int, len(c.Tasks))
	outputs := make(map[string]int, len(c.Tasks))
	for i, raw := range c.Tasks {
		task := raw.Normalized()
		if err := task.validate(); err != nil {
			return errors.Wrapf(err, "tasks[%d]", i)
		}

		if prev, ok := names[task.Name]; ok {
			return errors.Newf("tasks[%d]: name %q already used by tasks[%d]", i, task.Name, prev)
		}
		names[task.Name] = i

		out := filepath.Clean(task.Output)
		if prev, ok := outputs[out]; ok {
			return errors.Newf("tasks[%d]: output %q already written by tasks[%d]", i, task.Output, prev)
		}
		outputs[out] = i
	}

	return nil
}

// validate checks a normalized task
func (t TaskConfig) validate() error {
	kind, err := catalog.ParseKind(t.Kind)
	if err != nil {
		return err
	}

	strategy, err := assetgen.ParseStrategy(t.Strategy)
	if err != nil {
		return err
	}
	if strategy == assetgen.StrategyEmbed && kind != catalog.KindColor {
		return errors.WithHint(
			errors.Newf("strategy %q is only valid for color catalogs", t.Strategy),
			"image catalogs always use strategy = \"lookup\"",
		)
	}

	if t.Catalog == "" {
		return errors.New("catalog cannot be empty")
	}
	if t.Output == "" {
		return errors.New("output cannot be empty")
	}
	if filepath.IsAbs(t.Catalog) || filepath.IsAbs(t.Output) {
		return errors.New("catalog and output must be relative to the project root")
	}

	if !slices.Contains(SupportedFormats, t.Format) {
		return errors.WithHintf(
			errors.Newf("unsupported format %q", t.Format),
			"supported formats: %v", SupportedFormats,
		)
	}

	return nil
}
