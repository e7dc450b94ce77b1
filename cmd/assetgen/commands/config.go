package commands

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/teranos/assetgen/am"
	"github.com/teranos/assetgen/errors"
	"github.com/teranos/assetgen/logger"
)

// loadConfig loads the explicit --config file or the user/project cascade
func loadConfig(cmd *cobra.Command) (*am.Config, error) {
	path, _ := cmd.Flags().GetString("config")
	if path != "" {
		cfg, err := am.LoadFromFile(path)
		if err != nil {
			return nil, err
		}
		return cfg, nil
	}

	cfg, err := am.Load()
	if err != nil {
		return nil, errors.Wrap(err, "failed to load config")
	}
	return cfg, nil
}

// configFiles lists the config files that took part in loading
func configFiles(cmd *cobra.Command) []string {
	if path, _ := cmd.Flags().GetString("config"); path != "" {
		return []string{path}
	}
	var files []string
	for _, src := range am.Sources() {
		if src.Exists {
			files = append(files, src.Path)
		}
	}
	return files
}

// unknownKeys maps each config file to the keys no setting consumes
func unknownKeys(cmd *cobra.Command) (map[string][]string, error) {
	found := make(map[string][]string)
	for _, path := range configFiles(cmd) {
		keys, err := am.UnknownKeys(path)
		if err != nil {
			return nil, err
		}
		if len(keys) > 0 {
			found[path] = keys
		}
	}
	return found, nil
}

// loadValidConfig loads and validates configuration, warning about unknown keys
func loadValidConfig(cmd *cobra.Command) (*am.Config, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, err
	}

	if unknown, err := unknownKeys(cmd); err == nil {
		for path, keys := range unknown {
			logger.Warnw("Ignoring unknown configuration keys",
				"file", path,
				"keys", strings.Join(keys, ", "),
			)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "configuration validation failed")
	}
	return cfg, nil
}
