package commands

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/teranos/assetgen/am"
	"github.com/teranos/assetgen/am/geotime"
	"github.com/teranos/assetgen/display"
	"github.com/teranos/assetgen/errors"
)

// NewAmCmd creates the am (configuration) command
func NewAmCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "am",
		Short: "Manage assetgen configuration",
		Long: `am: Manage assetgen configuration ("I am")

Display and manage the task list and generation settings.

Configuration sources (in order of precedence):
1. Environment variables (ASSETGEN_* prefix)
2. Project config (am.toml, searched upward from the working directory)
3. User config (~/.assetgen/am.toml)
4. Default values

Examples:
  assetgen am show                    # Show current configuration
  assetgen am show --format json      # Show configuration in JSON format
  assetgen am validate                # Validate current configuration
  assetgen am init                    # Write ./am.toml with the defaults
  assetgen am where                   # Show which files were consulted`,
	}

	show := &cobra.Command{
		Use:   "show",
		Short: "Show current configuration",
		Long:  "Display the current assetgen configuration merged from all sources",
		Args:  cobra.NoArgs,
		RunE:  runAmShow,
	}
	show.Flags().String("format", "toml", "Output format: toml, json, yaml")

	validate := &cobra.Command{
		Use:   "validate",
		Short: "Validate current configuration",
		Long:  "Validate the configuration and report keys that no setting uses",
		Args:  cobra.NoArgs,
		RunE:  runAmValidate,
	}

	initCmd := &cobra.Command{
		Use:   "init [path]",
		Short: "Write a starter am.toml",
		Long: `Write the default configuration to path (default ./am.toml).

An existing file is only replaced with --force; the previous version is kept
as .back1 (older versions rotate to .back2 and .back3).`,
		Args: cobra.MaximumNArgs(1),
		RunE: runAmInit,
	}
	initCmd.Flags().Bool("force", false, "Overwrite an existing file")

	where := &cobra.Command{
		Use:   "where",
		Short: "Show where configuration is loaded from",
		Long: `Show the configuration cascade and which files were checked.

Lists all configuration sources in order of precedence, showing
which files exist and which are missing.`,
		Args: cobra.NoArgs,
		RunE: runAmWhere,
	}

	cmd.AddCommand(show, validate, initCmd, where)
	return cmd
}

func runAmShow(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	format, _ := cmd.Flags().GetString("format")
	if display.ShouldOutputJSON(cmd) {
		format = "json"
	}

	out := cmd.OutOrStdout()
	switch format {
	case "json":
		return display.OutputJSON(out, cfg)

	case "yaml":
		data, err := yaml.Marshal(cfg)
		if err != nil {
			return errors.Wrap(err, "failed to marshal config to YAML")
		}
		fmt.Fprintf(out, "# assetgen configuration\n%s", string(data))

	case "toml":
		data, err := am.Marshal(cfg)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "# assetgen configuration\n%s", string(data))

	default:
		return errors.Newf("unsupported format: %s (supported: toml, json, yaml)", format)
	}

	return nil
}

func runAmValidate(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	if err := cfg.Validate(); err != nil {
		return errors.Wrap(err, "configuration validation failed")
	}

	unknown, err := unknownKeys(cmd)
	if err != nil {
		return err
	}
	if len(unknown) > 0 {
		paths := make([]string, 0, len(unknown))
		for path := range unknown {
			paths = append(paths, path)
		}
		sort.Strings(paths)

		var lines []string
		for _, path := range paths {
			lines = append(lines, fmt.Sprintf("%s: %s", path, strings.Join(unknown[path], ", ")))
		}
		return errors.WithHint(
			errors.Newf("unknown configuration keys:\n  %s", strings.Join(lines, "\n  ")),
			"check for typos; 'assetgen am init' writes a file with every known key",
		)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "✓ Configuration is valid (%d tasks)\n", len(cfg.Tasks))
	return nil
}

func runAmInit(cmd *cobra.Command, args []string) error {
	path := am.ConfigFileName
	if len(args) == 1 {
		path = args[0]
		if info, err := os.Stat(path); err == nil && info.IsDir() {
			path = filepath.Join(path, am.ConfigFileName)
		}
	}

	force, _ := cmd.Flags().GetBool("force")
	if err := am.WriteDefault(path, force); err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "✓ Wrote %s\n", path)
	return nil
}

func runAmWhere(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	explicit, _ := cmd.Flags().GetString("config")

	type whereReport struct {
		Explicit string      `json:"explicit,omitempty"`
		Sources  []am.Source `json:"sources"`
		Env      []string    `json:"env"`
		Timezone string      `json:"timezone,omitempty"`
		Resolved string      `json:"resolved_timezone,omitempty"`
	}
	report := whereReport{Explicit: explicit, Sources: am.Sources(), Env: assetgenEnv()}

	// The zone is informational; a config that fails to load still gets the file list
	if cfg, err := loadConfig(cmd); err == nil {
		report.Timezone = cfg.Generate.Timezone
		if resolved, err := geotime.Resolve(cfg.Generate.Timezone); err == nil {
			report.Resolved = resolved
		}
	}

	if display.ShouldOutputJSON(cmd) {
		return display.OutputJSON(out, report)
	}

	fmt.Fprintln(out, "Configuration cascade (later overrides earlier):")
	fmt.Fprintln(out, "  1. [DEFAULT]  Built-in defaults")
	fmt.Fprintln(out, "  2. [USER]     ~/.assetgen/am.toml")
	fmt.Fprintln(out, "  3. [PROJECT]  ./am.toml (searches up directories)")
	fmt.Fprintf(out, "  4. [ENV]      %s_* environment variables\n", am.EnvPrefix)
	fmt.Fprintln(out)

	if explicit != "" {
		fmt.Fprintf(out, "--config %s replaces the file cascade\n\n", explicit)
	}

	fmt.Fprintln(out, "Files checked:")
	if len(report.Sources) == 0 {
		fmt.Fprintln(out, "  (none)")
	}
	for _, src := range report.Sources {
		mark := "missing"
		if src.Exists {
			mark = "found"
		}
		fmt.Fprintf(out, "  %-8s %s (%s)\n", strings.ToUpper(src.Kind), src.Path, mark)
	}

	if len(report.Env) > 0 {
		fmt.Fprintln(out, "\nEnvironment overrides:")
		for _, kv := range report.Env {
			fmt.Fprintf(out, "  %s\n", kv)
		}
	}

	if report.Resolved != "" {
		fmt.Fprintf(out, "\nTimestamp timezone: %s (%s)\n", report.Timezone, report.Resolved)
	}
	return nil
}

// assetgenEnv lists ASSETGEN_* variables, sorted
func assetgenEnv() []string {
	env := []string{}
	for _, kv := range os.Environ() {
		if strings.HasPrefix(kv, am.EnvPrefix+"_") {
			env = append(env, kv)
		}
	}
	sort.Strings(env)
	return env
}
