// Package commands implements the assetgen cobra commands.
package commands

import (
	"github.com/spf13/cobra"

	"github.com/teranos/assetgen/display"
	"github.com/teranos/assetgen/errors"
	"github.com/teranos/assetgen/logger"
)

var (
	// ErrTasksFailed is returned by generate in strict mode when a task failed
	ErrTasksFailed = errors.New("generation failed")

	// ErrOutputsStale is returned by check when an output differs from a fresh render
	ErrOutputsStale = errors.New("generated files are out of date")
)

// NewRootCmd builds the assetgen command tree
func NewRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "assetgen",
		Short: "Generate typed accessors from asset catalogs",
		Long: `assetgen scans asset catalogs (color sets and image sets) and writes
source files exposing one named accessor per asset.

Run it as a build step before compiling. Outputs are regenerated only when an
asset folder is newer than the generated file.

Available commands:
  generate - Regenerate outputs for every configured catalog
  check    - Fail when a generated file is out of date
  am       - Manage assetgen configuration ("I am")
  version  - Show version information

Examples:
  SRCROOT=$PWD assetgen generate          # Regenerate stale outputs
  SRCROOT=$PWD assetgen generate --force  # Regenerate everything, create missing outputs
  SRCROOT=$PWD assetgen check             # CI: verify committed outputs
  assetgen am init                        # Write a starter am.toml`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			verbosity, _ := cmd.Flags().GetCount("verbose")
			if err := logger.InitializeWithWriter(cmd.ErrOrStderr(), display.ShouldOutputJSON(cmd), verbosity); err != nil {
				return errors.Wrap(err, "failed to initialize logger")
			}
			logger.Debugw("Logger initialized", "level", logger.LevelName(verbosity), "json", logger.JSONOutput)
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			logger.Cleanup()
		},
	}

	root.PersistentFlags().CountP("verbose", "v", "Increase output verbosity (repeat for more detail: -v, -vv)")
	root.PersistentFlags().Bool("json", false, "Output results as JSON")
	root.PersistentFlags().StringP("config", "c", "", "Use this am.toml instead of the user/project cascade")

	root.AddCommand(NewGenerateCmd())
	root.AddCommand(NewCheckCmd())
	root.AddCommand(NewAmCmd())
	root.AddCommand(NewVersionCmd())

	return root
}
