package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/teranos/assetgen/display"
	"github.com/teranos/assetgen/version"
)

// NewVersionCmd creates the version command
func NewVersionCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "version",
		Short: "Show assetgen version information",
		Long:  `Display version, build time, commit hash, and platform information for the assetgen binary.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			info := version.Get()
			out := cmd.OutOrStdout()

			if display.ShouldOutputJSON(cmd) {
				return display.OutputJSON(out, info)
			}
			fmt.Fprintln(out, info.String())
			fmt.Fprintf(out, "Platform: %s\n", info.Platform)
			fmt.Fprintf(out, "Go: %s\n", info.GoVersion)
			return nil
		},
	}
	return cmd
}
