package commands

import (
	"github.com/spf13/cobra"

	"github.com/teranos/assetgen/display"
	"github.com/teranos/assetgen/errors"
	"github.com/teranos/assetgen/runner"
)

// NewCheckCmd creates the check command
func NewCheckCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "Fail when a generated file is out of date",
		Long: `Render every task in memory and compare it with the file on disk,
ignoring the "Generated on" header line. Nothing is written.

Exits 1 when any output is stale, missing or cannot be rendered. Tasks whose
catalog is absent, and every task when the project root is unset, are skipped
and do not fail the check. Useful in CI to make sure generated files were
committed.`,
		Args: cobra.NoArgs,
		RunE: runCheck,
	}
}

func runCheck(cmd *cobra.Command, args []string) error {
	cfg, err := loadValidConfig(cmd)
	if err != nil {
		return err
	}

	report, err := runner.Check(cmd.Context(), cfg, runner.Options{})
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if display.ShouldOutputJSON(cmd) {
		if err := display.OutputJSON(out, report); err != nil {
			return err
		}
	} else {
		display.RenderCheck(out, report)
	}

	if !report.UpToDate() {
		return errors.WithHint(
			errors.Wrapf(ErrOutputsStale, "%d of %d outputs", len(report.Stale()), len(report.Results)),
			"run 'assetgen generate --force' and commit the result",
		)
	}
	return nil
}
