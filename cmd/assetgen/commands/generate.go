package commands

import (
	"github.com/spf13/cobra"

	"github.com/teranos/assetgen/display"
	"github.com/teranos/assetgen/errors"
	"github.com/teranos/assetgen/runner"
)

// NewGenerateCmd creates the generate command
func NewGenerateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Regenerate outputs for every configured catalog",
		Long: `Regenerate the output of every configured task.

A task is skipped when its catalog is missing, when the project root variable
is unset, or when its output is newer than every asset folder. A missing output
is left alone unless --force is given.

With strict mode (the default) the command exits 1 when any task failed.
Skipped tasks never fail the build.`,
		Args: cobra.NoArgs,
		RunE: runGenerate,
	}

	cmd.Flags().BoolP("force", "f", false, "Regenerate every task, ignoring file dates")
	cmd.Flags().Bool("strict", true, "Exit nonzero when a task fails (overrides generate.strict)")
	return cmd
}

func runGenerate(cmd *cobra.Command, args []string) error {
	cfg, err := loadValidConfig(cmd)
	if err != nil {
		return err
	}

	force, _ := cmd.Flags().GetBool("force")
	strict := cfg.Generate.Strict
	if cmd.Flags().Changed("strict") {
		strict, _ = cmd.Flags().GetBool("strict")
	}

	report := runner.Run(cmd.Context(), cfg, runner.Options{Force: force})

	out := cmd.OutOrStdout()
	if display.ShouldOutputJSON(cmd) {
		if err := display.OutputJSON(out, report); err != nil {
			return err
		}
	} else if err := display.RenderReport(out, report); err != nil {
		return err
	}

	if strict && report.Failed() {
		return errors.WithHint(
			errors.Wrapf(ErrTasksFailed, "%d of %d tasks failed", report.Counts().Failed, len(report.Results)),
			"previous outputs were left untouched; fix the assets and run again",
		)
	}
	return nil
}
