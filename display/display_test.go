package display

import (
	"bytes"
	"errors"
	"testing"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/teranos/assetgen/runner"
)

func TestShouldOutputJSON(t *testing.T) {
	newCmd := func() *cobra.Command {
		root := &cobra.Command{Use: "assetgen"}
		root.PersistentFlags().Bool("json", false, "")
		child := &cobra.Command{Use: "generate"}
		root.AddCommand(child)
		return child
	}

	t.Setenv(JSONEnv, "")

	cmd := newCmd()
	assert.False(t, ShouldOutputJSON(cmd))

	cmd = newCmd()
	require.NoError(t, cmd.Root().PersistentFlags().Set("json", "true"))
	assert.True(t, ShouldOutputJSON(cmd))

	t.Setenv(JSONEnv, "1")
	assert.True(t, ShouldOutputJSON(newCmd()))
	assert.True(t, ShouldOutputJSON(nil))
}

func TestOutputJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, OutputJSON(&buf, runner.Counts{Succeeded: 2}))
	assert.Equal(t, "{\n  \"skipped\": 0,\n  \"succeeded\": 2,\n  \"failed\": 0\n}\n", buf.String())
}

func TestRenderReport(t *testing.T) {
	pterm.DisableColor()
	defer pterm.EnableColor()

	report := &runner.Report{Results: []runner.Result{
		{Task: "colors", Status: runner.StatusSucceeded, Entries: 3, Output: "Lib/Generated/Colors.swift", Reason: "forced"},
		{Task: "images", Status: runner.StatusSkipped, Output: "Lib/Generated/Images.swift", Reason: "couldn't get date", Hint: "run with --force to create the output"},
		{Task: "brand", Status: runner.StatusFailed, Output: "Lib/Generated/Brand.swift", Error: "entry Logo: invalid JSON", Err: errors.New("x")},
	}}

	var buf bytes.Buffer
	require.NoError(t, RenderReport(&buf, report))

	out := buf.String()
	assert.Contains(t, out, "colors")
	assert.Contains(t, out, "Lib/Generated/Colors.swift")
	assert.Contains(t, out, "Error in brand: entry Logo: invalid JSON")
	assert.Contains(t, out, "Hint: run with --force to create the output")
	assert.Contains(t, out, "1 generated, 1 skipped, 1 failed")
}

func TestRenderCheck(t *testing.T) {
	pterm.DisableColor()
	defer pterm.EnableColor()

	var buf bytes.Buffer
	RenderCheck(&buf, &runner.CheckReport{Results: []runner.CheckResult{
		{Task: "colors", Output: "Colors.swift", Status: runner.CheckUpToDate},
		{Task: "images", Output: "Images.swift", Status: runner.CheckStale},
		{Task: "sounds", Status: runner.CheckSkipped, Reason: "catalog not found"},
	}})

	out := buf.String()
	assert.Contains(t, out, "colors (Colors.swift)")
	assert.Contains(t, out, "images (Images.swift is stale)")
	assert.Contains(t, out, "sounds (catalog not found)")
}
