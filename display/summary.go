package display

import (
	"fmt"
	"io"

	"github.com/pterm/pterm"

	"github.com/teranos/assetgen/runner"
)

// statusLabel colors a task status for the terminal
func statusLabel(s runner.Status) string {
	switch s {
	case runner.StatusSucceeded:
		return pterm.Green("✓ generated")
	case runner.StatusFailed:
		return pterm.Red("✗ failed")
	default:
		return pterm.Gray("- skipped")
	}
}

// RenderReport prints a table of task outcomes followed by hints and errors
func RenderReport(w io.Writer, report *runner.Report) error {
	data := pterm.TableData{{"Task", "Status", "Entries", "Output", "Reason"}}
	for _, res := range report.Results {
		entries := "-"
		if res.Status == runner.StatusSucceeded {
			entries = fmt.Sprintf("%d", res.Entries)
		}
		data = append(data, []string{res.Task, statusLabel(res.Status), entries, res.Output, res.Reason})
	}

	table, err := pterm.DefaultTable.WithHasHeader().WithData(data).Srender()
	if err != nil {
		return err
	}
	fmt.Fprintln(w, table)

	for _, res := range report.Results {
		if res.Status == runner.StatusFailed {
			fmt.Fprintf(w, "%s %s: %s\n", pterm.Red("Error in"), res.Task, res.Error)
		}
		if res.Hint != "" {
			fmt.Fprintf(w, "%s %s\n", pterm.LightCyan("Hint:"), res.Hint)
		}
	}

	c := report.Counts()
	fmt.Fprintf(w, "%s generated, %s skipped, %s failed\n",
		pterm.Green(fmt.Sprintf("%d", c.Succeeded)),
		pterm.Gray(fmt.Sprintf("%d", c.Skipped)),
		pterm.Red(fmt.Sprintf("%d", c.Failed)),
	)
	return nil
}

// RenderCheck prints one line per checked task
func RenderCheck(w io.Writer, report *runner.CheckReport) {
	for _, res := range report.Results {
		switch res.Status {
		case runner.CheckUpToDate:
			fmt.Fprintf(w, "%s %s (%s)\n", pterm.Green("✓"), res.Task, res.Output)
		case runner.CheckSkipped:
			fmt.Fprintf(w, "%s %s (%s)\n", pterm.Gray("-"), res.Task, res.Reason)
		case runner.CheckError:
			fmt.Fprintf(w, "%s %s: %s\n", pterm.Red("✗"), res.Task, res.Error)
		default:
			fmt.Fprintf(w, "%s %s (%s is %s)\n", pterm.Yellow("!"), res.Task, res.Output, res.Status)
		}
	}
}
