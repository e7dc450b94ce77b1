package runner

import (
	"bufio"
	"bytes"
	"context"
	"strings"
	"time"

	"github.com/spf13/afero"

	"github.com/teranos/assetgen/am"
	"github.com/teranos/assetgen/am/geotime"
	"github.com/teranos/assetgen/assetgen"
	"github.com/teranos/assetgen/errors"
)

// CheckStatus is the outcome of comparing one output with a fresh render
type CheckStatus string

const (
	CheckUpToDate CheckStatus = "up-to-date"
	CheckStale    CheckStatus = "stale"
	CheckMissing  CheckStatus = "missing"
	CheckSkipped  CheckStatus = "skipped"
	CheckError    CheckStatus = "error"
)

// CheckResult holds the result of checking one task
type CheckResult struct {
	Task   string      `json:"task"`
	Output string      `json:"output"`
	Status CheckStatus `json:"status"`
	Reason string      `json:"reason,omitempty"`
	Err    error       `json:"-"`
	Error  string      `json:"error,omitempty"`
}

// CheckReport holds the results of a check
type CheckReport struct {
	Results []CheckResult `json:"results"`
}

// UpToDate reports whether every checked output matches a fresh render.
// Tasks without a catalog are ignored.
func (r *CheckReport) UpToDate() bool {
	for _, res := range r.Results {
		switch res.Status {
		case CheckStale, CheckMissing, CheckError:
			return false
		}
	}
	return true
}

// Stale returns the tasks whose output differs or is missing
func (r *CheckReport) Stale() []CheckResult {
	var stale []CheckResult
	for _, res := range r.Results {
		if res.Status != CheckUpToDate && res.Status != CheckSkipped {
			stale = append(stale, res)
		}
	}
	return stale
}

// Check renders every task in memory and compares it with the existing
// output, ignoring the "Generated on" header line. Nothing is written.
// An unset project root skips every task, as Run does.
func Check(ctx context.Context, cfg *am.Config, opts Options) (*CheckReport, error) {
	opts = opts.withDefaults()

	root, err := projectRoot(cfg, opts.LookupEnv)
	if err != nil {
		report := &CheckReport{}
		for _, raw := range cfg.Tasks {
			task := raw.Normalized()
			report.Results = append(report.Results, CheckResult{
				Task:   task.Name,
				Output: task.Output,
				Status: CheckSkipped,
				Reason: ErrProjectRootUnset.Error(),
				Err:    err,
			})
		}
		return report, nil
	}
	loc, err := geotime.Location(cfg.Generate.Timezone)
	if err != nil {
		return nil, errors.Wrap(err, "generate.timezone")
	}
	now := opts.Now().In(loc)

	report := &CheckReport{}
	for _, raw := range cfg.Tasks {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		task := raw.Normalized()
		report.Results = append(report.Results, checkTask(opts.Fs, root, task, now))
	}
	return report, nil
}

func checkTask(fs afero.Fs, root string, task am.TaskConfig, now time.Time) CheckResult {
	res := CheckResult{Task: task.Name, Output: task.Output}
	setErr := func(err error) CheckResult {
		res.Status = CheckError
		res.Err = err
		res.Error = err.Error()
		return res
	}

	p, err := newPlan(fs, root, task)
	if err != nil {
		if errors.Is(err, ErrCatalogMissing) {
			res.Status = CheckSkipped
			res.Reason = ErrCatalogMissing.Error()
			return res
		}
		return setErr(err)
	}

	fresh, _, err := p.render(fs, now)
	if err != nil {
		return setErr(err)
	}

	existing, err := afero.ReadFile(fs, p.output)
	if err != nil {
		if exists, _ := afero.Exists(fs, p.output); !exists {
			res.Status = CheckMissing
			return res
		}
		return setErr(errors.Wrapf(err, "failed to read %s", p.output))
	}

	if filterTimestampLines(fresh) == filterTimestampLines(existing) {
		res.Status = CheckUpToDate
	} else {
		res.Status = CheckStale
	}
	return res
}

// filterTimestampLines removes the header line that changes on every
// generation and doesn't represent an asset change.
func filterTimestampLines(content []byte) string {
	var result strings.Builder
	scanner := bufio.NewScanner(bytes.NewReader(content))
	// A line can never exceed the whole content
	scanner.Buffer(make([]byte, 0, 4096), len(content)+1)

	for scanner.Scan() {
		line := scanner.Text()
		if assetgen.IsTimestampLine(line) {
			continue
		}
		result.WriteString(line)
		result.WriteString("\n")
	}

	return result.String()
}
