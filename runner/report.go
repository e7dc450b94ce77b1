package runner

import (
	"time"
)

// Status is the outcome of one task
type Status string

const (
	StatusSkipped   Status = "skipped"
	StatusSucceeded Status = "succeeded"
	StatusFailed    Status = "failed"
)

// Result records what happened to one task
type Result struct {
	Task   string `json:"task"`
	Kind   string `json:"kind"`
	Output string `json:"output"`
	Status Status `json:"status"`
	Reason string `json:"reason"`

	// Hint suggests a follow-up action, e.g. --force for a missing output
	Hint string `json:"hint,omitempty"`

	// Err is set for failed tasks and for some skips (root unset, catalog missing)
	Err   error  `json:"-"`
	Error string `json:"error,omitempty"`

	Entries  int           `json:"entries"`
	Duration time.Duration `json:"duration_ns"`
}

func (r *Result) fail(err error) {
	r.Status = StatusFailed
	r.Err = err
	r.Error = err.Error()
	if r.Reason == "" {
		r.Reason = err.Error()
	}
}

func (r *Result) skip(reason string, err error) {
	r.Status = StatusSkipped
	r.Reason = reason
	if err != nil {
		r.Err = err
		r.Error = err.Error()
	}
}

// Counts tallies results by status
type Counts struct {
	Skipped   int `json:"skipped"`
	Succeeded int `json:"succeeded"`
	Failed    int `json:"failed"`
}

// Report is the outcome of one Run
type Report struct {
	RunID   string   `json:"run_id"`
	Root    string   `json:"root,omitempty"`
	Results []Result `json:"results"`
}

// Failed reports whether any task failed. Skips are not failures.
func (r *Report) Failed() bool {
	for _, res := range r.Results {
		if res.Status == StatusFailed {
			return true
		}
	}
	return false
}

// Counts tallies the report's results
func (r *Report) Counts() Counts {
	var c Counts
	for _, res := range r.Results {
		switch res.Status {
		case StatusSkipped:
			c.Skipped++
		case StatusSucceeded:
			c.Succeeded++
		case StatusFailed:
			c.Failed++
		}
	}
	return c
}
