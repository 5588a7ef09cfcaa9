package sweeper

import (
	"time"

	"dsclean/internal/exitcodes"
	"dsclean/internal/stats"
)

// Result is the report of a finished (or interrupted) run
type Result struct {
	RunID       string         `json:"run_id"`
	Root        string         `json:"root"`
	DryRun      bool           `json:"dry_run"`
	Stats       stats.Snapshot `json:"stats"`
	WalkErrors  int64          `json:"walk_errors"`
	Started     time.Time      `json:"started"`
	Duration    time.Duration  `json:"duration"`
	Interrupted bool           `json:"interrupted"`
}

// ExitCode maps the result onto the process exit status. Disposal failures
// only affect the status when failOnError is set.
func (r *Result) ExitCode(failOnError bool) int {
	if r == nil {
		return exitcodes.RuntimeError
	}
	if r.Interrupted {
		return exitcodes.RuntimeError
	}
	if failOnError && r.Stats.Failed > 0 {
		return exitcodes.PartialFailure
	}
	return exitcodes.Success
}
