package executor

import (
	"time"

	"github.com/entrhq/autodemo/pkg/scenario"
)

// StepStatus is the outcome of one step.
type StepStatus string

const (
	StatusSuccess StepStatus = "success"
	StatusFailed  StepStatus = "failed"
	// StatusSkipped marks steps never run because an earlier required
	// step failed or the run was interrupted.
	StatusSkipped StepStatus = "skipped"
)

// StepOutcome records how one step went.
type StepOutcome struct {
	Index       int           `json:"index"`
	Kind        scenario.Kind `json:"kind"`
	Description string        `json:"description,omitempty"`
	Optional    bool          `json:"optional,omitempty"`
	Status      StepStatus    `json:"status"`
	Error       string        `json:"error,omitempty"`
	Duration    time.Duration `json:"duration"`
}

// RunResult is the record of a run. Success is the aggregate outcome.
type RunResult struct {
	RunID        string        `json:"run_id"`
	Scenario     string        `json:"scenario"`
	ScenarioPath string        `json:"scenario_path"`
	Success      bool          `json:"success"`
	Steps        []StepOutcome `json:"steps"`
	StartTime    time.Time     `json:"start_time"`
	EndTime      time.Time     `json:"end_time"`
	Duration     time.Duration `json:"duration"`
	Error        string        `json:"error,omitempty"`
	RecordingDir string        `json:"recording_dir,omitempty"`
	Videos       []string      `json:"videos,omitempty"`
}

// Counts returns the number of steps per status.
func (r *RunResult) Counts() map[StepStatus]int {
	counts := map[StepStatus]int{}
	for _, s := range r.Steps {
		counts[s.Status]++
	}
	return counts
}

// Aborted reports whether any step was skipped.
func (r *RunResult) Aborted() bool {
	return r.Counts()[StatusSkipped] > 0
}

func outcomeFor(step scenario.Step) StepOutcome {
	return StepOutcome{
		Index:       step.Index,
		Kind:        step.Kind(),
		Description: step.Description,
		Optional:    step.Optional,
	}
}
