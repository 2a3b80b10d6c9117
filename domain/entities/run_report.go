package entities

import "time"

// StepStatus represents the result of one smoke step
type StepStatus string

const (
	StepStatusPassed  StepStatus = "passed"
	StepStatusFailed  StepStatus = "failed"
	StepStatusSkipped StepStatus = "skipped"
)

// StepResult is the history entry of one executed step
type StepResult struct {
	Name       string        `json:"name"`
	Status     StepStatus    `json:"status"`
	Duration   time.Duration `json:"duration"`
	Error      string        `json:"error,omitempty"`
	Warnings   []string      `json:"warnings,omitempty"`
	Screenshot string        `json:"screenshot,omitempty"`
}

// RunReport collects the step results of one smoke run
type RunReport struct {
	ID          string       `json:"id"`
	Environment string       `json:"environment"`
	StartedAt   time.Time    `json:"started_at"`
	Steps       []StepResult `json:"steps"`
}

// Count returns how many steps ended with status
func (r *RunReport) Count(status StepStatus) int {
	n := 0
	for _, s := range r.Steps {
		if s.Status == status {
			n++
		}
	}
	return n
}

// Passed is true when no step failed
func (r *RunReport) Passed() bool {
	return r.Count(StepStatusFailed) == 0
}
