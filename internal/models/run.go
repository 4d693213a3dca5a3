package models

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// RunStatus represents valid run states
type RunStatus string

// Run statuses
const (
	RunStatusRunning RunStatus = "running"
	RunStatusPassed  RunStatus = "passed"
	RunStatusFailed  RunStatus = "failed"
)

// Run is one invocation of the scenario runner
type Run struct {
	ID         string
	Driver     string
	BaseURL    string
	Status     RunStatus
	Total      int
	Passed     int
	Failed     int
	StartedAt  time.Time
	FinishedAt *time.Time
}

// ScenarioResult is the recorded outcome of one scenario in a run
type ScenarioResult struct {
	ID         int64
	RunID      string
	Suite      string
	Name       string
	Passed     bool
	Kind       string
	Message    string
	DurationMS int64
	CreatedAt  time.Time
}

// Domain errors
var (
	ErrInvalidDriver           = errors.New("run driver cannot be empty")
	ErrInvalidBaseURL          = errors.New("run base URL cannot be empty")
	ErrInvalidStatusTransition = errors.New("invalid run status transition")
	ErrInvalidResult           = errors.New("scenario result needs a suite and a name")
)

// NewRun creates a running run with validation
func NewRun(driver, baseURL string) (*Run, error) {
	if driver == "" {
		return nil, ErrInvalidDriver
	}
	if baseURL == "" {
		return nil, ErrInvalidBaseURL
	}
	return &Run{
		ID:        uuid.New().String(),
		Driver:    driver,
		BaseURL:   baseURL,
		Status:    RunStatusRunning,
		StartedAt: time.Now(),
	}, nil
}

// NewScenarioResult creates a result for run with validation
func NewScenarioResult(runID, suite, name string, err error, kind string, took time.Duration) (*ScenarioResult, error) {
	if suite == "" || name == "" {
		return nil, ErrInvalidResult
	}
	r := &ScenarioResult{
		RunID:      runID,
		Suite:      suite,
		Name:       name,
		Passed:     err == nil,
		Kind:       kind,
		DurationMS: took.Milliseconds(),
	}
	if err != nil {
		r.Message = err.Error()
	}
	return r, nil
}

// Finish closes the run with the given results. The run passes only when
// no result failed.
func (r *Run) Finish(results []*ScenarioResult) error {
	if r.Status != RunStatusRunning {
		return fmt.Errorf("%w: cannot finish run with status %s", ErrInvalidStatusTransition, r.Status)
	}

	r.Total, r.Passed, r.Failed = len(results), 0, 0
	for _, res := range results {
		if res.Passed {
			r.Passed++
		} else {
			r.Failed++
		}
	}

	r.Status = RunStatusPassed
	if r.Failed > 0 {
		r.Status = RunStatusFailed
	}
	now := time.Now()
	r.FinishedAt = &now
	return nil
}

// IsRunning returns true while results are still being recorded
func (r *Run) IsRunning() bool {
	return r.Status == RunStatusRunning
}

// Duration returns how long the run took, or zero while it is running
func (r *Run) Duration() time.Duration {
	if r.FinishedAt == nil {
		return 0
	}
	return r.FinishedAt.Sub(r.StartedAt)
}
