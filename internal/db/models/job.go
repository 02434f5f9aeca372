package models

import (
	"encoding/json"
	"fmt"
	"time"

	"gorm.io/gorm"
)

// Field names for the job model
const (
	// JobStatusField is the database field name for the job status
	JobStatusField = "status"
	// JobCreatedAtField is the database field name for the job creation timestamp
	JobCreatedAtField = "created_at"
)

// JobStatus represents the current state of a generation job
type JobStatus string

// Job status constants
const (
	// JobStatusUnknown represents an unknown or invalid job status
	JobStatusUnknown JobStatus = "unknown"
	// JobStatusPending indicates the job is waiting to be claimed by a worker
	JobStatusPending JobStatus = "pending"
	// JobStatusRunning indicates the job has been claimed and is being processed
	JobStatusRunning JobStatus = "running"
	// JobStatusCompleted indicates the job has finished successfully
	JobStatusCompleted JobStatus = "completed"
	// JobStatusFailed indicates the job has failed
	JobStatusFailed JobStatus = "failed"
)

// Job represents one request to run a generation agent against a project's
// context. The row is the single source of truth for the job's lifecycle;
// the submitter, worker and status endpoint coordinate purely through it.
type Job struct {
	gorm.Model
	ProjectID uint   `json:"project_id" gorm:"not null; index"`
	AgentType string `json:"agent_type" gorm:"not null; index"`
	// InputData is the project context snapshot captured at submission time.
	// It is immutable after creation; later edits to the project must not
	// affect a queued job.
	InputData json.RawMessage `json:"input_data,omitempty" gorm:"type:jsonb"`
	// OutputData is nil until the job reaches a terminal state. On success it
	// holds the parsed result (or {"text": raw} when the output is not valid
	// JSON); on failure it holds {"error": message}.
	OutputData  json.RawMessage `json:"output_data,omitempty" gorm:"type:jsonb"`
	Status      JobStatus       `json:"status" gorm:"not null; index"`
	TokensUsed  int             `json:"tokens_used"`
	CreatedAt   time.Time       `json:"created_at" gorm:"index"`
	CompletedAt *time.Time      `json:"completed_at,omitempty"`
}

// String returns the string representation of the job status
func (s JobStatus) String() string {
	return string(s)
}

// IsTerminal reports whether the status is a terminal state.
func (s JobStatus) IsTerminal() bool {
	return s == JobStatusCompleted || s == JobStatusFailed
}

// ParseJobStatus converts a string to a JobStatus type
func ParseJobStatus(str string) (JobStatus, error) {
	switch str {
	case string(JobStatusPending):
		return JobStatusPending, nil
	case string(JobStatusRunning):
		return JobStatusRunning, nil
	case string(JobStatusCompleted):
		return JobStatusCompleted, nil
	case string(JobStatusFailed):
		return JobStatusFailed, nil
	default:
		return JobStatusUnknown, fmt.Errorf("invalid job status: %s", str)
	}
}

// UnmarshalJSON implements json.Unmarshaler for JobStatus
func (s *JobStatus) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		return err
	}

	status, err := ParseJobStatus(str)
	if err != nil {
		return err
	}

	*s = status
	return nil
}

// Validate ensures that the job data is valid
func (j *Job) Validate() error {
	if j.ProjectID == 0 {
		return fmt.Errorf("job project_id cannot be zero")
	}
	if j.AgentType == "" {
		return fmt.Errorf("job agent_type cannot be empty")
	}
	return nil
}

// BeforeCreate is a GORM hook that runs before creating a new job
func (j *Job) BeforeCreate(_ *gorm.DB) error {
	if j.Status == "" {
		j.Status = JobStatusPending
	}
	return j.Validate()
}

// ErrorMessage extracts the error string from OutputData for a failed job.
// It returns a generic message when the field is absent.
func (j *Job) ErrorMessage() string {
	const fallback = "generation failed"
	if len(j.OutputData) == 0 {
		return fallback
	}
	var payload struct {
		Error string `json:"error"`
	}
	if err := json.Unmarshal(j.OutputData, &payload); err != nil || payload.Error == "" {
		return fallback
	}
	return payload.Error
}
