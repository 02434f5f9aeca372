package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseJobStatus(t *testing.T) {
	tests := []struct {
		input   string
		want    JobStatus
		wantErr bool
	}{
		{"pending", JobStatusPending, false},
		{"running", JobStatusRunning, false},
		{"completed", JobStatusCompleted, false},
		{"failed", JobStatusFailed, false},
		{"terminated", JobStatusUnknown, true},
		{"", JobStatusUnknown, true},
	}

	for _, tt := range tests {
		got, err := ParseJobStatus(tt.input)
		if tt.wantErr {
			assert.Error(t, err, "input %q", tt.input)
		} else {
			assert.NoError(t, err, "input %q", tt.input)
		}
		assert.Equal(t, tt.want, got, "input %q", tt.input)
	}
}

func TestJobStatusIsTerminal(t *testing.T) {
	assert.True(t, JobStatusCompleted.IsTerminal())
	assert.True(t, JobStatusFailed.IsTerminal())
	assert.False(t, JobStatusPending.IsTerminal())
	assert.False(t, JobStatusRunning.IsTerminal())
}

func TestJobStatusUnmarshalJSON(t *testing.T) {
	var status JobStatus
	require.NoError(t, json.Unmarshal([]byte(`"running"`), &status))
	assert.Equal(t, JobStatusRunning, status)

	assert.Error(t, json.Unmarshal([]byte(`"bogus"`), &status))
}

func TestJobBeforeCreateDefaultsStatus(t *testing.T) {
	job := &Job{ProjectID: 1, AgentType: "landing_page"}
	require.NoError(t, job.BeforeCreate(nil))
	assert.Equal(t, JobStatusPending, job.Status)
}

func TestJobValidate(t *testing.T) {
	job := &Job{AgentType: "landing_page"}
	assert.Error(t, job.Validate(), "missing project id")

	job = &Job{ProjectID: 1}
	assert.Error(t, job.Validate(), "missing agent type")

	job = &Job{ProjectID: 1, AgentType: "landing_page"}
	assert.NoError(t, job.Validate())
}

func TestJobErrorMessage(t *testing.T) {
	job := &Job{OutputData: json.RawMessage(`{"error":"timeout talking to provider"}`)}
	assert.Equal(t, "timeout talking to provider", job.ErrorMessage())

	// Missing or malformed output falls back to a generic message
	assert.Equal(t, "generation failed", (&Job{}).ErrorMessage())
	job = &Job{OutputData: json.RawMessage(`not json`)}
	assert.Equal(t, "generation failed", job.ErrorMessage())
	job = &Job{OutputData: json.RawMessage(`{"text":"hello"}`)}
	assert.Equal(t, "generation failed", job.ErrorMessage())
}
