package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/launchforge/launchforge/internal/agents"
	"github.com/launchforge/launchforge/internal/db/models"
	"github.com/launchforge/launchforge/internal/db/repos"
)

// Job provides the submission and status-read paths for generation jobs.
// Both are bounded by a single storage round trip: submission never waits on
// generation, and status is pull-only.
type Job struct {
	jobRepo     *repos.JobRepository
	projectRepo *repos.ProjectRepository
}

// NewJobService creates a new job service instance
func NewJobService(jobRepo *repos.JobRepository, projectRepo *repos.ProjectRepository) *Job {
	return &Job{jobRepo: jobRepo, projectRepo: projectRepo}
}

// JobStatusResponse is the client-facing projection of a job row.
type JobStatusResponse struct {
	JobID     uint             `json:"job_id"`
	Status    models.JobStatus `json:"status"`
	AgentType string           `json:"agent_type"`
	// Output and TokensUsed are set for completed jobs only.
	Output      json.RawMessage `json:"output,omitempty"`
	TokensUsed  *int            `json:"tokens_used,omitempty"`
	CompletedAt *time.Time      `json:"completed_at,omitempty"`
	// Error is set for failed jobs only.
	Error string `json:"error,omitempty"`
	// ElapsedMS is set while the job is pending or running so clients can
	// implement their own polling backoff and timeout UI.
	ElapsedMS *int64 `json:"elapsed_ms,omitempty"`
}

// Submit validates the request, snapshots the project context and inserts a
// pending job row. It returns the new job without waiting on generation;
// request latency stays bounded regardless of how slow the generation call
// may be.
func (s *Job) Submit(ctx context.Context, projectID uint, agentType string) (*models.Job, error) {
	t, ok := agents.ParseType(agentType)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrInvalidAgentType, agentType)
	}

	project, err := s.projectRepo.GetByID(ctx, projectID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("%w: id %d", ErrProjectNotFound, projectID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get project: %w", err)
	}

	snapshot, err := json.Marshal(agents.Snapshot(project))
	if err != nil {
		return nil, fmt.Errorf("failed to marshal context snapshot: %w", err)
	}

	job := &models.Job{
		ProjectID: project.ID,
		AgentType: t.String(),
		InputData: snapshot,
		Status:    models.JobStatusPending,
	}
	if err := s.jobRepo.Create(ctx, job); err != nil {
		return nil, fmt.Errorf("failed to create job: %w", err)
	}
	return job, nil
}

// Get retrieves a job by its ID
func (s *Job) Get(ctx context.Context, id uint) (*models.Job, error) {
	job, err := s.jobRepo.GetByID(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("%w: id %d", ErrJobNotFound, id)
	}
	if err != nil {
		return nil, err
	}
	return job, nil
}

// GetStatus projects a job row into its client-facing status payload.
func (s *Job) GetStatus(ctx context.Context, id uint) (*JobStatusResponse, error) {
	job, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	resp := &JobStatusResponse{
		JobID:     job.ID,
		Status:    job.Status,
		AgentType: job.AgentType,
	}

	switch job.Status {
	case models.JobStatusCompleted:
		resp.Output = job.OutputData
		tokens := job.TokensUsed
		resp.TokensUsed = &tokens
		resp.CompletedAt = job.CompletedAt
	case models.JobStatusFailed:
		resp.Error = job.ErrorMessage()
	default:
		elapsed := time.Since(job.CreatedAt).Milliseconds()
		resp.ElapsedMS = &elapsed
	}
	return resp, nil
}

// List returns jobs, optionally filtered by status
func (s *Job) List(ctx context.Context, status models.JobStatus, opts *models.ListOptions) ([]models.Job, error) {
	return s.jobRepo.List(ctx, status, opts)
}
