// Package repos provides database repository implementations
package repos

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/launchforge/launchforge/internal/db/models"
)

// JobRepository provides access to job-related database operations. All query
// logic for the job table lives behind this type so the storage engine stays
// swappable.
type JobRepository struct {
	db *gorm.DB
}

// NewJobRepository creates a new job repository instance
func NewJobRepository(db *gorm.DB) *JobRepository {
	return &JobRepository{db: db}
}

// Create creates a new job in the database
func (r *JobRepository) Create(ctx context.Context, job *models.Job) error {
	return r.db.WithContext(ctx).Create(job).Error
}

// GetByID retrieves a job by its ID
func (r *JobRepository) GetByID(ctx context.Context, id uint) (*models.Job, error) {
	var job models.Job
	err := r.db.WithContext(ctx).First(&job, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get job: %w", err)
	}
	return &job, nil
}

// UpdateStatus updates the status of a job
func (r *JobRepository) UpdateStatus(ctx context.Context, id uint, status models.JobStatus) error {
	return r.db.WithContext(ctx).Model(&models.Job{}).
		Where(&models.Job{Model: gorm.Model{ID: id}}).
		Update(models.JobStatusField, status).Error
}

// ClaimOldestPending returns the oldest pending job and marks it running.
// FIFO order over created_at keeps processing fair. It returns
// gorm.ErrRecordNotFound when no pending job exists.
//
// The read and the status update are deliberately not wrapped in a
// transaction or row lock: the documented operating assumption is a single
// worker instance. Running multiple workers requires replacing this with an
// atomic claim (conditional update guarded by the previous status, or
// SELECT ... FOR UPDATE SKIP LOCKED).
func (r *JobRepository) ClaimOldestPending(ctx context.Context) (*models.Job, error) {
	var job models.Job
	err := r.db.WithContext(ctx).
		Where(&models.Job{Status: models.JobStatusPending}).
		Order(models.JobCreatedAtField + " ASC").
		First(&job).Error
	if err != nil {
		return nil, err
	}

	if err := r.UpdateStatus(ctx, job.ID, models.JobStatusRunning); err != nil {
		return nil, fmt.Errorf("failed to mark job %d running: %w", job.ID, err)
	}
	job.Status = models.JobStatusRunning
	return &job, nil
}

// ReclaimStale returns running jobs whose created_at is older than the
// staleness threshold back to pending, recovering from worker crashes
// mid-job. This is the only backward transition in the job lifecycle and may
// happen repeatedly for the same row. It returns the number of reclaimed
// rows.
func (r *JobRepository) ReclaimStale(ctx context.Context, threshold time.Duration) (int64, error) {
	cutoff := time.Now().Add(-threshold)
	result := r.db.WithContext(ctx).Model(&models.Job{}).
		Where("status = ? AND created_at < ?", models.JobStatusRunning, cutoff).
		Update(models.JobStatusField, models.JobStatusPending)
	return result.RowsAffected, result.Error
}

// Complete marks a job as completed, storing the parsed output, the token
// usage and the completion timestamp.
func (r *JobRepository) Complete(ctx context.Context, id uint, output json.RawMessage, tokensUsed int) error {
	now := time.Now()
	return r.db.WithContext(ctx).Model(&models.Job{}).
		Where(&models.Job{Model: gorm.Model{ID: id}}).
		Updates(map[string]interface{}{
			"status":       models.JobStatusCompleted,
			"output_data":  output,
			"tokens_used":  tokensUsed,
			"completed_at": now,
		}).Error
}

// Fail marks a job as failed, storing {"error": message} as its output.
func (r *JobRepository) Fail(ctx context.Context, id uint, errMsg string) error {
	output, err := json.Marshal(map[string]string{"error": errMsg})
	if err != nil {
		return fmt.Errorf("failed to marshal error output: %w", err)
	}
	now := time.Now()
	return r.db.WithContext(ctx).Model(&models.Job{}).
		Where(&models.Job{Model: gorm.Model{ID: id}}).
		Updates(map[string]interface{}{
			"status":       models.JobStatusFailed,
			"output_data":  json.RawMessage(output),
			"completed_at": now,
		}).Error
}

// List returns jobs, optionally filtered by status, newest first.
func (r *JobRepository) List(ctx context.Context, status models.JobStatus, opts *models.ListOptions) ([]models.Job, error) {
	if opts == nil {
		opts = models.DefaultListOptions()
	}
	var jobs []models.Job
	qry := &models.Job{}
	if status != models.JobStatusUnknown && status != "" {
		qry.Status = status
	}
	err := r.db.WithContext(ctx).Model(&models.Job{}).
		Where(qry).
		Limit(opts.Limit).Offset(opts.Offset).
		Order(models.JobCreatedAtField + " DESC").
		Find(&jobs).Error
	return jobs, err
}

// Count returns the number of jobs, optionally filtered by status.
func (r *JobRepository) Count(ctx context.Context, status models.JobStatus) (int64, error) {
	var count int64
	qry := &models.Job{}
	if status != models.JobStatusUnknown && status != "" {
		qry.Status = status
	}
	err := r.db.WithContext(ctx).Model(&models.Job{}).Where(qry).Count(&count).Error
	return count, err
}
