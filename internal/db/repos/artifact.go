package repos

import (
	"context"

	"gorm.io/gorm"

	"github.com/launchforge/launchforge/internal/db/models"
)

// ArtifactRepository handles database operations for generated artifacts
type ArtifactRepository struct {
	db *gorm.DB
}

// NewArtifactRepository creates a new instance of ArtifactRepository
func NewArtifactRepository(db *gorm.DB) *ArtifactRepository {
	return &ArtifactRepository{db: db}
}

// Create creates a new artifact in the database
func (r *ArtifactRepository) Create(ctx context.Context, artifact *models.Artifact) error {
	return r.db.WithContext(ctx).Create(artifact).Error
}

// ListByProject retrieves all artifacts for a specific project with pagination
func (r *ArtifactRepository) ListByProject(ctx context.Context, projectID uint, opts *models.ListOptions) ([]models.Artifact, error) {
	if opts == nil {
		opts = models.DefaultListOptions()
	}
	var artifacts []models.Artifact
	err := r.db.WithContext(ctx).
		Where(models.Artifact{ProjectID: projectID}).
		Limit(opts.Limit).Offset(opts.Offset).
		Order("created_at DESC").
		Find(&artifacts).Error
	return artifacts, err
}

// GetByJobID retrieves the artifact produced by a specific job
func (r *ArtifactRepository) GetByJobID(ctx context.Context, jobID uint) (*models.Artifact, error) {
	var artifact models.Artifact
	err := r.db.WithContext(ctx).Where(models.Artifact{JobID: jobID}).First(&artifact).Error
	if err != nil {
		return nil, err
	}
	return &artifact, nil
}
