package repos

import (
	"context"

	"gorm.io/gorm"

	"github.com/launchforge/launchforge/internal/db/models"
)

// ProjectRepository handles database operations for projects
type ProjectRepository struct {
	db *gorm.DB
}

// NewProjectRepository creates a new instance of ProjectRepository
func NewProjectRepository(db *gorm.DB) *ProjectRepository {
	return &ProjectRepository{db: db}
}

// Create creates a new project in the database
func (r *ProjectRepository) Create(ctx context.Context, project *models.Project) error {
	return r.db.WithContext(ctx).Create(project).Error
}

// GetByID retrieves a project by ID from the database
func (r *ProjectRepository) GetByID(ctx context.Context, id uint) (*models.Project, error) {
	var project models.Project
	if err := r.db.WithContext(ctx).First(&project, id).Error; err != nil {
		return nil, err
	}
	return &project, nil
}

// GetByName retrieves a project by name from the database
func (r *ProjectRepository) GetByName(ctx context.Context, name string) (*models.Project, error) {
	var project models.Project
	err := r.db.WithContext(ctx).Where(models.Project{Name: name}).First(&project).Error
	if err != nil {
		return nil, err
	}
	return &project, nil
}

// List retrieves all projects from the database with pagination
func (r *ProjectRepository) List(ctx context.Context, opts *models.ListOptions) ([]models.Project, error) {
	if opts == nil {
		opts = models.DefaultListOptions()
	}
	var projects []models.Project
	err := r.db.WithContext(ctx).
		Limit(opts.Limit).Offset(opts.Offset).
		Order("created_at DESC").
		Find(&projects).Error
	return projects, err
}
