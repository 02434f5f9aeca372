package services

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/launchforge/launchforge/internal/db/models"
	"github.com/launchforge/launchforge/internal/db/repos"
)

// Project handles project-related operations
type Project struct {
	repo      *repos.ProjectRepository
	artifacts *repos.ArtifactRepository
}

// NewProjectService creates a new instance of ProjectService
func NewProjectService(repo *repos.ProjectRepository, artifacts *repos.ArtifactRepository) *Project {
	return &Project{
		repo:      repo,
		artifacts: artifacts,
	}
}

// Create creates a new project
func (s *Project) Create(ctx context.Context, project *models.Project) error {
	if err := project.Validate(); err != nil {
		return err
	}
	return s.repo.Create(ctx, project)
}

// GetByID retrieves a project by ID
func (s *Project) GetByID(ctx context.Context, id uint) (*models.Project, error) {
	project, err := s.repo.GetByID(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("%w: id %d", ErrProjectNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get project: %w", err)
	}
	return project, nil
}

// List retrieves all projects with pagination
func (s *Project) List(ctx context.Context, opts *models.ListOptions) ([]models.Project, error) {
	return s.repo.List(ctx, opts)
}

// ListArtifacts retrieves all generated artifacts for a project
func (s *Project) ListArtifacts(ctx context.Context, projectID uint, opts *models.ListOptions) ([]models.Artifact, error) {
	if _, err := s.GetByID(ctx, projectID); err != nil {
		return nil, err
	}
	return s.artifacts.ListByProject(ctx, projectID, opts)
}
