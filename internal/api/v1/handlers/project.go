package handlers

import (
	"errors"

	fiber "github.com/gofiber/fiber/v2"

	"github.com/launchforge/launchforge/internal/db/models"
	"github.com/launchforge/launchforge/internal/services"
)

// ProjectHandler handles HTTP requests for project operations
type ProjectHandler struct {
	projectService *services.Project
}

// NewProjectHandler creates a new project handler instance
func NewProjectHandler(s *services.Project) *ProjectHandler {
	return &ProjectHandler{projectService: s}
}

// CreateProject creates a new project from the request body
func (h *ProjectHandler) CreateProject(c *fiber.Ctx) error {
	var project models.Project
	if err := c.BodyParser(&project); err != nil {
		return c.Status(fiber.StatusBadRequest).
			JSON(ErrorResponse{Error: ErrMsgInvalidReqBody})
	}

	if err := project.Validate(); err != nil {
		return c.Status(fiber.StatusBadRequest).
			JSON(ErrorResponse{Error: err.Error()})
	}

	if err := h.projectService.Create(c.Context(), &project); err != nil {
		return c.Status(fiber.StatusInternalServerError).
			JSON(ErrorResponse{Error: err.Error()})
	}

	return c.Status(fiber.StatusCreated).JSON(project)
}

// GetProject returns a project by id
func (h *ProjectHandler) GetProject(c *fiber.Ctx) error {
	projectID, err := parseIDParam(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).
			JSON(ErrorResponse{Error: ErrMsgInvalidProjectID})
	}

	project, err := h.projectService.GetByID(c.Context(), projectID)
	if errors.Is(err, services.ErrProjectNotFound) {
		return c.Status(fiber.StatusNotFound).
			JSON(ErrorResponse{Error: err.Error()})
	}
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).
			JSON(ErrorResponse{Error: err.Error()})
	}

	return c.JSON(project)
}

// ListProjects returns all projects
func (h *ProjectHandler) ListProjects(c *fiber.Ctx) error {
	page := c.QueryInt("page", 1)
	projects, err := h.projectService.List(c.Context(), getPaginationOptions(page))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).
			JSON(ErrorResponse{Error: err.Error()})
	}

	return c.JSON(fiber.Map{"projects": projects})
}

// ListProjectArtifacts returns the generated artifacts for a project
func (h *ProjectHandler) ListProjectArtifacts(c *fiber.Ctx) error {
	projectID, err := parseIDParam(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).
			JSON(ErrorResponse{Error: ErrMsgInvalidProjectID})
	}

	page := c.QueryInt("page", 1)
	artifacts, err := h.projectService.ListArtifacts(c.Context(), projectID, getPaginationOptions(page))
	if errors.Is(err, services.ErrProjectNotFound) {
		return c.Status(fiber.StatusNotFound).
			JSON(ErrorResponse{Error: err.Error()})
	}
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).
			JSON(ErrorResponse{Error: err.Error()})
	}

	return c.JSON(fiber.Map{"artifacts": artifacts})
}
