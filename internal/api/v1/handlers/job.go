package handlers

import (
	"errors"
	"strconv"

	fiber "github.com/gofiber/fiber/v2"

	"github.com/launchforge/launchforge/internal/db/models"
	"github.com/launchforge/launchforge/internal/services"
)

// JobHandler handles HTTP requests for job operations
type JobHandler struct {
	jobService *services.Job
}

// NewJobHandler creates a new job handler instance
func NewJobHandler(s *services.Job) *JobHandler {
	return &JobHandler{jobService: s}
}

// SubmitJobRequest is the body of the job submission endpoint
type SubmitJobRequest struct {
	ProjectID uint   `json:"project_id"`
	AgentType string `json:"agent_type"`
}

// SubmitJob accepts a generation request and queues it. The response is
// returned as soon as the job row is inserted; clients poll the status
// endpoint for the result.
func (h *JobHandler) SubmitJob(c *fiber.Ctx) error {
	var req SubmitJobRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).
			JSON(ErrorResponse{Error: ErrMsgInvalidReqBody})
	}
	if req.ProjectID == 0 {
		return c.Status(fiber.StatusBadRequest).
			JSON(ErrorResponse{Error: ErrMsgProjectIDRequired})
	}
	if req.AgentType == "" {
		return c.Status(fiber.StatusBadRequest).
			JSON(ErrorResponse{Error: ErrMsgAgentTypeRequired})
	}

	job, err := h.jobService.Submit(c.Context(), req.ProjectID, req.AgentType)
	if errors.Is(err, services.ErrInvalidAgentType) {
		return c.Status(fiber.StatusBadRequest).
			JSON(ErrorResponse{Error: err.Error()})
	}
	if errors.Is(err, services.ErrProjectNotFound) {
		return c.Status(fiber.StatusNotFound).
			JSON(ErrorResponse{Error: err.Error()})
	}
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).
			JSON(ErrorResponse{Error: err.Error()})
	}

	return c.Status(fiber.StatusCreated).JSON(SubmitJobResponse{
		JobID:  job.ID,
		Status: job.Status.String(),
	})
}

// GetJobStatus returns the client-facing status payload for a job
func (h *JobHandler) GetJobStatus(c *fiber.Ctx) error {
	jobID, err := parseIDParam(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).
			JSON(ErrorResponse{Error: ErrMsgInvalidJobID})
	}

	status, err := h.jobService.GetStatus(c.Context(), jobID)
	if errors.Is(err, services.ErrJobNotFound) {
		return c.Status(fiber.StatusNotFound).
			JSON(ErrorResponse{Error: err.Error()})
	}
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).
			JSON(ErrorResponse{Error: err.Error()})
	}

	return c.JSON(status)
}

// GetJob returns the full job row
func (h *JobHandler) GetJob(c *fiber.Ctx) error {
	jobID, err := parseIDParam(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).
			JSON(ErrorResponse{Error: ErrMsgInvalidJobID})
	}

	job, err := h.jobService.Get(c.Context(), jobID)
	if errors.Is(err, services.ErrJobNotFound) {
		return c.Status(fiber.StatusNotFound).
			JSON(ErrorResponse{Error: err.Error()})
	}
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).
			JSON(ErrorResponse{Error: err.Error()})
	}

	return c.JSON(job)
}

// ListJobs returns jobs, optionally filtered by status
func (h *JobHandler) ListJobs(c *fiber.Ctx) error {
	status := models.JobStatusUnknown
	if statusStr := c.Query("status"); statusStr != "" {
		var err error
		status, err = models.ParseJobStatus(statusStr)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).
				JSON(ErrorResponse{Error: ErrMsgInvalidJobStatus})
		}
	}

	page := c.QueryInt("page", 1)
	jobs, err := h.jobService.List(c.Context(), status, getPaginationOptions(page))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).
			JSON(ErrorResponse{Error: err.Error()})
	}

	return c.JSON(fiber.Map{"jobs": jobs})
}

// parseIDParam parses the :id path parameter.
func parseIDParam(c *fiber.Ctx) (uint, error) {
	idStr := c.Params("id")
	id, err := strconv.ParseUint(idStr, 10, 32)
	if err != nil {
		return 0, err
	}
	return uint(id), nil
}
