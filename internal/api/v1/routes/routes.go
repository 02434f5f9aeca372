// Package routes defines the API routes and URL structure
package routes

import (
	fiber "github.com/gofiber/fiber/v2"

	"github.com/launchforge/launchforge/internal/api/v1/handlers"
)

// API base configuration
const (
	// DefaultPort is the default port for the API
	DefaultPort = "8080"
	// APIv1Prefix is the prefix for all v1 API endpoints
	APIv1Prefix = "/api/v1"
	// DefaultBaseURL is the default base URL for the API
	DefaultBaseURL = "http://localhost:" + DefaultPort
)

// Endpoint paths, relative to APIv1Prefix
const (
	// JobsPath is the base path for job endpoints
	JobsPath = "/jobs"
	// ProjectsPath is the base path for project endpoints
	ProjectsPath = "/projects"
)

// RegisterRoutes configures all v1 routes on the given app.
//
// Routes are grouped by resource; within a group GET before POST, and param
// routes (/:id) after static ones so fiber does not swallow static slugs.
func RegisterRoutes(app *fiber.App, jobHandler *handlers.JobHandler, projectHandler *handlers.ProjectHandler) {
	v1 := app.Group(APIv1Prefix)

	// Job routes
	jobs := v1.Group(JobsPath)
	jobs.Get("/", jobHandler.ListJobs)
	jobs.Get("/:id", jobHandler.GetJob)
	jobs.Get("/:id/status", jobHandler.GetJobStatus)
	jobs.Post("/", jobHandler.SubmitJob)

	// Project routes
	projects := v1.Group(ProjectsPath)
	projects.Get("/", projectHandler.ListProjects)
	projects.Get("/:id", projectHandler.GetProject)
	projects.Get("/:id/artifacts", projectHandler.ListProjectArtifacts)
	projects.Post("/", projectHandler.CreateProject)
}
