// Package services provides the business logic for projects and generation
// jobs, including the worker loop that executes them.
package services

import "errors"

// Sentinel errors surfaced to the API layer. Handlers map these to HTTP
// status codes with errors.Is.
var (
	// ErrInvalidAgentType is returned when a submission names an agent type
	// outside the known set. No job row is created.
	ErrInvalidAgentType = errors.New("unknown agent type")
	// ErrProjectNotFound is returned when a project id does not resolve
	ErrProjectNotFound = errors.New("project not found")
	// ErrJobNotFound is returned when a job id does not resolve
	ErrJobNotFound = errors.New("job not found")
)
