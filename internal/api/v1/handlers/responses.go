// Package handlers provides HTTP request handling for the v1 API
package handlers

// ErrorResponse is the body of every non-2xx response
type ErrorResponse struct {
	Error string `json:"error"`
}

// SubmitJobResponse is returned when a job is accepted for processing
type SubmitJobResponse struct {
	JobID  uint   `json:"job_id"`
	Status string `json:"status"`
}

// Common error messages
const (
	ErrMsgInvalidJobID      = "invalid job id"
	ErrMsgInvalidProjectID  = "invalid project id"
	ErrMsgProjectIDRequired = "project_id is required"
	ErrMsgAgentTypeRequired = "agent_type is required"
	ErrMsgInvalidReqBody    = "invalid request body"
	ErrMsgInvalidJobStatus  = "invalid job status"
)
