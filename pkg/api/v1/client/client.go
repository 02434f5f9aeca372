// Package client provides the API client for interacting with the
// launchforge API
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/launchforge/launchforge/internal/api/v1/handlers"
	"github.com/launchforge/launchforge/internal/api/v1/routes"
	"github.com/launchforge/launchforge/internal/db/models"
	"github.com/launchforge/launchforge/internal/services"
)

// DefaultTimeout is the default timeout for API requests
const DefaultTimeout = 30 * time.Second

// Client is the interface for the API client
type Client interface {
	// Health check
	HealthCheck(ctx context.Context) (map[string]string, error)

	// Job endpoints
	SubmitJob(ctx context.Context, projectID uint, agentType string) (*handlers.SubmitJobResponse, error)
	GetJob(ctx context.Context, id uint) (*models.Job, error)
	GetJobStatus(ctx context.Context, id uint) (*services.JobStatusResponse, error)
	ListJobs(ctx context.Context, status string, page int) ([]models.Job, error)

	// Project endpoints
	CreateProject(ctx context.Context, project *models.Project) (*models.Project, error)
	GetProject(ctx context.Context, id uint) (*models.Project, error)
	ListProjects(ctx context.Context, page int) ([]models.Project, error)
	ListProjectArtifacts(ctx context.Context, projectID uint, page int) ([]models.Artifact, error)
}

// Options contains configuration options for the API client
type Options struct {
	// BaseURL is the base URL of the API
	BaseURL string
	// Timeout is the request timeout
	Timeout time.Duration
}

// DefaultOptions returns the default client options
func DefaultOptions() *Options {
	return &Options{
		BaseURL: routes.DefaultBaseURL,
		Timeout: DefaultTimeout,
	}
}

// APIClient implements the Client interface
type APIClient struct {
	baseURL    string
	httpClient *http.Client
}

var _ Client = &APIClient{}

// NewClient creates a new API client with the given options
func NewClient(opts *Options) (Client, error) {
	if opts == nil {
		opts = DefaultOptions()
	}
	if _, err := url.Parse(opts.BaseURL); err != nil {
		return nil, fmt.Errorf("invalid base URL: %w", err)
	}

	return &APIClient{
		baseURL:    opts.BaseURL,
		httpClient: &http.Client{Timeout: opts.Timeout},
	}, nil
}

// HealthCheck verifies the API server is reachable
func (c *APIClient) HealthCheck(ctx context.Context) (map[string]string, error) {
	var out map[string]string
	if err := c.doRequest(ctx, http.MethodGet, "/health", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// SubmitJob queues a generation job for a project
func (c *APIClient) SubmitJob(ctx context.Context, projectID uint, agentType string) (*handlers.SubmitJobResponse, error) {
	req := handlers.SubmitJobRequest{ProjectID: projectID, AgentType: agentType}
	var out handlers.SubmitJobResponse
	if err := c.doRequest(ctx, http.MethodPost, routes.APIv1Prefix+routes.JobsPath, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// GetJob retrieves a full job row
func (c *APIClient) GetJob(ctx context.Context, id uint) (*models.Job, error) {
	var out models.Job
	path := fmt.Sprintf("%s%s/%d", routes.APIv1Prefix, routes.JobsPath, id)
	if err := c.doRequest(ctx, http.MethodGet, path, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// GetJobStatus retrieves the status payload for a job
func (c *APIClient) GetJobStatus(ctx context.Context, id uint) (*services.JobStatusResponse, error) {
	var out services.JobStatusResponse
	path := fmt.Sprintf("%s%s/%d/status", routes.APIv1Prefix, routes.JobsPath, id)
	if err := c.doRequest(ctx, http.MethodGet, path, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ListJobs retrieves jobs, optionally filtered by status
func (c *APIClient) ListJobs(ctx context.Context, status string, page int) ([]models.Job, error) {
	query := url.Values{}
	if status != "" {
		query.Set("status", status)
	}
	if page > 1 {
		query.Set("page", strconv.Itoa(page))
	}
	path := routes.APIv1Prefix + routes.JobsPath
	if encoded := query.Encode(); encoded != "" {
		path += "?" + encoded
	}

	var out struct {
		Jobs []models.Job `json:"jobs"`
	}
	if err := c.doRequest(ctx, http.MethodGet, path, nil, &out); err != nil {
		return nil, err
	}
	return out.Jobs, nil
}

// CreateProject creates a new project
func (c *APIClient) CreateProject(ctx context.Context, project *models.Project) (*models.Project, error) {
	var out models.Project
	if err := c.doRequest(ctx, http.MethodPost, routes.APIv1Prefix+routes.ProjectsPath, project, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// GetProject retrieves a project by id
func (c *APIClient) GetProject(ctx context.Context, id uint) (*models.Project, error) {
	var out models.Project
	path := fmt.Sprintf("%s%s/%d", routes.APIv1Prefix, routes.ProjectsPath, id)
	if err := c.doRequest(ctx, http.MethodGet, path, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ListProjects retrieves all projects
func (c *APIClient) ListProjects(ctx context.Context, page int) ([]models.Project, error) {
	path := routes.APIv1Prefix + routes.ProjectsPath
	if page > 1 {
		path += "?page=" + strconv.Itoa(page)
	}

	var out struct {
		Projects []models.Project `json:"projects"`
	}
	if err := c.doRequest(ctx, http.MethodGet, path, nil, &out); err != nil {
		return nil, err
	}
	return out.Projects, nil
}

// ListProjectArtifacts retrieves the generated artifacts for a project
func (c *APIClient) ListProjectArtifacts(ctx context.Context, projectID uint, page int) ([]models.Artifact, error) {
	path := fmt.Sprintf("%s%s/%d/artifacts", routes.APIv1Prefix, routes.ProjectsPath, projectID)
	if page > 1 {
		path += "?page=" + strconv.Itoa(page)
	}

	var out struct {
		Artifacts []models.Artifact `json:"artifacts"`
	}
	if err := c.doRequest(ctx, http.MethodGet, path, nil, &out); err != nil {
		return nil, err
	}
	return out.Artifacts, nil
}

// doRequest performs an HTTP request and decodes the JSON response into out.
// Non-2xx responses are returned as errors carrying the server's message.
func (c *APIClient) doRequest(ctx context.Context, method, path string, body, out interface{}) error {
	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request body: %w", err)
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var apiErr handlers.ErrorResponse
		if err := json.Unmarshal(respBody, &apiErr); err == nil && apiErr.Error != "" {
			return fmt.Errorf("API error (status %d): %s", resp.StatusCode, apiErr.Error)
		}
		return fmt.Errorf("API error (status %d): %s", resp.StatusCode, string(respBody))
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(respBody, out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}
