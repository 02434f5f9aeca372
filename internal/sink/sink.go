// Package sink routes completed job output into domain artifact storage.
// Storage here is best effort: the worker logs sink failures but never lets
// them revert a completed job, since the expensive generation already
// succeeded.
package sink

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/launchforge/launchforge/internal/agents"
	"github.com/launchforge/launchforge/internal/db/models"
	"github.com/launchforge/launchforge/internal/db/repos"
)

// Sink persists a completed job's output as a domain artifact.
type Sink interface {
	Store(ctx context.Context, agentType agents.Type, job *models.Job, output json.RawMessage) error
}

// ArtifactSink stores one artifact row per completed generation.
type ArtifactSink struct {
	artifacts *repos.ArtifactRepository
}

// NewArtifactSink creates a sink backed by the artifact repository.
func NewArtifactSink(artifacts *repos.ArtifactRepository) *ArtifactSink {
	return &ArtifactSink{artifacts: artifacts}
}

// titles maps every agent type to the display title of its artifact. The
// table is total over agents.Types; unknown types fall back to the raw tag.
var titles = map[agents.Type]string{
	agents.TypeLandingPage:       "Landing Page",
	agents.TypeHeadlineGenerator: "Headlines",
	agents.TypeValueProposition:  "Value Proposition",
	agents.TypeLaunchSequence:    "Launch Email Sequence",
	agents.TypeAdCopy:            "Ad Copy",
	agents.TypeSocialPosts:       "Social Posts",
	agents.TypeWelcomeEmail:      "Welcome Email",
}

// Store persists the output as an artifact for the job's project.
func (s *ArtifactSink) Store(ctx context.Context, agentType agents.Type, job *models.Job, output json.RawMessage) error {
	title, ok := titles[agentType]
	if !ok {
		title = agentType.String()
	}

	artifact := &models.Artifact{
		ProjectID: job.ProjectID,
		JobID:     job.ID,
		Kind:      agentType.String(),
		Title:     title,
		Content:   output,
	}
	if err := s.artifacts.Create(ctx, artifact); err != nil {
		return fmt.Errorf("failed to store %s artifact for job %d: %w", agentType, job.ID, err)
	}
	return nil
}
