package services

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/launchforge/launchforge/internal/agents"
	"github.com/launchforge/launchforge/internal/db/models"
	"github.com/launchforge/launchforge/internal/sink"
)

// failingSink always errors, standing in for a broken artifact store.
type failingSink struct{}

func (failingSink) Store(context.Context, agents.Type, *models.Job, json.RawMessage) error {
	return errors.New("artifact store unavailable")
}

type WorkerTestSuite struct {
	ServiceTestSuite
}

func TestWorkerSuite(t *testing.T) {
	suite.Run(t, new(WorkerTestSuite))
}

func (s *WorkerTestSuite) TestRunOnceNoPendingJobs() {
	processed, err := s.worker.RunOnce(s.ctx)
	s.NoError(err)
	s.False(processed)
	s.Zero(s.generator.calls)
}

func (s *WorkerTestSuite) TestRunOnceProcessesJobEndToEnd() {
	project := s.createTestProject()
	job, err := s.jobService.Submit(s.ctx, project.ID, "headline_generator")
	s.Require().NoError(err)
	s.Equal(models.JobStatusPending, job.Status)

	processed, err := s.worker.RunOnce(s.ctx)
	s.Require().NoError(err)
	s.True(processed)
	s.Equal(1, s.generator.calls)
	s.Equal("test-model", s.generator.lastModel)

	got, err := s.jobRepo.GetByID(s.ctx, job.ID)
	s.Require().NoError(err)
	s.Equal(models.JobStatusCompleted, got.Status)
	s.Equal(420, got.TokensUsed)
	s.Require().NotNil(got.CompletedAt)
	s.JSONEq(`{"headlines":["Inbox zero, every day"]}`, string(got.OutputData))

	// The sink persisted the result as an artifact tied to the job.
	artifacts, err := s.artifactRepo.ListByProject(s.ctx, project.ID, nil)
	s.Require().NoError(err)
	s.Require().Len(artifacts, 1)
	s.Equal(job.ID, artifacts[0].JobID)
	s.Equal("headline_generator", artifacts[0].Kind)
}

func (s *WorkerTestSuite) TestPromptRenderedFromSnapshotNotLiveProject() {
	project := s.createTestProject()
	_, err := s.jobService.Submit(s.ctx, project.ID, "value_proposition")
	s.Require().NoError(err)

	// Mutate the project after submission; the prompt must still reflect the
	// context captured when the job was enqueued.
	s.Require().NoError(s.db.Model(project).Update("description", "pivoted to CRM").Error)

	_, err = s.worker.RunOnce(s.ctx)
	s.Require().NoError(err)
	s.Contains(s.generator.lastPrompt, "An AI email coach")
	s.NotContains(s.generator.lastPrompt, "pivoted to CRM")
}

func (s *WorkerTestSuite) TestUnknownAgentTypeOnRowFailsWithoutGeneration() {
	project := s.createTestProject()
	job := &models.Job{
		ProjectID: project.ID,
		AgentType: "poem_writer",
		Status:    models.JobStatusPending,
	}
	s.Require().NoError(s.jobRepo.Create(s.ctx, job))

	processed, err := s.worker.RunOnce(s.ctx)
	s.Require().NoError(err)
	s.True(processed)
	s.Zero(s.generator.calls)

	got, err := s.jobRepo.GetByID(s.ctx, job.ID)
	s.Require().NoError(err)
	s.Equal(models.JobStatusFailed, got.Status)
	s.Contains(got.ErrorMessage(), "poem_writer")
}

func (s *WorkerTestSuite) TestGenerationErrorFailsJob() {
	project := s.createTestProject()
	job, err := s.jobService.Submit(s.ctx, project.ID, "ad_copy")
	s.Require().NoError(err)

	s.generator.err = errors.New("generation API returned status 500")

	processed, err := s.worker.RunOnce(s.ctx)
	s.Require().NoError(err)
	s.True(processed)

	got, err := s.jobRepo.GetByID(s.ctx, job.ID)
	s.Require().NoError(err)
	s.Equal(models.JobStatusFailed, got.Status)
	s.Equal("generation API returned status 500", got.ErrorMessage())

	// No artifact is written for a failed job.
	artifacts, err := s.artifactRepo.ListByProject(s.ctx, project.ID, nil)
	s.Require().NoError(err)
	s.Empty(artifacts)
}

func (s *WorkerTestSuite) TestNonJSONOutputStillCompletes() {
	project := s.createTestProject()
	job, err := s.jobService.Submit(s.ctx, project.ID, "welcome_email")
	s.Require().NoError(err)

	s.generator.result.Text = "Welcome aboard!\n\nHere is how to get started."

	_, err = s.worker.RunOnce(s.ctx)
	s.Require().NoError(err)

	got, err := s.jobRepo.GetByID(s.ctx, job.ID)
	s.Require().NoError(err)
	s.Equal(models.JobStatusCompleted, got.Status)

	var output map[string]string
	s.Require().NoError(json.Unmarshal(got.OutputData, &output))
	s.Equal("Welcome aboard!\n\nHere is how to get started.", output["text"])
}

func (s *WorkerTestSuite) TestFencedOutputIsUnwrapped() {
	project := s.createTestProject()
	job, err := s.jobService.Submit(s.ctx, project.ID, "landing_page")
	s.Require().NoError(err)

	s.generator.result.Text = "```json\n{\"hero\":\"Tame your inbox\"}\n```"

	_, err = s.worker.RunOnce(s.ctx)
	s.Require().NoError(err)

	got, err := s.jobRepo.GetByID(s.ctx, job.ID)
	s.Require().NoError(err)
	s.Equal(models.JobStatusCompleted, got.Status)
	s.JSONEq(`{"hero":"Tame your inbox"}`, string(got.OutputData))
}

func (s *WorkerTestSuite) TestStaleRunningJobIsReclaimedAndReprocessed() {
	project := s.createTestProject()
	job, err := s.jobService.Submit(s.ctx, project.ID, "social_posts")
	s.Require().NoError(err)

	// Simulate a job orphaned by a crashed worker: stuck in running with a
	// creation time past the staleness threshold.
	s.Require().NoError(s.jobRepo.UpdateStatus(s.ctx, job.ID, models.JobStatusRunning))
	stale := time.Now().Add(-10 * time.Minute)
	s.Require().NoError(s.db.Model(&models.Job{}).Where("id = ?", job.ID).Update("created_at", stale).Error)

	processed, err := s.worker.RunOnce(s.ctx)
	s.Require().NoError(err)
	s.True(processed)

	got, err := s.jobRepo.GetByID(s.ctx, job.ID)
	s.Require().NoError(err)
	s.Equal(models.JobStatusCompleted, got.Status)
	s.Equal(1, s.generator.calls)
}

func (s *WorkerTestSuite) TestFreshRunningJobIsLeftAlone() {
	project := s.createTestProject()
	job, err := s.jobService.Submit(s.ctx, project.ID, "launch_sequence")
	s.Require().NoError(err)
	s.Require().NoError(s.jobRepo.UpdateStatus(s.ctx, job.ID, models.JobStatusRunning))

	processed, err := s.worker.RunOnce(s.ctx)
	s.NoError(err)
	s.False(processed)
	s.Zero(s.generator.calls)

	got, err := s.jobRepo.GetByID(s.ctx, job.ID)
	s.Require().NoError(err)
	s.Equal(models.JobStatusRunning, got.Status)
}

func (s *WorkerTestSuite) TestTerminalJobsAreNeverRevisited() {
	project := s.createTestProject()
	for _, status := range []models.JobStatus{models.JobStatusCompleted, models.JobStatusFailed} {
		job := &models.Job{
			ProjectID: project.ID,
			AgentType: "headline_generator",
			Status:    status,
		}
		s.Require().NoError(s.jobRepo.Create(s.ctx, job))
		stale := time.Now().Add(-10 * time.Minute)
		s.Require().NoError(s.db.Model(&models.Job{}).Where("id = ?", job.ID).Update("created_at", stale).Error)
	}

	processed, err := s.worker.RunOnce(s.ctx)
	s.NoError(err)
	s.False(processed)
	s.Zero(s.generator.calls)
}

func (s *WorkerTestSuite) TestSinkFailureDoesNotRevertCompletion() {
	s.worker = NewWorker(s.jobRepo, agents.NewResolver("test-model", nil), s.generator, failingSink{}, 10*time.Millisecond, 5*time.Minute)

	project := s.createTestProject()
	job, err := s.jobService.Submit(s.ctx, project.ID, "headline_generator")
	s.Require().NoError(err)

	processed, err := s.worker.RunOnce(s.ctx)
	s.Require().NoError(err)
	s.True(processed)

	got, err := s.jobRepo.GetByID(s.ctx, job.ID)
	s.Require().NoError(err)
	s.Equal(models.JobStatusCompleted, got.Status)
}

func (s *WorkerTestSuite) TestModelOverridesRouteByAgentType() {
	resolver := agents.NewResolver("test-model", map[string]string{"landing_page": "bigger-model"})
	s.worker = NewWorker(s.jobRepo, resolver, s.generator, sink.NewArtifactSink(s.artifactRepo), 10*time.Millisecond, 5*time.Minute)

	project := s.createTestProject()
	_, err := s.jobService.Submit(s.ctx, project.ID, "landing_page")
	s.Require().NoError(err)

	_, err = s.worker.RunOnce(s.ctx)
	s.Require().NoError(err)
	s.Equal("bigger-model", s.generator.lastModel)
}

func (s *WorkerTestSuite) TestRunReturnsOnContextCancel() {
	ctx, cancel := context.WithCancel(s.ctx)
	cancel()

	done := make(chan struct{})
	go func() {
		s.worker.Run(ctx)
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		s.Fail("worker did not stop after context cancellation")
	}
}

func TestParseOutput(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
	}{
		{
			name: "json object passes through",
			raw:  `{"headline":"Ship faster"}`,
			want: `{"headline":"Ship faster"}`,
		},
		{
			name: "json array passes through",
			raw:  `["one","two"]`,
			want: `["one","two"]`,
		},
		{
			name: "fenced json is unwrapped",
			raw:  "```json\n{\"ok\":true}\n```",
			want: `{"ok":true}`,
		},
		{
			name: "bare fence is unwrapped",
			raw:  "```\n[1,2,3]\n```",
			want: `[1,2,3]`,
		},
		{
			name: "plain text falls back to text document",
			raw:  "Subject: Welcome!",
			want: `{"text":"Subject: Welcome!"}`,
		},
		{
			name: "invalid json falls back to text document",
			raw:  `{"broken":`,
			want: `{"text":"{\"broken\":"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := parseOutput(tt.raw)
			if string(got) != tt.want {
				t.Errorf("parseOutput(%q) = %s, want %s", tt.raw, got, tt.want)
			}
			if !json.Valid(got) {
				t.Errorf("parseOutput(%q) produced invalid JSON: %s", tt.raw, got)
			}
		})
	}
}

func TestStripCodeFences(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
	}{
		{name: "no fence", raw: "hello", want: "hello"},
		{name: "json fence", raw: "```json\n{}\n```", want: "{}"},
		{name: "bare fence", raw: "```\ntext\n```", want: "text"},
		{name: "single line fence", raw: "```{}```", want: "{}"},
		{name: "missing closing fence", raw: "```json\n{}", want: "{}"},
		{name: "surrounding whitespace", raw: "  ```json\n{\"a\":1}\n```  ", want: `{"a":1}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := stripCodeFences(tt.raw); got != tt.want {
				t.Errorf("stripCodeFences(%q) = %q, want %q", tt.raw, got, tt.want)
			}
		})
	}
}
