package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/launchforge/launchforge/internal/agents"
	"github.com/launchforge/launchforge/internal/db/models"
	"github.com/launchforge/launchforge/internal/db/repos"
	"github.com/launchforge/launchforge/internal/generation"
	"github.com/launchforge/launchforge/internal/logger"
	"github.com/launchforge/launchforge/internal/sink"
)

// Generator performs the long-running external generation call.
type Generator interface {
	Generate(ctx context.Context, model, prompt string) (*generation.Result, error)
}

// Worker is the long-lived process that claims pending jobs and executes
// them end to end. It processes at most one job per iteration; the job table
// is the only coordination primitive, so a single worker instance is the
// documented operating assumption (see JobRepository.ClaimOldestPending).
type Worker struct {
	jobs          *repos.JobRepository
	resolver      *agents.Resolver
	generator     Generator
	sink          sink.Sink
	pollInterval  time.Duration
	staleInterval time.Duration
	id            string
}

// NewWorker creates a worker with the given poll interval and staleness
// threshold.
func NewWorker(jobs *repos.JobRepository, resolver *agents.Resolver, generator Generator, s sink.Sink, pollInterval, staleThreshold time.Duration) *Worker {
	return &Worker{
		jobs:          jobs,
		resolver:      resolver,
		generator:     generator,
		sink:          s,
		pollInterval:  pollInterval,
		staleInterval: staleThreshold,
		id:            uuid.NewString(),
	}
}

// LaunchWorker runs the worker loop in the caller's goroutine, marking the
// wait group done when the loop exits.
func LaunchWorker(ctx context.Context, wg *sync.WaitGroup, w *Worker) {
	defer wg.Done()
	w.Run(ctx)
}

// Run executes the poll loop forever: reclaim stale jobs, claim the oldest
// pending job, execute it, repeat. It returns when ctx is cancelled.
func (w *Worker) Run(ctx context.Context) {
	logger.Infof("Worker %s started (poll=%s, stale threshold=%s)", w.id, w.pollInterval, w.staleInterval)

	for {
		select {
		case <-ctx.Done():
			logger.Infof("Worker %s received shutdown signal, stopping...", w.id)
			return
		default:
		}

		processed, err := w.RunOnce(ctx)
		if err != nil {
			logger.Errorf("Worker %s iteration error: %v", w.id, err)
			// Wait before retrying to avoid spamming logs on persistent DB errors
			time.Sleep(w.pollInterval)
			continue
		}
		if !processed {
			time.Sleep(w.pollInterval)
		}
	}
}

// RunOnce performs a single loop iteration: the stuck-job sweep followed by
// claiming and executing at most one pending job. It reports whether a job
// was processed.
func (w *Worker) RunOnce(ctx context.Context) (bool, error) {
	reclaimed, err := w.jobs.ReclaimStale(ctx, w.staleInterval)
	if err != nil {
		return false, fmt.Errorf("stale job sweep failed: %w", err)
	}
	if reclaimed > 0 {
		logger.Warnf("Worker %s reclaimed %d stale running jobs back to pending", w.id, reclaimed)
	}

	job, err := w.jobs.ClaimOldestPending(ctx)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to claim job: %w", err)
	}

	w.execute(ctx, job)
	return true, nil
}

// execute runs a claimed job to a terminal state. The job is already marked
// running; any error path below lands on failed, success lands on completed.
func (w *Worker) execute(ctx context.Context, job *models.Job) {
	logger.InfoWithFields("Worker executing job", map[string]interface{}{
		"worker_id":  w.id,
		"job_id":     job.ID,
		"agent_type": job.AgentType,
	})

	// Defensive re-check: the job table has no type constraint, so a row may
	// carry a type the resolver does not know. That is a non-retryable
	// failure; generation is skipped entirely.
	agentType, ok := agents.ParseType(job.AgentType)
	if !ok {
		w.fail(ctx, job, fmt.Sprintf("unknown agent type %q", job.AgentType))
		return
	}

	// The prompt is rendered from the snapshot captured at submission, never
	// from a fresh project read.
	var snapshot agents.Context
	if len(job.InputData) > 0 {
		if err := json.Unmarshal(job.InputData, &snapshot); err != nil {
			w.fail(ctx, job, fmt.Sprintf("invalid input data: %v", err))
			return
		}
	}

	prompt, ok := agents.Prompt(agentType, snapshot)
	if !ok {
		w.fail(ctx, job, fmt.Sprintf("no prompt template for agent type %q", job.AgentType))
		return
	}

	result, err := w.generator.Generate(ctx, w.resolver.Model(agentType), prompt)
	if err != nil {
		// Terminal: failed jobs are not retried automatically, resubmission
		// is up to the caller.
		w.fail(ctx, job, err.Error())
		return
	}

	output := parseOutput(result.Text)
	if err := w.jobs.Complete(ctx, job.ID, output, result.TokensUsed); err != nil {
		logger.Errorf("Worker %s failed to mark job %d completed: %v", w.id, job.ID, err)
		return
	}

	logger.InfoWithFields("Worker completed job", map[string]interface{}{
		"worker_id":   w.id,
		"job_id":      job.ID,
		"agent_type":  job.AgentType,
		"tokens_used": result.TokensUsed,
	})

	// Best effort: a sink failure must not revert the completed status. The
	// generation already succeeded; losing a downstream insert should not
	// make the user pay for it again.
	if err := w.sink.Store(ctx, agentType, job, output); err != nil {
		logger.Errorf("Worker %s: result sink failed for job %d: %v", w.id, job.ID, err)
	}
}

func (w *Worker) fail(ctx context.Context, job *models.Job, msg string) {
	logger.WarnWithFields("Worker failing job", map[string]interface{}{
		"worker_id": w.id,
		"job_id":    job.ID,
		"error":     msg,
	})
	if err := w.jobs.Fail(ctx, job.ID, msg); err != nil {
		logger.Errorf("Worker %s failed to mark job %d failed: %v", w.id, job.ID, err)
	}
}

// parseOutput turns raw model output into the stored output document. Code
// fence markers are stripped first; if what remains is a JSON object or
// array it is stored as-is, otherwise the job still succeeds with a
// {"text": raw} fallback.
func parseOutput(raw string) json.RawMessage {
	text := stripCodeFences(raw)

	trimmed := strings.TrimSpace(text)
	if len(trimmed) > 0 && (trimmed[0] == '{' || trimmed[0] == '[') && json.Valid([]byte(trimmed)) {
		return json.RawMessage(trimmed)
	}

	fallback, err := json.Marshal(map[string]string{"text": text})
	if err != nil {
		// Marshalling a map of strings cannot fail; keep the compiler honest.
		return json.RawMessage(`{"text": ""}`)
	}
	return json.RawMessage(fallback)
}

// stripCodeFences removes a wrapping ``` or ```json fence if present.
func stripCodeFences(raw string) string {
	text := strings.TrimSpace(raw)
	if !strings.HasPrefix(text, "```") {
		return text
	}

	// Drop the opening fence line, including any language tag.
	if idx := strings.Index(text, "\n"); idx >= 0 {
		text = text[idx+1:]
	} else {
		text = strings.TrimPrefix(text, "```")
		return strings.TrimSpace(strings.TrimSuffix(text, "```"))
	}

	if idx := strings.LastIndex(text, "```"); idx >= 0 {
		text = text[:idx]
	}
	return strings.TrimSpace(text)
}
