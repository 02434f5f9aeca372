package services

import (
	"context"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/launchforge/launchforge/internal/agents"
	"github.com/launchforge/launchforge/internal/db/models"
	"github.com/launchforge/launchforge/internal/db/repos"
	"github.com/launchforge/launchforge/internal/generation"
	"github.com/launchforge/launchforge/internal/sink"
)

// fakeGenerator is a Generator test double recording its calls.
type fakeGenerator struct {
	result     *generation.Result
	err        error
	calls      int
	lastModel  string
	lastPrompt string
}

func (f *fakeGenerator) Generate(_ context.Context, model, prompt string) (*generation.Result, error) {
	f.calls++
	f.lastModel = model
	f.lastPrompt = prompt
	if f.err != nil {
		return nil, f.err
	}
	return f.result, nil
}

// ServiceTestSuite provides a base suite wiring services against an
// in-memory database and a fake generator.
type ServiceTestSuite struct {
	suite.Suite
	db             *gorm.DB
	ctx            context.Context
	jobRepo        *repos.JobRepository
	projectRepo    *repos.ProjectRepository
	artifactRepo   *repos.ArtifactRepository
	jobService     *Job
	projectService *Project
	generator      *fakeGenerator
	worker         *Worker
}

func (s *ServiceTestSuite) SetupTest() {
	db, err := gorm.Open(sqlite.Open("file::memory:?cache=shared&_json=1"), &gorm.Config{
		DisableForeignKeyConstraintWhenMigrating: true,
		Logger:                                   logger.Default.LogMode(logger.Silent),
	})
	require.NoError(s.T(), err, "Failed to create in-memory database")

	err = db.AutoMigrate(&models.Project{}, &models.Job{}, &models.Artifact{})
	require.NoError(s.T(), err, "Failed to run database migrations")

	s.db = db
	s.ctx = context.Background()
	s.jobRepo = repos.NewJobRepository(db)
	s.projectRepo = repos.NewProjectRepository(db)
	s.artifactRepo = repos.NewArtifactRepository(db)
	s.jobService = NewJobService(s.jobRepo, s.projectRepo)
	s.projectService = NewProjectService(s.projectRepo, s.artifactRepo)

	s.generator = &fakeGenerator{
		result: &generation.Result{
			Text:       `{"headlines":["Inbox zero, every day"]}`,
			TokensUsed: 420,
		},
	}
	s.worker = NewWorker(
		s.jobRepo,
		agents.NewResolver("test-model", nil),
		s.generator,
		sink.NewArtifactSink(s.artifactRepo),
		10*time.Millisecond,
		5*time.Minute,
	)
}

func (s *ServiceTestSuite) TearDownTest() {
	sqlDB, err := s.db.DB()
	if err == nil && sqlDB != nil {
		_ = sqlDB.Close()
	}
}

func (s *ServiceTestSuite) createTestProject() *models.Project {
	project := &models.Project{
		Name:           "inbox-zero-coach",
		Description:    "An AI email coach",
		TargetAudience: "busy founders",
		Problem:        "email overload",
	}
	s.Require().NoError(s.projectRepo.Create(s.ctx, project))
	return project
}
