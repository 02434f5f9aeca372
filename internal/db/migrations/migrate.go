// Package migrations wraps golang-migrate for running the SQL migrations in
// the migrations/ directory against PostgreSQL.
package migrations

import (
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
)

// Config holds migration configuration
type Config struct {
	MigrationsPath string
	DatabaseURL    string
	RetryAttempts  int
	RetryDelay     time.Duration
}

// DefaultConfig returns default configuration
func DefaultConfig() Config {
	return Config{
		MigrationsPath: "file://migrations",
		RetryAttempts:  5,
		RetryDelay:     3 * time.Second,
	}
}

// Service handles database migrations
type Service struct {
	config  Config
	migrate *migrate.Migrate
}

// NewService creates a new migration service, retrying the database
// connection a few times before giving up.
func NewService(config Config) (*Service, error) {
	var m *migrate.Migrate
	var err error

	for i := 0; i < config.RetryAttempts; i++ {
		m, err = migrate.New(config.MigrationsPath, config.DatabaseURL)
		if err == nil {
			break
		}
		log.Printf("Failed to connect to database, attempt %d/%d: %v", i+1, config.RetryAttempts, err)
		time.Sleep(config.RetryDelay)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to create migration instance after %d attempts: %w", config.RetryAttempts, err)
	}

	return &Service{config: config, migrate: m}, nil
}

// Up applies all pending migrations
func (s *Service) Up() error {
	if err := s.migrate.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("failed to apply migrations: %w", err)
	}
	return nil
}

// Down rolls back all migrations
func (s *Service) Down() error {
	if err := s.migrate.Down(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("failed to roll back migrations: %w", err)
	}
	return nil
}

// Steps applies n migrations up (n > 0) or down (n < 0)
func (s *Service) Steps(n int) error {
	if err := s.migrate.Steps(n); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("failed to apply %d migration steps: %w", n, err)
	}
	return nil
}

// Force sets the migration version without running migrations
func (s *Service) Force(version int) error {
	if err := s.migrate.Force(version); err != nil {
		return fmt.Errorf("failed to force version %d: %w", version, err)
	}
	return nil
}

// Close releases the underlying source and database connections
func (s *Service) Close() error {
	srcErr, dbErr := s.migrate.Close()
	if srcErr != nil {
		return srcErr
	}
	return dbErr
}
