package create

import (
	"context"
	"errors"
	"fmt"

	"github.com/olxver2025/Inline/internal/log"
	"github.com/olxver2025/Inline/internal/model"
	"github.com/olxver2025/Inline/internal/storage"
)

// ServiceConfig is the configuration for the create service.
type ServiceConfig struct {
	Repository storage.SessionRepository
	Logger     log.Logger
}

func (c *ServiceConfig) defaults() error {
	if c.Repository == nil {
		return fmt.Errorf("repository is required")
	}
	if c.Logger == nil {
		c.Logger = log.Noop
	}
	c.Logger = c.Logger.WithValues(log.Kv{"svc": "app.Create"})
	return nil
}

// Service handles session creation business logic.
type Service struct {
	repo   storage.SessionRepository
	logger log.Logger
}

// NewService creates a new create service.
func NewService(cfg ServiceConfig) (*Service, error) {
	if err := cfg.defaults(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &Service{
		repo:   cfg.Repository,
		logger: cfg.Logger,
	}, nil
}

// Request contains the parameters for creating a session.
type Request struct {
	SessionID string
}

// Create creates a new session workspace for the user. A live session under
// the same id fails with model.ErrAlreadyExists; an expired leftover is
// reaped first so the id becomes usable again.
func (s *Service) Create(ctx context.Context, req Request) (*model.Session, error) {
	// 1. Check liveness under the id (this reaps an expired leftover).
	_, err := s.repo.EnsureSession(ctx, req.SessionID)
	if err == nil {
		return nil, fmt.Errorf("session %s: %w", req.SessionID, model.ErrAlreadyExists)
	}
	if !errors.Is(err, model.ErrNotFound) && !errors.Is(err, model.ErrExpired) {
		return nil, fmt.Errorf("could not check session liveness: %w", err)
	}

	// 2. Create the workspace and metadata.
	session, err := s.repo.CreateSession(ctx, req.SessionID)
	if err != nil {
		return nil, fmt.Errorf("could not create session: %w", err)
	}

	s.logger.Infof("Created session: %s", session.ID)

	return session, nil
}
