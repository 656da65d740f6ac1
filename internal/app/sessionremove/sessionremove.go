package sessionremove

import (
	"context"
	"fmt"

	"github.com/olxver2025/Inline/internal/log"
	"github.com/olxver2025/Inline/internal/storage"
)

// ServiceConfig is the configuration for the session remove service.
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
	c.Logger = c.Logger.WithValues(log.Kv{"svc": "app.SessionRemove"})
	return nil
}

// Service handles session deletion.
type Service struct {
	repo   storage.SessionRepository
	logger log.Logger
}

// NewService creates a new session remove service.
func NewService(cfg ServiceConfig) (*Service, error) {
	if err := cfg.defaults(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &Service{
		repo:   cfg.Repository,
		logger: cfg.Logger,
	}, nil
}

// Request contains the parameters for deleting a session.
type Request struct {
	SessionID string
}

// Remove deletes the session workspace and everything in it. A missing
// session reports model.ErrNotFound.
func (s *Service) Remove(ctx context.Context, req Request) error {
	if err := s.repo.DeleteSession(ctx, req.SessionID); err != nil {
		return fmt.Errorf("could not delete session: %w", err)
	}

	s.logger.Infof("Deleted session: %s", req.SessionID)

	return nil
}
