package sessionlist

import (
	"context"
	"fmt"

	"github.com/olxver2025/Inline/internal/log"
	"github.com/olxver2025/Inline/internal/model"
	"github.com/olxver2025/Inline/internal/storage"
)

// ServiceConfig is the configuration for the session list service.
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
	c.Logger = c.Logger.WithValues(log.Kv{"svc": "app.SessionList"})
	return nil
}

// Service handles session listing.
type Service struct {
	repo   storage.SessionRepository
	logger log.Logger
}

// NewService creates a new session list service.
func NewService(cfg ServiceConfig) (*Service, error) {
	if err := cfg.defaults(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &Service{
		repo:   cfg.Repository,
		logger: cfg.Logger,
	}, nil
}

// List returns all sessions with readable metadata. Listing is read only,
// expiry is applied on access, never here.
func (s *Service) List(ctx context.Context) ([]model.Session, error) {
	sessions, err := s.repo.ListSessions(ctx)
	if err != nil {
		return nil, fmt.Errorf("could not list sessions: %w", err)
	}

	return sessions, nil
}
