package fileremove

import (
	"context"
	"fmt"
	"os"

	"github.com/olxver2025/Inline/internal/conventions"
	"github.com/olxver2025/Inline/internal/log"
	"github.com/olxver2025/Inline/internal/model"
	"github.com/olxver2025/Inline/internal/pathutil"
	"github.com/olxver2025/Inline/internal/storage"
	"github.com/olxver2025/Inline/internal/utils/file"
)

// ServiceConfig is the configuration for the file remove service.
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
	c.Logger = c.Logger.WithValues(log.Kv{"svc": "app.FileRemove"})
	return nil
}

// Service handles path removal inside session workspaces.
type Service struct {
	repo   storage.SessionRepository
	logger log.Logger
}

// NewService creates a new file remove service.
func NewService(cfg ServiceConfig) (*Service, error) {
	if err := cfg.defaults(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &Service{
		repo:   cfg.Repository,
		logger: cfg.Logger,
	}, nil
}

// Request contains the parameters for removing a path.
type Request struct {
	SessionID string
	// Path is the target path, relative to the session cwd.
	Path string
	// Recursive allows removing directories with their contents.
	Recursive bool
}

// Remove deletes a file, symlink or directory inside the session workspace.
// Directories need Recursive; the workspace root and the session metadata
// record cannot be removed.
func (s *Service) Remove(ctx context.Context, req Request) error {
	// 1. Resolve the session (this applies lazy expiry).
	session, err := s.repo.EnsureSession(ctx, req.SessionID)
	if err != nil {
		return fmt.Errorf("could not get session: %w", err)
	}

	// 2. Contain the target inside the workspace.
	abs, wsRel, err := pathutil.Resolve(session.Root, session.Cwd, req.Path)
	if err != nil {
		return fmt.Errorf("could not resolve path: %w", err)
	}
	if abs == session.Root {
		return fmt.Errorf("cannot remove the workspace root: %w", model.ErrNotValid)
	}
	if wsRel == conventions.MetadataFile {
		return fmt.Errorf("cannot remove the session metadata: %w", model.ErrNotValid)
	}

	info, err := os.Lstat(abs)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("path %q: %w", req.Path, model.ErrNotFound)
		}
		return fmt.Errorf("could not stat path: %w", err)
	}

	// 3. Remove it.
	if info.IsDir() && !req.Recursive {
		return fmt.Errorf("%q is a directory, removal needs recursive: %w", req.Path, model.ErrNotValid)
	}
	if err := file.RemoveTree(abs); err != nil {
		return fmt.Errorf("could not remove path: %w", err)
	}

	// 4. Mark the session used.
	if err := s.repo.TouchSession(ctx, req.SessionID); err != nil {
		s.logger.Warningf("Could not touch session %s: %s", req.SessionID, err)
	}

	s.logger.Debugf("Removed %s in session %s", wsRel, session.ID)

	return nil
}
