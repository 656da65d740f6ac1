package filewrite

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/olxver2025/Inline/internal/log"
	"github.com/olxver2025/Inline/internal/model"
	"github.com/olxver2025/Inline/internal/pathutil"
	"github.com/olxver2025/Inline/internal/storage"
)

// ServiceConfig is the configuration for the file write service.
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
	c.Logger = c.Logger.WithValues(log.Kv{"svc": "app.FileWrite"})
	return nil
}

// Service handles file writes inside session workspaces.
type Service struct {
	repo   storage.SessionRepository
	logger log.Logger
}

// NewService creates a new file write service.
func NewService(cfg ServiceConfig) (*Service, error) {
	if err := cfg.defaults(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &Service{
		repo:   cfg.Repository,
		logger: cfg.Logger,
	}, nil
}

// Request contains the parameters for writing a file.
type Request struct {
	SessionID string
	// Path is the target file path, relative to the session cwd.
	Path string
	// Content is the file content, written as is.
	Content []byte
}

// Written describes a completed file write.
type Written struct {
	// Path is the workspace-relative path of the written file.
	Path string
	// SizeBytes is the number of bytes written.
	SizeBytes int
}

// Write creates or overwrites a file inside the session workspace. Parent
// directories are created as needed; a directory occupying the target name
// fails with model.ErrNotValid.
func (s *Service) Write(ctx context.Context, req Request) (*Written, error) {
	// 1. Resolve the session (this applies lazy expiry).
	session, err := s.repo.EnsureSession(ctx, req.SessionID)
	if err != nil {
		return nil, fmt.Errorf("could not get session: %w", err)
	}

	// 2. Contain the target inside the workspace.
	abs, wsRel, err := pathutil.Resolve(session.Root, session.Cwd, req.Path)
	if err != nil {
		return nil, fmt.Errorf("could not resolve path: %w", err)
	}
	if abs == session.Root {
		return nil, fmt.Errorf("cannot write the workspace root: %w", model.ErrNotValid)
	}

	if info, err := os.Stat(abs); err == nil && info.IsDir() {
		return nil, fmt.Errorf("a directory exists with that name: %w", model.ErrNotValid)
	}

	// 3. Write the file.
	if err := os.MkdirAll(filepath.Dir(abs), 0o755); err != nil {
		return nil, fmt.Errorf("could not create parent directories: %w", err)
	}
	if err := os.WriteFile(abs, req.Content, 0o644); err != nil {
		return nil, fmt.Errorf("could not write file: %w", err)
	}

	// 4. Mark the session used.
	if err := s.repo.TouchSession(ctx, req.SessionID); err != nil {
		s.logger.Warningf("Could not touch session %s: %s", req.SessionID, err)
	}

	s.logger.Debugf("Wrote %s (%d bytes) in session %s", wsRel, len(req.Content), session.ID)

	return &Written{Path: wsRel, SizeBytes: len(req.Content)}, nil
}
