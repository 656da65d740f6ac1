package look

import (
	"context"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/olxver2025/Inline/internal/conventions"
	"github.com/olxver2025/Inline/internal/log"
	"github.com/olxver2025/Inline/internal/model"
	"github.com/olxver2025/Inline/internal/storage"
)

// ServiceConfig is the configuration for the look service.
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
	c.Logger = c.Logger.WithValues(log.Kv{"svc": "app.Look"})
	return nil
}

// Service handles workspace navigation and directory listing.
type Service struct {
	repo   storage.SessionRepository
	logger log.Logger
}

// NewService creates a new look service.
func NewService(cfg ServiceConfig) (*Service, error) {
	if err := cfg.defaults(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &Service{
		repo:   cfg.Repository,
		logger: cfg.Logger,
	}, nil
}

// Request contains the parameters for looking at a session directory.
type Request struct {
	SessionID string
	// Path optionally navigates to another directory before listing. A
	// failed navigation leaves the session cwd unchanged.
	Path string
}

// Listing is the result of a look: the (possibly updated) working directory
// and its entries.
type Listing struct {
	Cwd     string
	Entries []model.DirEntry
}

// Look lists the session's current directory, optionally changing it first.
func (s *Service) Look(ctx context.Context, req Request) (*Listing, error) {
	// 1. Resolve the session (this applies lazy expiry).
	session, err := s.repo.EnsureSession(ctx, req.SessionID)
	if err != nil {
		return nil, fmt.Errorf("could not get session: %w", err)
	}

	// 2. Navigate when a path was given.
	if req.Path != "" {
		session, err = s.repo.SetSessionCwd(ctx, req.SessionID, req.Path)
		if err != nil {
			return nil, fmt.Errorf("could not change directory: %w", err)
		}
	}

	// 3. List the current directory, directories first.
	entries, err := readDir(session.WorkspaceDir())
	if err != nil {
		return nil, fmt.Errorf("could not list directory: %w", err)
	}

	// 4. Mark the session used.
	if err := s.repo.TouchSession(ctx, req.SessionID); err != nil {
		s.logger.Warningf("Could not touch session %s: %s", req.SessionID, err)
	}

	return &Listing{Cwd: session.Cwd, Entries: entries}, nil
}

// readDir lists a workspace directory sorted directories first, then by
// name case-insensitively. The session metadata record is not user data and
// is hidden.
func readDir(dir string) ([]model.DirEntry, error) {
	dirEntries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	entries := []model.DirEntry{}
	for _, de := range dirEntries {
		if de.Name() == conventions.MetadataFile {
			continue
		}

		entry := model.DirEntry{Name: de.Name(), Dir: de.IsDir()}
		if !de.IsDir() {
			if info, err := de.Info(); err == nil {
				entry.SizeBytes = info.Size()
			}
		}
		entries = append(entries, entry)
	}

	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Dir != entries[j].Dir {
			return entries[i].Dir
		}
		return strings.ToLower(entries[i].Name) < strings.ToLower(entries[j].Name)
	})

	return entries, nil
}
