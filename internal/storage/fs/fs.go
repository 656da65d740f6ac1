package fs

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/olxver2025/Inline/internal/conventions"
	"github.com/olxver2025/Inline/internal/log"
	"github.com/olxver2025/Inline/internal/model"
	"github.com/olxver2025/Inline/internal/pathutil"
	"github.com/olxver2025/Inline/internal/utils/file"
)

// DefaultRetention is how long a session may stay unused before it is
// reaped on access.
const DefaultRetention = 7 * 24 * time.Hour

// RepositoryConfig is the configuration for the filesystem repository.
type RepositoryConfig struct {
	// BaseDir is the directory holding one workspace per session.
	BaseDir string
	// Retention is the maximum idle time before a session expires.
	Retention time.Duration
	Logger    log.Logger
}

func (c *RepositoryConfig) defaults() error {
	if c.BaseDir == "" {
		return fmt.Errorf("base dir is required")
	}

	if c.Retention == 0 {
		c.Retention = DefaultRetention
	}

	if c.Logger == nil {
		c.Logger = log.Noop
	}
	c.Logger = c.Logger.WithValues(log.Kv{"svc": "storage.FS"})

	return nil
}

// Repository is a filesystem implementation of storage.SessionRepository.
// Every session is a directory under the base dir carrying a YAML metadata
// record; the directory itself is the workspace containers mount.
type Repository struct {
	baseDir   string
	retention time.Duration
	logger    log.Logger
}

// NewRepository creates a new filesystem repository, creating the base dir
// if needed.
func NewRepository(cfg RepositoryConfig) (*Repository, error) {
	if err := cfg.defaults(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	baseDir, err := filepath.Abs(cfg.BaseDir)
	if err != nil {
		return nil, fmt.Errorf("could not absolutize base dir: %w", err)
	}

	if err := os.MkdirAll(baseDir, 0o755); err != nil {
		return nil, fmt.Errorf("could not create base dir: %w", err)
	}

	return &Repository{
		baseDir:   baseDir,
		retention: cfg.Retention,
		logger:    cfg.Logger,
	}, nil
}

// CreateSession provisions a new session workspace. The id is taken as is,
// even an expired leftover workspace under it counts as occupied.
func (r *Repository) CreateSession(ctx context.Context, id string) (*model.Session, error) {
	if err := validateID(id); err != nil {
		return nil, err
	}

	dir := conventions.SessionDir(r.baseDir, id)
	if _, err := os.Stat(dir); err == nil {
		return nil, fmt.Errorf("session %s: %w", id, model.ErrAlreadyExists)
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("could not stat session dir: %w", err)
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("could not create session dir: %w", err)
	}

	now := time.Now().UTC()
	session := model.Session{
		ID:        id,
		Root:      dir,
		Cwd:       ".",
		CreatedAt: now,
		LastUsed:  now,
	}

	if err := r.writeMetadata(session); err != nil {
		return nil, err
	}

	r.logger.Debugf("Created session workspace: %s", id)

	return &session, nil
}

// EnsureSession returns a live session, applying the retention window: a
// session idle past it is deleted on the spot and reported as expired.
func (r *Repository) EnsureSession(ctx context.Context, id string) (*model.Session, error) {
	if err := validateID(id); err != nil {
		return nil, err
	}

	session, err := r.readSession(id)
	if err != nil {
		return nil, err
	}

	last := session.LastUsed
	if last.IsZero() {
		last = session.CreatedAt
	}
	if time.Since(last) > r.retention {
		if err := file.RemoveTree(session.Root); err != nil {
			r.logger.Warningf("Could not reap expired session %s: %s", id, err)
		}
		r.logger.Infof("Reaped expired session: %s", id)
		return nil, fmt.Errorf("session %s: %w", id, model.ErrExpired)
	}

	return session, nil
}

// ListSessions returns all sessions with readable metadata. Listing never
// touches nor reaps.
func (r *Repository) ListSessions(ctx context.Context) ([]model.Session, error) {
	entries, err := os.ReadDir(r.baseDir)
	if err != nil {
		return nil, fmt.Errorf("could not read base dir: %w", err)
	}

	sessions := []model.Session{}
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}

		session, err := r.readSession(entry.Name())
		if err != nil {
			r.logger.Debugf("Skipping %s: %s", entry.Name(), err)
			continue
		}

		sessions = append(sessions, *session)
	}

	sort.Slice(sessions, func(i, j int) bool { return sessions[i].ID < sessions[j].ID })

	return sessions, nil
}

// TouchSession bumps the session's last used timestamp.
func (r *Repository) TouchSession(ctx context.Context, id string) error {
	session, err := r.readSession(id)
	if err != nil {
		return err
	}

	session.LastUsed = time.Now().UTC()

	return r.writeMetadata(*session)
}

// SetSessionCwd changes the session working directory. The path is resolved
// against the current directory, must stay inside the workspace and must be
// an existing directory.
func (r *Repository) SetSessionCwd(ctx context.Context, id, rel string) (*model.Session, error) {
	session, err := r.readSession(id)
	if err != nil {
		return nil, err
	}

	abs, wsRel, err := pathutil.Resolve(session.Root, session.Cwd, rel)
	if err != nil {
		return nil, err
	}

	info, err := os.Stat(abs)
	if err != nil || !info.IsDir() {
		return nil, fmt.Errorf("cwd %q is not an existing directory: %w", rel, model.ErrNotValid)
	}

	session.Cwd = wsRel
	if err := r.writeMetadata(*session); err != nil {
		return nil, err
	}

	r.logger.Debugf("Changed session %s cwd to %q", id, session.Cwd)

	return session, nil
}

// DeleteSession removes the session workspace and everything in it.
func (r *Repository) DeleteSession(ctx context.Context, id string) error {
	if err := validateID(id); err != nil {
		return err
	}

	dir := conventions.SessionDir(r.baseDir, id)
	if _, err := os.Stat(dir); err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("session %s: %w", id, model.ErrNotFound)
		}
		return fmt.Errorf("could not stat session dir: %w", err)
	}

	if err := file.RemoveTree(dir); err != nil {
		return fmt.Errorf("could not remove session dir: %w", err)
	}

	r.logger.Debugf("Deleted session workspace: %s", id)

	return nil
}

// readSession loads a session from its metadata record. Missing workspaces
// and unreadable records report model.ErrNotFound.
func (r *Repository) readSession(id string) (*model.Session, error) {
	if err := validateID(id); err != nil {
		return nil, err
	}

	dir := conventions.SessionDir(r.baseDir, id)
	if _, err := os.Stat(dir); err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("session %s: %w", id, model.ErrNotFound)
		}
		return nil, fmt.Errorf("could not stat session dir: %w", err)
	}

	return loadMetadata(dir, id)
}

func validateID(id string) error {
	if id == "" || id == "." || id == ".." ||
		strings.ContainsAny(id, "/\\\x00") {
		return fmt.Errorf("session id %q: %w", id, model.ErrNotValid)
	}
	return nil
}
