package install

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/olxver2025/Inline/internal/log"
	"github.com/olxver2025/Inline/internal/model"
	"github.com/olxver2025/Inline/internal/sandbox"
	"github.com/olxver2025/Inline/internal/storage"
)

const (
	// DefaultTimeout is the default wall-clock limit for an install,
	// longer than runs because pip resolves and downloads over the
	// network.
	DefaultTimeout = 5 * time.Minute
	// DefaultUpdateInterval throttles intermediate progress updates.
	DefaultUpdateInterval = 3 * time.Second
	// DefaultTailBytes bounds the log tail shown on the final update.
	DefaultTailBytes = 1800
	// DefaultMemoryBytes is the default container memory limit (256 MiB).
	DefaultMemoryBytes = 256 * 1024 * 1024
	// DefaultCPUs is the default container CPU share.
	DefaultCPUs = 1.0
	// DefaultPidsLimit is the default container process limit.
	DefaultPidsLimit = 64
)

// Package specs as pip accepts them: names, extras, version constraints.
// Anything a shell could interpret is rejected.
var packageRegexp = regexp.MustCompile(`^[A-Za-z0-9._\[\],=<>!~+-]+$`)

// ServiceConfig is the configuration for the install service.
type ServiceConfig struct {
	Engine     sandbox.Engine
	Repository storage.SessionRepository
	// Timeout is the wall-clock limit applied to every install.
	Timeout time.Duration
	// Limits are the container resource limits applied to every install.
	Limits model.ResourceLimits
	// UpdateInterval is the minimum time between intermediate progress
	// updates to the caller.
	UpdateInterval time.Duration
	// TailBytes bounds the cumulative log tail of the final update.
	TailBytes int
	Logger    log.Logger
}

func (c *ServiceConfig) defaults() error {
	if c.Engine == nil {
		return fmt.Errorf("engine is required")
	}
	if c.Repository == nil {
		return fmt.Errorf("repository is required")
	}
	if c.Timeout == 0 {
		c.Timeout = DefaultTimeout
	}
	if c.Limits.MemoryBytes == 0 {
		c.Limits.MemoryBytes = DefaultMemoryBytes
	}
	if c.Limits.CPUs == 0 {
		c.Limits.CPUs = DefaultCPUs
	}
	if c.Limits.PidsLimit == 0 {
		c.Limits.PidsLimit = DefaultPidsLimit
	}
	if c.UpdateInterval == 0 {
		c.UpdateInterval = DefaultUpdateInterval
	}
	if c.TailBytes == 0 {
		c.TailBytes = DefaultTailBytes
	}
	if c.Logger == nil {
		c.Logger = log.Noop
	}
	c.Logger = c.Logger.WithValues(log.Kv{"svc": "app.Install"})
	return nil
}

// Service handles streamed package installs into session workspaces.
type Service struct {
	engine         sandbox.Engine
	repo           storage.SessionRepository
	timeout        time.Duration
	limits         model.ResourceLimits
	updateInterval time.Duration
	tailBytes      int
	logger         log.Logger
}

// NewService creates a new install service.
func NewService(cfg ServiceConfig) (*Service, error) {
	if err := cfg.defaults(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &Service{
		engine:         cfg.Engine,
		repo:           cfg.Repository,
		timeout:        cfg.Timeout,
		limits:         cfg.Limits,
		updateInterval: cfg.UpdateInterval,
		tailBytes:      cfg.TailBytes,
		logger:         cfg.Logger,
	}, nil
}

// Request contains the parameters for installing packages.
type Request struct {
	SessionID string
	Packages  []string
	// OnProgress receives throttled log snapshots while the install runs.
	// Optional.
	OnProgress func(logTail string)
}

// Result is the outcome of a completed install.
type Result struct {
	// ExitCode is the installer exit code.
	ExitCode int
	// TimedOut is true when the install hit its deadline.
	TimedOut bool
	// LogTail is the trailing window of the combined install log.
	LogTail string
}

// Install installs packages into the session workspace, streaming progress.
// Intermediate progress fires at most once per update interval no matter
// the log volume; the final state always includes the log tail.
func (s *Service) Install(ctx context.Context, req Request) (*Result, error) {
	// 1. Validate the package specs before they reach the container.
	if len(req.Packages) == 0 {
		return nil, fmt.Errorf("at least one package is required: %w", model.ErrNotValid)
	}
	for _, pkg := range req.Packages {
		if !packageRegexp.MatchString(pkg) {
			return nil, fmt.Errorf("invalid package spec %q: %w", pkg, model.ErrNotValid)
		}
	}

	// 2. Resolve the session (this applies lazy expiry).
	session, err := s.repo.EnsureSession(ctx, req.SessionID)
	if err != nil {
		return nil, fmt.Errorf("could not get session: %w", err)
	}

	// 3. Start the streaming install job.
	updates, err := s.engine.Install(ctx, model.InstallRequest{
		Packages: req.Packages,
		Mount:    model.WorkspaceMount{HostDir: session.Root},
		Timeout:  s.timeout,
		Limits:   s.limits,
	})
	if err != nil {
		return nil, fmt.Errorf("could not start install: %w", err)
	}

	// 4. Drain the stream, throttling progress callbacks.
	var logText strings.Builder
	lastProgress := time.Now()
	var final model.InstallUpdate

	for update := range updates {
		if update.Done {
			final = update
			break
		}

		logText.WriteString(update.Chunk)
		if req.OnProgress != nil && time.Since(lastProgress) >= s.updateInterval {
			req.OnProgress(tail(logText.String(), s.tailBytes))
			lastProgress = time.Now()
		}
	}

	if final.Err != nil {
		return nil, fmt.Errorf("install failed: %w", final.Err)
	}

	// 5. Mark the session used.
	if err := s.repo.TouchSession(ctx, req.SessionID); err != nil {
		s.logger.Warningf("Could not touch session %s: %s", req.SessionID, err)
	}

	s.logger.Infof("Installed packages in session %s: exit code %d", session.ID, final.ExitCode)

	return &Result{
		ExitCode: final.ExitCode,
		TimedOut: final.TimedOut,
		LogTail:  tail(logText.String(), s.tailBytes),
	}, nil
}

func tail(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[len(s)-n:]
}
