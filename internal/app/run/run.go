package run

import (
	"context"
	"fmt"
	"time"

	"github.com/olxver2025/Inline/internal/codeblock"
	"github.com/olxver2025/Inline/internal/conventions"
	"github.com/olxver2025/Inline/internal/log"
	"github.com/olxver2025/Inline/internal/model"
	"github.com/olxver2025/Inline/internal/rewrite"
	"github.com/olxver2025/Inline/internal/sandbox"
	"github.com/olxver2025/Inline/internal/storage"
	"github.com/olxver2025/Inline/internal/utils/env"
)

const (
	// DefaultTimeout is the default wall-clock limit for a run.
	DefaultTimeout = 30 * time.Second
	// DefaultMemoryBytes is the default container memory limit (256 MiB).
	DefaultMemoryBytes = 256 * 1024 * 1024
	// DefaultCPUs is the default container CPU share.
	DefaultCPUs = 1.0
	// DefaultPidsLimit is the default container process limit.
	DefaultPidsLimit = 64
)

// ServiceConfig is the configuration for the run service.
type ServiceConfig struct {
	Engine     sandbox.Engine
	Repository storage.SessionRepository
	// Timeout is the wall-clock limit applied to every run.
	Timeout time.Duration
	// Limits are the container resource limits applied to every run.
	Limits model.ResourceLimits
	// EchoLastExpr controls the REPL-style rewrite of a trailing bare
	// expression. Enabled by default.
	EchoLastExpr *bool
	Logger       log.Logger
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
	if c.EchoLastExpr == nil {
		echo := true
		c.EchoLastExpr = &echo
	}
	if c.Logger == nil {
		c.Logger = log.Noop
	}
	c.Logger = c.Logger.WithValues(log.Kv{"svc": "app.Run"})
	return nil
}

// Service handles code execution inside session workspaces.
type Service struct {
	engine       sandbox.Engine
	repo         storage.SessionRepository
	timeout      time.Duration
	limits       model.ResourceLimits
	echoLastExpr bool
	logger       log.Logger
}

// NewService creates a new run service.
func NewService(cfg ServiceConfig) (*Service, error) {
	if err := cfg.defaults(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &Service{
		engine:       cfg.Engine,
		repo:         cfg.Repository,
		timeout:      cfg.Timeout,
		limits:       cfg.Limits,
		echoLastExpr: *cfg.EchoLastExpr,
		logger:       cfg.Logger,
	}, nil
}

// Request contains the parameters for running code.
type Request struct {
	SessionID string
	// Code is the raw submission, possibly still wrapped in code fences.
	Code string
	// Env contains extra environment variables for the run.
	Env map[string]string
}

// Run executes the submitted code against the user's session workspace.
// Timeouts, non-zero exits and truncated output are reported in the result,
// only setup failures return an error.
func (s *Service) Run(ctx context.Context, req Request) (*model.ExecResult, error) {
	// 1. Resolve the session (this applies lazy expiry).
	session, err := s.repo.EnsureSession(ctx, req.SessionID)
	if err != nil {
		return nil, fmt.Errorf("could not get session: %w", err)
	}

	// 2. Prepare the source: unwrap code fences, then echo a trailing bare
	// expression the way a REPL would.
	code := codeblock.Extract(req.Code)
	if code == "" {
		return nil, fmt.Errorf("code cannot be empty: %w", model.ErrNotValid)
	}
	if s.echoLastExpr {
		code = rewrite.EchoLastExpr(code)
	}

	// 3. Run with the workspace mounted and installed packages importable.
	runEnv := env.MergeMaps(map[string]string{
		"PYTHONPATH": conventions.SitePackagesMountPath,
	}, req.Env)

	result, err := s.engine.Run(ctx, model.ExecRequest{
		Code: code,
		Mount: &model.WorkspaceMount{
			HostDir: session.Root,
			Subpath: session.Cwd,
		},
		Env:     runEnv,
		Timeout: s.timeout,
		Limits:  s.limits,
	})
	if err != nil {
		return nil, fmt.Errorf("could not run code: %w", err)
	}

	// 4. Mark the session used.
	if err := s.repo.TouchSession(ctx, req.SessionID); err != nil {
		s.logger.Warningf("Could not touch session %s: %s", req.SessionID, err)
	}

	s.logger.Debugf("Ran code in session %s: exit code %d", session.ID, result.ExitCode)

	return result, nil
}
