package inline

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/olxver2025/Inline/internal/conventions"
	"github.com/olxver2025/Inline/internal/log"
	"github.com/olxver2025/Inline/internal/model"
	"github.com/olxver2025/Inline/internal/sandbox"
	"github.com/olxver2025/Inline/internal/sandbox/docker"
	"github.com/olxver2025/Inline/internal/sandbox/fake"
	"github.com/olxver2025/Inline/internal/storage"
	"github.com/olxver2025/Inline/internal/storage/fs"
)

// Config configures the SDK client.
//
// All fields are optional and have sensible defaults. At minimum, an empty
// Config{} will use ~/.inline/sessions for storage and the Docker engine.
type Config struct {
	// BaseDir is the directory holding one workspace per session.
	// Default: ~/.inline/sessions.
	BaseDir string

	// Retention is the maximum idle time before a session expires and is
	// reaped on next access. Default: 7 days.
	Retention time.Duration

	// Image is the container image runs and installs execute in.
	// Default: python:3.11-alpine.
	Image string

	// RunTimeout is the wall-clock limit for code runs. Default: 30s.
	RunTimeout time.Duration

	// InstallTimeout is the wall-clock limit for package installs.
	// Default: 5m.
	InstallTimeout time.Duration

	// MemoryBytes caps container memory. Default: 256 MiB.
	MemoryBytes int64

	// CPUs caps container CPUs. Default: 1.0.
	CPUs float64

	// PidsLimit caps the number of processes in a container. Default: 64.
	PidsLimit int64

	// MaxOutputBytes caps each captured output stream of a run.
	// Default: 100000.
	MaxOutputBytes int

	// EchoLastExpr controls the REPL-style echo of a trailing bare
	// expression. Default: enabled.
	EchoLastExpr *bool

	// Engine selects the sandbox engine implementation.
	// Default: [EngineDocker]. Set [EngineFake] for testing without a
	// Docker daemon.
	Engine EngineType

	// Logger receives structured log output from the SDK.
	// Default: noop (silent). See the log sub-package for the interface.
	Logger log.Logger
}

func (c *Config) defaults() error {
	if c.BaseDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("could not get user home dir: %w", err)
		}
		c.BaseDir = filepath.Join(home, conventions.DefaultDataDir, conventions.SessionsDir)
	}

	if c.Engine == "" {
		c.Engine = EngineDocker
	}

	if c.Logger == nil {
		c.Logger = log.Noop
	}

	return nil
}

// Client is the main SDK entry point for managing sandbox sessions
// programmatically.
//
// Create a Client with [New]. A Client is safe for concurrent use.
type Client struct {
	repo           storage.SessionRepository
	engine         sandbox.Engine
	logger         log.Logger
	baseDir        string
	runTimeout     time.Duration
	installTimeout time.Duration
	limits         model.ResourceLimits
	echoLastExpr   *bool
}

// New creates a new SDK client backed by a filesystem session store.
//
//	client, err := inline.New(inline.Config{})
//	if err != nil {
//	    return err
//	}
func New(cfg Config) (*Client, error) {
	if err := cfg.defaults(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	repo, err := fs.NewRepository(fs.RepositoryConfig{
		BaseDir:   cfg.BaseDir,
		Retention: cfg.Retention,
		Logger:    cfg.Logger,
	})
	if err != nil {
		return nil, mapError(fmt.Errorf("could not create repository: %w", err))
	}

	engine, err := newEngine(cfg)
	if err != nil {
		return nil, mapError(fmt.Errorf("could not create engine: %w", err))
	}

	return &Client{
		repo:           repo,
		engine:         engine,
		logger:         cfg.Logger,
		baseDir:        cfg.BaseDir,
		runTimeout:     cfg.RunTimeout,
		installTimeout: cfg.InstallTimeout,
		limits: model.ResourceLimits{
			CPUs:        cfg.CPUs,
			MemoryBytes: cfg.MemoryBytes,
			PidsLimit:   cfg.PidsLimit,
		},
		echoLastExpr: cfg.EchoLastExpr,
	}, nil
}

// Close releases resources held by the client. The filesystem store keeps no
// open handles between calls, so Close never fails today.
func (c *Client) Close() error {
	return nil
}

func newEngine(cfg Config) (sandbox.Engine, error) {
	switch cfg.Engine {
	case EngineDocker:
		return docker.NewEngine(docker.EngineConfig{
			Image:          cfg.Image,
			MaxOutputBytes: cfg.MaxOutputBytes,
			Logger:         cfg.Logger,
		})
	case EngineFake:
		return fake.NewEngine(fake.EngineConfig{
			Logger: cfg.Logger,
		})
	default:
		return nil, fmt.Errorf("unsupported engine type: %s: %w", cfg.Engine, model.ErrNotValid)
	}
}
