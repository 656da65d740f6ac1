// Package fake has an in-memory sandbox engine that simulates runs and
// installs without a container runtime. Use it for tests and for embedding
// without Docker.
package fake

import (
	"context"
	"fmt"
	"sync"

	"github.com/olxver2025/Inline/internal/log"
	"github.com/olxver2025/Inline/internal/model"
)

// EngineConfig is the configuration for the fake engine.
type EngineConfig struct {
	// RunResult is returned by every Run call. Defaults to a clean exit
	// with empty output.
	RunResult *model.ExecResult
	// InstallLog lines are streamed by every Install call before the final
	// update.
	InstallLog []string
	// InstallExitCode is the exit code of the final install update.
	InstallExitCode int
	Logger          log.Logger
}

func (c *EngineConfig) defaults() error {
	if c.RunResult == nil {
		c.RunResult = &model.ExecResult{ExitCode: 0}
	}
	if c.Logger == nil {
		c.Logger = log.Noop
	}
	c.Logger = c.Logger.WithValues(log.Kv{"svc": "engine.Fake"})
	return nil
}

// Engine is a fake implementation of the sandbox.Engine interface. It
// records every request it receives and answers with configured canned
// results.
type Engine struct {
	runResult       *model.ExecResult
	installLog      []string
	installExitCode int
	logger          log.Logger

	mu       sync.Mutex
	runs     []model.ExecRequest
	installs []model.InstallRequest
}

// NewEngine creates a new fake engine.
func NewEngine(cfg EngineConfig) (*Engine, error) {
	if err := cfg.defaults(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &Engine{
		runResult:       cfg.RunResult,
		installLog:      cfg.InstallLog,
		installExitCode: cfg.InstallExitCode,
		logger:          cfg.Logger,
	}, nil
}

// Run records the request and returns the configured result.
func (e *Engine) Run(ctx context.Context, req model.ExecRequest) (*model.ExecResult, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.runs = append(e.runs, req)
	e.logger.Debugf("Fake run (%d bytes of code)", len(req.Code))

	result := *e.runResult
	return &result, nil
}

// Install records the request and streams the configured log lines followed
// by the final update.
func (e *Engine) Install(ctx context.Context, req model.InstallRequest) (<-chan model.InstallUpdate, error) {
	if len(req.Packages) == 0 {
		return nil, fmt.Errorf("no packages given: %w", model.ErrNotValid)
	}

	e.mu.Lock()
	e.installs = append(e.installs, req)
	e.mu.Unlock()

	updates := make(chan model.InstallUpdate)
	go func() {
		defer close(updates)
		for _, line := range e.installLog {
			select {
			case updates <- model.InstallUpdate{Chunk: line}:
			case <-ctx.Done():
				updates <- model.InstallUpdate{Done: true, Err: ctx.Err()}
				return
			}
		}
		updates <- model.InstallUpdate{Done: true, ExitCode: e.installExitCode}
	}()

	return updates, nil
}

// EnsureImage always succeeds, the fake engine has no image to pull.
func (e *Engine) EnsureImage(ctx context.Context, pull bool) error {
	return nil
}

// Check always reports a healthy engine.
func (e *Engine) Check(ctx context.Context) []model.CheckResult {
	return []model.CheckResult{
		{ID: "fake_engine", Status: model.CheckStatusOK, Message: "Fake engine ready"},
	}
}

// Runs returns a copy of every run request received so far.
func (e *Engine) Runs() []model.ExecRequest {
	e.mu.Lock()
	defer e.mu.Unlock()

	runs := make([]model.ExecRequest, len(e.runs))
	copy(runs, e.runs)
	return runs
}

// Installs returns a copy of every install request received so far.
func (e *Engine) Installs() []model.InstallRequest {
	e.mu.Lock()
	defer e.mu.Unlock()

	installs := make([]model.InstallRequest, len(e.installs))
	copy(installs, e.installs)
	return installs
}
