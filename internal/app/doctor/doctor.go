package doctor

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/olxver2025/Inline/internal/log"
	"github.com/olxver2025/Inline/internal/model"
	"github.com/olxver2025/Inline/internal/sandbox"
)

// ServiceConfig is the configuration for the doctor service.
type ServiceConfig struct {
	Engine sandbox.Engine
	// BaseDir is the session base directory checked for writability.
	BaseDir string
	Logger  log.Logger
}

func (c *ServiceConfig) defaults() error {
	if c.Engine == nil {
		return fmt.Errorf("engine is required")
	}
	if c.BaseDir == "" {
		return fmt.Errorf("base dir is required")
	}
	if c.Logger == nil {
		c.Logger = log.Noop
	}
	c.Logger = c.Logger.WithValues(log.Kv{"svc": "app.Doctor"})
	return nil
}

// Service runs preflight health checks.
type Service struct {
	engine  sandbox.Engine
	baseDir string
	logger  log.Logger
}

// NewService creates a new doctor service.
func NewService(cfg ServiceConfig) (*Service, error) {
	if err := cfg.defaults(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &Service{
		engine:  cfg.Engine,
		baseDir: cfg.BaseDir,
		logger:  cfg.Logger,
	}, nil
}

// Check runs the engine preflight checks plus a writability check of the
// session base directory.
func (s *Service) Check(ctx context.Context) []model.CheckResult {
	results := s.engine.Check(ctx)
	results = append(results, s.checkBaseDir())

	ok, warnings, errs := model.CountByStatus(results)
	s.logger.Debugf("Preflight checks: %d ok, %d warnings, %d errors", ok, warnings, errs)

	return results
}

func (s *Service) checkBaseDir() model.CheckResult {
	if err := os.MkdirAll(s.baseDir, 0o755); err != nil {
		return model.CheckResult{
			ID:      "base_dir",
			Status:  model.CheckStatusError,
			Message: fmt.Sprintf("Could not create base dir %s: %s", s.baseDir, err),
		}
	}

	probe, err := os.CreateTemp(s.baseDir, ".doctor*")
	if err != nil {
		return model.CheckResult{
			ID:      "base_dir",
			Status:  model.CheckStatusError,
			Message: fmt.Sprintf("Base dir %s is not writable: %s", s.baseDir, err),
		}
	}
	probe.Close()
	os.Remove(probe.Name())

	return model.CheckResult{
		ID:      "base_dir",
		Status:  model.CheckStatusOK,
		Message: fmt.Sprintf("Base dir writable: %s", filepath.Clean(s.baseDir)),
	}
}
