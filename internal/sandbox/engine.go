package sandbox

import (
	"context"

	"github.com/olxver2025/Inline/internal/model"
)

// Engine is the interface for one-shot sandboxed execution.
type Engine interface {
	// Check performs preflight checks and returns the results.
	// Checks verify that the engine can reach its runtime and image.
	Check(ctx context.Context) []model.CheckResult

	// Run executes code in a hardened throwaway container. Timeouts,
	// non-zero exits and truncated output are reported inside the result,
	// an error means the run could not be set up at all.
	Run(ctx context.Context, req model.ExecRequest) (*model.ExecResult, error)

	// Install installs packages into the mounted workspace with network
	// access, streaming combined output as updates. The channel closes
	// after the final update. Cancelling the context aborts the job.
	Install(ctx context.Context, req model.InstallRequest) (<-chan model.InstallUpdate, error)

	// EnsureImage makes sure the execution image is available locally,
	// pulling it when allowed.
	EnsureImage(ctx context.Context, pull bool) error
}
