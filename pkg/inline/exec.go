package inline

import (
	"context"
	"fmt"

	appdoctor "github.com/olxver2025/Inline/internal/app/doctor"
	appinstall "github.com/olxver2025/Inline/internal/app/install"
	apprun "github.com/olxver2025/Inline/internal/app/run"
)

// Run executes Python code against the session workspace and returns the
// captured result.
//
// The code may still be wrapped in Markdown code fences; they are stripped
// before execution. When the echo rewrite is enabled (the default) a trailing
// bare expression is echoed the way a REPL would.
//
// Timeouts, non-zero exits and truncated output are reported inside
// [ExecResult], not as errors. An error means the run could not be set up:
// [ErrNotFound] for a missing session, [ErrNotValid] for empty code,
// [ErrRuntimeUnavailable] when the container runtime is unreachable.
func (c *Client) Run(ctx context.Context, sessionID, code string, env map[string]string) (*ExecResult, error) {
	svc, err := apprun.NewService(apprun.ServiceConfig{
		Engine:       c.engine,
		Repository:   c.repo,
		Timeout:      c.runTimeout,
		Limits:       c.limits,
		EchoLastExpr: c.echoLastExpr,
		Logger:       c.logger,
	})
	if err != nil {
		return nil, fmt.Errorf("could not create service: %w", err)
	}

	result, err := svc.Run(ctx, apprun.Request{
		SessionID: sessionID,
		Code:      code,
		Env:       env,
	})
	if err != nil {
		return nil, mapError(err)
	}

	public := fromInternalExecResult(*result)
	return &public, nil
}

// Install installs Python packages into the session workspace so later runs
// can import them. Installs are the only operations with network access.
//
// onProgress, when non-nil, receives throttled snapshots of the install log
// tail while the install runs; the final tail is part of the returned
// [InstallResult].
//
// Returns [ErrNotFound] if the session does not exist or [ErrNotValid] for
// an empty or malformed package list.
func (c *Client) Install(ctx context.Context, sessionID string, packages []string, onProgress func(logTail string)) (*InstallResult, error) {
	svc, err := appinstall.NewService(appinstall.ServiceConfig{
		Engine:     c.engine,
		Repository: c.repo,
		Timeout:    c.installTimeout,
		Limits:     c.limits,
		Logger:     c.logger,
	})
	if err != nil {
		return nil, fmt.Errorf("could not create service: %w", err)
	}

	result, err := svc.Install(ctx, appinstall.Request{
		SessionID:  sessionID,
		Packages:   packages,
		OnProgress: onProgress,
	})
	if err != nil {
		return nil, mapError(err)
	}

	return &InstallResult{
		ExitCode: result.ExitCode,
		TimedOut: result.TimedOut,
		LogTail:  result.LogTail,
	}, nil
}

// Doctor runs preflight health checks for the configured engine and the
// session base directory.
//
// Returns a slice of [CheckResult] describing each check's outcome.
func (c *Client) Doctor(ctx context.Context) ([]CheckResult, error) {
	svc, err := appdoctor.NewService(appdoctor.ServiceConfig{
		Engine:  c.engine,
		BaseDir: c.baseDir,
		Logger:  c.logger,
	})
	if err != nil {
		return nil, fmt.Errorf("could not create service: %w", err)
	}

	return fromInternalCheckResults(svc.Check(ctx)), nil
}
