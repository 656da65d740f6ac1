package docker

import (
	"bytes"
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"os/exec"
	"path"
	"strconv"
	"strings"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/olxver2025/Inline/internal/conventions"
	"github.com/olxver2025/Inline/internal/model"
	"github.com/olxver2025/Inline/internal/utils/env"
)

// timeoutStderr is what a timed out run reports instead of its stderr.
const timeoutStderr = "Execution timed out. If this was the first run, the Docker image may still be pulling. Try pre-pulling or increasing the timeout."

// Run executes Python code in a hardened one-shot container, delivering the
// source on stdin. Timeouts and non-zero exits are reported in the result,
// not as errors.
func (e *Engine) Run(ctx context.Context, req model.ExecRequest) (*model.ExecResult, error) {
	id := ulid.MustNew(ulid.Timestamp(time.Now()), rand.Reader).String()
	containerName := conventions.RunContainerName(id)

	runCtx := ctx
	if req.Timeout > 0 {
		var cancel context.CancelFunc
		runCtx, cancel = context.WithTimeout(ctx, req.Timeout)
		defer cancel()
	}

	args := buildRunArgs(containerName, e.image, req)
	e.logger.Debugf("Running container %s: docker %v", containerName, args)

	stdout := newLimitedWriter(e.maxOutputBytes)
	stderr := newLimitedWriter(e.maxOutputBytes)

	cmd := exec.CommandContext(runCtx, e.dockerBin, args...)
	cmd.Stdin = strings.NewReader(req.Code)
	cmd.Stdout = stdout
	cmd.Stderr = stderr

	start := time.Now()
	err := cmd.Run()
	duration := time.Since(start)

	// The CLI process dies with the deadline but the container does not,
	// it has to be removed by name. Whatever was captured before the
	// deadline is discarded, a timed out run reports only the explanation.
	if errors.Is(runCtx.Err(), context.DeadlineExceeded) {
		e.forceRemoveContainer(containerName)
		e.logger.Warningf("Run timed out after %s, removed container %s", req.Timeout, containerName)
		return &model.ExecResult{
			Stderr:   timeoutStderr,
			ExitCode: model.TimeoutExitCode,
			TimedOut: true,
			Duration: duration,
		}, nil
	}
	if ctxErr := runCtx.Err(); ctxErr != nil {
		e.forceRemoveContainer(containerName)
		return nil, ctxErr
	}

	exitCode := 0
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			exitCode = exitErr.ExitCode()
			e.logger.Debugf("Run exited with code %d", exitCode)
		} else {
			if errors.Is(err, exec.ErrNotFound) {
				return nil, fmt.Errorf("docker binary %q not found in PATH: %w", e.dockerBin, model.ErrRuntimeUnavailable)
			}
			return nil, fmt.Errorf("could not run container: %w", err)
		}
	}

	return &model.ExecResult{
		Stdout:    stdout.String(),
		Stderr:    stderr.String(),
		ExitCode:  exitCode,
		Truncated: stdout.Truncated() || stderr.Truncated(),
		Duration:  duration,
	}, nil
}

// buildRunArgs builds the docker run invocation for a code run. Everything
// is locked down: no network, read-only rootfs with a small scratch tmpfs,
// no capabilities, no privilege escalation, fixed non-root user and hard
// resource limits.
func buildRunArgs(containerName, imageRef string, req model.ExecRequest) []string {
	args := []string{
		"run", "--rm", "--name", containerName, "-i",
		"--network", "none",
		"--read-only",
		"--tmpfs", "/tmp:rw,noexec,nosuid,size=64m",
		"--pids-limit", strconv.FormatInt(req.Limits.PidsLimit, 10),
		"--cpus", strconv.FormatFloat(req.Limits.CPUs, 'g', -1, 64),
		"--memory", strconv.FormatInt(req.Limits.MemoryBytes, 10),
		"--cap-drop", "ALL",
		"--security-opt", "no-new-privileges",
		"--user", "1000:1000",
		"-e", "PYTHONDONTWRITEBYTECODE=1",
		"-e", "PYTHONUNBUFFERED=1",
	}

	if req.Mount != nil {
		workdir := conventions.WorkspaceMountPath
		if sub := req.Mount.Subpath; sub != "" && sub != "." {
			workdir = path.Join(conventions.WorkspaceMountPath, sub)
		}
		args = append(args,
			"-v", fmt.Sprintf("%s:%s:rw", req.Mount.HostDir, conventions.WorkspaceMountPath),
			"-w", workdir,
		)
	}

	for _, kv := range env.AsList(req.Env) {
		args = append(args, "-e", kv)
	}

	args = append(args, imageRef, "python", "-")

	return args
}

// limitedWriter keeps at most max bytes, silently discarding the rest and
// flagging the truncation.
type limitedWriter struct {
	buf       bytes.Buffer
	max       int
	truncated bool
}

func newLimitedWriter(max int) *limitedWriter {
	return &limitedWriter{max: max}
}

func (w *limitedWriter) Write(p []byte) (int, error) {
	remaining := w.max - w.buf.Len()
	switch {
	case remaining >= len(p):
		w.buf.Write(p)
	case remaining > 0:
		w.buf.Write(p[:remaining])
		w.truncated = true
	case len(p) > 0:
		w.truncated = true
	}
	return len(p), nil
}

// String returns the captured bytes as text, replacing invalid UTF-8.
func (w *limitedWriter) String() string {
	return strings.ToValidUTF8(w.buf.String(), "�")
}

func (w *limitedWriter) Truncated() bool {
	return w.truncated
}
