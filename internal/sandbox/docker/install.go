package docker

import (
	"bufio"
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/docker/docker/api/types/container"
	"github.com/docker/docker/api/types/strslice"
	"github.com/docker/docker/pkg/stdcopy"
	"github.com/oklog/ulid/v2"

	"github.com/olxver2025/Inline/internal/conventions"
	"github.com/olxver2025/Inline/internal/model"
)

// Install runs pip in a container with network access, installing into the
// workspace's site-packages directory, and streams the combined output. The
// returned channel closes after the final update.
func (e *Engine) Install(ctx context.Context, req model.InstallRequest) (<-chan model.InstallUpdate, error) {
	if len(req.Packages) == 0 {
		return nil, fmt.Errorf("no packages given: %w", model.ErrNotValid)
	}
	if req.Mount.HostDir == "" {
		return nil, fmt.Errorf("workspace mount is required: %w", model.ErrNotValid)
	}

	id := ulid.MustNew(ulid.Timestamp(time.Now()), rand.Reader).String()
	containerName := conventions.InstallContainerName(id)

	jobCtx := ctx
	cancel := context.CancelFunc(func() {})
	if req.Timeout > 0 {
		jobCtx, cancel = context.WithTimeout(ctx, req.Timeout)
	}

	cmd := strslice.StrSlice{
		"python", "-m", "pip", "install",
		"--no-cache-dir", "--upgrade",
		"--target", conventions.SitePackagesMountPath,
	}
	cmd = append(cmd, req.Packages...)

	containerConfig := &container.Config{
		Image:      e.image,
		User:       "1000:1000",
		WorkingDir: conventions.WorkspaceMountPath,
		Env: []string{
			"PYTHONDONTWRITEBYTECODE=1",
			"PYTHONUNBUFFERED=1",
		},
		Cmd: cmd,
	}
	// Unlike runs, installs keep network access and a writable rootfs, pip
	// needs both. The rest of the lockdown matches runs.
	hostConfig := &container.HostConfig{
		Binds: []string{fmt.Sprintf("%s:%s:rw", req.Mount.HostDir, conventions.WorkspaceMountPath)},
		Resources: container.Resources{
			NanoCPUs: int64(req.Limits.CPUs * 1e9),
			Memory:   req.Limits.MemoryBytes,
		},
		CapDrop:     strslice.StrSlice{"ALL"},
		SecurityOpt: []string{"no-new-privileges"},
	}
	if req.Limits.PidsLimit > 0 {
		pids := req.Limits.PidsLimit
		hostConfig.Resources.PidsLimit = &pids
	}

	e.logger.Debugf("Creating install container: %s", containerName)
	resp, err := e.client.ContainerCreate(jobCtx, containerConfig, hostConfig, nil, nil, containerName)
	if err != nil {
		cancel()
		return nil, fmt.Errorf("could not create container: %w", err)
	}

	if err := e.client.ContainerStart(jobCtx, resp.ID, container.StartOptions{}); err != nil {
		e.forceRemoveContainer(containerName)
		cancel()
		return nil, fmt.Errorf("could not start container: %w", err)
	}

	logs, err := e.client.ContainerLogs(jobCtx, resp.ID, container.LogsOptions{
		ShowStdout: true,
		ShowStderr: true,
		Follow:     true,
	})
	if err != nil {
		e.forceRemoveContainer(containerName)
		cancel()
		return nil, fmt.Errorf("could not attach to container logs: %w", err)
	}

	updates := make(chan model.InstallUpdate)
	go e.streamInstall(jobCtx, cancel, resp.ID, containerName, logs, updates)

	return updates, nil
}

// streamInstall pumps log lines into the updates channel and finishes with
// the terminal update. The container is always removed on the way out.
func (e *Engine) streamInstall(ctx context.Context, cancel context.CancelFunc, containerID, containerName string, logs io.ReadCloser, updates chan<- model.InstallUpdate) {
	defer cancel()
	defer close(updates)
	defer e.forceRemoveContainer(containerName)
	defer logs.Close()

	// The daemon multiplexes both streams over one connection, demux them
	// back into a single merged text stream.
	pr, pw := io.Pipe()
	go func() {
		_, err := stdcopy.StdCopy(pw, pw, logs)
		pw.CloseWithError(err)
	}()

	reader := bufio.NewReader(pr)
	for {
		line, err := reader.ReadString('\n')
		if line != "" {
			updates <- model.InstallUpdate{Chunk: line}
		}
		if err != nil {
			break
		}
	}

	final := model.InstallUpdate{Done: true}
	waitCh, errCh := e.client.ContainerWait(ctx, containerID, container.WaitConditionNotRunning)
	select {
	case res := <-waitCh:
		final.ExitCode = int(res.StatusCode)
	case err := <-errCh:
		if errors.Is(err, context.DeadlineExceeded) {
			final.ExitCode = model.TimeoutExitCode
			final.TimedOut = true
		} else {
			final.Err = fmt.Errorf("could not wait for container: %w", err)
		}
	case <-ctx.Done():
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			final.ExitCode = model.TimeoutExitCode
			final.TimedOut = true
		} else {
			final.Err = ctx.Err()
		}
	}

	if final.TimedOut {
		e.logger.Warningf("Install timed out, removed container %s", containerName)
	}

	updates <- final
}
